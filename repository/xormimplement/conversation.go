package xormimplement

import (
	"fmt"
	"time"

	"event_assistant/entity"
	"event_assistant/repository"

	"github.com/pkg/errors"
	"xorm.io/builder"
)

type ConversationRepository struct {
	session *Session
}

func NewConversationRepository(session *Session) repository.ConversationRepository {
	return &ConversationRepository{session: session}
}

func (r *ConversationRepository) GetByClientIDForUpdate(clientID string) (*entity.Conversation, error) {
	var record entity.Conversation
	has, err := r.session.
		Where(builder.Eq{entity.ConversationsFieldClientID: clientID}).
		ForUpdate().
		Get(&record)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !has {
		return nil, nil
	}
	return &record, nil
}

func (r *ConversationRepository) GetByClientID(clientID string) (*entity.Conversation, error) {
	var record entity.Conversation
	has, err := r.session.
		Where(builder.Eq{entity.ConversationsFieldClientID: clientID}).
		Get(&record)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !has {
		return nil, nil
	}
	return &record, nil
}

func (r *ConversationRepository) Insert(data *entity.Conversation) error {
	if data == nil {
		return fmt.Errorf("conversation data cannot be nil")
	}
	if _, err := r.session.Insert(data); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (r *ConversationRepository) UpdateMessages(id int64, messages string, messageCount int) error {
	// map updates bypass the `updated` tag, so the timestamp is set here
	update := map[string]interface{}{
		entity.ConversationsFieldMessages:     messages,
		entity.ConversationsFieldMessageCount: messageCount,
		entity.ConversationsFieldUpdatedAt:    time.Now().UTC(),
	}
	affected, err := r.session.
		Table(entity.TableNameConversations).
		Where(builder.Eq{entity.ConversationsFieldID: id}).
		Update(update)
	if err != nil {
		return errors.WithStack(err)
	}
	if affected == 0 {
		return fmt.Errorf("conversation %d not found", id)
	}
	return nil
}
