package repository

import (
	"event_assistant/entity"
)

type ConversationRepository interface {
	// GetByClientIDForUpdate row-locks the client's record inside the
	// session's transaction; returns (nil, nil) when no record exists.
	GetByClientIDForUpdate(clientID string) (*entity.Conversation, error)
	GetByClientID(clientID string) (*entity.Conversation, error)
	Insert(data *entity.Conversation) error
	// UpdateMessages rewrites the message list and count of an existing record.
	UpdateMessages(id int64, messages string, messageCount int) error
}
