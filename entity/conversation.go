package entity

import "time"

const (
	TableNameConversations = "conversations"

	ConversationsFieldID             = "id"
	ConversationsFieldConversationID = "conversation_id"
	ConversationsFieldClientID       = "client_id"
	ConversationsFieldMessages       = "messages"
	ConversationsFieldMessageCount   = "message_count"
	ConversationsFieldCreatedAt      = "created_at"
	ConversationsFieldUpdatedAt      = "updated_at"
)

// Conversation is one row per distinct client_id (unique index). Messages is
// the ordered turn list stored as a JSONB string; append order is
// chronological order.
type Conversation struct {
	ID             int64     `xorm:"pk autoincr id" json:"id"`
	ConversationID string    `xorm:"conversation_id" json:"conversation_id"`
	ClientID       string    `xorm:"client_id unique" json:"client_id"`
	Messages       string    `xorm:"messages" json:"messages"`
	MessageCount   int       `xorm:"message_count" json:"message_count"`
	CreatedAt      time.Time `xorm:"created_at created" json:"created_at"`
	UpdatedAt      time.Time `xorm:"updated_at updated" json:"updated_at"`
}

func (e *Conversation) TableName() string {
	return TableNameConversations
}
