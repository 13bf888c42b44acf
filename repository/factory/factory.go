package factory

import (
	"context"

	"event_assistant/repository"
	"event_assistant/repository/interfaces"
)

type Factory interface {
	NewSession(ctx context.Context) interfaces.Session
	NewConversationRepository(session interfaces.Session) (repository.ConversationRepository, error)
}
