package ledger

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"event_assistant/entity"
	"event_assistant/model"
	"event_assistant/pkg/tools"
	"event_assistant/repository/factory"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const cacheTTL = 10 * time.Minute

var (
	serviceOnce sync.Once
	instance    *Service
)

// Cache is the optional read-path cache. Nil disables caching entirely.
type Cache interface {
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Service owns the per-client conversation records. All mutations for one
// client are serialized through a per-client mutex on top of the row lock, so
// find-or-create cannot race into two records for the same client.
type Service struct {
	repositoryFactory factory.Factory
	cache             Cache
	locks             sync.Map // clientID -> *sync.Mutex
}

func NewService(repositoryFactory factory.Factory, cache Cache) *Service {
	serviceOnce.Do(func() {
		instance = &Service{
			repositoryFactory: repositoryFactory,
			cache:             cache,
		}
	})
	return instance
}

// ValidateClientID rejects empty identifiers and the literal "null"/
// "undefined" strings that upstream templating produces when the field is
// absent.
func ValidateClientID(clientID string) *model.Error {
	trimmed := strings.ToLower(strings.TrimSpace(clientID))
	if trimmed == "" || trimmed == "null" || trimmed == "undefined" {
		return model.NewError(model.ErrorMissingClientID, nil)
	}
	return nil
}

// UpsertTurn appends one turn to the client's record, creating the record on
// first contact. ChatID and Timestamp are assigned here; the caller's values
// are ignored.
func (s *Service) UpsertTurn(ctx context.Context, clientID string, turn model.ChatTurn) (*model.UpsertResult, *model.Error) {
	if err := ValidateClientID(clientID); err != nil {
		return nil, err
	}

	mu := s.lockFor(clientID)
	mu.Lock()
	defer mu.Unlock()

	turn.ChatID = uuid.NewString()
	turn.Timestamp = time.Now().UTC()

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "ledger upsert session for %s", clientID)
	if err := session.Begin(); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	repo, err := s.repositoryFactory.NewConversationRepository(session)
	if err != nil {
		_ = session.Rollback()
		return nil, model.NewError(model.ErrorDB, err)
	}

	record, err := repo.GetByClientIDForUpdate(clientID)
	if err != nil {
		_ = session.Rollback()
		return nil, model.NewError(model.ErrorDB, err)
	}

	var result *model.UpsertResult
	if record == nil {
		result, err = s.createRecord(repo, clientID, turn)
	} else {
		result, err = s.appendTurn(repo, record, turn)
	}
	if err != nil {
		_ = session.Rollback()
		return nil, model.NewError(model.ErrorDB, err)
	}

	if err := session.Commit(); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	s.dropCached(ctx, clientID)
	return result, nil
}

func (s *Service) createRecord(repo conversationWriter, clientID string, turn model.ChatTurn) (*model.UpsertResult, error) {
	messages, err := json.Marshal([]model.ChatTurn{turn})
	if err != nil {
		return nil, err
	}
	record := &entity.Conversation{
		ConversationID: uuid.NewString(),
		ClientID:       clientID,
		Messages:       string(messages),
		MessageCount:   1,
	}
	if err := repo.Insert(record); err != nil {
		return nil, err
	}
	return &model.UpsertResult{
		ConversationID: record.ConversationID,
		ChatID:         turn.ChatID,
		Operation:      model.OperationCreated,
		MessageCount:   1,
	}, nil
}

func (s *Service) appendTurn(repo conversationWriter, record *entity.Conversation, turn model.ChatTurn) (*model.UpsertResult, error) {
	turns, err := decodeTurns(record.Messages)
	if err != nil {
		return nil, err
	}
	turns = append(turns, turn)
	messages, err := json.Marshal(turns)
	if err != nil {
		return nil, err
	}
	if err := repo.UpdateMessages(record.ID, string(messages), len(turns)); err != nil {
		return nil, err
	}
	return &model.UpsertResult{
		ConversationID: record.ConversationID,
		ChatID:         turn.ChatID,
		Operation:      model.OperationUpdated,
		MessageCount:   len(turns),
	}, nil
}

// GetConversation returns the full ordered turn list. Absence is a normal
// result, not an error.
func (s *Service) GetConversation(ctx context.Context, clientID string, includeRaw bool) (*model.ConversationResponse, *model.Error) {
	if err := ValidateClientID(clientID); err != nil {
		return nil, err
	}

	if resp := s.getCached(ctx, clientID, includeRaw); resp != nil {
		return resp, nil
	}

	// the load-then-fill runs under the client's mutex so a concurrent upsert
	// cannot invalidate between our read and our cache write, which would
	// pin a stale snapshot for the full TTL
	mu := s.lockFor(clientID)
	mu.Lock()
	defer mu.Unlock()

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "ledger read session for %s", clientID)

	repo, err := s.repositoryFactory.NewConversationRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	record, err := repo.GetByClientID(clientID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if record == nil {
		return &model.ConversationResponse{
			Found:    false,
			ClientID: clientID,
			Messages: []model.ChatTurn{},
		}, nil
	}

	turns, err := decodeTurns(record.Messages)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	resp := &model.ConversationResponse{
		Found:          true,
		ClientID:       clientID,
		ConversationID: record.ConversationID,
		MessageCount:   record.MessageCount,
		Messages:       turns,
	}
	s.setCached(ctx, clientID, resp)
	if !includeRaw {
		stripRawResults(resp)
	}
	return resp, nil
}

// conversationWriter is the slice of the repository the write paths use.
type conversationWriter interface {
	Insert(data *entity.Conversation) error
	UpdateMessages(id int64, messages string, messageCount int) error
}

func (s *Service) lockFor(clientID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(clientID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func decodeTurns(messages string) ([]model.ChatTurn, error) {
	if messages == "" {
		return []model.ChatTurn{}, nil
	}
	var turns []model.ChatTurn
	if err := json.Unmarshal([]byte(messages), &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

func stripRawResults(resp *model.ConversationResponse) {
	for i := range resp.Messages {
		resp.Messages[i].RawResults = nil
	}
}

func cacheKey(clientID string) string {
	return "event_assistant:conversation:" + clientID
}

func (s *Service) getCached(ctx context.Context, clientID string, includeRaw bool) *model.ConversationResponse {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.GetString(ctx, cacheKey(clientID))
	if err != nil || payload == "" {
		return nil
	}
	var resp model.ConversationResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		log.Warnf("dropping undecodable cached conversation for %s: %v", clientID, err)
		return nil
	}
	if !includeRaw {
		stripRawResults(&resp)
	}
	return &resp
}

func (s *Service) setCached(ctx context.Context, clientID string, resp *model.ConversationResponse) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.SetString(ctx, cacheKey(clientID), string(payload), cacheTTL); err != nil {
		log.Warnf("conversation cache write failed for %s: %v", clientID, err)
	}
}

func (s *Service) dropCached(ctx context.Context, clientID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey(clientID)); err != nil {
		log.Warnf("conversation cache invalidation failed for %s: %v", clientID, err)
	}
}
