package ledger

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"event_assistant/entity"
	"event_assistant/model"
	"event_assistant/repository"
	"event_assistant/repository/factory"
	"event_assistant/repository/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// in-memory repository stand-in

type fakeStore struct {
	mu      sync.Mutex
	records map[string]*entity.Conversation
	nextID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]*entity.Conversation{}}
}

type fakeSession struct{}

func (s *fakeSession) Begin() error    { return nil }
func (s *fakeSession) Close() error    { return nil }
func (s *fakeSession) Commit() error   { return nil }
func (s *fakeSession) Rollback() error { return nil }

type fakeRepo struct {
	store *fakeStore
}

func (r *fakeRepo) GetByClientIDForUpdate(clientID string) (*entity.Conversation, error) {
	return r.GetByClientID(clientID)
}

func (r *fakeRepo) GetByClientID(clientID string) (*entity.Conversation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	record, ok := r.store.records[clientID]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (r *fakeRepo) Insert(data *entity.Conversation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.records[data.ClientID]; exists {
		return fmt.Errorf("duplicate key on client_id %s", data.ClientID)
	}
	r.store.nextID++
	data.ID = r.store.nextID
	copied := *data
	r.store.records[data.ClientID] = &copied
	return nil
}

func (r *fakeRepo) UpdateMessages(id int64, messages string, messageCount int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, record := range r.store.records {
		if record.ID == id {
			record.Messages = messages
			record.MessageCount = messageCount
			return nil
		}
	}
	return fmt.Errorf("conversation %d not found", id)
}

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) NewSession(ctx context.Context) interfaces.Session {
	return &fakeSession{}
}

func (f *fakeFactory) NewConversationRepository(session interfaces.Session) (repository.ConversationRepository, error) {
	return &fakeRepo{store: f.store}, nil
}

var _ factory.Factory = (*fakeFactory)(nil)

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (c *fakeCache) GetString(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	if !ok {
		return "", fmt.Errorf("cache miss")
	}
	return value, nil
}

func (c *fakeCache) SetString(ctx context.Context, key, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func newTestService(store *fakeStore) *Service {
	return newTestServiceWithCache(store, nil)
}

func newTestServiceWithCache(store *fakeStore, cache Cache) *Service {
	instance = nil
	serviceOnce = sync.Once{}
	return NewService(&fakeFactory{store: store}, cache)
}

func turn(message string) model.ChatTurn {
	return model.ChatTurn{
		UserMessage:       message,
		AssistantResponse: "ok",
		QueryType:         "events",
	}
}

func TestUpsertTurnCreatesThenUpdates(t *testing.T) {
	s := newTestService(newFakeStore())
	ctx := context.Background()

	first, svcErr := s.UpsertTurn(ctx, "client-123", turn("one"))
	require.Nil(t, svcErr)
	assert.Equal(t, model.OperationCreated, first.Operation)
	assert.Equal(t, 1, first.MessageCount)
	assert.NotEmpty(t, first.ConversationID)
	assert.NotEmpty(t, first.ChatID)

	second, svcErr := s.UpsertTurn(ctx, "client-123", turn("two"))
	require.Nil(t, svcErr)
	assert.Equal(t, model.OperationUpdated, second.Operation)
	assert.Equal(t, 2, second.MessageCount)
	assert.Equal(t, first.ConversationID, second.ConversationID, "conversation id never changes")
	assert.NotEqual(t, first.ChatID, second.ChatID, "every turn gets a fresh chat id")

	resp, svcErr := s.GetConversation(ctx, "client-123", false)
	require.Nil(t, svcErr)
	assert.True(t, resp.Found)
	assert.Equal(t, 2, resp.MessageCount)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, "one", resp.Messages[0].UserMessage)
	assert.Equal(t, "two", resp.Messages[1].UserMessage)
	assert.False(t, resp.Messages[0].Timestamp.IsZero())
}

func TestUpsertTurnRejectsMissingClientID(t *testing.T) {
	store := newFakeStore()
	s := newTestService(store)
	ctx := context.Background()

	for _, clientID := range []string{"", "  ", "null", "NULL", "undefined"} {
		_, svcErr := s.UpsertTurn(ctx, clientID, turn("one"))
		require.NotNil(t, svcErr, "client id %q", clientID)
		assert.Equal(t, model.ErrorMissingClientID, svcErr.Code)
	}
	assert.Empty(t, store.records, "no record may be written on a rejected id")
}

func TestGetConversationAbsentIsNotAnError(t *testing.T) {
	s := newTestService(newFakeStore())

	resp, svcErr := s.GetConversation(context.Background(), "nobody", false)
	require.Nil(t, svcErr)
	assert.False(t, resp.Found)
	assert.Empty(t, resp.ConversationID)
	assert.Equal(t, 0, resp.MessageCount)
	assert.NotNil(t, resp.Messages)
	assert.Empty(t, resp.Messages)
}

func TestGetConversationRawResultsToggle(t *testing.T) {
	s := newTestService(newFakeStore())
	ctx := context.Background()

	withRaw := turn("one")
	withRaw.RawResults = model.ParseRawDocument([]byte(`{"total":3}`))
	_, svcErr := s.UpsertTurn(ctx, "client-123", withRaw)
	require.Nil(t, svcErr)

	stripped, svcErr := s.GetConversation(ctx, "client-123", false)
	require.Nil(t, svcErr)
	assert.Nil(t, stripped.Messages[0].RawResults)

	full, svcErr := s.GetConversation(ctx, "client-123", true)
	require.Nil(t, svcErr)
	require.NotNil(t, full.Messages[0].RawResults)
	obj, ok := full.Messages[0].RawResults.Object()
	require.True(t, ok)
	assert.Equal(t, float64(3), obj["total"])
}

func TestUpsertTurnInvalidatesCachedRead(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	s := newTestServiceWithCache(store, cache)
	ctx := context.Background()

	_, svcErr := s.UpsertTurn(ctx, "client-123", turn("one"))
	require.Nil(t, svcErr)

	first, svcErr := s.GetConversation(ctx, "client-123", false)
	require.Nil(t, svcErr)
	assert.Equal(t, 1, first.MessageCount)
	assert.Contains(t, cache.entries, cacheKey("client-123"), "read fills the cache")

	_, svcErr = s.UpsertTurn(ctx, "client-123", turn("two"))
	require.Nil(t, svcErr)
	assert.NotContains(t, cache.entries, cacheKey("client-123"), "upsert drops the snapshot")

	second, svcErr := s.GetConversation(ctx, "client-123", false)
	require.Nil(t, svcErr)
	assert.Equal(t, 2, second.MessageCount)
	require.Len(t, second.Messages, 2)
}

func TestGetConversationNeverServesStaleSnapshot(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	s := newTestServiceWithCache(store, cache)
	ctx := context.Background()

	_, svcErr := s.UpsertTurn(ctx, "client-123", turn("one"))
	require.Nil(t, svcErr)

	// a concurrent read racing the upsert must not pin its pre-append
	// snapshot past the upsert's invalidation
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, readErr := s.GetConversation(ctx, "client-123", false)
		assert.Nil(t, readErr)
	}()
	go func() {
		defer wg.Done()
		_, writeErr := s.UpsertTurn(ctx, "client-123", turn("two"))
		assert.Nil(t, writeErr)
	}()
	wg.Wait()

	resp, svcErr := s.GetConversation(ctx, "client-123", false)
	require.Nil(t, svcErr)
	assert.Equal(t, 2, resp.MessageCount, "a finished upsert must be visible to the next read")
}

func TestUpsertTurnConcurrentSameClient(t *testing.T) {
	store := newFakeStore()
	s := newTestService(store)
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, svcErr := s.UpsertTurn(ctx, "client-123", turn(fmt.Sprintf("msg-%d", i)))
			assert.Nil(t, svcErr)
		}(i)
	}
	wg.Wait()

	require.Len(t, store.records, 1, "concurrent upserts must not create a second record")
	resp, svcErr := s.GetConversation(ctx, "client-123", false)
	require.Nil(t, svcErr)
	assert.Equal(t, n, resp.MessageCount)
	assert.Len(t, resp.Messages, n)
}
