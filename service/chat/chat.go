package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"event_assistant/config"
	"event_assistant/constant"
	"event_assistant/model"
	"event_assistant/pkg/clients/embedding"
	"event_assistant/pkg/clients/llm_model"
	"event_assistant/pkg/clients/search"
	"event_assistant/pkg/clients/vectordb"
	"event_assistant/pkg/esquery"
	"event_assistant/pkg/intent"
	"event_assistant/pkg/shaper"
	"event_assistant/pkg/timeutil"
	"event_assistant/repository/factory"
	"event_assistant/service/ledger"

	log "github.com/sirupsen/logrus"
)

var (
	serviceOnce sync.Once
	instance    *Service
)

// Service runs the full message pipeline: classify, query the right backend,
// shape the results, generate the reply, record the turn.
type Service struct {
	ledgerService *ledger.Service
	classifier    *intent.Classifier
	llmClient     *llm_model.ClientChatModel
	searchClient  *search.Client
	vectorClient  *vectordb.Client

	timezone string
	location *time.Location
}

func NewService(repositoryFactory factory.Factory, ledgerService *ledger.Service) *Service {
	serviceOnce.Do(func() {
		cfg := config.GetInstance()
		timezone := cfg.GetStringOrDefault(config.AppTimezone, constant.DefaultDisplayTimezone)
		defaults := intent.Defaults{
			Size:      cfg.GetIntOrDefault(config.SearchDefaultSize, constant.DefaultEventsSize),
			From:      constant.DefaultEventsFrom,
			SortField: cfg.GetStringOrDefault(config.SearchSortField, constant.DefaultEventsSortField),
			SortOrder: cfg.GetStringOrDefault(config.SearchSortOrder, constant.DefaultEventsSortOrder),
			DateField: cfg.GetStringOrDefault(config.SearchDateField, constant.DefaultEventsDateField),
		}

		llmClient := llm_model.GetInstance()
		instance = &Service{
			ledgerService: ledgerService,
			classifier:    intent.NewClassifier(llmClient, defaults),
			llmClient:     llmClient,
			searchClient:  search.GetInstance(),
			vectorClient:  vectordb.GetInstance(),
			timezone:      timezone,
			location:      timeutil.DisplayLocation(timezone),
		}
	})
	return instance
}

// Chat processes one message end to end. The turn is recorded even when
// response generation fell back to the apology reply; only backend and
// storage failures abort the request.
func (s *Service) Chat(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, *model.Error) {
	if err := ledger.ValidateClientID(req.ClientID); err != nil {
		return nil, err
	}

	ci := s.classifier.Classify(ctx, req)

	var (
		answer     string
		envelope   *model.SearchEnvelope
		rawResults *model.RawDocument
		svcErr     *model.Error
	)
	switch ci.Type {
	case model.IntentGeneral:
		answer = intent.GeneralReplyFor(ci.OriginalText)
	case model.IntentNvr, model.IntentVariphi:
		answer, svcErr = s.semanticAnswer(ctx, ci)
	default:
		answer, envelope, rawResults, svcErr = s.eventsAnswer(ctx, ci)
	}
	if svcErr != nil {
		return nil, svcErr
	}

	turn := model.ChatTurn{
		UserMessage:       ci.OriginalText,
		AssistantResponse: answer,
		QueryType:         string(ci.Type),
		RawResults:        rawResults,
	}
	upsert, svcErr := s.ledgerService.UpsertTurn(ctx, req.ClientID, turn)
	if svcErr != nil {
		return nil, svcErr
	}

	return &model.ChatResponse{
		Response:       answer,
		QueryType:      string(ci.Type),
		ConversationID: upsert.ConversationID,
		ChatID:         upsert.ChatID,
		Operation:      upsert.Operation,
		MessageCount:   upsert.MessageCount,
		Search:         envelope,
	}, nil
}

// GetConversation exposes the ledger read path.
func (s *Service) GetConversation(ctx context.Context, clientID string, includeRaw bool) (*model.ConversationResponse, *model.Error) {
	return s.ledgerService.GetConversation(ctx, clientID, includeRaw)
}

// semanticAnswer serves the nvr/variphi intents from the vector store.
func (s *Service) semanticAnswer(ctx context.Context, ci *model.ClassifiedIntent) (string, *model.Error) {
	embeddingClient, err := embedding.GetInstance()
	if err != nil {
		return "", model.NewError(model.ErrorBackendUnavailable, err)
	}
	vector, err := embeddingClient.GetTextEmbedding(ctx, ci.OriginalText)
	if err != nil {
		return "", model.NewError(model.ErrorBackendUnavailable, err)
	}

	cfg := config.GetInstance()
	collection := cfg.GetStringOrDefault(config.ChromaNvrCollection, "nvr_streaming_recording")
	if ci.Type == model.IntentVariphi {
		collection = cfg.GetStringOrDefault(config.ChromaVariphiCollection, "variphi")
	}
	topK := cfg.GetIntOrDefault(config.ChromaTopK, constant.DefaultVectorTopK)

	results, err := s.vectorClient.Query(ctx, collection, vector, topK, nil)
	if err != nil {
		return "", model.NewError(model.ErrorBackendUnavailable, err)
	}

	return s.generate(ctx, ci.OriginalText, shaper.DocsContext(ci.Type, results)), nil
}

// eventsAnswer builds and runs the structured query, then narrates the shaped
// results.
func (s *Service) eventsAnswer(ctx context.Context, ci *model.ClassifiedIntent) (string, *model.SearchEnvelope, *model.RawDocument, *model.Error) {
	query, err := esquery.Build(ci.Filters, s.timezone)
	if err != nil {
		return "", nil, nil, model.NewError(model.ErrorMalformedOverrideQuery, err)
	}

	resp, err := s.searchClient.Search(ctx, s.searchClient.DefaultIndex(), query)
	if err != nil {
		return "", nil, nil, model.NewError(model.ErrorBackendUnavailable, err)
	}

	envelope := shaper.ShapeSearch(resp, query)
	answer := s.generate(ctx, ci.OriginalText, shaper.EventsContext(ci.OriginalText, envelope, s.location))

	return answer, envelope, envelopeDocument(envelope), nil
}

// generate turns a context block into the final reply. A completion failure
// is recovered locally with the apology reply; search already succeeded, so
// the turn still counts.
func (s *Service) generate(ctx context.Context, question, contextBlock string) string {
	userPrompt := fmt.Sprintf(constant.AnswerUserPromptTemplate, question, contextBlock)
	answer, err := s.llmClient.CompleteWithSystem(ctx, constant.AnswerSystemPrompt, userPrompt)
	if err != nil || answer == "" {
		log.Warnf("response generation failed, using apology reply: %v", err)
		return constant.ApologyReply
	}
	return answer
}

// envelopeDocument snapshots the envelope for the conversation record.
func envelopeDocument(envelope *model.SearchEnvelope) *model.RawDocument {
	data, err := json.Marshal(envelope)
	if err != nil {
		log.Warnf("search envelope snapshot failed: %v", err)
		return nil
	}
	return model.ParseRawDocument(data)
}
