package intent

import (
	"context"
	"encoding/json"
	"strings"

	"event_assistant/constant"
	"event_assistant/model"

	log "github.com/sirupsen/logrus"
)

// Completer is the slice of the chat-model client the classifier needs.
type Completer interface {
	CompleteWithSystem(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

type Classifier struct {
	llm      Completer
	defaults Defaults
}

func NewClassifier(llm Completer, defaults Defaults) *Classifier {
	return &Classifier{llm: llm, defaults: defaults}
}

// Classify resolves a request to an intent. It never fails: when every stage
// comes up empty the message is treated as a broad events query with default
// pagination.
func (c *Classifier) Classify(ctx context.Context, req *model.ChatRequest) *model.ClassifiedIntent {
	message := strings.TrimSpace(req.Message)

	// a structured body without a message is already an events query, no
	// language understanding needed
	if message == "" && req.HasStructuredFilters() {
		return &model.ClassifiedIntent{
			Type:         model.IntentEvents,
			OriginalText: message,
			Filters:      c.filtersFromRequest(req),
		}
	}

	lower := strings.ToLower(message)

	if kind, ok := keywordIntent(lower); ok {
		return &model.ClassifiedIntent{Type: kind, OriginalText: message}
	}

	intent := c.classifyWithModel(ctx, message)

	// keywords outrank the model when both have an opinion
	if kind, ok := keywordIntent(lower); ok {
		intent.Type = kind
	}
	if intent.Type != model.IntentEvents {
		intent.Filters = nil
	} else if len(req.Query) > 0 {
		// an explicit override query wins even on the language path
		intent.Filters.RawQuery = model.ParseRawDocument(req.Query)
	}
	return intent
}

func (c *Classifier) classifyWithModel(ctx context.Context, message string) *model.ClassifiedIntent {
	fallback := &model.ClassifiedIntent{
		Type:         model.IntentEvents,
		OriginalText: message,
		Filters:      EmptyFilterSet(c.defaults),
	}
	if c.llm == nil {
		return fallback
	}

	content, err := c.llm.CompleteWithSystem(ctx, constant.ClassifySystemPrompt, message)
	if err != nil {
		log.Warnf("classification completion failed, falling back to events: %v", err)
		return fallback
	}
	payload, ok := ExtractFirstJSONObject(content)
	if !ok {
		log.Warnf("no JSON object in classification output, falling back to events")
		return fallback
	}
	var raw RawFilters
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		log.Warnf("malformed classification JSON, falling back to events: %v", err)
		return fallback
	}

	return &model.ClassifiedIntent{
		Type:         parseIntentType(raw.QueryType),
		OriginalText: message,
		Filters:      ExtractFilters(&raw, nil, c.defaults),
	}
}

func (c *Classifier) filtersFromRequest(req *model.ChatRequest) *model.EventFilterSet {
	raw := RawFilters{
		Status:           req.Status,
		ResolutionStatus: req.ResolutionStatus,
		AdminClientID:    req.AdminClientID,
		ViewerClientID:   req.ViewerClientID,
		CameraDetailID:   req.CameraDetailID,
		DateRange:        req.DateRange,
		FromDate:         req.FromDate,
		ToDate:           req.ToDate,
		Size:             req.Size,
		From:             req.From,
		SortField:        req.SortField,
		SortOrder:        req.SortOrder,
	}
	var override *model.RawDocument
	if len(req.Query) > 0 {
		override = model.ParseRawDocument(req.Query)
	}
	return ExtractFilters(&raw, override, c.defaults)
}

func parseIntentType(s string) model.IntentType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(model.IntentGeneral):
		return model.IntentGeneral
	case string(model.IntentNvr):
		return model.IntentNvr
	case string(model.IntentVariphi):
		return model.IntentVariphi
	default:
		return model.IntentEvents
	}
}

// GeneralReplyFor picks the canned reply bucket for a general-intent message.
func GeneralReplyFor(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))
	switch {
	case matchTokenIn(lower, ThanksKeywords):
		return constant.GeneralReplyThanks
	case matchTokenIn(lower, ByeKeywords):
		return constant.GeneralReplyBye
	default:
		return constant.GeneralReplyGreeting
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// keywordIntent runs the keyword stages in precedence order. Variphi and NVR
// phrases are specific enough for plain containment; greeting words on short
// messages need whole-token matching so "hi" never fires inside "history".
func keywordIntent(lower string) (model.IntentType, bool) {
	switch {
	case containsAny(lower, VariphiKeywords):
		return model.IntentVariphi, true
	case containsAny(lower, NvrKeywords):
		return model.IntentNvr, true
	case generalMatch(lower):
		return model.IntentGeneral, true
	}
	return "", false
}

func generalMatch(lower string) bool {
	if len(lower) >= ShortMessageLength {
		return containsAny(lower, GeneralKeywords)
	}
	for _, kw := range GeneralKeywords {
		if containsWholeToken(lower, kw) {
			return true
		}
	}
	return false
}

// containsWholeToken reports whether kw occurs in lower bounded by the string
// edges, whitespace or punctuation, so "hi there" matches but "history" does
// not.
func containsWholeToken(lower, kw string) bool {
	for start := 0; start+len(kw) <= len(lower); {
		i := strings.Index(lower[start:], kw)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(kw)
		if (i == 0 || isTokenBoundary(lower[i-1])) &&
			(end == len(lower) || isTokenBoundary(lower[end])) {
			return true
		}
		start = i + 1
	}
	return false
}

func isTokenBoundary(c byte) bool {
	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
		return false
	}
	return true
}

func matchTokenIn(lower string, keywords map[string]bool) bool {
	for kw := range keywords {
		if containsWholeToken(lower, kw) {
			return true
		}
	}
	return false
}
