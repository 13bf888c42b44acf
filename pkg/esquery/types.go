package esquery

import (
	"encoding/json"

	"event_assistant/model"
)

// RangeClause is a half-open range predicate on a single field. Gte/Lt hold
// either date-math expressions or RFC3339 timestamps; TimeZone pins how the
// backend resolves "now".
type RangeClause struct {
	Gte      string `json:"gte,omitempty"`
	Lt       string `json:"lt,omitempty"`
	Lte      string `json:"lte,omitempty"`
	TimeZone string `json:"time_zone,omitempty"`
}

// Clause is one entry of the conjunctive filter list. Exactly one member is
// populated per instance.
type Clause struct {
	Term  map[string]string      `json:"term,omitempty"`
	Range map[string]RangeClause `json:"range,omitempty"`
	Bool  *BoolClause            `json:"bool,omitempty"`
}

// BoolClause carries the inclusive-OR subgroup for client scoping.
type BoolClause struct {
	Should             []Clause `json:"should"`
	MinimumShouldMatch int      `json:"minimum_should_match"`
}

type boolQuery struct {
	Filter []Clause `json:"filter"`
}

type queryBody struct {
	Bool     *boolQuery             `json:"bool,omitempty"`
	MatchAll map[string]interface{} `json:"match_all,omitempty"`
}

// Query is the backend-ready body. When Raw is set the built fields are
// ignored and the override serializes verbatim.
type Query struct {
	Raw *model.RawDocument

	QueryPart queryBody
	Size      int
	From      int
	Sort      []map[string]map[string]string
}

type builtBody struct {
	Query queryBody                      `json:"query"`
	Size  int                            `json:"size"`
	From  int                            `json:"from"`
	Sort  []map[string]map[string]string `json:"sort"`
}

func (q *Query) MarshalJSON() ([]byte, error) {
	if q.Raw != nil {
		return json.Marshal(q.Raw)
	}
	return json.Marshal(builtBody{
		Query: q.QueryPart,
		Size:  q.Size,
		From:  q.From,
		Sort:  q.Sort,
	})
}

func termClause(field, value string) Clause {
	return Clause{Term: map[string]string{field: value}}
}
