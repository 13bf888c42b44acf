package search

// Response mirrors the backend's search reply loosely: total may be a bare
// number (older backends) or a {value, relation} object, so it stays untyped
// until the result shaper normalizes it.
type Response struct {
	Took         int                    `json:"took"`
	TimedOut     bool                   `json:"timed_out"`
	Hits         HitsBlock              `json:"hits"`
	Aggregations map[string]interface{} `json:"aggregations,omitempty"`
}

type HitsBlock struct {
	Total interface{} `json:"total"`
	Hits  []Hit       `json:"hits"`
}

type Hit struct {
	Index  string                 `json:"_index"`
	ID     string                 `json:"_id"`
	Score  *float64               `json:"_score"`
	Source map[string]interface{} `json:"_source"`
}
