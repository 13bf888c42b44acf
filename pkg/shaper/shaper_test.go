package shaper

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"event_assistant/model"
	"event_assistant/pkg/clients/search"
	"event_assistant/pkg/clients/vectordb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeSearchNestedTotal(t *testing.T) {
	resp := &search.Response{
		Took: 12,
		Hits: search.HitsBlock{
			Total: map[string]interface{}{"value": float64(42), "relation": "eq"},
			Hits: []search.Hit{
				{ID: "e1", Source: map[string]interface{}{"status": "COMPLETED"}},
			},
		},
	}

	env := ShapeSearch(resp, nil)
	assert.Equal(t, int64(42), env.Total)
	assert.Equal(t, 12, env.TookMs)
	require.Len(t, env.Documents, 1)
	assert.Equal(t, "e1", env.Documents[0]["id"], "hit id is folded into the document")
}

func TestShapeSearchScalarTotal(t *testing.T) {
	resp := &search.Response{
		Hits: search.HitsBlock{Total: float64(7)},
	}
	env := ShapeSearch(resp, nil)
	assert.Equal(t, int64(7), env.Total)
	assert.Empty(t, env.Documents)
}

func TestEventsContextZeroHits(t *testing.T) {
	env := &model.SearchEnvelope{Total: 0}
	got := EventsContext("what happened", env, time.UTC)
	assert.Equal(t, "No events found for the given filters.", got)
}

func TestEventsContextCountingQuestion(t *testing.T) {
	env := &model.SearchEnvelope{
		Total:     120,
		Documents: []map[string]interface{}{{"id": "e1"}},
	}
	for _, q := range []string{
		"how many events were there",
		"What is the total?",
		"give me the count",
		"number of detections yesterday",
	} {
		got := EventsContext(q, env, time.UTC)
		assert.Equal(t, "Total matching events: 120.", got, "question %q", q)
	}
}

func TestEventsContextSummaries(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	env := &model.SearchEnvelope{
		Total: 1,
		Documents: []map[string]interface{}{{
			"id":                "e1",
			"capture_time":      "2026-08-30T18:30:00Z",
			"status":            "COMPLETED",
			"resolution_status": "RESOLVED",
			"labelled_by":       "annotator-2",
			"camera_details":    map[string]interface{}{"name": "Gate Cam", "location": "north gate"},
			"annotations": []interface{}{
				map[string]interface{}{"label": "person"},
				"vehicle",
			},
		}},
	}

	got := EventsContext("show events", env, loc)
	assert.Contains(t, got, "Event e1")
	// 18:30 UTC is 00:00 next day in Kolkata
	assert.Contains(t, got, "2026-08-31 00:00:00")
	assert.Contains(t, got, "2026-08-30T18:30:00Z UTC")
	assert.Contains(t, got, "status COMPLETED")
	assert.Contains(t, got, "resolution RESOLVED")
	assert.Contains(t, got, "camera: Gate Cam, north gate")
	assert.Contains(t, got, "labelled by: annotator-2")
	assert.Contains(t, got, "annotation: person")
	assert.Contains(t, got, "annotation: vehicle")
}

func TestEventsContextCapsSummariesAndAnnotations(t *testing.T) {
	docs := make([]map[string]interface{}, 20)
	annotations := make([]interface{}, 10)
	for i := range annotations {
		annotations[i] = fmt.Sprintf("a%d", i)
	}
	for i := range docs {
		docs[i] = map[string]interface{}{
			"id":          fmt.Sprintf("e%d", i),
			"annotations": annotations,
		}
	}
	env := &model.SearchEnvelope{Total: 200, Documents: docs}

	got := EventsContext("show events", env, time.UTC)
	assert.Equal(t, 15, strings.Count(got, "- Event "))
	assert.Contains(t, got, "...and 185 more events not listed.")
	assert.NotContains(t, got, "annotation: a3")
	assert.Equal(t, 15*3, strings.Count(got, "annotation:"))
}

func TestDocsContextTruncation(t *testing.T) {
	long := strings.Repeat("x", 500)
	results := []vectordb.Result{
		{Document: long, Metadata: map[string]interface{}{"category": "streaming", "topic": "rtsp"}},
		{Document: "short doc"},
	}

	got := DocsContext(model.IntentNvr, results)
	assert.Contains(t, got, "1. "+strings.Repeat("x", 300)+"...")
	assert.Contains(t, got, "(category: streaming, topic: rtsp)")
	assert.Contains(t, got, "2. short doc")
}

func TestDocsContextCapsAtThree(t *testing.T) {
	results := make([]vectordb.Result, 5)
	for i := range results {
		results[i] = vectordb.Result{Document: fmt.Sprintf("doc %d", i)}
	}
	got := DocsContext(model.IntentVariphi, results)
	assert.Contains(t, got, "3. doc 2")
	assert.NotContains(t, got, "doc 3")
}

func TestDocsContextNothingFound(t *testing.T) {
	assert.Equal(t, "No NVR documentation matched the question.", DocsContext(model.IntentNvr, nil))
	assert.Equal(t, "No Variphi information matched the question.", DocsContext(model.IntentVariphi, nil))
}
