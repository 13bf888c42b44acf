package shaper

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"event_assistant/constant"
	"event_assistant/model"
	"event_assistant/pkg/clients/search"
	"event_assistant/pkg/clients/vectordb"
	"event_assistant/pkg/str"
	"event_assistant/pkg/timeutil"

	"github.com/spf13/cast"
)

var countingQuestionPattern = regexp.MustCompile(`(?i)\b(how many|total|count|number of)\b`)

// ShapeSearch flattens a backend reply into the uniform envelope. Total
// arrives either as a bare number or a {value, relation} object depending on
// the backend version; both normalize to an int64.
func ShapeSearch(resp *search.Response, executedQuery interface{}) *model.SearchEnvelope {
	env := &model.SearchEnvelope{
		Documents:     make([]map[string]interface{}, 0, len(resp.Hits.Hits)),
		Total:         normalizeTotal(resp.Hits.Total),
		ExecutedQuery: executedQuery,
		TookMs:        resp.Took,
		Aggregations:  resp.Aggregations,
	}
	for _, hit := range resp.Hits.Hits {
		doc := hit.Source
		if doc == nil {
			doc = map[string]interface{}{}
		}
		if _, ok := doc["id"]; !ok && hit.ID != "" {
			doc["id"] = hit.ID
		}
		env.Documents = append(env.Documents, doc)
	}
	return env
}

func normalizeTotal(total interface{}) int64 {
	if obj, ok := total.(map[string]interface{}); ok {
		return cast.ToInt64(obj["value"])
	}
	return cast.ToInt64(total)
}

// EventsContext renders the envelope into the bounded context block fed to
// response generation. Counting questions get the total only; everything else
// gets per-record summaries capped at MaxEventSummaries.
func EventsContext(question string, env *model.SearchEnvelope, loc *time.Location) string {
	if env.Total == 0 {
		return "No events found for the given filters."
	}
	if countingQuestionPattern.MatchString(question) {
		return fmt.Sprintf("Total matching events: %d.", env.Total)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d matching events.\n", env.Total)

	shown := len(env.Documents)
	if shown > constant.MaxEventSummaries {
		shown = constant.MaxEventSummaries
	}
	for i := 0; i < shown; i++ {
		b.WriteString(summarizeEvent(env.Documents[i], loc))
	}
	if remaining := env.Total - int64(shown); remaining > 0 {
		fmt.Fprintf(&b, "...and %d more events not listed.\n", remaining)
	}
	return b.String()
}

// summarizeEvent reduces one document to the fields worth spending tokens on.
func summarizeEvent(doc map[string]interface{}, loc *time.Location) string {
	var b strings.Builder

	fmt.Fprintf(&b, "- Event %s", cast.ToString(doc["id"]))
	if t, ok := captureTime(doc); ok {
		fmt.Fprintf(&b, " captured %s (%s UTC)", timeutil.FormatInZone(t, loc), timeutil.FormatUTC(t))
	}
	if status := cast.ToString(doc["status"]); status != "" {
		fmt.Fprintf(&b, ", status %s", status)
	}
	if res := cast.ToString(doc["resolution_status"]); res != "" {
		fmt.Fprintf(&b, ", resolution %s", res)
	}
	b.WriteString("\n")

	if camera := cameraLine(doc); camera != "" {
		fmt.Fprintf(&b, "  camera: %s\n", camera)
	}
	if labeller := cast.ToString(doc["labelled_by"]); labeller != "" {
		fmt.Fprintf(&b, "  labelled by: %s\n", labeller)
	}
	for _, line := range annotationLines(doc) {
		fmt.Fprintf(&b, "  annotation: %s\n", line)
	}
	return b.String()
}

func captureTime(doc map[string]interface{}) (time.Time, bool) {
	raw := cast.ToString(doc["capture_time"])
	if raw == "" {
		return time.Time{}, false
	}
	t, err := timeutil.ParseFlexible(raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func cameraLine(doc map[string]interface{}) string {
	camera, ok := doc["camera_details"].(map[string]interface{})
	if !ok {
		return ""
	}
	parts := make([]string, 0, 2)
	if name := cast.ToString(camera["name"]); name != "" {
		parts = append(parts, name)
	}
	if location := cast.ToString(camera["location"]); location != "" {
		parts = append(parts, location)
	}
	return strings.Join(parts, ", ")
}

func annotationLines(doc map[string]interface{}) []string {
	raw, ok := doc["annotations"].([]interface{})
	if !ok {
		return nil
	}
	var lines []string
	for _, entry := range raw {
		if len(lines) == constant.MaxAnnotationEntries {
			break
		}
		switch v := entry.(type) {
		case string:
			lines = append(lines, v)
		case map[string]interface{}:
			if label := cast.ToString(v["label"]); label != "" {
				lines = append(lines, label)
			}
		}
	}
	return lines
}

// DocsContext renders ranked similarity results for the nvr/variphi intents.
// Content is truncated so a single verbose document cannot dominate the
// context budget.
func DocsContext(intentType model.IntentType, results []vectordb.Result) string {
	if len(results) == 0 {
		if intentType == model.IntentVariphi {
			return constant.VariphiNothingFound
		}
		return constant.NvrNothingFound
	}

	shown := len(results)
	if shown > constant.MaxDocResults {
		shown = constant.MaxDocResults
	}

	var b strings.Builder
	for i := 0; i < shown; i++ {
		r := results[i]
		fmt.Fprintf(&b, "%d. %s\n", i+1, str.Truncate(strings.TrimSpace(r.Document), constant.MaxDocContentChars))
		if meta := metadataLine(r.Metadata); meta != "" {
			fmt.Fprintf(&b, "   (%s)\n", meta)
		}
	}
	return b.String()
}

func metadataLine(metadata map[string]interface{}) string {
	parts := make([]string, 0, 2)
	if category := cast.ToString(metadata["category"]); category != "" {
		parts = append(parts, "category: "+category)
	}
	if topic := cast.ToString(metadata["topic"]); topic != "" {
		parts = append(parts, "topic: "+topic)
	}
	return strings.Join(parts, ", ")
}
