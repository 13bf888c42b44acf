package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFirstJSONObject(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"prose around", "Sure, here you go:\n{\"query_type\":\"events\"}\nHope that helps!", `{"query_type":"events"}`, true},
		{"markdown fence", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"nested objects", `{"a":{"b":{"c":1}}} trailing`, `{"a":{"b":{"c":1}}}`, true},
		{"braces inside strings", `{"a":"}{"}`, `{"a":"}{"}`, true},
		{"escaped quotes", `{"a":"say \"hi\" {now}"}`, `{"a":"say \"hi\" {now}"}`, true},
		{"no object", "just some text", "", false},
		{"unbalanced", `{"a":1`, "", false},
		{"empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractFirstJSONObject(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractFirstJSONObjectTakesFirst(t *testing.T) {
	got, ok := ExtractFirstJSONObject(`{"first":1} {"second":2}`)
	assert.True(t, ok)
	assert.Equal(t, `{"first":1}`, got)
}
