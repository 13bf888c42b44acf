package model

import "encoding/json"

// RawDocument holds a dynamically shaped JSON payload (override queries,
// stored raw search results). It is either a parsed object or the original
// text together with the parse error; callers must unwrap explicitly.
type RawDocument struct {
	parsed   map[string]interface{}
	raw      string
	parseErr error
}

// ParseRawDocument never fails: unparsable input is retained verbatim with
// its error so the decision of what to do with it stays with the caller.
func ParseRawDocument(data []byte) *RawDocument {
	if len(data) == 0 {
		return nil
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return &RawDocument{raw: string(data), parseErr: err}
	}
	return &RawDocument{parsed: obj}
}

func NewRawDocument(obj map[string]interface{}) *RawDocument {
	if obj == nil {
		return nil
	}
	return &RawDocument{parsed: obj}
}

// Object returns the parsed form. ok is false when parsing failed.
func (d *RawDocument) Object() (map[string]interface{}, bool) {
	if d == nil || d.parsed == nil {
		return nil, false
	}
	return d.parsed, true
}

func (d *RawDocument) ParseError() error {
	if d == nil {
		return nil
	}
	return d.parseErr
}

func (d *RawDocument) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	if d.parsed != nil {
		return json.Marshal(d.parsed)
	}
	// opaque form round-trips as a string so nothing is silently dropped
	return json.Marshal(d.raw)
}

func (d *RawDocument) UnmarshalJSON(data []byte) error {
	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err == nil {
		d.parsed = obj
		d.raw = ""
		d.parseErr = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed := ParseRawDocument([]byte(s))
		if parsed != nil {
			*d = *parsed
		}
		return nil
	}

	d.raw = string(data)
	return nil
}
