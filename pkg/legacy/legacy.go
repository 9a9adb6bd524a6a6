// Package legacy defines the wire types of the legacy APIS REST API.
//
// Detail endpoints return loosely structured JSON objects; those are
// handled as map[string]any payloads with the accessor helpers below.
// Only the envelopes with a fixed shape (paginated lists, vocabulary
// terms, relation type stubs) get concrete types.
package legacy

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Payload is a decoded JSON object from a detail endpoint.
type Payload = map[string]any

// Page is the envelope of the paginated list endpoints.
type Page struct {
	Count   int       `json:"count"`
	Next    *string   `json:"next"`
	Results []Payload `json:"results"`
}

// VocabTerm is one node of the hierarchical relation-type vocabulary.
type VocabTerm struct {
	ID          int          `json:"id"`
	URL         string       `json:"url"`
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	NameReverse string       `json:"name_reverse"`
	ParentClass *VocabParent `json:"parent_class"`
}

// VocabParent is the parent pointer inside a vocabulary term.
type VocabParent struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// DisplayLabel returns the label of a term, falling back to its name.
func (t VocabTerm) DisplayLabel() string {
	if t.Label != "" {
		return t.Label
	}
	return t.Name
}

// Str returns the string value under key, or "" when absent or not
// a string.
func Str(p Payload, key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

// Int returns the numeric value under key. JSON numbers decode as
// float64; string digits are accepted too since the legacy API is not
// consistent about id types. Returns 0 when absent or unparseable.
func Int(p Payload, key string) int {
	switch v := p[key].(type) {
	case float64:
		return int(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	case int:
		return v
	}
	return 0
}

// Map returns the nested object under key, or nil.
func Map(p Payload, key string) Payload {
	if v, ok := p[key].(map[string]any); ok {
		return v
	}
	return nil
}

// List returns the array value under key, or nil.
func List(p Payload, key string) []any {
	if v, ok := p[key].([]any); ok {
		return v
	}
	return nil
}

// MapList returns the array of objects under key, skipping non-object
// elements.
func MapList(p Payload, key string) []Payload {
	var res []Payload
	for _, v := range List(p, key) {
		if m, ok := v.(map[string]any); ok {
			res = append(res, m)
		}
	}
	return res
}

// ToString renders any scalar payload value as a string.
func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
