package ioimport

import (
	"strings"

	"github.com/acdh-oeaw/minedb/pkg/legacy"
)

// fieldType drives the null-normalization pass: the target schema has
// non-null defaults for text columns, so nil becomes "" for text
// fields and only for those.
type fieldType int

const (
	textField fieldType = iota
	dateField
	boolField
	intField
	floatField
)

// fieldMap is one entry of a declarative field mapping. Old is the key
// in the legacy payload and may use the dotted "outer__inner" form to
// reach one level of nesting. New is the target field name; an empty
// New drops the field intentionally.
type fieldMap struct {
	Old  string
	New  string
	Type fieldType
}

// mapFields projects a legacy payload onto the target field names.
// Only keys that appear as a mapping target are retained: this is an
// allow-list projection, not a merge. After mapping, nil values of
// text-typed fields are normalized to "".
func mapFields(mapping []fieldMap, src legacy.Payload) legacy.Payload {
	out := make(legacy.Payload, len(mapping))
	for _, m := range mapping {
		if m.New == "" {
			continue
		}
		v, ok := lookupField(src, m.Old)
		if !ok {
			continue
		}
		out[m.New] = v
	}
	normalizeNulls(mapping, out)
	return out
}

// normalizeNulls replaces nil with "" for every text-typed target
// field, never for date, bool or numeric fields.
func normalizeNulls(mapping []fieldMap, fields legacy.Payload) {
	for _, m := range mapping {
		if m.New == "" || m.Type != textField {
			continue
		}
		if v, ok := fields[m.New]; ok && v == nil {
			fields[m.New] = ""
		}
	}
}

// lookupField reads a payload key, resolving the one-level dotted form.
func lookupField(src legacy.Payload, key string) (any, bool) {
	if outer, inner, found := strings.Cut(key, "__"); found {
		m := legacy.Map(src, outer)
		if m == nil {
			return nil, false
		}
		v, ok := m[inner]
		return v, ok
	}
	v, ok := src[key]
	return v, ok
}

// fieldStr returns a mapped field as a string.
func fieldStr(fields legacy.Payload, key string) string {
	return legacy.ToString(fields[key])
}

// fieldFloat returns a mapped field as a float pointer, nil when the
// value is absent or not numeric.
func fieldFloat(fields legacy.Payload, key string) *float64 {
	if v, ok := fields[key].(float64); ok {
		return &v
	}
	return nil
}
