// Package normalize converts the backend's inconsistent JSON envelopes
// into the one shape each consumer expects. Every function is pure and
// total: malformed input degrades to an empty or default value, it never
// panics. Normalizing an already-normalized value returns it unchanged.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Meta is the canonical paging header.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Paged is the canonical paginated envelope: data is never nil.
type Paged struct {
	Meta Meta  `json:"meta"`
	Data []any `json:"data"`
}

// Object unwraps a single-object payload: the value itself, x.data, or
// x.user, whichever is present first. Returns nil when nothing matches.
func Object(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	if inner, ok := m["data"].(map[string]any); ok {
		return inner
	}
	if inner, ok := m["user"].(map[string]any); ok {
		return inner
	}
	return m
}

// List unwraps a list payload: a bare array, x.data, x.data.data,
// x.results, or x.items, first array found wins. Never returns nil.
func List(v any) []any {
	if arr, ok := v.([]any); ok {
		return arr
	}
	m, ok := v.(map[string]any)
	if !ok {
		return []any{}
	}
	if arr, ok := m["data"].([]any); ok {
		return arr
	}
	if inner, ok := m["data"].(map[string]any); ok {
		if arr, ok := inner["data"].([]any); ok {
			return arr
		}
	}
	if arr, ok := m["results"].([]any); ok {
		return arr
	}
	if arr, ok := m["items"].([]any); ok {
		return arr
	}
	return []any{}
}

// PagedEnvelope coerces any of the observed paged shapes into Paged:
// the canonical {meta,data}, the double-wrapped {data:{meta,data}}, or a
// bare array (synthesized as a single page). Anything else yields the
// default empty envelope built from page and limit.
func PagedEnvelope(v any, page, limit int) Paged {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	if arr, ok := v.([]any); ok {
		return Paged{
			Meta: Meta{Page: 1, Limit: len(arr), Total: len(arr), TotalPages: 1},
			Data: arr,
		}
	}

	if m, ok := v.(map[string]any); ok {
		if p, ok := pagedFromMap(m); ok {
			return p
		}
		if inner, ok := m["data"].(map[string]any); ok {
			if p, ok := pagedFromMap(inner); ok {
				return p
			}
		}
	}

	return Paged{
		Meta: Meta{Page: page, Limit: limit, Total: 0, TotalPages: 1},
		Data: []any{},
	}
}

func pagedFromMap(m map[string]any) (Paged, bool) {
	meta, hasMeta := m["meta"].(map[string]any)
	data, hasData := m["data"].([]any)
	if !hasMeta || !hasData {
		return Paged{}, false
	}

	p := Paged{
		Meta: Meta{
			Page:       intField(meta, "page", 1),
			Limit:      intField(meta, "limit", len(data)),
			Total:      intField(meta, "total", len(data)),
			TotalPages: intField(meta, "total_pages", 1),
		},
		Data: data,
	}
	if p.Meta.TotalPages < 1 {
		p.Meta.TotalPages = 1
	}
	return p, true
}

func intField(m map[string]any, key string, def int) int {
	switch n := m[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	return def
}

// separator between flattened validation errors.
const sep = " • "

// ErrorMessage flattens a backend error detail into one human-readable
// string. The detail may be a plain string, one validation error object
// ({loc,msg}), or an array of them; the first loc segment names the
// request body root and is dropped.
func ErrorMessage(detail any) string {
	switch d := detail.(type) {
	case nil:
		return ""
	case string:
		return d
	case []any:
		parts := make([]string, 0, len(d))
		for _, x := range d {
			if s := ErrorMessage(x); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, sep)
	case map[string]any:
		return formatValidation(d)
	default:
		return fmt.Sprintf("%v", d)
	}
}

func formatValidation(m map[string]any) string {
	loc := ""
	if rawLoc, ok := m["loc"].([]any); ok {
		segs := make([]string, 0, len(rawLoc))
		for i, s := range rawLoc {
			if i == 0 {
				continue // request body root
			}
			segs = append(segs, fmt.Sprintf("%v", s))
		}
		loc = strings.Join(segs, ".")
	} else if rawLoc, ok := m["loc"]; ok && rawLoc != nil {
		loc = fmt.Sprintf("%v", rawLoc)
	}

	msg := ""
	if rawMsg, ok := m["msg"]; ok && rawMsg != nil {
		msg = fmt.Sprintf("%v", rawMsg)
	} else if b, err := json.Marshal(m); err == nil {
		msg = string(b)
	}

	if loc != "" {
		return loc + ": " + msg
	}
	return msg
}

// Message extracts a display message from a decoded error body, looking
// at detail then message, falling back to the supplied default.
func Message(body any, fallback string) string {
	if m, ok := body.(map[string]any); ok {
		if s := ErrorMessage(m["detail"]); s != "" {
			return s
		}
		if s := ErrorMessage(m["message"]); s != "" {
			return s
		}
	}
	if s, ok := body.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}
