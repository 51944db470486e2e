package format

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// The service is loose about scalar types: ids arrive as numbers or strings,
// flags as booleans, 0/1 or "0"/"1". These helpers coerce decoded JSON values
// the way the service's own clients read them.

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "1"
		}
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

func toInt(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return floatToInt(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		if f, err := t.Float64(); err == nil {
			return floatToInt(f)
		}
		return 0
	case string:
		return parseLeadingInt(t)
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func floatToInt(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// parseLeadingInt reads the numeric prefix of s: "12" and "12abc" give 12,
// "1.9" gives 1, anything else 0.
func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return floatToInt(f)
	}

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func toBool(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "0"
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func optString(m map[string]any, key string) *string {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	s := toString(v)
	return &s
}

func optInt(m map[string]any, key string) *int {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	n := toInt(v)
	return &n
}

func optBool(m map[string]any, key string) *bool {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	b := toBool(v)
	return &b
}

// first returns the first key of keys present with a non-null value.
func first(m map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringOr(m map[string]any, def string, keys ...string) string {
	if v, ok := first(m, keys...); ok {
		return toString(v)
	}
	return def
}

func object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// freeForm turns a JSON object or array into a key/value map. Arrays are keyed
// by their index.
func freeForm(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case []any:
		out := make(map[string]any, len(t))
		for i, item := range t {
			out[strconv.Itoa(i)] = item
		}
		return out
	default:
		return nil
	}
}
