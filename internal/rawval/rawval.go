// Package rawval provides helpers for working with the neutral value trees
// produced by decoding schema YAML files: nested map[string]any, []any and
// scalar values. The loader and the dependency scanner both operate on this
// shape before (or instead of) the typed model.
package rawval

// Value is any decoded YAML value: a map, a slice, or a scalar.
type Value = any

// AsMap returns v as a string-keyed map. yaml.v3 decodes mappings as
// map[string]any when the keys are strings, which is the only key shape the
// export format uses.
func AsMap(v Value) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// AsSlice returns v as a slice.
func AsSlice(v Value) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// AsString returns v as a string.
func AsString(v Value) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// String returns the string stored under key, or "" when the key is absent
// or holds a non-string value.
func String(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// Bool returns the bool stored under key, defaulting to false.
func Bool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

// Int returns the int stored under key. yaml.v3 decodes integers as int.
func Int(m map[string]any, key string) (int, bool) {
	switch n := m[key].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// Map returns the nested map stored under key, or nil.
func Map(m map[string]any, key string) map[string]any {
	nested, _ := m[key].(map[string]any)
	return nested
}

// Slice returns the nested slice stored under key, or nil.
func Slice(m map[string]any, key string) []any {
	s, _ := m[key].([]any)
	return s
}

// FirstNonEmpty returns the first non-empty string value found under the
// given keys. Useful for caption/name/id display fallbacks.
func FirstNonEmpty(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := String(m, k); s != "" {
			return s
		}
	}
	return ""
}

// FindKey walks v recursively and collects every value stored under key, at
// any nesting depth up to maxDepth. The depth cap guards against malformed
// or pathological input; values below the cap are silently ignored rather
// than treated as an error, since deep scans are advisory.
func FindKey(v Value, key string, maxDepth int) []Value {
	var out []Value
	findKey(v, key, maxDepth, &out)
	return out
}

func findKey(v Value, key string, depth int, out *[]Value) {
	if depth < 0 {
		return
	}
	switch node := v.(type) {
	case map[string]any:
		if val, ok := node[key]; ok {
			*out = append(*out, val)
		}
		for _, child := range node {
			findKey(child, key, depth-1, out)
		}
	case []any:
		for _, child := range node {
			findKey(child, key, depth-1, out)
		}
	}
}
