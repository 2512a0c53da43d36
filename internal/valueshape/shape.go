// Package valueshape provides uniform access to JSON-object-like and
// JSON-array-like decoded values: key enumeration, key lookup, and
// list-vs-map discrimination. It has no knowledge of the schema AST or the
// rest of the engine.
package valueshape

import "sort"

// IsObject reports whether v decoded as a JSON object.
func IsObject(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// IsArray reports whether v decoded as a JSON array.
func IsArray(v any) bool {
	_, ok := v.([]any)
	return ok
}

// AsObject returns v as a map and whether the assertion succeeded.
func AsObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// AsArray returns v as a slice and whether the assertion succeeded.
func AsArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// Lookup fetches key from an object-like value. ok is false both when v is
// not an object and when the key is absent.
func Lookup(v any, key string) (value any, ok bool) {
	m, isObj := v.(map[string]any)
	if !isObj {
		return nil, false
	}
	value, ok = m[key]
	return value, ok
}

// SortedKeys returns an object's keys in sorted order, for deterministic
// iteration (schema declaration order is used instead where that matters;
// SortedKeys is for reporting, e.g. unknown-field diagnostics and type
// inference listings).
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsNull reports whether v is JSON null.
func IsNull(v any) bool {
	return v == nil
}
