package models

import "encoding/json"

// JSONMap is a free-form JSON object. Columns holding one are tagged
// `type:jsonb;serializer:json`.
type JSONMap map[string]interface{}

// String returns the value under key when it is a non-empty string.
func (m JSONMap) String(key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok && s != ""
}

// Float returns the value under key when it is numeric.
func (m JSONMap) Float(key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

// Map returns the nested object under key.
func (m JSONMap) Map(key string) JSONMap {
	switch v := m[key].(type) {
	case map[string]interface{}:
		return JSONMap(v)
	case JSONMap:
		return v
	}
	return nil
}
