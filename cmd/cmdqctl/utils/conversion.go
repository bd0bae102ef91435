// Package utils provides type-safe data conversion utilities for the cmdqctl CLI.
//
// JSON decoded into map[string]any carries every number as float64. These
// helpers extract typed values from such maps and return zero values instead
// of panicking when a key is missing or has an unexpected type.
package utils

// GetString safely extracts a string value from any maps.
// Returns empty string if key doesn't exist or type assertion fails.
func GetString(m map[string]any, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

// GetInt safely extracts an int value from any maps.
// Converts from JSON float64 to int. Returns 0 if key doesn't exist or fails.
func GetInt(m map[string]any, key string) int {
	if val, ok := m[key].(float64); ok {
		return int(val)
	}
	return 0
}

// GetInt64 safely extracts an int64 value from any maps.
// Converts from JSON float64 to int64. Returns 0 if key doesn't exist or fails.
func GetInt64(m map[string]any, key string) int64 {
	if val, ok := m[key].(float64); ok {
		return int64(val)
	}
	return 0
}

// GetBool safely extracts a bool value from any maps.
// Returns false if key doesn't exist or type assertion fails.
func GetBool(m map[string]any, key string) bool {
	if val, ok := m[key].(bool); ok {
		return val
	}
	return false
}
