package maputil

import (
	"fmt"
)

func GetKeyFromMap(obj map[string]any, key string, defaultValue any) any {
	if len(obj) == 0 {
		return defaultValue
	}

	val, isOk := obj[key]
	if !isOk {
		return defaultValue
	}

	return val
}

// GetStringFromMap returns the value under key formatted as a string, or defaultValue when it is missing or empty.
func GetStringFromMap(obj map[string]any, key string, defaultValue string) string {
	val := GetKeyFromMap(obj, key, nil)
	if val == nil {
		return defaultValue
	}

	if str := fmt.Sprint(val); str != "" {
		return str
	}

	return defaultValue
}
