package stringutil

import (
	"strings"
	"unicode/utf8"
)

func Empty(vals ...string) bool {
	for _, val := range vals {
		if val == "" {
			return true
		}
	}

	return false
}

// Length counts characters, identifier limits are in characters rather than bytes.
func Length(value string) int {
	return utf8.RuneCountInString(value)
}

// Truncate cuts value to at most maxLength characters without splitting a multi-byte character.
func Truncate(value string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}

	var count int
	for i := range value {
		if count == maxLength {
			return value[:i]
		}
		count++
	}
	return value
}

// KeepAlphanumeric drops every character outside [A-Za-z0-9_].
func KeepAlphanumeric(value string) string {
	var sb strings.Builder
	for _, r := range value {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
