package sql

import (
	"strings"
)

// QuoteDelimited wraps value in delimiter and doubles every embedded delimiter, so the result is always a single token.
func QuoteDelimited(value, delimiter string) string {
	return delimiter + strings.ReplaceAll(value, delimiter, delimiter+delimiter) + delimiter
}

// QuoteLiteral returns a single-quoted SQL string literal: O'Reilly -> 'O''Reilly'.
func QuoteLiteral(value string) string {
	return QuoteDelimited(value, "'")
}

func QuoteLiterals(values []string) []string {
	result := make([]string, len(values))
	for i, value := range values {
		result[i] = QuoteLiteral(value)
	}
	return result
}
