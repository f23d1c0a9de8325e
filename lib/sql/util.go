package sql

import (
	"fmt"
	"strings"
)

func QuoteIdentifiers(identifiers []string, dialect Dialect) []string {
	result := make([]string, len(identifiers))
	for i, identifier := range identifiers {
		result[i] = dialect.QuoteIdentifier(identifier)
	}
	return result
}

// QuoteTableAliasColumns returns alias."col" for every column.
func QuoteTableAliasColumns(alias string, identifiers []string, dialect Dialect) []string {
	result := make([]string, len(identifiers))
	for i, identifier := range identifiers {
		result[i] = fmt.Sprintf("%s.%s", alias, dialect.QuoteIdentifier(identifier))
	}
	return result
}

// BuildColumnComparisons returns left."col"=right."col" for every column; callers AND them together.
func BuildColumnComparisons(identifiers []string, leftAlias, rightAlias string, dialect Dialect) []string {
	result := make([]string, len(identifiers))
	for i, identifier := range identifiers {
		quoted := dialect.QuoteIdentifier(identifier)
		result[i] = fmt.Sprintf("%s.%s=%s.%s", leftAlias, quoted, rightAlias, quoted)
	}
	return result
}

// BuildColumnsUpdateFragment returns "col"=alias."col",... for an UPDATE ... SET clause.
func BuildColumnsUpdateFragment(identifiers []string, stagingAlias string, dialect Dialect) string {
	parts := make([]string, len(identifiers))
	for i, identifier := range identifiers {
		quoted := dialect.QuoteIdentifier(identifier)
		parts[i] = fmt.Sprintf("%s=%s.%s", quoted, stagingAlias, quoted)
	}
	return strings.Join(parts, ",")
}
