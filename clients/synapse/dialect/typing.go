package dialect

import (
	"fmt"
	"strings"

	"github.com/artie-labs/synapse-writer/lib/config"
)

// BuildColumnDefinition renders `"dbName" TYPE[(size)] NULL|NOT NULL [DEFAULT '<default>']`.
func (d SynapseDialect) BuildColumnDefinition(column config.Column) string {
	columnType := strings.ToUpper(column.Type)
	if column.Size != "" && config.IsSizedType(column.Type) {
		columnType = fmt.Sprintf("%s(%s)", columnType, column.Size)
	}

	nullability := "NOT NULL"
	if column.Nullable {
		nullability = "NULL"
	}

	definition := fmt.Sprintf("%s %s %s", d.QuoteIdentifier(column.DBName), columnType, nullability)
	if column.Default != "" && config.AcceptsDefault(column.Type) {
		definition = fmt.Sprintf("%s DEFAULT %s", definition, d.QuoteLiteral(column.Default.String()))
	}

	return definition
}

// BuildColumnDefinitions skips ignored columns and keeps the input order.
func (d SynapseDialect) BuildColumnDefinitions(columns []config.Column) []string {
	var definitions []string
	for _, column := range columns {
		if column.IsIgnored() {
			continue
		}
		definitions = append(definitions, d.BuildColumnDefinition(column))
	}
	return definitions
}
