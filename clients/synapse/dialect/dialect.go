package dialect

import (
	"github.com/artie-labs/synapse-writer/lib/sql"
)

type SynapseDialect struct{}

// QuoteIdentifier uses ANSI double quotes, which Synapse accepts with QUOTED_IDENTIFIER ON (the driver default).
func (SynapseDialect) QuoteIdentifier(identifier string) string {
	return sql.QuoteDelimited(identifier, `"`)
}

func (SynapseDialect) QuoteLiteral(value string) string {
	return sql.QuoteLiteral(value)
}
