package sql

type TableIdentifier interface {
	Schema() string
	Table() string
	EscapedTable() string
	WithTable(table string) TableIdentifier
	FullyQualifiedName() string
}

type Dialect interface {
	QuoteIdentifier(identifier string) string
	QuoteLiteral(value string) string
}
