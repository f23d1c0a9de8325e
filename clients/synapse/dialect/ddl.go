package dialect

import (
	"fmt"
	"strings"

	mssql "github.com/microsoft/go-mssqldb"

	"github.com/artie-labs/synapse-writer/lib/sql"
)

// BuildCreateTableQuery creates a destination table. Distribution and clustered index options are only
// emitted when primaryKeys is non-empty; staging tables are created without them.
func (d SynapseDialect) BuildCreateTableQuery(tableID sql.TableIdentifier, columnDefinitions []string, primaryKeys []string) string {
	query := fmt.Sprintf("CREATE TABLE %s (%s)", tableID.FullyQualifiedName(), strings.Join(columnDefinitions, ", "))
	if options := d.tableOptions(primaryKeys); options != "" {
		query = fmt.Sprintf("%s WITH (%s)", query, options)
	}
	return query + ";"
}

func (d SynapseDialect) tableOptions(primaryKeys []string) string {
	var options []string
	// HASH distribution takes a single column.
	if len(primaryKeys) == 1 {
		options = append(options, fmt.Sprintf("DISTRIBUTION = HASH(%s)", d.QuoteIdentifier(primaryKeys[0])))
	}
	if len(primaryKeys) > 0 {
		options = append(options, fmt.Sprintf("CLUSTERED INDEX (%s)", strings.Join(sql.QuoteIdentifiers(primaryKeys, d), ", ")))
	}
	return strings.Join(options, ", ")
}

// Synapse dedicated pools do not support DROP TABLE IF EXISTS.
func (SynapseDialect) BuildDropTableQuery(tableID sql.TableIdentifier) string {
	fqName := tableID.FullyQualifiedName()
	return fmt.Sprintf("IF OBJECT_ID(N%s, N'U') IS NOT NULL DROP TABLE %s;", sql.QuoteLiteral(fqName), fqName)
}

func (SynapseDialect) BuildTableExistsQuery(tableID sql.TableIdentifier, database string) (string, []any) {
	return `SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_NAME = @p1 AND TABLE_SCHEMA = @p2 AND TABLE_CATALOG = @p3;`,
		[]any{mssql.VarChar(tableID.Table()), mssql.VarChar(tableID.Schema()), mssql.VarChar(database)}
}

// BuildRenameQuery renames within the same schema, RENAME OBJECT only accepts a bare new name.
func (d SynapseDialect) BuildRenameQuery(tableID sql.TableIdentifier, newName string) string {
	return fmt.Sprintf("RENAME OBJECT %s TO %s;", tableID.FullyQualifiedName(), d.QuoteIdentifier(newName))
}

// BuildSwapQueries moves staging into target's place and leaves the previous target under the staging name.
// swap holds the previous target between the first and the last rename.
func (d SynapseDialect) BuildSwapQueries(target, staging, swap sql.TableIdentifier) []string {
	return []string{
		d.BuildRenameQuery(target, swap.Table()),
		d.BuildRenameQuery(staging, target.Table()),
		d.BuildRenameQuery(swap, staging.Table()),
	}
}

func (SynapseDialect) BuildTestConnectionQuery() string {
	return "SELECT 1;"
}

func (SynapseDialect) BuildCurrentUserQuery() string {
	return "SELECT CURRENT_USER;"
}
