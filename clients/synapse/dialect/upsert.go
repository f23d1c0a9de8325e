package dialect

import (
	"fmt"
	"strings"

	"github.com/artie-labs/synapse-writer/lib/sql"
)

const (
	targetAlias  = "target"
	stagingAlias = "temp"
)

func (d SynapseDialect) BuildUpdateQuery(target, staging sql.TableIdentifier, columns []string, primaryKeys []string) string {
	return fmt.Sprintf("UPDATE %s SET %s FROM %s AS %s INNER JOIN %s AS %s ON %s;",
		targetAlias,
		sql.BuildColumnsUpdateFragment(columns, stagingAlias, d),
		target.FullyQualifiedName(), targetAlias,
		staging.FullyQualifiedName(), stagingAlias,
		d.joinCondition(primaryKeys),
	)
}

// BuildDeleteMatchedQuery removes staged rows that were already applied by the update.
func (d SynapseDialect) BuildDeleteMatchedQuery(target, staging sql.TableIdentifier, primaryKeys []string) string {
	return fmt.Sprintf("DELETE %s FROM %s AS %s INNER JOIN %s AS %s ON %s;",
		stagingAlias,
		staging.FullyQualifiedName(), stagingAlias,
		target.FullyQualifiedName(), targetAlias,
		d.joinCondition(primaryKeys),
	)
}

func (d SynapseDialect) BuildInsertQuery(target, staging sql.TableIdentifier, columns []string) string {
	quoted := strings.Join(sql.QuoteIdentifiers(columns, d), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s;", target.FullyQualifiedName(), quoted, quoted, staging.FullyQualifiedName())
}

// BuildMergeQueries returns the statements that apply staging onto target. Without primary keys every staged row is appended.
func (d SynapseDialect) BuildMergeQueries(target, staging sql.TableIdentifier, columns []string, primaryKeys []string) []string {
	if len(primaryKeys) == 0 {
		return []string{d.BuildInsertQuery(target, staging, columns)}
	}

	return []string{
		d.BuildUpdateQuery(target, staging, columns, primaryKeys),
		d.BuildDeleteMatchedQuery(target, staging, primaryKeys),
		d.BuildInsertQuery(target, staging, columns),
	}
}

func (d SynapseDialect) joinCondition(primaryKeys []string) string {
	return strings.Join(sql.BuildColumnComparisons(primaryKeys, targetAlias, stagingAlias, d), " AND ")
}
