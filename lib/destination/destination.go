package destination

import (
	"context"

	"github.com/artie-labs/synapse-writer/lib/config"
	"github.com/artie-labs/synapse-writer/lib/sql"
	"github.com/artie-labs/synapse-writer/lib/staging"
)

// Writer is the warehouse a table is loaded into. Primary keys and column names are warehouse (dbName) identifiers.
type Writer interface {
	Dialect() sql.Dialect
	IdentifierFor(table string) sql.TableIdentifier

	// Create creates a table. Destination options (distribution, clustered index) are only applied when primaryKeys is set.
	Create(ctx context.Context, tableID sql.TableIdentifier, columns []config.Column, primaryKeys []string) error
	// CreateIfNotExists returns true when the table had to be created.
	CreateIfNotExists(ctx context.Context, tableID sql.TableIdentifier, columns []config.Column, primaryKeys []string) (bool, error)
	Drop(ctx context.Context, tableID sql.TableIdentifier) error

	LoadFromStaging(ctx context.Context, tableID sql.TableIdentifier, adapter staging.Adapter, columns []staging.ImportColumn) error
	// Upsert merges staging into target and drops staging afterwards.
	Upsert(ctx context.Context, target, stagingTableID sql.TableIdentifier, columns []string, primaryKeys []string) error
	// Swap moves staging into target's place through swapTableID. The previous target ends up under the staging name.
	Swap(ctx context.Context, target, stagingTableID, swapTableID sql.TableIdentifier) error

	TestConnection(ctx context.Context) error
	CurrentUser(ctx context.Context) (string, error)
	Close() error
}
