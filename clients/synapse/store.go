package synapse

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/microsoft/go-mssqldb"

	"github.com/artie-labs/synapse-writer/clients/synapse/dialect"
	"github.com/artie-labs/synapse-writer/lib/config"
	"github.com/artie-labs/synapse-writer/lib/db"
	"github.com/artie-labs/synapse-writer/lib/destination"
	"github.com/artie-labs/synapse-writer/lib/loaderr"
	"github.com/artie-labs/synapse-writer/lib/redact"
	"github.com/artie-labs/synapse-writer/lib/sql"
	"github.com/artie-labs/synapse-writer/lib/staging"
)

const driverName = "sqlserver"

var _ destination.Writer = (*Store)(nil)

type Store struct {
	database string
	schema   string
	db.Store
}

func NewStore(store db.Store, cfg config.DB) *Store {
	return &Store{database: cfg.Database, schema: cfg.Schema, Store: store}
}

func LoadStore(ctx context.Context, cfg config.DB) (*Store, error) {
	slog.Info("Connecting to Synapse", slog.String("db", cfg.String()))
	store, err := db.Open(ctx, driverName, cfg.DSN(), db.OpenArgs{
		QueryTimeout:         cfg.QueryTimeout(),
		ConnectRetryCount:    cfg.ConnectRetries(),
		ConnectRetryInterval: cfg.ConnectRetryInterval(),
	})
	if err != nil {
		return nil, err
	}

	return NewStore(store, cfg), nil
}

func (s *Store) Dialect() sql.Dialect {
	return s.dialect()
}

func (s *Store) dialect() dialect.SynapseDialect {
	return dialect.SynapseDialect{}
}

func (s *Store) IdentifierFor(table string) sql.TableIdentifier {
	return dialect.NewTableIdentifier(s.schema, table)
}

// exec runs a statement, failures carry the redacted statement.
func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	slog.Debug("Executing query", slog.String("query", query))
	if _, err := s.ExecContext(ctx, query, args...); err != nil {
		return loaderr.NewWarehouseExecutionError(redact.ScrubString(query), err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, tableID sql.TableIdentifier, columns []config.Column, primaryKeys []string) error {
	definitions := s.dialect().BuildColumnDefinitions(columns)
	if len(definitions) == 0 {
		return loaderr.NewApplicationError(fmt.Sprintf("table %q has no columns to create", tableID.FullyQualifiedName()))
	}

	return s.exec(ctx, s.dialect().BuildCreateTableQuery(tableID, definitions, primaryKeys))
}

func (s *Store) tableExists(ctx context.Context, tableID sql.TableIdentifier) (bool, error) {
	query, args := s.dialect().BuildTableExistsQuery(tableID, s.database)
	rows, err := s.QueryContext(ctx, query, args...)
	if err != nil {
		return false, loaderr.NewWarehouseExecutionError(query, err)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err = rows.Scan(&count); err != nil {
			return false, loaderr.NewWarehouseExecutionError(query, err)
		}
	}

	if err = rows.Err(); err != nil {
		return false, loaderr.NewWarehouseExecutionError(query, err)
	}

	return count > 0, nil
}

func (s *Store) CreateIfNotExists(ctx context.Context, tableID sql.TableIdentifier, columns []config.Column, primaryKeys []string) (bool, error) {
	exists, err := s.tableExists(ctx, tableID)
	if err != nil {
		return false, fmt.Errorf("failed to check if table exists: %w", err)
	}

	if exists {
		return false, nil
	}

	slog.Info("Creating destination table", slog.String("table", tableID.FullyQualifiedName()))
	if err = s.Create(ctx, tableID, columns, primaryKeys); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Drop(ctx context.Context, tableID sql.TableIdentifier) error {
	return s.exec(ctx, s.dialect().BuildDropTableQuery(tableID))
}

func (s *Store) LoadFromStaging(ctx context.Context, tableID sql.TableIdentifier, adapter staging.Adapter, columns []staging.ImportColumn) error {
	query, err := adapter.GenerateImportToStageSQL(ctx, tableID.FullyQualifiedName(), columns)
	if err != nil {
		return err
	}

	slog.Info("Importing into staging table", slog.String("table", tableID.FullyQualifiedName()))
	return s.exec(ctx, query)
}

func (s *Store) Upsert(ctx context.Context, target, stagingTableID sql.TableIdentifier, columns []string, primaryKeys []string) error {
	queries := s.dialect().BuildMergeQueries(target, stagingTableID, columns, primaryKeys)
	if _, err := s.ExecContextStatements(ctx, queries); err != nil {
		return loaderr.NewWarehouseExecutionError(redact.ScrubString(strings.Join(queries, "\n")), err)
	}

	// Rows left in staging would be inserted twice if the merge ran again.
	return s.Drop(ctx, stagingTableID)
}

// Swap expects swapTableID to be scoped to the current run, a table already under that name is dropped.
func (s *Store) Swap(ctx context.Context, target, stagingTableID, swapTableID sql.TableIdentifier) error {
	// Leftover from an interrupted attempt of this run.
	if err := s.Drop(ctx, swapTableID); err != nil {
		return err
	}

	queries := s.dialect().BuildSwapQueries(target, stagingTableID, swapTableID)
	if err := s.exec(ctx, queries[0]); err != nil {
		return err
	}

	if err := s.exec(ctx, queries[1]); err != nil {
		// Target is missing, put the previous data back.
		restoreQuery := s.dialect().BuildRenameQuery(swapTableID, target.Table())
		if restoreErr := s.exec(context.WithoutCancel(ctx), restoreQuery); restoreErr != nil {
			slog.Error("Failed to restore the destination table", slog.String("table", target.FullyQualifiedName()), slog.Any("err", restoreErr))
		}
		return err
	}

	if err := s.exec(ctx, queries[2]); err != nil {
		// The new data is already visible, only the previous data is left behind.
		if dropErr := s.Drop(context.WithoutCancel(ctx), swapTableID); dropErr != nil {
			slog.Warn("Failed to drop the previous destination table", slog.String("table", swapTableID.FullyQualifiedName()), slog.Any("err", dropErr))
		}
		return err
	}

	return nil
}

func (s *Store) TestConnection(ctx context.Context) error {
	return s.exec(ctx, s.dialect().BuildTestConnectionQuery())
}

func (s *Store) CurrentUser(ctx context.Context) (string, error) {
	query := s.dialect().BuildCurrentUserQuery()
	rows, err := s.QueryContext(ctx, query)
	if err != nil {
		return "", loaderr.NewWarehouseExecutionError(query, err)
	}
	defer rows.Close()

	var user string
	if rows.Next() {
		if err = rows.Scan(&user); err != nil {
			return "", loaderr.NewWarehouseExecutionError(query, err)
		}
	}

	if err = rows.Err(); err != nil {
		return "", loaderr.NewWarehouseExecutionError(query, err)
	}

	return user, nil
}
