package loader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/artie-labs/synapse-writer/lib/config"
	"github.com/artie-labs/synapse-writer/lib/config/constants"
	"github.com/artie-labs/synapse-writer/lib/destination"
	"github.com/artie-labs/synapse-writer/lib/loaderr"
	"github.com/artie-labs/synapse-writer/lib/manifest"
	"github.com/artie-labs/synapse-writer/lib/staging"
	"github.com/artie-labs/synapse-writer/lib/telemetry/metrics/base"
)

type Args struct {
	DataDir         string
	RunID           string
	CredentialsType constants.CredentialsType
	ImportDelay     time.Duration
	// NewBlobStore overrides the Azure SDK client.
	NewBlobStore staging.NewBlobStoreFunc
}

type Loader struct {
	writer  destination.Writer
	metrics base.Client
	args    Args
}

func NewLoader(writer destination.Writer, metricsClient base.Client, args Args) *Loader {
	return &Loader{writer: writer, metrics: metricsClient, args: args}
}

// Run loads the tables one at a time in order and stops at the first failure.
func (l *Loader) Run(ctx context.Context, tables []config.Table) error {
	for _, table := range tables {
		if !table.ShouldExport() {
			slog.Info("Table export is disabled, skipping", slog.String("table", table.DBName))
			l.metrics.Incr("load.result", map[string]string{"table": table.DBName, "mode": string(table.Mode()), "status": "skipped"})
			continue
		}

		if err := l.LoadTable(ctx, table); err != nil {
			slog.Error("Failed to load table", slog.String("table", table.DBName), slog.Any("err", err))
			return loaderr.NewLoadError(table.DBName, err)
		}
	}

	return nil
}

func (l *Loader) LoadTable(ctx context.Context, table config.Table) (err error) {
	tags := map[string]string{
		"table":  table.DBName,
		"mode":   string(table.Mode()),
		"status": "success",
	}

	start := time.Now()
	defer func() {
		if err != nil {
			tags["status"] = "failed"
		}
		l.metrics.Timing("load.duration", time.Since(start), tags)
		l.metrics.Incr("load.result", tags)
	}()

	// The run token scopes the staging and swap tables, without it a table owned by someone else could be dropped.
	if runToken(l.args.RunID) == "" {
		return loaderr.NewConfigurationError(fmt.Sprintf("run id %q has no identifier characters", l.args.RunID))
	}

	m, err := manifest.Read(l.args.DataDir, table.TableID)
	if err != nil {
		return err
	}

	columns := manifest.Reconcile(m.Columns, table.Items)
	if len(columns) == 0 {
		slog.Info("No configured column is present in the extract, nothing to load", slog.String("table", table.DBName))
		return nil
	}

	primaryKeys, err := primaryKeyDBNames(table.PrimaryKey, columns)
	if err != nil {
		return err
	}

	adapter, err := staging.NewAdapter(m, staging.Args{
		CredentialsType: l.args.CredentialsType,
		ImportDelay:     l.args.ImportDelay,
		NewBlobStore:    l.args.NewBlobStore,
	})
	if err != nil {
		return err
	}

	target := l.writer.IdentifierFor(table.DBName)
	s := &session{
		writer:      l.writer,
		mode:        table.Mode(),
		target:      target,
		staging:     target.WithTable(StagingTableName(table.DBName, l.args.RunID)),
		swap:        target.WithTable(SwapTableName(table.DBName, l.args.RunID)),
		columns:     columns,
		primaryKeys: primaryKeys,
	}

	slog.Info("Loading table",
		slog.String("table", target.FullyQualifiedName()),
		slog.String("mode", string(s.mode)),
		slog.Int("columns", len(columns)),
	)
	l.metrics.Count("load.columns", int64(len(columns)), map[string]string{"table": table.DBName, "mode": string(table.Mode())})
	if err = s.run(ctx, adapter); err != nil {
		return err
	}

	slog.Info("Table loaded", slog.String("table", target.FullyQualifiedName()), slog.Duration("duration", time.Since(start)))
	return nil
}

// primaryKeyDBNames maps primary key names onto the warehouse column names of the loaded columns.
func primaryKeyDBNames(primaryKey []string, columns []config.Column) ([]string, error) {
	var dbNames []string
	for _, key := range primaryKey {
		dbName, found := lookupDBName(key, columns)
		if !found {
			return nil, loaderr.NewConfigurationError(fmt.Sprintf("primary key column %q is not part of the loaded columns", key))
		}
		dbNames = append(dbNames, dbName)
	}
	return dbNames, nil
}

func lookupDBName(key string, columns []config.Column) (string, bool) {
	for _, column := range columns {
		if column.Name == key {
			return column.DBName, true
		}
	}

	// Older configurations list the primary key by warehouse name.
	for _, column := range columns {
		if column.DBName == key {
			return column.DBName, true
		}
	}

	return "", false
}
