package loader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/artie-labs/synapse-writer/lib/config"
	"github.com/artie-labs/synapse-writer/lib/config/constants"
	"github.com/artie-labs/synapse-writer/lib/destination"
	"github.com/artie-labs/synapse-writer/lib/loaderr"
	"github.com/artie-labs/synapse-writer/lib/sql"
	"github.com/artie-labs/synapse-writer/lib/staging"
)

type State int

const (
	Idle State = iota
	StagingCreated
	DataImported
	Finalized
	Cleaned
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case StagingCreated:
		return "staging_created"
	case DataImported:
		return "data_imported"
	case Finalized:
		return "finalized"
	case Cleaned:
		return "cleaned"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// session is the load of one table. The staging table is dropped on every exit path.
type session struct {
	writer      destination.Writer
	mode        constants.LoadMode
	target      sql.TableIdentifier
	staging     sql.TableIdentifier
	swap        sql.TableIdentifier
	columns     []config.Column
	primaryKeys []string

	state State
}

func (s *session) transition(next State) {
	slog.Debug("Load state changed",
		slog.String("table", s.target.Table()),
		slog.String("from", s.state.String()),
		slog.String("to", next.String()),
	)
	s.state = next
}

func (s *session) columnNames() []string {
	names := make([]string, len(s.columns))
	for i, column := range s.columns {
		names[i] = column.DBName
	}
	return names
}

func (s *session) importColumns() []staging.ImportColumn {
	importColumns := make([]staging.ImportColumn, len(s.columns))
	for i, column := range s.columns {
		importColumns[i] = staging.ImportColumn{
			EscapedName: s.writer.Dialect().QuoteIdentifier(column.DBName),
			FieldNumber: column.Position,
		}
	}
	return importColumns
}

func (s *session) run(ctx context.Context, adapter staging.Adapter) (err error) {
	defer func() {
		if cleanupErr := s.cleanup(context.WithoutCancel(ctx)); cleanupErr != nil {
			if err == nil {
				err = cleanupErr
			} else {
				slog.Warn("Failed to drop the staging table", slog.String("table", s.staging.Table()), slog.Any("err", cleanupErr))
			}
		}
	}()

	// A rerun with the same run id finds its own staging table.
	if err = s.writer.Drop(ctx, s.staging); err != nil {
		return err
	}
	if err = s.writer.Create(ctx, s.staging, s.columns, nil); err != nil {
		return fmt.Errorf("failed to create staging table: %w", err)
	}
	s.transition(StagingCreated)

	if err = s.writer.LoadFromStaging(ctx, s.staging, adapter, s.importColumns()); err != nil {
		if loaderr.IsEmptyExtractError(err) {
			slog.Info("Extract has no files, destination table is left as is", slog.String("table", s.target.Table()))
			s.transition(Finalized)
			return nil
		}
		return err
	}
	s.transition(DataImported)

	if err = s.finalize(ctx); err != nil {
		return err
	}
	s.transition(Finalized)
	return nil
}

func (s *session) finalize(ctx context.Context) error {
	if _, err := s.writer.CreateIfNotExists(ctx, s.target, s.columns, s.primaryKeys); err != nil {
		return err
	}

	switch s.mode {
	case constants.FullLoad:
		return s.writer.Swap(ctx, s.target, s.staging, s.swap)
	case constants.IncrementalLoad:
		return s.writer.Upsert(ctx, s.target, s.staging, s.columnNames(), s.primaryKeys)
	default:
		return loaderr.NewApplicationError(fmt.Sprintf("unknown load mode %q", s.mode))
	}
}

func (s *session) cleanup(ctx context.Context) error {
	if s.state == Cleaned {
		return nil
	}

	if err := s.writer.Drop(ctx, s.staging); err != nil {
		return err
	}
	s.transition(Cleaned)
	return nil
}
