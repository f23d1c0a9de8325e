package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/artie-labs/synapse-writer/lib/jitter"
	"github.com/artie-labs/synapse-writer/lib/retry"
)

const connectJitterBaseMs = 500

type Store interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContextStatements(ctx context.Context, statements []string) ([]sql.Result, error)
	Close() error
}

type storeWrapper struct {
	*sql.DB
	queryTimeout time.Duration
}

// NewStore wraps an open [*sql.DB]. Every Exec is bounded by queryTimeout (zero means unbounded).
func NewStore(db *sql.DB, queryTimeout time.Duration) Store {
	// One session: statements are issued serially and the warehouse orders DDL/DML within it.
	db.SetMaxOpenConns(1)
	return &storeWrapper{DB: db, queryTimeout: queryTimeout}
}

func (s *storeWrapper) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

func (s *storeWrapper) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.DB.ExecContext(ctx, query, args...)
}

// QueryContext is not bounded by the query timeout since the rows outlive this call; it is meant for catalog lookups.
func (s *storeWrapper) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.DB.QueryContext(ctx, query, args...)
}

type OpenArgs struct {
	QueryTimeout         time.Duration
	ConnectRetryCount    int
	ConnectRetryInterval time.Duration
}

// Open connects and validates the connection, retrying network failures ConnectRetryCount times.
func Open(ctx context.Context, driverName, dsn string, args OpenArgs) (Store, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to start a SQL client: %w", err)
	}

	retryCfg := retry.NewRetryConfig(retry.NewRetryConfigArgs{
		Interval:       args.ConnectRetryInterval,
		JitterBaseMs:   connectJitterBaseMs,
		JitterMaxMs:    jitter.DefaultMaxMs,
		MaxAttempts:    args.ConnectRetryCount + 1,
		IsRetryableErr: isRetryableError,
	})

	err = retryCfg.WithRetries(ctx, func(ctx context.Context, attempt int) error {
		if attempt > 0 {
			slog.Info("Retrying the DB connection", slog.String("driverName", driverName), slog.Int("attempt", attempt))
		}
		return db.PingContext(ctx)
	})
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Warn("Failed to close the DB client", slog.Any("err", closeErr))
		}
		return nil, fmt.Errorf("failed to validate the DB connection: %w", err)
	}

	return NewStore(db, args.QueryTimeout), nil
}
