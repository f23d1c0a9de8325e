package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/artie-labs/synapse-writer/lib/jitter"
)

type RetryConfig struct {
	interval       time.Duration
	jitterBaseMs   int
	jitterMaxMs    int
	maxAttempts    int
	isRetryableErr func(err error) bool
}

type NewRetryConfigArgs struct {
	// Interval is the fixed wait between attempts, jitter is added on top of it.
	Interval       time.Duration
	JitterBaseMs   int
	JitterMaxMs    int
	MaxAttempts    int
	IsRetryableErr func(err error) bool
}

func NewRetryConfig(args NewRetryConfigArgs) RetryConfig {
	isRetryableErr := args.IsRetryableErr
	if isRetryableErr == nil {
		isRetryableErr = func(_ error) bool { return true }
	}

	return RetryConfig{
		interval:       max(args.Interval, 0),
		jitterBaseMs:   max(args.JitterBaseMs, 0),
		jitterMaxMs:    max(args.JitterMaxMs, 0),
		maxAttempts:    max(args.MaxAttempts, 1),
		isRetryableErr: isRetryableErr,
	}
}

func (r RetryConfig) sleepDuration(attempt int) time.Duration {
	return r.interval + jitter.Jitter(r.jitterBaseMs, r.jitterMaxMs, attempt)
}

func (r RetryConfig) sleepIfNecessary(ctx context.Context, attempt int, err error) error {
	if attempt == 0 {
		return nil
	}

	sleepDuration := r.sleepDuration(attempt)
	slog.Info("An error occurred, retrying after delay...",
		slog.Duration("sleep", sleepDuration),
		slog.Int("attemptsLeft", r.maxAttempts-attempt),
		slog.Any("err", err),
	)

	if sleepDuration <= 0 {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(sleepDuration):
		return nil
	}
}

func (r RetryConfig) WithRetries(ctx context.Context, f func(ctx context.Context, attempt int) error) error {
	_, err := WithRetries(ctx, r, func(ctx context.Context, attempt int) (struct{}, error) {
		return struct{}{}, f(ctx, attempt)
	})
	return err
}

func WithRetries[T any](ctx context.Context, retryCfg RetryConfig, f func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var result T
	var err error
	for attempt := 0; attempt < retryCfg.maxAttempts; attempt++ {
		if sleepErr := retryCfg.sleepIfNecessary(ctx, attempt, err); sleepErr != nil {
			// Surface the last real failure rather than the cancellation.
			if err == nil {
				err = sleepErr
			}
			break
		}

		result, err = f(ctx, attempt)
		if err == nil {
			return result, nil
		} else if !retryCfg.isRetryableErr(err) {
			break
		}
	}
	return result, err
}
