package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/artie-labs/synapse-writer/clients/synapse"
	"github.com/artie-labs/synapse-writer/lib/config"
	"github.com/artie-labs/synapse-writer/lib/config/constants"
	"github.com/artie-labs/synapse-writer/lib/loaderr"
	"github.com/artie-labs/synapse-writer/lib/logger"
	"github.com/artie-labs/synapse-writer/lib/redact"
	"github.com/artie-labs/synapse-writer/lib/telemetry/metrics"
	"github.com/artie-labs/synapse-writer/processes/loader"
)

func main() {
	settings, err := config.ParseArgs(os.Args[1:], true)
	if err != nil {
		// The logger depends on the config, fall back to a bare one.
		log, _ := logger.NewLogger(nil)
		slog.SetDefault(log)
		exit(err)
	}

	log, usingSentry := logger.NewLogger(settings)
	slog.SetDefault(log)
	slog.Info("Config is loaded",
		slog.String("action", string(settings.Config.Action)),
		slog.String("runID", settings.RunID),
		slog.Bool("sentry", usingSentry),
	)

	if err = run(context.Background(), settings); err != nil {
		exit(err)
	}

	logger.Flush()
}

func run(ctx context.Context, settings *config.Settings) error {
	cfg := settings.Config
	metricsClient := metrics.LoadExporter(*cfg)
	defer metricsClient.Flush()

	store, err := synapse.LoadStore(ctx, cfg.Parameters.DB)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close the warehouse connection", slog.Any("err", closeErr))
		}
	}()

	switch cfg.Action {
	case constants.TestConnection:
		return testConnection(ctx, store)
	case constants.Run:
		return loader.NewLoader(store, metricsClient, loader.Args{
			DataDir:         settings.DataDir,
			RunID:           settings.RunID,
			CredentialsType: cfg.Parameters.CredentialsType,
			ImportDelay:     cfg.Parameters.ImportDelay(),
		}).Run(ctx, cfg.Tables())
	default:
		return loaderr.NewConfigurationError(fmt.Sprintf("unknown action %q", cfg.Action))
	}
}

func testConnection(ctx context.Context, store *synapse.Store) error {
	if err := store.TestConnection(ctx); err != nil {
		return err
	}

	user, err := store.CurrentUser(ctx)
	if err != nil {
		return err
	}
	slog.Info("Connection is working", slog.String("user", user))

	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(map[string]string{"status": "success"})
	if err != nil {
		return loaderr.NewApplicationError(fmt.Sprintf("failed to marshal status: %v", err))
	}
	fmt.Println(string(out))
	return nil
}

func exit(err error) {
	code := loaderr.ExitCodeFor(err)
	if code == loaderr.ExitApplicationError {
		slog.Error("Application error", slog.Any("err", err))
	} else {
		slog.Error("Load failed", slog.Any("err", err))
	}

	fmt.Fprintln(os.Stderr, redact.ScrubError(err))
	logger.Flush()
	os.Exit(int(code))
}
