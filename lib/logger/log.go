package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"

	"github.com/artie-labs/synapse-writer/lib/config"
	"github.com/artie-labs/synapse-writer/lib/redact"
)

const sentryFlushTimeout = 2 * time.Second

func sentryDSN(settings *config.Settings) string {
	if settings == nil || settings.Config == nil || settings.Config.ImageParameters.Reporting.Sentry == nil {
		return ""
	}
	return settings.Config.ImageParameters.Reporting.Sentry.DSN
}

// scrubAttr redacts credentials from string and error attributes.
func scrubAttr(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Value.Kind() {
	case slog.KindString:
		return slog.String(attr.Key, redact.ScrubString(attr.Value.String()))
	case slog.KindAny:
		if err, ok := attr.Value.Any().(error); ok {
			return slog.String(attr.Key, redact.ScrubError(err))
		}
	}
	return attr
}

func NewLogger(settings *config.Settings) (*slog.Logger, bool) {
	tintLogLevel := slog.LevelInfo
	if settings != nil && settings.VerboseLogging {
		tintLogLevel = slog.LevelDebug
	}

	var handler slog.Handler = tint.NewHandler(os.Stderr, &tint.Options{Level: tintLogLevel, ReplaceAttr: scrubAttr})

	var loggingToSentry bool
	if dsn := sentryDSN(settings); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			slog.New(handler).Warn("Failed to enable Sentry output", slog.Any("err", err))
		} else {
			handler = slogmulti.Fanout(
				handler,
				slogsentry.Option{Level: slog.LevelError, ReplaceAttr: scrubAttr}.NewSentryHandler(),
			)
			loggingToSentry = true
		}
	}

	return slog.New(handler), loggingToSentry
}

// Flush waits for buffered Sentry events, it is a no-op when Sentry is not enabled.
func Flush() {
	sentry.Flush(sentryFlushTimeout)
}
