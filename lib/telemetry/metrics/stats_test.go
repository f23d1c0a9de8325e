package metrics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artie-labs/synapse-writer/lib/config"
	"github.com/artie-labs/synapse-writer/lib/config/constants"
)

func TestExporterKindValid(t *testing.T) {
	exporterKindToResultsMap := map[constants.ExporterKind]bool{
		constants.Datadog:                      true,
		constants.ExporterKind("daaaa"):        false,
		constants.ExporterKind(""):             false,
		constants.ExporterKind("honeycomb.io"): false,
	}

	for exporterKind, expectedResults := range exporterKindToResultsMap {
		assert.Equal(t, expectedResults, exporterKindValid(exporterKind),
			fmt.Sprintf("kind: %v should have been %v", exporterKind, expectedResults))
	}
}

func TestLoadExporter(t *testing.T) {
	// Datadog should not be a NullMetricsProvider
	exporterKindToResultMap := map[constants.ExporterKind]bool{
		constants.Datadog:                 false,
		constants.ExporterKind("invalid"): true,
		constants.ExporterKind(""):        true,
	}

	for kind, result := range exporterKindToResultMap {
		var cfg config.Config
		cfg.ImageParameters.Telemetry.Metrics.Provider = kind
		cfg.ImageParameters.Telemetry.Metrics.Settings = map[string]any{
			"addr": "localhost:8125",
		}

		client := LoadExporter(cfg)
		_, ok := client.(NullMetricsProvider)
		assert.Equal(t, result, ok, kind)
		client.Flush()
	}
}
