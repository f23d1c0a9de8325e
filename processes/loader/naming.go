package loader

import (
	"strings"

	"github.com/artie-labs/synapse-writer/lib/config/constants"
	"github.com/artie-labs/synapse-writer/lib/stringutil"
)

const maxRunTokenLength = 32

// runToken is the identifier-safe part of the run id that scopes the tables a run creates.
func runToken(runID string) string {
	return stringutil.Truncate(stringutil.KeepAlphanumeric(runID), maxRunTokenLength)
}

// fitName cuts base so that base+suffix fits the identifier length limit, suffix is kept intact.
func fitName(base, suffix string) string {
	return stringutil.Truncate(base, constants.MaxIdentifierLength-stringutil.Length(suffix)) + suffix
}

// StagingTableName returns _db_writer_stage_<table>_<runToken>.
func StagingTableName(table, runID string) string {
	return fitName(constants.StagingTablePrefix+"_"+strings.ReplaceAll(table, ".", "_"), "_"+runToken(runID))
}

// SwapTableName returns <table>_old_<runToken>, the name the previous destination table holds while staging takes its place.
func SwapTableName(table, runID string) string {
	return fitName(table, constants.SwapSuffix+"_"+runToken(runID))
}
