package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"

	"github.com/artie-labs/synapse-writer/lib/loaderr"
)

const (
	dataDirEnv     = "KBC_DATADIR"
	runIDEnv       = "KBC_RUNID"
	defaultDataDir = "/data"
)

type Settings struct {
	Config         *Config
	DataDir        string
	RunID          string
	VerboseLogging bool
}

type options struct {
	DataDir string `short:"d" long:"data-dir" description:"path to the data directory holding config.json and in/tables"`
	Verbose bool   `short:"v" long:"verbose" description:"debug logging" optional:"true"`
}

// ParseArgs parses the CLI flags. When loadConfig is false the config file is not read (for testing purposes).
func ParseArgs(args []string, loadConfig bool) (*Settings, error) {
	var opts options
	if _, err := flags.ParseArgs(&opts, args); err != nil {
		return nil, loaderr.NewConfigurationError(fmt.Sprintf("failed to parse args: %v", err))
	}

	settings := &Settings{
		DataDir:        dataDir(opts.DataDir),
		RunID:          runID(),
		VerboseLogging: opts.Verbose,
	}

	if loadConfig {
		cfg, err := ReadConfig(settings.DataDir)
		if err != nil {
			return nil, err
		}
		settings.Config = cfg
	}

	return settings, nil
}

func dataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(dataDirEnv); env != "" {
		return env
	}
	return defaultDataDir
}

func runID() string {
	if env := os.Getenv(runIDEnv); env != "" {
		return env
	}
	return uuid.NewString()
}
