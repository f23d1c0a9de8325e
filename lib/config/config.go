package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/artie-labs/synapse-writer/lib/config/constants"
	"github.com/artie-labs/synapse-writer/lib/loaderr"
	"github.com/artie-labs/synapse-writer/lib/ptr"
)

const configFileName = "config.json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Scalar holds a configuration value that may be written as a JSON string or a JSON number.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}

	if data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = Scalar(value)
		return nil
	}

	if data[0] == '{' || data[0] == '[' {
		return fmt.Errorf("expected a string or number, got %s", string(data))
	}

	*s = Scalar(data)
	return nil
}

func (s Scalar) String() string {
	return string(s)
}

type Column struct {
	Name     string `json:"name"`
	DBName   string `json:"dbName"`
	Type     string `json:"type"`
	Size     Scalar `json:"size"`
	Nullable bool   `json:"nullable"`
	Default  Scalar `json:"default"`

	// Position is the 1-based index of the column in the extract header, set during manifest reconciliation.
	Position int `json:"-"`
}

func (c Column) IsIgnored() bool {
	return strings.EqualFold(c.Type, constants.IgnoreType)
}

type Table struct {
	TableID     string   `json:"tableId"`
	DBName      string   `json:"dbName"`
	Export      *bool    `json:"export,omitempty"`
	Incremental bool     `json:"incremental"`
	PrimaryKey  []string `json:"primaryKey"`
	Items       []Column `json:"items"`
}

func (t Table) ShouldExport() bool {
	return t.Export == nil || *t.Export
}

func (t Table) Mode() constants.LoadMode {
	if t.Incremental {
		return constants.IncrementalLoad
	}
	return constants.FullLoad
}

type DB struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"#password"`
	Database string `json:"database"`
	Schema   string `json:"schema"`

	// Unset falls back to the defaults, an explicit 0 is kept: no retries, no timeout.
	ConnectionTimeoutSeconds    *int `json:"connectionTimeoutSeconds,omitempty"`
	ConnectRetryCount           *int `json:"connectRetryCount,omitempty"`
	ConnectRetryIntervalSeconds *int `json:"connectRetryIntervalSeconds,omitempty"`
	QueryTimeoutSeconds         *int `json:"queryTimeoutSeconds,omitempty"`
}

func (d DB) String() string {
	// Don't log credentials.
	return fmt.Sprintf("host=%s, port=%d, database=%s, schema=%s, user_set=%v, pass_set=%v",
		d.Host, d.Port, d.Database, d.Schema, d.User != "", d.Password != "")
}

func valueOrDefault(value *int, defaultValue int) int {
	if value == nil {
		return defaultValue
	}
	return *value
}

func (d DB) ConnectionTimeout() time.Duration {
	return time.Duration(valueOrDefault(d.ConnectionTimeoutSeconds, constants.DefaultConnectionTimeoutSeconds)) * time.Second
}

func (d DB) ConnectRetries() int {
	return valueOrDefault(d.ConnectRetryCount, constants.DefaultConnectRetryCount)
}

func (d DB) ConnectRetryInterval() time.Duration {
	return time.Duration(valueOrDefault(d.ConnectRetryIntervalSeconds, constants.DefaultConnectRetryIntervalSeconds)) * time.Second
}

// QueryTimeout of zero leaves statements unbounded.
func (d DB) QueryTimeout() time.Duration {
	return time.Duration(valueOrDefault(d.QueryTimeoutSeconds, constants.DefaultQueryTimeoutSeconds)) * time.Second
}

type Parameters struct {
	DB                 DB                        `json:"db"`
	CredentialsType    constants.CredentialsType `json:"absCredentialsType"`
	ImportDelaySeconds *int                      `json:"importDelaySeconds,omitempty"`

	// A single table may be configured inline, [Tables] takes precedence when set.
	Table
	Tables []Table `json:"tables"`
}

func (p Parameters) ImportDelay() time.Duration {
	if p.ImportDelaySeconds == nil {
		return constants.DefaultImportDelay
	}
	return time.Duration(*p.ImportDelaySeconds) * time.Second
}

type Sentry struct {
	DSN string `json:"dsn"`
}

type ImageParameters struct {
	Reporting struct {
		Sentry *Sentry `json:"sentry"`
	} `json:"reporting"`

	Telemetry struct {
		Metrics struct {
			Provider constants.ExporterKind `json:"provider"`
			Settings map[string]any         `json:"settings,omitempty"`
		} `json:"metrics"`
	} `json:"telemetry"`
}

type Config struct {
	Action          constants.Action `json:"action"`
	Parameters      Parameters       `json:"parameters"`
	ImageParameters ImageParameters  `json:"image_parameters"`
}

// Tables returns the tables to load, in the order they were configured.
func (c Config) Tables() []Table {
	if len(c.Parameters.Tables) > 0 {
		return c.Parameters.Tables
	}

	if c.Parameters.Table.DBName == "" && c.Parameters.Table.TableID == "" {
		return nil
	}

	return []Table{c.Parameters.Table}
}

func (c *Config) applyDefaults() {
	if c.Action == "" {
		c.Action = constants.Run
	}

	db := &c.Parameters.DB
	if db.Port == 0 {
		db.Port = constants.DefaultPort
	}
	if db.Schema == "" {
		db.Schema = constants.DefaultSchema
	}
	if db.ConnectionTimeoutSeconds == nil {
		db.ConnectionTimeoutSeconds = ptr.To(constants.DefaultConnectionTimeoutSeconds)
	}
	if db.ConnectRetryCount == nil {
		db.ConnectRetryCount = ptr.To(constants.DefaultConnectRetryCount)
	}
	if db.ConnectRetryIntervalSeconds == nil {
		db.ConnectRetryIntervalSeconds = ptr.To(constants.DefaultConnectRetryIntervalSeconds)
	}
	if db.QueryTimeoutSeconds == nil {
		db.QueryTimeoutSeconds = ptr.To(constants.DefaultQueryTimeoutSeconds)
	}

	if c.Parameters.CredentialsType == "" {
		c.Parameters.CredentialsType = constants.SAS
	}
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, loaderr.NewConfigurationError(fmt.Sprintf("failed to parse config: %v", err))
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func readFileToConfig(pathToConfig string) (*Config, error) {
	data, err := os.ReadFile(pathToConfig)
	if err != nil {
		return nil, loaderr.NewConfigurationError(fmt.Sprintf("failed to read config file: %v", err))
	}

	return Parse(data)
}

// ReadConfig reads and validates <dataDir>/config.json.
func ReadConfig(dataDir string) (*Config, error) {
	cfg, err := readFileToConfig(filepath.Join(dataDir, configFileName))
	if err != nil {
		return nil, err
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
