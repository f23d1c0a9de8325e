package constants

import "time"

const (
	// StagingTablePrefix is prepended to every staging table name.
	StagingTablePrefix = "_db_writer_stage"

	// SwapSuffix is appended to the destination table while its storage is being exchanged with the staging table.
	SwapSuffix = "_old"

	// MaxIdentifierLength is Synapse's limit for table and column identifiers.
	MaxIdentifierLength = 128

	// IgnoreType marks a configured column that is excluded from DDL and data movement.
	IgnoreType = "ignore"

	DefaultPort                        = 1433
	DefaultSchema                      = "dbo"
	DefaultImportDelay                 = 5 * time.Second
	DefaultConnectionTimeoutSeconds    = 30
	DefaultConnectRetryCount           = 3
	DefaultConnectRetryIntervalSeconds = 10
	DefaultQueryTimeoutSeconds         = 10800

	// ApplicationName is reported to the warehouse as the client "app name".
	ApplicationName = "synapse-writer"
)

// ExporterKind is used for the Telemetry package
type ExporterKind string

const (
	Datadog ExporterKind = "datadog"
)

// CredentialsType selects how the warehouse authenticates against blob storage during COPY INTO.
type CredentialsType string

const (
	SAS             CredentialsType = "sas"
	ManagedIdentity CredentialsType = "managed_identity"
)

type Action string

const (
	Run            Action = "run"
	TestConnection Action = "testConnection"
)

// LoadMode is used for logging and metric tags.
type LoadMode string

const (
	FullLoad        LoadMode = "full"
	IncrementalLoad LoadMode = "incremental"
)
