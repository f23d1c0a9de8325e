package config

import (
	"fmt"

	"github.com/artie-labs/synapse-writer/lib/config/constants"
	"github.com/artie-labs/synapse-writer/lib/loaderr"
	"github.com/artie-labs/synapse-writer/lib/stringutil"
)

func (d DB) Validate() error {
	if stringutil.Empty(d.Host, d.User, d.Password, d.Database) {
		return loaderr.NewConfigurationError("one of db settings is empty (host, user, #password, database)")
	}

	if d.Port <= 0 {
		return loaderr.NewConfigurationError(fmt.Sprintf("invalid db port: %d", d.Port))
	}

	if d.ConnectionTimeout() < 0 || d.ConnectRetries() < 0 || d.ConnectRetryInterval() < 0 || d.QueryTimeout() < 0 {
		return loaderr.NewConfigurationError("db timeouts and retry settings cannot be negative")
	}

	return nil
}

func (t Table) Validate() error {
	if stringutil.Empty(t.TableID, t.DBName) {
		return loaderr.NewConfigurationError("table is missing tableId or dbName")
	}

	seen := make(map[string]bool, len(t.Items))
	for i, item := range t.Items {
		if stringutil.Empty(item.Name, item.DBName, item.Type) {
			return loaderr.NewConfigurationError(fmt.Sprintf("table %q: item %d is missing name, dbName or type", t.DBName, i))
		}

		if !item.IsIgnored() && !IsAllowedType(item.Type) {
			return loaderr.NewConfigurationError(fmt.Sprintf("table %q: column %q has unsupported type %q", t.DBName, item.Name, item.Type))
		}

		if seen[item.Name] {
			return loaderr.NewConfigurationError(fmt.Sprintf("table %q: column %q is configured more than once", t.DBName, item.Name))
		}
		seen[item.Name] = true
	}

	return nil
}

// Validate checks the whole job configuration. It never contacts the warehouse or blob storage.
func (c Config) Validate() error {
	switch c.Action {
	case constants.Run, constants.TestConnection:
	default:
		return loaderr.NewConfigurationError(fmt.Sprintf("action %q is not supported", c.Action))
	}

	if err := c.Parameters.DB.Validate(); err != nil {
		return err
	}

	switch c.Parameters.CredentialsType {
	case constants.SAS, constants.ManagedIdentity:
	default:
		return loaderr.NewConfigurationError(fmt.Sprintf("absCredentialsType %q is not supported", c.Parameters.CredentialsType))
	}

	if c.Parameters.ImportDelaySeconds != nil && *c.Parameters.ImportDelaySeconds < 0 {
		return loaderr.NewConfigurationError(fmt.Sprintf("invalid importDelaySeconds: %d", *c.Parameters.ImportDelaySeconds))
	}

	if c.Action == constants.TestConnection {
		return nil
	}

	for _, table := range c.Tables() {
		if err := table.Validate(); err != nil {
			return err
		}
	}

	return nil
}
