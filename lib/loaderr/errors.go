package loaderr

import (
	"errors"
	"fmt"
)

// ConfigurationError is returned when the job configuration or the extract manifest is invalid.
type ConfigurationError struct {
	message string
}

func NewConfigurationError(message string) ConfigurationError {
	return ConfigurationError{message: message}
}

func (c ConfigurationError) Error() string {
	return c.message
}

func IsConfigurationError(err error) bool {
	return errors.As(err, &ConfigurationError{})
}

// UnsupportedStorageError is returned when the manifest references a staging storage we cannot read.
type UnsupportedStorageError struct {
	storage string
}

func NewUnsupportedStorageError(storage string) UnsupportedStorageError {
	return UnsupportedStorageError{storage: storage}
}

func (u UnsupportedStorageError) Error() string {
	if u.storage == "" {
		return "Unknown staging storage"
	}
	return fmt.Sprintf("%s staging storage is not implemented", u.storage)
}

func IsUnsupportedStorageError(err error) bool {
	return errors.As(err, &UnsupportedStorageError{})
}

// StagingNotFoundError is returned when a referenced blob is missing or cannot be read.
type StagingNotFoundError struct {
	storageErrorText string
}

func NewStagingNotFoundError(storageErrorText string) StagingNotFoundError {
	return StagingNotFoundError{storageErrorText: storageErrorText}
}

func (s StagingNotFoundError) Error() string {
	return "Load error: " + s.storageErrorText
}

func IsStagingNotFoundError(err error) bool {
	return errors.As(err, &StagingNotFoundError{})
}

// EmptyExtractError means the sliced manifest listed no files. Callers treat it as "nothing to import".
type EmptyExtractError struct{}

func (EmptyExtractError) Error() string {
	return "the extract has no entries to import"
}

func IsEmptyExtractError(err error) bool {
	return errors.As(err, &EmptyExtractError{})
}

// WarehouseExecutionError wraps a driver failure together with the (already redacted) statement.
type WarehouseExecutionError struct {
	query string
	err   error
}

func NewWarehouseExecutionError(redactedQuery string, err error) WarehouseExecutionError {
	return WarehouseExecutionError{query: redactedQuery, err: err}
}

func (w WarehouseExecutionError) Error() string {
	return fmt.Sprintf("Query execution error: %v", w.err)
}

func (w WarehouseExecutionError) Query() string {
	return w.query
}

func (w WarehouseExecutionError) Unwrap() error {
	return w.err
}

func IsWarehouseExecutionError(err error) bool {
	return errors.As(err, &WarehouseExecutionError{})
}

// ApplicationError signals a defect (contract violation) rather than bad input.
type ApplicationError struct {
	message string
}

func NewApplicationError(message string) ApplicationError {
	return ApplicationError{message: message}
}

func (a ApplicationError) Error() string {
	return a.message
}

func IsApplicationError(err error) bool {
	return errors.As(err, &ApplicationError{})
}

// LoadError is the per-table boundary error. It keeps the cause's message as-is.
type LoadError struct {
	table string
	err   error
}

func NewLoadError(table string, err error) LoadError {
	return LoadError{table: table, err: err}
}

func (l LoadError) Error() string {
	return l.err.Error()
}

func (l LoadError) Table() string {
	return l.table
}

func (l LoadError) Unwrap() error {
	return l.err
}

func IsLoadError(err error) bool {
	return errors.As(err, &LoadError{})
}

type ExitCode int

const (
	ExitSuccess          ExitCode = 0
	ExitUserError        ExitCode = 1
	ExitApplicationError ExitCode = 2
)

// ExitCodeFor maps an error onto the process exit code: defects exit with 2, everything else the caller can fix exits with 1.
func ExitCodeFor(err error) ExitCode {
	switch {
	case err == nil:
		return ExitSuccess
	case IsApplicationError(err):
		return ExitApplicationError
	default:
		return ExitUserError
	}
}
