package loaderr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnsupportedStorageError(t *testing.T) {
	assert.Equal(t, "Unknown staging storage", NewUnsupportedStorageError("").Error())
	assert.Equal(t, "s3 staging storage is not implemented", NewUnsupportedStorageError("s3").Error())
	assert.True(t, IsUnsupportedStorageError(fmt.Errorf("wrapped: %w", NewUnsupportedStorageError("s3"))))
	assert.False(t, IsUnsupportedStorageError(errors.New("s3 staging storage is not implemented")))
}

func TestStagingNotFoundError(t *testing.T) {
	err := NewStagingNotFoundError("BlobNotFound: The specified blob does not exist.")
	assert.Equal(t, "Load error: BlobNotFound: The specified blob does not exist.", err.Error())
	assert.True(t, IsStagingNotFoundError(err))
	assert.False(t, IsEmptyExtractError(err))
}

func TestEmptyExtractError(t *testing.T) {
	err := fmt.Errorf("failed to generate import: %w", EmptyExtractError{})
	assert.True(t, IsEmptyExtractError(err))
	assert.False(t, IsStagingNotFoundError(err))
}

func TestWarehouseExecutionError(t *testing.T) {
	cause := errors.New("Invalid object name 'foo'.")
	err := NewWarehouseExecutionError("SELECT * FROM foo", cause)
	assert.Equal(t, "Query execution error: Invalid object name 'foo'.", err.Error())
	assert.Equal(t, "SELECT * FROM foo", err.Query())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsWarehouseExecutionError(NewLoadError("foo", err)))
}

func TestLoadError(t *testing.T) {
	err := NewLoadError("orders", NewStagingNotFoundError("missing"))
	assert.Equal(t, "Load error: missing", err.Error())
	assert.Equal(t, "orders", err.Table())
	assert.True(t, IsLoadError(err))
	assert.True(t, IsStagingNotFoundError(err))
}

func TestExitCodeFor(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected ExitCode
	}{
		{name: "nil", err: nil, expected: ExitSuccess},
		{name: "configuration", err: NewConfigurationError("missing host"), expected: ExitUserError},
		{name: "warehouse", err: NewLoadError("t", NewWarehouseExecutionError("q", errors.New("boom"))), expected: ExitUserError},
		{name: "plain", err: errors.New("boom"), expected: ExitUserError},
		{name: "application", err: NewLoadError("t", NewApplicationError("not implemented")), expected: ExitApplicationError},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, ExitCodeFor(testCase.err), testCase.name)
	}
}
