package staging

import (
	"context"
	"fmt"
	"time"

	"github.com/artie-labs/synapse-writer/lib/abslib"
	"github.com/artie-labs/synapse-writer/lib/config/constants"
	"github.com/artie-labs/synapse-writer/lib/loaderr"
	"github.com/artie-labs/synapse-writer/lib/manifest"
)

// ImportColumn maps a staging table column onto a 1-based CSV field.
type ImportColumn struct {
	EscapedName string
	FieldNumber int
}

// Adapter produces the warehouse bulk-import statement for one staged extract.
type Adapter interface {
	GenerateImportToStageSQL(ctx context.Context, escapedTable string, columns []ImportColumn) (string, error)
}

type NewBlobStoreFunc func(connectionString abslib.ConnectionString) (abslib.BlobStore, error)

func newABSClient(connectionString abslib.ConnectionString) (abslib.BlobStore, error) {
	return abslib.NewClient(connectionString)
}

type Args struct {
	CredentialsType constants.CredentialsType
	ImportDelay     time.Duration
	// NewBlobStore defaults to the Azure SDK client.
	NewBlobStore NewBlobStoreFunc
}

// NewAdapter picks the adapter for the storage the manifest points at.
func NewAdapter(m manifest.Manifest, args Args) (Adapter, error) {
	if m.HasS3() {
		return nil, loaderr.NewUnsupportedStorageError("S3")
	}

	if m.ABS == nil {
		return nil, loaderr.NewUnsupportedStorageError("")
	}

	connectionString, err := abslib.ParseConnectionString(m.ABS.Credentials.SASConnectionString)
	if err != nil {
		return nil, loaderr.NewConfigurationError(fmt.Sprintf("invalid abs credentials in manifest: %v", err))
	}

	newBlobStore := args.NewBlobStore
	if newBlobStore == nil {
		newBlobStore = newABSClient
	}

	store, err := newBlobStore(connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store client: %w", err)
	}

	return NewABSAdapter(store, StagingManifest{
		IsSliced:              m.ABS.IsSliced,
		Container:             m.ABS.Container,
		Name:                  m.ABS.Name,
		BlobEndpoint:          connectionString.BlobEndpoint,
		SharedAccessSignature: connectionString.SharedAccessSignature,
	}, args.CredentialsType, args.ImportDelay), nil
}

type NullAdapter struct{}

func (NullAdapter) GenerateImportToStageSQL(_ context.Context, _ string, _ []ImportColumn) (string, error) {
	return "", loaderr.NewApplicationError("no staging adapter is configured")
}
