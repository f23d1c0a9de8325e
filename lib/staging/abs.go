package staging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/artie-labs/synapse-writer/lib/abslib"
	"github.com/artie-labs/synapse-writer/lib/config/constants"
	"github.com/artie-labs/synapse-writer/lib/loaderr"
	"github.com/artie-labs/synapse-writer/lib/sql"
)

const (
	storageScheme = "azure://"
	httpsScheme   = "https://"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StagingManifest is the resolved location of one extract in blob storage.
type StagingManifest struct {
	IsSliced  bool
	Container string
	// Name is the blob itself, or the manifest-of-parts when IsSliced is set.
	Name                  string
	BlobEndpoint          string
	SharedAccessSignature string
}

func (s StagingManifest) containerURL() string {
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.BlobEndpoint, "/"), s.Container)
}

type manifestOfParts struct {
	Entries []struct {
		URL string `json:"url"`
	} `json:"entries"`
}

type ABSAdapter struct {
	store           abslib.BlobStore
	manifest        StagingManifest
	credentialsType constants.CredentialsType
	importDelay     time.Duration
}

func NewABSAdapter(store abslib.BlobStore, manifest StagingManifest, credentialsType constants.CredentialsType, importDelay time.Duration) *ABSAdapter {
	return &ABSAdapter{
		store:           store,
		manifest:        manifest,
		credentialsType: credentialsType,
		importDelay:     importDelay,
	}
}

func (a *ABSAdapter) GenerateImportToStageSQL(ctx context.Context, escapedTable string, columns []ImportColumn) (string, error) {
	credentials, err := a.credentialsClause()
	if err != nil {
		return "", err
	}

	entries, err := a.entries(ctx)
	if err != nil {
		return "", err
	}

	if len(entries) == 0 {
		return "", loaderr.EmptyExtractError{}
	}

	if err = a.wait(ctx); err != nil {
		return "", err
	}

	return fmt.Sprintf("COPY INTO %s%s FROM %s WITH (FILE_TYPE='CSV', CREDENTIAL=(%s), FIELDQUOTE=%s, FIELDTERMINATOR=%s, ENCODING='UTF8', ROWTERMINATOR='0x0A', IDENTITY_INSERT='OFF');",
		escapedTable,
		columnList(columns),
		strings.Join(sql.QuoteLiterals(entries), ", "),
		credentials,
		sql.QuoteLiteral(`"`),
		sql.QuoteLiteral(","),
	), nil
}

func columnList(columns []ImportColumn) string {
	if len(columns) == 0 {
		return ""
	}

	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = fmt.Sprintf("%s %d", column.EscapedName, column.FieldNumber)
	}
	return fmt.Sprintf(" (%s)", strings.Join(parts, ", "))
}

func (a *ABSAdapter) credentialsClause() (string, error) {
	switch a.credentialsType {
	case constants.SAS:
		if a.manifest.SharedAccessSignature == "" {
			return "", loaderr.NewConfigurationError("the manifest does not carry a shared access signature")
		}
		return fmt.Sprintf("IDENTITY='Shared Access Signature', SECRET=%s", sql.QuoteLiteral("?"+a.manifest.SharedAccessSignature)), nil
	case constants.ManagedIdentity:
		return "IDENTITY='Managed Identity'", nil
	default:
		return "", loaderr.NewApplicationError(fmt.Sprintf("unknown credentials type %q", a.credentialsType))
	}
}

// wait gives freshly written blobs time to become visible to the import engine.
func (a *ABSAdapter) wait(ctx context.Context) error {
	if a.importDelay <= 0 {
		return nil
	}

	slog.Debug("Waiting before the import", slog.Duration("delay", a.importDelay))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(a.importDelay):
		return nil
	}
}

func (a *ABSAdapter) entries(ctx context.Context) ([]string, error) {
	if !a.manifest.IsSliced {
		if err := a.store.CheckBlob(ctx, a.manifest.Container, a.manifest.Name); err != nil {
			return nil, loaderr.NewStagingNotFoundError(err.Error())
		}
		return []string{fmt.Sprintf("%s/%s", a.manifest.containerURL(), a.manifest.Name)}, nil
	}

	parts, err := a.readManifestOfParts(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]string, 0, len(parts.Entries))
	for _, entry := range parts.Entries {
		blobPath, err := blobPathFromURL(entry.URL, a.manifest.Container)
		if err != nil {
			return nil, loaderr.NewStagingNotFoundError(err.Error())
		}

		if err = a.store.CheckBlob(ctx, a.manifest.Container, blobPath); err != nil {
			return nil, loaderr.NewStagingNotFoundError(err.Error())
		}

		entries = append(entries, toHTTPS(entry.URL))
	}

	return entries, nil
}

func (a *ABSAdapter) readManifestOfParts(ctx context.Context) (manifestOfParts, error) {
	body, err := a.store.GetBlob(ctx, a.manifest.Container, a.manifest.Name)
	if err != nil {
		return manifestOfParts{}, loaderr.NewStagingNotFoundError(fmt.Sprintf("manifest file was not found: %v", err))
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return manifestOfParts{}, loaderr.NewStagingNotFoundError(fmt.Sprintf("failed to read manifest file: %v", err))
	}

	var parts manifestOfParts
	if err = json.Unmarshal(data, &parts); err != nil {
		return manifestOfParts{}, loaderr.NewConfigurationError(fmt.Sprintf("manifest file %q is not valid: %v", a.manifest.Name, err))
	}

	return parts, nil
}

// blobPathFromURL returns the path inside container for azure://acc.blob.core.windows.net/<container>/<path>.
func blobPathFromURL(entryURL, container string) (string, error) {
	marker := fmt.Sprintf(".blob.core.windows.net/%s/", container)
	_, blobPath, found := strings.Cut(entryURL, marker)
	if !found || blobPath == "" {
		return "", fmt.Errorf("entry %q does not point into container %q", entryURL, container)
	}
	return blobPath, nil
}

func toHTTPS(entryURL string) string {
	if strings.HasPrefix(entryURL, storageScheme) {
		return httpsScheme + strings.TrimPrefix(entryURL, storageScheme)
	}
	return entryURL
}
