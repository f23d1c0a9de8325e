package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/artie-labs/synapse-writer/lib/loaderr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ABSCredentials struct {
	SASConnectionString string `json:"sas_connection_string"`
	Expiration          string `json:"expiration"`
}

// ABS describes an extract staged in Azure Blob Storage.
type ABS struct {
	IsSliced    bool           `json:"is_sliced"`
	Region      string         `json:"region"`
	Container   string         `json:"container"`
	Name        string         `json:"name"`
	Credentials ABSCredentials `json:"credentials"`
}

type Manifest struct {
	ID      string   `json:"id"`
	Columns []string `json:"columns"`

	ABS *ABS `json:"abs,omitempty"`
	// S3 is only inspected for presence, S3 staging is not supported.
	S3 jsoniter.RawMessage `json:"s3,omitempty"`
}

func (m Manifest) HasS3() bool {
	return len(m.S3) > 0 && string(m.S3) != "null"
}

// Path returns <dataDir>/in/tables/<tableID>.csv.manifest.
func Path(dataDir, tableID string) string {
	return filepath.Join(dataDir, "in", "tables", tableID+".csv.manifest")
}

func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, loaderr.NewConfigurationError(fmt.Sprintf("failed to parse manifest: %v", err))
	}
	return m, nil
}

func Read(dataDir, tableID string) (Manifest, error) {
	path := Path(dataDir, tableID)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Manifest{}, loaderr.NewConfigurationError(fmt.Sprintf("manifest for table %q was not found at %q", tableID, path))
		}
		return Manifest{}, loaderr.NewConfigurationError(fmt.Sprintf("failed to read manifest for table %q: %v", tableID, err))
	}

	return Parse(data)
}
