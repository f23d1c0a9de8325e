package abslib

import (
	"fmt"
	"strings"
)

const (
	blobEndpointKey          = "BlobEndpoint"
	sharedAccessSignatureKey = "SharedAccessSignature"
)

type ConnectionString struct {
	BlobEndpoint string
	// SharedAccessSignature is the SAS query string without the leading "?". Empty means no token was issued.
	SharedAccessSignature string
}

// ParseConnectionString parses "BlobEndpoint=https://...;SharedAccessSignature=sv=...&sig=...".
// Errors never include the connection string itself.
func ParseConnectionString(connectionString string) (ConnectionString, error) {
	var result ConnectionString
	for _, part := range strings.Split(connectionString, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, value, found := strings.Cut(part, "=")
		if !found {
			return ConnectionString{}, fmt.Errorf("malformed connection string segment, expected key=value")
		}

		switch {
		case strings.EqualFold(key, blobEndpointKey):
			result.BlobEndpoint = strings.TrimSuffix(value, "/")
		case strings.EqualFold(key, sharedAccessSignatureKey):
			result.SharedAccessSignature = strings.TrimPrefix(value, "?")
		}
	}

	if result.BlobEndpoint == "" {
		return ConnectionString{}, fmt.Errorf("connection string is missing %s", blobEndpointKey)
	}

	if !strings.HasPrefix(result.BlobEndpoint, "https://") {
		return ConnectionString{}, fmt.Errorf("%s must be an https URL", blobEndpointKey)
	}

	return result, nil
}

// ServiceURL returns the endpoint with the SAS token appended, this is what the SDK expects for token access.
func (c ConnectionString) ServiceURL() string {
	if c.SharedAccessSignature == "" {
		return c.BlobEndpoint + "/"
	}
	return c.BlobEndpoint + "/?" + c.SharedAccessSignature
}
