package abslib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// BlobStore is the subset of blob storage the staging adapter needs.
type BlobStore interface {
	// CheckBlob returns nil when the blob exists and is readable.
	CheckBlob(ctx context.Context, container, path string) error
	GetBlob(ctx context.Context, container, path string) (io.ReadCloser, error)
}

type Client struct {
	client *azblob.Client
}

func clientOptions() *azblob.ClientOptions {
	return &azblob.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    3,
				TryTimeout:    time.Minute,
				RetryDelay:    time.Second,
				MaxRetryDelay: 30 * time.Second,
			},
		},
	}
}

// NewClient uses the SAS token when present, otherwise the default Azure credential chain (managed identity, env, CLI).
func NewClient(connectionString ConnectionString) (*Client, error) {
	if connectionString.SharedAccessSignature != "" {
		client, err := azblob.NewClientWithNoCredential(connectionString.ServiceURL(), clientOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to create blob client with shared access signature: %w", err)
		}
		return &Client{client: client}, nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load default Azure credentials: %w", err)
	}

	client, err := azblob.NewClient(connectionString.ServiceURL(), cred, clientOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	return &Client{client: client}, nil
}

func (c *Client) CheckBlob(ctx context.Context, container, path string) error {
	blobClient := c.client.ServiceClient().NewContainerClient(container).NewBlobClient(path)
	if _, err := blobClient.GetProperties(ctx, nil); err != nil {
		return fmt.Errorf("blob %q in container %q is not available: %s", path, container, ErrorText(err))
	}
	return nil
}

func (c *Client) GetBlob(ctx context.Context, container, path string) (io.ReadCloser, error) {
	resp, err := c.client.DownloadStream(ctx, container, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download blob %q from container %q: %s", path, container, ErrorText(err))
	}
	return resp.Body, nil
}

// ErrorText renders a storage failure without the request URL.
func ErrorText(err error) string {
	if err == nil {
		return ""
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		if respErr.ErrorCode != "" {
			return fmt.Sprintf("%s (HTTP %d)", respErr.ErrorCode, respErr.StatusCode)
		}
		return fmt.Sprintf("HTTP %d", respErr.StatusCode)
	}

	return err.Error()
}
