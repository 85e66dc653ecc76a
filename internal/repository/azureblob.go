package repository

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"go.uber.org/zap"
)

// AzureBlobAPI persists the health document as a single block blob
type AzureBlobAPI struct {
	client        *azblob.Client
	containerName string
	blobName      string
	logger        *zap.Logger
}

// NewAzureBlobStore creates a RecordStore backed by Azure Blob Storage
func NewAzureBlobStore(accountName, accountKey, containerName, blobName string, logger *zap.Logger) (*DocumentStore, error) {
	if accountName == "" || accountKey == "" || containerName == "" {
		return nil, fmt.Errorf("accountName, accountKey, and containerName are required")
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)

	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared key credential: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	api := &AzureBlobAPI{
		client:        client,
		containerName: containerName,
		blobName:      blobName,
		logger:        logger,
	}
	return NewDocumentStore(api, logger), nil
}

// Load downloads the health document blob
func (a *AzureBlobAPI) Load(ctx context.Context) ([]byte, error) {
	blobClient := a.client.ServiceClient().NewContainerClient(a.containerName).NewBlockBlobClient(a.blobName)

	downloadResponse, err := blobClient.DownloadStream(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download health document: %w", err)
	}
	defer downloadResponse.Body.Close()

	data, err := io.ReadAll(downloadResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read health document: %w", err)
	}

	a.logger.Debug("health document downloaded",
		zap.String("blob_name", a.blobName),
		zap.Int("size_bytes", len(data)),
	)

	return data, nil
}

// Store replaces the health document blob
func (a *AzureBlobAPI) Store(ctx context.Context, data []byte) error {
	blobClient := a.client.ServiceClient().NewContainerClient(a.containerName).NewBlockBlobClient(a.blobName)

	_, err := blobClient.UploadBuffer(ctx, data, &azblob.UploadBufferOptions{
		Metadata: map[string]*string{
			"contenttype": toPtr("application/json"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload health document: %w", err)
	}

	a.logger.Debug("health document uploaded",
		zap.String("blob_name", a.blobName),
		zap.Int("size_bytes", len(data)),
	)

	return nil
}

func toPtr(s string) *string {
	return &s
}
