package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// JSONBlobAPI speaks the whole-document blob protocol: GET fetches the
// document by its fixed identifier, PUT replaces it wholesale.
type JSONBlobAPI struct {
	baseURL    string
	blobID     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewJSONBlobStore creates a RecordStore backed by a hosted JSON blob
func NewJSONBlobStore(baseURL, blobID string, timeout time.Duration, logger *zap.Logger) (*DocumentStore, error) {
	if baseURL == "" || blobID == "" {
		return nil, fmt.Errorf("baseURL and blobID are required")
	}

	api := &JSONBlobAPI{
		baseURL:    baseURL,
		blobID:     blobID,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
	return NewDocumentStore(api, logger), nil
}

func (a *JSONBlobAPI) url() string {
	return fmt.Sprintf("%s/jsonBlob/%s", a.baseURL, a.blobID)
}

// Load fetches the whole document
func (a *JSONBlobAPI) Load(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("blob store returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	a.logger.Debug("health document fetched", zap.Int("size_bytes", len(data)))
	return data, nil
}

// Store replaces the whole document
func (a *JSONBlobAPI) Store(ctx context.Context, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, a.url(), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("put document: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("blob store returned status %d", resp.StatusCode)
	}

	a.logger.Debug("health document stored", zap.Int("size_bytes", len(data)))
	return nil
}
