package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// imageMIMEType tags inline image parts sent with chat requests
const imageMIMEType = "image/jpeg"

// GenerationConfig holds the sampling parameters sent with each request
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// AnalysisConfig is the fixed generation config for single-shot analysis
var AnalysisConfig = GenerationConfig{
	Temperature:     0.7,
	TopK:            40,
	TopP:            0.95,
	MaxOutputTokens: 2048,
}

// ChatConfig is the fixed generation config for chat responses
var ChatConfig = GenerationConfig{
	Temperature:     0.8,
	TopK:            40,
	TopP:            0.95,
	MaxOutputTokens: 1024,
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Client calls the Gemini generateContent endpoint. Each call is a single
// attempt: no retry, no caching, no rate limiting.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Gemini API client
func NewClient(endpoint, apiKey string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if endpoint == "" || apiKey == "" {
		return nil, fmt.Errorf("endpoint and apiKey are required")
	}

	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// GenerateContent sends prompt (and, when non-empty, base64 image bytes as an
// inline image part) to the API and returns the raw response text. It returns
// a *ServiceError on a non-success status and ErrEmptyResponse when the
// success envelope has no text.
func (c *Client) GenerateContent(ctx context.Context, prompt, imageData string, cfg GenerationConfig) (string, error) {
	parts := []part{{Text: prompt}}
	if imageData != "" {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: imageMIMEType,
			Data:     imageData,
		}})
	}

	payload, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: parts}},
		GenerationConfig: cfg,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-goog-api-key", c.apiKey)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("gemini api returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.Duration("request_time", time.Since(requestStart)),
		)
		return "", &ServiceError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var envelope generateResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("parse response envelope: %w", err)
	}

	text := envelope.text()
	if text == "" {
		c.logger.Error("gemini response carried no text",
			zap.Int("candidates", len(envelope.Candidates)),
		)
		return "", ErrEmptyResponse
	}

	c.logger.Info("gemini request completed",
		zap.Duration("request_time", time.Since(requestStart)),
		zap.Int("response_length", len(text)),
		zap.Bool("with_image", imageData != ""),
	)

	return text, nil
}

// text extracts candidates[0].content.parts[0].text, or "" if absent
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	parts := r.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}
