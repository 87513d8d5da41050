package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Olocraft/propady/pkg/config"
)

// Client talks to a supabase-compatible object storage API. The service keeps
// listing images and crowdfunding project covers in storage buckets and only
// persists their public URLs.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Error is an error response returned by the storage API.
type Error struct {
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage request failed (%d): %s", e.StatusCode, e.Message)
}

// New creates a storage client from configuration
func New(cfg *config.StorageConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Upload stores an object under bucket/path. Existing objects at the same path
// are not overwritten; callers namespace paths with the owning record id and a
// timestamp-prefixed file name to avoid collisions.
func (c *Client) Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("apikey", c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return parseError(respBody, resp.StatusCode)
	}

	return nil
}

// PublicURL resolves the public URL for an object. This is a pure string
// operation; the storage API serves public buckets without authentication.
func (c *Client) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, bucket, path)
}

// parseError parses an error response body into an Error
func parseError(body []byte, statusCode int) error {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if err := json.Unmarshal(body, &errResp); err != nil {
		return &Error{Message: string(body), StatusCode: statusCode}
	}

	msg := errResp.Message
	if msg == "" {
		msg = errResp.Error
	}

	return &Error{Message: msg, StatusCode: statusCode}
}
