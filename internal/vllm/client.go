package vllm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hanbit-ml/sftool/internal/logger"
)

// Client is a minimal HTTP client for the served OpenAI-compatible endpoint.
// It is only used to check whether the model server has finished loading.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL (e.g., http://localhost:8000).
// apiKey may be empty when the server runs without authentication.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Ready checks the /v1/models endpoint once.
//
// vLLM answers this route only after the model weights are loaded, so a 200
// response means the server can take inference requests.
func (c *Client) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/models", nil)
	if err != nil {
		return fmt.Errorf("building readiness request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("server not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	return nil
}

// WaitReady polls the endpoint until it is ready or ctx is done.
//
// Model loading can take minutes for large models; the caller bounds the
// wait through the context deadline.
func (c *Client) WaitReady(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := c.Ready(ctx); err == nil {
			return nil
		} else {
			logger.Debug("Endpoint not ready yet: %v", err)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for %s: %w", c.baseURL, ctx.Err())
		case <-ticker.C:
		}
	}
}
