package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"release-notes-plugin/internal/domain"
)

// GeneratorClient talks to the release notes generator service over HTTP.
// It implements domain.Generator and domain.ServiceClient.
type GeneratorClient struct {
	baseURL    string
	httpClient *http.Client
}

var (
	_ domain.Generator     = (*GeneratorClient)(nil)
	_ domain.ServiceClient = (*GeneratorClient)(nil)
)

// NewGeneratorClient creates a new generator API client.
// The baseURL should be the root URL of the generator service (e.g., "https://relnotes.example.com").
// The httpClient should come from domain.NewAuthenticatedClient.
func NewGeneratorClient(baseURL string, httpClient *http.Client) *GeneratorClient {
	return &GeneratorClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the configured base URL for the generator service.
func (c *GeneratorClient) BaseURL() string {
	return c.baseURL
}

// Do executes an HTTP request with the client's authentication.
func (c *GeneratorClient) Do(req *http.Request) (*http.Response, error) {
	// Set common headers
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if id := domain.InvocationIDFromContext(req.Context()); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	return c.httpClient.Do(req)
}

// Generate asks the service to produce release notes for req.
// The call blocks until the service answers or ctx is done.
func (c *GeneratorClient) Generate(ctx context.Context, req domain.InvocationRequest) error {
	endpoint := fmt.Sprintf("%s/api/v1/release-notes", c.baseURL)

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal invocation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}
}
