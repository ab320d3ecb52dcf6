package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ikkim/recipe-box/pkg/logger"
)

// maxResponseBytes caps how much of the webhook body is read
const maxResponseBytes = 2 << 20

// Client calls the recipe import webhook
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new import client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Fetch asks the webhook to scrape recipeURL and returns the parsed draft
func (c *Client) Fetch(ctx context.Context, recipeURL string) (*Recipe, error) {
	recipeURL = strings.TrimSpace(recipeURL)
	u, err := url.Parse(recipeURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}

	body, err := c.doRequest(ctx, Request{URL: recipeURL})
	if err != nil {
		return nil, err
	}
	return parseRecipe(body)
}

// doRequest posts payload as JSON and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, payload interface{}) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.WebhookURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	logger.Debug("Calling recipe import webhook", map[string]interface{}{
		"payload_bytes": len(reqBody),
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrNetworkError, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamStatus, resp.StatusCode)
	}
	return body, nil
}
