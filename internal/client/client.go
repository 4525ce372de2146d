// Package client talks to a running buildcfg inspection server.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nauticalab/buildcfg/internal/api"
	"github.com/nauticalab/buildcfg/internal/validation"
	"github.com/nauticalab/buildcfg/pkg/buildconfig"
)

const (
	// DefaultBaseURL matches the serve command defaults
	DefaultBaseURL = "http://127.0.0.1:5190"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 10 * time.Second
)

// Client represents an HTTP client for the inspection server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds configuration for the client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// New creates a new inspection server client
func New(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// doRequest performs a GET request against the server
func (c *Client) doRequest(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// parseResponse parses the HTTP response into the target structure.
// A 422 response is turned back into a *validation.ConfigError.
func parseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnprocessableEntity {
		var invalid api.InvalidConfigResponse
		if err := json.Unmarshal(bodyBytes, &invalid); err == nil && len(invalid.Violations) > 0 {
			cfgErr := &validation.ConfigError{}
			for _, v := range invalid.Violations {
				cfgErr.Violations = append(cfgErr.Violations, validation.Violation{
					Kind:    v.Kind,
					Path:    v.Path,
					Message: v.Message,
				})
			}
			return cfgErr
		}
	}

	if resp.StatusCode >= 400 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(bodyBytes, &errResp); err != nil {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))
		}
		return fmt.Errorf("API error: %s (code: %d)", errResp.Message, errResp.Code)
	}

	if target != nil {
		if err := json.Unmarshal(bodyBytes, target); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	resp, err := c.doRequest(ctx, path)
	if err != nil {
		return err
	}
	return parseResponse(resp, target)
}

// Health checks the health of the inspection server
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var health api.HealthResponse
	if err := c.get(ctx, "/api/v1/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Version retrieves version information from the inspection server
func (c *Client) Version(ctx context.Context) (*api.VersionResponse, error) {
	var version api.VersionResponse
	if err := c.get(ctx, "/api/v1/version", &version); err != nil {
		return nil, err
	}
	return &version, nil
}

// Config retrieves the resolved configuration served by the server
func (c *Client) Config(ctx context.Context) (*buildconfig.View, error) {
	var view buildconfig.View
	if err := c.get(ctx, "/api/v1/config", &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// MatchCacheRule asks which runtime caching rule handles rawURL
func (c *Client) MatchCacheRule(ctx context.Context, rawURL string) (*api.MatchResponse, error) {
	path := "/api/v1/config/caching/match?url=" + url.QueryEscape(rawURL)

	var match api.MatchResponse
	if err := c.get(ctx, path, &match); err != nil {
		return nil, err
	}
	return &match, nil
}
