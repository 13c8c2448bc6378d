// Package hub is a client for the Hugging Face Hub HTTP API. It covers
// the slice of the API hubcard needs: model search, model metadata,
// repository file reads, and commits / pull requests for file updates.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint is the public Hugging Face Hub.
const DefaultEndpoint = "https://huggingface.co"

const requestTimeout = 30 * time.Second

// Config configures a Client. The token is an explicit value owned by the
// caller; the client never reads the environment itself.
type Config struct {
	// Endpoint overrides the Hub base URL (e.g. for a private mirror).
	Endpoint string

	// Token is the Hub access token. Required for commits, optional for
	// reads against public repositories.
	Token string

	// UserAgent is sent on every request.
	UserAgent string

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to one Hub endpoint with one token.
type Client struct {
	endpoint  string
	token     string
	userAgent string
	client    *http.Client
}

// NewClient builds a Client from cfg, applying defaults for anything unset.
func NewClient(cfg Config) *Client {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "hubcard"
	}

	return &Client{
		endpoint:  endpoint,
		token:     cfg.Token,
		userAgent: userAgent,
		client:    httpClient,
	}
}

// Endpoint returns the base URL the client targets.
func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// getJSON performs a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("hub request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode hub response: %w", err)
	}
	return nil
}

// checkStatus maps non-2xx responses to the package's error values.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}

	msg := serverMessage(resp.Body)
	if msg != "" {
		return fmt.Errorf("hub: %s: %s", resp.Status, msg)
	}
	return fmt.Errorf("hub: %s", resp.Status)
}

// serverMessage extracts the Hub's {"error": "..."} payload when present.
func serverMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(data))
}
