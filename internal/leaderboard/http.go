package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPClient talks to the hosted leaderboard service. It implements both
// Store and LocationService.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for the service at baseURL. Each request
// is bounded by timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Leaderboard implements Store.
func (c *HTTPClient) Leaderboard(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := c.do(ctx, http.MethodGet, "/api/scores", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Submit implements Store.
func (c *HTTPClient) Submit(ctx context.Context, score int) ([]Entry, error) {
	if score <= 0 {
		return nil, ErrInvalidScore
	}
	body, err := json.Marshal(struct {
		Score int `json:"score"`
	}{score})
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot encode score: %w", err)
	}

	var entries []Entry
	if err := c.do(ctx, http.MethodPost, "/api/scores", body, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Country implements LocationService.
func (c *HTTPClient) Country(ctx context.Context) (string, error) {
	var loc struct {
		Country string `json:"country"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/location", nil, &loc); err != nil {
		return "", err
	}
	return NormalizeCountry(loc.Country), nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte, target any) error {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("leaderboard: cannot create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s: %s: %s", ErrUnexpectedStatus, method, path, resp.Status, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("leaderboard: cannot decode %s response: %w", path, err)
	}
	return nil
}
