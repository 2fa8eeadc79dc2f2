// Package leaderboardclient is a small HTTP client for submitting brand
// ratings to the API. It distinguishes transient failures, which callers may
// queue and retry, from permanent rejections.
package leaderboardclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/realkdc/top-thc-brands/pkg/rating"
)

// ErrTransient marks failures worth retrying later: network errors, timeouts
// and server-side errors. Check with errors.Is.
var ErrTransient = errors.New("transient leaderboard error")

const defaultTimeout = 8 * time.Second

// Client submits ratings to a leaderboard API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rate submits a set of scores for a brand. A nil return means the API
// accepted the rating (including the duplicate-ignored case).
func (c *Client) Rate(ctx context.Context, brandID string, scores rating.Scores) error {
	if brandID == "" {
		return errors.New("brand ID is required")
	}
	if err := scores.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(scores)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/leaderboard/%s/rate", c.baseURL, brandID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: server responded with %d", ErrTransient, resp.StatusCode)
	default:
		return fmt.Errorf("rating rejected with status %d", resp.StatusCode)
	}
}
