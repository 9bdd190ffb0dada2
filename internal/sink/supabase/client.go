// Package supabase inserts contact submissions into a hosted Supabase table
// through its PostgREST endpoint.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Zachkp/portfolio/internal/sink"
)

type Config struct {
	URL     string
	APIKey  string
	Table   string
	Timeout time.Duration
}

// Client is an explicitly constructed Supabase REST client. It is safe for
// concurrent use.
type Client struct {
	cfg  Config
	http *http.Client
}

// New returns a client. Missing URL or key is not an error here; every
// Insert then fails with sink.KindConfig before touching the network.
func New(cfg Config) *Client {
	if cfg.Table == "" {
		cfg.Table = sink.Table
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// WithHTTPClient swaps the transport, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// Configured reports whether both URL and key are present.
func (c *Client) Configured() bool {
	return c.missing() == ""
}

func (c *Client) missing() string {
	var missing []string
	if strings.TrimSpace(c.cfg.URL) == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		missing = append(missing, "SUPABASE_ANON_KEY")
	}
	return strings.Join(missing, ", ")
}

type insertRow struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// apiError is the PostgREST error body.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// Insert writes s as a single row. The response body is not read back.
func (c *Client) Insert(ctx context.Context, s *sink.Submission) error {
	const op = "supabase insert"

	if missing := c.missing(); missing != "" {
		return sink.NotConfigured(op, missing)
	}

	endpoint, err := c.endpoint()
	if err != nil {
		return sink.NotConfigured(op, err.Error())
	}

	body, err := json.Marshal([]insertRow{{
		Name:    s.Name,
		Email:   s.Email,
		Subject: s.Subject,
		Message: s.Message,
	}})
	if err != nil {
		return fmt.Errorf("%s: encode row: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("apikey", c.cfg.APIKey)
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.http.Do(req)
	if err != nil {
		return sink.Network(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	return c.decodeError(op, resp)
}

func (c *Client) endpoint() (string, error) {
	base, err := url.Parse(strings.TrimRight(c.cfg.URL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid SUPABASE_URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("invalid SUPABASE_URL %q", c.cfg.URL)
	}
	return base.JoinPath("rest", "v1", c.cfg.Table).String(), nil
}

func (c *Client) decodeError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	statusErr := fmt.Errorf("status %d", resp.StatusCode)

	switch resp.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return sink.Network(op, fmt.Errorf("connection to backend failed: %w", statusErr))
	}

	var apiErr apiError
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		return sink.Remote(op, apiErr.Message, fmt.Errorf("%w: code %s", statusErr, apiErr.Code))
	}
	return sink.Remote(op, "", statusErr)
}
