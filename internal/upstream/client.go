package upstream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client fetches the raw timetable export from the upstream API.
// Authentication is a static access token passed as a query-string parameter.
type Client struct {
	exportURL string
	token     string

	http *http.Client
}

// New creates an upstream Client. exportURL is the export endpoint
// (e.g. https://extranet.example.org/icalendrier/export/xml); the token is
// appended to it as the "token" query parameter on each request.
func New(exportURL, token string, timeout time.Duration) *Client {
	return &Client{
		exportURL: strings.TrimRight(exportURL, "/"),
		token:     token,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Fetch retrieves the raw export body. It fails on any non-200 status and on
// an empty or whitespace-only body. There are no retries; errors propagate
// to the caller.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	u, err := url.Parse(c.exportURL)
	if err != nil {
		return "", fmt.Errorf("fetch export: parse url: %w", err)
	}
	q := u.Query()
	q.Set("token", c.token)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("fetch export: %w", err)
	}

	slog.Info("upstream request", "method", http.MethodGet, "url", c.exportURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch export: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch export: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch export: status %d: %s", resp.StatusCode, snippet(body))
	}

	if strings.TrimSpace(string(body)) == "" {
		return "", fmt.Errorf("fetch export: empty response body")
	}

	return string(body), nil
}

// snippet truncates an error body for logging and error messages.
func snippet(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
