// Package suggest implements ports.SuggestionSource against the video
// platform's public autocomplete endpoint. The endpoint answers with a JSON
// array: [query, [completion, ...], ...].
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/foxside/taggenie/internal/ports"
)

// DefaultBaseURL is the autocomplete endpoint, restricted to video search via ds=yt.
const DefaultBaseURL = "https://suggestqueries.google.com/complete/search"

// maxBody bounds how much of a response is read.
const maxBody = 1 << 20

// ErrStatus wraps non-2xx responses.
var ErrStatus = errors.New("suggest: unexpected status")

// Client fetches autocomplete suggestions.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another endpoint (tests, proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a Client. The default HTTP client times out after 8s.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 8 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Suggest returns completions for q.Text in q's locale.
func (c *Client) Suggest(ctx context.Context, q ports.Query) ([]string, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, nil
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("suggest: base url: %w", err)
	}
	params := u.Query()
	params.Set("client", "firefox")
	params.Set("ds", "yt")
	params.Set("ie", "utf-8")
	params.Set("oe", "utf-8")
	params.Set("q", q.Text)
	if q.Language != "" {
		params.Set("hl", q.Language)
	}
	if q.Region != "" {
		params.Set("gl", q.Region)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("suggest: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("suggest: read body: %w", err)
	}
	return Parse(body)
}

// Parse decodes an autocomplete response body. Non-string completions are skipped.
func Parse(body []byte) ([]string, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(body, &parts); err != nil {
		return nil, fmt.Errorf("suggest: decode: %w", err)
	}
	if len(parts) < 2 {
		return nil, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(parts[1], &raw); err != nil {
		return nil, fmt.Errorf("suggest: decode completions: %w", err)
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		var s string
		if json.Unmarshal(r, &s) == nil && s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
