// Package youtube implements ports.VideoSource with the YouTube Data API v3.
// A lookup is two calls: search.list for recent, relevance-ordered video ids,
// then videos.list for their snippets (title, description, tags) and statistics.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/foxside/taggenie/internal/ports"
)

// DefaultBaseURL is the Data API root.
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Search defaults.
const (
	DefaultMaxResults = 25
	DefaultWindow     = 90 * 24 * time.Hour // only videos published within this window
)

const maxBody = 4 << 20

var (
	// ErrNoAPIKey means the client was built without an API key.
	ErrNoAPIKey = errors.New("youtube: no API key configured")
	// ErrStatus wraps non-2xx responses.
	ErrStatus = errors.New("youtube: unexpected status")
)

// Client queries the Data API.
type Client struct {
	apiKey     string
	baseURL    string
	http       *http.Client
	maxResults int
	window     time.Duration
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root (tests, proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithClock replaces time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a Client for apiKey. An empty key yields a client whose
// Videos always returns ErrNoAPIKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		http:       &http.Client{Timeout: 8 * time.Second},
		maxResults: DefaultMaxResults,
		window:     DefaultWindow,
		now:        time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// searchResponse is the subset of search.list we read.
type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

// videosResponse is the subset of videos.list we read.
type videosResponse struct {
	Items []struct {
		Snippet struct {
			Title       string   `json:"title"`
			Description string   `json:"description"`
			Tags        []string `json:"tags"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// Videos returns metadata for up to 25 recent videos matching q.Text.
// An empty query returns nil without calling the API.
func (c *Client) Videos(ctx context.Context, q ports.Query) ([]ports.VideoRecord, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, nil
	}
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	ids, err := c.search(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return c.videos(ctx, ids)
}

func (c *Client) search(ctx context.Context, q ports.Query) ([]string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", q.Text)
	params.Set("type", "video")
	params.Set("order", "relevance")
	params.Set("maxResults", strconv.Itoa(c.maxResults))
	params.Set("publishedAfter", c.now().Add(-c.window).UTC().Format(time.RFC3339))
	if q.Language != "" {
		params.Set("relevanceLanguage", q.Language)
	}
	if q.Region != "" {
		params.Set("regionCode", q.Region)
	}

	var sr searchResponse
	if err := c.get(ctx, "search", params, &sr); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(sr.Items))
	for _, it := range sr.Items {
		if it.ID.VideoID != "" {
			ids = append(ids, it.ID.VideoID)
		}
	}
	if len(ids) > c.maxResults {
		ids = ids[:c.maxResults]
	}
	return ids, nil
}

func (c *Client) videos(ctx context.Context, ids []string) ([]ports.VideoRecord, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", strings.Join(ids, ","))

	var vr videosResponse
	if err := c.get(ctx, "videos", params, &vr); err != nil {
		return nil, err
	}
	out := make([]ports.VideoRecord, 0, len(vr.Items))
	for _, it := range vr.Items {
		out = append(out, ports.VideoRecord{
			Title:       it.Snippet.Title,
			Description: it.Snippet.Description,
			Tags:        it.Snippet.Tags,
			ViewCount:   parseViews(it.Statistics.ViewCount),
		})
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, v any) error {
	params.Set("key", c.apiKey)
	u := c.baseURL + "/" + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("youtube %s: build request: %w", endpoint, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("youtube %s: %w", endpoint, redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %d", ErrStatus, endpoint, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("youtube %s: read body: %w", endpoint, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("youtube %s: decode: %w", endpoint, err)
	}
	return nil
}

// parseViews reads the API's decimal-string view count. Anything
// unparsable or negative counts as zero.
func parseViews(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// redactKey strips the API key from transport errors, which embed the URL.
func redactKey(err error, key string) error {
	var ue *url.Error
	if key == "" || !errors.As(err, &ue) {
		return err
	}
	redacted := *ue
	redacted.URL = strings.ReplaceAll(ue.URL, key, "REDACTED")
	return &redacted
}
