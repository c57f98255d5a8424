package ports

import "context"

// Query identifies one lookup against an external source. Language and
// Region are opaque locale hints (e.g. "en", "US") forwarded verbatim.
type Query struct {
	Text     string
	Language string
	Region   string
}

// VideoRecord is the metadata of one search-result video. Missing fields are
// zero values: empty strings, nil tags, zero views.
type VideoRecord struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	ViewCount   int64    `json:"view_count"`
}

// SuggestionSource returns autocomplete completions for a query.
// An empty query yields an empty slice, not an error.
type SuggestionSource interface {
	Suggest(ctx context.Context, q Query) ([]string, error)
}

// VideoSource returns metadata for recent, relevance-ordered videos matching
// a query in the given locale. Sources that are not configured (e.g. no API
// key) return an empty slice together with an error the caller may log.
type VideoSource interface {
	Videos(ctx context.Context, q Query) ([]VideoRecord, error)
}
