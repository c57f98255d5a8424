package ports

import (
	"context"
	"errors"
)

// ErrEmptyTitle is returned by a TagService when the request has no title.
var ErrEmptyTitle = errors.New("title is required")

// TagRequest asks for tags for one video title.
type TagRequest struct {
	Title    string `json:"title"`
	Count    int    `json:"count,omitempty"`    // 0 = default; clamped to 5–40
	Language string `json:"language,omitempty"` // "" = configured default
	Region   string `json:"region,omitempty"`   // "" = configured default
	Scores   bool   `json:"scores,omitempty"`   // include scored candidates in the result
}

// ScoredTag is a ranked tag with the score that placed it.
type ScoredTag struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// SourceStats reports what each external lookup contributed.
type SourceStats struct {
	Suggestions          int `json:"suggestions"`
	ExpansionQueries     int `json:"expansion_queries"`
	ExpansionSuggestions int `json:"expansion_suggestions"`
	Videos               int `json:"videos"`
}

// TagResult is the outcome of one generation.
type TagResult struct {
	Tags       []string    `json:"tags"`
	CSV        string      `json:"csv"`
	Candidates []ScoredTag `json:"candidates,omitempty"`
	Sources    SourceStats `json:"sources"`
	Elapsed    string      `json:"elapsed"`
}

// TagService generates tags for a title. Failing external lookups degrade to
// empty batches; the only error is a request without a title.
type TagService interface {
	Generate(ctx context.Context, req TagRequest) (*TagResult, error)
}
