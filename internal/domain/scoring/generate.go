package scoring

import (
	"github.com/foxside/taggenie/internal/domain/text"
	"github.com/foxside/taggenie/internal/ports"
)

// Input is everything one tag generation needs, already fetched.
// Any batch may be empty.
type Input struct {
	Title string
	Count int // requested tag count; clamped with ClampLimit

	Suggestions          []string // completions for the full title
	ExpansionSuggestions []string // completions for the title's bigrams
	Videos               []ports.VideoRecord
}

// Options carries the stop-word sets and the mined-term cap.
type Options struct {
	TitleStopWords  text.StopWordSet
	MiningStopWords text.StopWordSet

	// MinedLimit caps how many of the top mined terms are merged.
	// Zero or negative merges all of them.
	MinedLimit int
}

// DefaultOptions picks the title and mining sets out of sw.
func DefaultOptions(sw text.StopWords) Options {
	return Options{
		TitleStopWords:  sw.Set(text.SetTitle),
		MiningStopWords: sw.Set(text.SetMining),
		MinedLimit:      DefaultMinedLimit,
	}
}

// TitleTokens tokenizes title and removes stop words.
func TitleTokens(title string, stop text.StopWordSet) []string {
	return stop.Filter(text.Tokenize(title))
}

// ExpansionQueries returns the title bigrams worth sending to the
// autocomplete source, at most MaxExpansionQueries of them.
func ExpansionQueries(title string, stop text.StopWordSet) []string {
	bg := text.Bigrams(TitleTokens(title, stop))
	if len(bg) > MaxExpansionQueries {
		bg = bg[:MaxExpansionQueries]
	}
	return bg
}

// Aggregate builds the score map for in. Contributions are added in a fixed
// order (title tokens, suggestions, expansion suggestions, mined terms) so
// tie-breaks are reproducible.
func Aggregate(in Input, opts Options) *ScoreMap {
	scores := NewScoreMap()

	for _, t := range TitleTokens(in.Title, opts.TitleStopWords) {
		scores.Bump(t, WeightTitleToken)
	}
	for _, s := range in.Suggestions {
		scores.Bump(s, WeightSuggestion)
	}
	for _, s := range in.ExpansionSuggestions {
		scores.Bump(s, WeightExpansionSuggestion)
	}

	if len(in.Videos) > 0 {
		mined := NewScoreMap()
		Mine(mined, in.Videos, opts.MiningStopWords)
		for _, c := range mined.Top(opts.MinedLimit) {
			scores.Bump(c.Term, c.Score)
		}
	}
	return scores
}

// GenerateCandidates runs the whole pipeline and returns ranked terms with scores.
func GenerateCandidates(in Input, opts Options) []Candidate {
	return RankCandidates(Aggregate(in, opts), in.Title, ClampLimit(in.Count))
}

// Generate runs the whole pipeline and returns the ranked tags.
// The normalized title itself is never returned.
func Generate(in Input, opts Options) []string {
	return Rank(Aggregate(in, opts), in.Title, ClampLimit(in.Count))
}
