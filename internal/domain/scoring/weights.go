// Package scoring merges title tokens, autocomplete suggestions and mined
// video metadata into one ranked list of tags.
//
// The weights are hand-tuned and have no derivation; they are kept exactly
// as named constants so output stays comparable across releases.
package scoring

// Base weights per signal source.
const (
	WeightTitleToken          = 0.3 // filtered word of the user's own title
	WeightSuggestion          = 3.0 // completion for the full title
	WeightExpansionSuggestion = 2.2 // completion for one title bigram
	WeightVideoTag            = 3.0 // explicit tag on a mined video
	WeightUnigram             = 0.9 // word from a mined title/description
	WeightBigram              = 1.4
	WeightTrigram             = 1.6
)

// ViewBoostOffset is added to a view count before taking log10, so zero or
// missing counts still give a positive boost of log10(9).
const ViewBoostOffset = 9

// Output size limits.
const (
	DefaultLimit = 18
	MinLimit     = 5
	MaxLimit     = 40
)

// DefaultMinedLimit caps how many mined terms reach the final aggregation.
const DefaultMinedLimit = 120

// MaxExpansionQueries is how many title bigrams are sent for suggestion expansion.
const MaxExpansionQueries = 4

// MinTermRunes is the shortest term, in characters, that may be emitted.
const MinTermRunes = 2

// ClampLimit maps a requested tag count onto the accepted range.
// Zero means "unspecified" and yields DefaultLimit; negative counts clamp to MinLimit.
func ClampLimit(n int) int {
	switch {
	case n == 0:
		return DefaultLimit
	case n < MinLimit:
		return MinLimit
	case n > MaxLimit:
		return MaxLimit
	}
	return n
}
