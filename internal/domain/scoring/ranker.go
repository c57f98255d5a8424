package scoring

import (
	"unicode/utf8"

	"github.com/foxside/taggenie/internal/domain/text"
)

// RankCandidates orders the entries of m by descending score and returns at
// most limit of them. Terms shorter than MinTermRunes and the normalized form
// of exclude are dropped. Ties keep first-seen order. limit <= 0 means
// DefaultLimit; callers clamp user input with ClampLimit.
func RankCandidates(m *ScoreMap, exclude string, limit int) []Candidate {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if m == nil || m.Len() == 0 {
		return nil
	}
	excluded := text.Normalize(exclude)

	entries := m.Entries()
	kept := entries[:0]
	for _, c := range entries {
		if utf8.RuneCountInString(c.Term) < MinTermRunes || c.Term == excluded {
			continue
		}
		kept = append(kept, c)
	}
	sortByScore(kept)

	out := make([]Candidate, 0, min(limit, len(kept)))
	seen := make(map[string]struct{}, len(kept))
	for _, c := range kept {
		if len(out) >= limit {
			break
		}
		if _, dup := seen[c.Term]; dup {
			continue
		}
		seen[c.Term] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Rank is RankCandidates without the scores.
func Rank(m *ScoreMap, exclude string, limit int) []string {
	ranked := RankCandidates(m, exclude, limit)
	terms := make([]string, len(ranked))
	for i, c := range ranked {
		terms[i] = c.Term
	}
	return terms
}
