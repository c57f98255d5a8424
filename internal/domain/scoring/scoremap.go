package scoring

import (
	"math"
	"sort"

	"github.com/foxside/taggenie/internal/domain/text"
)

// Candidate is a term with its accumulated score.
type Candidate struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// ScoreMap accumulates weighted scores per normalized term for one scoring
// run. Scores only grow. Entries remember first-seen order, which is the
// tie-break used by Top and Rank.
//
// A ScoreMap is not safe for concurrent use; each run owns its own.
type ScoreMap struct {
	index   map[string]int // term -> position in entries
	entries []Candidate
}

// NewScoreMap returns an empty ScoreMap.
func NewScoreMap() *ScoreMap {
	return &ScoreMap{index: make(map[string]int)}
}

// Bump normalizes term and adds weight to its score.
// Terms that normalize to nothing or to more than three words are dropped
// silently, as are weights that are not finite and positive.
func (m *ScoreMap) Bump(term string, weight float64) {
	if !(weight > 0) || math.IsInf(weight, 1) {
		return
	}
	t := text.Normalize(term)
	if !text.ValidTerm(t) {
		return
	}
	if i, ok := m.index[t]; ok {
		m.entries[i].Score += weight
		return
	}
	m.index[t] = len(m.entries)
	m.entries = append(m.entries, Candidate{Term: t, Score: weight})
}

// Score returns the accumulated score for term (normalized first), or 0.
func (m *ScoreMap) Score(term string) float64 {
	if i, ok := m.index[text.Normalize(term)]; ok {
		return m.entries[i].Score
	}
	return 0
}

// Len returns the number of distinct terms.
func (m *ScoreMap) Len() int {
	return len(m.entries)
}

// Entries returns a copy of all entries in first-seen order.
func (m *ScoreMap) Entries() []Candidate {
	out := make([]Candidate, len(m.entries))
	copy(out, m.entries)
	return out
}

// Top returns up to n entries by descending score; equal scores keep
// first-seen order. n <= 0 returns every entry.
func (m *ScoreMap) Top(n int) []Candidate {
	out := m.Entries()
	sortByScore(out)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func sortByScore(c []Candidate) {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].Score > c[j].Score
	})
}
