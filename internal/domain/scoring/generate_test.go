package scoring

import (
	"fmt"
	"testing"

	"github.com/foxside/taggenie/internal/domain/text"
	"github.com/foxside/taggenie/internal/ports"
	"github.com/foxside/taggenie/stopwords"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions(t *testing.T) Options {
	t.Helper()
	sw, err := text.LoadStopWords(stopwords.FS, "v1")
	require.NoError(t, err)
	return DefaultOptions(sw)
}

func TestGenerate_IPhoneExample(t *testing.T) {
	// Both suggestions are longer than three words, so they are discarded
	// and only the title tokens remain (weight 0.3 each, first-seen order).
	in := Input{
		Title:       "iPhone 16 Pro Max camera test",
		Count:       5,
		Suggestions: []string{"iphone 16 pro max review", "iphone 16 camera comparison"},
	}
	got := Generate(in, defaultOptions(t))

	assert.Equal(t, []string{"iphone", "16", "pro", "max", "camera"}, got)
	assert.NotContains(t, got, "iphone 16 pro max camera test")
}

func TestGenerate_SuggestionsOutweighTitleTokens(t *testing.T) {
	in := Input{
		Title:       "iPhone 16 Pro Max camera test",
		Count:       5,
		Suggestions: []string{"iphone 16 review", "iPhone 16 camera", "iphone 16 pro max review"},
	}
	got := Generate(in, defaultOptions(t))

	require.Len(t, got, 5)
	assert.Equal(t, []string{"iphone 16 review", "iphone 16 camera", "iphone", "16", "pro"}, got)
}

func TestGenerate_ExpansionBetweenSuggestionAndTitle(t *testing.T) {
	in := Input{
		Title:                "drone footage",
		Count:                10,
		Suggestions:          []string{"drone footage 4k"},
		ExpansionSuggestions: []string{"drone footage free"},
	}
	got := GenerateCandidates(in, defaultOptions(t))

	require.Len(t, got, 4)
	assert.Equal(t, "drone footage 4k", got[0].Term)
	assert.InDelta(t, WeightSuggestion, got[0].Score, 1e-9)
	assert.Equal(t, "drone footage free", got[1].Term)
	assert.InDelta(t, WeightExpansionSuggestion, got[1].Score, 1e-9)
	assert.Equal(t, "drone", got[2].Term)
	assert.Equal(t, "footage", got[3].Term)
}

func TestGenerate_NoExternalData(t *testing.T) {
	opts := defaultOptions(t)

	got := Generate(Input{Title: "How to fix a flat tire"}, opts)
	assert.Equal(t, []string{"fix", "flat", "tire"}, got)

	// "do" is not a stop word and has two characters.
	assert.Equal(t, []string{"do"}, Generate(Input{Title: "how to do it"}, opts))
}

func TestGenerate_AllStopWordsTitle(t *testing.T) {
	assert.Empty(t, Generate(Input{Title: "what is this"}, defaultOptions(t)))
	assert.Empty(t, Generate(Input{Title: ""}, defaultOptions(t)))
}

func TestGenerate_NeverEchoesTitle(t *testing.T) {
	titles := []string{"Drone Footage", "camera", "best budget mic"}
	for _, title := range titles {
		in := Input{
			Title:                title,
			Suggestions:          []string{title, title + " 2024"},
			ExpansionSuggestions: []string{title},
			Videos:               []ports.VideoRecord{{Title: title, Tags: []string{title}, ViewCount: 10_000}},
		}
		got := Generate(in, defaultOptions(t))
		assert.NotContains(t, got, text.Normalize(title), "title %q", title)
	}
}

func TestGenerate_MinedTermsMerged(t *testing.T) {
	in := Input{
		Title: "sourdough bread",
		Count: 5,
		Videos: []ports.VideoRecord{
			{Title: "Official sourdough starter video", Tags: []string{"sourdough starter"}, ViewCount: 991},
		},
	}
	got := GenerateCandidates(in, defaultOptions(t))
	require.NotEmpty(t, got)

	// tag (3.0*3) + bigram (1.4*3)
	assert.Equal(t, "sourdough starter", got[0].Term)
	assert.InDelta(t, 13.2, got[0].Score, 1e-9)
	for _, c := range got {
		assert.NotContains(t, c.Term, "official")
		assert.NotContains(t, c.Term, "video")
	}
}

func TestAggregate_MinedLimit(t *testing.T) {
	opts := defaultOptions(t)
	opts.MinedLimit = 2
	in := Input{
		Videos: []ports.VideoRecord{{Tags: []string{"alpha", "beta", "gamma", "delta"}}},
	}
	m := Aggregate(in, opts)
	assert.Equal(t, 2, m.Len())
	assert.Greater(t, m.Score("alpha"), 0.0)
	assert.Greater(t, m.Score("beta"), 0.0)
	assert.Zero(t, m.Score("gamma"))

	opts.MinedLimit = 0
	assert.Equal(t, 4, Aggregate(in, opts).Len())
}

func TestGenerate_CountClamped(t *testing.T) {
	suggestions := make([]string, 0, 60)
	for i := 0; i < 60; i++ {
		suggestions = append(suggestions, "tag "+string(rune('a'+i%26))+string(rune('a'+i/26)))
	}
	opts := defaultOptions(t)

	assert.Len(t, Generate(Input{Suggestions: suggestions, Count: 1}, opts), MinLimit)
	assert.Len(t, Generate(Input{Suggestions: suggestions, Count: 500}, opts), MaxLimit)
	assert.Len(t, Generate(Input{Suggestions: suggestions}, opts), DefaultLimit)
}

func TestExpansionQueries(t *testing.T) {
	opts := defaultOptions(t)
	got := ExpansionQueries("iPhone 16 Pro Max vs Galaxy S25 Ultra camera test", opts.TitleStopWords)
	assert.Equal(t, []string{"iphone 16", "16 pro", "pro max", "max galaxy"}, got)

	assert.Empty(t, ExpansionQueries("camera", opts.TitleStopWords))
}

func TestTitleTokens_UsesTitleSet(t *testing.T) {
	opts := defaultOptions(t)
	// "new" and "video" are only stop words when mining.
	assert.Equal(t, []string{"new", "video", "editing"}, TitleTokens("The NEW video editing", opts.TitleStopWords))
}

func TestGenerate_NegativeCountClampsToMinimum(t *testing.T) {
	var suggestions []string
	for i := 0; i < 30; i++ {
		suggestions = append(suggestions, fmt.Sprintf("term %d", i))
	}
	got := Generate(Input{Title: "video", Count: -3, Suggestions: suggestions}, defaultOptions(t))
	assert.Len(t, got, MinLimit)
}
