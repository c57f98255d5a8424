package scoring

import (
	"math"
	"testing"

	"github.com/foxside/taggenie/internal/domain/text"
	"github.com/foxside/taggenie/internal/ports"
	"github.com/stretchr/testify/assert"
)

func miningStop() text.StopWordSet {
	return text.NewStopWordSet(text.SetMining, 1, []string{"the", "a", "of", "official", "video", "new"})
}

func TestEffectiveWeight_Examples(t *testing.T) {
	assert.InDelta(t, 9.0, EffectiveWeight(WeightVideoTag, 991), 1e-9)
	assert.InDelta(t, 3.0*math.Log10(9), EffectiveWeight(WeightVideoTag, 0), 1e-9)
	assert.InDelta(t, 2.8627, EffectiveWeight(WeightVideoTag, 0), 1e-4)
}

func TestEffectiveWeight_NegativeViewsClamped(t *testing.T) {
	assert.Equal(t, EffectiveWeight(1, 0), EffectiveWeight(1, -500))
}

func TestEffectiveWeight_Monotonic(t *testing.T) {
	views := []int64{0, 1, 2, 9, 10, 99, 991, 1000, 12345, 1 << 20, 1 << 40, math.MaxInt64}
	for _, base := range []float64{WeightVideoTag, WeightUnigram, WeightBigram, WeightTrigram} {
		prev := EffectiveWeight(base, views[0])
		for _, v := range views[1:] {
			cur := EffectiveWeight(base, v)
			assert.GreaterOrEqual(t, cur, prev, "base=%v views=%d", base, v)
			prev = cur
		}
	}
}

func TestMine_TagWeight(t *testing.T) {
	m := NewScoreMap()
	Mine(m, []ports.VideoRecord{{Tags: []string{"iphone 16"}, ViewCount: 991}}, miningStop())

	assert.InDelta(t, 9.0, m.Score("iphone 16"), 1e-9)
	assert.Equal(t, 1, m.Len())
}

func TestMine_ZeroViews(t *testing.T) {
	m := NewScoreMap()
	Mine(m, []ports.VideoRecord{{Tags: []string{"iphone 16"}}}, miningStop())

	assert.InDelta(t, 3.0*math.Log10(9), m.Score("iphone 16"), 1e-9)
}

func TestMine_TitleAndDescriptionNGrams(t *testing.T) {
	m := NewScoreMap()
	rec := ports.VideoRecord{
		Title:       "The OFFICIAL Camera-Test!",
		Description: "night mode",
		ViewCount:   991, // boost = 3
	}
	Mine(m, []ports.VideoRecord{rec}, miningStop())

	// words after filtering: camera, test, night, mode
	assert.InDelta(t, 0.9*3, m.Score("camera"), 1e-9)
	assert.InDelta(t, 0.9*3, m.Score("mode"), 1e-9)
	assert.InDelta(t, 1.4*3, m.Score("camera test"), 1e-9)
	assert.InDelta(t, 1.4*3, m.Score("test night"), 1e-9)
	assert.InDelta(t, 1.6*3, m.Score("camera test night"), 1e-9)
	assert.InDelta(t, 1.6*3, m.Score("test night mode"), 1e-9)
	assert.Zero(t, m.Score("official"))
	assert.Zero(t, m.Score("the"))
	assert.Equal(t, 4+3+2, m.Len())
}

func TestMine_AccumulatesAcrossRecords(t *testing.T) {
	m := NewScoreMap()
	Mine(m, []ports.VideoRecord{
		{Tags: []string{"Unboxing"}, ViewCount: 991},
		{Tags: []string{"unboxing "}, ViewCount: 991},
	}, miningStop())

	assert.InDelta(t, 18.0, m.Score("unboxing"), 1e-9)
}

func TestMine_LongTagsDropped(t *testing.T) {
	m := NewScoreMap()
	Mine(m, []ports.VideoRecord{{Tags: []string{"this tag is far too long", ""}}}, miningStop())
	assert.Equal(t, 0, m.Len())
}

func TestMine_EmptyInputs(t *testing.T) {
	m := NewScoreMap()
	Mine(m, nil, miningStop())
	Mine(m, []ports.VideoRecord{{}}, text.StopWordSet{})
	assert.Equal(t, 0, m.Len())
}
