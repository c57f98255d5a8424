package scoring

import (
	"math"

	"github.com/foxside/taggenie/internal/domain/text"
	"github.com/foxside/taggenie/internal/ports"
)

// ViewBoost returns log10(views + ViewBoostOffset). Negative counts are
// treated as zero. The result is at least log10(9) and has no upper cap.
func ViewBoost(views int64) float64 {
	if views < 0 {
		views = 0
	}
	return math.Log10(float64(views) + ViewBoostOffset)
}

// EffectiveWeight scales a base weight by the view-count boost.
//
//	EffectiveWeight(3.0, 991) = 3.0 * log10(1000) = 9.0
func EffectiveWeight(base float64, views int64) float64 {
	return base * ViewBoost(views)
}

// Mine adds weighted terms from each video record to acc:
//
//  1. every explicit tag at WeightVideoTag
//  2. title+description words (mining tokenizer, stop words removed):
//     unigrams at WeightUnigram, bigrams at WeightBigram, trigrams at WeightTrigram
//
// Every contribution is scaled by the record's view boost. Records with
// missing fields contribute whatever they have; none are rejected.
func Mine(acc *ScoreMap, records []ports.VideoRecord, stop text.StopWordSet) {
	for _, rec := range records {
		boost := ViewBoost(rec.ViewCount)

		for _, tag := range rec.Tags {
			acc.Bump(tag, WeightVideoTag*boost)
		}

		words := stop.Filter(text.MiningTokens(rec.Title + " " + rec.Description))
		for _, w := range words {
			acc.Bump(w, WeightUnigram*boost)
		}
		for _, bg := range text.Bigrams(words) {
			acc.Bump(bg, WeightBigram*boost)
		}
		for _, tg := range text.Trigrams(words) {
			acc.Bump(tg, WeightTrigram*boost)
		}
	}
}
