// Package sentiment converts a post's reaction counters (and, for the
// ratio variant, its text) into a numeric score and a three-way label.
package sentiment

import (
	"strings"

	"github.com/mkuo/stockpulse/internal/model"
)

// Scorer is the shared contract of both sentiment variants
type Scorer interface {
	Score(post *model.Post) model.SentimentResult
}

// classify maps a score to a label. The bullish threshold is applied
// symmetrically; everything in between is neutral.
func classify(score, bullish, bearish float64) model.SentimentLabel {
	switch {
	case score >= bullish:
		return model.LabelBullish
	case score <= bearish:
		return model.LabelBearish
	default:
		return model.LabelNeutral
	}
}

// countHits counts occurrences of every keyword in text (already
// lowercased). Occurrences, not presence: three "moon"s nudge three times.
func countHits(text string, keywords []string) (int, []string) {
	total := 0
	var matched []string
	for _, kw := range keywords {
		if n := strings.Count(text, kw); n > 0 {
			total += n
			matched = append(matched, kw)
		}
	}
	return total, matched
}
