package sentiment

import (
	"strings"

	"github.com/mkuo/stockpulse/internal/model"
)

// RatioScorer is the ratio+keyword variant for sources without a
// push/boo system. The base signal is the community approval ratio
// centered at 0.5, stretched to roughly [-5, +5]; bullish and bearish
// slang in the text nudge the score by one point per occurrence, and
// strongly voted comments add a small bonus.
type RatioScorer struct {
	bullish float64
	bearish float64
}

const (
	ratioStretch     = 10.0 // (ratio - 0.5) * 10 → [-5, +5]
	keywordIncrement = 1.0
	commentBonus     = 0.5
	hotCommentScore  = 5  // comment score above which it counts as approval
	coldCommentScore = -2 // comment score below which it counts as dissent
)

// NewRatioScorer builds the scorer from the fixed analysis rules
func NewRatioScorer(cfg model.AnalysisConfig) *RatioScorer {
	return &RatioScorer{
		bullish: cfg.BullishThreshold,
		bearish: cfg.BearishThreshold,
	}
}

// Score adjusts the centered approval ratio with keyword hits. A post
// with a neutral ratio, no keywords and no comments scores 0, neutral.
func (s *RatioScorer) Score(post *model.Post) model.SentimentResult {
	text := strings.ToLower(post.FullText())

	bullHits, _ := countHits(text, bullishKeywords)
	bearHits, _ := countHits(text, bearishKeywords)

	ratioScore := 0.0
	if post.Reactions.UpvoteRatio > 0 {
		ratioScore = (post.Reactions.UpvoteRatio - 0.5) * ratioStretch
	}
	keywordScore := float64(bullHits)*keywordIncrement - float64(bearHits)*keywordIncrement

	bonus := 0.0
	for _, c := range post.Comments {
		if c.Score > hotCommentScore {
			bonus += commentBonus
		} else if c.Score < coldCommentScore {
			bonus -= commentBonus
		}
	}

	score := ratioScore + keywordScore + bonus

	return model.SentimentResult{
		Title:       post.Title,
		URL:         post.URL,
		Score:       score,
		Label:       classify(score, s.bullish, s.bearish),
		UpvoteRatio: post.Reactions.UpvoteRatio,
		BullishHits: bullHits,
		BearishHits: bearHits,
	}
}
