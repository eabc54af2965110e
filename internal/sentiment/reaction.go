package sentiment

import "github.com/mkuo/stockpulse/internal/model"

// ReactionScorer is the reaction-weighted variant: it scores a post from
// its push/boo/arrow tallies alone. Boos carry more weight than pushes:
// on a stock board, strong disapproval conveys more conviction than a
// casual upvote.
type ReactionScorer struct {
	pushWeight  float64
	booWeight   float64
	arrowWeight float64
	bullish     float64
	bearish     float64
}

// NewReactionScorer builds the scorer from the fixed analysis rules
func NewReactionScorer(cfg model.AnalysisConfig) *ReactionScorer {
	return &ReactionScorer{
		pushWeight:  cfg.PushWeight,
		booWeight:   cfg.BooWeight,
		arrowWeight: cfg.ArrowWeight,
		bullish:     cfg.BullishThreshold,
		bearish:     cfg.BearishThreshold,
	}
}

// Score computes push*Wpos + boo*Wneg + arrow*Warrow. A post with zero
// reactions scores 0 and labels neutral; never an error.
func (s *ReactionScorer) Score(post *model.Post) model.SentimentResult {
	push, boo, arrow := post.Reactions.Push, post.Reactions.Boo, post.Reactions.Arrow

	score := float64(push)*s.pushWeight + float64(boo)*s.booWeight + float64(arrow)*s.arrowWeight

	return model.SentimentResult{
		Title: post.Title,
		URL:   post.URL,
		Score: score,
		Label: classify(score, s.bullish, s.bearish),
		Push:  push,
		Boo:   boo,
		Arrow: arrow,
	}
}

// TallyComments derives push/boo/arrow counts from PTT comment tags.
// The fetch layer uses this to fill Reactions when it pulls full threads.
func TallyComments(comments []model.Comment) (push, boo, arrow int) {
	for _, c := range comments {
		switch c.Tag {
		case "推":
			push++
		case "噓":
			boo++
		default:
			arrow++
		}
	}
	return push, boo, arrow
}
