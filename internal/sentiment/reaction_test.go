package sentiment

import (
	"testing"

	"github.com/mkuo/stockpulse/internal/model"
)

func testAnalysisConfig() model.AnalysisConfig {
	return model.DefaultConfig().Analysis
}

func TestReactionScorer_WeightedScore(t *testing.T) {
	scorer := NewReactionScorer(testAnalysisConfig())

	cases := []struct {
		name      string
		push      int
		boo       int
		arrow     int
		wantScore float64
		wantLabel model.SentimentLabel
	}{
		{"bullish", 12, 1, 5, 10.5, model.LabelBullish}, // 12*1.0 + 1*(-1.5)
		{"bearish", 1, 4, 0, -5.0, model.LabelBearish},
		{"neutral band", 2, 1, 10, 0.5, model.LabelNeutral},
		{"exactly at threshold", 2, 0, 0, 2.0, model.LabelBullish},
		{"exactly at negative threshold", 1, 2, 3, -2.0, model.LabelBearish},
		{"zero reactions", 0, 0, 0, 0, model.LabelNeutral},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			post := &model.Post{
				Title:     "test",
				Reactions: model.Reactions{Push: tc.push, Boo: tc.boo, Arrow: tc.arrow},
			}
			got := scorer.Score(post)
			if got.Score != tc.wantScore {
				t.Errorf("score = %v, want %v", got.Score, tc.wantScore)
			}
			if got.Label != tc.wantLabel {
				t.Errorf("label = %q, want %q", got.Label, tc.wantLabel)
			}
		})
	}
}

func TestReactionScorer_ArrowsNeverMoveScore(t *testing.T) {
	scorer := NewReactionScorer(testAnalysisConfig())

	base := scorer.Score(&model.Post{Reactions: model.Reactions{Push: 3, Boo: 1}})
	withArrows := scorer.Score(&model.Post{Reactions: model.Reactions{Push: 3, Boo: 1, Arrow: 50}})

	if base.Score != withArrows.Score {
		t.Errorf("arrow count changed the score: %v vs %v", base.Score, withArrows.Score)
	}
}

func TestTallyComments(t *testing.T) {
	comments := []model.Comment{
		{Tag: "推", Body: "上看600"},
		{Tag: "推", Body: "跟上"},
		{Tag: "噓", Body: "想太多"},
		{Tag: "→", Body: "補充一下"},
		{Tag: "", Body: "untagged counts as arrow"},
	}

	push, boo, arrow := TallyComments(comments)
	if push != 2 || boo != 1 || arrow != 2 {
		t.Errorf("got push=%d boo=%d arrow=%d, want 2/1/2", push, boo, arrow)
	}
}
