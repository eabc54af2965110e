package buzz

import (
	"math"
	"reflect"
	"testing"

	"github.com/mkuo/stockpulse/internal/entity"
	"github.com/mkuo/stockpulse/internal/model"
)

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	table, err := entity.NewAliasTable([]entity.AliasEntry{
		{Surface: "台積", Ticker: "2330", Name: "台積電"},
		{Surface: "鴻海", Ticker: "2317", Name: "鴻海"},
	}, nil)
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	resolver := entity.NewResolver(table, entity.Options{DigitCodes: true})
	return NewDetector(resolver, model.DefaultConfig().Analysis)
}

func mentionPosts(ticker string, n int) []*model.Post {
	posts := make([]*model.Post, n)
	for i := range posts {
		posts[i] = &model.Post{Title: ticker + " 討論串", Body: "內容"}
	}
	return posts
}

func TestAnalyze_ZScoreScenario(t *testing.T) {
	d := newTestDetector(t)

	// history [10, 12, 9, 11]: mean 10.5, stddev ~1.118; count 15 → ~4.02
	history := History{"2330": {10, 12, 9, 11}}
	report, _ := d.Analyze(mentionPosts("台積", 15), history)

	if len(report.Tickers) != 1 {
		t.Fatalf("expected 1 ticker, got %+v", report.Tickers)
	}
	tb := report.Tickers[0]
	if tb.Ticker != "2330" || tb.Mentions != 15 {
		t.Fatalf("unexpected tally: %+v", tb)
	}
	if tb.Status != model.BuzzOK {
		t.Fatalf("status = %q, want ok", tb.Status)
	}
	if math.Abs(tb.BuzzScore-4.02) > 0.01 {
		t.Errorf("buzz score = %v, want ~4.02", tb.BuzzScore)
	}
	if !tb.IsAnomaly {
		t.Error("score above 2.0 must be flagged anomalous")
	}
	if len(report.Anomalies) != 1 {
		t.Errorf("anomalies = %+v, want the one flagged ticker", report.Anomalies)
	}
}

func TestAnalyze_CountEqualToMeanScoresZero(t *testing.T) {
	d := newTestDetector(t)

	history := History{"2330": {8, 12}} // mean 10, stddev > 0
	report, _ := d.Analyze(mentionPosts("台積", 10), history)

	tb := report.Tickers[0]
	if tb.BuzzScore != 0 || tb.Status != model.BuzzOK {
		t.Errorf("count at mean: score = %v status = %q, want 0 / ok", tb.BuzzScore, tb.Status)
	}
	if tb.IsAnomaly {
		t.Error("count at mean must not be anomalous")
	}
}

func TestAnalyze_InsufficientHistorySkipsScore(t *testing.T) {
	d := newTestDetector(t)

	cases := []struct {
		name    string
		history History
	}{
		{"no history at all", nil},
		{"unseen ticker", History{"9999": {5, 5, 5}}},
		{"single observation", History{"2330": {7}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report, _ := d.Analyze(mentionPosts("台積", 5), tc.history)
			tb := report.Tickers[0]
			if tb.Status != model.BuzzInsufficientHistory {
				t.Errorf("status = %q, want insufficient_history", tb.Status)
			}
			if tb.IsAnomaly {
				t.Error("insufficient history must never flag an anomaly")
			}
		})
	}
}

func TestAnalyze_FlatBaseline(t *testing.T) {
	d := newTestDetector(t)

	history := History{"2330": {3, 3, 3}}

	// same count as the flat baseline: defined as score 0
	report, _ := d.Analyze(mentionPosts("台積", 3), history)
	if tb := report.Tickers[0]; tb.Status != model.BuzzOK || tb.BuzzScore != 0 || tb.IsAnomaly {
		t.Errorf("flat baseline at mean: %+v", tb)
	}

	// jump off a flat baseline: flagged, no fake z-score
	report, _ = d.Analyze(mentionPosts("台積", 9), history)
	if tb := report.Tickers[0]; tb.Status != model.BuzzFlatBaseline || !tb.IsAnomaly {
		t.Errorf("jump off flat baseline: %+v", tb)
	}

	// drop below a flat baseline: flagged status but not anomalous
	report, _ = d.Analyze(mentionPosts("台積", 1), history)
	if tb := report.Tickers[0]; tb.Status != model.BuzzFlatBaseline || tb.IsAnomaly {
		t.Errorf("drop below flat baseline: %+v", tb)
	}
}

func TestAnalyze_HistoryUpdate(t *testing.T) {
	d := newTestDetector(t)

	history := History{
		"2330": {10, 12},
		"2317": {4, 4},
	}
	_, updated := d.Analyze(mentionPosts("台積", 3), history)

	if got := updated["2330"]; !reflect.DeepEqual(got, []int{10, 12, 3}) {
		t.Errorf("2330 window = %v, want [10 12 3]", got)
	}
	// silent ticker gets an explicit zero
	if got := updated["2317"]; !reflect.DeepEqual(got, []int{4, 4, 0}) {
		t.Errorf("2317 window = %v, want [4 4 0]", got)
	}
	// input snapshot untouched
	if got := history["2330"]; !reflect.DeepEqual(got, []int{10, 12}) {
		t.Errorf("input history mutated: %v", got)
	}
}

func TestAnalyze_WindowEviction(t *testing.T) {
	table, err := entity.NewAliasTable([]entity.AliasEntry{
		{Surface: "台積", Ticker: "2330", Name: "台積電"},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg := model.DefaultConfig().Analysis
	cfg.HistoryWindow = 3
	d := NewDetector(entity.NewResolver(table, entity.Options{}), cfg)

	history := History{"2330": {1, 2, 3}} // full window
	_, updated := d.Analyze(mentionPosts("台積", 4), history)

	if got := updated["2330"]; !reflect.DeepEqual(got, []int{2, 3, 4}) {
		t.Errorf("window = %v, want oldest evicted → [2 3 4]", got)
	}
}

func TestAnalyze_NewTickerCreatesWindow(t *testing.T) {
	d := newTestDetector(t)

	_, updated := d.Analyze(mentionPosts("台積", 2), nil)
	if got := updated["2330"]; !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("new ticker window = %v, want [2]", got)
	}
}

func TestAnalyze_RanksByMentions(t *testing.T) {
	d := newTestDetector(t)

	posts := append(mentionPosts("鴻海", 3), mentionPosts("台積", 5)...)
	report, _ := d.Analyze(posts, nil)

	if len(report.Tickers) != 2 {
		t.Fatalf("expected 2 tickers, got %+v", report.Tickers)
	}
	if report.Tickers[0].Ticker != "2330" || report.Tickers[1].Ticker != "2317" {
		t.Errorf("expected mention-count ordering, got %+v", report.Tickers)
	}
}

func TestAnalyze_EmptyBatch(t *testing.T) {
	d := newTestDetector(t)

	history := History{"2330": {5, 5}}
	report, updated := d.Analyze(nil, history)

	if report.TotalPosts != 0 || len(report.Tickers) != 0 {
		t.Errorf("unexpected report for empty batch: %+v", report)
	}
	// known ticker still records its silence
	if got := updated["2330"]; !reflect.DeepEqual(got, []int{5, 5, 0}) {
		t.Errorf("window = %v, want [5 5 0]", got)
	}
}
