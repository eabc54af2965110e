package store

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mkuo/stockpulse/internal/buzz"
	"github.com/mkuo/stockpulse/internal/model"
)

func TestLoadHistory_MissingFileIsEmpty(t *testing.T) {
	h, err := LoadHistory(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(h) != 0 {
		t.Errorf("expected empty history, got %v", h)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "buzz_history.json")
	want := buzz.History{
		"2330": {10, 12, 9, 11},
		"NVDA": {3},
	}

	if err := SaveHistory(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadHistory(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip = %v, want %v", got, want)
	}
}

func TestLoadHistory_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadHistory(path); err == nil {
		t.Error("corrupt file must error, not silently reset history")
	}
}

func sampleReport() *model.Report {
	return &model.Report{
		Source:    model.SourcePTT,
		Board:     "Stock",
		FetchedAt: time.Date(2025, 8, 21, 13, 0, 0, 0, time.UTC),
		Sentiment: []model.PostAnalysis{
			{
				Title: "[標的] 2330 台積電 多 | 進場",
				URL:   "https://www.ptt.cc/bbs/Stock/M.1.html",
				Sentiment: model.SentimentResult{
					Score: 10.5,
					Label: model.LabelBullish,
				},
			},
		},
		Contrarian: &model.ContrarianSummary{
			TotalPosts:        100,
			CapitulationCount: 20,
			CapitulationRatio: 0.2,
			MarketSignal:      model.SignalExtremeFear,
		},
		Buzz: &model.BuzzReport{
			TotalPosts: 100,
			Tickers: []model.TickerBuzz{
				{Ticker: "2330", Name: "台積電", Mentions: 15, BuzzScore: 4.02, Status: model.BuzzOK, IsAnomaly: true},
				{Ticker: "2603", Mentions: 2, Status: model.BuzzInsufficientHistory},
			},
			Anomalies: []model.TickerBuzz{
				{Ticker: "2330", Name: "台積電", Mentions: 15, BuzzScore: 4.02, Status: model.BuzzOK, IsAnomaly: true},
			},
		},
		Sectors: &model.SectorReport{
			TotalPosts: 100,
			Sectors: []model.SectorHeat{
				{Sector: "半導體", MentionCount: 30, MatchedKeywords: []string{"台積電", "晶圓"}},
			},
		},
	}
}

func TestMarkdownSections(t *testing.T) {
	md := NewRenderer(nil).Markdown(sampleReport())

	for _, want := range []string{
		"# Market Pulse: ptt / Stock",
		"## Sentiment",
		"extreme_fear",
		"## Ticker Buzz",
		"2330 台積電",
		"insufficient_history",
		"## Sector Heat",
		"**半導體**: 30 posts",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if !strings.Contains(md, `\|`) {
		t.Error("pipes in titles must be escaped inside tables")
	}
}

func TestRenderJSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(&buf).RenderJSON(sampleReport(), "-"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), `"market_signal": "extreme_fear"`) {
		t.Errorf("json output missing signal: %s", buf.String())
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).RenderSummary(sampleReport())

	out := buf.String()
	if !strings.Contains(out, "signal=extreme_fear") {
		t.Errorf("summary missing signal: %s", out)
	}
	if !strings.Contains(out, "anomalies=1") || !strings.Contains(out, "z=4.02") {
		t.Errorf("summary missing anomaly detail: %s", out)
	}
	if !strings.Contains(out, "hot sector=半導體") {
		t.Errorf("summary missing sector: %s", out)
	}
}
