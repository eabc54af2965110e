// Package buzz detects abnormal discussion volume per ticker: an early
// warning for pump-and-dump style mention spikes. Each run's mention
// count is standardized against a persisted rolling baseline.
package buzz

import (
	"math"
	"sort"

	"github.com/mkuo/stockpulse/internal/entity"
	"github.com/mkuo/stockpulse/internal/model"
)

// Detector computes buzz z-scores for one batch against a history
// snapshot. It performs no I/O: the caller injects the history and
// persists the returned copy, which makes the read-modify-append step
// a single atomic value exchange (single-writer discipline).
type Detector struct {
	resolver         *entity.Resolver
	anomalyThreshold float64
	window           int
	minHistory       int
}

// NewDetector builds a buzz detector over the given entity resolver
func NewDetector(resolver *entity.Resolver, cfg model.AnalysisConfig) *Detector {
	return &Detector{
		resolver:         resolver,
		anomalyThreshold: cfg.AnomalyThreshold,
		window:           cfg.HistoryWindow,
		minHistory:       cfg.MinHistory,
	}
}

// Analyze tallies per-ticker mentions for the batch, scores each ticker
// against its historical window, and returns the report together with
// the updated history for the caller to persist. The input history is
// never mutated. A missing or empty history means no prior data: scoring
// is skipped for those tickers rather than faked as zero.
func (d *Detector) Analyze(posts []*model.Post, history History) (model.BuzzReport, History) {
	mentions := make(map[string]int)
	names := make(map[string]string)
	var order []string

	for _, post := range posts {
		for _, e := range d.resolver.Resolve(post.FullText()) {
			if _, seen := mentions[e.Ticker]; !seen {
				order = append(order, e.Ticker)
			}
			mentions[e.Ticker]++
			if e.Name != "" && names[e.Ticker] == "" {
				names[e.Ticker] = e.Name
			}
		}
	}

	// Most-mentioned first; first-seen order breaks ties so the report
	// is stable across runs over the same batch.
	firstSeen := make(map[string]int, len(order))
	for i, t := range order {
		firstSeen[t] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		if mentions[order[i]] != mentions[order[j]] {
			return mentions[order[i]] > mentions[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	report := model.BuzzReport{TotalPosts: len(posts)}
	for _, ticker := range order {
		tb := d.scoreTicker(ticker, mentions[ticker], history[ticker])
		tb.Name = names[ticker]
		report.Tickers = append(report.Tickers, tb)
		if tb.IsAnomaly {
			report.Anomalies = append(report.Anomalies, tb)
		}
	}

	// Append this run's counts. Tickers known to the history but silent
	// this run get an explicit 0, so a flat window means genuine silence
	// rather than missing bookkeeping.
	updated := history.Clone()
	for _, ticker := range order {
		updated[ticker] = append1(updated[ticker], mentions[ticker], d.window)
	}
	for ticker := range history {
		if _, inBatch := mentions[ticker]; !inBatch {
			updated[ticker] = append1(updated[ticker], 0, d.window)
		}
	}

	return report, updated
}

// scoreTicker standardizes one ticker's current count against its
// historical window. Degenerate cases are defined, never faults:
// fewer than minHistory observations → score undefined (status says so);
// zero variance → score 0 when the count sits on the mean, otherwise a
// flat-baseline flag, anomalous only for a jump above the mean.
func (d *Detector) scoreTicker(ticker string, current int, window []int) model.TickerBuzz {
	tb := model.TickerBuzz{Ticker: ticker, Mentions: current}

	if len(window) < d.minHistory {
		tb.Status = model.BuzzInsufficientHistory
		return tb
	}

	mean, stddev := meanStddev(window)

	if stddev == 0 {
		if float64(current) == mean {
			tb.Status = model.BuzzOK
			return tb // score 0
		}
		tb.Status = model.BuzzFlatBaseline
		tb.IsAnomaly = float64(current) > mean
		return tb
	}

	score := (float64(current) - mean) / stddev
	tb.Status = model.BuzzOK
	tb.BuzzScore = round2(score)
	tb.IsAnomaly = score >= d.anomalyThreshold
	return tb
}

func meanStddev(window []int) (mean, stddev float64) {
	n := float64(len(window))
	sum := 0.0
	for _, c := range window {
		sum += float64(c)
	}
	mean = sum / n

	variance := 0.0
	for _, c := range window {
		dev := float64(c) - mean
		variance += dev * dev
	}
	variance /= n

	return mean, math.Sqrt(variance)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
