// Package contrarian scans a post batch for two opposing extreme-sentiment
// text classes, capitulation ("graduation" posts) and euphoria (all-in
// posts), and derives a market-mood signal from their relative frequency.
//
// The read is contrarian: a spike in capitulation posts marks retail
// panic (potential bottom), a spike in euphoria posts marks overheating.
package contrarian

import (
	"strings"

	"github.com/mkuo/stockpulse/internal/model"
)

// Keyword classes. A post matching both counts toward both tallies;
// the classes are not mutually exclusive.
var capitulationKeywords = []string{
	"畢業", "賠光", "認賠", "出場", "慘賠", "斷頭",
	"融資追繳", "違約交割", "砍在阿呆谷", "停損",
	"血流成河", "套牢", "套到天荒地老", "心態炸裂",
	"不玩了", "刪app", "解套無望", "腰斬再腰斬",
	"住套房", "畢業典禮",
}

var euphoriaKeywords = []string{
	"歐印", "all in", "allin", "梭哈", "睏霸數錢",
	"財富自由", "上車", "衝了", "噴到外太空",
	"要起飛了", "多軍集合", "無腦多", "躺著賺",
	"穩賺不賠", "開香檳", "提早退休", "信仰",
	"鑽石手", "diamond hand",
}

// Detector classifies posts against the fixed keyword classes and
// summarizes a batch into a market signal.
type Detector struct {
	extremeRatio float64
}

// NewDetector builds a detector with the extreme-ratio threshold from
// the fixed analysis rules.
func NewDetector(cfg model.AnalysisConfig) *Detector {
	return &Detector{extremeRatio: cfg.ExtremeRatio}
}

// Summarize classifies every post and derives the batch market signal.
// An empty batch yields zero ratios and a normal signal, never an error.
func (d *Detector) Summarize(posts []*model.Post) model.ContrarianSummary {
	summary := model.ContrarianSummary{
		TotalPosts:   len(posts),
		MarketSignal: model.SignalNormal,
	}

	for _, post := range posts {
		text := strings.ToLower(post.FullText())

		if hits := distinctHits(text, capitulationKeywords); len(hits) > 0 {
			summary.CapitulationCount++
			summary.CapitulationPosts = append(summary.CapitulationPosts, model.ContrarianHit{
				Title: post.Title, URL: post.URL, Hits: hits,
			})
		}
		if hits := distinctHits(text, euphoriaKeywords); len(hits) > 0 {
			summary.EuphoriaCount++
			summary.EuphoriaPosts = append(summary.EuphoriaPosts, model.ContrarianHit{
				Title: post.Title, URL: post.URL, Hits: hits,
			})
		}
	}

	if summary.TotalPosts > 0 {
		summary.CapitulationRatio = float64(summary.CapitulationCount) / float64(summary.TotalPosts)
		summary.EuphoriaRatio = float64(summary.EuphoriaCount) / float64(summary.TotalPosts)
	}

	// Fear takes precedence when both thresholds trip: the defensive
	// bias is to surface panic first.
	switch {
	case summary.CapitulationRatio >= d.extremeRatio:
		summary.MarketSignal = model.SignalExtremeFear
	case summary.EuphoriaRatio >= d.extremeRatio:
		summary.MarketSignal = model.SignalExtremeGreed
	}

	return summary
}

// distinctHits returns the keywords from the class that occur in text,
// in class definition order.
func distinctHits(text string, keywords []string) []string {
	var hits []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits = append(hits, kw)
		}
	}
	return hits
}
