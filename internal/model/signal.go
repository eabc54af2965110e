package model

// SentimentLabel is the three-way classification of a post's sentiment
type SentimentLabel string

const (
	LabelBullish SentimentLabel = "bullish"
	LabelBearish SentimentLabel = "bearish"
	LabelNeutral SentimentLabel = "neutral"
)

// EntityMatch is one resolved ticker mention in a post
type EntityMatch struct {
	Ticker  string `json:"ticker"`         // Canonical ticker (e.g., "2330", "NVDA")
	Name    string `json:"name,omitempty"` // Display name (empty for bare code matches)
	Matched string `json:"matched"`        // The surface string that was found
}

// SentimentResult is the per-post sentiment score. Derived, never stored.
type SentimentResult struct {
	Title string         `json:"title"`
	URL   string         `json:"url"`
	Score float64        `json:"score"`
	Label SentimentLabel `json:"label"`

	// Raw counters that produced the score
	Push  int `json:"push,omitempty"`
	Boo   int `json:"boo,omitempty"`
	Arrow int `json:"arrow,omitempty"`

	UpvoteRatio float64 `json:"upvote_ratio,omitempty"`
	BullishHits int     `json:"bullish_hits,omitempty"`
	BearishHits int     `json:"bearish_hits,omitempty"`
}

// MarketSignal is the batch-level contrarian read
type MarketSignal string

const (
	SignalExtremeFear  MarketSignal = "extreme_fear"
	SignalExtremeGreed MarketSignal = "extreme_greed"
	SignalNormal       MarketSignal = "normal"
)

// ContrarianHit records one post that tripped a contrarian keyword class
type ContrarianHit struct {
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Hits  []string `json:"hits"` // distinct keywords found
}

// ContrarianSummary aggregates capitulation/euphoria counts for one batch
type ContrarianSummary struct {
	TotalPosts        int             `json:"total_posts"`
	CapitulationCount int             `json:"capitulation_count"`
	EuphoriaCount     int             `json:"euphoria_count"`
	CapitulationRatio float64         `json:"capitulation_ratio"`
	EuphoriaRatio     float64         `json:"euphoria_ratio"`
	MarketSignal      MarketSignal    `json:"market_signal"`
	CapitulationPosts []ContrarianHit `json:"capitulation_posts,omitempty"`
	EuphoriaPosts     []ContrarianHit `json:"euphoria_posts,omitempty"`
}

// BuzzStatus qualifies a ticker's buzz score
type BuzzStatus string

const (
	// BuzzOK means the score is a real z-score over sufficient history
	BuzzOK BuzzStatus = "ok"
	// BuzzInsufficientHistory means fewer than MinHistory prior
	// observations exist; the score is undefined, not zero
	BuzzInsufficientHistory BuzzStatus = "insufficient_history"
	// BuzzFlatBaseline means the historical window has zero variance
	// and the current count departed from it
	BuzzFlatBaseline BuzzStatus = "flat_baseline"
)

// TickerBuzz is one ticker's discussion-volume read for the current run
type TickerBuzz struct {
	Ticker    string     `json:"ticker"`
	Name      string     `json:"name,omitempty"`
	Mentions  int        `json:"mentions"`
	BuzzScore float64    `json:"buzz_score"` // meaningful only when Status == BuzzOK
	Status    BuzzStatus `json:"status"`
	IsAnomaly bool       `json:"anomaly"`
}

// BuzzReport is the per-run discussion-volume report
type BuzzReport struct {
	TotalPosts int          `json:"total_posts"`
	Tickers    []TickerBuzz `json:"tickers"`
	Anomalies  []TickerBuzz `json:"anomalies"`
}

// SectorHeat is one topic group's popularity in a batch
type SectorHeat struct {
	Sector          string   `json:"sector"`
	MentionCount    int      `json:"mentions"` // posts containing >=1 keyword
	MatchedKeywords []string `json:"keywords,omitempty"`
	SampleTitles    []string `json:"sample_titles,omitempty"`
}

// SectorReport ranks sectors by mention count, definition order on ties.
// Sectors with zero mentions are omitted.
type SectorReport struct {
	TotalPosts int          `json:"total_posts"`
	Sectors    []SectorHeat `json:"sectors"`
}

// TopSector returns the hottest sector name, or "" for an empty report
func (r *SectorReport) TopSector() string {
	if len(r.Sectors) == 0 {
		return ""
	}
	return r.Sectors[0].Sector
}
