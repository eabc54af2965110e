package model

import "time"

// PostAnalysis pairs one post's sentiment with its resolved entities
type PostAnalysis struct {
	Title     string          `json:"title"`
	URL       string          `json:"url"`
	Author    string          `json:"author,omitempty"`
	Date      string          `json:"date,omitempty"`
	Sentiment SentimentResult `json:"sentiment"`
	Entities  []EntityMatch   `json:"entities,omitempty"`
}

// Report is the complete output of one analysis run
type Report struct {
	Source    Source    `json:"source"`
	Board     string    `json:"board,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`

	Sentiment  []PostAnalysis     `json:"sentiment,omitempty"`
	Contrarian *ContrarianSummary `json:"contrarian,omitempty"`
	Buzz       *BuzzReport        `json:"buzz,omitempty"`
	Sectors    *SectorReport      `json:"sectors,omitempty"`

	LLM *LLMNote `json:"llm,omitempty"` // Optional narration, never affects scoring
}

// LLMNote is an optional LLM-generated attribution for detected anomalies.
// It is produced after all scoring and never feeds back into it.
type LLMNote struct {
	Enabled  bool   `json:"enabled"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Warning  string `json:"warning,omitempty"`
}
