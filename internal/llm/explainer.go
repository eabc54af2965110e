package llm

import (
	"context"
	"strings"

	"github.com/mkuo/stockpulse/internal/model"
)

// Explainer turns buzz anomalies into a short LLM-written attribution.
// It never fails a run: provider errors become a warning on the note.
type Explainer struct {
	provider  Provider
	model     string
	maxTokens int
}

// NewExplainer wraps a provider. A nil provider yields a nil explainer,
// callers treat that as "disabled".
func NewExplainer(provider Provider, config Config) *Explainer {
	if provider == nil {
		return nil
	}
	return &Explainer{
		provider:  provider,
		model:     config.Model,
		maxTokens: config.MaxTokens,
	}
}

// Explain narrates the anomalies in a finished report. Returns nil when
// there is nothing to explain.
func (e *Explainer) Explain(ctx context.Context, report *model.Report) *model.LLMNote {
	if e == nil || report.Buzz == nil || len(report.Buzz.Anomalies) == 0 {
		return nil
	}

	prompt := BuildPrompt(report.Buzz.Anomalies, titlesByTicker(report))

	resp, err := e.provider.Explain(ctx, ExplainRequest{
		Prompt:    prompt,
		Model:     e.model,
		MaxTokens: e.maxTokens,
	})
	if err != nil {
		return &model.LLMNote{
			Enabled:  true,
			Provider: e.provider.Name(),
			Warning:  err.Error(),
		}
	}

	return &model.LLMNote{
		Enabled:  true,
		Provider: e.provider.Name(),
		Model:    resp.Model,
		Summary:  strings.TrimSpace(resp.Summary),
	}
}

// titlesByTicker maps each ticker to the titles of posts mentioning it,
// using the entity matches already resolved during sentiment analysis.
func titlesByTicker(report *model.Report) map[string][]string {
	out := make(map[string][]string)
	for _, pa := range report.Sentiment {
		for _, m := range pa.Entities {
			out[m.Ticker] = append(out[m.Ticker], pa.Title)
		}
	}
	return out
}
