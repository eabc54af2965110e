// Package llm narrates detected anomalies. It sits strictly after the
// rule-based scoring: providers receive the finished numbers and post
// titles and return a short attribution, nothing flows back.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkuo/stockpulse/internal/model"
)

// Provider is one LLM backend
type Provider interface {
	// Name returns the provider name
	Name() string

	// Explain generates a short attribution for the given prompt
	Explain(ctx context.Context, req ExplainRequest) (*ExplainResponse, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// ExplainRequest carries the prompt and generation limits
type ExplainRequest struct {
	Prompt    string
	Model     string // overrides the configured model when set
	MaxTokens int
}

// ExplainResponse is a provider's answer
type ExplainResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (Ollama, proxies)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults with the explainer disabled
func DefaultConfig() Config {
	return Config{
		Timeout:   30,
		MaxTokens: 200,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}

// systemPrompt frames the model as a sentiment analyst. Slogans carry
// no information, the model is told to look for concrete events.
const systemPrompt = `You are a quantitative trader specializing in social sentiment analysis.
You read hot posts from stock discussion boards (PTT, Reddit) and explain why discussion volume spiked.

Rules:
1. Ignore empty slogans like "to the moon", "HODL", "上看".
2. Focus on concrete events: earnings, guidance calls, technical breakthroughs, analyst upgrades, policy news.
3. Answer in one or two short sentences per ticker. No preamble.
4. If the post titles don't reveal a cause, say so plainly instead of guessing.`

// BuildPrompt assembles the user prompt from the detected anomalies
// and the titles of the posts that mention each anomalous ticker.
func BuildPrompt(anomalies []model.TickerBuzz, titlesByTicker map[string][]string) string {
	var sb strings.Builder
	sb.WriteString("Unusual discussion volume was detected for the following tickers:\n")

	for _, a := range anomalies {
		label := a.Ticker
		if a.Name != "" {
			label = fmt.Sprintf("%s (%s)", a.Ticker, a.Name)
		}
		if a.Status == model.BuzzOK {
			fmt.Fprintf(&sb, "\n%s: %d mentions this run, z-score %.2f\n", label, a.Mentions, a.BuzzScore)
		} else {
			fmt.Fprintf(&sb, "\n%s: %d mentions this run (%s)\n", label, a.Mentions, a.Status)
		}
		titles := titlesByTicker[a.Ticker]
		if len(titles) == 0 {
			sb.WriteString("  (no post titles captured)\n")
			continue
		}
		for i, t := range titles {
			if i >= 10 {
				fmt.Fprintf(&sb, "  ... and %d more posts\n", len(titles)-10)
				break
			}
			fmt.Fprintf(&sb, "  - %s\n", t)
		}
	}

	sb.WriteString("\nFor each ticker, state the most likely cause of the spike.")
	return sb.String()
}
