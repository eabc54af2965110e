package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mkuo/stockpulse/internal/model"
)

// Renderer writes a run's report as JSON, Markdown or a terminal
// summary. Rendering never mutates the report.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer; the summary goes to out
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{out: out}
}

// RenderJSON writes the full report as indented JSON to path,
// or to the summary writer when path is "-".
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err := r.out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report to path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	md := r.Markdown(report)
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// Markdown renders the report body
func (r *Renderer) Markdown(report *model.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Market Pulse: %s", report.Source)
	if report.Board != "" {
		fmt.Fprintf(&sb, " / %s", report.Board)
	}
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Fetched: %s\n\n", report.FetchedAt.Format(time.RFC3339))

	if len(report.Sentiment) > 0 {
		sb.WriteString("## Sentiment\n\n")
		sb.WriteString("| Score | Label | Title |\n|---:|---|---|\n")
		for _, pa := range report.Sentiment {
			fmt.Fprintf(&sb, "| %.1f | %s | [%s](%s) |\n",
				pa.Sentiment.Score, pa.Sentiment.Label, escapePipes(pa.Title), pa.URL)
		}
		sb.WriteString("\n")
	}

	if c := report.Contrarian; c != nil {
		sb.WriteString("## Contrarian Index\n\n")
		fmt.Fprintf(&sb, "- Signal: **%s**\n", c.MarketSignal)
		fmt.Fprintf(&sb, "- Capitulation: %d/%d (%.1f%%)\n", c.CapitulationCount, c.TotalPosts, c.CapitulationRatio*100)
		fmt.Fprintf(&sb, "- Euphoria: %d/%d (%.1f%%)\n\n", c.EuphoriaCount, c.TotalPosts, c.EuphoriaRatio*100)
	}

	if b := report.Buzz; b != nil && len(b.Tickers) > 0 {
		sb.WriteString("## Ticker Buzz\n\n")
		sb.WriteString("| Ticker | Mentions | Buzz | Status |\n|---|---:|---:|---|\n")
		for _, tb := range b.Tickers {
			mark := ""
			if tb.IsAnomaly {
				mark = " ⚠"
			}
			score := "-"
			if tb.Status == model.BuzzOK {
				score = fmt.Sprintf("%.2f", tb.BuzzScore)
			}
			label := tb.Ticker
			if tb.Name != "" {
				label = fmt.Sprintf("%s %s", tb.Ticker, tb.Name)
			}
			fmt.Fprintf(&sb, "| %s | %d | %s | %s%s |\n", label, tb.Mentions, score, tb.Status, mark)
		}
		sb.WriteString("\n")
	}

	if s := report.Sectors; s != nil && len(s.Sectors) > 0 {
		sb.WriteString("## Sector Heat\n\n")
		for _, sec := range s.Sectors {
			fmt.Fprintf(&sb, "- **%s**: %d posts (%s)\n", sec.Sector, sec.MentionCount, strings.Join(sec.MatchedKeywords, ", "))
		}
		sb.WriteString("\n")
	}

	if n := report.LLM; n != nil && n.Enabled {
		sb.WriteString("## Anomaly Notes\n\n")
		if n.Summary != "" {
			fmt.Fprintf(&sb, "%s\n\n", n.Summary)
			fmt.Fprintf(&sb, "_%s/%s; narration only, scores are rule-based._\n", n.Provider, n.Model)
		}
		if n.Warning != "" {
			fmt.Fprintf(&sb, "_Warning: %s_\n", n.Warning)
		}
	}

	return sb.String()
}

// RenderSummary prints the short terminal digest of a run
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Fprintf(r.out, "source %s", report.Source)
	if report.Board != "" {
		fmt.Fprintf(r.out, "/%s", report.Board)
	}
	fmt.Fprintf(r.out, ": %d posts", len(report.Sentiment))

	if c := report.Contrarian; c != nil {
		fmt.Fprintf(r.out, ", signal=%s", c.MarketSignal)
	}
	if b := report.Buzz; b != nil {
		fmt.Fprintf(r.out, ", anomalies=%d", len(b.Anomalies))
	}
	if s := report.Sectors; s != nil && s.TopSector() != "" {
		fmt.Fprintf(r.out, ", hot sector=%s", s.TopSector())
	}
	fmt.Fprintln(r.out)

	if b := report.Buzz; b != nil {
		for _, a := range b.Anomalies {
			fmt.Fprintf(r.out, "  ⚠ %s: %d mentions (%s)\n", a.Ticker, a.Mentions, buzzScoreLabel(a))
		}
	}
	if n := report.LLM; n != nil && n.Summary != "" {
		fmt.Fprintf(r.out, "  note: %s\n", n.Summary)
	}
}

func buzzScoreLabel(tb model.TickerBuzz) string {
	if tb.Status == model.BuzzOK {
		return fmt.Sprintf("z=%.2f", tb.BuzzScore)
	}
	return string(tb.Status)
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
