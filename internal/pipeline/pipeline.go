// Package pipeline wires one analysis run: fetch a batch of posts,
// score each one, run the batch detectors and render the report.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mkuo/stockpulse/internal/buzz"
	"github.com/mkuo/stockpulse/internal/cache"
	"github.com/mkuo/stockpulse/internal/contrarian"
	"github.com/mkuo/stockpulse/internal/entity"
	"github.com/mkuo/stockpulse/internal/fetch"
	"github.com/mkuo/stockpulse/internal/llm"
	"github.com/mkuo/stockpulse/internal/model"
	"github.com/mkuo/stockpulse/internal/sector"
	"github.com/mkuo/stockpulse/internal/sentiment"
	"github.com/mkuo/stockpulse/internal/store"
)

// Options selects the source and the analyses for one run
type Options struct {
	Source        string // "ptt" or "reddit"
	Board         string // PTT board name
	Subreddits    []string
	Pages         int  // PTT list pages to walk
	Limit         int  // Reddit posts per subreddit
	FetchComments bool // Reddit: pull comment threads too

	Contrarian bool
	Buzz       bool
	Sectors    bool
	LLM        bool
}

// Pipeline orchestrates one complete run
type Pipeline struct {
	source     fetch.Source
	scorer     sentiment.Scorer
	resolver   *entity.Resolver
	contrarian *contrarian.Detector
	buzz       *buzz.Detector
	sectors    *sector.Tracker
	explainer  *llm.Explainer
	renderer   *store.Renderer
	config     *model.Config
	opts       Options
}

// New assembles a pipeline from configuration. Definition files are
// loaded and validated here, so a malformed alias or sector file fails
// before anything is fetched.
func New(cfg *model.Config, opts Options) (*Pipeline, error) {
	var responseCache cache.Cache
	if cfg.Cache.Enabled {
		responseCache = cache.NewLayered(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}
	client := fetch.NewClient(cfg, responseCache)

	p := &Pipeline{
		renderer: store.NewRenderer(os.Stdout),
		config:   cfg,
		opts:     opts,
	}

	resolver, err := newResolver(cfg, opts.Source)
	if err != nil {
		return nil, err
	}
	p.resolver = resolver

	switch opts.Source {
	case string(model.SourcePTT), "":
		p.source = fetch.NewPTT(client, opts.Board, opts.Pages, cfg.Concurrency.FetchWorkers)
		p.scorer = sentiment.NewReactionScorer(cfg.Analysis)
	case string(model.SourceReddit):
		p.source = fetch.NewReddit(client, opts.Subreddits, opts.Limit, opts.FetchComments)
		p.scorer = sentiment.NewRatioScorer(cfg.Analysis)
	default:
		return nil, fmt.Errorf("unknown source: %s (supported: ptt, reddit)", opts.Source)
	}

	if opts.Contrarian {
		p.contrarian = contrarian.NewDetector(cfg.Analysis)
	}
	if opts.Buzz {
		p.buzz = buzz.NewDetector(resolver, cfg.Analysis)
	}
	if opts.Sectors {
		data, err := os.ReadFile(cfg.Data.SectorFile)
		if err != nil {
			return nil, fmt.Errorf("read sector file: %w", err)
		}
		defs, err := sector.LoadDefinitions(data)
		if err != nil {
			return nil, err
		}
		tracker, err := sector.NewTracker(defs)
		if err != nil {
			return nil, err
		}
		p.sectors = tracker
	}

	if opts.LLM && cfg.LLM.Provider != "" {
		llmConfig := llm.ConfigFromModel(cfg.LLM)
		provider, err := llm.NewProvider(llmConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM provider disabled: %v\n", err)
		} else {
			p.explainer = llm.NewExplainer(provider, llmConfig)
		}
	}

	return p, nil
}

// newResolver builds the entity resolver for a source. PTT reads the
// curated Chinese alias file plus the feed-maintained dynamic layer and
// recognizes bare Taiwan security codes; Reddit reads its own alias
// file and recognizes cashtags and bare uppercase symbols.
func newResolver(cfg *model.Config, source string) (*entity.Resolver, error) {
	switch source {
	case string(model.SourceReddit):
		static, err := entity.LoadAliasFile(cfg.Data.RedditAliasFile)
		if err != nil {
			return nil, err
		}
		table, err := entity.NewAliasTable(static, nil)
		if err != nil {
			return nil, err
		}
		return entity.NewResolver(table, entity.Options{DollarTags: true, BareSymbols: true}), nil

	default:
		static, err := entity.LoadAliasFile(cfg.Data.AliasFile)
		if err != nil {
			return nil, err
		}
		dynamic, err := entity.LoadAliasFileOptional(cfg.Data.DynamicAliasFile)
		if err != nil {
			return nil, err
		}
		table, err := entity.NewAliasTable(static, dynamic)
		if err != nil {
			return nil, err
		}
		return entity.NewResolver(table, entity.Options{DigitCodes: true}), nil
	}
}

// Run fetches a batch and produces the report, persisting the updated
// buzz history on the way out.
func (p *Pipeline) Run(ctx context.Context) (*model.Report, error) {
	posts, err := p.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", p.source.Name(), err)
	}

	var history buzz.History
	if p.buzz != nil {
		history, err = store.LoadHistory(p.config.Data.BuzzHistoryFile)
		if err != nil {
			return nil, err
		}
	}

	report, updated := p.Analyze(posts, history)

	if p.buzz != nil {
		if err := store.SaveHistory(p.config.Data.BuzzHistoryFile, updated); err != nil {
			return nil, err
		}
	}

	// narration runs last; scores are already final
	if p.explainer != nil {
		report.LLM = p.explainer.Explain(ctx, report)
	}

	return report, nil
}

// Analyze scores one batch against the given buzz history. Pure with
// respect to I/O; Run handles fetching and persistence around it.
func (p *Pipeline) Analyze(posts []model.Post, history buzz.History) (*model.Report, buzz.History) {
	report := &model.Report{
		Source:    model.Source(p.source.Name()),
		Board:     p.boardLabel(),
		FetchedAt: time.Now().UTC(),
	}

	ptrs := make([]*model.Post, len(posts))
	for i := range posts {
		ptrs[i] = &posts[i]
	}

	report.Sentiment = make([]model.PostAnalysis, 0, len(posts))
	for _, post := range ptrs {
		analysis := model.PostAnalysis{
			Title:     post.Title,
			URL:       post.URL,
			Author:    post.Author,
			Sentiment: p.scorer.Score(post),
			Entities:  p.resolver.Resolve(post.FullText()),
		}
		if !post.Timestamp.IsZero() {
			analysis.Date = post.Timestamp.Format(time.RFC3339)
		}
		report.Sentiment = append(report.Sentiment, analysis)
	}

	if p.contrarian != nil {
		summary := p.contrarian.Summarize(ptrs)
		report.Contrarian = &summary
	}

	updated := history
	if p.buzz != nil {
		buzzReport, next := p.buzz.Analyze(ptrs, history)
		report.Buzz = &buzzReport
		updated = next
	}

	if p.sectors != nil {
		sectorReport := p.sectors.Analyze(ptrs)
		report.Sectors = &sectorReport
	}

	return report, updated
}

func (p *Pipeline) boardLabel() string {
	if p.opts.Source == string(model.SourceReddit) {
		if len(p.opts.Subreddits) == 1 {
			return p.opts.Subreddits[0]
		}
		return ""
	}
	return p.opts.Board
}

// RenderReport writes the report to the requested outputs and prints
// the terminal summary.
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose && jsonPath != "-" {
			fmt.Printf("wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("wrote Markdown: %s\n", mdPath)
		}
	}

	if jsonPath != "-" {
		p.renderer.RenderSummary(report)
	}
	return nil
}
