package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkuo/stockpulse/internal/model"
	"github.com/mkuo/stockpulse/internal/pipeline"
)

var (
	source        string
	board         string
	pages         int
	subreddits    []string
	limit         int
	fetchComments bool

	withContrarian bool
	withBuzz       bool
	withSectors    bool
	withAll        bool

	outJSON   string
	outMD     string
	dataDir   string
	timeout   time.Duration
	userAgent string
	noCache   bool

	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Fetch one batch of posts and generate a signal report",
	Long: `Scan fetches the latest posts from the selected source, scores each
post's sentiment, resolves ticker mentions, and optionally runs the
batch detectors (contrarian index, buzz anomalies, sector heat).

Example:
  stockpulse scan --board Stock --pages 2 --all
  stockpulse scan --source reddit --subreddits wallstreetbets,stocks --limit 50
  stockpulse scan --all --llm anthropic --json report.json`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	addScanFlags(scanCmd)

	scanCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (\"-\" for stdout)")
	scanCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	scanCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall run timeout")
}

// addScanFlags registers the flags shared by scan and schedule
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&source, "source", "ptt", "post source (ptt, reddit)")
	cmd.Flags().StringVar(&board, "board", "Stock", "PTT board name")
	cmd.Flags().IntVar(&pages, "pages", 1, "PTT list pages to walk")
	cmd.Flags().StringSliceVar(&subreddits, "subreddits",
		[]string{"wallstreetbets", "stocks", "investing", "cryptocurrency", "bitcoin"},
		"subreddits to pull")
	cmd.Flags().IntVar(&limit, "limit", 25, "Reddit posts per subreddit (max 100)")
	cmd.Flags().BoolVar(&fetchComments, "comments", false, "Reddit: fetch comment threads too (slower)")

	cmd.Flags().BoolVar(&withContrarian, "contrarian", false, "run the contrarian index")
	cmd.Flags().BoolVar(&withBuzz, "buzz", false, "run buzz anomaly detection")
	cmd.Flags().BoolVar(&withSectors, "sectors", false, "run sector heat ranking")
	cmd.Flags().BoolVar(&withAll, "all", false, "run every analysis")

	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "directory of alias/sector definition files")
	cmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache (force fresh fetch)")

	cmd.Flags().BoolVar(&llmEnabled, "llm", false, "narrate buzz anomalies with an LLM")
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
}

// buildConfig assembles the runtime configuration from defaults, the
// data directory and flags. API keys come from the environment only.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}

	cfg.Data.AliasFile = filepath.Join(dataDir, "aliases.yaml")
	cfg.Data.DynamicAliasFile = filepath.Join(dataDir, "dynamic_aliases.yaml")
	cfg.Data.RedditAliasFile = filepath.Join(dataDir, "reddit_aliases.yaml")
	cfg.Data.SectorFile = filepath.Join(dataDir, "sectors.yaml")
	cfg.Data.BuzzHistoryFile = filepath.Join(dataDir, "buzz_history.json")

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

// scanOptions translates the shared flags into pipeline options
func scanOptions() pipeline.Options {
	return pipeline.Options{
		Source:        source,
		Board:         board,
		Subreddits:    subreddits,
		Pages:         pages,
		Limit:         limit,
		FetchComments: fetchComments,
		Contrarian:    withContrarian || withAll,
		Buzz:          withBuzz || withAll,
		Sectors:       withSectors || withAll,
		LLM:           llmEnabled,
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, scanOptions())
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Fetching %s...\n", source)
	}

	report, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzed %d posts\n", len(report.Sentiment))
		if report.LLM != nil && report.LLM.Summary != "" {
			fmt.Fprintf(os.Stderr, "LLM note via %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}
