package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkuo/stockpulse/internal/feed"
	"github.com/mkuo/stockpulse/internal/fetch"
	"github.com/mkuo/stockpulse/internal/model"
)

var (
	feedDataDir string
	feedTimeout time.Duration
)

// feedCmd refreshes the dynamic alias layer
var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Refresh dynamic ticker nicknames from exchange quotes",
	Long: `Feed queries the TWSE and TPEX open quote APIs and rewrites the
dynamic alias file with price-dependent nicknames (股王 and 股后, the
highest and second-highest close on the market).

Run it before scheduled scans, or on a daily timer. If no exchange
answers, the previous alias file is left untouched.`,
	Args: cobra.NoArgs,
	RunE: runFeed,
}

func init() {
	rootCmd.AddCommand(feedCmd)

	feedCmd.Flags().StringVar(&feedDataDir, "data-dir", "data", "directory of alias definition files")
	feedCmd.Flags().DurationVar(&feedTimeout, "timeout", time.Minute, "overall refresh timeout")
}

func runFeed(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), feedTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false // quotes are point-in-time, never cache

	path := filepath.Join(feedDataDir, "dynamic_aliases.yaml")

	updater := feed.NewUpdater(fetch.NewClient(cfg, nil))
	if err := updater.Update(ctx, path); err != nil {
		return fmt.Errorf("feed failed: %w", err)
	}

	fmt.Printf("updated dynamic aliases: %s\n", path)
	return nil
}
