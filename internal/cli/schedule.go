package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkuo/stockpulse/internal/pipeline"
)

const (
	maxRetries     = 3
	initialBackoff = 2 * time.Second
)

var (
	interval   time.Duration
	jsonDir    string
	runTimeout time.Duration
)

// scheduleCmd runs scans on a fixed interval
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run scans on a fixed interval",
	Long: `Schedule runs the scan loop until interrupted: one run immediately,
then one per interval. A failed run is retried with exponential backoff
and then skipped; the loop never dies on a bad cycle.

Example:
  stockpulse schedule --interval 5m --all
  stockpulse schedule --source reddit --interval 10m --buzz --json-dir reports/`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	addScanFlags(scheduleCmd)

	scheduleCmd.Flags().DurationVar(&interval, "interval", 5*time.Minute, "time between runs")
	scheduleCmd.Flags().StringVar(&jsonDir, "json-dir", "", "directory for timestamped JSON reports (optional)")
	scheduleCmd.Flags().DurationVar(&runTimeout, "run-timeout", 5*time.Minute, "timeout per run")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, scanOptions())
	if err != nil {
		return err
	}

	if jsonDir != "" {
		if err := os.MkdirAll(jsonDir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("schedule started: source=%s interval=%s", source, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		runOnceWithRetry(ctx, p)

		select {
		case <-ctx.Done():
			log.Printf("schedule stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// runOnceWithRetry executes one cycle, retrying transient failures with
// exponential backoff. A cycle that keeps failing is skipped, not fatal.
func runOnceWithRetry(ctx context.Context, p *pipeline.Pipeline) {
	backoff := initialBackoff

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := runOnce(ctx, p)
		if err == nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
		if attempt == maxRetries {
			log.Printf("attempt %d/%d failed, skipping this cycle: %v", attempt, maxRetries, err)
			return
		}

		log.Printf("attempt %d/%d failed: %v - retrying in %s", attempt, maxRetries, err, backoff)
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func runOnce(ctx context.Context, p *pipeline.Pipeline) error {
	runCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	report, err := p.Run(runCtx)
	if err != nil {
		return err
	}

	outPath := ""
	if jsonDir != "" {
		outPath = filepath.Join(jsonDir, fmt.Sprintf("pulse-%s.json", report.FetchedAt.Format("20060102-150405")))
	}
	return p.RenderReport(report, outPath, "", verbose)
}
