package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/factnet/factnet/internal/pipeline"
)

var (
	fetchDB      string
	fetchTimeout time.Duration
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the latest articles from trusted news feeds",
	Long: `Fetch pulls the built-in BBC and Reuters RSS feeds, strips markup
from the summaries, and stores new articles in the local database.
Articles already seen (by URL) are skipped.

Fetching respects robots.txt and rate-limits requests per host.

Example:
  factnet fetch
  factnet fetch --db ./news.db --timeout 5m`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchDB, "db", "", "article database path (overrides config)")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 10*time.Minute, "total timeout for the fetch run")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if fetchDB != "" {
		cfg.Store.Path = fetchDB
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	fmt.Fprintf(os.Stderr, "Fetching trusted feeds...\n")
	newArticles, err := p.FetchFeeds(ctx)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	total, err := p.ArticleCount(ctx)
	if err != nil {
		return fmt.Errorf("count articles: %w", err)
	}

	fmt.Printf("Stored %d new articles (%d total)\n", newArticles, total)
	return nil
}
