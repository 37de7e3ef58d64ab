package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/factnet/factnet/internal/pipeline"
)

var (
	categorizeDB      string
	categorizeTimeout time.Duration
)

// categorizeCmd represents the categorize command
var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Assign topic categories to stored articles",
	Long: `Categorize scans stored articles that have no category yet and
assigns one by keyword matching against the built-in category tables
(politics, business, technology, health, and so on). Headline keywords
carry double weight. Articles with no clear signal stay uncategorized.

Example:
  factnet categorize
  factnet categorize --db ./news.db`,
	Args: cobra.NoArgs,
	RunE: runCategorize,
}

func init() {
	rootCmd.AddCommand(categorizeCmd)

	categorizeCmd.Flags().StringVar(&categorizeDB, "db", "", "article database path (overrides config)")
	categorizeCmd.Flags().DurationVar(&categorizeTimeout, "timeout", 5*time.Minute, "total timeout for the categorize run")
}

func runCategorize(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), categorizeTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if categorizeDB != "" {
		cfg.Store.Path = categorizeDB
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

	updated, err := p.CategorizeArticles(ctx)
	if err != nil {
		return fmt.Errorf("categorize failed: %w", err)
	}

	fmt.Printf("Categorized %d articles\n", updated)
	return nil
}
