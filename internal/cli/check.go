package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/factnet/factnet/internal/pipeline"
)

var (
	checkFile    string
	checkJSON    string
	checkDB      string
	checkModel   string
	checkTimeout time.Duration
	checkNoCache bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [text]",
	Short: "Score a text submission against recent trusted articles",
	Long: `Check compares a text submission against recent articles from
trusted sources and reports:
- An overall similarity score and percentage
- A High/Medium/Low factual accuracy level
- The closest matching articles, best first

The submission comes from the argument or from --file. Requires the
OPENAI_API_KEY environment variable for the embedding model.

Example:
  factnet check "The central bank raised interest rates today"
  factnet check --file claim.txt --json verdict.json
  factnet check "some claim" --model text-embedding-3-large --no-cache`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkFile, "file", "", "read the submission from a file instead of the argument")
	checkCmd.Flags().StringVar(&checkJSON, "json", "", "also write the verdict as JSON to this path")
	checkCmd.Flags().StringVar(&checkDB, "db", "", "article database path (overrides config)")
	checkCmd.Flags().StringVar(&checkModel, "model", "", "embedding model (overrides config)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 0, "check deadline (overrides config)")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "disable the embedding cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	text, err := readSubmission(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if checkDB != "" {
		cfg.Store.Path = checkDB
	}
	if checkModel != "" {
		cfg.Embedding.Model = checkModel
		// An overridden model may not match the configured dimension;
		// let the startup probe learn it
		cfg.Embedding.Dimension = 0
	}
	if checkTimeout > 0 {
		cfg.Check.Timeout = checkTimeout
	}
	if checkNoCache {
		cfg.Cache.Enabled = false
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

	ctx := context.Background()
	if err := p.EnableChecking(ctx); err != nil {
		return err
	}

	verdict, err := p.CheckText(ctx, text)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	pipeline.RenderSummary(os.Stdout, verdict)

	if checkJSON != "" {
		if err := pipeline.RenderJSON(verdict, checkJSON); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote verdict: %s\n", checkJSON)
		}
	}

	return nil
}

// readSubmission resolves the submission text from the argument or --file
func readSubmission(args []string) (string, error) {
	if checkFile != "" {
		data, err := os.ReadFile(checkFile)
		if err != nil {
			return "", fmt.Errorf("read submission file: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	return "", fmt.Errorf("provide the submission as an argument or with --file")
}
