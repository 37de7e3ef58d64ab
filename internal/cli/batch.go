package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/factnet/factnet/internal/pipeline"
	"github.com/factnet/factnet/internal/worker"
)

var (
	batchConcurrency int
	batchOutputDir   string
	batchTimeout     time.Duration
	batchNoCache     bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Check multiple submissions from a file in parallel",
	Long: `Batch checks multiple submissions concurrently:
- Read submissions from the input file (one per line, # starts a comment)
- Score submissions in parallel with a configurable worker count
- Write one verdict JSON per submission

Example:
  factnet batch claims.txt
  factnet batch claims.txt --concurrency 8 --output-dir ./verdicts`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "./factnet-verdicts", "output directory for verdicts")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "disable the embedding cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if batchNoCache {
		cfg.Cache.Enabled = false
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	if err := p.EnableChecking(ctx); err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, batchConcurrency, logger)

	fmt.Fprintf(os.Stderr, "Processing %s with %d workers...\n", file, batchConcurrency)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ submission %d: %v\n", result.Index+1, result.Err)
			continue
		}

		jsonPath := filepath.Join(batchOutputDir, fmt.Sprintf("verdict-%04d.json", result.Index+1))
		if err := pipeline.RenderJSON(result.Verdict, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ submission %d: write verdict: %v\n", result.Index+1, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ submission %d: %s (%s)\n",
			result.Index+1, result.Verdict.SimilarityPercentage, result.Verdict.FactualAccuracy)
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d succeeded, %d failed, output in %s\n",
		successCount, failureCount, batchOutputDir)

	return nil
}
