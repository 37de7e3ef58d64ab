package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/factnet/factnet/internal/model"
)

// CheckRunner runs one consistency check against the stored corpus
type CheckRunner interface {
	CheckText(ctx context.Context, text string) (*model.Verdict, error)
}

// CheckJob is one submission to be checked
type CheckJob struct {
	Index  int
	Text   string
	Runner CheckRunner
}

// Execute implements Job
func (j *CheckJob) Execute(ctx context.Context) Result {
	verdict, err := j.Runner.CheckText(ctx, j.Text)
	return &CheckResult{
		Index:   j.Index,
		Text:    j.Text,
		Verdict: verdict,
		Err:     err,
	}
}

// CheckResult is the outcome of one check
type CheckResult struct {
	Index   int
	Text    string
	Verdict *model.Verdict
	Err     error
}

// GetError implements Result
func (r *CheckResult) GetError() error {
	return r.Err
}

// BatchProcessor checks many submissions concurrently
type BatchProcessor struct {
	runner  CheckRunner
	workers int
	logger  *zap.Logger
}

// NewBatchProcessor creates a batch processor with the given concurrency
func NewBatchProcessor(runner CheckRunner, workers int, logger *zap.Logger) *BatchProcessor {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &BatchProcessor{
		runner:  runner,
		workers: workers,
		logger:  logger,
	}
}

// Process checks all submissions and returns results in input order. Per-item
// failures are reported in the result, not returned as an error.
func (b *BatchProcessor) Process(ctx context.Context, texts []string) []*CheckResult {
	pool := NewPool(b.workers)
	pool.Start()

	go func() {
		for i, text := range texts {
			select {
			case <-ctx.Done():
				return
			default:
			}
			pool.Submit(&CheckJob{Index: i, Text: text, Runner: b.runner})
		}
	}()

	raw := pool.Wait()

	results := make([]*CheckResult, 0, len(raw))
	for _, r := range raw {
		cr, ok := r.(*CheckResult)
		if !ok {
			continue
		}
		if cr.Err != nil {
			b.logger.Warn("check failed",
				zap.Int("index", cr.Index),
				zap.Error(cr.Err))
		}
		results = append(results, cr)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	return results
}

// ProcessFile reads submissions from a file (one per line) and checks them
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*CheckResult, error) {
	texts, err := ReadSubmissionsFromFile(path)
	if err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("no submissions found in %s", path)
	}

	b.logger.Info("processing batch",
		zap.String("file", path),
		zap.Int("submissions", len(texts)),
		zap.Int("workers", b.workers))

	return b.Process(ctx, texts), nil
}

// ReadSubmissionsFromFile reads one submission per line, skipping blank lines
// and lines starting with #
func ReadSubmissionsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var texts []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		texts = append(texts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return texts, nil
}
