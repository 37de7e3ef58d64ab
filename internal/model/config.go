package model

import (
	"fmt"
	"math"
	"time"
)

// Config holds the complete process configuration.
// Values come from (highest priority first): CLI flags, FACTNET_* environment
// variables, ~/.factnet/config.yaml, and the defaults below.
type Config struct {
	Embedding  EmbeddingConfig  `yaml:"embedding" mapstructure:"embedding"`
	Similarity SimilarityConfig `yaml:"similarity" mapstructure:"similarity"`
	Check      CheckConfig      `yaml:"check" mapstructure:"check"`
	Candidates CandidateConfig  `yaml:"candidates" mapstructure:"candidates"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Feeds      FeedConfig       `yaml:"feeds" mapstructure:"feeds"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
}

// EmbeddingConfig configures the embedding provider
type EmbeddingConfig struct {
	Model     string        `yaml:"model" mapstructure:"model"`         // Versioned embedding model identifier
	Dimension int           `yaml:"dimension" mapstructure:"dimension"` // Expected vector dimension, validated at startup
	BaseURL   string        `yaml:"base_url" mapstructure:"base_url"`   // Custom endpoint (empty = api.openai.com)
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`     // Per-request timeout
	BatchSize int           `yaml:"batch_size" mapstructure:"batch_size"`
}

// SimilarityConfig configures the two-level similarity model
type SimilarityConfig struct {
	DocumentWeight   float64 `yaml:"document_weight" mapstructure:"document_weight"`
	SegmentWeight    float64 `yaml:"segment_weight" mapstructure:"segment_weight"`
	MinSegmentTokens int     `yaml:"min_segment_tokens" mapstructure:"min_segment_tokens"` // Segments with this many tokens or fewer are dropped
}

// CheckConfig configures verdict assembly
type CheckConfig struct {
	HighThreshold   float64       `yaml:"high_threshold" mapstructure:"high_threshold"`
	MediumThreshold float64       `yaml:"medium_threshold" mapstructure:"medium_threshold"` // Also gates the segment-level pass
	TopK            int           `yaml:"top_k" mapstructure:"top_k"`
	Timeout         time.Duration `yaml:"timeout" mapstructure:"timeout"` // Deadline for one whole check
}

// CandidateConfig configures the trusted-article pool
type CandidateConfig struct {
	MaxAgeDays int `yaml:"max_age_days" mapstructure:"max_age_days"`
	Limit      int `yaml:"limit" mapstructure:"limit"`
}

// CacheConfig configures the embedding cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"` // Disk layer location; empty disables the disk layer
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// StoreConfig configures the article store
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // SQLite database path
}

// FeedConfig configures feed aggregation
type FeedConfig struct {
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// OutputConfig configures CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Model:     "text-embedding-3-small",
			Dimension: 1536,
			Timeout:   30 * time.Second,
			BatchSize: 64,
		},
		Similarity: SimilarityConfig{
			DocumentWeight:   0.7,
			SegmentWeight:    0.3,
			MinSegmentTokens: 3,
		},
		Check: CheckConfig{
			HighThreshold:   0.75,
			MediumThreshold: 0.5,
			TopK:            3,
			Timeout:         2 * time.Minute,
		},
		Candidates: CandidateConfig{
			MaxAgeDays: 30,
			Limit:      20,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Store: StoreConfig{
			Path: "factnet.db",
		},
		Feeds: FeedConfig{
			UserAgent:         "Factnet/0.1 (+https://github.com/factnet/factnet)",
			RequestsPerSecond: 1,
			Burst:             2,
			Timeout:           30 * time.Second,
		},
	}
}

// Validate checks cross-field constraints that viper cannot express
func (c *Config) Validate() error {
	if c.Embedding.Model == "" {
		return fmt.Errorf("embedding.model must be set")
	}
	if sum := c.Similarity.DocumentWeight + c.Similarity.SegmentWeight; math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("similarity weights must sum to 1.0, got %.4f", sum)
	}
	if c.Check.HighThreshold <= c.Check.MediumThreshold {
		return fmt.Errorf("check.high_threshold (%.2f) must exceed check.medium_threshold (%.2f)",
			c.Check.HighThreshold, c.Check.MediumThreshold)
	}
	if c.Check.TopK <= 0 {
		return fmt.Errorf("check.top_k must be positive, got %d", c.Check.TopK)
	}
	if c.Candidates.Limit <= 0 {
		return fmt.Errorf("candidates.limit must be positive, got %d", c.Candidates.Limit)
	}
	return nil
}
