package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/avkuznetsov/tweetlens/internal/analysis"
)

// Config represents application configuration
type Config struct {
	Twitter  TwitterConfig
	Analysis AnalysisConfig
	Logging  LoggingConfig
}

// TwitterConfig represents X API credentials
type TwitterConfig struct {
	BearerToken string `envconfig:"X_BEARER_TOKEN" required:"false"`
}

// AnalysisConfig represents pipeline tuning parameters
type AnalysisConfig struct {
	BucketGranularity string   `envconfig:"ANALYSIS_BUCKET_GRANULARITY" default:"day"` // hour or day
	TopN              int      `envconfig:"ANALYSIS_TOP_N" default:"20"`
	MinWordLength     int      `envconfig:"ANALYSIS_MIN_WORD_LENGTH" default:"2"`
	Stopwords         []string `envconfig:"ANALYSIS_STOPWORDS"`
	LexiconPath       string   `envconfig:"SENTIMENT_LEXICON_PATH"`
	TopicLexiconPath  string   `envconfig:"TOPIC_LEXICON_PATH"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	switch analysis.Granularity(c.Analysis.BucketGranularity) {
	case analysis.GranularityHour, analysis.GranularityDay:
	default:
		return fmt.Errorf("invalid ANALYSIS_BUCKET_GRANULARITY %q: must be hour or day", c.Analysis.BucketGranularity)
	}
	if c.Analysis.TopN < 1 {
		return fmt.Errorf("invalid ANALYSIS_TOP_N %d: must be at least 1", c.Analysis.TopN)
	}
	if c.Analysis.MinWordLength < 1 {
		return fmt.Errorf("invalid ANALYSIS_MIN_WORD_LENGTH %d: must be at least 1", c.Analysis.MinWordLength)
	}
	return nil
}

// Options converts the analysis configuration into aggregation options,
// keeping defaults where no override is set
func (c *AnalysisConfig) Options() analysis.Options {
	opts := analysis.DefaultOptions()
	opts.Bucket = analysis.Granularity(c.BucketGranularity)
	opts.TopN = c.TopN
	opts.MinWordLength = c.MinWordLength

	if len(c.Stopwords) > 0 {
		stopwords := make(map[string]struct{}, len(c.Stopwords))
		for _, word := range c.Stopwords {
			stopwords[word] = struct{}{}
		}
		opts.Stopwords = stopwords
	}

	return opts
}
