package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/avkuznetsov/tweetlens/internal/adapters/config"
	"github.com/avkuznetsov/tweetlens/internal/adapters/twitter"
	"github.com/avkuznetsov/tweetlens/internal/analysis"
	"github.com/avkuznetsov/tweetlens/internal/domains"
	"github.com/avkuznetsov/tweetlens/internal/export"
	"github.com/avkuznetsov/tweetlens/internal/pipeline"
	"github.com/avkuznetsov/tweetlens/internal/render"
	"github.com/avkuznetsov/tweetlens/internal/sentiment"
	"github.com/avkuznetsov/tweetlens/pkg/logger"
	"github.com/avkuznetsov/tweetlens/pkg/models"
)

const dateLayout = "2006-01-02"

type flags struct {
	username        string
	keyword         string
	from            string
	to              string
	csvPath         string
	jsonPath        string
	granularity     string
	maxResults      int
	excludeReplies  bool
	excludeRetweets bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:          "tweetlens",
		Short:        "Sentiment analysis for a user's recent X posts",
		Long:         "Fetches recent posts of an X (Twitter) user, scores their sentiment, and renders distribution, time-series and word-frequency summaries with CSV/JSON export.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVarP(&f.username, "username", "u", "", "X username to analyze, without @ (required)")
	cmd.Flags().IntVarP(&f.maxResults, "max-results", "n", 10, "maximum posts to fetch")
	cmd.Flags().BoolVar(&f.excludeReplies, "exclude-replies", true, "exclude replies from the fetch")
	cmd.Flags().BoolVar(&f.excludeRetweets, "exclude-retweets", true, "exclude retweets from the fetch")
	cmd.Flags().StringVar(&f.from, "from", "", "start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "end date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.keyword, "keyword", "k", "", "keep only posts containing this keyword")
	cmd.Flags().StringVar(&f.csvPath, "csv", "", "write the scored post table to this CSV file")
	cmd.Flags().StringVar(&f.jsonPath, "json", "", "write the full scored records to this JSON file")
	cmd.Flags().StringVar(&f.granularity, "granularity", "", "series bucket width: hour or day (overrides config)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func run(ctx context.Context, f flags) error {
	// Pick up .env before reading the environment, like the rest of the config
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if f.granularity != "" {
		cfg.Analysis.BucketGranularity = f.granularity
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	runner, err := buildRunner(cfg)
	if err != nil {
		return err
	}

	query, err := buildQuery(f)
	if err != nil {
		return err
	}

	result, err := runner.Run(ctx, query)
	if err != nil {
		return presentError(err)
	}

	if len(result.Posts) == 0 {
		fmt.Println("No posts found for this user with the current filters.")
		return nil
	}

	granularity := analysis.Granularity(cfg.Analysis.BucketGranularity)
	fmt.Println(render.Overview(result.Overview))
	fmt.Println(render.Distribution(result.Aggregate))
	fmt.Println(render.Series(result.Aggregate, granularity))
	fmt.Println(render.TopWords(result.Aggregate))
	fmt.Println(render.PostsTable(result.Table))

	if f.csvPath != "" {
		if err := writeFile(f.csvPath, func(file *os.File) error {
			return export.WriteCSV(file, result.Table)
		}); err != nil {
			return err
		}
		logger.Info("wrote CSV export", zap.String("path", f.csvPath))
	}
	if f.jsonPath != "" {
		if err := writeFile(f.jsonPath, func(file *os.File) error {
			return export.WriteJSON(file, result.Posts)
		}); err != nil {
			return err
		}
		logger.Info("wrote JSON export", zap.String("path", f.jsonPath))
	}

	return nil
}

// buildRunner assembles the pipeline from configuration
func buildRunner(cfg *config.Config) (*pipeline.Runner, error) {
	loadLexicon := func() (sentiment.Lexicon, error) {
		if cfg.Analysis.LexiconPath != "" {
			return sentiment.LoadFile(cfg.Analysis.LexiconPath)
		}
		return sentiment.Default(), nil
	}

	lexicon, err := loadLexicon()
	if err != nil {
		// The runner gets one reload attempt before classification fails
		logger.Warn("sentiment lexicon load failed", zap.Error(err))
		lexicon = nil
	}
	analyzer := sentiment.NewAnalyzer(lexicon)

	topics := domains.NewClassifier()
	if cfg.Analysis.TopicLexiconPath != "" {
		topicLexicon, err := domains.LoadLexicon(cfg.Analysis.TopicLexiconPath)
		if err != nil {
			logger.Warn("topic lexicon load failed, using built-in", zap.Error(err))
		} else {
			topics = domains.NewClassifierWithLexicon(topicLexicon)
		}
	}

	client, err := twitter.NewClient(cfg.Twitter.BearerToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize X API client: %w", err)
	}

	runner := pipeline.NewRunner(client, analyzer, topics, cfg.Analysis.Options())
	runner.SetLexiconReload(loadLexicon)

	return runner, nil
}

// buildQuery converts CLI flags into a pipeline query
func buildQuery(f flags) (pipeline.Query, error) {
	query := pipeline.Query{
		Username:        normalizeUsername(f.username),
		MaxResults:      f.maxResults,
		ExcludeReplies:  f.excludeReplies,
		ExcludeRetweets: f.excludeRetweets,
		Filter:          models.FilterSpec{Keyword: f.keyword},
	}
	if query.Username == "" {
		return query, errors.New("username must not be empty")
	}

	if f.from != "" {
		from, err := time.Parse(dateLayout, f.from)
		if err != nil {
			return query, fmt.Errorf("invalid --from date %q: %w", f.from, err)
		}
		query.Filter.From = &from
	}
	if f.to != "" {
		to, err := time.Parse(dateLayout, f.to)
		if err != nil {
			return query, fmt.Errorf("invalid --to date %q: %w", f.to, err)
		}
		// Inclusive end of day
		to = to.Add(24*time.Hour - time.Second)
		query.Filter.To = &to
	}

	return query, nil
}

func normalizeUsername(username string) string {
	return strings.TrimPrefix(strings.TrimSpace(username), "@")
}

// presentError maps pipeline failures onto user-facing messages
func presentError(err error) error {
	var rateLimit *twitter.RateLimitError
	switch {
	case errors.As(err, &rateLimit):
		if rateLimit.RetryAfter > 0 {
			return fmt.Errorf("rate limit reached, try again in about %s", rateLimit.RetryAfter)
		}
		return errors.New("rate limit reached, please try again later")
	case errors.Is(err, twitter.ErrNotFound):
		return errors.New("user not found (unknown or protected account)")
	case errors.Is(err, twitter.ErrAuth):
		return fmt.Errorf("X API credentials rejected, check X_BEARER_TOKEN: %w", err)
	case errors.Is(err, sentiment.ErrLexiconUnavailable):
		return fmt.Errorf("sentiment lexicon could not be loaded: %w", err)
	case errors.Is(err, analysis.ErrInvalidDateRange):
		return errors.New("--from must not be after --to")
	default:
		return err
	}
}

func writeFile(path string, write func(*os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := write(file); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
