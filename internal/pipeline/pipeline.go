package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/avkuznetsov/tweetlens/internal/analysis"
	"github.com/avkuznetsov/tweetlens/internal/cleaner"
	"github.com/avkuznetsov/tweetlens/internal/domains"
	"github.com/avkuznetsov/tweetlens/internal/export"
	"github.com/avkuznetsov/tweetlens/internal/reports"
	"github.com/avkuznetsov/tweetlens/internal/sentiment"
	"github.com/avkuznetsov/tweetlens/pkg/logger"
	"github.com/avkuznetsov/tweetlens/pkg/models"
)

const defaultScoringWorkers = 4

// Fetcher supplies raw posts for a username
type Fetcher interface {
	FetchUserPosts(ctx context.Context, username string, opts models.FetchOptions) ([]models.Post, error)
}

// Query describes one analysis request
type Query struct {
	Filter          models.FilterSpec
	Username        string
	MaxResults      int
	ExcludeReplies  bool
	ExcludeRetweets bool
}

// Result holds everything one run produces; nothing outlives the run
type Result struct {
	Aggregate models.Aggregate
	Overview  models.Overview
	Table     export.Table
	Posts     []models.ScoredPost
}

// Runner wires the fetch → clean → score → filter → aggregate stages
type Runner struct {
	fetcher       Fetcher
	analyzer      *sentiment.Analyzer
	topics        *domains.Classifier
	reloadLexicon func() (sentiment.Lexicon, error)
	opts          analysis.Options
	workers       int
}

// NewRunner creates a pipeline runner
func NewRunner(fetcher Fetcher, analyzer *sentiment.Analyzer, topics *domains.Classifier, opts analysis.Options) *Runner {
	return &Runner{
		fetcher:  fetcher,
		analyzer: analyzer,
		topics:   topics,
		opts:     opts,
		workers:  defaultScoringWorkers,
	}
}

// SetLexiconReload registers a one-shot recovery used when the analyzer has
// no lexicon at run time
func (r *Runner) SetLexiconReload(reload func() (sentiment.Lexicon, error)) {
	r.reloadLexicon = reload
}

// Run executes one full analysis. Fetch failures and an unavailable lexicon
// are fatal to the query, never to the process.
func (r *Runner) Run(ctx context.Context, query Query) (*Result, error) {
	// Reject an ambiguous filter before spending a fetch on it
	if query.Filter.From != nil && query.Filter.To != nil && query.Filter.From.After(*query.Filter.To) {
		return nil, analysis.ErrInvalidDateRange
	}

	if err := r.ensureAnalyzer(); err != nil {
		return nil, err
	}

	raw, err := r.fetcher.FetchUserPosts(ctx, query.Username, models.FetchOptions{
		MaxResults:      query.MaxResults,
		ExcludeReplies:  query.ExcludeReplies,
		ExcludeRetweets: query.ExcludeRetweets,
		StartTime:       query.Filter.From,
		EndTime:         query.Filter.To,
	})
	if err != nil {
		return nil, err
	}

	scored, err := r.score(ctx, raw)
	if err != nil {
		return nil, err
	}

	filtered, err := analysis.Filter(scored, query.Filter)
	if err != nil {
		return nil, err
	}

	logger.Debug("pipeline run complete",
		zap.String("username", query.Username),
		zap.Int("fetched", len(raw)),
		zap.Int("after_filter", len(filtered)),
	)

	return &Result{
		Posts:     filtered,
		Aggregate: analysis.Aggregate(filtered, r.opts),
		Overview:  reports.BuildOverview(filtered),
		Table:     export.ToTable(filtered),
	}, nil
}

// ensureAnalyzer attempts a single lexicon reload before giving up
func (r *Runner) ensureAnalyzer() error {
	if r.analyzer.Ready() {
		return nil
	}
	if r.reloadLexicon != nil {
		lexicon, err := r.reloadLexicon()
		if err == nil {
			r.analyzer = sentiment.NewAnalyzer(lexicon)
			if r.analyzer.Ready() {
				logger.Info("sentiment lexicon reloaded")
				return nil
			}
		} else {
			logger.Warn("sentiment lexicon reload failed", zap.Error(err))
		}
	}
	return fmt.Errorf("classification unavailable: %w", sentiment.ErrLexiconUnavailable)
}

// score cleans and classifies each post. Posts are independent, so scoring
// runs across a bounded worker pool; output order matches input order.
func (r *Runner) score(ctx context.Context, raw []models.Post) ([]models.ScoredPost, error) {
	scored := make([]models.ScoredPost, len(raw))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, post := range raw {
		i, post := i, post
		g.Go(func() error {
			clean := cleaner.Normalize(post.Text)

			compound, label, err := r.analyzer.Classify(clean)
			if err != nil {
				return fmt.Errorf("failed to classify post %s: %w", post.ID, err)
			}

			topic, confidence := r.topics.Classify(clean)

			scored[i] = models.ScoredPost{
				Post:            post,
				CleanText:       clean,
				Compound:        compound,
				Label:           label,
				Topic:           topic,
				TopicConfidence: confidence,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return scored, nil
}
