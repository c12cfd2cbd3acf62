package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/avkuznetsov/tweetlens/pkg/models"
)

// Granularity selects the width of a time-series bucket
type Granularity string

const (
	GranularityHour Granularity = "hour"
	GranularityDay  Granularity = "day"
)

// Options control aggregation behavior
type Options struct {
	Stopwords     map[string]struct{}
	Bucket        Granularity
	TopN          int
	MinWordLength int
}

// DefaultOptions returns the aggregation defaults: daily buckets, top 20
// words, minimum token length 2, built-in stopword set
func DefaultOptions() Options {
	return Options{
		Bucket:        GranularityDay,
		TopN:          20,
		MinWordLength: 2,
		Stopwords:     defaultStopwords(),
	}
}

// Aggregate computes the label distribution, time-bucketed sentiment series
// and ranked word frequencies for a scored post list. It is pure and
// deterministic; an empty input yields a zeroed distribution and empty
// series/word table.
func Aggregate(posts []models.ScoredPost, opts Options) models.Aggregate {
	agg := models.Aggregate{
		Distribution: make(map[models.Label]int, 3),
		Series:       []models.SeriesBucket{},
		TopWords:     []models.WordCount{},
	}
	for _, label := range models.AllLabels() {
		agg.Distribution[label] = 0
	}

	buckets := make(map[time.Time]map[models.Label]int)
	for _, post := range posts {
		agg.Distribution[post.Label]++

		start := bucketStart(post.CreatedAt, opts.Bucket)
		if buckets[start] == nil {
			buckets[start] = make(map[models.Label]int, 3)
		}
		buckets[start][post.Label]++
	}

	// Only buckets with at least one post appear; gaps are not zero-filled.
	starts := make([]time.Time, 0, len(buckets))
	for start := range buckets {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	for _, start := range starts {
		agg.Series = append(agg.Series, models.SeriesBucket{Start: start, Counts: buckets[start]})
	}

	agg.TopWords = topWords(posts, opts)

	return agg
}

// bucketStart truncates a timestamp to its UTC bucket boundary
func bucketStart(t time.Time, granularity Granularity) time.Time {
	t = t.UTC()
	if granularity == GranularityHour {
		return t.Truncate(time.Hour)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// topWords ranks lowercased tokens of the cleaned texts by frequency,
// descending, with ties broken by first-seen order
func topWords(posts []models.ScoredPost, opts Options) []models.WordCount {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, post := range posts {
		for _, token := range strings.Fields(strings.ToLower(post.CleanText)) {
			token = strings.Trim(token, ".,!?;:\"'()")
			if token == "" {
				continue
			}
			if len([]rune(token)) < opts.MinWordLength {
				continue
			}
			if _, stop := opts.Stopwords[token]; stop {
				continue
			}
			if counts[token] == 0 {
				order = append(order, token)
			}
			counts[token]++
		}
	}

	words := make([]models.WordCount, 0, len(order))
	for _, token := range order {
		words = append(words, models.WordCount{Word: token, Count: counts[token]})
	}

	// Stable sort keeps first-seen order among equal counts
	sort.SliceStable(words, func(i, j int) bool { return words[i].Count > words[j].Count })

	if opts.TopN > 0 && len(words) > opts.TopN {
		words = words[:opts.TopN]
	}

	return words
}

// defaultStopwords returns the built-in English stopword set
func defaultStopwords() map[string]struct{} {
	words := []string{
		"the", "a", "an", "and", "or", "but", "if", "so", "as", "at", "by",
		"for", "from", "in", "into", "of", "on", "onto", "to", "with",
		"is", "am", "are", "was", "were", "be", "been", "being",
		"do", "does", "did", "have", "has", "had", "will", "would", "can",
		"could", "should", "it", "its", "it's", "this", "that", "these",
		"those", "i", "me", "my", "we", "our", "you", "your", "he", "him",
		"his", "she", "her", "they", "them", "their", "what", "which",
		"who", "not", "no", "just", "about", "up", "out", "over",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
