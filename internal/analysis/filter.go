package analysis

import (
	"errors"
	"strings"

	"github.com/avkuznetsov/tweetlens/pkg/models"
)

// ErrInvalidDateRange rejects a filter whose lower bound is after its upper
// bound; callers must not proceed with an ambiguous filter.
var ErrInvalidDateRange = errors.New("invalid filter: date_from is after date_to")

// Filter returns the posts matching spec, preserving input order. Keyword
// matching is a case-insensitive substring test over the cleaned text; date
// bounds are inclusive.
func Filter(posts []models.ScoredPost, spec models.FilterSpec) ([]models.ScoredPost, error) {
	if spec.From != nil && spec.To != nil && spec.From.After(*spec.To) {
		return nil, ErrInvalidDateRange
	}

	keyword := strings.ToLower(strings.TrimSpace(spec.Keyword))

	filtered := make([]models.ScoredPost, 0, len(posts))
	for _, post := range posts {
		if keyword != "" && !strings.Contains(strings.ToLower(post.CleanText), keyword) {
			continue
		}
		if spec.From != nil && post.CreatedAt.Before(*spec.From) {
			continue
		}
		if spec.To != nil && post.CreatedAt.After(*spec.To) {
			continue
		}
		filtered = append(filtered, post)
	}

	return filtered, nil
}
