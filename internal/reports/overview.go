package reports

import (
	"math"

	"github.com/avkuznetsov/tweetlens/pkg/models"
)

// BuildOverview summarizes post count and average engagement for the
// analyzed list. Averages are rounded to two decimals for display.
func BuildOverview(posts []models.ScoredPost) models.Overview {
	overview := models.Overview{PostCount: len(posts)}
	if len(posts) == 0 {
		return overview
	}

	var likes, retweets, replies int
	for _, post := range posts {
		likes += post.Likes
		retweets += post.Retweets
		replies += post.Replies
	}

	n := float64(len(posts))
	overview.AvgLikes = round2(float64(likes) / n)
	overview.AvgRetweets = round2(float64(retweets) / n)
	overview.AvgReplies = round2(float64(replies) / n)

	return overview
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
