package models

import "time"

// SeriesBucket holds per-label counts for one time bucket
type SeriesBucket struct {
	Start  time.Time     `json:"start"`
	Counts map[Label]int `json:"counts"`
}

// WordCount is a single entry of the word-frequency table
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Aggregate summarizes a scored post list: label distribution,
// chronological sentiment series and ranked word frequencies
type Aggregate struct {
	Distribution map[Label]int  `json:"distribution"`
	Series       []SeriesBucket `json:"series"`
	TopWords     []WordCount    `json:"top_words"`
}

// Total returns the number of posts counted into the distribution
func (a Aggregate) Total() int {
	total := 0
	for _, count := range a.Distribution {
		total += count
	}
	return total
}

// Overview summarizes engagement across an analyzed post list
type Overview struct {
	PostCount   int     `json:"post_count"`
	AvgLikes    float64 `json:"avg_likes"`
	AvgRetweets float64 `json:"avg_retweets"`
	AvgReplies  float64 `json:"avg_replies"`
}
