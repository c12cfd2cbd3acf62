package models

import "time"

// Label represents a post's overall sentiment polarity
type Label string

const (
	LabelPositive Label = "Positive"
	LabelNeutral  Label = "Neutral"
	LabelNegative Label = "Negative"
)

// AllLabels returns every label in display order
func AllLabels() []Label {
	return []Label{LabelPositive, LabelNeutral, LabelNegative}
}

// Post represents a single raw post fetched from the X API
type Post struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Likes     int       `json:"like_count"`
	Retweets  int       `json:"retweet_count"`
	Replies   int       `json:"reply_count"`
	Quotes    int       `json:"quote_count"`
	IsRetweet bool      `json:"is_retweet"`
	IsReply   bool      `json:"is_reply"`
}

// ScoredPost is a post carrying the fields derived by the analysis pipeline
type ScoredPost struct {
	Post
	CleanText       string  `json:"clean_text"`
	Label           Label   `json:"sentiment_label"`
	Topic           string  `json:"topic,omitempty"`
	Compound        float64 `json:"compound"`
	TopicConfidence float64 `json:"topic_confidence,omitempty"`
}

// FetchOptions control a single user-timeline fetch
type FetchOptions struct {
	StartTime       *time.Time
	EndTime         *time.Time
	MaxResults      int
	ExcludeRetweets bool
	ExcludeReplies  bool
}

// FilterSpec narrows a scored post list by keyword and date range.
// Zero values mean "no constraint"; bounds are inclusive.
type FilterSpec struct {
	From    *time.Time
	To      *time.Time
	Keyword string
}
