package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/avkuznetsov/tweetlens/pkg/models"
)

// Table is an in-memory tabular view of scored posts, ready for delimited
// serialization. The first seven columns form a stable contract; engagement
// and topic columns follow.
type Table struct {
	Header []string
	Rows   [][]string
}

// ToTable flattens scored posts into rows, one per post, preserving input
// order. Timestamps are rendered as ISO-8601 UTC and compound scores with
// full precision so a re-parse reproduces them exactly.
func ToTable(posts []models.ScoredPost) Table {
	header := []string{
		"id", "author", "created_at", "text", "clean_text",
		"compound_score", "label",
		"topic", "like_count", "retweet_count", "reply_count",
	}

	rows := make([][]string, 0, len(posts))
	for _, post := range posts {
		rows = append(rows, []string{
			post.ID,
			post.Author,
			post.CreatedAt.UTC().Format(time.RFC3339),
			post.Text,
			post.CleanText,
			strconv.FormatFloat(post.Compound, 'g', -1, 64),
			string(post.Label),
			post.Topic,
			strconv.Itoa(post.Likes),
			strconv.Itoa(post.Retweets),
			strconv.Itoa(post.Replies),
		})
	}

	return Table{Header: header, Rows: rows}
}

// WriteCSV serializes the table with a header row and standard CSV quoting
func WriteCSV(w io.Writer, table Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(table.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON serializes the full scored records as indented JSON
func WriteJSON(w io.Writer, posts []models.ScoredPost) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(posts); err != nil {
		return fmt.Errorf("failed to encode posts: %w", err)
	}
	return nil
}
