package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avkuznetsov/tweetlens/internal/analysis"
	"github.com/avkuznetsov/tweetlens/internal/export"
	"github.com/avkuznetsov/tweetlens/pkg/models"
)

const (
	barWidth        = 40
	maxTableText    = 60
	maxTableRows    = 25
	hourBucketLabel = "2006-01-02 15:00"
	dayBucketLabel  = "2006-01-02"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)

	labelStyles = map[models.Label]lipgloss.Style{
		models.LabelPositive: lipgloss.NewStyle().Foreground(lipgloss.Color("#2ecc71")),
		models.LabelNeutral:  lipgloss.NewStyle().Foreground(lipgloss.Color("#95a5a6")),
		models.LabelNegative: lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c")),
	}
)

// Overview renders the engagement summary line
func Overview(overview models.Overview) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Overview") + "\n")
	fmt.Fprintf(&b, "  Posts: %d   Avg Likes: %.2f   Avg Retweets: %.2f   Avg Replies: %.2f\n",
		overview.PostCount, overview.AvgLikes, overview.AvgRetweets, overview.AvgReplies)
	return b.String()
}

// Distribution renders the per-label bar chart
func Distribution(agg models.Aggregate) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sentiment Distribution") + "\n")

	max := 0
	for _, label := range models.AllLabels() {
		if count := agg.Distribution[label]; count > max {
			max = count
		}
	}

	for _, label := range models.AllLabels() {
		count := agg.Distribution[label]
		bar := ""
		if max > 0 {
			bar = strings.Repeat("█", count*barWidth/max)
		}
		fmt.Fprintf(&b, "  %-8s %s %d\n", label, labelStyles[label].Render(bar), count)
	}

	return b.String()
}

// Series renders the chronological per-bucket counts
func Series(agg models.Aggregate, granularity analysis.Granularity) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sentiment Over Time") + "\n")

	if len(agg.Series) == 0 {
		b.WriteString(dimStyle.Render("  no data") + "\n")
		return b.String()
	}

	layout := dayBucketLabel
	if granularity == analysis.GranularityHour {
		layout = hourBucketLabel
	}

	for _, bucket := range agg.Series {
		fmt.Fprintf(&b, "  %s ", bucket.Start.Format(layout))
		for _, label := range models.AllLabels() {
			if count := bucket.Counts[label]; count > 0 {
				b.WriteString(labelStyles[label].Render(strings.Repeat("▇", count)))
			}
		}
		fmt.Fprintf(&b, " %d\n", bucketTotal(bucket))
	}

	return b.String()
}

// TopWords renders the ranked word-frequency table
func TopWords(agg models.Aggregate) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Top Words") + "\n")

	if len(agg.TopWords) == 0 {
		b.WriteString(dimStyle.Render("  no data") + "\n")
		return b.String()
	}

	for _, wc := range agg.TopWords {
		fmt.Fprintf(&b, "  %-20s %d\n", wc.Word, wc.Count)
	}

	return b.String()
}

// PostsTable renders the scored post list, newest rows as given
func PostsTable(table export.Table) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Posts") + "\n")

	rows := table.Rows
	truncated := false
	if len(rows) > maxTableRows {
		rows = rows[:maxTableRows]
		truncated = true
	}

	for _, row := range rows {
		// columns: id, author, created_at, text, clean_text, compound, label, ...
		label := models.Label(row[6])
		fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
			row[2],
			labelStyles[label].Render(fmt.Sprintf("%-8s", label)),
			row[5],
			clip(row[3], maxTableText),
		)
	}
	if truncated {
		fmt.Fprintf(&b, "%s\n", dimStyle.Render(fmt.Sprintf("  ... %d more rows, see export", len(table.Rows)-maxTableRows)))
	}

	return b.String()
}

func bucketTotal(bucket models.SeriesBucket) int {
	total := 0
	for _, count := range bucket.Counts {
		total += count
	}
	return total
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
