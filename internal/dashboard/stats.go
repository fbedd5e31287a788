package dashboard

import (
	"fmt"

	"github.com/evcraddock/sentiboard/internal/comment"
)

// Percentage formats count/total with one decimal. A zero total yields "0.0%".
func Percentage(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}

// StatCard is one sentiment card on the dashboard.
type StatCard struct {
	Sentiment comment.Sentiment `json:"sentiment"`
	Count     int               `json:"count"`
	Percent   string            `json:"percent"`
}

// Subtitle is the caption under the count, e.g. "25.0% of total".
func (c StatCard) Subtitle() string {
	return c.Percent + " of total"
}

// Stats holds the statistic cards.
type Stats struct {
	Total    int      `json:"total"`
	Positive StatCard `json:"positive"`
	Negative StatCard `json:"negative"`
	Neutral  StatCard `json:"neutral"`
}

// Cards returns the sentiment cards in display order.
func (s Stats) Cards() []StatCard {
	return []StatCard{s.Positive, s.Negative, s.Neutral}
}

// NewStats builds the statistic cards from per-sentiment counts.
func NewStats(counts comment.Counts, total int) Stats {
	card := func(s comment.Sentiment) StatCard {
		n := counts.Of(s)
		return StatCard{Sentiment: s, Count: n, Percent: Percentage(n, total)}
	}
	return Stats{
		Total:    total,
		Positive: card(comment.Positive),
		Negative: card(comment.Negative),
		Neutral:  card(comment.Neutral),
	}
}

// CountSentiments tallies sentiments across comments.
func CountSentiments(comments []comment.Comment) comment.Counts {
	var c comment.Counts
	for _, cm := range comments {
		switch cm.Sentiment {
		case comment.Positive:
			c.Positive++
		case comment.Negative:
			c.Negative++
		case comment.Neutral:
			c.Neutral++
		}
	}
	return c
}
