// Package dashboard derives everything the dashboard shows from the
// loaded comments: the filtered view, pages, statistics, chart data and
// CSV exports. Derivations are pure functions; State ties them together
// for one browser session.
package dashboard

import (
	"strings"

	"github.com/evcraddock/sentiboard/internal/comment"
)

// AllSentiments is the filter category that matches every comment.
const AllSentiments = "all"

// Filter narrows the comment list by free text and sentiment.
type Filter struct {
	// Query is matched case-insensitively as a substring of the text,
	// summary, provision or any keyword.
	Query string
	// Sentiment is "all" or one of the comment sentiments. Empty and
	// unknown values behave like "all".
	Sentiment string
}

// Matches reports whether c passes both parts of the filter.
func (f Filter) Matches(c comment.Comment) bool {
	return f.matchesSentiment(c) && f.matchesQuery(c)
}

func (f Filter) matchesSentiment(c comment.Comment) bool {
	s := comment.Sentiment(strings.ToLower(f.Sentiment))
	if !s.IsValid() {
		return true
	}
	return c.Sentiment == s
}

func (f Filter) matchesQuery(c comment.Comment) bool {
	if f.Query == "" {
		return true
	}
	query := strings.ToLower(f.Query)

	if strings.Contains(strings.ToLower(c.Text), query) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Summary), query) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Provision), query) {
		return true
	}
	for _, k := range c.Keywords {
		if strings.Contains(strings.ToLower(k), query) {
			return true
		}
	}
	return false
}

// Apply returns the matching comments in their original order.
func (f Filter) Apply(comments []comment.Comment) []comment.Comment {
	out := make([]comment.Comment, 0, len(comments))
	for _, c := range comments {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}
