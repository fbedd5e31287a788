// Package comment provides the analyzed comment domain model.
package comment

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Sentiment is the backend's classification of a comment.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// Sentiments lists every sentiment in display order.
var Sentiments = []Sentiment{Positive, Negative, Neutral}

// ParseSentiment accepts any casing of a known sentiment ("Positive", "NEUTRAL").
func ParseSentiment(s string) (Sentiment, error) {
	v := Sentiment(strings.ToLower(strings.TrimSpace(s)))
	if !v.IsValid() {
		return "", fmt.Errorf("unknown sentiment %q", s)
	}
	return v, nil
}

// IsValid checks if a sentiment is recognized.
func (s Sentiment) IsValid() bool {
	switch s {
	case Positive, Negative, Neutral:
		return true
	}
	return false
}

// Label returns the capitalized display name.
func (s Sentiment) Label() string {
	switch s {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	case Neutral:
		return "Neutral"
	default:
		return string(s)
	}
}

// Color returns the chart colour for the sentiment.
func (s Sentiment) Color() string {
	switch s {
	case Positive:
		return "#22c55e"
	case Negative:
		return "#ef4444"
	case Neutral:
		return "#f59e0b"
	default:
		return "#64748b"
	}
}

// BadgeClass returns the CSS classes for the sentiment badge.
func (s Sentiment) BadgeClass() string {
	switch s {
	case Positive:
		return "bg-green-100 text-green-800"
	case Negative:
		return "bg-red-100 text-red-800"
	case Neutral:
		return "bg-yellow-100 text-yellow-800"
	default:
		return "bg-slate-100 text-slate-700"
	}
}

// DefaultProvision is assigned to every comment; the backend does not
// classify provisions yet.
const DefaultProvision = "General Comment"

// summaryLength is the number of characters kept by Summarize.
const summaryLength = 75

// Comment is one analyzed comment from an uploaded document.
type Comment struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Sentiment Sentiment `json:"sentiment"`
	Summary   string    `json:"summary"`
	Keywords  []string  `json:"keywords"`
	Provision string    `json:"provision"`
	Flagged   bool      `json:"flagged"`
}

// Summarize returns the first 75 characters of text, with "..." appended
// only when something was cut.
func Summarize(text string) string {
	if utf8.RuneCountInString(text) <= summaryLength {
		return text
	}
	return string([]rune(text)[:summaryLength]) + "..."
}
