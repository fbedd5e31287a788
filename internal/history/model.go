// Package history records metadata about completed analyses. Comment
// text is never stored.
package history

import (
	"time"

	"github.com/evcraddock/sentiboard/internal/comment"
)

// CLISession is the session ID recorded for analyses run from the command line.
const CLISession = "cli"

// Entry is one completed upload.
type Entry struct {
	ID          string         `json:"id"`
	SessionID   string         `json:"-"`
	FileName    string         `json:"file_name"`
	Total       int            `json:"total"`
	Counts      comment.Counts `json:"counts"`
	TopKeywords []string       `json:"top_keywords"`
	CreatedAt   time.Time      `json:"created_at"`
}

// topKeywords is how many wordcloud words are kept per entry.
const topKeywords = 5

func keywordWords(keywords []comment.Keyword) []string {
	words := make([]string, 0, topKeywords)
	for _, k := range keywords {
		if len(words) == topKeywords {
			break
		}
		words = append(words, k.Word)
	}
	return words
}
