package comment

import "fmt"

// Counts holds the number of comments per sentiment.
type Counts struct {
	Positive int `json:"Positive"`
	Negative int `json:"Negative"`
	Neutral  int `json:"Neutral"`
}

// Of returns the count for a single sentiment.
func (c Counts) Of(s Sentiment) int {
	switch s {
	case Positive:
		return c.Positive
	case Negative:
		return c.Negative
	case Neutral:
		return c.Neutral
	}
	return 0
}

// Total sums all sentiments.
func (c Counts) Total() int {
	return c.Positive + c.Negative + c.Neutral
}

// Keyword is one wordcloud entry.
type Keyword struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Item is a raw classified comment as returned by the analysis backend.
type Item struct {
	Text      string
	Sentiment string
}

// Batch is everything produced by one document analysis.
type Batch struct {
	Comments     []Comment
	Distribution Counts
	Keywords     []Keyword
	Summary      string
}

// topKeywordCount is how many wordcloud keywords are copied onto each comment.
const topKeywordCount = 5

// NewBatch builds comments from backend items. IDs start at 1 in item
// order. Every comment is tagged with the first five keywords; the
// backend does not return per-comment keywords.
func NewBatch(items []Item, distribution Counts, keywords []Keyword, summary string) (Batch, error) {
	top := make([]string, 0, topKeywordCount)
	for _, k := range keywords {
		if len(top) == topKeywordCount {
			break
		}
		top = append(top, k.Word)
	}

	comments := make([]Comment, 0, len(items))
	for i, item := range items {
		sentiment, err := ParseSentiment(item.Sentiment)
		if err != nil {
			return Batch{}, fmt.Errorf("result %d: %w", i+1, err)
		}
		comments = append(comments, Comment{
			ID:        i + 1,
			Text:      item.Text,
			Sentiment: sentiment,
			Summary:   Summarize(item.Text),
			Keywords:  top,
			Provision: DefaultProvision,
		})
	}

	return Batch{
		Comments:     comments,
		Distribution: distribution,
		Keywords:     keywords,
		Summary:      summary,
	}, nil
}
