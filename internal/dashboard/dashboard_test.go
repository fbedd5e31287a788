package dashboard

import (
	"fmt"

	"github.com/evcraddock/sentiboard/internal/comment"
)

// sample builds n comments cycling through positive, negative, neutral.
func sample(n int) []comment.Comment {
	out := make([]comment.Comment, n)
	for i := range out {
		s := comment.Sentiments[i%len(comment.Sentiments)]
		text := fmt.Sprintf("comment %d about parking", i+1)
		out[i] = comment.Comment{
			ID:        i + 1,
			Text:      text,
			Sentiment: s,
			Summary:   comment.Summarize(text),
			Keywords:  []string{"parking", "fees"},
			Provision: comment.DefaultProvision,
		}
	}
	return out
}

func sampleBatch(n int) comment.Batch {
	comments := sample(n)
	return comment.Batch{
		Comments:     comments,
		Distribution: CountSentiments(comments),
		Keywords:     []comment.Keyword{{Word: "parking", Count: n}},
		Summary:      "Mostly about **parking**.",
	}
}
