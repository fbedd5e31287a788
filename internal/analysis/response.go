package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/evcraddock/sentiboard/internal/comment"
)

// Response is the success body of POST /analyze.
type Response struct {
	IndividualResults   []Result       `json:"individual_results"`
	OverallDistribution comment.Counts `json:"overall_distribution"`
	WordcloudData       Wordcloud      `json:"wordcloud_data"`
	Summary             string         `json:"summary,omitempty"`
}

// Result is one classified comment.
type Result struct {
	Comment   string `json:"comment"`
	Sentiment string `json:"sentiment"`
}

// Wordcloud is the keyword frequency map. The backend orders keys by
// relevance, so decoding keeps them in document order.
type Wordcloud []comment.Keyword

// UnmarshalJSON decodes a JSON object while preserving key order.
func (w *Wordcloud) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*w = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading wordcloud: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("wordcloud must be an object")
	}

	var out Wordcloud
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading wordcloud key: %w", err)
		}
		word, ok := tok.(string)
		if !ok {
			return fmt.Errorf("wordcloud key must be a string")
		}
		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("reading count for %q: %w", word, err)
		}
		// A repeated key keeps its first position and takes the last count.
		if i, ok := seen[word]; ok {
			out[i].Count = count
			continue
		}
		seen[word] = len(out)
		out = append(out, comment.Keyword{Word: word, Count: count})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("reading wordcloud end: %w", err)
	}

	*w = out
	return nil
}

// MarshalJSON encodes the wordcloud as an object in its stored order.
func (w Wordcloud) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range w {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k.Word)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", k.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Batch maps the response into dashboard comments.
func (r *Response) Batch() (comment.Batch, error) {
	items := make([]comment.Item, len(r.IndividualResults))
	for i, res := range r.IndividualResults {
		items[i] = comment.Item{Text: res.Comment, Sentiment: res.Sentiment}
	}
	return comment.NewBatch(items, r.OverallDistribution, []comment.Keyword(r.WordcloudData), r.Summary)
}
