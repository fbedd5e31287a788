package dashboard

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/evcraddock/sentiboard/internal/comment"
)

func TestWriteCSV(t *testing.T) {
	comments := []comment.Comment{
		{
			ID:        1,
			Text:      `She said "no" twice`,
			Sentiment: comment.Negative,
			Keywords:  []string{"no", "twice"},
			Provision: comment.DefaultProvision,
		},
		{
			ID:        2,
			Text:      "fine",
			Sentiment: comment.Neutral,
			Provision: comment.DefaultProvision,
		},
	}

	var b strings.Builder
	if err := WriteCSV(&b, comments); err != nil {
		t.Fatalf("write: %v", err)
	}

	want := "ID,Sentiment,Provision,Keywords,Full Text\n" +
		`1,negative,General Comment,"no, twice","She said ""no"" twice"` + "\n" +
		`2,neutral,General Comment,"","fine"` + "\n"
	assert.Equal(t, b.String(), want)
}

func TestWriteCSVEmpty(t *testing.T) {
	var b strings.Builder
	err := WriteCSV(&b, nil)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	assert.Equal(t, b.Len(), 0)
}
