package dashboard

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/evcraddock/sentiboard/internal/comment"
)

// ErrNoData is returned when there is nothing to export.
var ErrNoData = errors.New("no data to export")

// ExportFileName is the download name of the CSV export.
const ExportFileName = "sentiment_analysis_export.csv"

const csvHeader = "ID,Sentiment,Provision,Keywords,Full Text\n"

// WriteCSV writes one row per comment. Keywords and full text are always
// quoted with inner quotes doubled; the other columns are written as-is.
func WriteCSV(w io.Writer, comments []comment.Comment) error {
	if len(comments) == 0 {
		return ErrNoData
	}

	if _, err := io.WriteString(w, csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, c := range comments {
		row := fmt.Sprintf("%d,%s,%s,%s,%s\n",
			c.ID,
			c.Sentiment,
			c.Provision,
			quote(strings.Join(c.Keywords, ", ")),
			quote(c.Text),
		)
		if _, err := io.WriteString(w, row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", c.ID, err)
		}
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
