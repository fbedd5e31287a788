package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/evcraddock/sentiboard/internal/comment"
	"github.com/evcraddock/sentiboard/internal/dashboard"
	"github.com/evcraddock/sentiboard/internal/history"
)

// labelWidth fits the longest sentiment label.
const labelWidth = 8

var (
	badgeStyles = map[comment.Sentiment]lipgloss.Style{
		comment.Positive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(comment.Positive.Color())),
		comment.Negative: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(comment.Negative.Color())),
		comment.Neutral:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(comment.Neutral.Color())),
	}
	headingStyle = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	flagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(comment.Negative.Color()))
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// sentimentBadge renders the padded, coloured sentiment label. Padding is
// applied before styling so columns line up on colour terminals.
func sentimentBadge(s comment.Sentiment) string {
	label := fmt.Sprintf("%-*s", labelWidth, s.Label())
	style, ok := badgeStyles[s]
	if !ok {
		return label
	}
	return style.Render(label)
}

// printAnalysis prints the text report of one analyzed document.
func printAnalysis(w io.Writer, file string, view dashboard.View, comments []comment.Comment) error {
	fmt.Fprintln(w, headingStyle.Render("Analysis of "+file))
	fmt.Fprintln(w)

	if err := printStats(w, view.Stats); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Keywords: %s\n", formatKeywords(view.Keywords))

	if view.Summary != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Summary:")
		for _, line := range strings.Split(strings.TrimSpace(view.Summary), "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}

	fmt.Fprintln(w)
	printCommentList(w, comments)
	fmt.Fprintf(w, "\nShowing %d of %d comments\n", len(comments), view.Stats.Total)
	return nil
}

// printStats prints the statistic cards as a table.
func printStats(w io.Writer, stats dashboard.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "SENTIMENT\tCOUNT\tSHARE"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	for _, card := range stats.Cards() {
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%s\n", card.Sentiment.Label(), card.Count, card.Percent); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	if _, err := fmt.Fprintf(tw, "Total\t%d\t\n", stats.Total); err != nil {
		return fmt.Errorf("writing table row: %w", err)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

// formatKeywords renders "parking (4), fees (2)".
func formatKeywords(keywords []comment.Keyword) string {
	if len(keywords) == 0 {
		return "none"
	}
	parts := make([]string, len(keywords))
	for i, k := range keywords {
		parts[i] = fmt.Sprintf("%s (%d)", k.Word, k.Count)
	}
	return strings.Join(parts, ", ")
}

// printCommentList prints one line per comment.
func printCommentList(w io.Writer, comments []comment.Comment) {
	if len(comments) == 0 {
		fmt.Fprintln(w, "No comments match.")
		return
	}

	for _, c := range comments {
		flag := ""
		if c.Flagged {
			flag = " " + flagStyle.Render("⚑")
		}
		fmt.Fprintf(w, "%4d  %s  %s%s\n", c.ID, sentimentBadge(c.Sentiment), c.Summary, flag)
	}
}

// printHistoryTable prints analyses as a formatted table.
func printHistoryTable(w io.Writer, entries []*history.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No analyses recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tFILE\tCOMMENTS\tPOS\tNEG\tNEU\tWHEN"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "--\t----\t--------\t---\t---\t---\t----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, e := range entries {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			shortID(e.ID), truncate(e.FileName, 40), e.Total,
			e.Counts.Positive, e.Counts.Negative, e.Counts.Neutral,
			e.CreatedAt.Local().Format("2006-01-02 15:04")); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(w, "\nTotal: %d analyses\n", len(entries))
	fmt.Fprintln(w, faintStyle.Render("Only counts are stored; re-run analyze to see comments."))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
