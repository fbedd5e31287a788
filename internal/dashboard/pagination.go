package dashboard

import (
	"fmt"

	"github.com/evcraddock/sentiboard/internal/comment"
)

// PageSize is the number of table rows per page.
const PageSize = 5

// TotalPages returns ceil(n / PageSize).
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// ClampPage keeps page within [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// PageButton is one numbered pagination control.
type PageButton struct {
	Number  int
	Current bool
}

// Page is one rendered slice of the filtered view plus its controls.
type Page struct {
	Number       int
	TotalPages   int
	Total        int // size of the filtered view
	Start        int // 1-based index of the first row, 0 when empty
	End          int
	Rows         []comment.Comment
	Buttons      []PageButton
	PrevDisabled bool
	NextDisabled bool
}

// Empty reports whether the page has no rows to show.
func (p Page) Empty() bool {
	return len(p.Rows) == 0
}

// Info is the "Showing a-b of n results" caption.
func (p Page) Info() string {
	return fmt.Sprintf("Showing %d-%d of %d results", p.Start, p.End, p.Total)
}

// Paginate slices rows [(page-1)*PageSize, page*PageSize) out of filtered.
// The page number is used as given; callers clamp it.
func Paginate(filtered []comment.Comment, page int) Page {
	n := len(filtered)
	total := TotalPages(n)

	start := (page - 1) * PageSize
	end := page * PageSize
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}

	rows := make([]comment.Comment, end-start)
	copy(rows, filtered[start:end])

	buttons := make([]PageButton, 0, total)
	for i := 1; i <= total; i++ {
		buttons = append(buttons, PageButton{Number: i, Current: i == page})
	}

	p := Page{
		Number:       page,
		TotalPages:   total,
		Total:        n,
		End:          min(page*PageSize, n),
		Rows:         rows,
		Buttons:      buttons,
		PrevDisabled: page == 1,
		NextDisabled: page == total || n == 0,
	}
	if n > 0 {
		p.Start = (page-1)*PageSize + 1
	}
	return p
}
