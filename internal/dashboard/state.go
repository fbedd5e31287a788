package dashboard

import (
	"errors"
	"io"
	"sync"

	"github.com/evcraddock/sentiboard/internal/comment"
)

// ErrCommentNotFound is returned for an unknown comment ID.
var ErrCommentNotFound = errors.New("comment not found")

// State is the dashboard of one browser session: the loaded comments,
// the current filter and page, and the chart instances. All methods are
// safe for concurrent use.
type State struct {
	mu sync.Mutex

	comments []comment.Comment
	filtered []int // indexes into comments, in original order
	filter   Filter
	page     int

	stats    Stats
	keywords []comment.Keyword
	summary  string
	loaded   bool

	sentimentChart SentimentChart
	provisionChart ProvisionChart
}

// NewState returns an empty dashboard.
func NewState() *State {
	return &State{
		page:   1,
		filter: Filter{Sentiment: AllSentiments},
		stats:  NewStats(comment.Counts{}, 0),
	}
}

// View is a consistent snapshot for rendering a full page.
type View struct {
	Loaded   bool
	Stats    Stats
	Keywords []comment.Keyword
	Summary  string
	Filter   Filter
	Page     Page
}

// Load replaces every comment with the batch and recomputes statistics,
// the sentiment chart, keywords, summary and the filtered table. The
// current filter is kept.
func (s *State) Load(b comment.Batch) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.comments = append([]comment.Comment(nil), b.Comments...)
	s.stats = NewStats(b.Distribution, len(s.comments))
	s.sentimentChart.Update(b.Distribution)
	s.keywords = append([]comment.Keyword(nil), b.Keywords...)
	s.summary = b.Summary
	s.loaded = true
	s.refilter()

	return s.viewLocked()
}

// View returns a snapshot of the dashboard.
func (s *State) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *State) viewLocked() View {
	return View{
		Loaded:   s.loaded,
		Stats:    s.stats,
		Keywords: append([]comment.Keyword(nil), s.keywords...),
		Summary:  s.summary,
		Filter:   s.filter,
		Page:     s.pageLocked(),
	}
}

// ApplyFilter recomputes the filtered view and resets to page 1.
func (s *State) ApplyFilter(f Filter) Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.Sentiment == "" {
		f.Sentiment = AllSentiments
	}
	s.filter = f
	s.refilter()
	return s.pageLocked()
}

func (s *State) refilter() {
	s.filtered = s.filtered[:0]
	for i, c := range s.comments {
		if s.filter.Matches(c) {
			s.filtered = append(s.filtered, i)
		}
	}
	s.page = ClampPage(1, TotalPages(len(s.filtered)))
}

// Filter returns the active filter.
func (s *State) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetPage moves the cursor, clamped to the available pages. The filter
// is not recomputed.
func (s *State) SetPage(n int) Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = ClampPage(n, TotalPages(len(s.filtered)))
	return s.pageLocked()
}

// NextPage advances the cursor by one.
func (s *State) NextPage() Page {
	return s.movePage(1)
}

// PrevPage moves the cursor back by one.
func (s *State) PrevPage() Page {
	return s.movePage(-1)
}

func (s *State) movePage(delta int) Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = ClampPage(s.page+delta, TotalPages(len(s.filtered)))
	return s.pageLocked()
}

// CurrentPage returns the page under the cursor.
func (s *State) CurrentPage() Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageLocked()
}

func (s *State) pageLocked() Page {
	return Paginate(s.filteredLocked(), s.page)
}

func (s *State) filteredLocked() []comment.Comment {
	out := make([]comment.Comment, len(s.filtered))
	for i, idx := range s.filtered {
		out[i] = s.comments[idx]
	}
	return out
}

// Filtered returns the current filtered view.
func (s *State) Filtered() []comment.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filteredLocked()
}

// All returns every loaded comment.
func (s *State) All() []comment.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]comment.Comment(nil), s.comments...)
}

func (s *State) indexOf(id int) (int, error) {
	i := id - 1
	if i < 0 || i >= len(s.comments) || s.comments[i].ID != id {
		return 0, ErrCommentNotFound
	}
	return i, nil
}

// Comment returns a comment by ID.
func (s *State) Comment(id int) (comment.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.indexOf(id)
	if err != nil {
		return comment.Comment{}, err
	}
	return s.comments[i], nil
}

// ToggleFlag flips the flagged marker and returns the updated comment.
func (s *State) ToggleFlag(id int) (comment.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.indexOf(id)
	if err != nil {
		return comment.Comment{}, err
	}
	s.comments[i].Flagged = !s.comments[i].Flagged
	return s.comments[i], nil
}

// Stats returns the statistic cards as of the last upload.
func (s *State) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// FilteredStats recomputes the cards from the filtered view.
func (s *State) FilteredStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := s.filteredLocked()
	return NewStats(CountSentiments(filtered), len(filtered))
}

// SentimentChart returns the doughnut chart. ok is false before the first upload.
func (s *State) SentimentChart() (inst ChartInstance, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst = s.sentimentChart.Instance()
	return inst, inst.ID != ""
}

// RenderProvisionChart rebuilds the provision chart from all comments.
func (s *State) RenderProvisionChart() ChartInstance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provisionChart.Render(s.comments)
}

// ExportCSV writes the filtered view as CSV. It returns ErrNoData, and
// writes nothing, when the view is empty.
func (s *State) ExportCSV(w io.Writer) error {
	return WriteCSV(w, s.Filtered())
}
