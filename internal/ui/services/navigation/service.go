package navigation

import "fmt"

// Navigator holds the paged result list and the highlighted row.
// It is not safe for concurrent use; the UI loop owns it.
type Navigator struct {
	results   []string
	capacity  int
	page      int
	highlight int
	searching bool
}

// New creates a navigator showing capacity rows per page
func New(capacity int) (*Navigator, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &Navigator{capacity: capacity}, nil
}

// StartSearch marks a search as in flight. Results stay visible until
// SetResults replaces them.
func (n *Navigator) StartSearch() {
	n.searching = true
}

// SetResults replaces the result list and returns to the first page
func (n *Navigator) SetResults(results []string) {
	n.searching = false
	n.results = results
	n.SetPage(0)
}

// Refresh replaces the result list without treating it as a new search.
// The highlighted path keeps its row when it is still present; otherwise the
// page and highlight are clamped to the new list.
func (n *Navigator) Refresh(results []string) {
	selected, hadSelection := n.Highlighted()
	n.searching = false
	n.results = results

	if hadSelection {
		for i, r := range results {
			if r == selected {
				n.page = i / n.capacity
				n.highlight = i % n.capacity
				return
			}
		}
	}

	if last := n.PageCount() - 1; n.page > last {
		n.page = max(last, 0)
	}
	if size := n.windowLen(); n.highlight >= size {
		n.highlight = max(size-1, 0)
	}
}

// Reset clears everything, used when the query is cleared or the window hidden
func (n *Navigator) Reset() {
	n.results = nil
	n.searching = false
	n.page = 0
	n.highlight = 0
}

// SetPage moves by delta pages. A zero delta forces the first page.
// Moves before the first page or past the last result are ignored.
// Reports whether a page was committed; the highlight returns to the top when it is.
func (n *Navigator) SetPage(delta int) bool {
	if delta == 0 {
		n.page = 0
		n.highlight = 0
		return true
	}

	candidate, ok := n.pageCandidate(delta)
	if !ok {
		return false
	}

	n.page = candidate
	n.highlight = 0
	return true
}

func (n *Navigator) pageCandidate(delta int) (int, bool) {
	candidate := n.page + delta
	if candidate < 0 {
		return 0, false
	}
	if candidate*n.capacity > len(n.results)-1 {
		return 0, false
	}
	return candidate, true
}

// CurrentWindow returns the rows visible on the current page
func (n *Navigator) CurrentWindow() []Entry {
	start, end := n.bounds()
	window := make([]Entry, 0, end-start)
	for i := start; i < end; i++ {
		window = append(window, Entry{Index: i - start, Value: n.results[i]})
	}
	return window
}

func (n *Navigator) bounds() (int, int) {
	start := n.page * n.capacity
	if start > len(n.results) {
		start = len(n.results)
	}
	end := min(len(n.results), start+n.capacity)
	return start, end
}

func (n *Navigator) windowLen() int {
	start, end := n.bounds()
	return end - start
}

// SetHighlight moves the highlight by delta with wraparound.
// A zero delta returns to the first row.
func (n *Navigator) SetHighlight(delta int) {
	if delta == 0 {
		n.highlight = 0
		return
	}

	size := n.windowLen()
	if size == 0 {
		return
	}
	n.highlight = ((n.highlight+delta)%size + size) % size
}

// Highlighted returns the highlighted result
func (n *Navigator) Highlighted() (string, bool) {
	return n.Hovered(n.highlight)
}

// Hovered resolves a row index of the current window to its result
func (n *Navigator) Hovered(local int) (string, bool) {
	if local < 0 || local >= n.windowLen() {
		return "", false
	}
	return n.results[n.page*n.capacity+local], true
}

// Affordance reports whether paging in dir would be accepted.
// Hints are suppressed while a search is in flight.
func (n *Navigator) Affordance(dir Direction) Affordance {
	if n.searching || len(n.results) == 0 {
		return Affordance{}
	}
	_, ok := n.pageCandidate(dir.Delta())
	return Affordance{Enabled: ok}
}

// Page returns the zero-based current page
func (n *Navigator) Page() int {
	return n.page
}

// PageCount returns the number of pages, zero when there are no results
func (n *Navigator) PageCount() int {
	return (len(n.results) + n.capacity - 1) / n.capacity
}

// Highlight returns the highlighted row index within the window
func (n *Navigator) Highlight() int {
	return n.highlight
}

// Searching reports whether a search is in flight
func (n *Navigator) Searching() bool {
	return n.searching
}

// Len returns the total number of results
func (n *Navigator) Len() int {
	return len(n.results)
}

// Capacity returns the number of rows per page
func (n *Navigator) Capacity() int {
	return n.capacity
}
