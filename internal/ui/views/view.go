package views

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"quicksearch/internal/ui/services/navigation"
	"quicksearch/internal/ui/services/query"
)

// Projection contains all the state needed for rendering
type Projection struct {
	Width          int
	Height         int
	Input          string // rendered text input
	Query          string
	Classification query.Classification
	Completions    []query.BangEntry
	LinkSlot       bool
	Window         []navigation.Entry
	Highlight      int
	Hovered        int // -1 when the pointer is outside the window
	Page           int
	PageCount      int
	Forward        bool
	Backward       bool
	Searching      bool
	Spinner        string
	Indexing       bool
	Total          int
	Status         string
	StatusErr      bool
	Home           string
	HelpView       string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

const (
	paddingTop  = 1
	paddingSide = 2
	ellipsis    = "…"
)

// ResultsTop returns the screen row of the first result
func ResultsTop(p Projection) int {
	top := paddingTop + 2 // title and query line
	if p.LinkSlot || hasSuggestionRow(p) {
		top++
	}
	return top
}

func hasSuggestionRow(p Projection) bool {
	return p.Classification.IsLink() || len(p.Completions) > 0
}

// Render produces the complete view
func (r *Renderer) Render(p Projection) string {
	var lines []string

	lines = append(lines, r.renderTitle(p))
	lines = append(lines, r.styles.Prompt.Render("› ")+p.Input)

	if hasSuggestionRow(p) {
		lines = append(lines, r.renderSuggestion(p))
	} else if p.LinkSlot {
		lines = append(lines, "")
	}

	for _, entry := range p.Window {
		lines = append(lines, r.renderEntry(p, entry))
	}

	if len(p.Window) > 0 {
		lines = append(lines, "", r.renderPager(p))
	}

	content := strings.Join(lines, "\n")

	if p.HelpView != "" {
		currentLines := len(lines)
		availableLines := p.Height - 2*paddingTop
		if availableLines <= 0 {
			availableLines = 22 // Default terminal height minus padding
		}
		if paddingNeeded := availableLines - currentLines - 1; paddingNeeded > 0 {
			content += strings.Repeat("\n", paddingNeeded)
		}
		content += "\n" + r.styles.Help.Render(p.HelpView)
	}

	mainStyle := r.styles.Main
	if p.Height > 0 {
		mainStyle = mainStyle.MaxHeight(p.Height)
	}
	return mainStyle.Render(content)
}

// renderTitle renders the logo with the status icon right-aligned
func (r *Renderer) renderTitle(p Projection) string {
	logo := r.styles.Title.Render("quicksearch")
	status := r.renderStatus(p)
	if status == "" {
		return logo
	}

	termWidth := p.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	paddingWidth := termWidth - 2*paddingSide - lipgloss.Width(logo) - lipgloss.Width(status)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + status
}

func (r *Renderer) renderStatus(p Projection) string {
	var parts []string

	switch {
	case p.Status != "" && p.StatusErr:
		parts = append(parts, r.styles.StatusError.Render("✗ "+p.Status))
	case p.Searching:
		parts = append(parts, r.styles.StatusLoading.Render(p.Spinner+" searching"))
	case p.Status != "":
		parts = append(parts, r.styles.StatusSuccess.Render("✓ "+p.Status))
	case p.Classification.IsLink():
		parts = append(parts, r.styles.StatusSuccess.Render("✓"))
	case p.Query != "" && p.Total == 0:
		parts = append(parts, r.styles.StatusError.Render("✗ no results"))
	case p.Total > 0:
		parts = append(parts, r.styles.StatusSuccess.Render(fmt.Sprintf("✓ %d", p.Total)))
	}

	if p.Indexing {
		parts = append(parts, r.styles.Dim.Render("indexing"))
	}
	return strings.Join(parts, "  ")
}

// renderSuggestion renders the website/bang target or the bang completions
func (r *Renderer) renderSuggestion(p Projection) string {
	width := r.contentWidth(p)

	switch p.Classification.Kind {
	case query.KindWebsite:
		return r.styles.Dim.Render("open ") + r.styles.Link.Render(truncateRight(p.Classification.URL, width-5))
	case query.KindBang:
		service := r.styles.Service.Render(p.Classification.Service)
		rest := width - lipgloss.Width(service) - 1
		return service + " " + r.styles.Link.Render(truncateRight(p.Classification.URL, rest))
	}

	var items []string
	for _, c := range p.Completions {
		items = append(items, fmt.Sprintf("!%s %s", c.Trigger, c.Service))
	}
	return r.styles.Completion.Render(truncateRight(strings.Join(items, "  "), width))
}

// renderEntry renders one result row
func (r *Renderer) renderEntry(p Projection, entry navigation.Entry) string {
	width := r.contentWidth(p)
	marker := "  "
	if entry.Index == p.Highlight {
		marker = r.styles.Highlight.Render("▸ ")
	}

	isFolder := strings.HasSuffix(entry.Value, "/")
	display := shortenHome(entry.Value, p.Home)

	name := filepath.Base(strings.TrimSuffix(display, "/"))
	if isFolder {
		name += "/"
	}
	dir := filepath.Dir(strings.TrimSuffix(display, "/"))

	nameStyle := r.styles.File
	if isFolder {
		nameStyle = r.styles.Folder
	}

	name = truncateRight(name, width-2)
	line := nameStyle.Render(name)
	if rest := width - 2 - runewidth.StringWidth(name) - 2; rest > 3 {
		line += "  " + r.styles.Dim.Render(truncateLeft(dir, rest))
	}

	switch {
	case entry.Index == p.Highlight:
		line = r.styles.HighlightBg.Render(line)
	case entry.Index == p.Hovered:
		line = r.styles.HoverBg.Render(line)
	}
	return marker + line
}

// renderPager renders the page affordances and position
func (r *Renderer) renderPager(p Projection) string {
	back := r.styles.Dim.Render("‹")
	if p.Backward {
		back = r.styles.Affordance.Render("‹")
	}
	forward := r.styles.Dim.Render("›")
	if p.Forward {
		forward = r.styles.Affordance.Render("›")
	}

	pageCount := p.PageCount
	if pageCount < 1 {
		pageCount = 1
	}
	return fmt.Sprintf("%s %s %s", back, r.styles.Dim.Render(fmt.Sprintf("page %d/%d", p.Page+1, pageCount)), forward)
}

func (r *Renderer) contentWidth(p Projection) int {
	termWidth := p.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	return termWidth - 2*paddingSide
}

// shortenHome replaces the home directory prefix with ~
func shortenHome(path, home string) string {
	if home == "" {
		return path
	}
	home = strings.TrimSuffix(home, "/")
	if path == home || strings.HasPrefix(path, home+"/") {
		return "~" + path[len(home):]
	}
	return path
}

// truncateRight cuts s to width cells, ending with an ellipsis
func truncateRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// truncateLeft cuts s to width cells keeping the tail, which for paths is the
// part that tells entries apart
func truncateLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}

	budget := width - runewidth.StringWidth(ellipsis)
	runes := []rune(s)
	used := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > budget {
			break
		}
		used += w
		start--
	}
	return ellipsis + string(runes[start:])
}
