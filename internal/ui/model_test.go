package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicksearch/internal/config"
	"quicksearch/internal/eventbus"
	"quicksearch/internal/logging"
	"quicksearch/internal/ui/commands"
	"quicksearch/internal/ui/services/navigation"
	"quicksearch/internal/ui/services/query"
	"quicksearch/internal/ui/services/search"
)

type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]string
	err     error
	queries []string
}

func (f *fakeSearcher) Search(ctx context.Context, q string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[q], nil
}

func (f *fakeSearcher) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

type fakeOpener struct {
	mu     sync.Mutex
	paths  []string
	urls   []string
	copied []string
}

func (f *fakeOpener) OpenPath(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	return nil
}

func (f *fakeOpener) OpenURL(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	return nil
}

func (f *fakeOpener) Copy(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.copied = append(f.copied, text)
	return nil
}

var eightResults = []string{
	"/home/u/notes/", "/home/u/notes.md", "/home/u/a/notes.txt", "/home/u/b/notes.txt",
	"/home/u/c/notes.txt", "/home/u/d/notes.txt", "/home/u/e/notes.txt", "/home/u/f/notes.txt",
}

type harness struct {
	t        *testing.T
	model    *Model
	searcher *fakeSearcher
	opener   *fakeOpener
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	classifier, err := query.NewDefaultClassifier(nil)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.UISettings.MaxResults = 3

	searcher := &fakeSearcher{results: map[string][]string{
		"notes": eightResults,
		"no":    {"/home/u/no"},
	}}
	opener := &fakeOpener{}

	m, err := NewModel(cfg, Deps{
		Classifier: classifier,
		Searcher:   searcher,
		Opener:     opener,
		Logger:     logging.Nop(),
		Home:       "/home/u",
	})
	require.NoError(t, err)

	h := &harness{t: t, model: m, searcher: searcher, opener: opener}
	h.send(tea.WindowSizeMsg{Width: 80, Height: 24})
	return h
}

// collect runs cmd and returns the messages it produces. Commands that do not
// return promptly (timers, cursor blink) are skipped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()

	select {
	case msg := <-out:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var msgs []tea.Msg
			for _, c := range batch {
				msgs = append(msgs, collect(c)...)
			}
			return msgs
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// send updates the model and feeds back search and command results
func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	_, cmd := h.model.Update(msg)
	for _, out := range collect(cmd) {
		switch out.(type) {
		case search.ResultsMsg, commands.ResultMsg:
			h.send(out)
		}
	}
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) key(t tea.KeyType) {
	h.send(tea.KeyMsg{Type: t})
}

func TestTypingRunsSearch(t *testing.T) {
	h := newHarness(t)
	h.typeText("notes")

	p := h.model.Projection()
	assert.Equal(t, []string{"notes"}, h.searcher.calls())
	assert.False(t, p.Searching)
	assert.Equal(t, 8, p.Total)
	require.Len(t, p.Window, 3)
	assert.Equal(t, "/home/u/notes/", p.Window[0].Value)
	assert.True(t, p.Forward)
	assert.False(t, p.Backward)
	assert.Equal(t, 3, p.PageCount)
}

func TestPagingAndHighlight(t *testing.T) {
	h := newHarness(t)
	h.typeText("notes")

	h.key(tea.KeyUp)
	assert.Equal(t, 2, h.model.Projection().Highlight, "highlight wraps to the last row")

	h.key(tea.KeyPgDown)
	h.key(tea.KeyPgDown)
	p := h.model.Projection()
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 0, p.Highlight)
	require.Len(t, p.Window, 2)
	assert.False(t, p.Forward)

	h.key(tea.KeyPgDown)
	assert.Equal(t, 2, h.model.Projection().Page, "paging past the end is ignored")

	h.key(tea.KeyDown)
	h.key(tea.KeyDown)
	assert.Equal(t, 0, h.model.Projection().Highlight, "wraps within the shorter last page")

	h.key(tea.KeyPgUp)
	assert.Equal(t, 1, h.model.Projection().Page)
}

func TestEnterOpensHighlightedPath(t *testing.T) {
	h := newHarness(t)
	h.typeText("notes")
	h.key(tea.KeyDown)
	h.key(tea.KeyEnter)

	assert.Equal(t, []string{"/home/u/notes.md"}, h.opener.paths)
	assert.Equal(t, "opened notes.md", h.model.Projection().Status)
}

func TestWebsiteQueryOpensURL(t *testing.T) {
	h := newHarness(t)
	h.typeText("notes")
	h.key(tea.KeyEsc)
	h.typeText("example.com")

	p := h.model.Projection()
	assert.Equal(t, query.KindWebsite, p.Classification.Kind)
	assert.Empty(t, p.Window, "link queries do not search files")
	assert.Equal(t, []string{"notes"}, h.searcher.calls())

	h.key(tea.KeyEnter)
	assert.Equal(t, []string{"https://example.com"}, h.opener.urls)
}

func TestBangQuery(t *testing.T) {
	h := newHarness(t)
	h.typeText("!gh cats")

	p := h.model.Projection()
	assert.Equal(t, query.KindBang, p.Classification.Kind)
	assert.Equal(t, "GitHub", p.Classification.Service)

	h.key(tea.KeyCtrlY)
	assert.Equal(t, []string{"https://github.com/search?q=cats"}, h.opener.copied)
}

func TestBangCompletion(t *testing.T) {
	h := newHarness(t)
	h.typeText("!go")

	p := h.model.Projection()
	require.NotEmpty(t, p.Completions)
	assert.Equal(t, "godoc", p.Completions[0].Trigger)

	h.key(tea.KeyTab)
	assert.Equal(t, "!godoc ", h.model.inputHandler.Value())
	assert.Equal(t, query.KindBang, h.model.Projection().Classification.Kind)
}

func TestEscClearsEverything(t *testing.T) {
	h := newHarness(t)
	h.typeText("notes")
	h.key(tea.KeyEsc)

	p := h.model.Projection()
	assert.Empty(t, p.Query)
	assert.Empty(t, p.Window)
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, "", h.model.search.Query())
}

func TestStaleResultsAreDropped(t *testing.T) {
	h := newHarness(t)

	stale := h.model.search.Dispatch("no")
	h.model.onQueryChanged("notes")
	fresh := h.model.search.Dispatch("notes")

	h.send(fresh())
	h.send(stale())

	p := h.model.Projection()
	assert.Equal(t, 8, p.Total)
	assert.Equal(t, "/home/u/notes/", p.Window[0].Value)
}

func TestSearchErrorShowsStatus(t *testing.T) {
	h := newHarness(t)
	h.searcher.err = errors.New("index unavailable")
	h.typeText("notes")

	p := h.model.Projection()
	assert.True(t, p.StatusErr)
	assert.Contains(t, p.Status, "index unavailable")
	assert.Empty(t, p.Window)
	assert.False(t, p.Searching)
}

func TestMouseHoverAndClick(t *testing.T) {
	h := newHarness(t)
	h.typeText("notes")

	top := h.model.Projection()
	row := 4 // padding, title, query line, link slot
	h.send(tea.MouseMsg{X: 10, Y: row + 1, Action: tea.MouseActionMotion})
	assert.Equal(t, 1, h.model.Projection().Hovered)
	assert.Equal(t, 0, top.Highlight)

	h.send(tea.MouseMsg{X: 10, Y: row + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, []string{"/home/u/a/notes.txt"}, h.opener.paths)

	h.send(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 1, h.model.Projection().Page)
}

func TestIndexCompletedRefreshesResults(t *testing.T) {
	h := newHarness(t)
	h.typeText("notes")

	h.send(EventMsg{Event: eventbus.IndexStartedEvent{Roots: []string{"/home/u"}}})
	assert.True(t, h.model.Projection().Indexing)

	h.searcher.mu.Lock()
	h.searcher.results["notes"] = []string{"/home/u/notes.md"}
	h.searcher.mu.Unlock()

	h.send(EventMsg{Event: eventbus.IndexCompletedEvent{Entries: 10}})
	p := h.model.Projection()
	assert.False(t, p.Indexing)
	assert.Equal(t, 1, p.Total)
	assert.Equal(t, []string{"notes", "notes"}, h.searcher.calls())
}

func TestIndexRefreshKeepsPosition(t *testing.T) {
	h := newHarness(t)
	h.typeText("notes")
	h.key(tea.KeyPgDown)
	h.key(tea.KeyDown)

	selected, ok := h.model.navigator.Highlighted()
	require.True(t, ok)
	require.Equal(t, "/home/u/c/notes.txt", selected)

	h.send(EventMsg{Event: eventbus.IndexCompletedEvent{Entries: 8}})
	p := h.model.Projection()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.Highlight)

	h.key(tea.KeyEnter)
	assert.Equal(t, []string{"/home/u/c/notes.txt"}, h.opener.paths)
}

func TestTypingAfterRefreshStartsOver(t *testing.T) {
	h := newHarness(t)
	h.typeText("notes")
	h.key(tea.KeyPgDown)
	h.send(EventMsg{Event: eventbus.IndexCompletedEvent{Entries: 8}})
	require.Equal(t, 1, h.model.Projection().Page)

	h.key(tea.KeyBackspace)
	h.typeText("s")
	assert.Equal(t, 0, h.model.Projection().Page)
}

func TestHelpWithoutProgramStaysInSearch(t *testing.T) {
	h := newHarness(t)
	h.typeText("?")
	assert.Equal(t, "", h.model.inputHandler.Value())
	assert.Equal(t, "search", h.model.inputHandler.ModeName())
}

func TestViewRendersQueryAndResults(t *testing.T) {
	h := newHarness(t)
	h.typeText("notes")

	view := h.model.View()
	assert.Contains(t, view, "quicksearch")
	assert.Contains(t, view, "notes.md")
	assert.True(t, strings.Contains(view, "page 1/3"))
}

func TestNewModelRejectsBadCapacity(t *testing.T) {
	classifier, err := query.NewDefaultClassifier(nil)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.UISettings.MaxResults = 0
	_, err = NewModel(cfg, Deps{Classifier: classifier, Logger: logging.Nop()})
	assert.ErrorIs(t, err, navigation.ErrInvalidCapacity)
}

func TestHelpContentListsBangs(t *testing.T) {
	classifier, err := query.NewDefaultClassifier(nil)
	require.NoError(t, err)

	content := NewHelpRenderer(classifier.Bangs().WithPrefix("")).RenderHelpContent()
	assert.Contains(t, content, "!gh")
	assert.Contains(t, content, "GitHub")
	assert.Contains(t, content, "/e")
}

func TestHelpQueryExamplesMatchClassifier(t *testing.T) {
	classifier, err := query.NewDefaultClassifier(nil)
	require.NoError(t, err)

	content := NewHelpRenderer(nil).RenderHelpContent()
	for _, ex := range queryExamples {
		assert.Contains(t, content, ex.Query)
		assert.Equal(t, ex.Kind, classifier.Classify(ex.Query).Kind, ex.Query)
	}
}
