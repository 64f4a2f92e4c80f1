package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"quicksearch/internal/config"
	"quicksearch/internal/eventbus"
	"quicksearch/internal/ui/commands"
	"quicksearch/internal/ui/input"
	inputtypes "quicksearch/internal/ui/input/types"
	"quicksearch/internal/ui/services/navigation"
	"quicksearch/internal/ui/services/query"
	"quicksearch/internal/ui/services/search"
	"quicksearch/internal/ui/views"
)

// Projection is what the renderer draws
type Projection = views.Projection

// statusTimeout is how long a status message stays on screen
const statusTimeout = 3 * time.Second

// Deps are the collaborators the model drives
type Deps struct {
	Bus        eventbus.EventBus
	Classifier *query.Classifier
	Searcher   search.Searcher
	Opener     commands.Opener
	Indexer    commands.Indexer
	Logger     zerolog.Logger
	Context    context.Context
	Home       string
}

// Model represents the UI state. The classifier and the navigator only talk
// to each other through it.
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	logger zerolog.Logger
	home   string

	classifier     *query.Classifier
	classification query.Classification
	completions    []query.BangEntry

	navigator *navigation.Navigator
	search    *search.Service

	width       int
	height      int
	help        help.Model
	keys        keyMap
	spinner     spinner.Model
	hovered     int
	indexing    bool
	status      string
	statusErr   bool
	statusID    int
	inPagerMode bool // tracks if we're currently in pager mode

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(cfg *config.Config, deps Deps) (*Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if deps.Classifier == nil {
		return nil, errors.New("classifier is required")
	}

	nav, err := navigation.New(cfg.UISettings.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("create navigator: %w", err)
	}

	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := &Model{
		bus:          deps.Bus,
		config:       cfg,
		logger:       deps.Logger,
		home:         deps.Home,
		classifier:   deps.Classifier,
		navigator:    nav,
		search:       search.NewService(deps.Searcher, deps.Logger),
		help:         help.New(),
		keys:         newKeyMap(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		hovered:      -1,
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(deps.Classifier.Bangs().WithPrefix("")),
		cmdExecutor:  commands.NewExecutor(ctx, deps.Opener, deps.Indexer, deps.Bus),
		inputHandler: input.New(),
	}
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.inputHandler.Init()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		var cmds []tea.Cmd
		for _, action := range m.inputHandler.HandleMouse(msg, m.inputContext()) {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case search.ResultsMsg:
		if !m.search.Accept(msg) {
			return m, nil
		}
		m.hovered = -1
		if msg.Err != nil {
			m.navigator.SetResults(nil)
			if errors.Is(msg.Err, context.Canceled) {
				return m, nil
			}
			return m, m.setStatus(fmt.Sprintf("search failed: %v", msg.Err), true)
		}
		if msg.Refresh {
			m.navigator.Refresh(msg.Results)
		} else {
			m.navigator.SetResults(msg.Results)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.navigator.Searching() && !m.indexing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case commands.ResultMsg:
		return m, m.handleCommandResult(msg)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			m.logger.Warn().Err(msg.err).Msg("help pager failed")
		}
		m.inputHandler.ChangeMode(inputtypes.ModeSearch, m.inputContext())
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	default:
		// Cursor blink and other text input messages
		return m, m.inputHandler.Update(msg)
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateTextAction:
		return m.onQueryChanged(a.Text)

	case inputtypes.HighlightAction:
		m.navigator.SetHighlight(a.Delta)
		return nil

	case inputtypes.PageAction:
		if m.navigator.SetPage(a.Delta) {
			m.hovered = -1
		}
		return nil

	case inputtypes.HoverAction:
		m.hovered = a.Row
		return nil

	case inputtypes.OpenAction:
		if m.classification.IsLink() {
			return m.cmdExecutor.ExecuteOpenURL(m.classification.URL)
		}
		if path, ok := m.navigator.Highlighted(); ok {
			return m.cmdExecutor.ExecuteOpenPath(path)
		}
		return nil

	case inputtypes.OpenRowAction:
		if path, ok := m.navigator.Hovered(a.Row); ok {
			return m.cmdExecutor.ExecuteOpenPath(path)
		}
		return nil

	case inputtypes.CopyAction:
		if m.classification.IsLink() {
			return m.cmdExecutor.ExecuteCopy(m.classification.URL)
		}
		if path, ok := m.navigator.Highlighted(); ok {
			return m.cmdExecutor.ExecuteCopy(path)
		}
		return nil

	case inputtypes.CompleteAction:
		return m.onQueryChanged(m.inputHandler.Complete(a.Trigger))

	case inputtypes.ClearAction:
		m.inputHandler.Reset()
		return m.onQueryChanged("")

	case inputtypes.RebuildIndexAction:
		cmd := m.cmdExecutor.ExecuteRebuild(a.Extended)
		if cmd == nil {
			return nil
		}
		return tea.Batch(cmd, m.setStatus("rebuilding index", false))

	case inputtypes.ShowHelpAction:
		if m.program == nil {
			m.inputHandler.ChangeMode(inputtypes.ModeSearch, m.inputContext())
			return nil
		}
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContent())

	case inputtypes.QuitAction:
		m.search.Cancel()
		return tea.Quit
	}
	return nil
}

// onQueryChanged reclassifies the query and starts or clears the file search
func (m *Model) onQueryChanged(text string) tea.Cmd {
	m.classification = m.classifier.Classify(text)
	m.completions = m.classifier.SuggestBangs(text)
	m.hovered = -1

	q := strings.TrimSpace(text)
	if q == "" || !m.classification.IsPlain() {
		m.search.Clear()
		m.navigator.Reset()
		return nil
	}
	if q == m.search.Query() {
		return nil
	}

	m.navigator.StartSearch()
	return tea.Batch(m.search.Dispatch(q), m.spinner.Tick)
}

// handleEvent reacts to index events published on the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.IndexStartedEvent:
		m.indexing = true
		return m.spinner.Tick

	case eventbus.IndexCompletedEvent:
		m.indexing = false
		// Refresh the visible results against the new snapshot
		if m.search.Query() == "" || !m.classification.IsPlain() {
			return nil
		}
		m.navigator.StartSearch()
		return tea.Batch(m.search.Refresh(), m.spinner.Tick)

	case eventbus.ErrorEvent:
		m.indexing = false
		msg := e.Message
		if e.Err != nil {
			msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return m.setStatus(msg, true)
	}
	return nil
}

func (m *Model) handleCommandResult(msg commands.ResultMsg) tea.Cmd {
	if msg.Err != nil {
		m.logger.Warn().Err(msg.Err).Str("action", msg.Action).Str("target", msg.Target).Msg("command failed")
		return m.setStatus(fmt.Sprintf("%s failed: %v", msg.Action, msg.Err), true)
	}

	switch msg.Action {
	case commands.ActionOpen:
		return m.setStatus("opened "+displayName(msg.Target), false)
	case commands.ActionCopy:
		return m.setStatus("copied "+displayName(msg.Target), false)
	}
	return nil
}

// setStatus shows a message and schedules its removal
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusID++
	m.status = text
	m.statusErr = isErr
	id := m.statusID
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{
		QueryText:      m.inputHandler.Value(),
		Navigator:      m.navigator,
		Classification: m.classification,
		Suggestions:    m.completions,
		ResultsTop:     views.ResultsTop(m.projection()),
	}
}

// projection builds the render input from the current state
func (m *Model) projection() Projection {
	p := Projection{
		Width:          m.width,
		Height:         m.height,
		Input:          m.inputHandler.TextInput().View(),
		Query:          strings.TrimSpace(m.inputHandler.Value()),
		Classification: m.classification,
		LinkSlot:       m.config.UISettings.LinkSlot,
		Window:         m.navigator.CurrentWindow(),
		Highlight:      m.navigator.Highlight(),
		Hovered:        m.hovered,
		Page:           m.navigator.Page(),
		PageCount:      m.navigator.PageCount(),
		Forward:        m.navigator.Affordance(navigation.Forward).Enabled,
		Backward:       m.navigator.Affordance(navigation.Backward).Enabled,
		Searching:      m.navigator.Searching(),
		Spinner:        m.spinner.View(),
		Indexing:       m.indexing,
		Total:          m.navigator.Len(),
		Status:         m.status,
		StatusErr:      m.statusErr,
		Home:           m.home,
	}
	if !m.classification.IsLink() {
		p.Completions = m.completions
	}
	if m.config.UISettings.ShowHints {
		p.HelpView = m.help.View(m.keys)
	}
	return p
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	return m.renderer.Render(m.projection())
}

// Projection exposes the current render input
func (m *Model) Projection() Projection {
	return m.projection()
}

func displayName(target string) string {
	if strings.Contains(target, "://") {
		return target
	}
	trimmed := strings.TrimSuffix(target, "/")
	if trimmed == "" {
		return target
	}
	return filepath.Base(trimmed)
}
