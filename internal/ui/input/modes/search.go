package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"quicksearch/internal/ui/input/types"
)

// SearchMode is the default mode: printable keys edit the query and the
// navigation keys move through the results
type SearchMode struct{}

func NewSearchMode() *SearchMode {
	return &SearchMode{}
}

func (m *SearchMode) Name() string {
	return "search"
}

func (m *SearchMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *SearchMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true

	case "esc":
		return []types.Action{types.ClearAction{}}, true

	case "up", "ctrl+p":
		return []types.Action{types.HighlightAction{Delta: -1}}, true

	case "down", "ctrl+n":
		return []types.Action{types.HighlightAction{Delta: 1}}, true

	case "pgup", "ctrl+left":
		return []types.Action{types.PageAction{Delta: -1}}, true

	case "pgdown", "ctrl+right":
		return []types.Action{types.PageAction{Delta: 1}}, true

	case "enter":
		if ctx.IsLink() || ctx.HasResults() {
			return []types.Action{types.OpenAction{}}, true
		}
		return nil, true

	case "ctrl+y":
		return []types.Action{types.CopyAction{}}, true

	case "ctrl+r":
		return []types.Action{types.RebuildIndexAction{}}, true

	case "tab":
		if completions := ctx.Completions(); len(completions) > 0 {
			return []types.Action{types.CompleteAction{Trigger: completions[0]}}, true
		}
		return nil, true

	case "?":
		// only on an empty line, otherwise it is part of the query
		if ctx.Query() == "" {
			return []types.Action{
				types.ChangeModeAction{Mode: types.ModePager},
				types.ShowHelpAction{},
			}, true
		}
	}

	// Let the handler update the text input
	return nil, false
}

func (m *SearchMode) HandleMouse(msg tea.MouseMsg, ctx types.Context) []types.Action {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return []types.Action{types.PageAction{Delta: -1}}
	case msg.Button == tea.MouseButtonWheelDown:
		return []types.Action{types.PageAction{Delta: 1}}
	}

	row, ok := ctx.HoveredRow(msg.Y)
	if !ok {
		row = -1
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		return []types.Action{types.HoverAction{Row: row}}
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && row >= 0 {
			return []types.Action{types.OpenRowAction{Row: row}}
		}
	}
	return nil
}
