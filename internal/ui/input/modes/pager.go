package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"quicksearch/internal/ui/input/types"
)

// PagerMode swallows input while the help pager owns the terminal
type PagerMode struct{}

func NewPagerMode() *PagerMode {
	return &PagerMode{}
}

func (m *PagerMode) Name() string {
	return "pager"
}

func (m *PagerMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *PagerMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *PagerMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.String() == "ctrl+c" {
		return []types.Action{types.QuitAction{}}, true
	}
	return nil, true
}

func (m *PagerMode) HandleMouse(msg tea.MouseMsg, ctx types.Context) []types.Action {
	return nil
}
