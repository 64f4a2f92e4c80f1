package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicksearch/internal/ui/input/types"
	"quicksearch/internal/ui/services/navigation"
	"quicksearch/internal/ui/services/query"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newContext(t *testing.T, h *Handler, results ...string) *ModelContext {
	t.Helper()
	nav, err := navigation.New(3)
	require.NoError(t, err)
	nav.SetResults(results)
	return &ModelContext{QueryText: h.Value(), Navigator: nav, ResultsTop: 2}
}

func TestTypingUpdatesQuery(t *testing.T) {
	h := New()
	ctx := newContext(t, h)

	actions, _ := h.HandleKey(runes("r"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "r"}, actions[0])

	actions, _ = h.HandleKey(runes("e"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "re"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace}, ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "r"}}, actions)
}

func TestNavigationKeys(t *testing.T) {
	h := New()
	ctx := newContext(t, h, "/a", "/b")

	tests := []struct {
		key  tea.KeyMsg
		want types.Action
	}{
		{key: tea.KeyMsg{Type: tea.KeyUp}, want: types.HighlightAction{Delta: -1}},
		{key: tea.KeyMsg{Type: tea.KeyDown}, want: types.HighlightAction{Delta: 1}},
		{key: tea.KeyMsg{Type: tea.KeyCtrlN}, want: types.HighlightAction{Delta: 1}},
		{key: tea.KeyMsg{Type: tea.KeyPgDown}, want: types.PageAction{Delta: 1}},
		{key: tea.KeyMsg{Type: tea.KeyCtrlLeft}, want: types.PageAction{Delta: -1}},
		{key: tea.KeyMsg{Type: tea.KeyEnter}, want: types.OpenAction{}},
		{key: tea.KeyMsg{Type: tea.KeyCtrlY}, want: types.CopyAction{}},
		{key: tea.KeyMsg{Type: tea.KeyEsc}, want: types.ClearAction{}},
		{key: tea.KeyMsg{Type: tea.KeyCtrlC}, want: types.QuitAction{}},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			actions, _ := h.HandleKey(tt.key, ctx)
			assert.Equal(t, []types.Action{tt.want}, actions)
		})
	}
}

func TestEnterWithoutTargetDoesNothing(t *testing.T) {
	h := New()
	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, newContext(t, h))
	assert.Empty(t, actions)
}

func TestQuestionMarkOpensHelpOnlyOnEmptyQuery(t *testing.T) {
	h := New()
	ctx := newContext(t, h)

	actions, _ := h.HandleKey(runes("?"), ctx)
	assert.Equal(t, []types.Action{types.ShowHelpAction{}}, actions)
	assert.Equal(t, types.ModePager, h.CurrentMode())

	actions, _ = h.HandleKey(runes("x"), ctx)
	assert.Empty(t, actions)

	h.ChangeMode(types.ModeSearch, ctx)
	h.SetValue("why")
	ctx.QueryText = h.Value()
	actions, _ = h.HandleKey(runes("?"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "why?"}}, actions)
}

func TestTabCompletesBang(t *testing.T) {
	h := New()
	h.SetValue("!g cats")
	ctx := newContext(t, h)
	ctx.Suggestions = []query.BangEntry{{Trigger: "gh"}, {Trigger: "gl"}}

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	require.Equal(t, []types.Action{types.CompleteAction{Trigger: "gh"}}, actions)

	assert.Equal(t, "!gh cats", h.Complete("gh"))
}

func TestMouse(t *testing.T) {
	h := New()
	ctx := newContext(t, h, "/a", "/b")

	actions := h.HandleMouse(tea.MouseMsg{Y: 3, Action: tea.MouseActionMotion}, ctx)
	assert.Equal(t, []types.Action{types.HoverAction{Row: 1}}, actions)

	actions = h.HandleMouse(tea.MouseMsg{Y: 9, Action: tea.MouseActionMotion}, ctx)
	assert.Equal(t, []types.Action{types.HoverAction{Row: -1}}, actions)

	actions = h.HandleMouse(tea.MouseMsg{Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, ctx)
	assert.Equal(t, []types.Action{types.OpenRowAction{Row: 0}}, actions)

	actions = h.HandleMouse(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}, ctx)
	assert.Equal(t, []types.Action{types.PageAction{Delta: 1}}, actions)
}
