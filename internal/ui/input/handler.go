package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quicksearch/internal/ui/input/modes"
	"quicksearch/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model
}

func New() *Handler {
	ti := textinput.New()
	ti.Prompt = "" // Prompt is handled in the UI layer
	ti.Placeholder = "Search files, type a URL or !bang"
	ti.Focus()

	h := &Handler{
		currentMode: types.ModeSearch,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeSearch] = modes.NewSearchMode()
	h.modes[types.ModePager] = modes.NewPagerMode()

	return h
}

// HandleKey routes a key to the current mode. Keys the mode does not consume
// edit the query; an UpdateTextAction follows whenever the text changed.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	allActions := h.applyModeChanges(actions, ctx)

	if consumed || h.currentMode != types.ModeSearch {
		return allActions, nil
	}

	before := h.textInput.Value()
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	if after := h.textInput.Value(); after != before {
		allActions = append(allActions, types.UpdateTextAction{Text: after})
	}
	return allActions, cmd
}

// HandleMouse routes a mouse event to the current mode
func (h *Handler) HandleMouse(msg tea.MouseMsg, ctx types.Context) []types.Action {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil
	}
	return h.applyModeChanges(handler.HandleMouse(msg, ctx), ctx)
}

func (h *Handler) applyModeChanges(actions []types.Action, ctx types.Context) []types.Action {
	var out []types.Action
	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			out = append(out, action)
			continue
		}
		out = append(out, h.switchMode(changeMode.Mode, ctx)...)
	}
	return out
}

func (h *Handler) switchMode(mode types.Mode, ctx types.Context) []types.Action {
	var out []types.Action
	if current := h.modes[h.currentMode]; current != nil {
		out = append(out, current.Exit(ctx)...)
	}

	h.currentMode = mode
	if next := h.modes[mode]; next != nil {
		out = append(out, next.Enter(ctx)...)
	}

	if mode == types.ModeSearch {
		h.textInput.Focus()
	} else {
		h.textInput.Blur()
	}
	return out
}

// ChangeMode switches mode outside of key handling, e.g. when the pager exits
func (h *Handler) ChangeMode(mode types.Mode, ctx types.Context) []types.Action {
	return h.switchMode(mode, ctx)
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeSearch
	}
	return h.currentMode
}

// ModeName returns the display name of the current mode
func (h *Handler) ModeName() string {
	if handler := h.modes[h.currentMode]; handler != nil {
		return handler.Name()
	}
	return ""
}

func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

func (h *Handler) Value() string {
	return h.textInput.Value()
}

// SetValue replaces the query and moves the cursor to the end
func (h *Handler) SetValue(text string) {
	h.textInput.SetValue(text)
	h.textInput.CursorEnd()
}

// Complete replaces the leading "!token" of the query with "!trigger "
func (h *Handler) Complete(trigger string) string {
	value := h.textInput.Value()
	rest := ""
	if i := strings.IndexAny(value, " \t"); i >= 0 {
		rest = strings.TrimLeft(value[i:], " \t")
	}
	h.SetValue("!" + trigger + " " + rest)
	return h.textInput.Value()
}

func (h *Handler) Reset() {
	h.textInput.Reset()
}

// Update handles non-keyboard messages for the text input (cursor blink)
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// Init returns the initial command for the handler
func (h *Handler) Init() tea.Cmd {
	return textinput.Blink
}
