package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeSearch Mode = iota
	ModePager
)

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	Query() string
	HasResults() bool
	IsLink() bool
	Completions() []string
	HoveredRow(y int) (int, bool)
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// HandleMouse processes a mouse message
	HandleMouse(msg tea.MouseMsg, ctx Context) []Action

	Enter(ctx Context) []Action
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
