package types

// Navigation actions
type HighlightAction struct {
	Delta int
}

func (a HighlightAction) Type() string { return "highlight" }

type PageAction struct {
	Delta int
}

func (a PageAction) Type() string { return "page" }

// HoverAction tracks the row under the mouse; Row is -1 when off the list
type HoverAction struct {
	Row int
}

func (a HoverAction) Type() string { return "hover" }

// Open actions
type OpenAction struct{}

func (a OpenAction) Type() string { return "open" }

type OpenRowAction struct {
	Row int
}

func (a OpenRowAction) Type() string { return "open_row" }

type CopyAction struct{}

func (a CopyAction) Type() string { return "copy" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// CompleteAction replaces the typed start-bang with the first suggestion
type CompleteAction struct {
	Trigger string
}

func (a CompleteAction) Type() string { return "complete" }

// ClearAction empties the query and hides the results
type ClearAction struct{}

func (a ClearAction) Type() string { return "clear" }

// Command actions
type RebuildIndexAction struct {
	Extended bool
}

func (a RebuildIndexAction) Type() string { return "rebuild_index" }

type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
