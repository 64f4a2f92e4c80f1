package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"quicksearch/internal/eventbus"
)

// Opener hands a target over to the desktop
type Opener interface {
	OpenPath(path string) error
	OpenURL(url string) error
	Copy(text string) error
}

// Indexer rebuilds the file index
type Indexer interface {
	Rebuild(ctx context.Context, extended bool) error
}

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Ctx     context.Context
	Opener  Opener
	Indexer Indexer
	Bus     eventbus.EventBus
}

// Action names reported in ResultMsg
const (
	ActionOpen    = "open"
	ActionCopy    = "copy"
	ActionRebuild = "rebuild"
)

// ResultMsg reports the outcome of a command
type ResultMsg struct {
	Action string
	Target string
	Err    error
}

// OpenPathCommand reveals a file or folder in the file manager
type OpenPathCommand struct {
	ctx  *CommandContext
	path string
}

// NewOpenPathCommand creates a new open path command
func NewOpenPathCommand(ctx *CommandContext, path string) *OpenPathCommand {
	return &OpenPathCommand{ctx: ctx, path: path}
}

// Execute opens the path
func (c *OpenPathCommand) Execute() tea.Cmd {
	if c.path == "" || c.ctx.Opener == nil {
		return nil
	}
	return func() tea.Msg {
		return ResultMsg{Action: ActionOpen, Target: c.path, Err: c.ctx.Opener.OpenPath(c.path)}
	}
}

// OpenURLCommand opens a URL in the browser
type OpenURLCommand struct {
	ctx *CommandContext
	url string
}

// NewOpenURLCommand creates a new open URL command
func NewOpenURLCommand(ctx *CommandContext, url string) *OpenURLCommand {
	return &OpenURLCommand{ctx: ctx, url: url}
}

// Execute opens the URL
func (c *OpenURLCommand) Execute() tea.Cmd {
	if c.url == "" || c.ctx.Opener == nil {
		return nil
	}
	return func() tea.Msg {
		return ResultMsg{Action: ActionOpen, Target: c.url, Err: c.ctx.Opener.OpenURL(c.url)}
	}
}

// CopyCommand puts a path or URL on the clipboard
type CopyCommand struct {
	ctx  *CommandContext
	text string
}

// NewCopyCommand creates a new copy command
func NewCopyCommand(ctx *CommandContext, text string) *CopyCommand {
	return &CopyCommand{ctx: ctx, text: text}
}

// Execute copies the text
func (c *CopyCommand) Execute() tea.Cmd {
	if c.text == "" || c.ctx.Opener == nil {
		return nil
	}
	return func() tea.Msg {
		return ResultMsg{Action: ActionCopy, Target: c.text, Err: c.ctx.Opener.Copy(c.text)}
	}
}

// RebuildIndexCommand re-walks the default or extended directories.
// Progress arrives separately as index events on the bus.
type RebuildIndexCommand struct {
	ctx      *CommandContext
	extended bool
}

// NewRebuildIndexCommand creates a new rebuild command
func NewRebuildIndexCommand(ctx *CommandContext, extended bool) *RebuildIndexCommand {
	return &RebuildIndexCommand{ctx: ctx, extended: extended}
}

// Execute starts the rebuild
func (c *RebuildIndexCommand) Execute() tea.Cmd {
	if c.ctx.Indexer == nil {
		return nil
	}
	ctx := c.ctx.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		err := c.ctx.Indexer.Rebuild(ctx, c.extended)
		if err != nil && c.ctx.Bus != nil {
			c.ctx.Bus.Publish(eventbus.ErrorEvent{Message: "index rebuild failed", Err: err})
		}
		return ResultMsg{Action: ActionRebuild, Err: err}
	}
}
