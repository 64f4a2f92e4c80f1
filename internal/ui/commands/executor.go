package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"quicksearch/internal/eventbus"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(ctx context.Context, opener Opener, indexer Indexer, bus eventbus.EventBus) *Executor {
	return &Executor{
		ctx: &CommandContext{
			Ctx:     ctx,
			Opener:  opener,
			Indexer: indexer,
			Bus:     bus,
		},
	}
}

// ExecuteOpenPath creates and executes an open path command
func (e *Executor) ExecuteOpenPath(path string) tea.Cmd {
	cmd := NewOpenPathCommand(e.ctx, path)
	return cmd.Execute()
}

// ExecuteOpenURL creates and executes an open URL command
func (e *Executor) ExecuteOpenURL(url string) tea.Cmd {
	cmd := NewOpenURLCommand(e.ctx, url)
	return cmd.Execute()
}

// ExecuteCopy creates and executes a copy command
func (e *Executor) ExecuteCopy(text string) tea.Cmd {
	cmd := NewCopyCommand(e.ctx, text)
	return cmd.Execute()
}

// ExecuteRebuild creates and executes a rebuild command
func (e *Executor) ExecuteRebuild(extended bool) tea.Cmd {
	cmd := NewRebuildIndexCommand(e.ctx, extended)
	return cmd.Execute()
}
