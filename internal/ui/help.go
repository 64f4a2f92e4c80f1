package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"quicksearch/internal/ui/services/query"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	bangs []query.BangEntry
}

// queryExample is one row of the query syntax help
type queryExample struct {
	Query       string
	Description string
	Kind        query.Kind
}

var queryExamples = []queryExample{
	{"example.com", "Open a website (known top-level domains only)", query.KindWebsite},
	{"!gh cats", "Search cats with a bang service", query.KindBang},
	{"cats !gh", "Trailing bangs work too", query.KindBang},
	{"notes /e", "Also search the extended directories", query.KindPlain},
	{"notes <md,txt>", "Only these extensions (folder for directories)", query.KindPlain},
	{"notes.md", "A trailing extension filters as well", query.KindPlain},
}

// NewHelpRenderer creates a new help renderer listing the given bangs
func NewHelpRenderer(bangs []query.BangEntry) *HelpRenderer {
	return &HelpRenderer{bangs: bangs}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	line := func(key, desc string) {
		help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Width(14).Render(key), descStyle.Render(desc)))
	}

	help.WriteString(titleStyle.Render("quicksearch Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	line("↑/↓, ^p/^n", "Move the highlight (wraps around)")
	line("PgUp/PgDn", "Previous/next page")
	line("^←/^→", "Previous/next page")
	line("Mouse wheel", "Previous/next page")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Actions"))
	help.WriteString("\n")
	line("Enter", "Open the link, or reveal the highlighted path")
	line("Click", "Reveal the clicked path")
	line("^y", "Copy the link or highlighted path")
	line("Tab", "Complete the bang being typed")
	line("^r", "Rebuild the file index")
	line("Esc", "Clear the query")
	line("^c", "Quit")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Query Syntax"))
	help.WriteString("\n")
	for _, ex := range queryExamples {
		line(ex.Query, ex.Description)
	}
	help.WriteString("\n")

	if len(r.bangs) > 0 {
		help.WriteString(sectionStyle.Render("Bangs"))
		help.WriteString("\n")
		for _, b := range r.bangs {
			line("!"+b.Trigger, b.Service)
		}
		help.WriteString("\n")
	}

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	line("?", "Show this help (on an empty query)")
	help.WriteString(fmt.Sprintf("  %s %s", keyStyle.Width(14).Render("q"), descStyle.Render("Close this help")))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h == nil || h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	// Run the oviewer (this will take over the terminal)
	return root.Run()
}
