package input

import (
	"quicksearch/internal/ui/services/navigation"
	"quicksearch/internal/ui/services/query"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	QueryText      string
	Navigator      *navigation.Navigator
	Classification query.Classification
	Suggestions    []query.BangEntry
	ResultsTop     int // screen row of the first result
}

func (c *ModelContext) Query() string {
	return c.QueryText
}

func (c *ModelContext) HasResults() bool {
	_, ok := c.Navigator.Highlighted()
	return ok
}

func (c *ModelContext) IsLink() bool {
	return c.Classification.IsLink()
}

// Completions returns suggested triggers while a start-bang is typed
func (c *ModelContext) Completions() []string {
	if c.Classification.Kind == query.KindBang {
		return nil
	}
	out := make([]string, 0, len(c.Suggestions))
	for _, s := range c.Suggestions {
		out = append(out, s.Trigger)
	}
	return out
}

// HoveredRow maps a screen row to a row of the current window
func (c *ModelContext) HoveredRow(y int) (int, bool) {
	row := y - c.ResultsTop
	if _, ok := c.Navigator.Hovered(row); !ok {
		return 0, false
	}
	return row, true
}
