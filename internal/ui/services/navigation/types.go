package navigation

import "errors"

// ErrInvalidCapacity is returned when the viewport capacity is not positive
var ErrInvalidCapacity = errors.New("viewport capacity must be positive")

// Direction selects the page affordance to query
type Direction string

const (
	// Forward is the next page
	Forward Direction = "forward"
	// Backward is the previous page
	Backward Direction = "backward"
)

// Delta returns the page delta a move in this direction applies
func (d Direction) Delta() int {
	if d == Backward {
		return -1
	}
	return 1
}

// Entry is one row of the current window
type Entry struct {
	Index int // position within the window
	Value string
}

// Affordance tells the renderer whether a page move is available
type Affordance struct {
	Enabled bool
}
