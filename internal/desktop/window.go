package desktop

import (
	"errors"
	"fmt"
)

// Position is the offset of a window's top-left corner on the desktop surface.
type Position struct {
	X int
	Y int
}

// Add returns p translated by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the offset from q to p.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y}
}

// Window is one floating surface on the desktop.
type Window struct {
	ID          string
	DisplayName string
	// Content is supplied by the opener and handed back unchanged.
	Content   any
	Position  Position
	ZIndex    int
	Minimized bool
}

// ErrInvalidWindow is matched by every ValidationError via errors.Is.
var ErrInvalidWindow = errors.New("invalid window")

// ValidationError reports a malformed open request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid window %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidWindow) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidWindow
}

// Snapshot is a detached copy of the desktop state.
type Snapshot struct {
	// Windows is in render order: the most recently focused window is last.
	Windows  []Window
	ZCounter int
	// ActiveID is empty when no window is focused.
	ActiveID string
}

// Find returns the window with the given id.
func (s Snapshot) Find(id string) (Window, bool) {
	for _, w := range s.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return Window{}, false
}

// Visible returns the non-minimized windows ordered bottom to top by ZIndex.
func (s Snapshot) Visible() []Window {
	out := make([]Window, 0, len(s.Windows))
	for _, w := range s.Windows {
		if !w.Minimized {
			out = append(out, w)
		}
	}
	// Insertion sort; window counts are tiny.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].ZIndex < out[j-1].ZIndex; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
