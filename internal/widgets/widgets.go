// Package widgets provides the content shown inside desktop windows. The
// desktop never looks inside these values; only the terminal shell renders them.
package widgets

import (
	"fmt"
	"strings"
	"time"
)

// Kind names a widget in configuration.
type Kind string

const (
	KindClock     Kind = "clock"
	KindTodo      Kind = "todo"
	KindTimer     Kind = "timer"
	KindWallpaper Kind = "wallpaper"
	KindAbout     Kind = "about"
)

var kinds = []Kind{KindClock, KindTodo, KindTimer, KindWallpaper, KindAbout}

// KindNames lists the known widget kinds.
func KindNames() []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

// IsKnown reports whether s names a widget kind.
func IsKnown(s string) bool {
	for _, k := range kinds {
		if string(k) == s {
			return true
		}
	}
	return false
}

// Renderer draws a widget into at most width x height cells.
type Renderer interface {
	Render(width, height int) []string
}

// KeyHandler is implemented by widgets that react to keys while their
// window is active. It reports whether the key was consumed.
type KeyHandler interface {
	HandleKey(key string) bool
}

// Env carries shared collaborators into widget constructors.
type Env struct {
	Now       func() time.Time
	Wallpaper *WallpaperState
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// New builds the widget for kind.
func New(kind Kind, env Env) (Renderer, error) {
	switch kind {
	case KindClock:
		return &Clock{now: env.now}, nil
	case KindTodo:
		return NewTodo(), nil
	case KindTimer:
		return NewTimer(DefaultTimerDuration, env.now), nil
	case KindWallpaper:
		if env.Wallpaper == nil {
			return nil, fmt.Errorf("wallpaper widget needs shared wallpaper state")
		}
		return &WallpaperPicker{state: env.Wallpaper}, nil
	case KindAbout:
		return About{}, nil
	default:
		return nil, fmt.Errorf("unknown widget %q", kind)
	}
}

// fit clips lines to width x height.
func fit(lines []string, width, height int) []string {
	if height >= 0 && len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		r := []rune(l)
		if len(r) > width {
			lines[i] = string(r[:width])
		}
	}
	return lines
}

// center pads s to be centered within width.
func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}

// Clock shows the current time and date.
type Clock struct {
	now func() time.Time
}

func (c *Clock) Render(width, height int) []string {
	t := c.now()
	return fit([]string{
		"",
		center(t.Format("15:04:05"), width),
		center(t.Format("Monday, 02 January"), width),
	}, width, height)
}

// About describes the desktop.
type About struct{}

func (About) Render(width, height int) []string {
	return fit([]string{
		"lofidesk",
		"",
		"Click a launcher tool to open it,",
		"click again to hide it.",
		"Drag a title bar to move a window.",
		"[_] minimizes, [x] closes.",
	}, width, height)
}
