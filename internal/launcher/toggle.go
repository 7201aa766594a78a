package launcher

import "github.com/1broseidon/lofidesk/internal/desktop"

// Action is the lifecycle command a launcher click resolves to.
type Action int

const (
	ActionNone Action = iota
	// ActionOpen creates the tool's window.
	ActionOpen
	// ActionRestore focuses a minimized window.
	ActionRestore
	// ActionMinimize hides a visible window.
	ActionMinimize
)

func (a Action) String() string {
	switch a {
	case ActionOpen:
		return "open"
	case ActionRestore:
		return "restore"
	case ActionMinimize:
		return "minimize"
	default:
		return "none"
	}
}

// Decide picks the single command for a click on toolID.
func Decide(toolID string, snap desktop.Snapshot) Action {
	w, ok := snap.Find(toolID)
	switch {
	case !ok:
		return ActionOpen
	case w.Minimized:
		return ActionRestore
	default:
		return ActionMinimize
	}
}

// ToolState is what the launcher shows for a tool.
type ToolState int

const (
	ToolClosed ToolState = iota
	ToolOpen
	ToolActive
	ToolMinimized
)

func (s ToolState) String() string {
	switch s {
	case ToolClosed:
		return "closed"
	case ToolOpen:
		return "open"
	case ToolActive:
		return "active"
	case ToolMinimized:
		return "minimized"
	default:
		return "unknown"
	}
}

// StateOf derives a tool's indicator from a snapshot.
func StateOf(toolID string, snap desktop.Snapshot) ToolState {
	w, ok := snap.Find(toolID)
	switch {
	case !ok:
		return ToolClosed
	case w.Minimized:
		return ToolMinimized
	case snap.ActiveID == toolID:
		return ToolActive
	default:
		return ToolOpen
	}
}
