// Package launcher maps launcher clicks onto window lifecycle commands.
package launcher

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/1broseidon/lofidesk/internal/desktop"
)

// ErrUnknownTool is returned for clicks on ids missing from the registry.
var ErrUnknownTool = errors.New("unknown tool")

// Tool is one launcher entry.
type Tool struct {
	ID          string
	DisplayName string
	// NewContent builds the window payload; it runs only when a window opens.
	NewContent func() any
}

// Registry is the ordered set of launcher entries.
type Registry struct {
	tools []Tool
	index map[string]int
}

// NewRegistry validates tools and keeps their order.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{
		tools: make([]Tool, 0, len(tools)),
		index: make(map[string]int, len(tools)),
	}

	var problems []string
	for i, t := range tools {
		switch {
		case strings.TrimSpace(t.ID) == "":
			problems = append(problems, fmt.Sprintf("tool %d: id must not be empty", i))
			continue
		case strings.TrimSpace(t.DisplayName) == "":
			problems = append(problems, fmt.Sprintf("tool %q: display name must not be empty", t.ID))
			continue
		}
		if _, dup := r.index[t.ID]; dup {
			problems = append(problems, fmt.Sprintf("tool %q: duplicate id", t.ID))
			continue
		}
		r.index[t.ID] = len(r.tools)
		r.tools = append(r.tools, t)
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid launcher registry: %s", strings.Join(problems, "; "))
	}
	return r, nil
}

// Tools returns the entries in launcher order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Lookup returns the entry with the given id.
func (r *Registry) Lookup(id string) (Tool, bool) {
	i, ok := r.index[id]
	if !ok {
		return Tool{}, false
	}
	return r.tools[i], true
}

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.tools) }

// Commands is the desktop surface the launcher drives.
type Commands interface {
	Open(id, displayName string, content any) error
	Focus(id string)
	Minimize(id string)
	Snapshot() desktop.Snapshot
}

// Launcher turns launcher clicks into exactly one desktop command each.
type Launcher struct {
	registry *Registry
	desk     Commands
	logger   *slog.Logger
}

// New creates a launcher over the given registry.
func New(registry *Registry, desk Commands, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Launcher{registry: registry, desk: desk, logger: logger}
}

// Registry returns the launcher's entries.
func (l *Launcher) Registry() *Registry { return l.registry }

// Click applies the toggle rule for toolID and returns the issued action.
func (l *Launcher) Click(toolID string) (Action, error) {
	tool, ok := l.registry.Lookup(toolID)
	if !ok {
		return ActionNone, fmt.Errorf("%w: %q", ErrUnknownTool, toolID)
	}

	action := Decide(toolID, l.desk.Snapshot())
	switch action {
	case ActionOpen:
		var content any
		if tool.NewContent != nil {
			content = tool.NewContent()
		}
		if err := l.desk.Open(tool.ID, tool.DisplayName, content); err != nil {
			return ActionNone, fmt.Errorf("open %q: %w", tool.ID, err)
		}
	case ActionRestore:
		l.desk.Focus(tool.ID)
	case ActionMinimize:
		l.desk.Minimize(tool.ID)
	}

	l.logger.Debug("launcher click", "tool", tool.ID, "action", action.String())
	return action, nil
}

// StateOf reports the launcher indicator for a tool.
func (l *Launcher) StateOf(toolID string) ToolState {
	return StateOf(toolID, l.desk.Snapshot())
}
