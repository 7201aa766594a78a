package desktop

import (
	"log/slog"
	"strings"
	"sync"
)

// DefaultCascadeStep is the diagonal offset between freshly opened windows.
const DefaultCascadeStep = 20

// Options configures a Controller.
type Options struct {
	// CascadeStep is the placement offset per open window; <= 0 uses DefaultCascadeStep.
	CascadeStep int
	Logger      *slog.Logger
}

// Controller is the only path to mutating desktop state. Every command is
// applied atomically and in the order it was issued.
type Controller struct {
	mu      sync.Mutex
	state   store
	cascade int
	logger  *slog.Logger

	listenerMu sync.Mutex
	listeners  map[int]func(Snapshot)
	nextListen int
}

// NewController creates an empty desktop.
func NewController(opts Options) *Controller {
	cascade := opts.CascadeStep
	if cascade <= 0 {
		cascade = DefaultCascadeStep
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		cascade:   cascade,
		logger:    logger,
		listeners: make(map[int]func(Snapshot)),
	}
}

// Open creates a window, or focuses it when id is already open.
func (c *Controller) Open(id, displayName string, content any) error {
	if strings.TrimSpace(id) == "" {
		c.logger.Warn("rejected open", "reason", "empty id", "display_name", displayName)
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}

	c.mu.Lock()
	if w := c.state.find(id); w != nil {
		c.state.bringToFront(w)
		c.logger.Debug("open resolved to focus", "id", id, "z", w.ZIndex)
	} else {
		// The name only matters for a window being created.
		if strings.TrimSpace(displayName) == "" {
			c.mu.Unlock()
			c.logger.Warn("rejected open", "id", id, "reason", "empty display name")
			return &ValidationError{Field: "display_name", Reason: "must not be empty"}
		}
		offset := c.cascade * (len(c.state.windows) + 1)
		w := &Window{
			ID:          id,
			DisplayName: displayName,
			Content:     content,
			Position:    Position{X: offset, Y: offset},
			ZIndex:      c.state.nextZ(),
		}
		c.state.windows = append(c.state.windows, w)
		c.state.activeID = id
		c.logger.Debug("opened window", "id", id, "z", w.ZIndex, "x", offset, "y", offset)
	}
	snap := c.state.snapshot()
	c.mu.Unlock()

	c.notify(snap)
	return nil
}

// Close removes a window. Unknown ids are ignored.
func (c *Controller) Close(id string) {
	c.mu.Lock()
	if !c.state.remove(id) {
		c.mu.Unlock()
		return
	}
	c.state.recomputeActive(id)
	c.logger.Debug("closed window", "id", id, "active", c.state.activeID)
	snap := c.state.snapshot()
	c.mu.Unlock()

	c.notify(snap)
}

// Minimize hides a window. Unknown ids are ignored.
func (c *Controller) Minimize(id string) {
	c.mu.Lock()
	w := c.state.find(id)
	if w == nil {
		c.mu.Unlock()
		return
	}
	w.Minimized = true
	c.state.recomputeActive(id)
	c.logger.Debug("minimized window", "id", id, "active", c.state.activeID)
	snap := c.state.snapshot()
	c.mu.Unlock()

	c.notify(snap)
}

// Focus raises and restores a window and makes it active. Unknown ids are ignored.
func (c *Controller) Focus(id string) {
	c.mu.Lock()
	w := c.state.find(id)
	if w == nil {
		c.mu.Unlock()
		return
	}
	c.state.bringToFront(w)
	c.logger.Debug("focused window", "id", id, "z", w.ZIndex)
	snap := c.state.snapshot()
	c.mu.Unlock()

	c.notify(snap)
}

// Reposition moves a window without touching stacking or activation.
// Unknown ids are ignored.
func (c *Controller) Reposition(id string, x, y int) {
	c.mu.Lock()
	w := c.state.find(id)
	if w == nil {
		c.mu.Unlock()
		return
	}
	w.Position = Position{X: x, Y: y}
	c.logger.Debug("repositioned window", "id", id, "x", x, "y", y)
	snap := c.state.snapshot()
	c.mu.Unlock()

	c.notify(snap)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.snapshot()
}

// Window returns a copy of the window with the given id.
func (c *Controller) Window(id string) (Window, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w := c.state.find(id); w != nil {
		return *w, true
	}
	return Window{}, false
}

// ActiveID returns the focused window id, or "" when none is focused.
func (c *Controller) ActiveID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.activeID
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned function removes the subscription.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.listenerMu.Lock()
	id := c.nextListen
	c.nextListen++
	c.listeners[id] = fn
	c.listenerMu.Unlock()

	return func() {
		c.listenerMu.Lock()
		delete(c.listeners, id)
		c.listenerMu.Unlock()
	}
}

// notify runs outside c.mu so listeners may read from the controller.
func (c *Controller) notify(snap Snapshot) {
	c.listenerMu.Lock()
	fns := make([]func(Snapshot), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.listenerMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
