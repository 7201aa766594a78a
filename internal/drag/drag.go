package drag

import (
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/lofidesk/internal/desktop"
)

// DefaultTimeout bounds how long a session may go without pointer events.
const DefaultTimeout = 30 * time.Second

// WindowController is the part of the desktop a drag session needs.
type WindowController interface {
	Window(id string) (desktop.Window, bool)
	Focus(id string)
	Reposition(id string, x, y int)
}

// Options configures a Controller.
type Options struct {
	// Timeout ends a session with no pointer activity; zero disables it.
	Timeout time.Duration
	OnStuck StuckPolicy
	Logger  *slog.Logger
	// OnEnd is called after every session ends, outside the controller lock.
	OnEnd func(Result)
	// Constrain, when set, bounds the grab origin and every candidate, e.g.
	// to keep a title bar on screen.
	Constrain func(desktop.Position) desktop.Position
}

type stopper interface {
	Stop() bool
}

// Controller owns the single drag session of the desktop. Pointer handlers
// feed it press/move/release events for whichever window was grabbed.
type Controller struct {
	mu      sync.Mutex
	windows WindowController
	phase   Phase
	session Session

	timeout   time.Duration
	onStuck   StuckPolicy
	timer     stopper
	afterFunc func(time.Duration, func()) stopper
	// generation invalidates superseded timer callbacks.
	generation uint64

	logger    *slog.Logger
	onEnd     func(Result)
	constrain func(desktop.Position) desktop.Position
}

// NewController creates an idle drag controller.
func NewController(windows WindowController, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		windows: windows,
		phase:   PhaseIdle,
		timeout: opts.Timeout,
		onStuck: opts.OnStuck,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
		logger:    logger,
		onEnd:     opts.OnEnd,
		constrain: opts.Constrain,
	}
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Active reports whether a session is in progress.
func (c *Controller) Active() bool {
	return c.Phase() == PhaseDragging
}

// DraggedID returns the id of the grabbed window, or "" when idle.
func (c *Controller) DraggedID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseDragging {
		return ""
	}
	return c.session.WindowID
}

// Candidate returns the live position of the dragged window for rendering.
func (c *Controller) Candidate(id string) (desktop.Position, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseDragging || c.session.WindowID != id {
		return desktop.Position{}, false
	}
	return c.session.Candidate, true
}

// Press starts a session when the primary button goes down on a window's
// handle. Grabbing raises the window. It reports whether a session started.
func (c *Controller) Press(id string, pointer desktop.Position, button Button, region Region) bool {
	if button != ButtonPrimary || region != RegionHandle {
		return false
	}

	c.mu.Lock()
	if c.phase != PhaseIdle {
		c.mu.Unlock()
		return false
	}
	w, ok := c.windows.Window(id)
	if !ok || w.Minimized {
		c.mu.Unlock()
		return false
	}
	origin := c.bound(w.Position)
	c.phase = PhaseDragging
	c.session = Session{
		WindowID:     id,
		PointerStart: pointer,
		Origin:       origin,
		Candidate:    origin,
	}
	c.startTimeoutLocked()
	c.mu.Unlock()

	c.logger.Debug("drag started", "id", id, "x", origin.X, "y", origin.Y)
	c.windows.Focus(id)
	return true
}

// Move updates the candidate position. It never writes to the desktop.
func (c *Controller) Move(pointer desktop.Position) (desktop.Position, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseDragging {
		return desktop.Position{}, false
	}
	c.session.Candidate = c.candidateLocked(pointer)
	c.startTimeoutLocked()
	return c.session.Candidate, true
}

// Release ends the session and commits the final position with exactly one
// Reposition call.
func (c *Controller) Release(pointer desktop.Position) (Result, bool) {
	c.mu.Lock()
	if c.phase != PhaseDragging {
		c.mu.Unlock()
		return Result{}, false
	}
	c.session.Candidate = c.candidateLocked(pointer)
	res := c.endLocked(EndRelease, true)
	c.mu.Unlock()

	c.finish(res)
	return res, true
}

// CaptureLost forces the session back to idle when the pointer release can
// no longer be observed, e.g. the terminal lost focus mid-gesture.
func (c *Controller) CaptureLost() (Result, bool) {
	c.mu.Lock()
	if c.phase != PhaseDragging {
		c.mu.Unlock()
		return Result{}, false
	}
	res := c.endLocked(EndCaptureLost, c.onStuck == StuckCommit)
	c.mu.Unlock()

	c.logger.Warn("drag session lost input capture", "id", res.WindowID, "committed", res.Committed)
	c.finish(res)
	return res, true
}

func (c *Controller) candidateLocked(pointer desktop.Position) desktop.Position {
	return c.bound(c.session.Origin.Add(pointer.Sub(c.session.PointerStart)))
}

func (c *Controller) bound(p desktop.Position) desktop.Position {
	if c.constrain == nil {
		return p
	}
	return c.constrain(p)
}

// startTimeoutLocked starts or resets the auto-release timeout
func (c *Controller) startTimeoutLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.timeout <= 0 {
		return
	}

	c.generation++
	gen := c.generation
	c.timer = c.afterFunc(c.timeout, func() {
		c.mu.Lock()
		if c.phase != PhaseDragging || c.generation != gen {
			c.mu.Unlock()
			return
		}
		res := c.endLocked(EndTimeout, c.onStuck == StuckCommit)
		c.mu.Unlock()

		c.logger.Warn("drag session timed out", "id", res.WindowID, "committed", res.Committed)
		c.finish(res)
	})
}

// endLocked moves to idle and returns what finish must apply.
func (c *Controller) endLocked(reason EndReason, commit bool) Result {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	res := Result{
		WindowID:  c.session.WindowID,
		Position:  c.session.Candidate,
		Committed: commit,
		Reason:    reason,
	}
	c.phase = PhaseIdle
	c.session = Session{}
	c.generation++
	return res
}

func (c *Controller) finish(res Result) {
	if res.Committed {
		c.windows.Reposition(res.WindowID, res.Position.X, res.Position.Y)
	}
	c.logger.Debug("drag ended", "id", res.WindowID, "reason", res.Reason.String(),
		"x", res.Position.X, "y", res.Position.Y, "committed", res.Committed)
	if c.onEnd != nil {
		c.onEnd(res)
	}
}
