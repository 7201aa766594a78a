package drag

import (
	"fmt"
	"strings"

	"github.com/1broseidon/lofidesk/internal/desktop"
)

// Phase represents the current phase of a drag session
type Phase int

const (
	// PhaseIdle means no window is being dragged
	PhaseIdle Phase = iota
	// PhaseDragging means a window is grabbed and follows the pointer
	PhaseDragging
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Button identifies the pointer button of a press.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
	ButtonOther
)

// Region is the part of a window under the pointer at press time.
type Region int

const (
	// RegionBody is the window content.
	RegionBody Region = iota
	// RegionHandle is the title bar, excluding its controls.
	RegionHandle
	// RegionControl covers the minimize and close buttons.
	RegionControl
)

// StuckPolicy decides what happens to the pending position when a session
// ends without a release.
type StuckPolicy int

const (
	StuckCommit StuckPolicy = iota
	StuckDiscard
)

func (p StuckPolicy) String() string {
	switch p {
	case StuckCommit:
		return "commit"
	case StuckDiscard:
		return "discard"
	default:
		return "unknown"
	}
}

// ParseStuckPolicy converts a config value to a StuckPolicy.
func ParseStuckPolicy(s string) (StuckPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "commit":
		return StuckCommit, nil
	case "discard":
		return StuckDiscard, nil
	default:
		return StuckCommit, fmt.Errorf("unknown stuck drag policy %q (expected commit or discard)", s)
	}
}

// EndReason says why a session left the dragging phase.
type EndReason int

const (
	EndRelease EndReason = iota
	EndCaptureLost
	EndTimeout
)

func (r EndReason) String() string {
	switch r {
	case EndRelease:
		return "release"
	case EndCaptureLost:
		return "capture-lost"
	case EndTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Session is the ephemeral state of one drag.
type Session struct {
	WindowID     string
	PointerStart desktop.Position
	// Origin is the committed window position read at grab time.
	Origin    desktop.Position
	Candidate desktop.Position
}

// Result describes a finished session.
type Result struct {
	WindowID  string
	Position  desktop.Position
	Committed bool
	Reason    EndReason
}
