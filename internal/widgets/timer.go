package widgets

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimerDuration is one focus session.
const DefaultTimerDuration = 25 * time.Minute

// Timer is a start/pause countdown. Keys: space start/pause, r reset.
type Timer struct {
	mu       sync.Mutex
	now      func() time.Time
	duration time.Duration
	// elapsed accumulates time from finished runs.
	elapsed   time.Duration
	running   bool
	startedAt time.Time
}

// NewTimer returns a stopped countdown of d.
func NewTimer(d time.Duration, now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now, duration: d}
}

// Remaining returns the time left, never below zero.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remainingLocked()
}

func (t *Timer) remainingLocked() time.Duration {
	used := t.elapsed
	if t.running {
		used += t.now().Sub(t.startedAt)
	}
	if left := t.duration - used; left > 0 {
		return left
	}
	return 0
}

// Running reports whether the countdown is active.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running && t.remainingLocked() > 0
}

func (t *Timer) HandleKey(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch key {
	case " ", "space":
		if t.running {
			t.elapsed += t.now().Sub(t.startedAt)
			t.running = false
		} else if t.remainingLocked() > 0 {
			t.startedAt = t.now()
			t.running = true
		}
	case "r":
		t.elapsed = 0
		t.running = false
	default:
		return false
	}
	return true
}

func (t *Timer) Render(width, height int) []string {
	t.mu.Lock()
	left := t.remainingLocked()
	running := t.running
	t.mu.Unlock()

	status := "paused - space to start"
	switch {
	case left == 0:
		status = "done - r to reset"
	case running:
		status = "running - space to pause"
	}
	total := int(left.Round(time.Second) / time.Second)
	return fit([]string{
		"",
		center(fmt.Sprintf("%02d:%02d", total/60, total%60), width),
		center(status, width),
	}, width, height)
}
