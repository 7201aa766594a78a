package widgets

import (
	"strings"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestNew_KnownKinds(t *testing.T) {
	env := Env{Wallpaper: &WallpaperState{}}
	for _, name := range KindNames() {
		if !IsKnown(name) {
			t.Fatalf("expected %q to be known", name)
		}
		r, err := New(Kind(name), env)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		for _, line := range r.Render(20, 4) {
			if n := len([]rune(line)); n > 20 {
				t.Fatalf("%s: line %q exceeds width (%d)", name, line, n)
			}
		}
	}
	if IsKnown("music") {
		t.Fatalf("expected music to be unknown")
	}
	if _, err := New("music", env); err == nil {
		t.Fatalf("expected error for unknown widget")
	}
	if _, err := New(KindWallpaper, Env{}); err == nil {
		t.Fatalf("expected error for wallpaper without shared state")
	}
}

func TestClock_Render(t *testing.T) {
	clk := &fakeClock{t: time.Date(2026, 10, 17, 9, 5, 3, 0, time.UTC)}
	r, _ := New(KindClock, Env{Now: clk.Now})

	got := strings.Join(r.Render(30, 3), "\n")
	if !strings.Contains(got, "09:05:03") || !strings.Contains(got, "Saturday, 17 October") {
		t.Fatalf("unexpected clock render %q", got)
	}
}

func TestTimer_StartPauseReset(t *testing.T) {
	clk := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	tm := NewTimer(2*time.Minute, clk.Now)

	tm.HandleKey(" ")
	clk.t = clk.t.Add(30 * time.Second)
	if got := tm.Remaining(); got != 90*time.Second {
		t.Fatalf("expected 1m30s left, got %v", got)
	}

	tm.HandleKey(" ") // pause
	clk.t = clk.t.Add(time.Hour)
	if got := tm.Remaining(); got != 90*time.Second {
		t.Fatalf("expected pause to hold 1m30s, got %v", got)
	}
	if !strings.Contains(strings.Join(tm.Render(30, 3), "\n"), "01:30") {
		t.Fatalf("expected 01:30 in render")
	}

	tm.HandleKey(" ")
	clk.t = clk.t.Add(5 * time.Minute)
	if tm.Remaining() != 0 || tm.Running() {
		t.Fatalf("expected finished timer, got %v running=%v", tm.Remaining(), tm.Running())
	}

	tm.HandleKey("r")
	if got := tm.Remaining(); got != 2*time.Minute {
		t.Fatalf("expected reset to 2m, got %v", got)
	}
	if tm.HandleKey("x") {
		t.Fatalf("expected unknown key to pass through")
	}
}

func TestTodo_AddToggleDelete(t *testing.T) {
	td := NewTodo()
	for _, k := range []string{"a", "t", "e", "a", " ", "1", "enter"} {
		if !td.HandleKey(k) {
			t.Fatalf("expected key %q to be consumed", k)
		}
	}
	td.Add("walk")
	td.Add("   ")

	items := td.Items()
	if len(items) != 2 || items[0].Text != "tea 1" || items[1].Text != "walk" {
		t.Fatalf("unexpected items %+v", items)
	}

	td.HandleKey("k")
	td.HandleKey(" ")
	if !td.Items()[0].Done {
		t.Fatalf("expected first item toggled done")
	}
	if !strings.Contains(strings.Join(td.Render(30, 5), "\n"), "> [x] tea 1") {
		t.Fatalf("unexpected render %q", td.Render(30, 5))
	}

	td.HandleKey("d")
	if items := td.Items(); len(items) != 1 || items[0].Text != "walk" {
		t.Fatalf("expected only walk left, got %+v", items)
	}
}

func TestTodo_EditingCapturesAndCancels(t *testing.T) {
	td := NewTodo()
	td.HandleKey("a")
	if !td.Editing() {
		t.Fatalf("expected editing mode")
	}
	td.HandleKey("q")
	td.HandleKey("backspace")
	td.HandleKey("esc")
	if td.Editing() || len(td.Items()) != 0 {
		t.Fatalf("expected cancelled draft, got %+v", td.Items())
	}
	if td.HandleKey("ctrl+x") {
		t.Fatalf("expected unknown key to pass through")
	}
}

func TestWallpaper_StepWraps(t *testing.T) {
	state := &WallpaperState{}
	r, _ := New(KindWallpaper, Env{Wallpaper: state})
	picker := r.(KeyHandler)

	picker.HandleKey("k")
	if got := state.Index(); got != len(Wallpapers)-1 {
		t.Fatalf("expected wrap to last wallpaper, got %d", got)
	}
	picker.HandleKey("j")
	if state.Current().Name != Wallpapers[0].Name {
		t.Fatalf("expected first wallpaper, got %q", state.Current().Name)
	}
	if !strings.Contains(strings.Join(r.Render(30, 10), "\n"), "(o) · lofi night") {
		t.Fatalf("expected selected marker in render")
	}
}
