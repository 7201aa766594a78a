package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/lofidesk/internal/config"
	"github.com/1broseidon/lofidesk/internal/desktop"
	"github.com/1broseidon/lofidesk/internal/drag"
	"github.com/1broseidon/lofidesk/internal/widgets"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return newTestModelWith(t, nil)
}

func newTestModelWith(t *testing.T, mutate func(*config.Config)) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Drag.Timeout = 0
	if mutate != nil {
		mutate(cfg)
	}
	m, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease}
}

func mustWindow(t *testing.T, m *Model, id string) desktop.Window {
	t.Helper()
	w, ok := m.Desktop().Window(id)
	if !ok {
		t.Fatalf("expected window %q to be open", id)
	}
	return w
}

// cellOf returns the screen cell of a window's top-left corner.
func cellOf(t *testing.T, m *Model, id string) desktop.Position {
	t.Helper()
	return m.drawnAt(mustWindow(t, m, id))
}

// cells converts a cell delta into desktop units.
func cells(m *Model, dx, dy int) desktop.Position {
	return desktop.Position{X: dx * m.cfg.Cell.Width, Y: dy * m.cfg.Cell.Height}
}

func TestToolKeys_ToggleCycle(t *testing.T) {
	m := newTestModel(t)

	m.Update(runes("1"))
	w := mustWindow(t, m, "clock")
	if w.Minimized || m.Desktop().ActiveID() != "clock" {
		t.Fatalf("expected clock open and active, got %+v active=%q", w, m.Desktop().ActiveID())
	}
	if _, ok := w.Content.(*widgets.Clock); !ok {
		t.Fatalf("expected clock widget content, got %T", w.Content)
	}

	m.Update(runes("1"))
	if w := mustWindow(t, m, "clock"); !w.Minimized {
		t.Fatalf("expected second toggle to minimize")
	}
	if got := m.Desktop().ActiveID(); got != "" {
		t.Fatalf("expected no active window, got %q", got)
	}

	m.Update(runes("1"))
	if w := mustWindow(t, m, "clock"); w.Minimized {
		t.Fatalf("expected third toggle to restore")
	}
	if got := m.Desktop().ActiveID(); got != "clock" {
		t.Fatalf("expected clock active after restore, got %q", got)
	}
}

func TestToolKeys_OutOfRangeIgnored(t *testing.T) {
	m := newTestModel(t)
	if got := m.keys.Tools.Help().Key; got != "1-5" {
		t.Fatalf("expected tool help 1-5, got %q", got)
	}
	for _, k := range []string{"6", "9"} {
		m.Update(runes(k))
	}
	if n := len(m.Desktop().Snapshot().Windows); n != 0 {
		t.Fatalf("expected no windows, got %d", n)
	}
}

func TestMouse_DragTitleBarCommitsOnRelease(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("1"))
	origin := mustWindow(t, m, "clock").Position
	at := cellOf(t, m, "clock")

	m.Update(press(at.X+5, at.Y))
	if !m.drag.Active() {
		t.Fatalf("expected press on title bar to start a drag")
	}
	m.Update(motion(at.X+15, at.Y+4))
	if got := mustWindow(t, m, "clock").Position; got != origin {
		t.Fatalf("expected committed position unchanged mid-drag, got %+v", got)
	}
	if p, ok := m.drag.Candidate("clock"); !ok || p != origin.Add(cells(m, 10, 4)) {
		t.Fatalf("expected candidate to follow pointer, got %+v ok=%v", p, ok)
	}
	if got := cellOf(t, m, "clock"); got != (desktop.Position{X: at.X + 10, Y: at.Y + 4}) {
		t.Fatalf("expected window drawn under the pointer, got %+v", got)
	}

	m.Update(release(at.X+25, at.Y+6))
	if m.drag.Active() {
		t.Fatalf("expected release to end the drag")
	}
	want := origin.Add(cells(m, 20, 6))
	if got := mustWindow(t, m, "clock").Position; got != want {
		t.Fatalf("expected position %+v, got %+v", want, got)
	}
}

func TestMouse_TitleBarControls(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("1"))
	at := cellOf(t, m, "clock")
	ww := m.cfg.Window.Width

	m.Update(press(at.X+ww-6, at.Y))
	if w := mustWindow(t, m, "clock"); !w.Minimized {
		t.Fatalf("expected minimize control to minimize")
	}
	if m.drag.Active() {
		t.Fatalf("expected controls not to start a drag")
	}

	m.Update(runes("1"))
	m.Update(press(at.X+ww-3, at.Y))
	if _, ok := m.Desktop().Window("clock"); ok {
		t.Fatalf("expected close control to close the window")
	}
}

func TestMouse_BodyPressFocusesWithoutDrag(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("1"))
	m.Update(runes("2"))
	clock := cellOf(t, m, "clock")
	todo := cellOf(t, m, "todo")
	if clock == todo {
		t.Fatalf("expected cascaded windows at different positions")
	}

	// Inside clock, outside todo.
	m.Update(press(clock.X+1, clock.Y+2))
	if got := m.Desktop().ActiveID(); got != "clock" {
		t.Fatalf("expected body press to focus clock, got %q", got)
	}
	if m.drag.Active() {
		t.Fatalf("expected body press not to start a drag")
	}
}

func TestMouse_SecondaryButtonOnHandleFocusesOnly(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("1"))
	m.Update(runes("2"))
	clock := cellOf(t, m, "clock")

	m.Update(tea.MouseMsg{X: clock.X + 2, Y: clock.Y, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
	if m.drag.Active() {
		t.Fatalf("expected secondary button not to start a drag")
	}
	if got := m.Desktop().ActiveID(); got != "clock" {
		t.Fatalf("expected clock focused, got %q", got)
	}
}

func TestMouse_PressWhileDraggingEndsStaleSession(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("1"))
	origin := mustWindow(t, m, "clock").Position
	at := cellOf(t, m, "clock")

	m.Update(press(at.X+2, at.Y))
	m.Update(motion(at.X+5, at.Y+3))
	// Release happened outside the terminal; the next press arrives first.
	m.Update(press(90, 30))

	if m.drag.Active() {
		t.Fatalf("expected stale session to end")
	}
	want := origin.Add(cells(m, 3, 3))
	if got := mustWindow(t, m, "clock").Position; got != want {
		t.Fatalf("expected stuck drag committed at %+v, got %+v", want, got)
	}
}

func TestBlur_EndsDrag(t *testing.T) {
	m := newTestModelWith(t, func(c *config.Config) { c.Drag.OnStuck = "discard" })
	m.Update(runes("1"))
	origin := mustWindow(t, m, "clock").Position
	at := cellOf(t, m, "clock")

	m.Update(press(at.X+2, at.Y))
	m.Update(motion(at.X+12, at.Y+2))
	m.Update(tea.BlurMsg{})

	if m.drag.Active() {
		t.Fatalf("expected blur to end the drag")
	}
	if got := mustWindow(t, m, "clock").Position; got != origin {
		t.Fatalf("expected discard policy to keep %+v, got %+v", origin, got)
	}
}

func TestKeys_MinimizeCloseAndCycle(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("1"))
	m.Update(runes("3"))

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.Desktop().ActiveID(); got != "clock" {
		t.Fatalf("expected tab to raise clock, got %q", got)
	}

	m.Update(runes("m"))
	if w := mustWindow(t, m, "clock"); !w.Minimized {
		t.Fatalf("expected m to minimize the active window")
	}
	if got := m.Desktop().ActiveID(); got != "timer" {
		t.Fatalf("expected timer active after minimize, got %q", got)
	}

	m.Update(runes("x"))
	if _, ok := m.Desktop().Window("timer"); ok {
		t.Fatalf("expected x to close the active window")
	}
}

func TestKeys_EditingWidgetCapturesKeys(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("2"))
	todo, ok := mustWindow(t, m, "todo").Content.(*widgets.Todo)
	if !ok {
		t.Fatalf("expected todo widget")
	}

	m.Update(runes("a"))
	for _, r := range "q1x" {
		if _, cmd := m.Update(runes(string(r))); cmd != nil {
			t.Fatalf("expected no command while editing, key %q", r)
		}
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	items := todo.Items()
	if len(items) != 1 || items[0].Text != "q1x" {
		t.Fatalf("expected one item %q, got %+v", "q1x", items)
	}
	if len(m.Desktop().Snapshot().Windows) != 1 {
		t.Fatalf("expected typed digits not to open tools")
	}
}

func TestKeys_Quit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestView_ShowsWindowsAndLauncher(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("2"))

	out := m.View()
	if !strings.Contains(out, "To-Do") {
		t.Fatalf("expected window title in view")
	}
	if !strings.Contains(out, "Wallpaper") {
		t.Fatalf("expected launcher entries in view")
	}
	if !strings.Contains(out, controlsLabel) {
		t.Fatalf("expected window controls in view")
	}
}

func TestHitTest_PrefersTopmostWindow(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("1"))
	m.Update(runes("2"))
	todo := cellOf(t, m, "todo")
	inside := desktop.Position{X: todo.X + 1, Y: todo.Y + 1}

	h, ok := m.hitTest(inside)
	if !ok || h.id != "todo" {
		t.Fatalf("expected todo on top, got %+v ok=%v", h, ok)
	}
	m.Update(runes("2")) // minimize todo
	if h, ok := m.hitTest(inside); !ok || h.id != "clock" {
		t.Fatalf("expected minimized todo to be skipped, got %+v ok=%v", h, ok)
	}
}

func TestCascade_TitleBarsReachableOnSmallTerminal(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	ids := []string{"clock", "todo", "timer"}
	for i, id := range ids {
		m.Update(runes(string(rune('1' + i))))
		step := 20 * (i + 1)
		if got := mustWindow(t, m, id).Position; got != (desktop.Position{X: step, Y: step}) {
			t.Fatalf("expected %s at (%d,%d), got %+v", id, step, step, got)
		}
	}

	for _, id := range ids {
		at := cellOf(t, m, id)
		if at.Y < 0 || at.Y >= m.desktopRows() {
			t.Fatalf("expected %s title row on screen, got %+v (rows=%d)", id, at, m.desktopRows())
		}
		h, ok := m.hitTest(desktop.Position{X: at.X + 1, Y: at.Y})
		if !ok || h.id != id || h.region != drag.RegionHandle {
			t.Fatalf("expected %s title bar grabbable at %+v, got %+v ok=%v", id, at, h, ok)
		}
	}
}

func TestDrag_OffScreenWindowPulledBackIntoReach(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(runes("1"))
	m.Desktop().Reposition("clock", 2000, 2000)

	at := cellOf(t, m, "clock")
	want := desktop.Position{X: 80 - minGrip, Y: m.desktopRows() - 1}
	if at != want {
		t.Fatalf("expected off-screen window drawn at %+v, got %+v", want, at)
	}
	h, ok := m.hitTest(desktop.Position{X: at.X + 1, Y: at.Y})
	if !ok || h.id != "clock" || h.region != drag.RegionHandle {
		t.Fatalf("expected title bar grabbable, got %+v ok=%v", h, ok)
	}

	m.Update(press(at.X+1, at.Y))
	m.Update(motion(at.X-9, at.Y-10))
	m.Update(release(at.X-9, at.Y-10))

	if got := cellOf(t, m, "clock"); got != (desktop.Position{X: at.X - 10, Y: at.Y - 10}) {
		t.Fatalf("expected window to follow the pointer from where it was drawn, got %+v", got)
	}
	if got := mustWindow(t, m, "clock").Position; got != m.toUnits(desktop.Position{X: at.X - 10, Y: at.Y - 10}) {
		t.Fatalf("expected committed position back on screen, got %+v", got)
	}
}

// waitForZone renders until the zone manager has recorded id.
func waitForZone(t *testing.T, m *Model, id string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		m.View()
		if z := m.zones.Get(id); z != nil && !z.IsZero() {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("zone %q never recorded", id)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestMouse_LauncherBarClick(t *testing.T) {
	m := newTestModel(t)
	waitForZone(t, m, toolZoneID("clock"))
	row := m.launcherRow()

	m.Update(press(2, row))
	if w := mustWindow(t, m, "clock"); w.Minimized || m.Desktop().ActiveID() != "clock" {
		t.Fatalf("expected launcher click to open clock, got %+v", w)
	}

	m.Update(press(2, row))
	if w := mustWindow(t, m, "clock"); !w.Minimized {
		t.Fatalf("expected second launcher click to minimize clock")
	}
}
