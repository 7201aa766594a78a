package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/1broseidon/lofidesk/internal/config"
	"github.com/1broseidon/lofidesk/internal/desktop"
	"github.com/1broseidon/lofidesk/internal/drag"
	"github.com/1broseidon/lofidesk/internal/launcher"
	"github.com/1broseidon/lofidesk/internal/widgets"
)

type tickMsg time.Time

// changedMsg wakes the event loop after a change made outside Update,
// such as a drag session ended by its timeout.
type changedMsg struct{}

type dragEndedMsg drag.Result

// Model is the root bubbletea model: one desktop, one drag session owner
// and one launcher bar.
type Model struct {
	cfg       *config.Config
	desk      *desktop.Controller
	drag      *drag.Controller
	launcher  *launcher.Launcher
	wallpaper *widgets.WallpaperState
	zones     *zone.Manager
	logger    *slog.Logger

	keys keyMap
	help help.Model

	width  int
	height int
	status string

	// send delivers messages from other goroutines; nil outside a program.
	send        func(tea.Msg)
	unsubscribe func()
}

// New builds the desktop, drag controller and launcher from cfg.
func New(cfg *config.Config, logger *slog.Logger) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg = cfg.Clone()

	m := &Model{
		cfg:       cfg,
		wallpaper: &widgets.WallpaperState{},
		zones:     zone.New(),
		logger:    logger,
		keys:      defaultKeyMap(),
		help:      help.New(),
	}

	m.desk = desktop.NewController(desktop.Options{
		CascadeStep: cfg.CascadeStep,
		Logger:      logger.With("component", "desktop"),
	})
	m.drag = drag.NewController(m.desk, drag.Options{
		Timeout:   cfg.Drag.Timeout,
		OnStuck:   cfg.StuckPolicy(),
		Logger:    logger.With("component", "drag"),
		OnEnd:     m.dragEnded,
		Constrain: m.constrain,
	})

	env := widgets.Env{Now: time.Now, Wallpaper: m.wallpaper}
	tools := make([]launcher.Tool, 0, len(cfg.Tools))
	for _, tc := range cfg.Tools {
		kind := widgets.Kind(tc.Widget)
		tools = append(tools, launcher.Tool{
			ID:          tc.ID,
			DisplayName: tc.DisplayName,
			NewContent: func() any {
				r, err := widgets.New(kind, env)
				if err != nil {
					logger.Warn("widget unavailable", "widget", kind, "err", err)
					return nil
				}
				return r
			},
		})
	}
	reg, err := launcher.NewRegistry(tools...)
	if err != nil {
		return nil, err
	}
	m.launcher = launcher.New(reg, m.desk, logger.With("component", "launcher"))
	m.bindToolKeys(reg.Len())

	m.unsubscribe = m.desk.Subscribe(func(desktop.Snapshot) {
		m.notify(changedMsg{})
	})
	return m, nil
}

// bindToolKeys limits the digit bindings to the registered tools.
func (m *Model) bindToolKeys(n int) {
	n = min(n, 9)
	digits := make([]string, n)
	for i := range digits {
		digits[i] = strconv.Itoa(i + 1)
	}
	m.keys.Tools.SetKeys(digits...)
	m.keys.Tools.SetHelp(fmt.Sprintf("1-%d", n), "toggle tool")
}

// Desktop exposes the window controller.
func (m *Model) Desktop() *desktop.Controller { return m.desk }

// Close releases subscriptions and the zone manager.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.zones.Close()
}

func (m *Model) notify(msg tea.Msg) {
	if m.send == nil {
		return
	}
	// Send blocks until the event loop reads; callers may be inside Update.
	go m.send(msg)
}

func (m *Model) dragEnded(res drag.Result) {
	m.notify(dragEndedMsg(res))
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case tickMsg:
		return m, tick()
	case changedMsg:
	case dragEndedMsg:
		if msg.Reason != drag.EndRelease {
			verb := "kept"
			if !msg.Committed {
				verb = "dropped"
			}
			m.status = fmt.Sprintf("drag of %s ended (%s), position %s", msg.WindowID, msg.Reason, verb)
		}
	case tea.BlurMsg:
		m.drag.CaptureLost()
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	active := m.activeContent()

	// A widget capturing text gets every key but ctrl+c.
	if c, ok := active.(interface{ Editing() bool }); ok && c.Editing() && k != "ctrl+c" {
		if h, ok := active.(widgets.KeyHandler); ok {
			h.HandleKey(k)
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Tools):
		m.clickTool(int(k[0] - '1'))
	case key.Matches(msg, m.keys.Cycle):
		m.cycleFocus()
	case key.Matches(msg, m.keys.Minimize):
		if id := m.desk.ActiveID(); id != "" {
			m.desk.Minimize(id)
		}
	case key.Matches(msg, m.keys.Close):
		if id := m.desk.ActiveID(); id != "" {
			m.desk.Close(id)
		}
	case key.Matches(msg, m.keys.CancelDrag):
		m.drag.CaptureLost()
	default:
		if h, ok := active.(widgets.KeyHandler); ok {
			h.HandleKey(k)
		}
	}
	return nil
}

func (m *Model) activeContent() any {
	id := m.desk.ActiveID()
	if id == "" {
		return nil
	}
	w, ok := m.desk.Window(id)
	if !ok {
		return nil
	}
	return w.Content
}

func (m *Model) clickTool(i int) {
	tools := m.launcher.Registry().Tools()
	if i < 0 || i >= len(tools) {
		return
	}
	action, err := m.launcher.Click(tools[i].ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
	m.logger.Debug("tool toggled", "tool", tools[i].ID, "action", action.String())
}

// cycleFocus raises the lowest visible window, rotating through the stack.
func (m *Model) cycleFocus() {
	vis := m.desk.Snapshot().Visible()
	if len(vis) < 2 {
		return
	}
	m.desk.Focus(vis[0].ID)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	pos := desktop.Position{X: msg.X, Y: msg.Y}
	p := m.toUnits(pos)

	switch msg.Action {
	case tea.MouseActionMotion:
		m.drag.Move(p)
		return
	case tea.MouseActionRelease:
		m.drag.Release(p)
		return
	case tea.MouseActionPress:
	default:
		return
	}
	if tea.MouseEvent(msg).IsWheel() {
		return
	}

	// A press while a session is open means its release was never seen.
	if m.drag.Active() {
		m.drag.CaptureLost()
	}

	if msg.Y == m.launcherRow() {
		for _, t := range m.launcher.Registry().Tools() {
			if z := m.zones.Get(toolZoneID(t.ID)); z != nil && z.InBounds(msg) {
				if _, err := m.launcher.Click(t.ID); err != nil {
					m.status = err.Error()
				}
				return
			}
		}
		return
	}

	hit, ok := m.hitTest(pos)
	if !ok {
		return
	}
	switch hit.region {
	case drag.RegionControl:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		switch hit.control {
		case controlMinimize:
			m.desk.Minimize(hit.id)
		case controlClose:
			m.desk.Close(hit.id)
		}
	case drag.RegionHandle:
		if !m.drag.Press(hit.id, p, buttonOf(msg.Button), drag.RegionHandle) {
			m.desk.Focus(hit.id)
		}
	default:
		m.desk.Focus(hit.id)
	}
}

func buttonOf(b tea.MouseButton) drag.Button {
	switch b {
	case tea.MouseButtonLeft:
		return drag.ButtonPrimary
	case tea.MouseButtonRight:
		return drag.ButtonSecondary
	case tea.MouseButtonMiddle:
		return drag.ButtonMiddle
	default:
		return drag.ButtonOther
	}
}
