package widgets

import (
	"fmt"
	"sync"
)

// Wallpaper is a desktop backdrop.
type Wallpaper struct {
	Name    string
	Pattern rune
	// Color is an ANSI 256 color index.
	Color string
}

// Wallpapers lists the built-in backdrops.
var Wallpapers = []Wallpaper{
	{Name: "lofi night", Pattern: '·', Color: "61"},
	{Name: "rain", Pattern: '╎', Color: "67"},
	{Name: "meadow", Pattern: '‿', Color: "71"},
	{Name: "plain", Pattern: ' ', Color: "236"},
}

// WallpaperState is the session's current backdrop, shared between the
// picker widget and the shell that paints it. It is not persisted.
type WallpaperState struct {
	mu    sync.Mutex
	index int
}

// Current returns the selected wallpaper.
func (s *WallpaperState) Current() Wallpaper {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Wallpapers[s.index]
}

// Index returns the selected position in Wallpapers.
func (s *WallpaperState) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Step moves the selection by delta, wrapping around.
func (s *WallpaperState) Step(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(Wallpapers)
	s.index = ((s.index+delta)%n + n) % n
}

// WallpaperPicker selects the backdrop. Keys: j/k or arrows.
type WallpaperPicker struct {
	state *WallpaperState
}

func (p *WallpaperPicker) HandleKey(key string) bool {
	switch key {
	case "j", "down":
		p.state.Step(1)
	case "k", "up":
		p.state.Step(-1)
	default:
		return false
	}
	return true
}

func (p *WallpaperPicker) Render(width, height int) []string {
	current := p.state.Index()
	lines := make([]string, 0, len(Wallpapers)+1)
	for i, w := range Wallpapers {
		mark := "( )"
		if i == current {
			mark = "(o)"
		}
		lines = append(lines, fmt.Sprintf("%s %c %s", mark, w.Pattern, w.Name))
	}
	return fit(lines, width, height)
}
