package desktop

// store holds the authoritative window state. It is not safe for concurrent
// use; Controller serializes access.
type store struct {
	windows  []*Window
	zCounter int
	activeID string
}

func (s *store) index(id string) int {
	for i, w := range s.windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}

func (s *store) find(id string) *Window {
	if i := s.index(id); i >= 0 {
		return s.windows[i]
	}
	return nil
}

func (s *store) nextZ() int {
	s.zCounter++
	return s.zCounter
}

// bringToFront raises w, restores it, moves it to the tail of the render
// order and makes it active.
func (s *store) bringToFront(w *Window) {
	w.ZIndex = s.nextZ()
	w.Minimized = false

	i := s.index(w.ID)
	copy(s.windows[i:], s.windows[i+1:])
	s.windows[len(s.windows)-1] = w

	s.activeID = w.ID
}

// recomputeActive reassigns activation after id was closed or minimized.
// A non-active id leaves activation untouched.
func (s *store) recomputeActive(id string) {
	if s.activeID != id {
		return
	}
	s.activeID = ""
	top := 0
	for _, w := range s.windows {
		if w.Minimized {
			continue
		}
		if s.activeID == "" || w.ZIndex > top {
			s.activeID = w.ID
			top = w.ZIndex
		}
	}
}

func (s *store) remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	copy(s.windows[i:], s.windows[i+1:])
	s.windows[len(s.windows)-1] = nil
	s.windows = s.windows[:len(s.windows)-1]
	return true
}

func (s *store) snapshot() Snapshot {
	snap := Snapshot{
		Windows:  make([]Window, len(s.windows)),
		ZCounter: s.zCounter,
		ActiveID: s.activeID,
	}
	for i, w := range s.windows {
		snap.Windows[i] = *w
	}
	return snap
}
