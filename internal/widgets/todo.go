package widgets

import (
	"fmt"
	"strings"
	"sync"
)

// TodoItem is one entry of a to-do list.
type TodoItem struct {
	Text string
	Done bool
}

// Todo is an in-memory to-do list.
//
// Keys: a add, enter confirm, esc cancel, j/k or arrows select,
// space toggle, d delete.
type Todo struct {
	mu       sync.Mutex
	items    []TodoItem
	selected int
	editing  bool
	draft    []rune
}

// NewTodo returns an empty list.
func NewTodo() *Todo {
	return &Todo{}
}

// Items returns a copy of the list.
func (t *Todo) Items() []TodoItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]TodoItem(nil), t.items...)
}

// Add appends an item; blank text is ignored.
func (t *Todo) Add(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.addLocked(text)
}

func (t *Todo) addLocked(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	t.items = append(t.items, TodoItem{Text: text})
	t.selected = len(t.items) - 1
}

func (t *Todo) HandleKey(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.editing {
		switch key {
		case "enter":
			t.addLocked(string(t.draft))
			t.editing = false
			t.draft = nil
		case "esc":
			t.editing = false
			t.draft = nil
		case "backspace":
			if len(t.draft) > 0 {
				t.draft = t.draft[:len(t.draft)-1]
			}
		case "space":
			t.draft = append(t.draft, ' ')
		default:
			r := []rune(key)
			if len(r) != 1 {
				return false
			}
			t.draft = append(t.draft, r[0])
		}
		return true
	}

	switch key {
	case "a":
		t.editing = true
		t.draft = nil
	case "j", "down":
		if t.selected < len(t.items)-1 {
			t.selected++
		}
	case "k", "up":
		if t.selected > 0 {
			t.selected--
		}
	case "space", " ":
		if t.selected < len(t.items) {
			t.items[t.selected].Done = !t.items[t.selected].Done
		}
	case "d":
		if t.selected < len(t.items) {
			t.items = append(t.items[:t.selected], t.items[t.selected+1:]...)
			if t.selected > 0 && t.selected >= len(t.items) {
				t.selected--
			}
		}
	default:
		return false
	}
	return true
}

// Editing reports whether the list is capturing text input.
func (t *Todo) Editing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.editing
}

func (t *Todo) Render(width, height int) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var lines []string
	if len(t.items) == 0 && !t.editing {
		lines = append(lines, "Nothing to do. Press a to add.")
	}
	for i, it := range t.items {
		cursor := " "
		if i == t.selected {
			cursor = ">"
		}
		box := "[ ]"
		if it.Done {
			box = "[x]"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", cursor, box, it.Text))
	}
	if t.editing {
		lines = append(lines, "+ "+string(t.draft)+"_")
	}
	// Keep the cursor line visible when the list overflows.
	if height > 0 && len(lines) > height && t.selected >= height {
		lines = lines[t.selected-height+1:]
	}
	return fit(lines, width, height)
}
