package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/1broseidon/lofidesk/internal/desktop"
	"github.com/1broseidon/lofidesk/internal/drag"
	"github.com/1broseidon/lofidesk/internal/logging"
	"github.com/1broseidon/lofidesk/internal/widgets"
)

// ToolConfig is one launcher entry.
type ToolConfig struct {
	ID          string `yaml:"id"`
	DisplayName string `yaml:"display_name"`
	// Widget selects the content rendered inside the tool's window.
	Widget string `yaml:"widget"`
}

// WindowConfig sets the size of every window in terminal cells.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CellConfig maps desktop units onto the terminal grid: one cell spans
// Width x Height units. Terminal cells are about twice as tall as wide.
type CellConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DragConfig bounds drag sessions whose release is never observed.
type DragConfig struct {
	// Timeout ends a session after this long without pointer events (0 disables).
	Timeout time.Duration `yaml:"timeout"`
	// OnStuck is "commit" or "discard".
	OnStuck string `yaml:"on_stuck"`
}

// LoggingConfig configures the log file.
type LoggingConfig struct {
	// Level controls logging verbosity: debug, info, warn, error
	Level string `yaml:"level,omitempty"`
	// File is the log file path (default: <data dir>/lofidesk.log)
	File      string `yaml:"file,omitempty"`
	MaxSizeMB int    `yaml:"max_size_mb,omitempty"`
	MaxFiles  int    `yaml:"max_files,omitempty"`
}

// Config is the effective lofidesk configuration.
type Config struct {
	CascadeStep int           `yaml:"cascade_step"`
	Window      WindowConfig  `yaml:"window"`
	Cell        CellConfig    `yaml:"cell"`
	Drag        DragConfig    `yaml:"drag"`
	Logging     LoggingConfig `yaml:"logging"`
	Tools       []ToolConfig  `yaml:"tools"`
}

const (
	DefaultWindowWidth  = 40
	DefaultWindowHeight = 12
	DefaultCellWidth    = 4
	DefaultCellHeight   = 8
	DefaultLogMaxSizeMB = 5
	DefaultLogMaxFiles  = 3
)

// DefaultTools returns the stock launcher entries.
func DefaultTools() []ToolConfig {
	return []ToolConfig{
		{ID: "clock", DisplayName: "Clock", Widget: string(widgets.KindClock)},
		{ID: "todo", DisplayName: "To-Do", Widget: string(widgets.KindTodo)},
		{ID: "timer", DisplayName: "Timer", Widget: string(widgets.KindTimer)},
		{ID: "wallpaper", DisplayName: "Wallpaper", Widget: string(widgets.KindWallpaper)},
		{ID: "about", DisplayName: "About", Widget: string(widgets.KindAbout)},
	}
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		CascadeStep: desktop.DefaultCascadeStep,
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Cell: CellConfig{
			Width:  DefaultCellWidth,
			Height: DefaultCellHeight,
		},
		Drag: DragConfig{
			Timeout: drag.DefaultTimeout,
			OnStuck: drag.StuckCommit.String(),
		},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: DefaultLogMaxSizeMB,
			MaxFiles:  DefaultLogMaxFiles,
		},
		Tools: DefaultTools(),
	}
}

// ValidationError reports the config key that failed validation.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks the configuration and reports the first invalid key.
func (c *Config) Validate() error {
	if c.CascadeStep < 1 {
		return &ValidationError{Path: "cascade_step", Err: fmt.Errorf("cascade_step must be >= 1")}
	}
	if c.Window.Width < 12 {
		return &ValidationError{Path: "window.width", Err: fmt.Errorf("window.width must be >= 12")}
	}
	if c.Window.Height < 3 {
		return &ValidationError{Path: "window.height", Err: fmt.Errorf("window.height must be >= 3")}
	}
	if c.Cell.Width < 1 {
		return &ValidationError{Path: "cell.width", Err: fmt.Errorf("cell.width must be >= 1")}
	}
	if c.Cell.Height < 1 {
		return &ValidationError{Path: "cell.height", Err: fmt.Errorf("cell.height must be >= 1")}
	}
	if c.Drag.Timeout < 0 {
		return &ValidationError{Path: "drag.timeout", Err: fmt.Errorf("drag.timeout must be >= 0")}
	}
	if _, err := drag.ParseStuckPolicy(c.Drag.OnStuck); err != nil {
		return &ValidationError{Path: "drag.on_stuck", Err: err}
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return &ValidationError{Path: "logging.level", Err: err}
	}
	if c.Logging.MaxSizeMB < 0 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("logging.max_size_mb must be >= 0")}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("logging.max_files must be >= 0")}
	}

	if len(c.Tools) == 0 {
		return &ValidationError{Path: "tools", Err: fmt.Errorf("tools must not be empty")}
	}
	seen := make(map[string]struct{}, len(c.Tools))
	for i, t := range c.Tools {
		path := fmt.Sprintf("tools[%d]", i)
		if strings.TrimSpace(t.ID) == "" {
			return &ValidationError{Path: path + ".id", Err: fmt.Errorf("id is required")}
		}
		if _, dup := seen[t.ID]; dup {
			return &ValidationError{Path: path + ".id", Err: fmt.Errorf("duplicate tool id %q", t.ID)}
		}
		seen[t.ID] = struct{}{}
		if strings.TrimSpace(t.DisplayName) == "" {
			return &ValidationError{Path: path + ".display_name", Err: fmt.Errorf("display_name is required")}
		}
		if !widgets.IsKnown(t.Widget) {
			return &ValidationError{Path: path + ".widget", Err: fmt.Errorf("unknown widget %q (expected one of: %s)", t.Widget, strings.Join(widgets.KindNames(), ", "))}
		}
	}
	return nil
}

// StuckPolicy returns the parsed drag.on_stuck value.
func (c *Config) StuckPolicy() drag.StuckPolicy {
	p, _ := drag.ParseStuckPolicy(c.Drag.OnStuck)
	return p
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Tools = append([]ToolConfig(nil), c.Tools...)
	return &out
}
