package tui

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/lofidesk/internal/config"
)

// Run starts the desktop in the alternate screen and blocks until quit.
func Run(cfg *config.Config, logger *slog.Logger) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("lofidesk requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	m, err := New(cfg, logger)
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	m.send = p.Send

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("desktop exited: %w", err)
	}
	return nil
}
