package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/1broseidon/lofidesk/internal/config"
)

func runConfigInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", pathUsage)
	force := fs.Bool("force", false, "Overwrite an existing config file")
	all := fs.Bool("all", false, "Include every built-in tool without prompting")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	target := *path
	if target == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		target = p
	}

	cfg := config.DefaultConfig()
	if !*all && term.IsTerminal(int(os.Stdin.Fd())) {
		tools, err := pickTools(cfg.Tools)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(os.Stderr, "config init: aborted")
				return 1
			}
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		cfg.Tools = tools
	}

	if err := config.WriteFile(target, cfg, *force); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("config: wrote %s\n", target)
	return 0
}

// pickTools asks which built-in tools the launcher should show.
func pickTools(available []config.ToolConfig) ([]config.ToolConfig, error) {
	opts := make([]huh.Option[string], 0, len(available))
	selected := make([]string, 0, len(available))
	for _, t := range available {
		opts = append(opts, huh.NewOption(t.DisplayName, t.ID).Selected(true))
		selected = append(selected, t.ID)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Launcher tools").
				Description("Space toggles, enter confirms").
				Options(opts...).
				Validate(func(ids []string) error {
					if len(ids) == 0 {
						return fmt.Errorf("pick at least one tool")
					}
					return nil
				}).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}

	keep := make(map[string]bool, len(selected))
	for _, id := range selected {
		keep[id] = true
	}
	out := make([]config.ToolConfig, 0, len(selected))
	for _, t := range available {
		if keep[t.ID] {
			out = append(out, t)
		}
	}
	return out, nil
}
