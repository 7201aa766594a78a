package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/1broseidon/lofidesk/internal/config"
	"github.com/1broseidon/lofidesk/internal/datapath"
	"github.com/1broseidon/lofidesk/internal/logging"
	"github.com/1broseidon/lofidesk/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(runDesktop(nil))
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runDesktop(os.Args[2:]))
	case "tools":
		os.Exit(runTools(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lofidesk [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Open the desktop (default)")
	fmt.Fprintln(w, "  tools               List launcher tools")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config init         Write a starter configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'lofidesk <command> --help' for command-specific options.")
}

const pathUsage = "Config file path (default: ~/.config/lofidesk/config.yaml)"

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func runDesktop(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", pathUsage)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: lofidesk run [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  1-9       Toggle launcher tool (open, minimize, restore)")
		fmt.Fprintln(os.Stderr, "  Tab       Raise the next window")
		fmt.Fprintln(os.Stderr, "  m / x     Minimize / close the active window")
		fmt.Fprintln(os.Stderr, "  Esc       Drop a drag in progress")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C Quit")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Drag a window by its title bar with the left mouse button.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config

	logger, closer, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closer.Close()
	logger.Info("lofidesk starting", "config", res.Path, "config_exists", res.Exists, "tools", len(cfg.Tools))

	if err := tui.Run(cfg, logger); err != nil {
		logger.Error("desktop failed", "err", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.Info("lofidesk stopped")
	return 0
}

// newLogger writes to logging.file, or to the default log path in the data
// directory. The terminal belongs to the desktop, so nothing goes to stderr.
func newLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	file := cfg.Logging.File
	if file == "" {
		p, err := datapath.LogPath()
		if err != nil {
			return nil, nil, err
		}
		file = p
	}
	return logging.New(logging.Options{
		Level:     cfg.Logging.Level,
		FilePath:  file,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
}

func runTools(args []string) int {
	fs := flag.NewFlagSet("tools", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", pathUsage)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for i, t := range res.Config.Tools {
		fmt.Printf("%d  %-12s %-16s %s\n", i+1, t.ID, t.DisplayName, t.Widget)
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  lofidesk config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  lofidesk config print [--path PATH] [--defaults]")
		fmt.Fprintln(os.Stderr, "  lofidesk config init [--path PATH] [--force] [--all]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", pathUsage)
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if !res.Exists {
			fmt.Printf("config: %s not found, using defaults\n", res.Path)
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", pathUsage)
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			cfg = res.Config
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	case "init":
		return runConfigInit(args[1:])

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}
