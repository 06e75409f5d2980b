package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/guard-patrol/internal/platform/tui"
)

var (
	flagFPS   int
	flagTheme string
)

var watchCmd = &cobra.Command{
	Use:   "watch [map|file]",
	Short: "Animate the guard in the terminal",
	Long: `Animate the guard walking a map step by step. Without an argument, a
picker lists the maps in the maps directory.

Controls:
  Space/P    - Pause / resume
  N/Right    - Single step (pauses)
  +/-        - Faster / slower
  R          - Restart the patrol
  ?          - Toggle full help
  Esc/B      - Back to the map list
  Q/Ctrl+C   - Quit

Examples:
  patrol watch
  patrol watch canonical
  patrol watch ./input.txt --fps 60 --theme neon`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&flagFPS, "fps", 0, "Steps per second (default from config)")
	watchCmd.Flags().StringVar(&flagTheme, "theme", "", "Theme: default, neon, mono (default from config)")
}

func runWatch(_ *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("watch needs an interactive terminal")
	}

	opts := watchOptions()

	if len(args) == 1 {
		m, err := newLoader().Resolve(args[0])
		if err != nil {
			return err
		}
		g, err := m.ToGrid()
		if err != nil {
			return err
		}
		opts.Title = m.Title()
		return tui.RunWatch(g, opts)
	}

	all, err := newLoader().LoadAll()
	if err != nil {
		return err
	}
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}
	return tui.RunSession(all, opts, width, height)
}

// watchOptions builds viewer options from config and flags.
func watchOptions() tui.WatchOptions {
	fps := cfg.Watch.FPS
	if flagFPS > 0 {
		fps = flagFPS
	}
	theme := cfg.Watch.Theme
	if flagTheme != "" {
		theme = flagTheme
	}
	return tui.WatchOptions{
		FPS:   fps,
		Theme: tui.ThemeByName(theme),
	}
}
