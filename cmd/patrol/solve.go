package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/guard-patrol/internal/maps"
	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/platform/tui"
	"github.com/vovakirdan/guard-patrol/internal/registry"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

// Render modes for solve --render.
const (
	renderNone         = "none"
	renderReach        = "reach"
	renderObstructions = "obstructions"
)

var (
	flagStrategy string
	flagRender   string
	flagSave     bool
	flagCheck    bool
)

// errCheckFailed is returned when --check finds a mismatch.
var errCheckFailed = errors.New("solver answers differ from the map's expectations")

var solveCmd = &cobra.Command{
	Use:   "solve <map|file|->",
	Short: "Count reachable cells and loop-forcing obstructions",
	Long: `Solve a map: count the distinct cells the guard visits before leaving,
and the empty cells where a single obstruction traps the guard in a loop.

The argument is a map ID from the maps directory, a path to a map file
(.yaml, .yml or plain text), or - to read a plain text map from stdin.

Render options:
  none          - Print the counts only
  reach         - Draw the map with reached cells as X
  obstructions  - Draw the map with loop-forcing positions as O

Examples:
  patrol solve canonical
  patrol solve ./input.txt --strategy sequential
  patrol solve canonical --render obstructions
  cat input.txt | patrol solve -
  patrol solve canonical --check --save`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Solver strategy (default from config)")
	solveCmd.Flags().StringVar(&flagRender, "render", renderNone, "Render mode: none, reach, obstructions")
	solveCmd.Flags().BoolVar(&flagSave, "save", false, "Record the run in the history database")
	solveCmd.Flags().BoolVar(&flagCheck, "check", false, "Fail if answers differ from the map's expectations")
}

func runSolve(cmd *cobra.Command, args []string) error {
	switch flagRender {
	case renderNone, renderReach, renderObstructions:
	default:
		return fmt.Errorf("unknown render mode %q", flagRender)
	}

	strategy := cfg.Strategy
	if flagStrategy != "" {
		strategy = flagStrategy
	}
	solver, err := registry.Create(strategy)
	if err != nil {
		return fmt.Errorf("%w (run 'patrol list' to see strategies)", err)
	}

	m, err := resolveMap(args[0])
	if err != nil {
		return err
	}
	g, err := m.ToGrid()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("solving", "map", m.ID, "size", fmt.Sprintf("%dx%d", g.W, g.H), "strategy", solver.ID())
	result, err := solver.Solve(ctx, g, cfg.Workers)
	if err != nil {
		return fmt.Errorf("solving %s: %w", m.ID, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Map:        %s (%dx%d)\n", m.Title(), g.W, g.H)
	fmt.Fprintf(out, "Strategy:   %s (%d workers)\n", solver.Title(), result.Workers)
	fmt.Fprintf(out, "Reachable:  %d\n", result.Reachable)
	fmt.Fprintf(out, "Loops:      %d\n", result.Loops())
	fmt.Fprintf(out, "Time:       %v\n", result.Duration)
	if result.Looped {
		logger.Warn("guard already loops on the unmodified map", "map", m.ID)
	}

	if err := renderSolution(out, g, result); err != nil {
		return err
	}

	if flagSave {
		saveRun(m, g, solver.ID(), result)
	}

	if flagCheck {
		return checkRun(out, m, result)
	}
	return nil
}

// resolveMap loads a map by ID or path, or from stdin for "-".
func resolveMap(arg string) (maps.Map, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return maps.Map{}, fmt.Errorf("reading stdin: %w", err)
		}
		return maps.Map{ID: "stdin", Grid: string(data)}, nil
	}
	return newLoader().Resolve(arg)
}

// renderSolution draws the map in the selected mode, colorized when stdout
// is a terminal.
func renderSolution(out io.Writer, g *patrol.Grid, result registry.Result) error {
	var plain string
	switch flagRender {
	case renderReach:
		start, err := g.Start()
		if err != nil {
			return err
		}
		plain = patrol.RenderReachable(g, patrol.ScanReachable(g, start))
	case renderObstructions:
		plain = patrol.RenderObstructions(g, result.Positions)
	default:
		return nil
	}

	fmt.Fprintln(out)
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		plain = tui.Colorize(plain, tui.ThemeByName(cfg.Watch.Theme))
	}
	fmt.Fprint(out, plain)
	return nil
}

// saveRun records the run. Failures are logged, not fatal.
func saveRun(m maps.Map, g *patrol.Grid, strategy string, result registry.Result) {
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run history", "db", cfg.DBPath, "error", err)
		return
	}
	defer store.Close()

	run, err := store.SaveRun(storage.Run{
		MapID:     m.ID,
		Strategy:  strategy,
		Width:     g.W,
		Height:    g.H,
		Reachable: result.Reachable,
		Loops:     result.Loops(),
		Workers:   result.Workers,
		Duration:  result.Duration,
	})
	if err != nil {
		logger.Warn("could not save run", "error", err)
		return
	}
	logger.Info("run saved", "id", run.ID, "map", run.MapID)
}

// checkRun compares the result with the map's recorded expectations.
func checkRun(out io.Writer, m maps.Map, result registry.Result) error {
	if m.Expect == nil {
		logger.Warn("map has no expectations to check", "map", m.ID)
		return nil
	}

	mismatches := m.Check(result.Reachable, result.Loops())
	if len(mismatches) == 0 {
		fmt.Fprintln(out, "Check:      ok")
		return nil
	}

	lines := make([]string, len(mismatches))
	for i, mm := range mismatches {
		lines[i] = mm.String()
	}
	fmt.Fprintf(out, "Check:      FAILED (%s)\n", strings.Join(lines, "; "))
	return errCheckFailed
}
