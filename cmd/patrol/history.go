package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/guard-patrol/internal/platform/tui"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagClear       bool
)

var historyCmd = &cobra.Command{
	Use:   "history [map]",
	Short: "Show recorded solver runs",
	Long: `Display recorded solver runs, newest first. Runs are recorded with
'patrol solve --save'.

Examples:
  patrol history
  patrol history canonical --limit 20
  patrol history --interactive
  patrol history canonical --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Maximum number of runs to show")
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs in an interactive table")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs for the map")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	mapID := ""
	if len(args) == 1 {
		mapID = args[0]
	}

	if flagClear {
		if mapID == "" {
			return fmt.Errorf("--clear needs a map ID")
		}
		n, err := store.DeleteRuns(mapID)
		if err != nil {
			return err
		}
		logger.Info("runs deleted", "map", mapID, "count", n)
		return nil
	}

	if flagInteractive {
		ids, err := newLoader().ListIDs()
		if err != nil {
			logger.Warn("could not list maps", "error", err)
		}
		width, height := 100, 30
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		return tui.RunRuns(store, ids, width, height)
	}

	var runs []storage.Run
	if mapID == "" {
		runs, err = store.AllRuns(flagLimit)
	} else {
		runs, err = store.RecentRuns(mapID, flagLimit)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	title := "all maps"
	if mapID != "" {
		title = mapID
	}
	fmt.Fprintf(out, "Run history - %s\n", title)
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'patrol solve <map> --save' to record one.")
		return nil
	}

	fmt.Fprintf(out, "  %-12s  %-10s  %-5s  %-5s  %-3s  %-12s  %s\n", "Map", "Strategy", "Reach", "Loops", "Wk", "Time", "Date")
	fmt.Fprintf(out, "  %-12s  %-10s  %-5s  %-5s  %-3s  %-12s  %s\n", "---", "--------", "-----", "-----", "--", "----", "----")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-12s  %-10s  %-5d  %-5d  %-3d  %-12v  %s\n",
			r.MapID, r.Strategy, r.Reachable, r.Loops, r.Workers, r.Duration,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	if mapID != "" {
		stats, err := store.Stats(mapID)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Runs: %d  Fastest: %v  Average: %v\n", stats.Runs, stats.Fastest, stats.Average)
	}
	return nil
}
