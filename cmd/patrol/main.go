// patrol simulates a guard walking a grid map and finds the single-cell
// obstructions that trap the guard in a loop.
//
// Usage:
//
//	patrol solve <map|file>   - Count reachable cells and loop-forcing obstructions
//	patrol list               - List maps and solver strategies
//	patrol history [map]      - Show recorded solver runs
//	patrol watch [map]        - Animate the guard in the terminal
//	patrol serve              - Start SSH server for remote viewing
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.patrol/config.yaml)
//	--db <path>         - Run history database
//	--log-level <lvl>   - debug, info, warn or error
//	--workers <n>       - Concurrent search workers (0 = one per CPU)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/config"
	"github.com/vovakirdan/guard-patrol/internal/maps"

	// Import solvers to register them
	_ "github.com/vovakirdan/guard-patrol/internal/solvers"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagWorkers  int
)

var (
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "patrol",
	Short: "Guard patrol - simulate a guard and find loop-forcing obstructions",
	Long: `patrol simulates a guard walking a grid map. The guard walks forward
and turns right in front of walls until it leaves the map or repeats itself.

Available commands:
  solve    - Count reachable cells and loop-forcing obstruction positions
  list     - Show available maps and solver strategies
  history  - View recorded solver runs
  watch    - Animate the guard in the terminal
  serve    - Start SSH server for remote viewing

Examples:
  patrol solve canonical
  patrol solve ./input.txt --render reach
  patrol solve canonical --strategy sequential --save
  patrol watch canonical
  patrol serve`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Concurrent search workers, 0 = one per CPU (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		loaded.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = flagLogLevel
	}
	if flags.Changed("workers") {
		loaded.Workers = flagWorkers
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "patrol",
		Level:           level,
	})
	logger.Debug("configuration loaded", "maps_dir", cfg.MapsDir, "db", cfg.DBPath, "strategy", cfg.Strategy)

	return nil
}

// newLoader returns a map loader rooted at the configured maps directory.
func newLoader() *maps.Loader {
	loader := maps.NewLoader(cfg.MapsDir)
	loader.Logger = logger
	return loader
}
