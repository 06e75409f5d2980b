package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available maps and solver strategies",
	Long:  `Shows the maps found in the maps directory and the registered solver strategies.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	all, err := newLoader().LoadAll()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Fprintf(out, "No maps found in %s.\n", cfg.MapsDir)
	} else {
		fmt.Fprintln(out, "Available maps:")
		fmt.Fprintln(out)

		// Calculate column widths
		maxIDLen := 2 // "ID" header
		for _, m := range all {
			if len(m.ID) > maxIDLen {
				maxIDLen = len(m.ID)
			}
		}

		fmt.Fprintf(out, "  %-*s  %-7s  %s\n", maxIDLen, "ID", "Size", "Title")
		fmt.Fprintf(out, "  %-*s  %-7s  %s\n", maxIDLen, "--", "----", "-----")
		for _, m := range all {
			size := "?"
			if g, err := m.ToGrid(); err == nil {
				size = fmt.Sprintf("%dx%d", g.W, g.H)
			}
			fmt.Fprintf(out, "  %-*s  %-7s  %s\n", maxIDLen, m.ID, size, m.Title())
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Strategies:")
	fmt.Fprintln(out)
	for _, s := range registry.List() {
		marker := " "
		if s.ID == cfg.Strategy {
			marker = "*"
		}
		fmt.Fprintf(out, " %s %-12s  %s\n", marker, s.ID, s.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'patrol solve <id>' to solve a map.")
	return nil
}
