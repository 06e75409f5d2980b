// Package tui provides the Bubble Tea integration for the patrol viewer.
// It handles the animation loop, key bindings, map picking and run history.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the guard by one step.
type TickMsg struct {
	Time time.Time
	Gen  int // Generation of the tick chain that produced this message
}

// tickCmd returns a Bubble Tea command that sends a tick after one frame at
// the given rate. gen tags the chain so stale ticks can be dropped after a
// speed change or reset.
func tickCmd(fps, gen int) tea.Cmd {
	if fps < 1 {
		fps = 1
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
