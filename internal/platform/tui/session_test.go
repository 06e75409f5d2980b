package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/guard-patrol/internal/maps"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T, want SessionModel", next)
	}
	return sm, cmd
}

func testMaps() []maps.Map {
	return []maps.Map{
		{ID: "corridor", Grid: corridorMap},
		{ID: "nostart", Name: "No Start", Grid: "...\n..."},
		{ID: "square", Name: "Square", Grid: loopMap},
	}
}

func TestSessionPickAndWatch(t *testing.T) {
	m := NewSessionModel(testMaps(), WatchOptions{FPS: 10, Theme: MonoTheme()}, 80, 24)

	if !strings.Contains(m.View(), "corridor") {
		t.Error("Picker should list map IDs")
	}

	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Watching() {
		t.Fatal("Expected viewer after enter")
	}
	if cmd == nil {
		t.Error("Viewer should start ticking")
	}

	// Back returns to the picker instead of quitting
	m, cmd = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Watching() {
		t.Error("Expected picker after back")
	}
	if cmd != nil {
		t.Error("Back should not quit the session")
	}

	m, cmd = sessionUpdate(t, m, runeKey("q"))
	if cmd == nil || m.View() != "" {
		t.Error("Expected quit from picker")
	}
}

func TestSessionRejectsMapWithoutStart(t *testing.T) {
	m := NewSessionModel(testMaps(), WatchOptions{FPS: 10, Theme: MonoTheme()}, 80, 24)

	m, _ = sessionUpdate(t, m, runeKey("j"))
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Watching() {
		t.Fatal("Map without a start should not open the viewer")
	}
	if !strings.Contains(m.View(), "start") {
		t.Errorf("Expected start error in picker view:\n%s", m.View())
	}

	// The picker stays usable
	m, _ = sessionUpdate(t, m, runeKey("j"))
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Watching() {
		t.Error("Expected viewer for the next map")
	}
}

func TestPickerCursorBounds(t *testing.T) {
	m := NewPickerModel(testMaps(), MonoTheme(), 80, 24)

	next, _ := m.Update(runeKey("k"))
	m = next.(PickerModel)
	if m.cursor != 0 {
		t.Errorf("Cursor should stay at 0, got %d", m.cursor)
	}

	for i := 0; i < 5; i++ {
		next, _ = m.Update(runeKey("j"))
		m = next.(PickerModel)
	}
	if m.cursor != 2 {
		t.Errorf("Cursor should stop at last map, got %d", m.cursor)
	}
}

func TestPickerEmpty(t *testing.T) {
	m := NewPickerModel(nil, MonoTheme(), 80, 24)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(PickerModel)
	if m.Selected() != nil {
		t.Error("Empty picker cannot select")
	}
	if !strings.Contains(m.View(), "No maps found") {
		t.Error("Expected empty message")
	}
}

func TestRunsModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(storage.Run{MapID: "canonical", Strategy: "sequential", Reachable: 41, Loops: 6, Workers: 1, Duration: time.Millisecond})
	store.SaveRun(storage.Run{MapID: "square", Strategy: "concurrent", Reachable: 4, Workers: 4, Duration: time.Millisecond})

	m := NewRunsModel(store, []string{"canonical", "square"}, 100, 30)
	if m.currentMap() != AllMaps {
		t.Errorf("Expected %q first, got %q", AllMaps, m.currentMap())
	}
	if len(m.Runs()) != 2 {
		t.Errorf("Expected 2 runs across maps, got %d", len(m.Runs()))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RunsModel)
	if m.currentMap() != "canonical" {
		t.Errorf("Expected canonical, got %q", m.currentMap())
	}
	if len(m.Runs()) != 1 || m.Runs()[0].Loops != 6 {
		t.Errorf("Unexpected canonical runs: %+v", m.Runs())
	}
	if m.stats == nil || m.stats.Runs != 1 {
		t.Errorf("Expected stats for canonical, got %+v", m.stats)
	}

	// Wraps backwards
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(RunsModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(RunsModel)
	if m.currentMap() != "square" {
		t.Errorf("Expected square after wrapping, got %q", m.currentMap())
	}

	if !strings.Contains(m.View(), "RUN HISTORY") {
		t.Error("Expected title in view")
	}
}

func TestRunsModelWithoutStore(t *testing.T) {
	m := NewRunsModel(nil, nil, 60, 20)
	if len(m.Runs()) != 0 {
		t.Error("Expected no runs without a store")
	}
	if !strings.Contains(m.View(), "No runs recorded") {
		t.Error("Expected empty message")
	}
}

func TestColorizeKeepsGlyphs(t *testing.T) {
	plain := "..#\n.X^\n"
	out := Colorize(plain, MonoTheme())
	for _, r := range "#X^" {
		if !strings.ContainsRune(out, r) {
			t.Errorf("Colorize dropped %q: %q", r, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Colorize should keep the trailing newline")
	}
}

func TestThemeByName(t *testing.T) {
	for _, name := range []string{"default", "neon", "mono", "unknown"} {
		theme := ThemeByName(name)
		if theme.Guard.Render("^") == "" {
			t.Errorf("Theme %q renders nothing", name)
		}
	}
}
