package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// fixedClock returns a clock that advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Second)
		return now
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and parent directory were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	store.now = fixedClock(time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC))

	saved, err := store.SaveRun(Run{
		MapID:     "canonical",
		Strategy:  "sequential",
		Width:     10,
		Height:    10,
		Reachable: 41,
		Loops:     6,
		Workers:   1,
		Duration:  1500 * time.Microsecond,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if saved.ID == uuid.Nil {
		t.Error("SaveRun() should assign an ID")
	}

	_, err = store.SaveRun(Run{MapID: "canonical", Strategy: "concurrent", Width: 10, Height: 10, Reachable: 41, Loops: 6, Workers: 4, Duration: time.Millisecond})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	// Different map
	_, err = store.SaveRun(Run{MapID: "square", Strategy: "sequential", Width: 4, Height: 4, Reachable: 4, Workers: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns("canonical", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}

	// Newest first
	if runs[0].Strategy != "concurrent" || runs[1].Strategy != "sequential" {
		t.Errorf("Expected concurrent then sequential, got %s then %s", runs[0].Strategy, runs[1].Strategy)
	}

	got := runs[1]
	if got.ID != saved.ID {
		t.Errorf("Expected ID %s, got %s", saved.ID, got.ID)
	}
	if got.Reachable != 41 || got.Loops != 6 || got.Width != 10 || got.Height != 10 {
		t.Errorf("Unexpected run fields: %+v", got)
	}
	if got.Duration != 1500*time.Microsecond {
		t.Errorf("Expected duration 1.5ms, got %v", got.Duration)
	}
	if !got.CreatedAt.Equal(time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected CreatedAt %v", got.CreatedAt)
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)
	store.now = fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(Run{MapID: "m", Strategy: "sequential", Loops: i}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns("m", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].Loops != 4 {
		t.Errorf("Expected newest run first, got loops=%d", runs[0].Loops)
	}

	// Default limit when <= 0
	runs, err = store.RecentRuns("m", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(runs))
	}
}

func TestStoreAllRuns(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		if _, err := store.SaveRun(Run{MapID: id, Strategy: "sequential"}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.AllRuns(10)
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs, got %d", len(runs))
	}
}

func TestStoreFastestRun(t *testing.T) {
	store := openTestStore(t)

	fastest, err := store.FastestRun("canonical")
	if err != nil {
		t.Fatalf("FastestRun() failed: %v", err)
	}
	if fastest != nil {
		t.Errorf("Expected nil for map without runs, got %+v", fastest)
	}

	for _, d := range []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond} {
		if _, err := store.SaveRun(Run{MapID: "canonical", Strategy: "sequential", Duration: d}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	fastest, err = store.FastestRun("canonical")
	if err != nil {
		t.Fatalf("FastestRun() failed: %v", err)
	}
	if fastest == nil || fastest.Duration != time.Millisecond {
		t.Errorf("Expected 1ms fastest run, got %+v", fastest)
	}
}

func TestStoreDeleteRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{MapID: "canonical", Strategy: "sequential"})
	store.SaveRun(Run{MapID: "canonical", Strategy: "sequential"})
	store.SaveRun(Run{MapID: "square", Strategy: "sequential"})

	n, err := store.DeleteRuns("canonical")
	if err != nil {
		t.Fatalf("DeleteRuns() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 deleted runs, got %d", n)
	}

	runs, _ := store.RecentRuns("canonical", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after delete, got %d", len(runs))
	}

	// Other maps should be unaffected
	runs, _ = store.RecentRuns("square", 10)
	if len(runs) != 1 {
		t.Errorf("Expected 1 square run, got %d", len(runs))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)
	store.now = fixedClock(time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC))

	empty, err := store.Stats("canonical")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastRun.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveRun(Run{MapID: "canonical", Strategy: "sequential", Loops: 6, Duration: 2 * time.Millisecond})
	store.SaveRun(Run{MapID: "canonical", Strategy: "concurrent", Loops: 7, Duration: 4 * time.Millisecond})

	stats, err := store.Stats("canonical")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Expected 2 runs, got %d", stats.Runs)
	}
	if stats.Fastest != 2*time.Millisecond {
		t.Errorf("Expected fastest 2ms, got %v", stats.Fastest)
	}
	if stats.Average != 3*time.Millisecond {
		t.Errorf("Expected average 3ms, got %v", stats.Average)
	}
	if stats.LastLoop != 7 {
		t.Errorf("Expected last loops 7, got %d", stats.LastLoop)
	}
	if !stats.LastRun.Equal(time.Date(2024, 12, 6, 10, 0, 1, 0, time.UTC)) {
		t.Errorf("Unexpected LastRun %v", stats.LastRun)
	}
}

func TestStoreHomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.patrol/runs.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".patrol", "runs.db")); err != nil {
		t.Errorf("Expected database under home: %v", err)
	}
}
