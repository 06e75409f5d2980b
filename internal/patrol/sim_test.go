package patrol_test

import (
	"testing"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

// squareLoop traps the guard without any extra obstacle.
const squareLoop = `.#..
...#
#^..
..#.`

func mustStart(t *testing.T, g *patrol.Grid) patrol.Walker {
	t.Helper()
	start, err := g.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return start
}

func TestScanReachableCanonical(t *testing.T) {
	g := patrol.MustParse(canonical)
	start := mustStart(t, g)

	reach := patrol.ScanReachable(g, start)

	if reach.Len() != 41 {
		t.Errorf("expected 41 reachable positions, got %d", reach.Len())
	}
	if reach.Looped() {
		t.Error("canonical map should not loop")
	}
	if !reach.Has(start.Pos) {
		t.Error("start position should be reachable")
	}
	if len(reach.Positions()) != reach.Len() {
		t.Errorf("Positions() length %d != Len() %d", len(reach.Positions()), reach.Len())
	}

	// The scan must not write flags into the caller's grid.
	for pos := range g.Cells {
		for d := patrol.DirUp; d <= patrol.DirLeft; d++ {
			if g.Visited(pos, d) {
				t.Fatalf("ScanReachable marked %d facing %v on the input grid", pos, d)
			}
		}
	}
}

func TestScanReachableBounds(t *testing.T) {
	maps := []string{
		canonical,
		squareLoop,
		"^",
		"#\n^",
		"..>..",
		"...>\n....",
	}

	for _, m := range maps {
		g := patrol.MustParse(m)
		reach := patrol.ScanReachable(g, mustStart(t, g))
		if reach.Len() < 1 || reach.Len() > g.Size() {
			t.Errorf("reachable %d outside [1, %d] for map %q", reach.Len(), g.Size(), m)
		}
	}
}

func TestScanReachableHorizontalExit(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want int
	}{
		// A naive row check would wrap into the next row.
		{"RightEdge", "...>\n....", 1},
		{"LeftEdge", "....\n<...", 1},
		{"Corridor", "..>..", 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := patrol.MustParse(tc.text)
			reach := patrol.ScanReachable(g, mustStart(t, g))
			if reach.Len() != tc.want {
				t.Errorf("expected %d reachable, got %d", tc.want, reach.Len())
			}
			if reach.Looped() {
				t.Error("guard should exit, not loop")
			}
		})
	}
}

func TestScanReachableTerminatesOnLoopingMap(t *testing.T) {
	g := patrol.MustParse(squareLoop)
	reach := patrol.ScanReachable(g, mustStart(t, g))

	if !reach.Looped() {
		t.Error("expected the unmodified map to loop")
	}
	if reach.Len() != 4 {
		t.Errorf("expected 4 reachable positions, got %d", reach.Len())
	}
}

func TestDetectLoopBoundaryTermination(t *testing.T) {
	maps := []string{
		"....\n.^..\n....",
		"..>..",
		"v\n.\n.",
		"...<",
	}

	for _, m := range maps {
		g := patrol.MustParse(m)
		if patrol.DetectLoop(g, mustStart(t, g)) {
			t.Errorf("open map %q should not loop", m)
		}
	}
}

func TestDetectLoopForcedLoop(t *testing.T) {
	g := patrol.MustParse(canonical)
	start := mustStart(t, g)

	// Obstacle left of the start sends the guard back onto its own path.
	g.SetTerrain(g.Pos(3, 6), patrol.TerrainObstacle)

	p := patrol.NewPatrol(g, start)
	if end := p.Run(); end != patrol.EventLooped {
		t.Fatalf("expected loop, got %v", end)
	}
	if limit := g.Size()*4 + 1; p.Steps > limit {
		t.Errorf("loop detected after %d steps, limit %d", p.Steps, limit)
	}
}

func TestDetectLoopIdempotent(t *testing.T) {
	base := patrol.MustParse(canonical)
	start := mustStart(t, base)
	base.SetTerrain(base.Pos(7, 7), patrol.TerrainObstacle)

	first := patrol.DetectLoop(base.Clone(), start)
	second := patrol.DetectLoop(base.Clone(), start)

	if first != second {
		t.Errorf("DetectLoop not idempotent: %v then %v", first, second)
	}
	if !first {
		t.Error("obstacle at (7,7) should force a loop")
	}
}

func TestDetectLoopWritesFlags(t *testing.T) {
	g := patrol.MustParse("..>..")
	start := mustStart(t, g)

	patrol.DetectLoop(g, start)

	for col := 2; col < 5; col++ {
		if !g.Visited(col, patrol.DirRight) {
			t.Errorf("expected departure flag at col %d", col)
		}
	}
	if g.Terrain(2) != patrol.TerrainGuardRight {
		t.Error("flags must not alter the start marker")
	}
}

func TestPatrolStepEvents(t *testing.T) {
	g := patrol.MustParse("#..\n^..")
	p := patrol.NewPatrol(g, mustStart(t, g))

	want := []patrol.Event{
		patrol.EventTurned, // wall above
		patrol.EventMoved,
		patrol.EventMoved,
		patrol.EventExited,
	}
	for i, w := range want {
		res := p.Step()
		if res.Event != w {
			t.Fatalf("step %d: expected %v, got %v", i, w, res.Event)
		}
		if res.Step != i+1 {
			t.Errorf("step %d: expected counter %d, got %d", i, i+1, res.Step)
		}
	}

	if !p.Done() {
		t.Error("patrol should be done after exit")
	}
	if p.Distinct() != 3 {
		t.Errorf("expected 3 distinct positions, got %d", p.Distinct())
	}

	// Stepping a finished patrol is a no-op.
	res := p.Step()
	if res.Event != patrol.EventExited || p.Steps != 4 {
		t.Errorf("finished patrol moved: %+v steps=%d", res, p.Steps)
	}
}
