package patrol

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// candidates returns the reachable positions where an obstruction may be
// placed: plain empty terrain other than the start.
func candidates(g *Grid, start Walker) []int {
	reach := ScanReachable(g, start)
	out := make([]int, 0, reach.Len())
	for _, pos := range reach.Positions() {
		if pos == start.Pos || g.Terrain(pos) != TerrainEmpty {
			continue
		}
		out = append(out, pos)
	}
	return out
}

// trial reports whether an obstacle at pos traps the guard.
// It runs on its own flag-free copy of g.
func trial(g *Grid, start Walker, pos int) bool {
	test := g.Pristine()
	test.SetTerrain(pos, TerrainObstacle)
	return DetectLoop(test, start)
}

// LoopPositions returns, in ascending order, every position on the guard's
// original path where a single extra obstacle would trap the guard in a loop.
func LoopPositions(g *Grid) ([]int, error) {
	start, err := g.Start()
	if err != nil {
		return nil, err
	}

	out := make([]int, 0)
	for _, pos := range candidates(g, start) {
		if trial(g, start, pos) {
			out = append(out, pos)
		}
	}
	return out, nil
}

// CountLoopPositions returns the number of loop-forcing obstruction positions.
func CountLoopPositions(g *Grid) (int, error) {
	positions, err := LoopPositions(g)
	if err != nil {
		return 0, err
	}
	return len(positions), nil
}

// LoopPositionsConcurrent is LoopPositions with trials spread over a bounded
// worker pool. workers <= 0 uses runtime.NumCPU(). The result is identical to
// the sequential search. Cancelling ctx stops scheduling new trials.
func LoopPositionsConcurrent(ctx context.Context, g *Grid, workers int) ([]int, error) {
	start, err := g.Start()
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Trials only read from base.
	base := g.Pristine()
	cands := candidates(base, start)
	hits := make([]bool, len(cands))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, pos := range cands {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each goroutine owns hits[i].
			hits[i] = trial(base, start, pos)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]int, 0)
	for i, hit := range hits {
		if hit {
			out = append(out, cands[i])
		}
	}
	return out, nil
}
