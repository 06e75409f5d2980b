// Package solvers registers the obstruction-search strategies.
package solvers

import (
	"context"
	"runtime"
	"time"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/registry"
)

func init() {
	registry.Register(SequentialID, func() registry.Solver { return Sequential{} })
	registry.Register(ConcurrentID, func() registry.Solver { return Concurrent{} })
}

const (
	SequentialID = "sequential"
	ConcurrentID = "concurrent"
)

// Sequential tests obstruction candidates one after another.
type Sequential struct{}

func (Sequential) ID() string    { return SequentialID }
func (Sequential) Title() string { return "Sequential search" }

// Solve implements registry.Solver. The workers hint is ignored.
func (Sequential) Solve(ctx context.Context, g *patrol.Grid, _ int) (registry.Result, error) {
	return solve(g, 1, func() ([]int, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return patrol.LoopPositions(g)
	})
}

// Concurrent spreads obstruction trials over a bounded worker pool.
type Concurrent struct{}

func (Concurrent) ID() string    { return ConcurrentID }
func (Concurrent) Title() string { return "Concurrent search" }

// Solve implements registry.Solver.
func (Concurrent) Solve(ctx context.Context, g *patrol.Grid, workers int) (registry.Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return solve(g, workers, func() ([]int, error) {
		return patrol.LoopPositionsConcurrent(ctx, g, workers)
	})
}

func solve(g *patrol.Grid, workers int, search func() ([]int, error)) (registry.Result, error) {
	start, err := g.Start()
	if err != nil {
		return registry.Result{}, err
	}

	began := time.Now()
	reach := patrol.ScanReachable(g, start)
	positions, err := search()
	if err != nil {
		return registry.Result{}, err
	}

	return registry.Result{
		Reachable: reach.Len(),
		Looped:    reach.Looped(),
		Positions: positions,
		Workers:   workers,
		Duration:  time.Since(began),
	}, nil
}
