package solvers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/guard-patrol/internal/maps"
	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/registry"
	"github.com/vovakirdan/guard-patrol/internal/solvers"
)

const canonical = `....#.....
.........#
..........
..#.......
.......#..
..........
.#..^.....
........#.
#.........
......#...`

func TestRegistered(t *testing.T) {
	infos := registry.List()

	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
		assert.NotEmpty(t, info.Title)
	}
	assert.Equal(t, []string{solvers.ConcurrentID, solvers.SequentialID}, ids)
	assert.True(t, registry.Exists(solvers.SequentialID))
	assert.False(t, registry.Exists("quantum"))

	_, err := registry.Create("quantum")
	assert.Error(t, err)
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	assert.Panics(t, func() {
		registry.Register(solvers.SequentialID, func() registry.Solver { return solvers.Sequential{} })
	})
}

func TestSolversCanonical(t *testing.T) {
	for _, id := range []string{solvers.SequentialID, solvers.ConcurrentID} {
		t.Run(id, func(t *testing.T) {
			s, err := registry.Create(id)
			require.NoError(t, err)
			assert.Equal(t, id, s.ID())

			g := patrol.MustParse(canonical)
			res, err := s.Solve(context.Background(), g, 4)
			require.NoError(t, err)

			assert.Equal(t, 41, res.Reachable)
			assert.Equal(t, 6, res.Loops())
			assert.False(t, res.Looped)
			assert.Equal(t, []int{63, 76, 77, 81, 83, 97}, res.Positions)
			assert.Positive(t, res.Workers)
		})
	}
}

func TestSolversLoopingMap(t *testing.T) {
	g := patrol.MustParse(".#..\n...#\n#^..\n..#.")

	res, err := solvers.Sequential{}.Solve(context.Background(), g, 0)
	require.NoError(t, err)
	assert.True(t, res.Looped)
	assert.Equal(t, 4, res.Reachable)
	assert.Equal(t, 1, res.Workers)
}

func TestSolversNoStart(t *testing.T) {
	g := patrol.NewGrid(3, 3)

	for _, s := range []registry.Solver{solvers.Sequential{}, solvers.Concurrent{}} {
		_, err := s.Solve(context.Background(), g, 2)
		assert.ErrorIs(t, err, patrol.ErrNoStart, s.ID())
	}
}

func TestSolversCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := patrol.MustParse(canonical)
	for _, s := range []registry.Solver{solvers.Sequential{}, solvers.Concurrent{}} {
		_, err := s.Solve(ctx, g, 2)
		assert.ErrorIs(t, err, context.Canceled, s.ID())
	}
}

// TestBundledMaps solves every map shipped in the repository and compares
// the answers with the expectations recorded in each file.
func TestBundledMaps(t *testing.T) {
	all, err := maps.NewLoader("../../maps").LoadAll()
	require.NoError(t, err)
	require.NotEmpty(t, all)

	for _, m := range all {
		t.Run(m.ID, func(t *testing.T) {
			g, err := m.ToGrid()
			require.NoError(t, err)

			for _, id := range []string{solvers.SequentialID, solvers.ConcurrentID} {
				solver, err := registry.Create(id)
				require.NoError(t, err)

				result, err := solver.Solve(context.Background(), g, 4)
				require.NoError(t, err)
				assert.Empty(t, m.Check(result.Reachable, result.Loops()), id)
			}
		})
	}
}
