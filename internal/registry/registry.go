// Package registry provides a global registry for obstruction-search solvers.
// Solvers register themselves in init() functions, allowing the CLI and the
// terminal viewer to discover strategies without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

// Result is the outcome of solving one map.
type Result struct {
	Reachable int           // Distinct positions on the unobstructed path
	Looped    bool          // Unobstructed path already loops
	Positions []int         // Loop-forcing obstruction positions, ascending
	Workers   int           // Workers actually used
	Duration  time.Duration // Wall time of the search
}

// Loops returns the number of loop-forcing obstruction positions.
func (r Result) Loops() int {
	return len(r.Positions)
}

// Solver runs the reachability scan and obstruction search on a grid.
type Solver interface {
	// ID returns a unique identifier (e.g., "sequential").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Solve analyses g without modifying it. workers is a hint that
	// sequential solvers ignore; <= 0 means one per CPU.
	Solve(ctx context.Context, g *patrol.Grid, workers int) (Result, error)
}

// SolverInfo contains metadata about a registered solver.
type SolverInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new solver instance.
type Factory func() Solver

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a solver factory to the registry.
// Typically called from a solver's init() function.
// Panics if a solver with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: solver %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered solvers, sorted by ID.
func List() []SolverInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SolverInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SolverInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a solver by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Solver, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown solver %q", id)
	}

	return f(), nil
}

// Exists checks if a solver with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
