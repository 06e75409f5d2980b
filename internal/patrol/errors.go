package patrol

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGrid indicates the input has no rows.
	ErrEmptyGrid = errors.New("patrol: grid must have at least one row and one column")
	// ErrRaggedRows indicates rows of differing lengths.
	ErrRaggedRows = errors.New("patrol: all rows must have the same length")
	// ErrUnknownGlyph indicates a character outside the map alphabet.
	ErrUnknownGlyph = errors.New("patrol: unrecognized map character")
	// ErrNoStart indicates the map has no guard marker.
	ErrNoStart = errors.New("patrol: no guard start marker")
	// ErrMultipleStarts indicates the map has more than one guard marker.
	ErrMultipleStarts = errors.New("patrol: more than one guard start marker")
)

// MalformedGridError reports why a text map could not be parsed.
// Line and Col are 1-based; zero means the error is not tied to a location.
type MalformedGridError struct {
	Line int
	Col  int
	Err  error
}

func (e *MalformedGridError) Error() string {
	switch {
	case e.Line > 0 && e.Col > 0:
		return fmt.Sprintf("malformed grid at line %d col %d: %v", e.Line, e.Col, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("malformed grid at line %d: %v", e.Line, e.Err)
	default:
		return fmt.Sprintf("malformed grid: %v", e.Err)
	}
}

func (e *MalformedGridError) Unwrap() error {
	return e.Err
}

// NoStartFoundError is returned by Grid.Start when no cell holds a guard
// marker. Parse rejects such maps, so this only happens for grids built
// or edited by hand.
type NoStartFoundError struct {
	W int
	H int
}

func (e *NoStartFoundError) Error() string {
	return fmt.Sprintf("patrol: no guard start found in %dx%d grid", e.W, e.H)
}

func (e *NoStartFoundError) Is(target error) bool {
	return target == ErrNoStart
}
