package patrol

import (
	"strings"
)

// Grid is the patrol map as a rectangular array of packed cells.
// Cells are stored in row-major order: index = row*W + col.
type Grid struct {
	W     int    // Width of the grid
	H     int    // Height of the grid
	Cells []Cell // Flat array of cells, length W*H
}

// NewGrid creates an all-empty grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]Cell, w*h),
	}
}

// Parse converts a text map into a grid.
// Surrounding blank lines and trailing whitespace on each row are ignored.
func Parse(text string) (*Grid, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.Trim(text, "\n")
	if strings.TrimSpace(text) == "" {
		return nil, &MalformedGridError{Err: ErrEmptyGrid}
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}

	w := len(lines[0])
	if w == 0 {
		return nil, &MalformedGridError{Line: 1, Err: ErrEmptyGrid}
	}

	g := NewGrid(w, len(lines))
	starts := 0
	for row, line := range lines {
		if len(line) != w {
			return nil, &MalformedGridError{Line: row + 1, Err: ErrRaggedRows}
		}
		for col, r := range line {
			t, ok := TerrainFromGlyph(r)
			if !ok {
				return nil, &MalformedGridError{Line: row + 1, Col: col + 1, Err: ErrUnknownGlyph}
			}
			if t.IsGuard() {
				starts++
				if starts > 1 {
					return nil, &MalformedGridError{Line: row + 1, Col: col + 1, Err: ErrMultipleStarts}
				}
			}
			g.Cells[row*w+col] = Cell(0).WithTerrain(t)
		}
	}

	if starts == 0 {
		return nil, &MalformedGridError{Err: ErrNoStart}
	}
	return g, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// embedded fixtures.
func MustParse(text string) *Grid {
	g, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return g
}

// Size returns the number of cells.
func (g *Grid) Size() int {
	return len(g.Cells)
}

// Pos converts (col, row) to a linear index.
func (g *Grid) Pos(col, row int) int {
	return row*g.W + col
}

// ColRow converts a linear index to (col, row).
func (g *Grid) ColRow(pos int) (col, row int) {
	return pos % g.W, pos / g.W
}

// InBounds returns true if the position is inside the grid.
func (g *Grid) InBounds(pos int) bool {
	return pos >= 0 && pos < len(g.Cells)
}

// Next returns the position one step from pos in direction d.
// Horizontal moves are checked against the column bounds so that stepping
// off the left or right edge never wraps into a neighbouring row.
func (g *Grid) Next(pos int, d Dir) (int, bool) {
	col, row := g.ColRow(pos)
	dcol, drow := d.Delta()
	col += dcol
	row += drow
	if col < 0 || col >= g.W {
		return -1, false
	}
	if row < 0 || row >= g.H {
		return -1, false
	}
	return g.Pos(col, row), true
}

// Terrain returns the terrain at pos, ignoring departure flags.
func (g *Grid) Terrain(pos int) Terrain {
	return g.Cells[pos].Terrain()
}

// SetTerrain replaces the terrain at pos and keeps its departure flags.
func (g *Grid) SetTerrain(pos int, t Terrain) {
	g.Cells[pos] = g.Cells[pos].WithTerrain(t)
}

// Visited reports whether the guard has departed pos facing d.
func (g *Grid) Visited(pos int, d Dir) bool {
	return g.Cells[pos].Visited(d)
}

// Mark sets the departure flag for d at pos.
func (g *Grid) Mark(pos int, d Dir) {
	g.Cells[pos] = g.Cells[pos].Mark(d)
}

// ClearVisits clears every departure flag in place.
func (g *Grid) ClearVisits() {
	for i, c := range g.Cells {
		g.Cells[i] = c.ClearVisits()
	}
}

// Start locates the guard marker and returns the initial walker.
func (g *Grid) Start() (Walker, error) {
	for i, c := range g.Cells {
		if d, ok := c.Terrain().GuardDir(); ok {
			return Walker{Pos: i, Dir: d}, nil
		}
	}
	return Walker{}, &NoStartFoundError{W: g.W, H: g.H}
}

// Clone returns a deep copy of the grid, departure flags included.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:     g.W,
		H:     g.H,
		Cells: cells,
	}
}

// Pristine returns a deep copy with all departure flags cleared.
func (g *Grid) Pristine() *Grid {
	c := g.Clone()
	c.ClearVisits()
	return c
}

// EqualTerrain returns true if two grids have the same dimensions and
// terrain, ignoring departure flags.
func (g *Grid) EqualTerrain(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, c := range g.Cells {
		if c.Terrain() != other.Cells[i].Terrain() {
			return false
		}
	}
	return true
}

// CountTerrain returns the number of cells holding terrain t.
func (g *Grid) CountTerrain(t Terrain) int {
	count := 0
	for _, c := range g.Cells {
		if c.Terrain() == t {
			count++
		}
	}
	return count
}
