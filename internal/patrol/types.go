// Package patrol simulates a guard walking a rectangular map and searches for
// single-cell obstructions that trap the guard in a loop.
// This package is UI-agnostic and deterministic.
package patrol

// Dir represents the direction the guard is facing.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// TurnRight returns the next direction in clockwise order.
// There is no left turn.
func (d Dir) TurnRight() Dir {
	return (d + 1) % 4
}

// Delta returns the (dcol, drow) offset for moving one step in this direction.
// Up decreases the row (screen coordinates).
func (d Dir) Delta() (dcol, drow int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Horizontal reports whether the direction moves along a row.
func (d Dir) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// visitedBit is the departure flag for this direction.
func (d Dir) visitedBit() Cell {
	return Cell(0x80) >> d
}

// Terrain is the static category of a cell.
type Terrain uint8

const (
	TerrainEmpty Terrain = iota
	TerrainWall
	TerrainObstacle
	TerrainGuardUp
	TerrainGuardRight
	TerrainGuardDown
	TerrainGuardLeft
)

// glyphs maps terrain to its map character.
var glyphs = [...]rune{'.', '#', 'O', '^', '>', 'v', '<'}

// Glyph returns the map character for the terrain.
func (t Terrain) Glyph() rune {
	if int(t) < len(glyphs) {
		return glyphs[t]
	}
	return '?'
}

// Blocks reports whether the guard must turn in front of this terrain.
// Walls and placed obstacles behave the same.
func (t Terrain) Blocks() bool {
	return t == TerrainWall || t == TerrainObstacle
}

// IsGuard reports whether the terrain is one of the four start markers.
func (t Terrain) IsGuard() bool {
	return t >= TerrainGuardUp && t <= TerrainGuardLeft
}

// GuardDir returns the facing of a start marker.
func (t Terrain) GuardDir() (Dir, bool) {
	if !t.IsGuard() {
		return 0, false
	}
	return Dir(t - TerrainGuardUp), true
}

// TerrainFromGlyph maps a map character to terrain.
func TerrainFromGlyph(r rune) (Terrain, bool) {
	for i, g := range glyphs {
		if g == r {
			return Terrain(i), true
		}
	}
	return 0, false
}

const (
	terrainMask Cell = 0x0F
	visitedMask Cell = 0xF0
)

// Cell packs a terrain kind (low nibble) and four departure flags
// (high nibble: up=0x80, right=0x40, down=0x20, left=0x10).
type Cell uint8

// Terrain returns the terrain kind, ignoring departure flags.
func (c Cell) Terrain() Terrain {
	return Terrain(c & terrainMask)
}

// WithTerrain returns the cell with its terrain replaced and flags kept.
func (c Cell) WithTerrain(t Terrain) Cell {
	return (c & visitedMask) | (Cell(t) & terrainMask)
}

// Visited reports whether the guard has left this cell facing d.
func (c Cell) Visited(d Dir) bool {
	return c&d.visitedBit() != 0
}

// Mark returns the cell with the departure flag for d set.
func (c Cell) Mark(d Dir) Cell {
	return c | d.visitedBit()
}

// ClearVisits returns the cell with all departure flags cleared.
func (c Cell) ClearVisits() Cell {
	return c & terrainMask
}

// Walker is the guard's position and facing.
type Walker struct {
	Pos int
	Dir Dir
}
