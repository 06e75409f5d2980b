package patrol

import (
	"strings"
)

// Glyphs used by the overlay renderers.
const (
	GlyphReached     = 'X'
	GlyphObstruction = 'O'
)

// Render renders the terrain of the grid, one row per line.
// The output parses back into the same terrain.
func Render(g *Grid) string {
	return renderWith(g, func(pos int, t Terrain) rune {
		return t.Glyph()
	})
}

// RenderReachable renders the grid with reached empty cells shown as 'X'.
// The start marker and all other terrain are left unchanged.
func RenderReachable(g *Grid, r Reachable) string {
	return renderWith(g, func(pos int, t Terrain) rune {
		if t == TerrainEmpty && r.Has(pos) {
			return GlyphReached
		}
		return t.Glyph()
	})
}

// RenderObstructions renders the grid with each given position shown as 'O'.
func RenderObstructions(g *Grid, positions []int) string {
	marked := make(map[int]bool, len(positions))
	for _, pos := range positions {
		marked[pos] = true
	}
	return renderWith(g, func(pos int, t Terrain) rune {
		if marked[pos] {
			return GlyphObstruction
		}
		return t.Glyph()
	})
}

func renderWith(g *Grid, glyph func(pos int, t Terrain) rune) string {
	var sb strings.Builder
	sb.Grow((g.W + 1) * g.H)
	for row := 0; row < g.H; row++ {
		for col := 0; col < g.W; col++ {
			pos := g.Pos(col, row)
			sb.WriteRune(glyph(pos, g.Terrain(pos)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
