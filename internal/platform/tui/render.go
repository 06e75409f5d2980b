package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

// cellKind classifies a cell for styling.
type cellKind int

const (
	kindEmpty cellKind = iota
	kindWall
	kindObstacle
	kindTrail
	kindGuard
	kindStart
)

func (t Theme) style(k cellKind) lipgloss.Style {
	switch k {
	case kindWall:
		return t.Wall
	case kindObstacle:
		return t.Obstacle
	case kindTrail:
		return t.Trail
	case kindGuard:
		return t.Guard
	case kindStart:
		return t.Start
	default:
		return t.Empty
	}
}

// styledCell is one rendered cell before styling.
type styledCell struct {
	r    rune
	kind cellKind
}

// RenderPatrol draws the grid with the guard's trail and current position.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderPatrol(p *patrol.Patrol, start patrol.Walker, theme Theme) string {
	g := p.Grid
	rows := make([][]styledCell, g.H)
	for row := 0; row < g.H; row++ {
		rows[row] = make([]styledCell, g.W)
		for col := 0; col < g.W; col++ {
			pos := g.Pos(col, row)
			rows[row][col] = patrolCell(p, start, pos)
		}
	}
	return renderRows(rows, theme)
}

func patrolCell(p *patrol.Patrol, start patrol.Walker, pos int) styledCell {
	if pos == p.Walker.Pos && p.Ended != patrol.EventExited {
		guard := patrol.TerrainGuardUp + patrol.Terrain(p.Walker.Dir)
		return styledCell{guard.Glyph(), kindGuard}
	}

	t := p.Grid.Terrain(pos)
	switch {
	case t == patrol.TerrainWall:
		return styledCell{t.Glyph(), kindWall}
	case t == patrol.TerrainObstacle:
		return styledCell{t.Glyph(), kindObstacle}
	case pos == start.Pos:
		return styledCell{t.Glyph(), kindStart}
	case p.Seen(pos):
		return styledCell{patrol.GlyphReached, kindTrail}
	default:
		return styledCell{t.Glyph(), kindEmpty}
	}
}

// Colorize styles a plain map rendering glyph by glyph.
func Colorize(plain string, theme Theme) string {
	lines := strings.Split(strings.TrimRight(plain, "\n"), "\n")
	rows := make([][]styledCell, len(lines))
	for i, line := range lines {
		for _, r := range line {
			rows[i] = append(rows[i], styledCell{r, glyphKind(r)})
		}
	}
	return renderRows(rows, theme) + "\n"
}

func glyphKind(r rune) cellKind {
	switch r {
	case '#':
		return kindWall
	case patrol.GlyphObstruction:
		return kindObstacle
	case patrol.GlyphReached:
		return kindTrail
	case '^', '>', 'v', '<':
		return kindGuard
	default:
		return kindEmpty
	}
}

func renderRows(rows [][]styledCell, theme Theme) string {
	var sb strings.Builder
	for y, row := range rows {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < len(row) {
			start := row[x].kind

			var run strings.Builder
			for x < len(row) && row[x].kind == start {
				run.WriteRune(row[x].r)
				x++
			}
			sb.WriteString(theme.style(start).Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
