package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/guard-patrol/internal/maps"
)

// PickerModel lets the user choose a map to watch.
type PickerModel struct {
	maps         []maps.Map
	cursor       int
	scrollOffset int
	width        int
	height       int
	theme        Theme
	keys         ListKeyMap
	help         help.Model
	status       string // Last error shown under the list
	selected     *maps.Map
	quitting     bool
	back         bool
}

// NewPickerModel creates a picker over the given maps.
func NewPickerModel(all []maps.Map, theme Theme, width, height int) PickerModel {
	return PickerModel{
		maps:   all,
		width:  width,
		height: height,
		theme:  theme,
		keys:   DefaultListKeyMap(),
		help:   help.New(),
	}
}

// Init initializes the model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.maps)-1 {
			m.cursor++
			m.updateScroll()
		}
	case key.Matches(msg, m.keys.Select):
		if len(m.maps) == 0 {
			return m, nil
		}
		selected := m.maps[m.cursor]
		m.selected = &selected
	case key.Matches(msg, m.keys.Back):
		m.back = true
	}

	return m, nil
}

// visibleItems returns how many list rows fit on screen.
func (m PickerModel) visibleItems() int {
	n := m.height - 10 // Account for header and footer
	if n < 3 {
		n = 3
	}
	return n
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *PickerModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the map list.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("G U A R D   P A T R O L"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a map:"), m.width))
	b.WriteString("\n\n")

	if len(m.maps) == 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("No maps found."), m.width))
		b.WriteString("\n")
	}

	endIdx := m.scrollOffset + m.visibleItems()
	if endIdx > len(m.maps) {
		endIdx = len(m.maps)
	}

	for i := m.scrollOffset; i < endIdx; i++ {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		mp := m.maps[i]
		line := style.Render(fmt.Sprintf("%s%2d. %s", cursor, i+1, mp.Title())) +
			m.theme.MenuDescription.Render(mapSize(mp))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	if endIdx < len(m.maps) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.Looped.Render(m.status), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")

	return b.String()
}

// mapSize returns a short " (WxH)" suffix, or empty if the grid is invalid.
func mapSize(mp maps.Map) string {
	g, err := mp.ToGrid()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("  (%dx%d)", g.W, g.H)
}

// Selected returns the chosen map, or nil if still choosing.
func (m PickerModel) Selected() *maps.Map {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m PickerModel) WantsBack() bool {
	return m.back
}

// withStatus clears the selection and shows msg under the list.
func (m PickerModel) withStatus(msg string) PickerModel {
	m.selected = nil
	m.status = msg
	return m
}
