package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/guard-patrol/internal/maps"
)

// SessionModel manages the full viewer flow: picker -> watch -> picker.
// This is the top-level model for `patrol watch` without a map and for SSH
// sessions.
type SessionModel struct {
	maps     []maps.Map
	opts     WatchOptions
	width    int
	height   int
	picker   PickerModel
	watch    *WatchModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(all []maps.Map, opts WatchOptions, width, height int) SessionModel {
	opts.Embedded = true
	return SessionModel{
		maps:   all,
		opts:   opts,
		width:  width,
		height: height,
		picker: NewPickerModel(all, opts.Theme, width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	if m.watch != nil {
		return m.updateWatch(msg)
	}
	return m.updatePicker(msg)
}

// updatePicker handles updates while choosing a map.
func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPicker, cmd := m.picker.Update(msg)
	if picker, ok := newPicker.(PickerModel); ok {
		m.picker = picker
	}

	if m.picker.IsQuitting() || m.picker.WantsBack() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.picker.Selected(); selected != nil {
		g, err := selected.ToGrid()
		if err != nil {
			m.picker = m.picker.withStatus(err.Error())
			return m, nil
		}

		opts := m.opts
		opts.Title = selected.Title()
		watch, err := NewWatchModel(g, opts)
		if err != nil {
			m.picker = m.picker.withStatus(err.Error())
			return m, nil
		}
		watch.width, watch.height = m.width, m.height
		watch.help.Width = m.width
		m.watch = &watch
		return m, m.watch.Init()
	}

	return m, cmd
}

// updateWatch handles updates while a patrol is on screen.
func (m SessionModel) updateWatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	newWatch, cmd := m.watch.Update(msg)
	if watch, ok := newWatch.(WatchModel); ok {
		m.watch = &watch
	}

	if m.watch.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.watch.WantsBack() {
		m.watch = nil
		m.picker = NewPickerModel(m.maps, m.opts.Theme, m.width, m.height)
		return m, m.picker.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.watch != nil {
		return m.watch.View()
	}
	return m.picker.View()
}

// Watching reports whether a patrol is on screen.
func (m SessionModel) Watching() bool {
	return m.watch != nil
}

// RunSession runs the picker and viewer until the user quits.
func RunSession(all []maps.Map, opts WatchOptions, width, height int) error {
	p := tea.NewProgram(
		NewSessionModel(all, opts, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
