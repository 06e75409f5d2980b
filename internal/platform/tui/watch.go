package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

// Viewer speed limits in steps per second.
const (
	minFPS = 1
	maxFPS = 120
)

// WatchOptions configures the patrol viewer.
type WatchOptions struct {
	Title string
	FPS   int
	Theme Theme

	// Embedded makes Back return control to the parent model instead of
	// quitting the program.
	Embedded bool
}

// WatchModel is the Bubble Tea model that animates a guard patrol.
type WatchModel struct {
	title    string
	grid     *patrol.Grid // Untouched source grid
	start    patrol.Walker
	patrol   *patrol.Patrol
	last     patrol.StepResult
	theme    Theme
	keys     WatchKeyMap
	help     help.Model
	fps      int
	gen      int // Tick chain generation
	paused   bool
	embedded bool
	width    int
	height   int
	quitting bool
	back     bool
}

// NewWatchModel creates a viewer for the guard on g. The grid itself is
// never modified; every run walks a flag-free copy.
func NewWatchModel(g *patrol.Grid, opts WatchOptions) (WatchModel, error) {
	start, err := g.Start()
	if err != nil {
		return WatchModel{}, err
	}

	fps := opts.FPS
	if fps < minFPS {
		fps = minFPS
	}
	if fps > maxFPS {
		fps = maxFPS
	}

	title := opts.Title
	if title == "" {
		title = fmt.Sprintf("%dx%d map", g.W, g.H)
	}

	return WatchModel{
		title:    title,
		grid:     g,
		start:    start,
		patrol:   patrol.NewPatrol(g.Pristine(), start),
		theme:    opts.Theme,
		keys:     DefaultWatchKeyMap(),
		help:     help.New(),
		fps:      fps,
		embedded: opts.Embedded,
	}, nil
}

// Init starts the animation.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.fps, m.gen)
}

// Update handles messages.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.back = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if m.paused || m.patrol.Done() {
			return m, nil
		}
		cmd := m.restartTicks()
		return m, cmd

	case key.Matches(msg, m.keys.Step):
		m.paused = true
		m.advance()
		return m, nil

	case key.Matches(msg, m.keys.Faster):
		return m.setFPS(m.fps * 2)

	case key.Matches(msg, m.keys.Slower):
		return m.setFPS(m.fps / 2)

	case key.Matches(msg, m.keys.Reset):
		m.patrol = patrol.NewPatrol(m.grid.Pristine(), m.start)
		m.last = patrol.StepResult{}
		m.paused = false
		cmd := m.restartTicks()
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// handleTick advances the guard unless the tick is stale or the viewer is
// paused. The tick chain stops once the patrol ends.
func (m WatchModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.paused || m.patrol.Done() {
		return m, nil
	}

	m.advance()
	if m.patrol.Done() {
		return m, nil
	}
	return m, tickCmd(m.fps, m.gen)
}

func (m *WatchModel) advance() {
	if m.patrol.Done() {
		return
	}
	m.last = m.patrol.Step()
}

func (m WatchModel) setFPS(fps int) (tea.Model, tea.Cmd) {
	if fps < minFPS {
		fps = minFPS
	}
	if fps > maxFPS {
		fps = maxFPS
	}
	m.fps = fps
	if m.paused || m.patrol.Done() {
		return m, nil
	}
	cmd := m.restartTicks()
	return m, cmd
}

// restartTicks invalidates pending ticks and starts a new chain.
func (m *WatchModel) restartTicks() tea.Cmd {
	m.gen++
	return tickCmd(m.fps, m.gen)
}

// View renders the viewer.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.theme.HUDTitle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(RenderPatrol(m.patrol, m.start, m.theme))
	b.WriteString("\n\n")
	b.WriteString(m.renderHUD())
	b.WriteString("\n")

	if banner := m.renderBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m WatchModel) renderHUD() string {
	sep := m.theme.HUDSeparator.Render("  |  ")
	field := func(label string, value any) string {
		return m.theme.HUDControls.Render(label+": ") + m.theme.HUDValue.Render(fmt.Sprint(value))
	}

	state := "running"
	switch {
	case m.patrol.Done():
		state = m.patrol.Ended.String()
	case m.paused:
		state = "paused"
	}

	parts := []string{
		field("Steps", m.patrol.Steps),
		field("Visited", m.patrol.Distinct()),
		field("Facing", m.patrol.Walker.Dir),
		field("Last", m.last.Event),
		field("Speed", fmt.Sprintf("%d/s", m.fps)),
		field("State", state),
	}
	return strings.Join(parts, sep)
}

func (m WatchModel) renderBanner() string {
	switch m.patrol.Ended {
	case patrol.EventExited:
		return m.theme.Exited.Render(fmt.Sprintf(
			"Guard left the map after %d steps, visiting %d positions.",
			m.patrol.Steps, m.patrol.Distinct()))
	case patrol.EventLooped:
		return m.theme.Looped.Render(fmt.Sprintf(
			"Guard is stuck in a loop after %d steps.", m.patrol.Steps))
	}
	return ""
}

// Patrol returns the patrol being animated.
func (m WatchModel) Patrol() *patrol.Patrol {
	return m.patrol
}

// Paused reports whether the animation is paused.
func (m WatchModel) Paused() bool {
	return m.paused
}

// FPS returns the current animation speed.
func (m WatchModel) FPS() int {
	return m.fps
}

// IsQuitting returns true if user wants to quit entirely.
func (m WatchModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m WatchModel) WantsBack() bool {
	return m.back
}

// RunWatch runs the viewer for a single grid until the user quits.
func RunWatch(g *patrol.Grid, opts WatchOptions) error {
	model, err := NewWatchModel(g, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
