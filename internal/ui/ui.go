// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-planetarium/internal/state"
	"github.com/litescript/ls-planetarium/internal/version"
)

// Time steps selectable with { and }.
var timeSteps = []time.Duration{
	time.Minute,
	10 * time.Minute,
	time.Hour,
	6 * time.Hour,
	24 * time.Hour,
}

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state *state.Manager
	now   func() time.Time

	// UI state
	width    int
	height   int
	ready    bool
	live     bool // follow the wall clock
	stepIdx  int
	animTick int

	keys keyMap
	help help.Model

	// Sub-models
	skyView SkyViewModel

	// Data snapshot (updated on every tick and state change)
	snapshot state.Snapshot
}

// New creates a new root UI model. With live set, the sky follows the
// wall clock until the user steps time.
func New(stateMgr *state.Manager, live bool) Model {
	m := Model{
		state:   stateMgr,
		now:     time.Now,
		live:    live,
		stepIdx: 2,
		keys:    defaultKeyMap(),
		help:    help.New(),
		skyView: NewSkyViewModel(),
	}
	m.refresh()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width

		// Title and time lines above, events and help below
		m.skyView = m.skyView.SetSize(msg.Width, msg.Height-5)

	case TickMsg:
		m.animTick++
		if m.live {
			m.state.SetTime(m.now())
		}
		m.refresh()
		return m, tickCmd()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fov := m.snapshot.FOVDeg
	pan := fov / 10

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.PanUp):
		m.state.Pan(0, pan)
	case key.Matches(msg, m.keys.PanDown):
		m.state.Pan(0, -pan)
	case key.Matches(msg, m.keys.PanLeft):
		m.state.Pan(-pan, 0)
	case key.Matches(msg, m.keys.PanRight):
		m.state.Pan(pan, 0)
	case key.Matches(msg, m.keys.ZoomIn):
		m.state.SetFOV(fov / 1.25)
	case key.Matches(msg, m.keys.ZoomOut):
		m.state.SetFOV(fov * 1.25)

	case key.Matches(msg, m.keys.CursorUp):
		m.skyView = m.skyView.MoveCursor(0, -1)
	case key.Matches(msg, m.keys.CursorDown):
		m.skyView = m.skyView.MoveCursor(0, 1)
	case key.Matches(msg, m.keys.CursorLeft):
		m.skyView = m.skyView.MoveCursor(-2, 0)
	case key.Matches(msg, m.keys.CursorRight):
		m.skyView = m.skyView.MoveCursor(2, 0)
	case key.Matches(msg, m.keys.Center):
		if h, ok := m.skyView.CursorHorizontal(); ok {
			m.state.SetCenter(h)
			m.skyView = m.skyView.ResetCursor()
		}

	case key.Matches(msg, m.keys.Forward):
		m.live = false
		m.state.Advance(timeSteps[m.stepIdx])
	case key.Matches(msg, m.keys.Back):
		m.live = false
		m.state.Advance(-timeSteps[m.stepIdx])
	case key.Matches(msg, m.keys.Faster):
		m.stepIdx = min(m.stepIdx+1, len(timeSteps)-1)
	case key.Matches(msg, m.keys.Slower):
		m.stepIdx = max(m.stepIdx-1, 0)
	case key.Matches(msg, m.keys.Now):
		m.live = true
		m.state.SetTime(m.now())

	case key.Matches(msg, m.keys.Labels):
		m.skyView = m.skyView.cycleLabelMode()
	case key.Matches(msg, m.keys.Asterisms):
		m.skyView = m.skyView.toggleAsterisms()

	default:
		var cmd tea.Cmd
		m.skyView, cmd = m.skyView.Update(msg)
		return m, cmd
	}

	m.refresh()
	return m, nil
}

// refresh pulls a fresh snapshot and pushes it to the sky view.
func (m *Model) refresh() {
	m.snapshot = m.state.Snapshot()
	m.skyView = m.skyView.UpdateData(m.snapshot)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	if m.snapshot.LastError != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
		content = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	} else {
		content = m.skyView.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	title := renderGradient("  ls-planetarium") + muted.Render(" v"+version.Version)

	mode := accent.Render("● LIVE")
	if !m.live {
		mode = muted.Render("❚❚ step " + formatStep(timeSteps[m.stepIdx]))
	}
	status := fmt.Sprintf("  %s  %s  %s",
		m.snapshot.When.UTC().Format("2006-01-02 15:04:05 MST"),
		muted.Render(m.snapshot.Where.String()),
		mode,
	)
	return title + "\n" + status
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	var events []string
	for _, e := range lastEvents(m.snapshot.Events, 3) {
		events = append(events, fmt.Sprintf("%s %s %s (%.0f°)",
			e.Timestamp.UTC().Format("15:04"), e.Body, strings.ToLower(string(e.Type)), e.AzDeg))
	}
	line := "  " + accentStyle.Render("events") + " "
	if len(events) == 0 {
		line += dimStyle.Render("none yet")
	} else {
		line += dimStyle.Render(strings.Join(events, " · "))
	}
	if d := m.snapshot.BuildDuration; d > 0 {
		line += dimStyle.Render(fmt.Sprintf("  | built in %s", d.Round(time.Microsecond)))
	}

	return line + "\n  " + m.help.View(m.keys)
}

func lastEvents(events []state.Event, n int) []state.Event {
	if len(events) <= n {
		return events
	}
	return events[len(events)-n:]
}

func formatStep(d time.Duration) string {
	switch {
	case d >= 24*time.Hour && d%(24*time.Hour) == 0:
		return fmt.Sprintf("%dd", d/(24*time.Hour))
	case d >= time.Hour && d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	default:
		return fmt.Sprintf("%dm", d/time.Minute)
	}
}

// renderGradient renders text with a horizontal truecolor gradient.
func renderGradient(text string) string {
	runes := []rune(text)
	var b strings.Builder
	for col, r := range runes {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gradientColor(col, len(runes))))
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// gradientColor returns a hex color for a position in the title gradient:
// blue -> purple -> magenta -> pink.
func gradientColor(col, width int) string {
	xRatio := float64(col) / float64(max(width, 1))

	var r, g, b float64
	if xRatio < 0.33 {
		// Blue to Purple
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else if xRatio < 0.66 {
		// Purple to Magenta
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	} else {
		// Magenta to Pink
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	return fmt.Sprintf("#%02X%02X%02X", clampInt(int(r), 0, 255), clampInt(int(g), 0, 255), clampInt(int(b), 0, 255))
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
