// Package tui renders a live view of a vibration session: support and
// activity state with keys to fire presets.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkrall/hapt/pattern"
	"github.com/mkrall/hapt/session"
)

// StateMsg delivers a controller state snapshot into the program.
type StateMsg session.State

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	lastPatStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

type keyMap struct {
	Tap     key.Binding
	Double  key.Binding
	Success key.Binding
	Warning key.Binding
	Error   key.Binding
	SOS     key.Binding
	Stop    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.Success, k.Error, k.Stop, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tap, k.Double, k.Success},
		{k.Warning, k.Error, k.SOS},
		{k.Stop, k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Tap:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tap")),
		Double:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "double")),
		Success: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "success")),
		Warning: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "warning")),
		Error:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "error")),
		SOS:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sos")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the bubbletea model for the session view.
type Model struct {
	ctrl      *session.Controller
	deviceDir string
	state     session.State
	last      string
	keys      keyMap
	help      help.Model
	width     int
}

// New creates a session view around an existing controller.
func New(ctrl *session.Controller, deviceDir string) Model {
	return Model{
		ctrl:      ctrl,
		deviceDir: deviceDir,
		state:     ctrl.State(),
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case StateMsg:
		m.state = session.State(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.ctrl.Stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Stop):
			m.last = "stop"
			m.ctrl.Stop()
		case key.Matches(msg, m.keys.Tap):
			m.fire("tap")
		case key.Matches(msg, m.keys.Double):
			m.fire("double")
		case key.Matches(msg, m.keys.Success):
			m.fire("success")
		case key.Matches(msg, m.keys.Warning):
			m.fire("warning")
		case key.Matches(msg, m.keys.Error):
			m.fire("error")
		case key.Matches(msg, m.keys.SOS):
			m.fire("sos")
		}
	}
	return m, nil
}

func (m *Model) fire(name string) {
	p, ok := pattern.Named(name)
	if !ok {
		return
	}
	m.last = fmt.Sprintf("%s %s", name, p.String())
	m.ctrl.Trigger(p)
}

// View implements tea.Model.
func (m Model) View() string {
	var support string
	if m.state.Supported {
		support = okStyle.Render("● device ready")
	} else {
		support = missingStyle.Render("○ no device")
	}

	var activity string
	if m.state.Active {
		activity = activeStyle.Render("◉ BUZZING")
	} else {
		activity = idleStyle.Render("○ idle")
	}

	sep := borderStyle.Render(" | ")
	status := support + sep + activity
	if m.last != "" {
		status += sep + lastPatStyle.Render(m.last)
	}

	width := m.width
	if width < 48 {
		width = 48
	}
	bar := lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(status)

	title := titleStyle.Render("hapt") + idleStyle.Render(" "+m.deviceDir)
	return title + "\n" + bar + "\n" + m.help.View(m.keys) + "\n"
}
