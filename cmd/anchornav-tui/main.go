package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-anchornav/pkg/config"
	"github.com/dd0wney/cluso-anchornav/pkg/logging"
	"github.com/dd0wney/cluso-anchornav/pkg/metrics"
	"github.com/dd0wney/cluso-anchornav/pkg/navigation"
	"github.com/dd0wney/cluso-anchornav/pkg/simulation"
	"github.com/dd0wney/cluso-anchornav/pkg/waypoint"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	markerBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FFFF00")).
			Padding(1, 2)

	onRouteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF")).
			Bold(true)

	nearestStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	reachedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	noRouteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Pause key.Binding
	Step  key.Binding
	Reset key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Pause: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space", "pause/resume"),
	),
	Step: key.NewBinding(
		key.WithKeys("n", "right"),
		key.WithHelp("n", "step"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restart"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Step, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Step},
		{k.Reset, k.Quit},
	}
}

type model struct {
	scenario *simulation.Scenario
	sim      *simulation.Simulation
	reg      *metrics.Registry
	interval time.Duration
	paused   bool
	help     help.Model
	keys     keyMap
	width    int
	err      error
}

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func initialModel(sc *simulation.Scenario, interval time.Duration) model {
	m := model{
		scenario: sc,
		reg:      metrics.NewRegistry(),
		interval: interval,
		help:     help.New(),
		keys:     keys,
	}
	m.sim, m.err = simulation.New(sc, logging.NewNopLogger(), m.reg)
	return m
}

func (m model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tickMsg:
		if m.sim != nil && !m.paused && !m.sim.Done() {
			m.sim.Step()
		}
		return m, tickCmd(m.interval)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.sim != nil {
				m.sim.Close()
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused

		case key.Matches(msg, m.keys.Step):
			if m.sim != nil && !m.sim.Done() {
				m.sim.Step()
			}

		case key.Matches(msg, m.keys.Reset):
			if m.sim != nil {
				m.sim.Close()
			}
			m.reg = metrics.NewRegistry()
			m.sim, m.err = simulation.New(m.scenario, logging.NewNopLogger(), m.reg)
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.err != nil {
		return noRouteStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n"
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf("Anchor navigation: %s", m.scenario.Name)))
	s.WriteString("\n\n")

	snap := m.sim.Last()
	status := lipgloss.JoinHorizontal(lipgloss.Top,
		statsBoxStyle.Render(m.renderStatus(snap)),
		markerBoxStyle.Render(m.renderMarkers()),
	)
	s.WriteString(contentStyle.Render(status))
	s.WriteString("\n\n")

	s.WriteString(contentStyle.Render(headerStyle.Render("Waypoints")))
	s.WriteString("\n")
	s.WriteString(contentStyle.Render(m.renderWaypoints(snap)))

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderStatus(snap navigation.Snapshot) string {
	var state string
	switch snap.State {
	case navigation.DestinationReached:
		state = reachedStyle.Render("Destination reached")
	case navigation.RouteActive:
		state = onRouteStyle.Render("Following route")
	default:
		state = noRouteStyle.Render("No route")
	}
	if m.paused {
		state += pendingStyle.Render("  (paused)")
	}

	nearest := string(snap.Nearest)
	if nearest == "" {
		nearest = "-"
	}
	route := "-"
	if len(snap.Route) > 0 {
		route = snap.Route.String()
	}
	user := m.sim.Walk.UserPosition()

	return fmt.Sprintf(`%s

Tick:        %d
User:        (%.1f, %.1f, %.1f)
Nearest:     %s
Destination: %s
Route:       %s
Hops:        %d`,
		state,
		snap.Tick,
		user.X, user.Y, user.Z,
		nearest,
		snap.Destination,
		route,
		snap.Route.Hops(),
	)
}

func (m model) renderMarkers() string {
	markers := m.sim.Sink.Live()
	placed, removed := m.sim.Sink.Counts()

	var s strings.Builder
	s.WriteString(fmt.Sprintf("Markers: %d live (%d placed, %d removed)\n\n", len(markers), placed, removed))
	if len(markers) == 0 {
		s.WriteString(pendingStyle.Render("nothing drawn"))
		return s.String()
	}
	for _, mk := range markers {
		if mk.Kind == simulation.Arrival {
			s.WriteString(reachedStyle.Render(fmt.Sprintf("◎ arrival at (%.1f, %.1f, %.1f)",
				mk.Position.X, mk.Position.Y, mk.Position.Z)))
		} else {
			s.WriteString(fmt.Sprintf("%s (%.1f, %.1f, %.1f) heading %3.0f°",
				arrow(mk.Heading), mk.Position.X, mk.Position.Y, mk.Position.Z, mk.Heading))
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m model) renderWaypoints(snap navigation.Snapshot) string {
	var s strings.Builder
	for _, w := range m.sim.Session.Graph().Waypoints() {
		line := fmt.Sprintf("%-10s %-16s %-12s", w.ID, w.Name, w.Type)
		if pose, ok := w.Pose(); ok {
			line += fmt.Sprintf(" (%.1f, %.1f, %.1f)", pose.Position.X, pose.Position.Y, pose.Position.Z)
		} else {
			line += " unresolved"
		}

		switch {
		case w.ID == snap.Nearest:
			line = nearestStyle.Render(line)
		case snap.Route.Contains(w.ID):
			line = onRouteStyle.Render(line)
		case !w.Resolved():
			line = pendingStyle.Render(line)
		}
		s.WriteString(line)
		s.WriteString("\n")
	}
	return s.String()
}

// arrow picks the glyph closest to a heading measured from +Z toward +X
func arrow(heading float64) string {
	glyphs := []string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}
	i := int((heading+22.5)/45) % len(glyphs)
	return glyphs[i]
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	destination := flag.String("destination", "", "Destination waypoint id (overrides scenario)")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: anchornav-tui [-config file] [-destination id] scenario.yaml")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	sc, err := simulation.LoadScenario(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}
	if *destination != "" {
		sc.Destination = *destination
	}
	if !hasWaypoint(sc, waypoint.ID(sc.Destination)) {
		log.Fatalf("Destination %q is not part of scenario %s", sc.Destination, sc.Name)
	}

	p := tea.NewProgram(initialModel(sc, cfg.Simulation.TickInterval), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}

func hasWaypoint(sc *simulation.Scenario, id waypoint.ID) bool {
	for _, w := range sc.Waypoints {
		if waypoint.ID(w.ID) == id {
			return true
		}
	}
	return false
}
