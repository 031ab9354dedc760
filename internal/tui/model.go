// Package tui provides the Bubble Tea slider interface for the matching sweep.
package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/RMahshie/matchviz/internal/sweep"
)

const (
	sliderResistance = iota
	sliderReactance
	sliderFrequency
)

const (
	defaultWidth = 80
	labelWidth   = 20
	pageSteps    = 10
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A9A8A"))
	trackStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle     = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

type slider struct {
	label string
	unit  string
	bound sweep.Bound
	value float64
}

// step moves the slider by n steps, snapping to the step grid and clamping.
func (s *slider) step(n int) {
	v := s.value + float64(n)*s.bound.Step
	if s.bound.Step > 0 {
		v = math.Round(v/s.bound.Step) * s.bound.Step
	}
	s.value = s.bound.Clamp(v)
}

// fraction is the slider position in [0, 1].
func (s slider) fraction() float64 {
	span := s.bound.Max - s.bound.Min
	if span <= 0 {
		return 0
	}
	return (s.value - s.bound.Min) / span
}

// Model implements the Bubble Tea sweep UI.
type Model struct {
	calc     *sweep.Calculator
	sliders  []slider
	selected int

	result *sweep.Result
	err    error

	keys keyMap
	help help.Model

	width  int
	height int
}

// NewModel constructs a sweep UI model starting at the given target. The
// start values are clamped to the limits.
func NewModel(calc *sweep.Calculator, limits sweep.Limits, start sweep.Target) *Model {
	m := &Model{
		calc: calc,
		sliders: []slider{
			sliderResistance: {label: "Target Resistance", unit: "Ω", bound: limits.ResistanceOhms},
			sliderReactance:  {label: "Target Reactance", unit: "Ω", bound: limits.ReactanceOhms},
			sliderFrequency:  {label: "Frequency", unit: "GHz", bound: limits.FrequencyGHz},
		},
		keys:  defaultKeyMap(),
		help:  help.New(),
		width: defaultWidth,
	}
	m.sliders[sliderResistance].value = limits.ResistanceOhms.Clamp(start.ResistanceOhms)
	m.sliders[sliderReactance].value = limits.ReactanceOhms.Clamp(start.ReactanceOhms)
	m.sliders[sliderFrequency].value = limits.FrequencyGHz.Clamp(start.FrequencyGHz())
	m.recompute()
	return m
}

// Target returns the target described by the current slider positions.
func (m *Model) Target() sweep.Target {
	return sweep.TargetFromGHz(
		m.sliders[sliderResistance].value,
		m.sliders[sliderReactance].value,
		m.sliders[sliderFrequency].value,
	)
}

// Result returns the sweep for the current slider positions.
func (m *Model) Result() *sweep.Result {
	return m.result
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.selected = (m.selected + len(m.sliders) - 1) % len(m.sliders)
		case key.Matches(msg, m.keys.Down):
			m.selected = (m.selected + 1) % len(m.sliders)
		case key.Matches(msg, m.keys.Left):
			m.move(-1)
		case key.Matches(msg, m.keys.Right):
			m.move(1)
		case key.Matches(msg, m.keys.PageDown):
			m.move(-pageSteps)
		case key.Matches(msg, m.keys.PageUp):
			m.move(pageSteps)
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) move(steps int) {
	before := m.sliders[m.selected].value
	m.sliders[m.selected].step(steps)
	if m.sliders[m.selected].value != before {
		m.recompute()
	}
}

func (m *Model) recompute() {
	m.result, m.err = m.calc.Compute(m.Target())
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(headingStyle.Render("Matching Network Visualizer"))
	b.WriteString("\n\n")
	for i, s := range m.sliders {
		b.WriteString(m.renderSlider(i, s))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.result != nil {
		b.WriteString(cardStyle.Render(m.renderSummary()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

func (m *Model) renderSlider(i int, s slider) string {
	cursor := "  "
	label := labelStyle.Render(padRight(s.label, labelWidth))
	if i == m.selected {
		cursor = selectedStyle.Render("› ")
		label = selectedStyle.Render(padRight(s.label, labelWidth))
	}

	width := m.barWidth()
	filled := int(math.Round(s.fraction() * float64(width)))
	bar := barStyle.Render(strings.Repeat("━", filled)) + trackStyle.Render(strings.Repeat("─", width-filled))

	return fmt.Sprintf("%s%s %s %s", cursor, label, bar, formatValue(s))
}

func (m *Model) renderSummary() string {
	res := m.result
	lines := []string{titleStyle.Render(res.Title())}

	if best, ok := res.Best(); ok {
		c := "no capacitor"
		if !best.Capacitance.Open {
			c = fmt.Sprintf("%.4g pF", best.Capacitance.Picofarads())
		}
		lines = append(lines, fmt.Sprintf("Best  L = %.4g nH   C = %s   |Zin - Ztarget| = %.4g Ω",
			best.InductanceNH(), c, best.MatchErrorOhms))
	}

	lo, hi := res.ErrorRange()
	errs := make([]float64, len(res.Points))
	for i, p := range res.Points {
		errs[i] = p.MatchErrorOhms
	}
	lines = append(lines,
		mutedStyle.Render(fmt.Sprintf("error vs L  %.3g .. %.3g Ω", lo, hi)),
		sparkline(errs, m.barWidth()+labelWidth),
	)
	if n := res.NonFinite(); n > 0 {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("%d samples are not finite", n)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) barWidth() int {
	// cursor, label, spaces and the value column
	w := m.width - labelWidth - 20
	if w < 10 {
		return 10
	}
	if w > 60 {
		return 60
	}
	return w
}

func formatValue(s slider) string {
	if s.bound.Step < 1 {
		return fmt.Sprintf("%.1f %s", s.value, s.unit)
	}
	return fmt.Sprintf("%.0f %s", s.value, s.unit)
}

func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
