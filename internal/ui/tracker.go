// Package ui provides the terminal sun tracker using Bubble Tea.
package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-sunbridge/internal/bridge"
	"github.com/litescript/ls-sunbridge/internal/config"
	"github.com/litescript/ls-sunbridge/internal/spa"
	"github.com/litescript/ls-sunbridge/internal/version"
)

// TickMsg triggers a periodic recompute.
type TickMsg time.Time

// Styles for the tracker view.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226"))

	nightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Model is the sun tracker Bubble Tea model.
type Model struct {
	cfg     config.Config
	adapter *bridge.Adapter

	width  int
	height int
	paused bool

	now      time.Time
	last     bridge.Result
	haveData bool
}

// New creates a tracker model for the configured observer.
func New(cfg config.Config, adapter *bridge.Adapter) Model {
	return Model{cfg: cfg, adapter: adapter}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.recompute, m.tickCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		if m.paused {
			return m, m.tickCmd()
		}
		return m, tea.Batch(m.recompute, m.tickCmd())

	case resultMsg:
		m.now = msg.at
		m.last = msg.result
		m.haveData = true
	}

	return m, nil
}

// resultMsg carries one computed position back into the model.
type resultMsg struct {
	at     time.Time
	result bridge.Result
}

// recompute runs one full calculation through the adapter and copies the
// record out before releasing it.
func (m Model) recompute() tea.Msg {
	obs := m.cfg.Observer
	now := time.Now().In(time.FixedZone("local", int(obs.Timezone*3600)))

	r := m.adapter.Compute(
		now.Year(), int(now.Month()), now.Day(), now.Hour(), now.Minute(),
		float64(now.Second()), obs.Timezone,
		obs.Latitude, obs.Longitude, obs.Elevation,
		m.cfg.Atmosphere.Pressure, m.cfg.Atmosphere.Temperature,
		0, 0,
		m.cfg.Surface.Slope, m.cfg.Surface.AzmRotation,
		m.cfg.Atmosphere.Refraction,
		spa.FuncAll,
	)
	if r == nil {
		// Allocation failure; keep the previous reading.
		return nil
	}
	defer m.adapter.Release(r)

	return resultMsg{at: now, result: *r}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.Refresh.Std(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ls-sunbridge " + version.Version))
	b.WriteString("\n\n")

	obs := m.cfg.Observer
	b.WriteString(row("Observer", fmt.Sprintf("%.4f°, %.4f°  %.0f m  UTC%+.1f",
		obs.Latitude, obs.Longitude, obs.Elevation, obs.Timezone)))

	if !m.haveData {
		b.WriteString("\n" + valueStyle.Render("Computing...") + "\n")
		return b.String()
	}

	r := m.last
	if r.Code != 0 {
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Calculation failed (code %d)", r.Code)) + "\n")
		b.WriteString("\n" + footerStyle.Render("q quit · space pause") + "\n")
		return b.String()
	}

	b.WriteString(row("Local time", m.now.Format("2006-01-02 15:04:05")))
	b.WriteString("\n")

	elevation := 90 - r.Zenith
	status := dayStyle.Render("SUN UP")
	if elevation < 0 {
		status = nightStyle.Render("SUN DOWN")
	}
	b.WriteString(row("Status", status))
	b.WriteString(row("Elevation", fmt.Sprintf("%+.2f°", elevation)))
	b.WriteString(row("Zenith", fmt.Sprintf("%.2f°", r.Zenith)))
	b.WriteString(row("Azimuth", fmt.Sprintf("%.2f° (%s)", r.Azimuth, compassPoint(r.Azimuth))))
	if m.cfg.Surface.Slope != 0 {
		b.WriteString(row("Incidence", fmt.Sprintf("%.2f°", r.Incidence)))
	}
	b.WriteString("\n")

	b.WriteString(row("Sunrise", FormatHours(r.Sunrise)))
	b.WriteString(row("Solar noon", fmt.Sprintf("%s  (alt %.2f°)", FormatHours(r.SunTransit), r.TransitAltitude)))
	b.WriteString(row("Sunset", FormatHours(r.Sunset)))
	b.WriteString(row("Equation of time", fmt.Sprintf("%+.2f min", r.EquationOfTime)))

	b.WriteString("\n" + footerStyle.Render("q quit · space pause"))
	if m.paused {
		b.WriteString(" " + footerStyle.Render("[paused]"))
	}
	b.WriteString("\n")

	return b.String()
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// FormatHours renders a local fractional hour as hh:mm:ss. Zero (the
// no-event value for polar days) renders as a dash.
func FormatHours(h float64) string {
	if h == 0 {
		return "--:--:--"
	}
	total := int(math.Round(h * 3600))
	return fmt.Sprintf("%02d:%02d:%02d", total/3600%24, total/60%60, total%60)
}

// compassPoint maps an azimuth (eastward from north) to a 16-point name.
func compassPoint(azDeg float64) string {
	points := []string{
		"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
		"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
	}
	idx := int(math.Mod(azDeg+11.25, 360) / 22.5)
	return points[idx]
}
