package dash

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	statusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	statusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))

	gaugeHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	gaugeMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	gaugeLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
)

// Gauge renders a filled bar for a 0..1 fraction, colored by load.
func Gauge(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if fraction > 0.8 {
		return gaugeHigh.Render(bar)
	} else if fraction > 0.5 {
		return gaugeMid.Render(bar)
	}
	return gaugeLow.Render(bar)
}

// TempStyle picks a color for a coolant temperature readout.
func TempStyle(celsius float64) lipgloss.Style {
	switch {
	case celsius >= 100:
		return gaugeHigh
	case celsius >= 95:
		return gaugeMid
	default:
		return gaugeLow
	}
}
