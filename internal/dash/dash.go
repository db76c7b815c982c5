// Package dash is the live terminal dashboard: a bubbletea program
// ticking at the configured frame rate, stepping the engine with
// measured wall-clock dt and rendering gauges, metrics and an rpm
// history chart.
package dash

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/enginesim/internal/config"
	"github.com/san-kum/enginesim/internal/engine"
	"github.com/san-kum/enginesim/internal/sim"
)

const historyCapacity = 120

type TickMsg time.Time

type Model struct {
	cfg        *config.Config
	stepper    *sim.Stepper
	frameRate  int
	running    bool
	rpmHistory []float64
	err        error
}

// NewModel builds the dashboard state from a config. The engine is
// time-seeded unless the config pins a seed.
func NewModel(cfg *config.Config) (Model, error) {
	stepper, err := buildStepper(cfg)
	if err != nil {
		return Model{}, err
	}

	frameRate := cfg.Sim.FrameRate
	if frameRate <= 0 {
		frameRate = config.DefaultFrameRate
	}

	return Model{
		cfg:        cfg,
		stepper:    stepper,
		frameRate:  frameRate,
		running:    true,
		rpmHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func buildStepper(cfg *config.Config) (*sim.Stepper, error) {
	var rng *rand.Rand
	if cfg.Sim.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Sim.Seed))
	}
	e, err := cfg.BuildEngine(rng)
	if err != nil {
		return nil, err
	}
	return sim.NewStepper(e, cfg.BuildCruise()), nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles keyboard input and frame ticks. Control keys queue a
// command on the stepper; it lands on the next frame.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "a":
			m.stepper.Queue(sim.ThrottleUp)
		case "d":
			m.stepper.Queue(sim.ThrottleDown)
		case "e":
			m.stepper.Queue(sim.Upshift)
		case "q":
			m.stepper.Queue(sim.Downshift)
		case "m":
			m.stepper.Queue(sim.ToggleMode)
		case "w":
			m.stepper.Queue(sim.ToggleWater)
		case "c":
			m.stepper.Queue(sim.ToggleCruise)
		case " ":
			m.running = !m.running
			if m.running {
				m.stepper.Rebase(time.Now())
			}
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running {
			m.stepper.StepAt(time.Time(msg))
			m.rpmHistory = append(m.rpmHistory, m.stepper.Engine.RPM)
			if len(m.rpmHistory) > historyCapacity {
				m.rpmHistory = m.rpmHistory[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// reset rebuilds engine and cruise from the original config.
func (m *Model) reset() {
	stepper, err := buildStepper(m.cfg)
	if err != nil {
		m.err = err
		return
	}
	m.stepper = stepper
	m.rpmHistory = m.rpmHistory[:0]
	m.running = true
}

func (m Model) View() string {
	if m.err != nil {
		return "error: " + m.err.Error() + "\n"
	}

	e := m.stepper.Engine

	status := statusRunning.Render("● RUNNING")
	if !m.running {
		status = statusPaused.Render("◼ PAUSED")
	}
	header := headerStyle.Render("SIX-STROKE ENGINE SIMULATION") +
		"  " + status + fmt.Sprintf("  %.0f fps", m.stepper.FPS())

	state := m.statePanel(e)
	metrics := m.metricsPanel(e)
	body := lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(state), panelStyle.Render(metrics))

	chart := ""
	if len(m.rpmHistory) >= 2 {
		chart = graphStyle.Render(asciigraph.Plot(m.rpmHistory,
			asciigraph.Height(6), asciigraph.Width(60), asciigraph.Caption("RPM")))
	}

	notice := ""
	if e.Shift.Active() {
		notice = noticeStyle.Render("» " + e.Shift.Message)
	}

	help := helpStyle.Render("a/d throttle · e/q shift · m mode · w water · c cruise · space pause · r reset · esc quit")

	parts := []string{header, body}
	if chart != "" {
		parts = append(parts, chart)
	}
	if notice != "" {
		parts = append(parts, notice)
	}
	parts = append(parts, help)
	return strings.Join(parts, "\n") + "\n"
}

func (m Model) statePanel(e *engine.Engine) string {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	row("RPM", fmt.Sprintf("%5.0f  %s", e.RPM, Gauge(e.RPM/e.Spec.MaxRPM, 20)))
	row("Gear", fmt.Sprintf("%d / %d  (%s)", e.Gearbox.Gear(), e.Gearbox.Gears(), e.Mode))
	row("Speed", fmt.Sprintf("%.1f km/h", e.VehicleSpeed*3.6))
	row("Accel", fmt.Sprintf("%.1f m/s²", e.Acceleration))
	row("Jerk", fmt.Sprintf("%.1f m/s³", e.Jerk))
	b.WriteString(labelStyle.Render("Temperature") +
		TempStyle(e.Temperature).Render(fmt.Sprintf("%.1f °C", e.Temperature)) + "\n")
	row("Water inj.", onOff(e.WaterInjection))

	cruise := "off"
	if m.stepper.Cruise != nil && m.stepper.Cruise.Enabled {
		cruise = fmt.Sprintf("on → %.0f km/h", m.stepper.Cruise.PID.Target*3.6)
	}
	row("Cruise", cruise)

	if installed := e.Installed(); len(installed) > 0 {
		names := make([]string, len(installed))
		for i, u := range installed {
			names[i] = string(u)
		}
		row("Upgrades", strings.Join(names, ", "))
	}

	return b.String()
}

func (m Model) metricsPanel(e *engine.Engine) string {
	var b strings.Builder
	mt := e.Metrics

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	row("Power", fmt.Sprintf("%.1f kW", mt.PowerOutput))
	row("Torque", fmt.Sprintf("%.1f Nm", mt.Torque))
	row("Thermal eff.", fmt.Sprintf("%.1f %%", mt.ThermalEfficiency*100))
	row("Volumetric", fmt.Sprintf("%.1f %%", mt.VolumetricEfficiency*100))
	row("Fuel", fmt.Sprintf("%.2f kg/h", mt.FuelConsumption))
	row("BSFC", fmt.Sprintf("%.0f g/kWh", mt.BSFC))
	row("CO2", fmt.Sprintf("%.0f g/kWh", mt.CO2Emissions))
	row("NOx", fmt.Sprintf("%.3f g/kWh", mt.NOxEmissions))
	row("Piston speed", fmt.Sprintf("%.2f m/s", mt.PistonSpeed))

	return b.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Run starts the dashboard program and blocks until it exits.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
