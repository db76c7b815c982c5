package sim

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/san-kum/enginesim/internal/control"
	"github.com/san-kum/enginesim/internal/engine"
)

func newStepEngine(seed int64) *engine.Engine {
	return engine.New(engine.DefaultSpec(), rand.New(rand.NewSource(seed)))
}

func TestStepperFirstFrameAnchorsClock(t *testing.T) {
	s := NewStepper(newStepEngine(1), nil)
	start := time.Now()

	if dt := s.StepAt(start); dt != 0 {
		t.Errorf("first frame dt %f, want 0", dt)
	}

	dt := s.StepAt(start.Add(16 * time.Millisecond))
	if math.Abs(dt-0.016) > 1e-9 {
		t.Errorf("second frame dt %f, want 0.016", dt)
	}
}

func TestStepperAppliesQueuedCommandOnce(t *testing.T) {
	e := newStepEngine(1)
	s := NewStepper(e, nil)

	s.Queue(ToggleMode)
	s.StepFixed(1.0 / 60)
	if e.Mode != engine.Manual {
		t.Fatal("queued mode toggle not applied")
	}

	// The command must not survive into the next frame.
	s.StepFixed(1.0 / 60)
	if e.Mode != engine.Manual {
		t.Error("command applied twice")
	}
}

func TestStepperLatestCommandWins(t *testing.T) {
	e := newStepEngine(1)
	s := NewStepper(e, nil)

	s.Queue(ToggleWater)
	s.Queue(ToggleMode)
	s.StepFixed(1.0 / 60)

	if e.WaterInjection {
		t.Error("replaced command was applied")
	}
	if e.Mode != engine.Manual {
		t.Error("latest command was not applied")
	}
}

func TestStepperThrottleCommands(t *testing.T) {
	e := newStepEngine(1)
	s := NewStepper(e, nil)
	s.StepFixed(0.1)

	before := e.Acceleration
	s.Queue(ThrottleUp)
	s.StepFixed(1e-9) // tiny dt keeps the integrator from moving it far
	if e.Acceleration <= before {
		t.Errorf("throttle up did not raise acceleration: %f -> %f", before, e.Acceleration)
	}
}

func TestStepperManualShiftCommands(t *testing.T) {
	e := newStepEngine(1)
	s := NewStepper(e, nil)

	s.Queue(ToggleMode)
	s.StepFixed(1.0 / 60)

	e.RPM = 3500
	s.Queue(Upshift)
	s.StepFixed(1.0 / 60)
	if e.Gearbox.Gear() != 2 {
		t.Errorf("expected gear 2, got %d", e.Gearbox.Gear())
	}

	s.Queue(Downshift)
	s.StepFixed(1.0 / 60)
	if e.Gearbox.Gear() != 1 {
		t.Errorf("expected gear 1, got %d", e.Gearbox.Gear())
	}
}

func TestStepperCruiseNudgesTowardTarget(t *testing.T) {
	e := newStepEngine(1)
	cruise := control.NewCruise(30.0) // well above idle speed
	cruise.Enabled = true
	s := NewStepper(e, cruise)

	rpm := e.RPM
	for i := 0; i < 120; i++ {
		s.StepFixed(1.0 / 60)
	}

	if e.RPM <= rpm {
		t.Errorf("cruise below target should raise rpm: %f -> %f", rpm, e.RPM)
	}
}

func TestStepperToggleCruiseCommand(t *testing.T) {
	cruise := control.NewCruise(20.0)
	s := NewStepper(newStepEngine(1), cruise)

	s.Queue(ToggleCruise)
	s.StepFixed(1.0 / 60)
	if !cruise.Enabled {
		t.Error("cruise not enabled by command")
	}

	s.Queue(ToggleCruise)
	s.StepFixed(1.0 / 60)
	if cruise.Enabled {
		t.Error("cruise not disabled by second command")
	}
}

func TestStepperRebaseSkipsPauseGap(t *testing.T) {
	s := NewStepper(newStepEngine(1), nil)
	start := time.Now()

	s.StepAt(start)
	s.Rebase(start.Add(5 * time.Second))

	dt := s.StepAt(start.Add(5*time.Second + 16*time.Millisecond))
	if math.Abs(dt-0.016) > 1e-9 {
		t.Errorf("expected 0.016 after rebase, got %f", dt)
	}
}

func TestFPSCounterEstimate(t *testing.T) {
	f := NewFPSCounter(60)

	if f.Estimate() != 0 {
		t.Errorf("expected 0 before any frames, got %f", f.Estimate())
	}

	for i := 0; i < 120; i++ {
		f.Observe(1.0 / 60)
	}
	if got := f.Estimate(); math.Abs(got-60) > 1e-6 {
		t.Errorf("expected 60 fps, got %f", got)
	}

	f.Observe(0) // ignored
	if got := f.Estimate(); math.Abs(got-60) > 1e-6 {
		t.Errorf("zero-length frame skewed estimate to %f", got)
	}

	f.Reset()
	if f.Estimate() != 0 {
		t.Errorf("expected 0 after reset, got %f", f.Estimate())
	}
}
