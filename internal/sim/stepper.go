// Package sim drives the engine frame by frame: a wall-clock stepper
// for the live dashboard and a fixed-step headless runner for batch
// simulations.
package sim

import (
	"time"

	"github.com/san-kum/enginesim/internal/control"
	"github.com/san-kum/enginesim/internal/engine"
)

const fpsWindowFrames = 60

// throttleNudge is the acceleration delta one throttle command feeds
// into the engine, m/s².
const throttleNudge = 10.0

// Stepper owns the per-frame sequence: apply the one queued command,
// let cruise control nudge the throttle, advance the dynamics, track
// the frame rate.
type Stepper struct {
	Engine *engine.Engine
	Cruise *control.Cruise

	fps     *FPSCounter
	pending Command
	last    time.Time
	started bool
}

func NewStepper(e *engine.Engine, cruise *control.Cruise) *Stepper {
	return &Stepper{
		Engine: e,
		Cruise: cruise,
		fps:    NewFPSCounter(fpsWindowFrames),
	}
}

// Queue stores cmd for the next frame. A newer command replaces an
// unapplied older one; input faster than the frame rate collapses to
// the latest keypress.
func (s *Stepper) Queue(cmd Command) {
	s.pending = cmd
}

// FPS returns the rolling frame-rate estimate.
func (s *Stepper) FPS() float64 {
	return s.fps.Estimate()
}

// StepAt advances the simulation to wall-clock time now and returns
// the frame's dt in seconds. The first call only anchors the clock.
func (s *Stepper) StepAt(now time.Time) float64 {
	if !s.started {
		s.started = true
		s.last = now
		return 0
	}

	dt := now.Sub(s.last).Seconds()
	if dt < 0 {
		dt = 0
	}
	s.last = now

	s.StepFixed(dt)
	return dt
}

// StepFixed advances the simulation by exactly dt seconds.
func (s *Stepper) StepFixed(dt float64) {
	s.apply(s.pending)
	s.pending = None

	if s.Cruise != nil {
		s.Engine.AddAcceleration(s.Cruise.Nudge(s.Engine.VehicleSpeed, dt))
	}

	s.Engine.Update(dt)
	s.fps.Observe(dt)
}

// Rebase re-anchors the wall clock, so the pause gap is not counted
// as one giant frame when the dashboard resumes.
func (s *Stepper) Rebase(now time.Time) {
	s.last = now
	s.started = true
}

func (s *Stepper) apply(cmd Command) {
	switch cmd {
	case ThrottleUp:
		s.Engine.AddAcceleration(throttleNudge)
	case ThrottleDown:
		s.Engine.AddAcceleration(-throttleNudge)
	case Upshift:
		s.Engine.ManualUpshift()
	case Downshift:
		s.Engine.ManualDownshift()
	case ToggleMode:
		s.Engine.ToggleTransmissionMode()
	case ToggleWater:
		s.Engine.SetWaterInjection(!s.Engine.WaterInjection)
	case ToggleCruise:
		if s.Cruise != nil {
			s.Cruise.Toggle()
		}
	}
}
