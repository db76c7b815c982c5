package engine

import (
	"fmt"
	"math"
)

const (
	maxJerk         = 500.0
	maxAcceleration = 50.0
	minTemperature  = 85.0
	maxTemperature  = 110.0

	upshiftRPM   = 4000.0
	downshiftRPM = 2000.0
	shiftRPMStep = 1500.0

	throttleStepRPM = 100.0
	noticeSeconds   = 3.0

	// rpm gain per unit acceleration, makes throttle visible at 60 Hz.
	rpmPerAccel = 10.0
)

// Update advances the engine by dt seconds: jerk noise integrates into
// acceleration, acceleration into rpm, rpm drives temperature, the
// automatic shift rule runs, and the metrics are recomputed. Every
// quantity saturates at its bounds.
func (e *Engine) Update(dt float64) {
	e.Jerk += float64(e.rng.Intn(201)-100) * dt
	e.Jerk = clamp(e.Jerk, -maxJerk, maxJerk)

	e.Acceleration += e.Jerk * dt
	e.Acceleration = clamp(e.Acceleration, -maxAcceleration, maxAcceleration)

	e.RPM = clamp(e.RPM+e.Acceleration*dt*rpmPerAccel, e.Spec.IdleRPM, e.Spec.MaxRPM)

	if e.Acceleration > 0 {
		e.Temperature += 0.5 * dt
	} else {
		e.Temperature -= 0.2 * dt
	}
	e.Temperature = clamp(e.Temperature, minTemperature, maxTemperature)

	// 0.5% chance per frame the water cycle flips on its own.
	if e.rng.Intn(1000) < 5 {
		e.WaterInjection = !e.WaterInjection
	}

	prev := e.Gearbox.Gear()
	if e.Mode == Automatic {
		e.autoShift()
	}
	e.RPM = clamp(e.RPM, e.Spec.IdleRPM, e.Spec.MaxRPM)

	e.Recompute()

	if g := e.Gearbox.Gear(); g != prev {
		e.notify(fmt.Sprintf("Shifted to gear %d", g))
	} else {
		e.Shift.Tick(dt)
	}
}

// autoShift applies the rpm-threshold rule: one gear per crossing,
// with the rpm compensation that drops it back out of the window.
func (e *Engine) autoShift() {
	switch {
	case e.RPM > upshiftRPM && e.Gearbox.Gear() < e.Gearbox.Gears():
		e.Gearbox.ShiftUp()
		e.RPM -= shiftRPMStep
	case e.RPM < downshiftRPM && e.Gearbox.Gear() > 1:
		e.Gearbox.ShiftDown()
		e.RPM += shiftRPMStep
	}
}

// AddAcceleration feeds a control delta into the acceleration state.
// The next Update clamps it; this is the per-frame throttle input.
func (e *Engine) AddAcceleration(delta float64) {
	e.Acceleration += delta
}

// Accelerate is the discrete control step: +100 rpm, a temperature
// nudge that tapers toward the hot end, recompute, then the automatic
// shift check.
func (e *Engine) Accelerate() {
	e.RPM = math.Min(e.RPM+throttleStepRPM, e.Spec.MaxRPM)

	rise := 0.5 * (1 - (e.Temperature-90)/100)
	e.Temperature = math.Min(e.Temperature+math.Max(0, rise), maxTemperature)

	e.Recompute()

	if e.Mode == Automatic && e.RPM > upshiftRPM && e.Gearbox.Gear() < e.Gearbox.Gears() {
		e.Gearbox.ShiftUp()
		e.RPM = math.Max(e.RPM-shiftRPMStep, e.Spec.IdleRPM)
	}
}

// Decelerate mirrors Accelerate: −100 rpm, cooling nudge, recompute,
// automatic downshift check.
func (e *Engine) Decelerate() {
	e.RPM = math.Max(e.RPM-throttleStepRPM, e.Spec.IdleRPM)

	fall := 0.2 * ((e.Temperature - 90) / 100)
	e.Temperature = math.Max(e.Temperature-math.Max(0, fall), minTemperature)

	e.Recompute()

	if e.Mode == Automatic && e.RPM < downshiftRPM && e.Gearbox.Gear() > 1 {
		e.Gearbox.ShiftDown()
		e.RPM = math.Min(e.RPM+shiftRPMStep, e.Spec.MaxRPM)
	}
}

// ManualUpshift attempts one upshift in manual mode with the same rpm
// compensation the automatic rule applies. At the top gear it changes
// nothing and reports the boundary.
func (e *Engine) ManualUpshift() {
	if e.Mode != Manual {
		return
	}
	prev := e.Gearbox.Gear()
	e.Gearbox.ShiftUp()
	if g := e.Gearbox.Gear(); g != prev {
		e.RPM = math.Max(e.RPM-shiftRPMStep, e.Spec.IdleRPM)
		e.Recompute()
		e.notify(fmt.Sprintf("Manually shifted up to gear %d", g))
	} else {
		e.notify("Already in highest gear")
	}
}

// ManualDownshift is the downward counterpart of ManualUpshift.
func (e *Engine) ManualDownshift() {
	if e.Mode != Manual {
		return
	}
	prev := e.Gearbox.Gear()
	e.Gearbox.ShiftDown()
	if g := e.Gearbox.Gear(); g != prev {
		e.RPM = math.Min(e.RPM+shiftRPMStep, e.Spec.MaxRPM)
		e.Recompute()
		e.notify(fmt.Sprintf("Manually shifted down to gear %d", g))
	} else {
		e.notify("Already in lowest gear")
	}
}
