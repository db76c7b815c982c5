package engine

import (
	"math/rand"
	"testing"
)

func newTestEngine(seed int64) *Engine {
	return New(DefaultSpec(), rand.New(rand.NewSource(seed)))
}

func TestUpdateKeepsStateInBounds(t *testing.T) {
	steps := []float64{0, 1.0 / 60, 0.1, 0.5, 2.0}

	for _, dt := range steps {
		e := newTestEngine(42)
		for i := 0; i < 500; i++ {
			e.Update(dt)

			if e.RPM < e.Spec.IdleRPM || e.RPM > e.Spec.MaxRPM {
				t.Fatalf("dt=%g step=%d: rpm %f outside [%g, %g]", dt, i, e.RPM, e.Spec.IdleRPM, e.Spec.MaxRPM)
			}
			if e.Jerk < -maxJerk || e.Jerk > maxJerk {
				t.Fatalf("dt=%g step=%d: jerk %f outside ±%g", dt, i, e.Jerk, maxJerk)
			}
			if e.Acceleration < -maxAcceleration || e.Acceleration > maxAcceleration {
				t.Fatalf("dt=%g step=%d: acceleration %f outside ±%g", dt, i, e.Acceleration, maxAcceleration)
			}
			if e.Temperature < minTemperature || e.Temperature > maxTemperature {
				t.Fatalf("dt=%g step=%d: temperature %f outside [%g, %g]", dt, i, e.Temperature, minTemperature, maxTemperature)
			}
			if g := e.Gearbox.Gear(); g < 1 || g > e.Gearbox.Gears() {
				t.Fatalf("dt=%g step=%d: gear %d outside [1, %d]", dt, i, g, e.Gearbox.Gears())
			}
		}
	}
}

func TestUpdateIsDeterministicForSeed(t *testing.T) {
	a := newTestEngine(7)
	b := newTestEngine(7)

	for i := 0; i < 300; i++ {
		a.Update(1.0 / 60)
		b.Update(1.0 / 60)
	}

	if a.RPM != b.RPM || a.Temperature != b.Temperature || a.Gearbox.Gear() != b.Gearbox.Gear() {
		t.Errorf("same seed diverged: rpm %f/%f temp %f/%f gear %d/%d",
			a.RPM, b.RPM, a.Temperature, b.Temperature, a.Gearbox.Gear(), b.Gearbox.Gear())
	}
	if a.Metrics != b.Metrics {
		t.Errorf("same seed produced different metrics")
	}
}

func TestAccelerateUpshiftsOneGearPerCrossing(t *testing.T) {
	e := newTestEngine(1)
	e.RPM = e.Spec.IdleRPM

	gear := e.Gearbox.Gear()
	for i := 0; i < 400; i++ {
		before := e.RPM
		e.Accelerate()

		if g := e.Gearbox.Gear(); g != gear {
			if g != gear+1 {
				t.Fatalf("step %d: gear jumped %d -> %d", i, gear, g)
			}
			if before+throttleStepRPM <= upshiftRPM {
				t.Fatalf("step %d: upshift below threshold at rpm %f", i, before+throttleStepRPM)
			}
			gear = g
		}
		if e.Gearbox.Gear() == e.Gearbox.Gears() {
			break
		}
	}

	if gear != e.Gearbox.Gears() {
		t.Fatalf("never reached top gear, stuck at %d", gear)
	}
}

func TestDecelerateDownshiftsBackToFirst(t *testing.T) {
	e := newTestEngine(1)
	e.RPM = 4500
	for e.Gearbox.Gear() < e.Gearbox.Gears() {
		e.Gearbox.ShiftUp()
	}

	gear := e.Gearbox.Gear()
	for i := 0; i < 600; i++ {
		e.Decelerate()
		if g := e.Gearbox.Gear(); g != gear {
			if g != gear-1 {
				t.Fatalf("step %d: gear jumped %d -> %d", i, gear, g)
			}
			gear = g
		}
		if gear == 1 && e.RPM == e.Spec.IdleRPM {
			break
		}
	}

	if gear != 1 {
		t.Fatalf("never returned to first gear, stuck at %d", gear)
	}
	if e.RPM < e.Spec.IdleRPM {
		t.Errorf("rpm %f fell below idle %g", e.RPM, e.Spec.IdleRPM)
	}
}

func TestUpdateAnnouncesAutomaticShift(t *testing.T) {
	e := newTestEngine(3)
	e.RPM = 4800

	e.Update(1.0 / 60)

	if e.Gearbox.Gear() != 2 {
		t.Fatalf("expected automatic upshift to gear 2, got %d", e.Gearbox.Gear())
	}
	if !e.Shift.Active() {
		t.Fatal("expected an active shift notification")
	}
	if e.Shift.Message != "Shifted to gear 2" {
		t.Errorf("unexpected notification %q", e.Shift.Message)
	}
}

func TestManualShiftRequiresManualMode(t *testing.T) {
	e := newTestEngine(1)
	e.RPM = 3000

	e.ManualUpshift()
	if e.Gearbox.Gear() != 1 {
		t.Errorf("manual upshift in automatic mode moved gear to %d", e.Gearbox.Gear())
	}
	if e.Shift.Active() {
		t.Errorf("manual upshift in automatic mode set notification %q", e.Shift.Message)
	}
}

func TestManualShiftBoundaries(t *testing.T) {
	e := newTestEngine(1)
	e.ToggleTransmissionMode()
	e.RPM = 3000

	rpm := e.RPM
	e.ManualDownshift()
	if e.Gearbox.Gear() != 1 {
		t.Fatalf("downshift in first gear moved to %d", e.Gearbox.Gear())
	}
	if e.RPM != rpm {
		t.Errorf("downshift at boundary changed rpm %f -> %f", rpm, e.RPM)
	}
	if e.Shift.Message != "Already in lowest gear" {
		t.Errorf("unexpected notification %q", e.Shift.Message)
	}

	for e.Gearbox.Gear() < e.Gearbox.Gears() {
		e.ManualUpshift()
	}
	rpm = e.RPM
	e.ManualUpshift()
	if e.Gearbox.Gear() != e.Gearbox.Gears() {
		t.Fatalf("upshift in top gear moved to %d", e.Gearbox.Gear())
	}
	if e.RPM != rpm {
		t.Errorf("upshift at boundary changed rpm %f -> %f", rpm, e.RPM)
	}
	if e.Shift.Message != "Already in highest gear" {
		t.Errorf("unexpected notification %q", e.Shift.Message)
	}
}

func TestManualShiftCompensatesRPM(t *testing.T) {
	e := newTestEngine(1)
	e.ToggleTransmissionMode()
	e.RPM = 3500

	e.ManualUpshift()
	if e.Gearbox.Gear() != 2 {
		t.Fatalf("expected gear 2, got %d", e.Gearbox.Gear())
	}
	if e.RPM != 2000 {
		t.Errorf("expected rpm 2000 after upshift, got %f", e.RPM)
	}

	e.ManualDownshift()
	if e.Gearbox.Gear() != 1 {
		t.Fatalf("expected gear 1, got %d", e.Gearbox.Gear())
	}
	if e.RPM != 3500 {
		t.Errorf("expected rpm 3500 after downshift, got %f", e.RPM)
	}
}

func TestNotificationTicksDown(t *testing.T) {
	n := Notification{Message: "Shifted to gear 2", Remaining: noticeSeconds}

	n.Tick(1.0)
	if !n.Active() {
		t.Fatal("notification expired too early")
	}

	n.Tick(noticeSeconds)
	if n.Active() {
		t.Fatal("notification still active after expiry")
	}
	if n.Message != "" {
		t.Errorf("expected cleared message, got %q", n.Message)
	}
}
