package control

// Cruise holds vehicle speed with a PID loop whose output feeds the
// engine's acceleration state. The output is clamped so a large speed
// error cannot slam the drivetrain past what a driver could command.
type Cruise struct {
	PID      *PID
	Enabled  bool
	MaxNudge float64 // acceleration delta per frame, m/s²
}

// NewCruise returns a disabled cruise controller targeting the given
// vehicle speed in m/s, with gains tuned for the stock drivetrain.
func NewCruise(targetSpeed float64) *Cruise {
	return &Cruise{
		PID:      NewPID(2.0, 0.1, 0.5, targetSpeed),
		MaxNudge: 5.0,
	}
}

// Toggle flips the controller on or off, resetting accumulated state
// on every transition so stale integral windup never carries over.
func (c *Cruise) Toggle() bool {
	c.Enabled = !c.Enabled
	c.PID.Reset()
	return c.Enabled
}

// SetTarget retargets the controller without disturbing its state.
func (c *Cruise) SetTarget(speed float64) {
	c.PID.Target = speed
}

// Nudge returns the acceleration delta for the current speed, or zero
// when the controller is disabled.
func (c *Cruise) Nudge(speed, dt float64) float64 {
	if !c.Enabled {
		return 0
	}
	u := c.PID.Update(speed, dt)
	if u > c.MaxNudge {
		return c.MaxNudge
	}
	if u < -c.MaxNudge {
		return -c.MaxNudge
	}
	return u
}
