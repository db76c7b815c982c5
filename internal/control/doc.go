// Package control provides feedback controllers for the drivetrain.
//
//   - [PID]: Proportional-Integral-Derivative controller on a scalar
//     measurement
//   - [Cruise]: a PID wrapper that holds vehicle speed by nudging
//     engine acceleration
//
// # Usage
//
//	cruise := control.NewCruise(25.0) // target speed, m/s
//	cruise.Enabled = true
//	// each frame:
//	e.AddAcceleration(cruise.Nudge(e.VehicleSpeed, dt))
package control
