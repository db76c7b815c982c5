// Package engine implements the combustion-engine simulation core.
//
// The package owns the single mutable state aggregate and everything
// derived from it:
//
//   - [Spec]: immutable geometry and drivetrain constants
//   - [Engine]: mutable physical state (rpm, acceleration, jerk,
//     temperature) plus the gearbox and transmission mode
//   - [Metrics]: derived performance figures, recomputed as a whole on
//     every update
//   - [Upgrade]: enumerated tuning upgrades applied as pure multiplier
//     effects during each recompute
//
// # Update model
//
// One call to [Engine.Update] advances the simulation by dt seconds:
// jerk integrates into acceleration, acceleration into rpm, rpm drives
// temperature, the automatic transmission rule runs, and the full
// metric set is recomputed. All quantities saturate at their bounds;
// there are no error paths in the update itself.
//
//	e := engine.New(engine.DefaultSpec(), rand.New(rand.NewSource(42)))
//	e.Update(1.0 / 60)
//
// Engine instances are NOT thread-safe: the simulation loop is the
// only writer, and readers (dashboard, telemetry) run between updates.
package engine
