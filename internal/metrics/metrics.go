// Package metrics aggregates per-frame telemetry into trip summaries.
package metrics

import "github.com/san-kum/enginesim/internal/telemetry"

// Metric consumes telemetry samples in time order and reduces them to
// a single summary value.
type Metric interface {
	Name() string
	Observe(s telemetry.Sample)
	Value() float64
	Reset()
}

// DefaultSet returns the trip metrics recorded for every run.
func DefaultSet() []Metric {
	return []Metric{
		NewDistance(),
		NewPeakPower(),
		NewFuelUsed(),
		NewShiftCount(),
		NewOverheat(100),
	}
}
