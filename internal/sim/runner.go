package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/enginesim/internal/engine"
	"github.com/san-kum/enginesim/internal/metrics"
	"github.com/san-kum/enginesim/internal/telemetry"
)

// Config holds the headless run parameters.
type Config struct {
	Dt       float64
	Duration float64
	Seed     int64
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	return nil
}

// Result is a completed headless run: every frame's telemetry plus
// the reduced trip metrics.
type Result struct {
	Samples []telemetry.Sample
	Metrics map[string]float64
}

// Run advances the engine with a fixed step until the configured
// duration elapses or ctx is cancelled. Cancellation returns the
// partial result alongside the context error. The initial state is
// recorded as the t=0 sample.
func Run(ctx context.Context, e *engine.Engine, cfg Config, ms []metrics.Metric) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Samples: make([]telemetry.Sample, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range ms {
		m.Reset()
	}

	t := 0.0
	s := telemetry.Snapshot(e, t)
	for _, m := range ms {
		m.Observe(s)
	}
	result.Samples = append(result.Samples, s)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			collectMetrics(ms, result)
			return result, ctx.Err()
		default:
		}

		e.Update(cfg.Dt)
		t += cfg.Dt

		s = telemetry.Snapshot(e, t)
		for _, m := range ms {
			m.Observe(s)
		}
		result.Samples = append(result.Samples, s)
	}

	collectMetrics(ms, result)
	return result, nil
}

func collectMetrics(ms []metrics.Metric, result *Result) {
	for _, m := range ms {
		result.Metrics[m.Name()] = m.Value()
	}
}
