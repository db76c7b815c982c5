package metrics

import "github.com/san-kum/enginesim/internal/telemetry"

// Distance integrates vehicle speed over sample time, in meters.
type Distance struct {
	name     string
	prevTime float64
	total    float64
	samples  int
}

func NewDistance() *Distance {
	return &Distance{name: "distance_m"}
}

func (d *Distance) Name() string { return d.name }

func (d *Distance) Observe(s telemetry.Sample) {
	if d.samples > 0 {
		d.total += s.VehicleSpeed * (s.Time - d.prevTime)
	}
	d.prevTime = s.Time
	d.samples++
}

func (d *Distance) Value() float64 {
	return d.total
}

func (d *Distance) Reset() {
	d.prevTime = 0
	d.total = 0
	d.samples = 0
}

// PeakPower tracks the highest observed power output, in kW.
type PeakPower struct {
	name string
	max  float64
}

func NewPeakPower() *PeakPower {
	return &PeakPower{name: "peak_power_kw"}
}

func (p *PeakPower) Name() string { return p.name }

func (p *PeakPower) Observe(s telemetry.Sample) {
	if s.PowerOutput > p.max {
		p.max = s.PowerOutput
	}
}

func (p *PeakPower) Value() float64 {
	return p.max
}

func (p *PeakPower) Reset() {
	p.max = 0
}

// FuelUsed integrates the fuel flow rate (kg/h) over sample time, in kg.
type FuelUsed struct {
	name     string
	prevTime float64
	total    float64
	samples  int
}

func NewFuelUsed() *FuelUsed {
	return &FuelUsed{name: "fuel_used_kg"}
}

func (f *FuelUsed) Name() string { return f.name }

func (f *FuelUsed) Observe(s telemetry.Sample) {
	if f.samples > 0 {
		f.total += s.FuelConsumption * (s.Time - f.prevTime) / 3600
	}
	f.prevTime = s.Time
	f.samples++
}

func (f *FuelUsed) Value() float64 {
	return f.total
}

func (f *FuelUsed) Reset() {
	f.prevTime = 0
	f.total = 0
	f.samples = 0
}

// ShiftCount counts gear changes between consecutive samples.
type ShiftCount struct {
	name     string
	prevGear int
	count    int
	samples  int
}

func NewShiftCount() *ShiftCount {
	return &ShiftCount{name: "gear_shifts"}
}

func (c *ShiftCount) Name() string { return c.name }

func (c *ShiftCount) Observe(s telemetry.Sample) {
	if c.samples > 0 && s.Gear != c.prevGear {
		c.count++
	}
	c.prevGear = s.Gear
	c.samples++
}

func (c *ShiftCount) Value() float64 {
	return float64(c.count)
}

func (c *ShiftCount) Reset() {
	c.prevGear = 0
	c.count = 0
	c.samples = 0
}

// Overheat reports the fraction of samples at or above a temperature
// threshold.
type Overheat struct {
	name      string
	threshold float64
	hot       int
	samples   int
}

func NewOverheat(threshold float64) *Overheat {
	return &Overheat{name: "overheat_fraction", threshold: threshold}
}

func (o *Overheat) Name() string { return o.name }

func (o *Overheat) Observe(s telemetry.Sample) {
	o.samples++
	if s.Temperature >= o.threshold {
		o.hot++
	}
}

func (o *Overheat) Value() float64 {
	if o.samples == 0 {
		return 0
	}
	return float64(o.hot) / float64(o.samples)
}

func (o *Overheat) Reset() {
	o.hot = 0
	o.samples = 0
}
