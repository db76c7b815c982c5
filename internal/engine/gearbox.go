package engine

// DefaultGearRatios is the stock five-speed ratio set.
var DefaultGearRatios = []float64{3.42, 2.14, 1.45, 1.00, 0.83}

// Gearbox holds an ordered set of gear ratios and the current gear.
// Gears are 1-based; shifts past either end are silent no-ops.
type Gearbox struct {
	ratios []float64
	gear   int
}

func NewGearbox(ratios []float64) *Gearbox {
	r := make([]float64, len(ratios))
	copy(r, ratios)
	return &Gearbox{ratios: r, gear: 1}
}

// Ratio returns the ratio of the current gear.
func (g *Gearbox) Ratio() float64 {
	return g.ratios[g.gear-1]
}

// Gear returns the current gear, 1-based.
func (g *Gearbox) Gear() int {
	return g.gear
}

// Gears returns the number of gears.
func (g *Gearbox) Gears() int {
	return len(g.ratios)
}

// ShiftUp moves to the next higher gear if not already at the top.
func (g *Gearbox) ShiftUp() {
	if g.gear < len(g.ratios) {
		g.gear++
	}
}

// ShiftDown moves to the next lower gear if not already in first.
func (g *Gearbox) ShiftDown() {
	if g.gear > 1 {
		g.gear--
	}
}
