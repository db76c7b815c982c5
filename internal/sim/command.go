package sim

// Command is a queued control input, applied at most once per frame.
type Command int

const (
	None Command = iota
	ThrottleUp
	ThrottleDown
	Upshift
	Downshift
	ToggleMode
	ToggleWater
	ToggleCruise
)

func (c Command) String() string {
	switch c {
	case ThrottleUp:
		return "throttle-up"
	case ThrottleDown:
		return "throttle-down"
	case Upshift:
		return "upshift"
	case Downshift:
		return "downshift"
	case ToggleMode:
		return "toggle-mode"
	case ToggleWater:
		return "toggle-water"
	case ToggleCruise:
		return "toggle-cruise"
	}
	return "none"
}
