// Package motion executes planned paths frame by frame: steering, stall
// detection and recovery, timeouts, and arrival/stuck reporting
package motion

// State is the controller's motion state
// Dead is terminal; Swimming, Falling, and Climbing are locomotion
// passthroughs reported by the host that do not alter the control loop
type State uint8

const (
	StatePaused State = iota
	StateIdle
	StateRunning
	StateDead

	StateSwimming
	StateFalling
	StateClimbing
)

func (s State) String() string {
	switch s {
	case StatePaused:
		return "Paused"
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateDead:
		return "Dead"
	case StateSwimming:
		return "Swimming"
	case StateFalling:
		return "Falling"
	case StateClimbing:
		return "Climbing"
	default:
		return "Unknown"
	}
}

// passthrough reports whether s is a locomotion substate that leaves the
// control loop untouched
func (s State) passthrough() bool {
	return s == StateSwimming || s == StateFalling || s == StateClimbing
}
