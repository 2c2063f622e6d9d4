// Package events carries motion notifications from a controller to its host
package events

// Type identifies a motion event
type Type uint8

const (
	TypeNone Type = iota

	// TypeStateChanged fires on every motion-state transition
	TypeStateChanged

	// TypeMoveToComplete fires once per confirmed arrival; Forced marks
	// a completion cut short by the travel-time budget
	TypeMoveToComplete

	// TypeStuck is the only user-visible hard-failure signal, fired once
	// after repeated failed progress
	TypeStuck
)

func (t Type) String() string {
	switch t {
	case TypeStateChanged:
		return "StateChanged"
	case TypeMoveToComplete:
		return "MoveToComplete"
	case TypeStuck:
		return "Stuck"
	default:
		return "None"
	}
}

// Event is one queued notification
type Event struct {
	Type    Type
	Payload any
}

// StateChangedPayload carries the transition endpoints as display names
type StateChangedPayload struct {
	Old, New string
}

// MoveToCompletePayload marks whether completion was forced by timeout
type MoveToCompletePayload struct {
	Forced bool
}
