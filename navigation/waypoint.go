package navigation

import "github.com/Looking-Fresh-Games/Freshynoid/vmath"

// Action tags a waypoint with the locomotion required to reach it
type Action int

const (
	ActionWalk Action = iota
	ActionJump
	ActionClimb
	ActionSwim
)

func (a Action) String() string {
	switch a {
	case ActionWalk:
		return "Walk"
	case ActionJump:
		return "Jump"
	case ActionClimb:
		return "Climb"
	case ActionSwim:
		return "Swim"
	default:
		return "Unknown"
	}
}

// Waypoint is one stop along a planned route
type Waypoint struct {
	Position vmath.Vec3
	Action   Action
	Label    string
}

// Source records which planner produced the active path
type Source int

const (
	SourceNone Source = iota
	SourcePrimary
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourcePrimary:
		return "Primary"
	case SourceFallback:
		return "Fallback"
	default:
		return "None"
	}
}

// Path is an ordered waypoint sequence with provenance
// Consumption through Provider.GetNextWaypoint is strictly FIFO and destructive
type Path struct {
	Waypoints []Waypoint
	Source    Source
	Cost      float64
}

// Status is the primary planner's result code
type Status int

const (
	StatusSuccess Status = iota
	StatusNoPath
	StatusFailure
)

// Planner is the external primary path-planning engine, treated as a black box
// Compute is synchronous; an in-flight computation cannot be cancelled, only
// attempt-count exhaustion ends the retry loop
type Planner interface {
	Compute(start, target vmath.Vec3) (Status, []Waypoint)

	// SetBlockedFunc subscribes to asynchronous "blocked at waypoint index N"
	// signals; passing nil releases the subscription
	SetBlockedFunc(fn func(index int))
}
