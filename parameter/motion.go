package parameter

import "time"

// Arrival Thresholds
const (
	// ArrivalEpsilon is the tight radius under which a target counts as
	// already reached before any stepping is engaged (world units)
	ArrivalEpsilon = 1.0

	// ArrivalRadius is the loose radius around the final target that
	// completes a walk in progress (world units)
	ArrivalRadius = 5.0
)

// Failure Recovery
const (
	// TeleportThreshold is the straight-line displacement above which a
	// pathless walk teleports instead of soft-locking (world units)
	TeleportThreshold = 100.0

	// NoPathAttemptLimit is failed attempts tolerated before Stuck fires
	NoPathAttemptLimit = 2

	// NoPathRetryDelay before re-requesting a path after a failure
	NoPathRetryDelay = 200 * time.Millisecond

	// ReverseStepDuration is how long a stall correction steps against
	// the current heading
	ReverseStepDuration = 100 * time.Millisecond
)

// Stall Detection
const (
	// StuckSuppressionWindow disables stall detection after any stall
	// correction, letting the reverse step take effect
	StuckSuppressionWindow = 900 * time.Millisecond

	// StallVelocityEpsilon is the speed below which a moving agent is
	// considered stalled (world units per second)
	StallVelocityEpsilon = 0.05
)

// Steering
const (
	// WaypointAdvanceFactor scales waypoint spacing into the advance
	// radius for intermediate waypoints
	WaypointAdvanceFactor = 0.8

	// DefaultWalkSpeed in world units per second
	DefaultWalkSpeed = 16.0

	// TravelBudgetFactor pads the straight-line travel time estimate to
	// allow for detours before a walk is declared overdue
	TravelBudgetFactor = 2.0

	// TravelBudgetSlack is a fixed grace added on top of the padded estimate
	TravelBudgetSlack = 1 * time.Second
)
