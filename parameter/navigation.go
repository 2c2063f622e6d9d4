package parameter

import "time"

// Path Provider
const (
	// PrimaryComputeAttempts is the fixed retry budget for the primary planner
	PrimaryComputeAttempts = 3

	// PrimaryRetryDelay is the fixed pause between primary attempts
	PrimaryRetryDelay = 100 * time.Millisecond

	// NodeSearchRadius bounds the nearest-node lookup when binding a
	// world point to the backup graph (world units)
	NodeSearchRadius = 80.0
)

// Agent Defaults
const (
	DefaultAgentRadius     = 2.0
	DefaultAgentHeight     = 5.0
	DefaultWaypointSpacing = 4.0
)
