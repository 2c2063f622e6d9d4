package motion

import "github.com/Looking-Fresh-Games/Freshynoid/vmath"

// Actuator is the locomotion surface the controller steers
// Position reads the agent's root per the configured root selector;
// Teleport is the large-displacement escape hatch and must move the root
// directly without pathing
type Actuator interface {
	SetMoveDirection(dir vmath.Vec3)
	SetFacing(dir vmath.Vec3)
	SetSpeed(speed float64)
	Teleport(position vmath.Vec3)
	Position() vmath.Vec3
	VelocityMagnitude() float64
}
