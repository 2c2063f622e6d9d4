package motion

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Looking-Fresh-Games/Freshynoid/config"
	"github.com/Looking-Fresh-Games/Freshynoid/events"
	"github.com/Looking-Fresh-Games/Freshynoid/navigation"
	"github.com/Looking-Fresh-Games/Freshynoid/parameter"
	"github.com/Looking-Fresh-Games/Freshynoid/scheduler"
	"github.com/Looking-Fresh-Games/Freshynoid/status"
	"github.com/Looking-Fresh-Games/Freshynoid/vmath"
)

// walkHandle is the structured cancellation handle minted per WalkToPoint
// Every scheduled callback checks its captured handle before acting; a
// cancelled handle means silent no-op, never an error
type walkHandle struct {
	generation uint64
	cancelled  atomic.Bool
}

func (h *walkHandle) Cancel() {
	if h != nil {
		h.cancelled.Store(true)
	}
}

// live reports whether work scheduled under this handle may still act
func (h *walkHandle) live() bool {
	return h != nil && !h.cancelled.Load()
}

// Controller is the per-frame motion state machine
// Single-goroutine contract: all methods and all scheduled callbacks run
// on the host's tick goroutine
type Controller struct {
	actuator Actuator
	provider *navigation.Provider
	sched    *scheduler.Scheduler
	queue    *events.Queue
	cfg      config.MotionConfiguration
	params   config.AgentParameters
	logger   *zap.Logger

	state      State
	locomotion State // passthrough substate, StateIdle when none

	steerHook     *scheduler.Hook
	secondaryHook *scheduler.Hook

	walk       *walkHandle
	generation uint64

	// Active walk
	target      vmath.Vec3
	pathfinding bool
	following   bool // a provider path is being consumed
	waypoint    navigation.Waypoint
	lastHeading vmath.Vec3
	walkStart   time.Duration // scheduler elapsed at walk start
	budget      time.Duration

	// Stall recovery windows, scheduler-elapsed deadlines
	reverseUntil  time.Duration
	suppressUntil time.Duration

	// Reset only on confirmed arrival
	noPathAttempts int
	lastStuckAt    time.Duration
	lastReached    vmath.Vec3

	retryTask   *scheduler.Task
	reverseTask *scheduler.Task
	destroyed   bool

	walkCyclePhase float64

	statWalks    *atomic.Int64
	statArrivals *atomic.Int64
	statStalls   *atomic.Int64
	statStuck    *atomic.Int64
}

// NewController wires a controller onto the scheduler's two tick tiers
// The provider is owned by the controller from this point and destroyed
// with it
func NewController(actuator Actuator, provider *navigation.Provider, sched *scheduler.Scheduler, queue *events.Queue, cfg config.MotionConfiguration, params config.AgentParameters, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		actuator:   actuator,
		provider:   provider,
		sched:      sched,
		queue:      queue,
		cfg:        cfg,
		params:     params,
		logger:     logger,
		state:      StateIdle,
		locomotion: StateIdle,
	}
	c.steerHook = sched.Register(scheduler.TierSteering, c.stepSteering)
	c.secondaryHook = sched.Register(scheduler.TierSecondary, c.stepSecondary)
	return c
}

// BindStats caches counter pointers from the registry
func (c *Controller) BindStats(reg *status.Registry) {
	c.statWalks = reg.Ints.Get("motion.walks")
	c.statArrivals = reg.Ints.Get("motion.arrivals")
	c.statStalls = reg.Ints.Get("motion.stalls")
	c.statStuck = reg.Ints.Get("motion.stuck")
}

// State returns the current motion state; passthrough substates shadow
// Running while reported
func (c *Controller) State() State {
	if c.state == StateRunning && c.locomotion.passthrough() {
		return c.locomotion
	}
	return c.state
}

// NoPathAttempts returns the failed-attempt count since the last arrival
func (c *Controller) NoPathAttempts() int {
	return c.noPathAttempts
}

// WalkCyclePhase is the accumulated velocity-driven cycle position, for
// hosts pacing locomotion animation
func (c *Controller) WalkCyclePhase() float64 {
	return c.walkCyclePhase
}

// ReportLocomotion records a passthrough substate from the host's physics
// (Swimming, Falling, Climbing); StateIdle clears it
// The control loop is unaffected
func (c *Controller) ReportLocomotion(s State) {
	if c.destroyed || (s != StateIdle && !s.passthrough()) {
		return
	}
	old := c.State()
	c.locomotion = s
	if now := c.State(); now != old {
		c.pushStateChanged(old, now)
	}
}

// Pause suspends steering without discarding the active walk
func (c *Controller) Pause() {
	if c.destroyed || c.state != StateRunning {
		return
	}
	c.setState(StatePaused)
	c.actuator.SetMoveDirection(vmath.Vec3{})
}

// Resume continues a paused walk
func (c *Controller) Resume() {
	if c.destroyed || c.state != StatePaused {
		return
	}
	c.setState(StateRunning)
}

// WalkToPoint starts walking toward target, cancelling any walk in
// progress. With useGraphPathfinding the route comes from the path
// provider; otherwise the agent steers straight at the target and
// escalates to pathfinding when the travel budget runs out
func (c *Controller) WalkToPoint(target vmath.Vec3, useGraphPathfinding bool) {
	if c.destroyed {
		return
	}
	h := c.mintHandle()
	if c.statWalks != nil {
		c.statWalks.Add(1)
	}

	pos := c.actuator.Position()
	if vmath.Distance(pos, target) <= c.cfg.ArrivalEpsilon {
		c.completeArrival(false)
		return
	}

	c.target = target
	c.pathfinding = useGraphPathfinding
	c.following = false
	c.walkStart = c.sched.Elapsed()
	c.budget = travelBudget(vmath.Distance(pos, target), c.cfg.WalkSpeed)
	c.lastHeading = vmath.Normalize(vmath.Sub(target, pos))
	c.reverseUntil = 0
	// Initial grace: an actuator that has not started moving yet must not
	// be flagged as stalled on the first frames of the walk
	c.suppressUntil = c.walkStart + parameter.StuckSuppressionWindow

	c.setState(StateRunning)
	c.actuator.SetSpeed(c.cfg.WalkSpeed)

	if useGraphPathfinding {
		c.requestPath(h)
	}
}

// WalkInDirection steers manually: normalizes a non-zero direction and
// sets facing and movement. keepWalking false halts current stepping first
func (c *Controller) WalkInDirection(direction vmath.Vec3, keepWalking bool) {
	if c.destroyed {
		return
	}
	if !keepWalking {
		c.haltStepping()
	}
	if vmath.IsZero(direction) {
		return
	}
	dir := vmath.Normalize(direction)
	c.lastHeading = dir
	c.actuator.SetFacing(dir)
	c.actuator.SetMoveDirection(dir)
	c.actuator.SetSpeed(c.cfg.WalkSpeed)
	c.setState(StateRunning)
}

// Destroy halts motion, cancels all scheduled work, and releases the
// provider; idempotent and terminal
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.walk.Cancel()
	c.cancelTasks()
	c.steerHook.Cancel()
	c.secondaryHook.Cancel()
	c.actuator.SetMoveDirection(vmath.Vec3{})
	c.setState(StateDead)
	c.provider.Destroy()
}

// mintHandle cancels the previous walk's handle and pending tasks and
// returns a fresh one
func (c *Controller) mintHandle() *walkHandle {
	c.walk.Cancel()
	c.cancelTasks()
	c.generation++
	c.walk = &walkHandle{generation: c.generation}
	return c.walk
}

func (c *Controller) cancelTasks() {
	if c.retryTask != nil {
		c.retryTask.Cancel()
		c.retryTask = nil
	}
	if c.reverseTask != nil {
		c.reverseTask.Cancel()
		c.reverseTask = nil
	}
}

// requestPath asks the provider for a route and primes waypoint following
// Failure runs the recovery ladder: teleport, reverse-step retry, Stuck
func (c *Controller) requestPath(h *walkHandle) {
	if !h.live() || c.destroyed {
		return
	}
	pos := c.actuator.Position()
	if c.provider.PathToPoint(pos, c.target) {
		wp, ok := c.provider.GetNextWaypoint()
		if ok {
			c.waypoint = wp
			c.following = true
			return
		}
	}
	c.handleNoPath(h, pos)
}

func (c *Controller) handleNoPath(h *walkHandle, pos vmath.Vec3) {
	if vmath.Distance(pos, c.target) > parameter.TeleportThreshold {
		c.logger.Warn("no path over large displacement, teleporting",
			zap.Float64("distance", vmath.Distance(pos, c.target)))
		c.actuator.Teleport(c.target)
		c.completeArrival(false)
		return
	}

	c.noPathAttempts++
	c.reverseStep()

	if c.noPathAttempts > parameter.NoPathAttemptLimit {
		c.fireStuck()
		return
	}
	c.retryTask = c.sched.After(parameter.NoPathRetryDelay, func() {
		c.requestPath(h)
	})
}

// reverseStep briefly walks against the last heading to break contact
// with whatever blocked progress
func (c *Controller) reverseStep() {
	if vmath.IsZero(c.lastHeading) {
		return
	}
	c.actuator.SetMoveDirection(vmath.Neg(c.lastHeading))
	c.reverseUntil = c.sched.Elapsed() + parameter.ReverseStepDuration
	if c.reverseTask != nil {
		c.reverseTask.Cancel()
	}
	h := c.walk
	c.reverseTask = c.sched.After(parameter.ReverseStepDuration, func() {
		if h.live() && c.state == StateRunning {
			c.actuator.SetMoveDirection(vmath.Vec3{})
		}
	})
}

// stepSteering is the per-frame control loop on the steering tier
func (c *Controller) stepSteering(dt time.Duration) {
	if c.destroyed || c.state != StateRunning || !c.walk.live() {
		return
	}

	now := c.sched.Elapsed()
	if now < c.reverseUntil {
		return // reverse step in progress
	}

	pos := c.actuator.Position()

	if !c.pathfinding {
		c.stepDirect(pos, now)
		return
	}
	if c.following {
		c.stepFollowing(pos, now)
	}
}

// stepDirect steers straight at the target, escalating to pathfinding
// when the travel budget runs out
func (c *Controller) stepDirect(pos vmath.Vec3, now time.Duration) {
	if now-c.walkStart > c.budget {
		c.logger.Debug("direct walk overdue, escalating to pathfinding",
			zap.Duration("budget", c.budget))
		c.WalkToPoint(c.target, true)
		return
	}
	dist := vmath.Distance(pos, c.target)
	if dist <= c.cfg.ArrivalRadius && dist <= c.cfg.ArrivalEpsilon {
		c.completeArrival(false)
		return
	}
	c.steerToward(c.target, pos)
}

// stepFollowing consumes the provider's waypoint stream
func (c *Controller) stepFollowing(pos vmath.Vec3, now time.Duration) {
	if now-c.walkStart > c.budget {
		c.completeArrival(true)
		return
	}
	if vmath.Distance(pos, c.target) <= c.cfg.ArrivalRadius {
		c.completeArrival(false)
		return
	}

	if now >= c.suppressUntil && c.actuator.VelocityMagnitude() < parameter.StallVelocityEpsilon {
		c.stall()
		return
	}

	advanceRadius := parameter.WaypointAdvanceFactor * c.params.WaypointSpacing
	if vmath.Distance(pos, c.waypoint.Position) <= advanceRadius {
		wp, ok := c.provider.GetNextWaypoint()
		if !ok {
			c.completeArrival(false)
			return
		}
		c.waypoint = wp
	}
	c.steerToward(c.waypoint.Position, pos)
}

// stall reverses the current heading briefly and opens the suppression
// window so the correction is not itself flagged as a stall
func (c *Controller) stall() {
	if c.statStalls != nil {
		c.statStalls.Add(1)
	}
	c.logger.Debug("stall detected, reversing",
		zap.Float64("velocity", c.actuator.VelocityMagnitude()))
	c.reverseStep()
	c.suppressUntil = c.sched.Elapsed() + parameter.StuckSuppressionWindow
}

func (c *Controller) steerToward(target, pos vmath.Vec3) {
	dir := vmath.Normalize(vmath.Sub(target, pos))
	if vmath.IsZero(dir) {
		return
	}
	if c.reverseTask != nil {
		// steering resumed, the pending reverse stop must not clobber it
		c.reverseTask.Cancel()
		c.reverseTask = nil
	}
	c.lastHeading = dir
	c.actuator.SetMoveDirection(dir)
	c.actuator.SetFacing(vmath.Flatten(dir))
}

// stepSecondary runs on the lower-priority tier: velocity-derived effects
// only, no steering decisions
func (c *Controller) stepSecondary(dt time.Duration) {
	if c.destroyed || c.state != StateRunning || !c.walk.live() {
		return
	}
	cycle := c.cfg.WalkCycleSpeed
	if cycle == 0 {
		cycle = c.cfg.WalkSpeed
	}
	if cycle <= 0 {
		cycle = parameter.DefaultWalkSpeed
	}
	c.walkCyclePhase += c.actuator.VelocityMagnitude() / cycle * dt.Seconds()
}

// completeArrival fires MoveToComplete and resets the per-walk failure
// bookkeeping; forced marks a completion cut short by the travel budget
func (c *Controller) completeArrival(forced bool) {
	c.noPathAttempts = 0
	c.lastReached = c.actuator.Position()
	if c.statArrivals != nil {
		c.statArrivals.Add(1)
	}
	c.haltStepping()
	c.queue.Push(events.Event{
		Type:    events.TypeMoveToComplete,
		Payload: events.MoveToCompletePayload{Forced: forced},
	})
}

// fireStuck reports the hard failure once and halts automatic retries
// The attempt counter is deliberately not reset; only arrival resets it
func (c *Controller) fireStuck() {
	c.lastStuckAt = c.sched.Elapsed()
	if c.statStuck != nil {
		c.statStuck.Add(1)
	}
	c.logger.Warn("stuck, halting retries",
		zap.Int("attempts", c.noPathAttempts))
	c.haltStepping()
	c.queue.Push(events.Event{Type: events.TypeStuck})
}

// haltStepping stops movement and invalidates the active walk
func (c *Controller) haltStepping() {
	c.walk.Cancel()
	c.cancelTasks()
	c.following = false
	c.actuator.SetMoveDirection(vmath.Vec3{})
	if c.state == StateRunning || c.state == StatePaused {
		c.setState(StateIdle)
	}
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	old := c.State()
	c.state = s
	c.pushStateChanged(old, c.State())
}

func (c *Controller) pushStateChanged(old, new State) {
	c.queue.Push(events.Event{
		Type:    events.TypeStateChanged,
		Payload: events.StateChangedPayload{Old: old.String(), New: new.String()},
	})
}

// travelBudget pads the straight-line time estimate for detours
func travelBudget(distance, speed float64) time.Duration {
	if speed <= 0 {
		speed = parameter.DefaultWalkSpeed
	}
	estimate := time.Duration(distance / speed * parameter.TravelBudgetFactor * float64(time.Second))
	return estimate + parameter.TravelBudgetSlack
}
