package main

import (
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Looking-Fresh-Games/Freshynoid/config"
	"github.com/Looking-Fresh-Games/Freshynoid/events"
	"github.com/Looking-Fresh-Games/Freshynoid/motion"
	"github.com/Looking-Fresh-Games/Freshynoid/navigation"
	"github.com/Looking-Fresh-Games/Freshynoid/scheduler"
	"github.com/Looking-Fresh-Games/Freshynoid/status"
	"github.com/Looking-Fresh-Games/Freshynoid/vmath"
	"github.com/Looking-Fresh-Games/Freshynoid/world"
)

// gridPlanner is the demo's primary planner: breadth-first search over
// the obstacle grid, cell to cell
type gridPlanner struct {
	w       *world.World
	blocked func(index int)
}

func (p *gridPlanner) Compute(start, target vmath.Vec3) (navigation.Status, []navigation.Waypoint) {
	route := p.w.FindRoute(p.w.CellAt(start), p.w.CellAt(target))
	if route == nil {
		return navigation.StatusNoPath, nil
	}
	wps := make([]navigation.Waypoint, len(route))
	for i, c := range route {
		wps[i] = navigation.Waypoint{Position: p.w.Position(c), Action: navigation.ActionWalk}
	}
	return navigation.StatusSuccess, wps
}

func (p *gridPlanner) SetBlockedFunc(fn func(index int)) {
	p.blocked = fn
}

// simActuator integrates simple kinematics against the obstacle grid
// Wall contact zeroes measured velocity, which is what the controller's
// stall detection keys on
type simActuator struct {
	w        *world.World
	pos      vmath.Vec3
	dir      vmath.Vec3
	facing   vmath.Vec3
	speed    float64
	velocity float64
}

func (a *simActuator) SetMoveDirection(dir vmath.Vec3) { a.dir = dir }
func (a *simActuator) SetFacing(dir vmath.Vec3)        { a.facing = dir }
func (a *simActuator) SetSpeed(speed float64)          { a.speed = speed }
func (a *simActuator) Position() vmath.Vec3            { return a.pos }
func (a *simActuator) VelocityMagnitude() float64      { return a.velocity }

func (a *simActuator) Teleport(position vmath.Vec3) {
	a.pos = position
	a.velocity = 0
}

// step advances the agent, stopping dead at walls
func (a *simActuator) step(dt float64) {
	if vmath.IsZero(a.dir) {
		a.velocity = 0
		return
	}
	next := vmath.Add(a.pos, vmath.Scale(a.dir, a.speed*dt))
	if a.w.Walkable(a.w.CellAt(next)) {
		a.pos = next
		a.velocity = a.speed
	} else {
		a.velocity = 0
	}
}

// agent couples one actuator, provider, and controller, and roams
// between random open cells
type agent struct {
	id     uuid.UUID
	act    *simActuator
	ctrl   *motion.Controller
	router *events.Router
	target vmath.Vec3

	arrivals int
	stucks   int

	rng    *rand.Rand
	w      *world.World
	logger *zap.Logger
	sound  func(arrived bool)
}

func newAgent(w *world.World, sched *scheduler.Scheduler, cfg config.Config, reg *status.Registry, rng *rand.Rand, logger *zap.Logger, sound func(arrived bool)) (*agent, error) {
	g, err := w.Graph()
	if err != nil {
		return nil, err
	}

	a := &agent{
		id:     uuid.New(),
		rng:    rng,
		w:      w,
		sound:  sound,
		logger: logger,
	}
	a.act = &simActuator{w: w, pos: w.Position(w.RandomOpenCell(rng))}

	queue := events.NewQueue()
	a.router = events.NewRouter(queue)

	provider := navigation.NewProvider(&gridPlanner{w: w}, g, cfg.Agent,
		logger.With(zap.String("agent", a.id.String())))
	provider.BindStats(reg)

	a.ctrl = motion.NewController(a.act, provider, sched, queue,
		cfg.Motion, cfg.Agent, logger.With(zap.String("agent", a.id.String())))
	a.ctrl.BindStats(reg)

	a.router.On(events.TypeMoveToComplete, func(events.Event) {
		a.arrivals++
		a.sound(true)
		a.roam()
	})
	a.router.On(events.TypeStuck, func(events.Event) {
		a.stucks++
		a.sound(false)
		a.roam()
	})

	a.roam()
	return a, nil
}

// roam walks to a fresh random open cell
func (a *agent) roam() {
	a.target = a.w.Position(a.w.RandomOpenCell(a.rng))
	a.ctrl.WalkToPoint(a.target, true)
}
