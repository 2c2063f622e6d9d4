package navigation

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Looking-Fresh-Games/Freshynoid/config"
	"github.com/Looking-Fresh-Games/Freshynoid/graph"
	"github.com/Looking-Fresh-Games/Freshynoid/parameter"
	"github.com/Looking-Fresh-Games/Freshynoid/spatial"
	"github.com/Looking-Fresh-Games/Freshynoid/status"
	"github.com/Looking-Fresh-Games/Freshynoid/vmath"
)

// Provider orchestrates the primary planner, retry policy, and graph
// fallback behind a single pull-based waypoint queue
//
// Single-goroutine contract: PathToPoint, GetNextWaypoint, and Destroy are
// called from the owning controller's tick; the fallback rebuild-then-query
// sequence is a short blocking step that must never interleave with itself
type Provider struct {
	planner Planner
	backup  *graph.Graph
	params  config.AgentParameters
	logger  *zap.Logger

	// Retry policy, adjustable before the first PathToPoint
	RetryAttempts int
	RetryDelay    time.Duration
	SearchRadius  float64

	sleep func(time.Duration) // injectable for deterministic tests

	index  *spatial.Index
	queue  []Waypoint
	source Source
	goal   vmath.Vec3
	popped int // waypoints consumed from the active path

	planningFallback bool
	destroyed        bool

	// Cached stat pointers, nil until BindStats
	statPrimaryAttempts *atomic.Int64
	statPrimaryMisses   *atomic.Int64
	statFallbackPlans   *atomic.Int64
	statSynthesized     *atomic.Int64
}

// NewProvider creates a provider over an optional primary planner and an
// optional backup graph; either may be nil, not both usefully
// The graph and agent parameters are treated as immutable for the
// provider's lifetime, though graph contents may change between plans
func NewProvider(planner Planner, backup *graph.Graph, params config.AgentParameters, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Provider{
		planner:       planner,
		backup:        backup,
		params:        params,
		logger:        logger,
		RetryAttempts: parameter.PrimaryComputeAttempts,
		RetryDelay:    parameter.PrimaryRetryDelay,
		SearchRadius:  parameter.NodeSearchRadius,
		sleep:         time.Sleep,
	}
	if planner != nil {
		planner.SetBlockedFunc(p.handleBlocked)
	}
	return p
}

// BindStats caches counter pointers from the registry
func (p *Provider) BindStats(reg *status.Registry) {
	p.statPrimaryAttempts = reg.Ints.Get("nav.primary.attempts")
	p.statPrimaryMisses = reg.Ints.Get("nav.primary.misses")
	p.statFallbackPlans = reg.Ints.Get("nav.fallback.plans")
	p.statSynthesized = reg.Ints.Get("nav.fallback.synthesized")
}

// PathToPoint plans a route from start to target, populating the waypoint
// queue as a side effect; returns false only when no primary path exists
// and no backup graph was supplied
func (p *Provider) PathToPoint(start, target vmath.Vec3) bool {
	if p.destroyed {
		return false
	}

	p.source = SourceNone
	p.goal = target
	p.queue = nil
	p.popped = 0

	if p.planner != nil {
		for attempt := 1; attempt <= p.RetryAttempts; attempt++ {
			if p.statPrimaryAttempts != nil {
				p.statPrimaryAttempts.Add(1)
			}
			st, wps := p.planner.Compute(start, target)
			if st == StatusSuccess && len(wps) > 0 {
				p.queue = append([]Waypoint(nil), wps...)
				p.source = SourcePrimary
				return true
			}
			if attempt < p.RetryAttempts {
				p.sleep(p.RetryDelay)
			}
		}
		if p.statPrimaryMisses != nil {
			p.statPrimaryMisses.Add(1)
		}
		p.logger.Debug("primary planner exhausted",
			zap.Int("attempts", p.RetryAttempts))
	}

	if p.backup != nil {
		return p.planFallback(start, target)
	}
	return false
}

// GetNextWaypoint destructively pops the head of the active queue
// The second return is false once the queue is exhausted, regardless of source
func (p *Provider) GetNextWaypoint() (Waypoint, bool) {
	if len(p.queue) == 0 {
		return Waypoint{}, false
	}
	wp := p.queue[0]
	p.queue = p.queue[1:]
	p.popped++
	return wp, true
}

// Source reports the provenance of the active path
func (p *Provider) Source() Source {
	return p.source
}

// Remaining returns the number of unconsumed waypoints
func (p *Provider) Remaining() int {
	return len(p.queue)
}

// Goal returns the target recorded by the last PathToPoint
func (p *Provider) Goal() vmath.Vec3 {
	return p.goal
}

// Destroy releases the planner subscription; idempotent
func (p *Provider) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	if p.planner != nil {
		p.planner.SetBlockedFunc(nil)
	}
	p.queue = nil
	p.source = SourceNone
}

// handleBlocked reacts to the planner's asynchronous obstruction signal
// Blocks strictly behind current progress are ignored; anything at or
// ahead triggers a re-plan from the next unvisited waypoint to the goal
func (p *Provider) handleBlocked(index int) {
	if p.destroyed || p.source != SourcePrimary {
		return
	}
	if index < p.popped {
		return
	}
	from := p.goal
	if len(p.queue) > 0 {
		from = p.queue[0].Position
	}
	p.logger.Debug("primary path blocked, replanning",
		zap.Int("blockedIndex", index),
		zap.Int("progress", p.popped))
	p.PathToPoint(from, p.goal)
}

// planFallback binds start and target to the backup graph and solves
// between them; degraded lookups synthesize a minimal two-point jump path
// so callers never hard-fail while a graph exists
func (p *Provider) planFallback(start, target vmath.Vec3) bool {
	if p.planningFallback {
		p.logger.Warn("fallback plan requested mid-rebuild, dropping")
		return false
	}
	p.planningFallback = true
	defer func() { p.planningFallback = false }()

	if p.statFallbackPlans != nil {
		p.statFallbackPlans.Add(1)
	}
	p.rebuildIndex()

	startMatch, startOK := p.index.Nearest(start, p.SearchRadius)
	targetMatch, targetOK := p.index.Nearest(target, p.SearchRadius)

	if startOK && targetOK {
		path, err := Solve(p.backup, startMatch.Node.ID, targetMatch.Node.ID)
		if err == nil {
			p.queue = path.Waypoints
			p.source = SourceFallback
			return true
		}
		p.logger.Warn("fallback solve failed",
			zap.Int64("startNode", startMatch.Node.ID),
			zap.Int64("targetNode", targetMatch.Node.ID),
			zap.Error(err))
	} else {
		p.logger.Debug("no graph node within search radius",
			zap.Bool("startFound", startOK),
			zap.Bool("targetFound", targetOK),
			zap.Float64("radius", p.SearchRadius))
	}

	// Last resort: jump at start, jump at target
	if p.statSynthesized != nil {
		p.statSynthesized.Add(1)
	}
	p.queue = []Waypoint{
		{Position: start, Action: ActionJump},
		{Position: target, Action: ActionJump},
	}
	p.source = SourceFallback
	return true
}

// rebuildIndex repopulates the spatial index from the graph's current
// nodes; reuses the existing tree via Clear when the node set still fits
func (p *Provider) rebuildIndex() {
	nodes := p.backup.Nodes()
	positions := make([]vmath.Vec3, len(nodes))
	for i, n := range nodes {
		positions[i] = n.Position
	}
	bounds := spatial.BoundsOf(positions)

	if p.index != nil && p.index.Bounds().Contains(bounds.Min) && p.index.Bounds().Contains(bounds.Max) {
		p.index.Clear()
	} else {
		p.index = spatial.NewIndex(bounds.Expand(p.SearchRadius))
	}
	for _, n := range nodes {
		p.index.Insert(n.Position, n)
	}
}
