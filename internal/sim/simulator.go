// Package sim wires the Map/Goods/Robots/Berths/Ships domain model
// together with the scheduler and controllers into a runnable
// frame-stepping Engine, and is the harness spec §8's end-to-end
// scenarios run against. Grounded in this repo's own original
// simulator's Config/Metrics/Simulator shape (SimulationConfig,
// SimulationMetrics, a Simulator holding them plus a step loop) but
// built over the port-logistics domain model rather than over a
// solved MAPF instance and a field-simulation bridge — neither
// core.Instance/core.Solution nor the EK-KOR2 field integration has an
// analogue in this domain, spec §1 scopes them out entirely.
package sim

import (
	"github.com/paopaochahu09/SmartPort-YYg/internal/control"
	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
	"github.com/paopaochahu09/SmartPort-YYg/internal/lane"
	"github.com/paopaochahu09/SmartPort-YYg/internal/logx"
	"github.com/paopaochahu09/SmartPort-YYg/internal/pathfind"
	"github.com/paopaochahu09/SmartPort-YYg/internal/scheduler"
)

// Config collects everything an Engine needs to run, mirroring the
// shape of the teacher's SimulationConfig: the static world plus the
// tunables that govern one run.
type Config struct {
	Map             *core.Map
	Berths          []*core.Berth
	Robots          []*core.Robot
	Ships           []*core.Ship
	SchedulerParams scheduler.Params
	NodeBudget      int // per-call pathfinder node cap, 0 means pathfind.DefaultNodeBudget
}

// Metrics accumulates run-level counters, mirroring the teacher's
// SimulationMetrics — scoped down to what this domain actually
// measures (no planning-attempt/deadline-slack stats, since there is
// no offline MAPF solve step here).
type Metrics struct {
	FramesRun       int
	GoodsPickedUp   int
	GoodsDelivered  int
	GoodsExpired    int
	MoneyEarned     int
	RobotCollisions int
	ShipCollisions  int
}

// Engine runs one frame at a time over a fixed Map/Berths/Robots/Ships
// world: tick goods TTL, schedule idle agents, resolve conflicts via
// the controllers, commit moves, then settle pickup/storage/loading.
type Engine struct {
	Frame int
	Money int

	m           *core.Map
	lanes       *lane.Index
	berths      []*core.Berth
	robots      []*core.Robot
	ships       []*core.Ship
	goods       []*core.Goods
	nextGoodsID core.GoodsID

	sched    *scheduler.Scheduler
	robotCtl *control.RobotController
	shipCtl  *control.ShipController
	log      *logx.Logger

	Metrics Metrics
}

// NewEngine builds an Engine over cfg, wiring the real A*-based
// pathfinders into the controllers (spec §4.5/§4.6's PathFunc/
// ShipPathFunc injection points) and running the lane index's offline
// detection pass once over the static map (spec §4.3).
func NewEngine(cfg Config) *Engine {
	budget := cfg.NodeBudget
	if budget <= 0 {
		budget = pathfind.DefaultNodeBudget
	}
	opts := pathfind.Options{NodeBudget: budget}

	log := logx.New()
	lanes := lane.Build(cfg.Map)

	e := &Engine{
		m:      cfg.Map,
		lanes:  lanes,
		berths: cfg.Berths,
		robots: cfg.Robots,
		ships:  cfg.Ships,
		sched:  scheduler.New(cfg.SchedulerParams),
		log:    log,
	}

	e.robotCtl = control.NewRobotController(cfg.Map, lanes, func(start, goal core.Point) ([]core.Point, *core.Error) {
		return pathfind.FindRobotPath(cfg.Map, start, goal, opts)
	}, log)
	e.shipCtl = control.NewShipController(cfg.Map, func(start core.Point, orient core.Orientation, goal core.Point) ([]core.ShipStep, *core.Error) {
		return pathfind.FindShipPath(cfg.Map, start, orient, goal, opts)
	}, log)

	for _, b := range cfg.Berths {
		e.m.ComputeBerthDistances(b.ID, b.Footprint())
	}

	return e
}

// AddGoods injects a new good with a fresh id, mirroring the frame
// ingest stage's "new_goods_count" lines (spec §6).
func (e *Engine) AddGoods(pos core.Point, value, ttl int) *core.Goods {
	id := e.nextGoodsID
	e.nextGoodsID++
	g := &core.Goods{ID: id, Pos: pos, Value: value, TTL: ttl, Status: core.Unassigned, BirthFrame: e.Frame}
	e.goods = append(e.goods, g)
	return g
}

// Goods exposes the live goods slice for test assertions.
func (e *Engine) Goods() []*core.Goods { return e.goods }

// Robots exposes the live robot slice for test assertions.
func (e *Engine) Robots() []*core.Robot { return e.robots }

// Berths exposes the berths slice for test assertions.
func (e *Engine) Berths() []*core.Berth { return e.berths }

// Step runs exactly one frame: schedule -> plan/resolve -> commit ->
// settle. Returns the robot and ship collisions observed this frame
// (spec §8 scenarios assert on these).
func (e *Engine) Step() (robotCollisions []control.RobotCollision, shipCollisions []control.ShipCollision) {
	e.log.BeginFrame(e.Frame)
	defer func() { e.Frame++ }()

	for _, g := range e.goods {
		g.Tick()
		if g.Status == core.Expired && g.DestBerth != core.NoBerthID {
			g.DestBerth = core.NoBerthID
		}
	}

	e.scheduleRobots()

	robotCollisions = e.robotCtl.Run(e.robots)
	e.Metrics.RobotCollisions += len(robotCollisions)

	e.commitRobotMoves()
	e.robotCtl.ApplyLaneTransitions(e.robots)

	e.scheduleShips()
	shipCollisions = e.shipCtl.Run(e.ships)
	e.Metrics.ShipCollisions += len(shipCollisions)
	e.commitShipMoves()

	e.m.ClearTransientBlocks()
	e.Metrics.FramesRun++
	return robotCollisions, shipCollisions
}

// scheduleRobots assigns a target to every robot that currently has
// none, per spec §4.4/§4.5's boundary: the controller only plans
// robots that already have a Destination.
func (e *Engine) scheduleRobots() {
	cost := func(from, to core.Point) (int, bool) {
		return from.Manhattan(to), true
	}
	for _, r := range e.robots {
		if r.State == core.RobotDead || r.State == core.RobotDizzy {
			continue
		}
		if r.State != core.RobotIdle {
			continue
		}
		decision := e.sched.ScheduleRobot(r, e.m, e.goods, e.berths, cost)
		switch decision.Action {
		case scheduler.MoveToGoods:
			if g := e.findGoods(decision.GoodsID); g != nil {
				g.Status = core.Assigned
			}
			r.TargetKind = core.TargetGoods
			r.TargetID = int(decision.GoodsID)
			r.Destination = decision.Point
			r.State = core.RobotMovingToGoods
		case scheduler.MoveToBerth:
			r.TargetKind = core.TargetBerth
			r.TargetID = int(decision.BerthID)
			r.Destination = decision.Point
			r.State = core.RobotMovingToBerth
		}
	}
}

func (e *Engine) findGoods(id core.GoodsID) *core.Goods {
	for _, g := range e.goods {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (e *Engine) findBerth(id core.BerthID) *core.Berth {
	for _, b := range e.berths {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// commitRobotMoves advances every robot to its resolved NextPos, then
// applies pickup/storage when a robot has just reached its target
// (spec §4.5's final step, and spec invariant I3: pickup requires the
// good to still be alive at the arrival frame).
func (e *Engine) commitRobotMoves() {
	for _, r := range e.robots {
		if r.CanMove() {
			if r.NextPos != r.Pos {
				r.PopNext()
			}
			r.Pos = r.NextPos
		}

		switch r.State {
		case core.RobotMovingToGoods:
			if r.Pos != r.Destination {
				continue
			}
			g := e.findGoods(core.GoodsID(r.TargetID))
			if g == nil || !g.Alive() || g.Status == core.Expired {
				r.State = core.RobotIdle
				r.TargetKind = core.TargetNone
				r.ClearPath()
				continue
			}
			g.Status = core.Carried
			g.Freeze()
			r.Carrying = true
			r.CarriedGood = g.ID
			r.State = core.RobotIdle
			r.TargetKind = core.TargetNone
			r.ClearPath()
			e.Metrics.GoodsPickedUp++
		case core.RobotMovingToBerth:
			if r.Pos != r.Destination {
				continue
			}
			b := e.findBerth(core.BerthID(r.TargetID))
			if b == nil || !b.StoreGood(r.CarriedGood) {
				continue
			}
			if g := e.findGoods(r.CarriedGood); g != nil {
				g.Status = core.Stored
				g.Freeze()
				e.Money += g.Value
				e.Metrics.MoneyEarned += g.Value
				e.Metrics.GoodsDelivered++
			}
			r.Carrying = false
			r.CarriedGood = core.NoGoods
			r.State = core.RobotIdle
			r.TargetKind = core.TargetNone
			r.ClearPath()
		}
	}
}

// scheduleShips assigns berths to idle ships and decides departures
// for loading ships, per spec §4.4.
func (e *Engine) scheduleShips() {
	queueLen := func(id core.BerthID) int {
		n := 0
		for _, s := range e.ships {
			if s.AssignedBerth == id && s.State != core.ShipMovingToDelivery {
				n++
			}
		}
		return n
	}
	cost := func(from, to core.Point) (int, bool) { return from.Manhattan(to), true }

	for _, s := range e.ships {
		switch s.State {
		case core.ShipIdle:
			if id, ok := e.sched.AssignBerthForShip(s.Pos, e.berths, queueLen, cost); ok {
				s.AssignedBerth = id
				s.State = core.ShipMovingToBerth
			}
		case core.ShipLoading:
			b := e.findBerth(s.AssignedBerth)
			more := b != nil && b.FreeSlotCount() < len(b.Slots) && s.HasCapacity()
			if e.sched.ScheduleShip(s, more) == scheduler.ShipDepart {
				s.State = core.ShipMovingToDelivery
				s.StillnessFrames = 0
			} else {
				e.loadShip(s, b)
			}
		}
	}
}

// loadShip transfers goods from the berth's storage onto the ship up
// to its remaining capacity, draining LoadingVelocity goods per frame
// (spec §4.4/§4.6 loading).
func (e *Engine) loadShip(s *core.Ship, b *core.Berth) {
	if b == nil {
		return
	}
	loaded := 0
	for i, id := range b.Slots {
		if loaded >= b.LoadingVelocity || !s.HasCapacity() {
			break
		}
		if id == core.NoGoods {
			continue
		}
		g := e.findGoods(id)
		if g == nil {
			continue
		}
		b.Slots[i] = core.NoGoods
		s.GoodsCount++
		s.GoodsValue += g.Value
		loaded++
	}
}

func (e *Engine) commitShipMoves() {
	for _, s := range e.ships {
		if s.NextPos != s.Pos || s.NextOrient != s.Orient {
			s.PopNext()
		} else {
			continue
		}
		s.Pos, s.Orient = s.NextPos, s.NextOrient
		if s.State == core.ShipMovingToBerth && s.Pos == e.berthAnchor(s.AssignedBerth) {
			s.State = core.ShipLoading
		}
	}
}

func (e *Engine) berthAnchor(id core.BerthID) core.Point {
	if b := e.findBerth(id); b != nil {
		return b.Anchor
	}
	return core.Point{Row: -1, Col: -1}
}
