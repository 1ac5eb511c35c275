// Command smartport is the control core's judge-facing entry point: it
// speaks the stdio frame protocol of spec §6, keeps the authoritative
// Map/Goods/Robots/Berths/Ships state in sync with what the judge
// reports each tick, runs the scheduler and the two controllers to
// decide this frame's moves, and emits commands back over stdout.
// Grounded in original_source/gameManager.cpp's own
// initializeGame/loop/processFrameData/outputCommands structure, which
// this file mirrors one-for-one as main's top-level sequence.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/paopaochahu09/SmartPort-YYg/internal/assets"
	"github.com/paopaochahu09/SmartPort-YYg/internal/config"
	"github.com/paopaochahu09/SmartPort-YYg/internal/control"
	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
	"github.com/paopaochahu09/SmartPort-YYg/internal/lane"
	"github.com/paopaochahu09/SmartPort-YYg/internal/logx"
	"github.com/paopaochahu09/SmartPort-YYg/internal/pathfind"
	"github.com/paopaochahu09/SmartPort-YYg/internal/protocol"
	"github.com/paopaochahu09/SmartPort-YYg/internal/replay"
	"github.com/paopaochahu09/SmartPort-YYg/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "", "path to a params YAML file (defaults applied if empty)")
	replayPath := flag.String("replay", "", "optional path to write a zstd-compressed replay journal")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("smartport: load config: %v", err)
	}

	var rec *replay.Writer
	if *replayPath != "" {
		rec, err = replay.NewWriter(*replayPath)
		if err != nil {
			log.Fatalf("smartport: open replay journal: %v", err)
		}
		defer rec.Close()
	}

	if err := run(cfg, os.Stdin, os.Stdout, rec); err != nil && err != io.EOF {
		log.Fatalf("smartport: %v", err)
	}
}

func run(cfg config.Params, in io.Reader, out io.Writer, rec *replay.Writer) error {
	r := protocol.NewReader(in)
	w := protocol.NewWriter(out)
	lg := logx.New()

	init, err := r.ReadInit(cfg.Sim.MapRows, cfg.Sim.MapCols, cfg.Sim.BerthCount)
	if err != nil {
		return fmt.Errorf("read init: %w", err)
	}
	if err := w.WriteFrame(nil); err != nil {
		return fmt.Errorf("ack init: %w", err)
	}

	m, spawns, err := protocol.DecodeMap(init)
	if err != nil {
		return fmt.Errorf("decode map: %w", err)
	}
	berths := protocol.BuildBerths(init.Berths)
	for _, b := range berths {
		m.ComputeBerthDistances(b.ID, b.Footprint())
	}
	lanes := lane.Build(m)

	// Robots and ships are pre-allocated for the whole run at an
	// off-map sentinel position (original_source/gameManager.cpp
	// constructs exactly ROBOTNUMS/SHIPNUMS of them up front, each at
	// (-1,-1)); lbot/lboat only asks the judge to materialize one,
	// the judge's own per-frame report is what actually moves it onto
	// the grid.
	notSpawned := core.Point{Row: -1, Col: -1}
	robots := make([]*core.Robot, cfg.Sim.RobotCount)
	for i := range robots {
		robots[i] = core.NewRobot(core.RobotID(i), notSpawned)
	}
	ships := make([]*core.Ship, cfg.Sim.ShipCount)
	for i := range ships {
		ships[i] = core.NewShip(core.ShipID(i), notSpawned, core.East, init.ShipCap)
	}

	opts := pathfind.Options{NodeBudget: cfg.Sim.NodeBudget}
	robotCtl := control.NewRobotController(m, lanes, func(start, goal core.Point) ([]core.Point, *core.Error) {
		return pathfind.FindRobotPath(m, start, goal, opts)
	}, lg)
	shipCtl := control.NewShipController(m, func(start core.Point, orient core.Orientation, goal core.Point) ([]core.ShipStep, *core.Error) {
		return pathfind.FindShipPath(m, start, orient, goal, opts)
	}, lg)
	sched := scheduler.New(scheduler.Params{
		ClusterCount:               cfg.Scheduler.ClusterCount,
		TTLProfitWeight:            cfg.Scheduler.TTLProfitWeight,
		PartitionScheduling:        cfg.Scheduler.PartitionScheduling,
		DynamicPartitionScheduling: cfg.Scheduler.DynamicPartitionScheduling,
		RobotReleaseBound:          cfg.Scheduler.RobotReleaseBound,
		DynamicSchedulingInterval:  cfg.Scheduler.DynamicSchedulingInterval,
		ABLEDepartScale:            cfg.Scheduler.ABLEDepartScale,
		MaxShipsPerBerth:           cfg.Scheduler.MaxShipsPerBerth,
		ShipWaitTimeLimit:          cfg.Scheduler.ShipWaitTimeLimit,
	})

	// Robot spawn points double as robot shops, and berth anchors
	// double as ship shops — the wire protocol's map alphabet (spec
	// §6) has no separate shop glyph, so a purchased unit materializes
	// where the corresponding existing asset already stands.
	shipShops := make([]core.Point, 0, len(berths))
	for _, b := range berths {
		shipShops = append(shipShops, b.Anchor)
	}
	assetMgr := assets.New(assets.Params{
		MaxRobotNum:               cfg.Assets.MaxRobotNum,
		MaxShipNum:                cfg.Assets.MaxShipNum,
		StartNum:                  cfg.Assets.StartNum,
		TimeToBuyShip:             cfg.Assets.TimeToBuyShip,
		RobotFirst:                cfg.Assets.RobotFirst,
		CentralizedTransportation: cfg.Assets.CentralizedTransportation,
	}, spawns, shipShops)
	assetMgr.DivideLandConnectedBlocks(m, berths)
	assetMgr.DivideSeaConnectedBlocks(shipShops, m)
	assetMgr.DivideLandAndSeaConnectedBlocks(m, berths)

	p := &pipeline{
		m: m, lanes: lanes, berths: berths, robots: robots, ships: ships,
		robotCtl: robotCtl, shipCtl: shipCtl, sched: sched, assetMgr: assetMgr,
		ttlBound: cfg.Scheduler.TTLBound,
		log:      lg, rec: rec,
	}

	for frame := 0; frame < cfg.Sim.TotalFrames; frame++ {
		in, err := r.ReadFrame(cfg.Sim.RobotCount, cfg.Sim.ShipCount)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read frame %d: %w", frame, err)
		}
		cmds := p.step(in)
		if err := w.WriteFrame(cmds); err != nil {
			return fmt.Errorf("write frame %d: %w", frame, err)
		}
	}
	return nil
}

// pipeline holds the per-run mutable state the judge-facing loop walks
// through once per frame.
type pipeline struct {
	m      *core.Map
	lanes  *lane.Index
	berths []*core.Berth
	robots []*core.Robot
	ships  []*core.Ship
	goods  []*core.Goods

	robotCtl *control.RobotController
	shipCtl  *control.ShipController
	sched    *scheduler.Scheduler
	assetMgr *assets.Manager

	ttlBound int

	log *logx.Logger
	rec *replay.Writer

	nextGoodsID core.GoodsID
}

// step ingests one judge frame, plans, and returns the commands to
// emit — spec §6's processFrameData+decide+outputCommands rolled into
// one call.
func (p *pipeline) step(in protocol.FrameIn) []protocol.Command {
	p.log.BeginFrame(in.FrameID)

	for _, g := range p.goods {
		g.Tick()
	}
	for _, gs := range in.NewGoods {
		p.goods = append(p.goods, &core.Goods{
			ID: p.nextGoodsID, Pos: core.Point{Row: gs.Y, Col: gs.X},
			Value: gs.Value, TTL: p.ttlBound, Status: core.Unassigned, BirthFrame: in.FrameID,
		})
		p.nextGoodsID++
	}

	for i, rs := range in.Robots {
		if i >= len(p.robots) {
			break
		}
		r := p.robots[i]
		r.Pos = core.Point{Row: rs.Y, Col: rs.X}
		r.Carrying = rs.Carrying
		// Open question (b): motion_state==0 is read as Dizzy; any
		// other value returns a Dizzy robot to Idle and otherwise
		// leaves the FSM state the scheduler/controller assigned.
		if rs.MotionState == 0 {
			r.State = core.RobotDizzy
		} else if r.State == core.RobotDizzy {
			r.State = core.RobotIdle
		}
		if !r.Carrying && r.CarriedGood != core.NoGoods {
			// Open question (c): the judge's carrying flag is
			// authoritative even if our own bookkeeping disagrees.
			r.CarriedGood = core.NoGoods
		}
	}

	for i, ss := range in.Ships {
		if i >= len(p.ships) {
			break
		}
		s := p.ships[i]
		s.AssignedBerth = core.BerthID(ss.BerthID)
		_ = ss.State
	}

	var cmds []protocol.Command

	cost := func(from, to core.Point) (int, bool) { return from.Manhattan(to), true }
	for _, r := range p.robots {
		if !spawned(r.Pos) || r.State != core.RobotIdle {
			continue
		}
		decision := p.sched.ScheduleRobot(r, p.m, p.goods, p.berths, cost)
		switch decision.Action {
		case scheduler.MoveToGoods:
			if g := p.findGoods(decision.GoodsID); g != nil {
				g.Status = core.Assigned
			}
			r.TargetKind, r.TargetID, r.Destination, r.State =
				core.TargetGoods, int(decision.GoodsID), decision.Point, core.RobotMovingToGoods
		case scheduler.MoveToBerth:
			r.TargetKind, r.TargetID, r.Destination, r.State =
				core.TargetBerth, int(decision.BerthID), decision.Point, core.RobotMovingToBerth
		}
	}

	var activeRobots []*core.Robot
	for _, r := range p.robots {
		if spawned(r.Pos) {
			activeRobots = append(activeRobots, r)
		}
	}
	p.robotCtl.Run(activeRobots)
	for _, r := range activeRobots {
		if !r.CanMove() || r.NextPos == r.Pos {
			continue
		}
		if dir, ok := dirFor(r.Pos, r.NextPos); ok {
			cmds = append(cmds, protocol.Move(r.ID, dir))
		}
	}
	for _, r := range activeRobots {
		switch r.State {
		case core.RobotMovingToGoods:
			if r.Pos == r.Destination {
				if g := p.findGoods(core.GoodsID(r.TargetID)); g != nil && g.Alive() {
					cmds = append(cmds, protocol.Get(r.ID))
				}
			}
		case core.RobotMovingToBerth:
			if r.Pos == r.Destination {
				cmds = append(cmds, protocol.Pull(r.ID))
			}
		}
	}
	p.robotCtl.ApplyLaneTransitions(activeRobots)

	var activeShips []*core.Ship
	for _, s := range p.ships {
		if spawned(s.Pos) {
			activeShips = append(activeShips, s)
		}
	}
	queueLen := func(id core.BerthID) int {
		n := 0
		for _, s := range activeShips {
			if s.AssignedBerth == id {
				n++
			}
		}
		return n
	}
	for _, s := range activeShips {
		switch s.State {
		case core.ShipIdle:
			if id, ok := p.sched.AssignBerthForShip(s.Pos, p.berths, queueLen, cost); ok {
				s.AssignedBerth = id
				s.State = core.ShipMovingToBerth
				cmds = append(cmds, protocol.Berth(s.ID))
			}
		case core.ShipLoading:
			b := p.findBerth(s.AssignedBerth)
			more := b != nil && b.FreeSlotCount() < len(b.Slots) && s.HasCapacity()
			if p.sched.ScheduleShip(s, more) == scheduler.ShipDepart {
				s.State = core.ShipMovingToDelivery
				cmds = append(cmds, protocol.Dept(s.ID))
			}
		}
	}
	p.shipCtl.Run(activeShips)

	money := in.Money
	if dec := p.assetMgr.Decide(money, in.FrameID, len(activeRobots), len(activeShips)); dec.Decision != assets.BuyNothing {
		// The purchased unit is one of the pre-allocated slots the
		// judge hasn't spawned yet; lbot/lboat just asks the judge to
		// materialize it, our own bookkeeping picks it up next frame
		// once its reported position leaves the (-1,-1) sentinel.
		switch dec.Decision {
		case assets.BuyRobot:
			cmds = append(cmds, protocol.Lbot(dec.At.Col, dec.At.Row))
		case assets.BuyShip:
			cmds = append(cmds, protocol.Lboat(dec.At.Col, dec.At.Row))
		}
		p.assetMgr.RecordPurchase(dec.Decision)
	}

	if p.rec != nil {
		entry := replay.FrameEntry{Frame: in.FrameID, Money: money, Commands: len(cmds)}
		entry.RobotPos = make(map[int]core.Point, len(p.robots))
		for _, r := range p.robots {
			entry.RobotPos[int(r.ID)] = r.Pos
		}
		entry.ShipPos = make(map[int]core.Point, len(p.ships))
		for _, s := range p.ships {
			entry.ShipPos[int(s.ID)] = s.Pos
		}
		if err := p.rec.WriteFrame(entry); err != nil {
			p.log.Warnf("replay write failed: %v", err)
		}
	}

	p.m.ClearTransientBlocks()
	return cmds
}

func (p *pipeline) findGoods(id core.GoodsID) *core.Goods {
	for _, g := range p.goods {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (p *pipeline) findBerth(id core.BerthID) *core.Berth {
	for _, b := range p.berths {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// spawned reports whether pos is a real on-map position rather than
// the pre-purchase (-1,-1) sentinel.
func spawned(pos core.Point) bool {
	return pos.Row >= 0 && pos.Col >= 0
}

// dirFor translates a one-cell step into the wire protocol's
// right/left/forward/back encoding (spec §6). The source material
// available to us never pins down which absolute compass direction
// "forward" names, so we fix a convention here: East=right,
// West=left, North=forward, South=back.
func dirFor(from, to core.Point) (protocol.Dir, bool) {
	switch {
	case to.Row == from.Row && to.Col == from.Col+1:
		return protocol.DirRight, true
	case to.Row == from.Row && to.Col == from.Col-1:
		return protocol.DirLeft, true
	case to.Col == from.Col && to.Row == from.Row-1:
		return protocol.DirForward, true
	case to.Col == from.Col && to.Row == from.Row+1:
		return protocol.DirBack, true
	default:
		return 0, false
	}
}
