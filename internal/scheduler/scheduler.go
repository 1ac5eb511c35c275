// Package scheduler assigns targets — cargo and berths to robots,
// berths and delivery points to ships — per spec §4.4. Grounded in
// original_source/params.h's tunables (CLUSTERNUMS, TTL_ProfitWeight,
// PartitionScheduling, DynamicPartitionScheduling,
// DynamicSchedulingInterval, robotReleaseBound, ABLE_DEPART_SCALE,
// SHIP_WAIT_TIME_LIMIT, MAX_SHIP_NUM) and robotController.cpp's
// needPathfinding gate (an Idle/target-less robot is exactly who the
// scheduler must assign).
package scheduler

import (
	"sort"

	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
)

// Action is what the scheduler decided a robot should do this frame.
type Action int

const (
	Fail Action = iota
	MoveToGoods
	MoveToBerth
	Continue
)

func (a Action) String() string {
	switch a {
	case Fail:
		return "Fail"
	case MoveToGoods:
		return "MoveToGoods"
	case MoveToBerth:
		return "MoveToBerth"
	case Continue:
		return "Continue"
	default:
		return "Unknown"
	}
}

// RobotDecision is schedule_robot's return value.
type RobotDecision struct {
	Action  Action
	GoodsID core.GoodsID
	BerthID core.BerthID
	Point   core.Point
}

// Params collects the policy knobs of spec §4.4, named and defaulted
// after original_source/params.h.
type Params struct {
	ClusterCount               int     // CLUSTERNUMS
	TTLProfitWeight            float64 // TTL_ProfitWeight
	PartitionScheduling        bool
	DynamicPartitionScheduling bool
	RobotReleaseBound          float64 // robotReleaseBound
	DynamicSchedulingInterval  int
	ABLEDepartScale            float64 // ABLE_DEPART_SCALE
	MaxShipsPerBerth           int     // MAX_SHIP_NUM
	ShipWaitTimeLimit          int     // SHIP_WAIT_TIME_LIMIT
}

// DefaultParams mirrors original_source/params.h's literal defaults.
func DefaultParams() Params {
	return Params{
		ClusterCount:               4,
		TTLProfitWeight:            1.5,
		PartitionScheduling:        true,
		DynamicPartitionScheduling: true,
		RobotReleaseBound:          0.5,
		DynamicSchedulingInterval:  200,
		ABLEDepartScale:            0.15,
		MaxShipsPerBerth:           1,
		ShipWaitTimeLimit:          5,
	}
}

// CostFunc estimates the movement cost between two points; ok is false
// when no route exists. The scheduler never invokes the full
// pathfinder itself (that stays the controller's job, spec §4.4/§4.5
// boundary) — callers typically inject a Manhattan-distance estimate
// or a cached berth distance-field lookup.
type CostFunc func(from, to core.Point) (cost int, ok bool)

// Scheduler holds cluster assignment state across frames (partition
// scheduling, spec §4.4).
type Scheduler struct {
	params Params

	// berthCluster maps a berth to its cluster, recomputed whenever
	// partitioning is (re)built.
	berthCluster map[core.BerthID]int
	// robotCluster restricts each robot to a cluster under
	// PartitionScheduling.
	robotCluster map[core.RobotID]int

	framesSinceRebalance int
}

// New builds a Scheduler with the given params.
func New(params Params) *Scheduler {
	return &Scheduler{
		params:       params,
		berthCluster: make(map[core.BerthID]int),
		robotCluster: make(map[core.RobotID]int),
	}
}

// AssignBerthCluster records which cluster a berth belongs to (the
// cluster analysis itself — spec's "poised clustering" — is out of
// scope per §1; this just records the caller's partitioning).
func (s *Scheduler) AssignBerthCluster(id core.BerthID, cluster int) {
	s.berthCluster[id] = cluster
}

// RobotCluster reports which cluster a robot is currently restricted
// to, or -1 if unassigned / partitioning is disabled.
func (s *Scheduler) RobotCluster(id core.RobotID) int {
	if !s.params.PartitionScheduling {
		return -1
	}
	if c, ok := s.robotCluster[id]; ok {
		return c
	}
	return -1
}

// SetRobotCluster assigns robot id to cluster c.
func (s *Scheduler) SetRobotCluster(id core.RobotID, c int) {
	s.robotCluster[id] = c
}

// ScheduleRobot implements spec §4.4's schedule_robot: an Idle robot
// is assigned the highest-scoring reachable good; a carrying robot is
// routed to the nearest berth with a free slot (honoring its cluster
// under partition scheduling).
func (s *Scheduler) ScheduleRobot(r *core.Robot, m *core.Map, goods []*core.Goods, berths []*core.Berth, cost CostFunc) RobotDecision {
	if r.Carrying {
		return s.scheduleToBerth(r, m, berths)
	}
	return s.scheduleToGoods(r, m, goods, berths, cost)
}

func (s *Scheduler) scheduleToGoods(r *core.Robot, m *core.Map, goods []*core.Goods, berths []*core.Berth, cost CostFunc) RobotDecision {
	cluster := s.RobotCluster(r.ID)

	type candidate struct {
		g     *core.Goods
		score float64
	}
	var best *candidate

	for _, g := range goods {
		if g.Status != core.Unassigned || !g.Alive() {
			continue
		}
		toGoods, ok := cost(r.Pos, g.Pos)
		if !ok {
			continue
		}
		berth, berthCost, ok := s.nearestBerth(g.Pos, berths, cluster, cost)
		if !ok {
			continue
		}
		total := toGoods + berthCost
		if total >= g.TTL {
			continue
		}
		denom := total
		if denom < 1 {
			denom = 1
		}
		score := float64(g.Value) * s.params.TTLProfitWeight / float64(denom)
		if best == nil || score > best.score || (score == best.score && g.ID < best.g.ID) {
			best = &candidate{g: g, score: score}
			g.DestBerth = berth.ID
		}
	}

	if best == nil {
		return RobotDecision{Action: Fail}
	}
	return RobotDecision{Action: MoveToGoods, GoodsID: best.g.ID, Point: best.g.Pos}
}

func (s *Scheduler) scheduleToBerth(r *core.Robot, m *core.Map, berths []*core.Berth) RobotDecision {
	cluster := s.RobotCluster(r.ID)
	var best *core.Berth
	bestDist := infCost

	for _, b := range berths {
		if !b.HasFreeSlot() {
			continue
		}
		if s.params.PartitionScheduling && cluster >= 0 && s.berthCluster[b.ID] != cluster {
			continue
		}
		if !m.BerthReachable(b.ID, r.Pos) {
			continue
		}
		d := m.BerthDistance(b.ID, r.Pos)
		if d < bestDist {
			bestDist = d
			best = b
		}
	}

	if best == nil {
		return RobotDecision{Action: Fail}
	}
	return RobotDecision{Action: MoveToBerth, BerthID: best.ID, Point: best.Anchor}
}

const infCost = 1 << 30

func (s *Scheduler) nearestBerth(from core.Point, berths []*core.Berth, cluster int, cost CostFunc) (*core.Berth, int, bool) {
	var best *core.Berth
	bestCost := infCost
	for _, b := range berths {
		if s.params.PartitionScheduling && cluster >= 0 && s.berthCluster[b.ID] != cluster {
			continue
		}
		c, ok := cost(from, b.Anchor)
		if !ok {
			continue
		}
		if c < bestCost {
			bestCost = c
			best = b
		}
	}
	if best == nil {
		return nil, 0, false
	}
	return best, bestCost, true
}

// MaybeRebalance reassigns the lowest-valued robot of an over-quota
// cluster every DynamicSchedulingInterval frames (spec §4.4 dynamic
// partition rebalancing). valueOf scores a robot's current assignment
// (e.g. carried-good value, or 0 if idle); targetCluster picks the
// under-quota cluster to receive the released robot.
func (s *Scheduler) MaybeRebalance(frame int, robots []*core.Robot, valueOf func(*core.Robot) float64, quotaOf func(cluster int) int, targetCluster func(released *core.Robot) int) {
	if !s.params.DynamicPartitionScheduling {
		return
	}
	s.framesSinceRebalance++
	if s.framesSinceRebalance < s.params.DynamicSchedulingInterval {
		return
	}
	s.framesSinceRebalance = 0

	byCluster := make(map[int][]*core.Robot)
	for _, r := range robots {
		c := s.RobotCluster(r.ID)
		byCluster[c] = append(byCluster[c], r)
	}

	for cluster, members := range byCluster {
		quota := quotaOf(cluster)
		if len(members) <= quota {
			continue
		}
		sort.Slice(members, func(i, j int) bool { return valueOf(members[i]) < valueOf(members[j]) })
		released := members[0]
		if valueOf(released) > s.params.RobotReleaseBound {
			continue
		}
		s.SetRobotCluster(released.ID, targetCluster(released))
	}
}

// ShipDecision is schedule_ships' per-ship verdict.
type ShipDecision int

const (
	ShipStay ShipDecision = iota
	ShipDepart
	ShipMoveToBerth
)

func (d ShipDecision) String() string {
	switch d {
	case ShipStay:
		return "Stay"
	case ShipDepart:
		return "Depart"
	case ShipMoveToBerth:
		return "MoveToBerth"
	default:
		return "Unknown"
	}
}

// ScheduleShip implements spec §4.4's schedule_ships decision for a
// single docked ship: depart once loaded to at least ABLE_DEPART_SCALE
// with nothing more to load at this berth, or once its StillnessFrames
// reach SHIP_WAIT_TIME_LIMIT whether or not more remains to load;
// otherwise keep loading.
func (s *Scheduler) ScheduleShip(sh *core.Ship, berthHasMoreToLoad bool) ShipDecision {
	if sh.State != core.ShipLoading {
		return ShipStay
	}
	if sh.LoadRatio() >= s.params.ABLEDepartScale && !berthHasMoreToLoad {
		return ShipDepart
	}
	if sh.StillnessFrames >= s.params.ShipWaitTimeLimit {
		return ShipDepart
	}
	return ShipStay
}

// AssignBerthForShip picks the nearest berth, among all berths (clusters
// are not considered), whose queue of waiting ships is under
// MaxShipsPerBerth, for a ship that has just been purchased or has
// just finished delivering (spec §4.4 ship-to-berth assignment).
// queueLen reports how many ships are already assigned to a berth.
func (s *Scheduler) AssignBerthForShip(from core.Point, berths []*core.Berth, queueLen func(core.BerthID) int, cost CostFunc) (core.BerthID, bool) {
	var best *core.Berth
	bestCost := infCost
	for _, b := range berths {
		if queueLen(b.ID) >= s.params.MaxShipsPerBerth {
			continue
		}
		c, ok := cost(from, b.Anchor)
		if !ok {
			continue
		}
		if c < bestCost {
			bestCost = c
			best = b
		}
	}
	if best == nil {
		return core.NoBerthID, false
	}
	return best.ID, true
}
