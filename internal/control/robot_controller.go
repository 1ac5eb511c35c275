package control

import (
	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
	"github.com/paopaochahu09/SmartPort-YYg/internal/lane"
	"github.com/paopaochahu09/SmartPort-YYg/internal/logx"
)

// PathFunc plans a path for a single robot; injected so RobotController
// never imports the pathfinder package directly, keeping the conflict
// logic testable against a stub.
type PathFunc func(start, goal core.Point) ([]core.Point, *core.Error)

// maxResolveIterations bounds conflict-resolution retries at 2,
// mirroring original_source/robotController.cpp's `tryTime <= 1` loop
// (iterations 0 and 1).
const maxResolveIterations = 2

// RobotController runs the per-frame robot planning/conflict pipeline
// of spec §4.5.
type RobotController struct {
	m      *core.Map
	lanes  *lane.Index
	find   PathFunc
	log    *logx.Logger
	wait   map[core.RobotID]bool
	refind map[core.RobotID]bool
}

// NewRobotController wires a Map, a SingleLaneIndex and a path
// function into a controller.
func NewRobotController(m *core.Map, lanes *lane.Index, find PathFunc, log *logx.Logger) *RobotController {
	return &RobotController{
		m:      m,
		lanes:  lanes,
		find:   find,
		log:    log,
		wait:   make(map[core.RobotID]bool),
		refind: make(map[core.RobotID]bool),
	}
}

// Run executes one frame's worth of pathfinding, next-cell computation
// and iterative conflict resolution over every live robot, returning
// the collisions observed on the final iteration (empty if fully
// resolved). After Run, every robot's NextPos is final for the frame
// and ApplyLaneTransitions should be called once positions commit.
func (rc *RobotController) Run(robots []*core.Robot) []RobotCollision {
	for _, r := range robots {
		if r.State == core.RobotDead {
			continue
		}
		if needsPathfinding(r) {
			rc.runPathfinding(r)
		}
	}
	for _, r := range robots {
		rc.updateNextPos(r)
	}

	var collisions []RobotCollision
	for iter := 0; iter < maxResolveIterations; iter++ {
		for id := range rc.wait {
			delete(rc.wait, id)
		}
		for id := range rc.refind {
			delete(rc.refind, id)
		}

		collisions = rc.detectConflicts(robots)
		if len(collisions) == 0 {
			break
		}
		for _, c := range collisions {
			rc.resolve(robots, c)
		}

		byID := indexRobots(robots)
		for id, flagged := range rc.refind {
			if !flagged {
				continue
			}
			if r := byID[id]; r != nil {
				rc.runPathfinding(r)
				rc.updateNextPos(r)
			}
		}
		for id, flagged := range rc.wait {
			if !flagged {
				continue
			}
			if r := byID[id]; r != nil {
				r.NextPos = r.Pos
			}
		}
	}
	return collisions
}

// ApplyLaneTransitions locks/unlocks single-lane corridors according
// to each robot's finalized NextPos, once the frame's positions
// actually commit (spec §4.3 runtime lock state).
func (rc *RobotController) ApplyLaneTransitions(robots []*core.Robot) {
	for _, r := range robots {
		if !r.CanMove() {
			continue
		}
		curLane := rc.lanes.LaneID(r.Pos)
		nextLane := rc.lanes.LaneID(r.NextPos)
		if curLane != lane.NoLane && nextLane != curLane {
			rc.lanes.Unlock(curLane, r.ID)
		}
		if nextLane != lane.NoLane && nextLane != curLane {
			rc.lanes.Lock(nextLane, r.ID)
		}
	}
}

func needsPathfinding(r *core.Robot) bool {
	return (r.State == core.RobotMovingToGoods || r.State == core.RobotMovingToBerth) &&
		r.TargetKind != core.TargetNone && r.PathEmpty()
}

func (rc *RobotController) runPathfinding(r *core.Robot) {
	path, err := rc.find(r.Pos, r.Destination)
	if err != nil {
		rc.log.Warnf("robot %d pathfinding failed: %v", r.ID, err)
		r.ClearPath()
		r.TargetKind = core.TargetNone
		r.Destination = r.Pos
		return
	}
	r.SetPath(path)
}

func (rc *RobotController) updateNextPos(r *core.Robot) {
	if !r.CanMove() {
		r.NextPos = r.Pos
		return
	}
	if next, ok := r.PeekNext(); ok {
		r.NextPos = next
	} else {
		r.NextPos = r.Pos
	}
}

func indexRobots(robots []*core.Robot) map[core.RobotID]*core.Robot {
	byID := make(map[core.RobotID]*core.Robot, len(robots))
	for _, r := range robots {
		byID[r.ID] = r
	}
	return byID
}

// detectConflicts mirrors detectNextFrameConflict: an O(n²) scan over
// unordered robot pairs, in the same priority order as the original so
// resolution order stays deterministic frame to frame.
func (rc *RobotController) detectConflicts(robots []*core.Robot) []RobotCollision {
	var out []RobotCollision
	for i := 0; i < len(robots); i++ {
		r1 := robots[i]
		if r1.State == core.RobotDead {
			continue
		}
		for j := i + 1; j < len(robots); j++ {
			r2 := robots[j]
			if r2.State == core.RobotDead {
				continue
			}

			curLane1 := rc.lanes.LaneID(r1.Pos)
			nextLane1 := rc.lanes.LaneID(r1.NextPos)
			curLane2 := rc.lanes.LaneID(r2.Pos)
			nextLane2 := rc.lanes.LaneID(r2.NextPos)

			switch {
			case r1.NextPos == r2.NextPos:
				out = append(out, RobotCollision{r1.ID, r2.ID, TargetOverlap})
			case r1.NextPos == r2.Pos && r2.NextPos == r1.Pos:
				out = append(out, RobotCollision{r1.ID, r2.ID, SwapPositions})
			case nextLane1 != lane.NoLane && curLane1 == lane.NoLane && curLane2 == lane.NoLane &&
				nextLane1 == nextLane2 &&
				rc.lanes.IsEnteringLane(nextLane1, r1.NextPos) && rc.lanes.IsEnteringLane(nextLane2, r2.NextPos):
				out = append(out, RobotCollision{r1.ID, r2.ID, HeadOnAttempt})
			case nextLane1 != lane.NoLane && curLane1 == lane.NoLane && rc.lanes.IsLocked(nextLane1, r1.ID):
				out = append(out, RobotCollision{r1.ID, NoRobot, EntryWhileOccupied})
			case nextLane2 != lane.NoLane && curLane2 == lane.NoLane && rc.lanes.IsLocked(nextLane2, r2.ID):
				// Symmetric case the original only checked one-sided;
				// kept here so robot2 entering an occupied lane is
				// never missed just because it was the second of the
				// pair.
				out = append(out, RobotCollision{r2.ID, NoRobot, EntryWhileOccupied})
			}
		}
	}
	return out
}

func (rc *RobotController) resolve(robots []*core.Robot, c RobotCollision) {
	byID := indexRobots(robots)
	r1 := byID[c.R1]
	if r1 == nil {
		return
	}

	switch c.Type {
	case TargetOverlap:
		r2 := byID[c.R2]
		if r2 == nil {
			return
		}
		rc.resolveTargetOverlap(r1, r2)
	case SwapPositions:
		r2 := byID[c.R2]
		if r2 == nil {
			return
		}
		rc.resolveSwap(r1, r2)
	case HeadOnAttempt:
		r2 := byID[c.R2]
		if r2 == nil {
			return
		}
		rc.resolvePriorityWait(r1, r2)
	case EntryWhileOccupied:
		rc.makeWait(r1)
	}
}

func (rc *RobotController) resolveTargetOverlap(r1, r2 *core.Robot) {
	r1Stationary := r1.NextPos == r1.Pos
	r2Stationary := r2.NextPos == r2.Pos

	switch {
	case r1Stationary && r1.NextPos == r2.Destination:
		rc.makeWait(r2)
	case r2Stationary && r2.NextPos == r1.Destination:
		rc.makeWait(r1)
	case r1Stationary:
		rc.m.AddTransientBlock(r1.Pos)
		rc.makeRefind(r2)
	case r2Stationary:
		rc.m.AddTransientBlock(r2.Pos)
		rc.makeRefind(r1)
	case r1.State == core.RobotDizzy || r2.State == core.RobotDizzy:
		if r1.State != core.RobotDizzy {
			rc.m.AddTransientBlock(r2.Pos)
			rc.makeRefind(r1)
		} else if r2.State != core.RobotDizzy {
			rc.m.AddTransientBlock(r1.Pos)
			rc.makeRefind(r2)
		} else {
			rc.log.Errorf("both robots %d/%d dizzy but still in TargetOverlap", r1.ID, r2.ID)
		}
	default:
		rc.resolveActiveTargetOverlap(r1, r2)
	}
}

func (rc *RobotController) resolveActiveTargetOverlap(r1, r2 *core.Robot) {
	switch {
	case r1.NextPos != r2.Destination && r2.NextPos != r1.Destination:
		rc.decideWhoWaitsAndRefind(r1, r2)
	case r1.NextPos == r2.Destination && r2.NextPos == r1.Destination:
		rc.resolvePriorityWait(r1, r2)
	case r2.NextPos == r1.Destination:
		rc.makeWait(r2)
	case r1.NextPos == r2.Destination:
		rc.makeWait(r1)
	default:
		rc.log.Errorf("unhandled TargetOverlap case between robots %d/%d", r1.ID, r2.ID)
		rc.makeWait(r1)
		rc.makeWait(r2)
	}
}

// decideWhoWaitsAndRefind picks who waits and who replans when both
// robots are merely transiting through the overlap cell, favoring
// whichever robot still has a reachable destination.
func (rc *RobotController) decideWhoWaitsAndRefind(r1, r2 *core.Robot) {
	r1Reachable := r1.Destination != r2.Pos && rc.m.Passable(r1.Destination)
	r2Reachable := r2.Destination != r1.Pos && rc.m.Passable(r2.Destination)

	switch {
	case !r1Reachable && !r2Reachable:
		rc.makeWait(r1)
		rc.makeWait(r2)
	case !r1Reachable:
		rc.makeWait(r1)
		rc.m.AddTransientBlock(r1.Pos)
		rc.makeRefind(r2)
	case !r2Reachable:
		rc.makeWait(r2)
		rc.m.AddTransientBlock(r2.Pos)
		rc.makeRefind(r1)
	default:
		rc.resolvePriorityWait(r1, r2)
	}
}

// resolvePriorityWait makes the lower-priority robot wait and blocks
// its cell so the winner can replan around it (spec §4.5 "both active,
// both just transiting").
func (rc *RobotController) resolvePriorityWait(r1, r2 *core.Robot) {
	loser, winner := r2, r1
	if r1.ComparePriority(r2) {
		loser, winner = r2, r1
	} else {
		loser, winner = r1, r2
	}
	rc.makeWait(loser)
	rc.m.AddTransientBlock(loser.Pos)
	rc.makeRefind(winner)
}

func (rc *RobotController) resolveSwap(r1, r2 *core.Robot) {
	if r1.State == core.RobotDizzy || r2.State == core.RobotDizzy {
		rc.log.Errorf("SwapPositions should be unreachable with a Dizzy robot: %d/%d", r1.ID, r2.ID)
		return
	}

	switch {
	case r1.Destination == r2.Pos && r2.Destination == r1.Pos:
		rc.resolveDeadlock(r1, r2)
	case r1.Destination == r2.Pos && !r2.PathEmpty():
		rc.makeWait(r1)
		rc.m.AddTransientBlock(r1.Pos)
		rc.makeRefind(r2)
	case r1.Pos == r2.Destination && !r1.PathEmpty():
		rc.makeWait(r2)
		rc.m.AddTransientBlock(r2.Pos)
		rc.makeRefind(r1)
	default:
		rc.resolvePriorityWait(r1, r2)
	}
}

// resolveDeadlock nudges one robot into any free neighbor not occupied
// by the other; if neither can move, both wait (spec §4.5 "swap with
// mutual destinations").
func (rc *RobotController) resolveDeadlock(r1, r2 *core.Robot) {
	for _, n := range rc.m.Neighbors(r1.Pos) {
		if n != r2.Pos {
			r1.SetPath([]core.Point{n})
			r1.NextPos = n
			return
		}
	}
	for _, n := range rc.m.Neighbors(r2.Pos) {
		if n != r1.Pos {
			r2.SetPath([]core.Point{n})
			r2.NextPos = n
			return
		}
	}
	rc.makeWait(r1)
	rc.makeWait(r2)
	rc.log.Warnf("failed to resolve deadlock between robots %d/%d", r1.ID, r2.ID)
}

func (rc *RobotController) makeWait(r *core.Robot) {
	rc.wait[r.ID] = true
}

func (rc *RobotController) makeRefind(r *core.Robot) {
	rc.refind[r.ID] = true
	r.ClearPath()
}
