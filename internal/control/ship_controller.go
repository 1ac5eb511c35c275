package control

import (
	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
	"github.com/paopaochahu09/SmartPort-YYg/internal/logx"
)

// ShipPathFunc plans a ship path over the (point, orientation) state
// space, mirroring PathFunc for robots.
type ShipPathFunc func(start core.Point, startOrient core.Orientation, goal core.Point) ([]core.ShipStep, *core.Error)

// ShipController runs the per-frame ship planning/conflict pipeline of
// spec §4.6, grounded in original_source/ship.h's comparePriority and
// findDetourAndUpdatePath.
type ShipController struct {
	m    *core.Map
	find ShipPathFunc
	log  *logx.Logger
	wait map[core.ShipID]bool
}

// NewShipController wires a Map and a ship path function into a
// controller.
func NewShipController(m *core.Map, find ShipPathFunc, log *logx.Logger) *ShipController {
	return &ShipController{m: m, find: find, log: log, wait: make(map[core.ShipID]bool)}
}

// destOf returns s's planned final destination, or a Row<0 sentinel
// if it has none — the contract core.Ship.ComparePriority expects.
func destOf(s *core.Ship) core.Point {
	if d, ok := s.FinalDestination(); ok {
		return d
	}
	return core.Point{Row: -1}
}

// Run computes every ship's next (point, orientation), detects
// oriented-footprint overlaps, and resolves them by priority plus a
// bounded detour re-plan. Returns the collisions observed.
func (sc *ShipController) Run(ships []*core.Ship) []ShipCollision {
	for _, s := range ships {
		sc.updateNext(s)
	}

	collisions := sc.detectConflicts(ships)
	byID := make(map[core.ShipID]*core.Ship, len(ships))
	for _, s := range ships {
		byID[s.ID] = s
	}
	for _, c := range collisions {
		s1, s2 := byID[c.S1], byID[c.S2]
		if s1 == nil || s2 == nil {
			continue
		}
		sc.resolve(s1, s2)
	}
	return collisions
}

func (sc *ShipController) updateNext(s *core.Ship) {
	if step, ok := s.PeekNext(); ok {
		s.NextPos, s.NextOrient = step.Pos, step.Orient
	} else {
		s.NextPos, s.NextOrient = s.Pos, s.Orient
	}
}

// detectConflicts reports every pair whose next-frame footprints
// overlap (spec §4.6).
func (sc *ShipController) detectConflicts(ships []*core.Ship) []ShipCollision {
	var out []ShipCollision
	for i := 0; i < len(ships); i++ {
		for j := i + 1; j < len(ships); j++ {
			s1, s2 := ships[i], ships[j]
			if core.FootprintsOverlap(s1.NextFootprint(), s2.NextFootprint()) {
				out = append(out, ShipCollision{s1.ID, s2.ID})
			}
		}
	}
	return out
}

// resolve picks a loser via ComparePriority and attempts a bounded
// detour for it; when no detour is found, or the detour's next
// footprint still overlaps the winner's, the loser waits in place and
// its StillnessFrames counter grows (the scheduler's
// SHIP_WAIT_TIME_LIMIT rule reads that counter, spec §4.4).
func (sc *ShipController) resolve(s1, s2 *core.Ship) {
	// Sea cells can't be reserved through Map's transient overlay (it
	// is reserved for the land grid robots path over, spec §4.1), so
	// unlike RobotController there is no shared block to apply before
	// replanning — the loser just re-plans to its existing destination,
	// and if that re-plan still steps into the winner's next footprint
	// the loser waits instead.
	loser, winner := s1, s2
	if s1.ComparePriority(s2, destOf) {
		loser, winner = s2, s1
	}

	if sc.findDetour(loser) {
		sc.updateNext(loser)
		if !core.FootprintsOverlap(loser.NextFootprint(), winner.NextFootprint()) {
			return
		}
	}
	loser.NextPos, loser.NextOrient = loser.Pos, loser.Orient
	loser.StillnessFrames++
	sc.wait[loser.ID] = true
}

// findDetour mirrors ship.h's findDetourAndUpdatePath: re-plan from the
// ship's current (point, orientation) to its existing final
// destination over the map as it stands (no cell is reserved for the
// winning ship first). Our pathfinder's goal is point-only (any arrival
// orientation is accepted), so unlike the original there is no
// separate "retry every destination orientation" fallback — a single
// re-plan attempt either succeeds or the ship waits.
func (sc *ShipController) findDetour(s *core.Ship) bool {
	dest, ok := s.FinalDestination()
	if !ok {
		sc.log.Warnf("ship %d has no path to detour from", s.ID)
		return false
	}
	detour, err := sc.find(s.Pos, s.Orient, dest)
	if err != nil {
		sc.log.Warnf("ship %d detour failed: %v", s.ID, err)
		return false
	}
	s.SetPath(detour)
	return true
}
