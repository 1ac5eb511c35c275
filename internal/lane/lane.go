// Package lane builds the offline "single lane" index spec §4.3
// describes: maximal one-cell-wide corridors get a shared integer id,
// their boundary cells are flagged as entries, and a runtime lock per
// lane id serializes traffic through it. Grounded in
// original_source/robotController.cpp's SingleLaneManger usage
// contract (getSingleLaneId / isEnteringSingleLane / isLocked), whose
// own implementation wasn't in the retrieved source set — the
// detection pass itself is original, built to satisfy that contract.
package lane

import "github.com/paopaochahu09/SmartPort-YYg/internal/core"

// ID identifies a single-lane corridor. NoLane (0) means "not in any
// corridor" — open ground, matching the C++ convention of id 0 meaning
// "not in a single lane" (robotController.cpp checks `>= 1`).
type ID int

// NoLane is the sentinel for "this cell is not part of any corridor".
const NoLane ID = 0

var facings = [4]core.Orientation{core.East, core.West, core.North, core.South}

// Index is the precomputed corridor map plus a runtime lock table.
type Index struct {
	laneOf  map[core.Point]ID
	cells   map[ID][]core.Point
	entries map[ID]map[core.Point]bool

	locks map[ID]lockState
}

type lockState struct {
	held   bool
	holder core.RobotID
}

// Build runs the offline detection pass over m's current base
// topology (ignoring the transient overlay: corridor shape is static
// map structure, not a per-frame condition). A passable cell is
// "narrow" when exactly two of its neighbors are open and they sit on
// opposite sides — a one-cell-wide hallway segment. Adjacent narrow
// cells are flood-filled into the same corridor id, numbered from 1.
func Build(m *core.Map) *Index {
	idx := &Index{
		laneOf:  make(map[core.Point]ID),
		cells:   make(map[ID][]core.Point),
		entries: make(map[ID]map[core.Point]bool),
		locks:   make(map[ID]lockState),
	}

	narrow := make(map[core.Point]bool)
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			p := core.Point{Row: r, Col: c}
			if m.Passable(p) && isNarrow(m, p) {
				narrow[p] = true
			}
		}
	}

	nextID := ID(1)
	visited := make(map[core.Point]bool)
	for p := range narrow {
		if visited[p] {
			continue
		}
		id := nextID
		nextID++
		queue := []core.Point{p}
		visited[p] = true
		for head := 0; head < len(queue); head++ {
			cur := queue[head]
			idx.laneOf[cur] = id
			idx.cells[id] = append(idx.cells[id], cur)
			for _, f := range facings {
				next := cur.Add(f.Delta())
				if narrow[next] && !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
	}

	for id, cells := range idx.cells {
		set := make(map[core.Point]bool)
		for _, p := range cells {
			for _, f := range facings {
				next := p.Add(f.Delta())
				if m.Passable(next) && idx.laneOf[next] != id {
					set[p] = true
					break
				}
			}
		}
		idx.entries[id] = set
	}

	return idx
}

// isNarrow reports whether p has exactly two open neighbors, on
// opposite sides of p — the one-cell-wide-hallway condition.
func isNarrow(m *core.Map, p core.Point) bool {
	open := make(map[core.Orientation]bool)
	count := 0
	for _, f := range facings {
		if m.Passable(p.Add(f.Delta())) {
			open[f] = true
			count++
		}
	}
	if count != 2 {
		return false
	}
	return (open[core.East] && open[core.West]) || (open[core.North] && open[core.South])
}

// LaneID reports which corridor p belongs to, or NoLane.
func (x *Index) LaneID(p core.Point) ID {
	return x.laneOf[p]
}

// IsEnteringLane reports whether p is a boundary cell of lane id —
// i.e. moving onto p from outside the corridor counts as entering it
// (spec §4.3, mirrors isEnteringSingleLane).
func (x *Index) IsEnteringLane(id ID, p core.Point) bool {
	if id == NoLane {
		return false
	}
	return x.entries[id][p]
}

// Lock reserves lane id for holder. Returns false if already held by a
// different robot.
func (x *Index) Lock(id ID, holder core.RobotID) bool {
	if id == NoLane {
		return true
	}
	if l, ok := x.locks[id]; ok && l.held && l.holder != holder {
		return false
	}
	x.locks[id] = lockState{held: true, holder: holder}
	return true
}

// Unlock releases lane id if currently held by holder. A mismatched
// holder is a no-op — a stale release must never evict the real
// occupant.
func (x *Index) Unlock(id ID, holder core.RobotID) {
	if id == NoLane {
		return
	}
	if l, ok := x.locks[id]; ok && l.held && l.holder == holder {
		delete(x.locks, id)
	}
}

// IsLocked reports whether lane id is currently held by anyone other
// than holder (robotController.cpp's isLocked check gates entry by a
// robot not already inside).
func (x *Index) IsLocked(id ID, holder core.RobotID) bool {
	if id == NoLane {
		return false
	}
	l, ok := x.locks[id]
	return ok && l.held && l.holder != holder
}

// LockedBy reports the current holder of lane id, if any.
func (x *Index) LockedBy(id ID) (core.RobotID, bool) {
	l, ok := x.locks[id]
	if !ok || !l.held {
		return 0, false
	}
	return l.holder, true
}
