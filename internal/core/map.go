package core

import "log"

// Map owns the grid's base cells and every berth's precomputed
// distance field, plus the per-frame transient-obstacle overlay
// (spec §3 Map invariants, §4.1).
type Map struct {
	Rows, Cols int
	grid       [][]Cell

	// transientRefCount is a reference count per overlaid cell so
	// concurrent reservations compose safely (spec §3 Cell, I6).
	transientRefCount map[Point]int

	// berthDist holds one multi-source BFS distance field per berth,
	// keyed by berth id (spec §3 invariant iii/iv).
	berthDist map[BerthID][][]int

	// mainChannel marks sea cells the pathfinder should discourage
	// (cost-weight 2x) to spread ship traffic — spec §4.2.
	mainChannel map[Point]bool
}

// NewMap allocates an empty Rows×Cols grid, all Space.
func NewMap(rows, cols int) *Map {
	grid := make([][]Cell, rows)
	for r := range grid {
		grid[r] = make([]Cell, cols)
	}
	return &Map{
		Rows:              rows,
		Cols:              cols,
		grid:              grid,
		transientRefCount: make(map[Point]int),
		berthDist:         make(map[BerthID][][]int),
		mainChannel:       make(map[Point]bool),
	}
}

// SetMainChannel marks p as part of the congested main shipping
// channel (or clears the mark).
func (m *Map) SetMainChannel(p Point, on bool) {
	if on {
		m.mainChannel[p] = true
	} else {
		delete(m.mainChannel, p)
	}
}

// IsMainChannel reports whether p is marked as main-channel.
func (m *Map) IsMainChannel(p Point) bool {
	return m.mainChannel[p]
}

// SetCell sets the base (non-overlay) cell kind at p. Used only during
// map-file ingest (spec §6); dimensions are constant thereafter.
func (m *Map) SetCell(p Point, c Cell) {
	if !m.InBounds(p) {
		return
	}
	m.grid[p.Row][p.Col] = c
}

// InBounds reports whether p lies within the grid.
func (m *Map) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < m.Rows && p.Col >= 0 && p.Col < m.Cols
}

// baseCell returns the underlying cell kind, ignoring any overlay.
func (m *Map) baseCell(p Point) Cell {
	if !m.InBounds(p) {
		return Obstacle
	}
	return m.grid[p.Row][p.Col]
}

// GetCell reports the effective cell at p: TransientBlock if the cell
// is currently overlaid, else the base kind.
func (m *Map) GetCell(p Point) Cell {
	if !m.InBounds(p) {
		return Obstacle
	}
	if m.transientRefCount[p] > 0 {
		return TransientBlock
	}
	return m.grid[p.Row][p.Col]
}

// Passable reports whether p is Space or Berth and not currently
// overlaid (spec §4.1).
func (m *Map) Passable(p Point) bool {
	if !m.InBounds(p) {
		return false
	}
	if m.transientRefCount[p] > 0 {
		return false
	}
	base := m.grid[p.Row][p.Col]
	return base == Space || base == Berth
}

// SeaPassable reports whether p is Sea and not overlaid — used by ship
// footprint checks.
func (m *Map) SeaPassable(p Point) bool {
	if !m.InBounds(p) {
		return false
	}
	if m.transientRefCount[p] > 0 {
		return false
	}
	return m.grid[p.Row][p.Col] == Sea
}

// Neighbors returns the up-to-four passable 4-adjacent cells of p. Tie
// breaking is reversed when (row+col) is even, matching
// original_source/map.cpp's Map::neighbors — this yields visually
// straighter paths without altering correctness (spec §4.1).
func (m *Map) Neighbors(p Point) []Point {
	result := make([]Point, 0, 4)
	for _, d := range dirs {
		next := p.Add(d)
		if m.InBounds(next) && m.Passable(next) {
			result = append(result, next)
		}
	}
	if (p.Row+p.Col)%2 == 0 {
		for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
			result[i], result[j] = result[j], result[i]
		}
	}
	return result
}

// AddTransientBlock reserves p for the current frame. A fixed
// Obstacle/Sea cell cannot be overlaid: the call is a logged no-op
// (spec §4.1). Reference counted so nested reservations compose.
func (m *Map) AddTransientBlock(p Point) bool {
	if !m.InBounds(p) {
		return false
	}
	base := m.grid[p.Row][p.Col]
	if base == Obstacle || base == Sea {
		log.Printf("core: AddTransientBlock ignored on fixed %v cell %v", base, p)
		return false
	}
	m.transientRefCount[p]++
	return true
}

// RemoveTransientBlock releases one reservation of p. No-op if p was
// never reserved.
func (m *Map) RemoveTransientBlock(p Point) {
	if n, ok := m.transientRefCount[p]; ok {
		if n <= 1 {
			delete(m.transientRefCount, p)
		} else {
			m.transientRefCount[p] = n - 1
		}
	}
}

// ClearTransientBlocks drops every overlay reservation. Called once at
// the end of every frame (cmd/smartport's step, sim's Engine.Step), so
// ref-counts cannot leak into the next frame's scheduling (spec I6).
func (m *Map) ClearTransientBlocks() {
	m.transientRefCount = make(map[Point]int)
}

// TransientRefCount reports the current reservation count at p — used
// by tests asserting I6 (balances to zero at end of frame).
func (m *Map) TransientRefCount(p Point) int {
	return m.transientRefCount[p]
}

// NearbyTransientBlocks returns every currently overlaid cell within
// Manhattan radius of p (spec §4.1 local conflict queries).
func (m *Map) NearbyTransientBlocks(p Point, radius int) []Point {
	var out []Point
	for q, n := range m.transientRefCount {
		if n > 0 && p.Manhattan(q) <= radius {
			out = append(out, q)
		}
	}
	return out
}

// ComputeBerthDistances runs a multi-source BFS from footprintCells and
// stores the resulting distance field under id; dist(p) = 1<<30
// (infDist, treated as ∞) iff p is land-unreachable from the berth (spec §3
// invariant iii). O(rows·cols). Idempotent: re-running simply
// overwrites the stored field.
func (m *Map) ComputeBerthDistances(id BerthID, footprintCells []Point) {
	const inf = 1 << 30
	dist := make([][]int, m.Rows)
	for r := range dist {
		dist[r] = make([]int, m.Cols)
		for c := range dist[r] {
			dist[r][c] = inf
		}
	}

	queue := make([]Point, 0, len(footprintCells))
	for _, p := range footprintCells {
		if !m.InBounds(p) {
			continue
		}
		// Berth footprint cells are reachable at distance 0 regardless
		// of base cell kind (they *are* the berth) — spec invariant iv.
		if dist[p.Row][p.Col] == inf {
			dist[p.Row][p.Col] = 0
			queue = append(queue, p)
		}
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, d := range dirs {
			next := cur.Add(d)
			if !m.InBounds(next) {
				continue
			}
			if !m.isLandPassableForBFS(next) {
				continue
			}
			if dist[next.Row][next.Col] == inf {
				dist[next.Row][next.Col] = dist[cur.Row][cur.Col] + 1
				queue = append(queue, next)
			}
		}
	}

	m.berthDist[id] = dist
}

// isLandPassableForBFS ignores the transient overlay: distance fields
// are static map topology, computed once at init, never touched by the
// per-frame overlay.
func (m *Map) isLandPassableForBFS(p Point) bool {
	base := m.grid[p.Row][p.Col]
	return base == Space || base == Berth
}

const infDist = 1 << 30

// BerthDistance returns dist_b(p); infDist stands in for ∞.
func (m *Map) BerthDistance(id BerthID, p Point) int {
	field, ok := m.berthDist[id]
	if !ok || !m.InBounds(p) {
		return infDist
	}
	return field[p.Row][p.Col]
}

// BerthReachable reports dist_b(p) < ∞ (spec §4.1).
func (m *Map) BerthReachable(id BerthID, p Point) bool {
	return m.BerthDistance(id, p) < infDist
}

// ShipFootprint returns the 1×2 (East/West) or 2×1 (North/South)
// rectangle of cells a ship at (point, orient) occupies (spec §3).
func ShipFootprint(point Point, orient Orientation) [2]Point {
	d := orient.Delta()
	// Canonicalize to the two "positive" directions so East/West and
	// North/South footprints are stable regardless of facing.
	if orient == West {
		d = East.Delta()
	} else if orient == North {
		d = South.Delta()
	}
	return [2]Point{point, point.Add(d)}
}

// ShipPassable reports whether every cell of the footprint at
// (point, orient) is sea-passable (spec §4.1).
func (m *Map) ShipPassable(point Point, orient Orientation) bool {
	fp := ShipFootprint(point, orient)
	for _, c := range fp {
		if !m.SeaPassable(c) {
			return false
		}
	}
	return true
}

// FootprintsOverlap reports whether two 2-cell ship footprints share a
// cell (spec §4.6 rectangle overlap check).
func FootprintsOverlap(a, b [2]Point) bool {
	for _, pa := range a {
		for _, pb := range b {
			if pa == pb {
				return true
			}
		}
	}
	return false
}
