package core

import "testing"

func newTestMap() *Map {
	m := NewMap(5, 5)
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			m.SetCell(Point{r, c}, Space)
		}
	}
	return m
}

func TestPassableAndTransientOverlay(t *testing.T) {
	m := newTestMap()
	p := Point{2, 2}
	if !m.Passable(p) {
		t.Fatalf("expected %v passable before overlay", p)
	}
	if !m.AddTransientBlock(p) {
		t.Fatalf("AddTransientBlock should succeed on Space cell")
	}
	if m.Passable(p) {
		t.Fatalf("expected %v impassable while overlaid", p)
	}
	if m.GetCell(p) != TransientBlock {
		t.Fatalf("GetCell should report TransientBlock, got %v", m.GetCell(p))
	}
	m.RemoveTransientBlock(p)
	if !m.Passable(p) {
		t.Fatalf("expected %v passable again after single remove", p)
	}
}

func TestTransientOverlayRefCounts(t *testing.T) {
	m := newTestMap()
	p := Point{1, 1}
	m.AddTransientBlock(p)
	m.AddTransientBlock(p)
	m.RemoveTransientBlock(p)
	if !(m.TransientRefCount(p) == 1) {
		t.Fatalf("expected refcount 1 after one remove of two adds, got %d", m.TransientRefCount(p))
	}
	m.RemoveTransientBlock(p)
	if m.TransientRefCount(p) != 0 {
		t.Fatalf("expected refcount 0 after balancing adds/removes, got %d", m.TransientRefCount(p))
	}
}

func TestAddTransientBlockRejectsFixedObstacle(t *testing.T) {
	m := newTestMap()
	p := Point{0, 0}
	m.SetCell(p, Obstacle)
	if m.AddTransientBlock(p) {
		t.Fatalf("AddTransientBlock must fail (logged, no-op) on a fixed Obstacle cell")
	}
}

func TestClearTransientBlocks(t *testing.T) {
	m := newTestMap()
	m.AddTransientBlock(Point{1, 1})
	m.AddTransientBlock(Point{2, 2})
	m.ClearTransientBlocks()
	if m.TransientRefCount(Point{1, 1}) != 0 || m.TransientRefCount(Point{2, 2}) != 0 {
		t.Fatalf("ClearTransientBlocks must drop every reservation")
	}
}

func TestNeighborsTieBreakReversesOnEvenParity(t *testing.T) {
	m := newTestMap()
	even := Point{2, 2} // sum 4, even
	odd := Point{2, 3}  // sum 5, odd

	nEven := m.Neighbors(even)
	nOdd := m.Neighbors(odd)

	// Both should see all 4 neighbors in an open field, but in reversed order.
	if len(nEven) != 4 || len(nOdd) != 4 {
		t.Fatalf("expected 4 neighbors each in open field, got %d and %d", len(nEven), len(nOdd))
	}
	for i := range nEven {
		dEven := Point{nEven[i].Row - even.Row, nEven[i].Col - even.Col}
		last := nOdd[len(nOdd)-1-i]
		dOdd := Point{last.Row - odd.Row, last.Col - odd.Col}
		if dEven != dOdd {
			t.Fatalf("expected reversed direction order between even/odd parity cells")
		}
	}
}

func TestComputeBerthDistances(t *testing.T) {
	m := newTestMap()
	footprint := []Point{{4, 0}, {4, 1}, {4, 2}, {4, 3}}
	m.ComputeBerthDistances(BerthID(0), footprint)

	for _, p := range footprint {
		if m.BerthDistance(BerthID(0), p) != 0 {
			t.Fatalf("expected dist 0 on footprint cell %v, got %d", p, m.BerthDistance(0, p))
		}
	}
	if got := m.BerthDistance(BerthID(0), Point{0, 0}); got != 4 {
		t.Fatalf("expected Manhattan-equivalent BFS distance 4 from (0,0), got %d", got)
	}
	if !m.BerthReachable(BerthID(0), Point{0, 0}) {
		t.Fatalf("expected (0,0) reachable")
	}
}

func TestComputeBerthDistancesUnreachableIsInfinity(t *testing.T) {
	m := newTestMap()
	// Wall off the top-right corner.
	m.SetCell(Point{0, 4}, Obstacle)
	m.SetCell(Point{1, 3}, Obstacle)
	m.SetCell(Point{1, 4}, Obstacle)

	footprint := []Point{{4, 0}}
	m.ComputeBerthDistances(BerthID(1), footprint)

	if m.BerthReachable(BerthID(1), Point{0, 4}) {
		t.Fatalf("expected (0,4) unreachable once walled off")
	}
}

func TestComputeBerthDistancesIdempotent(t *testing.T) {
	m := newTestMap()
	footprint := []Point{{0, 0}}
	m.ComputeBerthDistances(BerthID(0), footprint)
	first := m.BerthDistance(BerthID(0), Point{4, 4})
	m.ComputeBerthDistances(BerthID(0), footprint)
	second := m.BerthDistance(BerthID(0), Point{4, 4})
	if first != second {
		t.Fatalf("expected idempotent recompute, got %d then %d", first, second)
	}
}

func TestShipFootprintAndOverlap(t *testing.T) {
	m := NewMap(5, 5)
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			m.SetCell(Point{r, c}, Sea)
		}
	}

	fpA := ShipFootprint(Point{2, 2}, East)
	if fpA[0] != (Point{2, 2}) || fpA[1] != (Point{2, 3}) {
		t.Fatalf("unexpected East footprint: %v", fpA)
	}
	fpB := ShipFootprint(Point{2, 3}, West)
	if !FootprintsOverlap(fpA, fpB) {
		t.Fatalf("expected overlapping footprints")
	}

	if !m.ShipPassable(Point{2, 2}, East) {
		t.Fatalf("expected sea footprint passable")
	}
	m.SetCell(Point{2, 3}, Obstacle)
	if m.ShipPassable(Point{2, 2}, East) {
		t.Fatalf("expected footprint impassable once one cell is obstacle")
	}
}
