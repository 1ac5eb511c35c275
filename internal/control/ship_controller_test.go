package control

import (
	"testing"

	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
	"github.com/paopaochahu09/SmartPort-YYg/internal/logx"
	"github.com/paopaochahu09/SmartPort-YYg/internal/pathfind"
)

func openSea(rows, cols int) *core.Map {
	m := core.NewMap(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.SetCell(core.Point{Row: r, Col: c}, core.Sea)
		}
	}
	return m
}

func newTestShipController(m *core.Map) *ShipController {
	find := func(start core.Point, startOrient core.Orientation, goal core.Point) ([]core.ShipStep, *core.Error) {
		return pathfind.FindShipPath(m, start, startOrient, goal, pathfind.Options{})
	}
	return NewShipController(m, find, logx.New())
}

func TestShipControllerDetectsFootprintOverlap(t *testing.T) {
	m := openSea(2, 6)
	sc := newTestShipController(m)

	s1 := core.NewShip(1, core.Point{Row: 0, Col: 0}, core.East, 100)
	s1.SetPath([]core.ShipStep{{Pos: core.Point{Row: 0, Col: 2}, Orient: core.East}})

	s2 := core.NewShip(2, core.Point{Row: 0, Col: 4}, core.East, 100)
	s2.SetPath([]core.ShipStep{{Pos: core.Point{Row: 0, Col: 2}, Orient: core.East}})

	collisions := sc.Run([]*core.Ship{s1, s2})
	if len(collisions) == 0 {
		t.Fatalf("expected a detected footprint overlap")
	}
	if s1.NextPos == s2.NextPos {
		t.Fatalf("resolution should have diverted the loser away from the overlap")
	}
}

func TestShipControllerNoConflictWhenFarApart(t *testing.T) {
	m := openSea(2, 10)
	sc := newTestShipController(m)

	s1 := core.NewShip(1, core.Point{Row: 0, Col: 0}, core.East, 100)
	s1.SetPath([]core.ShipStep{{Pos: core.Point{Row: 0, Col: 1}, Orient: core.East}})

	s2 := core.NewShip(2, core.Point{Row: 0, Col: 8}, core.East, 100)
	s2.SetPath([]core.ShipStep{{Pos: core.Point{Row: 0, Col: 7}, Orient: core.East}})

	collisions := sc.Run([]*core.Ship{s1, s2})
	if len(collisions) != 0 {
		t.Fatalf("expected no collision between far-apart ships, got %v", collisions)
	}
}

func TestShipControllerRecoveringShipLosesPriority(t *testing.T) {
	m := openSea(2, 6)
	sc := newTestShipController(m)

	recovering := core.NewShip(1, core.Point{Row: 0, Col: 0}, core.East, 100)
	recovering.Recovering = true
	recovering.SetPath([]core.ShipStep{{Pos: core.Point{Row: 0, Col: 2}, Orient: core.East}})

	normal := core.NewShip(2, core.Point{Row: 0, Col: 4}, core.East, 100)
	normal.SetPath([]core.ShipStep{{Pos: core.Point{Row: 0, Col: 2}, Orient: core.East}})

	sc.Run([]*core.Ship{recovering, normal})

	// normal's plan must survive untouched; recovering is the one that
	// had to detour (or wait) around the tie-break loss.
	if normal.NextPos != (core.Point{Row: 0, Col: 2}) {
		t.Fatalf("the non-recovering ship's plan should not have been disturbed, got %v", normal.NextPos)
	}
	if core.FootprintsOverlap(recovering.NextFootprint(), normal.NextFootprint()) {
		t.Fatalf("recovering ship's footprint should no longer overlap normal's after resolution")
	}
}
