package pathfind

import (
	"testing"

	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
)

func newSeaLane(rows, cols int) *core.Map {
	m := core.NewMap(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.SetCell(core.Point{Row: r, Col: c}, core.Sea)
		}
	}
	return m
}

func TestFindShipPathStraightLane(t *testing.T) {
	m := newSeaLane(3, 6)
	path, err := FindShipPath(m, core.Point{Row: 1, Col: 0}, core.East, core.Point{Row: 1, Col: 4}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) == 0 {
		t.Fatalf("expected a non-empty path")
	}
	if path[len(path)-1].Pos != (core.Point{Row: 1, Col: 1}) {
		t.Fatalf("last element must be the immediate next step, got %v", path[len(path)-1])
	}
	if path[0].Pos != (core.Point{Row: 1, Col: 4}) {
		t.Fatalf("first element must be the goal, got %v", path[0])
	}
}

func TestFindShipPathSameStartGoal(t *testing.T) {
	m := newSeaLane(3, 3)
	path, err := FindShipPath(m, core.Point{Row: 1, Col: 1}, core.East, core.Point{Row: 1, Col: 1}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 0 {
		t.Fatalf("expected empty path when start == goal, got %v", path)
	}
}

func TestFindShipPathRotatesWhenBlocked(t *testing.T) {
	// The ship starts facing East with its goal straight south, so it
	// has to rotate to a North/South facing before it can move there.
	// Five rows leave room below row 3 for the vertical footprint.
	m := core.NewMap(5, 4)
	for r := 0; r < 5; r++ {
		for c := 0; c < 4; c++ {
			m.SetCell(core.Point{Row: r, Col: c}, core.Sea)
		}
	}
	path, err := FindShipPath(m, core.Point{Row: 0, Col: 0}, core.East, core.Point{Row: 3, Col: 0}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) == 0 {
		t.Fatalf("expected a path using rotation")
	}
}

func TestFindShipPathOutOfBudget(t *testing.T) {
	m := newSeaLane(1, 50)
	_, err := FindShipPath(m, core.Point{Row: 0, Col: 0}, core.East, core.Point{Row: 0, Col: 48}, Options{NodeBudget: 1})
	if err == nil || err.Kind != core.ErrOutOfBudget {
		t.Fatalf("expected ErrOutOfBudget, got %v", err)
	}
}

func TestFindShipPathLandStartIsInvalid(t *testing.T) {
	m := core.NewMap(3, 3)
	// NewMap leaves every cell Space: nothing is sea-passable.
	_, err := FindShipPath(m, core.Point{Row: 0, Col: 0}, core.East, core.Point{Row: 2, Col: 2}, Options{})
	if err == nil || err.Kind != core.ErrInvalidStart {
		t.Fatalf("expected ErrInvalidStart for a non-sea-passable start, got %v", err)
	}
}

func TestMainChannelDoublesCost(t *testing.T) {
	m := newSeaLane(1, 5)
	m.SetMainChannel(core.Point{Row: 0, Col: 2}, true)
	if !m.IsMainChannel(core.Point{Row: 0, Col: 2}) {
		t.Fatalf("expected main channel mark to stick")
	}
	path, err := FindShipPath(m, core.Point{Row: 0, Col: 0}, core.East, core.Point{Row: 0, Col: 3}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) == 0 {
		t.Fatalf("expected a path even through a main-channel cell")
	}
}
