package control

import (
	"testing"

	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
	"github.com/paopaochahu09/SmartPort-YYg/internal/lane"
	"github.com/paopaochahu09/SmartPort-YYg/internal/logx"
	"github.com/paopaochahu09/SmartPort-YYg/internal/pathfind"
)

func openMap(rows, cols int) *core.Map {
	m := core.NewMap(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.SetCell(core.Point{Row: r, Col: c}, core.Space)
		}
	}
	return m
}

func newTestController(m *core.Map) *RobotController {
	idx := lane.Build(m)
	find := func(start, goal core.Point) ([]core.Point, *core.Error) {
		return pathfind.FindRobotPath(m, start, goal, pathfind.Options{})
	}
	return NewRobotController(m, idx, find, logx.New())
}

func TestTargetOverlapBothTransitingLowerPriorityWaits(t *testing.T) {
	m := openMap(3, 3)
	rc := newTestController(m)

	r1 := core.NewRobot(1, core.Point{Row: 0, Col: 0})
	r1.State = core.RobotMovingToGoods
	r1.TargetKind = core.TargetGoods
	r1.Destination = core.Point{Row: 2, Col: 1}
	r1.SetPath([]core.Point{{Row: 1, Col: 1}})

	r2 := core.NewRobot(2, core.Point{Row: 2, Col: 2})
	r2.State = core.RobotMovingToGoods
	r2.TargetKind = core.TargetGoods
	r2.Destination = core.Point{Row: 0, Col: 1}
	r2.SetPath([]core.Point{{Row: 1, Col: 1}})

	robots := []*core.Robot{r1, r2}
	collisions := rc.Run(robots)

	if len(collisions) != 0 {
		t.Fatalf("expected conflict fully resolved within the iteration budget, got %v", collisions)
	}
	if r1.NextPos == r2.NextPos {
		t.Fatalf("robots must not still target the same next cell")
	}
	if r1.NextPos != r1.Pos && r2.NextPos != r2.Pos {
		t.Fatalf("at least one robot should have stayed in place")
	}
}

func TestSwapPositionsResolved(t *testing.T) {
	m := openMap(1, 3)
	rc := newTestController(m)

	r1 := core.NewRobot(1, core.Point{Row: 0, Col: 0})
	r1.State = core.RobotMovingToGoods
	r1.TargetKind = core.TargetGoods
	r1.Destination = core.Point{Row: 0, Col: 2}
	r1.SetPath([]core.Point{{Row: 0, Col: 2}, {Row: 0, Col: 1}})

	r2 := core.NewRobot(2, core.Point{Row: 0, Col: 1})
	r2.State = core.RobotMovingToGoods
	r2.TargetKind = core.TargetGoods
	r2.Destination = core.Point{Row: 0, Col: 0}
	r2.SetPath([]core.Point{{Row: 0, Col: 0}})

	robots := []*core.Robot{r1, r2}
	rc.Run(robots)

	if r1.NextPos == r2.Pos && r2.NextPos == r1.Pos {
		t.Fatalf("swap must have been broken up by resolution, got r1.Next=%v r2.Next=%v", r1.NextPos, r2.NextPos)
	}
}

func TestDizzyRobotBlocksAndOtherReplans(t *testing.T) {
	m := openMap(3, 3)
	rc := newTestController(m)

	dizzy := core.NewRobot(1, core.Point{Row: 1, Col: 1})
	dizzy.State = core.RobotDizzy

	mover := core.NewRobot(2, core.Point{Row: 0, Col: 1})
	mover.State = core.RobotMovingToGoods
	mover.TargetKind = core.TargetGoods
	mover.Destination = core.Point{Row: 2, Col: 1}

	robots := []*core.Robot{dizzy, mover}
	rc.Run(robots)

	if mover.NextPos == dizzy.Pos {
		t.Fatalf("mover must not still be stepping onto the dizzy robot's cell")
	}
}

func TestDeadRobotNeverMovesOrConflicts(t *testing.T) {
	m := openMap(2, 2)
	rc := newTestController(m)

	dead := core.NewRobot(1, core.Point{Row: 0, Col: 0})
	dead.State = core.RobotDead

	collisions := rc.Run([]*core.Robot{dead})
	if len(collisions) != 0 {
		t.Fatalf("a lone dead robot can't collide with anything")
	}
	if dead.NextPos != dead.Pos {
		t.Fatalf("dead robot must stay put")
	}
}
