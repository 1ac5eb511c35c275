package scheduler

import (
	"testing"

	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
)

func manhattan(a, b core.Point) (int, bool) {
	d := a.Row - b.Row
	if d < 0 {
		d = -d
	}
	e := a.Col - b.Col
	if e < 0 {
		e = -e
	}
	return d + e, true
}

func openMap(rows, cols int) *core.Map {
	m := core.NewMap(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.SetCell(core.Point{Row: r, Col: c}, core.Space)
		}
	}
	return m
}

func TestScheduleRobotPicksHighestScoringReachableGood(t *testing.T) {
	m := openMap(10, 10)
	berth := core.NewBerth(1, core.Point{Row: 0, Col: 0}, 1, 1)
	m.ComputeBerthDistances(berth.ID, berth.Footprint())

	s := New(DefaultParams())
	s.AssignBerthCluster(berth.ID, 0)

	r := core.NewRobot(1, core.Point{Row: 5, Col: 5})

	near := &core.Goods{ID: 1, Pos: core.Point{Row: 5, Col: 6}, Value: 100, TTL: 1000, Status: core.Unassigned}
	far := &core.Goods{ID: 2, Pos: core.Point{Row: 9, Col: 9}, Value: 100, TTL: 1000, Status: core.Unassigned}

	decision := s.ScheduleRobot(r, m, []*core.Goods{near, far}, []*core.Berth{berth}, manhattan)
	if decision.Action != MoveToGoods {
		t.Fatalf("expected MoveToGoods, got %v", decision.Action)
	}
	if decision.GoodsID != near.ID {
		t.Fatalf("expected the closer good %d to score higher, got %d", near.ID, decision.GoodsID)
	}
}

func TestScheduleRobotRejectsGoodsThatWouldExpireEnRoute(t *testing.T) {
	m := openMap(10, 10)
	berth := core.NewBerth(1, core.Point{Row: 0, Col: 0}, 1, 1)
	m.ComputeBerthDistances(berth.ID, berth.Footprint())

	s := New(DefaultParams())
	s.AssignBerthCluster(berth.ID, 0)

	r := core.NewRobot(1, core.Point{Row: 9, Col: 9})
	tooFar := &core.Goods{ID: 1, Pos: core.Point{Row: 9, Col: 8}, Value: 100, TTL: 2, Status: core.Unassigned}

	decision := s.ScheduleRobot(r, m, []*core.Goods{tooFar}, []*core.Berth{berth}, manhattan)
	if decision.Action != Fail {
		t.Fatalf("expected Fail when total path cost exceeds TTL, got %v", decision.Action)
	}
}

func TestScheduleRobotCarryingGoesToNearestFreeBerth(t *testing.T) {
	m := openMap(5, 5)
	near := core.NewBerth(1, core.Point{Row: 0, Col: 0}, 1, 1)
	far := core.NewBerth(2, core.Point{Row: 4, Col: 4}, 1, 1)
	m.ComputeBerthDistances(near.ID, near.Footprint())
	m.ComputeBerthDistances(far.ID, far.Footprint())

	s := New(DefaultParams())
	r := core.NewRobot(1, core.Point{Row: 1, Col: 1})
	r.Carrying = true

	decision := s.ScheduleRobot(r, m, nil, []*core.Berth{near, far}, manhattan)
	if decision.Action != MoveToBerth {
		t.Fatalf("expected MoveToBerth, got %v", decision.Action)
	}
	if decision.BerthID != near.ID {
		t.Fatalf("expected nearest berth %d, got %d", near.ID, decision.BerthID)
	}
}

func TestScheduleRobotCarryingSkipsFullBerths(t *testing.T) {
	m := openMap(5, 5)
	full := core.NewBerth(1, core.Point{Row: 0, Col: 0}, 1, 1)
	for i := range full.Slots {
		full.Slots[i] = core.GoodsID(i + 1)
	}
	open := core.NewBerth(2, core.Point{Row: 4, Col: 4}, 1, 1)
	m.ComputeBerthDistances(full.ID, full.Footprint())
	m.ComputeBerthDistances(open.ID, open.Footprint())

	s := New(DefaultParams())
	r := core.NewRobot(1, core.Point{Row: 1, Col: 1})
	r.Carrying = true

	decision := s.ScheduleRobot(r, m, nil, []*core.Berth{full, open}, manhattan)
	if decision.Action != MoveToBerth || decision.BerthID != open.ID {
		t.Fatalf("expected routing around the full berth to %d, got %v/%d", open.ID, decision.Action, decision.BerthID)
	}
}

func TestMaybeRebalanceReleasesLowestValuedRobotOverQuota(t *testing.T) {
	s := New(DefaultParams())
	s.params.DynamicSchedulingInterval = 1

	r1 := core.NewRobot(1, core.Point{})
	r2 := core.NewRobot(2, core.Point{})
	s.SetRobotCluster(r1.ID, 0)
	s.SetRobotCluster(r2.ID, 0)

	values := map[core.RobotID]float64{1: 0, 2: 10}
	released := core.RobotID(-1)

	s.MaybeRebalance(200, []*core.Robot{r1, r2},
		func(r *core.Robot) float64 { return values[r.ID] },
		func(cluster int) int { return 1 },
		func(r *core.Robot) int { released = r.ID; return 1 },
	)

	if released != r1.ID {
		t.Fatalf("expected the lowest-valued robot %d to be released, got %d", r1.ID, released)
	}
	if s.RobotCluster(r1.ID) != 1 {
		t.Fatalf("expected released robot reassigned to cluster 1, got %d", s.RobotCluster(r1.ID))
	}
}

func TestScheduleShipDepartsWhenLoadedPastScale(t *testing.T) {
	s := New(DefaultParams())
	ship := core.NewShip(1, core.Point{}, core.East, 100)
	ship.State = core.ShipLoading
	ship.GoodsCount = 20 // 20/100 = 0.2 >= default 0.15 scale

	if got := s.ScheduleShip(ship, false); got != ShipDepart {
		t.Fatalf("expected ShipDepart once past ABLE_DEPART_SCALE, got %v", got)
	}
}

func TestScheduleShipStaysWhileBerthHasMoreToLoad(t *testing.T) {
	s := New(DefaultParams())
	ship := core.NewShip(1, core.Point{}, core.East, 100)
	ship.State = core.ShipLoading
	ship.GoodsCount = 50

	if got := s.ScheduleShip(ship, true); got != ShipStay {
		t.Fatalf("expected ShipStay while the berth still has goods to load, got %v", got)
	}
}

func TestScheduleShipDepartsAfterWaitLimitEvenIfUnderfilled(t *testing.T) {
	s := New(DefaultParams())
	ship := core.NewShip(1, core.Point{}, core.East, 100)
	ship.State = core.ShipLoading
	ship.StillnessFrames = s.params.ShipWaitTimeLimit

	if got := s.ScheduleShip(ship, true); got != ShipDepart {
		t.Fatalf("expected ShipDepart once the wait-time limit is hit, got %v", got)
	}
}

func TestAssignBerthForShipSkipsFullQueues(t *testing.T) {
	s := New(DefaultParams())
	full := core.NewBerth(1, core.Point{Row: 0, Col: 0}, 1, 1)
	open := core.NewBerth(2, core.Point{Row: 5, Col: 5}, 1, 1)

	queue := map[core.BerthID]int{full.ID: s.params.MaxShipsPerBerth, open.ID: 0}
	id, ok := s.AssignBerthForShip(core.Point{Row: 1, Col: 1}, []*core.Berth{full, open},
		func(b core.BerthID) int { return queue[b] }, manhattan)

	if !ok || id != open.ID {
		t.Fatalf("expected routing to the open berth %d, got %d (ok=%v)", open.ID, id, ok)
	}
}
