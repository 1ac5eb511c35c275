package core

import "testing"

func TestRobotPathStackOrder(t *testing.T) {
	r := NewRobot(0, Point{0, 0})
	// SetPath installs cells "next step first" at the top of the stack.
	r.SetPath([]Point{{2, 0}, {1, 0}})

	next, ok := r.PeekNext()
	if !ok || next != (Point{1, 0}) {
		t.Fatalf("expected next step (1,0), got %v ok=%v", next, ok)
	}

	popped, ok := r.PopNext()
	if !ok || popped != (Point{1, 0}) {
		t.Fatalf("expected pop (1,0), got %v", popped)
	}
	if r.PathLen() != 1 {
		t.Fatalf("expected 1 remaining step, got %d", r.PathLen())
	}
}

func TestComparePriorityNotDizzyWins(t *testing.T) {
	r1 := NewRobot(0, Point{0, 0})
	r2 := NewRobot(1, Point{0, 0})
	r1.State = RobotDizzy

	if r1.ComparePriority(r2) {
		t.Fatalf("dizzy robot must never outrank a non-dizzy one")
	}
	if !r2.ComparePriority(r1) {
		t.Fatalf("non-dizzy robot must outrank dizzy one")
	}
}

func TestComparePriorityLongerPathWins(t *testing.T) {
	r1 := NewRobot(5, Point{0, 0})
	r2 := NewRobot(1, Point{0, 0})
	r1.SetPath([]Point{{1, 0}, {2, 0}, {3, 0}})
	r2.SetPath([]Point{{1, 0}})

	if !r1.ComparePriority(r2) {
		t.Fatalf("longer remaining path should outrank shorter, regardless of id")
	}
}

func TestComparePriorityLowerIDTieBreak(t *testing.T) {
	r1 := NewRobot(1, Point{0, 0})
	r2 := NewRobot(2, Point{0, 0})

	if !r1.ComparePriority(r2) {
		t.Fatalf("lower id should win when state and path length tie")
	}
	if r2.ComparePriority(r1) {
		t.Fatalf("higher id should lose tie-break")
	}
}

func TestShipComparePriorityRecoveryFirst(t *testing.T) {
	s1 := NewShip(0, Point{0, 0}, East, 100)
	s2 := NewShip(1, Point{0, 0}, East, 100)
	s1.Recovering = true

	noDest := func(*Ship) Point { return Point{Row: -1} }
	if s1.ComparePriority(s2, noDest) {
		t.Fatalf("recovering ship must not outrank a normal one")
	}
	if !s2.ComparePriority(s1, noDest) {
		t.Fatalf("normal ship must outrank a recovering one")
	}
}
