package core

// RobotID identifies a robot.
type RobotID int

// RobotState is the robot's finite-state lifecycle (spec §3).
type RobotState int

const (
	RobotIdle RobotState = iota
	RobotMovingToGoods
	RobotMovingToBerth
	RobotDizzy
	RobotDead
)

func (s RobotState) String() string {
	switch s {
	case RobotIdle:
		return "Idle"
	case RobotMovingToGoods:
		return "MovingToGoods"
	case RobotMovingToBerth:
		return "MovingToBerth"
	case RobotDizzy:
		return "Dizzy"
	case RobotDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// TargetKind distinguishes what a robot's assigned-target id refers to.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetGoods
	TargetBerth
)

// Robot is identity, position, carrying-flag, carried-good reference,
// FSM state, current destination, assigned target and a reversed path
// stack (spec §3). The path is a stack so the next step is O(1) at the
// top (spec §9); PopNext, SetPath and ClearPath below are the only
// sanctioned mutators so
// implementers never need to reach into its internal ordering.
type Robot struct {
	ID       RobotID
	Pos      Point
	Carrying bool
	CarriedGood GoodsID

	State RobotState

	Destination Point
	TargetKind  TargetKind
	TargetID    int // GoodsID or BerthID depending on TargetKind

	// path holds cells as a stack: the last element (top) is the
	// immediate next step, the first is the furthest from Pos (the goal).
	path []Point

	NextPos Point // computed once per frame by the controller

	// ClusterID is the berth-cluster this robot is restricted to under
	// partition scheduling (SPEC_FULL §4.4 supplement); -1 means
	// unassigned / partitioning disabled.
	ClusterID int
}

// NewRobot constructs an idle robot with no carried good and no path.
func NewRobot(id RobotID, pos Point) *Robot {
	return &Robot{
		ID:          id,
		Pos:         pos,
		CarriedGood: NoGoods,
		State:       RobotIdle,
		ClusterID:   -1,
	}
}

// PathEmpty reports whether the robot has no queued steps.
func (r *Robot) PathEmpty() bool {
	return len(r.path) == 0
}

// PathLen reports remaining queued steps — used as "work in progress"
// by priority comparisons (spec §4.5).
func (r *Robot) PathLen() int {
	return len(r.path)
}

// PeekNext returns the top of the path stack (the next cell to step
// to) without popping it. Returns the robot's current position and
// false if the path is empty.
func (r *Robot) PeekNext() (Point, bool) {
	if len(r.path) == 0 {
		return r.Pos, false
	}
	return r.path[len(r.path)-1], true
}

// PopNext removes and returns the top of the path stack.
func (r *Robot) PopNext() (Point, bool) {
	if len(r.path) == 0 {
		return r.Pos, false
	}
	n := len(r.path) - 1
	next := r.path[n]
	r.path = r.path[:n]
	return next, true
}

// SetPath installs a freshly planned path. The Pathfinder's contract
// (spec §4.2) already returns cells in "top of stack = next step"
// order, so this is a direct assignment.
func (r *Robot) SetPath(path []Point) {
	r.path = path
}

// ClearPath discards any queued steps, forcing the controller to
// replan on the next pass.
func (r *Robot) ClearPath() {
	r.path = nil
}

// CanMove reports whether the robot's FSM state allows it to move this
// frame (Dead and Dizzy robots cannot).
func (r *Robot) CanMove() bool {
	return r.State != RobotDead && r.State != RobotDizzy
}

// ComparePriority implements spec §4.5's compare_priority: not-Dizzy
// over Dizzy, then longer remaining path, then lower id. Returns true
// iff r has strictly higher priority than other.
func (r *Robot) ComparePriority(other *Robot) bool {
	rDizzy := r.State == RobotDizzy
	oDizzy := other.State == RobotDizzy
	if rDizzy != oDizzy {
		return !rDizzy
	}
	if r.PathLen() != other.PathLen() {
		return r.PathLen() > other.PathLen()
	}
	return r.ID < other.ID
}
