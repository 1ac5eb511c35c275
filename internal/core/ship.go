package core

// ShipID identifies a ship.
type ShipID int

// ShipState is the ship's finite-state lifecycle (spec §3).
type ShipState int

const (
	ShipIdle ShipState = iota
	ShipMovingToBerth
	ShipMovingToDelivery
	ShipLoading
)

func (s ShipState) String() string {
	switch s {
	case ShipIdle:
		return "Idle"
	case ShipMovingToBerth:
		return "MovingToBerth"
	case ShipMovingToDelivery:
		return "MovingToDelivery"
	case ShipLoading:
		return "Loading"
	default:
		return "Unknown"
	}
}

// ShipStep is one (point, orientation) entry of a ship's planned path.
type ShipStep struct {
	Pos    Point
	Orient Orientation
}

// NoBerthID / NoDeliveryID are sentinels for "no assignment".
const NoBerthID BerthID = -1
const NoDeliveryID = -1

// Ship is (point, orientation), on-board good count/value, capacity,
// FSM state, assigned berth-or-delivery id, a reversed path of
// (point, orientation) steps, and a stillness counter (spec §3).
type Ship struct {
	ID     ShipID
	Pos    Point
	Orient Orientation

	GoodsCount int
	GoodsValue int
	Capacity   int

	State ShipState

	AssignedBerth    BerthID
	AssignedDelivery int // delivery point index, or NoDeliveryID

	path []ShipStep

	NextPos    Point
	NextOrient Orientation

	// StillnessFrames counts consecutive frames with no progress,
	// feeding SHIP_WAIT_TIME_LIMIT (SPEC_FULL §4.4).
	StillnessFrames int

	// Recovering mirrors the original "state" field's recovery state
	// (original_source/ship.h): a ship that overshot/collided and must
	// re-approach before resuming normal priority.
	Recovering bool
}

// NewShip constructs an idle ship with the given capacity.
func NewShip(id ShipID, pos Point, orient Orientation, capacity int) *Ship {
	return &Ship{
		ID:               id,
		Pos:              pos,
		Orient:           orient,
		Capacity:         capacity,
		State:            ShipIdle,
		AssignedBerth:    NoBerthID,
		AssignedDelivery: NoDeliveryID,
	}
}

// Footprint returns the ship's current occupancy rectangle.
func (s *Ship) Footprint() [2]Point {
	return ShipFootprint(s.Pos, s.Orient)
}

// NextFootprint returns the occupancy rectangle the ship will have
// next frame, per its planned NextPos/NextOrient.
func (s *Ship) NextFootprint() [2]Point {
	return ShipFootprint(s.NextPos, s.NextOrient)
}

// PathEmpty reports whether the ship has no queued steps.
func (s *Ship) PathEmpty() bool {
	return len(s.path) == 0
}

// PathLen reports remaining queued steps.
func (s *Ship) PathLen() int {
	return len(s.path)
}

// PeekNext returns the top of the path stack without popping it.
func (s *Ship) PeekNext() (ShipStep, bool) {
	if len(s.path) == 0 {
		return ShipStep{Pos: s.Pos, Orient: s.Orient}, false
	}
	return s.path[len(s.path)-1], true
}

// PopNext removes and returns the top of the path stack.
func (s *Ship) PopNext() (ShipStep, bool) {
	if len(s.path) == 0 {
		return ShipStep{Pos: s.Pos, Orient: s.Orient}, false
	}
	n := len(s.path) - 1
	next := s.path[n]
	s.path = s.path[:n]
	return next, true
}

// SetPath installs a freshly planned path (top-of-stack = next step).
func (s *Ship) SetPath(path []ShipStep) {
	s.path = path
}

// ClearPath discards queued steps.
func (s *Ship) ClearPath() {
	s.path = nil
}

// FinalDestination returns the goal cell of the ship's current planned
// route — the path slice's first element, per the pathfinder's
// "first = goal, last = next step" convention — or false if the ship
// has no queued path.
func (s *Ship) FinalDestination() (Point, bool) {
	if len(s.path) == 0 {
		return Point{}, false
	}
	return s.path[0].Pos, true
}

// LoadRatio returns goods-count over capacity, used by the
// ABLE_DEPART_SCALE departure rule (spec §4.4).
func (s *Ship) LoadRatio() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.GoodsCount) / float64(s.Capacity)
}

// HasCapacity reports whether the ship can accept at least one more
// good.
func (s *Ship) HasCapacity() bool {
	return s.GoodsCount < s.Capacity
}

// ComparePriority implements spec §4.6: not-recovering first, then the
// ship whose next footprint overlaps the other's destination, then
// longer path, then lower id. Returns true iff s outranks other.
// destOf must return the cell the ship is currently routed toward, or
// a point with Row < 0 if it has none.
func (s *Ship) ComparePriority(other *Ship, destOf func(*Ship) Point) bool {
	if s.Recovering != other.Recovering {
		return !s.Recovering
	}
	sDest := destOf(s)
	oDest := destOf(other)
	sBlocksOther := oDest.Row >= 0 && footprintContains(s.NextFootprint(), oDest)
	oBlocksSelf := sDest.Row >= 0 && footprintContains(other.NextFootprint(), sDest)
	if sBlocksOther != oBlocksSelf {
		return sBlocksOther
	}
	if s.PathLen() != other.PathLen() {
		return s.PathLen() > other.PathLen()
	}
	return s.ID < other.ID
}

func footprintContains(fp [2]Point, p Point) bool {
	return fp[0] == p || fp[1] == p
}
