// Package control implements the per-frame RobotController and
// ShipController of spec §4.5/§4.6: next-cell planning, conflict
// detection over the taxonomy {TargetOverlap, SwapPositions,
// HeadOnAttempt, EntryWhileOccupied}, and the deterministic resolution
// table that follows it. Grounded in
// original_source/robotController.cpp's runController /
// detectNextFrameConflict / tryResolveConflict trio.
package control

import "github.com/paopaochahu09/SmartPort-YYg/internal/core"

// CollisionType is the closed taxonomy of spec §4.5.
type CollisionType int

const (
	TargetOverlap CollisionType = iota
	SwapPositions
	HeadOnAttempt
	EntryWhileOccupied
)

func (t CollisionType) String() string {
	switch t {
	case TargetOverlap:
		return "TargetOverlap"
	case SwapPositions:
		return "SwapPositions"
	case HeadOnAttempt:
		return "HeadOnAttempt"
	case EntryWhileOccupied:
		return "EntryWhileOccupied"
	default:
		return "Unknown"
	}
}

// NoRobot is the sentinel for a single-robot collision event (e.g.
// EntryWhileOccupied involves only one mover).
const NoRobot core.RobotID = -1

// RobotCollision is one detected conflict between robots R1 and R2 (R2
// may be NoRobot).
type RobotCollision struct {
	R1, R2 core.RobotID
	Type   CollisionType
}

// NoShip is the ship-side analog of NoRobot.
const NoShip core.ShipID = -1

// ShipCollision is one detected oriented-footprint overlap between
// ships S1 and S2 (spec §4.6).
type ShipCollision struct {
	S1, S2 core.ShipID
}
