// Package assets implements purchase decisions for robots and ships,
// grounded in original_source/earlyGameAssetManager.h's
// EarlyGameAssetManager: land/sea/land-sea connected-component
// division feeding per-region shop selection, and a budget-gated
// buy-robot-or-buy-ship policy. Constants (initial funds 25000, robot
// cost 2000, ship cost 8000) come from that file's header comment;
// maxRobotNum/maxShipNum/startNum/timeToBuyShip/robotFirst/
// CentralizedTransportation come from original_source/params.h.
package assets

import (
	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
)

const (
	InitialFunds = 25000
	RobotCost    = 2000
	ShipCost     = 8000
)

// Params mirrors the purchase-policy knobs of original_source/params.h.
type Params struct {
	MaxRobotNum               int
	MaxShipNum                int
	StartNum                  int
	TimeToBuyShip             int
	RobotFirst                bool
	CentralizedTransportation bool
}

func DefaultParams() Params {
	return Params{
		MaxRobotNum:               12,
		MaxShipNum:                3,
		StartNum:                  1,
		TimeToBuyShip:             50,
		RobotFirst:                true,
		CentralizedTransportation: true,
	}
}

// LandBlock is a connected component of land (Space/Berth) cells,
// together with the berths it contains.
type LandBlock struct {
	Size   int
	Berths []core.BerthID
}

// SeaBlock is a connected component of Sea cells, together with the
// delivery points it contains.
type SeaBlock struct {
	Size           int
	DeliveryPoints []core.Point
}

// LandSeaBlock pairs a land block with the sea blocks reachable
// through its berths, collecting robot/ship spawn points available in
// the combined region.
type LandSeaBlock struct {
	LandSize       int
	Berths         []core.BerthID
	DeliveryPoints []core.Point
	RobotShops     []core.Point
	ShipShops      []core.Point
}

// Manager is the purchase-decision engine. It owns no game state
// beyond its own bookkeeping (funds are read from the frame's current
// state, not cached) — one call to Decide per frame.
type Manager struct {
	params Params

	RobotShops []core.Point
	ShipShops  []core.Point

	LandBlocks    []LandBlock
	SeaBlocks     []SeaBlock
	LandSeaBlocks []LandSeaBlock

	PurchasedRobots int
	PurchasedShips  int
}

func New(params Params, robotShops, shipShops []core.Point) *Manager {
	return &Manager{params: params, RobotShops: robotShops, ShipShops: shipShops}
}

// DivideLandConnectedBlocks floods every land-passable (Space/Berth)
// component of m and assigns each berth to its component.
func (mgr *Manager) DivideLandConnectedBlocks(m *core.Map, berths []*core.Berth) {
	visited := make([][]bool, m.Rows)
	for r := range visited {
		visited[r] = make([]bool, m.Cols)
	}
	berthAt := make(map[core.Point]core.BerthID)
	for _, b := range berths {
		for _, cell := range b.Footprint() {
			berthAt[cell] = b.ID
		}
	}

	var blocks []LandBlock
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			start := core.Point{Row: r, Col: c}
			if visited[r][c] || !landPassable(m, start) {
				continue
			}
			size := 0
			seenBerths := make(map[core.BerthID]bool)
			queue := []core.Point{start}
			visited[r][c] = true
			for head := 0; head < len(queue); head++ {
				cur := queue[head]
				size++
				if id, ok := berthAt[cur]; ok {
					seenBerths[id] = true
				}
				for _, n := range m.Neighbors(cur) {
					if visited[n.Row][n.Col] || !landPassable(m, n) {
						continue
					}
					visited[n.Row][n.Col] = true
					queue = append(queue, n)
				}
			}
			lb := LandBlock{Size: size}
			for id := range seenBerths {
				lb.Berths = append(lb.Berths, id)
			}
			blocks = append(blocks, lb)
		}
	}
	mgr.LandBlocks = blocks
}

func landPassable(m *core.Map, p core.Point) bool {
	c := m.GetCell(p)
	return c == core.Space || c == core.Berth
}

// DivideSeaConnectedBlocks floods every Sea component and assigns
// each delivery point to its component.
func (mgr *Manager) DivideSeaConnectedBlocks(deliveryPoints []core.Point, m *core.Map) {
	visited := make([][]bool, m.Rows)
	for r := range visited {
		visited[r] = make([]bool, m.Cols)
	}
	deliveryAt := make(map[core.Point]bool)
	for _, p := range deliveryPoints {
		deliveryAt[p] = true
	}

	var blocks []SeaBlock
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			start := core.Point{Row: r, Col: c}
			if visited[r][c] || m.GetCell(start) != core.Sea {
				continue
			}
			size := 0
			var delivery []core.Point
			queue := []core.Point{start}
			visited[r][c] = true
			for head := 0; head < len(queue); head++ {
				cur := queue[head]
				size++
				if deliveryAt[cur] {
					delivery = append(delivery, cur)
				}
				for _, n := range m.Neighbors(cur) {
					if visited[n.Row][n.Col] || m.GetCell(n) != core.Sea {
						continue
					}
					visited[n.Row][n.Col] = true
					queue = append(queue, n)
				}
			}
			blocks = append(blocks, SeaBlock{Size: size, DeliveryPoints: delivery})
		}
	}
	mgr.SeaBlocks = blocks
}

// DivideLandAndSeaConnectedBlocks pairs each land block with the sea
// blocks its berths border (a berth cell adjacent to Sea bridges the
// two), and collects the robot/ship shops that fall within the
// combined region.
func (mgr *Manager) DivideLandAndSeaConnectedBlocks(m *core.Map, berths []*core.Berth) {
	berthByID := make(map[core.BerthID]*core.Berth, len(berths))
	for _, b := range berths {
		berthByID[b.ID] = b
	}

	var combined []LandSeaBlock
	for _, lb := range mgr.LandBlocks {
		seaSeen := make(map[int]bool)
		var delivery []core.Point
		for _, bid := range lb.Berths {
			b := berthByID[bid]
			if b == nil {
				continue
			}
			for _, cell := range b.Footprint() {
				for _, n := range m.Neighbors(cell) {
					if m.GetCell(n) != core.Sea {
						continue
					}
					for si, sb := range mgr.SeaBlocks {
						if seaSeen[si] {
							continue
						}
						for _, dp := range sb.DeliveryPoints {
							if dp == n {
								seaSeen[si] = true
							}
						}
					}
				}
			}
		}
		for si := range seaSeen {
			delivery = append(delivery, mgr.SeaBlocks[si].DeliveryPoints...)
		}

		var robotShops, shipShops []core.Point
		for _, p := range mgr.RobotShops {
			if m.GetCell(p) == core.Space || m.GetCell(p) == core.Berth {
				robotShops = append(robotShops, p)
			}
		}
		for _, p := range mgr.ShipShops {
			shipShops = append(shipShops, p)
		}

		combined = append(combined, LandSeaBlock{
			LandSize:       lb.Size,
			Berths:         lb.Berths,
			DeliveryPoints: delivery,
			RobotShops:     robotShops,
			ShipShops:      shipShops,
		})
	}
	mgr.LandSeaBlocks = combined
}

// Decision is what the manager decided to purchase this frame.
type Decision int

const (
	BuyNothing Decision = iota
	BuyRobot
	BuyShip
)

// PurchaseDecision is Decide's return value: what to buy and where.
type PurchaseDecision struct {
	Decision Decision
	At       core.Point
}

// Decide implements makePurchaseDecision: buy while under budget and
// quota, preferring robots-then-ships (or the reverse) per
// params.RobotFirst, gating ship purchases behind TimeToBuyShip.
func (mgr *Manager) Decide(funds, frame int, robotCount, shipCount int) PurchaseDecision {
	canRobot := funds >= RobotCost && robotCount < mgr.params.MaxRobotNum && len(mgr.RobotShops) > 0
	canShip := funds >= ShipCost && shipCount < mgr.params.MaxShipNum && frame >= mgr.params.TimeToBuyShip && len(mgr.ShipShops) > 0

	if mgr.params.RobotFirst {
		if canRobot {
			return PurchaseDecision{Decision: BuyRobot, At: mgr.pickRobotShop()}
		}
		if canShip {
			return PurchaseDecision{Decision: BuyShip, At: mgr.pickShipShop()}
		}
		return PurchaseDecision{Decision: BuyNothing}
	}
	if canShip {
		return PurchaseDecision{Decision: BuyShip, At: mgr.pickShipShop()}
	}
	if canRobot {
		return PurchaseDecision{Decision: BuyRobot, At: mgr.pickRobotShop()}
	}
	return PurchaseDecision{Decision: BuyNothing}
}

// pickRobotShop round-robins over the land-sea blocks' robot shops,
// preferring the block with the most land area (richest job supply),
// mirroring getProperRobotShop's size-weighted preference.
func (mgr *Manager) pickRobotShop() core.Point {
	var best *LandSeaBlock
	for i := range mgr.LandSeaBlocks {
		lsb := &mgr.LandSeaBlocks[i]
		if len(lsb.RobotShops) == 0 {
			continue
		}
		if best == nil || lsb.LandSize > best.LandSize {
			best = lsb
		}
	}
	if best != nil {
		return best.RobotShops[mgr.PurchasedRobots%len(best.RobotShops)]
	}
	if len(mgr.RobotShops) == 0 {
		return core.Point{}
	}
	return mgr.RobotShops[mgr.PurchasedRobots%len(mgr.RobotShops)]
}

func (mgr *Manager) pickShipShop() core.Point {
	var best *LandSeaBlock
	for i := range mgr.LandSeaBlocks {
		lsb := &mgr.LandSeaBlocks[i]
		if len(lsb.ShipShops) == 0 {
			continue
		}
		if best == nil || len(lsb.DeliveryPoints) > len(best.DeliveryPoints) {
			best = lsb
		}
	}
	if best != nil {
		return best.ShipShops[mgr.PurchasedShips%len(best.ShipShops)]
	}
	if len(mgr.ShipShops) == 0 {
		return core.Point{}
	}
	return mgr.ShipShops[mgr.PurchasedShips%len(mgr.ShipShops)]
}

// RecordPurchase updates the purchased counters after a successful buy.
func (mgr *Manager) RecordPurchase(d Decision) {
	switch d {
	case BuyRobot:
		mgr.PurchasedRobots++
	case BuyShip:
		mgr.PurchasedShips++
	}
}
