package pathfind

import (
	"container/heap"

	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
)

// shipState is a ship's full planning state: position + facing.
// Augmenting the search state with orientation mirrors
// orange-dot-mapf-het/internal/algo/astar3d.go's technique of folding
// an extra axis (there: altitude layer; here: facing) into the A*
// state space (spec §4.2).
type shipState struct {
	pos    core.Point
	orient core.Orientation
}

type shipNode struct {
	state  shipState
	g      int
	f      int
	parent *shipNode
}

type shipHeap []*shipNode

func (h shipHeap) Len() int { return len(h) }
func (h shipHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	if h[i].state.pos != h[j].state.pos {
		return h[i].state.pos.Less(h[j].state.pos)
	}
	return h[i].state.orient < h[j].state.orient
}
func (h shipHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *shipHeap) Push(x any)         { *h = append(*h, x.(*shipNode)) }
func (h *shipHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// FindShipPath runs A* over the (point, orientation) state space:
// valid transitions are forward-one-cell along the current facing, and
// ±90° rotation in place (spec §4.2). Main-channel cells are weighted
// 2x to discourage congestion. The returned slice follows the same
// "last element = immediate next step" convention as FindRobotPath.
func FindShipPath(m *core.Map, start core.Point, startOrient core.Orientation, goal core.Point, opts Options) ([]core.ShipStep, *core.Error) {
	if !m.InBounds(start) {
		return nil, core.NewError(core.ErrInvalidStart, "start %v out of bounds", start)
	}
	if !m.InBounds(goal) {
		return nil, core.NewError(core.ErrInvalidGoal, "goal %v out of bounds", goal)
	}
	if !m.ShipPassable(start, startOrient) && start != goal {
		return nil, core.NewError(core.ErrInvalidStart, "start footprint %v/%v not sea-passable", start, startOrient)
	}
	if start == goal {
		return []core.ShipStep{}, nil
	}

	heuristic := func(p core.Point) int { return p.Manhattan(goal) }

	budget := opts.budget()
	open := &shipHeap{}
	heap.Init(open)
	startState := shipState{pos: start, orient: startOrient}
	heap.Push(open, &shipNode{state: startState, g: 0, f: heuristic(start)})

	bestG := map[shipState]int{startState: 0}
	expansions := 0

	for open.Len() > 0 {
		cur := heap.Pop(open).(*shipNode)

		if cur.state.pos == goal {
			return reconstructShipPath(cur), nil
		}

		expansions++
		if expansions > budget {
			return nil, core.NewError(core.ErrOutOfBudget, "exceeded %d node expansions", budget)
		}

		// Forward move.
		next := cur.state.pos.Add(cur.state.orient.Delta())
		if m.InBounds(next) && m.ShipPassable(next, cur.state.orient) {
			cost := 1
			if m.IsMainChannel(next) {
				cost = 2
			}
			tryPush(open, bestG, cur, shipState{pos: next, orient: cur.state.orient}, cost, heuristic)
		}

		// Rotate in place, ±90.
		for _, o := range []core.Orientation{cur.state.orient.RotateCW(), cur.state.orient.RotateCCW()} {
			if m.ShipPassable(cur.state.pos, o) {
				tryPush(open, bestG, cur, shipState{pos: cur.state.pos, orient: o}, 1, heuristic)
			}
		}
	}

	return nil, core.NewError(core.ErrPathNotFound, "no ship path from %v/%v to %v", start, startOrient, goal)
}

func tryPush(open *shipHeap, bestG map[shipState]int, cur *shipNode, next shipState, cost int, heuristic func(core.Point) int) {
	ng := cur.g + cost
	if prev, ok := bestG[next]; ok && prev <= ng {
		return
	}
	bestG[next] = ng
	heap.Push(open, &shipNode{
		state:  next,
		g:      ng,
		f:      ng + heuristic(next.pos),
		parent: cur,
	})
}

func reconstructShipPath(n *shipNode) []core.ShipStep {
	var path []core.ShipStep
	for cur := n; cur.parent != nil; cur = cur.parent {
		path = append(path, core.ShipStep{Pos: cur.state.pos, Orient: cur.state.orient})
	}
	return path
}
