// Package pathfind implements the shortest-path service of spec §4.2:
// given (start, goal, map snapshot) it returns a reversed step
// sequence (empty when start == goal), or one of the typed failures NoPath / OutOfBudget /
// InvalidStart / InvalidGoal. Grounded in
// orange-dot-mapf-het/internal/algo/astar.go's heap-based A* (there:
// space-time states; here: a static per-frame grid snapshot, since the
// controller re-invokes the pathfinder every frame rather than
// planning over a timeline). The open set has no decrease-key: an
// improved node is pushed again and its stale heap entry is simply
// expanded later.
package pathfind

import (
	"container/heap"

	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
)

// DefaultNodeBudget bounds per-call node expansions (spec §5
// "cancellation & timeout": a pathfinding call may be cancelled by
// exceeding its per-call node-expansion cap).
const DefaultNodeBudget = 20000

// Options tunes a single FindRobotPath / FindShipPath call.
type Options struct {
	NodeBudget int // <=0 means DefaultNodeBudget
}

func (o Options) budget() int {
	if o.NodeBudget <= 0 {
		return DefaultNodeBudget
	}
	return o.NodeBudget
}

type robotNode struct {
	pos    core.Point
	g      int
	f      int
	parent *robotNode
	index  int
}

type robotHeap []*robotNode

func (h robotHeap) Len() int { return len(h) }
func (h robotHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	// Deterministic tie-break: lexicographically smaller position wins.
	return h[i].pos.Less(h[j].pos)
}
func (h robotHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *robotHeap) Push(x any) {
	n := x.(*robotNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *robotHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// FindRobotPath runs grid A* from start to goal over m, treating
// overlaid (TransientBlock) cells as impassable (spec §4.2). The
// returned slice is ordered so the LAST element is the immediate next
// step and the FIRST is the goal — i.e. ready to hand straight to
// Robot.SetPath, whose PopNext pops from the end. An empty, non-nil
// slice with a nil error means start == goal (no movement needed).
func FindRobotPath(m *core.Map, start, goal core.Point, opts Options) ([]core.Point, *core.Error) {
	if !m.InBounds(start) {
		return nil, core.NewError(core.ErrInvalidStart, "start %v out of bounds", start)
	}
	if !m.InBounds(goal) {
		return nil, core.NewError(core.ErrInvalidGoal, "goal %v out of bounds", goal)
	}
	if !m.Passable(start) && start != goal {
		return nil, core.NewError(core.ErrInvalidStart, "start %v not passable", start)
	}
	if !m.Passable(goal) {
		return nil, core.NewError(core.ErrInvalidGoal, "goal %v not passable", goal)
	}
	if start == goal {
		return []core.Point{}, nil
	}

	budget := opts.budget()
	open := &robotHeap{}
	heap.Init(open)
	heap.Push(open, &robotNode{pos: start, g: 0, f: start.Manhattan(goal)})

	bestG := map[core.Point]int{start: 0}
	expansions := 0

	for open.Len() > 0 {
		cur := heap.Pop(open).(*robotNode)

		if cur.pos == goal {
			return reconstructRobotPath(cur), nil
		}

		expansions++
		if expansions > budget {
			return nil, core.NewError(core.ErrOutOfBudget, "exceeded %d node expansions", budget)
		}

		for _, next := range m.Neighbors(cur.pos) {
			ng := cur.g + 1
			if prev, ok := bestG[next]; ok && prev <= ng {
				continue
			}
			bestG[next] = ng
			heap.Push(open, &robotNode{
				pos:    next,
				g:      ng,
				f:      ng + next.Manhattan(goal),
				parent: cur,
			})
		}
	}

	return nil, core.NewError(core.ErrPathNotFound, "no path from %v to %v", start, goal)
}

func reconstructRobotPath(n *robotNode) []core.Point {
	var path []core.Point
	for cur := n; cur.parent != nil; cur = cur.parent {
		path = append(path, cur.pos)
	}
	return path
}
