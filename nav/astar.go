package nav

import (
	"container/heap"
	"math"
)

// Status reports how a search ended. NoPath and BudgetExhausted are
// distinct: a caller hitting the budget may retry next tick with a fresh
// budget, while NoPath means the goal is unreachable on this map.
type Status int

const (
	Found Status = iota
	NoPath
	BudgetExhausted
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case NoPath:
		return "no-path"
	case BudgetExhausted:
		return "budget-exhausted"
	}
	return "unknown"
}

// Result is the outcome of one search. Path runs from start to goal
// inclusive when Status is Found. Explored records every expanded cell
// in dequeue order for debug overlays.
type Result struct {
	Status   Status
	Path     []Cell
	Explored []Cell
}

type searchNeighbor struct {
	dx       int
	dy       int
	cost     float64
	diagonal bool
}

var searchNeighborOffsets = [...]searchNeighbor{
	{dx: 0, dy: -1, cost: 1, diagonal: false},
	{dx: 1, dy: 0, cost: 1, diagonal: false},
	{dx: 0, dy: 1, cost: 1, diagonal: false},
	{dx: -1, dy: 0, cost: 1, diagonal: false},
	{dx: 1, dy: -1, cost: math.Sqrt2, diagonal: true},
	{dx: 1, dy: 1, cost: math.Sqrt2, diagonal: true},
	{dx: -1, dy: 1, cost: math.Sqrt2, diagonal: true},
	{dx: -1, dy: -1, cost: math.Sqrt2, diagonal: true},
}

type searchNode struct {
	cell   Cell
	g      float64
	h      float64
	f      float64
	seq    int
	index  int
	parent *searchNode
}

type openSet []*searchNode

func (o openSet) Len() int { return len(o) }

// Less orders by f, then by smaller h, then by insertion sequence so
// identical inputs always produce identical paths.
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	if o[i].h != o[j].h {
		return o[i].h < o[j].h
	}
	return o[i].seq < o[j].seq
}

func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}

func (o *openSet) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*o)
	*o = append(*o, n)
}

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*o = old[:n-1]
	return item
}

// octile is admissible for 8-directional movement with diagonal cost √2.
func octile(a, b Cell) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	if dx < dy {
		dx, dy = dy, dx
	}
	return dx + (math.Sqrt2-1)*dy
}

// canTraverseDiagonal forbids cutting a wall corner: a diagonal step is
// legal only when both flanking orthogonal cells are walkable.
func canTraverseDiagonal(g *GridMap, from Cell, n searchNeighbor) bool {
	if !n.diagonal {
		return true
	}
	if g.CellState(from.X+n.dx, from.Y) != Walkable {
		return false
	}
	if g.CellState(from.X, from.Y+n.dy) != Walkable {
		return false
	}
	return true
}

// Find runs A* from start to goal. budget caps the number of expanded
// nodes; zero or negative means unlimited. Search state is not resumed
// across calls; a budget-exhausted caller retries with a fresh budget.
func Find(g *GridMap, start, goal Cell, budget int) Result {
	if g.CellState(start.X, start.Y) != Walkable || g.CellState(goal.X, goal.Y) != Walkable {
		return Result{Status: NoPath}
	}

	open := &openSet{}
	heap.Init(open)
	seq := 0

	startNode := &searchNode{cell: start, g: 0, h: octile(start, goal), seq: seq}
	startNode.f = startNode.h
	heap.Push(open, startNode)

	index := func(c Cell) int { return c.Y*g.width + c.X }
	gScore := map[int]float64{index(start): 0}
	closed := make(map[int]struct{})
	explored := make([]Cell, 0, 64)

	for open.Len() > 0 {
		if budget > 0 && len(explored) >= budget {
			return Result{Status: BudgetExhausted, Explored: explored}
		}

		current := heap.Pop(open).(*searchNode)
		curIdx := index(current.cell)
		if _, seen := closed[curIdx]; seen {
			continue
		}
		closed[curIdx] = struct{}{}
		explored = append(explored, current.cell)

		if current.cell == goal {
			return Result{Status: Found, Path: reconstructPath(current), Explored: explored}
		}

		for _, n := range searchNeighborOffsets {
			next := Cell{X: current.cell.X + n.dx, Y: current.cell.Y + n.dy}
			if g.CellState(next.X, next.Y) != Walkable {
				continue
			}
			if !canTraverseDiagonal(g, current.cell, n) {
				continue
			}
			nextIdx := index(next)
			if _, seen := closed[nextIdx]; seen {
				continue
			}
			tentativeG := current.g + n.cost
			if prev, ok := gScore[nextIdx]; ok && tentativeG >= prev {
				continue
			}
			gScore[nextIdx] = tentativeG
			seq++
			h := octile(next, goal)
			heap.Push(open, &searchNode{
				cell:   next,
				g:      tentativeG,
				h:      h,
				f:      tentativeG + h,
				seq:    seq,
				parent: current,
			})
		}
	}

	return Result{Status: NoPath, Explored: explored}
}

// PathCost sums step costs along a cell path using the same cost model
// as the search (orthogonal 1, diagonal √2).
func PathCost(path []Cell) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		dx := path[i].X - path[i-1].X
		dy := path[i].Y - path[i-1].Y
		if dx != 0 && dy != 0 {
			total += math.Sqrt2
		} else {
			total += 1
		}
	}
	return total
}

func reconstructPath(end *searchNode) []Cell {
	path := make([]Cell, 0, 16)
	for n := end; n != nil; n = n.parent {
		path = append(path, n.cell)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
