// Package nav provides the discretized level grid and A* path search
// used by the navigation systems.
package nav

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// CellState classifies one grid cell.
type CellState int

const (
	Walkable CellState = iota
	Blocked
	OutOfBounds
)

func (s CellState) String() string {
	switch s {
	case Walkable:
		return "walkable"
	case Blocked:
		return "blocked"
	case OutOfBounds:
		return "out-of-bounds"
	}
	return "unknown"
}

// Cell is one integer grid coordinate.
type Cell struct {
	X int
	Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// GridMap is the immutable walkable/blocked discretization of a level.
// World coordinates map onto cells through a pure affine transform: cell
// (x, y) spans [x*cellSize, (x+1)*cellSize) on each axis, and
// CellToWorld returns the cell center. Navigation happens on the world
// X/Z ground plane; cp.Vector.Y carries the world Z coordinate here.
type GridMap struct {
	width    int
	height   int
	cellSize float64
	blocked  []bool
}

// NewGridMap builds a grid from a row-major blocked mask. The mask is
// copied so later mutation of the input cannot affect the map.
func NewGridMap(width, height int, cellSize float64, blocked []bool) (*GridMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("nav: invalid grid dimensions %dx%d", width, height)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("nav: invalid cell size %v", cellSize)
	}
	if len(blocked) != width*height {
		return nil, fmt.Errorf("nav: blocked mask length %d, want %d", len(blocked), width*height)
	}
	return &GridMap{
		width:    width,
		height:   height,
		cellSize: cellSize,
		blocked:  append([]bool(nil), blocked...),
	}, nil
}

func (g *GridMap) Width() int        { return g.width }
func (g *GridMap) Height() int       { return g.height }
func (g *GridMap) CellSize() float64 { return g.cellSize }

// CellState returns Walkable or Blocked for cells on the map and
// OutOfBounds otherwise, so callers can tell "blocked" apart from "off
// the map" instead of getting a silent clamp.
func (g *GridMap) CellState(x, y int) CellState {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return OutOfBounds
	}
	if g.blocked[y*g.width+x] {
		return Blocked
	}
	return Walkable
}

// InBounds reports whether the cell lies on the map.
func (g *GridMap) InBounds(c Cell) bool {
	return g.CellState(c.X, c.Y) != OutOfBounds
}

// WorldToCell maps a ground-plane world position to its containing cell.
// The result may be out of bounds; check CellState before searching.
func (g *GridMap) WorldToCell(p cp.Vector) Cell {
	return Cell{
		X: int(math.Floor(p.X / g.cellSize)),
		Y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// CellToWorld returns the world position of the cell center.
func (g *GridMap) CellToWorld(c Cell) cp.Vector {
	return cp.Vector{
		X: (float64(c.X) + 0.5) * g.cellSize,
		Y: (float64(c.Y) + 0.5) * g.cellSize,
	}
}
