package nav

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridMapValidation(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		cellSize float64
		blocked  []bool
	}{
		{name: "zero width", width: 0, height: 3, cellSize: 1, blocked: []bool{}},
		{name: "negative height", width: 3, height: -1, cellSize: 1, blocked: []bool{}},
		{name: "zero cell size", width: 2, height: 2, cellSize: 0, blocked: make([]bool, 4)},
		{name: "mask too short", width: 2, height: 2, cellSize: 1, blocked: make([]bool, 3)},
		{name: "mask too long", width: 2, height: 2, cellSize: 1, blocked: make([]bool, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGridMap(tt.width, tt.height, tt.cellSize, tt.blocked)
			assert.Error(t, err)
		})
	}
}

func TestGridMapCellState(t *testing.T) {
	mask := make([]bool, 9)
	mask[1*3+2] = true // (2,1)
	g, err := NewGridMap(3, 3, 1, mask)
	require.NoError(t, err)

	assert.Equal(t, Walkable, g.CellState(0, 0))
	assert.Equal(t, Blocked, g.CellState(2, 1))
	assert.Equal(t, OutOfBounds, g.CellState(-1, 0))
	assert.Equal(t, OutOfBounds, g.CellState(0, 3))
	assert.Equal(t, OutOfBounds, g.CellState(3, 2))

	assert.True(t, g.InBounds(Cell{X: 2, Y: 1}))
	assert.False(t, g.InBounds(Cell{X: 3, Y: 1}))
}

func TestGridMapCopiesMask(t *testing.T) {
	mask := make([]bool, 4)
	g, err := NewGridMap(2, 2, 1, mask)
	require.NoError(t, err)

	mask[0] = true
	assert.Equal(t, Walkable, g.CellState(0, 0))
}

func TestWorldToCell(t *testing.T) {
	g, err := NewGridMap(4, 4, 2, make([]bool, 16))
	require.NoError(t, err)

	assert.Equal(t, Cell{X: 0, Y: 0}, g.WorldToCell(cp.Vector{X: 0, Y: 0}))
	assert.Equal(t, Cell{X: 0, Y: 0}, g.WorldToCell(cp.Vector{X: 1.99, Y: 1.99}))
	assert.Equal(t, Cell{X: 1, Y: 2}, g.WorldToCell(cp.Vector{X: 2, Y: 4.5}))
	// Negative positions floor toward minus infinity, not toward zero.
	assert.Equal(t, Cell{X: -1, Y: -1}, g.WorldToCell(cp.Vector{X: -0.1, Y: -1.99}))
}

func TestCellToWorldIsCenter(t *testing.T) {
	g, err := NewGridMap(4, 4, 2, make([]bool, 16))
	require.NoError(t, err)

	p := g.CellToWorld(Cell{X: 1, Y: 3})
	assert.InDelta(t, 3.0, p.X, 1e-12)
	assert.InDelta(t, 7.0, p.Y, 1e-12)

	// Round-tripping the center lands in the same cell.
	assert.Equal(t, Cell{X: 1, Y: 3}, g.WorldToCell(p))
}
