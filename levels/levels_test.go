package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridnav/nav"
)

func TestLoadEmbeddedArena(t *testing.T) {
	lvl, err := LoadFromFS("arena.json")
	require.NoError(t, err)

	assert.Equal(t, 12, lvl.Width)
	assert.Equal(t, 12, lvl.Height)
	assert.Equal(t, nav.Cell{X: 2, Y: 2}, lvl.Spawn())
	require.NotEmpty(t, lvl.Entities)
	assert.Equal(t, "patrol_bot", lvl.Entities[0].Type)
}

func TestLoadMissingEmbedded(t *testing.T) {
	_, err := LoadFromFS("no-such-level.json")
	assert.Error(t, err)
}

func TestBuildGridFoldsPhysicsLayers(t *testing.T) {
	lvl, err := LoadFromFS("arena.json")
	require.NoError(t, err)

	grid, err := lvl.BuildGrid()
	require.NoError(t, err)

	assert.Equal(t, 12, grid.Width())
	assert.Equal(t, 12, grid.Height())
	assert.Equal(t, 1.0, grid.CellSize())

	// Border walls are blocked, the interior spawn is open.
	assert.Equal(t, nav.Blocked, grid.CellState(0, 0))
	assert.Equal(t, nav.Blocked, grid.CellState(11, 5))
	assert.Equal(t, nav.Walkable, grid.CellState(2, 2))

	// The pillar column sits at x=6 from rows 3 through 7.
	for y := 3; y <= 7; y++ {
		assert.Equal(t, nav.Blocked, grid.CellState(6, y), "pillar at (6,%d)", y)
	}
	assert.Equal(t, nav.Walkable, grid.CellState(6, 2))
}

func writeLevel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromDisk(t *testing.T) {
	path := writeLevel(t, `{
		"width": 2, "height": 2,
		"layers": [[0, 1, 0, 0]],
		"layer_meta": [{"physics": true}]
	}`)
	lvl, err := Load(path)
	require.NoError(t, err)

	grid, err := lvl.BuildGrid()
	require.NoError(t, err)
	assert.Equal(t, nav.Blocked, grid.CellState(1, 0))
	assert.Equal(t, nav.Walkable, grid.CellState(0, 0))
	assert.Equal(t, DefaultCellSize, grid.CellSize())
}

func TestLoadRejectsBadLevels(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{"},
		{"zero width", `{"width": 0, "height": 2, "layers": []}`},
		{"layer length mismatch", `{"width": 2, "height": 2, "layers": [[0, 1]]}`},
		{"negative cell size", `{"width": 2, "height": 2, "cell_size": -1, "layers": [[0,0,0,0]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeLevel(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestBuildGridIgnoresNonPhysicsLayers(t *testing.T) {
	path := writeLevel(t, `{
		"width": 2, "height": 1,
		"layers": [[5, 5]],
		"layer_meta": [{"physics": false}]
	}`)
	lvl, err := Load(path)
	require.NoError(t, err)

	grid, err := lvl.BuildGrid()
	require.NoError(t, err)
	assert.Equal(t, nav.Walkable, grid.CellState(0, 0))
	assert.Equal(t, nav.Walkable, grid.CellState(1, 0))
}
