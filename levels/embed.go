// Package levels loads tile-map level files and folds their physics
// layers into the navigation grid.
package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"gridnav/nav"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a tile map stored as JSON. Each layer is a flat row-major
// array of length Width*Height; layers whose metadata marks them as
// physics layers contribute blocked cells to the navigation grid.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	CellSize  float64     `json:"cell_size,omitempty"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	SpawnX    int         `json:"spawn_x,omitempty"`
	SpawnY    int         `json:"spawn_y,omitempty"`
	Entities  []Placement `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

// Placement is an entity spawn point recorded in the level file, in
// tile coordinates.
type Placement struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// DefaultCellSize is used when the level file does not set one.
const DefaultCellSize = 1.0

// LoadFromFS loads an embedded level by name.
func LoadFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return parse(name, data)
}

// Load loads a level file from disk.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	return parse(path, data)
}

func parse(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if err := lvl.validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", l.Width, l.Height)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("layer %d has %d tiles, want %d", i, len(layer), l.Width*l.Height)
		}
	}
	if l.CellSize < 0 {
		return fmt.Errorf("invalid cell size %v", l.CellSize)
	}
	return nil
}

// Spawn returns the level's spawn point in tile coordinates.
func (l *Level) Spawn() nav.Cell {
	return nav.Cell{X: l.SpawnX, Y: l.SpawnY}
}

// BuildGrid folds every physics layer into an immutable navigation
// grid. A cell is blocked when any physics layer has a non-zero tile
// there. Layers without metadata default to non-physics, matching the
// editor's output.
func (l *Level) BuildGrid() (*nav.GridMap, error) {
	cellSize := l.CellSize
	if cellSize == 0 {
		cellSize = DefaultCellSize
	}

	blocked := make([]bool, l.Width*l.Height)
	for i, layer := range l.Layers {
		if i >= len(l.LayerMeta) || !l.LayerMeta[i].Physics {
			continue
		}
		for idx, tile := range layer {
			if tile != 0 {
				blocked[idx] = true
			}
		}
	}

	return nav.NewGridMap(l.Width, l.Height, cellSize, blocked)
}
