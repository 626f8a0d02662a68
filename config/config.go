// Package config loads the navigation tuning file. Stall detection
// thresholds and search budgets are tuning parameters, not constants,
// so they live in YAML and can be hot-reloaded mid-run.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every knob the navigation systems read. Times are in
// seconds, distances in world units.
type Tuning struct {
	// ArriveRadius is how close to a waypoint counts as reached.
	ArriveRadius float64 `yaml:"arrive_radius"`
	// MinProgress is the displacement per second below which a
	// navigating entity is considered stalled.
	MinProgress float64 `yaml:"min_progress"`
	// StuckTimeout is how long a stall may last before the route is
	// recalculated.
	StuckTimeout float64 `yaml:"stuck_timeout"`
	// RetryCooldown is how long a Stuck pathfinder waits before
	// searching again.
	RetryCooldown float64 `yaml:"retry_cooldown"`
	// SearchBudget caps expanded nodes per search; 0 means unlimited.
	SearchBudget int `yaml:"search_budget"`
	// MaxBudgetMisses is how many consecutive budget-exhausted searches
	// are tolerated before giving up and going Stuck.
	MaxBudgetMisses int `yaml:"max_budget_misses"`
	// MoveSpeed and TurnSpeed are the defaults for spawned bots.
	MoveSpeed float64 `yaml:"move_speed"`
	TurnSpeed float64 `yaml:"turn_speed"`
}

// Default returns the tuning used when no file is given.
func Default() Tuning {
	return Tuning{
		ArriveRadius:    0.4,
		MinProgress:     0.05,
		StuckTimeout:    0.5,
		RetryCooldown:   1.0,
		SearchBudget:    0,
		MaxBudgetMisses: 3,
		MoveSpeed:       2.0,
		TurnSpeed:       5.0,
	}
}

// Load reads a tuning file, overlaying it on the defaults.
func Load(path string) (Tuning, error) {
	t := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("config: %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects values the navigation systems cannot work with.
func (t Tuning) Validate() error {
	if t.ArriveRadius <= 0 {
		return fmt.Errorf("arrive_radius must be positive, got %v", t.ArriveRadius)
	}
	if t.MinProgress < 0 {
		return fmt.Errorf("min_progress must not be negative, got %v", t.MinProgress)
	}
	if t.StuckTimeout <= 0 {
		return fmt.Errorf("stuck_timeout must be positive, got %v", t.StuckTimeout)
	}
	if t.RetryCooldown <= 0 {
		return fmt.Errorf("retry_cooldown must be positive, got %v", t.RetryCooldown)
	}
	if t.SearchBudget < 0 {
		return fmt.Errorf("search_budget must not be negative, got %d", t.SearchBudget)
	}
	if t.MaxBudgetMisses <= 0 {
		return fmt.Errorf("max_budget_misses must be positive, got %d", t.MaxBudgetMisses)
	}
	if t.MoveSpeed <= 0 {
		return fmt.Errorf("move_speed must be positive, got %v", t.MoveSpeed)
	}
	if t.TurnSpeed <= 0 {
		return fmt.Errorf("turn_speed must be positive, got %v", t.TurnSpeed)
	}
	return nil
}
