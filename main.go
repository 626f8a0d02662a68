// Command gridnav runs the headless navigation simulation: it loads a
// level, spawns the bots it places, and ticks the scheduler at a fixed
// timestep while hot-reloading the tuning file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"gridnav/config"
	"gridnav/ecs"
	"gridnav/ecs/component"
	"gridnav/ecs/system"
	"gridnav/levels"
	"gridnav/nav"
)

func main() {
	var (
		levelName  = flag.String("level", "arena.json", "embedded level name, or a path when -level-file is set")
		levelFile  = flag.Bool("level-file", false, "load -level from disk instead of the embedded set")
		configPath = flag.String("config", "", "tuning YAML; defaults apply when empty")
		bots       = flag.Int("bots", 0, "extra bots to spawn at the level spawn point")
		scriptPath = flag.String("script", "", "tengo script driving the extra bots; patrol corners when empty")
		duration   = flag.Duration("duration", 30*time.Second, "how long to simulate")
		tickRate   = flag.Float64("tick", 60, "simulation ticks per second")
		debug      = flag.Bool("debug", false, "verbose logging and per-entity nav dumps")
	)
	flag.Parse()

	logger, err := buildLogger(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gridnav:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger, *levelName, *levelFile, *configPath, *bots, *scriptPath, *duration, *tickRate, *debug); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}

func run(logger *zap.Logger, levelName string, levelFile bool, configPath string, extraBots int, scriptPath string, duration time.Duration, tickRate float64, debug bool) error {
	if tickRate <= 0 {
		return fmt.Errorf("gridnav: tick rate must be positive, got %v", tickRate)
	}

	var botScript string
	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("gridnav: read script %s: %w", scriptPath, err)
		}
		botScript = string(data)
	}

	var (
		lvl *levels.Level
		err error
	)
	if levelFile {
		lvl, err = levels.Load(levelName)
	} else {
		lvl, err = levels.LoadFromFS(levelName)
	}
	if err != nil {
		return err
	}
	grid, err := lvl.BuildGrid()
	if err != nil {
		return err
	}
	logger.Info("level loaded",
		zap.String("level", levelName),
		zap.Int("width", grid.Width()),
		zap.Int("height", grid.Height()))

	tuning := config.Default()
	if configPath != "" {
		tuning, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	w := ecs.NewWorld()
	system.RegisterComponentUpdates()

	ps := system.NewPathfindingSystem(grid, tuning, logger)
	ms := system.NewMovementSystem(grid)
	bs := system.NewBotSystem(grid, logger)

	sched := ecs.NewScheduler()
	sched.Add(ecs.PhaseIntent, bs)
	sched.Add(ecs.PhaseNavigation, ps)
	sched.Add(ecs.PhasePhysics, ms)

	spawned := spawnFromLevel(w, lvl, grid, tuning, logger)
	for i := 0; i < extraBots; i++ {
		if botScript != "" {
			spawnScriptBot(w, grid, lvl.Spawn(), botScript, tuning)
		} else {
			spawnPatrolBot(w, grid, lvl.Spawn(), cornerPatrol(grid), tuning)
		}
		spawned++
	}
	if spawned == 0 {
		logger.Warn("nothing to simulate; the level places no bots and -bots is 0")
	}

	arrivals := 0
	w.Events().Subscribe(func(ev ecs.Event) {
		if ev.Type != system.EventArrived {
			return
		}
		arrivals++
		if a, ok := ev.Data.(system.Arrival); ok {
			logger.Debug("arrived",
				zap.Stringer("entity", a.Entity),
				zap.Stringer("cell", a.Cell))
		}
	})

	var watcher *config.Watcher
	if configPath != "" {
		watcher, err = config.NewWatcher(configPath)
		if err != nil {
			logger.Warn("tuning watch unavailable", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	dt := 1 / tickRate
	ticks := int(duration.Seconds() * tickRate)
	start := time.Now()
	for i := 0; i < ticks; i++ {
		if watcher != nil {
			reloadTuning(watcher, ps, logger)
		}
		sched.Tick(w, dt)
	}

	logger.Info("simulation finished",
		zap.Int("ticks", ticks),
		zap.Int("bots", spawned),
		zap.Int("arrivals", arrivals),
		zap.Duration("wall", time.Since(start)))

	if debug {
		dumpNav(w, logger)
	}
	return nil
}

func reloadTuning(watcher *config.Watcher, ps *system.PathfindingSystem, logger *zap.Logger) {
	for {
		select {
		case path, ok := <-watcher.Events:
			if !ok {
				return
			}
			t, err := config.Load(path)
			if err != nil {
				logger.Warn("tuning reload rejected", zap.Error(err))
				continue
			}
			ps.SetTuning(t)
			logger.Info("tuning reloaded", zap.String("path", path))
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("tuning watch error", zap.Error(err))
		default:
			return
		}
	}
}

// spawnFromLevel instantiates the entity placements recorded in the
// level file. Unknown placement types are skipped with a warning so a
// level authored for a richer build still loads.
func spawnFromLevel(w *ecs.World, lvl *levels.Level, grid *nav.GridMap, tuning config.Tuning, logger *zap.Logger) int {
	spawned := 0
	for _, p := range lvl.Entities {
		switch p.Type {
		case "patrol_bot":
			waypoints := placementWaypoints(p)
			if len(waypoints) == 0 {
				waypoints = cornerPatrol(grid)
			}
			spawnPatrolBot(w, grid, nav.Cell{X: p.X, Y: p.Y}, waypoints, tuning)
			spawned++
		case "script_bot":
			source, _ := p.Props["script"].(string)
			if source == "" {
				logger.Warn("script_bot placement has no script", zap.Int("x", p.X), zap.Int("y", p.Y))
				continue
			}
			spawnScriptBot(w, grid, nav.Cell{X: p.X, Y: p.Y}, source, tuning)
			spawned++
		default:
			logger.Warn("unknown placement type skipped", zap.String("type", p.Type))
		}
	}
	return spawned
}

func placementWaypoints(p levels.Placement) []nav.Cell {
	raw, ok := p.Props["waypoints"].([]any)
	if !ok {
		return nil
	}
	var cells []nav.Cell
	for _, item := range raw {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			continue
		}
		x, xok := pair[0].(float64)
		y, yok := pair[1].(float64)
		if !xok || !yok {
			continue
		}
		cells = append(cells, nav.Cell{X: int(x), Y: int(y)})
	}
	return cells
}

func spawnPatrolBot(w *ecs.World, grid *nav.GridMap, at nav.Cell, waypoints []nav.Cell, tuning config.Tuning) ecs.Entity {
	e := w.CreateEntity()
	pos := grid.CellToWorld(at)
	tr := component.NewTransform(pos.X, 0, pos.Y)
	_ = ecs.Add(w, e, component.TransformComponent, tr)
	_ = ecs.Add(w, e, component.PathfinderComponent,
		component.NewPathfinder(tuning.MoveSpeed, tuning.TurnSpeed, tuning.ArriveRadius))
	_ = ecs.Add(w, e, component.PatrolComponent, component.NewPatrol(waypoints))
	_ = ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{})
	return e
}

func spawnScriptBot(w *ecs.World, grid *nav.GridMap, at nav.Cell, source string, tuning config.Tuning) ecs.Entity {
	e := w.CreateEntity()
	pos := grid.CellToWorld(at)
	tr := component.NewTransform(pos.X, 0, pos.Y)
	_ = ecs.Add(w, e, component.TransformComponent, tr)
	_ = ecs.Add(w, e, component.PathfinderComponent,
		component.NewPathfinder(tuning.MoveSpeed, tuning.TurnSpeed, tuning.ArriveRadius))
	_ = ecs.Add(w, e, component.BotScriptComponent, component.BotScript{Source: source, Enabled: true})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{})
	return e
}

// cornerPatrol builds a route one cell in from each corner, skipping
// corners the level blocked.
func cornerPatrol(grid *nav.GridMap) []nav.Cell {
	candidates := []nav.Cell{
		{X: 1, Y: 1},
		{X: grid.Width() - 2, Y: 1},
		{X: grid.Width() - 2, Y: grid.Height() - 2},
		{X: 1, Y: grid.Height() - 2},
	}
	var route []nav.Cell
	for _, c := range candidates {
		if grid.CellState(c.X, c.Y) == nav.Walkable {
			route = append(route, c)
		}
	}
	return route
}

func dumpNav(w *ecs.World, logger *zap.Logger) {
	for _, d := range system.DebugPaths(w) {
		cells := make([]string, 0, len(d.Path))
		for _, c := range d.Path {
			cells = append(cells, c.String())
		}
		logger.Info("nav state",
			zap.Stringer("entity", d.Entity),
			zap.Stringer("state", d.State),
			zap.Bool("has_target", d.HasTarget),
			zap.Stringer("target", d.Target),
			zap.Int("index", d.Index),
			zap.Int("explored", len(d.Explored)),
			zap.String("path", strings.Join(cells, " ")))
	}
}
