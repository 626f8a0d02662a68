package system

import (
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"gridnav/ecs"
	"gridnav/ecs/component"
	"gridnav/nav"
)

// BotSystem picks navigation targets for autonomous entities. Patrol
// bots cycle a fixed waypoint list; scripted bots run a tengo script
// that chooses the next goal cell. Either way the system only feeds a
// target to the entity's Pathfinder when navigation is idle.
type BotSystem struct {
	grid    *nav.GridMap
	logger  *zap.Logger
	scripts map[ecs.Entity]*tengo.Compiled
}

func NewBotSystem(grid *nav.GridMap, logger *zap.Logger) *BotSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BotSystem{
		grid:    grid,
		logger:  logger,
		scripts: make(map[ecs.Entity]*tengo.Compiled),
	}
}

func (bs *BotSystem) Update(w *ecs.World, dt float64) {
	bs.updatePatrols(w)
	bs.updateScripted(w)
	bs.reapScripts(w)
}

func (bs *BotSystem) updatePatrols(w *ecs.World) {
	entities := w.Query(
		component.PatrolComponent.Kind().ID(),
		component.PathfinderComponent.Kind().ID(),
	)

	type feed struct {
		entity ecs.Entity
		target nav.Cell
	}
	var feeds []feed
	for _, e := range entities {
		if !w.Enabled(e) {
			continue
		}
		patrol, ok := ecs.Get(w, e, component.PatrolComponent)
		if !ok || !patrol.Enabled {
			continue
		}
		pf, ok := ecs.Get(w, e, component.PathfinderComponent)
		if !ok || !pf.Enabled {
			continue
		}
		if pf.State != component.NavIdle || pf.HasTarget {
			continue
		}
		target, ok := patrol.CurrentTarget()
		if !ok {
			continue
		}
		feeds = append(feeds, feed{entity: e, target: target})
	}

	for _, f := range feeds {
		if pf, ok := ecs.Mut(w, f.entity, component.PathfinderComponent); ok {
			pf.SetTarget(f.target)
		}
		if patrol, ok := ecs.Mut(w, f.entity, component.PatrolComponent); ok {
			patrol.Advance()
		}
	}
}

// Script globals: the system sets x, z, cell_x, cell_y and step before
// each run; the script assigns target_x, target_y and optionally done.
func (bs *BotSystem) updateScripted(w *ecs.World) {
	entities := w.Query(
		component.BotScriptComponent.Kind().ID(),
		component.PathfinderComponent.Kind().ID(),
		component.TransformComponent.Kind().ID(),
	)

	type feed struct {
		entity ecs.Entity
		target nav.Cell
	}
	var feeds []feed
	for _, e := range entities {
		if !w.Enabled(e) {
			continue
		}
		bot, ok := ecs.Get(w, e, component.BotScriptComponent)
		if !ok || !bot.Enabled {
			continue
		}
		pf, ok := ecs.Get(w, e, component.PathfinderComponent)
		if !ok || !pf.Enabled {
			continue
		}
		if pf.State != component.NavIdle || pf.HasTarget {
			continue
		}
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}

		compiled, err := bs.compiled(e, bot.Source)
		if err != nil {
			bs.logger.Warn("bot script compile failed",
				zap.Stringer("entity", e), zap.Error(err))
			continue
		}
		cell := bs.grid.WorldToCell(vecXZ(tr))
		_ = compiled.Set("x", tr.X)
		_ = compiled.Set("z", tr.Z)
		_ = compiled.Set("cell_x", cell.X)
		_ = compiled.Set("cell_y", cell.Y)
		_ = compiled.Set("step", bot.Step)
		if err := compiled.Run(); err != nil {
			bs.logger.Warn("bot script run failed",
				zap.Stringer("entity", e), zap.Error(err))
			continue
		}
		if done := compiled.Get("done"); done != nil && !done.IsUndefined() && done.Bool() {
			continue
		}
		tx := compiled.Get("target_x")
		ty := compiled.Get("target_y")
		if tx == nil || ty == nil || tx.IsUndefined() || ty.IsUndefined() {
			bs.logger.Warn("bot script set no target",
				zap.Stringer("entity", e))
			continue
		}
		feeds = append(feeds, feed{
			entity: e,
			target: nav.Cell{X: tx.Int(), Y: ty.Int()},
		})
	}

	for _, f := range feeds {
		if pf, ok := ecs.Mut(w, f.entity, component.PathfinderComponent); ok {
			pf.SetTarget(f.target)
		}
		if bot, ok := ecs.Mut(w, f.entity, component.BotScriptComponent); ok {
			bot.Step++
		}
	}
}

func (bs *BotSystem) compiled(e ecs.Entity, source string) (*tengo.Compiled, error) {
	if c, ok := bs.scripts[e]; ok {
		return c, nil
	}
	script := tengo.NewScript([]byte(source))
	script.SetImports(stdlib.GetModuleMap("math", "rand"))
	_ = script.Add("x", 0.0)
	_ = script.Add("z", 0.0)
	_ = script.Add("cell_x", 0)
	_ = script.Add("cell_y", 0)
	_ = script.Add("step", 0)
	c, err := script.Compile()
	if err != nil {
		return nil, err
	}
	bs.scripts[e] = c
	return c, nil
}

func (bs *BotSystem) reapScripts(w *ecs.World) {
	for e := range bs.scripts {
		if !w.IsAlive(e) {
			delete(bs.scripts, e)
		}
	}
}
