package ecs

import (
	"sort"

	"gridnav/ecs/component"
)

// World owns entities, per-kind component tables, and the event queue.
// Tables are created lazily; querying a kind nobody has ever attached
// yields an empty result, not an error.
type World struct {
	entities entityStore
	tables   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		tables: make(map[component.ComponentID]*SparseSet),
	}
}

// CreateEntity allocates a new enabled entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity despawns an entity and detaches all of its components.
// Returns false when the handle is stale or already despawned.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, table := range w.tables {
		table.Remove(int(e.id()))
	}
	return true
}

// IsAlive reports whether an entity handle is still valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// SetEnabled toggles the entity-level enabled flag. Disabled entities
// must be skipped by every system; the flag does not detach anything.
func (w *World) SetEnabled(e Entity, enabled bool) bool {
	return w.entities.setEnabled(e, enabled)
}

// Enabled reports whether the entity is alive and enabled.
func (w *World) Enabled(e Entity) bool {
	return w.entities.isEnabled(e)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// table returns the storage for a kind, or nil if never attached.
func (w *World) table(id component.ComponentID) *SparseSet {
	return w.tables[id]
}

// tableFor returns the storage for a kind, creating it on first attach.
func (w *World) tableFor(id component.ComponentID) *SparseSet {
	t := w.tables[id]
	if t == nil {
		t = &SparseSet{}
		w.tables[id] = t
	}
	return t
}

// Query returns every live entity holding all of the given component
// kinds, in ascending slot order so system behavior is deterministic.
func (w *World) Query(kinds ...component.ComponentID) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}

	smallest := w.table(kinds[0])
	for _, k := range kinds[1:] {
		t := w.table(k)
		if t.Len() < smallest.Len() {
			smallest = t
		}
	}
	if smallest.Len() == 0 {
		return nil
	}

	ids := make([]int, 0, smallest.Len())
	for _, id := range smallest.Entities() {
		hasAll := true
		for _, k := range kinds {
			if !w.table(k).Has(id) {
				hasAll = false
				break
			}
		}
		if hasAll {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, w.entities.handleAt(id))
	}
	return out
}

// First returns the lowest-slot entity holding the given kind.
func (w *World) First(kind component.ComponentID) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
