package ecs

import (
	"sort"

	"gridnav/ecs/component"
)

// Add attaches a component value to an entity, replacing any previous
// value of the same kind.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	if !handle.Kind().Valid() {
		return component.ErrInvalidComponentKind
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.tableFor(handle.Kind().ID()).Set(int(e.id()), &value)
	return nil
}

// Remove detaches a component from an entity. Returns false when the
// entity is dead or never held the component.
func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	return w.table(handle.Kind().ID()).Remove(int(e.id()))
}

// Has reports whether a live entity holds the component.
func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	return w.table(handle.Kind().ID()).Has(int(e.id()))
}

// Get returns a copy of the component. Reading a copy is the collection
// half of the two-phase mutation pattern: systems gather decision data
// with Get, then apply writes with Mut or Set.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	p, ok := mutPtr(w, e, handle)
	if !ok {
		return zero, false
	}
	return *p, true
}

// Mut returns the exclusive mutable reference to the component. At most
// one Mut per component instance may be held at a time; callers must not
// interleave it with reads of the same table.
func Mut[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	return mutPtr(w, e, handle)
}

// Set overwrites the stored component value, attaching it if absent.
func Set[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	return Add(w, e, handle, value)
}

func mutPtr[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	v := w.table(handle.Kind().ID()).Get(int(e.id()))
	if v == nil {
		return nil, false
	}
	p, ok := v.(*T)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

// ForEach visits every entity holding the component, ascending by slot
// id. The callback receives the exclusive reference; it must not reach
// into other tables of the same kind while iterating.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	table := w.table(handle.Kind().ID())
	if table.Len() == 0 {
		return
	}
	ids := append([]int(nil), table.Entities()...)
	sort.Ints(ids)
	for _, id := range ids {
		v := table.Get(id)
		p, ok := v.(*T)
		if !ok || p == nil {
			continue
		}
		fn(w.entities.handleAt(id), p)
	}
}
