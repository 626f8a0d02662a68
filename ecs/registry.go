package ecs

import "sync"

// Registration binds a component type tag to a self-update routine. The
// routine sweeps every enabled component of its kind once per tick and
// must stay self-contained: no other entities, no other component kinds.
type Registration struct {
	Name   string
	Update func(w *World, dt float64)
}

var updateRegistry = struct {
	mu    sync.Mutex
	order []string
	regs  map[string]Registration
}{regs: make(map[string]Registration)}

// RegisterUpdate records a component self-update routine in the
// process-wide registry. Registering the same name again replaces the
// routine, so initialization is idempotent. Call before the first tick.
func RegisterUpdate(reg Registration) {
	if reg.Name == "" || reg.Update == nil {
		return
	}
	updateRegistry.mu.Lock()
	defer updateRegistry.mu.Unlock()
	if _, exists := updateRegistry.regs[reg.Name]; !exists {
		updateRegistry.order = append(updateRegistry.order, reg.Name)
	}
	updateRegistry.regs[reg.Name] = reg
}

// RegisteredUpdates returns the registered type tags in registration
// order.
func RegisteredUpdates() []string {
	updateRegistry.mu.Lock()
	defer updateRegistry.mu.Unlock()
	return append([]string(nil), updateRegistry.order...)
}

// UpdateRegistered runs every registered component self-update once, in
// registration order. The scheduler calls this before the system phases
// so generic per-component bookkeeping never depends on it knowing the
// concrete types.
func (w *World) UpdateRegistered(dt float64) {
	updateRegistry.mu.Lock()
	regs := make([]Registration, 0, len(updateRegistry.order))
	for _, name := range updateRegistry.order {
		regs = append(regs, updateRegistry.regs[name])
	}
	updateRegistry.mu.Unlock()

	for _, reg := range regs {
		reg.Update(w, dt)
	}
}
