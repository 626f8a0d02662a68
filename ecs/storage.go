package ecs

// entityStore tracks per-slot generations, liveness, enabled flags, and
// the free list of reusable slot ids. Slot ids start at 1 so the zero
// Entity is never a live handle.
type entityStore struct {
	nextID  entityID
	gens    []generation
	alive   []bool
	enabled []bool
	free    []entityID
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.nextID++
		id = s.nextID
		s.gens = append(s.gens, 0)
		s.alive = append(s.alive, false)
		s.enabled = append(s.enabled, false)
	}
	idx := int(id) - 1
	s.alive[idx] = true
	s.enabled[idx] = true
	return makeEntity(id, s.gens[idx])
}

func (s *entityStore) destroy(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	s.gens[idx]++
	s.alive[idx] = false
	s.enabled[idx] = false
	s.free = append(s.free, e.id())
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *entityStore) setEnabled(e Entity, enabled bool) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	s.enabled[idx] = enabled
	return true
}

func (s *entityStore) isEnabled(e Entity) bool {
	idx, ok := s.index(e)
	return ok && s.enabled[idx]
}

// index validates the handle against the current generation and returns
// its slot index.
func (s *entityStore) index(e Entity) (int, bool) {
	id := e.id()
	if id == 0 || int(id) > len(s.gens) {
		return 0, false
	}
	idx := int(id) - 1
	if !s.alive[idx] || s.gens[idx] != e.generation() {
		return 0, false
	}
	return idx, true
}

// handleAt rebuilds the live handle for a slot id. Only meaningful for
// slots known to hold components, which are detached on destroy.
func (s *entityStore) handleAt(id int) Entity {
	if id <= 0 || id > len(s.gens) {
		return 0
	}
	return makeEntity(entityID(id), s.gens[id-1])
}
