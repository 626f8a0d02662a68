package ecs

import "strconv"

// Entity is an opaque handle packing a slot id in the low 32 bits and a
// generation counter in the high 32 bits. Despawning a slot bumps its
// generation, so a stale handle never matches a later entity reusing
// the same slot.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

// Valid reports whether the handle was ever issued by a World. It says
// nothing about liveness; use World.IsAlive for that.
func (e Entity) Valid() bool {
	return e.id() > 0
}
