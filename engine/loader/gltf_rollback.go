package loader

import "github.com/Carmen-Shannon/oxy-scene/engine/world"

// gltfTrackedWorld records every entity spawned through it so a failed load can remove them.
type gltfTrackedWorld struct {
	world.World
	spawned []world.EntityID
}

// newGLTFTrackedWorld wraps a world for the duration of one load.
func newGLTFTrackedWorld(w world.World) *gltfTrackedWorld {
	return &gltfTrackedWorld{World: w}
}

// Spawn creates the entity in the wrapped world and records it.
func (t *gltfTrackedWorld) Spawn(components ...any) world.EntityID {
	id := t.World.Spawn(components...)
	t.spawned = append(t.spawned, id)
	return id
}

// rollback despawns every recorded entity, newest first, and forgets them.
//
// Returns:
//   - int: the number of entities removed
func (t *gltfTrackedWorld) rollback() int {
	removed := 0
	for i := len(t.spawned) - 1; i >= 0; i-- {
		if t.World.Despawn(t.spawned[i]) {
			removed++
		}
	}
	t.spawned = nil
	return removed
}
