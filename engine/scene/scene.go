// Package scene holds the result of importing an asset into a world: the entities created for
// images, textures, materials, mesh resources, mesh instances and cameras, grouped by role.
package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/engine/world"
)

// Node records which asset node an entity was created from.
type Node struct {
	// Index is the node's position in the asset's node list.
	Index int
	// Name is the node's name, empty if the asset does not name it.
	Name string
	// Primitive is the primitive index within the node's mesh for mesh instances, -1 for cameras.
	Primitive int
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name string
	w    world.World

	images        []world.EntityID
	textures      []world.EntityID
	materials     []world.EntityID
	meshResources [][]world.EntityID
	meshInstances []world.EntityID
	cameras       []world.EntityID
}

// Scene is a loaded asset: a named view over the entities one load created in a World.
// The entity tables are indexed by declaration order in the source asset.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// World returns the world the scene's entities live in.
	World() world.World

	// Images returns the Image entities, indexed by image index.
	Images() []world.EntityID

	// Textures returns the Texture entities, indexed by texture index.
	Textures() []world.EntityID

	// Materials returns the Material entities, indexed by material index.
	Materials() []world.EntityID

	// MeshResources returns the MeshResource entities indexed by mesh index then primitive index.
	MeshResources() [][]world.EntityID

	// MeshResource looks up the MeshResource entity for one primitive.
	//
	// Parameters:
	//   - meshIndex: the mesh index in the asset
	//   - primitiveIndex: the primitive index within the mesh
	//
	// Returns:
	//   - world.EntityID: the MeshResource entity
	//   - bool: false if either index is out of range
	MeshResource(meshIndex, primitiveIndex int) (world.EntityID, bool)

	// MeshInstances returns the mesh-instance entities in node order.
	MeshInstances() []world.EntityID

	// Cameras returns the camera entities in node order.
	Cameras() []world.EntityID

	// Entities returns every entity of the scene: images, textures, materials, mesh resources,
	// mesh instances, then cameras.
	Entities() []world.EntityID

	// Count returns the number of entities the scene holds.
	Count() int

	// Despawn removes every entity of the scene from its world in reverse creation order and
	// empties the scene.
	//
	// Returns:
	//   - int: the number of entities that were still alive and got removed
	Despawn() int
}

var _ Scene = &scene{}

// NewScene creates a new Scene over the given world.
//
// Parameters:
//   - name: the name of the scene
//   - w: the world holding the scene's entities
//   - options: functional options populating the entity tables
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, w world.World, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:   &sync.RWMutex{},
		name: name,
		w:    w,
	}

	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) World() world.World {
	return s.w
}

func (s *scene) Images() []world.EntityID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.images)
}

func (s *scene) Textures() []world.EntityID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.textures)
}

func (s *scene) Materials() []world.EntityID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.materials)
}

func (s *scene) MeshResources() [][]world.EntityID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([][]world.EntityID, len(s.meshResources))
	for i, prims := range s.meshResources {
		result[i] = slices.Clone(prims)
	}
	return result
}

func (s *scene) MeshResource(meshIndex, primitiveIndex int) (world.EntityID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if meshIndex < 0 || meshIndex >= len(s.meshResources) {
		return 0, false
	}
	prims := s.meshResources[meshIndex]
	if primitiveIndex < 0 || primitiveIndex >= len(prims) {
		return 0, false
	}
	return prims[primitiveIndex], true
}

func (s *scene) MeshInstances() []world.EntityID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.meshInstances)
}

func (s *scene) Cameras() []world.EntityID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cameras)
}

func (s *scene) Entities() []world.EntityID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entities()
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.images) + len(s.textures) + len(s.materials) + len(s.meshInstances) + len(s.cameras)
	for _, prims := range s.meshResources {
		n += len(prims)
	}
	return n
}

func (s *scene) Despawn() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.entities()
	removed := 0
	for i := len(all) - 1; i >= 0; i-- {
		if s.w.Despawn(all[i]) {
			removed++
		}
	}

	s.images = nil
	s.textures = nil
	s.materials = nil
	s.meshResources = nil
	s.meshInstances = nil
	s.cameras = nil
	return removed
}

// entities flattens the entity tables in creation order. Callers hold the lock.
func (s *scene) entities() []world.EntityID {
	var all []world.EntityID
	all = append(all, s.images...)
	all = append(all, s.textures...)
	all = append(all, s.materials...)
	for _, prims := range s.meshResources {
		all = append(all, prims...)
	}
	all = append(all, s.meshInstances...)
	all = append(all, s.cameras...)
	return all
}
