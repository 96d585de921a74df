package scene

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-scene/engine/world"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithImages sets the Image entities, indexed by image index.
//
// Parameters:
//   - ids: the image entities
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithImages(ids ...world.EntityID) SceneBuilderOption {
	return func(s *scene) {
		s.images = slices.Clone(ids)
	}
}

// WithTextures sets the Texture entities, indexed by texture index.
//
// Parameters:
//   - ids: the texture entities
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTextures(ids ...world.EntityID) SceneBuilderOption {
	return func(s *scene) {
		s.textures = slices.Clone(ids)
	}
}

// WithMaterials sets the Material entities, indexed by material index.
//
// Parameters:
//   - ids: the material entities
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMaterials(ids ...world.EntityID) SceneBuilderOption {
	return func(s *scene) {
		s.materials = slices.Clone(ids)
	}
}

// WithMeshResources sets the MeshResource table, indexed by mesh index then primitive index.
//
// Parameters:
//   - table: the mesh resource entities
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMeshResources(table [][]world.EntityID) SceneBuilderOption {
	return func(s *scene) {
		s.meshResources = make([][]world.EntityID, len(table))
		for i, prims := range table {
			s.meshResources[i] = slices.Clone(prims)
		}
	}
}

// WithMeshInstances sets the mesh-instance entities.
//
// Parameters:
//   - ids: the mesh-instance entities
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMeshInstances(ids ...world.EntityID) SceneBuilderOption {
	return func(s *scene) {
		s.meshInstances = slices.Clone(ids)
	}
}

// WithCameras sets the camera entities.
//
// Parameters:
//   - ids: the camera entities
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCameras(ids ...world.EntityID) SceneBuilderOption {
	return func(s *scene) {
		s.cameras = slices.Clone(ids)
	}
}
