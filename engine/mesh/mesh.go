// Package mesh holds the geometry data model produced by scene loading: vertex formats,
// packed vertex data, index buffers, and the consume-once MeshResource.
package mesh

import "github.com/Carmen-Shannon/oxy-scene/engine/world"

// Mesh is the component of a drawable instance. Many instances may share one MeshResource.
type Mesh struct {
	// Resource is the entity holding the MeshResource.
	Resource world.EntityID
	// Material is the entity holding the material.Material, zero when the primitive has none.
	Material world.EntityID
}

// NewMesh creates a Mesh instance component referencing a MeshResource entity.
func NewMesh(resource world.EntityID) Mesh {
	return Mesh{Resource: resource}
}

// HasMaterial reports whether the instance references a material entity.
func (m Mesh) HasMaterial() bool {
	return m.Material != 0
}
