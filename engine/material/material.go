// Package material holds the image, texture and material resources registered by scene loading.
package material

import "github.com/Carmen-Shannon/oxy-scene/engine/world"

// AlphaMode controls how the alpha channel of the base color is interpreted.
type AlphaMode int

const (
	AlphaOpaque AlphaMode = iota
	AlphaMask
	AlphaBlend
)

func (a AlphaMode) String() string {
	switch a {
	case AlphaMask:
		return "MASK"
	case AlphaBlend:
		return "BLEND"
	default:
		return "OPAQUE"
	}
}

// Material is a metallic-roughness surface description.
// A zero BaseColorTexture means the material is untextured.
type Material struct {
	Name             string
	BaseColor        [4]float32
	BaseColorTexture world.EntityID
	// TexCoord is the texture coordinate set sampled by BaseColorTexture.
	TexCoord    uint32
	Metallic    float32
	Roughness   float32
	AlphaMode   AlphaMode
	AlphaCutoff float32
	DoubleSided bool
}

// NewMaterial creates a Material with the given options applied over the defaults:
// white base color, metallic and roughness 1, opaque, cutoff 0.5, single-sided.
//
// Parameters:
//   - options: a variadic list of MaterialBuilderOption functions
//
// Returns:
//   - Material: the material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := Material{
		BaseColor:   [4]float32{1, 1, 1, 1},
		Metallic:    1,
		Roughness:   1,
		AlphaCutoff: 0.5,
	}
	for _, option := range options {
		option(&m)
	}
	return m
}

// Textured reports whether the material samples a base color texture.
func (m Material) Textured() bool {
	return m.BaseColorTexture != 0
}
