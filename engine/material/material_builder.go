package material

import "github.com/Carmen-Shannon/oxy-scene/engine/world"

// MaterialBuilderOption is a functional option for configuring a Material via NewMaterial.
type MaterialBuilderOption func(*Material)

// WithName sets the material name.
//
// Parameters:
//   - name: the material name
//
// Returns:
//   - MaterialBuilderOption: option function to apply
func WithName(name string) MaterialBuilderOption {
	return func(m *Material) {
		m.Name = name
	}
}

// WithBaseColor sets the base color factor (RGBA).
//
// Parameters:
//   - color: the linear RGBA factor
//
// Returns:
//   - MaterialBuilderOption: option function to apply
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *Material) {
		m.BaseColor = color
	}
}

// WithBaseColorTexture sets the base color texture entity and the texture coordinate set it samples.
//
// Parameters:
//   - texture: the entity holding the Texture
//   - texCoord: the TEXCOORD set index
//
// Returns:
//   - MaterialBuilderOption: option function to apply
func WithBaseColorTexture(texture world.EntityID, texCoord uint32) MaterialBuilderOption {
	return func(m *Material) {
		m.BaseColorTexture = texture
		m.TexCoord = texCoord
	}
}

// WithMetallic sets the metallic factor.
func WithMetallic(metallic float32) MaterialBuilderOption {
	return func(m *Material) {
		m.Metallic = metallic
	}
}

// WithRoughness sets the roughness factor.
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *Material) {
		m.Roughness = roughness
	}
}

// WithAlpha sets the alpha mode and the cutoff used by AlphaMask.
//
// Parameters:
//   - mode: the alpha mode
//   - cutoff: the mask cutoff
//
// Returns:
//   - MaterialBuilderOption: option function to apply
func WithAlpha(mode AlphaMode, cutoff float32) MaterialBuilderOption {
	return func(m *Material) {
		m.AlphaMode = mode
		m.AlphaCutoff = cutoff
	}
}

// WithDoubleSided disables back-face culling for the material.
func WithDoubleSided(doubleSided bool) MaterialBuilderOption {
	return func(m *Material) {
		m.DoubleSided = doubleSided
	}
}
