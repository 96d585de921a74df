package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/world"
	"github.com/qmuntal/gltf"
)

// gltfMaterialExtractorImpl is the implementation of the gltfMaterialExtractor interface.
type gltfMaterialExtractorImpl struct {
	parser gltfParser
}

// gltfMaterialExtractor converts glTF textures and materials into material components.
// Cross references are resolved through entity tables built as earlier resources are committed.
type gltfMaterialExtractor interface {
	// ExtractTexture converts one texture and its sampler.
	//
	// Parameters:
	//   - textureIndex: the index of the texture in the document
	//   - images: image entities indexed by image index
	//
	// Returns:
	//   - material.Texture: the texture
	//   - error: ErrInvalidDocument for dangling references, ErrNotYetSupported for textures without a source
	ExtractTexture(textureIndex int, images []world.EntityID) (material.Texture, error)

	// ExtractMaterial converts one material.
	//
	// Parameters:
	//   - materialIndex: the index of the material in the document
	//   - textures: texture entities indexed by texture index, nil when textures were not loaded
	//
	// Returns:
	//   - material.Material: the material
	//   - error: ErrInvalidDocument for dangling references
	ExtractMaterial(materialIndex int, textures []world.EntityID) (material.Material, error)
}

var _ gltfMaterialExtractor = &gltfMaterialExtractorImpl{}

// newGLTFMaterialExtractor creates a new material extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//
// Returns:
//   - gltfMaterialExtractor: the material extractor
func newGLTFMaterialExtractor(parser gltfParser) gltfMaterialExtractor {
	return &gltfMaterialExtractorImpl{parser: parser}
}

func (e *gltfMaterialExtractorImpl) ExtractTexture(textureIndex int, images []world.EntityID) (material.Texture, error) {
	doc := e.parser.Document()
	if textureIndex < 0 || textureIndex >= len(doc.Textures) || doc.Textures[textureIndex] == nil {
		return material.Texture{}, fmt.Errorf("texture %d out of range: %w", textureIndex, ErrInvalidDocument)
	}
	tex := doc.Textures[textureIndex]

	if tex.Source == nil {
		return material.Texture{}, fmt.Errorf("texture %d has no source image: %w", textureIndex, ErrNotYetSupported)
	}
	if *tex.Source < 0 || *tex.Source >= len(images) {
		return material.Texture{}, fmt.Errorf("texture %d source %d out of range: %w", textureIndex, *tex.Source, ErrInvalidDocument)
	}

	result := material.NewTexture(images[*tex.Source])
	if tex.Sampler != nil {
		if *tex.Sampler < 0 || *tex.Sampler >= len(doc.Samplers) || doc.Samplers[*tex.Sampler] == nil {
			return material.Texture{}, fmt.Errorf("texture %d sampler %d out of range: %w", textureIndex, *tex.Sampler, ErrInvalidDocument)
		}
		gltfApplySampler(&result, doc.Samplers[*tex.Sampler])
	}
	return result, nil
}

func (e *gltfMaterialExtractorImpl) ExtractMaterial(materialIndex int, textures []world.EntityID) (material.Material, error) {
	doc := e.parser.Document()
	if materialIndex < 0 || materialIndex >= len(doc.Materials) || doc.Materials[materialIndex] == nil {
		return material.Material{}, fmt.Errorf("material %d out of range: %w", materialIndex, ErrInvalidDocument)
	}
	mat := doc.Materials[materialIndex]

	options := []material.MaterialBuilderOption{
		material.WithName(mat.Name),
		material.WithDoubleSided(mat.DoubleSided),
	}

	cutoff := float32(0.5)
	if mat.AlphaCutoff != nil {
		cutoff = float32(*mat.AlphaCutoff)
	}
	switch mat.AlphaMode {
	case gltf.AlphaMask:
		options = append(options, material.WithAlpha(material.AlphaMask, cutoff))
	case gltf.AlphaBlend:
		options = append(options, material.WithAlpha(material.AlphaBlend, cutoff))
	default:
		options = append(options, material.WithAlpha(material.AlphaOpaque, cutoff))
	}

	if pbr := mat.PBRMetallicRoughness; pbr != nil {
		if f := pbr.BaseColorFactor; f != nil {
			options = append(options, material.WithBaseColor([4]float32{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}))
		}
		if pbr.MetallicFactor != nil {
			options = append(options, material.WithMetallic(float32(*pbr.MetallicFactor)))
		}
		if pbr.RoughnessFactor != nil {
			options = append(options, material.WithRoughness(float32(*pbr.RoughnessFactor)))
		}
		if info := pbr.BaseColorTexture; info != nil && textures != nil {
			if info.Index < 0 || info.Index >= len(textures) {
				return material.Material{}, fmt.Errorf("material %d base color texture %d out of range: %w", materialIndex, info.Index, ErrInvalidDocument)
			}
			options = append(options, material.WithBaseColorTexture(textures[info.Index], uint32(info.TexCoord)))
		}
	}

	return material.NewMaterial(options...), nil
}

// gltfApplySampler copies a glTF sampler's filters and wrap modes onto a texture.
// Undefined filters keep the texture defaults.
func gltfApplySampler(t *material.Texture, s *gltf.Sampler) {
	switch s.MagFilter {
	case gltf.MagNearest:
		t.MagFilter = material.MagFilterNearest
	case gltf.MagLinear:
		t.MagFilter = material.MagFilterLinear
	}

	switch s.MinFilter {
	case gltf.MinNearest:
		t.MinFilter = material.MinFilterNearest
	case gltf.MinLinear:
		t.MinFilter = material.MinFilterLinear
	case gltf.MinNearestMipMapNearest:
		t.MinFilter = material.MinFilterNearestMipmapNearest
	case gltf.MinLinearMipMapNearest:
		t.MinFilter = material.MinFilterLinearMipmapNearest
	case gltf.MinNearestMipMapLinear:
		t.MinFilter = material.MinFilterNearestMipmapLinear
	case gltf.MinLinearMipMapLinear:
		t.MinFilter = material.MinFilterLinearMipmapLinear
	}

	t.WrapS = gltfWrap(s.WrapS)
	t.WrapT = gltfWrap(s.WrapT)
}

// gltfWrap converts a glTF wrapping mode.
func gltfWrap(w gltf.WrappingMode) material.Wrap {
	switch w {
	case gltf.WrapClampToEdge:
		return material.WrapClampToEdge
	case gltf.WrapMirroredRepeat:
		return material.WrapMirroredRepeat
	default:
		return material.WrapRepeat
	}
}
