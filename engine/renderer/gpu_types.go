// Package renderer adapts loaded scene resources to the WebGPU types a render backend consumes:
// vertex buffer layouts, primitive state, index formats, and staged texture and sampler data.
package renderer

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrUnsupportedVertexFormat is returned for vertex formats WebGPU cannot fetch, such as 64-bit floats.
	ErrUnsupportedVertexFormat = errors.New("renderer: unsupported vertex format")
	// ErrUnsupportedTopology is returned for assemblies WebGPU has no topology for (line loops, triangle fans).
	ErrUnsupportedTopology = errors.New("renderer: unsupported topology")
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
type TextureStagingData struct {
	// Pixels is the pixel data in RGBA format, 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
	// Format is the texture format the pixels are uploaded as.
	Format wgpu.TextureFormat
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode outside [0, 1] in each dimension.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp bound the sampled level of detail.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy is the maximum anisotropy level.
	MaxAnisotropy uint16
}

// MeshStagingData is one MeshResource's payload laid out for GPU upload.
type MeshStagingData struct {
	// Vertices is the packed vertex data.
	Vertices []byte
	// Layout describes Vertices for the vertex stage.
	Layout wgpu.VertexBufferLayout
	// Indices is the index data, nil for unindexed draws.
	Indices []byte
	// IndexFormat is the element type of Indices.
	IndexFormat wgpu.IndexFormat
	// IndexCount is the number of indices, 0 for unindexed draws.
	IndexCount uint32
	// VertexCount is the number of vertices.
	VertexCount uint32
	// Primitive is the primitive state for the draw's pipeline.
	Primitive wgpu.PrimitiveState
}
