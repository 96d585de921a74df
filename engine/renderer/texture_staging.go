package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStaging expands a decoded image to the RGBA8 layout textures are uploaded in.
// Base color images are sRGB encoded, so the format is RGBA8UnormSrgb.
//
// Parameters:
//   - img: the decoded image
//
// Returns:
//   - *TextureStagingData: the staged pixels
//   - error: if the pixel data does not cover width * height pixels
func TextureStaging(img *material.Image) (*TextureStagingData, error) {
	pixels := int(img.Width) * int(img.Height)
	channels := img.ColorType.Channels()
	if len(img.Data) != pixels*channels {
		return nil, fmt.Errorf("renderer: image %dx%d %v has %d bytes, want %d", img.Width, img.Height, img.ColorType, len(img.Data), pixels*channels)
	}

	staged := &TextureStagingData{
		Width:  img.Width,
		Height: img.Height,
		Format: wgpu.TextureFormatRGBA8UnormSrgb,
	}
	if img.ColorType == material.ColorTypeRGBA {
		staged.Pixels = img.Data
		return staged, nil
	}

	staged.Pixels = make([]byte, pixels*4)
	for i := range pixels {
		copy(staged.Pixels[i*4:i*4+3], img.Data[i*3:i*3+3])
		staged.Pixels[i*4+3] = 0xff
	}
	return staged, nil
}

// SamplerStaging maps a texture's filter and wrap settings to a WebGPU sampler configuration.
// Non-mipmapped minification filters sample the base level only, so the mipmap filter is nearest.
//
// Parameters:
//   - tex: the texture
//
// Returns:
//   - SamplerStagingData: the sampler configuration
func SamplerStaging(tex material.Texture) SamplerStagingData {
	s := SamplerStagingData{
		AddressModeU:  addressMode(tex.WrapS),
		AddressModeV:  addressMode(tex.WrapT),
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}

	if tex.MagFilter == material.MagFilterNearest {
		s.MagFilter = wgpu.FilterModeNearest
	}

	switch tex.MinFilter {
	case material.MinFilterNearest:
		s.MinFilter = wgpu.FilterModeNearest
		s.MipmapFilter = wgpu.MipmapFilterModeNearest
	case material.MinFilterLinear:
		s.MipmapFilter = wgpu.MipmapFilterModeNearest
	case material.MinFilterNearestMipmapNearest:
		s.MinFilter = wgpu.FilterModeNearest
		s.MipmapFilter = wgpu.MipmapFilterModeNearest
	case material.MinFilterLinearMipmapNearest:
		s.MipmapFilter = wgpu.MipmapFilterModeNearest
	case material.MinFilterNearestMipmapLinear:
		s.MinFilter = wgpu.FilterModeNearest
	}
	if !tex.MinFilter.Mipmapped() {
		s.LodMaxClamp = 0
	}
	return s
}

func addressMode(w material.Wrap) wgpu.AddressMode {
	switch w {
	case material.WrapClampToEdge:
		return wgpu.AddressModeClampToEdge
	case material.WrapMirroredRepeat:
		return wgpu.AddressModeMirrorRepeat
	default:
		return wgpu.AddressModeRepeat
	}
}
