package material

import "github.com/Carmen-Shannon/oxy-scene/engine/world"

// MagFilter is the magnification filter of a texture.
type MagFilter int

const (
	MagFilterLinear MagFilter = iota
	MagFilterNearest
)

// MinFilter is the minification filter of a texture.
type MinFilter int

const (
	MinFilterLinearMipmapLinear MinFilter = iota
	MinFilterNearest
	MinFilterLinear
	MinFilterNearestMipmapNearest
	MinFilterLinearMipmapNearest
	MinFilterNearestMipmapLinear
)

// Mipmapped reports whether the filter samples between mip levels.
func (f MinFilter) Mipmapped() bool {
	return f != MinFilterNearest && f != MinFilterLinear
}

// Wrap is the addressing mode applied outside the [0, 1] texture coordinate range.
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClampToEdge
	WrapMirroredRepeat
)

// Texture samples an Image entity. The zero filter and wrap values are the defaults:
// linear magnification, trilinear minification and repeat wrapping.
type Texture struct {
	// Image is the entity holding the Image resource.
	Image world.EntityID
	// View is the sampled sub-rectangle of the image in normalised coordinates: x, y, width, height.
	View      [4]float32
	MagFilter MagFilter
	MinFilter MinFilter
	WrapS     Wrap
	WrapT     Wrap
}

// NewTexture creates a texture over the whole image with default sampling.
//
// Parameters:
//   - image: the entity holding the Image
//
// Returns:
//   - Texture: the texture
func NewTexture(image world.EntityID) Texture {
	return Texture{
		Image: image,
		View:  [4]float32{0, 0, 1, 1},
	}
}
