package material

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/h2non/filetype"
)

var (
	// ErrUnknownImageFormat is returned when image bytes are neither PNG nor JPEG.
	ErrUnknownImageFormat = errors.New("unknown image format")
	// ErrUnsupportedPixelFormat is returned for PNG or JPEG images outside the supported pixel layouts.
	ErrUnsupportedPixelFormat = errors.New("unsupported pixel format")
)

// ImageFormat is the container format of an encoded image.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

func (f ImageFormat) String() string {
	if f == ImageFormatPNG {
		return "png"
	}
	return "jpeg"
}

// ColorType is the pixel layout of a decoded Image.
type ColorType int

const (
	ColorTypeRGB ColorType = iota
	ColorTypeRGBA
)

// Channels returns the number of 8-bit channels per pixel.
func (c ColorType) Channels() int {
	if c == ColorTypeRGBA {
		return 4
	}
	return 3
}

func (c ColorType) String() string {
	if c == ColorTypeRGBA {
		return "RGBA"
	}
	return "RGB"
}

// Image is a decoded image resource with tightly packed 8-bit pixels, rows top to bottom.
type Image struct {
	Width     uint32
	Height    uint32
	ColorType ColorType
	Data      []byte
}

// DetectImageFormat identifies PNG or JPEG content by its magic bytes.
//
// Parameters:
//   - data: the encoded image
//
// Returns:
//   - ImageFormat: the detected format
//   - error: ErrUnknownImageFormat for anything else
func DetectImageFormat(data []byte) (ImageFormat, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return 0, ErrUnknownImageFormat
	}
	switch kind.Extension {
	case "png":
		return ImageFormatPNG, nil
	case "jpg":
		return ImageFormatJPEG, nil
	default:
		return 0, fmt.Errorf("%s: %w", kind.Extension, ErrUnknownImageFormat)
	}
}

// DecodeImage decodes an 8-bit RGB/RGBA PNG or a 24-bit RGB JPEG.
//
// Parameters:
//   - data: the encoded image
//   - format: the container format of data
//
// Returns:
//   - *Image: the decoded image
//   - error: ErrUnsupportedPixelFormat for other bit depths or color types, or the decoder's error
func DecodeImage(data []byte, format ImageFormat) (*Image, error) {
	switch format {
	case ImageFormatPNG:
		return decodePNG(data)
	case ImageFormatJPEG:
		return decodeJPEG(data)
	default:
		return nil, ErrUnknownImageFormat
	}
}

// PNG IHDR layout: 8 byte signature, 4 byte length, "IHDR", width, height, bit depth, color type.
const (
	pngBitDepthOffset  = 24
	pngColorTypeOffset = 25
	pngColorTypeRGB    = 2
	pngColorTypeRGBA   = 6
)

func decodePNG(data []byte) (*Image, error) {
	if len(data) <= pngColorTypeOffset || string(data[12:16]) != "IHDR" {
		return nil, fmt.Errorf("png: missing IHDR: %w", ErrUnknownImageFormat)
	}
	depth, colorType := data[pngBitDepthOffset], data[pngColorTypeOffset]
	if depth != 8 {
		return nil, fmt.Errorf("png bit depth %d: %w", depth, ErrUnsupportedPixelFormat)
	}

	var ct ColorType
	switch colorType {
	case pngColorTypeRGB:
		ct = ColorTypeRGB
	case pngColorTypeRGBA:
		ct = ColorTypeRGBA
	default:
		return nil, fmt.Errorf("png color type %d: %w", colorType, ErrUnsupportedPixelFormat)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("png: %w", err)
	}
	return packPixels(img, ct), nil
}

func decodeJPEG(data []byte) (*Image, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("jpeg: %w", err)
	}
	// Three-component JPEGs report YCbCr, or RGBA when the Adobe marker says the data is RGB.
	if cfg.ColorModel != color.YCbCrModel && cfg.ColorModel != color.RGBAModel {
		return nil, fmt.Errorf("jpeg is not 3-channel: %w", ErrUnsupportedPixelFormat)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("jpeg: %w", err)
	}
	return packPixels(img, ColorTypeRGB), nil
}

// packPixels converts a decoded image into tightly packed non-premultiplied bytes.
func packPixels(img image.Image, ct ColorType) *Image {
	b := img.Bounds()
	channels := ct.Channels()
	out := make([]byte, 0, b.Dx()*b.Dy()*channels)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out = append(out, c.R, c.G, c.B)
			if channels == 4 {
				out = append(out, c.A)
			}
		}
	}

	return &Image{
		Width:     uint32(b.Dx()),
		Height:    uint32(b.Dy()),
		ColorType: ct,
		Data:      out,
	}
}
