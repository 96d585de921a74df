package mesh

import "fmt"

// VertexFormat is the closed set of per-vertex attribute encodings a VertexData buffer can hold.
// Each format has a fixed byte size.
type VertexFormat int

const (
	VertexFormatUint8x2 VertexFormat = iota
	VertexFormatUint8x4
	VertexFormatSint8x2
	VertexFormatSint8x4
	VertexFormatUnorm8x2
	VertexFormatUnorm8x4
	VertexFormatSnorm8x2
	VertexFormatSnorm8x4
	VertexFormatUint16x2
	VertexFormatUint16x4
	VertexFormatSint16x2
	VertexFormatSint16x4
	VertexFormatUnorm16x2
	VertexFormatUnorm16x4
	VertexFormatSnorm16x2
	VertexFormatSnorm16x4
	VertexFormatFloat16x2
	VertexFormatFloat16x4
	VertexFormatFloat32
	VertexFormatFloat32x2
	VertexFormatFloat32x3
	VertexFormatFloat32x4
	VertexFormatUint32
	VertexFormatUint32x2
	VertexFormatUint32x3
	VertexFormatUint32x4
	VertexFormatSint32
	VertexFormatSint32x2
	VertexFormatSint32x3
	VertexFormatSint32x4
	// 64-bit formats require a device feature most render backends do not expose.
	VertexFormatFloat64
	VertexFormatFloat64x2
	VertexFormatFloat64x3
	VertexFormatFloat64x4
)

var vertexFormatNames = [...]string{
	"Uint8x2", "Uint8x4", "Sint8x2", "Sint8x4",
	"Unorm8x2", "Unorm8x4", "Snorm8x2", "Snorm8x4",
	"Uint16x2", "Uint16x4", "Sint16x2", "Sint16x4",
	"Unorm16x2", "Unorm16x4", "Snorm16x2", "Snorm16x4",
	"Float16x2", "Float16x4",
	"Float32", "Float32x2", "Float32x3", "Float32x4",
	"Uint32", "Uint32x2", "Uint32x3", "Uint32x4",
	"Sint32", "Sint32x2", "Sint32x3", "Sint32x4",
	"Float64", "Float64x2", "Float64x3", "Float64x4",
}

// Valid reports whether f names one of the defined formats.
func (f VertexFormat) Valid() bool {
	return f >= VertexFormatUint8x2 && f <= VertexFormatFloat64x4
}

// Size returns the number of bytes one element of the format occupies, or 0 for an invalid format.
func (f VertexFormat) Size() int {
	switch f {
	case VertexFormatUint8x2, VertexFormatSint8x2, VertexFormatUnorm8x2, VertexFormatSnorm8x2:
		return 2
	case VertexFormatUint8x4, VertexFormatSint8x4, VertexFormatUnorm8x4, VertexFormatSnorm8x4,
		VertexFormatUint16x2, VertexFormatSint16x2, VertexFormatUnorm16x2, VertexFormatSnorm16x2,
		VertexFormatFloat16x2, VertexFormatFloat32, VertexFormatUint32, VertexFormatSint32:
		return 4
	case VertexFormatUint16x4, VertexFormatSint16x4, VertexFormatUnorm16x4, VertexFormatSnorm16x4,
		VertexFormatFloat16x4, VertexFormatFloat32x2, VertexFormatUint32x2, VertexFormatSint32x2,
		VertexFormatFloat64:
		return 8
	case VertexFormatFloat32x3, VertexFormatUint32x3, VertexFormatSint32x3:
		return 12
	case VertexFormatFloat32x4, VertexFormatUint32x4, VertexFormatSint32x4, VertexFormatFloat64x2:
		return 16
	case VertexFormatFloat64x3:
		return 24
	case VertexFormatFloat64x4:
		return 32
	default:
		return 0
	}
}

func (f VertexFormat) String() string {
	if !f.Valid() {
		return fmt.Sprintf("VertexFormat(%d)", int(f))
	}
	return vertexFormatNames[f]
}
