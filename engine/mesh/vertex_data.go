package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrVertexDataSize is returned when a packed buffer's length does not equal stride * count.
	ErrVertexDataSize = errors.New("vertex data size does not match attributes and count")
	// ErrNoVertexData is returned by NewVertexData when no attributes are given.
	ErrNoVertexData = errors.New("vertex data has no attributes")
)

// VertexData is a packed vertex buffer. Every vertex occupies Stride bytes holding each attribute
// back to back in the order of Attributes:
//
//	| pos xyz | uv | pos xyz | uv | ...
//
// Instances are only produced by NewVertexData, which verifies the size invariant.
type VertexData struct {
	data    []byte
	layouts []AttributeLayout
	stride  int
	count   int
}

// NewVertexData validates and wraps a packed vertex buffer.
//
// Parameters:
//   - data: the packed bytes, ownership passes to the returned VertexData
//   - attributes: the attributes packed into each vertex, in packing order
//   - count: the number of vertices
//
// Returns:
//   - *VertexData: the wrapped buffer
//   - error: ErrNoVertexData, ErrVertexDataSize, or an invalid/duplicate attribute error
func NewVertexData(data []byte, attributes []AttributeFormat, count int) (*VertexData, error) {
	if len(attributes) == 0 {
		return nil, ErrNoVertexData
	}
	if count < 0 {
		return nil, fmt.Errorf("negative vertex count %d: %w", count, ErrVertexDataSize)
	}

	layouts := make([]AttributeLayout, len(attributes))
	seen := make(map[Attribute]struct{}, len(attributes))
	stride := 0
	for i, a := range attributes {
		if !a.Format.Valid() {
			return nil, fmt.Errorf("attribute %s has invalid format %s", a.Attribute, a.Format)
		}
		if _, dup := seen[a.Attribute]; dup {
			return nil, fmt.Errorf("attribute %s declared twice", a.Attribute)
		}
		seen[a.Attribute] = struct{}{}

		layouts[i] = AttributeLayout{Attribute: a.Attribute, Format: a.Format, Offset: stride}
		stride += a.Format.Size()
	}

	if len(data) != stride*count {
		return nil, fmt.Errorf("got %d bytes, want %d (stride %d x %d vertices): %w",
			len(data), stride*count, stride, count, ErrVertexDataSize)
	}

	return &VertexData{
		data:    data,
		layouts: layouts,
		stride:  stride,
		count:   count,
	}, nil
}

// Data returns the packed bytes. The slice must not be modified.
func (v *VertexData) Data() []byte {
	return v.data
}

// Attributes returns the attribute layouts in packing order.
func (v *VertexData) Attributes() []AttributeLayout {
	return v.layouts
}

// Stride returns the size in bytes of one packed vertex.
func (v *VertexData) Stride() int {
	return v.stride
}

// Count returns the number of vertices.
func (v *VertexData) Count() int {
	return v.count
}

// Layout looks up the layout of a single attribute.
//
// Parameters:
//   - a: the attribute to find
//
// Returns:
//   - AttributeLayout: the attribute's format and offset
//   - bool: false if the attribute is not present
func (v *VertexData) Layout(a Attribute) (AttributeLayout, bool) {
	for _, l := range v.layouts {
		if l.Attribute == a {
			return l, true
		}
	}
	return AttributeLayout{}, false
}

// Element returns the bytes of one attribute of one vertex.
//
// Parameters:
//   - vertex: the vertex index
//   - a: the attribute to read
//
// Returns:
//   - []byte: a sub-slice of Data, nil if the vertex or attribute does not exist
func (v *VertexData) Element(vertex int, a Attribute) []byte {
	l, ok := v.Layout(a)
	if !ok || vertex < 0 || vertex >= v.count {
		return nil
	}
	start := vertex*v.stride + l.Offset
	return v.data[start : start+l.Format.Size()]
}
