package loader

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Carmen-Shannon/oxy-scene/engine/mesh"
	"github.com/qmuntal/gltf"
)

// gltfVertexLayout is how a primitive's attribute data is laid out in its source buffers.
type gltfVertexLayout int

const (
	// gltfLayoutSeparate means every attribute is a tightly packed array in its own region.
	gltfLayoutSeparate gltfVertexLayout = iota
	// gltfLayoutInterleaved means every attribute view declares a byte stride.
	gltfLayoutInterleaved
)

func (l gltfVertexLayout) String() string {
	if l == gltfLayoutInterleaved {
		return "interleaved"
	}
	return "separate"
}

// gltfAttributeSource is one attribute of a classified primitive with its bounds-checked bytes.
// For separate layout data holds exactly count elements; for interleaved layout data starts at
// the first element and elements are stride bytes apart.
type gltfAttributeSource struct {
	format mesh.AttributeFormat
	data   []byte
	stride int
}

// gltfPrimitiveLayout is the result of classifying one primitive.
type gltfPrimitiveLayout struct {
	layout  gltfVertexLayout
	sources []gltfAttributeSource
	count   int
}

// gltfClassifyPrimitive inspects every attribute accessor of a primitive and decides whether its
// vertex data is separate or interleaved. Attributes are returned in canonical order (position,
// normal, tangent, texture coordinates, colors) since glTF attribute maps are unordered.
//
// Parameters:
//   - p: the parser holding the document and loaded buffers
//   - prim: the primitive to classify
//
// Returns:
//   - *gltfPrimitiveLayout: the classified attributes
//   - error: ErrUnsupportedSemantic, ErrUnsupportedSparseStorage, ErrUnsupportedDataTypeOrDimensions,
//     ErrUnsupportedBufferLayout, ErrCorruptBufferView or ErrInvalidDocument
func gltfClassifyPrimitive(p gltfParser, prim *gltf.Primitive) (*gltfPrimitiveLayout, error) {
	if len(prim.Attributes) == 0 {
		return nil, fmt.Errorf("primitive has no attributes: %w", ErrInvalidDocument)
	}

	result := &gltfPrimitiveLayout{count: -1}
	seen := make(map[mesh.Attribute]string, len(prim.Attributes))
	strided := 0

	for _, semantic := range slices.Sorted(maps.Keys(prim.Attributes)) {
		attr, err := gltfAttribute(semantic)
		if err != nil {
			return nil, err
		}
		if other, dup := seen[attr]; dup {
			return nil, fmt.Errorf("semantics %q and %q name the same attribute: %w", other, semantic, ErrInvalidDocument)
		}
		seen[attr] = semantic

		acc, err := gltfAccessor(p.Document(), prim.Attributes[semantic])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", semantic, err)
		}
		format, err := gltfVertexFormat(acc.ComponentType, acc.Type, acc.Normalized)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", semantic, err)
		}
		bv, view, err := gltfViewBytes(p, *acc.BufferView)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", semantic, err)
		}

		if result.count >= 0 && acc.Count != result.count {
			return nil, fmt.Errorf("%s has %d elements, other attributes have %d: %w", semantic, acc.Count, result.count, ErrInvalidDocument)
		}
		result.count = acc.Count

		src, err := gltfAttributeBytes(view, bv.ByteStride, acc.ByteOffset, acc.Count, format.Size())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", semantic, err)
		}
		src.format = mesh.AttributeFormat{Attribute: attr, Format: format}
		if src.stride > 0 {
			strided++
		}
		result.sources = append(result.sources, src)
	}

	switch strided {
	case 0:
		result.layout = gltfLayoutSeparate
	case len(result.sources):
		result.layout = gltfLayoutInterleaved
	default:
		return nil, fmt.Errorf("%d of %d attribute views are strided: %w", strided, len(result.sources), ErrUnsupportedBufferLayout)
	}

	slices.SortFunc(result.sources, func(a, b gltfAttributeSource) int {
		switch {
		case a.format.Attribute.Less(b.format.Attribute):
			return -1
		case b.format.Attribute.Less(a.format.Attribute):
			return 1
		default:
			return 0
		}
	})
	return result, nil
}

// gltfAttributeBytes bounds-checks an accessor's elements inside its buffer view.
func gltfAttributeBytes(view []byte, byteStride, byteOffset, count, size int) (gltfAttributeSource, error) {
	if count < 0 || byteOffset < 0 || byteOffset > len(view) {
		return gltfAttributeSource{}, fmt.Errorf("accessor offset %d count %d in %d byte view: %w", byteOffset, count, len(view), ErrCorruptBufferView)
	}
	data := view[byteOffset:]

	if byteStride == 0 {
		if count > len(data)/size {
			return gltfAttributeSource{}, fmt.Errorf("%d elements of %d bytes exceed %d available: %w", count, size, len(data), ErrCorruptBufferView)
		}
		return gltfAttributeSource{data: data[:count*size]}, nil
	}

	if byteStride < size {
		return gltfAttributeSource{}, fmt.Errorf("byte stride %d smaller than element size %d: %w", byteStride, size, ErrCorruptBufferView)
	}
	if count > 0 && (size > len(data) || count-1 > (len(data)-size)/byteStride) {
		return gltfAttributeSource{}, fmt.Errorf("%d elements at stride %d exceed %d available: %w", count, byteStride, len(data), ErrCorruptBufferView)
	}
	return gltfAttributeSource{data: data, stride: byteStride}, nil
}

// gltfAccessor looks up an accessor that is backed directly by a buffer view.
func gltfAccessor(doc *gltf.Document, index int) (*gltf.Accessor, error) {
	if index < 0 || index >= len(doc.Accessors) || doc.Accessors[index] == nil {
		return nil, fmt.Errorf("accessor %d out of range: %w", index, ErrInvalidDocument)
	}
	acc := doc.Accessors[index]
	if acc.Sparse != nil || acc.BufferView == nil {
		return nil, fmt.Errorf("accessor %d: %w", index, ErrUnsupportedSparseStorage)
	}
	return acc, nil
}

// gltfViewBytes returns the bytes a buffer view addresses after checking them against its buffer.
func gltfViewBytes(p gltfParser, index int) (*gltf.BufferView, []byte, error) {
	doc := p.Document()
	if index < 0 || index >= len(doc.BufferViews) || doc.BufferViews[index] == nil {
		return nil, nil, fmt.Errorf("buffer view %d out of range: %w", index, ErrInvalidDocument)
	}
	bv := doc.BufferViews[index]

	buf, err := p.Buffer(bv.Buffer)
	if err != nil {
		return nil, nil, fmt.Errorf("buffer view %d: %w", index, err)
	}
	if bv.ByteOffset < 0 || bv.ByteLength < 0 || bv.ByteOffset > len(buf) || bv.ByteLength > len(buf)-bv.ByteOffset {
		return nil, nil, fmt.Errorf("buffer view %d [%d,+%d) outside %d byte buffer: %w",
			index, bv.ByteOffset, bv.ByteLength, len(buf), ErrCorruptBufferView)
	}
	return bv, buf[bv.ByteOffset : bv.ByteOffset+bv.ByteLength], nil
}
