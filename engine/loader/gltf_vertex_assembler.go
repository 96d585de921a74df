package loader

import (
	"encoding/binary"
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/engine/mesh"
)

// gltfAssembleVertices packs a classified primitive into one VertexData buffer.
// Separate arrays are transposed so that each vertex holds its attributes back to back:
// for every vertex in order, each attribute in canonical order contributes Format.Size() bytes.
//
// Parameters:
//   - l: the classified primitive
//
// Returns:
//   - *mesh.VertexData: the packed vertex data
//   - error: ErrNotYetSupported for interleaved sources
func gltfAssembleVertices(l *gltfPrimitiveLayout) (*mesh.VertexData, error) {
	if l.layout == gltfLayoutInterleaved {
		return nil, fmt.Errorf("interleaved vertex data: %w", ErrNotYetSupported)
	}

	formats := make([]mesh.AttributeFormat, len(l.sources))
	stride := 0
	for i, src := range l.sources {
		formats[i] = src.format
		stride += src.format.Format.Size()
	}

	out := make([]byte, 0, stride*l.count)
	for v := 0; v < l.count; v++ {
		for _, src := range l.sources {
			size := src.format.Format.Size()
			out = append(out, src.data[v*size:(v+1)*size]...)
		}
	}

	return mesh.NewVertexData(out, formats, l.count)
}

// gltfReadIndices reads an index accessor into an index buffer.
//
// Parameters:
//   - p: the parser holding the document and loaded buffers
//   - index: the accessor index
//
// Returns:
//   - *mesh.Indices: the indices
//   - error: ErrUnsupportedSparseStorage, ErrUnsupportedIndicesFormat, ErrCorruptBufferView or ErrInvalidDocument
func gltfReadIndices(p gltfParser, index int) (*mesh.Indices, error) {
	acc, err := gltfAccessor(p.Document(), index)
	if err != nil {
		return nil, err
	}
	format, err := gltfIndexFormat(acc.ComponentType, acc.Type)
	if err != nil {
		return nil, err
	}
	bv, view, err := gltfViewBytes(p, *acc.BufferView)
	if err != nil {
		return nil, err
	}
	if bv.ByteStride != 0 && bv.ByteStride != format.Size() {
		return nil, fmt.Errorf("index view has byte stride %d: %w", bv.ByteStride, ErrCorruptBufferView)
	}

	align := bv.ByteOffset + acc.ByteOffset
	switch format {
	case mesh.IndexFormatUint16:
		v, err := gltfCheckedReinterpret(view, align, acc.ByteOffset, acc.Count, 2, binary.LittleEndian.Uint16)
		if err != nil {
			return nil, err
		}
		return mesh.NewIndices16(v), nil
	default:
		v, err := gltfCheckedReinterpret(view, align, acc.ByteOffset, acc.Count, 4, binary.LittleEndian.Uint32)
		if err != nil {
			return nil, err
		}
		return mesh.NewIndices32(v), nil
	}
}

// gltfCheckedReinterpret decodes every little-endian unsigned integer of the given width in src
// from offset to the end, so the result length is the region length divided by the width. It
// refuses misaligned data, regions whose length is not a multiple of the width, and a declared
// count that runs past the region.
//
// Parameters:
//   - src: the buffer view bytes
//   - align: the absolute byte offset of the first element in its buffer
//   - offset: the offset of the first element inside src
//   - count: the declared element count, which must fit in the region
//   - width: the element width in bytes
//   - decode: the little-endian decoder for one element
//
// Returns:
//   - []T: the decoded elements
//   - error: ErrCorruptBufferView on any violation
func gltfCheckedReinterpret[T uint16 | uint32](src []byte, align, offset, count, width int, decode func([]byte) T) ([]T, error) {
	if offset < 0 || offset > len(src) || count < 0 {
		return nil, fmt.Errorf("offset %d count %d in %d byte view: %w", offset, count, len(src), ErrCorruptBufferView)
	}
	if align%width != 0 {
		return nil, fmt.Errorf("offset %d not aligned to %d bytes: %w", align, width, ErrCorruptBufferView)
	}
	region := src[offset:]
	if len(region)%width != 0 {
		return nil, fmt.Errorf("%d bytes is not a multiple of %d: %w", len(region), width, ErrCorruptBufferView)
	}
	if count > len(region)/width {
		return nil, fmt.Errorf("%d elements exceed the %d available: %w", count, len(region)/width, ErrCorruptBufferView)
	}

	out := make([]T, len(region)/width)
	for i := range out {
		out[i] = decode(region[i*width:])
	}
	return out, nil
}
