package mesh

// IndexFormat is the element width of an index buffer.
type IndexFormat int

const (
	IndexFormatUint16 IndexFormat = iota
	IndexFormatUint32
)

// Size returns the byte width of one index.
func (f IndexFormat) Size() int {
	if f == IndexFormatUint16 {
		return 2
	}
	return 4
}

func (f IndexFormat) String() string {
	if f == IndexFormatUint16 {
		return "Uint16"
	}
	return "Uint32"
}

// Indices holds either 16-bit or 32-bit vertex indices. Only the slice matching Format is set.
type Indices struct {
	Format IndexFormat
	U16    []uint16
	U32    []uint32
}

// NewIndices16 wraps 16-bit indices.
func NewIndices16(v []uint16) *Indices {
	return &Indices{Format: IndexFormatUint16, U16: v}
}

// NewIndices32 wraps 32-bit indices.
func NewIndices32(v []uint32) *Indices {
	return &Indices{Format: IndexFormatUint32, U32: v}
}

// Len returns the number of indices.
func (i *Indices) Len() int {
	if i == nil {
		return 0
	}
	if i.Format == IndexFormatUint16 {
		return len(i.U16)
	}
	return len(i.U32)
}

// At returns index n widened to uint32.
func (i *Indices) At(n int) uint32 {
	if i.Format == IndexFormatUint16 {
		return uint32(i.U16[n])
	}
	return i.U32[n]
}
