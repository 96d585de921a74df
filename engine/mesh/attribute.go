package mesh

import "fmt"

// AttributeKind is the semantic meaning of a vertex attribute.
type AttributeKind int

const (
	AttributePosition AttributeKind = iota
	AttributeNormal
	AttributeTangent
	AttributeTexCoord
	AttributeColor
)

// Attribute identifies one vertex attribute by kind and, for texture coordinates and colors,
// by set index. Set is always 0 for Position, Normal and Tangent.
type Attribute struct {
	Kind AttributeKind
	Set  uint32
}

// Position returns the position attribute.
func Position() Attribute { return Attribute{Kind: AttributePosition} }

// Normal returns the normal attribute.
func Normal() Attribute { return Attribute{Kind: AttributeNormal} }

// Tangent returns the tangent attribute.
func Tangent() Attribute { return Attribute{Kind: AttributeTangent} }

// TexCoord returns the texture coordinate attribute for the given set.
func TexCoord(set uint32) Attribute { return Attribute{Kind: AttributeTexCoord, Set: set} }

// Color returns the vertex color attribute for the given set.
func Color(set uint32) Attribute { return Attribute{Kind: AttributeColor, Set: set} }

// Less orders attributes by kind, then by set. This is the canonical packing order of VertexData.
func (a Attribute) Less(b Attribute) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Set < b.Set
}

func (a Attribute) String() string {
	switch a.Kind {
	case AttributePosition:
		return "POSITION"
	case AttributeNormal:
		return "NORMAL"
	case AttributeTangent:
		return "TANGENT"
	case AttributeTexCoord:
		return fmt.Sprintf("TEXCOORD_%d", a.Set)
	case AttributeColor:
		return fmt.Sprintf("COLOR_%d", a.Set)
	default:
		return fmt.Sprintf("Attribute(%d,%d)", int(a.Kind), a.Set)
	}
}

// AttributeFormat pairs an attribute with the format its data is stored in.
type AttributeFormat struct {
	Attribute Attribute
	Format    VertexFormat
}

// AttributeLayout is an AttributeFormat resolved to its byte offset inside one packed vertex.
type AttributeLayout struct {
	Attribute Attribute
	Format    VertexFormat
	Offset    int
}
