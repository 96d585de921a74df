package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-scene/engine/mesh"
	"github.com/qmuntal/gltf"
)

// gltfVertexFormat maps an accessor's component type and dimensions to a vertex format.
// 8 and 16-bit integer types only map as 2 or 4-vectors; normalized ones map to Unorm/Snorm.
// 32-bit types map for scalar through 4-vector and cannot be normalized.
//
// Parameters:
//   - ct: the accessor component type
//   - at: the accessor type (dimensions)
//   - normalized: the accessor's normalized flag
//
// Returns:
//   - mesh.VertexFormat: the mapped format
//   - error: ErrUnsupportedDataTypeOrDimensions for any other combination
func gltfVertexFormat(ct gltf.ComponentType, at gltf.AccessorType, normalized bool) (mesh.VertexFormat, error) {
	unsupported := fmt.Errorf("component type %v, type %v, normalized %t: %w", ct, at, normalized, ErrUnsupportedDataTypeOrDimensions)

	pick := func(x2, x4, normX2, normX4 mesh.VertexFormat) (mesh.VertexFormat, error) {
		switch {
		case at == gltf.AccessorVec2 && normalized:
			return normX2, nil
		case at == gltf.AccessorVec2:
			return x2, nil
		case at == gltf.AccessorVec4 && normalized:
			return normX4, nil
		case at == gltf.AccessorVec4:
			return x4, nil
		}
		return 0, unsupported
	}

	switch ct {
	case gltf.ComponentByte:
		return pick(mesh.VertexFormatSint8x2, mesh.VertexFormatSint8x4, mesh.VertexFormatSnorm8x2, mesh.VertexFormatSnorm8x4)
	case gltf.ComponentUbyte:
		return pick(mesh.VertexFormatUint8x2, mesh.VertexFormatUint8x4, mesh.VertexFormatUnorm8x2, mesh.VertexFormatUnorm8x4)
	case gltf.ComponentShort:
		return pick(mesh.VertexFormatSint16x2, mesh.VertexFormatSint16x4, mesh.VertexFormatSnorm16x2, mesh.VertexFormatSnorm16x4)
	case gltf.ComponentUshort:
		return pick(mesh.VertexFormatUint16x2, mesh.VertexFormatUint16x4, mesh.VertexFormatUnorm16x2, mesh.VertexFormatUnorm16x4)
	}

	if normalized {
		return 0, unsupported
	}

	var formats [4]mesh.VertexFormat
	switch ct {
	case gltf.ComponentUint:
		formats = [4]mesh.VertexFormat{mesh.VertexFormatUint32, mesh.VertexFormatUint32x2, mesh.VertexFormatUint32x3, mesh.VertexFormatUint32x4}
	case gltf.ComponentFloat:
		formats = [4]mesh.VertexFormat{mesh.VertexFormatFloat32, mesh.VertexFormatFloat32x2, mesh.VertexFormatFloat32x3, mesh.VertexFormatFloat32x4}
	default:
		return 0, unsupported
	}

	switch at {
	case gltf.AccessorScalar:
		return formats[0], nil
	case gltf.AccessorVec2:
		return formats[1], nil
	case gltf.AccessorVec3:
		return formats[2], nil
	case gltf.AccessorVec4:
		return formats[3], nil
	default:
		return 0, unsupported
	}
}

// gltfAttribute maps a primitive attribute semantic to a vertex attribute.
// POSITION, NORMAL, TANGENT, TEXCOORD_n and COLOR_n are recognized; JOINTS_n, WEIGHTS_n and
// application-specific semantics are rejected.
//
// Parameters:
//   - semantic: the attribute name from the primitive's attributes map
//
// Returns:
//   - mesh.Attribute: the attribute
//   - error: ErrUnsupportedSemantic for any other semantic
func gltfAttribute(semantic string) (mesh.Attribute, error) {
	switch semantic {
	case "POSITION":
		return mesh.Position(), nil
	case "NORMAL":
		return mesh.Normal(), nil
	case "TANGENT":
		return mesh.Tangent(), nil
	}

	if set, ok := gltfSemanticSet(semantic, "TEXCOORD_"); ok {
		return mesh.TexCoord(set), nil
	}
	if set, ok := gltfSemanticSet(semantic, "COLOR_"); ok {
		return mesh.Color(set), nil
	}
	return mesh.Attribute{}, fmt.Errorf("semantic %q: %w", semantic, ErrUnsupportedSemantic)
}

// gltfSemanticSet parses the set index of an indexed semantic such as TEXCOORD_1.
func gltfSemanticSet(semantic, prefix string) (uint32, bool) {
	digits, ok := strings.CutPrefix(semantic, prefix)
	if !ok || digits == "" || strings.HasPrefix(digits, "+") {
		return 0, false
	}
	set, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(set), true
}

// gltfIndexFormat maps an index accessor to an index format.
//
// Returns:
//   - mesh.IndexFormat: Uint16 or Uint32
//   - error: ErrUnsupportedIndicesFormat unless the accessor is a scalar u16 or u32
func gltfIndexFormat(ct gltf.ComponentType, at gltf.AccessorType) (mesh.IndexFormat, error) {
	if at == gltf.AccessorScalar {
		switch ct {
		case gltf.ComponentUshort:
			return mesh.IndexFormatUint16, nil
		case gltf.ComponentUint:
			return mesh.IndexFormatUint32, nil
		}
	}
	return 0, fmt.Errorf("component type %v, type %v: %w", ct, at, ErrUnsupportedIndicesFormat)
}

// gltfAssembly maps a primitive mode to a topology.
func gltfAssembly(mode gltf.PrimitiveMode) (mesh.Assembly, error) {
	switch mode {
	case gltf.PrimitivePoints:
		return mesh.AssemblyPoints, nil
	case gltf.PrimitiveLines:
		return mesh.AssemblyLines, nil
	case gltf.PrimitiveLineLoop:
		return mesh.AssemblyLineLoop, nil
	case gltf.PrimitiveLineStrip:
		return mesh.AssemblyLineStrip, nil
	case gltf.PrimitiveTriangles:
		return mesh.AssemblyTriangles, nil
	case gltf.PrimitiveTriangleStrip:
		return mesh.AssemblyTriangleStrip, nil
	case gltf.PrimitiveTriangleFan:
		return mesh.AssemblyTriangleFan, nil
	default:
		return 0, fmt.Errorf("primitive mode %d: %w", mode, ErrInvalidDocument)
	}
}
