package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/mesh"
	"github.com/cogentcore/webgpu/wgpu"
)

// vertexFormats maps mesh vertex formats to their WebGPU equivalents. 64-bit formats are absent.
var vertexFormats = map[mesh.VertexFormat]wgpu.VertexFormat{
	mesh.VertexFormatUint8x2:   wgpu.VertexFormatUint8x2,
	mesh.VertexFormatUint8x4:   wgpu.VertexFormatUint8x4,
	mesh.VertexFormatSint8x2:   wgpu.VertexFormatSint8x2,
	mesh.VertexFormatSint8x4:   wgpu.VertexFormatSint8x4,
	mesh.VertexFormatUnorm8x2:  wgpu.VertexFormatUnorm8x2,
	mesh.VertexFormatUnorm8x4:  wgpu.VertexFormatUnorm8x4,
	mesh.VertexFormatSnorm8x2:  wgpu.VertexFormatSnorm8x2,
	mesh.VertexFormatSnorm8x4:  wgpu.VertexFormatSnorm8x4,
	mesh.VertexFormatUint16x2:  wgpu.VertexFormatUint16x2,
	mesh.VertexFormatUint16x4:  wgpu.VertexFormatUint16x4,
	mesh.VertexFormatSint16x2:  wgpu.VertexFormatSint16x2,
	mesh.VertexFormatSint16x4:  wgpu.VertexFormatSint16x4,
	mesh.VertexFormatUnorm16x2: wgpu.VertexFormatUnorm16x2,
	mesh.VertexFormatUnorm16x4: wgpu.VertexFormatUnorm16x4,
	mesh.VertexFormatSnorm16x2: wgpu.VertexFormatSnorm16x2,
	mesh.VertexFormatSnorm16x4: wgpu.VertexFormatSnorm16x4,
	mesh.VertexFormatFloat16x2: wgpu.VertexFormatFloat16x2,
	mesh.VertexFormatFloat16x4: wgpu.VertexFormatFloat16x4,
	mesh.VertexFormatFloat32:   wgpu.VertexFormatFloat32,
	mesh.VertexFormatFloat32x2: wgpu.VertexFormatFloat32x2,
	mesh.VertexFormatFloat32x3: wgpu.VertexFormatFloat32x3,
	mesh.VertexFormatFloat32x4: wgpu.VertexFormatFloat32x4,
	mesh.VertexFormatUint32:    wgpu.VertexFormatUint32,
	mesh.VertexFormatUint32x2:  wgpu.VertexFormatUint32x2,
	mesh.VertexFormatUint32x3:  wgpu.VertexFormatUint32x3,
	mesh.VertexFormatUint32x4:  wgpu.VertexFormatUint32x4,
	mesh.VertexFormatSint32:    wgpu.VertexFormatSint32,
	mesh.VertexFormatSint32x2:  wgpu.VertexFormatSint32x2,
	mesh.VertexFormatSint32x3:  wgpu.VertexFormatSint32x3,
	mesh.VertexFormatSint32x4:  wgpu.VertexFormatSint32x4,
}

// VertexFormat converts a mesh vertex format to a WebGPU vertex format.
//
// Parameters:
//   - f: the mesh vertex format
//
// Returns:
//   - wgpu.VertexFormat: the WebGPU format
//   - error: ErrUnsupportedVertexFormat for 64-bit and invalid formats
func VertexFormat(f mesh.VertexFormat) (wgpu.VertexFormat, error) {
	wf, ok := vertexFormats[f]
	if !ok {
		return wgpu.VertexFormatUndefined, fmt.Errorf("%v: %w", f, ErrUnsupportedVertexFormat)
	}
	return wf, nil
}

// VertexBufferLayout describes packed vertex data for the vertex stage. Attributes get
// consecutive shader locations starting at firstLocation, in the data's attribute order.
//
// Parameters:
//   - vd: the vertex data
//   - firstLocation: the shader location of the first attribute
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-vertex buffer layout
//   - error: ErrUnsupportedVertexFormat if any attribute has no WebGPU format
func VertexBufferLayout(vd *mesh.VertexData, firstLocation uint32) (wgpu.VertexBufferLayout, error) {
	layouts := vd.Attributes()
	attrs := make([]wgpu.VertexAttribute, 0, len(layouts))
	for i, l := range layouts {
		wf, err := VertexFormat(l.Format)
		if err != nil {
			return wgpu.VertexBufferLayout{}, fmt.Errorf("attribute %v: %w", l.Attribute, err)
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         wf,
			Offset:         uint64(l.Offset),
			ShaderLocation: firstLocation + uint32(i),
		})
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(vd.Stride()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, nil
}

// Topology converts an assembly to a WebGPU primitive topology.
//
// Parameters:
//   - a: the assembly
//
// Returns:
//   - wgpu.PrimitiveTopology: the topology
//   - error: ErrUnsupportedTopology for line loops and triangle fans
func Topology(a mesh.Assembly) (wgpu.PrimitiveTopology, error) {
	switch a {
	case mesh.AssemblyPoints:
		return wgpu.PrimitiveTopologyPointList, nil
	case mesh.AssemblyLines:
		return wgpu.PrimitiveTopologyLineList, nil
	case mesh.AssemblyLineStrip:
		return wgpu.PrimitiveTopologyLineStrip, nil
	case mesh.AssemblyTriangles:
		return wgpu.PrimitiveTopologyTriangleList, nil
	case mesh.AssemblyTriangleStrip:
		return wgpu.PrimitiveTopologyTriangleStrip, nil
	default:
		return wgpu.PrimitiveTopologyTriangleList, fmt.Errorf("%v: %w", a, ErrUnsupportedTopology)
	}
}

// IndexFormat converts a mesh index format to a WebGPU index format.
func IndexFormat(f mesh.IndexFormat) wgpu.IndexFormat {
	if f == mesh.IndexFormatUint16 {
		return wgpu.IndexFormatUint16
	}
	return wgpu.IndexFormatUint32
}

// PrimitiveState builds the pipeline primitive state for a mesh. Strip topologies drawn with
// indices carry the strip index format. Double-sided materials disable back-face culling.
//
// Parameters:
//   - a: the mesh assembly
//   - indices: the mesh indices, nil for unindexed draws
//   - doubleSided: whether both faces are drawn
//
// Returns:
//   - wgpu.PrimitiveState: the primitive state
//   - error: ErrUnsupportedTopology for line loops and triangle fans
func PrimitiveState(a mesh.Assembly, indices *mesh.Indices, doubleSided bool) (wgpu.PrimitiveState, error) {
	topology, err := Topology(a)
	if err != nil {
		return wgpu.PrimitiveState{}, err
	}

	state := wgpu.PrimitiveState{
		Topology:  topology,
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  wgpu.CullModeBack,
	}
	if doubleSided {
		state.CullMode = wgpu.CullModeNone
	}
	if indices != nil && (a == mesh.AssemblyLineStrip || a == mesh.AssemblyTriangleStrip) {
		state.StripIndexFormat = IndexFormat(indices.Format)
	}
	return state, nil
}

// StageMesh consumes a MeshResource's payload and lays it out for GPU upload.
// The resource transitions to Fetched; a resource with nothing to fetch yields false.
//
// Parameters:
//   - res: the mesh resource
//   - firstLocation: the shader location of the first vertex attribute
//   - doubleSided: whether both faces are drawn
//
// Returns:
//   - *MeshStagingData: the staged mesh
//   - bool: false if the resource held no payload
//   - error: ErrUnsupportedVertexFormat or ErrUnsupportedTopology
func StageMesh(res *mesh.MeshResource, firstLocation uint32, doubleSided bool) (*MeshStagingData, bool, error) {
	indices, vertices, ok := res.Fetch()
	if !ok {
		return nil, false, nil
	}

	layout, err := VertexBufferLayout(vertices, firstLocation)
	if err != nil {
		return nil, true, err
	}
	primitive, err := PrimitiveState(res.Assembly(), indices, doubleSided)
	if err != nil {
		return nil, true, err
	}

	staged := &MeshStagingData{
		Vertices:    vertices.Data(),
		Layout:      layout,
		VertexCount: uint32(vertices.Count()),
		Primitive:   primitive,
	}
	if indices != nil {
		staged.IndexFormat = IndexFormat(indices.Format)
		staged.IndexCount = uint32(indices.Len())
		if indices.Format == mesh.IndexFormatUint16 {
			staged.Indices = common.SliceToBytes(indices.U16)
		} else {
			staged.Indices = common.SliceToBytes(indices.U32)
		}
	}
	return staged, true, nil
}
