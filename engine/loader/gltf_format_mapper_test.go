package loader

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/engine/mesh"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGLTFVertexFormat(t *testing.T) {
	tests := []struct {
		name       string
		ct         gltf.ComponentType
		at         gltf.AccessorType
		normalized bool
		want       mesh.VertexFormat
	}{
		{"ubyte vec2", gltf.ComponentUbyte, gltf.AccessorVec2, false, mesh.VertexFormatUint8x2},
		{"ubyte vec4", gltf.ComponentUbyte, gltf.AccessorVec4, false, mesh.VertexFormatUint8x4},
		{"ubyte vec4 normalized", gltf.ComponentUbyte, gltf.AccessorVec4, true, mesh.VertexFormatUnorm8x4},
		{"byte vec2", gltf.ComponentByte, gltf.AccessorVec2, false, mesh.VertexFormatSint8x2},
		{"byte vec4 normalized", gltf.ComponentByte, gltf.AccessorVec4, true, mesh.VertexFormatSnorm8x4},
		{"ushort vec2", gltf.ComponentUshort, gltf.AccessorVec2, false, mesh.VertexFormatUint16x2},
		{"ushort vec2 normalized", gltf.ComponentUshort, gltf.AccessorVec2, true, mesh.VertexFormatUnorm16x2},
		{"short vec4", gltf.ComponentShort, gltf.AccessorVec4, false, mesh.VertexFormatSint16x4},
		{"short vec2 normalized", gltf.ComponentShort, gltf.AccessorVec2, true, mesh.VertexFormatSnorm16x2},
		{"uint scalar", gltf.ComponentUint, gltf.AccessorScalar, false, mesh.VertexFormatUint32},
		{"uint vec3", gltf.ComponentUint, gltf.AccessorVec3, false, mesh.VertexFormatUint32x3},
		{"float scalar", gltf.ComponentFloat, gltf.AccessorScalar, false, mesh.VertexFormatFloat32},
		{"float vec2", gltf.ComponentFloat, gltf.AccessorVec2, false, mesh.VertexFormatFloat32x2},
		{"float vec3", gltf.ComponentFloat, gltf.AccessorVec3, false, mesh.VertexFormatFloat32x3},
		{"float vec4", gltf.ComponentFloat, gltf.AccessorVec4, false, mesh.VertexFormatFloat32x4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gltfVertexFormat(tt.ct, tt.at, tt.normalized)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGLTFVertexFormatUnsupported(t *testing.T) {
	tests := []struct {
		name       string
		ct         gltf.ComponentType
		at         gltf.AccessorType
		normalized bool
	}{
		{"ubyte scalar", gltf.ComponentUbyte, gltf.AccessorScalar, false},
		{"ubyte vec3", gltf.ComponentUbyte, gltf.AccessorVec3, false},
		{"short vec3", gltf.ComponentShort, gltf.AccessorVec3, false},
		{"ushort scalar normalized", gltf.ComponentUshort, gltf.AccessorScalar, true},
		{"float normalized", gltf.ComponentFloat, gltf.AccessorVec3, true},
		{"uint normalized", gltf.ComponentUint, gltf.AccessorScalar, true},
		{"float mat4", gltf.ComponentFloat, gltf.AccessorMat4, false},
		{"float mat2", gltf.ComponentFloat, gltf.AccessorMat2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gltfVertexFormat(tt.ct, tt.at, tt.normalized)
			assert.ErrorIs(t, err, ErrUnsupportedDataTypeOrDimensions)
		})
	}
}

func TestGLTFAttribute(t *testing.T) {
	tests := []struct {
		semantic string
		want     mesh.Attribute
	}{
		{"POSITION", mesh.Position()},
		{"NORMAL", mesh.Normal()},
		{"TANGENT", mesh.Tangent()},
		{"TEXCOORD_0", mesh.TexCoord(0)},
		{"TEXCOORD_3", mesh.TexCoord(3)},
		{"COLOR_0", mesh.Color(0)},
		{"COLOR_12", mesh.Color(12)},
	}
	for _, tt := range tests {
		t.Run(tt.semantic, func(t *testing.T) {
			got, err := gltfAttribute(tt.semantic)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, semantic := range []string{"JOINTS_0", "WEIGHTS_0", "_CUSTOM", "TEXCOORD_", "TEXCOORD_x", "COLOR_+1", "position"} {
		t.Run(semantic, func(t *testing.T) {
			_, err := gltfAttribute(semantic)
			assert.ErrorIs(t, err, ErrUnsupportedSemantic)
		})
	}
}

func TestGLTFIndexFormat(t *testing.T) {
	got, err := gltfIndexFormat(gltf.ComponentUshort, gltf.AccessorScalar)
	require.NoError(t, err)
	assert.Equal(t, mesh.IndexFormatUint16, got)

	got, err = gltfIndexFormat(gltf.ComponentUint, gltf.AccessorScalar)
	require.NoError(t, err)
	assert.Equal(t, mesh.IndexFormatUint32, got)

	tests := []struct {
		name string
		ct   gltf.ComponentType
		at   gltf.AccessorType
	}{
		{"vec2", gltf.ComponentUshort, gltf.AccessorVec2},
		{"float", gltf.ComponentFloat, gltf.AccessorScalar},
		{"ubyte", gltf.ComponentUbyte, gltf.AccessorScalar},
		{"short", gltf.ComponentShort, gltf.AccessorScalar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gltfIndexFormat(tt.ct, tt.at)
			assert.ErrorIs(t, err, ErrUnsupportedIndicesFormat)
		})
	}
}

func TestGLTFAssembly(t *testing.T) {
	tests := []struct {
		mode gltf.PrimitiveMode
		want mesh.Assembly
	}{
		{gltf.PrimitivePoints, mesh.AssemblyPoints},
		{gltf.PrimitiveLines, mesh.AssemblyLines},
		{gltf.PrimitiveLineLoop, mesh.AssemblyLineLoop},
		{gltf.PrimitiveLineStrip, mesh.AssemblyLineStrip},
		{gltf.PrimitiveTriangles, mesh.AssemblyTriangles},
		{gltf.PrimitiveTriangleStrip, mesh.AssemblyTriangleStrip},
		{gltf.PrimitiveTriangleFan, mesh.AssemblyTriangleFan},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got, err := gltfAssembly(tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
