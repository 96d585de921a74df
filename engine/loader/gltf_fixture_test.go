package loader

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// glTF JSON component type codes.
const (
	fixtureUbyte  = 5121
	fixtureUshort = 5123
	fixtureUint   = 5125
	fixtureFloat  = 5126
)

// gltfFixture assembles a glTF document and its single external buffer for tests.
type gltfFixture struct {
	bin       bytes.Buffer
	views     []map[string]any
	accessors []map[string]any
	doc       map[string]any
}

func newGLTFFixture() *gltfFixture {
	return &gltfFixture{doc: map[string]any{}}
}

// view appends data to the buffer, 4-byte aligned, and declares a buffer view over it.
func (f *gltfFixture) view(data []byte, stride int) int {
	for f.bin.Len()%4 != 0 {
		f.bin.WriteByte(0)
	}
	v := map[string]any{"buffer": 0, "byteOffset": f.bin.Len(), "byteLength": len(data)}
	if stride > 0 {
		v["byteStride"] = stride
	}
	f.bin.Write(data)
	f.views = append(f.views, v)
	return len(f.views) - 1
}

// accessor declares an accessor over a view.
func (f *gltfFixture) accessor(view, componentType int, typ string, count int) int {
	f.accessors = append(f.accessors, map[string]any{
		"bufferView":    view,
		"componentType": componentType,
		"type":          typ,
		"count":         count,
	})
	return len(f.accessors) - 1
}

// floats adds a tightly packed float accessor. values holds count*components floats.
func (f *gltfFixture) floats(typ string, components int, values ...float32) int {
	return f.accessor(f.view(floatBytes(values...), 0), fixtureFloat, typ, len(values)/components)
}

// primitive declares a mesh with one primitive and returns the mesh index.
func (f *gltfFixture) primitive(attributes map[string]int, extra map[string]any) int {
	prim := map[string]any{"attributes": attributes}
	for k, v := range extra {
		prim[k] = v
	}
	meshes, _ := f.doc["meshes"].([]any)
	f.doc["meshes"] = append(meshes, map[string]any{"primitives": []any{prim}})
	return len(f.doc["meshes"].([]any)) - 1
}

// node appends a node.
func (f *gltfFixture) node(n map[string]any) {
	nodes, _ := f.doc["nodes"].([]any)
	f.doc["nodes"] = append(nodes, n)
}

// json renders the document. The buffer is referenced by binURI.
func (f *gltfFixture) json(t *testing.T, binURI string) []byte {
	t.Helper()
	doc := map[string]any{"asset": map[string]any{"version": "2.0"}}
	for k, v := range f.doc {
		doc[k] = v
	}
	if f.bin.Len() > 0 {
		doc["buffers"] = []any{map[string]any{"uri": binURI, "byteLength": f.bin.Len()}}
		doc["bufferViews"] = f.views
		doc["accessors"] = f.accessors
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

// write stores scene.gltf and geo.bin in dir and returns the document path.
func (f *gltfFixture) write(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "scene.gltf")
	require.NoError(t, os.WriteFile(path, f.json(t, "geo.bin"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "geo.bin"), f.bin.Bytes(), 0o644))
	return path
}

// parse writes the fixture to a temp dir and parses it.
func (f *gltfFixture) parse(t *testing.T) gltfParser {
	t.Helper()
	p := newGLTFParser(0)
	require.NoError(t, p.Parse(f.write(t, t.TempDir())))
	return p
}

func floatBytes(values ...float32) []byte {
	var b bytes.Buffer
	_ = binary.Write(&b, binary.LittleEndian, values)
	return b.Bytes()
}

func uint16Bytes(values ...uint16) []byte {
	var b bytes.Buffer
	_ = binary.Write(&b, binary.LittleEndian, values)
	return b.Bytes()
}

// triangleFixture is one unindexed triangle with an identity node.
func triangleFixture() *gltfFixture {
	f := newGLTFFixture()
	pos := f.floats("VEC3", 3,
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	)
	f.primitive(map[string]int{"POSITION": pos}, nil)
	f.node(map[string]any{"mesh": 0})
	return f
}
