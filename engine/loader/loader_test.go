package loader

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/mesh"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/Carmen-Shannon/oxy-scene/engine/transform"
	"github.com/Carmen-Shannon/oxy-scene/engine/world"
	"github.com/Carmen-Shannon/oxy-scene/internal/config"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	var b bytes.Buffer
	require.NoError(t, png.Encode(&b, img))
	require.NoError(t, os.WriteFile(path, b.Bytes(), 0o644))
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	var b bytes.Buffer
	require.NoError(t, jpeg.Encode(&b, img, nil))
	return b.Bytes()
}

func newTestLoader(t *testing.T, options ...LoaderBuilderOption) Loader {
	return NewLoader(BackendTypeGLTF, append([]LoaderBuilderOption{WithLogger(zaptest.NewLogger(t))}, options...)...)
}

func TestLoadTriangle(t *testing.T) {
	path := triangleFixture().write(t, t.TempDir())
	w := world.NewWorld()

	s, err := newTestLoader(t).Load(w, path)
	require.NoError(t, err)
	assert.Equal(t, "scene", s.Name())

	resources := s.MeshResources()
	require.Len(t, resources, 1)
	require.Len(t, resources[0], 1)

	res, ok := world.Get[mesh.MeshResource](w, resources[0][0])
	require.True(t, ok)
	assert.Equal(t, mesh.AssemblyTriangles, res.Assembly())

	indices, vertices, ok := res.Fetch()
	require.True(t, ok)
	assert.Nil(t, indices)
	assert.Equal(t, 3, vertices.Count())
	assert.Len(t, vertices.Data(), 36)

	_, _, ok = res.Fetch()
	assert.False(t, ok)

	instances := s.MeshInstances()
	require.Len(t, instances, 1)

	m, ok := world.Get[mesh.Mesh](w, instances[0])
	require.True(t, ok)
	assert.Equal(t, resources[0][0], m.Resource)
	assert.False(t, m.HasMaterial())

	tr, ok := world.Get[transform.Transform3D](w, instances[0])
	require.True(t, ok)
	assert.Equal(t, transform.New(), *tr)

	node, ok := world.Get[scene.Node](w, instances[0])
	require.True(t, ok)
	assert.Equal(t, scene.Node{Index: 0, Primitive: 0}, *node)

	assert.Empty(t, s.Cameras())
	assert.Equal(t, 2, w.Count())
}

func TestLoadIndexedPrimitive(t *testing.T) {
	f := newGLTFFixture()
	pos := f.floats("VEC3", 3, 0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0)
	idx := f.accessor(f.view(uint16Bytes(0, 1, 2, 2, 1, 3), 0), fixtureUshort, "SCALAR", 6)
	f.primitive(map[string]int{"POSITION": pos}, map[string]any{"indices": idx, "mode": 5})
	f.node(map[string]any{"mesh": 0})
	path := f.write(t, t.TempDir())

	w := world.NewWorld()
	s, err := newTestLoader(t).Load(w, path)
	require.NoError(t, err)

	id, ok := s.MeshResource(0, 0)
	require.True(t, ok)
	res, ok := world.Get[mesh.MeshResource](w, id)
	require.True(t, ok)
	assert.Equal(t, mesh.AssemblyTriangleStrip, res.Assembly())

	indices, vertices := res.Peek()
	require.NotNil(t, indices)
	assert.Equal(t, 6, indices.Len())
	assert.Equal(t, uint32(3), indices.At(5))
	assert.Equal(t, 4, vertices.Count())
}

func TestLoadCamera(t *testing.T) {
	f := triangleFixture()
	f.doc["cameras"] = []any{map[string]any{
		"type": "perspective",
		"perspective": map[string]any{
			"aspectRatio": 1.0,
			"yfov":        math.Pi / 4,
			"znear":       0.1,
			"zfar":        100.0,
		},
	}}
	f.node(map[string]any{"camera": 0, "translation": []float64{0, 0, 5}, "name": "eye"})
	path := f.write(t, t.TempDir())

	w := world.NewWorld()
	s, err := newTestLoader(t).Load(w, path)
	require.NoError(t, err)

	cams := s.Cameras()
	require.Len(t, cams, 1)

	cam, ok := world.Get[camera.Camera3D](w, cams[0])
	require.True(t, ok)
	want, err := camera.NewPerspective(1, math.Pi/4, 0.1, 100)
	require.NoError(t, err)
	assert.True(t, cam.ProjectionMatrix().ApproxEqualThreshold(want.ProjectionMatrix(), 1e-6))

	tr, ok := world.Get[transform.Transform3D](w, cams[0])
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, tr.Translation)

	node, ok := world.Get[scene.Node](w, cams[0])
	require.True(t, ok)
	assert.Equal(t, scene.Node{Index: 1, Name: "eye", Primitive: -1}, *node)
}

func TestLoadCameraDepthRange(t *testing.T) {
	f := newGLTFFixture()
	f.doc["cameras"] = []any{map[string]any{
		"type":        "perspective",
		"perspective": map[string]any{"aspectRatio": 1.5, "yfov": 1.0, "znear": 1.0, "zfar": 10.0},
	}}
	f.node(map[string]any{"camera": 0})
	path := f.write(t, t.TempDir())

	w := world.NewWorld()
	s, err := newTestLoader(t, WithCameraDepthRange(camera.DepthZeroToOne)).Load(w, path)
	require.NoError(t, err)

	cam, ok := world.Get[camera.Camera3D](w, s.Cameras()[0])
	require.True(t, ok)
	assert.Equal(t, camera.DepthZeroToOne, cam.DepthRange())
}

func TestLoadNodeTransform(t *testing.T) {
	f := newGLTFFixture()
	pos := f.floats("VEC3", 3, 0, 0, 0, 1, 0, 0, 0, 1, 0)
	f.primitive(map[string]int{"POSITION": pos}, nil)
	f.node(map[string]any{
		"mesh":        0,
		"translation": []float64{1, 2, 3},
		"rotation":    []float64{0, 0, math.Sqrt2 / 2, math.Sqrt2 / 2},
		"scale":       []float64{2, 2, 2},
	})
	f.node(map[string]any{
		"mesh":   0,
		"matrix": []float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
	})
	path := f.write(t, t.TempDir())

	w := world.NewWorld()
	s, err := newTestLoader(t).Load(w, path)
	require.NoError(t, err)

	instances := s.MeshInstances()
	require.Len(t, instances, 2)

	tr, ok := world.Get[transform.Transform3D](w, instances[0])
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, tr.Translation)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, tr.Scale)
	assert.InDelta(t, math.Pi/2, tr.Yaw(), 1e-5)

	tr, ok = world.Get[transform.Transform3D](w, instances[1])
	require.True(t, ok)
	assert.True(t, tr.IsIdentity(1e-6))
}

func TestLoadZeroScale(t *testing.T) {
	f := triangleFixture()
	f.doc["nodes"] = []any{map[string]any{"mesh": 0, "scale": []float64{0, 0, 0}}}
	path := f.write(t, t.TempDir())

	w := world.NewWorld()
	s, err := newTestLoader(t).Load(w, path)
	require.NoError(t, err)

	tr, ok := world.Get[transform.Transform3D](w, s.MeshInstances()[0])
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{}, tr.Scale)
}

func TestLoadMaterials(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "albedo.png"), 2, 3)

	f := triangleFixture()
	prim := f.doc["meshes"].([]any)[0].(map[string]any)["primitives"].([]any)[0].(map[string]any)
	prim["material"] = 0
	f.doc["images"] = []any{map[string]any{"uri": "albedo.png"}}
	f.doc["samplers"] = []any{map[string]any{"magFilter": 9728, "minFilter": 9729, "wrapS": 33071, "wrapT": 33648}}
	f.doc["textures"] = []any{map[string]any{"source": 0, "sampler": 0}}
	f.doc["materials"] = []any{map[string]any{
		"name": "painted",
		"pbrMetallicRoughness": map[string]any{
			"baseColorFactor":  []float64{1, 0.5, 0.25, 1},
			"baseColorTexture": map[string]any{"index": 0, "texCoord": 1},
			"metallicFactor":   0.25,
			"roughnessFactor":  0.75,
		},
		"alphaMode":   "MASK",
		"alphaCutoff": 0.3,
		"doubleSided": true,
	}}
	path := f.write(t, dir)

	w := world.NewWorld()
	s, err := newTestLoader(t).Load(w, path)
	require.NoError(t, err)

	images := s.Images()
	require.Len(t, images, 1)
	img, ok := world.Get[material.Image](w, images[0])
	require.True(t, ok)
	assert.Equal(t, uint32(2), img.Width)
	assert.Equal(t, uint32(3), img.Height)
	assert.Len(t, img.Data, 2*3*img.ColorType.Channels())

	textures := s.Textures()
	require.Len(t, textures, 1)
	tex, ok := world.Get[material.Texture](w, textures[0])
	require.True(t, ok)
	assert.Equal(t, images[0], tex.Image)
	assert.Equal(t, material.MagFilterNearest, tex.MagFilter)
	assert.Equal(t, material.MinFilterLinear, tex.MinFilter)
	assert.Equal(t, material.WrapClampToEdge, tex.WrapS)
	assert.Equal(t, material.WrapMirroredRepeat, tex.WrapT)

	materials := s.Materials()
	require.Len(t, materials, 1)
	mat, ok := world.Get[material.Material](w, materials[0])
	require.True(t, ok)
	assert.Equal(t, "painted", mat.Name)
	assert.Equal(t, [4]float32{1, 0.5, 0.25, 1}, mat.BaseColor)
	assert.Equal(t, textures[0], mat.BaseColorTexture)
	assert.Equal(t, uint32(1), mat.TexCoord)
	assert.InDelta(t, 0.25, mat.Metallic, 1e-6)
	assert.InDelta(t, 0.75, mat.Roughness, 1e-6)
	assert.Equal(t, material.AlphaMask, mat.AlphaMode)
	assert.InDelta(t, 0.3, mat.AlphaCutoff, 1e-6)
	assert.True(t, mat.DoubleSided)

	m, ok := world.Get[mesh.Mesh](w, s.MeshInstances()[0])
	require.True(t, ok)
	assert.Equal(t, materials[0], m.Material)

	t.Run("images disabled", func(t *testing.T) {
		w := world.NewWorld()
		s, err := newTestLoader(t, WithImages(false)).Load(w, path)
		require.NoError(t, err)
		assert.Empty(t, s.Images())
		assert.Empty(t, s.Textures())

		mat, ok := world.Get[material.Material](w, s.Materials()[0])
		require.True(t, ok)
		assert.False(t, mat.Textured())
	})
}

func TestLoadImagesInParallel(t *testing.T) {
	dir := t.TempDir()
	var images []any
	for i, size := range []int{1, 2, 3, 4, 5} {
		name := filepath.Join(dir, "img"+string(rune('a'+i))+".PNG")
		writePNG(t, name, size, 1)
		images = append(images, map[string]any{"uri": filepath.Base(name)})
	}

	f := triangleFixture()
	f.doc["images"] = images
	path := f.write(t, dir)

	w := world.NewWorld()
	s, err := newTestLoader(t, WithDecodeWorkers(3)).Load(w, path)
	require.NoError(t, err)

	ids := s.Images()
	require.Len(t, ids, 5)
	for i, id := range ids {
		img, ok := world.Get[material.Image](w, id)
		require.True(t, ok)
		assert.Equal(t, uint32(i+1), img.Width)
	}
}

func TestLoadImagesReleasesWorkers(t *testing.T) {
	dir := t.TempDir()
	var images []any
	for i := range 4 {
		name := filepath.Join(dir, "img"+string(rune('a'+i))+".png")
		writePNG(t, name, 2, 2)
		images = append(images, map[string]any{"uri": filepath.Base(name)})
	}
	f := triangleFixture()
	f.doc["images"] = images
	path := f.write(t, dir)

	l := newTestLoader(t, WithDecodeWorkers(4))
	before := runtime.NumGoroutine()
	for range 10 {
		_, err := l.Load(world.NewWorld(), path)
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before+2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLoadImageErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string) map[string]any
		want  error
	}{
		{
			name: "unknown extension",
			setup: func(t *testing.T, dir string) map[string]any {
				return map[string]any{"uri": "albedo.bmp"}
			},
			want: ErrUnsupportedImageFormat,
		},
		{
			name: "content does not match extension",
			setup: func(t *testing.T, dir string) map[string]any {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "albedo.png"), jpegBytes(t), 0o644))
				return map[string]any{"uri": "albedo.png"}
			},
			want: ErrUnsupportedImageFormat,
		},
		{
			name: "missing file",
			setup: func(t *testing.T, dir string) map[string]any {
				return map[string]any{"uri": "absent.jpg"}
			},
			want: ErrIO,
		},
		{
			name: "unsupported data uri",
			setup: func(t *testing.T, dir string) map[string]any {
				return map[string]any{"uri": "data:image/gif;base64,R0lGODlhAQABAAAAACw="}
			},
			want: ErrUnsupportedImageFormat,
		},
		{
			name: "buffer view image",
			setup: func(t *testing.T, dir string) map[string]any {
				return map[string]any{"bufferView": 0, "mimeType": "image/png"}
			},
			want: ErrNotYetSupported,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			f := triangleFixture()
			f.doc["images"] = []any{tt.setup(t, dir)}
			path := f.write(t, dir)

			w := world.NewWorld()
			_, err := newTestLoader(t, WithDecodeWorkers(1)).Load(w, path)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, w.Count())
		})
	}
}

func TestLoadJPEGDataURI(t *testing.T) {
	f := triangleFixture()
	f.doc["images"] = []any{map[string]any{"uri": "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegBytes(t))}}
	path := f.write(t, t.TempDir())

	w := world.NewWorld()
	s, err := newTestLoader(t).Load(w, path)
	require.NoError(t, err)

	img, ok := world.Get[material.Image](w, s.Images()[0])
	require.True(t, ok)
	assert.Equal(t, material.ColorTypeRGB, img.ColorType)
	assert.Equal(t, uint32(4), img.Width)
}

func TestLoadRollsBack(t *testing.T) {
	tests := []struct {
		name      string
		camera    map[string]any
		primitive map[string]any
		node      map[string]any
		want      error
	}{
		{
			name:   "orthographic camera",
			camera: map[string]any{"type": "orthographic", "orthographic": map[string]any{"xmag": 1.0, "ymag": 1.0, "znear": 0.1, "zfar": 10.0}},
			node:   map[string]any{"camera": 0},
			want:   ErrNotYetSupported,
		},
		{
			name:   "missing aspect ratio",
			camera: map[string]any{"type": "perspective", "perspective": map[string]any{"yfov": 1.0, "znear": 0.1, "zfar": 10.0}},
			node:   map[string]any{"camera": 0},
			want:   ErrMissingProjectionParameter,
		},
		{
			name:   "missing zfar",
			camera: map[string]any{"type": "perspective", "perspective": map[string]any{"aspectRatio": 1.0, "yfov": 1.0, "znear": 0.1}},
			node:   map[string]any{"camera": 0},
			want:   ErrMissingProjectionParameter,
		},
		{
			name:   "invalid perspective",
			camera: map[string]any{"type": "perspective", "perspective": map[string]any{"aspectRatio": 1.0, "yfov": 1.0, "znear": 10.0, "zfar": 1.0}},
			node:   map[string]any{"camera": 0},
			want:   ErrInvalidDocument,
		},
		{
			name: "matrix transform",
			node: map[string]any{"mesh": 0, "matrix": []float64{2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 1}},
			want: ErrNotYetSupported,
		},
		{
			name: "zero matrix",
			node: map[string]any{"mesh": 0, "matrix": make([]float64, 16)},
			want: ErrNotYetSupported,
		},
		{
			name: "dangling mesh",
			node: map[string]any{"mesh": 4},
			want: ErrInvalidDocument,
		},
		{
			name:      "dangling material",
			primitive: map[string]any{"material": 0},
			node:      map[string]any{"mesh": 0},
			want:      ErrInvalidDocument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := triangleFixture()
			if tt.camera != nil {
				f.doc["cameras"] = []any{tt.camera}
			}
			prim := f.doc["meshes"].([]any)[0].(map[string]any)["primitives"].([]any)[0].(map[string]any)
			for k, v := range tt.primitive {
				prim[k] = v
			}
			f.node(tt.node)
			path := f.write(t, t.TempDir())

			w := world.NewWorld()
			existing := w.Spawn(mesh.NewMesh(0))

			l := newTestLoader(t)
			_, err := l.Load(w, path)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, []world.EntityID{existing}, w.Entities())
			assert.Nil(t, l.Get(path))
		})
	}
}

func TestLoadOrthographicReportsCameraError(t *testing.T) {
	f := newGLTFFixture()
	f.doc["cameras"] = []any{map[string]any{"type": "orthographic", "orthographic": map[string]any{"xmag": 1.0, "ymag": 1.0, "znear": 0.1, "zfar": 10.0}}}
	f.node(map[string]any{"camera": 0})
	path := f.write(t, t.TempDir())

	_, err := newTestLoader(t).Load(world.NewWorld(), path)
	assert.ErrorIs(t, err, camera.ErrOrthographicUnsupported)
}

func TestLoadMeshOnly(t *testing.T) {
	f := triangleFixture()
	f.doc["cameras"] = []any{map[string]any{"type": "orthographic", "orthographic": map[string]any{"xmag": 1.0, "ymag": 1.0, "znear": 0.1, "zfar": 10.0}}}
	f.node(map[string]any{"camera": 0})
	path := f.write(t, t.TempDir())

	w := world.NewWorld()
	s, err := newTestLoader(t).LoadMeshOnly(w, path)
	require.NoError(t, err)
	assert.Len(t, s.MeshResources(), 1)
	assert.Empty(t, s.MeshInstances())
	assert.Empty(t, s.Cameras())
	assert.Equal(t, 1, w.Count())
}

func TestLoadReader(t *testing.T) {
	dir := t.TempDir()
	f := triangleFixture()
	f.write(t, dir)

	w := world.NewWorld()
	l := newTestLoader(t)
	s, err := l.LoadReader(w, "tri", bytes.NewReader(f.json(t, "geo.bin")), dir, false)
	require.NoError(t, err)
	assert.Equal(t, "tri", s.Name())
	assert.Same(t, s, l.Get("tri"))

	_, err = l.LoadReader(world.NewWorld(), "nowhere", bytes.NewReader(f.json(t, "geo.bin")), t.TempDir(), false)
	assert.ErrorIs(t, err, ErrIO)
}

func TestLoaderRegistry(t *testing.T) {
	path := triangleFixture().write(t, t.TempDir())
	w := world.NewWorld()
	l := newTestLoader(t)

	s, err := l.Load(w, path)
	require.NoError(t, err)
	assert.Same(t, s, l.Get(path))
	assert.Len(t, l.Scenes(), 1)

	assert.Equal(t, 2, l.Unload(path))
	assert.Equal(t, 0, w.Count())
	assert.Nil(t, l.Get(path))
	assert.Equal(t, 0, l.Unload(path))
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := newTestLoader(t).Load(world.NewWorld(), "model.obj")
	assert.Error(t, err)
}

func TestWithConfig(t *testing.T) {
	l := NewLoader(BackendTypeGLTF, WithConfig(config.LoaderConfig{DecodeWorkers: 0, MaxBufferBytes: 16, LoadImages: false})).(*loader)
	assert.Equal(t, 1, l.decodeWorkers)
	assert.Equal(t, int64(16), l.maxBufferBytes)
	assert.False(t, l.loadImages)

	path := triangleFixture().write(t, t.TempDir())
	_, err := l.Load(world.NewWorld(), path)
	assert.ErrorIs(t, err, ErrBufferTooLarge)
}
