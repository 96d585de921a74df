package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/Carmen-Shannon/oxy-scene/engine/world"
)

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct {
	importer gltfImporter
}

// gltfLoaderBackend is a loaderBackend implementation for glTF/GLB files.
// It delegates to the gltfImporter for parsing, extraction and scene building.
type gltfLoaderBackend interface {
	loaderBackend
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Parameters:
//   - options: the settings every import runs with
//
// Returns:
//   - gltfLoaderBackend: the loader backend for glTF/GLB files
func newGLTFLoaderBackend(options gltfImportOptions) gltfLoaderBackend {
	return &gltfLoaderBackendImpl{
		importer: newGLTFImporter(options),
	}
}

func (b *gltfLoaderBackendImpl) Load(w world.World, path string) (scene.Scene, error) {
	return b.importer.Import(w, path)
}

func (b *gltfLoaderBackendImpl) LoadMeshOnly(w world.World, path string) (scene.Scene, error) {
	return b.importer.ImportMeshOnly(w, path)
}

func (b *gltfLoaderBackendImpl) LoadReader(w world.World, r io.Reader, baseDir string, isGLB bool) (scene.Scene, error) {
	return b.importer.ImportReader(w, r, baseDir, isGLB)
}
