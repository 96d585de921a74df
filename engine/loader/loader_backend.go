package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/Carmen-Shannon/oxy-scene/engine/world"
)

// loaderBackend defines the generic interface for importing assets from files or streams.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load performs a full import from the given file path.
	//
	// Parameters:
	//   - w: the world to populate
	//   - path: the file path to load
	//
	// Returns:
	//   - scene.Scene: the entities created
	//   - error: error if loading fails
	Load(w world.World, path string) (scene.Scene, error)

	// LoadMeshOnly imports only the MeshResources from the given file path.
	//
	// Parameters:
	//   - w: the world to populate
	//   - path: the file path to load
	//
	// Returns:
	//   - scene.Scene: the MeshResource entities
	//   - error: error if loading fails
	LoadMeshOnly(w world.World, path string) (scene.Scene, error)

	// LoadReader imports an asset from a reader stream.
	//
	// Parameters:
	//   - w: the world to populate
	//   - r: the reader providing asset data
	//   - baseDir: the directory relative URIs are resolved against
	//   - isGLB: true if the reader provides GLB binary data, false for text-based formats
	//
	// Returns:
	//   - scene.Scene: the entities created
	//   - error: error if loading fails
	LoadReader(w world.World, r io.Reader, baseDir string, isGLB bool) (scene.Scene, error)
}
