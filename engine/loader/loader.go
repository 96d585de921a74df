// Package loader imports glTF 2.0 assets into a world. A load parses the document, resolves
// its buffers, converts every mesh primitive into a MeshResource, decodes images and builds
// textures and materials, then instantiates the node list as mesh-instance and camera entities.
// A failed load leaves the world unchanged.
package loader

import (
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/Carmen-Shannon/oxy-scene/engine/world"
	"go.uber.org/zap"
)

// LoaderBackendType identifies the asset file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	log            *zap.Logger
	decodeWorkers  int
	maxBufferBytes int64
	loadImages     bool
	depth          camera.DepthRange

	scenes map[string]scene.Scene

	backend loaderBackend
}

// Loader defines the public-facing interface for importing scene assets into a world.
// It abstracts the file format behind a backend and keeps a registry of the scenes it loaded,
// keyed by path (or by the name given to LoadReader).
type Loader interface {
	// Load imports an asset file into the world and registers the resulting scene under path.
	// The backend is selected based on the file extension (.gltf/.glb → glTF backend).
	//
	// Parameters:
	//   - w: the world to populate
	//   - path: the file path to the asset
	//
	// Returns:
	//   - scene.Scene: the entities created by the load
	//   - error: error if loading fails; no entities remain in the world
	Load(w world.World, path string) (scene.Scene, error)

	// LoadMeshOnly imports only the MeshResources of an asset file, skipping images,
	// textures, materials and nodes.
	//
	// Parameters:
	//   - w: the world to populate
	//   - path: the file path to the asset
	//
	// Returns:
	//   - scene.Scene: a scene holding only the MeshResource table
	//   - error: error if loading fails; no entities remain in the world
	LoadMeshOnly(w world.World, path string) (scene.Scene, error)

	// LoadReader imports an asset from a reader stream and registers it under name.
	//
	// Parameters:
	//   - w: the world to populate
	//   - name: the registry key for the scene
	//   - r: the reader providing asset data
	//   - baseDir: the directory relative buffer and image URIs are resolved against
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - scene.Scene: the entities created by the load
	//   - error: error if loading fails; no entities remain in the world
	LoadReader(w world.World, name string, r io.Reader, baseDir string, isGLB bool) (scene.Scene, error)

	// Get retrieves a registered scene by key. Returns nil if not found.
	//
	// Parameters:
	//   - key: the path or name the scene was loaded under
	//
	// Returns:
	//   - scene.Scene: the registered scene or nil
	Get(key string) scene.Scene

	// Scenes returns a copy of the scene registry.
	//
	// Returns:
	//   - map[string]scene.Scene: all registered scenes keyed by path or name
	Scenes() map[string]scene.Scene

	// Unload despawns a registered scene's entities and removes it from the registry.
	//
	// Parameters:
	//   - key: the path or name the scene was loaded under
	//
	// Returns:
	//   - int: the number of entities removed, 0 if the key is unknown
	Unload(key string) int
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:            sync.RWMutex{},
		log:           zap.NewNop(),
		decodeWorkers: runtime.NumCPU(),
		loadImages:    true,
		depth:         camera.DepthNegativeOneToOne,
		scenes:        make(map[string]scene.Scene),
	}

	for _, option := range options {
		option(l)
	}

	// The backend captures the settings, so it is built after the options are applied.
	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend(gltfImportOptions{
			log:            l.log,
			decodeWorkers:  l.decodeWorkers,
			maxBufferBytes: l.maxBufferBytes,
			loadImages:     l.loadImages,
			depth:          l.depth,
		})
	}
	return l
}

func (l *loader) Load(w world.World, path string) (scene.Scene, error) {
	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	s, err := backend.Load(w, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	l.register(path, s)
	return s, nil
}

func (l *loader) LoadMeshOnly(w world.World, path string) (scene.Scene, error) {
	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	s, err := backend.LoadMeshOnly(w, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	l.register(path, s)
	return s, nil
}

func (l *loader) LoadReader(w world.World, name string, r io.Reader, baseDir string, isGLB bool) (scene.Scene, error) {
	if l.backend == nil {
		return nil, fmt.Errorf("loader has no backend")
	}

	s, err := l.backend.LoadReader(w, r, baseDir, isGLB)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	if name != "" {
		s.SetName(name)
	}

	l.register(name, s)
	return s, nil
}

func (l *loader) Get(key string) scene.Scene {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.scenes[key]
}

func (l *loader) Scenes() map[string]scene.Scene {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return maps.Clone(l.scenes)
}

func (l *loader) Unload(key string) int {
	l.mu.Lock()
	s, ok := l.scenes[key]
	delete(l.scenes, key)
	l.mu.Unlock()

	if !ok {
		return 0
	}
	return s.Despawn()
}

// register records a loaded scene, replacing any scene previously loaded under the same key.
func (l *loader) register(key string, s scene.Scene) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scenes[key] = s
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only glTF/GLB is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		if l.backend == nil {
			return nil, fmt.Errorf("loader has no backend for %s", ext)
		}
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported asset format: %q", ext)
	}
}
