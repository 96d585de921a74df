package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/Carmen-Shannon/oxy-scene/engine/world"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"
)

// gltfImportOptions carries the Loader settings an import runs with.
type gltfImportOptions struct {
	log            *zap.Logger
	decodeWorkers  int
	maxBufferBytes int64
	loadImages     bool
	depth          camera.DepthRange
}

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct {
	options gltfImportOptions
}

// gltfImporter defines the interface for orchestrating a full glTF/GLB import.
// It combines the parser, the extractors and the scene builder. Everything that can be
// validated is extracted before the first entity is spawned; any later failure despawns
// the entities the import created.
type gltfImporter interface {
	// Import loads a glTF/GLB file into the world.
	//
	// Parameters:
	//   - w: the world to populate
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - scene.Scene: the entities created, grouped by role
	//   - error: error if import fails, in which case the world is left unchanged
	Import(w world.World, path string) (scene.Scene, error)

	// ImportReader loads a glTF document from a reader into the world.
	//
	// Parameters:
	//   - w: the world to populate
	//   - r: the reader providing glTF/GLB data
	//   - baseDir: the directory relative buffer and image URIs are resolved against
	//   - isGLB: true if the reader provides GLB binary data, false for glTF JSON
	//
	// Returns:
	//   - scene.Scene: the entities created, grouped by role
	//   - error: error if import fails, in which case the world is left unchanged
	ImportReader(w world.World, r io.Reader, baseDir string, isGLB bool) (scene.Scene, error)

	// ImportMeshOnly loads only the MeshResources of a glTF/GLB file.
	// Images, textures, materials and nodes are skipped.
	//
	// Parameters:
	//   - w: the world to populate
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - scene.Scene: a scene holding only the MeshResource table
	//   - error: error if import fails, in which case the world is left unchanged
	ImportMeshOnly(w world.World, path string) (scene.Scene, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new glTF importer.
//
// Parameters:
//   - options: the settings every import runs with
//
// Returns:
//   - gltfImporter: the importer
func newGLTFImporter(options gltfImportOptions) gltfImporter {
	if options.log == nil {
		options.log = zap.NewNop()
	}
	return &gltfImporterImpl{options: options}
}

func (imp *gltfImporterImpl) Import(w world.World, path string) (scene.Scene, error) {
	parser := newGLTFParser(imp.options.maxBufferBytes)
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return imp.importFromParser(w, parser, path, false)
}

func (imp *gltfImporterImpl) ImportReader(w world.World, r io.Reader, baseDir string, isGLB bool) (scene.Scene, error) {
	parser := newGLTFParser(imp.options.maxBufferBytes)
	if err := parser.ParseReader(r, baseDir, isGLB); err != nil {
		return nil, fmt.Errorf("failed to parse from reader: %w", err)
	}

	return imp.importFromParser(w, parser, "", false)
}

func (imp *gltfImporterImpl) ImportMeshOnly(w world.World, path string) (scene.Scene, error) {
	parser := newGLTFParser(imp.options.maxBufferBytes)
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return imp.importFromParser(w, parser, path, true)
}

// importFromParser performs an import from a parser that has already loaded a document.
//
// Parameters:
//   - w: the world to populate
//   - parser: the glTF parser that has already loaded a document
//   - fallbackPath: optional file path used as a fallback for scene naming
//   - meshOnly: true to stop after the MeshResources are committed
//
// Returns:
//   - scene.Scene: the entities created
//   - error: the first failure encountered
func (imp *gltfImporterImpl) importFromParser(w world.World, parser gltfParser, fallbackPath string, meshOnly bool) (scene.Scene, error) {
	start := time.Now()
	log := imp.options.log
	doc := parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document after parsing: %w", ErrMalformedDocument)
	}

	meshes, err := newGLTFMeshExtractor(parser, log).ExtractAllMeshes()
	if err != nil {
		return nil, fmt.Errorf("mesh extraction failed: %w", err)
	}

	var images []*material.Image
	if !meshOnly && imp.options.loadImages && len(doc.Images) > 0 {
		images, err = newGLTFImageExtractor(parser, imp.options.decodeWorkers, log).ExtractAllImages()
		if err != nil {
			return nil, fmt.Errorf("image extraction failed: %w", err)
		}
	}

	tracked := newGLTFTrackedWorld(w)
	options, err := imp.commit(tracked, parser, meshes, images, meshOnly)
	if err != nil {
		removed := tracked.rollback()
		log.Warn("glTF import rolled back",
			zap.String("path", fallbackPath),
			zap.Int("removed", removed),
			zap.Error(err),
		)
		return nil, err
	}

	s := scene.NewScene(gltfExtractSceneName(doc, fallbackPath), w, options...)
	log.Info("glTF import complete",
		zap.String("path", fallbackPath),
		zap.String("scene", s.Name()),
		zap.Int("meshResources", gltfCountPrimitives(meshes)),
		zap.Int("meshInstances", len(s.MeshInstances())),
		zap.Int("cameras", len(s.Cameras())),
		zap.Int("images", len(s.Images())),
		zap.Int("materials", len(s.Materials())),
		zap.Duration("elapsed", time.Since(start)),
	)
	return s, nil
}

// commit spawns every extracted resource, then instantiates the node list.
// Order: images, textures, materials, mesh resources, nodes.
//
// Returns:
//   - []scene.SceneBuilderOption: options populating the resulting scene
//   - error: the first failure; entities spawned so far are left for the caller to roll back
func (imp *gltfImporterImpl) commit(w world.World, parser gltfParser, meshes [][]gltfExtractedPrimitive, images []*material.Image, meshOnly bool) ([]scene.SceneBuilderOption, error) {
	doc := parser.Document()
	builder := newGLTFSceneBuilder(parser, imp.options.depth, imp.options.log)

	if meshOnly {
		resources := builder.BuildMeshResources(w, meshes)
		return []scene.SceneBuilderOption{scene.WithMeshResources(resources)}, nil
	}

	extractor := newGLTFMaterialExtractor(parser)

	var imageIDs, textureIDs []world.EntityID
	if images != nil {
		imageIDs = make([]world.EntityID, len(images))
		for i, img := range images {
			imageIDs[i] = w.Spawn(img)
		}

		textureIDs = make([]world.EntityID, len(doc.Textures))
		for i := range doc.Textures {
			tex, err := extractor.ExtractTexture(i, imageIDs)
			if err != nil {
				return nil, fmt.Errorf("texture extraction failed: %w", err)
			}
			textureIDs[i] = w.Spawn(tex)
		}
	}

	var materialIDs []world.EntityID
	if len(doc.Materials) > 0 {
		materialIDs = make([]world.EntityID, len(doc.Materials))
		for i := range doc.Materials {
			mat, err := extractor.ExtractMaterial(i, textureIDs)
			if err != nil {
				return nil, fmt.Errorf("material extraction failed: %w", err)
			}
			materialIDs[i] = w.Spawn(mat)
		}
	}

	resources := builder.BuildMeshResources(w, meshes)
	instances, cameras, err := builder.BuildNodes(w, meshes, resources, materialIDs)
	if err != nil {
		return nil, fmt.Errorf("scene graph failed: %w", err)
	}

	return []scene.SceneBuilderOption{
		scene.WithImages(imageIDs...),
		scene.WithTextures(textureIDs...),
		scene.WithMaterials(materialIDs...),
		scene.WithMeshResources(resources),
		scene.WithMeshInstances(instances...),
		scene.WithCameras(cameras...),
	}, nil
}

// gltfExtractSceneName derives a scene name from the document's default scene or a file path fallback.
func gltfExtractSceneName(doc *gltf.Document, fallbackPath string) string {
	var sceneName, fileName string
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) && doc.Scenes[*doc.Scene] != nil {
		sceneName = doc.Scenes[*doc.Scene].Name
	}
	if fallbackPath != "" {
		fileName = strings.TrimSuffix(filepath.Base(fallbackPath), filepath.Ext(fallbackPath))
	}
	return common.Coalesce(sceneName, fileName, "unnamed_scene")
}

// gltfCountPrimitives returns the total number of primitives across all meshes.
func gltfCountPrimitives(meshes [][]gltfExtractedPrimitive) int {
	n := 0
	for _, prims := range meshes {
		n += len(prims)
	}
	return n
}
