package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/engine/mesh"
	"go.uber.org/zap"
)

// gltfExtractedPrimitive is one primitive converted into a MeshResource, not yet in a world.
type gltfExtractedPrimitive struct {
	resource *mesh.MeshResource
	material *int
}

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	parser gltfParser
	log    *zap.Logger
}

// gltfMeshExtractor converts glTF mesh primitives into MeshResources.
// It runs the layout classifier, the vertex assembler and the index reader for each primitive.
type gltfMeshExtractor interface {
	// ExtractMesh extracts every primitive of one mesh, in declaration order.
	//
	// Parameters:
	//   - meshIndex: the index of the mesh to extract
	//
	// Returns:
	//   - []gltfExtractedPrimitive: one entry per primitive
	//   - error: error if any primitive fails
	ExtractMesh(meshIndex int) ([]gltfExtractedPrimitive, error)

	// ExtractAllMeshes extracts every mesh. The result is indexed [mesh][primitive].
	//
	// Returns:
	//   - [][]gltfExtractedPrimitive: all primitives grouped by mesh
	//   - error: error if any primitive fails
	ExtractAllMeshes() ([][]gltfExtractedPrimitive, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

// newGLTFMeshExtractor creates a new mesh extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//   - log: logger for per-primitive diagnostics
//
// Returns:
//   - gltfMeshExtractor: the mesh extractor
func newGLTFMeshExtractor(parser gltfParser, log *zap.Logger) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{parser: parser, log: log}
}

func (e *gltfMeshExtractorImpl) ExtractMesh(meshIndex int) ([]gltfExtractedPrimitive, error) {
	doc := e.parser.Document()
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) || doc.Meshes[meshIndex] == nil {
		return nil, fmt.Errorf("mesh %d out of range: %w", meshIndex, ErrInvalidDocument)
	}

	m := doc.Meshes[meshIndex]
	result := make([]gltfExtractedPrimitive, len(m.Primitives))
	for primIdx, prim := range m.Primitives {
		if prim == nil {
			return nil, fmt.Errorf("mesh %d primitive %d is null: %w", meshIndex, primIdx, ErrInvalidDocument)
		}

		assembly, err := gltfAssembly(prim.Mode)
		if err != nil {
			return nil, fmt.Errorf("mesh %d primitive %d: %w", meshIndex, primIdx, err)
		}

		var indices *mesh.Indices
		if prim.Indices != nil {
			indices, err = gltfReadIndices(e.parser, *prim.Indices)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d indices: %w", meshIndex, primIdx, err)
			}
		}

		layout, err := gltfClassifyPrimitive(e.parser, prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %d primitive %d: %w", meshIndex, primIdx, err)
		}
		vertices, err := gltfAssembleVertices(layout)
		if err != nil {
			return nil, fmt.Errorf("mesh %d primitive %d: %w", meshIndex, primIdx, err)
		}

		resource := mesh.NewMeshResource()
		resource.SetAssembly(assembly)
		resource.Update(indices, vertices)

		e.log.Debug("extracted primitive",
			zap.Int("mesh", meshIndex),
			zap.Int("primitive", primIdx),
			zap.Stringer("assembly", assembly),
			zap.Stringer("layout", layout.layout),
			zap.Int("vertices", vertices.Count()),
			zap.Int("stride", vertices.Stride()),
			zap.Int("indices", indices.Len()),
		)

		result[primIdx] = gltfExtractedPrimitive{resource: resource, material: prim.Material}
	}
	return result, nil
}

func (e *gltfMeshExtractorImpl) ExtractAllMeshes() ([][]gltfExtractedPrimitive, error) {
	doc := e.parser.Document()
	result := make([][]gltfExtractedPrimitive, len(doc.Meshes))
	for i := range doc.Meshes {
		prims, err := e.ExtractMesh(i)
		if err != nil {
			return nil, err
		}
		result[i] = prims
	}
	return result, nil
}
