package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/mesh"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/Carmen-Shannon/oxy-scene/engine/transform"
	"github.com/Carmen-Shannon/oxy-scene/engine/world"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"
)

// gltfIdentityMatrix is the column-major identity, the glTF default node matrix.
var gltfIdentityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// gltfSceneBuilderImpl is the implementation of the gltfSceneBuilder interface.
type gltfSceneBuilderImpl struct {
	parser gltfParser
	depth  camera.DepthRange
	log    *zap.Logger
}

// gltfSceneBuilder commits extracted resources to a world and instantiates the node list.
type gltfSceneBuilder interface {
	// BuildMeshResources spawns one MeshResource entity per primitive in declaration order.
	//
	// Parameters:
	//   - w: the world to spawn into
	//   - meshes: extracted primitives indexed [mesh][primitive]
	//
	// Returns:
	//   - [][]world.EntityID: the MeshResource entities indexed [mesh][primitive]
	BuildMeshResources(w world.World, meshes [][]gltfExtractedPrimitive) [][]world.EntityID

	// BuildNodes walks the node list without following child edges. A mesh node spawns one
	// instance per primitive of its mesh, a camera node spawns a camera, other nodes are skipped.
	//
	// Parameters:
	//   - w: the world to spawn into
	//   - meshes: extracted primitives indexed [mesh][primitive]
	//   - resources: the MeshResource table from BuildMeshResources
	//   - materials: material entities indexed by material index, nil when materials were not loaded
	//
	// Returns:
	//   - []world.EntityID: the mesh-instance entities
	//   - []world.EntityID: the camera entities
	//   - error: error if a node cannot be instantiated
	BuildNodes(w world.World, meshes [][]gltfExtractedPrimitive, resources [][]world.EntityID, materials []world.EntityID) ([]world.EntityID, []world.EntityID, error)
}

var _ gltfSceneBuilder = &gltfSceneBuilderImpl{}

// newGLTFSceneBuilder creates a new scene builder for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//   - depth: the clip-space depth convention of created cameras
//   - log: logger for node diagnostics
//
// Returns:
//   - gltfSceneBuilder: the scene builder
func newGLTFSceneBuilder(parser gltfParser, depth camera.DepthRange, log *zap.Logger) gltfSceneBuilder {
	return &gltfSceneBuilderImpl{parser: parser, depth: depth, log: log}
}

func (b *gltfSceneBuilderImpl) BuildMeshResources(w world.World, meshes [][]gltfExtractedPrimitive) [][]world.EntityID {
	table := make([][]world.EntityID, len(meshes))
	for meshIdx, prims := range meshes {
		table[meshIdx] = make([]world.EntityID, len(prims))
		for primIdx, prim := range prims {
			table[meshIdx][primIdx] = w.Spawn(prim.resource)
		}
	}
	return table
}

func (b *gltfSceneBuilderImpl) BuildNodes(w world.World, meshes [][]gltfExtractedPrimitive, resources [][]world.EntityID, materials []world.EntityID) ([]world.EntityID, []world.EntityID, error) {
	doc := b.parser.Document()

	var instances, cameras []world.EntityID
	for nodeIdx, node := range doc.Nodes {
		if node == nil || (node.Mesh == nil && node.Camera == nil) {
			continue
		}

		tr, err := gltfNodeTransform(node)
		if err != nil {
			return nil, nil, fmt.Errorf("node %d: %w", nodeIdx, err)
		}

		if node.Mesh != nil {
			meshIdx := *node.Mesh
			if meshIdx < 0 || meshIdx >= len(resources) {
				return nil, nil, fmt.Errorf("node %d mesh %d out of range: %w", nodeIdx, meshIdx, ErrInvalidDocument)
			}
			for primIdx, resource := range resources[meshIdx] {
				instance := mesh.NewMesh(resource)
				if matIdx := meshes[meshIdx][primIdx].material; matIdx != nil {
					if *matIdx < 0 || *matIdx >= len(doc.Materials) {
						return nil, nil, fmt.Errorf("node %d mesh %d primitive %d material %d out of range: %w",
							nodeIdx, meshIdx, primIdx, *matIdx, ErrInvalidDocument)
					}
					if materials != nil {
						instance.Material = materials[*matIdx]
					}
				}
				instances = append(instances, w.Spawn(instance, tr, scene.Node{Index: nodeIdx, Name: node.Name, Primitive: primIdx}))
			}
		}

		if node.Camera != nil {
			cam, err := b.camera(*node.Camera)
			if err != nil {
				return nil, nil, fmt.Errorf("node %d: %w", nodeIdx, err)
			}
			cameras = append(cameras, w.Spawn(cam, tr, scene.Node{Index: nodeIdx, Name: node.Name, Primitive: -1}))
			b.log.Debug("instantiated camera", zap.Int("node", nodeIdx), zap.Int("camera", *node.Camera))
		}
	}
	return instances, cameras, nil
}

// camera builds a Camera3D from a camera definition. Perspective cameras must declare both
// aspect ratio and zfar; orthographic cameras are rejected.
func (b *gltfSceneBuilderImpl) camera(cameraIndex int) (camera.Camera3D, error) {
	doc := b.parser.Document()
	if cameraIndex < 0 || cameraIndex >= len(doc.Cameras) || doc.Cameras[cameraIndex] == nil {
		return camera.Camera3D{}, fmt.Errorf("camera %d out of range: %w", cameraIndex, ErrInvalidDocument)
	}
	c := doc.Cameras[cameraIndex]

	var projection camera.Projection
	switch {
	case c.Perspective != nil:
		p := c.Perspective
		if p.AspectRatio == nil {
			return camera.Camera3D{}, fmt.Errorf("camera %d aspect ratio: %w", cameraIndex, ErrMissingProjectionParameter)
		}
		if p.Zfar == nil {
			return camera.Camera3D{}, fmt.Errorf("camera %d zfar: %w", cameraIndex, ErrMissingProjectionParameter)
		}
		projection = camera.Perspective{
			AspectRatio: float32(*p.AspectRatio),
			YFov:        float32(p.Yfov),
			ZNear:       float32(p.Znear),
			ZFar:        float32(*p.Zfar),
		}
	case c.Orthographic != nil:
		o := c.Orthographic
		projection = camera.Orthographic{
			XMag:  float32(o.Xmag),
			YMag:  float32(o.Ymag),
			ZNear: float32(o.Znear),
			ZFar:  float32(o.Zfar),
		}
	default:
		return camera.Camera3D{}, fmt.Errorf("camera %d has no projection: %w", cameraIndex, ErrInvalidDocument)
	}

	cam, err := camera.NewCamera3D(projection, camera.WithDepthRange(b.depth))
	switch {
	case err == nil:
		return cam, nil
	case c.Orthographic != nil && c.Perspective == nil:
		return camera.Camera3D{}, fmt.Errorf("camera %d: %w: %w", cameraIndex, ErrNotYetSupported, err)
	default:
		return camera.Camera3D{}, fmt.Errorf("camera %d: %w: %w", cameraIndex, ErrInvalidDocument, err)
	}
}

// gltfNodeTransform converts a node's translation, rotation and scale into a Transform3D.
// A non-identity matrix is rejected. The decoder fills omitted properties with their defaults,
// so every value here, zero scale included, was either defaulted or written by the asset.
func gltfNodeTransform(node *gltf.Node) (transform.Transform3D, error) {
	if node.Matrix != gltfIdentityMatrix {
		return transform.Transform3D{}, fmt.Errorf("matrix transform: %w", ErrNotYetSupported)
	}

	t := mgl32.Vec3{float32(node.Translation[0]), float32(node.Translation[1]), float32(node.Translation[2])}
	s := mgl32.Vec3{float32(node.Scale[0]), float32(node.Scale[1]), float32(node.Scale[2])}
	r := mgl32.Quat{
		W: float32(node.Rotation[3]),
		V: mgl32.Vec3{float32(node.Rotation[0]), float32(node.Rotation[1]), float32(node.Rotation[2])},
	}
	return transform.FromTRS(t, r, s), nil
}
