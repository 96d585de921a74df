package renderer

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/mesh"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/Carmen-Shannon/oxy-scene/engine/transform"
	"github.com/Carmen-Shannon/oxy-scene/engine/world"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ErrMissingComponent is returned when a scene entity lacks the component its table implies.
var ErrMissingComponent = errors.New("renderer: missing component")

// DrawCall is one mesh instance ready to be recorded into a render pass.
type DrawCall struct {
	// Instance is the mesh-instance entity.
	Instance world.EntityID
	// Resource is the MeshResource entity whose staged geometry is drawn.
	Resource world.EntityID
	// Material is the material entity, zero for the default material.
	Material world.EntityID
	// Model is the instance's model matrix.
	Model mgl32.Mat4
	// Primitive is the pipeline primitive state, culling adjusted for the material.
	Primitive wgpu.PrimitiveState
}

// CameraView is a camera entity's combined view-projection matrix.
type CameraView struct {
	Camera         world.EntityID
	ViewProjection mgl32.Mat4
}

// SceneStagingData is everything a render backend needs to upload and draw one scene.
type SceneStagingData struct {
	// Meshes holds the geometry fetched by this call, keyed by MeshResource entity.
	// Resources fetched by an earlier call are absent.
	Meshes map[world.EntityID]*MeshStagingData
	// Draws lists one entry per mesh instance in scene order.
	Draws []DrawCall
	// Cameras lists one entry per camera in scene order.
	Cameras []CameraView
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	log           *zap.Logger
	firstLocation uint32

	// textureCache is keyed by Image entity, samplerCache by Texture entity.
	textureCache map[world.EntityID]*TextureStagingData
	samplerCache map[world.EntityID]SamplerStagingData
	// primitiveCache outlives the fetched geometry so later stagings can still build draws.
	primitiveCache map[world.EntityID]wgpu.PrimitiveState
}

// Renderer adapts loaded scenes to GPU-ready staging data.
//
// Geometry is consumed from each MeshResource the first time a scene is staged. Textures and
// samplers are cached by entity so scenes sharing an image stage its pixels once.
type Renderer interface {
	// StageScene fetches the scene's pending geometry and stages its textures, draws and cameras.
	//
	// Parameters:
	//   - s: the loaded scene
	//
	// Returns:
	//   - *SceneStagingData: the staged scene
	//   - error: ErrMissingComponent, ErrUnsupportedVertexFormat, ErrUnsupportedTopology, or a texture error
	StageScene(s scene.Scene) (*SceneStagingData, error)

	// Texture returns the staged pixels of an Image entity, or nil if it has not been staged.
	//
	// Parameters:
	//   - image: the Image entity
	//
	// Returns:
	//   - *TextureStagingData: the staged texture or nil
	Texture(image world.EntityID) *TextureStagingData

	// Sampler returns the staged sampler of a Texture entity.
	//
	// Parameters:
	//   - texture: the Texture entity
	//
	// Returns:
	//   - SamplerStagingData: the sampler configuration
	//   - bool: false if the texture has not been staged
	Sampler(texture world.EntityID) (SamplerStagingData, bool)

	// Textures returns a copy of the texture cache.
	Textures() map[world.EntityID]*TextureStagingData

	// Release drops cached textures, samplers and primitive states of the given entities.
	//
	// Parameters:
	//   - ids: Image, Texture or MeshResource entities
	//
	// Returns:
	//   - int: the number of cache entries removed
	Release(ids ...world.EntityID) int
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer with the given options applied.
//
// Parameters:
//   - options: a variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the renderer
func NewRenderer(options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:           &sync.Mutex{},
		log:          zap.NewNop(),
		textureCache: make(map[world.EntityID]*TextureStagingData),
		samplerCache: make(map[world.EntityID]SamplerStagingData),

		primitiveCache: make(map[world.EntityID]wgpu.PrimitiveState),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *renderer) StageScene(s scene.Scene) (*SceneStagingData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := s.World()
	if err := r.stageTextures(w, s.Textures()); err != nil {
		return nil, err
	}

	out := &SceneStagingData{Meshes: make(map[world.EntityID]*MeshStagingData)}
	for _, prims := range s.MeshResources() {
		for _, id := range prims {
			res, ok := world.Get[mesh.MeshResource](w, id)
			if !ok {
				return nil, fmt.Errorf("mesh resource %d: %w", id, ErrMissingComponent)
			}
			staged, fetched, err := StageMesh(res, r.firstLocation, false)
			if err != nil {
				return nil, fmt.Errorf("mesh resource %d: %w", id, err)
			}
			if fetched {
				out.Meshes[id] = staged
				r.primitiveCache[id] = staged.Primitive
			}
		}
	}

	for _, id := range s.MeshInstances() {
		m, ok := world.Get[mesh.Mesh](w, id)
		if !ok {
			return nil, fmt.Errorf("mesh instance %d: %w", id, ErrMissingComponent)
		}
		draw := DrawCall{Instance: id, Resource: m.Resource, Material: m.Material, Model: mgl32.Ident4()}
		if tr, ok := world.Get[transform.Transform3D](w, id); ok {
			draw.Model = tr.ModelMatrix()
		}
		primitive, ok := r.primitiveCache[m.Resource]
		if !ok {
			return nil, fmt.Errorf("mesh instance %d references unstaged resource %d: %w", id, m.Resource, ErrMissingComponent)
		}
		if m.HasMaterial() {
			if mat, ok := world.Get[material.Material](w, m.Material); ok && mat.DoubleSided {
				primitive.CullMode = wgpu.CullModeNone
			}
		}
		draw.Primitive = primitive
		out.Draws = append(out.Draws, draw)
	}

	for _, id := range s.Cameras() {
		cam, ok := world.Get[camera.Camera3D](w, id)
		if !ok {
			return nil, fmt.Errorf("camera %d: %w", id, ErrMissingComponent)
		}
		tr := transform.New()
		if t, ok := world.Get[transform.Transform3D](w, id); ok {
			tr = *t
		}
		out.Cameras = append(out.Cameras, CameraView{Camera: id, ViewProjection: cam.ViewProjectionMatrix(tr)})
	}

	r.log.Debug("scene staged",
		zap.String("scene", s.Name()),
		zap.Int("meshes", len(out.Meshes)),
		zap.Int("draws", len(out.Draws)),
		zap.Int("cameras", len(out.Cameras)),
		zap.Int("textures", len(r.textureCache)),
	)
	return out, nil
}

// stageTextures stages the image and sampler of every texture not already cached.
func (r *renderer) stageTextures(w world.World, textures []world.EntityID) error {
	for _, id := range textures {
		if _, ok := r.samplerCache[id]; ok {
			continue
		}
		tex, ok := world.Get[material.Texture](w, id)
		if !ok {
			return fmt.Errorf("texture %d: %w", id, ErrMissingComponent)
		}
		if _, ok := r.textureCache[tex.Image]; !ok {
			img, ok := world.Get[material.Image](w, tex.Image)
			if !ok {
				return fmt.Errorf("image %d: %w", tex.Image, ErrMissingComponent)
			}
			staged, err := TextureStaging(img)
			if err != nil {
				return fmt.Errorf("image %d: %w", tex.Image, err)
			}
			r.textureCache[tex.Image] = staged
		}
		r.samplerCache[id] = SamplerStaging(*tex)
	}
	return nil
}

func (r *renderer) Texture(image world.EntityID) *TextureStagingData {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.textureCache[image]
}

func (r *renderer) Sampler(texture world.EntityID) (SamplerStagingData, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.samplerCache[texture]
	return s, ok
}

func (r *renderer) Textures() map[world.EntityID]*TextureStagingData {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.textureCache)
}

func (r *renderer) Release(ids ...world.EntityID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for _, id := range ids {
		if _, ok := r.textureCache[id]; ok {
			delete(r.textureCache, id)
			removed++
		}
		if _, ok := r.samplerCache[id]; ok {
			delete(r.samplerCache, id)
			removed++
		}
		if _, ok := r.primitiveCache[id]; ok {
			delete(r.primitiveCache, id)
			removed++
		}
	}
	return removed
}
