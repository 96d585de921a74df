// Package camera provides the Camera3D component created for camera nodes of a scene.
package camera

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrOrthographicUnsupported is returned when building a camera from an Orthographic projection.
	ErrOrthographicUnsupported = errors.New("orthographic projection is not supported")
	// ErrInvalidProjection is returned for projection parameters that cannot produce a matrix.
	ErrInvalidProjection = errors.New("invalid projection parameters")
)

// DepthRange selects the clip-space depth convention of the projection matrix.
type DepthRange int

const (
	// DepthNegativeOneToOne maps depth to [-1, 1] (OpenGL convention).
	DepthNegativeOneToOne DepthRange = iota
	// DepthZeroToOne maps depth to [0, 1] (WebGPU convention).
	DepthZeroToOne
)

// Projection is a camera projection description. Implemented by Perspective and Orthographic.
type Projection interface {
	matrix(depth DepthRange) (mgl32.Mat4, error)
}

// Perspective describes a perspective projection. All fields are required.
type Perspective struct {
	AspectRatio float32
	YFov        float32 // radians
	ZNear       float32
	ZFar        float32
}

// Orthographic describes an orthographic projection.
type Orthographic struct {
	XMag  float32
	YMag  float32
	ZNear float32
	ZFar  float32
}

var (
	_ Projection = Perspective{}
	_ Projection = Orthographic{}
)

func (p Perspective) matrix(depth DepthRange) (mgl32.Mat4, error) {
	if p.AspectRatio <= 0 || p.YFov <= 0 || p.ZNear <= 0 || p.ZFar <= p.ZNear {
		return mgl32.Mat4{}, fmt.Errorf("perspective aspect=%v yfov=%v near=%v far=%v: %w",
			p.AspectRatio, p.YFov, p.ZNear, p.ZFar, ErrInvalidProjection)
	}
	if depth == DepthZeroToOne {
		var m mgl32.Mat4
		common.Perspective(m[:], p.YFov, p.AspectRatio, p.ZNear, p.ZFar)
		return m, nil
	}
	return mgl32.Perspective(p.YFov, p.AspectRatio, p.ZNear, p.ZFar), nil
}

func (o Orthographic) matrix(DepthRange) (mgl32.Mat4, error) {
	return mgl32.Mat4{}, ErrOrthographicUnsupported
}

// Camera3D owns a resolved projection matrix. The view comes from the entity's Transform3D.
type Camera3D struct {
	projection Projection
	depth      DepthRange
	matrix     mgl32.Mat4
}

// NewCamera3D resolves a projection into a camera.
//
// Parameters:
//   - p: the projection to resolve
//   - options: a variadic list of Camera3DBuilderOption functions
//
// Returns:
//   - Camera3D: the camera
//   - error: ErrOrthographicUnsupported or ErrInvalidProjection
func NewCamera3D(p Projection, options ...Camera3DBuilderOption) (Camera3D, error) {
	c := Camera3D{projection: p}
	for _, option := range options {
		option(&c)
	}
	if p == nil {
		return Camera3D{}, fmt.Errorf("nil projection: %w", ErrInvalidProjection)
	}

	m, err := p.matrix(c.depth)
	if err != nil {
		return Camera3D{}, err
	}
	c.matrix = m
	return c, nil
}

// NewPerspective is shorthand for NewCamera3D(Perspective{...}).
//
// Parameters:
//   - aspect: viewport width / height
//   - yfov: vertical field of view in radians
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - Camera3D: the camera
//   - error: ErrInvalidProjection if the parameters are out of range
func NewPerspective(aspect, yfov, near, far float32) (Camera3D, error) {
	return NewCamera3D(Perspective{AspectRatio: aspect, YFov: yfov, ZNear: near, ZFar: far})
}

// ProjectionMatrix returns the projection matrix (column-major).
func (c Camera3D) ProjectionMatrix() mgl32.Mat4 {
	return c.matrix
}

// Projection returns the projection the camera was built from.
func (c Camera3D) Projection() Projection {
	return c.projection
}

// DepthRange returns the clip-space depth convention of the projection matrix.
func (c Camera3D) DepthRange() DepthRange {
	return c.depth
}

// ViewMatrix returns the world-to-view matrix for a camera placed by t.
func (c Camera3D) ViewMatrix(t transform.Transform3D) mgl32.Mat4 {
	return t.ModelMatrix().Inv()
}

// ViewProjectionMatrix returns projection * view for a camera placed by t.
func (c Camera3D) ViewProjectionMatrix(t transform.Transform3D) mgl32.Mat4 {
	return c.matrix.Mul4(c.ViewMatrix(t))
}
