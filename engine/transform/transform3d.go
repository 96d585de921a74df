// Package transform provides the spatial transform component attached to scene entities.
package transform

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform3D places an entity in world space. Rotation and scale are applied about Center.
type Transform3D struct {
	Translation mgl32.Vec3
	Center      mgl32.Vec3
	Scale       mgl32.Vec3
	Rotation    mgl32.Quat
}

// New returns the identity transform.
func New() Transform3D {
	return Transform3D{
		Scale:    mgl32.Vec3{1, 1, 1},
		Rotation: mgl32.QuatIdent(),
	}
}

// FromTRS builds a transform from decomposed translation, rotation and scale.
// The rotation is normalised; a zero quaternion becomes the identity rotation.
//
// Parameters:
//   - t: translation
//   - r: rotation quaternion
//   - s: scale
//
// Returns:
//   - Transform3D: the transform with a zero rotation center
func FromTRS(t mgl32.Vec3, r mgl32.Quat, s mgl32.Vec3) Transform3D {
	tr := New()
	tr.Translation = t
	tr.Scale = s
	if r.Len() > 0 {
		tr.Rotation = r.Normalize()
	}
	return tr
}

// IsIdentity reports whether the transform is the identity within epsilon.
func (t Transform3D) IsIdentity(epsilon float32) bool {
	return t.ModelMatrix().ApproxEqualThreshold(mgl32.Ident4(), epsilon)
}

// TranslationMatrix returns the translation as a matrix.
func (t Transform3D) TranslationMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
}

// ScaleMatrix returns the scale as a matrix.
func (t Transform3D) ScaleMatrix() mgl32.Mat4 {
	return mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
}

// RotationMatrix returns the rotation as a matrix.
func (t Transform3D) RotationMatrix() mgl32.Mat4 {
	return t.Rotation.Mat4()
}

// ModelMatrix composes T * C * R * S * C^-1 where C translates by Center.
func (t Transform3D) ModelMatrix() mgl32.Mat4 {
	toOrigin := mgl32.Translate3D(-t.Center.X(), -t.Center.Y(), -t.Center.Z())
	back := mgl32.Translate3D(t.Center.X(), t.Center.Y(), t.Center.Z())
	return t.TranslationMatrix().Mul4(back).Mul4(t.RotationMatrix()).Mul4(t.ScaleMatrix()).Mul4(toOrigin)
}

// MoveTo sets the translation.
func (t *Transform3D) MoveTo(x, y, z float32) {
	t.Translation = mgl32.Vec3{x, y, z}
}

// MoveBy offsets the translation.
func (t *Transform3D) MoveBy(dx, dy, dz float32) {
	t.Translation = t.Translation.Add(mgl32.Vec3{dx, dy, dz})
}

// ScaleTo sets the scale.
func (t *Transform3D) ScaleTo(fx, fy, fz float32) {
	t.Scale = mgl32.Vec3{fx, fy, fz}
}

// FlipX mirrors the transform along the X axis.
func (t *Transform3D) FlipX() { t.Scale[0] = -t.Scale[0] }

// FlipY mirrors the transform along the Y axis.
func (t *Transform3D) FlipY() { t.Scale[1] = -t.Scale[1] }

// FlipZ mirrors the transform along the Z axis.
func (t *Transform3D) FlipZ() { t.Scale[2] = -t.Scale[2] }

// RotateBy applies an additional rotation of angle radians about axis, in local space.
//
// Parameters:
//   - axis: the rotation axis, need not be normalised
//   - angle: the angle in radians
func (t *Transform3D) RotateBy(axis mgl32.Vec3, angle float32) {
	if axis.Len() == 0 {
		return
	}
	t.Rotation = t.Rotation.Mul(mgl32.QuatRotate(angle, axis.Normalize())).Normalize()
}

// RotateTo replaces the rotation with angle radians about axis.
func (t *Transform3D) RotateTo(axis mgl32.Vec3, angle float32) {
	t.Rotation = mgl32.QuatIdent()
	t.RotateBy(axis, angle)
}

// RotateXBy rotates about the local X axis.
func (t *Transform3D) RotateXBy(angle float32) { t.RotateBy(mgl32.Vec3{1, 0, 0}, angle) }

// RotateYBy rotates about the local Y axis.
func (t *Transform3D) RotateYBy(angle float32) { t.RotateBy(mgl32.Vec3{0, 1, 0}, angle) }

// RotateZBy rotates about the local Z axis.
func (t *Transform3D) RotateZBy(angle float32) { t.RotateBy(mgl32.Vec3{0, 0, 1}, angle) }

// Roll returns the rotation about X in radians, using the Z-Y-X Euler convention.
func (t Transform3D) Roll() float32 {
	w, x, y, z := t.quatComponents()
	return math32.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))
}

// Pitch returns the rotation about Y in radians, using the Z-Y-X Euler convention.
func (t Transform3D) Pitch() float32 {
	w, x, y, z := t.quatComponents()
	s := 2 * (w*y - z*x)
	if math32.Abs(s) >= 1 {
		return math32.Copysign(math32.Pi/2, s)
	}
	return math32.Asin(s)
}

// Yaw returns the rotation about Z in radians, using the Z-Y-X Euler convention.
func (t Transform3D) Yaw() float32 {
	w, x, y, z := t.quatComponents()
	return math32.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))
}

func (t Transform3D) quatComponents() (w, x, y, z float32) {
	q := t.Rotation.Normalize()
	return q.W, q.V.X(), q.V.Y(), q.V.Z()
}
