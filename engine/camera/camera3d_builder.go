package camera

// Camera3DBuilderOption is a functional option for configuring a Camera3D via NewCamera3D.
type Camera3DBuilderOption func(*Camera3D)

// WithDepthRange sets the clip-space depth convention of the projection matrix.
//
// Parameters:
//   - d: the depth range
//
// Returns:
//   - Camera3DBuilderOption: option function to apply
func WithDepthRange(d DepthRange) Camera3DBuilderOption {
	return func(c *Camera3D) {
		c.depth = d
	}
}
