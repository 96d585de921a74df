package renderer

import "go.uber.org/zap"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithLogger sets the logger used when staging scenes. A nil logger disables logging.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(log *zap.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if log == nil {
			log = zap.NewNop()
		}
		r.log = log
	}
}

// WithFirstShaderLocation sets the shader location assigned to the first vertex attribute.
// Later attributes take consecutive locations.
//
// Parameters:
//   - location: the first shader location
//
// Returns:
//   - RendererBuilderOption: a function that applies the location option to a renderer
func WithFirstShaderLocation(location uint32) RendererBuilderOption {
	return func(r *renderer) {
		r.firstLocation = location
	}
}
