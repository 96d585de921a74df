package loader

import (
	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/internal/config"
	"go.uber.org/zap"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithLogger is an option builder that sets the logger used during loads.
// A nil logger disables logging.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(log *zap.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if log == nil {
			log = zap.NewNop()
		}
		l.log = log
	}
}

// WithDecodeWorkers is an option builder that sets how many images are decoded in parallel.
// Values below 1 decode sequentially.
//
// Parameters:
//   - n: the number of decode workers
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithDecodeWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.decodeWorkers = max(n, 1)
	}
}

// WithMaxBufferBytes is an option builder that caps the size of any single buffer. 0 disables the cap.
//
// Parameters:
//   - n: the limit in bytes
//
// Returns:
//   - LoaderBuilderOption: a function that applies the limit to a loader
func WithMaxBufferBytes(n int64) LoaderBuilderOption {
	return func(l *loader) {
		l.maxBufferBytes = max(n, 0)
	}
}

// WithImages is an option builder that enables or disables image and texture loading.
// Materials are still created without images, just without a base color texture.
//
// Parameters:
//   - enabled: whether images are decoded
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithImages(enabled bool) LoaderBuilderOption {
	return func(l *loader) {
		l.loadImages = enabled
	}
}

// WithCameraDepthRange is an option builder that sets the clip-space depth convention of
// cameras created by loads.
//
// Parameters:
//   - d: the depth range
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithCameraDepthRange(d camera.DepthRange) LoaderBuilderOption {
	return func(l *loader) {
		l.depth = d
	}
}

// WithConfig is an option builder that applies a loader configuration section.
//
// Parameters:
//   - cfg: the loader configuration
//
// Returns:
//   - LoaderBuilderOption: a function that applies every field of cfg to a loader
func WithConfig(cfg config.LoaderConfig) LoaderBuilderOption {
	return func(l *loader) {
		WithDecodeWorkers(cfg.DecodeWorkers)(l)
		WithMaxBufferBytes(cfg.MaxBufferBytes)(l)
		WithImages(cfg.LoadImages)(l)
	}
}
