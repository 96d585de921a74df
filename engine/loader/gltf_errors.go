package loader

import "errors"

// Error kinds returned by Load. Every returned error wraps exactly one of these, so callers
// classify failures with errors.Is. Underlying causes (file system, JSON, decoder errors) are
// wrapped alongside the kind.
var (
	// ErrMalformedDocument is returned when the asset cannot be parsed as glTF.
	ErrMalformedDocument = errors.New("malformed glTF document")
	// ErrIO is returned when the asset or a referenced buffer or image file cannot be read.
	ErrIO = errors.New("glTF i/o failure")
	// ErrUnsupportedIndicesFormat is returned for index accessors that are not scalar u16 or u32.
	ErrUnsupportedIndicesFormat = errors.New("unsupported indices format")
	// ErrUnsupportedSemantic is returned for vertex attributes other than position, normal,
	// tangent, color and texture coordinates.
	ErrUnsupportedSemantic = errors.New("unsupported attribute semantic")
	// ErrUnsupportedDataTypeOrDimensions is returned when an accessor has no vertex format.
	ErrUnsupportedDataTypeOrDimensions = errors.New("unsupported accessor data type or dimensions")
	// ErrUnsupportedBufferLayout is returned when a primitive mixes strided and tightly packed views.
	ErrUnsupportedBufferLayout = errors.New("unsupported buffer layout")
	// ErrUnsupportedSparseStorage is returned for sparse accessors and accessors without a buffer view.
	ErrUnsupportedSparseStorage = errors.New("unsupported sparse storage")
	// ErrUnsupportedImageFormat is returned for images that are not 8-bit RGB/RGBA PNG or RGB JPEG.
	ErrUnsupportedImageFormat = errors.New("unsupported image format")
	// ErrNotYetSupported is returned for valid glTF features the importer does not implement:
	// GLB binary chunk buffers, buffer view images, orthographic cameras, matrix node transforms
	// and interleaved vertex data.
	ErrNotYetSupported = errors.New("not yet supported")
	// ErrCorruptBufferView is returned when an accessor or view addresses bytes outside its
	// buffer, or index data is misaligned.
	ErrCorruptBufferView = errors.New("corrupt buffer view")
	// ErrInvalidDocument is returned for well-formed JSON that violates glTF rules the importer
	// depends on, such as dangling indices or mismatched attribute counts.
	ErrInvalidDocument = errors.New("invalid glTF document")
	// ErrMissingProjectionParameter is returned for perspective cameras without aspect ratio or zfar.
	ErrMissingProjectionParameter = errors.New("missing projection parameter")
	// ErrBufferTooLarge is returned when a buffer exceeds the configured size limit.
	ErrBufferTooLarge = errors.New("buffer exceeds size limit")
)
