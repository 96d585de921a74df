package common

import (
	"math"
	"unsafe"
)

// Identity resets a column-major 4x4 matrix to the identity matrix.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	clear(m[:16])
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes views a slice of fixed-size values as raw bytes for GPU buffer uploads.
// The returned slice shares memory with the input and must not be modified.
//
// Parameters:
//   - data: source slice of any fixed-size type
//
// Returns:
//   - []byte: byte view of the input, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	size := int(unsafe.Sizeof(data[0]))
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), size*len(data))
}

// Perspective writes a right-handed perspective projection with a finite far plane that maps
// view-space depth [-near, -far] to clip-space depth [0, 1], the WebGPU convention.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: width divided by height
//   - near: distance to the near plane
//   - far: distance to the far plane
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := float32(1 / math.Tan(float64(fovY)/2))
	depth := 1 / (near - far)

	Identity(out)
	out[0] = f / aspect
	out[5] = f
	out[10] = far * depth
	out[11] = -1
	out[14] = near * far * depth
	out[15] = 0
}
