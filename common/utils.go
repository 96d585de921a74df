package common

import "path/filepath"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// ResolvePath resolves a slash-separated asset reference against the directory of the asset
// that references it. Absolute references are returned cleaned; the process working directory
// is never consulted unless baseDir itself is relative.
//
// Parameters:
//   - baseDir: the directory containing the referencing asset
//   - ref: the referenced path, relative or absolute
//
// Returns:
//   - string: the resolved path
func ResolvePath(baseDir, ref string) string {
	p := filepath.FromSlash(ref)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}
