// Package core holds slice and float helpers shared by the spline packages.
package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Clone returns a copy of src that shares no memory with it.
func Clone(src []float64) []float64 {
	if src == nil {
		return nil
	}
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// Diff writes the forward differences src[i+1]-src[i] into dst.
// dst must hold len(src)-1 elements.
func Diff(dst, src []float64) {
	for i := range dst {
		dst[i] = src[i+1] - src[i]
	}
}
