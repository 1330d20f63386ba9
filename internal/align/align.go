// Package align provides power-of-two alignment arithmetic for address
// computation.
package align

import "golang.org/x/exp/constraints"

// IsPow2 reports whether v is a power of two. Zero is not a power of two.
func IsPow2[T constraints.Unsigned](v T) bool {
	return v != 0 && v&(v-1) == 0
}

// Up rounds v up to the next multiple of align. align must be a power of
// two; align 0 leaves v unchanged.
func Up[T constraints.Unsigned](v, align T) T {
	if align == 0 {
		return v
	}
	return (v + align - 1) &^ (align - 1)
}

// UpChecked rounds v up to the next multiple of align and reports whether
// the result wrapped around the address space.
func UpChecked[T constraints.Unsigned](v, align T) (T, bool) {
	up := Up(v, align)
	return up, up >= v
}

// Aligned reports whether v is a multiple of align. align 0 and 1 accept
// every value.
func Aligned[T constraints.Unsigned](v, align T) bool {
	if align == 0 {
		return true
	}
	return v&(align-1) == 0
}
