package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NarrowInt16 saturates a wide integer into int16 range.
func NarrowInt16[T constraints.Signed](v T) int16 {
	const lo, hi = -1 << 15, 1<<15 - 1
	if int64(v) < lo {
		return lo
	}
	if int64(v) > hi {
		return hi
	}
	return int16(v)
}
