package hwy

// This file provides the memory operations the pixel kernels use: plain and
// interleaved loads/stores, strided loads and table gathers.
//
// Loads read at most d.Lanes() elements and zero-fill lanes past the end of
// the source. Stores write at most NumLanes() elements and drop lanes past
// the end of the destination, so callers may hand in short tail slices.

// Load loads d.Lanes() elements from src.
func Load[T Lanes](d Desc, src []T) Vec[T] {
	v := Vec[T]{n: d.Lanes()}
	copy(v.data[:v.n], src)
	return v
}

// Store writes the active lanes of v to dst.
func Store[T Lanes](v Vec[T], dst []T) {
	copy(dst, v.data[:v.n])
}

// LoadStride loads lane i from src[start+i*stride].
func LoadStride[T Lanes](d Desc, src []T, start, stride int) Vec[T] {
	v := Vec[T]{n: d.Lanes()}
	for i := range v.n {
		if j := start + i*stride; j >= 0 && j < len(src) {
			v.data[i] = src[j]
		}
	}
	return v
}

// GatherIndex loads lane i from base[idx[i]]. Out-of-range indices yield zero.
func GatherIndex[T Lanes](d Desc, base []T, idx Vec[int32]) Vec[T] {
	v := Vec[T]{n: d.Lanes()}
	for i := range v.n {
		if j := int(idx.data[i]); j >= 0 && j < len(base) {
			v.data[i] = base[j]
		}
	}
	return v
}

// LoadInterleaved2 loads d.Lanes() pairs and deinterleaves them:
// [a0,b0,a1,b1,...] -> a=[a0,a1,...], b=[b0,b1,...].
func LoadInterleaved2[T Lanes](d Desc, src []T) (a, b Vec[T]) {
	n := d.Lanes()
	a.n, b.n = n, n
	full := min(len(src)/2, n)
	for i := range full {
		a.data[i] = src[2*i]
		b.data[i] = src[2*i+1]
	}
	if full < n && 2*full < len(src) {
		a.data[full] = src[2*full]
	}
	return a, b
}

// LoadInterleaved3 loads d.Lanes() triples and deinterleaves them, as used
// for packed RGB/BGR.
func LoadInterleaved3[T Lanes](d Desc, src []T) (a, b, c Vec[T]) {
	n := d.Lanes()
	a.n, b.n, c.n = n, n, n
	for i := range n {
		j := 3 * i
		if j+2 >= len(src) {
			if j < len(src) {
				a.data[i] = src[j]
			}
			if j+1 < len(src) {
				b.data[i] = src[j+1]
			}
			break
		}
		a.data[i] = src[j]
		b.data[i] = src[j+1]
		c.data[i] = src[j+2]
	}
	return a, b, c
}

// LoadInterleaved4 loads d.Lanes() quads and deinterleaves them, as used for
// four-channel pixels.
func LoadInterleaved4[T Lanes](d Desc, src []T) (a, b, c, e Vec[T]) {
	n := d.Lanes()
	a.n, b.n, c.n, e.n = n, n, n, n
	for i := range n {
		j := 4 * i
		if j+3 >= len(src) {
			if j < len(src) {
				a.data[i] = src[j]
			}
			if j+1 < len(src) {
				b.data[i] = src[j+1]
			}
			if j+2 < len(src) {
				c.data[i] = src[j+2]
			}
			break
		}
		a.data[i] = src[j]
		b.data[i] = src[j+1]
		c.data[i] = src[j+2]
		e.data[i] = src[j+3]
	}
	return a, b, c, e
}

// StoreInterleaved2 interleaves a and b into dst: [a0,b0,a1,b1,...].
func StoreInterleaved2[T Lanes](a, b Vec[T], dst []T) {
	for i := range a.n {
		j := 2 * i
		if j >= len(dst) {
			return
		}
		dst[j] = a.data[i]
		if j+1 < len(dst) {
			dst[j+1] = b.data[i]
		}
	}
}

// StoreInterleaved3 interleaves three vectors into dst.
func StoreInterleaved3[T Lanes](a, b, c Vec[T], dst []T) {
	for i := range a.n {
		j := 3 * i
		if j+2 >= len(dst) {
			for k, v := range [2]T{a.data[i], b.data[i]} {
				if j+k < len(dst) {
					dst[j+k] = v
				}
			}
			return
		}
		dst[j] = a.data[i]
		dst[j+1] = b.data[i]
		dst[j+2] = c.data[i]
	}
}

// StoreInterleaved4 interleaves four vectors into dst.
func StoreInterleaved4[T Lanes](a, b, c, e Vec[T], dst []T) {
	for i := range a.n {
		j := 4 * i
		if j+3 >= len(dst) {
			for k, v := range [3]T{a.data[i], b.data[i], c.data[i]} {
				if j+k < len(dst) {
					dst[j+k] = v
				}
			}
			return
		}
		dst[j] = a.data[i]
		dst[j+1] = b.data[i]
		dst[j+2] = c.data[i]
		dst[j+3] = e.data[i]
	}
}
