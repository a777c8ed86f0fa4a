package pixel

import "fmt"

// Permute returns, for each element of a dst pixel, the element of a src
// pixel that feeds it, or -1 where alpha is inserted. A Gray source feeds
// every color element from element 0. Reordering through the table never
// changes sample values.
func Permute(src, dst Order) ([4]int, error) {
	perm := [4]int{-1, -1, -1, -1}
	if !src.valid() || !dst.valid() || src.Packed() || dst.Packed() {
		return perm, fmt.Errorf("%w: no element permutation from %s to %s", ErrSurface, src, dst)
	}
	if dst == Gray && src != Gray {
		return perm, fmt.Errorf("%w: %s to Gray needs a color transform", ErrSurface, src)
	}
	for c := R; c <= A; c++ {
		di := dst.Index(c)
		if di < 0 {
			continue
		}
		perm[di] = src.Index(c)
	}
	return perm, nil
}
