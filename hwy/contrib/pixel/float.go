package pixel

import "github.com/ajroetker/go-yuv/hwy"

// LoadRGBAFloat loads d.Lanes() pixels of a float surface without
// quantizing. Missing alpha loads as 1.0.
func LoadRGBAFloat[T hwy.Lanes](d hwy.Desc, s Surface, row []T, x int) (r, g, b, a hwy.Vec[float32]) {
	var c [4]hwy.Vec[T]
	switch s.Channels() {
	case 1:
		c[0] = hwy.Load(d, row[x:])
	case 3:
		c[0], c[1], c[2] = hwy.LoadInterleaved3(d, row[3*x:])
	default:
		c[0], c[1], c[2], c[3] = hwy.LoadInterleaved4(d, row[4*x:])
	}
	r = hwy.PromoteFloat(d, c[s.Index(R)])
	g = hwy.PromoteFloat(d, c[s.Index(G)])
	b = hwy.PromoteFloat(d, c[s.Index(B)])
	a = hwy.Set(d, float32(1))
	if i := s.Index(A); i >= 0 {
		a = hwy.PromoteFloat(d, c[i])
	}
	return r, g, b, a
}

// StoreRGBAFloat stores float lanes to a float surface.
func StoreRGBAFloat[T hwy.Lanes](d hwy.Desc, s Surface, row []T, x int, r, g, b, a hwy.Vec[float32]) {
	var c [4]hwy.Vec[T]
	c[s.Index(R)] = hwy.DemoteFloat[T](d, r)
	if !s.IsGray() {
		c[s.Index(G)] = hwy.DemoteFloat[T](d, g)
		c[s.Index(B)] = hwy.DemoteFloat[T](d, b)
	}
	if i := s.Index(A); i >= 0 {
		c[i] = hwy.DemoteFloat[T](d, a)
	}
	switch s.Channels() {
	case 1:
		hwy.Store(c[0], row[x:])
	case 3:
		hwy.StoreInterleaved3(c[0], c[1], c[2], row[3*x:])
	default:
		hwy.StoreInterleaved4(c[0], c[1], c[2], c[3], row[4*x:])
	}
}

// PixelAtFloat is the scalar form of LoadRGBAFloat.
func PixelAtFloat[T hwy.Lanes](s Surface, row []T, x int) (r, g, b, a float32) {
	px := row[x*s.Channels():]
	f := func(v T) float32 {
		if h, ok := any(v).(hwy.Float16); ok {
			return h.Float32()
		}
		return float32(v)
	}
	r, g, b, a = f(px[s.Index(R)]), f(px[s.Index(G)]), f(px[s.Index(B)]), 1
	if i := s.Index(A); i >= 0 {
		a = f(px[i])
	}
	return r, g, b, a
}

// SetPixelFloat is the scalar form of StoreRGBAFloat.
func SetPixelFloat[T hwy.Lanes](s Surface, row []T, x int, r, g, b, a float32) {
	px := row[x*s.Channels():]
	f := func(v float32) T {
		var zero T
		if _, ok := any(zero).(hwy.Float16); ok {
			return any(hwy.NewFloat16(v)).(T)
		}
		return T(v)
	}
	px[s.Index(R)] = f(r)
	if s.IsGray() {
		return
	}
	px[s.Index(G)] = f(g)
	px[s.Index(B)] = f(b)
	if i := s.Index(A); i >= 0 {
		px[i] = f(a)
	}
}
