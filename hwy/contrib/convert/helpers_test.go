package convert

import (
	"math/rand"
	"testing"

	"github.com/ajroetker/go-yuv/hwy"
	"github.com/ajroetker/go-yuv/hwy/contrib/chroma"
	"github.com/ajroetker/go-yuv/hwy/contrib/depth"
	"github.com/ajroetker/go-yuv/hwy/contrib/image"
	"github.com/ajroetker/go-yuv/hwy/contrib/pixel"
	"github.com/samber/lo"
)

// Test widths to cover aligned, unaligned, and tail cases
var testWidths = []int{1, 7, 8, 15, 16, 17, 33}

// testDescs returns the descriptor of every target this CPU can run plus
// single-lane and partial descriptors. A 16-lane descriptor on a row shorter
// than 16 runs only the scalar tail, so agreement across this list also
// proves the vector and scalar paths agree.
func testDescs() []hwy.Desc {
	descs := lo.Map(hwy.Targets(), func(t hwy.Target, _ int) hwy.Desc { return t.Desc() })
	return append(descs, hwy.NewDesc(1), hwy.NewDesc(3), hwy.NewDesc(16))
}

func newPlanar[T hwy.Lanes](t testing.TB, w, h int, l chroma.Layout, s depth.Spec) *Planar[T] {
	t.Helper()
	plane := func(pw, ph, ch int) *image.Image[T] {
		img, err := image.NewPacked(make([]T, pw*ph*ch), pw, ph, ch)
		if err != nil {
			t.Fatal(err)
		}
		return img
	}
	y := plane(w, h, 1)
	var u, v *image.Image[T]
	if l.Subsampling.HasChroma() {
		cw, ch := l.ChromaSize(w, h)
		u = plane(cw, ch, l.ChromaChannels())
		if !l.Arrangement.SemiPlanar() {
			v = plane(cw, ch, 1)
		}
	}
	p, err := NewPlanar(y, u, v, l, s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func newBuffer[T hwy.Lanes](t testing.TB, w, h int, s pixel.Surface) *pixel.Buffer[T] {
	t.Helper()
	b, err := pixel.NewPackedBuffer(make([]T, w*h*s.Channels()), w, h, s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// randomize fills data with random codes below 2^bits.
func randomize[T hwy.UnsignedInts](data []T, bits int, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	limit := int64(depth.MaxCode(bits)) + 1
	for i := range data {
		data[i] = T(rng.Int63n(limit))
	}
}

// planeData returns copies of every plane's backing slice.
func planeData[T hwy.Lanes](p *Planar[T]) [][]T {
	return lo.Map(p.planes(), func(img *image.Image[T], _ int) []T {
		return append([]T(nil), img.Data()...)
	})
}

func absDiff(a, b int32) int32 {
	if a > b {
		return a - b
	}
	return b - a
}
