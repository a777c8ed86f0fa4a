package convert

import (
	"fmt"

	"github.com/ajroetker/go-yuv/hwy"
	"github.com/ajroetker/go-yuv/hwy/contrib/depth"
	"github.com/ajroetker/go-yuv/hwy/contrib/image"
	"github.com/ajroetker/go-yuv/hwy/contrib/pixel"
)

// ConvertPixels converts between RGB surfaces: it reorders channels, inserts
// or drops alpha, and changes depth or storage. Inserted alpha is opaque;
// dropped alpha leaves the color untouched. Color to Gray is not a channel
// operation and is rejected.
func ConvertPixels[S, D hwy.Lanes](src *pixel.Buffer[S], dst *pixel.Buffer[D]) error {
	return convertPixels(target(), src, dst)
}

func convertPixels[S, D hwy.Lanes](d hwy.Desc, src *pixel.Buffer[S], dst *pixel.Buffer[D]) error {
	if err := checkBuffer(src); err != nil {
		return err
	}
	if err := checkBuffer(dst); err != nil {
		return err
	}
	if err := checkSize(src.Image, dst.Image); err != nil {
		return err
	}
	ss, ds := src.Surface, dst.Surface
	if ds.IsGray() && !ss.IsGray() {
		return fmt.Errorf("%w: %v to %v", ErrUnsupported, ss, ds)
	}
	if err := checkOverlap([]*image.Image[S]{src.Image}, []*image.Image[D]{dst.Image}); err != nil {
		return err
	}

	switch {
	case ss.Storage == ds.Storage && ss.Bits == ds.Bits && !ss.Order.Packed() && !ds.Order.Packed():
		perm, err := pixel.Permute(ss.Order, ds.Order)
		if err != nil {
			return err
		}
		// Same storage means S and D are the same type.
		permuteRows(src, any(dst).(*pixel.Buffer[S]), perm)
	case ss.Storage.IsFloat() && ds.Storage.IsFloat():
		for y := range src.Height() {
			floatRow(d, ss, ds, src.Row(y), dst.Row(y))
		}
	default:
		// Work at the deeper integer side; a float side takes the other's
		// depth.
		bits := max(ss.Bits, ds.Bits)
		switch {
		case ss.Storage.IsFloat():
			bits = ds.Bits
		case ds.Storage.IsFloat():
			bits = ss.Bits
		}
		for y := range src.Height() {
			pixelRow(d, ss, ds, src.Row(y), dst.Row(y), bits)
		}
	}
	return nil
}

// permuteRows copies elements through a permutation table. Values are never
// rescaled, only moved; -1 entries receive the opaque alpha code.
func permuteRows[T hwy.Lanes](src, dst *pixel.Buffer[T], perm [4]int) {
	sc, dc := src.Channels(), dst.Channels()
	var opaque T
	if dst.Surface.Storage.IsFloat() {
		opaque = floatOne[T]()
	} else {
		opaque = T(depth.MaxCode(dst.Surface.Bits))
	}
	for y := range src.Height() {
		s, d := src.Row(y), dst.Row(y)
		for x := range src.Width() {
			sp, dp := s[x*sc:x*sc+sc], d[x*dc:x*dc+dc]
			for i := range dp {
				if perm[i] < 0 {
					dp[i] = opaque
				} else {
					dp[i] = sp[perm[i]]
				}
			}
		}
	}
}

func floatOne[T hwy.Lanes]() T {
	var zero T
	if _, ok := any(zero).(hwy.Float16); ok {
		return any(hwy.Float16One).(T)
	}
	return T(1)
}

func pixelRow[S, D hwy.Lanes](d hwy.Desc, ss, ds pixel.Surface, src []S, dst []D, bits int) {
	w := len(src) / ss.Channels()
	lanes := d.Lanes()
	x := 0
	for ; x+lanes <= w; x += lanes {
		r, g, b, a := pixel.LoadRGBA(d, ss, src, x, bits)
		pixel.StoreRGBA(d, ds, dst, x, bits, r, g, b, a)
	}
	for ; x < w; x++ {
		r, g, b, a := pixel.PixelAt(ss, src, x, bits)
		pixel.SetPixel(ds, dst, x, bits, r, g, b, a)
	}
}

func floatRow[S, D hwy.Lanes](d hwy.Desc, ss, ds pixel.Surface, src []S, dst []D) {
	w := len(src) / ss.Channels()
	lanes := d.Lanes()
	x := 0
	for ; x+lanes <= w; x += lanes {
		r, g, b, a := pixel.LoadRGBAFloat(d, ss, src, x)
		pixel.StoreRGBAFloat(d, ds, dst, x, r, g, b, a)
	}
	for ; x < w; x++ {
		r, g, b, a := pixel.PixelAtFloat(ss, src, x)
		pixel.SetPixelFloat(ds, dst, x, r, g, b, a)
	}
}
