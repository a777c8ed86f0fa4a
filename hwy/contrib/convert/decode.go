package convert

import (
	"fmt"
	"math/bits"

	"github.com/ajroetker/go-yuv/hwy"
	"github.com/ajroetker/go-yuv/hwy/contrib/colorspace"
	"github.com/ajroetker/go-yuv/hwy/contrib/depth"
	"github.com/ajroetker/go-yuv/hwy/contrib/image"
	"github.com/ajroetker/go-yuv/hwy/contrib/pixel"
)

// YUVToRGB converts src into dst using model m. Chroma is reconstructed by
// replicating each sample over its block; 4:0:0 decodes with neutral chroma.
// Destinations with alpha get opaque alpha. A Gray destination is accepted
// only from 4:0:0.
func YUVToRGB[S, D hwy.Lanes](src *Planar[S], dst *pixel.Buffer[D], m colorspace.Model) error {
	return yuvToRGB(target(), src, dst, m)
}

func yuvToRGB[S, D hwy.Lanes](d hwy.Desc, src *Planar[S], dst *pixel.Buffer[D], m colorspace.Model) error {
	if err := checkPlanar(src); err != nil {
		return err
	}
	if err := checkBuffer(dst); err != nil {
		return err
	}
	if err := checkSize(src.y, dst.Image); err != nil {
		return err
	}
	if dst.Surface.IsGray() && src.layout.Subsampling.HasChroma() {
		return fmt.Errorf("%w: %v to %v drops chroma", ErrUnsupported, src.layout, dst.Surface)
	}
	if err := checkOverlap(src.planes(), []*image.Image[D]{dst.Image}); err != nil {
		return err
	}
	t, err := compile(m, dst.Surface.Spec(), src.spec)
	if err != nil {
		return err
	}
	for y := range src.Height() {
		decodeRow(d, src, dst, t, y)
	}
	return nil
}

func decodeRow[S, D hwy.Lanes](d hwy.Desc, src *Planar[S], dst *pixel.Buffer[D], t *colorspace.Transform, y int) {
	s, spec := dst.Surface, src.spec
	work, in := t.Bits(), t.OutputBits()
	opaque := depth.MaxCode(work)
	yRow, out := src.y.Row(y), dst.Row(y)
	w := src.Width()
	lanes := d.Lanes()

	fh, fv := src.layout.Subsampling.Factors()
	var (
		uRow, vRow       []S
		uOff, vOff, step int
		shift            int
	)
	if fh > 0 {
		uRow, vRow, uOff, vOff, step = src.chromaRows(y / fv)
		shift = bits.TrailingZeros(uint(fh))
	}
	neutral := t.ChromaBias()

	x := 0
	for ; x+lanes <= w; x += lanes {
		yv := depth.ToWork(hwy.Load(d, yRow[x:]), spec, in)
		u, v := hwy.Set(d, neutral), hwy.Set(d, neutral)
		if fh > 0 {
			idx := hwy.ShiftRight(hwy.Iota(d, int32(x)), shift)
			if step == 2 {
				idx = hwy.ShiftLeft(idx, 1)
			}
			u = depth.ToWork(hwy.GatherIndex(d, uRow, hwy.Add(idx, hwy.Set(d, int32(uOff)))), spec, in)
			v = depth.ToWork(hwy.GatherIndex(d, vRow, hwy.Add(idx, hwy.Set(d, int32(vOff)))), spec, in)
		}
		r, g, b := t.Inverse(yv, u, v)
		pixel.StoreRGBA(d, s, out, x, work, r, g, b, hwy.Set(d, opaque))
	}
	for ; x < w; x++ {
		yv := depth.ToWorkOne(yRow[x], spec, in)
		u, v := neutral, neutral
		if fh > 0 {
			cx := (x >> shift) * step
			u = depth.ToWorkOne(uRow[cx+uOff], spec, in)
			v = depth.ToWorkOne(vRow[cx+vOff], spec, in)
		}
		r, g, b := t.InverseOne(yv, u, v)
		pixel.SetPixel(s, out, x, work, r, g, b, opaque)
	}
}
