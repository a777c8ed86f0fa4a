// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package convert

import (
	"github.com/ajroetker/go-yuv/hwy"
	"github.com/ajroetker/go-yuv/hwy/contrib/colorspace"
	"github.com/ajroetker/go-yuv/hwy/contrib/depth"
	"github.com/ajroetker/go-yuv/hwy/contrib/image"
	"github.com/ajroetker/go-yuv/hwy/contrib/pixel"
)

// RGBToYUV converts src into dst using model m.
//
// Each chroma sample is computed from the average of the (transfer-encoded)
// RGB of the luma block it covers, clipped to the image and rounded half up.
// 4:4:4 uses every pixel as is and 4:0:0 writes luma only.
//
// Linear models compute at dst's bit depth. Reversible models need u16 YUV
// exactly one bit deeper than integer RGB of at most 15 bits.
func RGBToYUV[S, D hwy.Lanes](src *pixel.Buffer[S], dst *Planar[D], m colorspace.Model) error {
	return rgbToYUV(target(), src, dst, m)
}

func rgbToYUV[S, D hwy.Lanes](d hwy.Desc, src *pixel.Buffer[S], dst *Planar[D], m colorspace.Model) error {
	if err := checkBuffer(src); err != nil {
		return err
	}
	if err := checkPlanar(dst); err != nil {
		return err
	}
	if err := checkSize(src.Image, dst.y); err != nil {
		return err
	}
	if err := checkOverlap([]*image.Image[S]{src.Image}, dst.planes()); err != nil {
		return err
	}
	t, err := compile(m, src.Surface.Spec(), dst.spec)
	if err != nil {
		return err
	}
	newEncoder(d, src, dst, t).run()
	return nil
}

// encoder holds the state of one RGB to YUV conversion.
type encoder[S, D hwy.Lanes] struct {
	d   hwy.Desc
	src *pixel.Buffer[S]
	dst *Planar[D]
	t   *colorspace.Transform

	fh, fv int
	// Encoded R, G and B of the luma rows under the current chroma row.
	block [3][][]int32
}

func newEncoder[S, D hwy.Lanes](d hwy.Desc, src *pixel.Buffer[S], dst *Planar[D], t *colorspace.Transform) *encoder[S, D] {
	e := &encoder[S, D]{d: d, src: src, dst: dst, t: t}
	e.fh, e.fv = dst.layout.Subsampling.Factors()
	if e.fh > 0 {
		for c := range e.block {
			e.block[c] = make([][]int32, e.fv)
			for i := range e.block[c] {
				e.block[c][i] = make([]int32, src.Width())
			}
		}
	}
	return e
}

func (e *encoder[S, D]) run() {
	h := e.src.Height()
	if e.fh == 0 {
		for y := range h {
			e.lumaRow(y, -1)
		}
		return
	}
	_, ch := e.dst.layout.ChromaSize(e.src.Width(), h)
	for cy := range ch {
		y0 := cy * e.fv
		rows := min(e.fv, h-y0)
		for i := range rows {
			e.lumaRow(y0+i, i)
		}
		e.chromaRow(cy, rows)
	}
}

// lumaRow writes luma row y and, when slot >= 0, keeps the encoded RGB in
// block row slot.
func (e *encoder[S, D]) lumaRow(y, slot int) {
	d, t := e.d, e.t
	s, spec := e.src.Surface, e.dst.spec
	bits, out := t.Bits(), t.OutputBits()
	src, dst := e.src.Row(y), e.dst.y.Row(y)
	w := e.src.Width()
	lanes := d.Lanes()

	x := 0
	for ; x+lanes <= w; x += lanes {
		r, g, b, _ := pixel.LoadRGBA(d, s, src, x, bits)
		r, g, b = t.Encode(r, g, b)
		hwy.Store(depth.FromWork[D](t.Luma(r, g, b), spec, out), dst[x:])
		if slot >= 0 {
			hwy.Store(r, e.block[0][slot][x:])
			hwy.Store(g, e.block[1][slot][x:])
			hwy.Store(b, e.block[2][slot][x:])
		}
	}
	for ; x < w; x++ {
		r, g, b, _ := pixel.PixelAt(s, src, x, bits)
		r, g, b = t.EncodeOne(r, g, b)
		dst[x] = depth.FromWorkOne[D](t.LumaOne(r, g, b), spec, out)
		if slot >= 0 {
			e.block[0][slot][x] = r
			e.block[1][slot][x] = g
			e.block[2][slot][x] = b
		}
	}
}

// chromaRow averages the first rows block rows into chroma row cy. The
// vector loop covers chroma samples whose block lies inside the width; the
// tail handles the rest, including a clipped last block.
func (e *encoder[S, D]) chromaRow(cy, rows int) {
	d, t := e.d, e.t
	spec, out := e.dst.spec, t.OutputBits()
	uRow, vRow, uOff, vOff, step := e.dst.chromaRows(cy)
	w := e.src.Width()
	cw, _ := e.dst.layout.ChromaSize(w, e.src.Height())
	fh := e.fh
	lanes := d.Lanes()
	full := w / fh

	cx := 0
	for ; cx+lanes <= full; cx += lanes {
		var avg [3]hwy.Vec[int32]
		for c := range avg {
			sum := hwy.Zero[int32](d)
			for i := range rows {
				for j := range fh {
					sum = hwy.Add(sum, hwy.LoadStride(d, e.block[c][i], cx*fh+j, fh))
				}
			}
			avg[c] = hwy.DivRound(sum, int32(fh*rows))
		}
		u, v := t.Chroma(avg[0], avg[1], avg[2])
		uq, vq := depth.FromWork[D](u, spec, out), depth.FromWork[D](v, spec, out)
		if step == 1 {
			hwy.Store(uq, uRow[cx:])
			hwy.Store(vq, vRow[cx:])
			continue
		}
		if uOff == 0 {
			hwy.StoreInterleaved2(uq, vq, uRow[2*cx:])
		} else {
			hwy.StoreInterleaved2(vq, uq, uRow[2*cx:])
		}
	}
	for ; cx < cw; cx++ {
		x0 := cx * fh
		x1 := min(x0+fh, w)
		var avg [3]int32
		for c := range avg {
			var sum int32
			for i := range rows {
				for x := x0; x < x1; x++ {
					sum += e.block[c][i][x]
				}
			}
			avg[c] = divRound(sum, int32((x1-x0)*rows))
		}
		u, v := t.ChromaOne(avg[0], avg[1], avg[2])
		uRow[cx*step+uOff] = depth.FromWorkOne[D](u, spec, out)
		vRow[cx*step+vOff] = depth.FromWorkOne[D](v, spec, out)
	}
}

// divRound divides a non-negative sum by n, rounding half up like
// hwy.DivRound.
func divRound(v, n int32) int32 {
	return (v + n>>1) / n
}
