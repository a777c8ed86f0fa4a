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

package colorspace

import (
	"fmt"
	"math"

	"github.com/ajroetker/go-yuv/hwy"
	"github.com/ajroetker/go-yuv/hwy/contrib/depth"
	"golang.org/x/image/math/f64"
)

const (
	maxQ = 14
	minQ = 7
)

// Transform is a Model compiled for one RGB bit depth. All arithmetic is
// int32; the fixed-point precision is chosen so no intermediate overflows.
//
// Vector methods operate on every lane of their inputs. The One variants are
// the scalar forms used for row tails and produce identical results.
type Transform struct {
	kind    Kind
	orient  Orientation
	bits    int
	outBits int
	max     int32
	outMax  int32
	yoff    int32
	bias    int32

	// Linear models only.
	q, iq int
	fwd   [3][3]int32
	inv   [3][3]int32
	enc   []int32
	dec   []int32
}

// Compile quantizes m for RGB codes of the given depth. Linear models accept
// 8 to 16 bits; reversible models produce bits+1 deep YUV and accept 8 to 15.
func (m Model) Compile(bits int) (*Transform, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	maxBits := depth.MaxBits
	if m.Reversible() {
		maxBits--
	}
	if bits < depth.MinBits || bits > maxBits {
		return nil, fmt.Errorf("%w: %v at %d bits", ErrModel, m, bits)
	}
	t := &Transform{
		kind:    m.kind,
		orient:  m.orient,
		bits:    bits,
		outBits: m.OutputBits(bits),
		max:     depth.MaxCode(bits),
	}
	t.outMax = depth.MaxCode(t.outBits)
	if m.Reversible() {
		t.bias = 1 << bits
		if m.rng == TV {
			t.yoff = 16 << (bits - 7)
		}
		return t, nil
	}
	if err := t.quantize(m.matrix, m.rng); err != nil {
		return nil, fmt.Errorf("%v: %w", m, err)
	}
	t.enc = m.transfer.Table(bits, false)
	t.dec = m.transfer.Table(bits, true)
	return t, nil
}

// quantize computes the forward and inverse fixed-point matrices. Forward
// rows are scaled to the range's luma and chroma excursions and rounded; the
// middle coefficient then absorbs the rounding so each row sums exactly to
// its scaled row sum (the luma scale for Y, zero for chroma).
func (t *Transform) quantize(m f64.Mat3, r Range) error {
	n := t.bits
	mx := float64(t.max)
	ys, cs, yoff := mx, mx, 0
	if r == TV {
		ys = float64(int32(219) << (n - 8))
		cs = float64(int32(224) << (n - 8))
		yoff = 16 << (n - 8)
	}
	t.yoff = int32(yoff)
	t.bias = 1 << (n - 1)
	scale := [3]float64{ys / mx, cs / mx, cs / mx}
	offset := [3]float64{float64(yoff), float64(t.bias), float64(t.bias)}

	t.q = pickShift(func(i int) float64 {
		s := 0.0
		for j := range 3 {
			s += math.Abs(m[3*i+j]) * scale[i]
		}
		return s*mx + offset[i] + 1
	})
	if t.q == 0 {
		return fmt.Errorf("%w: coefficients too large for %d bits", ErrModel, n)
	}
	one := float64(int32(1) << t.q)
	for i := range 3 {
		sum := 0.0
		for j := range 3 {
			t.fwd[i][j] = round(m[3*i+j] * scale[i] * one)
			sum += m[3*i+j]
		}
		t.fwd[i][1] = round(sum*scale[i]*one) - t.fwd[i][0] - t.fwd[i][2]
	}

	mi, _ := invert(m)
	cols := [3]float64{mx / ys, mx / cs, mx / cs}
	t.iq = pickShift(func(i int) float64 {
		s := 0.0
		for k := range 3 {
			s += math.Abs(mi[3*i+k]) * cols[k]
		}
		return s*float64(int32(1)<<n) + 1
	})
	if t.iq == 0 {
		return fmt.Errorf("%w: inverse too large for %d bits", ErrModel, n)
	}
	ione := float64(int32(1) << t.iq)
	for i := range 3 {
		for k := range 3 {
			t.inv[i][k] = round(mi[3*i+k] * cols[k] * ione)
		}
	}
	return nil
}

// pickShift returns the largest shift in [minQ, maxQ] for which every row's
// worst-case magnitude, scaled by 2^shift, stays below 2^31. It returns 0 if
// none does.
func pickShift(worst func(row int) float64) int {
	for q := maxQ; q >= minQ; q-- {
		ok := true
		for i := range 3 {
			if worst(i)*float64(int32(1)<<q) >= math.MaxInt32 {
				ok = false
			}
		}
		if ok {
			return q
		}
	}
	return 0
}

func round(x float64) int32 {
	return int32(math.Floor(x + 0.5))
}

// Bits returns the RGB depth the transform was compiled for.
func (t *Transform) Bits() int { return t.bits }

// OutputBits returns the YUV depth.
func (t *Transform) OutputBits() int { return t.outBits }

// Kind returns the model family.
func (t *Transform) Kind() Kind { return t.kind }

// Reversible reports whether the transform inverts exactly.
func (t *Transform) Reversible() bool {
	return t.kind != KindLinear
}

// LumaOffset returns the code of black luma.
func (t *Transform) LumaOffset() int32 { return t.yoff }

// ChromaBias returns the code of zero chroma, used for neutral chroma.
func (t *Transform) ChromaBias() int32 { return t.bias }

// Forward converts RGB codes to Y, U and V codes.
func (t *Transform) Forward(r, g, b hwy.Vec[int32]) (y, u, v hwy.Vec[int32]) {
	r, g, b = t.Encode(r, g, b)
	y = t.Luma(r, g, b)
	u, v = t.Chroma(r, g, b)
	return y, u, v
}

// Encode applies the transfer function. Luma and Chroma expect encoded RGB,
// which lets callers average encoded samples before computing chroma.
func (t *Transform) Encode(r, g, b hwy.Vec[int32]) (hwy.Vec[int32], hwy.Vec[int32], hwy.Vec[int32]) {
	if t.enc == nil {
		return r, g, b
	}
	return t.lookup(t.enc, r), t.lookup(t.enc, g), t.lookup(t.enc, b)
}

func (t *Transform) lookup(table []int32, v hwy.Vec[int32]) hwy.Vec[int32] {
	d := hwy.NewDesc(v.NumLanes())
	return hwy.GatherIndex(d, table, hwy.Clamp(v, 0, t.max))
}

// Luma computes Y from encoded RGB.
func (t *Transform) Luma(r, g, b hwy.Vec[int32]) hwy.Vec[int32] {
	d := hwy.NewDesc(r.NumLanes())
	switch t.kind {
	case KindRCT:
		s := hwy.Add(hwy.Add(r, hwy.ShiftLeft(g, 1)), b)
		return hwy.Add(hwy.ShiftRight(s, 2), hwy.Set(d, t.yoff))
	case KindYCgCoR:
		y, _, _ := t.lift(r, g, b)
		return hwy.Add(y, hwy.Set(d, t.yoff))
	}
	return t.row(0, r, g, b, t.yoff)
}

// Chroma computes U and V from encoded RGB.
func (t *Transform) Chroma(r, g, b hwy.Vec[int32]) (u, v hwy.Vec[int32]) {
	bias := hwy.Set(hwy.NewDesc(r.NumLanes()), t.bias)
	switch t.kind {
	case KindRCT:
		return hwy.Add(hwy.Sub(b, g), bias), hwy.Add(hwy.Sub(r, g), bias)
	case KindYCgCoR:
		_, cg, co := t.lift(r, g, b)
		return hwy.Add(cg, bias), hwy.Add(co, bias)
	}
	return t.row(1, r, g, b, t.bias), t.row(2, r, g, b, t.bias)
}

func (t *Transform) row(i int, r, g, b hwy.Vec[int32], off int32) hwy.Vec[int32] {
	d := hwy.NewDesc(r.NumLanes())
	acc := hwy.Set(d, off<<t.q+int32(1)<<(t.q-1))
	acc = hwy.MulScalarAdd(r, t.fwd[i][0], acc)
	acc = hwy.MulScalarAdd(g, t.fwd[i][1], acc)
	acc = hwy.MulScalarAdd(b, t.fwd[i][2], acc)
	return hwy.Clamp(hwy.ShiftRight(acc, t.q), 0, t.outMax)
}

// lift runs the YCgCo-R lifting steps.
func (t *Transform) lift(r, g, b hwy.Vec[int32]) (y, cg, co hwy.Vec[int32]) {
	if t.orient == BR {
		r, b = b, r
	}
	co = hwy.Sub(r, b)
	tmp := hwy.Add(b, hwy.ShiftRight(co, 1))
	cg = hwy.Sub(g, tmp)
	y = hwy.Add(tmp, hwy.ShiftRight(cg, 1))
	return y, cg, co
}

// Inverse converts Y, U and V codes back to RGB codes, decoding the transfer
// function last. Inputs are clamped to the YUV depth first.
func (t *Transform) Inverse(y, u, v hwy.Vec[int32]) (r, g, b hwy.Vec[int32]) {
	d := hwy.NewDesc(y.NumLanes())
	y = hwy.Sub(hwy.Clamp(y, 0, t.outMax), hwy.Set(d, t.yoff))
	u = hwy.Sub(hwy.Clamp(u, 0, t.outMax), hwy.Set(d, t.bias))
	v = hwy.Sub(hwy.Clamp(v, 0, t.outMax), hwy.Set(d, t.bias))
	switch t.kind {
	case KindRCT:
		g = hwy.Sub(y, hwy.ShiftRight(hwy.Add(u, v), 2))
		r = hwy.Add(v, g)
		b = hwy.Add(u, g)
	case KindYCgCoR:
		tmp := hwy.Sub(y, hwy.ShiftRight(u, 1))
		g = hwy.Add(u, tmp)
		b = hwy.Sub(tmp, hwy.ShiftRight(v, 1))
		r = hwy.Add(b, v)
		if t.orient == BR {
			r, b = b, r
		}
	default:
		half := hwy.Set(d, int32(1)<<(t.iq-1))
		out := [3]hwy.Vec[int32]{}
		for i := range out {
			acc := hwy.MulScalarAdd(y, t.inv[i][0], half)
			acc = hwy.MulScalarAdd(u, t.inv[i][1], acc)
			acc = hwy.MulScalarAdd(v, t.inv[i][2], acc)
			out[i] = hwy.ShiftRight(acc, t.iq)
		}
		r, g, b = out[0], out[1], out[2]
	}
	r, g, b = hwy.Clamp(r, 0, t.max), hwy.Clamp(g, 0, t.max), hwy.Clamp(b, 0, t.max)
	if t.dec != nil {
		r, g, b = t.lookup(t.dec, r), t.lookup(t.dec, g), t.lookup(t.dec, b)
	}
	return r, g, b
}

// EncodeOne is the scalar form of Encode.
func (t *Transform) EncodeOne(r, g, b int32) (int32, int32, int32) {
	if t.enc == nil {
		return r, g, b
	}
	return t.lookupOne(t.enc, r), t.lookupOne(t.enc, g), t.lookupOne(t.enc, b)
}

func (t *Transform) lookupOne(table []int32, v int32) int32 {
	return table[min(max(v, 0), t.max)]
}

// ForwardOne is the scalar form of Forward.
func (t *Transform) ForwardOne(r, g, b int32) (y, u, v int32) {
	r, g, b = t.EncodeOne(r, g, b)
	y = t.LumaOne(r, g, b)
	u, v = t.ChromaOne(r, g, b)
	return y, u, v
}

// LumaOne is the scalar form of Luma.
func (t *Transform) LumaOne(r, g, b int32) int32 {
	switch t.kind {
	case KindRCT:
		return (r+2*g+b)>>2 + t.yoff
	case KindYCgCoR:
		y, _, _ := t.liftOne(r, g, b)
		return y + t.yoff
	}
	return t.rowOne(0, r, g, b, t.yoff)
}

// ChromaOne is the scalar form of Chroma.
func (t *Transform) ChromaOne(r, g, b int32) (u, v int32) {
	switch t.kind {
	case KindRCT:
		return b - g + t.bias, r - g + t.bias
	case KindYCgCoR:
		_, cg, co := t.liftOne(r, g, b)
		return cg + t.bias, co + t.bias
	}
	return t.rowOne(1, r, g, b, t.bias), t.rowOne(2, r, g, b, t.bias)
}

func (t *Transform) rowOne(i int, r, g, b, off int32) int32 {
	acc := t.fwd[i][0]*r + t.fwd[i][1]*g + t.fwd[i][2]*b + off<<t.q + int32(1)<<(t.q-1)
	return min(max(acc>>t.q, 0), t.outMax)
}

func (t *Transform) liftOne(r, g, b int32) (y, cg, co int32) {
	if t.orient == BR {
		r, b = b, r
	}
	co = r - b
	tmp := b + co>>1
	cg = g - tmp
	return tmp + cg>>1, cg, co
}

// InverseOne is the scalar form of Inverse.
func (t *Transform) InverseOne(y, u, v int32) (r, g, b int32) {
	y = min(max(y, 0), t.outMax) - t.yoff
	u = min(max(u, 0), t.outMax) - t.bias
	v = min(max(v, 0), t.outMax) - t.bias
	switch t.kind {
	case KindRCT:
		g = y - (u+v)>>2
		r, b = v+g, u+g
	case KindYCgCoR:
		tmp := y - u>>1
		g = u + tmp
		b = tmp - v>>1
		r = b + v
		if t.orient == BR {
			r, b = b, r
		}
	default:
		var out [3]int32
		for i := range out {
			out[i] = (t.inv[i][0]*y + t.inv[i][1]*u + t.inv[i][2]*v + int32(1)<<(t.iq-1)) >> t.iq
		}
		r, g, b = out[0], out[1], out[2]
	}
	clamp := func(x int32) int32 { return min(max(x, 0), t.max) }
	r, g, b = clamp(r), clamp(g), clamp(b)
	if t.dec != nil {
		r, g, b = t.lookupOne(t.dec, r), t.lookupOne(t.dec, g), t.lookupOne(t.dec, b)
	}
	return r, g, b
}
