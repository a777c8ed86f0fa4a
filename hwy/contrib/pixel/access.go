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

package pixel

import (
	"github.com/ajroetker/go-yuv/hwy"
	"github.com/ajroetker/go-yuv/hwy/contrib/depth"
)

// LoadRGBA deinterleaves d.Lanes() pixels starting at pixel x of row and
// returns their channels as bits-deep codes. Surfaces without alpha yield
// opaque alpha. Pixels past the end of row load as zero.
func LoadRGBA[T hwy.Lanes](d hwy.Desc, s Surface, row []T, x, bits int) (r, g, b, a hwy.Vec[int32]) {
	if s.Order.Packed() {
		return loadPacked(d, s.Order, any(row).([]uint32)[x:], bits)
	}
	spec := s.Spec()
	var c [4]hwy.Vec[T]
	switch s.Channels() {
	case 1:
		c[0] = hwy.Load(d, row[x:])
	case 3:
		c[0], c[1], c[2] = hwy.LoadInterleaved3(d, row[3*x:])
	default:
		c[0], c[1], c[2], c[3] = hwy.LoadInterleaved4(d, row[4*x:])
	}
	r = depth.ToWork(c[s.Index(R)], spec, bits)
	if s.IsGray() {
		g, b = r, r
	} else {
		g = depth.ToWork(c[s.Index(G)], spec, bits)
		b = depth.ToWork(c[s.Index(B)], spec, bits)
	}
	if i := s.Index(A); i >= 0 {
		a = depth.ToWork(c[i], spec, bits)
	} else {
		a = hwy.Set(d, depth.MaxCode(bits))
	}
	return r, g, b, a
}

// StoreRGBA interleaves bits-deep codes into d.Lanes() pixels starting at
// pixel x of row. Lanes past the end of row are dropped. Gray surfaces store
// the R lanes.
func StoreRGBA[T hwy.Lanes](d hwy.Desc, s Surface, row []T, x, bits int, r, g, b, a hwy.Vec[int32]) {
	if s.Order.Packed() {
		storePacked(d, s.Order, any(row).([]uint32)[x:], bits, r, g, b, a)
		return
	}
	spec := s.Spec()
	var c [4]hwy.Vec[T]
	c[s.Index(R)] = depth.FromWork[T](r, spec, bits)
	if !s.IsGray() {
		c[s.Index(G)] = depth.FromWork[T](g, spec, bits)
		c[s.Index(B)] = depth.FromWork[T](b, spec, bits)
	}
	if i := s.Index(A); i >= 0 {
		c[i] = depth.FromWork[T](a, spec, bits)
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

func loadPacked(d hwy.Desc, o Order, words []uint32, bits int) (r, g, b, a hwy.Vec[int32]) {
	w := hwy.Load(d, words)
	field := func(c Channel, width, mask uint32) hwy.Vec[int32] {
		v := hwy.And(hwy.ShiftRight(w, o.Shift(c)), hwy.Set(d, mask))
		return depth.RescaleVec(hwy.PromoteToInt32(d, v), int(width), bits)
	}
	return field(R, 10, 0x3FF), field(G, 10, 0x3FF), field(B, 10, 0x3FF), field(A, 2, 0x3)
}

func storePacked(d hwy.Desc, o Order, words []uint32, bits int, r, g, b, a hwy.Vec[int32]) {
	field := func(v hwy.Vec[int32], c Channel, width int) hwy.Vec[uint32] {
		u := hwy.DemoteFromInt32[uint32](d, depth.RescaleVec(v, bits, width))
		return hwy.ShiftLeft(u, o.Shift(c))
	}
	w := hwy.Or(hwy.Or(field(r, R, 10), field(g, G, 10)), hwy.Or(field(b, B, 10), field(a, A, 2)))
	hwy.Store(w, words)
}

// PixelAt is the scalar form of LoadRGBA for a single pixel, used for row
// tails.
func PixelAt[T hwy.Lanes](s Surface, row []T, x, bits int) (r, g, b, a int32) {
	if s.Order.Packed() {
		w := any(row).([]uint32)[x]
		field := func(c Channel, width int, mask uint32) int32 {
			return depth.Rescale(int32(w>>s.Order.Shift(c)&mask), width, bits)
		}
		return field(R, 10, 0x3FF), field(G, 10, 0x3FF), field(B, 10, 0x3FF), field(A, 2, 0x3)
	}
	spec := s.Spec()
	px := row[x*s.Channels():]
	r = depth.ToWorkOne(px[s.Index(R)], spec, bits)
	g = depth.ToWorkOne(px[s.Index(G)], spec, bits)
	b = depth.ToWorkOne(px[s.Index(B)], spec, bits)
	a = depth.MaxCode(bits)
	if i := s.Index(A); i >= 0 {
		a = depth.ToWorkOne(px[i], spec, bits)
	}
	return r, g, b, a
}

// SetPixel is the scalar form of StoreRGBA for a single pixel.
func SetPixel[T hwy.Lanes](s Surface, row []T, x, bits int, r, g, b, a int32) {
	if s.Order.Packed() {
		field := func(v int32, c Channel, width int) uint32 {
			return uint32(depth.Rescale(v, bits, width)) << s.Order.Shift(c)
		}
		any(row).([]uint32)[x] = field(r, R, 10) | field(g, G, 10) | field(b, B, 10) | field(a, A, 2)
		return
	}
	spec := s.Spec()
	px := row[x*s.Channels():]
	if s.IsGray() {
		px[0] = depth.FromWorkOne[T](r, spec, bits)
		return
	}
	px[s.Index(R)] = depth.FromWorkOne[T](r, spec, bits)
	px[s.Index(G)] = depth.FromWorkOne[T](g, spec, bits)
	px[s.Index(B)] = depth.FromWorkOne[T](b, spec, bits)
	if i := s.Index(A); i >= 0 {
		px[i] = depth.FromWorkOne[T](a, spec, bits)
	}
}
