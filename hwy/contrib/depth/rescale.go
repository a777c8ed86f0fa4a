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

package depth

import (
	"fmt"

	"github.com/ajroetker/go-yuv/hwy"
)

// Rescale maps code v from a from-bit depth to a to-bit depth. The input is
// first clamped to [0, 2^from-1]. Depths between 1 and 16 bits are accepted,
// which covers the 2-bit alpha of packed pixels.
func Rescale(v int32, from, to int) int32 {
	v = min(max(v, 0), MaxCode(from))
	switch {
	case to > from:
		return widen(v, from, to)
	case to < from:
		return narrow(v, from, to)
	}
	return v
}

// widen replicates the from-bit pattern of v down into the new low bits.
func widen(v int32, from, to int) int32 {
	s := to - from
	out := v << s
	k := s - from
	for ; k > 0; k -= from {
		out |= v << k
	}
	return out | v>>(-k)
}

// narrow rounds v to the nearest to-bit code; v must already be in range.
func narrow(v int32, from, to int) int32 {
	s := from - to
	return min((v-v>>to+int32(1)<<(s-1))>>s, MaxCode(to))
}

// RescaleVec is the vector form of Rescale.
func RescaleVec(v hwy.Vec[int32], from, to int) hwy.Vec[int32] {
	v = hwy.Clamp(v, 0, MaxCode(from))
	switch {
	case to > from:
		s := to - from
		out := hwy.ShiftLeft(v, s)
		k := s - from
		for ; k > 0; k -= from {
			out = hwy.Or(out, hwy.ShiftLeft(v, k))
		}
		return hwy.Or(out, hwy.ShiftRight(v, -k))
	case to < from:
		s := from - to
		r := hwy.Sub(v, hwy.ShiftRight(v, to))
		r = hwy.Add(r, hwy.Set(descOf(v), int32(1)<<(s-1)))
		return hwy.Min(hwy.ShiftRight(r, s), hwy.Set(descOf(v), MaxCode(to)))
	}
	return v
}

func descOf[T hwy.Lanes](v hwy.Vec[T]) hwy.Desc {
	return hwy.NewDesc(v.NumLanes())
}

func desc() hwy.Desc {
	return hwy.CurrentTarget().Desc()
}

func checkLen(src, dst int) error {
	if dst < src {
		return fmt.Errorf("%w: %d < %d", ErrLength, dst, src)
	}
	return nil
}

// mapSamples runs vec over full vectors of src and one over the remainder.
func mapSamples[S, D hwy.UnsignedInts](src []S, dst []D, vec func(hwy.Vec[int32]) hwy.Vec[int32], one func(int32) int32) error {
	if err := checkLen(len(src), len(dst)); err != nil {
		return err
	}
	d := desc()
	lanes := d.Lanes()
	i := 0
	for ; i+lanes <= len(src); i += lanes {
		v := vec(hwy.PromoteToInt32(d, hwy.Load(d, src[i:])))
		hwy.Store(hwy.DemoteFromInt32[D](d, v), dst[i:])
	}
	for ; i < len(src); i++ {
		dst[i] = D(one(int32(src[i])))
	}
	return nil
}

// Widen8To10 widens 8-bit samples to 10 bits in 16-bit words.
func Widen8To10(src []uint8, dst []uint16) error {
	return mapSamples(src, dst,
		func(v hwy.Vec[int32]) hwy.Vec[int32] { return hwy.Or(hwy.ShiftLeft(v, 2), hwy.ShiftRight(v, 6)) },
		func(v int32) int32 { return v<<2 | v>>6 })
}

// Widen8To12 widens 8-bit samples to 12 bits in 16-bit words.
func Widen8To12(src []uint8, dst []uint16) error {
	return mapSamples(src, dst,
		func(v hwy.Vec[int32]) hwy.Vec[int32] { return hwy.Or(hwy.ShiftLeft(v, 4), hwy.ShiftRight(v, 4)) },
		func(v int32) int32 { return v<<4 | v>>4 })
}

// Widen8To16 widens 8-bit samples to 16 bits (v * 257).
func Widen8To16(src []uint8, dst []uint16) error {
	return mapSamples(src, dst,
		func(v hwy.Vec[int32]) hwy.Vec[int32] { return hwy.Or(hwy.ShiftLeft(v, 8), v) },
		func(v int32) int32 { return v<<8 | v })
}

// Widen10To16 widens 10-bit samples to 16 bits.
func Widen10To16(src, dst []uint16) error {
	return mapSamples(src, dst,
		func(v hwy.Vec[int32]) hwy.Vec[int32] {
			v = hwy.Min(v, hwy.Set(descOf(v), int32(1023)))
			return hwy.Or(hwy.ShiftLeft(v, 6), hwy.ShiftRight(v, 4))
		},
		func(v int32) int32 {
			v = min(v, 1023)
			return v<<6 | v>>4
		})
}

// Narrow10To8 narrows 10-bit samples to 8 bits with rounding:
// 0->0, 1->0, 512->128, 1022->255, 1023->255.
func Narrow10To8(src []uint16, dst []uint8) error {
	return mapSamples(src, dst,
		func(v hwy.Vec[int32]) hwy.Vec[int32] { return narrowVecFixed(v, 10, 8) },
		func(v int32) int32 { return narrow(min(v, 1023), 10, 8) })
}

// Narrow12To8 narrows 12-bit samples to 8 bits with rounding.
func Narrow12To8(src []uint16, dst []uint8) error {
	return mapSamples(src, dst,
		func(v hwy.Vec[int32]) hwy.Vec[int32] { return narrowVecFixed(v, 12, 8) },
		func(v int32) int32 { return narrow(min(v, 4095), 12, 8) })
}

// Narrow16To8 narrows 16-bit samples to 8 bits with rounding.
func Narrow16To8(src []uint16, dst []uint8) error {
	return mapSamples(src, dst,
		func(v hwy.Vec[int32]) hwy.Vec[int32] { return narrowVecFixed(v, 16, 8) },
		func(v int32) int32 { return narrow(v, 16, 8) })
}

// Narrow16To10 narrows 16-bit samples to 10 bits with rounding.
func Narrow16To10(src, dst []uint16) error {
	return mapSamples(src, dst,
		func(v hwy.Vec[int32]) hwy.Vec[int32] { return narrowVecFixed(v, 16, 10) },
		func(v int32) int32 { return narrow(v, 16, 10) })
}

// narrowVecFixed is inlined into the fixed variants with constant depths.
func narrowVecFixed(v hwy.Vec[int32], from, to int) hwy.Vec[int32] {
	d := descOf(v)
	v = hwy.Min(v, hwy.Set(d, MaxCode(from)))
	r := hwy.Add(hwy.Sub(v, hwy.ShiftRight(v, to)), hwy.Set(d, int32(1)<<(from-to-1)))
	return hwy.Min(hwy.ShiftRight(r, from-to), hwy.Set(d, MaxCode(to)))
}

// Widen widens 8-bit samples to a run-time depth in [8, 16].
func Widen(src []uint8, dst []uint16, bits int) error {
	if err := checkBits(bits); err != nil {
		return err
	}
	return mapSamples(src, dst,
		func(v hwy.Vec[int32]) hwy.Vec[int32] { return RescaleVec(v, 8, bits) },
		func(v int32) int32 { return Rescale(v, 8, bits) })
}

// Narrow narrows samples of a run-time depth in [8, 16] to 8 bits.
func Narrow(src []uint16, dst []uint8, bits int) error {
	if err := checkBits(bits); err != nil {
		return err
	}
	return mapSamples(src, dst,
		func(v hwy.Vec[int32]) hwy.Vec[int32] { return RescaleVec(v, bits, 8) },
		func(v int32) int32 { return Rescale(v, bits, 8) })
}

// Rescale16 converts 16-bit-word samples between two run-time depths in
// [8, 16].
func Rescale16(src, dst []uint16, from, to int) error {
	if err := checkBits(from); err != nil {
		return err
	}
	if err := checkBits(to); err != nil {
		return err
	}
	return mapSamples(src, dst,
		func(v hwy.Vec[int32]) hwy.Vec[int32] { return RescaleVec(v, from, to) },
		func(v int32) int32 { return Rescale(v, from, to) })
}
