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

package hwy

import "math"

// Float16 represents an IEEE 754 half-precision (binary16) floating-point
// number, the storage type of half-float pixel buffers.
//
// Format: Sign (1 bit) | Exponent (5 bits) | Mantissa (10 bits)
//
//	S | EEEEE | MMMMMMMMMM
type Float16 uint16

// Float16 constants for special values.
const (
	Float16Zero     Float16 = 0x0000
	Float16One      Float16 = 0x3C00
	Float16MaxValue Float16 = 0x7BFF // 65504
	Float16Inf      Float16 = 0x7C00
	Float16NegInf   Float16 = 0xFC00
	Float16NaN      Float16 = 0x7E00
)

// Float16ToFloat32 converts a single Float16 to float32.
// Handles all special cases: zero, denormals, infinity, NaN.
func Float16ToFloat32(h Float16) float32 {
	sign := uint32(h>>15) << 31
	exp := uint32(h>>10) & 0x1F
	mant := uint32(h) & 0x3FF

	switch {
	case exp == 0 && mant == 0:
		return math.Float32frombits(sign)
	case exp == 0:
		// Denormal: renormalize into float32's wider exponent range.
		e := uint32(127 - 15 + 1)
		for mant&0x400 == 0 {
			mant <<= 1
			e--
		}
		return math.Float32frombits(sign | e<<23 | (mant&0x3FF)<<13)
	case exp == 31 && mant == 0:
		return math.Float32frombits(sign | 0x7F800000)
	case exp == 31:
		return math.Float32frombits(sign | 0x7FC00000 | mant<<13)
	}
	return math.Float32frombits(sign | (exp+127-15)<<23 | mant<<13)
}

// Float32ToFloat16 converts a float32 to Float16 with round-to-nearest-even.
// Overflow becomes infinity and underflow becomes (signed) zero.
func Float32ToFloat16(f float32) Float16 {
	b := math.Float32bits(f)
	sign := uint16(b>>16) & 0x8000
	exp := int32(b>>23&0xFF) - 127 + 15
	mant := b & 0x7FFFFF

	if b&0x7F800000 == 0x7F800000 {
		if mant != 0 {
			return Float16(sign | 0x7E00 | uint16(mant>>13))
		}
		return Float16(sign | 0x7C00)
	}
	if exp >= 31 {
		return Float16(sign | 0x7C00)
	}
	if exp <= 0 {
		if exp < -10 {
			return Float16(sign)
		}
		// Denormal: shift the full significand, keep a sticky bit for rounding.
		m := mant | 0x800000
		shift := uint32(14 - exp)
		half := uint32(1) << (shift - 1)
		rest := m & (half<<1 - 1)
		out := m >> shift
		if rest > half || (rest == half && out&1 != 0) {
			out++
		}
		return Float16(sign | uint16(out))
	}

	out := uint32(exp)<<10 | mant>>13
	rest := mant & 0x1FFF
	if rest > 0x1000 || (rest == 0x1000 && out&1 != 0) {
		// Carry may ripple into the exponent, which also yields Inf correctly.
		out++
	}
	return Float16(sign | uint16(out))
}

// IsNaN returns true if h is a NaN value.
func (h Float16) IsNaN() bool {
	return h&0x7C00 == 0x7C00 && h&0x3FF != 0
}

// IsInf returns true if h is positive or negative infinity.
func (h Float16) IsInf() bool {
	return h&0x7FFF == 0x7C00
}

// Float32 converts this Float16 to float32.
func (h Float16) Float32() float32 {
	return Float16ToFloat32(h)
}

// NewFloat16 creates a Float16 from a float32 value.
func NewFloat16(f float32) Float16 {
	return Float32ToFloat16(f)
}

// F16ToF32 widens half-float lanes to float32.
func F16ToF32(d Desc, v Vec[Float16]) Vec[float32] {
	out := Vec[float32]{n: d.Lanes()}
	for i := range out.n {
		out.data[i] = Float16ToFloat32(v.data[i])
	}
	return out
}

// F32ToF16 narrows float32 lanes to half-float with round-to-nearest-even.
func F32ToF16(d Desc, v Vec[float32]) Vec[Float16] {
	out := Vec[Float16]{n: d.Lanes()}
	for i := range out.n {
		out.data[i] = Float32ToFloat16(v.data[i])
	}
	return out
}

// PromoteFloat converts lanes to float32, decoding Float16 lanes as half
// floats rather than as their bit patterns.
func PromoteFloat[T Lanes](d Desc, v Vec[T]) Vec[float32] {
	if h, ok := any(v).(Vec[Float16]); ok {
		return F16ToF32(d, h)
	}
	return ConvertToFloat32(d, v)
}

// DemoteFloat converts float32 lanes to T, which must be float32 or Float16.
func DemoteFloat[T Lanes](d Desc, v Vec[float32]) Vec[T] {
	var zero T
	if _, ok := any(zero).(Float16); ok {
		return any(F32ToF16(d, v)).(Vec[T])
	}
	return any(v).(Vec[T])
}
