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

import (
	"math"
	"math/bits"
	"unsafe"
)

// Zero returns a vector with all lanes set to zero.
func Zero[T Lanes](d Desc) Vec[T] {
	return Vec[T]{n: d.Lanes()}
}

// Set returns a vector with all lanes set to value.
func Set[T Lanes](d Desc, value T) Vec[T] {
	v := Vec[T]{n: d.Lanes()}
	for i := range v.n {
		v.data[i] = value
	}
	return v
}

// Iota returns a vector with lane i set to start+i.
func Iota[T Lanes](d Desc, start T) Vec[T] {
	v := Vec[T]{n: d.Lanes()}
	for i := range v.n {
		v.data[i] = start + T(i)
	}
	return v
}

// Add performs element-wise addition (wrapping for integers).
func Add[T Lanes](a, b Vec[T]) Vec[T] {
	for i := range a.n {
		a.data[i] += b.data[i]
	}
	return a
}

// Sub performs element-wise subtraction (wrapping for integers).
func Sub[T Lanes](a, b Vec[T]) Vec[T] {
	for i := range a.n {
		a.data[i] -= b.data[i]
	}
	return a
}

// Mul performs element-wise multiplication (low half for integers).
func Mul[T Lanes](a, b Vec[T]) Vec[T] {
	for i := range a.n {
		a.data[i] *= b.data[i]
	}
	return a
}

// MulAdd computes a*b + c per lane.
func MulAdd[T Lanes](a, b, c Vec[T]) Vec[T] {
	for i := range a.n {
		a.data[i] = a.data[i]*b.data[i] + c.data[i]
	}
	return a
}

// MulScalarAdd computes a*k + c per lane, the broadcast form of MulAdd used
// for matrix rows.
func MulScalarAdd[T Lanes](a Vec[T], k T, c Vec[T]) Vec[T] {
	for i := range a.n {
		a.data[i] = a.data[i]*k + c.data[i]
	}
	return a
}

// Div performs element-wise division for floating-point lanes.
func Div[T ~float32](a, b Vec[T]) Vec[T] {
	for i := range a.n {
		a.data[i] /= b.data[i]
	}
	return a
}

// ShiftLeft shifts each lane left by s bits.
func ShiftLeft[T Integers](v Vec[T], s int) Vec[T] {
	for i := range v.n {
		v.data[i] <<= s
	}
	return v
}

// ShiftRight shifts each lane right by s bits; arithmetic for int32 lanes.
func ShiftRight[T Integers](v Vec[T], s int) Vec[T] {
	for i := range v.n {
		v.data[i] >>= s
	}
	return v
}

// And performs element-wise bitwise AND.
func And[T Integers](a, b Vec[T]) Vec[T] {
	for i := range a.n {
		a.data[i] &= b.data[i]
	}
	return a
}

// Or performs element-wise bitwise OR.
func Or[T Integers](a, b Vec[T]) Vec[T] {
	for i := range a.n {
		a.data[i] |= b.data[i]
	}
	return a
}

// Min returns the element-wise minimum.
func Min[T Lanes](a, b Vec[T]) Vec[T] {
	for i := range a.n {
		a.data[i] = min(a.data[i], b.data[i])
	}
	return a
}

// Max returns the element-wise maximum.
func Max[T Lanes](a, b Vec[T]) Vec[T] {
	for i := range a.n {
		a.data[i] = max(a.data[i], b.data[i])
	}
	return a
}

// Clamp limits every lane to [lo, hi]. NaN lanes become lo.
func Clamp[T Lanes](v Vec[T], lo, hi T) Vec[T] {
	for i := range v.n {
		x := v.data[i]
		if !(x >= lo) {
			x = lo
		} else if x > hi {
			x = hi
		}
		v.data[i] = x
	}
	return v
}

// DivRound divides non-negative lanes by n, rounding half up.
func DivRound(v Vec[int32], n int32) Vec[int32] {
	if n == 1 {
		return v
	}
	half := n >> 1
	if n&(n-1) == 0 {
		s := bits.TrailingZeros32(uint32(n))
		for i := range v.n {
			v.data[i] = (v.data[i] + half) >> s
		}
		return v
	}
	for i := range v.n {
		v.data[i] = (v.data[i] + half) / n
	}
	return v
}

// PromoteToInt32 converts every lane to int32. Float lanes truncate toward
// zero; use NearestInt to round.
func PromoteToInt32[T Lanes](d Desc, v Vec[T]) Vec[int32] {
	out := Vec[int32]{n: d.Lanes()}
	for i := range out.n {
		out.data[i] = int32(v.data[i])
	}
	return out
}

// DemoteFromInt32 converts int32 lanes to T, saturating to T's range.
func DemoteFromInt32[T Lanes](d Desc, v Vec[int32]) Vec[T] {
	out := Vec[T]{n: d.Lanes()}
	lo, hi := laneBounds[T]()
	for i := range out.n {
		x := int64(v.data[i])
		out.data[i] = T(min(max(x, lo), hi))
	}
	return out
}

// ConvertToFloat32 converts every lane to float32.
func ConvertToFloat32[T Lanes](d Desc, v Vec[T]) Vec[float32] {
	out := Vec[float32]{n: d.Lanes()}
	for i := range out.n {
		out.data[i] = float32(v.data[i])
	}
	return out
}

// NearestInt rounds float lanes to the nearest integer, ties to even, and
// saturates to the int32 range. NaN lanes become zero.
func NearestInt(d Desc, v Vec[float32]) Vec[int32] {
	out := Vec[int32]{n: d.Lanes()}
	for i := range out.n {
		x := math.RoundToEven(float64(v.data[i]))
		switch {
		case x != x:
			out.data[i] = 0
		case x >= math.MaxInt32:
			out.data[i] = math.MaxInt32
		case x <= math.MinInt32:
			out.data[i] = math.MinInt32
		default:
			out.data[i] = int32(x)
		}
	}
	return out
}

func laneBounds[T Lanes]() (lo, hi int64) {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 0, math.MaxUint8
	case uint16, Float16:
		return 0, math.MaxUint16
	case uint32:
		return 0, math.MaxUint32
	case float32:
		return math.MinInt32, math.MaxInt32
	case int32:
		return math.MinInt32, math.MaxInt32
	}
	// Named types outside the sample set fall back to their width.
	switch unsafe.Sizeof(zero) {
	case 1:
		return 0, math.MaxUint8
	case 2:
		return 0, math.MaxUint16
	}
	return 0, math.MaxUint32
}
