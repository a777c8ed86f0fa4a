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

// Package depth converts samples between bit depths and storage types.
//
// Integer samples are widened by bit replication, so the most significant
// bits are preserved and the low bits repeat them instead of reading zero:
//
//	widen(v, 8 -> 10)  = v<<2 | v>>6
//
// and narrowed with rounding and saturation:
//
//	narrow(v, 10 -> 8) = (v - v>>8 + 2) >> 2, clamped to [0, 255]
//
// Narrowing inverts widening exactly. Float samples are normalized so the
// maximum code of the working depth maps to 1.0.
//
// Two API shapes exist for slices: fixed variants such as Widen8To10 with the
// shift baked in, and dynamic variants such as Widen that take the depth at
// run time and validate it.
package depth

import (
	"errors"
	"fmt"

	"github.com/ajroetker/go-yuv/hwy"
)

var (
	// ErrBitDepth is returned for a bit depth the storage cannot carry.
	ErrBitDepth = errors.New("depth: unsupported bit depth")
	// ErrStorage is returned for an unknown storage type or an element type
	// that does not match the declared storage.
	ErrStorage = errors.New("depth: storage mismatch")
	// ErrLength is returned when a destination is shorter than its source.
	ErrLength = errors.New("depth: destination too short")
)

// Storage is the element type samples are stored in.
type Storage int

const (
	// U8 stores one sample per byte.
	U8 Storage = iota
	// U16 stores Bits significant bits in the low end of a 16-bit word.
	U16
	// F16 stores normalized half-float samples.
	F16
	// F32 stores normalized float32 samples.
	F32
	// U32 stores a packed 10-10-10-2 pixel per 32-bit word.
	U32
)

func (s Storage) String() string {
	switch s {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case F16:
		return "f16"
	case F32:
		return "f32"
	case U32:
		return "u32"
	}
	return fmt.Sprintf("Storage(%d)", int(s))
}

// Size returns the element size in bytes.
func (s Storage) Size() int {
	switch s {
	case U8:
		return 1
	case U16, F16:
		return 2
	}
	return 4
}

// IsFloat reports whether samples are stored normalized.
func (s Storage) IsFloat() bool {
	return s == F16 || s == F32
}

// StorageOf returns the storage matching element type T.
func StorageOf[T hwy.Lanes]() (Storage, bool) {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return U8, true
	case uint16:
		return U16, true
	case hwy.Float16:
		return F16, true
	case float32:
		return F32, true
	case uint32:
		return U32, true
	}
	return 0, false
}

// CheckStorage verifies that T is the element type of s.
func CheckStorage[T hwy.Lanes](s Storage) error {
	got, ok := StorageOf[T]()
	if !ok {
		var zero T
		return fmt.Errorf("%w: element type %T", ErrStorage, zero)
	}
	if got != s {
		return fmt.Errorf("%w: %s elements for %s storage", ErrStorage, got, s)
	}
	return nil
}

// Spec is a bit depth together with its storage. For U16 storage the value
// occupies the low Bits bits. For float storage Bits is the integer working
// depth kernels compute at before normalizing.
type Spec struct {
	Bits    int
	Storage Storage
}

// Common specs.
var (
	Depth8  = Spec{Bits: 8, Storage: U8}
	Depth10 = Spec{Bits: 10, Storage: U16}
	Depth12 = Spec{Bits: 12, Storage: U16}
	Depth16 = Spec{Bits: 16, Storage: U16}
	Half    = Spec{Bits: 16, Storage: F16}
	Float   = Spec{Bits: 16, Storage: F32}
)

// Validate checks that Bits fits Storage.
func (s Spec) Validate() error {
	switch s.Storage {
	case U8:
		if s.Bits != 8 {
			return fmt.Errorf("%w: %d bits in u8", ErrBitDepth, s.Bits)
		}
	case U16, F16, F32:
		if err := checkBits(s.Bits); err != nil {
			return err
		}
	case U32:
		if s.Bits != 10 {
			return fmt.Errorf("%w: packed words carry 10-bit color, got %d", ErrBitDepth, s.Bits)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorage, s.Storage)
	}
	return nil
}

// Max returns the largest code at this depth.
func (s Spec) Max() int32 {
	return MaxCode(s.Bits)
}

func (s Spec) String() string {
	return fmt.Sprintf("%s/%d", s.Storage, s.Bits)
}

// MaxCode returns 2^bits - 1.
func MaxCode(bits int) int32 {
	return int32(1)<<bits - 1
}

// MinBits and MaxBits bound every integer working depth.
const (
	MinBits = 8
	MaxBits = 16
)

func checkBits(bits int) error {
	if bits < MinBits || bits > MaxBits {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrBitDepth, bits, MinBits, MaxBits)
	}
	return nil
}
