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

// Package pixel describes interleaved RGB-family pixel surfaces and moves
// pixels between them and 32-bit working lanes.
//
// Channel orders name the memory order of samples: RGBA stores R first and
// ARGB stores A first. AR30 and AB30 pack one pixel per 32-bit word:
//
//	AR30: B bits 0-9, G bits 10-19, R bits 20-29, A bits 30-31
//	AB30: R bits 0-9, G bits 10-19, B bits 20-29, A bits 30-31
//
// Loading a surface without alpha yields opaque alpha at the working depth;
// storing to such a surface drops alpha without touching RGB.
package pixel

import (
	"errors"
	"fmt"

	"github.com/ajroetker/go-yuv/hwy/contrib/depth"
)

// ErrSurface is returned for an invalid surface description.
var ErrSurface = errors.New("pixel: invalid surface")

// Channel identifies a color channel.
type Channel int

const (
	R Channel = iota
	G
	B
	A
)

// Order is the memory order of the channels of one pixel.
type Order int

const (
	RGB Order = iota
	BGR
	RGBA
	BGRA
	ARGB
	ABGR
	Gray
	AR30
	AB30
)

var orderNames = [...]string{"RGB", "BGR", "RGBA", "BGRA", "ARGB", "ABGR", "Gray", "AR30", "AB30"}

func (o Order) String() string {
	if o < 0 || int(o) >= len(orderNames) {
		return fmt.Sprintf("Order(%d)", int(o))
	}
	return orderNames[o]
}

// positions[o][c] is the sample index of channel c, -1 when absent. Packed
// orders hold bit offsets instead.
var positions = [...][4]int{
	RGB:  {0, 1, 2, -1},
	BGR:  {2, 1, 0, -1},
	RGBA: {0, 1, 2, 3},
	BGRA: {2, 1, 0, 3},
	ARGB: {1, 2, 3, 0},
	ABGR: {3, 2, 1, 0},
	Gray: {0, 0, 0, -1},
	AR30: {20, 10, 0, 30},
	AB30: {0, 10, 20, 30},
}

func (o Order) valid() bool {
	return o >= RGB && o <= AB30
}

// Packed reports whether a pixel is one 10-10-10-2 word.
func (o Order) Packed() bool {
	return o == AR30 || o == AB30
}

// HasAlpha reports whether the order carries an alpha channel.
func (o Order) HasAlpha() bool {
	return o.valid() && positions[o][A] >= 0
}

// Channels returns the number of stored elements per pixel.
func (o Order) Channels() int {
	switch o {
	case RGB, BGR:
		return 3
	case Gray, AR30, AB30:
		return 1
	}
	return 4
}

// Index returns the element index of channel c within a pixel, or -1 if the
// channel is absent. All color channels of Gray map to element 0. Packed
// orders return -1; use Shift.
func (o Order) Index(c Channel) int {
	if !o.valid() || o.Packed() {
		return -1
	}
	return positions[o][c]
}

// Shift returns the bit offset of channel c inside a packed word.
func (o Order) Shift(c Channel) int {
	if !o.Packed() {
		return -1
	}
	return positions[o][c]
}

// Surface describes an interleaved pixel format: channel order, storage
// element type and significant bits per color sample.
type Surface struct {
	Order   Order
	Storage depth.Storage
	Bits    int
}

// NewSurface builds a surface from an order and a sample spec.
func NewSurface(o Order, s depth.Spec) Surface {
	return Surface{Order: o, Storage: s.Storage, Bits: s.Bits}
}

// Common surfaces.
func RGB8() Surface  { return NewSurface(RGB, depth.Depth8) }
func BGR8() Surface  { return NewSurface(BGR, depth.Depth8) }
func RGBA8() Surface { return NewSurface(RGBA, depth.Depth8) }
func BGRA8() Surface { return NewSurface(BGRA, depth.Depth8) }
func ARGB8() Surface { return NewSurface(ARGB, depth.Depth8) }
func ABGR8() Surface { return NewSurface(ABGR, depth.Depth8) }
func Gray8() Surface { return NewSurface(Gray, depth.Depth8) }

// AR30Surface returns the packed 10-10-10-2 surface with B in the low bits.
func AR30Surface() Surface { return Surface{Order: AR30, Storage: depth.U32, Bits: 10} }

// AB30Surface returns the packed 10-10-10-2 surface with R in the low bits.
func AB30Surface() Surface { return Surface{Order: AB30, Storage: depth.U32, Bits: 10} }

// Spec returns the per-sample depth and storage.
func (s Surface) Spec() depth.Spec {
	return depth.Spec{Bits: s.Bits, Storage: s.Storage}
}

// Validate checks the order, storage and depth together.
func (s Surface) Validate() error {
	if !s.Order.valid() {
		return fmt.Errorf("%w: %s", ErrSurface, s.Order)
	}
	if s.Order.Packed() != (s.Storage == depth.U32) {
		return fmt.Errorf("%w: %s with %s storage", ErrSurface, s.Order, s.Storage)
	}
	if err := s.Spec().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrSurface, err)
	}
	return nil
}

// Channels returns the number of stored elements per pixel.
func (s Surface) Channels() int {
	return s.Order.Channels()
}

// BytesPerPixel returns the storage size of one pixel.
func (s Surface) BytesPerPixel() int {
	return s.Channels() * s.Storage.Size()
}

// ColorBits returns the significant bits of each color sample.
func (s Surface) ColorBits() int {
	return s.Bits
}

// AlphaBits returns the significant bits of alpha, 0 without alpha.
func (s Surface) AlphaBits() int {
	switch {
	case !s.Order.HasAlpha():
		return 0
	case s.Order.Packed():
		return 2
	}
	return s.Bits
}

// HasAlpha reports whether the surface stores alpha.
func (s Surface) HasAlpha() bool {
	return s.Order.HasAlpha()
}

// IsGray reports whether the surface stores a single luminance channel.
func (s Surface) IsGray() bool {
	return s.Order == Gray
}

// Index returns the element index of channel c, see Order.Index.
func (s Surface) Index(c Channel) int {
	return s.Order.Index(c)
}

func (s Surface) String() string {
	return fmt.Sprintf("%s/%s", s.Order, s.Spec())
}
