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

package image

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/ajroetker/go-yuv/hwy"
)

var (
	// ErrNilBuffer is returned when a view is built over a nil slice.
	ErrNilBuffer = errors.New("image: nil buffer")
	// ErrDimensions is returned for non-positive or mismatched dimensions.
	ErrDimensions = errors.New("image: invalid dimensions")
	// ErrStride is returned when a row stride cannot hold one row.
	ErrStride = errors.New("image: stride too small")
	// ErrShortBuffer is returned when the slice cannot hold every row.
	ErrShortBuffer = errors.New("image: buffer too short")
	// ErrOverlap is returned when source and destination share memory.
	ErrOverlap = errors.New("image: buffers overlap")
)

// Image is a 2D view over caller-owned interleaved samples.
//
// A row holds width*channels samples; consecutive rows start stride samples
// apart, so padding between rows is allowed. The view never allocates or
// frees the underlying slice.
type Image[T hwy.Lanes] struct {
	data     []T
	width    int
	height   int
	channels int
	stride   int // elements per row (includes padding)
}

// New wraps data as a width x height image of channels samples per pixel
// with rows stride elements apart.
func New[T hwy.Lanes](data []T, width, height, channels, stride int) (*Image[T], error) {
	if data == nil {
		return nil, ErrNilBuffer
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	if channels < 1 || channels > 4 {
		return nil, fmt.Errorf("%w: %d channels", ErrDimensions, channels)
	}
	rowLen := width * channels
	if stride < rowLen {
		return nil, fmt.Errorf("%w: stride %d < %d", ErrStride, stride, rowLen)
	}
	if need := (height-1)*stride + rowLen; len(data) < need {
		return nil, fmt.Errorf("%w: have %d elements, need %d", ErrShortBuffer, len(data), need)
	}
	return &Image[T]{data: data, width: width, height: height, channels: channels, stride: stride}, nil
}

// NewPacked wraps data with rows packed back to back.
func NewPacked[T hwy.Lanes](data []T, width, height, channels int) (*Image[T], error) {
	return New(data, width, height, channels, width*channels)
}

// Width returns the image width in pixels.
func (img *Image[T]) Width() int {
	return img.width
}

// Height returns the image height in pixels.
func (img *Image[T]) Height() int {
	return img.height
}

// Channels returns the number of samples per pixel.
func (img *Image[T]) Channels() int {
	return img.channels
}

// Stride returns the number of elements per row (including padding).
func (img *Image[T]) Stride() int {
	return img.stride
}

// Data returns the underlying slice.
func (img *Image[T]) Data() []T {
	return img.data
}

// Row returns the width*channels samples of row y, excluding padding.
func (img *Image[T]) Row(y int) []T {
	if y < 0 || y >= img.height {
		return nil
	}
	start := y * img.stride
	return img.data[start : start+img.width*img.channels : start+img.width*img.channels]
}

// At returns channel c of the pixel at (x, y).
func (img *Image[T]) At(x, y, c int) T {
	if !img.inBounds(x, y, c) {
		var zero T
		return zero
	}
	return img.data[y*img.stride+x*img.channels+c]
}

// Set sets channel c of the pixel at (x, y).
func (img *Image[T]) Set(x, y, c int, value T) {
	if !img.inBounds(x, y, c) {
		return
	}
	img.data[y*img.stride+x*img.channels+c] = value
}

func (img *Image[T]) inBounds(x, y, c int) bool {
	return x >= 0 && x < img.width && y >= 0 && y < img.height && c >= 0 && c < img.channels
}

// Fill sets every sample inside the view to value; padding is untouched.
func (img *Image[T]) Fill(value T) {
	for y := range img.height {
		row := img.Row(y)
		for i := range row {
			row[i] = value
		}
	}
}

// SameSize returns true if both images have the same dimensions.
func SameSize[T, U hwy.Lanes](a *Image[T], b *Image[U]) bool {
	return a.width == b.width && a.height == b.height
}

// Rect defines a rectangular region within an image.
type Rect struct {
	X0, Y0 int // Top-left corner (inclusive)
	X1, Y1 int // Bottom-right corner (exclusive)
}

// Width returns the rectangle width.
func (r Rect) Width() int {
	return r.X1 - r.X0
}

// Height returns the rectangle height.
func (r Rect) Height() int {
	return r.Y1 - r.Y0
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Intersect returns the intersection of two rectangles.
func (r Rect) Intersect(other Rect) Rect {
	return Rect{
		X0: max(r.X0, other.X0),
		Y0: max(r.Y0, other.Y0),
		X1: min(r.X1, other.X1),
		Y1: min(r.Y1, other.Y1),
	}
}

// Bounds returns the bounding rectangle of the image.
func (img *Image[T]) Bounds() Rect {
	return Rect{X0: 0, Y0: 0, X1: img.width, Y1: img.height}
}

// Sub returns a view of the region r, sharing memory with img.
func (img *Image[T]) Sub(r Rect) (*Image[T], error) {
	if r.IsEmpty() || r.Intersect(img.Bounds()) != r {
		return nil, fmt.Errorf("%w: %+v outside %+v", ErrDimensions, r, img.Bounds())
	}
	start := r.Y0*img.stride + r.X0*img.channels
	return New(img.data[start:], r.Width(), r.Height(), img.channels, img.stride)
}

// span returns the address range [lo, hi) the view can touch.
func (img *Image[T]) span() (lo, hi uintptr) {
	var zero T
	size := unsafe.Sizeof(zero)
	n := (img.height-1)*img.stride + img.width*img.channels
	lo = uintptr(unsafe.Pointer(unsafe.SliceData(img.data)))
	return lo, lo + uintptr(n)*size
}

// Overlaps reports whether the memory reachable through a and b intersects.
// Padding between rows counts as reachable.
func Overlaps[T, U hwy.Lanes](a *Image[T], b *Image[U]) bool {
	if a == nil || b == nil {
		return false
	}
	alo, ahi := a.span()
	blo, bhi := b.span()
	return alo < bhi && blo < ahi
}
