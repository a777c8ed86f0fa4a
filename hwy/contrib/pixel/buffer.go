package pixel

import (
	"fmt"

	"github.com/ajroetker/go-yuv/hwy"
	"github.com/ajroetker/go-yuv/hwy/contrib/depth"
	"github.com/ajroetker/go-yuv/hwy/contrib/image"
)

// Buffer is a caller-owned interleaved image in a known Surface.
type Buffer[T hwy.Lanes] struct {
	*image.Image[T]
	Surface Surface
}

// NewBuffer wraps data as a width x height image in surface s, with rows
// stride elements apart. The element type T must match s.Storage.
func NewBuffer[T hwy.Lanes](data []T, width, height, stride int, s Surface) (*Buffer[T], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := depth.CheckStorage[T](s.Storage); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurface, err)
	}
	img, err := image.New(data, width, height, s.Channels(), stride)
	if err != nil {
		return nil, err
	}
	return &Buffer[T]{Image: img, Surface: s}, nil
}

// NewPackedBuffer wraps data with rows packed back to back.
func NewPackedBuffer[T hwy.Lanes](data []T, width, height int, s Surface) (*Buffer[T], error) {
	return NewBuffer(data, width, height, width*s.Channels(), s)
}
