package convert

import (
	"fmt"

	"github.com/ajroetker/go-yuv/hwy"
	"github.com/ajroetker/go-yuv/hwy/contrib/colorspace"
	"github.com/ajroetker/go-yuv/hwy/contrib/depth"
	"github.com/ajroetker/go-yuv/hwy/contrib/image"
	"github.com/ajroetker/go-yuv/hwy/contrib/pixel"
)

// checkBuffer validates a pixel buffer that may have been assembled by hand.
func checkBuffer[T hwy.Lanes](b *pixel.Buffer[T]) error {
	if b == nil || b.Image == nil {
		return fmt.Errorf("%w: pixel buffer", image.ErrNilBuffer)
	}
	if err := b.Surface.Validate(); err != nil {
		return err
	}
	if b.Channels() != b.Surface.Channels() {
		return fmt.Errorf("%w: %d channels for %v", pixel.ErrSurface, b.Channels(), b.Surface)
	}
	return depth.CheckStorage[T](b.Surface.Storage)
}

func checkPlanar[T hwy.Lanes](p *Planar[T]) error {
	if p == nil || p.y == nil {
		return fmt.Errorf("%w: planar image", image.ErrNilBuffer)
	}
	return nil
}

// compile validates the pairing of model m with RGB samples rgb and YUV
// samples yuv and compiles it at the working depth: the YUV depth for linear
// models, the RGB depth for reversible ones.
func compile(m colorspace.Model, rgb, yuv depth.Spec) (*colorspace.Transform, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	bits := yuv.Bits
	if m.Reversible() {
		switch {
		case yuv.Storage != depth.U16:
			return nil, fmt.Errorf("%w: %v needs u16 YUV, got %v", ErrUnsupported, m, yuv)
		case rgb.Storage.IsFloat():
			return nil, fmt.Errorf("%w: %v with float RGB", ErrUnsupported, m)
		case rgb.Bits >= depth.MaxBits:
			return nil, fmt.Errorf("%w: %v with %d-bit RGB", ErrUnsupported, m, rgb.Bits)
		case yuv.Bits != m.OutputBits(rgb.Bits):
			return nil, fmt.Errorf("%w: %v maps %d-bit RGB to %d-bit YUV, got %d", ErrUnsupported,
				m, rgb.Bits, m.OutputBits(rgb.Bits), yuv.Bits)
		}
		bits = rgb.Bits
	}
	return m.Compile(bits)
}
