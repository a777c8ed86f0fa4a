package convert

import (
	"fmt"

	"github.com/ajroetker/go-yuv/hwy"
	"github.com/ajroetker/go-yuv/hwy/contrib/chroma"
	"github.com/ajroetker/go-yuv/hwy/contrib/depth"
	"github.com/ajroetker/go-yuv/hwy/contrib/image"
)

// Planar is a YUV image made of caller-owned plane views. Semi-planar
// layouts keep interleaved chroma pairs in U and leave V nil; 4:0:0 has
// neither.
type Planar[T hwy.Lanes] struct {
	y, u, v *image.Image[T]
	layout  chroma.Layout
	spec    depth.Spec
}

// NewPlanar checks the planes against layout l and sample spec s and wraps
// them. Chroma planes must have exactly the layout's chroma size.
func NewPlanar[T hwy.Lanes](y, u, v *image.Image[T], l chroma.Layout, s depth.Spec) (*Planar[T], error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Storage == depth.U32 {
		return nil, fmt.Errorf("%w: packed storage for YUV planes", ErrUnsupported)
	}
	if err := depth.CheckStorage[T](s.Storage); err != nil {
		return nil, err
	}
	if y == nil {
		return nil, fmt.Errorf("%w: luma plane", image.ErrNilBuffer)
	}
	if y.Channels() != 1 {
		return nil, fmt.Errorf("%w: luma plane has %d channels", chroma.ErrLayout, y.Channels())
	}
	cw, ch := l.ChromaSize(y.Width(), y.Height())
	check := func(name string, p *image.Image[T], want bool) error {
		switch {
		case !want && p != nil:
			return fmt.Errorf("%w: %v has no %s plane", chroma.ErrLayout, l, name)
		case want && p == nil:
			return fmt.Errorf("%w: %v needs a %s plane", image.ErrNilBuffer, l, name)
		case !want:
			return nil
		}
		if p.Width() != cw || p.Height() != ch || p.Channels() != l.ChromaChannels() {
			return fmt.Errorf("%w: %s plane %dx%dx%d, want %dx%dx%d", chroma.ErrLayout,
				name, p.Width(), p.Height(), p.Channels(), cw, ch, l.ChromaChannels())
		}
		return nil
	}
	hasChroma := l.Subsampling.HasChroma()
	if err := check("U", u, hasChroma); err != nil {
		return nil, err
	}
	if err := check("V", v, hasChroma && !l.Arrangement.SemiPlanar()); err != nil {
		return nil, err
	}
	return &Planar[T]{y: y, u: u, v: v, layout: l, spec: s}, nil
}

// Width returns the luma width.
func (p *Planar[T]) Width() int { return p.y.Width() }

// Height returns the luma height.
func (p *Planar[T]) Height() int { return p.y.Height() }

// Y returns the luma plane.
func (p *Planar[T]) Y() *image.Image[T] { return p.y }

// U returns the U plane, or the interleaved chroma plane of a semi-planar
// layout.
func (p *Planar[T]) U() *image.Image[T] { return p.u }

// V returns the V plane; nil for semi-planar and 4:0:0 layouts.
func (p *Planar[T]) V() *image.Image[T] { return p.v }

// Layout returns the plane layout.
func (p *Planar[T]) Layout() chroma.Layout { return p.layout }

// Spec returns the sample depth and storage.
func (p *Planar[T]) Spec() depth.Spec { return p.spec }

// planes lists the non-nil planes.
func (p *Planar[T]) planes() []*image.Image[T] {
	out := []*image.Image[T]{p.y}
	if p.u != nil {
		out = append(out, p.u)
	}
	if p.v != nil {
		out = append(out, p.v)
	}
	return out
}

// chromaRows returns the rows holding U and V for chroma row cy, and the
// element offset and step of each within its row.
func (p *Planar[T]) chromaRows(cy int) (u, v []T, uOff, vOff, step int) {
	if p.layout.Arrangement.SemiPlanar() {
		row := p.u.Row(cy)
		uOff, vOff = p.layout.PairOffsets()
		return row, row, uOff, vOff, 2
	}
	return p.u.Row(cy), p.v.Row(cy), 0, 0, 1
}
