package convert

import (
	"fmt"
	stdimage "image"

	"github.com/ajroetker/go-yuv/hwy/contrib/chroma"
	"github.com/ajroetker/go-yuv/hwy/contrib/depth"
	"github.com/ajroetker/go-yuv/hwy/contrib/image"
	"github.com/ajroetker/go-yuv/hwy/contrib/pixel"
)

var ycbcrLayouts = map[stdimage.YCbCrSubsampleRatio]chroma.Layout{
	stdimage.YCbCrSubsampleRatio444: chroma.I444,
	stdimage.YCbCrSubsampleRatio422: chroma.I422,
	stdimage.YCbCrSubsampleRatio420: chroma.I420,
	stdimage.YCbCrSubsampleRatio411: chroma.I411,
}

// PlanarFromYCbCr wraps the planes of a standard library YCbCr image without
// copying. The standard library decodes JPEG to full range BT.601, the
// "j420-bt601" family of presets. The standard library's 4:1:0 subsamples
// 4x2 and 4:4:0 subsamples 1x2; neither has a layout here. The image
// rectangle must start on a chroma block boundary.
func PlanarFromYCbCr(m *stdimage.YCbCr) (*Planar[uint8], error) {
	if m == nil {
		return nil, image.ErrNilBuffer
	}
	l, ok := ycbcrLayouts[m.SubsampleRatio]
	if !ok {
		return nil, fmt.Errorf("%w: subsample ratio %v", ErrUnsupported, m.SubsampleRatio)
	}
	r := m.Rect
	fh, fv := l.Subsampling.Factors()
	if r.Min.X%fh != 0 || r.Min.Y%fv != 0 {
		return nil, fmt.Errorf("%w: rectangle %v is not aligned to %v blocks", ErrUnsupported, r, l)
	}
	w, h := r.Dx(), r.Dy()
	y, err := image.New(m.Y[m.YOffset(r.Min.X, r.Min.Y):], w, h, 1, m.YStride)
	if err != nil {
		return nil, err
	}
	cw, ch := l.ChromaSize(w, h)
	off := m.COffset(r.Min.X, r.Min.Y)
	u, err := image.New(m.Cb[off:], cw, ch, 1, m.CStride)
	if err != nil {
		return nil, err
	}
	v, err := image.New(m.Cr[off:], cw, ch, 1, m.CStride)
	if err != nil {
		return nil, err
	}
	return NewPlanar(y, u, v, l, depth.Depth8)
}

// BufferFromRGBA wraps a standard library RGBA image as an RGBA8 buffer
// without copying. image.RGBA is alpha-premultiplied; the conversions here
// treat alpha as an independent channel.
func BufferFromRGBA(m *stdimage.RGBA) (*pixel.Buffer[uint8], error) {
	if m == nil {
		return nil, image.ErrNilBuffer
	}
	r := m.Rect
	return pixel.NewBuffer(m.Pix[m.PixOffset(r.Min.X, r.Min.Y):], r.Dx(), r.Dy(), m.Stride, pixel.RGBA8())
}
