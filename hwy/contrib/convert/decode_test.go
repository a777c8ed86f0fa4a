package convert

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ajroetker/go-yuv/hwy/contrib/chroma"
	"github.com/ajroetker/go-yuv/hwy/contrib/colorspace"
	"github.com/ajroetker/go-yuv/hwy/contrib/depth"
	"github.com/ajroetker/go-yuv/hwy/contrib/pixel"
	"github.com/google/go-cmp/cmp"
)

// referenceDecode reconstructs RGBA8 pixels one at a time, replicating each
// chroma sample over its block.
func referenceDecode(t *testing.T, src *Planar[uint8], m colorspace.Model) []uint8 {
	t.Helper()
	tr, err := m.Compile(8)
	if err != nil {
		t.Fatal(err)
	}
	w, h := src.Width(), src.Height()
	l := src.Layout()
	uOff, vOff := l.PairOffsets()
	out := newBuffer[uint8](t, w, h, pixel.RGBA8())
	for y := range h {
		for x := range w {
			u, v := tr.ChromaBias(), tr.ChromaBias()
			if l.Subsampling.HasChroma() {
				cx, cy := l.ChromaCoord(x, y)
				if l.Arrangement.SemiPlanar() {
					u, v = int32(src.U().At(cx, cy, uOff)), int32(src.U().At(cx, cy, vOff))
				} else {
					u, v = int32(src.U().At(cx, cy, 0)), int32(src.V().At(cx, cy, 0))
				}
			}
			r, g, b := tr.InverseOne(int32(src.Y().At(x, y, 0)), u, v)
			pixel.SetPixel(out.Surface, out.Row(y), x, 8, r, g, b, 255)
		}
	}
	return out.Data()
}

func TestYUVToRGBMatchesReference(t *testing.T) {
	for _, name := range chroma.Names() {
		l, _ := chroma.Lookup(name)
		for _, w := range testWidths {
			t.Run(fmt.Sprintf("%s/w%d", name, w), func(t *testing.T) {
				h := 5
				src := newPlanar[uint8](t, w, h, l, depth.Depth8)
				for i, img := range src.planes() {
					randomize(img.Data(), 8, int64(100*w+i))
				}
				want := referenceDecode(t, src, bt601TV)
				for _, d := range testDescs() {
					dst := newBuffer[uint8](t, w, h, pixel.RGBA8())
					if err := yuvToRGB(d, src, dst, bt601TV); err != nil {
						t.Fatal(err)
					}
					if diff := cmp.Diff(want, dst.Data()); diff != "" {
						t.Fatalf("%d lanes: pixels mismatch (-want +got):\n%s", d.Lanes(), diff)
					}
				}
			})
		}
	}
}

// maxError returns the largest per-channel difference between two buffers.
func maxError[T uint8 | uint16](a, b []T) int32 {
	var worst int32
	for i := range a {
		worst = max(worst, absDiff(int32(a[i]), int32(b[i])))
	}
	return worst
}

func TestRoundTrip444(t *testing.T) {
	const w, h = 37, 9
	src := newBuffer[uint8](t, w, h, pixel.RGB8())
	randomize(src.Data(), 8, 42)

	tests := []struct {
		name  string
		model colorspace.Model
		spec  depth.Spec
		bound int32
	}{
		{"bt601-pc-8", colorspace.Linear(colorspace.BT601.Coefficients(colorspace.PC)), depth.Depth8, 1},
		{"bt709-pc-8", colorspace.Linear(colorspace.BT709.Coefficients(colorspace.PC)), depth.Depth8, 1},
		// Studio range loses precision at 8 bits; a 10-bit intermediate
		// restores the one-code bound.
		{"bt601-tv-8", colorspace.Linear(colorspace.BT601.Coefficients(colorspace.TV)), depth.Depth8, 2},
		{"bt709-tv-8", colorspace.Linear(colorspace.BT709.Coefficients(colorspace.TV)), depth.Depth8, 2},
		{"bt2020-tv-8", colorspace.Linear(colorspace.BT2020.Coefficients(colorspace.TV)), depth.Depth8, 2},
		{"bt709-tv-10", colorspace.Linear(colorspace.BT709.Coefficients(colorspace.TV)), depth.Depth10, 1},
		{"bt2020-tv-10", colorspace.Linear(colorspace.BT2020.Coefficients(colorspace.TV)), depth.Depth10, 1},
		{"ycgco-pc-8", colorspace.YCgCo(colorspace.PC), depth.Depth8, 1},
		{"ycgco-r", colorspace.YCgCoR(colorspace.PC, colorspace.RB), depth.Spec{Bits: 9, Storage: depth.U16}, 0},
		{"ycgco-r-br", colorspace.YCgCoR(colorspace.TV, colorspace.BR), depth.Spec{Bits: 9, Storage: depth.U16}, 0},
		{"rct", colorspace.RCT(colorspace.PC), depth.Spec{Bits: 9, Storage: depth.U16}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back := newBuffer[uint8](t, w, h, pixel.RGB8())
			var err error
			if tt.spec.Storage == depth.U8 {
				yuv := newPlanar[uint8](t, w, h, chroma.I444, tt.spec)
				if err = RGBToYUV(src, yuv, tt.model); err == nil {
					err = YUVToRGB(yuv, back, tt.model)
				}
			} else {
				yuv := newPlanar[uint16](t, w, h, chroma.I444, tt.spec)
				if err = RGBToYUV(src, yuv, tt.model); err == nil {
					err = YUVToRGB(yuv, back, tt.model)
				}
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := maxError(src.Data(), back.Data()); got > tt.bound {
				t.Errorf("max error %d, want <= %d", got, tt.bound)
			}
		})
	}
}

func TestReversibleRoundTripTwelveBit(t *testing.T) {
	const w, h = 19, 4
	s := pixel.NewSurface(pixel.BGR, depth.Depth12)
	src := newBuffer[uint16](t, w, h, s)
	randomize(src.Data(), 12, 3)
	yuv := newPlanar[uint16](t, w, h, chroma.NV24, depth.Spec{Bits: 13, Storage: depth.U16})
	m := colorspace.YCgCoR(colorspace.TV, colorspace.RB)
	if err := RGBToYUV(src, yuv, m); err != nil {
		t.Fatal(err)
	}
	back := newBuffer[uint16](t, w, h, s)
	if err := YUVToRGB(yuv, back, m); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(src.Data(), back.Data()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestYUVToRGBAlphaAndGray(t *testing.T) {
	const w, h = 18, 3
	gray := newPlanar[uint8](t, w, h, chroma.I400, depth.Depth8)
	randomize(gray.Y().Data(), 8, 9)

	rgba := newBuffer[uint8](t, w, h, pixel.RGBA8())
	if err := YUVToRGB(gray, rgba, bt601TV); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(rgba.Data()); i += 4 {
		px := rgba.Data()[i : i+4]
		if px[3] != 255 {
			t.Fatalf("pixel %d: alpha %d", i/4, px[3])
		}
		if px[0] != px[1] || px[1] != px[2] {
			t.Fatalf("pixel %d: neutral chroma decoded to %v", i/4, px[:3])
		}
	}

	g := newBuffer[uint8](t, w, h, pixel.Gray8())
	if err := YUVToRGB(gray, g, bt601TV); err != nil {
		t.Fatal(err)
	}
	for i, v := range g.Data() {
		if v != rgba.Data()[4*i] {
			t.Fatalf("gray %d = %d, RGBA red %d", i, v, rgba.Data()[4*i])
		}
	}

	color := newPlanar[uint8](t, w, h, chroma.I420, depth.Depth8)
	before := append([]uint8(nil), g.Data()...)
	if err := YUVToRGB(color, g, bt601TV); !errors.Is(err, ErrUnsupported) {
		t.Errorf("I420 to Gray: %v", err)
	}
	if diff := cmp.Diff(before, g.Data()); diff != "" {
		t.Errorf("destination modified:\n%s", diff)
	}

	// AR30 carries 2-bit alpha.
	ar30 := newBuffer[uint32](t, w, h, pixel.AR30Surface())
	if err := YUVToRGB(gray, ar30, bt601TV); err != nil {
		t.Fatal(err)
	}
	for i, word := range ar30.Data() {
		if word>>30 != 3 {
			t.Fatalf("word %d alpha %d", i, word>>30)
		}
	}
}

func TestYUVToRGBErrors(t *testing.T) {
	src := newPlanar[uint8](t, 8, 4, chroma.I420, depth.Depth8)
	if err := YUVToRGB(src, newBuffer[uint8](t, 8, 5, pixel.RGB8()), bt601TV); !errors.Is(err, ErrMismatch) {
		t.Errorf("size: %v", err)
	}
	if err := YUVToRGB[uint8, uint8](nil, newBuffer[uint8](t, 8, 4, pixel.RGB8()), bt601TV); err == nil {
		t.Error("nil source accepted")
	}
	bad := newBuffer[uint8](t, 8, 4, pixel.RGB8())
	bad.Surface.Bits = 12
	if err := YUVToRGB(src, bad, bt601TV); !errors.Is(err, pixel.ErrSurface) {
		t.Errorf("12-bit u8 surface: %v", err)
	}
}
