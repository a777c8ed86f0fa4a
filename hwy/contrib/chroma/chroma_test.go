package chroma

import (
	"errors"
	"testing"

	"github.com/ajroetker/go-yuv/hwy/contrib/image"
	"github.com/google/go-cmp/cmp"
)

func TestChromaSize(t *testing.T) {
	tests := []struct {
		s      Subsampling
		w, h   int
		cw, ch int
	}{
		{S444, 7, 5, 7, 5},
		{S422, 7, 5, 4, 5},
		{S420, 7, 5, 4, 3},
		{S411, 7, 5, 2, 5},
		{S410, 7, 5, 2, 2},
		{S400, 7, 5, 0, 0},
		{S420, 1, 1, 1, 1},
		{S420, 640, 480, 320, 240},
		{S411, 2, 1, 1, 1},
	}
	for _, tt := range tests {
		l := Layout{Subsampling: tt.s}
		if cw, ch := l.ChromaSize(tt.w, tt.h); cw != tt.cw || ch != tt.ch {
			t.Errorf("%v %dx%d: chroma %dx%d, want %dx%d", tt.s, tt.w, tt.h, cw, ch, tt.cw, tt.ch)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		l    Layout
		want error
	}{
		{I420, nil},
		{NV21, nil},
		{I400, nil},
		{Layout{S400, SemiPlanarUV}, ErrLayout},
		{Layout{Subsampling(9), ThreePlane}, ErrLayout},
		{Layout{S420, Arrangement(7)}, ErrLayout},
	}
	for _, tt := range tests {
		if err := tt.l.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%v.Validate() = %v, want %v", tt.l, err, tt.want)
		}
	}
}

func TestPlaneGeometry(t *testing.T) {
	if I420.PlaneCount() != 3 || NV12.PlaneCount() != 2 || I400.PlaneCount() != 1 {
		t.Error("PlaneCount")
	}
	if I420.ChromaChannels() != 1 || NV61.ChromaChannels() != 2 {
		t.Error("ChromaChannels")
	}
	if u, v := NV12.PairOffsets(); u != 0 || v != 1 {
		t.Errorf("NV12 pair = %d,%d", u, v)
	}
	if u, v := NV21.PairOffsets(); u != 1 || v != 0 {
		t.Errorf("NV21 pair = %d,%d", u, v)
	}
}

func TestChromaCoordAndBlock(t *testing.T) {
	if cx, cy := I420.ChromaCoord(5, 3); cx != 2 || cy != 1 {
		t.Errorf("I420.ChromaCoord(5,3) = %d,%d", cx, cy)
	}
	if cx, cy := I411.ChromaCoord(5, 3); cx != 1 || cy != 3 {
		t.Errorf("I411.ChromaCoord(5,3) = %d,%d", cx, cy)
	}

	// The last chroma column of a 7x5 4:2:0 image covers a single luma column.
	got := I420.Block(3, 2, 7, 5)
	if diff := cmp.Diff(image.Rect{X0: 6, Y0: 4, X1: 7, Y1: 5}, got); diff != "" {
		t.Errorf("Block mismatch (-want +got):\n%s", diff)
	}
	if got := I410.Block(0, 0, 3, 2); got.Width() != 3 || got.Height() != 2 {
		t.Errorf("I410 clipped block = %+v", got)
	}

	// Every luma pixel belongs to exactly the block of its chroma coordinate.
	for _, name := range Names() {
		l, _ := Lookup(name)
		if !l.Subsampling.HasChroma() {
			continue
		}
		const w, h = 9, 7
		cw, ch := l.ChromaSize(w, h)
		covered := 0
		for cy := range ch {
			for cx := range cw {
				b := l.Block(cx, cy, w, h)
				if b.IsEmpty() {
					t.Fatalf("%s: empty block at %d,%d", name, cx, cy)
				}
				for y := b.Y0; y < b.Y1; y++ {
					for x := b.X0; x < b.X1; x++ {
						if gx, gy := l.ChromaCoord(x, y); gx != cx || gy != cy {
							t.Fatalf("%s: pixel %d,%d maps to %d,%d, block %d,%d", name, x, y, gx, gy, cx, cy)
						}
						covered++
					}
				}
			}
		}
		if covered != w*h {
			t.Errorf("%s: blocks cover %d pixels, want %d", name, covered, w*h)
		}
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		l, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) failed", name)
		}
		if err := l.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		if l.String() != name {
			t.Errorf("String() = %q, want %q", l.String(), name)
		}
	}
	if l, ok := Lookup("nv12"); !ok || l != NV12 {
		t.Error("lookup is case-insensitive")
	}
	if _, ok := Lookup("yuyv"); ok {
		t.Error("packed 4:2:2 is not a plane layout")
	}
	if got := (Layout{S411, SemiPlanarUV}).String(); got != "4:1:1/uv" {
		t.Errorf("unnamed String() = %q", got)
	}
}
