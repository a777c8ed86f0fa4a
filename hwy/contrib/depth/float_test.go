package depth

import (
	"math"
	"testing"

	"github.com/ajroetker/go-yuv/hwy"
	"github.com/google/go-cmp/cmp"
)

func TestFloat32RoundTrip(t *testing.T) {
	for _, bits := range []int{8, 10, 12, 16} {
		n := int(MaxCode(bits)) + 1
		src := make([]uint16, n)
		for i := range src {
			src[i] = uint16(i)
		}
		f := make([]float32, n)
		back := make([]uint16, n)
		if err := ToFloat32(src, f, bits); err != nil {
			t.Fatal(err)
		}
		if f[n-1] != 1 || f[0] != 0 {
			t.Errorf("bits=%d: ends map to %v and %v", bits, f[0], f[n-1])
		}
		if err := FromFloat32(f, back, bits); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(src, back); diff != "" {
			t.Errorf("bits=%d round trip mismatch (-want +got):\n%s", bits, diff)
		}
	}
}

func TestFloat16RoundTrip(t *testing.T) {
	// Half floats hold 11 significant bits, enough for every 8- and 10-bit code.
	for _, bits := range []int{8, 10} {
		n := int(MaxCode(bits)) + 1
		src := make([]uint16, n)
		for i := range src {
			src[i] = uint16(i)
		}
		h := make([]hwy.Float16, n)
		back := make([]uint16, n)
		if err := ToFloat16(src, h, bits); err != nil {
			t.Fatal(err)
		}
		if h[n-1] != hwy.Float16One {
			t.Errorf("bits=%d: max maps to 0x%04X, want 1.0", bits, uint16(h[n-1]))
		}
		if err := FromFloat16(h, back, bits); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(src, back); diff != "" {
			t.Errorf("bits=%d round trip mismatch (-want +got):\n%s", bits, diff)
		}
	}

	src8 := []uint8{0, 128, 255}
	h := make([]hwy.Float16, 3)
	if err := ToFloat16(src8, h, 8); err != nil {
		t.Fatal(err)
	}
	back := make([]uint8, 3)
	if err := FromFloat16(h, back, 8); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(src8, back); diff != "" {
		t.Errorf("u8 round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromFloatClampsAndRounds(t *testing.T) {
	nan := float32(math.NaN())
	in := []float32{-0.5, nan, 2, 1, 0.5, 127.5 / 255, 0.001}
	want := []uint8{0, 0, 255, 255, 128, 128, 0}
	for _, width := range []int{len(in), 17} {
		src := make([]float32, width)
		copy(src, in)
		dst := make([]uint8, width)
		if err := FromFloat32(src, dst, 8); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, dst[:len(want)]); diff != "" {
			t.Errorf("width %d mismatch (-want +got):\n%s", width, diff)
		}
	}
}

func TestWorkConversions(t *testing.T) {
	d := hwy.NewDesc(4)

	u8 := hwy.Load(d, []uint8{0, 1, 128, 255})
	got := ToWork(u8, Depth8, 10)
	if diff := cmp.Diff([]int32{0, 4, 514, 1023}, got.Data()); diff != "" {
		t.Errorf("u8 -> 10 mismatch (-want +got):\n%s", diff)
	}
	back := FromWork[uint8](got, Depth8, 10)
	if diff := cmp.Diff(u8.Data(), back.Data()); diff != "" {
		t.Errorf("10 -> u8 mismatch (-want +got):\n%s", diff)
	}

	f := hwy.Load(d, []float32{0, 0.25, 1, -1})
	got = ToWork(f, Float, 8)
	if diff := cmp.Diff([]int32{0, 64, 255, 0}, got.Data()); diff != "" {
		t.Errorf("f32 -> 8 mismatch (-want +got):\n%s", diff)
	}

	h := FromWork[hwy.Float16](hwy.Load(d, []int32{0, 1023, 2000, -3}), Half, 10)
	want := []hwy.Float16{0, hwy.Float16One, hwy.Float16One, 0}
	if diff := cmp.Diff(want, h.Data()); diff != "" {
		t.Errorf("10 -> f16 mismatch (-want +got):\n%s", diff)
	}

	for _, v := range []int32{0, 1, 511, 1023} {
		vec := FromWork[uint16](hwy.Set(d, v), Depth16, 10).Get(0)
		if one := FromWorkOne[uint16](v, Depth16, 10); one != vec {
			t.Errorf("FromWorkOne(%d) = %d, vector %d", v, one, vec)
		}
		if back := ToWorkOne(vec, Depth16, 10); back != v {
			t.Errorf("ToWorkOne(%d) = %d, want %d", vec, back, v)
		}
		hv := FromWorkOne[hwy.Float16](v, Half, 10)
		if back := ToWorkOne(hv, Half, 10); back != v {
			t.Errorf("half round trip of %d = %d", v, back)
		}
	}
}
