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

package colorspace

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/ajroetker/go-yuv/hwy"
	"github.com/ajroetker/go-yuv/hwy/contrib/depth"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/f64"
)

var matrices = []Matrix{BT601, BT709, BT2020, SMPTE240, FCC}

func linearModels(r Range) []Model {
	var out []Model
	for _, m := range matrices {
		out = append(out, Linear(m.Coefficients(r)))
	}
	return append(out, YCgCo(r))
}

func mustCompile(t *testing.T, m Model, bits int) *Transform {
	t.Helper()
	tr, err := m.Compile(bits)
	if err != nil {
		t.Fatalf("%v.Compile(%d): %v", m, bits, err)
	}
	return tr
}

func absDiff(a, b int32) int32 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestFixedPointRowSums(t *testing.T) {
	for _, r := range []Range{TV, PC} {
		for _, m := range linearModels(r) {
			for _, bits := range []int{8, 10, 12, 16} {
				tr := mustCompile(t, m, bits)
				if tr.q < minQ || tr.q > maxQ || tr.iq < minQ || tr.iq > maxQ {
					t.Errorf("%v@%d: q=%d iq=%d", m, bits, tr.q, tr.iq)
				}
				ys := float64(tr.max)
				if r == TV {
					ys = float64(int32(219) << (bits - 8))
				}
				want := round(ys / float64(tr.max) * float64(int32(1)<<tr.q))
				if got := tr.fwd[0][0] + tr.fwd[0][1] + tr.fwd[0][2]; got != want {
					t.Errorf("%v@%d: luma row sums to %d, want %d", m, bits, got, want)
				}
				for i := 1; i < 3; i++ {
					if got := tr.fwd[i][0] + tr.fwd[i][1] + tr.fwd[i][2]; got != 0 {
						t.Errorf("%v@%d: chroma row %d sums to %d", m, bits, i, got)
					}
				}
			}
		}
	}
}

// Gray maps to neutral chroma and black/white to the ends of the luma range.
func TestGrayAxis(t *testing.T) {
	for _, r := range []Range{TV, PC} {
		for _, m := range linearModels(r) {
			tr := mustCompile(t, m, 8)
			for v := range int32(256) {
				_, u, cv := tr.ForwardOne(v, v, v)
				if u != 128 || cv != 128 {
					t.Fatalf("%v: gray %d has chroma %d,%d", m, v, u, cv)
				}
			}
			lo, _, _ := tr.ForwardOne(0, 0, 0)
			hi, _, _ := tr.ForwardOne(255, 255, 255)
			wantLo, wantHi := int32(0), int32(255)
			if r == TV {
				wantLo, wantHi = 16, 235
			}
			if lo != wantLo || hi != wantHi {
				t.Errorf("%v: luma range [%d, %d], want [%d, %d]", m, lo, hi, wantLo, wantHi)
			}
		}
	}
}

// 8-bit RGB through a 4:4:4 linear model comes back within one code. Full
// range holds that at 8-bit YUV; limited range needs a 10-bit YUV
// intermediate, since 8-bit TV luma has only 220 levels.
func TestLinearRoundTrip(t *testing.T) {
	tests := []struct {
		r    Range
		bits int
	}{
		{PC, 8},
		{TV, 10},
		{PC, 10},
	}
	for _, tt := range tests {
		for i, m := range linearModels(tt.r) {
			step := int32(1)
			if testing.Short() || i > 1 {
				step = 3
			}
			t.Run(fmt.Sprintf("%v@%d", m, tt.bits), func(t *testing.T) {
				tr := mustCompile(t, m, tt.bits)
				var worst int32
				for r := int32(0); r < 256; r += step {
					for g := int32(0); g < 256; g += step {
						for b := int32(0); b < 256; b += step {
							y, u, v := tr.ForwardOne(depth.Rescale(r, 8, tt.bits), depth.Rescale(g, 8, tt.bits), depth.Rescale(b, 8, tt.bits))
							r2, g2, b2 := tr.InverseOne(y, u, v)
							r2, g2, b2 = depth.Rescale(r2, tt.bits, 8), depth.Rescale(g2, tt.bits, 8), depth.Rescale(b2, tt.bits, 8)
							worst = max(worst, absDiff(r, r2), absDiff(g, g2), absDiff(b, b2))
						}
					}
				}
				if worst > 1 {
					t.Errorf("worst channel error %d, want <= 1", worst)
				}
			})
		}
	}
}

func reversibleModels() []Model {
	return []Model{RCT(PC), RCT(TV), YCgCoR(PC, RB), YCgCoR(TV, RB), YCgCoR(PC, BR), YCgCoR(TV, BR)}
}

func TestReversibleExact(t *testing.T) {
	for _, m := range reversibleModels() {
		t.Run(m.String(), func(t *testing.T) {
			tr := mustCompile(t, m, 8)
			step := int32(1)
			if testing.Short() {
				step = 5
			}
			if tr.OutputBits() != 9 || tr.ChromaBias() != 256 {
				t.Fatalf("output bits %d bias %d", tr.OutputBits(), tr.ChromaBias())
			}
			for r := int32(0); r < 256; r += step {
				for g := int32(0); g < 256; g += step {
					for b := int32(0); b < 256; b += step {
						y, u, v := tr.ForwardOne(r, g, b)
						if y < 0 || u < 0 || v < 0 || y > 511 || u > 511 || v > 511 {
							t.Fatalf("(%d,%d,%d) -> (%d,%d,%d) outside 9 bits", r, g, b, y, u, v)
						}
						r2, g2, b2 := tr.InverseOne(y, u, v)
						if r2 != r || g2 != g || b2 != b {
							t.Fatalf("(%d,%d,%d) came back as (%d,%d,%d)", r, g, b, r2, g2, b2)
						}
					}
				}
			}
		})
	}

	rng := rand.New(rand.NewSource(1))
	for _, bits := range []int{10, 12, 15} {
		for _, m := range reversibleModels() {
			tr := mustCompile(t, m, bits)
			maxCode := depth.MaxCode(bits)
			for range 20000 {
				r, g, b := rng.Int31n(maxCode+1), rng.Int31n(maxCode+1), rng.Int31n(maxCode+1)
				r2, g2, b2 := tr.InverseOne(tr.ForwardOne(r, g, b))
				if r2 != r || g2 != g || b2 != b {
					t.Fatalf("%v@%d: (%d,%d,%d) came back as (%d,%d,%d)", m, bits, r, g, b, r2, g2, b2)
				}
			}
		}
	}
}

func TestReversibleFormulas(t *testing.T) {
	rct := mustCompile(t, RCT(PC), 8)
	y, u, v := rct.ForwardOne(200, 100, 50)
	if y != (200+200+50)>>2 || u != 50-100+256 || v != 200-100+256 {
		t.Errorf("RCT = %d %d %d", y, u, v)
	}
	tv := mustCompile(t, RCT(TV), 10)
	if y, _, _ := tv.ForwardOne(0, 0, 0); y != 16<<3 {
		t.Errorf("TV luma offset at 10 bits = %d, want %d", y, 16<<3)
	}

	rb := mustCompile(t, YCgCoR(PC, RB), 8)
	br := mustCompile(t, YCgCoR(PC, BR), 8)
	// Co = R - B = 150, t = 50 + 75 = 125, Cg = 100 - 125 = -25, Y = 125 - 13.
	y, u, v = rb.ForwardOne(200, 100, 50)
	if diff := cmp.Diff([]int32{112, -25 + 256, 150 + 256}, []int32{y, u, v}); diff != "" {
		t.Errorf("YCgCo-R RB mismatch (-want +got):\n%s", diff)
	}
	// BR sees the same pixel with R and B exchanged.
	y2, u2, v2 := br.ForwardOne(50, 100, 200)
	if y2 != y || u2 != u || v2 != v {
		t.Errorf("BR orientation = %d %d %d, want %d %d %d", y2, u2, v2, y, u, v)
	}
}

// The vector methods agree with the scalar ones lane for lane, for every
// lane count a target can select.
func TestVectorMatchesScalar(t *testing.T) {
	models := append(linearModels(TV), reversibleModels()...)
	models = append(models,
		LinearTransfer(BT709.Coefficients(PC), TransferSRGB),
		LinearTransfer(BT2020.Coefficients(TV), TransferPQ),
		LinearTransfer(BT2020.Coefficients(TV), TransferHLG),
	)
	rng := rand.New(rand.NewSource(2))
	for _, m := range models {
		for _, bits := range []int{8, 10, 12, 15} {
			tr := mustCompile(t, m, bits)
			for _, lanes := range []int{1, 4, 8, 16} {
				d := hwy.NewDesc(lanes)
				for range 50 {
					in := make([]int32, 3*lanes)
					for i := range in {
						// Include out-of-range codes; both paths clamp alike.
						in[i] = rng.Int31n(depth.MaxCode(tr.OutputBits())+64) - 32
					}
					r, g, b := hwy.Load(d, in), hwy.Load(d, in[lanes:]), hwy.Load(d, in[2*lanes:])
					y, u, v := tr.Forward(hwy.Clamp(r, 0, tr.max), hwy.Clamp(g, 0, tr.max), hwy.Clamp(b, 0, tr.max))
					ir, ig, ib := tr.Inverse(r, g, b)
					for i := range lanes {
						cr, cg, cb := min(max(r.Get(i), 0), tr.max), min(max(g.Get(i), 0), tr.max), min(max(b.Get(i), 0), tr.max)
						sy, su, sv := tr.ForwardOne(cr, cg, cb)
						if sy != y.Get(i) || su != u.Get(i) || sv != v.Get(i) {
							t.Fatalf("%v@%d lanes=%d forward lane %d: vector (%d,%d,%d) scalar (%d,%d,%d)",
								m, bits, lanes, i, y.Get(i), u.Get(i), v.Get(i), sy, su, sv)
						}
						sr, sg, sb := tr.InverseOne(r.Get(i), g.Get(i), b.Get(i))
						if sr != ir.Get(i) || sg != ig.Get(i) || sb != ib.Get(i) {
							t.Fatalf("%v@%d lanes=%d inverse lane %d: vector (%d,%d,%d) scalar (%d,%d,%d)",
								m, bits, lanes, i, ir.Get(i), ig.Get(i), ib.Get(i), sr, sg, sb)
						}
					}
				}
			}
		}
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		m    Model
		bits int
	}{
		{"kr+kb>=1", Linear(Coefficients{Kr: 0.6, Kb: 0.4}), 8},
		{"zero kb", Linear(Coefficients{Kr: 0.3}), 8},
		{"unknown matrix", Linear(Matrix(42).Coefficients(PC)), 8},
		{"range", Linear(Coefficients{Kr: 0.3, Kb: 0.1, Range: Range(5)}), 8},
		{"singular", Custom(f64.Mat3{1, 1, 1, 1, 1, 1, 0, 0, 1}, PC), 8},
		{"transfer", LinearTransfer(BT709.Coefficients(TV), Transfer(99)), 8},
		{"7 bits", Linear(BT601.Coefficients(TV)), 7},
		{"17 bits", Linear(BT601.Coefficients(TV)), 17},
		{"reversible 16 bits", RCT(PC), 16},
		{"orientation", YCgCoR(PC, Orientation(3)), 8},
		{"huge custom", Custom(f64.Mat3{1e6, 0, 0, 0, 1, 0, 0, 0, 1}, PC), 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.m.Compile(tt.bits); !errors.Is(err, ErrModel) {
				t.Errorf("Compile(%d) = %v, want ErrModel", tt.bits, err)
			}
		})
	}
}

func TestCustomMatchesLinear(t *testing.T) {
	lin := Linear(BT709.Coefficients(TV))
	custom := Custom(lin.Matrix(), TV)
	a := mustCompile(t, lin, 10)
	b := mustCompile(t, custom, 10)
	if a.fwd != b.fwd || a.inv != b.inv {
		t.Error("a custom matrix equal to BT.709 compiles to the same coefficients")
	}
}

// Neutral chroma decodes to gray for every family.
func TestNeutralChromaDecodesToGray(t *testing.T) {
	for _, m := range append(linearModels(PC), reversibleModels()...) {
		tr := mustCompile(t, m, 8)
		for _, y := range []int32{0, 50, 128, 255} {
			r, g, b := tr.InverseOne(y+tr.LumaOffset(), tr.ChromaBias(), tr.ChromaBias())
			if r != g || g != b {
				t.Errorf("%v: neutral chroma with Y=%d gives (%d,%d,%d)", m, y, r, g, b)
			}
		}
	}
}
