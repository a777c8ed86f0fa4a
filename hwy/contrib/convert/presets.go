package convert

import (
	"sort"
	"strings"

	"github.com/ajroetker/go-yuv/hwy/contrib/chroma"
	"github.com/ajroetker/go-yuv/hwy/contrib/colorspace"
	"github.com/ajroetker/go-yuv/hwy/contrib/depth"
	"github.com/samber/lo"
)

// Preset bundles the plane layout, sample spec and model of a common YUV
// format.
type Preset struct {
	Name   string
	Layout chroma.Layout
	Spec   depth.Spec
	Model  colorspace.Model
}

func tv(m colorspace.Matrix) colorspace.Model {
	return colorspace.Linear(m.Coefficients(colorspace.TV))
}

func pc(m colorspace.Matrix) colorspace.Model {
	return colorspace.Linear(m.Coefficients(colorspace.PC))
}

var presets = lo.KeyBy([]Preset{
	{"i420-bt601", chroma.I420, depth.Depth8, tv(colorspace.BT601)},
	{"i420-bt709", chroma.I420, depth.Depth8, tv(colorspace.BT709)},
	{"i422-bt601", chroma.I422, depth.Depth8, tv(colorspace.BT601)},
	{"i422-bt709", chroma.I422, depth.Depth8, tv(colorspace.BT709)},
	{"i444-bt709", chroma.I444, depth.Depth8, tv(colorspace.BT709)},
	{"i411-bt601", chroma.I411, depth.Depth8, tv(colorspace.BT601)},
	{"i410-bt601", chroma.I410, depth.Depth8, tv(colorspace.BT601)},
	{"i400-bt709", chroma.I400, depth.Depth8, tv(colorspace.BT709)},
	// JPEG/JFIF: full range BT.601.
	{"j420-bt601", chroma.I420, depth.Depth8, pc(colorspace.BT601)},
	{"j444-bt601", chroma.I444, depth.Depth8, pc(colorspace.BT601)},
	{"nv12-bt601", chroma.NV12, depth.Depth8, tv(colorspace.BT601)},
	{"nv12-bt709", chroma.NV12, depth.Depth8, tv(colorspace.BT709)},
	{"nv21-bt601", chroma.NV21, depth.Depth8, tv(colorspace.BT601)},
	{"nv16-bt709", chroma.NV16, depth.Depth8, tv(colorspace.BT709)},
	{"nv24-bt709", chroma.NV24, depth.Depth8, tv(colorspace.BT709)},
	{"i010-bt709", chroma.I420, depth.Depth10, tv(colorspace.BT709)},
	{"i010-bt2020", chroma.I420, depth.Depth10, tv(colorspace.BT2020)},
	{"i210-bt2020", chroma.I422, depth.Depth10, tv(colorspace.BT2020)},
	{"i444-10bit-bt2020", chroma.I444, depth.Depth10, tv(colorspace.BT2020)},
	{"i012-bt2020", chroma.I420, depth.Depth12, tv(colorspace.BT2020)},
	{"i010-bt2100-pq", chroma.I420, depth.Depth10,
		colorspace.LinearTransfer(colorspace.BT2020.Coefficients(colorspace.TV), colorspace.TransferPQ)},
	{"i010-bt2100-hlg", chroma.I420, depth.Depth10,
		colorspace.LinearTransfer(colorspace.BT2020.Coefficients(colorspace.TV), colorspace.TransferHLG)},
	{"i420-smpte240", chroma.I420, depth.Depth8, tv(colorspace.SMPTE240)},
	{"i420-fcc", chroma.I420, depth.Depth8, tv(colorspace.FCC)},
	{"i444-ycgco", chroma.I444, depth.Depth8, colorspace.YCgCo(colorspace.PC)},
	// Reversible models take 8-bit RGB to 9-bit YUV.
	{"i444-ycgco-r", chroma.I444, depth.Spec{Bits: 9, Storage: depth.U16}, colorspace.YCgCoR(colorspace.PC, colorspace.RB)},
	{"i444-rct", chroma.I444, depth.Spec{Bits: 9, Storage: depth.U16}, colorspace.RCT(colorspace.PC)},
}, func(p Preset) string { return p.Name })

// Lookup returns the named preset, ignoring case.
func Lookup(name string) (Preset, bool) {
	p, ok := presets[strings.ToLower(name)]
	return p, ok
}

// PresetNames lists every preset name in sorted order.
func PresetNames() []string {
	names := lo.Keys(presets)
	sort.Strings(names)
	return names
}
