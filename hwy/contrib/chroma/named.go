package chroma

import "strings"

// Named layouts.
var (
	I444 = Layout{S444, ThreePlane}
	I422 = Layout{S422, ThreePlane}
	I420 = Layout{S420, ThreePlane}
	I411 = Layout{S411, ThreePlane}
	I410 = Layout{S410, ThreePlane}
	I400 = Layout{S400, ThreePlane}
	NV12 = Layout{S420, SemiPlanarUV}
	NV21 = Layout{S420, SemiPlanarVU}
	NV16 = Layout{S422, SemiPlanarUV}
	NV61 = Layout{S422, SemiPlanarVU}
	NV24 = Layout{S444, SemiPlanarUV}
	NV42 = Layout{S444, SemiPlanarVU}
)

var layoutNames = []string{"I444", "I422", "I420", "I411", "I410", "I400", "NV12", "NV21", "NV16", "NV61", "NV24", "NV42"}

var named = map[string]Layout{
	"I444": I444, "I422": I422, "I420": I420, "I411": I411, "I410": I410, "I400": I400,
	"NV12": NV12, "NV21": NV21, "NV16": NV16, "NV61": NV61, "NV24": NV24, "NV42": NV42,
}

// Lookup returns the named layout, ignoring case.
func Lookup(name string) (Layout, bool) {
	l, ok := named[strings.ToUpper(name)]
	return l, ok
}

// Names lists the named layouts.
func Names() []string {
	return append([]string(nil), layoutNames...)
}
