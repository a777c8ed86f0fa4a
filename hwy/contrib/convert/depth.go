package convert

import (
	"fmt"

	"github.com/ajroetker/go-yuv/hwy"
	"github.com/ajroetker/go-yuv/hwy/contrib/depth"
)

// ConvertDepth copies src into dst plane by plane, changing bit depth or
// storage. Both images must share size and layout.
func ConvertDepth[S, D hwy.Lanes](src *Planar[S], dst *Planar[D]) error {
	return convertDepth(target(), src, dst)
}

func convertDepth[S, D hwy.Lanes](d hwy.Desc, src *Planar[S], dst *Planar[D]) error {
	if err := checkPlanar(src); err != nil {
		return err
	}
	if err := checkPlanar(dst); err != nil {
		return err
	}
	if err := checkSize(src.y, dst.y); err != nil {
		return err
	}
	if src.layout != dst.layout {
		return fmt.Errorf("%w: layout %v to %v", ErrMismatch, src.layout, dst.layout)
	}
	if err := checkOverlap(src.planes(), dst.planes()); err != nil {
		return err
	}
	ss, ds := src.spec, dst.spec
	bits := max(ss.Bits, ds.Bits)
	switch {
	case ss.Storage.IsFloat() && ds.Storage.IsFloat():
		bits = 0
	case ss.Storage.IsFloat():
		bits = ds.Bits
	case ds.Storage.IsFloat():
		bits = ss.Bits
	}
	sp, dp := src.planes(), dst.planes()
	for i := range sp {
		for y := range sp[i].Height() {
			s, t := sp[i].Row(y), dp[i].Row(y)
			if bits == 0 {
				floatSamples(d, s, t)
			} else {
				depthSamples(d, s, t, ss, ds, bits)
			}
		}
	}
	return nil
}

func depthSamples[S, D hwy.Lanes](d hwy.Desc, src []S, dst []D, ss, ds depth.Spec, bits int) {
	lanes := d.Lanes()
	i := 0
	for ; i+lanes <= len(src); i += lanes {
		w := depth.ToWork(hwy.Load(d, src[i:]), ss, bits)
		hwy.Store(depth.FromWork[D](w, ds, bits), dst[i:])
	}
	for ; i < len(src); i++ {
		dst[i] = depth.FromWorkOne[D](depth.ToWorkOne(src[i], ss, bits), ds, bits)
	}
}

// floatSamples converts between float storages without quantizing.
func floatSamples[S, D hwy.Lanes](d hwy.Desc, src []S, dst []D) {
	lanes := d.Lanes()
	i := 0
	for ; i+lanes <= len(src); i += lanes {
		hwy.Store(hwy.DemoteFloat[D](d, hwy.PromoteFloat(d, hwy.Load(d, src[i:]))), dst[i:])
	}
	for ; i < len(src); i++ {
		one := hwy.NewDesc(1)
		dst[i] = hwy.DemoteFloat[D](one, hwy.PromoteFloat(one, hwy.Load(one, src[i:]))).Get(0)
	}
}
