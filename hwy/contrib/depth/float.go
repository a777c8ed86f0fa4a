package depth

import (
	"math"

	"github.com/ajroetker/go-yuv/hwy"
)

// IntToFloatVec normalizes bits-deep codes so that 2^bits-1 maps to 1.0.
func IntToFloatVec(v hwy.Vec[int32], bits int) hwy.Vec[float32] {
	d := descOf(v)
	f := hwy.ConvertToFloat32(d, v)
	return hwy.Div(f, hwy.Set(d, float32(MaxCode(bits))))
}

// FloatToIntVec scales normalized lanes to bits-deep codes, rounding to
// nearest and clamping to [0, 2^bits-1]. NaN becomes 0.
func FloatToIntVec(v hwy.Vec[float32], bits int) hwy.Vec[int32] {
	d := descOf(v)
	m := MaxCode(bits)
	scaled := hwy.Mul(hwy.Clamp(v, 0, 1), hwy.Set(d, float32(m)))
	return hwy.Clamp(hwy.NearestInt(d, scaled), 0, m)
}

// IntToFloat is the scalar form of IntToFloatVec.
func IntToFloat(v int32, bits int) float32 {
	return float32(v) / float32(MaxCode(bits))
}

// FloatToInt is the scalar form of FloatToIntVec.
func FloatToInt(f float32, bits int) int32 {
	if !(f >= 0) {
		return 0
	}
	m := MaxCode(bits)
	if f >= 1 {
		return m
	}
	return int32(math.RoundToEven(float64(f * float32(m))))
}

// Integer is the set of integer sample types with float conversions.
type Integer interface {
	~uint8 | ~uint16
}

func floatMap[S, D hwy.Lanes](src []S, dst []D, bits int, vec func(hwy.Desc, hwy.Vec[S]) hwy.Vec[D], one func(S) D) error {
	if err := checkBits(bits); err != nil {
		return err
	}
	if err := checkLen(len(src), len(dst)); err != nil {
		return err
	}
	d := desc()
	lanes := d.Lanes()
	i := 0
	for ; i+lanes <= len(src); i += lanes {
		hwy.Store(vec(d, hwy.Load(d, src[i:])), dst[i:])
	}
	for ; i < len(src); i++ {
		dst[i] = one(src[i])
	}
	return nil
}

// ToFloat32 normalizes bits-deep integer samples to [0, 1].
func ToFloat32[T Integer](src []T, dst []float32, bits int) error {
	return floatMap(src, dst, bits,
		func(d hwy.Desc, v hwy.Vec[T]) hwy.Vec[float32] {
			return IntToFloatVec(hwy.Clamp(hwy.PromoteToInt32(d, v), 0, MaxCode(bits)), bits)
		},
		func(s T) float32 { return IntToFloat(min(int32(s), MaxCode(bits)), bits) })
}

// FromFloat32 converts normalized samples to bits-deep integers.
func FromFloat32[T Integer](src []float32, dst []T, bits int) error {
	return floatMap(src, dst, bits,
		func(d hwy.Desc, v hwy.Vec[float32]) hwy.Vec[T] {
			return hwy.DemoteFromInt32[T](d, FloatToIntVec(v, bits))
		},
		func(f float32) T { return T(FloatToInt(f, bits)) })
}

// ToFloat16 normalizes bits-deep integer samples to half floats.
func ToFloat16[T Integer](src []T, dst []hwy.Float16, bits int) error {
	return floatMap(src, dst, bits,
		func(d hwy.Desc, v hwy.Vec[T]) hwy.Vec[hwy.Float16] {
			f := IntToFloatVec(hwy.Clamp(hwy.PromoteToInt32(d, v), 0, MaxCode(bits)), bits)
			return hwy.F32ToF16(d, f)
		},
		func(s T) hwy.Float16 {
			return hwy.NewFloat16(IntToFloat(min(int32(s), MaxCode(bits)), bits))
		})
}

// FromFloat16 converts half-float samples to bits-deep integers.
func FromFloat16[T Integer](src []hwy.Float16, dst []T, bits int) error {
	return floatMap(src, dst, bits,
		func(d hwy.Desc, v hwy.Vec[hwy.Float16]) hwy.Vec[T] {
			return hwy.DemoteFromInt32[T](d, FloatToIntVec(hwy.F16ToF32(d, v), bits))
		},
		func(h hwy.Float16) T { return T(FloatToInt(h.Float32(), bits)) })
}
