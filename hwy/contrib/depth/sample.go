package depth

import "github.com/ajroetker/go-yuv/hwy"

// ToWork converts loaded samples stored as s to integer codes at the working
// depth bits. Integer samples are rescaled from s.Bits; float samples are
// denormalized.
func ToWork[T hwy.Lanes](v hwy.Vec[T], s Spec, bits int) hwy.Vec[int32] {
	d := descOf(v)
	switch fv := any(v).(type) {
	case hwy.Vec[hwy.Float16]:
		return FloatToIntVec(hwy.F16ToF32(d, fv), bits)
	case hwy.Vec[float32]:
		return FloatToIntVec(fv, bits)
	}
	return RescaleVec(hwy.PromoteToInt32(d, v), s.Bits, bits)
}

// FromWork converts working-depth codes back to samples stored as s.
func FromWork[T hwy.Lanes](v hwy.Vec[int32], s Spec, bits int) hwy.Vec[T] {
	d := descOf(v)
	var zero T
	switch any(zero).(type) {
	case hwy.Float16:
		f := IntToFloatVec(hwy.Clamp(v, 0, MaxCode(bits)), bits)
		return any(hwy.F32ToF16(d, f)).(hwy.Vec[T])
	case float32:
		return any(IntToFloatVec(hwy.Clamp(v, 0, MaxCode(bits)), bits)).(hwy.Vec[T])
	}
	return hwy.DemoteFromInt32[T](d, RescaleVec(v, bits, s.Bits))
}

// ToWorkOne is the scalar form of ToWork, used for row tails.
func ToWorkOne[T hwy.Lanes](x T, s Spec, bits int) int32 {
	switch fx := any(x).(type) {
	case hwy.Float16:
		return FloatToInt(fx.Float32(), bits)
	case float32:
		return FloatToInt(fx, bits)
	}
	return Rescale(int32(x), s.Bits, bits)
}

// FromWorkOne is the scalar form of FromWork.
func FromWorkOne[T hwy.Lanes](v int32, s Spec, bits int) T {
	var zero T
	switch any(zero).(type) {
	case hwy.Float16:
		return any(hwy.NewFloat16(IntToFloat(min(max(v, 0), MaxCode(bits)), bits))).(T)
	case float32:
		return any(IntToFloat(min(max(v, 0), MaxCode(bits)), bits)).(T)
	}
	return T(Rescale(v, bits, s.Bits))
}
