// Package hwy provides the portable vector core used by the pixel kernels,
// with a runtime CPU target probe.
//
// It follows the Highway C++ library's design philosophy: kernels are written
// once against a lane-count descriptor and run on whatever vector width the
// probe selects. Vectors hold up to MaxLanes elements; the active lane count
// comes from the Desc passed to every constructor.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-yuv/hwy"
//
//	d := hwy.CurrentTarget().Desc()
//
//	// Deinterleave four RGBA pixels per lane group
//	r, g, b, a := hwy.LoadInterleaved4(d, row)
//
//	// Widen to 32-bit working lanes and transform
//	y := hwy.Add(hwy.PromoteToInt32(d, r), hwy.PromoteToInt32(d, g))
//
//	// Store saturated results
//	hwy.Store(hwy.DemoteFromInt32[uint8](d, y), out)
package hwy

// UnsignedInts is a constraint for the unsigned sample types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32
}

// Integers is a constraint for every integer lane type.
type Integers interface {
	UnsignedInts | ~int32
}

// Lanes is a constraint for all types that can be stored in vector lanes.
type Lanes interface {
	Integers | ~float32
}

// MaxLanes is the widest lane count any target uses: 512-bit registers of
// 32-bit lanes.
const MaxLanes = 16

// Desc describes a vector shape by its lane count. Operations that create
// vectors take a Desc the way Highway ops take a `d` tag.
type Desc struct {
	n int
}

// NewDesc returns a descriptor for the given lane count, clamped to
// [1, MaxLanes].
func NewDesc(lanes int) Desc {
	return Desc{n: min(max(lanes, 1), MaxLanes)}
}

// Lanes returns the number of active lanes.
func (d Desc) Lanes() int {
	if d.n == 0 {
		return 1
	}
	return d.n
}

// Vec is a register image holding Lanes() active elements.
//
// Vec instances should not be created directly; use Load, Set, or Zero instead.
type Vec[T Lanes] struct {
	data [MaxLanes]T
	n    int
}

// NumLanes returns the number of active lanes in this vector.
func (v Vec[T]) NumLanes() int {
	return v.n
}

// Data returns the active lanes as a slice.
// This is primarily for testing and should not be used in performance-critical code.
func (v Vec[T]) Data() []T {
	return v.data[:v.n]
}

// Get returns lane i, or zero when i is out of range.
func (v Vec[T]) Get(i int) T {
	if i < 0 || i >= v.n {
		var zero T
		return zero
	}
	return v.data[i]
}

// Store writes the vector's data to a slice.
// This is the method form of the hwy.Store function.
func (v Vec[T]) Store(dst []T) {
	Store(v, dst)
}
