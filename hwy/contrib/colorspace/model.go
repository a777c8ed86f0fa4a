package colorspace

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// Kind is the family a model belongs to.
type Kind int

const (
	// KindLinear models apply a 3x3 matrix in fixed point.
	KindLinear Kind = iota
	// KindRCT is the JPEG 2000 reversible color transform.
	KindRCT
	// KindYCgCoR is the lifting-based reversible YCgCo.
	KindYCgCoR
)

// Orientation selects which of R and B feeds the Co difference of YCgCo-R.
type Orientation int

const (
	// RB computes Co = R - B.
	RB Orientation = iota
	// BR computes Co = B - R.
	BR
)

// Model describes an RGB to YUV mapping independent of bit depth.
type Model struct {
	kind     Kind
	name     string
	matrix   f64.Mat3
	rng      Range
	transfer Transfer
	orient   Orientation
	err      error
}

// Linear returns the matrix model for coefficients c.
func Linear(c Coefficients) Model {
	return LinearTransfer(c, TransferLinear)
}

// LinearTransfer returns the matrix model for c applied to RGB encoded with
// tf. The inverse decodes with tf after the matrix.
func LinearTransfer(c Coefficients, tf Transfer) Model {
	m := Model{kind: KindLinear, name: "linear", rng: c.Range, transfer: tf}
	if err := c.Validate(); err != nil {
		m.err = err
		return m
	}
	kr, kb, kg := c.Kr, c.Kb, c.Kg()
	m.matrix = f64.Mat3{
		kr, kg, kb,
		-kr / (2 * (1 - kb)), -kg / (2 * (1 - kb)), 0.5,
		0.5, -kg / (2 * (1 - kr)), -kb / (2 * (1 - kr)),
	}
	return m
}

// YCgCo returns the non-reversible YCgCo matrix model. U carries Cg and V
// carries Co.
func YCgCo(r Range) Model {
	return Model{
		kind: KindLinear,
		name: "ycgco",
		rng:  r,
		matrix: f64.Mat3{
			0.25, 0.5, 0.25,
			-0.25, 0.5, -0.25,
			0.5, 0, -0.5,
		},
	}
}

// Custom returns a linear model with an explicit RGB to YUV matrix in
// row-major order. Rows give Y, U and V for unit-range RGB. The matrix must be
// invertible.
func Custom(m f64.Mat3, r Range) Model {
	return Model{kind: KindLinear, name: "custom", rng: r, matrix: m}
}

// RCT returns the JPEG 2000 reversible color transform:
//
//	Y  = (R + 2G + B) >> 2
//	Cb = B - G
//	Cr = R - G
func RCT(r Range) Model {
	return Model{kind: KindRCT, name: "rct", rng: r}
}

// YCgCoR returns the reversible YCgCo lifting model. For orientation RB:
//
//	Co = R - B
//	t  = B + (Co >> 1)
//	Cg = G - t
//	Y  = t + (Cg >> 1)
//
// BR swaps the roles of R and B. U carries Cg and V carries Co.
func YCgCoR(r Range, o Orientation) Model {
	return Model{kind: KindYCgCoR, name: "ycgco-r", rng: r, orient: o}
}

// Kind returns the model family.
func (m Model) Kind() Kind { return m.kind }

// Range returns the YUV range.
func (m Model) Range() Range { return m.rng }

// Transfer returns the transfer function applied to RGB.
func (m Model) Transfer() Transfer { return m.transfer }

// Matrix returns the RGB to YUV matrix of a linear model.
func (m Model) Matrix() f64.Mat3 { return m.matrix }

// Reversible reports whether the model round-trips exactly.
func (m Model) Reversible() bool {
	return m.kind == KindRCT || m.kind == KindYCgCoR
}

// OutputBits returns the YUV depth the model produces from rgbBits-deep RGB.
// Reversible models need one extra bit for signed chroma differences.
func (m Model) OutputBits(rgbBits int) int {
	if m.Reversible() {
		return rgbBits + 1
	}
	return rgbBits
}

// Validate reports whether the model can be compiled at some depth.
func (m Model) Validate() error {
	if m.err != nil {
		return m.err
	}
	if m.rng != TV && m.rng != PC {
		return fmt.Errorf("%w: %v", ErrModel, m.rng)
	}
	switch m.kind {
	case KindLinear:
		if !m.transfer.valid() {
			return fmt.Errorf("%w: %v", ErrModel, m.transfer)
		}
		if _, ok := invert(m.matrix); !ok {
			return fmt.Errorf("%w: singular matrix", ErrModel)
		}
	case KindRCT, KindYCgCoR:
		if m.orient != RB && m.orient != BR {
			return fmt.Errorf("%w: orientation %d", ErrModel, m.orient)
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrModel, m.kind)
	}
	return nil
}

func (m Model) String() string {
	s := m.name + "/" + m.rng.String()
	if m.kind == KindLinear && m.transfer != TransferLinear {
		s += "/" + m.transfer.String()
	}
	if m.kind == KindYCgCoR && m.orient == BR {
		s += "/br"
	}
	return s
}

// invert returns the inverse of a row-major 3x3 matrix.
func invert(m f64.Mat3) (f64.Mat3, bool) {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]
	A := e*i - f*h
	B := -(d*i - f*g)
	C := d*h - e*g
	det := a*A + b*B + c*C
	if math.Abs(det) < 1e-12 || math.IsNaN(det) {
		return f64.Mat3{}, false
	}
	return f64.Mat3{
		A / det, -(b*i - c*h) / det, (b*f - c*e) / det,
		B / det, (a*i - c*g) / det, -(a*f - c*d) / det,
		C / det, -(a*h - b*g) / det, (a*e - b*d) / det,
	}, true
}
