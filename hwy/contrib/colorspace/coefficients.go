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

// Package colorspace defines the color models that map RGB to YUV and back.
//
// Two families exist. Linear models apply a 3x3 matrix derived from the luma
// coefficients Kr and Kb (or given directly), optionally preceded by a
// transfer function:
//
//	Y  = Kr*R + (1-Kr-Kb)*G + Kb*B
//	Cb = (B - Y) / (2*(1-Kb))
//	Cr = (R - Y) / (2*(1-Kr))
//
// Reversible models (RCT, YCgCo-R) use integer lifting steps that invert
// exactly, at the cost of one extra bit of YUV depth.
//
// A Model is a description. Compile turns it into a Transform for one bit
// depth, with the matrix quantized to fixed point so kernels only do int32
// multiply-adds and shifts.
package colorspace

import (
	"errors"
	"fmt"
)

// ErrModel is returned for a model that cannot be compiled.
var ErrModel = errors.New("colorspace: invalid model")

// Range selects how codes map to the nominal signal range.
type Range int

const (
	// TV (limited) range: luma in [16, 235] and chroma in [16, 240], scaled
	// by 2^(bits-8).
	TV Range = iota
	// PC (full) range: every code in [0, 2^bits-1] is used.
	PC
)

func (r Range) String() string {
	switch r {
	case TV:
		return "tv"
	case PC:
		return "pc"
	}
	return fmt.Sprintf("Range(%d)", int(r))
}

// Coefficients are the luma weights of a linear model and its range.
type Coefficients struct {
	Kr, Kb float64
	Range  Range
}

// Kg returns the implied green weight.
func (c Coefficients) Kg() float64 {
	return 1 - c.Kr - c.Kb
}

// Validate requires 0 < Kr, 0 < Kb and Kr + Kb < 1.
func (c Coefficients) Validate() error {
	if !(c.Kr > 0) || !(c.Kb > 0) || !(c.Kr+c.Kb < 1) {
		return fmt.Errorf("%w: coefficients Kr=%v Kb=%v", ErrModel, c.Kr, c.Kb)
	}
	if c.Range != TV && c.Range != PC {
		return fmt.Errorf("%w: %v", ErrModel, c.Range)
	}
	return nil
}

// Matrix names a standard set of luma coefficients.
type Matrix int

const (
	BT601 Matrix = iota
	BT709
	BT2020
	SMPTE240
	FCC
)

var matrixCoefficients = [...]struct {
	name   string
	kr, kb float64
}{
	BT601:    {"bt601", 0.299, 0.114},
	BT709:    {"bt709", 0.2126, 0.0722},
	BT2020:   {"bt2020", 0.2627, 0.0593},
	SMPTE240: {"smpte240", 0.212, 0.087},
	FCC:      {"fcc", 0.30, 0.11},
}

func (m Matrix) valid() bool {
	return m >= BT601 && m <= FCC
}

func (m Matrix) String() string {
	if !m.valid() {
		return fmt.Sprintf("Matrix(%d)", int(m))
	}
	return matrixCoefficients[m].name
}

// Coefficients returns the weights of m in range r. An unknown matrix yields
// zero weights, which fail validation.
func (m Matrix) Coefficients(r Range) Coefficients {
	if !m.valid() {
		return Coefficients{Range: r}
	}
	e := matrixCoefficients[m]
	return Coefficients{Kr: e.kr, Kb: e.kb, Range: r}
}
