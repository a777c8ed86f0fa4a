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

// Package chroma describes how the planes of a YUV image are laid out:
// the chroma subsampling factors and whether U and V live in their own
// planes or interleaved in a shared one.
//
// A chroma sample at (cx, cy) covers the luma block starting at
// (cx*h, cy*v) of size h x v, clipped to the image. Odd image sizes round
// the chroma plane up, so the last column or row of chroma samples may cover
// a partial block:
//
//	7x5 at 4:2:0 -> chroma 4x3
//	7x5 at 4:1:1 -> chroma 2x5
package chroma

import (
	"errors"
	"fmt"

	"github.com/ajroetker/go-yuv/hwy/contrib/image"
)

// ErrLayout is returned for an invalid plane layout.
var ErrLayout = errors.New("chroma: invalid layout")

// Subsampling is the ratio between luma and chroma resolution.
type Subsampling int

const (
	S444 Subsampling = iota
	S422
	S420
	S411
	S410
	// S400 has no chroma planes at all.
	S400
)

var subsamplingNames = [...]string{"4:4:4", "4:2:2", "4:2:0", "4:1:1", "4:1:0", "4:0:0"}

func (s Subsampling) String() string {
	if s < S444 || s > S400 {
		return fmt.Sprintf("Subsampling(%d)", int(s))
	}
	return subsamplingNames[s]
}

// Factors returns the horizontal and vertical decimation factors. S400
// returns 0, 0.
func (s Subsampling) Factors() (h, v int) {
	switch s {
	case S444:
		return 1, 1
	case S422:
		return 2, 1
	case S420:
		return 2, 2
	case S411:
		return 4, 1
	case S410:
		return 4, 4
	}
	return 0, 0
}

// HasChroma reports whether the subsampling stores any chroma.
func (s Subsampling) HasChroma() bool {
	return s != S400
}

// Arrangement is how U and V are placed in memory.
type Arrangement int

const (
	// ThreePlane stores Y, U and V in separate planes.
	ThreePlane Arrangement = iota
	// SemiPlanarUV stores interleaved U,V pairs in one plane (NV12 family).
	SemiPlanarUV
	// SemiPlanarVU stores interleaved V,U pairs in one plane (NV21 family).
	SemiPlanarVU
)

func (a Arrangement) String() string {
	switch a {
	case ThreePlane:
		return "planar"
	case SemiPlanarUV:
		return "uv"
	case SemiPlanarVU:
		return "vu"
	}
	return fmt.Sprintf("Arrangement(%d)", int(a))
}

// SemiPlanar reports whether U and V share an interleaved plane.
func (a Arrangement) SemiPlanar() bool {
	return a == SemiPlanarUV || a == SemiPlanarVU
}

// Layout is a subsampling together with a plane arrangement.
type Layout struct {
	Subsampling Subsampling
	Arrangement Arrangement
}

// Validate checks that the arrangement can carry the subsampling.
func (l Layout) Validate() error {
	if l.Subsampling < S444 || l.Subsampling > S400 {
		return fmt.Errorf("%w: %v", ErrLayout, l.Subsampling)
	}
	if l.Arrangement < ThreePlane || l.Arrangement > SemiPlanarVU {
		return fmt.Errorf("%w: %v", ErrLayout, l.Arrangement)
	}
	if l.Subsampling == S400 && l.Arrangement.SemiPlanar() {
		return fmt.Errorf("%w: 4:0:0 has no chroma to interleave", ErrLayout)
	}
	return nil
}

// ChromaSize returns the chroma plane size, in chroma samples, for a w x h
// image. Partial blocks round up.
func (l Layout) ChromaSize(w, h int) (cw, ch int) {
	fh, fv := l.Subsampling.Factors()
	if fh == 0 {
		return 0, 0
	}
	return (w + fh - 1) / fh, (h + fv - 1) / fv
}

// PlaneCount returns the number of memory planes: 1 for 4:0:0, 2 for
// semi-planar and 3 otherwise.
func (l Layout) PlaneCount() int {
	switch {
	case !l.Subsampling.HasChroma():
		return 1
	case l.Arrangement.SemiPlanar():
		return 2
	}
	return 3
}

// ChromaChannels returns the number of interleaved samples per chroma
// position in a chroma plane.
func (l Layout) ChromaChannels() int {
	if l.Arrangement.SemiPlanar() {
		return 2
	}
	return 1
}

// ChromaCoord returns the chroma sample covering luma pixel (x, y).
func (l Layout) ChromaCoord(x, y int) (cx, cy int) {
	fh, fv := l.Subsampling.Factors()
	if fh == 0 {
		return 0, 0
	}
	return x / fh, y / fv
}

// Block returns the luma rectangle covered by chroma sample (cx, cy) in a
// w x h image, clipped to the image.
func (l Layout) Block(cx, cy, w, h int) image.Rect {
	fh, fv := l.Subsampling.Factors()
	if fh == 0 {
		return image.Rect{}
	}
	r := image.Rect{X0: cx * fh, Y0: cy * fv, X1: (cx + 1) * fh, Y1: (cy + 1) * fv}
	return r.Intersect(image.Rect{X1: w, Y1: h})
}

// PairOffsets returns the positions of U and V inside an interleaved chroma
// pair. ThreePlane layouts return 0, 0.
func (l Layout) PairOffsets() (u, v int) {
	switch l.Arrangement {
	case SemiPlanarUV:
		return 0, 1
	case SemiPlanarVU:
		return 1, 0
	}
	return 0, 0
}

func (l Layout) String() string {
	for _, n := range layoutNames {
		if named[n] == l {
			return n
		}
	}
	return l.Subsampling.String() + "/" + l.Arrangement.String()
}
