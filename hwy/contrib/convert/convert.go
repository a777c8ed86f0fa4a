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

// Package convert converts images between interleaved RGB buffers and planar
// or semi-planar YUV images, and between bit depths and channel orders.
//
// Every entry point validates all of its inputs before touching the
// destination, so a returned error means dst was left unchanged. Conversions
// run row by row: a vector loop handles whole groups of lanes and a scalar
// tail with identical arithmetic finishes the row.
//
// The vector width is bound once, on the first conversion, from
// hwy.CurrentTarget, and stays fixed for the life of the process.
//
// Example:
//
//	src, _ := pixel.NewPackedBuffer(rgba, w, h, pixel.RGBA8())
//	p, _ := convert.Lookup("i420-bt601")
//	dst, _ := convert.NewPlanar(yImg, uImg, vImg, p.Layout, p.Spec)
//	err := convert.RGBToYUV(src, dst, p.Model)
package convert

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ajroetker/go-yuv/hwy"
	"github.com/ajroetker/go-yuv/hwy/contrib/image"
)

var (
	// ErrUnsupported is returned for a combination of formats and model the
	// engine does not convert.
	ErrUnsupported = errors.New("convert: unsupported conversion")
	// ErrMismatch is returned when source and destination disagree in size
	// or layout.
	ErrMismatch = errors.New("convert: source and destination mismatch")
)

var (
	bindOnce sync.Once
	bound    hwy.Desc
)

// target returns the lane descriptor of the process-wide dispatch target.
func target() hwy.Desc {
	bindOnce.Do(func() {
		bound = hwy.CurrentTarget().Desc()
	})
	return bound
}

func checkSize[S, D hwy.Lanes](src *image.Image[S], dst *image.Image[D]) error {
	if !image.SameSize(src, dst) {
		return fmt.Errorf("%w: %dx%d to %dx%d", ErrMismatch, src.Width(), src.Height(), dst.Width(), dst.Height())
	}
	return nil
}

// checkOverlap rejects a destination plane that shares memory with any
// source plane.
func checkOverlap[S, D hwy.Lanes](src []*image.Image[S], dst []*image.Image[D]) error {
	for _, s := range src {
		for _, d := range dst {
			if image.Overlaps(s, d) {
				return image.ErrOverlap
			}
		}
	}
	return nil
}
