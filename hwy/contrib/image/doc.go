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

// Package image provides bounds-checked 2D views over caller-owned sample
// buffers.
//
// An Image[T] is a (slice, width, height, channels, stride) tuple. All
// validation happens in New, so kernels can walk rows with Row(y) without
// pointer arithmetic:
//
//	img, err := image.New(buf, 1920, 1080, 4, 1920*4)
//	if err != nil {
//	    return err
//	}
//	for y := range img.Height() {
//	    row := img.Row(y) // exactly width*channels samples
//	    ...
//	}
//
// # Aliasing
//
// Overlaps reports whether two views reach the same memory. Conversion entry
// points use it to reject in-place calls.
package image
