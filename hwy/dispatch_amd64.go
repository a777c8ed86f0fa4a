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

//go:build amd64

package hwy

import "golang.org/x/sys/cpu"

// probeTargets reports the x86 targets in order of preference.
// SSE2 is part of the amd64 baseline.
func probeTargets() []Target {
	var ts []Target
	if cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW {
		ts = append(ts, Target{Level: DispatchAVX512, Width: 64})
	}
	if cpu.X86.HasAVX2 {
		ts = append(ts, Target{Level: DispatchAVX2, Width: 32})
	}
	ts = append(ts, Target{Level: DispatchSSE2, Width: 16})
	return append(ts, fallbackTarget)
}
