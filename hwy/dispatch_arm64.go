//go:build arm64

package hwy

import "golang.org/x/sys/cpu"

// probeTargets reports the arm64 targets in order of preference.
func probeTargets() []Target {
	// ARM64 (AArch64) always has NEON (ASIMD) available.
	// It's part of the ARMv8-A base architecture; checked for consistency.
	if cpu.ARM64.HasASIMD {
		return []Target{{Level: DispatchNEON, Width: 16}, fallbackTarget}
	}
	return []Target{fallbackTarget}
}
