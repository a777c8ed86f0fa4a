//go:build !amd64 && !arm64

package hwy

// probeTargets falls back to the portable target on other architectures.
func probeTargets() []Target {
	// Future implementations will add:
	// - wasm: SIMD128 support
	// - riscv64: Vector extension support
	return []Target{fallbackTarget}
}
