package hwy

import (
	"slices"
	"strconv"
	"sync"
)

// DispatchLevel represents a SIMD instruction set the kernels can target.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD, pure Go implementation.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates SSE2 instructions (x86-64 baseline).
	DispatchSSE2

	// DispatchAVX2 indicates AVX2 instructions (256-bit SIMD).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 instructions (512-bit SIMD).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON instructions (128-bit SIMD).
	DispatchNEON
)

// String returns a human-readable name for the dispatch level.
func (l DispatchLevel) String() string {
	switch l {
	case DispatchScalar:
		return "fallback"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// ParseDispatchLevel maps a target name back to its level. "scalar" is
// accepted as an alias of "fallback".
func ParseDispatchLevel(name string) (DispatchLevel, bool) {
	if name == "scalar" {
		return DispatchScalar, true
	}
	for l := DispatchScalar; l <= DispatchNEON; l++ {
		if l.String() == name {
			return l, true
		}
	}
	return DispatchScalar, false
}

// Target is one compiled variant of the kernels: an instruction set and its
// register width in bytes.
type Target struct {
	Level DispatchLevel
	Width int
}

// Lanes returns the lane count for 32-bit lanes, the element size all pixel
// math runs in.
func (t Target) Lanes() int {
	return t.Width / 4
}

// Desc returns the descriptor kernels use to run on this target.
func (t Target) Desc() Desc {
	return NewDesc(t.Lanes())
}

func (t Target) String() string {
	return t.Level.String()
}

// fallbackTarget uses 16-byte vectors even in scalar mode for consistency.
var fallbackTarget = Target{Level: DispatchScalar, Width: 16}

var (
	bindOnce sync.Once
	bound    Target
)

// CurrentTarget returns the target selected for this process. The probe runs
// once, on first use, and the result never changes afterwards.
func CurrentTarget() Target {
	bindOnce.Do(func() {
		cfg, err := LoadConfig()
		if err != nil {
			logger().Warn().Err(err).Msg("ignoring invalid HWY_ configuration")
		}
		var reason string
		bound, reason = selectTarget(probeTargets(), cfg)
		logger().Debug().
			Str("target", bound.String()).
			Int("width", bound.Width).
			Int("lanes", bound.Lanes()).
			Str("reason", reason).
			Msg("hwy: dispatch target bound")
	})
	return bound
}

// CurrentLevel returns the SIMD instruction set being used.
func CurrentLevel() DispatchLevel {
	return CurrentTarget().Level
}

// CurrentWidth returns the SIMD register width in bytes.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return CurrentTarget().Width
}

// Targets lists every target this CPU can run, best first. The fallback
// target is always last.
func Targets() []Target {
	return probeTargets()
}

func selectTarget(available []Target, cfg Config) (Target, string) {
	if cfg.noSIMD() {
		return fallbackTarget, "no_simd"
	}
	if limit, ok := ParseDispatchLevel(cfg.MaxTarget); ok && cfg.MaxTarget != "" {
		i := slices.IndexFunc(available, func(t Target) bool {
			return t.Level != DispatchScalar && limit != DispatchScalar &&
				sameFamily(t.Level, limit) && t.Width <= widthOf(limit)
		})
		if i < 0 {
			return fallbackTarget, "max_target"
		}
		return available[i], "max_target"
	}
	return available[0], "probe"
}

func widthOf(l DispatchLevel) int {
	switch l {
	case DispatchAVX2:
		return 32
	case DispatchAVX512:
		return 64
	}
	return 16
}

func sameFamily(a, b DispatchLevel) bool {
	return (a == DispatchNEON) == (b == DispatchNEON)
}

// parseNoSimd interprets HWY_NO_SIMD. When set, the fallback target is used
// regardless of CPU capabilities, which is useful for testing and debugging.
func parseNoSimd(val string) bool {
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
