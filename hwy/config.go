package hwy

import (
	"fmt"

	"github.com/kkyr/fig"
)

// EnvPrefix is the prefix of every environment variable the probe reads.
const EnvPrefix = "HWY"

// Config holds the environment overrides applied when the target is bound.
//
//	HWY_NO_SIMD     any non-empty value that does not parse as false forces
//	                the fallback target
//	HWY_MAX_TARGET  caps the selection: fallback, sse2, avx2, avx512, neon
type Config struct {
	NoSIMD    string `fig:"no_simd"`
	MaxTarget string `fig:"max_target"`
}

// LoadConfig reads Config from the environment. An unknown MaxTarget is
// reported as an error and cleared from the returned Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := fig.Load(&cfg, fig.IgnoreFile(), fig.UseEnv(EnvPrefix)); err != nil {
		return Config{}, fmt.Errorf("hwy: load config: %w", err)
	}
	if cfg.MaxTarget != "" {
		if _, ok := ParseDispatchLevel(cfg.MaxTarget); !ok {
			bad := cfg.MaxTarget
			cfg.MaxTarget = ""
			return cfg, fmt.Errorf("hwy: unknown %s_MAX_TARGET %q", EnvPrefix, bad)
		}
	}
	return cfg, nil
}

func (c Config) noSIMD() bool {
	return parseNoSimd(c.NoSIMD)
}
