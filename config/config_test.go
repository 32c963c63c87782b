/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config_test

import (
	"errors"
	"math"
	"runtime"
	"testing"

	"dirpx.dev/coils/apis"
	"dirpx.dev/coils/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.DefaultTolerance != config.DefaultTolerance {
		t.Fatalf("DefaultTolerance = %g, want %g", got.DefaultTolerance, config.DefaultTolerance)
	}
	if got.MinTolerance != config.DefaultMinTolerance || got.MaxTolerance != config.DefaultMaxTolerance {
		t.Fatalf("tolerance bounds = [%g, %g], want [%g, %g]",
			got.MinTolerance, got.MaxTolerance, config.DefaultMinTolerance, config.DefaultMaxTolerance)
	}
	if got.MaxDepth != config.DefaultMaxDepth {
		t.Fatalf("MaxDepth = %d, want %d", got.MaxDepth, config.DefaultMaxDepth)
	}
	if got.PanelNodes != config.DefaultPanelNodes {
		t.Fatalf("PanelNodes = %d, want %d", got.PanelNodes, config.DefaultPanelNodes)
	}
	if got.CacheSize != config.DefaultCacheSize {
		t.Fatalf("CacheSize = %d, want %d", got.CacheSize, config.DefaultCacheSize)
	}
	if got.Workers != runtime.GOMAXPROCS(0) {
		t.Fatalf("Workers = %d, want %d", got.Workers, runtime.GOMAXPROCS(0))
	}
	if err := config.Validate(got); err != nil {
		t.Fatalf("Validate(default) = %v", err)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithDefaultTolerance(t *testing.T) {
	c := config.NewConfig(config.WithDefaultTolerance(1e-3))
	if c.DefaultTolerance != 1e-3 {
		t.Fatalf("DefaultTolerance = %g, want 1e-3", c.DefaultTolerance)
	}

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		c := config.NewConfig(config.WithDefaultTolerance(bad))
		if c.DefaultTolerance != config.DefaultTolerance {
			t.Fatalf("WithDefaultTolerance(%g): DefaultTolerance = %g, want default", bad, c.DefaultTolerance)
		}
	}
}

func TestWithToleranceBounds_PullsDefaultInside(t *testing.T) {
	c := config.NewConfig(config.WithToleranceBounds(1e-4, 1e-2))
	if c.MinTolerance != 1e-4 || c.MaxTolerance != 1e-2 {
		t.Fatalf("bounds = [%g, %g], want [1e-4, 1e-2]", c.MinTolerance, c.MaxTolerance)
	}
	if c.DefaultTolerance != 1e-4 {
		t.Fatalf("DefaultTolerance = %g, want it raised to 1e-4", c.DefaultTolerance)
	}

	swapped := config.NewConfig(config.WithToleranceBounds(1e-2, 1e-4))
	if swapped.MinTolerance != 1e-4 || swapped.MaxTolerance != 1e-2 {
		t.Fatalf("swapped bounds = [%g, %g], want [1e-4, 1e-2]", swapped.MinTolerance, swapped.MaxTolerance)
	}
}

func TestIntOptions_InvalidResetToDefault(t *testing.T) {
	c := config.NewConfig(
		config.WithMaxDepth(0),
		config.WithPanelNodes(0),
		config.WithCacheSize(-1),
		config.WithWorkers(0),
	)
	if c.MaxDepth != config.DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want default", c.MaxDepth)
	}
	if c.PanelNodes != config.DefaultPanelNodes {
		t.Errorf("PanelNodes = %d, want default", c.PanelNodes)
	}
	if c.CacheSize != config.DefaultCacheSize {
		t.Errorf("CacheSize = %d, want default", c.CacheSize)
	}
	if c.Workers != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers = %d, want GOMAXPROCS", c.Workers)
	}
}

func TestWithCacheSize_ZeroResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithCacheSize(0))
	if c.CacheSize != config.DefaultCacheSize {
		t.Fatalf("CacheSize = %d, want default", c.CacheSize)
	}
	if c.CacheStrategy != apis.CacheLRU {
		t.Fatalf("CacheStrategy = %s, want LRU", c.CacheStrategy)
	}
}

func TestWithCacheStrategy(t *testing.T) {
	c := config.NewConfig(config.WithCacheStrategy(apis.CacheNone))
	if c.CacheStrategy != apis.CacheNone {
		t.Fatalf("CacheStrategy = %s, want None", c.CacheStrategy)
	}
	if c.CacheSize != config.DefaultCacheSize {
		t.Fatalf("CacheSize = %d, want default", c.CacheSize)
	}

	c = config.NewConfig(config.WithCacheStrategy(apis.CacheStrategy(42)))
	if c.CacheStrategy != apis.CacheLRU {
		t.Fatalf("unknown strategy kept as %s, want LRU", c.CacheStrategy)
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithMaxDepth(4),
		config.WithMaxDepth(12),
		config.WithPanelNodes(4),
		config.WithPanelNodes(10),
	)
	if c.MaxDepth != 12 {
		t.Errorf("MaxDepth = %d, want 12 (last option wins)", c.MaxDepth)
	}
	if c.PanelNodes != 10 {
		t.Errorf("PanelNodes = %d, want 10 (last option wins)", c.PanelNodes)
	}
}

func TestClampTolerance(t *testing.T) {
	cfg := config.NewConfig(config.WithToleranceBounds(1e-10, 1e-2), config.WithDefaultTolerance(1e-5))

	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"in range", 1e-4, 1e-4},
		{"zero", 0, 1e-5},
		{"negative", -3, 1e-5},
		{"nan", math.NaN(), 1e-5},
		{"inf", math.Inf(1), 1e-5},
		{"too small", 1e-20, 1e-10},
		{"too large", 0.5, 1e-2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := config.ClampTolerance(cfg, tc.in); got != tc.want {
				t.Fatalf("ClampTolerance(%g) = %g, want %g", tc.in, got, tc.want)
			}
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(*apis.Config){
		"min above max":   func(c *apis.Config) { c.MinTolerance, c.MaxTolerance = 1, 1e-3 },
		"zero min":        func(c *apis.Config) { c.MinTolerance = 0 },
		"default outside": func(c *apis.Config) { c.DefaultTolerance = 0.5 },
		"depth":           func(c *apis.Config) { c.MaxDepth = 0 },
		"nodes":           func(c *apis.Config) { c.PanelNodes = 0 },
		"cache":           func(c *apis.Config) { c.CacheSize = 0 },
		"strategy":        func(c *apis.Config) { c.CacheStrategy = 7 },
		"workers":         func(c *apis.Config) { c.Workers = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			mutate(&cfg)
			if err := config.Validate(cfg); !errors.Is(err, config.ErrInvalidConfig) {
				t.Fatalf("Validate = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSanitize_ZeroConfigBehavesLikeDefault(t *testing.T) {
	got := config.Sanitize(apis.Config{})
	if got != config.DefaultConfig() {
		t.Fatalf("Sanitize(zero) = %+v, want %+v", got, config.DefaultConfig())
	}
	if err := config.Validate(got); err != nil {
		t.Fatalf("Validate(Sanitize(zero)) = %v", err)
	}
}

func TestSanitize_KnobsSurvive(t *testing.T) {
	in := config.NewConfig(
		config.WithCacheStrategy(apis.CacheNone),
		config.WithCacheSize(3),
		config.WithWorkers(2),
		config.WithMaxDepth(30),
	)
	if got := config.Sanitize(in); got != in {
		t.Fatalf("Sanitize(valid) = %+v, want %+v", got, in)
	}

	partial := config.Sanitize(apis.Config{MaxDepth: 30})
	want := config.NewConfig(config.WithMaxDepth(30))
	if partial != want {
		t.Fatalf("Sanitize(partial) = %+v, want %+v", partial, want)
	}
}

func TestSanitizeNumerics_LeavesEngineKnobs(t *testing.T) {
	got := config.SanitizeNumerics(apis.Config{})
	if got.Workers != 0 || got.CacheSize != 0 {
		t.Fatalf("engine knobs touched: Workers=%d CacheSize=%d", got.Workers, got.CacheSize)
	}
	def := config.DefaultConfig()
	if got.DefaultTolerance != def.DefaultTolerance ||
		got.MinTolerance != def.MinTolerance ||
		got.MaxTolerance != def.MaxTolerance ||
		got.MaxDepth != def.MaxDepth ||
		got.PanelNodes != def.PanelNodes {
		t.Fatalf("SanitizeNumerics(zero) = %+v, want numeric defaults", got)
	}
}
