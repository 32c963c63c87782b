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

package config

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"dirpx.dev/coils/apis"
)

const (
	// DefaultTolerance represents the default for DefaultTolerance.
	// Relative error target used when the caller passes no usable tolerance.
	DefaultTolerance = 1e-6
	// DefaultMinTolerance represents the default for MinTolerance.
	// Below this the quadrature error estimate is dominated by rounding.
	DefaultMinTolerance = 1e-12
	// DefaultMaxTolerance represents the default for MaxTolerance.
	DefaultMaxTolerance = 1e-1
	// DefaultMaxDepth represents the default for MaxDepth.
	DefaultMaxDepth = 20
	// DefaultPanelNodes represents the default for PanelNodes.
	DefaultPanelNodes = 8
	// DefaultCacheSize represents the default for CacheSize.
	DefaultCacheSize = 1024
)

// ErrInvalidConfig is returned by Validate and Load for inconsistent knobs.
var ErrInvalidConfig = errors.New("coils(config): invalid configuration")

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Keep the default inside the bounds the options may have moved.
	if cfg.MinTolerance > cfg.MaxTolerance {
		cfg.MinTolerance, cfg.MaxTolerance = cfg.MaxTolerance, cfg.MinTolerance
	}
	cfg.DefaultTolerance = math.Min(math.Max(cfg.DefaultTolerance, cfg.MinTolerance), cfg.MaxTolerance)
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		DefaultTolerance: DefaultTolerance,
		MinTolerance:     DefaultMinTolerance,
		MaxTolerance:     DefaultMaxTolerance,
		MaxDepth:         DefaultMaxDepth,
		PanelNodes:       DefaultPanelNodes,
		CacheStrategy:    apis.CacheLRU,
		CacheSize:        DefaultCacheSize,
		Workers:          runtime.GOMAXPROCS(0),
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithDefaultTolerance sets the DefaultTolerance option.
// A non-positive or non-finite value resets to the default.
func WithDefaultTolerance(tol float64) Option {
	return func(c *apis.Config) {
		if !positive(tol) {
			c.DefaultTolerance = DefaultTolerance
			return
		}
		c.DefaultTolerance = tol
	}
}

// WithToleranceBounds sets the MinTolerance and MaxTolerance options.
// Non-positive or non-finite bounds reset to their defaults.
func WithToleranceBounds(min, max float64) Option {
	return func(c *apis.Config) {
		c.MinTolerance, c.MaxTolerance = DefaultMinTolerance, DefaultMaxTolerance
		if positive(min) {
			c.MinTolerance = min
		}
		if positive(max) {
			c.MaxTolerance = max
		}
	}
}

// WithMaxDepth sets the MaxDepth option.
// A value below 1 resets to the default.
func WithMaxDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth < 1 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = depth
	}
}

// WithPanelNodes sets the PanelNodes option.
// A value below 1 resets to the default.
func WithPanelNodes(n int) Option {
	return func(c *apis.Config) {
		if n < 1 {
			c.PanelNodes = DefaultPanelNodes
			return
		}
		c.PanelNodes = n
	}
}

// WithCacheStrategy sets the CacheStrategy option.
// An unknown strategy resets to CacheLRU.
func WithCacheStrategy(cs apis.CacheStrategy) Option {
	return func(c *apis.Config) {
		if cs != apis.CacheLRU && cs != apis.CacheNone {
			cs = apis.CacheLRU
		}
		c.CacheStrategy = cs
	}
}

// WithCacheSize sets the CacheSize option.
// A value below 1 resets to the default; use WithCacheStrategy(apis.CacheNone)
// to disable memoization.
func WithCacheSize(size int) Option {
	return func(c *apis.Config) {
		if size < 1 {
			c.CacheSize = DefaultCacheSize
			return
		}
		c.CacheSize = size
	}
}

// WithWorkers sets the Workers option.
// A value below 1 resets to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *apis.Config) {
		if n < 1 {
			c.Workers = runtime.GOMAXPROCS(0)
			return
		}
		c.Workers = n
	}
}

// Validate reports whether cfg is usable by an engine.
func Validate(cfg apis.Config) error {
	switch {
	case !positive(cfg.MinTolerance) || !positive(cfg.MaxTolerance):
		return fmt.Errorf("%w: tolerance bounds must be positive and finite", ErrInvalidConfig)
	case cfg.MinTolerance > cfg.MaxTolerance:
		return fmt.Errorf("%w: min tolerance %g above max tolerance %g", ErrInvalidConfig, cfg.MinTolerance, cfg.MaxTolerance)
	case cfg.DefaultTolerance < cfg.MinTolerance || cfg.DefaultTolerance > cfg.MaxTolerance:
		return fmt.Errorf("%w: default tolerance %g outside [%g, %g]", ErrInvalidConfig, cfg.DefaultTolerance, cfg.MinTolerance, cfg.MaxTolerance)
	case cfg.MaxDepth < 1:
		return fmt.Errorf("%w: max depth %d below 1", ErrInvalidConfig, cfg.MaxDepth)
	case cfg.PanelNodes < 1:
		return fmt.Errorf("%w: panel nodes %d below 1", ErrInvalidConfig, cfg.PanelNodes)
	case cfg.CacheStrategy != apis.CacheLRU && cfg.CacheStrategy != apis.CacheNone:
		return fmt.Errorf("%w: cache strategy %s", ErrInvalidConfig, cfg.CacheStrategy)
	case cfg.CacheSize < 1:
		return fmt.Errorf("%w: cache size %d below 1", ErrInvalidConfig, cfg.CacheSize)
	case cfg.Workers < 1:
		return fmt.Errorf("%w: workers %d below 1", ErrInvalidConfig, cfg.Workers)
	}
	return nil
}

// ClampTolerance maps a caller-supplied tolerance onto the range allowed by cfg.
// NaN, infinite and non-positive values select cfg.DefaultTolerance.
func ClampTolerance(cfg apis.Config, tol float64) float64 {
	if !positive(tol) {
		tol = cfg.DefaultTolerance
	}
	if tol < cfg.MinTolerance {
		tol = cfg.MinTolerance
	}
	if tol > cfg.MaxTolerance {
		tol = cfg.MaxTolerance
	}
	return tol
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Sanitize replaces every unusable knob of cfg with its default, so the zero
// Config behaves like DefaultConfig.
func Sanitize(cfg apis.Config) apis.Config {
	cfg = SanitizeNumerics(cfg)
	if cfg.CacheStrategy != apis.CacheLRU && cfg.CacheStrategy != apis.CacheNone {
		cfg.CacheStrategy = apis.CacheLRU
	}
	if cfg.CacheSize < 1 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return cfg
}

// SanitizeNumerics is Sanitize restricted to the tolerance and quadrature
// knobs. It leaves the engine knobs alone and never calls into the runtime,
// so it is cheap enough for per-evaluation use.
func SanitizeNumerics(cfg apis.Config) apis.Config {
	if !positive(cfg.MinTolerance) {
		cfg.MinTolerance = DefaultMinTolerance
	}
	if !positive(cfg.MaxTolerance) {
		cfg.MaxTolerance = DefaultMaxTolerance
	}
	if cfg.MinTolerance > cfg.MaxTolerance {
		cfg.MinTolerance, cfg.MaxTolerance = cfg.MaxTolerance, cfg.MinTolerance
	}
	if !positive(cfg.DefaultTolerance) {
		cfg.DefaultTolerance = DefaultTolerance
	}
	cfg.DefaultTolerance = math.Min(math.Max(cfg.DefaultTolerance, cfg.MinTolerance), cfg.MaxTolerance)
	if cfg.MaxDepth < 1 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.PanelNodes < 1 {
		cfg.PanelNodes = DefaultPanelNodes
	}
	return cfg
}
