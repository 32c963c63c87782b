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
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"dirpx.dev/coils/apis"
)

// EnvPrefix is the prefix of environment overrides, e.g. COILS_TOLERANCE_DEFAULT.
const EnvPrefix = "COILS"

const (
	keyDefaultTolerance = "tolerance.default"
	keyMinTolerance     = "tolerance.min"
	keyMaxTolerance     = "tolerance.max"
	keyMaxDepth         = "quadrature.max_depth"
	keyPanelNodes       = "quadrature.panel_nodes"
	keyCacheStrategy    = "engine.cache_strategy"
	keyCacheSize        = "engine.cache_size"
	keyWorkers          = "engine.workers"
)

// Load reads configuration from an optional file and the environment.
// path may be empty, in which case only defaults and COILS_* variables apply.
// The file format is taken from its extension (yaml, toml, json).
// Env var overrides use prefix COILS_ with dots replaced by underscores.
func Load(path string) (apis.Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault(keyDefaultTolerance, def.DefaultTolerance)
	v.SetDefault(keyMinTolerance, def.MinTolerance)
	v.SetDefault(keyMaxTolerance, def.MaxTolerance)
	v.SetDefault(keyMaxDepth, def.MaxDepth)
	v.SetDefault(keyPanelNodes, def.PanelNodes)
	v.SetDefault(keyCacheStrategy, def.CacheStrategy.String())
	v.SetDefault(keyCacheSize, def.CacheSize)
	v.SetDefault(keyWorkers, def.Workers)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return apis.Config{}, fmt.Errorf("coils(config): read %s: %w", path, err)
		}
	}

	cs, err := apis.ParseCacheStrategy(v.GetString(keyCacheStrategy))
	if err != nil {
		return apis.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := apis.Config{
		DefaultTolerance: v.GetFloat64(keyDefaultTolerance),
		MinTolerance:     v.GetFloat64(keyMinTolerance),
		MaxTolerance:     v.GetFloat64(keyMaxTolerance),
		MaxDepth:         v.GetInt(keyMaxDepth),
		PanelNodes:       v.GetInt(keyPanelNodes),
		CacheStrategy:    cs,
		CacheSize:        v.GetInt(keyCacheSize),
		Workers:          v.GetInt(keyWorkers),
	}
	if err := Validate(cfg); err != nil {
		return apis.Config{}, err
	}
	return cfg, nil
}
