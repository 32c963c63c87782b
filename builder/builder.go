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

package builder

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"dirpx.dev/coils/apis"
	"dirpx.dev/coils/engine"
	"dirpx.dev/coils/registry"
)

// Option configures the builder returned by New.
type Option func(*builder)

// WithLogger sets the logger migration problems are reported to. Nil is ignored.
func WithLogger(logger log.Logger) Option {
	return func(b *builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates and returns a new instance of an apis.Builder.
func New(opts ...Option) apis.Builder {
	b := &builder{logger: log.NewNopLogger()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// builder is the default apis.Builder.
type builder struct {
	logger log.Logger
}

// BuildRegistry builds and returns a new apis.Registry. If a previous registry
// is provided, its sources are copied into the new one in insertion order.
// Sources the new registry rejects are dropped and logged at warn level.
func (b *builder) BuildRegistry(_ apis.Config, prev apis.Registry) apis.Registry {
	nreg := registry.New()
	if prev != nil {
		for _, s := range prev.Entries() {
			if err := nreg.Insert(s); err != nil {
				level.Warn(b.logger).Log("msg", "source dropped during migration", "id", s.ID(), "err", err)
			}
		}
	}
	return nreg
}

// BuildEngine builds and returns a new apis.Engine summing the sources of reg
// in the given frame.
func (b *builder) BuildEngine(cfg apis.Config, reg apis.Registry, frame apis.Frame) apis.Engine {
	return engine.New(cfg, reg, frame)
}
