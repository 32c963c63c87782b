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

// Package engine superposes the field contributions of every source in a
// registry.
//
// Sources answer in the intrinsic cylindrical frame of the system. The
// engine sums their axial and radial components separately, then resolves
// the radial sum into the two lab axes of the radial plane through the
// frame. Sums are memoized per (z, r, tol) in the intrinsic frame, so a
// change of orientation never invalidates them; any registry mutation must
// be followed by Invalidate.
package engine

import (
	"context"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"dirpx.dev/coils/apis"
	"dirpx.dev/coils/config"
)

// New constructs an Engine over reg and frame. cfg is sanitized first.
func New(cfg apis.Config, reg apis.Registry, frame apis.Frame) apis.Engine {
	cfg = config.Sanitize(cfg)
	e := &engine{cfg: cfg, reg: reg, frame: frame}
	if cfg.CacheStrategy == apis.CacheLRU {
		// Only fails for a non-positive size, which Sanitize rules out.
		e.cache, _ = lru.New[key, apis.Vec2](cfg.CacheSize)
	}
	return e
}

// key identifies a memoized meridional sum.
type key struct {
	z, r, tol float64
}

// engine is safe for concurrent queries as long as nothing mutates the
// registry meanwhile.
type engine struct {
	cfg   apis.Config
	reg   apis.Registry
	frame apis.Frame
	// cache is nil when memoization is disabled.
	cache *lru.Cache[key, apis.Vec2]
}

// Ensure engine implements apis.Engine.
var _ apis.Engine = (*engine)(nil)

// FieldAt returns the lab-frame field at p.
func (e *engine) FieldAt(p apis.Vec3, tol float64) apis.Vec3 {
	z, r, phi := e.frame.ToIntrinsic(p)
	v := e.sum(z, r, config.ClampTolerance(e.cfg, tol))
	return e.frame.ToLab(v.Axial, v.Radial, phi)
}

// FieldAxial returns the (axial, radial) field in the meridional plane.
// A negative r addresses the opposite half-plane: the sum is evaluated at
// |r| and its radial component flipped, keeping the plane continuous across
// the axis.
func (e *engine) FieldAxial(z, r, tol float64) apis.Vec2 {
	sign := 1.0
	if r < 0 {
		r, sign = -r, -1
	}
	v := e.sum(z, r, config.ClampTolerance(e.cfg, tol))
	v.Radial *= sign
	return v
}

// FieldMany evaluates FieldAt for every point on up to cfg.Workers goroutines.
func (e *engine) FieldMany(ctx context.Context, points []apis.Vec3, tol float64) ([]apis.Vec3, error) {
	out := make([]apis.Vec3, len(points))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, p := range points {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = e.FieldAt(p, tol)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The loop may have stopped before any goroutine saw the cancellation.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Invalidate drops every memoized sum.
func (e *engine) Invalidate() {
	if e.cache != nil {
		e.cache.Purge()
	}
}

// sum superposes every source at (z, r >= 0) with an already clamped tol.
func (e *engine) sum(z, r, tol float64) apis.Vec2 {
	if e.reg.Count() == 0 {
		return apis.Vec2{}
	}

	k := key{z: z, r: r, tol: tol}
	cacheable := e.cache != nil && !math.IsNaN(z) && !math.IsNaN(r)
	if cacheable {
		if v, ok := e.cache.Get(k); ok {
			return v
		}
	}

	var total apis.Vec2
	e.reg.Range(func(s apis.Source) bool {
		total = total.Add(s.Contribution(z, r, tol, e.cfg))
		return true
	})

	if cacheable {
		e.cache.Add(k, total)
	}
	return total
}
