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

package engine_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/coils/apis"
	"dirpx.dev/coils/config"
	"dirpx.dev/coils/engine"
	"dirpx.dev/coils/kernel"
	"dirpx.dev/coils/orientation"
	"dirpx.dev/coils/registry"
	"dirpx.dev/coils/source"
)

type fixture struct {
	reg    apis.Registry
	orient *orientation.Orientation
	eng    apis.Engine
}

func newFixture(t *testing.T, cfg apis.Config, sources ...apis.Source) fixture {
	t.Helper()
	f := fixture{reg: registry.New(), orient: orientation.New()}
	for _, s := range sources {
		require.NoError(t, f.reg.Insert(s))
	}
	f.eng = engine.New(cfg, f.reg, f.orient)
	return f
}

func loop(t *testing.T, id string, radius, position, current float64) apis.Source {
	t.Helper()
	s, err := source.NewLoop(id, radius, position, current)
	require.NoError(t, err)
	return s
}

func TestEmptyRegistry_ZeroEverywhere(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())

	points := []apis.Vec3{{}, {X: 1, Y: -2, Z: 3}, {X: math.NaN()}, {Z: math.Inf(1)}}
	for _, p := range points {
		assert.Equal(t, apis.Vec3{}, f.eng.FieldAt(p, 1e-6))
	}
	assert.Equal(t, apis.Vec2{}, f.eng.FieldAxial(0.3, -4, 0))
	assert.Equal(t, apis.Vec2{}, f.eng.FieldAxial(math.NaN(), 1, math.NaN()))
}

func TestSuperposition_OppositeLoopsCancel(t *testing.T) {
	f := newFixture(t, config.DefaultConfig(),
		loop(t, "fwd", 0.7, 0.2, 3),
		loop(t, "rev", 0.7, 0.2, -3),
	)
	points := []apis.Vec3{{}, {X: 0.7, Z: 0.2}, {X: 0.3, Y: -0.4, Z: 1}, {X: -5, Y: 2, Z: -3}}
	for _, p := range points {
		assert.Equal(t, apis.Vec3{}, f.eng.FieldAt(p, 1e-6), "point %+v", p)
	}
}

func TestSuperposition_SumOfSources(t *testing.T) {
	cfg := config.DefaultConfig()
	a, b := loop(t, "a", 0.5, -0.3, 1), loop(t, "b", 1.2, 0.4, 2)
	f := newFixture(t, cfg, a, b)

	want := a.Contribution(0.1, 0.6, 1e-6, cfg).Add(b.Contribution(0.1, 0.6, 1e-6, cfg))
	assert.Equal(t, want, f.eng.FieldAxial(0.1, 0.6, 1e-6))
}

func TestFieldAt_ResolvesRadialComponent(t *testing.T) {
	f := newFixture(t, config.DefaultConfig(), loop(t, "l", 1, 0, 1))

	meridional := f.eng.FieldAxial(0.5, 0.5, 1e-6)
	p := apis.Vec3{X: 0.3, Y: 0.4, Z: 0.5}
	got := f.eng.FieldAt(p, 1e-6)

	assert.InEpsilon(t, meridional.Axial, got.Z, 1e-14)
	assert.InEpsilon(t, meridional.Radial*0.6, got.X, 1e-14)
	assert.InEpsilon(t, meridional.Radial*0.8, got.Y, 1e-14)
}

func TestOrientation_RotationSymmetry(t *testing.T) {
	f := newFixture(t, config.DefaultConfig(), loop(t, "l", 1, 0, 1))

	for _, d := range []float64{-2, 0, 0.5, 3} {
		f.orient.Set(orientation.Z)
		alongZ := f.eng.FieldAt(apis.Vec3{Z: d}, 1e-6)
		f.orient.Set(orientation.X)
		alongX := f.eng.FieldAt(apis.Vec3{X: d}, 1e-6)

		assert.Equal(t, alongZ.Z, alongX.X, "d=%g", d)
		assert.Equal(t, alongZ.Norm(), alongX.Norm(), "d=%g", d)
		assert.Zero(t, alongX.Y)
		assert.Zero(t, alongX.Z)
	}
}

func TestFieldAxial_CenterOfLoop(t *testing.T) {
	f := newFixture(t, config.DefaultConfig(), loop(t, "l", 1, 0, 1))
	got := f.eng.FieldAxial(0, 0, 1e-6)
	assert.InEpsilon(t, kernel.Mu0/2, got.Axial, 1e-12)
}

func TestFieldAxial_NegativeRadiusFlipsRadial(t *testing.T) {
	f := newFixture(t, config.DefaultConfig(), loop(t, "l", 1, 0, 1))
	pos := f.eng.FieldAxial(0.4, 0.3, 1e-6)
	neg := f.eng.FieldAxial(0.4, -0.3, 1e-6)
	assert.Equal(t, pos.Axial, neg.Axial)
	assert.Equal(t, -pos.Radial, neg.Radial)
}

func TestCache_InvalidateAfterMutation(t *testing.T) {
	f := newFixture(t, config.DefaultConfig(), loop(t, "l", 1, 0, 1))

	before := f.eng.FieldAxial(0, 0, 1e-6)
	require.NoError(t, f.reg.Modify("l", apis.FieldCurrent, 2))

	assert.Equal(t, before, f.eng.FieldAxial(0, 0, 1e-6), "memoized until invalidated")

	f.eng.Invalidate()
	after := f.eng.FieldAxial(0, 0, 1e-6)
	assert.InEpsilon(t, 2*before.Axial, after.Axial, 1e-14)
}

func TestCache_Disabled(t *testing.T) {
	f := newFixture(t, config.NewConfig(config.WithCacheStrategy(apis.CacheNone)), loop(t, "l", 1, 0, 1))

	before := f.eng.FieldAxial(0, 0, 1e-6)
	require.NoError(t, f.reg.Modify("l", apis.FieldCurrent, -1))
	assert.Equal(t, -before.Axial, f.eng.FieldAxial(0, 0, 1e-6).Axial)
}

func TestCache_ZeroConfigMemoizes(t *testing.T) {
	f := newFixture(t, apis.Config{}, loop(t, "l", 1, 0, 1))

	before := f.eng.FieldAxial(0, 0, 0)
	require.NoError(t, f.reg.Modify("l", apis.FieldCurrent, 3))
	assert.Equal(t, before, f.eng.FieldAxial(0, 0, 0), "zero config keeps the default LRU cache")

	f.eng.Invalidate()
	assert.InEpsilon(t, 3*before.Axial, f.eng.FieldAxial(0, 0, 0).Axial, 1e-14)
}

func TestCache_ToleranceIsPartOfKey(t *testing.T) {
	s, err := source.NewAnnular("a", 1, 0.5, 0, 1)
	require.NoError(t, err)
	cfg := config.DefaultConfig()
	f := newFixture(t, cfg, s)

	coarse := f.eng.FieldAxial(0.1, 1.2, 1e-2)
	fine := f.eng.FieldAxial(0.1, 1.2, 1e-10)
	assert.Equal(t, s.Contribution(0.1, 1.2, 1e-2, cfg), coarse)
	assert.Equal(t, s.Contribution(0.1, 1.2, 1e-10, cfg), fine)
}

func TestFieldMany_MatchesFieldAt(t *testing.T) {
	thin, err := source.NewThinSolenoid("s", 0.5, 1, 0, 2)
	require.NoError(t, err)
	f := newFixture(t, config.NewConfig(config.WithWorkers(3)), thin, loop(t, "l", 1, 0.5, -1))
	f.orient.Set(orientation.Y)

	points := make([]apis.Vec3, 40)
	for i := range points {
		x := float64(i) / 10
		points[i] = apis.Vec3{X: x, Y: 1 - x, Z: 0.2 * x}
	}

	got, err := f.eng.FieldMany(context.Background(), points, 1e-6)
	require.NoError(t, err)
	require.Len(t, got, len(points))
	for i, p := range points {
		assert.Equal(t, f.eng.FieldAt(p, 1e-6), got[i], "point %d", i)
	}
}

func TestFieldMany_Cancelled(t *testing.T) {
	f := newFixture(t, config.DefaultConfig(), loop(t, "l", 1, 0, 1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := f.eng.FieldMany(ctx, []apis.Vec3{{Z: 1}, {Z: 2}}, 1e-6)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}

func TestConcurrentQueries(t *testing.T) {
	coil, err := source.NewCoilSolenoid("c", 0.5, 0.1, 1, 0, 1)
	require.NoError(t, err)
	f := newFixture(t, config.NewConfig(config.WithCacheSize(8)), coil)

	want := f.eng.FieldAxial(0.2, 0.3, 1e-6)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				got := f.eng.FieldAxial(0.2, 0.3, 1e-6)
				if got != want {
					t.Errorf("worker %d: got %+v, want %+v", w, got, want)
					return
				}
				_ = f.eng.FieldAt(apis.Vec3{X: float64(i) / 20, Z: float64(w) / 8}, 1e-4)
			}
		}(w)
	}
	wg.Wait()
}
