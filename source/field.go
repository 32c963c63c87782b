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

package source

import (
	"math"

	"dirpx.dev/coils/apis"
	"dirpx.dev/coils/config"
	"dirpx.dev/coils/kernel"
)

// Contribution returns the (axial, radial) field of s in tesla at axial
// coordinate z and radial distance |r|.
//
// Loops use the closed form. The other kinds integrate the loop law over
// their extent with a relative error of about tol, clamped by cfg.
func (s *Source) Contribution(z, r, tol float64, cfg apis.Config) apis.Vec2 {
	cfg = config.SanitizeNumerics(cfg)
	tol = config.ClampTolerance(cfg, tol)
	q := kernel.For(cfg)

	r = math.Abs(r)
	dz := z - s.position

	switch s.kind {
	case apis.KindLoop:
		return kernel.Loop(s.radius, s.current, dz, r)
	case apis.KindAnnular:
		return annular(q, s.radius, s.thickness, dz, r, tol).Scale(s.current)
	case apis.KindThinSolenoid:
		return sheet(q, s.radius, s.length, dz, r, tol).Scale(s.current)
	case apis.KindCoilSolenoid:
		return coil(q, s.radius, s.thickness, s.length, dz, r, tol).Scale(s.current)
	}
	return apis.Vec2{}
}

// annular is the unit-current field of a ring over radii [a, a+t].
func annular(q *kernel.Quadrature, a, t, dz, r, tol float64) apis.Vec2 {
	if t == 0 {
		return kernel.Loop(a, 1, dz, r)
	}
	f := func(rad float64) apis.Vec2 {
		return kernel.Loop(rad, 1, dz, r)
	}
	return q.Integrate(f, a, a+t, tol, r).Scale(1 / t)
}

// sheet is the unit-current field of a cylindrical sheet of radius a over
// axial offsets [-l/2, l/2].
func sheet(q *kernel.Quadrature, a, l, dz, r, tol float64) apis.Vec2 {
	f := func(zc float64) apis.Vec2 {
		return kernel.Loop(a, 1, dz-zc, r)
	}
	return q.Integrate(f, -l/2, l/2, tol, dz).Scale(1 / l)
}

// coil is the unit-current field of a winding over radii [a, a+t] and axial
// offsets [-l/2, l/2].
func coil(q *kernel.Quadrature, a, t, l, dz, r, tol float64) apis.Vec2 {
	if t == 0 {
		return sheet(q, a, l, dz, r, tol)
	}
	f := func(rad float64) apis.Vec2 {
		return sheet(q, rad, l, dz, r, tol)
	}
	return q.Integrate(f, a, a+t, tol, r).Scale(1 / t)
}
