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

// Package kernel holds the field laws shared by every source kind: the
// closed-form field of a circular current filament and an adaptive
// Gauss-Legendre quadrature for integrating it over a source's extent.
package kernel

import (
	"math"

	"gonum.org/v1/gonum/mathext"

	"dirpx.dev/coils/apis"
)

// Mu0 is the vacuum permeability in T·m/A.
const Mu0 = 4e-7 * math.Pi

const (
	// axisRatio is the r/a below which the on-axis expansion replaces the
	// elliptic form. Its truncation error is O((r/a)^2).
	axisRatio = 1e-8
	// seriesBound is the parameter m below which radialTerm switches to its
	// power series.
	seriesBound = 0.1
	// coreRatio is the regularization length, relative to the loop radius,
	// below which the distance to the filament is clamped.
	coreRatio = 1e-6
)

// Loop returns the (axial, radial) field of a circular filament of radius a
// carrying current i, at axial offset z from its plane and radial distance
// r >= 0 from its axis.
//
// Points closer to the filament than coreRatio*a see the field of the
// clamped distance, so the result is always finite.
func Loop(a, i, z, r float64) apis.Vec2 {
	if r < axisRatio*a {
		return onAxis(a, i, z, r)
	}

	a2, r2, z2 := a*a, r*r, z*z
	alpha2 := (a-r)*(a-r) + z2
	c := Mu0 * i / math.Pi

	if core := coreRatio * a; alpha2 < core*core {
		alpha2 = core * core
		beta2 := alpha2 + 4*a*r
		beta := math.Sqrt(beta2)
		m := clampUnit(1 - alpha2/beta2)
		k, e := mathext.CompleteK(m), mathext.CompleteE(m)
		return apis.Vec2{
			Axial:  c / (2 * alpha2 * beta) * ((a2-r2-z2)*e + alpha2*k),
			Radial: c * z / (2 * alpha2 * beta * r) * ((a2+r2+z2)*e - alpha2*k),
		}
	}

	beta2 := alpha2 + 4*a*r
	beta := math.Sqrt(beta2)
	m := clampUnit(4 * a * r / beta2)
	k, e := mathext.CompleteK(m), mathext.CompleteE(m)
	g := radialTerm(m, k, e)

	return apis.Vec2{
		Axial:  c / (2 * alpha2 * beta) * (2*a2*e - beta2*g),
		Radial: c * z * beta / (2 * alpha2 * r) * g,
	}
}

// radialTerm returns (1-m/2)E(m) - (1-m)K(m), which vanishes like m^2
// towards the axis where the two products cancel to the last digit.
func radialTerm(m, k, e float64) float64 {
	if m >= seriesBound {
		return (1-m/2)*e - (1-m)*k
	}
	// c holds ((2n)!/(4^n n!^2))^2, the K(m) series coefficients.
	c, mn := 0.25, m
	var sum float64
	for n := 2; n < 64; n++ {
		prev := c
		f := float64(2*n-1) / float64(2*n)
		c *= f * f
		mn *= m
		term := (-float64(2*n)*c/float64(2*n-1) + prev*(1+1/float64(2*(2*n-3)))) * mn
		sum += term
		if math.Abs(term) <= 1e-17*math.Abs(sum) {
			break
		}
	}
	return math.Pi / 2 * sum
}

// onAxis is the first-order expansion of the loop field about the axis.
func onAxis(a, i, z, r float64) apis.Vec2 {
	d2 := a*a + z*z
	d := math.Sqrt(d2)
	d3 := d2 * d
	return apis.Vec2{
		Axial:  Mu0 * i * a * a / (2 * d3),
		Radial: 3 * Mu0 * i * a * a * z * r / (4 * d3 * d2),
	}
}

func clampUnit(m float64) float64 {
	switch {
	case m < 0:
		return 0
	case m > 1:
		return 1
	}
	return m
}
