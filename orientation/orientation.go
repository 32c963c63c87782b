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

// Package orientation maps the symmetry axis of a coil system onto one of
// the three lab axes.
//
// Only axis-aligned alignments exist, so the state is a three-valued Axis
// rather than a rotation matrix, and the coordinate maps are pure functions
// of it. The radial plane of each alignment is spanned by the two remaining
// lab axes in cyclic order: Z uses (x, y), X uses (y, z), Y uses (z, x).
package orientation

import (
	"math"

	"dirpx.dev/coils/apis"
)

// Axis is a lab axis playing the role of the intrinsic axial direction.
// The zero value is Z, the default alignment.
type Axis uint8

const (
	Z Axis = iota
	X
	Y
)

// String returns "x", "y" or "z".
func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return "?"
	}
}

// Orientation holds the current alignment of a system. The zero value is
// aligned with Z and ready to use.
type Orientation struct {
	axis Axis
}

// Ensure Orientation implements apis.Frame.
var _ apis.Frame = (*Orientation)(nil)

// New returns an Orientation aligned with Z.
func New() *Orientation {
	return &Orientation{axis: Z}
}

// Axis returns the current alignment.
func (o *Orientation) Axis() Axis {
	return o.axis
}

// Set aligns the system axis with a. The alignment is absolute: it replaces
// the previous one instead of composing with it. Set reports whether the
// alignment changed.
func (o *Orientation) Set(a Axis) bool {
	if o.axis == a {
		return false
	}
	o.axis = a
	return true
}

// ToIntrinsic returns the axial coordinate, radial distance and azimuth of p.
func (o *Orientation) ToIntrinsic(p apis.Vec3) (z, r, phi float64) {
	axial, u, v := split(o.axis, p)
	return axial, math.Hypot(u, v), math.Atan2(v, u)
}

// ToLab resolves an (axial, radial) vector at azimuth phi into lab coordinates.
// A zero radial component yields an exactly axial vector whatever phi is.
func (o *Orientation) ToLab(axial, radial, phi float64) apis.Vec3 {
	if radial == 0 {
		return join(o.axis, axial, 0, 0)
	}
	sin, cos := math.Sincos(phi)
	return join(o.axis, axial, radial*cos, radial*sin)
}

// split returns the axial component and the two radial-plane components of p.
func split(a Axis, p apis.Vec3) (axial, u, v float64) {
	switch a {
	case X:
		return p.X, p.Y, p.Z
	case Y:
		return p.Y, p.Z, p.X
	default:
		return p.Z, p.X, p.Y
	}
}

// join is the inverse of split.
func join(a Axis, axial, u, v float64) apis.Vec3 {
	switch a {
	case X:
		return apis.Vec3{X: axial, Y: u, Z: v}
	case Y:
		return apis.Vec3{X: v, Y: axial, Z: u}
	default:
		return apis.Vec3{X: u, Y: v, Z: axial}
	}
}
