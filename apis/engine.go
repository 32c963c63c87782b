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

package apis

import "context"

// Engine superposes the contributions of every source of a Registry.
type Engine interface {
	// FieldAt returns the lab-frame field at p.
	FieldAt(p Vec3, tol float64) Vec3
	// FieldAxial returns the (axial, radial) field at axial coordinate z and
	// radial distance r, bypassing the frame.
	FieldAxial(z, r, tol float64) Vec2
	// FieldMany evaluates FieldAt for every point. It stops early when ctx is done.
	FieldMany(ctx context.Context, points []Vec3, tol float64) ([]Vec3, error)
	// Invalidate drops every memoized result. Callers must invoke it after
	// mutating the registry the engine reads from.
	Invalidate()
}

// Frame maps between lab coordinates and the intrinsic cylindrical frame
// (axial coordinate, radial distance, azimuth) of an axially-symmetric system.
type Frame interface {
	// ToIntrinsic returns the axial coordinate, radial distance and azimuth of p.
	ToIntrinsic(p Vec3) (z, r, phi float64)
	// ToLab resolves an (axial, radial) vector at azimuth phi into lab coordinates.
	ToLab(axial, radial, phi float64) Vec3
}
