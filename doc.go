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

// Package coils computes the static magnetic field of assemblies of
// axially-symmetric current sources.
//
// A System holds an ordered set of sources sharing one symmetry axis and
// answers field queries anywhere in space. Fields are in tesla, lengths in
// metres, currents in amperes.
//
// # Sources
//
// Four kinds of source exist. Every source has a unique id, a current and an
// axial position; the geometry depends on the kind:
//
//   - Loop: a filamentary ring (radius) in the plane z=position.
//   - Annular: a flat ring from radius to radius+thickness in the plane
//     z=position.
//   - ThinSolenoid: a cylindrical current sheet of the given radius and
//     length, centred on position.
//   - CoilSolenoid: a thick winding from radius to radius+thickness with the
//     given length, centred on position.
//
// The current of a source is its total (ampere-turns) current, spread
// uniformly over the cross-section. A thickness of zero degenerates an
// Annular into a Loop and a CoilSolenoid into a ThinSolenoid.
//
// The loop field is closed form in complete elliptic integrals. The other
// kinds integrate it with adaptive Gauss-Legendre quadrature whose accuracy
// is driven by the tol argument of every query. Points on the axis or on a
// conductor always yield finite values.
//
// # Registry
//
// Ids are unique and must not be one of the reserved words (see
// registry.Reserved). Sources keep their insertion order, which is the order
// Describe renders them in. The kind of a source never changes; its numeric
// fields change through the Modify methods, which reject fields the kind
// does not have.
//
// # Orientation
//
// The system axis is aligned with one of the lab axes, z by default.
// TransformX, TransformY and TransformZ select the alignment absolutely, so
// calling one twice is the same as calling it once. GetField takes and
// returns lab coordinates; GetFieldAxial works in the meridional plane and
// ignores the alignment.
//
// # Concurrency
//
// Queries may run in parallel. Mutations take an exclusive lock. Field sums
// are memoized and the memo is dropped on every mutation, so a query never
// sees a stale value.
//
// # Usage
//
//	sys := coils.NewSystem()
//	if err := sys.AddLoop("ring", 1, 0, 1); err != nil {
//		return err
//	}
//	b := sys.GetField([3]float64{0, 0, 0}, 1e-9) // {0, 0, mu0/2}
//
// # Errors
//
// Every failure matches one of ErrKeyMissing, ErrKeyDuplicate,
// ErrIncompatiblePrimitive, ErrReservedWord or ErrInvalidGeometry via
// errors.Is, and unwraps with errors.As into the corresponding typed error
// carrying the offending id, field or word. Field queries never fail.
package coils
