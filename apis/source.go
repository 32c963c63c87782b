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

import "math"

// Kind identifies the geometry of a source. It never changes after creation.
type Kind uint8

const (
	// KindLoop is a filamentary circular loop.
	KindLoop Kind = iota + 1
	// KindAnnular is a flat ring with radial thickness.
	KindAnnular
	// KindThinSolenoid is a cylindrical current sheet with axial length.
	KindThinSolenoid
	// KindCoilSolenoid is a winding with both radial thickness and axial length.
	KindCoilSolenoid
)

// String returns the human-readable name of k.
func (k Kind) String() string {
	switch k {
	case KindLoop:
		return "Loop"
	case KindAnnular:
		return "Annular"
	case KindThinSolenoid:
		return "ThinSolenoid"
	case KindCoilSolenoid:
		return "CoilSolenoid"
	default:
		return "Unknown"
	}
}

// Field names a numeric parameter of a source.
type Field string

const (
	FieldRadius    Field = "radius"
	FieldThickness Field = "thickness"
	FieldLength    Field = "length"
	FieldPosition  Field = "position"
	FieldCurrent   Field = "current"
)

// Vec2 is a field vector in the meridional plane of an axially-symmetric system.
type Vec2 struct {
	Axial  float64
	Radial float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{Axial: v.Axial + o.Axial, Radial: v.Radial + o.Radial} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{Axial: v.Axial - o.Axial, Radial: v.Radial - o.Radial} }

// Scale returns s*v.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{Axial: s * v.Axial, Radial: s * v.Radial} }

// Norm1 returns |Axial|+|Radial|.
func (v Vec2) Norm1() float64 { return math.Abs(v.Axial) + math.Abs(v.Radial) }

// Vec3 is a point or field vector in lab coordinates.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Source is a single axially-symmetric current-carrying primitive.
//
// Contribution is a pure function of the source geometry and its arguments;
// it must return finite values everywhere, including on the axis and on the
// conductor itself.
type Source interface {
	// ID returns the registry key of the source.
	ID() string
	// Kind returns the immutable geometry kind.
	Kind() Kind
	// Fields lists the numeric fields of this kind in display order.
	Fields() []Field
	// Get returns the value of field f.
	Get(f Field) (float64, error)
	// Set overwrites field f. The source is unchanged when an error is returned.
	Set(f Field, value float64) error
	// Contribution returns the (axial, radial) field in tesla produced at
	// axial coordinate z and radial distance r >= 0 of the system frame.
	Contribution(z, r, tol float64, cfg Config) Vec2
	// Clone returns an independent copy.
	Clone() Source
	// String renders id, kind and all numeric fields.
	String() string
}
