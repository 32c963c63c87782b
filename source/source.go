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

// Package source implements the four axially-symmetric current sources:
// Loop, Annular, ThinSolenoid and CoilSolenoid.
//
// A Source is a closed tagged variant: its Kind is fixed at construction and
// every kind-dependent behavior (which fields exist, which field law applies)
// is an exhaustive switch on it.
//
// Geometry conventions:
//   - radius is the inner radius; radially thick kinds extend outwards to
//     radius+thickness.
//   - position is the plane of a Loop or Annular, and the axial centre of a
//     solenoid, which spans position±length/2.
//   - current is the total current (ampere-turns) of the source, spread
//     uniformly over its cross-section.
package source

import (
	"math"
	"strconv"
	"strings"

	"dirpx.dev/coils/apis"
)

// Source is the concrete apis.Source.
type Source struct {
	id        string
	kind      apis.Kind
	radius    float64
	thickness float64
	length    float64
	position  float64
	current   float64
}

// Ensure Source implements apis.Source.
var _ apis.Source = (*Source)(nil)

// NewLoop creates a filamentary loop.
func NewLoop(id string, radius, position, current float64) (*Source, error) {
	return build(&Source{id: id, kind: apis.KindLoop, radius: radius, position: position, current: current})
}

// NewAnnular creates a flat ring covering radii [radius, radius+thickness].
func NewAnnular(id string, radius, thickness, position, current float64) (*Source, error) {
	return build(&Source{id: id, kind: apis.KindAnnular, radius: radius, thickness: thickness,
		position: position, current: current})
}

// NewThinSolenoid creates a current sheet of the given radius and axial length.
func NewThinSolenoid(id string, radius, length, position, current float64) (*Source, error) {
	return build(&Source{id: id, kind: apis.KindThinSolenoid, radius: radius, length: length,
		position: position, current: current})
}

// NewCoilSolenoid creates a winding with radial thickness and axial length.
func NewCoilSolenoid(id string, radius, thickness, length, position, current float64) (*Source, error) {
	return build(&Source{id: id, kind: apis.KindCoilSolenoid, radius: radius, thickness: thickness,
		length: length, position: position, current: current})
}

// build validates every field of s.
func build(s *Source) (*Source, error) {
	for _, f := range s.Fields() {
		v, _ := s.Get(f)
		if err := s.check(f, v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ID returns the registry key of s.
func (s *Source) ID() string { return s.id }

// Kind returns the geometry kind of s.
func (s *Source) Kind() apis.Kind { return s.kind }

// Fields lists the numeric fields of s in display order.
func (s *Source) Fields() []apis.Field {
	return FieldsOf(s.kind)
}

// FieldsOf lists the numeric fields of kind k in display order.
func FieldsOf(k apis.Kind) []apis.Field {
	switch k {
	case apis.KindLoop:
		return []apis.Field{apis.FieldRadius, apis.FieldPosition, apis.FieldCurrent}
	case apis.KindAnnular:
		return []apis.Field{apis.FieldRadius, apis.FieldThickness, apis.FieldPosition, apis.FieldCurrent}
	case apis.KindThinSolenoid:
		return []apis.Field{apis.FieldRadius, apis.FieldLength, apis.FieldPosition, apis.FieldCurrent}
	case apis.KindCoilSolenoid:
		return []apis.Field{apis.FieldRadius, apis.FieldThickness, apis.FieldLength, apis.FieldPosition, apis.FieldCurrent}
	default:
		return nil
	}
}

// Has reports whether kind k has field f.
func Has(k apis.Kind, f apis.Field) bool {
	for _, g := range FieldsOf(k) {
		if g == f {
			return true
		}
	}
	return false
}

// Get returns the value of field f.
func (s *Source) Get(f apis.Field) (float64, error) {
	p := s.ref(f)
	if p == nil {
		return 0, &apis.IncompatiblePrimitiveError{Field: f, Kind: s.kind}
	}
	return *p, nil
}

// Set overwrites field f. It fails with *apis.IncompatiblePrimitiveError when
// the kind has no such field and with *apis.InvalidGeometryError when value
// is out of range; s is unchanged in both cases.
func (s *Source) Set(f apis.Field, value float64) error {
	p := s.ref(f)
	if p == nil {
		return &apis.IncompatiblePrimitiveError{Field: f, Kind: s.kind}
	}
	if err := s.check(f, value); err != nil {
		return err
	}
	*p = value
	return nil
}

// ref returns the storage of field f, or nil when the kind lacks it.
func (s *Source) ref(f apis.Field) *float64 {
	if !Has(s.kind, f) {
		return nil
	}
	switch f {
	case apis.FieldRadius:
		return &s.radius
	case apis.FieldThickness:
		return &s.thickness
	case apis.FieldLength:
		return &s.length
	case apis.FieldPosition:
		return &s.position
	case apis.FieldCurrent:
		return &s.current
	}
	return nil
}

// check validates value for field f.
func (s *Source) check(f apis.Field, value float64) error {
	ok := !math.IsNaN(value) && !math.IsInf(value, 0)
	switch f {
	case apis.FieldRadius, apis.FieldLength:
		ok = ok && value > 0
	case apis.FieldThickness:
		ok = ok && value >= 0
	}
	if !ok {
		return &apis.InvalidGeometryError{ID: s.id, Field: f, Value: value}
	}
	return nil
}

// Clone returns an independent copy of s.
func (s *Source) Clone() apis.Source {
	c := *s
	return &c
}

// String renders s as `Kind "id": field=value, ...`.
func (s *Source) String() string {
	var b strings.Builder
	b.WriteString(s.kind.String())
	b.WriteByte(' ')
	b.WriteString(strconv.Quote(s.id))
	b.WriteByte(':')
	for i, f := range s.Fields() {
		if i > 0 {
			b.WriteByte(',')
		}
		v, _ := s.Get(f)
		b.WriteByte(' ')
		b.WriteString(string(f))
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}
