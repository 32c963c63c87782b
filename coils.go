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

package coils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"dirpx.dev/coils/apis"
	"dirpx.dev/coils/builder"
	"dirpx.dev/coils/config"
	"dirpx.dev/coils/orientation"
	"dirpx.dev/coils/source"
)

var (
	// ErrNilRegistry is raised when a builder returns a nil registry.
	ErrNilRegistry = errors.New("coils: builder returned nil registry")
	// ErrNilEngine is raised when a builder returns a nil engine.
	ErrNilEngine = errors.New("coils: builder returned nil engine")
)

// The failure vocabulary of a System. Every returned error matches exactly
// one of these via errors.Is.
var (
	ErrKeyMissing            = apis.ErrKeyMissing
	ErrKeyDuplicate          = apis.ErrKeyDuplicate
	ErrIncompatiblePrimitive = apis.ErrIncompatiblePrimitive
	ErrReservedWord          = apis.ErrReservedWord
	ErrInvalidGeometry       = apis.ErrInvalidGeometry
)

type (
	KeyMissingError            = apis.KeyMissingError
	KeyDuplicateError          = apis.KeyDuplicateError
	IncompatiblePrimitiveError = apis.IncompatiblePrimitiveError
	ReservedWordError          = apis.ReservedWordError
	InvalidGeometryError       = apis.InvalidGeometryError
)

// Option configures a System at construction.
type Option func(*System)

// WithConfig sets the numeric configuration. A zero Config means defaults.
func WithConfig(cfg apis.Config) Option {
	return func(s *System) { s.cfg = config.Sanitize(cfg) }
}

// WithLogger sets the logger mutations are reported to. Nil is ignored.
func WithLogger(logger log.Logger) Option {
	return func(s *System) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBuilder replaces the default builder. Nil is ignored.
func WithBuilder(b apis.Builder) Option {
	return func(s *System) {
		if b != nil {
			s.bld = b
		}
	}
}

// System is an assembly of axially-symmetric sources sharing one axis.
//
// Queries may run concurrently with each other. Mutations (adding, modifying
// and removing sources, reorienting, reconfiguring) are exclusive.
type System struct {
	mu     sync.RWMutex
	cfg    apis.Config
	bld    apis.Builder
	reg    apis.Registry
	eng    apis.Engine
	orient *orientation.Orientation
	logger log.Logger
}

// NewSystem returns an empty System aligned with the z axis.
func NewSystem(opts ...Option) *System {
	s := &System{
		cfg:    config.DefaultConfig(),
		orient: orientation.New(),
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bld == nil {
		s.bld = builder.New(builder.WithLogger(s.logger))
	}
	s.reg, s.eng = s.build(s.cfg, nil)
	return s
}

// build constructs a registry and engine for cfg through the builder,
// migrating the sources of prev. It leaves s untouched.
func (s *System) build(cfg apis.Config, prev apis.Registry) (apis.Registry, apis.Engine) {
	nreg := s.bld.BuildRegistry(cfg, prev)
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	neng := s.bld.BuildEngine(cfg, nreg, s.orient)
	if neng == nil {
		panic(ErrNilEngine)
	}
	return nreg, neng
}

// Config returns the active configuration.
func (s *System) Config() apis.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Reconfigure switches to cfg, rebuilding registry and engine while keeping
// every source and the current orientation. A panicking builder leaves the
// System as it was.
func (s *System) Reconfigure(cfg apis.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ncfg := config.Sanitize(cfg)
	nreg, neng := s.build(ncfg, s.reg)

	kept := make(map[string]struct{}, nreg.Count())
	for _, id := range nreg.IDs() {
		kept[id] = struct{}{}
	}
	for _, id := range s.reg.IDs() {
		if _, ok := kept[id]; !ok {
			level.Warn(s.logger).Log("msg", "source lost on reconfigure", "id", id)
		}
	}

	s.cfg, s.reg, s.eng = ncfg, nreg, neng
	level.Debug(s.logger).Log("msg", "reconfigured", "sources", nreg.Count())
}

// TransformX aligns the system axis with x.
func (s *System) TransformX() { s.transform(orientation.X) }

// TransformY aligns the system axis with y.
func (s *System) TransformY() { s.transform(orientation.Y) }

// TransformZ aligns the system axis with z.
func (s *System) TransformZ() { s.transform(orientation.Z) }

func (s *System) transform(a orientation.Axis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orient.Set(a) {
		level.Debug(s.logger).Log("msg", "reoriented", "axis", a)
	}
}

// Orientation returns the lab axis the system axis is aligned with.
func (s *System) Orientation() orientation.Axis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orient.Axis()
}

// AddLoop adds a filamentary ring of the given radius in the plane z=position.
func (s *System) AddLoop(id string, radius, position, current float64) error {
	src, err := source.NewLoop(id, radius, position, current)
	return s.add(id, apis.KindLoop, src, err)
}

// AddAnnular adds a flat ring spanning radius to radius+thickness in the
// plane z=position.
func (s *System) AddAnnular(id string, radius, thickness, position, current float64) error {
	src, err := source.NewAnnular(id, radius, thickness, position, current)
	return s.add(id, apis.KindAnnular, src, err)
}

// AddThinSolenoid adds a current sheet of the given radius and length
// centred on position.
func (s *System) AddThinSolenoid(id string, radius, length, position, current float64) error {
	src, err := source.NewThinSolenoid(id, radius, length, position, current)
	return s.add(id, apis.KindThinSolenoid, src, err)
}

// AddCoilSolenoid adds a thick winding spanning radius to radius+thickness
// and length centred on position.
func (s *System) AddCoilSolenoid(id string, radius, thickness, length, position, current float64) error {
	src, err := source.NewCoilSolenoid(id, radius, thickness, length, position, current)
	return s.add(id, apis.KindCoilSolenoid, src, err)
}

func (s *System) add(id string, kind apis.Kind, src *source.Source, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		err = s.reg.Insert(src)
	}
	if err != nil {
		level.Warn(s.logger).Log("msg", "add rejected", "id", id, "kind", kind, "err", err)
		return err
	}
	s.eng.Invalidate()
	level.Debug(s.logger).Log("msg", "source added", "id", id, "kind", kind)
	return nil
}

// ModifyRadius sets the radius of the source id.
func (s *System) ModifyRadius(id string, radius float64) error {
	return s.modify(id, apis.FieldRadius, radius)
}

// ModifyCurrent sets the current of the source id.
func (s *System) ModifyCurrent(id string, current float64) error {
	return s.modify(id, apis.FieldCurrent, current)
}

// ModifyThickness sets the thickness of the source id. Only Annular and
// CoilSolenoid sources have one.
func (s *System) ModifyThickness(id string, thickness float64) error {
	return s.modify(id, apis.FieldThickness, thickness)
}

// ModifyLength sets the length of the source id. Only ThinSolenoid and
// CoilSolenoid sources have one.
func (s *System) ModifyLength(id string, length float64) error {
	return s.modify(id, apis.FieldLength, length)
}

// ModifyPosition sets the axial position of the source id.
func (s *System) ModifyPosition(id string, position float64) error {
	return s.modify(id, apis.FieldPosition, position)
}

func (s *System) modify(id string, field apis.Field, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reg.Modify(id, field, value); err != nil {
		level.Warn(s.logger).Log("msg", "modify rejected", "id", id, "field", field, "value", value, "err", err)
		return err
	}
	s.eng.Invalidate()
	level.Debug(s.logger).Log("msg", "source modified", "id", id, "field", field, "value", value)
	return nil
}

// Remove deletes the source id.
func (s *System) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reg.Remove(id); err != nil {
		level.Warn(s.logger).Log("msg", "remove rejected", "id", id, "err", err)
		return err
	}
	s.eng.Invalidate()
	level.Debug(s.logger).Log("msg", "source removed", "id", id)
	return nil
}

// Reset removes every source. The orientation is kept.
func (s *System) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reg.Reset()
	s.eng.Invalidate()
	level.Debug(s.logger).Log("msg", "sources reset")
}

// IDs returns the ids of all sources in insertion order.
func (s *System) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.IDs()
}

// Len returns the number of sources.
func (s *System) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.Count()
}

// GetField returns the lab-frame (x, y, z) field in tesla at point.
// tol bounds the relative error of the integrated source kinds; invalid
// values fall back to the configured default.
func (s *System) GetField(point [3]float64, tol float64) [3]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.eng.FieldAt(apis.Vec3{X: point[0], Y: point[1], Z: point[2]}, tol)
	return [3]float64{v.X, v.Y, v.Z}
}

// GetFieldAxial returns the (axial, radial) field in tesla at axial
// coordinate z and radial distance r, ignoring the orientation.
func (s *System) GetFieldAxial(z, r, tol float64) [2]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.eng.FieldAxial(z, r, tol)
	return [2]float64{v.Axial, v.Radial}
}

// GetFieldMany is GetField for a batch of points, evaluated in parallel.
func (s *System) GetFieldMany(ctx context.Context, points [][3]float64, tol float64) ([][3]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	in := make([]apis.Vec3, len(points))
	for i, p := range points {
		in[i] = apis.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}
	vs, err := s.eng.FieldMany(ctx, in, tol)
	if err != nil {
		return nil, err
	}
	out := make([][3]float64, len(vs))
	for i, v := range vs {
		out[i] = [3]float64{v.X, v.Y, v.Z}
	}
	return out, nil
}

// View renders the source id.
func (s *System) View(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src, err := s.reg.Lookup(id)
	if err != nil {
		return "", err
	}
	return src.String(), nil
}

// Describe renders the system header followed by one line per source in
// insertion order.
func (s *System) Describe() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	fmt.Fprintf(&b, "AxialSystem (axis=%s, %d sources)", s.orient.Axis(), s.reg.Count())
	s.reg.Range(func(src apis.Source) bool {
		b.WriteString("\n  ")
		b.WriteString(src.String())
		return true
	})
	return b.String()
}

// String implements fmt.Stringer.
func (s *System) String() string {
	return s.Describe()
}
