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

package registry

import (
	"slices"
	"strings"

	"dirpx.dev/coils/apis"
)

// reserved holds words that collide with system and axis keywords.
// It is fixed for the lifetime of the process.
var reserved = map[string]struct{}{
	"":       {},
	"system": {},
	"axis":   {},
	"all":    {},
	"field":  {},
	"x":      {},
	"y":      {},
	"z":      {},
	"r":      {},
}

// Reserved returns the reserved words in sorted order.
func Reserved() []string {
	out := make([]string, 0, len(reserved))
	for w := range reserved {
		if w != "" {
			out = append(out, w)
		}
	}
	slices.Sort(out)
	return out
}

// IsReserved reports whether word may not be used as an id. Matching ignores
// case and surrounding whitespace; the empty word is reserved.
func IsReserved(word string) bool {
	_, ok := reserved[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

// New constructs an empty Registry.
func New() apis.Registry {
	return &registry{m: make(map[string]apis.Source)}
}

// registry is a map plus an id slice that keeps insertion order.
// It does no locking; see apis.Registry.
type registry struct {
	// order lists ids in insertion order.
	order []string
	// m maps id to the owned source.
	m map[string]apis.Source
}

// Insert appends src under src.ID().
func (r *registry) Insert(src apis.Source) error {
	id := src.ID()
	if IsReserved(id) {
		return &apis.ReservedWordError{Word: id}
	}
	if _, ok := r.m[id]; ok {
		return &apis.KeyDuplicateError{ID: id}
	}
	r.m[id] = src
	r.order = append(r.order, id)
	return nil
}

// Lookup returns a copy of the source registered under id.
func (r *registry) Lookup(id string) (apis.Source, error) {
	s, ok := r.m[id]
	if !ok {
		return nil, &apis.KeyMissingError{ID: id}
	}
	return s.Clone(), nil
}

// Modify overwrites one field of the source registered under id in place.
func (r *registry) Modify(id string, field apis.Field, value float64) error {
	s, ok := r.m[id]
	if !ok {
		return &apis.KeyMissingError{ID: id}
	}
	return s.Set(field, value)
}

// Remove deletes the source registered under id.
func (r *registry) Remove(id string) error {
	if _, ok := r.m[id]; !ok {
		return &apis.KeyMissingError{ID: id}
	}
	delete(r.m, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return nil
}

// Range calls fn for every source in insertion order until fn returns false.
func (r *registry) Range(fn func(apis.Source) bool) {
	for _, id := range r.order {
		if !fn(r.m[id]) {
			return
		}
	}
}

// Entries returns copies of all sources in insertion order.
func (r *registry) Entries() []apis.Source {
	out := make([]apis.Source, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.m[id].Clone())
	}
	return out
}

// IDs returns all ids in insertion order.
func (r *registry) IDs() []string {
	return slices.Clone(r.order)
}

// Count returns the number of registered sources.
func (r *registry) Count() int {
	return len(r.order)
}

// Reset removes all sources.
func (r *registry) Reset() {
	r.order = nil
	r.m = make(map[string]apis.Source)
}

// IsReserved reports whether word may not be used as an id.
func (r *registry) IsReserved(word string) bool {
	return IsReserved(word)
}
