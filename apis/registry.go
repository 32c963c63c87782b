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

// Registry is an insertion-ordered, id-keyed collection of sources.
// It owns its sources exclusively: read accessors hand out copies, and
// numeric fields change only through Modify.
//
// Implementations are not required to be safe for concurrent mutation.
// Concurrent readers are fine as long as no writer runs at the same time.
type Registry interface {
	// Insert appends src. It fails with *ReservedWordError when the id is
	// empty or reserved and with *KeyDuplicateError when the id is taken.
	Insert(src Source) error
	// Lookup returns a copy of the source registered under id.
	Lookup(id string) (Source, error)
	// Modify overwrites one numeric field of the source registered under id.
	Modify(id string, field Field, value float64) error
	// Remove deletes the source registered under id.
	Remove(id string) error
	// Range calls fn for every source in insertion order until fn returns false.
	// fn must not retain or mutate the source.
	Range(fn func(Source) bool)
	// Entries returns copies of all sources in insertion order.
	Entries() []Source
	// IDs returns all ids in insertion order.
	IDs() []string
	// Count returns the number of registered sources.
	Count() int
	// Reset removes all sources.
	Reset()
	// IsReserved reports whether word may not be used as an id.
	IsReserved(word string) bool
}
