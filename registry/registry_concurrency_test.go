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

package registry_test

import (
	"runtime"
	"strconv"
	"sync"
	"testing"

	"dirpx.dev/coils/apis"
	"dirpx.dev/coils/registry"
)

// TestConcurrentReaders verifies that Lookup/Range/Entries/Count are
// race-free when no writer runs at the same time.
func TestConcurrentReaders(t *testing.T) {
	reg := registry.New()

	ids := make([]string, 10)
	for i := range ids {
		ids[i] = "coil" + strconv.Itoa(i)
		if err := reg.Insert(mustLoop(t, ids[i], float64(i+1))); err != nil {
			t.Fatalf("insert %s: %v", ids[i], err)
		}
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				id := ids[i%len(ids)]
				s, err := reg.Lookup(id)
				if err != nil || s.ID() != id {
					t.Errorf("lookup failed for %s: %v", id, err)
					return
				}
				n := 0
				reg.Range(func(apis.Source) bool { n++; return true })
				if n != len(ids) || reg.Count() != len(ids) {
					t.Errorf("Range saw %d sources, Count() = %d, want %d", n, reg.Count(), len(ids))
					return
				}
				_ = reg.Entries()
			}
		}()
	}
	wg.Wait()
}
