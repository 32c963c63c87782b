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

import (
	"fmt"
	"strings"
)

// CacheStrategy selects how an engine memoizes meridional field sums.
//
// Capacity is configured separately through Config.CacheSize; the strategy
// only selects the broad class of behavior. The zero value is CacheLRU.
type CacheStrategy int

const (
	// CacheLRU keeps up to Config.CacheSize sums and evicts the least
	// recently used one when full.
	CacheLRU CacheStrategy = iota

	// CacheNone disables memoization. Every query recomputes every source.
	CacheNone
)

// String returns "LRU", "None", or "Unknown(<n>)" for out-of-range values.
func (cs CacheStrategy) String() string {
	switch cs {
	case CacheLRU:
		return "LRU"
	case CacheNone:
		return "None"
	default:
		return fmt.Sprintf("Unknown(%d)", int(cs))
	}
}

// ParseCacheStrategy is the inverse of String. Matching ignores case and
// surrounding whitespace.
func ParseCacheStrategy(s string) (CacheStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lru":
		return CacheLRU, nil
	case "none":
		return CacheNone, nil
	default:
		return 0, fmt.Errorf("coils: unknown cache strategy %q", s)
	}
}
