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

// Config carries numerical knobs for field evaluation.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// DefaultTolerance replaces a tolerance that is NaN, infinite or non-positive.
	DefaultTolerance float64

	// MinTolerance and MaxTolerance bound every tolerance handed to the
	// quadrature. Smaller values trade evaluation time for accuracy.
	MinTolerance float64
	MaxTolerance float64

	// MaxDepth limits adaptive bisection depth per integral.
	// Acts as a safety guard against pathological integrands.
	MaxDepth int

	// PanelNodes is the number of Gauss-Legendre nodes per quadrature panel.
	PanelNodes int

	// CacheStrategy selects the memoization policy of an engine.
	CacheStrategy CacheStrategy

	// CacheSize is the number of memoized meridional field sums kept by an
	// engine under CacheLRU.
	CacheSize int

	// Workers bounds the goroutines used by batch field evaluation.
	Workers int
}
