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

package kernel

import (
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/integrate/quad"

	"dirpx.dev/coils/apis"
)

// Integrand is a vector-valued function of one variable.
type Integrand func(x float64) apis.Vec2

// Quadrature integrates Integrands by adaptive bisection over Gauss-Legendre
// panels. It is immutable after construction and safe for concurrent use.
type Quadrature struct {
	// nodes and weights of the panel rule on [0, 1].
	nodes   []float64
	weights []float64
	// maxDepth bounds the bisection depth.
	maxDepth int
}

// roundoff is the relative error floor below which bisection stops even
// when the requested tolerance is tighter.
const roundoff = 64 * 2.220446049250313e-16

type ruleKey struct {
	nodes int
	depth int
}

// rules memoizes Quadratures by (nodes, depth).
var rules sync.Map // key: ruleKey, val: *Quadrature

// For returns the shared Quadrature for cfg's PanelNodes and MaxDepth.
func For(cfg apis.Config) *Quadrature {
	key := ruleKey{nodes: cfg.PanelNodes, depth: cfg.MaxDepth}
	if q, ok := rules.Load(key); ok {
		return q.(*Quadrature)
	}
	q, _ := rules.LoadOrStore(key, NewQuadrature(cfg.PanelNodes, cfg.MaxDepth))
	return q.(*Quadrature)
}

// NewQuadrature builds a rule with n nodes per panel and at most maxDepth
// levels of bisection. n below 1 is raised to 1 and negative depths to 0.
func NewQuadrature(n, maxDepth int) *Quadrature {
	if n < 1 {
		n = 1
	}
	if maxDepth < 0 {
		maxDepth = 0
	}
	q := &Quadrature{
		nodes:    make([]float64, n),
		weights:  make([]float64, n),
		maxDepth: maxDepth,
	}
	quad.Legendre{}.FixedLocations(q.nodes, q.weights, 0, 1)
	return q
}

// Integrate returns the integral of f over [a, b] with a relative error of
// roughly tol, measured against the integral of |f|.
//
// breaks are optional interior points where f is known to be singular or
// kinked; the interval is split there before any panel is evaluated.
func (q *Quadrature) Integrate(f Integrand, a, b, tol float64, breaks ...float64) apis.Vec2 {
	if a == b || math.IsNaN(a) || math.IsNaN(b) {
		return apis.Vec2{}
	}
	if a > b {
		return q.Integrate(f, b, a, tol, breaks...).Scale(-1)
	}

	cuts := make([]float64, 0, len(breaks)+2)
	cuts = append(cuts, a)
	for _, x := range breaks {
		if x > a && x < b {
			cuts = append(cuts, x)
		}
	}
	cuts = append(cuts, b)
	sort.Float64s(cuts[1 : len(cuts)-1])

	var sum apis.Vec2
	for i := 0; i+1 < len(cuts); i++ {
		if cuts[i] == cuts[i+1] {
			continue
		}
		sum = sum.Add(q.integrate(f, cuts[i], cuts[i+1], tol))
	}
	return sum
}

func (q *Quadrature) integrate(f Integrand, a, b, tol float64) apis.Vec2 {
	whole, mass := q.panel(f, a, b)
	if mass == 0 {
		return apis.Vec2{}
	}
	return q.refine(f, a, b, whole, tol*mass, roundoff*mass, 0)
}

// refine bisects [a, b] until the two halves agree with whole to within atol.
func (q *Quadrature) refine(f Integrand, a, b float64, whole apis.Vec2, atol, floor float64, depth int) apis.Vec2 {
	m := a + (b-a)/2
	left, _ := q.panel(f, a, m)
	right, _ := q.panel(f, m, b)
	sum := left.Add(right)

	diff := sum.Sub(whole).Norm1()
	if depth >= q.maxDepth || diff <= atol || diff <= floor || m <= a || m >= b {
		return sum
	}
	atol /= 2
	return q.refine(f, a, m, left, atol, floor, depth+1).
		Add(q.refine(f, m, b, right, atol, floor, depth+1))
}

// panel applies the fixed rule on [a, b]. It also returns the integral of
// |Axial|+|Radial|, used as the scale of the error target.
func (q *Quadrature) panel(f Integrand, a, b float64) (apis.Vec2, float64) {
	h := b - a
	var sum apis.Vec2
	var mass float64
	for i, x := range q.nodes {
		v := f(a + h*x)
		w := q.weights[i]
		sum.Axial += w * v.Axial
		sum.Radial += w * v.Radial
		mass += w * v.Norm1()
	}
	return sum.Scale(h), mass * h
}
