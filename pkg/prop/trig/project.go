// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package trig

import (
	"math"

	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/float/round"
)

// maxShift bounds the number of periods an endpoint may be away from zero
// before projection is abandoned.
const maxShift = 1 << 50

// pointwise evaluates a function at a point, rounding in the active mode of a
// policy.
type pointwise func(*round.Policy, float64) (float64, error)

// curve describes a periodic function by its interval extension, together with
// the solutions of f(x) = c within a single period.
type curve struct {
	name   string
	eval   func(float.Interval) (float.Interval, error)
	period func() float.Interval
	// f at a point
	at pointwise
	// principal inverse of f at a point
	inverse pointwise
	// every solution of f(x) = c within a single period, given the principal
	// one
	branches func(r float.Interval) []float.Interval
	// points where f is unbounded (if any), within a single period
	poles []float.Interval
}

var sine = &curve{
	name:    "sin",
	eval:    float.Sin,
	period:  float.PiTwice,
	at:      (*round.Policy).Sin,
	inverse: (*round.Policy).Asin,
	branches: func(r float.Interval) []float.Interval {
		return []float.Interval{r, float.Pi().Sub(r)}
	},
}

var cosine = &curve{
	name:    "cos",
	eval:    float.Cos,
	period:  float.PiTwice,
	at:      (*round.Policy).Cos,
	inverse: (*round.Policy).Acos,
	branches: func(r float.Interval) []float.Interval {
		return []float.Interval{r, r.Neg()}
	},
}

var tangent = &curve{
	name:    "tan",
	eval:    float.Tan,
	period:  float.Pi,
	at:      (*round.Policy).Tan,
	inverse: (*round.Policy).Atan,
	branches: func(r float.Interval) []float.Interval {
		return []float.Interval{r}
	},
	poles: []float.Interval{float.PiHalf()},
}

// project returns the smallest interval within x enclosing every value whose
// image lies in y, or false when there is none.  Bounds are moved only onto
// enclosures of points where the function crosses a bound of y.  Scalar bounds
// are computed with the given policy.
func (c *curve) project(p *round.Policy, x, y float.Interval) (float.Interval, bool) {
	if !x.IsBounded() {
		return x, true
	}
	//
	var (
		pr     = &projection{curve: c, policy: p, y: y, period: c.period()}
		lo, hi = pr.lower(x.Min()), pr.upper(x.Max())
	)
	//
	if lo > hi {
		return float.Interval{}, false
	}
	//
	r, err := float.New(lo, hi)
	//
	return r, err == nil
}

// projection holds the state of projecting a single interval.  The solutions
// of f at the bounds of y are computed at most once, and only when a bound of x
// has to move.
type projection struct {
	curve  *curve
	policy *round.Policy
	y      float.Interval
	period float.Interval
	// solutions within a single period, once solved
	solutions []float.Interval
	solved    bool
}

// lower returns a lower bound on the least value at or above a whose image is
// in y.  The bound exceeds every finite value when there is no such value.
func (pr *projection) lower(a float64) float64 {
	if pr.holds(a) {
		return a
	}
	//
	lo := math.Inf(1)
	//
	for _, r := range pr.crossings(a) {
		// crossings certainly below a are irrelevant
		if r.Max() >= a {
			lo = min(lo, r.Min())
		}
	}
	//
	return max(a, lo)
}

// upper returns an upper bound on the greatest value at or below b whose image
// is in y.
func (pr *projection) upper(b float64) float64 {
	if pr.holds(b) {
		return b
	}
	//
	hi := math.Inf(-1)
	//
	for _, r := range pr.crossings(b) {
		if r.Min() <= b {
			hi = max(hi, r.Max())
		}
	}
	//
	return min(b, hi)
}

// holds checks whether the image of v may lie in y.  Far away from zero this
// is always assumed.
func (pr *projection) holds(v float64) bool {
	if math.Abs(pr.periods(v)) > maxShift {
		return true
	} else if fv, err := enclose(pr.policy, pr.curve.at, v); err != nil || float.Overlap(fv, pr.y) {
		return true
	}
	//
	return false
}

// crossings returns enclosures of the points within two periods of v where the
// function enters or leaves y.
func (pr *projection) crossings(v float64) []float.Interval {
	var (
		n       = pr.periods(v)
		base    = pr.solve()
		crosses = make([]float.Interval, 0, 5*len(base))
	)
	//
	for k := n - 2; k <= n+2; k++ {
		for _, b := range base {
			crosses = append(crosses, pr.shift(b, k))
		}
	}
	//
	return crosses
}

// solve returns the points within a single period where the function equals a
// bound of y.  An unbounded y is entered at a pole.
func (pr *projection) solve() []float.Interval {
	if pr.solved {
		return pr.solutions
	}
	//
	for _, b := range []float64{pr.y.Min(), pr.y.Max()} {
		if math.IsInf(b, 0) {
			continue
		} else if r, err := enclose(pr.policy, pr.curve.inverse, b); err == nil {
			pr.solutions = append(pr.solutions, pr.curve.branches(r)...)
		}
	}
	//
	if !pr.y.IsBounded() {
		pr.solutions = append(pr.solutions, pr.curve.poles...)
	}
	//
	pr.solved = true
	//
	return pr.solutions
}

// periods returns the number of whole periods from zero to v, rounded
// downwards.
func (pr *projection) periods(v float64) float64 {
	p := pr.policy
	//
	defer p.Enter(round.Downward).Restore()
	//
	if v < 0 {
		return p.Int(p.Div(v, pr.period.Min()))
	}
	//
	return p.Int(p.Div(v, pr.period.Max()))
}

// shift returns an enclosure of b + k*period, for integral k.
func (pr *projection) shift(b float.Interval, k float64) float.Interval {
	var (
		p      = pr.policy
		lo, hi = pr.period.Min(), pr.period.Max()
	)
	// negative multiples are least for the greatest period
	if k < 0 {
		lo, hi = hi, lo
	}
	//
	down := p.Enter(round.Downward)
	l := p.Add(b.Min(), p.Mul(k, lo))
	down.Restore()
	//
	up := p.Enter(round.Upward)
	h := p.Add(b.Max(), p.Mul(k, hi))
	up.Restore()
	//
	r, _ := float.New(l, h)
	//
	return r
}

// enclose evaluates f at v downwards and then upwards, giving an interval
// enclosing the exact value.
func enclose(p *round.Policy, f pointwise, v float64) (float.Interval, error) {
	down := p.Enter(round.Downward)
	lo, err := f(p, v)
	down.Restore()
	//
	if err != nil {
		return float.Interval{}, err
	}
	//
	up := p.Enter(round.Upward)
	hi, err := f(p, v)
	up.Restore()
	//
	if err != nil {
		return float.Interval{}, err
	}
	//
	return float.New(lo, hi)
}
