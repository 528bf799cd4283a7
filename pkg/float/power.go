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
package float

import (
	"math"

	"github.com/consensys/go-fprop/pkg/float/round"
)

// Pow returns an interval enclosing x^n for a non-negative exponent n.  For
// even n, the result is non-negative even when x straddles zero.
func Pow(x Interval, n int) (Interval, error) {
	switch {
	case n < 0:
		return Interval{}, opError("pow", ErrUndefined, x, n)
	case n == 0:
		return Point(1), nil
	case n%2 == 1:
		return Interval{powDown(x.lo, n), powUp(x.hi, n)}, nil
	case x.lo >= 0:
		return Interval{powDown(x.lo, n), powUp(x.hi, n)}, nil
	case x.hi <= 0:
		return Interval{powDown(-x.hi, n), powUp(-x.lo, n)}, nil
	}
	//
	return Interval{0, powUp(max(-x.lo, x.hi), n)}, nil
}

// Square returns an interval enclosing x^2.
func Square(x Interval) Interval {
	// cannot fail
	r, _ := Pow(x, 2)
	//
	return r
}

// NthRoot returns an interval enclosing the real n-th roots of x, for n >= 1.
// For even n, negative values of x have no root: they are discarded, and an
// interval with no non-negative values is undefined.  For odd n, the root of a
// negative value is negative.
func NthRoot(x Interval, n int) (Interval, error) {
	switch {
	case n < 1:
		return Interval{}, opError("nroot", ErrUndefined, x, n)
	case n == 1:
		return x, nil
	case n%2 == 0 && x.hi < 0:
		return Interval{}, opError("nroot", ErrUndefined, x, n)
	case n%2 == 0:
		return Interval{rootDown(max(x.lo, 0), n), rootUp(x.hi, n)}, nil
	}
	//
	return Interval{rootDown(x.lo, n), rootUp(x.hi, n)}, nil
}

// Sqrt returns an interval enclosing the square root of x.
func Sqrt(x Interval) (Interval, error) {
	if x.hi < 0 {
		return Interval{}, opError("sqrt", ErrUndefined, x)
	}
	//
	return Interval{round.SqrtDown(max(x.lo, 0)), round.SqrtUp(x.hi)}, nil
}

// Abs returns the interval |x|, which is exact.
func Abs(x Interval) Interval {
	switch {
	case x.lo >= 0:
		return x
	case x.hi <= 0:
		return x.Neg()
	}
	//
	return Interval{0, max(-x.lo, x.hi)}
}

// Min returns the interval of min(a,b) for a in x and b in y.
func Min(x, y Interval) Interval {
	return Interval{min(x.lo, y.lo), min(x.hi, y.hi)}
}

// Max returns the interval of max(a,b) for a in x and b in y.
func Max(x, y Interval) Interval {
	return Interval{max(x.lo, y.lo), max(x.hi, y.hi)}
}

// ============================================================================
// Scalar helpers
// ============================================================================

// powDown returns a lower bound on v^n.  For negative v, n must be odd.
func powDown(v float64, n int) float64 {
	if v < 0 {
		return -powUp(-v, n)
	}
	// square and multiply, where all intermediates are non-negative
	r, b := 1.0, v
	//
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			r = round.MulDown(r, b)
		}
		//
		if n > 1 {
			b = round.MulDown(b, b)
		}
	}
	//
	return r
}

// powUp returns an upper bound on v^n.  For negative v, n must be odd.
func powUp(v float64, n int) float64 {
	if v < 0 {
		return -powDown(-v, n)
	}
	//
	r, b := 1.0, v
	//
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			r = round.MulUp(r, b)
		}
		//
		if n > 1 {
			b = round.MulUp(b, b)
		}
	}
	//
	return r
}

// rootDown returns a lower bound on the n-th root of v, where n >= 2.  For
// negative v, n must be odd.  An estimate is moved downwards until its n-th
// power is certainly no larger than v.
func rootDown(v float64, n int) float64 {
	switch {
	case v < 0:
		return -rootUp(-v, n)
	case n == 2:
		return round.SqrtDown(v)
	case v == 0 || math.IsInf(v, 1):
		return v
	}
	//
	r := rootEstimate(v, n)
	//
	for step := ulp(r); powUp(r, n) > v; step *= 2 {
		if r -= step; r <= 0 {
			return 0
		}
	}
	// tighten
	for i := 0; i < 4 && powUp(round.Next(r), n) <= v; i++ {
		r = round.Next(r)
	}
	//
	return r
}

// rootUp returns an upper bound on the n-th root of v, where n >= 2.  For
// negative v, n must be odd.
func rootUp(v float64, n int) float64 {
	switch {
	case v < 0:
		return -rootDown(-v, n)
	case n == 2:
		return round.SqrtUp(v)
	case v == 0 || math.IsInf(v, 1):
		return v
	}
	//
	r := max(rootEstimate(v, n), math.SmallestNonzeroFloat64)
	//
	for step := ulp(r); powDown(r, n) < v; step *= 2 {
		r += step
	}
	// tighten
	for i := 0; i < 4 && r > 0 && powDown(round.Prev(r), n) >= v; i++ {
		r = round.Prev(r)
	}
	//
	return r
}

// rootEstimate approximates the n-th root of a positive finite v, improving
// on math.Pow with one Newton step.
func rootEstimate(v float64, n int) float64 {
	r := math.Pow(v, 1/float64(n))
	p := math.Pow(r, float64(n-1))
	//
	if p == 0 || math.IsInf(p, 0) {
		return r
	}
	//
	if s := r - (p*r-v)/(float64(n)*p); s > 0 && !math.IsInf(s, 0) {
		return s
	}
	//
	return r
}

// ulp returns the gap between v and the next float64 above it.
func ulp(v float64) float64 {
	return round.Next(v) - v
}
