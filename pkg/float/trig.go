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

// Beyond this magnitude consecutive multiples of a period can no longer be
// told apart.
const maxPeriods = 1 << 50

// Sin returns an interval enclosing the sine of x.
func Sin(x Interval) (Interval, error) {
	return sinusoid("sin", x, PiHalf(), PiHalf().Neg(), policy.SinDown, policy.SinUp)
}

// Cos returns an interval enclosing the cosine of x.
func Cos(x Interval) (Interval, error) {
	return sinusoid("cos", x, Point(0), Pi(), policy.CosDown, policy.CosUp)
}

// Tan returns an interval enclosing the tangent of x.  When x may contain a
// pole, the result is unbounded.
func Tan(x Interval) (Interval, error) {
	if !x.IsBounded() || x.Size() >= PiLower || MayContainPeriodic(x, PiHalf(), Pi()) {
		return Entire(), nil
	}
	//
	return increasing("tan", x, policy.TanDown, policy.TanUp)
}

// Fmod reduces x by a (positive) period, returning r and n such that r
// encloses x - n*period.  The lower bound of r lies close to [0,period),
// though it may fall slightly outside due to rounding.
func Fmod(x Interval, period Interval) (Interval, float64) {
	var n float64
	//
	if x.lo < 0 {
		n = round.IntDown(round.DivDown(x.lo, period.lo))
	} else {
		n = round.IntDown(round.DivDown(x.lo, period.hi))
	}
	//
	return x.Sub(Point(n).Mul(period)), n
}

// MayContainPeriodic determines whether x might contain some point phase +
// k*period, for integer k.  This can report false positives, but never false
// negatives.
func MayContainPeriodic(x Interval, phase Interval, period Interval) bool {
	if !x.IsBounded() {
		return true
	}
	//
	k := math.Floor((x.lo - phase.lo) / period.lo)
	//
	if math.Abs(k) > maxPeriods {
		return true
	}
	//
	for i := k - 1; i <= k+2; i++ {
		if Overlap(x, Point(i).Mul(period).Add(phase)) {
			return true
		}
	}
	//
	return false
}

// sinusoid evaluates sin or cos, given the phases of their maxima and minima.
// Away from these critical points a sinusoid is monotonic, so its extremes lie
// at the endpoints.
func sinusoid(op string, x Interval, top, bottom Interval, down, up directed) (Interval, error) {
	if !x.IsBounded() || x.Size() >= PiTwiceLower {
		return Interval{-1, 1}, nil
	}
	//
	l1, err := down(x.lo)
	if err != nil {
		return Interval{}, opError(op, err, x)
	}
	//
	l2, err := down(x.hi)
	if err != nil {
		return Interval{}, opError(op, err, x)
	}
	//
	h1, err := up(x.lo)
	if err != nil {
		return Interval{}, opError(op, err, x)
	}
	//
	h2, err := up(x.hi)
	if err != nil {
		return Interval{}, opError(op, err, x)
	}
	//
	lo, hi := min(l1, l2), max(h1, h2)
	//
	if MayContainPeriodic(x, top, PiTwice()) {
		hi = 1
	}
	//
	if MayContainPeriodic(x, bottom, PiTwice()) {
		lo = -1
	}
	//
	return Interval{lo, hi}, nil
}
