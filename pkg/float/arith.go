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

// Add returns an interval enclosing x+y.
func (x Interval) Add(y Interval) Interval {
	return Interval{round.AddDown(x.lo, y.lo), round.AddUp(x.hi, y.hi)}
}

// AddScalar returns an interval enclosing x+c.
func (x Interval) AddScalar(c float64) Interval {
	return x.Add(Point(c))
}

// Sub returns an interval enclosing x-y.
func (x Interval) Sub(y Interval) Interval {
	return Interval{round.SubDown(x.lo, y.hi), round.SubUp(x.hi, y.lo)}
}

// Neg returns the interval -x, which is exact.
func (x Interval) Neg() Interval {
	return Interval{-x.hi, -x.lo}
}

// Mul returns an interval enclosing x*y.  A zero bound times an infinite bound
// contributes zero.
func (x Interval) Mul(y Interval) Interval {
	var (
		lo = min(round.MulDown(x.lo, y.lo), round.MulDown(x.lo, y.hi),
			round.MulDown(x.hi, y.lo), round.MulDown(x.hi, y.hi))
		hi = max(round.MulUp(x.lo, y.lo), round.MulUp(x.lo, y.hi),
			round.MulUp(x.hi, y.lo), round.MulUp(x.hi, y.hi))
	)
	//
	return Interval{lo, hi}
}

// MulScalar returns an interval enclosing c*x.
func (x Interval) MulScalar(c float64) Interval {
	return x.Mul(Point(c))
}

// Div returns an interval enclosing x/y.  Division fails when y is the
// singleton zero, or contains zero strictly inside.  When zero is a bound of
// y, the quotient is taken over the non-zero values of y, which generally
// gives an unbounded interval.
func (x Interval) Div(y Interval) (Interval, error) {
	switch {
	case y.lo == 0 && y.hi == 0, y.lo < 0 && y.hi > 0:
		return Interval{}, opError("div", ErrDivisionByZero, x, y)
	case y.hi < 0 || (y.hi == 0 && y.lo < 0):
		// x / y = -(x / -y)
		q, err := x.Div(y.Neg())
		return q.Neg(), err
	case y.lo == 0:
		return x.divZeroLower(y.hi), nil
	}
	// y strictly positive
	var lo, hi float64
	//
	if x.lo >= 0 {
		lo = round.DivDown(x.lo, y.hi)
	} else {
		lo = round.DivDown(x.lo, y.lo)
	}
	//
	if x.hi >= 0 {
		hi = round.DivUp(x.hi, y.lo)
	} else {
		hi = round.DivUp(x.hi, y.hi)
	}
	//
	return Interval{lo, hi}, nil
}

// divZeroLower divides x by (0,d] where d > 0.
func (x Interval) divZeroLower(d float64) Interval {
	inf := math.Inf(1)
	//
	switch {
	case x.lo == 0 && x.hi == 0:
		return Point(0)
	case x.lo >= 0:
		return Interval{round.DivDown(x.lo, d), inf}
	case x.hi <= 0:
		return Interval{-inf, round.DivUp(x.hi, d)}
	}
	//
	return Entire()
}
