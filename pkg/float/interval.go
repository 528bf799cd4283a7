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
	"fmt"
	"math"
	"strconv"

	"github.com/consensys/go-fprop/pkg/float/round"
)

// Interval provides a closed range of real numbers [lo,hi] whose bounds are
// float64 values, such as [0..1] or [-inf..0.5].  An interval can be used to
// approximate the possible values of a variable, or the possible results of an
// expression.  All operations on intervals round outwards: the lower bound of a
// result is rounded towards negative infinity, and the upper bound towards
// positive infinity.  Thus, the mathematically exact result of an operation is
// always contained within the computed interval.
//
// Intervals are immutable values.  An interval with lo > hi is never
// constructed; an empty result is reported instead as an error (or as failure
// during propagation).  A lower bound of +inf, or an upper bound of -inf, is
// likewise never constructed.
type Interval struct {
	lo float64
	hi float64
}

// New creates an interval representing a given range, failing if the range is
// empty or malformed.
func New(lo, hi float64) (Interval, error) {
	switch {
	case math.IsNaN(lo) || math.IsNaN(hi):
		return Interval{}, opError("new", ErrUndefined, lo, hi)
	case lo > hi || math.IsInf(lo, 1) || math.IsInf(hi, -1):
		return Interval{}, opError("new", ErrDomainEmpty, lo, hi)
	}
	//
	return Interval{lo, hi}, nil
}

// Point creates the singleton interval [v,v].
func Point(v float64) Interval {
	return Interval{v, v}
}

// Entire creates the interval enclosing all real numbers.
func Entire() Interval {
	return Interval{math.Inf(-1), math.Inf(1)}
}

// Min returns the lower bound of this interval.
func (x Interval) Min() float64 {
	return x.lo
}

// Max returns the upper bound of this interval.
func (x Interval) Max() float64 {
	return x.hi
}

// Med returns a value in the middle of this interval.
func (x Interval) Med() float64 {
	return round.Median(x.lo, x.hi)
}

// Size returns the width of this interval, rounded upwards.
func (x Interval) Size() float64 {
	return round.SubUp(x.hi, x.lo)
}

// IsSingleton determines whether this interval contains exactly one value.
func (x Interval) IsSingleton() bool {
	return x.lo == x.hi
}

// Tight determines whether there is no float64 value strictly between the
// bounds of this interval.  A tight interval cannot be narrowed any further
// (except to a singleton).
func (x Interval) Tight() bool {
	return x.lo == x.hi || round.Next(x.lo) == x.hi
}

// Contains checks whether a given value is contained within this interval.
func (x Interval) Contains(v float64) bool {
	return x.lo <= v && v <= x.hi
}

// ZeroIn checks whether zero is contained within this interval.
func (x Interval) ZeroIn() bool {
	return x.lo <= 0 && 0 <= x.hi
}

// IsBounded checks whether both bounds of this interval are finite.
func (x Interval) IsBounded() bool {
	return !math.IsInf(x.lo, 0) && !math.IsInf(x.hi, 0)
}

func (x Interval) String() string {
	if x.lo == x.hi {
		return fmt.Sprintf("[%s]", formatBound(x.lo))
	}
	//
	return fmt.Sprintf("[%s..%s]", formatBound(x.lo), formatBound(x.hi))
}

func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	//
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// hull returns the smallest interval enclosing the given values, which must be
// non-empty and contain no NaN.
func hull(vals ...float64) Interval {
	lo, hi := vals[0], vals[0]
	//
	for _, v := range vals[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	//
	return Interval{lo, hi}
}
