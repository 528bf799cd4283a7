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
package round

import "math"

// Below this magnitude the error term of a product, quotient or square root
// may itself underflow, so its sign can no longer be trusted when it reads as
// zero.
const tiny = 0x1p-969

// Next returns the smallest float64 strictly greater than x.
func Next(x float64) float64 {
	return math.Nextafter(x, math.Inf(1))
}

// Prev returns the largest float64 strictly less than x.
func Prev(x float64) float64 {
	return math.Nextafter(x, math.Inf(-1))
}

// AddDown returns the largest float64 not above a+b.
func AddDown(a, b float64) float64 {
	s := float64(a + b)
	//
	if !isFinite(s) {
		return overflowDown(s, isFinite(a) && isFinite(b))
	} else if twoSumError(a, b, s) < 0 {
		return Prev(s)
	}
	//
	return s
}

// AddUp returns the smallest float64 not below a+b.
func AddUp(a, b float64) float64 {
	s := float64(a + b)
	//
	if !isFinite(s) {
		return overflowUp(s, isFinite(a) && isFinite(b))
	} else if twoSumError(a, b, s) > 0 {
		return Next(s)
	}
	//
	return s
}

// SubDown returns the largest float64 not above a-b.
func SubDown(a, b float64) float64 {
	return AddDown(a, -b)
}

// SubUp returns the smallest float64 not below a-b.
func SubUp(a, b float64) float64 {
	return AddUp(a, -b)
}

// MulDown returns the largest float64 not above a*b.  A zero operand yields
// zero even when the other operand is infinite.
func MulDown(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	//
	p := float64(a * b)
	//
	if !isFinite(p) {
		return overflowDown(p, isFinite(a) && isFinite(b))
	}
	//
	switch e := math.FMA(a, b, -p); {
	case e < 0:
		return Prev(p)
	case e == 0 && math.Abs(p) < tiny:
		return Prev(p)
	}
	//
	return p
}

// MulUp returns the smallest float64 not below a*b.  A zero operand yields
// zero even when the other operand is infinite.
func MulUp(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	//
	p := float64(a * b)
	//
	if !isFinite(p) {
		return overflowUp(p, isFinite(a) && isFinite(b))
	}
	//
	switch e := math.FMA(a, b, -p); {
	case e > 0:
		return Next(p)
	case e == 0 && math.Abs(p) < tiny:
		return Next(p)
	}
	//
	return p
}

// DivDown returns the largest float64 not above a/b.  Callers must not divide
// by zero.
func DivDown(a, b float64) float64 {
	if a == 0 && b != 0 {
		return 0
	}
	//
	q := float64(a / b)
	//
	if !isFinite(q) {
		return overflowDown(q, isFinite(a) && b != 0)
	} else if math.IsInf(b, 0) {
		return q
	}
	//
	switch d := quotientError(a, b, q); {
	case d < 0:
		return Prev(q)
	case d == 0 && (math.Abs(q) < tiny || math.Abs(a) < tiny):
		return Prev(q)
	}
	//
	return q
}

// DivUp returns the smallest float64 not below a/b.  Callers must not divide
// by zero.
func DivUp(a, b float64) float64 {
	if a == 0 && b != 0 {
		return 0
	}
	//
	q := float64(a / b)
	//
	if !isFinite(q) {
		return overflowUp(q, isFinite(a) && b != 0)
	} else if math.IsInf(b, 0) {
		return q
	}
	//
	switch d := quotientError(a, b, q); {
	case d > 0:
		return Next(q)
	case d == 0 && (math.Abs(q) < tiny || math.Abs(a) < tiny):
		return Next(q)
	}
	//
	return q
}

// SqrtDown returns the largest float64 not above the square root of x, which
// must be non-negative.
func SqrtDown(x float64) float64 {
	s := math.Sqrt(x)
	//
	if s == 0 || !isFinite(s) {
		return s
	}
	//
	switch r := math.FMA(s, s, -x); {
	case r > 0:
		return Prev(s)
	case r == 0 && x < tiny:
		return Prev(s)
	}
	//
	return s
}

// SqrtUp returns the smallest float64 not below the square root of x, which
// must be non-negative.
func SqrtUp(x float64) float64 {
	s := math.Sqrt(x)
	//
	if s == 0 || !isFinite(s) {
		return s
	}
	//
	switch r := math.FMA(s, s, -x); {
	case r < 0:
		return Next(s)
	case r == 0 && x < tiny:
		return Next(s)
	}
	//
	return s
}

// IntDown rounds x towards negative infinity to an integral value.
func IntDown(x float64) float64 {
	return math.Floor(x)
}

// IntUp rounds x towards positive infinity to an integral value.
func IntUp(x float64) float64 {
	return math.Ceil(x)
}

// Median returns a value between a and b (inclusive), close to their midpoint.
// Infinite bounds are treated as the largest finite magnitude.
func Median(a, b float64) float64 {
	a = max(a, -math.MaxFloat64)
	b = min(b, math.MaxFloat64)
	m := a/2 + b/2
	// clamp guards against the halving of subnormals
	return min(max(m, a), b)
}

// twoSumError returns the exact rounding error of s = fl(a+b), such that
// a+b = s+e holds exactly.
func twoSumError(a, b, s float64) float64 {
	bv := float64(s - a)
	av := float64(s - bv)
	//
	return float64(a-av) + float64(b-bv)
}

// quotientError returns a value whose sign matches that of a/b - q.
func quotientError(a, b, q float64) float64 {
	r := math.FMA(-q, b, a)
	//
	if b < 0 {
		return -r
	}
	//
	return r
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

// overflowDown handles a non-finite result r when rounding downwards.  When
// the operands were finite, a positive infinity stands for a finite value
// beyond the largest float.
func overflowDown(r float64, finiteOperands bool) float64 {
	if finiteOperands && math.IsInf(r, 1) {
		return math.MaxFloat64
	}
	//
	return r
}

// overflowUp is the upwards counterpart of overflowDown.
func overflowUp(r float64, finiteOperands bool) float64 {
	if finiteOperands && math.IsInf(r, -1) {
		return -math.MaxFloat64
	}
	//
	return r
}
