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
)

type directed func(float64) (float64, error)

// Exp returns an interval enclosing e^x.
func Exp(x Interval) (Interval, error) {
	return increasing("exp", x, policy.ExpDown, policy.ExpUp)
}

// Log returns an interval enclosing the natural logarithm of x.  Non-positive
// values of x are discarded, and an interval without positive values is
// undefined.
func Log(x Interval) (Interval, error) {
	if x.hi <= 0 {
		return Interval{}, opError("log", ErrUndefined, x)
	}
	//
	return increasing("log", Interval{max(x.lo, 0), x.hi}, policy.LogDown, policy.LogUp)
}

// Asin returns an interval enclosing the arcsine of x, after discarding values
// outside [-1,1].
func Asin(x Interval) (Interval, error) {
	if x, ok := Intersect(x, Interval{-1, 1}); ok {
		return increasing("asin", x, policy.AsinDown, policy.AsinUp)
	}
	//
	return Interval{}, opError("asin", ErrUndefined, x)
}

// Acos returns an interval enclosing the arccosine of x, after discarding
// values outside [-1,1].
func Acos(x Interval) (Interval, error) {
	if x, ok := Intersect(x, Interval{-1, 1}); ok {
		return decreasing("acos", x, policy.AcosDown, policy.AcosUp)
	}
	//
	return Interval{}, opError("acos", ErrUndefined, x)
}

// Atan returns an interval enclosing the arctangent of x.
func Atan(x Interval) (Interval, error) {
	return increasing("atan", x, policy.AtanDown, policy.AtanUp)
}

// Sinh returns an interval enclosing the hyperbolic sine of x.
func Sinh(x Interval) (Interval, error) {
	return increasing("sinh", x, policy.SinhDown, policy.SinhUp)
}

// Cosh returns an interval enclosing the hyperbolic cosine of x.
func Cosh(x Interval) (Interval, error) {
	switch {
	case x.lo >= 0:
		return increasing("cosh", x, policy.CoshDown, policy.CoshUp)
	case x.hi <= 0:
		return decreasing("cosh", x, policy.CoshDown, policy.CoshUp)
	}
	// minimum at zero
	hi, err := policy.CoshUp(max(-x.lo, x.hi))
	//
	if err != nil {
		return Interval{}, opError("cosh", err, x)
	}
	//
	return Interval{1, hi}, nil
}

// Tanh returns an interval enclosing the hyperbolic tangent of x.
func Tanh(x Interval) (Interval, error) {
	return increasing("tanh", x, policy.TanhDown, policy.TanhUp)
}

// Asinh returns an interval enclosing the inverse hyperbolic sine of x.
func Asinh(x Interval) (Interval, error) {
	return increasing("asinh", x, policy.AsinhDown, policy.AsinhUp)
}

// Acosh returns an interval enclosing the inverse hyperbolic cosine of x,
// after discarding values below one.
func Acosh(x Interval) (Interval, error) {
	if x.hi < 1 {
		return Interval{}, opError("acosh", ErrUndefined, x)
	}
	//
	return increasing("acosh", Interval{max(x.lo, 1), x.hi}, policy.AcoshDown, policy.AcoshUp)
}

// Atanh returns an interval enclosing the inverse hyperbolic tangent of x,
// after discarding values outside [-1,1].
func Atanh(x Interval) (Interval, error) {
	if x, ok := Intersect(x, Interval{-1, 1}); ok {
		return increasing("atanh", x, policy.AtanhDown, policy.AtanhUp)
	}
	//
	return Interval{}, opError("atanh", ErrUndefined, x)
}

// increasing evaluates a monotonically increasing function over an interval.
func increasing(op string, x Interval, down, up directed) (Interval, error) {
	lo, err := down(x.lo)
	//
	if err != nil {
		return Interval{}, opError(op, err, x)
	}
	//
	hi, err := up(x.hi)
	//
	if err != nil {
		return Interval{}, opError(op, err, x)
	}
	//
	return checked(op, x, lo, hi)
}

// decreasing evaluates a monotonically decreasing function over an interval.
func decreasing(op string, x Interval, down, up directed) (Interval, error) {
	lo, err := down(x.hi)
	//
	if err != nil {
		return Interval{}, opError(op, err, x)
	}
	//
	hi, err := up(x.lo)
	//
	if err != nil {
		return Interval{}, opError(op, err, x)
	}
	//
	return checked(op, x, lo, hi)
}

// checked rejects results which only contain infinities, such as log([0,0]).
func checked(op string, x Interval, lo, hi float64) (Interval, error) {
	if math.IsInf(lo, 1) || math.IsInf(hi, -1) || lo > hi {
		return Interval{}, opError(op, ErrUndefined, x)
	}
	//
	return Interval{lo, hi}, nil
}
