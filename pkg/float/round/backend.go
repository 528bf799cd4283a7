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

import (
	"errors"
	"fmt"
	"math"
)

// ErrUndefined signals a transcendental function applied outside of its
// domain, such as the logarithm of a negative number.
var ErrUndefined = errors.New("undefined operation")

// Func identifies a transcendental function supported by a backend.
type Func uint8

// The supported transcendental functions.
const (
	Sin Func = iota
	Cos
	Tan
	Asin
	Acos
	Atan
	Exp
	Log
	Sinh
	Cosh
	Tanh
	Asinh
	Acosh
	Atanh
)

var funcNames = [...]string{"sin", "cos", "tan", "asin", "acos", "atan", "exp", "log", "sinh", "cosh", "tanh",
	"asinh", "acosh", "atanh"}

func (f Func) String() string {
	if int(f) < len(funcNames) {
		return funcNames[f]
	}
	//
	return fmt.Sprintf("func(%d)", uint8(f))
}

// Funcs returns all supported transcendental functions.
func Funcs() []Func {
	fns := make([]Func, len(funcNames))
	for i := range fns {
		fns[i] = Func(i)
	}
	//
	return fns
}

// ParseFunc returns the function with the given (lower case) name.
func ParseFunc(name string) (Func, bool) {
	for i, n := range funcNames {
		if n == name {
			return Func(i), true
		}
	}
	//
	return 0, false
}

// Backend computes enclosures of transcendental functions at a point.  For a
// given function f and point x, Eval returns lo <= f(x) <= hi where lo and hi
// are representable.  Evaluating a function outside of its domain returns an
// error wrapping ErrUndefined.
type Backend interface {
	// Name identifies the backend (e.g. in configuration files).
	Name() string
	// Eval returns an enclosure of fn(x).
	Eval(fn Func, x float64) (lo float64, hi float64, err error)
}

// Enclosures of pi/2 and pi, used to clamp the ranges of inverse functions.
// The nearest float64 values of both lie below the true constants.
const (
	piLower     = math.Pi
	piHalfLower = math.Pi / 2
)

// CheckDomain reports an error if x lies outside the domain of fn.  NaN lies
// outside every domain.
func CheckDomain(fn Func, x float64) error {
	var ok bool
	//
	switch fn {
	case Asin, Acos:
		ok = x >= -1 && x <= 1
	case Log:
		ok = x >= 0
	case Acosh:
		ok = x >= 1
	case Atanh:
		ok = x >= -1 && x <= 1
	default:
		ok = !math.IsNaN(x)
	}
	//
	if !ok {
		return fmt.Errorf("%w: %s(%g)", ErrUndefined, fn, x)
	}
	//
	return nil
}

// Special returns exact (or trivially enclosed) results for points at which a
// function needs no evaluation, such as sin(0), exp(+inf) or atan(-inf).
func Special(fn Func, x float64) (lo float64, hi float64, ok bool) {
	inf := math.Inf(1)
	//
	switch {
	case x == 0:
		switch fn {
		case Cos, Cosh, Exp:
			return 1, 1, true
		case Log:
			return -inf, -inf, true
		case Acos:
			return piHalfLower, Next(piHalfLower), true
		default:
			return 0, 0, true
		}
	case x == 1:
		switch fn {
		case Log, Acos, Acosh:
			return 0, 0, true
		case Asin:
			return piHalfLower, Next(piHalfLower), true
		case Atanh:
			return inf, inf, true
		}
	case x == -1:
		switch fn {
		case Acos:
			return piLower, Next(piLower), true
		case Asin:
			return -Next(piHalfLower), -piHalfLower, true
		case Atanh:
			return -inf, -inf, true
		}
	case math.IsInf(x, 0):
		return specialInfinity(fn, x)
	}
	//
	return 0, 0, false
}

func specialInfinity(fn Func, x float64) (float64, float64, bool) {
	var (
		inf  = math.Inf(1)
		sign = math.Copysign(1, x)
	)
	//
	switch fn {
	case Sin, Cos:
		return -1, 1, true
	case Tan:
		return -inf, inf, true
	case Atan:
		if sign > 0 {
			return piHalfLower, Next(piHalfLower), true
		}
		//
		return -Next(piHalfLower), -piHalfLower, true
	case Exp:
		if sign > 0 {
			return inf, inf, true
		}
		//
		return 0, 0, true
	case Tanh:
		return sign, sign, true
	case Cosh:
		return inf, inf, true
	case Log, Acosh:
		// only +inf is in the domain
		return inf, inf, true
	default:
		// sinh and asinh
		return x, x, true
	}
}

// Clamp restricts an enclosure to the known range of fn.
func Clamp(fn Func, lo, hi float64) (float64, float64) {
	var rlo, rhi = math.Inf(-1), math.Inf(1)
	//
	switch fn {
	case Sin, Cos, Tanh:
		rlo, rhi = -1, 1
	case Exp:
		rlo = 0
	case Cosh:
		rlo = 1
	case Asin, Atan:
		rlo, rhi = -Next(piHalfLower), Next(piHalfLower)
	case Acos:
		rlo, rhi = 0, Next(piLower)
	case Acosh:
		rlo = 0
	}
	//
	return min(max(lo, rlo), rhi), max(min(hi, rhi), rlo)
}
