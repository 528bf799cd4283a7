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

// DefaultUlps is the default padding applied by the libm backend.
const DefaultUlps = 2

var libmFuncs = [...]func(float64) float64{
	Sin:   math.Sin,
	Cos:   math.Cos,
	Tan:   math.Tan,
	Asin:  math.Asin,
	Acos:  math.Acos,
	Atan:  math.Atan,
	Exp:   math.Exp,
	Log:   math.Log,
	Sinh:  math.Sinh,
	Cosh:  math.Cosh,
	Tanh:  math.Tanh,
	Asinh: math.Asinh,
	Acosh: math.Acosh,
	Atanh: math.Atanh,
}

// Libm is a fast backend which widens the round-to-nearest results of the
// standard math package by a fixed number of ulps in each direction.  This is
// sound only as far as the math package stays within that many ulps of the
// exact result, which holds in practice but is not certified.
type Libm struct {
	ulps uint
}

// NewLibm constructs a libm backend padding every result by the given number
// of ulps (at least one).
func NewLibm(ulps uint) *Libm {
	return &Libm{max(ulps, 1)}
}

// Name implementation for the Backend interface.
func (b *Libm) Name() string {
	return "libm"
}

// Ulps returns the padding applied in each direction.
func (b *Libm) Ulps() uint {
	return b.ulps
}

// Eval implementation for the Backend interface.
func (b *Libm) Eval(fn Func, x float64) (float64, float64, error) {
	if err := CheckDomain(fn, x); err != nil {
		return math.NaN(), math.NaN(), err
	} else if lo, hi, ok := Special(fn, x); ok {
		return lo, hi, nil
	}
	//
	v := libmFuncs[fn](x)
	lo, hi := v, v
	//
	for i := uint(0); i < b.ulps; i++ {
		lo, hi = Prev(lo), Next(hi)
	}
	//
	lo, hi = Clamp(fn, lo, hi)
	//
	return lo, hi, nil
}
