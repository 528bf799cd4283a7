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
	"fmt"
	"math"
)

// expectation is a directed operation with its expected lower and upper results.
type expectation struct {
	name string
	down func() float64
	up   func() float64
	lo   float64
	hi   float64
}

// Check verifies that the error-free transformations underlying the directed
// operations behave as required on this platform.  Directed results are
// derived from round-to-nearest results and exactly computed error terms, which
// requires IEEE-754 binary64 arithmetic and a fused multiply-add.
func Check() error {
	var (
		one   = 1.0
		eps   = math.Nextafter(1, 2) - 1
		onep  = one + eps
		third = 1.0 / 3
	)
	// A fused multiply-add keeps the low half of a product.
	if math.FMA(onep, onep, -float64(onep*onep)) != eps*eps {
		return fmt.Errorf("%w: fused multiply-add is not exact", ErrRoundingModeUnavailable)
	}
	//
	cases := []expectation{
		{"add", func() float64 { return AddDown(one, 0x1p-60) }, func() float64 { return AddUp(one, 0x1p-60) },
			one, onep},
		{"sub", func() float64 { return SubDown(one, 0x1p-60) }, func() float64 { return SubUp(one, 0x1p-60) },
			Prev(one), one},
		{"mul", func() float64 { return MulDown(onep, onep) }, func() float64 { return MulUp(onep, onep) },
			one + 2*eps, Next(one + 2*eps)},
		{"div", func() float64 { return DivDown(one, 3) }, func() float64 { return DivUp(one, 3) },
			third, Next(third)},
		{"sqrt", func() float64 { return SqrtDown(4) }, func() float64 { return SqrtUp(4) }, 2, 2},
		{"overflow", func() float64 { return MulDown(math.MaxFloat64, 2) },
			func() float64 { return MulUp(math.MaxFloat64, 2) }, math.MaxFloat64, math.Inf(1)},
	}
	//
	for _, p := range cases {
		if lo, hi := p.down(), p.up(); lo != p.lo || hi != p.hi {
			return fmt.Errorf("%w: %s gives [%g,%g], expected [%g,%g]", ErrRoundingModeUnavailable, p.name, lo, hi,
				p.lo, p.hi)
		}
	}
	//
	return nil
}
