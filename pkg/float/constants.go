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

// The float64 nearest to pi lies below it, and halving or doubling is exact.
// Hence, each constant is enclosed by its nearest float64 and the next one up.
var (
	// PiLower is the largest float64 below pi.
	PiLower = math.Pi
	// PiUpper is the smallest float64 above pi.
	PiUpper = round.Next(math.Pi)
	// PiHalfLower is the largest float64 below pi/2.
	PiHalfLower = math.Pi / 2
	// PiHalfUpper is the smallest float64 above pi/2.
	PiHalfUpper = round.Next(math.Pi) / 2
	// PiTwiceLower is the largest float64 below 2pi.
	PiTwiceLower = 2 * math.Pi
	// PiTwiceUpper is the smallest float64 above 2pi.
	PiTwiceUpper = 2 * round.Next(math.Pi)
)

// Pi returns the tightest interval enclosing pi.
func Pi() Interval {
	return Interval{PiLower, PiUpper}
}

// PiHalf returns the tightest interval enclosing pi/2.
func PiHalf() Interval {
	return Interval{PiHalfLower, PiHalfUpper}
}

// PiTwice returns the tightest interval enclosing 2pi.
func PiTwice() Interval {
	return Interval{PiTwiceLower, PiTwiceUpper}
}
