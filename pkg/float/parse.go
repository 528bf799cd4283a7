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
	"strings"

	"github.com/consensys/go-fprop/pkg/float/kernel"
)

// Parse returns the tightest interval enclosing the value of a decimal
// literal, such as "0.1" or "-2.5e-3".  The names "pi" and "-pi" are accepted
// for the constant, whilst "inf" and "-inf" denote values beyond the largest
// float64.
func Parse(s string) (Interval, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pi":
		return Pi(), nil
	case "-pi":
		return Pi().Neg(), nil
	case "inf", "+inf":
		return Interval{math.MaxFloat64, math.Inf(1)}, nil
	case "-inf":
		return Interval{math.Inf(-1), -math.MaxFloat64}, nil
	}
	//
	lo, hi, err := kernel.ParseDecimal(strings.TrimSpace(s))
	//
	if err != nil {
		return Interval{}, opError("parse", err, s)
	}
	//
	return Interval{lo, hi}, nil
}
