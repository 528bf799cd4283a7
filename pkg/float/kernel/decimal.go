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
package kernel

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/cockroachdb/apd/v2"
	"github.com/consensys/go-fprop/pkg/float/round"
)

var bigFive = big.NewInt(5)

// FromFloat returns the exact decimal value of a finite float64.
func FromFloat(f float64) *apd.Decimal {
	if f == 0 {
		return apd.New(0, 0)
	}
	//
	frac, exp := math.Frexp(math.Abs(f))
	mantissa := int64(math.Ldexp(frac, 53))
	exp -= 53
	// drop trailing zero bits to keep the decimal short
	for mantissa&1 == 0 && exp < 0 {
		mantissa >>= 1
		exp++
	}
	//
	var coeff big.Int
	//
	coeff.SetInt64(mantissa)
	//
	var d *apd.Decimal
	//
	if exp >= 0 {
		coeff.Lsh(&coeff, uint(exp))
		d = apd.NewWithBigInt(&coeff, 0)
	} else {
		// m * 2^e = m * 5^-e * 10^e
		var pow big.Int
		//
		pow.Exp(bigFive, big.NewInt(int64(-exp)), nil)
		coeff.Mul(&coeff, &pow)
		d = apd.NewWithBigInt(&coeff, int32(exp))
	}
	//
	d.Negative = f < 0
	//
	return d
}

// DecimalDown returns the largest float64 not above d.  Values beyond the
// float64 range map to -Inf or math.MaxFloat64.
func DecimalDown(d *apd.Decimal) float64 {
	f := nearest(d)
	//
	switch {
	case math.IsInf(f, 1):
		return math.MaxFloat64
	case math.IsInf(f, -1):
		return f
	case FromFloat(f).Cmp(d) > 0:
		return round.Prev(f)
	}
	//
	return f
}

// DecimalUp returns the smallest float64 not below d.  Values beyond the
// float64 range map to +Inf or -math.MaxFloat64.
func DecimalUp(d *apd.Decimal) float64 {
	f := nearest(d)
	//
	switch {
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	case math.IsInf(f, 1):
		return f
	case FromFloat(f).Cmp(d) < 0:
		return round.Next(f)
	}
	//
	return f
}

// ParseDecimal returns the tightest float64 enclosure of a decimal literal
// such as "0.1" or "-2.5e-3".
func ParseDecimal(s string) (lo float64, hi float64, err error) {
	d, _, err := apd.NewFromString(s)
	//
	if err != nil {
		return 0, 0, err
	} else if d.Form != apd.Finite {
		return 0, 0, fmt.Errorf("invalid decimal literal \"%s\"", s)
	}
	//
	return DecimalDown(d), DecimalUp(d), nil
}

// nearest converts a finite decimal into a float64, possibly overflowing to an
// infinity.  The result need not be correctly rounded since callers correct it
// by comparison.
func nearest(d *apd.Decimal) float64 {
	f, _ := strconv.ParseFloat(d.Text('E'), 64)
	//
	if d.IsZero() {
		return 0
	}
	//
	return f
}
