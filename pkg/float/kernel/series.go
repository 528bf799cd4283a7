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
	"math/big"

	"github.com/cockroachdb/apd/v2"
)

// calc evaluates decimal expressions within a fixed context, remembering the
// first error encountered so that sequences of operations can be checked once.
type calc struct {
	ctx *apd.Context
	err error
}

func newCalc(digits uint32) *calc {
	return &calc{ctx: apd.BaseContext.WithPrecision(digits)}
}

func (c *calc) check(_ apd.Condition, err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

func (c *calc) add(x, y *apd.Decimal) *apd.Decimal {
	var d apd.Decimal
	//
	c.check(c.ctx.Add(&d, x, y))
	//
	return &d
}

func (c *calc) sub(x, y *apd.Decimal) *apd.Decimal {
	var d apd.Decimal
	//
	c.check(c.ctx.Sub(&d, x, y))
	//
	return &d
}

func (c *calc) mul(x, y *apd.Decimal) *apd.Decimal {
	var d apd.Decimal
	//
	c.check(c.ctx.Mul(&d, x, y))
	//
	return &d
}

func (c *calc) quo(x, y *apd.Decimal) *apd.Decimal {
	var d apd.Decimal
	//
	c.check(c.ctx.Quo(&d, x, y))
	//
	return &d
}

func (c *calc) sqrt(x *apd.Decimal) *apd.Decimal {
	var d apd.Decimal
	//
	c.check(c.ctx.Sqrt(&d, x))
	//
	return &d
}

func (c *calc) exp(x *apd.Decimal) *apd.Decimal {
	var d apd.Decimal
	//
	c.check(c.ctx.Exp(&d, x))
	//
	return &d
}

func (c *calc) ln(x *apd.Decimal) *apd.Decimal {
	var d apd.Decimal
	//
	c.check(c.ctx.Ln(&d, x))
	//
	return &d
}

func (c *calc) floor(x *apd.Decimal) *apd.Decimal {
	var d apd.Decimal
	//
	c.check(c.ctx.Floor(&d, x))
	//
	return &d
}

func neg(x *apd.Decimal) *apd.Decimal {
	return new(apd.Decimal).Neg(x)
}

func abs(x *apd.Decimal) *apd.Decimal {
	return new(apd.Decimal).Abs(x)
}

func integer(v int64) *apd.Decimal {
	return apd.New(v, 0)
}

// adjusted returns the exponent of the most significant digit of x.
func adjusted(x *apd.Decimal) int64 {
	return x.NumDigits() + int64(x.Exponent) - 1
}

// cutoff returns the magnitude below which series terms are dropped, relative
// to a leading term.
func (c *calc) cutoff(lead *apd.Decimal) *apd.Decimal {
	return apd.New(1, int32(adjusted(lead)-int64(c.ctx.Precision)-2))
}

// oddSeries sums z + s*z^3/3 + z^5/5 + s*z^7/7 ... where s is -1 when
// alternating (atan) and +1 otherwise (atanh).  It requires |z| < 1 and
// converges quickly for |z| <= 0.2.
func (c *calc) oddSeries(z *apd.Decimal, alternate bool) *apd.Decimal {
	if z.IsZero() {
		return apd.New(0, 0)
	}
	//
	var (
		sum   = new(apd.Decimal).Set(z)
		power = new(apd.Decimal).Set(z)
		z2    = c.mul(z, z)
		eps   = c.cutoff(z)
	)
	//
	for k := int64(1); c.err == nil; k++ {
		power = c.mul(power, z2)
		term := c.quo(power, integer(2*k+1))
		//
		if abs(term).Cmp(eps) < 0 {
			break
		} else if alternate && k%2 == 1 {
			sum = c.sub(sum, term)
		} else {
			sum = c.add(sum, term)
		}
	}
	//
	return sum
}

// atanSeries sums the Taylor series of atan at z, for |z| well below one.
func atanSeries(ctx *apd.Context, z *apd.Decimal) *apd.Decimal {
	c := &calc{ctx: ctx}
	//
	return c.oddSeries(z, true)
}

// sinCosSeries sums the Taylor series of sin and cos at r, for |r| <= pi/4.
func (c *calc) sinCosSeries(r *apd.Decimal) (sin *apd.Decimal, cos *apd.Decimal) {
	var (
		r2      = neg(c.mul(r, r))
		sinTerm = new(apd.Decimal).Set(r)
		cosTerm = integer(1)
	)
	//
	sin = new(apd.Decimal).Set(r)
	cos = integer(1)
	//
	if r.IsZero() {
		return sin, cos
	}
	//
	sinEps, cosEps := c.cutoff(r), c.cutoff(cos)
	//
	for k := int64(1); c.err == nil; k++ {
		// cos term: (-r^2)^k / (2k)!
		cosTerm = c.quo(c.mul(cosTerm, r2), integer((2*k-1)*(2*k)))
		// sin term: r * (-r^2)^k / (2k+1)!
		sinTerm = c.quo(c.mul(sinTerm, r2), integer((2*k)*(2*k+1)))
		//
		cosDone := abs(cosTerm).Cmp(cosEps) < 0
		sinDone := abs(sinTerm).Cmp(sinEps) < 0
		//
		if !cosDone {
			cos = c.add(cos, cosTerm)
		}
		//
		if !sinDone {
			sin = c.add(sin, sinTerm)
		}
		//
		if cosDone && sinDone {
			break
		}
	}
	//
	return sin, cos
}

// sinhSeries sums the Taylor series of sinh at x, for |x| below one.
func (c *calc) sinhSeries(x *apd.Decimal) *apd.Decimal {
	var (
		x2   = c.mul(x, x)
		term = new(apd.Decimal).Set(x)
		sum  = new(apd.Decimal).Set(x)
		eps  = c.cutoff(x)
	)
	//
	if x.IsZero() {
		return sum
	}
	//
	for k := int64(1); c.err == nil; k++ {
		term = c.quo(c.mul(term, x2), integer((2*k)*(2*k+1)))
		//
		if abs(term).Cmp(eps) < 0 {
			break
		}
		//
		sum = c.add(sum, term)
	}
	//
	return sum
}

// log1p returns ln(1+u) for u > -1, avoiding cancellation for small u.
func (c *calc) log1p(u *apd.Decimal) *apd.Decimal {
	half := apd.New(5, -1)
	//
	if abs(u).Cmp(half) < 0 {
		// ln(1+u) = 2 atanh(u / (2+u))
		z := c.quo(u, c.add(integer(2), u))
		//
		return c.mul(integer(2), c.oddSeries(z, false))
	}
	//
	return c.ln(c.add(integer(1), u))
}

// toBigInt converts an integral decimal into a big integer.
func toBigInt(d *apd.Decimal) *big.Int {
	var (
		z   big.Int
		ten = big.NewInt(10)
	)
	//
	z.Set(&d.Coeff)
	//
	if d.Exponent > 0 {
		var p big.Int
		//
		p.Exp(ten, big.NewInt(int64(d.Exponent)), nil)
		z.Mul(&z, &p)
	} else if d.Exponent < 0 {
		var p big.Int
		//
		p.Exp(ten, big.NewInt(int64(-d.Exponent)), nil)
		z.Quo(&z, &p)
	}
	//
	if d.Negative {
		z.Neg(&z)
	}
	//
	return &z
}
