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
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v2"
	"github.com/consensys/go-fprop/pkg/float/round"
)

const (
	// DefaultDigits is the default working precision of the kernel.
	DefaultDigits = 60
	// MinDigits is the least precision accepted by the kernel.
	MinDigits = 30
	// guard digits carried beyond the requested precision
	guard = 10
	// the enclosure allows this many fewer correct digits than requested
	slackDigits = 5
)

// Beyond these magnitudes exponentials leave the float64 range.
const (
	expOverflow  = 710
	expUnderflow = -746
	tanhSaturate = 40
)

// Kernel is an extended-precision backend for transcendental functions.  Each
// function is evaluated in decimal arithmetic to a configured number of
// significant digits, then an error allowance is added on either side before
// converting the bounds outwards to float64.  With the default precision the
// allowance is dozens of orders of magnitude below a float64 ulp, hence
// enclosures are almost always as tight as possible.
type Kernel struct {
	digits uint32
}

// New constructs a kernel working with the given number of significant digits.
func New(digits uint32) *Kernel {
	return &Kernel{max(digits, MinDigits)}
}

// Name implementation for the round.Backend interface.
func (k *Kernel) Name() string {
	return "extended"
}

// Digits returns the working precision of this kernel.
func (k *Kernel) Digits() uint32 {
	return k.digits
}

// Eval implementation for the round.Backend interface.
func (k *Kernel) Eval(fn round.Func, x float64) (float64, float64, error) {
	if err := round.CheckDomain(fn, x); err != nil {
		return math.NaN(), math.NaN(), err
	} else if lo, hi, ok := round.Special(fn, x); ok {
		return lo, hi, nil
	} else if lo, hi, ok := saturate(fn, x); ok {
		return lo, hi, nil
	}
	//
	v, slack, err := k.eval(fn, FromFloat(x))
	//
	if err != nil {
		// degrade to the range of the function
		lo, hi := round.Clamp(fn, math.Inf(-1), math.Inf(1))
		return lo, hi, nil
	}
	//
	lo, hi := k.enclose(v, slack)
	lo, hi = round.Clamp(fn, lo, hi)
	//
	return lo, hi, nil
}

// eval computes fn(x) together with an upper bound on the absolute error of
// the computed value.
func (k *Kernel) eval(fn round.Func, x *apd.Decimal) (v *apd.Decimal, slack *apd.Decimal, err error) {
	var (
		p = k.digits
		c = newCalc(p + guard)
	)
	//
	switch fn {
	case round.Sin, round.Cos, round.Tan:
		return k.trig(fn, x)
	case round.Atan:
		v = k.atan(c, x)
	case round.Asin:
		// asin(x) = atan(x / sqrt((1-x)(1+x)))
		one := integer(1)
		v = k.atan(c, c.quo(x, c.sqrt(c.mul(c.sub(one, x), c.add(one, x)))))
	case round.Acos:
		// acos(x) = 2 atan(sqrt((1-x)/(1+x)))
		one := integer(1)
		v = c.mul(integer(2), k.atan(c, c.sqrt(c.quo(c.sub(one, x), c.add(one, x)))))
	case round.Exp:
		v = c.exp(x)
	case round.Log:
		v = k.log(c, x)
	case round.Sinh:
		v = k.sinh(c, x)
	case round.Cosh:
		// (e^x + e^-x) / 2
		v = c.quo(c.add(c.exp(x), c.exp(neg(x))), integer(2))
	case round.Tanh:
		v = k.tanh(c, x)
	case round.Asinh:
		v = k.asinh(c, x)
	case round.Acosh:
		// ln(1 + u) where u = (x-1) + sqrt((x-1)(x+1))
		one := integer(1)
		xm1 := c.sub(x, one)
		v = c.log1p(c.add(xm1, c.sqrt(c.mul(xm1, c.add(x, one)))))
	case round.Atanh:
		v = k.atanh(c, x)
	}
	//
	if c.err != nil {
		return nil, nil, c.err
	}
	//
	return v, k.relative(v), nil
}

// trig evaluates sin, cos or tan by reducing x modulo pi/2 and summing Taylor
// series.  Pi carries enough digits to keep the reduction error absolute.
func (k *Kernel) trig(fn round.Func, x *apd.Decimal) (*apd.Decimal, *apd.Decimal, error) {
	var (
		p       = k.digits + guard + uint32(max(0, adjusted(x)))
		c       = newCalc(p)
		r       = x
		quarter = int64(0)
		reduced = abs(x).Cmp(apd.New(785, -3)) > 0
	)
	//
	if reduced {
		// r = x - q*pi/2 where q = floor(x/(pi/2) + 1/2)
		halfPi := c.quo(Pi(p+guard), integer(2))
		q := c.floor(c.add(c.quo(x, halfPi), apd.New(5, -1)))
		r = c.sub(x, c.mul(q, halfPi))
		quarter = new(big.Int).Mod(toBigInt(q), big.NewInt(4)).Int64()
	}
	//
	s, co := c.sinCosSeries(r)
	// rotate by the quarter turns removed
	switch quarter {
	case 1:
		s, co = co, neg(s)
	case 2:
		s, co = neg(s), neg(co)
	case 3:
		s, co = neg(co), s
	}
	//
	if c.err != nil {
		return nil, nil, c.err
	}
	//
	switch fn {
	case round.Sin:
		return s, k.trigSlack(s, reduced), nil
	case round.Cos:
		return co, k.trigSlack(co, reduced), nil
	}
	//
	t := c.quo(s, co)
	//
	if !reduced {
		return t, k.relative(t), c.err
	}
	// both sin and cos carry an absolute error e, giving e(1+|t|)/|cos| for tan
	e := c.mul(k.absolute(), integer(2))
	slack := c.quo(c.mul(e, c.add(integer(1), abs(t))), abs(co))
	//
	return t, c.add(slack, k.relative(t)), c.err
}

// atan evaluates the arctangent using atan(x) = pi/2 - atan(1/x) for |x| > 1
// and argument halving otherwise.
func (k *Kernel) atan(c *calc, x *apd.Decimal) *apd.Decimal {
	var (
		y        = abs(x)
		one      = integer(1)
		inverted = y.Cmp(one) > 0
		tenth    = apd.New(1, -1)
		halvings = int64(0)
	)
	//
	if inverted {
		y = c.quo(one, y)
	}
	// atan(y) = 2 atan(y / (1 + sqrt(1 + y^2)))
	for y.Cmp(tenth) > 0 && c.err == nil {
		y = c.quo(y, c.add(one, c.sqrt(c.add(one, c.mul(y, y)))))
		halvings++
	}
	//
	v := c.mul(c.oddSeries(y, true), integer(1<<halvings))
	//
	if inverted {
		v = c.sub(c.quo(Pi(c.ctx.Precision+guard), integer(2)), v)
	}
	//
	if x.Negative {
		v = neg(v)
	}
	//
	return v
}

// log avoids cancellation near one, where ln(x) = ln(1 + (x-1)).
func (k *Kernel) log(c *calc, x *apd.Decimal) *apd.Decimal {
	if u := c.sub(x, integer(1)); abs(u).Cmp(apd.New(5, -1)) < 0 {
		return c.log1p(u)
	}
	//
	return c.ln(x)
}

func (k *Kernel) sinh(c *calc, x *apd.Decimal) *apd.Decimal {
	if abs(x).Cmp(integer(1)) < 0 {
		return c.sinhSeries(x)
	}
	// (e^x - e^-x) / 2
	return c.quo(c.sub(c.exp(x), c.exp(neg(x))), integer(2))
}

func (k *Kernel) tanh(c *calc, x *apd.Decimal) *apd.Decimal {
	if abs(x).Cmp(integer(1)) < 0 {
		s := c.sinhSeries(x)
		// cosh = sqrt(1 + sinh^2)
		return c.quo(s, c.sqrt(c.add(integer(1), c.mul(s, s))))
	}
	// (e^2x - 1) / (e^2x + 1)
	e := c.exp(c.mul(integer(2), x))
	//
	return c.quo(c.sub(e, integer(1)), c.add(e, integer(1)))
}

func (k *Kernel) asinh(c *calc, x *apd.Decimal) *apd.Decimal {
	var (
		y   = abs(x)
		one = integer(1)
		// u = y + y^2 / (1 + sqrt(1 + y^2)), such that asinh(y) = ln(1+u)
		y2 = c.mul(y, y)
		u  = c.add(y, c.quo(y2, c.add(one, c.sqrt(c.add(one, y2)))))
		v  = c.log1p(u)
	)
	//
	if x.Negative {
		return neg(v)
	}
	//
	return v
}

func (k *Kernel) atanh(c *calc, x *apd.Decimal) *apd.Decimal {
	if abs(x).Cmp(apd.New(2, -1)) <= 0 {
		return c.oddSeries(x, false)
	}
	// atanh(x) = ln(1 + 2x/(1-x)) / 2
	one := integer(1)
	u := c.quo(c.mul(integer(2), x), c.sub(one, x))
	//
	return c.quo(c.log1p(u), integer(2))
}

// relative returns an error allowance relative to the magnitude of v.
func (k *Kernel) relative(v *apd.Decimal) *apd.Decimal {
	if v.IsZero() {
		return apd.New(0, 0)
	}
	//
	return apd.New(1, int32(adjusted(v)+1-int64(k.digits)+slackDigits))
}

// absolute returns the absolute error allowance of reduced trigonometric
// functions.
func (k *Kernel) absolute() *apd.Decimal {
	return apd.New(1, -int32(k.digits)+slackDigits)
}

func (k *Kernel) trigSlack(v *apd.Decimal, reduced bool) *apd.Decimal {
	if !reduced {
		return k.relative(v)
	}
	//
	var slack apd.Decimal
	//
	_, _ = apd.BaseContext.WithPrecision(k.digits).Add(&slack, k.absolute(), k.relative(v))
	//
	return &slack
}

// enclose converts v widened by slack on either side into float64 bounds.
func (k *Kernel) enclose(v, slack *apd.Decimal) (float64, float64) {
	var (
		lo, hi apd.Decimal
		down   = apd.BaseContext.WithPrecision(k.digits + 2*guard)
		up     = apd.BaseContext.WithPrecision(k.digits + 2*guard)
	)
	//
	down.Rounding = apd.RoundFloor
	up.Rounding = apd.RoundCeiling
	_, _ = down.Sub(&lo, v, slack)
	_, _ = up.Add(&hi, v, slack)
	//
	return DecimalDown(&lo), DecimalUp(&hi)
}

// saturate handles arguments for which exponential functions leave the
// float64 range, or tanh is indistinguishable from +/-1.
func saturate(fn round.Func, x float64) (float64, float64, bool) {
	var (
		inf  = math.Inf(1)
		huge = math.Abs(x) > expOverflow
	)
	//
	switch {
	case fn == round.Exp && x > expOverflow:
		return math.MaxFloat64, inf, true
	case fn == round.Exp && x < expUnderflow:
		return 0, math.SmallestNonzeroFloat64, true
	case fn == round.Cosh && huge:
		return math.MaxFloat64, inf, true
	case fn == round.Sinh && huge && x > 0:
		return math.MaxFloat64, inf, true
	case fn == round.Sinh && huge:
		return -inf, -math.MaxFloat64, true
	case fn == round.Tanh && x > tanhSaturate:
		return round.Prev(1), 1, true
	case fn == round.Tanh && x < -tanhSaturate:
		return -1, round.Next(-1), true
	}
	//
	return 0, 0, false
}
