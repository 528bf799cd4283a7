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
package model

import (
	"errors"
	"fmt"

	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/prop"
	"github.com/consensys/go-fprop/pkg/prop/arith"
	"github.com/consensys/go-fprop/pkg/prop/rel"
	"github.com/consensys/go-fprop/pkg/prop/trig"
)

// FloatRelType identifies the relation between two floating point values.
//
//nolint:revive
type FloatRelType uint8

const (
	// FRT_EQ is equality (=).
	FRT_EQ FloatRelType = iota
	// FRT_NQ is disequality (!=).
	FRT_NQ
	// FRT_LQ is less than or equal (<=).
	FRT_LQ
	// FRT_LE is less than (<).
	FRT_LE
	// FRT_GQ is greater than or equal (>=).
	FRT_GQ
	// FRT_GR is greater than (>).
	FRT_GR
)

var relNames = []string{"=", "!=", "<=", "<", ">=", ">"}

func (r FloatRelType) String() string {
	return relNames[r]
}

// ParseRel parses a relation from its symbol, such as "<=".
func ParseRel(s string) (FloatRelType, error) {
	for i, n := range relNames {
		if n == s {
			return FloatRelType(i), nil
		}
	}
	//
	return 0, fmt.Errorf("unknown relation %q", s)
}

// ErrInvalidArgument signals a constraint posted with an argument outside of
// its permitted range, such as a negative exponent.
var ErrInvalidArgument = errors.New("invalid argument")

// ============================================================================
// Relations
// ============================================================================

// Rel posts x0 ~ x1 for a relation ~.
func Rel(home *prop.Space, x0 prop.FloatVar, frt FloatRelType, x1 prop.FloatVar) {
	if home.Failed() {
		return
	}
	//
	v0, v1 := x0.View(), x1.View()
	//
	switch frt {
	case FRT_EQ:
		rel.PostEq(home, v0, v1)
	case FRT_NQ:
		rel.PostNq(home, v0, v1)
	case FRT_LQ:
		rel.PostLq(home, v0, v1)
	case FRT_LE:
		rel.PostLe(home, v0, v1)
	case FRT_GQ:
		rel.PostLq(home, v1, v0)
	case FRT_GR:
		rel.PostLe(home, v1, v0)
	}
}

// RelConst posts x ~ c for a relation ~.
func RelConst(home *prop.Space, x prop.FloatVar, frt FloatRelType, c float64) {
	if home.Failed() {
		return
	}
	//
	v := x.View()
	//
	switch frt {
	case FRT_EQ:
		v.Eq(home, float.Point(c))
	case FRT_NQ:
		rel.PostNqFloat(home, v, c)
	case FRT_LQ:
		v.Lq(home, c)
	case FRT_LE:
		rel.PostLeFloat(home, v, c)
	case FRT_GQ:
		v.Gq(home, c)
	case FRT_GR:
		rel.PostGrFloat(home, v, c)
	}
}

// Dom restricts the domain of x to an interval.
func Dom(home *prop.Space, x prop.FloatVar, iv float.Interval) {
	if !home.Failed() {
		x.View().Eq(home, iv)
	}
}

// RelReif posts (x0 ~ x1) <=> b for a relation ~, where only the directions
// determined by the reification mode are enforced.
func RelReif(home *prop.Space, x0 prop.FloatVar, frt FloatRelType, x1 prop.FloatVar, b prop.BoolVar,
	rm rel.ReifyMode) {
	if home.Failed() {
		return
	}
	//
	v0, v1, bv := x0.View(), x1.View(), b.View()
	//
	switch frt {
	case FRT_EQ:
		rel.PostReEq(home, v0, v1, bv, rm)
	case FRT_NQ:
		rel.PostReEq(home, v0, v1, bv.Not(), negate(rm))
	case FRT_LQ:
		rel.PostReLq(home, v0, v1, bv, rm)
	case FRT_LE:
		rel.PostReLe(home, v0, v1, bv, rm)
	case FRT_GQ:
		rel.PostReLq(home, v1, v0, bv, rm)
	case FRT_GR:
		rel.PostReLe(home, v1, v0, bv, rm)
	}
}

// RelConstReif posts (x ~ c) <=> b for a relation ~, where only the
// directions determined by the reification mode are enforced.
func RelConstReif(home *prop.Space, x prop.FloatVar, frt FloatRelType, c float64, b prop.BoolVar,
	rm rel.ReifyMode) {
	if home.Failed() {
		return
	}
	//
	v, bv := x.View(), b.View()
	//
	switch frt {
	case FRT_EQ:
		rel.PostReEqFloat(home, v, c, bv, rm)
	case FRT_NQ:
		rel.PostReEqFloat(home, v, c, bv.Not(), negate(rm))
	case FRT_LQ:
		rel.PostReLqFloat(home, v, c, bv, rm)
	case FRT_LE:
		rel.PostReLeFloat(home, v, c, bv, rm)
	case FRT_GQ:
		// x >= c iff -x <= -c
		rel.PostReLqFloat(home, prop.Minus(v), -c, bv, rm)
	case FRT_GR:
		rel.PostReLeFloat(home, prop.Minus(v), -c, bv, rm)
	}
}

// negate adjusts a reification mode for a negated control variable.
func negate(rm rel.ReifyMode) rel.ReifyMode {
	switch rm {
	case rel.RM_IMP:
		return rel.RM_PMI
	case rel.RM_PMI:
		return rel.RM_IMP
	}
	//
	return rm
}

// ============================================================================
// Arithmetic
// ============================================================================

// Mult posts x0 * x1 = x2.
func Mult(home *prop.Space, x0, x1, x2 prop.FloatVar) {
	arith.PostMult(home, x0.View(), x1.View(), x2.View())
}

// Div posts x0 / x1 = x2.
func Div(home *prop.Space, x0, x1, x2 prop.FloatVar) {
	arith.PostDiv(home, x0.View(), x1.View(), x2.View())
}

// Sqr posts x0 * x0 = x1.
func Sqr(home *prop.Space, x0, x1 prop.FloatVar) {
	arith.PostSqr(home, x0.View(), x1.View())
}

// Sqrt posts sqrt(x0) = x1.
func Sqrt(home *prop.Space, x0, x1 prop.FloatVar) {
	arith.PostSqrt(home, x0.View(), x1.View())
}

// Pow posts x0^n = x1, for a non-negative exponent n.
func Pow(home *prop.Space, x0 prop.FloatVar, n int, x1 prop.FloatVar) error {
	if n < 0 {
		return fmt.Errorf("%w: exponent %d", ErrInvalidArgument, n)
	}
	//
	arith.PostPow(home, x0.View(), x1.View(), n)
	//
	return nil
}

// NRoot posts x0^(1/n) = x1, for a positive degree n.
func NRoot(home *prop.Space, x0 prop.FloatVar, n int, x1 prop.FloatVar) error {
	if n < 1 {
		return fmt.Errorf("%w: root %d", ErrInvalidArgument, n)
	}
	//
	arith.PostNthRoot(home, x0.View(), x1.View(), n)
	//
	return nil
}

// Abs posts |x0| = x1.
func Abs(home *prop.Space, x0, x1 prop.FloatVar) {
	arith.PostAbs(home, x0.View(), x1.View())
}

// Min posts min(x0,x1) = x2.
func Min(home *prop.Space, x0, x1, x2 prop.FloatVar) {
	arith.PostMin(home, x0.View(), x1.View(), x2.View())
}

// Max posts max(x0,x1) = x2.
func Max(home *prop.Space, x0, x1, x2 prop.FloatVar) {
	arith.PostMax(home, x0.View(), x1.View(), x2.View())
}

// NaryMin posts min(xs) = y, for a non-empty slice xs.
func NaryMin(home *prop.Space, xs []prop.FloatVar, y prop.FloatVar) error {
	if len(xs) == 0 {
		return fmt.Errorf("%w: minimum of no values", ErrInvalidArgument)
	}
	//
	arith.PostNaryMin(home, views(xs), y.View())
	//
	return nil
}

// NaryMax posts max(xs) = y, for a non-empty slice xs.
func NaryMax(home *prop.Space, xs []prop.FloatVar, y prop.FloatVar) error {
	if len(xs) == 0 {
		return fmt.Errorf("%w: maximum of no values", ErrInvalidArgument)
	}
	//
	arith.PostNaryMax(home, views(xs), y.View())
	//
	return nil
}

// Exp posts e^x0 = x1.
func Exp(home *prop.Space, x0, x1 prop.FloatVar) {
	arith.PostExp(home, x0.View(), x1.View())
}

// ExpBase posts base^x0 = x1, for a positive base other than one.
func ExpBase(home *prop.Space, base float64, x0, x1 prop.FloatVar) error {
	if _, err := arith.LogBase(base); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	//
	arith.PostExpBase(home, base, x0.View(), x1.View())
	//
	return nil
}

// Log posts ln(x0) = x1.
func Log(home *prop.Space, x0, x1 prop.FloatVar) {
	arith.PostLog(home, x0.View(), x1.View())
}

// LogBase posts log_base(x0) = x1, for a positive base other than one.
func LogBase(home *prop.Space, base float64, x0, x1 prop.FloatVar) error {
	if _, err := arith.LogBase(base); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	//
	arith.PostLogBase(home, base, x0.View(), x1.View())
	//
	return nil
}

// ============================================================================
// Trigonometric
// ============================================================================

// Sin posts sin(x0) = x1.
func Sin(home *prop.Space, x0, x1 prop.FloatVar) {
	trig.PostSin(home, x0.View(), x1.View())
}

// Cos posts cos(x0) = x1.
func Cos(home *prop.Space, x0, x1 prop.FloatVar) {
	trig.PostCos(home, x0.View(), x1.View())
}

// Tan posts tan(x0) = x1.
func Tan(home *prop.Space, x0, x1 prop.FloatVar) {
	trig.PostTan(home, x0.View(), x1.View())
}

// ASin posts asin(x0) = x1.
func ASin(home *prop.Space, x0, x1 prop.FloatVar) {
	trig.PostASin(home, x0.View(), x1.View())
}

// ACos posts acos(x0) = x1.
func ACos(home *prop.Space, x0, x1 prop.FloatVar) {
	trig.PostACos(home, x0.View(), x1.View())
}

// ATan posts atan(x0) = x1.
func ATan(home *prop.Space, x0, x1 prop.FloatVar) {
	trig.PostATan(home, x0.View(), x1.View())
}

func views(xs []prop.FloatVar) []prop.FloatView {
	vs := make([]prop.FloatView, len(xs))
	//
	for i, x := range xs {
		vs[i] = x.View()
	}
	//
	return vs
}
