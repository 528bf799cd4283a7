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
package prop

import (
	"math"

	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/float/round"
)

// Dependency is anything which refers to a variable a propagator depends on.
type Dependency interface {
	// Var returns the variable being depended upon.
	Var() *VarImp
}

// View presents a variable (or some function of it) to a propagator.  Queries
// return the domain as seen through the view, and modifications are mapped
// back onto the underlying variable with outward rounding, so that no value of
// the variable consistent with the view's narrowed domain is removed.
type View interface {
	Dependency
	// Domain returns the current domain of this view.
	Domain() float.Interval
	// Min returns the lower bound of this view.
	Min() float64
	// Max returns the upper bound of this view.
	Max() float64
	// Med returns the middle of this view's domain.
	Med() float64
	// Size returns the width of this view's domain.
	Size() float64
	// Assigned checks whether the underlying variable is assigned.
	Assigned() bool
	// Val returns the domain of an assigned view.
	Val() float.Interval
	// ZeroIn checks whether zero is within this view's domain.
	ZeroIn() bool
	// In checks whether a value is within this view's domain.
	In(v float64) bool
	// Eq restricts this view to a given interval.
	Eq(home *Space, v float.Interval) ModEvent
	// Lq restricts this view to values at most v.
	Lq(home *Space, v float64) ModEvent
	// Gq restricts this view to values at least v.
	Gq(home *Space, v float64) ModEvent
	// Update returns this view over the corresponding variable of a space,
	// typically a clone.
	Update(home *Space) View
}

// Update a view for a given space, retaining its concrete type.  This is used
// when copying propagators.
func Update[V View](home *Space, v V) V {
	return v.Update(home).(V)
}

// UpdateAll updates a slice of views for a given space.
func UpdateAll[V View](home *Space, vs []V) []V {
	nvs := make([]V, len(vs))
	//
	for i, v := range vs {
		nvs[i] = Update(home, v)
	}
	//
	return nvs
}

// ============================================================================
// FloatView
// ============================================================================

// FloatView is the identity view of a float variable.
type FloatView struct {
	x *VarImp
}

// Var implementation for the Dependency interface.
func (v FloatView) Var() *VarImp { return v.x }

// Domain implementation for the View interface.
func (v FloatView) Domain() float.Interval { return v.x.dom }

// Min implementation for the View interface.
func (v FloatView) Min() float64 { return v.x.dom.Min() }

// Max implementation for the View interface.
func (v FloatView) Max() float64 { return v.x.dom.Max() }

// Med implementation for the View interface.
func (v FloatView) Med() float64 { return v.x.dom.Med() }

// Size implementation for the View interface.
func (v FloatView) Size() float64 { return v.x.dom.Size() }

// Assigned implementation for the View interface.
func (v FloatView) Assigned() bool { return v.x.dom.Tight() }

// Val implementation for the View interface.
func (v FloatView) Val() float.Interval { return v.x.dom }

// ZeroIn implementation for the View interface.
func (v FloatView) ZeroIn() bool { return v.x.dom.ZeroIn() }

// In implementation for the View interface.
func (v FloatView) In(n float64) bool { return v.x.dom.Contains(n) }

// Eq implementation for the View interface.
func (v FloatView) Eq(home *Space, n float.Interval) ModEvent {
	if dom, ok := float.Intersect(v.x.dom, n); ok {
		return home.modify(v.x, dom)
	}
	//
	return home.fail(v.x)
}

// Lq implementation for the View interface.
func (v FloatView) Lq(home *Space, n float64) ModEvent {
	switch {
	case math.IsNaN(n):
		return ME_NONE
	case n < v.x.dom.Min() || math.IsInf(n, -1):
		return home.fail(v.x)
	case n >= v.x.dom.Max():
		return ME_NONE
	}
	//
	return home.modify(v.x, bounds(v.x.dom.Min(), n))
}

// Gq implementation for the View interface.
func (v FloatView) Gq(home *Space, n float64) ModEvent {
	switch {
	case math.IsNaN(n):
		return ME_NONE
	case n > v.x.dom.Max() || math.IsInf(n, 1):
		return home.fail(v.x)
	case n <= v.x.dom.Min():
		return ME_NONE
	}
	//
	return home.modify(v.x, bounds(n, v.x.dom.Max()))
}

// Update implementation for the View interface.
func (v FloatView) Update(home *Space) View {
	return FloatView{home.vars[v.x.idx]}
}

func (v FloatView) String() string {
	return v.x.dom.String()
}

// ============================================================================
// MinusView
// ============================================================================

// MinusView presents the negation -x of a variable x.  Negation is exact.
type MinusView struct {
	x FloatView
}

// Minus constructs a negated view of a float view.
func Minus(x FloatView) MinusView {
	return MinusView{x}
}

// Var implementation for the Dependency interface.
func (v MinusView) Var() *VarImp { return v.x.x }

// Domain implementation for the View interface.
func (v MinusView) Domain() float.Interval { return v.x.Domain().Neg() }

// Min implementation for the View interface.
func (v MinusView) Min() float64 { return -v.x.Max() }

// Max implementation for the View interface.
func (v MinusView) Max() float64 { return -v.x.Min() }

// Med implementation for the View interface.
func (v MinusView) Med() float64 { return -v.x.Med() }

// Size implementation for the View interface.
func (v MinusView) Size() float64 { return v.x.Size() }

// Assigned implementation for the View interface.
func (v MinusView) Assigned() bool { return v.x.Assigned() }

// Val implementation for the View interface.
func (v MinusView) Val() float.Interval { return v.Domain() }

// ZeroIn implementation for the View interface.
func (v MinusView) ZeroIn() bool { return v.x.ZeroIn() }

// In implementation for the View interface.
func (v MinusView) In(n float64) bool { return v.x.In(-n) }

// Eq implementation for the View interface.
func (v MinusView) Eq(home *Space, n float.Interval) ModEvent {
	return v.x.Eq(home, n.Neg())
}

// Lq implementation for the View interface.
func (v MinusView) Lq(home *Space, n float64) ModEvent {
	return v.x.Gq(home, -n)
}

// Gq implementation for the View interface.
func (v MinusView) Gq(home *Space, n float64) ModEvent {
	return v.x.Lq(home, -n)
}

// Update implementation for the View interface.
func (v MinusView) Update(home *Space) View {
	return MinusView{Update(home, v.x)}
}

// ============================================================================
// OffsetView
// ============================================================================

// OffsetView presents x+c for a variable x and constant c.
type OffsetView struct {
	x FloatView
	c float64
}

// Offset constructs a view of x+c.
func Offset(x FloatView, c float64) OffsetView {
	return OffsetView{x, c}
}

// Var implementation for the Dependency interface.
func (v OffsetView) Var() *VarImp { return v.x.x }

// Domain implementation for the View interface.
func (v OffsetView) Domain() float.Interval { return v.x.Domain().AddScalar(v.c) }

// Min implementation for the View interface.
func (v OffsetView) Min() float64 { return v.Domain().Min() }

// Max implementation for the View interface.
func (v OffsetView) Max() float64 { return v.Domain().Max() }

// Med implementation for the View interface.
func (v OffsetView) Med() float64 { return v.Domain().Med() }

// Size implementation for the View interface.
func (v OffsetView) Size() float64 { return v.Domain().Size() }

// Assigned implementation for the View interface.
func (v OffsetView) Assigned() bool { return v.x.Assigned() }

// Val implementation for the View interface.
func (v OffsetView) Val() float.Interval { return v.Domain() }

// ZeroIn implementation for the View interface.
func (v OffsetView) ZeroIn() bool { return v.Domain().ZeroIn() }

// In implementation for the View interface.
func (v OffsetView) In(n float64) bool { return v.Domain().Contains(n) }

// Eq implementation for the View interface.
func (v OffsetView) Eq(home *Space, n float.Interval) ModEvent {
	return v.x.Eq(home, n.Sub(float.Point(v.c)))
}

// Lq implementation for the View interface.
func (v OffsetView) Lq(home *Space, n float64) ModEvent {
	return v.x.Lq(home, round.SubUp(n, v.c))
}

// Gq implementation for the View interface.
func (v OffsetView) Gq(home *Space, n float64) ModEvent {
	return v.x.Gq(home, round.SubDown(n, v.c))
}

// Update implementation for the View interface.
func (v OffsetView) Update(home *Space) View {
	return OffsetView{Update(home, v.x), v.c}
}

// ============================================================================
// ScaleView
// ============================================================================

// ScaleView presents a*x for a variable x and a positive constant a.
type ScaleView struct {
	x FloatView
	a float64
}

// Scale constructs a view of a*x, where a must be positive and finite.
func Scale(x FloatView, a float64) ScaleView {
	if !(a > 0) || a > float.MaxValue {
		panic("scale view requires a positive finite coefficient")
	}
	//
	return ScaleView{x, a}
}

// Var implementation for the Dependency interface.
func (v ScaleView) Var() *VarImp { return v.x.x }

// Domain implementation for the View interface.
func (v ScaleView) Domain() float.Interval { return v.x.Domain().MulScalar(v.a) }

// Min implementation for the View interface.
func (v ScaleView) Min() float64 { return round.MulDown(v.x.Min(), v.a) }

// Max implementation for the View interface.
func (v ScaleView) Max() float64 { return round.MulUp(v.x.Max(), v.a) }

// Med implementation for the View interface.
func (v ScaleView) Med() float64 { return v.Domain().Med() }

// Size implementation for the View interface.
func (v ScaleView) Size() float64 { return v.Domain().Size() }

// Assigned implementation for the View interface.
func (v ScaleView) Assigned() bool { return v.x.Assigned() }

// Val implementation for the View interface.
func (v ScaleView) Val() float.Interval { return v.Domain() }

// ZeroIn implementation for the View interface.
func (v ScaleView) ZeroIn() bool { return v.x.ZeroIn() }

// In implementation for the View interface.
func (v ScaleView) In(n float64) bool { return v.Domain().Contains(n) }

// Eq implementation for the View interface.
func (v ScaleView) Eq(home *Space, n float.Interval) ModEvent {
	// cannot fail as a is positive
	q, _ := n.Div(float.Point(v.a))
	//
	return v.x.Eq(home, q)
}

// Lq implementation for the View interface.
func (v ScaleView) Lq(home *Space, n float64) ModEvent {
	return v.x.Lq(home, round.DivUp(n, v.a))
}

// Gq implementation for the View interface.
func (v ScaleView) Gq(home *Space, n float64) ModEvent {
	return v.x.Gq(home, round.DivDown(n, v.a))
}

// Update implementation for the View interface.
func (v ScaleView) Update(home *Space) View {
	return ScaleView{Update(home, v.x), v.a}
}

// ============================================================================
// BoolView
// ============================================================================

// BoolView presents a boolean control variable to a propagator, possibly
// negated.
type BoolView struct {
	x   *VarImp
	neg bool
}

// Var implementation for the Dependency interface.
func (b BoolView) Var() *VarImp { return b.x }

// Not returns the negation of this view.
func (b BoolView) Not() BoolView { return BoolView{b.x, !b.neg} }

// Negated checks whether this view negates its variable.
func (b BoolView) Negated() bool { return b.neg }

// One checks whether this view is assigned to one.
func (b BoolView) One() bool {
	if b.neg {
		return b.x.dom.Max() == 0
	}
	//
	return b.x.dom.Min() == 1
}

// Zero checks whether this view is assigned to zero.
func (b BoolView) Zero() bool {
	if b.neg {
		return b.x.dom.Min() == 1
	}
	//
	return b.x.dom.Max() == 0
}

// None checks whether this view is unassigned.
func (b BoolView) None() bool { return !b.x.dom.IsSingleton() }

// OneNone assigns an unassigned view to one.
func (b BoolView) OneNone(home *Space) ModEvent {
	return b.assign(home, !b.neg)
}

// ZeroNone assigns an unassigned view to zero.
func (b BoolView) ZeroNone(home *Space) ModEvent {
	return b.assign(home, b.neg)
}

func (b BoolView) assign(home *Space, one bool) ModEvent {
	if one {
		return home.modify(b.x, float.Point(1))
	}
	//
	return home.modify(b.x, float.Point(0))
}

// Update returns this view over the corresponding variable of a space.
func (b BoolView) Update(home *Space) BoolView {
	return BoolView{home.vars[b.x.idx], b.neg}
}

// bounds constructs an interval from bounds known to be ordered.
func bounds(lo, hi float64) float.Interval {
	// callers guarantee lo <= hi
	iv, _ := float.New(lo, hi)
	//
	return iv
}
