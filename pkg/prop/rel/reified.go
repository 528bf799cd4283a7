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
package rel

import (
	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/prop"
)

// ReifyMode determines which directions of a reified constraint (c <=> b) are
// enforced.
//
//nolint:revive
type ReifyMode uint8

const (
	// RM_EQV enforces c <=> b.
	RM_EQV ReifyMode = iota
	// RM_IMP enforces b => c.
	RM_IMP
	// RM_PMI enforces c => b.
	RM_PMI
)

func (rm ReifyMode) String() string {
	switch rm {
	case RM_IMP:
		return "imp"
	case RM_PMI:
		return "pmi"
	}
	//
	return "eqv"
}

// reify handles the common part of propagating a reified relation.  If the
// control variable is decided, the relation (or its negation) is posted as
// required by the mode, and the reified propagator is subsumed.  Otherwise,
// the control variable is set according to the outcome of testing the
// relation.
func reify(home *prop.Space, b prop.BoolView, rm ReifyMode, test float.RelTest,
	holds func() prop.Status, fails func() prop.Status) prop.Status {
	switch {
	case b.One():
		if rm != RM_PMI && holds() == prop.ES_FAILED {
			return prop.ES_FAILED
		}
		//
		return prop.ES_SUBSUMED
	case b.Zero():
		if rm != RM_IMP && fails() == prop.ES_FAILED {
			return prop.ES_FAILED
		}
		//
		return prop.ES_SUBSUMED
	}
	//
	switch test {
	case float.RT_TRUE:
		if rm != RM_IMP && b.OneNone(home).Failed() {
			return prop.ES_FAILED
		}
	case float.RT_FALSE:
		if rm != RM_PMI && b.ZeroNone(home).Failed() {
			return prop.ES_FAILED
		}
	default:
		return prop.ES_FIX
	}
	//
	return prop.ES_SUBSUMED
}

// post a reified propagator, unless propagating it immediately decides it.
func post(home *prop.Space, p prop.Propagator, deps ...prop.Dependency) prop.Status {
	if home.Failed() {
		return prop.ES_FAILED
	}
	//
	switch p.Propagate(home) {
	case prop.ES_FAILED:
		home.Fail()
		return prop.ES_FAILED
	case prop.ES_SUBSUMED:
		return prop.ES_OK
	}
	//
	return home.Post(p, deps...)
}

// ============================================================================
// Binary reified relations
// ============================================================================

// ReLq propagates (x0 <= x1) <=> b, subject to the reification mode.
type ReLq[V0 prop.View, V1 prop.View] struct {
	x0 V0
	x1 V1
	b  prop.BoolView
	rm ReifyMode
}

// PostReLq posts (x0 <= x1) <=> b.
func PostReLq[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1, b prop.BoolView,
	rm ReifyMode) prop.Status {
	return post(home, &ReLq[V0, V1]{x0, x1, b, rm}, x0, x1, b)
}

// Propagate implementation for the prop.Propagator interface.
func (p *ReLq[V0, V1]) Propagate(home *prop.Space) prop.Status {
	return reify(home, p.b, p.rm, float.TestLq(p.x0.Domain(), p.x1.Domain()),
		func() prop.Status { return PostLq(home, p.x0, p.x1) },
		// x1 < x0
		func() prop.Status { return PostLe(home, p.x1, p.x0) })
}

// Copy implementation for the prop.Propagator interface.
func (p *ReLq[V0, V1]) Copy(home *prop.Space) prop.Propagator {
	return &ReLq[V0, V1]{prop.Update(home, p.x0), prop.Update(home, p.x1), p.b.Update(home), p.rm}
}

// Name implementation for the prop.Propagator interface.
func (p *ReLq[V0, V1]) Name() string {
	return "relq"
}

// ReLe propagates (x0 < x1) <=> b, subject to the reification mode.
type ReLe[V0 prop.View, V1 prop.View] struct {
	x0 V0
	x1 V1
	b  prop.BoolView
	rm ReifyMode
}

// PostReLe posts (x0 < x1) <=> b.
func PostReLe[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1, b prop.BoolView,
	rm ReifyMode) prop.Status {
	return post(home, &ReLe[V0, V1]{x0, x1, b, rm}, x0, x1, b)
}

// Propagate implementation for the prop.Propagator interface.
func (p *ReLe[V0, V1]) Propagate(home *prop.Space) prop.Status {
	return reify(home, p.b, p.rm, float.TestLe(p.x0.Domain(), p.x1.Domain()),
		func() prop.Status { return PostLe(home, p.x0, p.x1) },
		// x1 <= x0
		func() prop.Status { return PostLq(home, p.x1, p.x0) })
}

// Copy implementation for the prop.Propagator interface.
func (p *ReLe[V0, V1]) Copy(home *prop.Space) prop.Propagator {
	return &ReLe[V0, V1]{prop.Update(home, p.x0), prop.Update(home, p.x1), p.b.Update(home), p.rm}
}

// Name implementation for the prop.Propagator interface.
func (p *ReLe[V0, V1]) Name() string {
	return "rele"
}

// ReEq propagates (x0 = x1) <=> b, subject to the reification mode.
type ReEq[V0 prop.View, V1 prop.View] struct {
	x0 V0
	x1 V1
	b  prop.BoolView
	rm ReifyMode
}

// PostReEq posts (x0 = x1) <=> b.
func PostReEq[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1, b prop.BoolView,
	rm ReifyMode) prop.Status {
	return post(home, &ReEq[V0, V1]{x0, x1, b, rm}, x0, x1, b)
}

// Propagate implementation for the prop.Propagator interface.
func (p *ReEq[V0, V1]) Propagate(home *prop.Space) prop.Status {
	return reify(home, p.b, p.rm, float.TestEq(p.x0.Domain(), p.x1.Domain()),
		func() prop.Status { return PostEq(home, p.x0, p.x1) },
		func() prop.Status { return PostNq(home, p.x0, p.x1) })
}

// Copy implementation for the prop.Propagator interface.
func (p *ReEq[V0, V1]) Copy(home *prop.Space) prop.Propagator {
	return &ReEq[V0, V1]{prop.Update(home, p.x0), prop.Update(home, p.x1), p.b.Update(home), p.rm}
}

// Name implementation for the prop.Propagator interface.
func (p *ReEq[V0, V1]) Name() string {
	return "reeq"
}

// ============================================================================
// Reified relations with a constant
// ============================================================================

// ReLqFloat propagates (x <= c) <=> b, subject to the reification mode.
type ReLqFloat[V prop.View] struct {
	x  V
	c  float64
	b  prop.BoolView
	rm ReifyMode
}

// PostReLqFloat posts (x <= c) <=> b.
func PostReLqFloat[V prop.View](home *prop.Space, x V, c float64, b prop.BoolView, rm ReifyMode) prop.Status {
	return post(home, &ReLqFloat[V]{x, c, b, rm}, x, b)
}

// Propagate implementation for the prop.Propagator interface.
func (p *ReLqFloat[V]) Propagate(home *prop.Space) prop.Status {
	return reify(home, p.b, p.rm, float.TestLq(p.x.Domain(), float.Point(p.c)),
		func() prop.Status { return check(p.x.Lq(home, p.c)) },
		// x > c
		func() prop.Status { return PostGrFloat(home, p.x, p.c) })
}

// Copy implementation for the prop.Propagator interface.
func (p *ReLqFloat[V]) Copy(home *prop.Space) prop.Propagator {
	return &ReLqFloat[V]{prop.Update(home, p.x), p.c, p.b.Update(home), p.rm}
}

// Name implementation for the prop.Propagator interface.
func (p *ReLqFloat[V]) Name() string {
	return "relqf"
}

// ReLeFloat propagates (x < c) <=> b, subject to the reification mode.
type ReLeFloat[V prop.View] struct {
	x  V
	c  float64
	b  prop.BoolView
	rm ReifyMode
}

// PostReLeFloat posts (x < c) <=> b.
func PostReLeFloat[V prop.View](home *prop.Space, x V, c float64, b prop.BoolView, rm ReifyMode) prop.Status {
	return post(home, &ReLeFloat[V]{x, c, b, rm}, x, b)
}

// Propagate implementation for the prop.Propagator interface.
func (p *ReLeFloat[V]) Propagate(home *prop.Space) prop.Status {
	return reify(home, p.b, p.rm, float.TestLe(p.x.Domain(), float.Point(p.c)),
		func() prop.Status { return PostLeFloat(home, p.x, p.c) },
		// x >= c
		func() prop.Status { return check(p.x.Gq(home, p.c)) })
}

// Copy implementation for the prop.Propagator interface.
func (p *ReLeFloat[V]) Copy(home *prop.Space) prop.Propagator {
	return &ReLeFloat[V]{prop.Update(home, p.x), p.c, p.b.Update(home), p.rm}
}

// Name implementation for the prop.Propagator interface.
func (p *ReLeFloat[V]) Name() string {
	return "relef"
}

// ReEqFloat propagates (x = c) <=> b, subject to the reification mode.
type ReEqFloat[V prop.View] struct {
	x  V
	c  float64
	b  prop.BoolView
	rm ReifyMode
}

// PostReEqFloat posts (x = c) <=> b.
func PostReEqFloat[V prop.View](home *prop.Space, x V, c float64, b prop.BoolView, rm ReifyMode) prop.Status {
	return post(home, &ReEqFloat[V]{x, c, b, rm}, x, b)
}

// Propagate implementation for the prop.Propagator interface.
func (p *ReEqFloat[V]) Propagate(home *prop.Space) prop.Status {
	c := float.Point(p.c)
	//
	return reify(home, p.b, p.rm, float.TestEq(p.x.Domain(), c),
		func() prop.Status { return check(p.x.Eq(home, c)) },
		func() prop.Status { return PostNqFloat(home, p.x, p.c) })
}

// Copy implementation for the prop.Propagator interface.
func (p *ReEqFloat[V]) Copy(home *prop.Space) prop.Propagator {
	return &ReEqFloat[V]{prop.Update(home, p.x), p.c, p.b.Update(home), p.rm}
}

// Name implementation for the prop.Propagator interface.
func (p *ReEqFloat[V]) Name() string {
	return "reeqf"
}

// ============================================================================
// Relations with a constant
// ============================================================================

// NqFloat is a propagator for x != c.
type NqFloat[V prop.View] struct {
	x V
	c float64
}

// PostNqFloat posts x != c.
func PostNqFloat[V prop.View](home *prop.Space, x V, c float64) prop.Status {
	return post(home, &NqFloat[V]{x, c}, x)
}

// Propagate implementation for the prop.Propagator interface.
func (p *NqFloat[V]) Propagate(home *prop.Space) prop.Status {
	switch float.TestEq(p.x.Domain(), float.Point(p.c)) {
	case float.RT_TRUE:
		return prop.ES_FAILED
	case float.RT_FALSE:
		return prop.ES_SUBSUMED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *NqFloat[V]) Copy(home *prop.Space) prop.Propagator {
	return &NqFloat[V]{prop.Update(home, p.x), p.c}
}

// Name implementation for the prop.Propagator interface.
func (p *NqFloat[V]) Name() string {
	return "nqf"
}

// LeFloat is a propagator for x < c.  This narrows x to x <= c, and fails
// only when every value of x is at least c.
type LeFloat[V prop.View] struct {
	x V
	c float64
}

// PostLeFloat posts x < c.
func PostLeFloat[V prop.View](home *prop.Space, x V, c float64) prop.Status {
	return post(home, &LeFloat[V]{x, c}, x)
}

// Propagate implementation for the prop.Propagator interface.
func (p *LeFloat[V]) Propagate(home *prop.Space) prop.Status {
	switch {
	case p.x.Lq(home, p.c).Failed() || p.x.Min() >= p.c:
		return prop.ES_FAILED
	case p.x.Max() < p.c:
		return prop.ES_SUBSUMED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *LeFloat[V]) Copy(home *prop.Space) prop.Propagator {
	return &LeFloat[V]{prop.Update(home, p.x), p.c}
}

// Name implementation for the prop.Propagator interface.
func (p *LeFloat[V]) Name() string {
	return "lef"
}

// GrFloat is a propagator for x > c.
type GrFloat[V prop.View] struct {
	x V
	c float64
}

// PostGrFloat posts x > c.
func PostGrFloat[V prop.View](home *prop.Space, x V, c float64) prop.Status {
	return post(home, &GrFloat[V]{x, c}, x)
}

// Propagate implementation for the prop.Propagator interface.
func (p *GrFloat[V]) Propagate(home *prop.Space) prop.Status {
	switch {
	case p.x.Gq(home, p.c).Failed() || p.x.Max() <= p.c:
		return prop.ES_FAILED
	case p.x.Min() > p.c:
		return prop.ES_SUBSUMED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *GrFloat[V]) Copy(home *prop.Space) prop.Propagator {
	return &GrFloat[V]{prop.Update(home, p.x), p.c}
}

// Name implementation for the prop.Propagator interface.
func (p *GrFloat[V]) Name() string {
	return "grf"
}

func check(me prop.ModEvent) prop.Status {
	if me.Failed() {
		return prop.ES_FAILED
	}
	//
	return prop.ES_OK
}
