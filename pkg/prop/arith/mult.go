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
package arith

import (
	"github.com/consensys/go-fprop/pkg/prop"
)

// Mult is a bounds propagator for x0 * x1 = x2.
type Mult[V0 prop.View, V1 prop.View, V2 prop.View] struct {
	x0 V0
	x1 V1
	x2 V2
}

// PostMult posts x0 * x1 = x2.
func PostMult[V0 prop.View, V1 prop.View, V2 prop.View](home *prop.Space, x0 V0, x1 V1, x2 V2) prop.Status {
	return post(home, &Mult[V0, V1, V2]{x0, x1, x2}, x0, x1, x2)
}

// Propagate implementation for the prop.Propagator interface.
func (p *Mult[V0, V1, V2]) Propagate(home *prop.Space) prop.Status {
	return home.Converge(func() prop.Status {
		return p.step(home)
	})
}

func (p *Mult[V0, V1, V2]) step(home *prop.Space) prop.Status {
	if p.x2.Eq(home, p.x0.Domain().Mul(p.x1.Domain())).Failed() {
		return prop.ES_FAILED
	}
	// a zero product requires a zero factor, which determines nothing else
	if x2 := p.x2.Domain(); x2.IsSingleton() && x2.Min() == 0 {
		if p.x0.ZeroIn() || p.x1.ZeroIn() {
			return prop.ES_FIX
		}
		//
		return prop.ES_FAILED
	}
	//
	if divides(p.x2, p.x1) {
		q, err := p.x2.Domain().Div(p.x1.Domain())
		if narrow(home, p.x0, q, err).Failed() {
			return prop.ES_FAILED
		}
	}
	//
	if divides(p.x2, p.x0) {
		q, err := p.x2.Domain().Div(p.x0.Domain())
		if narrow(home, p.x1, q, err).Failed() {
			return prop.ES_FAILED
		}
	}
	//
	if p.x0.Assigned() && p.x1.Assigned() {
		// the product of the final factors
		if p.x2.Eq(home, p.x0.Domain().Mul(p.x1.Domain())).Failed() {
			return prop.ES_FAILED
		}
		//
		return prop.ES_SUBSUMED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *Mult[V0, V1, V2]) Copy(home *prop.Space) prop.Propagator {
	return &Mult[V0, V1, V2]{prop.Update(home, p.x0), prop.Update(home, p.x1), prop.Update(home, p.x2)}
}

// Name implementation for the prop.Propagator interface.
func (p *Mult[V0, V1, V2]) Name() string {
	return "mult"
}

// divides determines whether dividing the product (or dividend) by a factor
// (or divisor) can narrow the other factor.  When both may be zero, the other
// factor is unconstrained.  This includes a factor which is exactly zero.
func divides[N prop.View, D prop.View](num N, den D) bool {
	return !(num.ZeroIn() && den.ZeroIn())
}

// Div is a bounds propagator for x0 / x1 = x2.
type Div[V0 prop.View, V1 prop.View, V2 prop.View] struct {
	x0 V0
	x1 V1
	x2 V2
}

// PostDiv posts x0 / x1 = x2.
func PostDiv[V0 prop.View, V1 prop.View, V2 prop.View](home *prop.Space, x0 V0, x1 V1, x2 V2) prop.Status {
	return post(home, &Div[V0, V1, V2]{x0, x1, x2}, x0, x1, x2)
}

// Propagate implementation for the prop.Propagator interface.
func (p *Div[V0, V1, V2]) Propagate(home *prop.Space) prop.Status {
	return home.Converge(func() prop.Status {
		return p.step(home)
	})
}

func (p *Div[V0, V1, V2]) step(home *prop.Space) prop.Status {
	// division by zero has no solutions
	if x1 := p.x1.Domain(); x1.IsSingleton() && x1.Min() == 0 {
		return prop.ES_FAILED
	}
	//
	q, err := p.x0.Domain().Div(p.x1.Domain())
	if narrow(home, p.x2, q, err).Failed() {
		return prop.ES_FAILED
	} else if p.x0.Eq(home, p.x2.Domain().Mul(p.x1.Domain())).Failed() {
		return prop.ES_FAILED
	}
	//
	if divides(p.x0, p.x2) {
		q, err := p.x0.Domain().Div(p.x2.Domain())
		if narrow(home, p.x1, q, err).Failed() {
			return prop.ES_FAILED
		}
	}
	//
	if p.x0.Assigned() && p.x1.Assigned() {
		q, err := p.x0.Domain().Div(p.x1.Domain())
		if narrow(home, p.x2, q, err).Failed() {
			return prop.ES_FAILED
		}
		//
		return prop.ES_SUBSUMED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *Div[V0, V1, V2]) Copy(home *prop.Space) prop.Propagator {
	return &Div[V0, V1, V2]{prop.Update(home, p.x0), prop.Update(home, p.x1), prop.Update(home, p.x2)}
}

// Name implementation for the prop.Propagator interface.
func (p *Div[V0, V1, V2]) Name() string {
	return "div"
}
