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
	"fmt"

	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/prop"
)

// Pow is a bounds propagator for x0^n = x1, where n is non-negative.
type Pow[V0 prop.View, V1 prop.View] struct {
	x0 V0
	x1 V1
	n  int
}

// PostPow posts x0^n = x1.  The exponent must be non-negative.
func PostPow[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1, n int) prop.Status {
	if n < 0 {
		panic(fmt.Sprintf("invalid exponent %d", n))
	} else if home.Failed() {
		return prop.ES_FAILED
	} else if n%2 == 0 && x1.Gq(home, 0).Failed() {
		return prop.ES_FAILED
	}
	//
	return home.Post(&Pow[V0, V1]{x0, x1, n}, x0, x1)
}

// PostSqr posts x0^2 = x1.
func PostSqr[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1) prop.Status {
	return PostPow(home, x0, x1, 2)
}

// Propagate implementation for the prop.Propagator interface.
func (p *Pow[V0, V1]) Propagate(home *prop.Space) prop.Status {
	return home.Converge(func() prop.Status {
		return p.step(home)
	})
}

func (p *Pow[V0, V1]) step(home *prop.Space) prop.Status {
	y, err := float.Pow(p.x0.Domain(), p.n)
	//
	if restrict(home, p.x1, y, err).Failed() {
		return prop.ES_FAILED
	} else if p.n == 0 || p.x0.Assigned() {
		// x0 is unconstrained, or determines x1
		return prop.ES_SUBSUMED
	}
	//
	r, err := float.NthRoot(p.x1.Domain(), p.n)
	//
	if err != nil {
		return prop.ES_FAILED
	} else if p.n%2 == 0 {
		// both signs are roots
		switch {
		case p.x0.Min() >= 0:
		case p.x0.Max() <= 0:
			r = r.Neg()
		default:
			r = float.Hull(r, r.Neg())
		}
	}
	//
	if p.x0.Eq(home, r).Failed() {
		return prop.ES_FAILED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *Pow[V0, V1]) Copy(home *prop.Space) prop.Propagator {
	return &Pow[V0, V1]{prop.Update(home, p.x0), prop.Update(home, p.x1), p.n}
}

// Name implementation for the prop.Propagator interface.
func (p *Pow[V0, V1]) Name() string {
	return "pow"
}

// NthRoot is a bounds propagator for x0^(1/n) = x1, where n is positive.  For
// even n, only the non-negative root is considered.
type NthRoot[V0 prop.View, V1 prop.View] struct {
	x0 V0
	x1 V1
	n  int
}

// PostNthRoot posts x0^(1/n) = x1.  The degree must be positive.
func PostNthRoot[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1, n int) prop.Status {
	if n < 1 {
		panic(fmt.Sprintf("invalid root %d", n))
	} else if home.Failed() {
		return prop.ES_FAILED
	} else if n%2 == 0 && (x0.Gq(home, 0).Failed() || x1.Gq(home, 0).Failed()) {
		return prop.ES_FAILED
	}
	//
	return home.Post(&NthRoot[V0, V1]{x0, x1, n}, x0, x1)
}

// PostSqrt posts sqrt(x0) = x1.
func PostSqrt[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1) prop.Status {
	return PostNthRoot(home, x0, x1, 2)
}

// Propagate implementation for the prop.Propagator interface.
func (p *NthRoot[V0, V1]) Propagate(home *prop.Space) prop.Status {
	return home.Converge(func() prop.Status {
		return p.step(home)
	})
}

func (p *NthRoot[V0, V1]) step(home *prop.Space) prop.Status {
	r, err := float.NthRoot(p.x0.Domain(), p.n)
	//
	if restrict(home, p.x1, r, err).Failed() {
		return prop.ES_FAILED
	} else if p.x0.Assigned() {
		return prop.ES_SUBSUMED
	}
	//
	y, err := float.Pow(p.x1.Domain(), p.n)
	//
	if restrict(home, p.x0, y, err).Failed() {
		return prop.ES_FAILED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *NthRoot[V0, V1]) Copy(home *prop.Space) prop.Propagator {
	return &NthRoot[V0, V1]{prop.Update(home, p.x0), prop.Update(home, p.x1), p.n}
}

// Name implementation for the prop.Propagator interface.
func (p *NthRoot[V0, V1]) Name() string {
	return "nroot"
}
