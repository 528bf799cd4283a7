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

// Exp is a bounds propagator for base^x0 = x1, where base is represented by
// an enclosure of its natural logarithm.
type Exp[V0 prop.View, V1 prop.View] struct {
	x0  V0
	x1  V1
	lnb float.Interval
}

// PostExp posts e^x0 = x1.
func PostExp[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1) prop.Status {
	return postExp(home, x0, x1, float.Point(1))
}

// PostExpBase posts base^x0 = x1, for a positive base other than one.
func PostExpBase[V0 prop.View, V1 prop.View](home *prop.Space, base float64, x0 V0, x1 V1) prop.Status {
	lnb, err := LogBase(base)
	if err != nil {
		panic(err.Error())
	}
	//
	return postExp(home, x0, x1, lnb)
}

// PostLog posts ln(x0) = x1.
func PostLog[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1) prop.Status {
	return postExp(home, x1, x0, float.Point(1))
}

// PostLogBase posts log_base(x0) = x1, for a positive base other than one.
func PostLogBase[V0 prop.View, V1 prop.View](home *prop.Space, base float64, x0 V0, x1 V1) prop.Status {
	return PostExpBase(home, base, x1, x0)
}

// LogBase returns an enclosure of the natural logarithm of a base, which must
// be positive and not one.
func LogBase(base float64) (float.Interval, error) {
	if !(base > 0) || base == 1 {
		return float.Interval{}, fmt.Errorf("invalid base %g", base)
	}
	//
	return float.Log(float.Point(base))
}

func postExp[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1, lnb float.Interval) prop.Status {
	if home.Failed() {
		return prop.ES_FAILED
	} else if x1.Gq(home, 0).Failed() {
		return prop.ES_FAILED
	}
	//
	return home.Post(&Exp[V0, V1]{x0, x1, lnb}, x0, x1)
}

// Propagate implementation for the prop.Propagator interface.
func (p *Exp[V0, V1]) Propagate(home *prop.Space) prop.Status {
	return home.Converge(func() prop.Status {
		return p.step(home)
	})
}

func (p *Exp[V0, V1]) step(home *prop.Space) prop.Status {
	r, err := float.Exp(p.x0.Domain().Mul(p.lnb))
	if restrict(home, p.x1, r, err).Failed() {
		return prop.ES_FAILED
	}
	// log of zero is undefined, but zero is never a power of the base
	if p.x1.Max() <= 0 {
		return prop.ES_FAILED
	} else if p.x0.Assigned() {
		return prop.ES_SUBSUMED
	}
	//
	l, err := float.Log(p.x1.Domain())
	if err == nil {
		l, err = l.Div(p.lnb)
	}
	//
	if narrow(home, p.x0, l, err).Failed() {
		return prop.ES_FAILED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *Exp[V0, V1]) Copy(home *prop.Space) prop.Propagator {
	return &Exp[V0, V1]{prop.Update(home, p.x0), prop.Update(home, p.x1), p.lnb}
}

// Name implementation for the prop.Propagator interface.
func (p *Exp[V0, V1]) Name() string {
	if p.lnb == float.Point(1) {
		return "exp"
	}
	//
	return "expb"
}
