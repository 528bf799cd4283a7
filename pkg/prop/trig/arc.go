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
package trig

import (
	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/prop"
)

// Arc is a bounds propagator for g(x0) = x1, where g is the inverse of a
// trigonometric function f restricted to a principal range.  Since f(x1) = x0
// holds exactly, x0 is narrowed by the image of x1 under f.
type Arc[V0 prop.View, V1 prop.View] struct {
	x0 V0
	x1 V1
	g  *inverse
}

type inverse struct {
	name    string
	eval    func(float.Interval) (float.Interval, error)
	forward func(float.Interval) (float.Interval, error)
	// domain and principal range
	domain func() float.Interval
	rng    func() float.Interval
}

var asine = &inverse{"asin", float.Asin, float.Sin,
	func() float.Interval { return unit },
	func() float.Interval { return float.Hull(float.PiHalf().Neg(), float.PiHalf()) },
}

var acosine = &inverse{"acos", float.Acos, float.Cos,
	func() float.Interval { return unit },
	func() float.Interval { return float.Hull(float.Point(0), float.Pi()) },
}

var atangent = &inverse{"atan", float.Atan, float.Tan,
	float.Entire,
	func() float.Interval { return float.Hull(float.PiHalf().Neg(), float.PiHalf()) },
}

// PostASin posts asin(x0) = x1.
func PostASin[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1) prop.Status {
	return postArc(home, x0, x1, asine)
}

// PostACos posts acos(x0) = x1.
func PostACos[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1) prop.Status {
	return postArc(home, x0, x1, acosine)
}

// PostATan posts atan(x0) = x1.
func PostATan[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1) prop.Status {
	return postArc(home, x0, x1, atangent)
}

func postArc[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1, g *inverse) prop.Status {
	if home.Failed() {
		return prop.ES_FAILED
	} else if x0.Eq(home, g.domain()).Failed() || x1.Eq(home, g.rng()).Failed() {
		return prop.ES_FAILED
	}
	//
	return home.Post(&Arc[V0, V1]{x0, x1, g}, x0, x1)
}

// Propagate implementation for the prop.Propagator interface.
func (p *Arc[V0, V1]) Propagate(home *prop.Space) prop.Status {
	return home.Converge(func() prop.Status {
		return p.step(home)
	})
}

func (p *Arc[V0, V1]) step(home *prop.Space) prop.Status {
	y, err := p.g.eval(p.x0.Domain())
	//
	if err != nil {
		home.Fail()
		return prop.ES_FAILED
	} else if p.x1.Eq(home, y).Failed() {
		return prop.ES_FAILED
	} else if p.x0.Assigned() {
		return prop.ES_SUBSUMED
	}
	//
	if x, err := p.g.forward(p.x1.Domain()); err == nil && p.x0.Eq(home, x).Failed() {
		return prop.ES_FAILED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *Arc[V0, V1]) Copy(home *prop.Space) prop.Propagator {
	return &Arc[V0, V1]{prop.Update(home, p.x0), prop.Update(home, p.x1), p.g}
}

// Name implementation for the prop.Propagator interface.
func (p *Arc[V0, V1]) Name() string {
	return p.g.name
}
