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

// Periodic is a bounds propagator for f(x0) = x1, where f is one of sin, cos or
// tan.  The image of x0 narrows x1, whilst the bounds of x1 narrow x0 by
// locating the nearest points where f crosses them.
type Periodic[V0 prop.View, V1 prop.View] struct {
	x0 V0
	x1 V1
	f  *curve
}

// PostSin posts sin(x0) = x1.
func PostSin[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1) prop.Status {
	return postPeriodic(home, x0, x1, sine)
}

// PostCos posts cos(x0) = x1.
func PostCos[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1) prop.Status {
	return postPeriodic(home, x0, x1, cosine)
}

// PostTan posts tan(x0) = x1.
func PostTan[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1) prop.Status {
	return postPeriodic(home, x0, x1, tangent)
}

func postPeriodic[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1, f *curve) prop.Status {
	if home.Failed() {
		return prop.ES_FAILED
	} else if f != tangent && x1.Eq(home, unit).Failed() {
		return prop.ES_FAILED
	}
	//
	return home.Post(&Periodic[V0, V1]{x0, x1, f}, x0, x1)
}

// Propagate implementation for the prop.Propagator interface.  Evaluation and
// projection alternate until neither narrows a domain.
func (p *Periodic[V0, V1]) Propagate(home *prop.Space) prop.Status {
	return home.Converge(func() prop.Status {
		return p.step(home)
	})
}

func (p *Periodic[V0, V1]) step(home *prop.Space) prop.Status {
	if y, err := p.f.eval(p.x0.Domain()); err == nil && p.x1.Eq(home, y).Failed() {
		return prop.ES_FAILED
	} else if p.x0.Assigned() {
		return prop.ES_SUBSUMED
	}
	//
	x, ok := p.f.project(home.Round(), p.x0.Domain(), p.x1.Domain())
	//
	if !ok || p.x0.Eq(home, x).Failed() {
		home.Fail()
		return prop.ES_FAILED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *Periodic[V0, V1]) Copy(home *prop.Space) prop.Propagator {
	return &Periodic[V0, V1]{prop.Update(home, p.x0), prop.Update(home, p.x1), p.f}
}

// Name implementation for the prop.Propagator interface.
func (p *Periodic[V0, V1]) Name() string {
	return p.f.name
}

// unit is the range of sin and cos.
var unit, _ = float.New(-1, 1)
