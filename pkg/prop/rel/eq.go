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

// Eq is a bounds propagator for x0 = x1.
type Eq[V0 prop.View, V1 prop.View] struct {
	x0 V0
	x1 V1
}

// PostEq posts x0 = x1.
func PostEq[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1) prop.Status {
	if home.Failed() {
		return prop.ES_FAILED
	}
	//
	return home.Post(&Eq[V0, V1]{x0, x1}, x0, x1)
}

// Propagate implementation for the prop.Propagator interface.
func (p *Eq[V0, V1]) Propagate(home *prop.Space) prop.Status {
	return home.Converge(func() prop.Status {
		return p.step(home)
	})
}

func (p *Eq[V0, V1]) step(home *prop.Space) prop.Status {
	if p.x0.Eq(home, p.x1.Domain()).Failed() || p.x1.Eq(home, p.x0.Domain()).Failed() {
		return prop.ES_FAILED
	} else if p.x0.Assigned() && p.x1.Assigned() {
		return prop.ES_SUBSUMED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *Eq[V0, V1]) Copy(home *prop.Space) prop.Propagator {
	return &Eq[V0, V1]{prop.Update(home, p.x0), prop.Update(home, p.x1)}
}

// Name implementation for the prop.Propagator interface.
func (p *Eq[V0, V1]) Name() string {
	return "eq"
}

// Nq is a propagator for x0 != x1.  Over intervals this can only detect
// failure, which happens when both are the same single value.
type Nq[V0 prop.View, V1 prop.View] struct {
	x0 V0
	x1 V1
}

// PostNq posts x0 != x1.
func PostNq[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1) prop.Status {
	if home.Failed() {
		return prop.ES_FAILED
	}
	//
	switch float.TestEq(x0.Domain(), x1.Domain()) {
	case float.RT_TRUE:
		home.Fail()
		return prop.ES_FAILED
	case float.RT_FALSE:
		return prop.ES_OK
	}
	//
	return home.Post(&Nq[V0, V1]{x0, x1}, x0, x1)
}

// Propagate implementation for the prop.Propagator interface.
func (p *Nq[V0, V1]) Propagate(home *prop.Space) prop.Status {
	switch float.TestEq(p.x0.Domain(), p.x1.Domain()) {
	case float.RT_TRUE:
		return prop.ES_FAILED
	case float.RT_FALSE:
		return prop.ES_SUBSUMED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *Nq[V0, V1]) Copy(home *prop.Space) prop.Propagator {
	return &Nq[V0, V1]{prop.Update(home, p.x0), prop.Update(home, p.x1)}
}

// Name implementation for the prop.Propagator interface.
func (p *Nq[V0, V1]) Name() string {
	return "nq"
}
