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
	"github.com/consensys/go-fprop/pkg/prop"
)

// Lq is a bounds propagator for x0 <= x1.
type Lq[V0 prop.View, V1 prop.View] struct {
	x0 V0
	x1 V1
}

// PostLq posts x0 <= x1.
func PostLq[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1) prop.Status {
	if home.Failed() {
		return prop.ES_FAILED
	}
	//
	return home.Post(&Lq[V0, V1]{x0, x1}, x0, x1)
}

// Propagate implementation for the prop.Propagator interface.
func (p *Lq[V0, V1]) Propagate(home *prop.Space) prop.Status {
	return home.Converge(func() prop.Status {
		return p.step(home)
	})
}

func (p *Lq[V0, V1]) step(home *prop.Space) prop.Status {
	if p.x0.Lq(home, p.x1.Max()).Failed() || p.x1.Gq(home, p.x0.Min()).Failed() {
		return prop.ES_FAILED
	} else if p.x0.Max() <= p.x1.Min() {
		return prop.ES_SUBSUMED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *Lq[V0, V1]) Copy(home *prop.Space) prop.Propagator {
	return &Lq[V0, V1]{prop.Update(home, p.x0), prop.Update(home, p.x1)}
}

// Name implementation for the prop.Propagator interface.
func (p *Lq[V0, V1]) Name() string {
	return "lq"
}

// Le is a bounds propagator for x0 < x1.  Bounds are narrowed as for x0 <= x1,
// since values strictly between two floats remain possible.  The relation
// fails once every value of x0 is at least every value of x1.
type Le[V0 prop.View, V1 prop.View] struct {
	x0 V0
	x1 V1
}

// PostLe posts x0 < x1.
func PostLe[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1) prop.Status {
	if home.Failed() {
		return prop.ES_FAILED
	}
	//
	return home.Post(&Le[V0, V1]{x0, x1}, x0, x1)
}

// Propagate implementation for the prop.Propagator interface.
func (p *Le[V0, V1]) Propagate(home *prop.Space) prop.Status {
	return home.Converge(func() prop.Status {
		return p.step(home)
	})
}

func (p *Le[V0, V1]) step(home *prop.Space) prop.Status {
	if p.x0.Lq(home, p.x1.Max()).Failed() || p.x1.Gq(home, p.x0.Min()).Failed() {
		return prop.ES_FAILED
	} else if p.x0.Min() >= p.x1.Max() {
		return prop.ES_FAILED
	} else if p.x0.Max() < p.x1.Min() {
		return prop.ES_SUBSUMED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *Le[V0, V1]) Copy(home *prop.Space) prop.Propagator {
	return &Le[V0, V1]{prop.Update(home, p.x0), prop.Update(home, p.x1)}
}

// Name implementation for the prop.Propagator interface.
func (p *Le[V0, V1]) Name() string {
	return "le"
}
