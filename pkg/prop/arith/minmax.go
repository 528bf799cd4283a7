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
	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/prop"
	"github.com/consensys/go-fprop/pkg/prop/rel"
)

// Abs is a bounds propagator for |x0| = x1.
type Abs[V0 prop.View, V1 prop.View] struct {
	x0 V0
	x1 V1
}

// PostAbs posts |x0| = x1.
func PostAbs[V0 prop.View, V1 prop.View](home *prop.Space, x0 V0, x1 V1) prop.Status {
	if home.Failed() {
		return prop.ES_FAILED
	} else if x1.Gq(home, 0).Failed() {
		return prop.ES_FAILED
	}
	//
	return home.Post(&Abs[V0, V1]{x0, x1}, x0, x1)
}

// Propagate implementation for the prop.Propagator interface.
func (p *Abs[V0, V1]) Propagate(home *prop.Space) prop.Status {
	return home.Converge(func() prop.Status {
		return p.step(home)
	})
}

func (p *Abs[V0, V1]) step(home *prop.Space) prop.Status {
	if p.x1.Eq(home, float.Abs(p.x0.Domain())).Failed() {
		return prop.ES_FAILED
	} else if p.x0.Assigned() {
		return prop.ES_SUBSUMED
	}
	//
	var (
		y = p.x1.Domain()
		r float.Interval
	)
	//
	switch {
	case p.x0.Min() >= 0:
		r = y
	case p.x0.Max() <= 0:
		r = y.Neg()
	default:
		r = float.Hull(y, y.Neg())
	}
	//
	if p.x0.Eq(home, r).Failed() {
		return prop.ES_FAILED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *Abs[V0, V1]) Copy(home *prop.Space) prop.Propagator {
	return &Abs[V0, V1]{prop.Update(home, p.x0), prop.Update(home, p.x1)}
}

// Name implementation for the prop.Propagator interface.
func (p *Abs[V0, V1]) Name() string {
	return "abs"
}

// Max is a bounds propagator for max(x0,x1) = x2.  Minimum is obtained by
// negating all three views.
type Max[V0 prop.View, V1 prop.View, V2 prop.View] struct {
	x0 V0
	x1 V1
	x2 V2
}

// PostMax posts max(x0,x1) = x2.
func PostMax[V0 prop.View, V1 prop.View, V2 prop.View](home *prop.Space, x0 V0, x1 V1, x2 V2) prop.Status {
	return post(home, &Max[V0, V1, V2]{x0, x1, x2}, x0, x1, x2)
}

// PostMin posts min(x0,x1) = x2, as max(-x0,-x1) = -x2.
func PostMin(home *prop.Space, x0, x1, x2 prop.FloatView) prop.Status {
	return PostMax(home, prop.Minus(x0), prop.Minus(x1), prop.Minus(x2))
}

// Propagate implementation for the prop.Propagator interface.
func (p *Max[V0, V1, V2]) Propagate(home *prop.Space) prop.Status {
	return home.Converge(func() prop.Status {
		return p.step(home)
	})
}

func (p *Max[V0, V1, V2]) step(home *prop.Space) prop.Status {
	if p.x2.Eq(home, float.Max(p.x0.Domain(), p.x1.Domain())).Failed() {
		return prop.ES_FAILED
	} else if p.x0.Lq(home, p.x2.Max()).Failed() || p.x1.Lq(home, p.x2.Max()).Failed() {
		return prop.ES_FAILED
	}
	// when one argument is certainly smaller, the other is the maximum
	switch {
	case p.x0.Max() < p.x1.Min():
		return rewrite(rel.PostEq(home, p.x1, p.x2))
	case p.x1.Max() < p.x0.Min():
		return rewrite(rel.PostEq(home, p.x0, p.x2))
	case p.x0.Assigned() && p.x1.Assigned() && p.x2.Assigned():
		return prop.ES_SUBSUMED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *Max[V0, V1, V2]) Copy(home *prop.Space) prop.Propagator {
	return &Max[V0, V1, V2]{prop.Update(home, p.x0), prop.Update(home, p.x1), prop.Update(home, p.x2)}
}

// Name implementation for the prop.Propagator interface.
func (p *Max[V0, V1, V2]) Name() string {
	return "max"
}

// NaryMax is a bounds propagator for max(xs) = y.
type NaryMax[V prop.View, W prop.View] struct {
	xs []V
	y  W
}

// PostNaryMax posts max(xs) = y for a non-empty slice xs.
func PostNaryMax[V prop.View, W prop.View](home *prop.Space, xs []V, y W) prop.Status {
	switch {
	case len(xs) == 0:
		panic("maximum of no values")
	case len(xs) == 1:
		return rel.PostEq(home, xs[0], y)
	}
	//
	deps := make([]prop.Dependency, 0, len(xs)+1)
	//
	for _, x := range xs {
		deps = append(deps, x)
	}
	//
	return post(home, &NaryMax[V, W]{xs, y}, append(deps, y)...)
}

// PostNaryMin posts min(xs) = y, as max(-xs) = -y.
func PostNaryMin(home *prop.Space, xs []prop.FloatView, y prop.FloatView) prop.Status {
	nxs := make([]prop.MinusView, len(xs))
	//
	for i, x := range xs {
		nxs[i] = prop.Minus(x)
	}
	//
	return PostNaryMax(home, nxs, prop.Minus(y))
}

// Propagate implementation for the prop.Propagator interface.
func (p *NaryMax[V, W]) Propagate(home *prop.Space) prop.Status {
	return home.Converge(func() prop.Status {
		return p.step(home)
	})
}

func (p *NaryMax[V, W]) step(home *prop.Space) prop.Status {
	m := p.xs[0].Domain()
	//
	for _, x := range p.xs[1:] {
		m = float.Max(m, x.Domain())
	}
	//
	if p.y.Eq(home, m).Failed() {
		return prop.ES_FAILED
	}
	//
	var (
		candidate = -1
		assigned  = p.y.Assigned()
	)
	//
	for i, x := range p.xs {
		if x.Lq(home, p.y.Max()).Failed() {
			return prop.ES_FAILED
		} else if x.Max() >= p.y.Min() {
			// x could be the maximum
			if candidate == -1 {
				candidate = i
			} else {
				candidate = -2
			}
		}
		//
		assigned = assigned && x.Assigned()
	}
	// a single candidate must reach the maximum
	switch {
	case candidate == -1:
		return prop.ES_FAILED
	case candidate >= 0 && p.xs[candidate].Gq(home, p.y.Min()).Failed():
		return prop.ES_FAILED
	case assigned:
		return prop.ES_SUBSUMED
	}
	//
	return prop.ES_FIX
}

// Copy implementation for the prop.Propagator interface.
func (p *NaryMax[V, W]) Copy(home *prop.Space) prop.Propagator {
	return &NaryMax[V, W]{prop.UpdateAll(home, p.xs), prop.Update(home, p.y)}
}

// Name implementation for the prop.Propagator interface.
func (p *NaryMax[V, W]) Name() string {
	return "nmax"
}

// rewrite subsumes a propagator which has been replaced by another.
func rewrite(status prop.Status) prop.Status {
	if status == prop.ES_FAILED {
		return prop.ES_FAILED
	}
	//
	return prop.ES_SUBSUMED
}
