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
	"context"
	"math/rand"
	"testing"

	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Rel_Eq(t *testing.T) {
	home, xs := space(t, [2]float64{0, 5}, [2]float64{3, 8})
	assert.Equal(t, prop.ES_OK, PostEq(home, xs[0].View(), xs[1].View()))
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{3, 5}, bnds(xs[0]))
	assert.Equal(t, [2]float64{3, 5}, bnds(xs[1]))
}

func Test_Rel_Eq_Minus(t *testing.T) {
	home, xs := space(t, [2]float64{0, 5}, [2]float64{-8, -3})
	// x0 = -x1
	PostEq(home, xs[0].View(), prop.Minus(xs[1].View()))
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{3, 5}, bnds(xs[0]))
	assert.Equal(t, [2]float64{-5, -3}, bnds(xs[1]))
}

func Test_Rel_Lq(t *testing.T) {
	home, xs := space(t, [2]float64{0, 10}, [2]float64{-5, 4})
	PostLq(home, xs[0].View(), xs[1].View())
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{0, 4}, bnds(xs[0]))
	assert.Equal(t, [2]float64{0, 4}, bnds(xs[1]))
}

func Test_Rel_Le(t *testing.T) {
	home, xs := space(t, [2]float64{2, 3}, [2]float64{0, 2})
	PostLe(home, xs[0].View(), xs[1].View())
	// every x0 is at least every x1
	assert.Equal(t, prop.ES_FAILED, fixpoint(t, home))
}

func Test_Rel_Le_Closed(t *testing.T) {
	home, xs := space(t, [2]float64{0, 5}, [2]float64{1, 3})
	PostLe(home, xs[0].View(), xs[1].View())
	// real values below 3 remain, so the bound is not moved to the previous float
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{0, 3}, bnds(xs[0]))
	assert.Equal(t, [2]float64{1, 3}, bnds(xs[1]))
}

// Once at a fixpoint, propagating again reports ES_FIX and changes nothing.
func Test_Rel_Idempotent(t *testing.T) {
	type fv = prop.FloatView
	//
	rng := rand.New(rand.NewSource(11))
	//
	for i := 0; i < 200; i++ {
		var (
			a      = rng.Float64()*10 - 5
			home   *prop.Space
			xs     []prop.FloatVar
			p      prop.Propagator
			x0, x1 fv
		)
		//
		dom := func(v float64) [2]float64 {
			return [2]float64{v - rng.Float64()*4, v + rng.Float64()*4}
		}
		//
		switch i % 5 {
		case 0:
			home, xs = space(t, dom(3*a), dom(a))
			x0, x1 = xs[0].View(), xs[1].View()
			p = &Eq[fv, prop.ScaleView]{x0, prop.Scale(x1, 3)}
		case 1:
			home, xs = space(t, dom(a+0.1), dom(a))
			x0, x1 = xs[0].View(), xs[1].View()
			p = &Eq[fv, prop.OffsetView]{x0, prop.Offset(x1, 0.1)}
		case 2:
			home, xs = space(t, dom(-a), dom(a))
			x0, x1 = xs[0].View(), xs[1].View()
			p = &Eq[fv, prop.MinusView]{x0, prop.Minus(x1)}
		case 3:
			home, xs = space(t, dom(a), dom(a+1))
			x0, x1 = xs[0].View(), xs[1].View()
			p = &Lq[fv, fv]{x0, x1}
		default:
			home, xs = space(t, dom(a), dom(a+1))
			x0, x1 = xs[0].View(), xs[1].View()
			p = &Le[fv, fv]{x0, x1}
		}
		//
		home.Post(p, x0, x1)
		require.Equal(t, prop.ES_FIX, fixpoint(t, home), p.Name())
		// subsumed propagators never run again
		if home.Propagators() == 0 {
			continue
		}
		//
		before := domains(xs)
		//
		for rep := 0; rep < 2; rep++ {
			require.Equal(t, prop.ES_FIX, p.Propagate(home), p.Name())
			require.Equal(t, before, domains(xs), p.Name())
		}
	}
}

func Test_Rel_Nq(t *testing.T) {
	home, xs := space(t, [2]float64{2, 2}, [2]float64{2, 2})
	assert.Equal(t, prop.ES_FAILED, PostNq(home, xs[0].View(), xs[1].View()))
	//
	home, xs = space(t, [2]float64{1, 2}, [2]float64{2, 3})
	PostNq(home, xs[0].View(), xs[1].View())
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	// assigning both to the same value fails
	xs[0].View().Gq(home, 2)
	xs[1].View().Lq(home, 2)
	assert.Equal(t, prop.ES_FAILED, fixpoint(t, home))
}

func Test_Rel_ReLq_01(t *testing.T) {
	// decided true by the domains
	home, xs := space(t, [2]float64{0, 1}, [2]float64{2, 3})
	b := home.NewBoolVar()
	assert.Equal(t, prop.ES_OK, PostReLq(home, xs[0].View(), xs[1].View(), b.View(), RM_EQV))
	assert.True(t, b.One())
	// decided false by the domains
	home, xs = space(t, [2]float64{4, 5}, [2]float64{2, 3})
	b = home.NewBoolVar()
	PostReLq(home, xs[0].View(), xs[1].View(), b.View(), RM_EQV)
	assert.True(t, b.Zero())
	// implication does not decide b when the relation holds
	home, xs = space(t, [2]float64{0, 1}, [2]float64{2, 3})
	b = home.NewBoolVar()
	PostReLq(home, xs[0].View(), xs[1].View(), b.View(), RM_IMP)
	assert.True(t, b.None())
}

func Test_Rel_ReLq_02(t *testing.T) {
	home, xs := space(t, [2]float64{0, 5}, [2]float64{2, 3})
	b := home.NewBoolVar()
	PostReLq(home, xs[0].View(), xs[1].View(), b.View(), RM_EQV)
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.True(t, b.None())
	// deciding b posts the relation
	b.View().OneNone(home)
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{0, 3}, bnds(xs[0]))
}

func Test_Rel_ReLq_03(t *testing.T) {
	home, xs := space(t, [2]float64{0, 5}, [2]float64{2, 3})
	b := home.NewBoolVar()
	PostReLq(home, xs[0].View(), xs[1].View(), b.View(), RM_EQV)
	// deciding b false posts x1 < x0
	b.View().ZeroNone(home)
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{2, 5}, bnds(xs[0]))
}

func Test_Rel_ReLqFloat(t *testing.T) {
	home, xs := space(t, [2]float64{0, 5})
	b := home.NewBoolVar()
	PostReLqFloat(home, xs[0].View(), 1, b.View(), RM_EQV)
	assert.True(t, b.None())
	// narrowing x decides b
	xs[0].View().Gq(home, 2)
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.True(t, b.Zero())
	//
	home, xs = space(t, [2]float64{0, 5})
	b = home.NewBoolVar()
	PostReLqFloat(home, xs[0].View(), 1, b.View(), RM_EQV)
	b.View().OneNone(home)
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{0, 1}, bnds(xs[0]))
}

func Test_Rel_ReEqFloat(t *testing.T) {
	home, xs := space(t, [2]float64{0, 5})
	b := home.NewBoolVar()
	PostReEqFloat(home, xs[0].View(), 1, b.View(), RM_EQV)
	b.View().OneNone(home)
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{1, 1}, bnds(xs[0]))
	//
	home, xs = space(t, [2]float64{1, 1})
	b = home.NewBoolVar()
	PostReEqFloat(home, xs[0].View(), 1, b.View(), RM_EQV)
	assert.True(t, b.One())
}

func Test_Rel_ReEq(t *testing.T) {
	home, xs := space(t, [2]float64{0, 1}, [2]float64{2, 3})
	b := home.NewBoolVar()
	PostReEq(home, xs[0].View(), xs[1].View(), b.View(), RM_PMI)
	assert.True(t, b.None())
	//
	b = home.NewBoolVar()
	PostReEq(home, xs[0].View(), xs[1].View(), b.View(), RM_EQV)
	assert.True(t, b.Zero())
}

func Test_Rel_LeFloat(t *testing.T) {
	home, xs := space(t, [2]float64{0, 5})
	PostLeFloat(home, xs[0].View(), 2)
	PostGrFloat(home, xs[0].View(), 1)
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{1, 2}, bnds(xs[0]))
	// x = 2 contradicts x < 2
	xs[0].View().Gq(home, 2)
	assert.Equal(t, prop.ES_FAILED, fixpoint(t, home))
}

// ============================================================================
// Helpers
// ============================================================================

func space(t *testing.T, doms ...[2]float64) (*prop.Space, []prop.FloatVar) {
	home := prop.NewSpace(nil)
	xs := make([]prop.FloatVar, len(doms))
	//
	for i, d := range doms {
		x, err := home.NewFloatVar(d[0], d[1])
		require.NoError(t, err)
		//
		xs[i] = x
	}
	//
	return home, xs
}

func fixpoint(t *testing.T, home *prop.Space) prop.Status {
	status, err := home.Fixpoint(context.Background())
	require.NoError(t, err)
	//
	return status
}

func bnds(x prop.FloatVar) [2]float64 {
	return [2]float64{x.Min(), x.Max()}
}

func domains(xs []prop.FloatVar) []float.Interval {
	doms := make([]float.Interval, len(xs))
	//
	for i, x := range xs {
		doms[i] = x.Domain()
	}
	//
	return doms
}
