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
	"context"
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/float/round"
	"github.com/consensys/go-fprop/pkg/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Mult_01(t *testing.T) {
	home, xs := space(t, [2]float64{1, 2}, [2]float64{3, 4}, [2]float64{0, 100})
	assert.Equal(t, prop.ES_OK, PostMult(home, xs[0].View(), xs[1].View(), xs[2].View()))
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{1, 2}, bnds(xs[0]))
	assert.Equal(t, [2]float64{3, 4}, bnds(xs[1]))
	assert.Equal(t, [2]float64{3, 8}, bnds(xs[2]))
	// nothing further to do
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{3, 8}, bnds(xs[2]))
}

func Test_Mult_02(t *testing.T) {
	home, xs := space(t, [2]float64{-10, 10}, [2]float64{2, 4}, [2]float64{4, 8})
	PostMult(home, xs[0].View(), xs[1].View(), xs[2].View())
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{1, 4}, bnds(xs[0]))
	assert.Equal(t, [2]float64{2, 4}, bnds(xs[1]))
	assert.Equal(t, [2]float64{4, 8}, bnds(xs[2]))
}

func Test_Mult_03(t *testing.T) {
	home, xs := space(t, [2]float64{1, 2}, [2]float64{3, 4}, [2]float64{-1, 0})
	PostMult(home, xs[0].View(), xs[1].View(), xs[2].View())
	// no product of positive factors is zero
	assert.Equal(t, prop.ES_FAILED, fixpoint(t, home))
}

func Test_Mult_04(t *testing.T) {
	home, xs := space(t, [2]float64{1, 2}, [2]float64{-1, 1}, [2]float64{0, 0})
	PostMult(home, xs[0].View(), xs[1].View(), xs[2].View())
	// x1 = 0 is a solution, but division cannot show it
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{1, 2}, bnds(xs[0]))
	assert.Equal(t, [2]float64{-1, 1}, bnds(xs[1]))
}

func Test_Mult_05(t *testing.T) {
	home, xs := space(t, [2]float64{-1, 1}, [2]float64{-1, 1}, [2]float64{5, 6})
	PostMult(home, xs[0].View(), xs[1].View(), xs[2].View())
	//
	assert.Equal(t, prop.ES_FAILED, fixpoint(t, home))
}

// Solutions must never be removed by propagation.
func Test_Mult_Sound(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	//
	for i := 0; i < 500; i++ {
		var (
			a     = rng.Float64()*20 - 10
			b     = rng.Float64()*20 - 10
			p, lo = exact(a, b), round.MulDown(a, b)
			hi    = round.MulUp(a, b)
		)
		//
		home, xs := space(t, around(rng, a), around(rng, b), [2]float64{lo - rng.Float64(), hi + rng.Float64()})
		PostMult(home, xs[0].View(), xs[1].View(), xs[2].View())
		//
		require.Equal(t, prop.ES_FIX, fixpoint(t, home), "%g * %g", a, b)
		assert.True(t, xs[0].Domain().Contains(a))
		assert.True(t, xs[1].Domain().Contains(b))
		assert.True(t, ratIn(p, xs[2].Domain()), "%g * %g not in %s", a, b, xs[2])
	}
}

func Test_Div_01(t *testing.T) {
	home, xs := space(t, [2]float64{2, 6}, [2]float64{1, 2}, [2]float64{-100, 100})
	PostDiv(home, xs[0].View(), xs[1].View(), xs[2].View())
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{2, 6}, bnds(xs[0]))
	assert.Equal(t, [2]float64{1, 2}, bnds(xs[1]))
	assert.Equal(t, [2]float64{1, 6}, bnds(xs[2]))
}

func Test_Div_02(t *testing.T) {
	home, xs := space(t, [2]float64{2, 6}, [2]float64{0, 0}, [2]float64{-100, 100})
	PostDiv(home, xs[0].View(), xs[1].View(), xs[2].View())
	//
	assert.Equal(t, prop.ES_FAILED, fixpoint(t, home))
}

func Test_Div_03(t *testing.T) {
	home, xs := space(t, [2]float64{-100, 100}, [2]float64{2, 4}, [2]float64{1, 2})
	PostDiv(home, xs[0].View(), xs[1].View(), xs[2].View())
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{2, 8}, bnds(xs[0]))
}

func Test_Pow_01(t *testing.T) {
	home, xs := space(t, [2]float64{-10, 10}, [2]float64{4, 9})
	assert.Equal(t, prop.ES_OK, PostSqr(home, xs[0].View(), xs[1].View()))
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.InDelta(t, -3, xs[0].Min(), 1e-12)
	assert.InDelta(t, 3, xs[0].Max(), 1e-12)
	assert.Equal(t, [2]float64{4, 9}, bnds(xs[1]))
}

func Test_Pow_02(t *testing.T) {
	home, xs := space(t, [2]float64{-10, 10}, [2]float64{-8, 27})
	PostPow(home, xs[0].View(), xs[1].View(), 3)
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.InDelta(t, -2, xs[0].Min(), 1e-12)
	assert.InDelta(t, 3, xs[0].Max(), 1e-12)
}

func Test_Pow_03(t *testing.T) {
	home, xs := space(t, [2]float64{1, 10}, [2]float64{-5, 4})
	PostSqr(home, xs[0].View(), xs[1].View())
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.InDelta(t, 2, xs[0].Max(), 1e-12)
	assert.Equal(t, [2]float64{1, 4}, bnds(xs[1]))
}

func Test_Pow_04(t *testing.T) {
	home, xs := space(t, [2]float64{1, 10}, [2]float64{-5, -1})
	// squares are never negative
	assert.Equal(t, prop.ES_FAILED, PostSqr(home, xs[0].View(), xs[1].View()))
	assert.True(t, home.Failed())
}

func Test_Pow_05(t *testing.T) {
	home, xs := space(t, [2]float64{1, 10}, [2]float64{-5, 5})
	//
	assert.Panics(t, func() { PostPow(home, xs[0].View(), xs[1].View(), -1) })
	assert.Panics(t, func() { PostNthRoot(home, xs[0].View(), xs[1].View(), 0) })
}

func Test_Pow_06(t *testing.T) {
	home, xs := space(t, [2]float64{-10, 10}, [2]float64{2, 3})
	PostPow(home, xs[0].View(), xs[1].View(), 0)
	// x^0 = 1
	assert.Equal(t, prop.ES_FAILED, fixpoint(t, home))
}

func Test_Sqrt_01(t *testing.T) {
	home, xs := space(t, [2]float64{4, 16}, [2]float64{-5, 5})
	assert.Equal(t, prop.ES_OK, PostSqrt(home, xs[0].View(), xs[1].View()))
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.InDelta(t, 2, xs[1].Min(), 1e-12)
	assert.InDelta(t, 4, xs[1].Max(), 1e-12)
}

func Test_Sqrt_02(t *testing.T) {
	home, xs := space(t, [2]float64{-5, -1}, [2]float64{-5, 5})
	assert.Equal(t, prop.ES_FAILED, PostSqrt(home, xs[0].View(), xs[1].View()))
}

func Test_NthRoot_01(t *testing.T) {
	home, xs := space(t, [2]float64{-100, 100}, [2]float64{-2, 3})
	PostNthRoot(home, xs[0].View(), xs[1].View(), 3)
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.InDelta(t, -8, xs[0].Min(), 1e-12)
	assert.InDelta(t, 27, xs[0].Max(), 1e-12)
}

func Test_Abs_01(t *testing.T) {
	home, xs := space(t, [2]float64{-5, 3}, [2]float64{4, 10})
	assert.Equal(t, prop.ES_OK, PostAbs(home, xs[0].View(), xs[1].View()))
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{-5, 3}, bnds(xs[0]))
	assert.Equal(t, [2]float64{4, 5}, bnds(xs[1]))
}

func Test_Abs_02(t *testing.T) {
	home, xs := space(t, [2]float64{1, 5}, [2]float64{-2, 3})
	PostAbs(home, xs[0].View(), xs[1].View())
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{1, 3}, bnds(xs[0]))
	assert.Equal(t, [2]float64{1, 3}, bnds(xs[1]))
}

func Test_Abs_03(t *testing.T) {
	home, xs := space(t, [2]float64{-8, -6}, [2]float64{0, 5})
	PostAbs(home, xs[0].View(), xs[1].View())
	//
	assert.Equal(t, prop.ES_FAILED, fixpoint(t, home))
}

func Test_Max_01(t *testing.T) {
	home, xs := space(t, [2]float64{0, 5}, [2]float64{2, 3}, [2]float64{-10, 4})
	PostMax(home, xs[0].View(), xs[1].View(), xs[2].View())
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{0, 4}, bnds(xs[0]))
	assert.Equal(t, [2]float64{2, 3}, bnds(xs[1]))
	assert.Equal(t, [2]float64{2, 4}, bnds(xs[2]))
}

func Test_Max_02(t *testing.T) {
	home, xs := space(t, [2]float64{0, 1}, [2]float64{2, 3}, [2]float64{-10, 10})
	PostMax(home, xs[0].View(), xs[1].View(), xs[2].View())
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{2, 3}, bnds(xs[2]))
	// max is replaced by equality
	assert.Equal(t, 1, home.Propagators())
}

func Test_Min_01(t *testing.T) {
	home, xs := space(t, [2]float64{0, 5}, [2]float64{2, 3}, [2]float64{-10, 10})
	PostMin(home, xs[0].View(), xs[1].View(), xs[2].View())
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{0, 3}, bnds(xs[2]))
}

func Test_Min_02(t *testing.T) {
	home, xs := space(t, [2]float64{0, 5}, [2]float64{2, 3}, [2]float64{4, 10})
	PostMin(home, xs[0].View(), xs[1].View(), xs[2].View())
	//
	assert.Equal(t, prop.ES_FAILED, fixpoint(t, home))
}

func Test_NaryMax_01(t *testing.T) {
	home, xs := space(t, [2]float64{0, 10}, [2]float64{0, 3}, [2]float64{1, 4}, [2]float64{5, 20})
	PostNaryMax(home, views(xs[:3]), xs[3].View())
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	// only x0 can reach the maximum
	assert.Equal(t, [2]float64{5, 10}, bnds(xs[0]))
	assert.Equal(t, [2]float64{0, 3}, bnds(xs[1]))
	assert.Equal(t, [2]float64{1, 4}, bnds(xs[2]))
	assert.Equal(t, [2]float64{5, 10}, bnds(xs[3]))
}

func Test_NaryMax_02(t *testing.T) {
	home, xs := space(t, [2]float64{0, 1}, [2]float64{0, 2}, [2]float64{5, 6})
	PostNaryMax(home, views(xs[:2]), xs[2].View())
	//
	assert.Equal(t, prop.ES_FAILED, fixpoint(t, home))
}

func Test_NaryMin_01(t *testing.T) {
	home, xs := space(t, [2]float64{0, 10}, [2]float64{3, 8}, [2]float64{-100, 100})
	PostNaryMin(home, views(xs[:2]), xs[2].View())
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, [2]float64{0, 8}, bnds(xs[2]))
}

func Test_Exp_01(t *testing.T) {
	home, xs := space(t, [2]float64{0, 1}, [2]float64{-5, 100})
	assert.Equal(t, prop.ES_OK, PostExp(home, xs[0].View(), xs[1].View()))
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.InDelta(t, 1, xs[1].Min(), 1e-15)
	assert.InDelta(t, math.E, xs[1].Max(), 1e-15)
	assert.True(t, xs[1].Domain().Contains(math.E))
}

func Test_Exp_02(t *testing.T) {
	home, xs := space(t, [2]float64{0, 1}, [2]float64{-5, -1})
	assert.Equal(t, prop.ES_FAILED, PostExp(home, xs[0].View(), xs[1].View()))
}

func Test_Exp_03(t *testing.T) {
	home, xs := space(t, [2]float64{3, 3}, [2]float64{0, 100})
	PostExpBase(home, 2, xs[0].View(), xs[1].View())
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.InDelta(t, 8, xs[1].Min(), 1e-12)
	assert.InDelta(t, 8, xs[1].Max(), 1e-12)
}

func Test_Log_01(t *testing.T) {
	home, xs := space(t, [2]float64{1, 100}, [2]float64{-1, 1})
	PostLog(home, xs[0].View(), xs[1].View())
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.Equal(t, 1.0, xs[0].Min())
	assert.InDelta(t, math.E, xs[0].Max(), 1e-15)
	assert.InDelta(t, 0, xs[1].Min(), 1e-15)
}

func Test_Log_02(t *testing.T) {
	home, xs := space(t, [2]float64{1, 1000}, [2]float64{2, 2})
	PostLogBase(home, 10, xs[0].View(), xs[1].View())
	//
	assert.Equal(t, prop.ES_FIX, fixpoint(t, home))
	assert.InDelta(t, 100, xs[0].Min(), 1e-10)
	assert.InDelta(t, 100, xs[0].Max(), 1e-10)
}

// Once at a fixpoint, propagating again reports ES_FIX and changes nothing.
func Test_Arith_Idempotent(t *testing.T) {
	type fv = prop.FloatView
	//
	rng := rand.New(rand.NewSource(13))
	//
	for i := 0; i < 100; i++ {
		var (
			a = rng.Float64()*6 - 3
			b = rng.Float64()*6 - 3
			c = rng.Float64()*3 + 0.5
		)
		//
		idempotent(t, func(xs []fv) prop.Propagator { return &Mult[fv, fv, fv]{xs[0], xs[1], xs[2]} },
			around(rng, a), around(rng, b), around(rng, a*b))
		idempotent(t, func(xs []fv) prop.Propagator { return &Div[fv, fv, fv]{xs[0], xs[1], xs[2]} },
			around(rng, a), around(rng, c), around(rng, a/c))
		idempotent(t, func(xs []fv) prop.Propagator { return &Pow[fv, fv]{xs[0], xs[1], 2} },
			around(rng, a), around(rng, a*a))
		idempotent(t, func(xs []fv) prop.Propagator { return &Pow[fv, fv]{xs[0], xs[1], 3} },
			around(rng, a), around(rng, a*a*a))
		idempotent(t, func(xs []fv) prop.Propagator { return &NthRoot[fv, fv]{xs[0], xs[1], 2} },
			positive(around(rng, c)), positive(around(rng, math.Sqrt(c))))
		idempotent(t, func(xs []fv) prop.Propagator { return &Abs[fv, fv]{xs[0], xs[1]} },
			around(rng, a), around(rng, math.Abs(a)))
		idempotent(t, func(xs []fv) prop.Propagator { return &Max[fv, fv, fv]{xs[0], xs[1], xs[2]} },
			around(rng, a), around(rng, b), around(rng, max(a, b)))
		idempotent(t, func(xs []fv) prop.Propagator { return &NaryMax[fv, fv]{xs[:3], xs[3]} },
			around(rng, a), around(rng, b), around(rng, c), around(rng, max(a, b, c)))
		idempotent(t, func(xs []fv) prop.Propagator { return &Exp[fv, fv]{xs[0], xs[1], float.Point(1)} },
			around(rng, a), around(rng, math.Exp(a)))
	}
}

func Test_LogBase(t *testing.T) {
	_, err := LogBase(1)
	assert.Error(t, err)
	_, err = LogBase(-2)
	assert.Error(t, err)
	_, err = LogBase(math.NaN())
	assert.Error(t, err)
	//
	lnb, err := LogBase(math.E)
	require.NoError(t, err)
	assert.True(t, lnb.Contains(1))
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

func views(xs []prop.FloatVar) []prop.FloatView {
	vs := make([]prop.FloatView, len(xs))
	//
	for i, x := range xs {
		vs[i] = x.View()
	}
	//
	return vs
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

// idempotent runs a propagator over fresh variables to a fixpoint, then checks
// that propagating it twice more reports ES_FIX without changing any domain.
func idempotent(t *testing.T, mk func([]prop.FloatView) prop.Propagator, doms ...[2]float64) {
	t.Helper()
	//
	var (
		home, xs = space(t, doms...)
		vs       = views(xs)
		p        = mk(vs)
		deps     = make([]prop.Dependency, len(vs))
	)
	//
	for i, v := range vs {
		deps[i] = v
	}
	//
	last := &tracked{Propagator: p}
	home.Post(last, deps...)
	require.Equal(t, prop.ES_FIX, fixpoint(t, home), "%s over %v", p.Name(), doms)
	// subsumed (or rewritten) propagators never run again
	if last.status == prop.ES_SUBSUMED {
		return
	}
	//
	before := domains(xs)
	//
	for rep := 0; rep < 2; rep++ {
		require.Equal(t, prop.ES_FIX, p.Propagate(home), "%s over %v", p.Name(), before)
		require.Equal(t, before, domains(xs), p.Name())
	}
}

// tracked records the status most recently returned by a propagator.
type tracked struct {
	prop.Propagator
	status prop.Status
}

func (p *tracked) Propagate(home *prop.Space) prop.Status {
	p.status = p.Propagator.Propagate(home)
	//
	return p.status
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

// around returns a random domain containing v.
func around(rng *rand.Rand, v float64) [2]float64 {
	return [2]float64{v - rng.Float64()*5, v + rng.Float64()*5}
}

func positive(d [2]float64) [2]float64 {
	return [2]float64{max(0, d[0]), d[1]}
}

func exact(a, b float64) *big.Rat {
	var r big.Rat
	//
	return r.Mul(new(big.Rat).SetFloat64(a), new(big.Rat).SetFloat64(b))
}

func ratIn(r *big.Rat, x float.Interval) bool {
	lo := new(big.Rat).SetFloat64(x.Min())
	hi := new(big.Rat).SetFloat64(x.Max())
	//
	return lo.Cmp(r) <= 0 && r.Cmp(hi) <= 0
}
