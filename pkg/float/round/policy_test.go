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
package round

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPolicy(t *testing.T) *Policy {
	t.Helper()
	//
	p, err := New(NewLibm(DefaultUlps))
	require.NoError(t, err)
	//
	return p
}

func Test_Policy_Nesting(t *testing.T) {
	p := newPolicy(t)
	require.Equal(t, Nearest, p.Mode())
	//
	func() {
		defer p.Enter(Downward).Restore()
		require.Equal(t, Downward, p.Mode())
		//
		func() {
			defer p.Enter(Upward).Restore()
			require.Equal(t, Upward, p.Mode())
		}()
		//
		require.Equal(t, Downward, p.Mode())
	}()
	//
	require.Equal(t, Nearest, p.Mode())
}

func Test_Policy_RestoredOnPanic(t *testing.T) {
	p := newPolicy(t)
	//
	func() {
		defer func() { _ = recover() }()
		defer p.Enter(Upward).Restore()
		panic("failure")
	}()
	//
	require.Equal(t, Nearest, p.Mode())
}

func Test_Policy_OutOfOrder(t *testing.T) {
	p := newPolicy(t)
	outer := p.Enter(Downward)
	inner := p.Enter(Upward)
	//
	assert.Panics(t, outer.Restore)
	inner.Restore()
	outer.Restore()
	assert.Panics(t, outer.Restore)
}

func Test_Policy_Directed(t *testing.T) {
	p := newPolicy(t)
	third := 1.0 / 3
	//
	assert.Equal(t, third, p.Div(1, 3))
	//
	func() {
		defer p.Enter(Downward).Restore()
		assert.Equal(t, third, p.Div(1, 3))
		assert.Equal(t, 1.0, p.Add(1, 0x1p-60))
		assert.Equal(t, 2.0, p.Int(2.5))
		// the nearest float to the square root of two lies above it
		assert.Equal(t, Prev(math.Sqrt(2)), p.Sqrt(2))
	}()
	//
	func() {
		defer p.Enter(Upward).Restore()
		assert.Equal(t, Next(third), p.Div(1, 3))
		assert.Equal(t, Next(1), p.Add(1, 0x1p-60))
		assert.Equal(t, 3.0, p.Int(2.5))
		assert.Equal(t, math.Sqrt(2), p.Sqrt(2))
	}()
}

func Test_Policy_Transcendental(t *testing.T) {
	p := newPolicy(t)
	lo, err := p.SinDown(1)
	require.NoError(t, err)
	hi, err := p.SinUp(1)
	require.NoError(t, err)
	//
	assert.Less(t, lo, math.Sin(1))
	assert.Greater(t, hi, math.Sin(1))
	//
	func() {
		defer p.Enter(Upward).Restore()
		v, err := p.Sin(1)
		require.NoError(t, err)
		assert.Equal(t, hi, v)
	}()
	//
	_, err = p.LogDown(-1)
	assert.True(t, errors.Is(err, ErrUndefined))
}

func Test_Policy_Reuse(t *testing.T) {
	backend := &counting{Backend: NewLibm(DefaultUlps)}
	p, err := New(backend)
	require.NoError(t, err)
	// a bound computed downwards then upwards evaluates the backend once
	lo := within(t, p, Downward, p.Sin, 1)
	hi := within(t, p, Upward, p.Sin, 1)
	assert.Less(t, lo, hi)
	assert.Equal(t, 1, backend.calls)
	// a different point, or function, is evaluated afresh
	within(t, p, Upward, p.Sin, 2)
	within(t, p, Upward, p.Cos, 2)
	assert.Equal(t, 3, backend.calls)
}

func Test_Policy_Clone(t *testing.T) {
	p := newPolicy(t)
	scope := p.Enter(Upward)
	q := p.Clone()
	//
	assert.Equal(t, Nearest, q.Mode())
	assert.Equal(t, p.Backend(), q.Backend())
	scope.Restore()
}

func Test_Policy_Funcs(t *testing.T) {
	for _, fn := range Funcs() {
		g, ok := ParseFunc(fn.String())
		require.True(t, ok)
		require.Equal(t, fn, g)
	}
	//
	_, ok := ParseFunc("sqrt")
	assert.False(t, ok)
}

// counting records how often a backend is evaluated.
type counting struct {
	Backend
	calls int
}

func (b *counting) Eval(fn Func, x float64) (float64, float64, error) {
	b.calls++
	//
	return b.Backend.Eval(fn, x)
}

func within(t *testing.T, p *Policy, m Mode, f func(float64) (float64, error), x float64) float64 {
	defer p.Enter(m).Restore()
	//
	v, err := f(x)
	require.NoError(t, err)
	//
	return v
}
