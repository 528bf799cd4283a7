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
package float

import (
	"errors"
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/consensys/go-fprop/pkg/float/round"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unaries = []struct {
	name string
	op   func(Interval) (Interval, error)
	libm func(float64) float64
	dom  Interval
}{
	{"exp", Exp, math.Exp, Interval{-700, 700}},
	{"log", Log, math.Log, Interval{1e-300, 1e300}},
	{"sin", Sin, math.Sin, Interval{-100, 100}},
	{"cos", Cos, math.Cos, Interval{-100, 100}},
	{"tan", Tan, math.Tan, Interval{-1.5, 1.5}},
	{"asin", Asin, math.Asin, Interval{-1, 1}},
	{"acos", Acos, math.Acos, Interval{-1, 1}},
	{"atan", Atan, math.Atan, Interval{-1e6, 1e6}},
	{"sinh", Sinh, math.Sinh, Interval{-20, 20}},
	{"cosh", Cosh, math.Cosh, Interval{-20, 20}},
	{"tanh", Tanh, math.Tanh, Interval{-20, 20}},
	{"asinh", Asinh, math.Asinh, Interval{-1e6, 1e6}},
	{"acosh", Acosh, math.Acosh, Interval{1, 1e6}},
	{"atanh", Atanh, math.Atanh, Interval{-0.99, 0.99}},
}

// Test_Transcend_Enclosure checks that functions over random intervals enclose
// (approximately) the values at sample points within them.
func Test_Transcend_Enclosure(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	//
	for _, u := range unaries {
		for i := 0; i < 100; i++ {
			a, b := sampleIn(rng, u.dom), sampleIn(rng, u.dom)
			x := Interval{min(a, b), max(a, b)}
			//
			y, err := u.op(x)
			require.NoError(t, err, "%s%s", u.name, x)
			//
			for j := 0; j < 5; j++ {
				v := u.libm(sampleIn(rng, x))
				tol := 1e-14 * math.Max(math.Abs(v), 1)
				//
				assert.LessOrEqual(t, y.Min(), v+tol, "%s%s = %s", u.name, x, y)
				assert.GreaterOrEqual(t, y.Max(), v-tol, "%s%s = %s", u.name, x, y)
			}
		}
	}
}

// Test_Transcend_Points checks that functions of a point are tight.
func Test_Transcend_Points(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	//
	for _, u := range unaries {
		for i := 0; i < 100; i++ {
			x := Point(sampleIn(rng, u.dom))
			y, err := u.op(x)
			//
			require.NoError(t, err, "%s%s", u.name, x)
			assert.True(t, y.Tight(), "%s%s = %s", u.name, x, y)
		}
	}
}

func Test_Transcend_01(t *testing.T) {
	y, err := Log(Interval{-1, 1})
	require.NoError(t, err)
	assert.True(t, math.IsInf(y.Min(), -1))
	assert.Equal(t, 0.0, y.Max())
	//
	_, err = Log(Interval{-2, 0})
	assert.True(t, errors.Is(err, ErrUndefined))
	//
	_, err = Asin(Interval{2, 3})
	assert.True(t, errors.Is(err, ErrUndefined))
	//
	y, err = Acos(Interval{0, 5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, y.Min())
	assert.Equal(t, PiHalfUpper, y.Max())
	//
	y, err = Cosh(Interval{-1, 2})
	require.NoError(t, err)
	assert.Equal(t, 1.0, y.Min())
	//
	_, err = Atanh(Point(1))
	assert.True(t, errors.Is(err, ErrUndefined))
}

func Test_Trig_01(t *testing.T) {
	// contains maximum at pi/2
	y, err := Sin(Interval{0, PiHalfUpper})
	require.NoError(t, err)
	assert.Equal(t, 0.0, y.Min())
	assert.Equal(t, 1.0, y.Max())
	// monotone segment (exact values at the floats nearest 0.1 and 0.2)
	y, err = Sin(Interval{0.1, 0.2})
	require.NoError(t, err)
	lower(t, y.Min(), "0.0998334166468281578301968678586166677359655721343701541459879")
	upper(t, y.Max(), "0.198669330795061226340337430967686806220828937062840526640995")
	// contains minimum at 3pi/2
	y, err = Sin(Interval{4, 5})
	require.NoError(t, err)
	assert.Equal(t, -1.0, y.Min())
	// wider than a period
	y, err = Cos(Interval{0, 7})
	require.NoError(t, err)
	assert.Equal(t, Interval{-1, 1}, y)
	//
	y, err = Cos(Interval{-0.5, 0.5})
	require.NoError(t, err)
	assert.Equal(t, 1.0, y.Max())
	lower(t, y.Min(), "0.877582561890372716116281582603829651991645197109744052997611")
}

func Test_Trig_02(t *testing.T) {
	// straddles the pole at pi/2
	y, err := Tan(Interval{1.4, 1.75})
	require.NoError(t, err)
	assert.Equal(t, Entire(), y)
	//
	y, err = Tan(Interval{-1, 1})
	require.NoError(t, err)
	lower(t, y.Min(), "-1.55740772465490223050697480745836017308725077238152003838395")
	upper(t, y.Max(), "1.55740772465490223050697480745836017308725077238152003838395")
}

func Test_Trig_Fmod(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	//
	for i := 0; i < 1000; i++ {
		a := rng.NormFloat64() * 1000
		x := Interval{a, a + rng.Float64()}
		r, n := Fmod(x, PiTwice())
		// lower bound lands (close to) the first period
		assert.GreaterOrEqual(t, r.Min(), -1e-9)
		assert.Less(t, r.Min(), PiTwiceUpper+1e-9)
		// mapping back recovers x
		back := r.Add(Point(n).Mul(PiTwice()))
		assert.True(t, Subset(x, back), "%s => %s + %g*2pi", x, r, n)
	}
}

func Test_Trig_Periodic(t *testing.T) {
	assert.True(t, MayContainPeriodic(Interval{1.5, 1.6}, PiHalf(), Pi()))
	assert.True(t, MayContainPeriodic(Interval{4.7, 4.8}, PiHalf(), Pi()))
	assert.False(t, MayContainPeriodic(Interval{1.6, 4.6}, PiHalf(), Pi()))
	assert.True(t, MayContainPeriodic(Interval{1e20, 1e20}, PiHalf(), Pi()))
	assert.True(t, MayContainPeriodic(Interval{round.Prev(PiHalfLower), PiHalfLower}, PiHalf(), Pi()))
}

func Test_Rounding_Backend(t *testing.T) {
	old := Round()
	defer SetRounding(old)
	//
	p, err := round.New(round.NewLibm(round.DefaultUlps))
	require.NoError(t, err)
	SetRounding(p)
	//
	y, err := Exp(Point(1))
	require.NoError(t, err)
	assert.True(t, y.Contains(math.E))
	assert.False(t, y.Tight())
}

// ============================================================================
// Helpers
// ============================================================================

// lower checks that b lies below the exact value v, by at most two ulps.
func lower(t *testing.T, b float64, v string) {
	t.Helper()
	//
	exact := decimal(t, v)
	assert.True(t, big.NewFloat(b).Cmp(exact) <= 0, "%g above %s", b, v)
	assert.True(t, big.NewFloat(round.Next(round.Next(b))).Cmp(exact) >= 0, "%g too far below %s", b, v)
}

// upper checks that b lies above the exact value v, by at most two ulps.
func upper(t *testing.T, b float64, v string) {
	t.Helper()
	//
	exact := decimal(t, v)
	assert.True(t, big.NewFloat(b).Cmp(exact) >= 0, "%g below %s", b, v)
	assert.True(t, big.NewFloat(round.Prev(round.Prev(b))).Cmp(exact) <= 0, "%g too far above %s", b, v)
}

func decimal(t *testing.T, v string) *big.Float {
	f, _, err := big.ParseFloat(v, 10, 256, big.ToNearestEven)
	require.NoError(t, err)
	//
	return f
}

func sampleIn(rng *rand.Rand, x Interval) float64 {
	v := x.lo + rng.Float64()*(x.hi-x.lo)
	//
	return min(max(v, x.lo), x.hi)
}
