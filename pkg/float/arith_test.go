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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Arith_Add(t *testing.T) {
	checkBinary(t, func(x, y Interval) (Interval, error) { return x.Add(y), nil },
		func(z, a, b *big.Rat) *big.Rat { return z.Add(a, b) })
}

func Test_Arith_Sub(t *testing.T) {
	checkBinary(t, func(x, y Interval) (Interval, error) { return x.Sub(y), nil },
		func(z, a, b *big.Rat) *big.Rat { return z.Sub(a, b) })
}

func Test_Arith_Mul(t *testing.T) {
	checkBinary(t, func(x, y Interval) (Interval, error) { return x.Mul(y), nil },
		func(z, a, b *big.Rat) *big.Rat { return z.Mul(a, b) })
}

func Test_Arith_Div(t *testing.T) {
	checkBinary(t, func(x, y Interval) (Interval, error) { return x.Div(y) },
		func(z, a, b *big.Rat) *big.Rat {
			if b.Sign() == 0 {
				return nil
			}
			return z.Quo(a, b)
		})
}

func Test_Arith_Div_01(t *testing.T) {
	_, err := Interval{1, 2}.Div(Point(0))
	assert.True(t, errors.Is(err, ErrDivisionByZero))
	//
	_, err = Interval{1, 2}.Div(Interval{-1, 1})
	assert.True(t, errors.Is(err, ErrDivisionByZero))
}

func Test_Arith_Div_02(t *testing.T) {
	// zero lower bound on divisor
	z, err := Interval{1, 2}.Div(Interval{0, 4})
	require.NoError(t, err)
	assert.Equal(t, Interval{0.25, math.Inf(1)}, z)
	// zero upper bound on divisor
	z, err = Interval{1, 2}.Div(Interval{-4, 0})
	require.NoError(t, err)
	assert.Equal(t, Interval{math.Inf(-1), -0.25}, z)
	// straddling dividend
	z, err = Interval{-1, 2}.Div(Interval{0, 4})
	require.NoError(t, err)
	assert.Equal(t, Entire(), z)
	//
	z, err = Point(0).Div(Interval{0, 4})
	require.NoError(t, err)
	assert.Equal(t, Point(0), z)
}

func Test_Arith_Mul_01(t *testing.T) {
	// zero times infinity contributes zero
	z := Point(0).Mul(Entire())
	assert.Equal(t, Point(0), z)
	//
	z = Interval{1, 2}.Mul(Interval{3, 4})
	assert.Equal(t, Interval{3, 8}, z)
	//
	z = Interval{-1, 2}.MulScalar(-2)
	assert.Equal(t, Interval{-4, 2}, z)
}

func Test_Arith_Pow_01(t *testing.T) {
	z, err := Pow(Interval{-2, 3}, 2)
	require.NoError(t, err)
	assert.Equal(t, Interval{0, 9}, z)
	//
	z, err = Pow(Interval{-3, -2}, 2)
	require.NoError(t, err)
	assert.Equal(t, Interval{4, 9}, z)
	//
	z, err = Pow(Interval{-2, 3}, 3)
	require.NoError(t, err)
	assert.Equal(t, Interval{-8, 27}, z)
	//
	z, err = Pow(Interval{-2, 3}, 0)
	require.NoError(t, err)
	assert.Equal(t, Point(1), z)
	//
	_, err = Pow(Interval{-2, 3}, -1)
	assert.True(t, errors.Is(err, ErrUndefined))
}

func Test_Arith_Root_01(t *testing.T) {
	z, err := NthRoot(Interval{4, 9}, 2)
	require.NoError(t, err)
	assert.Equal(t, Interval{2, 3}, z)
	// negative part discarded
	z, err = NthRoot(Interval{-4, 9}, 2)
	require.NoError(t, err)
	assert.Equal(t, Interval{0, 3}, z)
	//
	z, err = NthRoot(Interval{-8, 27}, 3)
	require.NoError(t, err)
	assert.Equal(t, Interval{-2, 3}, z)
	//
	_, err = NthRoot(Interval{-8, -1}, 2)
	assert.True(t, errors.Is(err, ErrUndefined))
	//
	_, err = Sqrt(Interval{-8, -1})
	assert.True(t, errors.Is(err, ErrUndefined))
}

func Test_Arith_Root_02(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	//
	for i := 0; i < 2000; i++ {
		n := 2 + rng.Intn(9)
		v := math.Exp(rng.NormFloat64() * 50)
		//
		if n%2 == 1 && rng.Intn(2) == 0 {
			v = -v
		}
		//
		r, err := NthRoot(Point(v), n)
		require.NoError(t, err)
		// round trip must enclose the original value
		p, err := Pow(r, n)
		require.NoError(t, err)
		assert.True(t, p.Contains(v), "%g^(1/%d) = %s", v, n, r)
		// and the root should be narrow
		assert.LessOrEqual(t, r.Size(), 32*ulp(math.Max(math.Abs(r.Min()), math.Abs(r.Max()))), "%g^(1/%d) = %s", v, n, r)
	}
}

func Test_Arith_AbsMinMax(t *testing.T) {
	assert.Equal(t, Interval{0, 3}, Abs(Interval{-3, 2}))
	assert.Equal(t, Interval{2, 3}, Abs(Interval{-3, -2}))
	assert.Equal(t, Interval{2, 3}, Abs(Interval{2, 3}))
	assert.Equal(t, Interval{-1, 2}, Min(Interval{-1, 5}, Interval{0, 2}))
	assert.Equal(t, Interval{0, 5}, Max(Interval{-1, 5}, Interval{0, 2}))
}

// ============================================================================
// Helpers
// ============================================================================

// checkBinary checks that a binary interval operation encloses the exact
// result of the corresponding rational operation, over randomly sampled
// intervals and points within them.
func checkBinary(t *testing.T, op func(Interval, Interval) (Interval, error),
	exact func(z, a, b *big.Rat) *big.Rat) {
	rng := rand.New(rand.NewSource(2))
	//
	for i := 0; i < 5000; i++ {
		x, y := randomInterval(rng), randomInterval(rng)
		z, err := op(x, y)
		//
		if err != nil {
			// division by zero is the only permitted failure
			assert.True(t, errors.Is(err, ErrDivisionByZero), "%s,%s: %v", x, y, err)
			continue
		}
		//
		for j := 0; j < 4; j++ {
			a, b := samplePoint(rng, x), samplePoint(rng, y)
			//
			if math.IsInf(a, 0) || math.IsInf(b, 0) {
				continue
			}
			//
			v := exact(new(big.Rat), new(big.Rat).SetFloat64(a), new(big.Rat).SetFloat64(b))
			//
			if v != nil {
				assert.True(t, ratIn(v, z), "%g,%g not enclosed by %s for %s,%s", a, b, z, x, y)
			}
		}
	}
}

// samplePoint returns a point within x, preferring its bounds.
func samplePoint(rng *rand.Rand, x Interval) float64 {
	switch rng.Intn(3) {
	case 0:
		return x.lo
	case 1:
		return x.hi
	}
	//
	return x.Med()
}

func ratIn(v *big.Rat, x Interval) bool {
	if !math.IsInf(x.lo, -1) && v.Cmp(new(big.Rat).SetFloat64(x.lo)) < 0 {
		return false
	}
	//
	return math.IsInf(x.hi, 1) || v.Cmp(new(big.Rat).SetFloat64(x.hi)) <= 0
}
