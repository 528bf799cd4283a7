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
package model

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/prop"
	"github.com/consensys/go-fprop/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Model_01(t *testing.T) {
	m := check(t, `
(defvar x [0 10])
(defvar y [-10 10])
(sqr x y)`)
	//
	x, y := domain(t, m, "x"), domain(t, m, "y")
	assert.Equal(t, 0.0, x.Min())
	assert.InDelta(t, math.Sqrt(10), x.Max(), 1e-12)
	assert.GreaterOrEqual(t, x.Max(), math.Sqrt(10))
	assert.Equal(t, 0.0, y.Min())
	assert.Equal(t, 10.0, y.Max())
}

func Test_Model_02(t *testing.T) {
	m := check(t, `
(defvar x [0 10])
(rel x <= 2.5)`)
	//
	assert.Equal(t, 2.5, domain(t, m, "x").Max())
	assert.Equal(t, uint(1), m.Constraints())
}

func Test_Model_03(t *testing.T) {
	m := check(t, `
; reified constraints decide their control variables
(defvar x [0 10])
(defbool b)
(defbool c)
(rel x <= 20 b)
(rel x > 11 c)`)
	//
	b, _ := m.Variable("b")
	c, _ := m.Variable("c")
	assert.True(t, b.Bool.One())
	assert.True(t, c.Bool.Zero())
}

func Test_Model_04(t *testing.T) {
	m := check(t, `
(defvar x [1 2])
(defvar y [-100 100])
(mult 2 x y)`)
	//
	y := domain(t, m, "y")
	assert.Equal(t, 2.0, y.Min())
	assert.Equal(t, 4.0, y.Max())
}

func Test_Model_05(t *testing.T) {
	m := check(t, `
(defvar a [0 1])
(defvar b [2 3])
(defvar m [-10 10])
(nmax a b m)`)
	//
	y := domain(t, m, "m")
	assert.Equal(t, 2.0, y.Min())
	assert.Equal(t, 3.0, y.Max())
}

func Test_Model_06(t *testing.T) {
	m := check(t, `
(defvar x (hull (- pi) pi))
(defvar y)
(sin x y)`)
	//
	x, y := domain(t, m, "x"), domain(t, m, "y")
	assert.LessOrEqual(t, x.Min(), -math.Pi)
	assert.GreaterOrEqual(t, x.Max(), math.Pi)
	assert.Equal(t, -1.0, y.Min())
	assert.Equal(t, 1.0, y.Max())
}

func Test_Model_07(t *testing.T) {
	m := check(t, `
(defvar x [-2 3])
(defvar y)
(pow x 3 y)`)
	//
	y := domain(t, m, "y")
	assert.InDelta(t, -8.0, y.Min(), 1e-12)
	assert.InDelta(t, 27.0, y.Max(), 1e-12)
}

func Test_Model_08(t *testing.T) {
	m := check(t, `
(defvar x [0 10])
(defvar y [-5 5])
(rel x = y)`)
	//
	x := domain(t, m, "x")
	assert.Equal(t, 0.0, x.Min())
	assert.Equal(t, 5.0, x.Max())
}

func Test_Model_09(t *testing.T) {
	m, errs := Load(source.NewFile("test.fp", []byte(`
(defvar x [0 1])
(defvar y [2 3])
(rel x >= y)`)), nil)
	require.Empty(t, errs)
	//
	status, err := m.Space().Fixpoint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, prop.ES_FAILED, status)
}

func Test_Model_Clone(t *testing.T) {
	m, errs := Load(source.NewFile("test.fp", []byte(`
(defvar x [0 10])
(rel x <= 4)
(defvar y [0 10])
(rel x = y)`)), nil)
	require.Empty(t, errs)
	//
	c := m.Clone()
	_, err := c.Space().Fixpoint(context.Background())
	require.NoError(t, err)
	//
	cy, _ := c.Variable("y")
	my, _ := m.Variable("y")
	assert.Equal(t, 4.0, cy.Float.Max())
	assert.Equal(t, 10.0, my.Float.Max())
	assert.Len(t, c.Variables(), 2)
}

func Test_Model_Testdata(t *testing.T) {
	files, err := filepath.Glob("../../testdata/*.fp")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	//
	for _, filename := range files {
		file, err := source.ReadFile(filename)
		require.NoError(t, err)
		//
		m, errs := Load(file, nil)
		require.Empty(t, errs, filename)
		//
		status, err := m.Space().Fixpoint(context.Background())
		require.NoError(t, err)
		//
		if filepath.Base(filename) == "infeasible.fp" {
			assert.Equal(t, prop.ES_FAILED, status, filename)
		} else {
			assert.Equal(t, prop.ES_FIX, status, filename)
		}
	}
}

func Test_Model_Invalid_01(t *testing.T) {
	checkErrs(t, `(defvar x [0 1]) (defvar x [0 2])`, "variable x already declared")
}

func Test_Model_Invalid_02(t *testing.T) {
	checkErrs(t, `(defvar x [0 1]) (sin x z)`, "unknown variable z")
}

func Test_Model_Invalid_03(t *testing.T) {
	checkErrs(t, `(defvar x [0 1]) (frobnicate x)`, "unknown constraint frobnicate")
}

func Test_Model_Invalid_04(t *testing.T) {
	checkErrs(t, `(defvar x [1 0])`, "empty domain")
}

func Test_Model_Invalid_05(t *testing.T) {
	checkErrs(t, `(defvar x [0 1]) (defvar y [0 1]) (pow x -1 y)`, "invalid argument")
}

func Test_Model_Invalid_06(t *testing.T) {
	checkErrs(t, `(defvar x [0 1]) (defbool b) (rel x ~ 1 b)`, "unknown relation")
}

func Test_Model_Invalid_07(t *testing.T) {
	checkErrs(t, `(defvar x [0 1]) (defvar y [0 1]) (rel x <= y x)`, "expected boolean variable")
}

func Test_Model_Invalid_08(t *testing.T) {
	checkErrs(t, `(defvar x [0 1]) (defvar y [0 1]) (exp x y 1)`, "invalid argument")
}

func Test_Model_Invalid_09(t *testing.T) {
	_, errs := Load(source.NewFile("test.fp", []byte(`
(defvar 1x [0 1])
(defbool)
(mult x)`)), nil)
	// every malformed statement is reported
	assert.Len(t, errs, 3)
}

func Test_Model_Invalid_10(t *testing.T) {
	m := New(nil)
	y, err := m.DeclareFloat("y", float.Entire())
	require.NoError(t, err)
	// an empty maximum or minimum is rejected, not posted
	assert.True(t, errors.Is(NaryMax(m.Space(), nil, y), ErrInvalidArgument))
	assert.True(t, errors.Is(NaryMin(m.Space(), nil, y), ErrInvalidArgument))
	assert.Equal(t, 0, m.Space().Propagators())
}

// ============================================================================
// Helpers
// ============================================================================

func check(t *testing.T, text string) *Model {
	t.Helper()
	//
	m, errs := Load(source.NewFile("test.fp", []byte(text)), nil)
	require.Empty(t, errs)
	//
	status, err := m.Space().Fixpoint(context.Background())
	require.NoError(t, err)
	require.Equal(t, prop.ES_FIX, status)
	//
	return m
}

func checkErrs(t *testing.T, text string, msg string) {
	t.Helper()
	//
	_, errs := Load(source.NewFile("test.fp", []byte(text)), nil)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message(), msg)
}

func domain(t *testing.T, m *Model, name string) interface {
	Min() float64
	Max() float64
} {
	t.Helper()
	//
	v, ok := m.Variable(name)
	require.True(t, ok, "unknown variable %s", name)
	//
	return v.Float.Domain()
}
