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
package cmd

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/float/round"
	"github.com/consensys/go-fprop/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Bindings(t *testing.T) {
	env := parseBindings([]string{"x=[1 2]", "y = (* x 2)"})
	//
	assert.Equal(t, 1.0, env["x"].Min())
	assert.Equal(t, 2.0, env["y"].Min())
	assert.Equal(t, 4.0, env["y"].Max())
}

func Test_Ulps(t *testing.T) {
	assert.Equal(t, uint(0), ulps(1, 1))
	assert.Equal(t, uint(2), ulps(1, round.Next(round.Next(1))))
	assert.Equal(t, uint(1000), ulps(0, 1))
}

func Test_Sample(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	//
	for _, fn := range round.Funcs() {
		for i := 0; i < 100; i++ {
			assert.NoError(t, round.CheckDomain(fn, sample(fn, rng)))
		}
	}
}

func Test_CheckBackend(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	//
	assert.True(t, checkBackend(round.NewLibm(16), 20, rng))
}

func Test_DomainTable(t *testing.T) {
	var (
		buf bytes.Buffer
		m   = model.New(nil)
	)
	//
	dom, err := float.New(0.4823479071010249, 0.482347907101025)
	require.NoError(t, err)
	x, err := m.DeclareFloat("a_rather_long_variable_name", dom)
	require.NoError(t, err)
	// a narrow terminal clips names, but never domains
	domainTable(m, 10).Print(&buf)
	//
	assert.Contains(t, buf.String(), x.Domain().String())
	assert.Contains(t, buf.String(), " a_rather.. |")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}
