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
package kernel

import (
	"sync"

	"github.com/cockroachdb/apd/v2"
)

// piCache holds the most precise value of pi computed so far.
var piCache struct {
	sync.Mutex
	digits uint32
	value  apd.Decimal
}

// Pi returns pi to (at least) the given number of significant digits, with an
// error below one unit in the last digit.
func Pi(digits uint32) *apd.Decimal {
	piCache.Lock()
	defer piCache.Unlock()
	//
	if piCache.digits < digits {
		// compute a little more than asked, to amortise growth
		n := digits + digits/2
		piCache.value.Set(machin(n))
		piCache.digits = n
	}
	//
	var pi apd.Decimal
	//
	ctx := apd.BaseContext.WithPrecision(digits)
	_, _ = ctx.Round(&pi, &piCache.value)
	//
	return &pi
}

// machin computes pi = 16*atan(1/5) - 4*atan(1/239) to the given precision.
func machin(digits uint32) *apd.Decimal {
	var (
		ctx    = apd.BaseContext.WithPrecision(digits + 10)
		a, b   apd.Decimal
		fifth  = apd.New(2, -1)
		inv239 apd.Decimal
		pi     apd.Decimal
	)
	//
	_, _ = ctx.Quo(&inv239, apd.New(1, 0), apd.New(239, 0))
	_, _ = ctx.Mul(&a, atanSeries(ctx, fifth), apd.New(16, 0))
	_, _ = ctx.Mul(&b, atanSeries(ctx, &inv239), apd.New(4, 0))
	_, _ = ctx.Sub(&pi, &a, &b)
	//
	return &pi
}
