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

// RelTest is the outcome of testing a relation between intervals.
//
//nolint:revive
type RelTest uint8

const (
	// RT_FALSE indicates the relation cannot hold for any values.
	RT_FALSE RelTest = iota
	// RT_MAYBE indicates the relation holds for some values, but not others.
	RT_MAYBE
	// RT_TRUE indicates the relation holds for all values.
	RT_TRUE
)

func (r RelTest) String() string {
	switch r {
	case RT_FALSE:
		return "false"
	case RT_TRUE:
		return "true"
	}
	//
	return "maybe"
}

// TestLq tests whether x <= y.
func TestLq(x, y Interval) RelTest {
	switch {
	case x.hi <= y.lo:
		return RT_TRUE
	case x.lo > y.hi:
		return RT_FALSE
	}
	//
	return RT_MAYBE
}

// TestLe tests whether x < y.
func TestLe(x, y Interval) RelTest {
	switch {
	case x.hi < y.lo:
		return RT_TRUE
	case x.lo >= y.hi:
		return RT_FALSE
	}
	//
	return RT_MAYBE
}

// TestEq tests whether x = y.
func TestEq(x, y Interval) RelTest {
	switch {
	case x.IsSingleton() && x == y:
		return RT_TRUE
	case !Overlap(x, y):
		return RT_FALSE
	}
	//
	return RT_MAYBE
}

// Lt holds when every value of x is below every value of y.
func (x Interval) Lt(y Interval) bool {
	return x.hi < y.lo
}

// Le holds when every value of x is at most every value of y.
func (x Interval) Le(y Interval) bool {
	return x.hi <= y.lo
}

// Gt holds when every value of x is above every value of y.
func (x Interval) Gt(y Interval) bool {
	return y.Lt(x)
}

// Ge holds when every value of x is at least every value of y.
func (x Interval) Ge(y Interval) bool {
	return y.Le(x)
}

// Eq holds when x and y are the same singleton.
func (x Interval) Eq(y Interval) bool {
	return x.IsSingleton() && x == y
}

// Ne holds when x and y have no value in common.
func (x Interval) Ne(y Interval) bool {
	return !Overlap(x, y)
}
