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

// Hull returns the smallest interval containing both x and y.
func Hull(x, y Interval) Interval {
	return Interval{min(x.lo, y.lo), max(x.hi, y.hi)}
}

// Intersect returns the overlap of two intervals.  If they are disjoint, false
// is returned and the interval returned is meaningless.
func Intersect(x, y Interval) (Interval, bool) {
	lo, hi := max(x.lo, y.lo), min(x.hi, y.hi)
	//
	if lo > hi {
		return Interval{}, false
	}
	//
	return Interval{lo, hi}, true
}

// Subset determines whether x is contained within y.
func Subset(x, y Interval) bool {
	return y.lo <= x.lo && x.hi <= y.hi
}

// ProperSubset determines whether x is contained within, but not equal to, y.
func ProperSubset(x, y Interval) bool {
	return Subset(x, y) && x != y
}

// Overlap determines whether x and y have at least one value in common.
func Overlap(x, y Interval) bool {
	return x.lo <= y.hi && y.lo <= x.hi
}
