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
package prop

// Status is the outcome of executing (or posting) a propagator.
//
//nolint:revive
type Status uint8

const (
	// ES_FAILED indicates the propagator detected that no solution exists.
	ES_FAILED Status = iota
	// ES_NOFIX indicates the propagator may not have reached its own fixpoint,
	// and must be executed again if it modified any of its variables.
	ES_NOFIX
	// ES_FIX indicates the propagator has reached its own fixpoint, so that its
	// own modifications do not require it to be executed again.
	ES_FIX
	// ES_SUBSUMED indicates the propagator can never narrow its variables
	// again, and should be discarded.
	ES_SUBSUMED
	// ES_OK indicates a propagator was posted successfully.
	ES_OK
)

func (s Status) String() string {
	switch s {
	case ES_FAILED:
		return "failed"
	case ES_NOFIX:
		return "nofix"
	case ES_FIX:
		return "fix"
	case ES_SUBSUMED:
		return "subsumed"
	case ES_OK:
		return "ok"
	}
	//
	return "unknown"
}

// ModEvent describes how a variable domain was modified.
//
//nolint:revive
type ModEvent int8

const (
	// ME_FAILED indicates the domain became empty.
	ME_FAILED ModEvent = iota - 1
	// ME_NONE indicates the domain did not change.
	ME_NONE
	// ME_VAL indicates the domain was narrowed and is now assigned.
	ME_VAL
	// ME_BND indicates a bound of the domain was narrowed.
	ME_BND
)

// Failed checks whether this modification emptied a domain.
func (me ModEvent) Failed() bool {
	return me == ME_FAILED
}

// Modified checks whether this modification changed a domain (without
// emptying it).
func (me ModEvent) Modified() bool {
	return me > ME_NONE
}
