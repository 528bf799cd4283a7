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
	"github.com/consensys/go-fprop/pkg/float/kernel"
	"github.com/consensys/go-fprop/pkg/float/round"
)

// policy used for transcendental functions over intervals.  Only the directed
// methods of a policy are used here, which never consult its mode stack.
var policy *round.Policy

func init() {
	p, err := round.New(kernel.New(kernel.DefaultDigits))
	// directed rounding is not optional
	if err != nil {
		panic(err)
	}
	//
	policy = p
}

// SetRounding installs the rounding policy used for transcendental functions.
// This must not be called concurrently with the evaluation of intervals.
func SetRounding(p *round.Policy) {
	policy = p
}

// Round returns the rounding policy used for transcendental functions.
func Round() *round.Policy {
	return policy
}
