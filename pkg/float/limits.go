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

import "math"

// MaxValue is the largest magnitude permitted for the bounds of a variable.
const MaxValue = math.MaxFloat64

// CheckLimits checks that a value can be used as the bound of a variable.
func CheckLimits(v float64) error {
	if math.IsNaN(v) || math.Abs(v) > MaxValue {
		return opError("limits", ErrOutOfLimits, v)
	}
	//
	return nil
}
