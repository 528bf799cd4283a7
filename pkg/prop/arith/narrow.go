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
package arith

import (
	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/prop"
)

// narrow restricts a view to the result of an interval operation, where an
// error from the operation means nothing can be inferred.
func narrow[V prop.View](home *prop.Space, x V, iv float.Interval, err error) prop.ModEvent {
	if err != nil {
		return prop.ME_NONE
	}
	//
	return x.Eq(home, iv)
}

// restrict a view to the result of an interval operation, where an error
// from the operation means no value is possible.
func restrict[V prop.View](home *prop.Space, x V, iv float.Interval, err error) prop.ModEvent {
	if err != nil {
		home.Fail()
		return prop.ME_FAILED
	}
	//
	return x.Eq(home, iv)
}

// post checks whether a propagator is needed, before posting it.
func post(home *prop.Space, p prop.Propagator, deps ...prop.Dependency) prop.Status {
	if home.Failed() {
		return prop.ES_FAILED
	}
	//
	return home.Post(p, deps...)
}
