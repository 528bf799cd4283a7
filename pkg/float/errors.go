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
	"fmt"
	"strings"

	"github.com/consensys/go-fprop/pkg/float/round"
)

var (
	// ErrDomainEmpty signals that an interval would have a lower bound above
	// its upper bound.
	ErrDomainEmpty = errors.New("empty domain")
	// ErrDivisionByZero signals division by an interval containing zero in its
	// interior, or by the singleton zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUndefined signals an operation applied outside of its domain, such
	// as the square root of a negative interval.
	ErrUndefined = round.ErrUndefined
	// ErrOutOfLimits signals a bound outside of the representable range
	// configured for variables.
	ErrOutOfLimits = errors.New("out of limits")
)

// OpError records a failed interval operation together with its arguments.
type OpError struct {
	// Op is the name of the failed operation.
	Op string
	// Args are the arguments given to the operation.
	Args []string
	// Err is the underlying sentinel error.
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s(%s): %v", e.Op, strings.Join(e.Args, ","), e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *OpError) Unwrap() error {
	return e.Err
}

// opError constructs an OpError, formatting its arguments as strings.
func opError(op string, err error, args ...any) *OpError {
	strs := make([]string, len(args))
	//
	for i, arg := range args {
		switch a := arg.(type) {
		case float64:
			strs[i] = formatBound(a)
		default:
			strs[i] = fmt.Sprintf("%v", a)
		}
	}
	//
	return &OpError{op, strs, err}
}
