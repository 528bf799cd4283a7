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
package round

import (
	"errors"
	"fmt"
	"math"
)

// ErrRoundingModeUnavailable signals that directed rounding cannot be provided
// on this platform.  This is fatal at startup.
var ErrRoundingModeUnavailable = errors.New("directed rounding unavailable")

// Mode identifies a rounding direction.
type Mode uint8

const (
	// Nearest rounds to the nearest representable value (ties to even).
	Nearest Mode = iota
	// Downward rounds towards negative infinity.
	Downward
	// Upward rounds towards positive infinity.
	Upward
)

func (m Mode) String() string {
	switch m {
	case Nearest:
		return "nearest"
	case Downward:
		return "downward"
	case Upward:
		return "upward"
	}
	//
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Policy is a rounding environment.  It holds a stack of rounding modes, where
// the top of the stack determines the direction used by mode-sensitive
// operations (e.g. Add, Sin), and a backend for transcendental functions.  The
// directed operations (e.g. AddDown, SinUp) ignore the mode entirely.
//
// The directed operations never modify a policy, and can be shared between
// goroutines.  Entering a mode, and the mode-sensitive operations, do modify
// it: each propagation space owns its own policy for these, and spaces are
// driven by a single goroutine.
type Policy struct {
	backend Backend
	modes   []Mode
	// last enclosure computed by a mode-sensitive operation
	last enclosure
}

// enclosure records the backend's result for a single point.
type enclosure struct {
	fn     Func
	x      uint64
	lo, hi float64
	err    error
	valid  bool
}

// New constructs a policy over a given transcendental backend, after checking
// that directed rounding works on this platform.
func New(backend Backend) (*Policy, error) {
	if backend == nil {
		return nil, errors.New("missing transcendental backend")
	} else if err := Check(); err != nil {
		return nil, err
	}
	//
	return &Policy{backend: backend, modes: []Mode{Nearest}}, nil
}

// Clone returns a fresh policy sharing this policy's backend.  The new policy
// starts in round-to-nearest mode.
func (p *Policy) Clone() *Policy {
	return &Policy{backend: p.backend, modes: []Mode{Nearest}}
}

// Backend returns the transcendental backend of this policy.
func (p *Policy) Backend() Backend {
	return p.backend
}

// Mode returns the currently active rounding mode.
func (p *Policy) Mode() Mode {
	return p.modes[len(p.modes)-1]
}

// Scope represents an entered rounding mode.  Restoring it reinstates the mode
// which was active when it was entered.
type Scope struct {
	policy *Policy
	depth  int
}

// Enter makes m the active rounding mode until the returned scope is restored.
// Scopes must be restored in the reverse order of entry, and the usual pattern
// is:
//
//	defer p.Enter(round.Upward).Restore()
func (p *Policy) Enter(m Mode) Scope {
	p.modes = append(p.modes, m)
	//
	return Scope{p, len(p.modes)}
}

// Restore pops this scope's mode.  This panics if an inner scope is still
// active, or if this scope was already restored.
func (s Scope) Restore() {
	if len(s.policy.modes) != s.depth {
		panic(fmt.Sprintf("rounding scope restored out of order (depth %d, expected %d)",
			len(s.policy.modes), s.depth))
	}
	//
	s.policy.modes = s.policy.modes[:s.depth-1]
}

// Add returns a+b rounded in the active mode.
func (p *Policy) Add(a, b float64) float64 {
	switch p.Mode() {
	case Downward:
		return AddDown(a, b)
	case Upward:
		return AddUp(a, b)
	}
	//
	return a + b
}

// Sub returns a-b rounded in the active mode.
func (p *Policy) Sub(a, b float64) float64 {
	switch p.Mode() {
	case Downward:
		return SubDown(a, b)
	case Upward:
		return SubUp(a, b)
	}
	//
	return a - b
}

// Mul returns a*b rounded in the active mode.
func (p *Policy) Mul(a, b float64) float64 {
	switch p.Mode() {
	case Downward:
		return MulDown(a, b)
	case Upward:
		return MulUp(a, b)
	}
	//
	return a * b
}

// Div returns a/b rounded in the active mode.
func (p *Policy) Div(a, b float64) float64 {
	switch p.Mode() {
	case Downward:
		return DivDown(a, b)
	case Upward:
		return DivUp(a, b)
	}
	//
	return a / b
}

// Sqrt returns the square root of x rounded in the active mode.
func (p *Policy) Sqrt(x float64) float64 {
	switch p.Mode() {
	case Downward:
		return SqrtDown(x)
	case Upward:
		return SqrtUp(x)
	}
	//
	return math.Sqrt(x)
}

// Int returns x rounded to an integral value in the active mode.
func (p *Policy) Int(x float64) float64 {
	switch p.Mode() {
	case Downward:
		return IntDown(x)
	case Upward:
		return IntUp(x)
	}
	//
	return math.RoundToEven(x)
}

// eval evaluates a transcendental function in the active mode.  In nearest
// mode the median of the enclosure is returned.  The most recent enclosure is
// reused, since a bound is usually computed downwards and then upwards at the
// same point.
func (p *Policy) eval(fn Func, x float64) (float64, error) {
	bits := math.Float64bits(x)
	//
	if m := p.last; !m.valid || m.fn != fn || m.x != bits {
		lo, hi, err := p.backend.Eval(fn, x)
		p.last = enclosure{fn, bits, lo, hi, err, true}
	}
	//
	lo, hi, err := p.last.lo, p.last.hi, p.last.err
	//
	if err != nil {
		return math.NaN(), err
	}
	//
	switch p.Mode() {
	case Downward:
		return lo, nil
	case Upward:
		return hi, nil
	}
	//
	return Median(lo, hi), nil
}
