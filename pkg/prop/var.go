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

import (
	"github.com/consensys/go-fprop/pkg/float"
)

// VarImp holds the domain of a variable within a space, along with the
// propagators subscribed to it.  Boolean variables share this representation,
// with domains restricted to {0}, {1} or [0,1].
type VarImp struct {
	// Index of this variable within its space.
	idx int
	// Current domain
	dom float.Interval
	// Identifies the propagators to schedule when the domain changes.
	subs []int
	// Indicates a boolean control variable.
	boolean bool
}

// Index returns the position of this variable within its space.
func (x *VarImp) Index() int {
	return x.idx
}

// Domain returns the current domain of this variable.
func (x *VarImp) Domain() float.Interval {
	return x.dom
}

func (x *VarImp) clone() *VarImp {
	subs := make([]int, len(x.subs))
	copy(subs, x.subs)
	//
	return &VarImp{x.idx, x.dom, subs, x.boolean}
}

// FloatVar is a handle on a float variable of some space.  Handles remain
// meaningful across clones, by resolving them in the clone with Update.
type FloatVar struct {
	imp *VarImp
}

// Index returns the position of this variable within its space.
func (x FloatVar) Index() int {
	return x.imp.idx
}

// Domain returns the current domain of this variable.
func (x FloatVar) Domain() float.Interval {
	return x.imp.dom
}

// Min returns the lower bound of this variable.
func (x FloatVar) Min() float64 {
	return x.imp.dom.Min()
}

// Max returns the upper bound of this variable.
func (x FloatVar) Max() float64 {
	return x.imp.dom.Max()
}

// Assigned checks whether this variable can no longer be narrowed.
func (x FloatVar) Assigned() bool {
	return x.imp.dom.Tight()
}

// View returns a view of this variable, for use by propagators.
func (x FloatVar) View() FloatView {
	return FloatView{x.imp}
}

// Update resolves this handle in a given space, typically a clone of the
// space it was created in.
func (x FloatVar) Update(home *Space) FloatVar {
	return FloatVar{home.vars[x.imp.idx]}
}

func (x FloatVar) String() string {
	return x.imp.dom.String()
}

// BoolVar is a handle on a boolean control variable of some space, used for
// reification.
type BoolVar struct {
	imp *VarImp
}

// Index returns the position of this variable within its space.
func (b BoolVar) Index() int {
	return b.imp.idx
}

// One checks whether this variable is assigned to one.
func (b BoolVar) One() bool {
	return b.View().One()
}

// Zero checks whether this variable is assigned to zero.
func (b BoolVar) Zero() bool {
	return b.View().Zero()
}

// None checks whether this variable is unassigned.
func (b BoolVar) None() bool {
	return b.View().None()
}

// View returns a view of this variable, for use by propagators.
func (b BoolVar) View() BoolView {
	return BoolView{b.imp, false}
}

// Update resolves this handle in a given space.
func (b BoolVar) Update(home *Space) BoolVar {
	return BoolVar{home.vars[b.imp.idx]}
}

func (b BoolVar) String() string {
	switch {
	case b.One():
		return "1"
	case b.Zero():
		return "0"
	}
	//
	return "[0..1]"
}
