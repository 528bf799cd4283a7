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
	"context"
	"errors"
	"fmt"

	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/float/round"
	log "github.com/sirupsen/logrus"
)

// maxPasses bounds the number of passes Converge makes over a single
// propagation step.
const maxPasses = 16

// ErrStepLimit signals that propagation was abandoned after executing the
// maximum number of propagators permitted.
var ErrStepLimit = errors.New("propagation step limit reached")

// Propagator narrows the domains of the variables it depends upon, without
// removing any value which participates in a solution of its constraint.
type Propagator interface {
	// Propagate narrows domains within the given space, reporting whether
	// this propagator failed, was subsumed or (possibly) reached a fixpoint.
	Propagate(home *Space) Status
	// Copy returns a copy of this propagator whose views refer to the given
	// space, which is being cloned.
	Copy(home *Space) Propagator
	// Name returns a short name for this propagator, as used in logs and
	// metrics.
	Name() string
}

// actor records a propagator posted in a space.
type actor struct {
	prop   Propagator
	queued bool
	dead   bool
}

// Space holds variables and the propagators between them, and computes the
// fixpoint of those propagators.  A space is not safe for concurrent use,
// though distinct clones may be propagated concurrently.
type Space struct {
	vars  []*VarImp
	props []*actor
	// FIFO queue of scheduled propagators
	queue []int
	// Set when some domain becomes empty, or a propagator fails.
	failed bool
	// Propagator currently executing, or -1.
	current int
	// Set when the current propagator modifies one of its own variables.
	modified bool
	// Counts every domain modification made in this space.
	events uint64
	// Maximum number of propagators executed by a single fixpoint (or 0 for
	// no limit).
	limit uint
	// Rounding policy for scalar computations of propagators.
	policy  *round.Policy
	metrics *Metrics
}

// NewSpace constructs an empty space.  A nil policy means the space uses a
// clone of the policy installed in the float package.
func NewSpace(policy *round.Policy) *Space {
	if policy == nil {
		policy = float.Round().Clone()
	}
	//
	return &Space{current: -1, policy: policy}
}

// NewFloatVar creates a float variable with the given initial domain.  Both
// bounds must be finite.
func (s *Space) NewFloatVar(lo, hi float64) (FloatVar, error) {
	if err := float.CheckLimits(lo); err != nil {
		return FloatVar{}, err
	} else if err := float.CheckLimits(hi); err != nil {
		return FloatVar{}, err
	}
	//
	dom, err := float.New(lo, hi)
	//
	if err != nil {
		return FloatVar{}, err
	}
	//
	return FloatVar{s.newVar(dom, false)}, nil
}

// NewBoolVar creates an unassigned boolean control variable.
func (s *Space) NewBoolVar() BoolVar {
	dom, _ := float.New(0, 1)
	//
	return BoolVar{s.newVar(dom, true)}
}

func (s *Space) newVar(dom float.Interval, boolean bool) *VarImp {
	x := &VarImp{len(s.vars), dom, nil, boolean}
	s.vars = append(s.vars, x)
	//
	return x
}

// NumVars returns the number of variables in this space.
func (s *Space) NumVars() int {
	return len(s.vars)
}

// Var returns the ith variable of this space.
func (s *Space) Var(i int) *VarImp {
	return s.vars[i]
}

// Round returns the rounding policy owned by this space.
func (s *Space) Round() *round.Policy {
	return s.policy
}

// SetStepLimit bounds the number of propagators executed by a single call to
// Fixpoint, where zero means no limit.
func (s *Space) SetStepLimit(limit uint) {
	s.limit = limit
}

// SetMetrics determines where propagation statistics are recorded, where nil
// disables recording.
func (s *Space) SetMetrics(m *Metrics) {
	s.metrics = m
}

// Failed checks whether this space has failed.
func (s *Space) Failed() bool {
	return s.failed
}

// Fail marks this space as failed.
func (s *Space) Fail() {
	s.failed = true
	s.queue = nil
}

// Post a propagator which depends on the given variables.  The propagator is
// subscribed to every dependency and scheduled for execution.
func (s *Space) Post(p Propagator, deps ...Dependency) Status {
	if s.failed {
		return ES_FAILED
	}
	//
	id := len(s.props)
	s.props = append(s.props, &actor{prop: p})
	//
	for _, d := range deps {
		x := s.vars[d.Var().idx]
		// avoid duplicate subscriptions
		if n := len(x.subs); n == 0 || x.subs[n-1] != id {
			x.subs = append(x.subs, id)
		}
	}
	//
	s.schedule(id)
	//
	return ES_OK
}

// Propagators returns the number of propagators which are not yet subsumed.
func (s *Space) Propagators() int {
	count := 0
	//
	for _, a := range s.props {
		if a != nil && !a.dead {
			count++
		}
	}
	//
	return count
}

// Fixpoint executes scheduled propagators until none remain, or the space
// fails.  ES_FIX is returned on reaching the fixpoint, and ES_FAILED on
// failure.  Propagation is abandoned (with an error) if the context is
// cancelled, or the step limit is reached.
func (s *Space) Fixpoint(ctx context.Context) (Status, error) {
	var steps uint
	//
	defer func() {
		if s.metrics != nil {
			s.metrics.steps.Observe(float64(steps))
		}
	}()
	//
	for ; len(s.queue) > 0 && !s.failed; steps++ {
		if s.limit != 0 && steps >= s.limit {
			return ES_NOFIX, fmt.Errorf("%w (%d steps)", ErrStepLimit, steps)
		} else if err := ctx.Err(); err != nil {
			return ES_NOFIX, err
		}
		// dequeue
		id := s.queue[0]
		s.queue = s.queue[1:]
		s.props[id].queued = false
		//
		if !s.props[id].dead {
			s.execute(id)
		}
	}
	//
	if s.failed {
		log.Debugf("propagation failed after %d steps", steps)
		return ES_FAILED, nil
	}
	//
	log.Debugf("propagation reached fixpoint after %d steps", steps)
	//
	return ES_FIX, nil
}

// Converge repeats a propagation step until a pass leaves every domain of this
// space unchanged, at which point the step is at its own fixpoint and ES_FIX is
// returned.  A step which fails or is subsumed ends repetition immediately.
// ES_NOFIX is returned when domains are still being narrowed after a bounded
// number of passes, as happens when bounds creep towards each other one ulp at
// a time.
func (s *Space) Converge(step func() Status) Status {
	for pass := 0; pass < maxPasses; pass++ {
		before := s.events
		//
		switch status := step(); {
		case status == ES_FAILED || s.failed:
			return ES_FAILED
		case status == ES_SUBSUMED:
			return ES_SUBSUMED
		case s.events == before:
			return ES_FIX
		}
	}
	//
	return ES_NOFIX
}

// execute a single propagator, and act upon its status.
func (s *Space) execute(id int) {
	var (
		a    = s.props[id]
		name = a.prop.Name()
	)
	//
	s.current, s.modified = id, false
	status := a.prop.Propagate(s)
	s.current = -1
	//
	if s.metrics != nil {
		s.metrics.propagations.WithLabelValues(name).Inc()
	}
	//
	if log.IsLevelEnabled(log.TraceLevel) {
		log.WithField("propagator", name).Tracef("#%d => %s", id, status)
	}
	//
	switch status {
	case ES_FAILED:
		if s.metrics != nil {
			s.metrics.failures.WithLabelValues(name).Inc()
		}
		//
		log.Debugf("propagator %s#%d failed", name, id)
		s.Fail()
	case ES_SUBSUMED:
		if s.metrics != nil {
			s.metrics.subsumptions.Inc()
		}
		//
		a.dead = true
	case ES_NOFIX:
		if s.modified {
			s.schedule(id)
		}
	}
}

// modify the domain of a variable, scheduling the propagators subscribed to
// it.  The current propagator is not scheduled, though its modification is
// noted.
func (s *Space) modify(x *VarImp, dom float.Interval) ModEvent {
	if dom == x.dom {
		return ME_NONE
	}
	//
	x.dom = dom
	s.events++
	//
	for _, id := range x.subs {
		if id == s.current {
			s.modified = true
		} else {
			s.schedule(id)
		}
	}
	//
	if dom.Tight() {
		return ME_VAL
	}
	//
	return ME_BND
}

// fail marks this space as failed due to a variable's domain becoming empty.
func (s *Space) fail(x *VarImp) ModEvent {
	if log.IsLevelEnabled(log.TraceLevel) {
		log.Tracef("domain of variable %d emptied", x.idx)
	}
	//
	s.Fail()
	//
	return ME_FAILED
}

func (s *Space) schedule(id int) {
	if a := s.props[id]; !a.queued && !a.dead && !s.failed {
		a.queued = true
		s.queue = append(s.queue, id)
	}
}

// Clone this space, producing an independent copy of all domains and
// propagators.  Variable handles are resolved in the clone using their Update
// methods.
func (s *Space) Clone() *Space {
	c := &Space{
		vars:    make([]*VarImp, len(s.vars)),
		props:   make([]*actor, len(s.props)),
		queue:   make([]int, len(s.queue)),
		failed:  s.failed,
		current: -1,
		limit:   s.limit,
		policy:  s.policy.Clone(),
		metrics: s.metrics,
	}
	//
	for i, x := range s.vars {
		c.vars[i] = x.clone()
	}
	// variables must exist before propagators are copied
	for i, a := range s.props {
		if a.dead {
			c.props[i] = &actor{prop: a.prop, dead: true}
		} else {
			c.props[i] = &actor{prop: a.prop.Copy(c), queued: a.queued}
		}
	}
	//
	copy(c.queue, s.queue)
	//
	return c
}
