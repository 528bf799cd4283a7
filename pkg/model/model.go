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
package model

import (
	"fmt"
	"strconv"

	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/float/round"
	"github.com/consensys/go-fprop/pkg/prop"
	"github.com/consensys/go-fprop/pkg/prop/rel"
	"github.com/consensys/go-fprop/pkg/util/source"
	"github.com/consensys/go-fprop/pkg/util/source/sexp"
)

// Variable is a named variable of a model, which is either a float variable
// or a boolean control variable.
type Variable struct {
	Name  string
	Float prop.FloatVar
	Bool  prop.BoolVar
	// IsBool distinguishes boolean control variables.
	IsBool bool
}

func (v *Variable) String() string {
	if v.IsBool {
		return v.Bool.String()
	}
	//
	return v.Float.String()
}

// Model is a space of variables and propagators constructed from a model file.
type Model struct {
	space *prop.Space
	vars  []*Variable
	names map[string]*Variable
	// number of constraints posted
	constraints uint
}

// New constructs an empty model over a fresh space, using a given rounding
// policy (or the default policy when nil).
func New(policy *round.Policy) *Model {
	return &Model{space: prop.NewSpace(policy), names: make(map[string]*Variable)}
}

// Space returns the space of this model.
func (m *Model) Space() *prop.Space {
	return m.space
}

// Variables returns the named variables of this model, in order of
// declaration.
func (m *Model) Variables() []*Variable {
	return m.vars
}

// Variable looks up a variable by name.
func (m *Model) Variable(name string) (*Variable, bool) {
	v, ok := m.names[name]
	return v, ok
}

// Constraints returns the number of constraints posted in this model.
func (m *Model) Constraints() uint {
	return m.constraints
}

// DeclareFloat declares a new float variable with a given domain.
func (m *Model) DeclareFloat(name string, dom float.Interval) (prop.FloatVar, error) {
	if _, ok := m.names[name]; ok {
		return prop.FloatVar{}, fmt.Errorf("variable %s already declared", name)
	}
	// Infinite bounds are clipped to the representable range.
	lo, hi := max(dom.Min(), -float.MaxValue), min(dom.Max(), float.MaxValue)
	//
	x, err := m.space.NewFloatVar(lo, hi)
	if err != nil {
		return x, err
	}
	//
	m.declare(&Variable{Name: name, Float: x})
	//
	return x, nil
}

// DeclareBool declares a new boolean control variable.
func (m *Model) DeclareBool(name string) (prop.BoolVar, error) {
	if _, ok := m.names[name]; ok {
		return prop.BoolVar{}, fmt.Errorf("variable %s already declared", name)
	}
	//
	b := m.space.NewBoolVar()
	m.declare(&Variable{Name: name, Bool: b, IsBool: true})
	//
	return b, nil
}

func (m *Model) declare(v *Variable) {
	m.vars = append(m.vars, v)
	m.names[v.Name] = v
}

// Clone this model, including its space.
func (m *Model) Clone() *Model {
	c := &Model{
		space:       m.space.Clone(),
		names:       make(map[string]*Variable, len(m.names)),
		constraints: m.constraints,
	}
	//
	for _, v := range m.vars {
		nv := &Variable{Name: v.Name, IsBool: v.IsBool}
		//
		if v.IsBool {
			nv.Bool = v.Bool.Update(c.space)
		} else {
			nv.Float = v.Float.Update(c.space)
		}
		//
		c.declare(nv)
	}
	//
	return c
}

// ============================================================================
// Loading
// ============================================================================

// Load constructs a model from a model file consisting of a sequence of
// declarations and constraints, such as:
//
//	(defvar x [-10 10])
//	(defbool b)
//	(sin x y)
//	(rel x <= 0.1 b)
//
// Syntax errors are reported for every malformed statement.
func Load(file *source.File, policy *round.Policy) (*Model, []source.SyntaxError) {
	terms, srcmap, err := sexp.ParseAll(file)
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	var (
		m      = New(policy)
		errors []source.SyntaxError
		l      = loader{m, srcmap, nil}
	)
	//
	l.exprs = newTranslator(srcmap, func(string) bool { return false })
	//
	for _, term := range terms {
		if err := l.statement(term); err != nil {
			errors = append(errors, *err)
		}
	}
	//
	if len(errors) > 0 {
		return nil, errors
	}
	//
	return m, nil
}

type loader struct {
	model  *Model
	srcmap *source.Map[sexp.SExp]
	// translator for constant expressions
	exprs *sexp.Translator[Expr]
}

func (l *loader) statement(term sexp.SExp) *source.SyntaxError {
	list := term.AsList()
	//
	if list == nil || list.Head() == "" {
		return l.srcmap.SyntaxError(term, "expected declaration or constraint")
	}
	//
	switch list.Head() {
	case "defvar":
		return l.defvar(list)
	case "defbool":
		return l.defbool(list)
	case "rel":
		return l.rel(list)
	case "pow", "nroot":
		return l.degree(list)
	case "nmin", "nmax":
		return l.nary(list)
	case "exp", "log":
		return l.exponential(list)
	}
	//
	if post, ok := posts[list.Head()]; ok {
		return l.post(list, post)
	}
	//
	return l.srcmap.SyntaxError(list.Get(0), fmt.Sprintf("unknown constraint %s", list.Head()))
}

// (defvar x) or (defvar x dom)
func (l *loader) defvar(list *sexp.List) *source.SyntaxError {
	if list.Len() < 2 || list.Len() > 3 {
		return l.srcmap.SyntaxError(list, "expected (defvar name [domain])")
	} else if err := l.checkName(list.Get(1)); err != nil {
		return err
	}
	//
	dom := float.Entire()
	//
	if list.Len() == 3 {
		var err *source.SyntaxError
		//
		if dom, err = l.constant(list.Get(2)); err != nil {
			return err
		}
	}
	//
	if _, err := l.model.DeclareFloat(list.Get(1).String(), dom); err != nil {
		return l.srcmap.SyntaxError(list, err.Error())
	}
	//
	return nil
}

// (defbool b)
func (l *loader) defbool(list *sexp.List) *source.SyntaxError {
	if list.Len() != 2 {
		return l.srcmap.SyntaxError(list, "expected (defbool name)")
	} else if err := l.checkName(list.Get(1)); err != nil {
		return err
	} else if _, err := l.model.DeclareBool(list.Get(1).String()); err != nil {
		return l.srcmap.SyntaxError(list, err.Error())
	}
	//
	return nil
}

func (l *loader) checkName(name sexp.SExp) *source.SyntaxError {
	if s := name.AsSymbol(); s == nil || !s.IsIdentifier() || isNumeric(s.Value) {
		return l.srcmap.SyntaxError(name, "invalid variable name")
	}
	//
	return nil
}

// (rel x ~ y), (rel x ~ y b) or (rel x ~ y b mode), where y may be a constant.
func (l *loader) rel(list *sexp.List) *source.SyntaxError {
	if list.Len() < 4 || list.Len() > 6 {
		return l.srcmap.SyntaxError(list, "expected (rel x op y [b [mode]])")
	}
	//
	x, err := l.floatVar(list.Get(1))
	if err != nil {
		return err
	}
	//
	op := list.Get(2).AsSymbol()
	if op == nil {
		return l.srcmap.SyntaxError(list.Get(2), "expected relation")
	}
	//
	frt, rerr := ParseRel(op.Value)
	if rerr != nil {
		return l.srcmap.SyntaxError(op, rerr.Error())
	}
	//
	home := l.model.space
	l.model.constraints++
	// unreified
	if list.Len() == 4 {
		if y, ok := l.lookup(list.Get(3)); ok {
			Rel(home, x, frt, y)
			return nil
		}
		//
		c, err := l.constant(list.Get(3))
		if err != nil {
			return err
		}
		//
		relConst(home, x, frt, c)
		//
		return nil
	}
	// reified
	b, err := l.boolVar(list.Get(4))
	if err != nil {
		return err
	}
	//
	rm := rel.RM_EQV
	//
	if list.Len() == 6 {
		if rm, err = l.reifyMode(list.Get(5)); err != nil {
			return err
		}
	}
	//
	if y, ok := l.lookup(list.Get(3)); ok {
		RelReif(home, x, frt, y, b, rm)
		return nil
	}
	//
	c, err := l.constant(list.Get(3))
	if err != nil {
		return err
	} else if !c.IsSingleton() {
		return l.srcmap.SyntaxError(list.Get(3), "reified relation requires a floating point constant")
	}
	//
	RelConstReif(home, x, frt, c.Min(), b, rm)
	//
	return nil
}

// relConst posts x ~ c where c is a constant interval enclosing some real
// number.  Bounds of the interval are chosen such that no solution is lost.
func relConst(home *prop.Space, x prop.FloatVar, frt FloatRelType, c float.Interval) {
	switch frt {
	case FRT_EQ:
		Dom(home, x, c)
	case FRT_NQ:
		// a real which is not a float differs from every float
		if c.IsSingleton() {
			RelConst(home, x, frt, c.Min())
		}
	case FRT_LQ, FRT_LE:
		RelConst(home, x, frt, c.Max())
	default:
		RelConst(home, x, frt, c.Min())
	}
}

func (l *loader) reifyMode(s sexp.SExp) (rel.ReifyMode, *source.SyntaxError) {
	if sym := s.AsSymbol(); sym != nil {
		for _, rm := range []rel.ReifyMode{rel.RM_EQV, rel.RM_IMP, rel.RM_PMI} {
			if rm.String() == sym.Value {
				return rm, nil
			}
		}
	}
	//
	return 0, l.srcmap.SyntaxError(s, "expected reification mode (eqv, imp or pmi)")
}

// (pow x n y) or (nroot x n y)
func (l *loader) degree(list *sexp.List) *source.SyntaxError {
	if list.Len() != 4 {
		return l.srcmap.SyntaxError(list, fmt.Sprintf("expected (%s x n y)", list.Head()))
	}
	//
	n, nerr := strconv.Atoi(list.Get(2).String())
	if nerr != nil {
		return l.srcmap.SyntaxError(list.Get(2), "expected integer")
	}
	//
	xs, err := l.floatVars(list.Get(1), list.Get(3))
	if err != nil {
		return err
	}
	//
	var perr error
	//
	if list.Head() == "pow" {
		perr = Pow(l.model.space, xs[0], n, xs[1])
	} else {
		perr = NRoot(l.model.space, xs[0], n, xs[1])
	}
	//
	if perr != nil {
		return l.srcmap.SyntaxError(list.Get(2), perr.Error())
	}
	//
	l.model.constraints++
	//
	return nil
}

// (nmin x1 ... xn y) or (nmax x1 ... xn y)
func (l *loader) nary(list *sexp.List) *source.SyntaxError {
	if list.Len() < 3 {
		return l.srcmap.SyntaxError(list, fmt.Sprintf("expected (%s x1 ... xn y)", list.Head()))
	}
	//
	xs, err := l.floatVars(list.Elements[1:]...)
	if err != nil {
		return err
	}
	//
	var (
		n    = len(xs) - 1
		perr error
	)
	//
	if list.Head() == "nmin" {
		perr = NaryMin(l.model.space, xs[:n], xs[n])
	} else {
		perr = NaryMax(l.model.space, xs[:n], xs[n])
	}
	//
	if perr != nil {
		return l.srcmap.SyntaxError(list, perr.Error())
	}
	//
	l.model.constraints++
	//
	return nil
}

// (exp x y), (exp x y base), (log x y) or (log x y base)
func (l *loader) exponential(list *sexp.List) *source.SyntaxError {
	if list.Len() != 3 && list.Len() != 4 {
		return l.srcmap.SyntaxError(list, fmt.Sprintf("expected (%s x y [base])", list.Head()))
	}
	//
	xs, err := l.floatVars(list.Get(1), list.Get(2))
	if err != nil {
		return err
	}
	//
	home := l.model.space
	l.model.constraints++
	//
	if list.Len() == 3 && list.Head() == "exp" {
		Exp(home, xs[0], xs[1])
		return nil
	} else if list.Len() == 3 {
		Log(home, xs[0], xs[1])
		return nil
	}
	//
	base, err := l.constant(list.Get(3))
	if err != nil {
		return err
	} else if !base.IsSingleton() {
		return l.srcmap.SyntaxError(list.Get(3), "base must be a floating point constant")
	}
	//
	var berr error
	//
	if list.Head() == "exp" {
		berr = ExpBase(home, base.Min(), xs[0], xs[1])
	} else {
		berr = LogBase(home, base.Min(), xs[0], xs[1])
	}
	//
	if berr != nil {
		return l.srcmap.SyntaxError(list.Get(3), berr.Error())
	}
	//
	return nil
}

// poster posts a constraint over a fixed number of variables (or constants).
type poster struct {
	arity int
	post  func(*prop.Space, []prop.FloatVar)
}

var posts = map[string]poster{
	"mult": {3, func(h *prop.Space, xs []prop.FloatVar) { Mult(h, xs[0], xs[1], xs[2]) }},
	"div":  {3, func(h *prop.Space, xs []prop.FloatVar) { Div(h, xs[0], xs[1], xs[2]) }},
	"min":  {3, func(h *prop.Space, xs []prop.FloatVar) { Min(h, xs[0], xs[1], xs[2]) }},
	"max":  {3, func(h *prop.Space, xs []prop.FloatVar) { Max(h, xs[0], xs[1], xs[2]) }},
	"sqr":  {2, func(h *prop.Space, xs []prop.FloatVar) { Sqr(h, xs[0], xs[1]) }},
	"sqrt": {2, func(h *prop.Space, xs []prop.FloatVar) { Sqrt(h, xs[0], xs[1]) }},
	"abs":  {2, func(h *prop.Space, xs []prop.FloatVar) { Abs(h, xs[0], xs[1]) }},
	"sin":  {2, func(h *prop.Space, xs []prop.FloatVar) { Sin(h, xs[0], xs[1]) }},
	"cos":  {2, func(h *prop.Space, xs []prop.FloatVar) { Cos(h, xs[0], xs[1]) }},
	"tan":  {2, func(h *prop.Space, xs []prop.FloatVar) { Tan(h, xs[0], xs[1]) }},
	"asin": {2, func(h *prop.Space, xs []prop.FloatVar) { ASin(h, xs[0], xs[1]) }},
	"acos": {2, func(h *prop.Space, xs []prop.FloatVar) { ACos(h, xs[0], xs[1]) }},
	"atan": {2, func(h *prop.Space, xs []prop.FloatVar) { ATan(h, xs[0], xs[1]) }},
}

func (l *loader) post(list *sexp.List, p poster) *source.SyntaxError {
	if list.Len() != p.arity+1 {
		return l.srcmap.SyntaxError(list, fmt.Sprintf("%s expects %d arguments", list.Head(), p.arity))
	}
	//
	xs, err := l.floatVars(list.Elements[1:]...)
	if err != nil {
		return err
	}
	//
	p.post(l.model.space, xs)
	l.model.constraints++
	//
	return nil
}

// ============================================================================
// Arguments
// ============================================================================

// lookup a declared float variable.
func (l *loader) lookup(s sexp.SExp) (prop.FloatVar, bool) {
	if sym := s.AsSymbol(); sym != nil {
		if v, ok := l.model.names[sym.Value]; ok && !v.IsBool {
			return v.Float, true
		}
	}
	//
	return prop.FloatVar{}, false
}

// floatVar resolves an argument which is either a declared float variable, or
// a constant for which an anonymous variable is created.
func (l *loader) floatVar(s sexp.SExp) (prop.FloatVar, *source.SyntaxError) {
	if x, ok := l.lookup(s); ok {
		return x, nil
	} else if sym := s.AsSymbol(); sym != nil && sym.IsIdentifier() && !isNumeric(sym.Value) {
		return prop.FloatVar{}, l.srcmap.SyntaxError(s, fmt.Sprintf("unknown variable %s", sym.Value))
	}
	//
	c, err := l.constant(s)
	if err != nil {
		return prop.FloatVar{}, err
	}
	//
	x, verr := l.model.space.NewFloatVar(max(c.Min(), -float.MaxValue), min(c.Max(), float.MaxValue))
	if verr != nil {
		return x, l.srcmap.SyntaxError(s, verr.Error())
	}
	//
	return x, nil
}

func (l *loader) floatVars(args ...sexp.SExp) ([]prop.FloatVar, *source.SyntaxError) {
	xs := make([]prop.FloatVar, len(args))
	//
	for i, arg := range args {
		x, err := l.floatVar(arg)
		if err != nil {
			return nil, err
		}
		//
		xs[i] = x
	}
	//
	return xs, nil
}

func (l *loader) boolVar(s sexp.SExp) (prop.BoolVar, *source.SyntaxError) {
	if sym := s.AsSymbol(); sym != nil {
		if v, ok := l.model.names[sym.Value]; ok && v.IsBool {
			return v.Bool, nil
		}
	}
	//
	return prop.BoolVar{}, l.srcmap.SyntaxError(s, "expected boolean variable")
}

// constant evaluates a closed interval expression.
func (l *loader) constant(s sexp.SExp) (float.Interval, *source.SyntaxError) {
	e, errs := l.exprs.Translate(s)
	if len(errs) > 0 {
		return float.Interval{}, &errs[0]
	}
	//
	iv, err := e.Eval(nil)
	if err != nil {
		return float.Interval{}, l.srcmap.SyntaxError(s, err.Error())
	}
	//
	return iv, nil
}
