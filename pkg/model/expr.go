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
	"strings"
	"unicode"

	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/util/source"
	"github.com/consensys/go-fprop/pkg/util/source/sexp"
)

// Expr is an interval expression, such as (sin [0 1.6]) or (* x 0.1).
// Evaluating an expression yields an interval enclosing every value the
// expression can take when its variables range over their intervals.
type Expr interface {
	// Eval evaluates this expression in a given environment.
	Eval(env map[string]float.Interval) (float.Interval, error)
	fmt.Stringer
}

// Const is a constant interval, such as 0.1 (enclosed by its two nearest
// floats) or [0 1].
type Const struct {
	Value float.Interval
	text  string
}

// Eval implementation for the Expr interface.
func (e *Const) Eval(map[string]float.Interval) (float.Interval, error) {
	return e.Value, nil
}

func (e *Const) String() string {
	return e.text
}

// VarAccess refers to a named interval of the environment.
type VarAccess struct {
	Name string
}

// Eval implementation for the Expr interface.
func (e *VarAccess) Eval(env map[string]float.Interval) (float.Interval, error) {
	if v, ok := env[e.Name]; ok {
		return v, nil
	}
	//
	return float.Interval{}, fmt.Errorf("unknown variable %s", e.Name)
}

func (e *VarAccess) String() string {
	return e.Name
}

// Apply applies an interval operation to its arguments.
type Apply struct {
	Op   string
	Args []Expr
	fn   operation
}

// Eval implementation for the Expr interface.
func (e *Apply) Eval(env map[string]float.Interval) (float.Interval, error) {
	args := make([]float.Interval, len(e.Args))
	//
	for i, arg := range e.Args {
		v, err := arg.Eval(env)
		if err != nil {
			return float.Interval{}, err
		}
		//
		args[i] = v
	}
	//
	return e.fn.eval(args)
}

func (e *Apply) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	builder.WriteString(e.Op)
	//
	for _, arg := range e.Args {
		builder.WriteString(" ")
		builder.WriteString(arg.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// ============================================================================
// Operations
// ============================================================================

type operation struct {
	// minimum and maximum number of arguments (or -1 for any)
	min, max int
	eval     func([]float.Interval) (float.Interval, error)
}

func unary(fn func(float.Interval) (float.Interval, error)) operation {
	return operation{1, 1, func(args []float.Interval) (float.Interval, error) { return fn(args[0]) }}
}

func total(fn func(float.Interval) float.Interval) operation {
	return operation{1, 1, func(args []float.Interval) (float.Interval, error) { return fn(args[0]), nil }}
}

func fold(fn func(float.Interval, float.Interval) float.Interval) operation {
	return operation{1, -1, func(args []float.Interval) (float.Interval, error) {
		acc := args[0]
		//
		for _, arg := range args[1:] {
			acc = fn(acc, arg)
		}
		//
		return acc, nil
	}}
}

func integral(op string, fn func(float.Interval, int) (float.Interval, error)) operation {
	return operation{2, 2, func(args []float.Interval) (float.Interval, error) {
		n := args[1]
		//
		if !n.IsSingleton() || n.Min() != float64(int(n.Min())) {
			return float.Interval{}, fmt.Errorf("%s requires an integer degree, found %s", op, n)
		}
		//
		return fn(args[0], int(n.Min()))
	}}
}

var operations = map[string]operation{
	"+": fold(float.Interval.Add),
	"*": fold(float.Interval.Mul),
	"-": {1, -1, func(args []float.Interval) (float.Interval, error) {
		if len(args) == 1 {
			return args[0].Neg(), nil
		}
		//
		acc := args[0]
		//
		for _, arg := range args[1:] {
			acc = acc.Sub(arg)
		}
		//
		return acc, nil
	}},
	"/":     {2, 2, func(args []float.Interval) (float.Interval, error) { return args[0].Div(args[1]) }},
	"min":   fold(float.Min),
	"max":   fold(float.Max),
	"hull":  fold(float.Hull),
	"abs":   total(float.Abs),
	"sqr":   total(float.Square),
	"sqrt":  unary(float.Sqrt),
	"pow":   integral("pow", float.Pow),
	"nroot": integral("nroot", float.NthRoot),
	"exp":   unary(float.Exp),
	"log":   unary(float.Log),
	"sin":   unary(float.Sin),
	"cos":   unary(float.Cos),
	"tan":   unary(float.Tan),
	"asin":  unary(float.Asin),
	"acos":  unary(float.Acos),
	"atan":  unary(float.Atan),
	"sinh":  unary(float.Sinh),
	"cosh":  unary(float.Cosh),
	"tanh":  unary(float.Tanh),
	"asinh": unary(float.Asinh),
	"acosh": unary(float.Acosh),
	"atanh": unary(float.Atanh),
}

// ============================================================================
// Parsing
// ============================================================================

// ParseExpr parses an interval expression from a source file.
func ParseExpr(file *source.File) (Expr, []source.SyntaxError) {
	term, srcmap, err := sexp.Parse(file)
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	return newTranslator(srcmap, nil).Translate(term)
}

// newTranslator constructs a translator for interval expressions.  Symbols
// which are not numbers are accepted as variables when they satisfy the given
// predicate (if any).
func newTranslator(srcmap *source.Map[sexp.SExp], isVar func(string) bool) *sexp.Translator[Expr] {
	t := sexp.NewTranslator[Expr](srcmap)
	//
	t.AddSymbolRule(constantRule)
	t.AddSymbolRule(func(s string) (Expr, bool, error) {
		if sym := sexp.NewSymbol(s); !sym.IsIdentifier() || (isVar != nil && !isVar(s)) {
			return nil, false, nil
		}
		//
		return &VarAccess{s}, true, nil
	})
	t.SetArrayRule(intervalRule)
	t.AddDefaultListRule(func(op string, args []Expr) (Expr, error) {
		fn, ok := operations[op]
		//
		switch {
		case !ok:
			return nil, fmt.Errorf("unknown operation %s", op)
		case len(args) < fn.min || (fn.max >= 0 && len(args) > fn.max):
			return nil, fmt.Errorf("incorrect number of arguments for %s", op)
		}
		//
		return &Apply{op, args, fn}, nil
	})
	//
	return t
}

// constantRule recognises numeric constants, including pi and infinities.
func constantRule(s string) (Expr, bool, error) {
	if !isNumeric(s) {
		return nil, false, nil
	}
	//
	iv, err := float.Parse(s)
	//
	return &Const{iv, s}, true, err
}

// intervalRule recognises interval literals [lo hi], whose bounds are rounded
// outwards.
func intervalRule(a *sexp.Array) (Expr, error) {
	if a.Len() != 2 || a.Get(0).AsSymbol() == nil || a.Get(1).AsSymbol() == nil {
		return nil, fmt.Errorf("invalid interval %s", a)
	}
	//
	lo, err := float.Parse(a.Get(0).AsSymbol().Value)
	if err != nil {
		return nil, err
	}
	//
	hi, err := float.Parse(a.Get(1).AsSymbol().Value)
	if err != nil {
		return nil, err
	}
	//
	iv, err := float.New(lo.Min(), hi.Max())
	if err != nil {
		return nil, err
	}
	//
	return &Const{iv, a.String()}, nil
}

// isNumeric checks whether a symbol is intended as a number, being pi, an
// infinity, or starting with a digit (after any sign).
func isNumeric(s string) bool {
	body := strings.TrimLeft(s, "+-")
	//
	switch {
	case len(body) == 0 || len(s)-len(body) > 1:
		return false
	case body == "pi" || body == "inf":
		return true
	}
	//
	return unicode.IsDigit(rune(body[0])) || body[0] == '.'
}
