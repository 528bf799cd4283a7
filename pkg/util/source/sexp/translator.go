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
package sexp

import (
	"fmt"

	"github.com/consensys/go-fprop/pkg/util/source"
)

// SymbolRule is responsible for converting a terminating expression (i.e. a
// symbol) into an expression type T, such as a number or a variable.  It
// reports false when the rule does not apply to the symbol.
type SymbolRule[T comparable] func(string) (T, bool, error)

// ArrayRule is responsible for converting an array into an expression type T.
type ArrayRule[T comparable] func(*Array) (T, error)

// RecursiveRule is a wrapper for translating lists whose arguments are built
// by recursively reusing the enclosing translator.  Observe that the
// arguments are already translated into the correct form.
type RecursiveRule[T comparable] func(string, []T) (T, error)

// Translator is a generic mechanism for translating S-Expressions into a
// structured form.
type Translator[T comparable] struct {
	// Rules for parsing lists, by their head symbol
	lists map[string]RecursiveRule[T]
	// Fallback rule for lists with no specific rule.
	list_default RecursiveRule[T]
	// Rule for parsing arrays (if any)
	array ArrayRule[T]
	// Rules for parsing symbols, tried in order
	symbols []SymbolRule[T]
	// Maps S-Expressions to their spans in the original source file.
	srcmap *source.Map[SExp]
}

// NewTranslator constructs a new Translator instance.
func NewTranslator[T comparable](srcmap *source.Map[SExp]) *Translator[T] {
	return &Translator[T]{
		lists:  make(map[string]RecursiveRule[T]),
		srcmap: srcmap,
	}
}

// AddRecursiveListRule adds a new list translator to this expression translator.
func (p *Translator[T]) AddRecursiveListRule(name string, t RecursiveRule[T]) {
	p.lists[name] = t
}

// AddDefaultListRule adds a default rule to be applied when no other list
// rules apply.
func (p *Translator[T]) AddDefaultListRule(t RecursiveRule[T]) {
	p.list_default = t
}

// SetArrayRule sets the rule used for translating arrays.
func (p *Translator[T]) SetArrayRule(t ArrayRule[T]) {
	p.array = t
}

// AddSymbolRule adds a new symbol translator to this expression translator.
func (p *Translator[T]) AddSymbolRule(t SymbolRule[T]) {
	p.symbols = append(p.symbols, t)
}

// Translate a given S-Expression into the structured representation T.
func (p *Translator[T]) Translate(sexp SExp) (T, []source.SyntaxError) {
	var empty T
	//
	switch e := sexp.(type) {
	case *List:
		return p.translateList(e)
	case *Array:
		if p.array == nil {
			return empty, p.SyntaxErrors(e, "unexpected array")
		}
		//
		term, err := p.array(e)
		if err != nil {
			return empty, p.SyntaxErrors(e, err.Error())
		}
		//
		return term, nil
	case *Symbol:
		for _, rule := range p.symbols {
			term, ok, err := rule(e.Value)
			//
			if ok && err != nil {
				return empty, p.SyntaxErrors(e, err.Error())
			} else if ok {
				return term, nil
			}
		}
		//
		return empty, p.SyntaxErrors(e, fmt.Sprintf("unknown symbol %q", e.Value))
	}
	// This should be unreachable.
	return empty, p.SyntaxErrors(sexp, "invalid s-expression")
}

// Translate a list whose arguments are first recursively translated, then
// combined by the rule for the list's head symbol.
func (p *Translator[T]) translateList(l *List) (T, []source.SyntaxError) {
	var (
		empty  T
		errors []source.SyntaxError
		head   = l.Head()
		rule   = p.lists[head]
	)
	//
	if head == "" {
		return empty, p.SyntaxErrors(l, "invalid list")
	} else if rule == nil && p.list_default == nil {
		return empty, p.SyntaxErrors(l, fmt.Sprintf("unknown operation %q", head))
	} else if rule == nil {
		rule = p.list_default
	}
	// Translate arguments
	args := make([]T, len(l.Elements)-1)
	//
	for i, s := range l.Elements[1:] {
		var errs []source.SyntaxError
		args[i], errs = p.Translate(s)
		errors = append(errors, errs...)
	}
	//
	if len(errors) > 0 {
		return empty, errors
	}
	//
	term, err := rule(head, args)
	if err != nil {
		return empty, p.SyntaxErrors(l, err.Error())
	}
	//
	return term, nil
}

// SyntaxError constructs a suitable syntax error for a given S-Expression.
//
//nolint:revive
func (p *Translator[T]) SyntaxError(s SExp, msg string) *source.SyntaxError {
	return p.srcmap.SyntaxError(s, msg)
}

// SyntaxErrors constructs a syntax error for a given S-Expression, as an array
// of size one.
//
//nolint:revive
func (p *Translator[T]) SyntaxErrors(s SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.SyntaxError(s, msg)}
}
