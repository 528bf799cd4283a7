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
	"unicode"

	"github.com/consensys/go-fprop/pkg/util/source"
)

// Parse a given file into a single S-expression, or return an error if the
// file is malformed.  A source map is also returned for reporting errors.
func Parse(s *source.File) (SExp, *source.Map[SExp], *source.SyntaxError) {
	p := NewParser(s)
	// Parse the input
	term, err := p.Parse()
	//
	if err != nil {
		return nil, nil, err
	} else if term == nil {
		return nil, nil, p.error("empty input")
	}
	// Sanity check everything was parsed
	if p.SkipWhiteSpace(); p.index != len(p.text) {
		return nil, nil, p.error("unexpected remainder")
	}
	//
	return term, p.srcmap, nil
}

// ParseAll converts a given file into zero or more S-expressions, or returns
// an error if the file is malformed.
func ParseAll(s *source.File) ([]SExp, *source.Map[SExp], *source.SyntaxError) {
	var (
		p     = NewParser(s)
		terms []SExp
	)
	//
	for {
		term, err := p.Parse()
		//
		if err != nil {
			return terms, p.srcmap, err
		} else if term == nil {
			// EOF reached
			return terms, p.srcmap, nil
		}
		//
		terms = append(terms, term)
	}
}

// Parser represents a parser in the process of parsing a given file into one
// or more S-expressions.
type Parser struct {
	srcfile *source.File
	text    []rune
	// current position within text
	index int
	// spans of each constructed S-Expression
	srcmap *source.Map[SExp]
}

// NewParser constructs a new instance of Parser
func NewParser(srcfile *source.File) *Parser {
	return &Parser{
		srcfile: srcfile,
		text:    srcfile.Contents(),
		index:   0,
		srcmap:  source.NewMap[SExp](srcfile),
	}
}

// SourceMap returns the source map constructed during parsing.
func (p *Parser) SourceMap() *source.Map[SExp] {
	return p.srcmap
}

// Parse the next S-Expression, returning nil at the end of the input.
func (p *Parser) Parse() (SExp, *source.SyntaxError) {
	var term SExp
	// Skip whitespace to find the starting point of this term.
	p.SkipWhiteSpace()
	//
	start := p.index
	token := p.next()
	//
	switch {
	case token == nil:
		return nil, nil
	case len(token) == 1 && (token[0] == ')' || token[0] == ']'):
		p.index--
		return nil, p.error("unexpected end-of-list")
	case len(token) == 1 && token[0] == '(':
		elements, err := p.parseSequence(')')
		if err != nil {
			return nil, err
		}
		//
		term = &List{elements}
	case len(token) == 1 && token[0] == '[':
		elements, err := p.parseSequence(']')
		if err != nil {
			return nil, err
		}
		//
		term = &Array{elements}
	default:
		term = &Symbol{string(token)}
	}
	//
	p.srcmap.Put(term, source.NewSpan(start, p.index))
	//
	return term, nil
}

// SkipWhiteSpace skips over any whitespace, including comments which run from
// ';' to the end of the line.
func (p *Parser) SkipWhiteSpace() {
	for p.index < len(p.text) {
		switch c := p.text[p.index]; {
		case c == ';':
			p.index = endOfComment(p.index, p.text)
		case unicode.IsSpace(c):
			p.index++
		default:
			return
		}
	}
}

// next extracts the next token.
func (p *Parser) next() []rune {
	p.SkipWhiteSpace()
	// Catch end-of-file
	if p.index == len(p.text) {
		return nil
	} else if isBrace(p.text[p.index]) {
		p.index++
		return p.text[p.index-1 : p.index]
	}
	// Symbol
	start := p.index
	//
	for p.index < len(p.text) && !isBrace(p.text[p.index]) && !unicode.IsSpace(p.text[p.index]) &&
		p.text[p.index] != ';' {
		p.index++
	}
	//
	return p.text[start:p.index]
}

func (p *Parser) parseSequence(terminator rune) ([]SExp, *source.SyntaxError) {
	var elements []SExp
	//
	for {
		p.SkipWhiteSpace()
		//
		if p.index == len(p.text) {
			return nil, p.error("unexpected end-of-file")
		} else if p.text[p.index] == terminator {
			p.index++
			return elements, nil
		}
		//
		element, err := p.Parse()
		if err != nil {
			return nil, err
		}
		//
		elements = append(elements, element)
	}
}

// Construct a parser error at the current position in the input stream.
func (p *Parser) error(msg string) *source.SyntaxError {
	end := min(p.index+1, len(p.text))
	//
	return p.srcfile.SyntaxError(source.NewSpan(min(p.index, end), end), msg)
}

func isBrace(c rune) bool {
	return c == '(' || c == ')' || c == '[' || c == ']'
}

func endOfComment(index int, text []rune) int {
	for i := index; i < len(text); i++ {
		if text[i] == '\n' {
			return i + 1
		}
	}
	//
	return len(text)
}
