// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bufbuild/emmydoc/ast"
	"github.com/bufbuild/emmydoc/internal/ext/unicodex"
)

// maxTypeDepth bounds how deeply bracketed type expressions may nest.
const maxTypeDepth = 128

// TypeError is a syntax error in a type expression.
type TypeError struct {
	// Byte offset of the problem, relative to the start of the expression.
	Offset int
	Msg    string
}

// Error implements [error].
func (e *TypeError) Error() string {
	return e.Msg
}

// ParseType parses a complete type expression. Leading and trailing
// whitespace is ignored; anything else left over is an error.
func ParseType(text string) (ast.Ty, error) {
	trimmed := strings.TrimLeft(text, " \t")
	skip := len(text) - len(trimmed)

	ty, n, err := parseTypePrefix(trimmed)
	if err != nil {
		err.Offset += skip
		return nil, err
	}
	if rest := strings.TrimSpace(trimmed[n:]); rest != "" {
		return nil, &TypeError{
			Offset: skip + n + strings.Index(trimmed[n:], rest),
			Msg:    fmt.Sprintf("unexpected %q after type", rest),
		}
	}
	return ty, nil
}

// parseTypePrefix parses the longest type expression at the start of text,
// returning it and the number of bytes it spans.
//
// Whitespace following the expression is not consumed, so callers can tell
// whether a description follows.
func parseTypePrefix(text string) (ast.Ty, int, *TypeError) {
	p := &typeParser{text: text}
	ty, err := p.ty()
	if err != nil {
		return nil, 0, err
	}
	return ty, p.pos, nil
}

// typeParser is a recursive descent parser for type expressions.
type typeParser struct {
	text  string
	pos   int
	depth int
}

func (p *typeParser) rest() string {
	return p.text[p.pos:]
}

func (p *typeParser) errorf(format string, args ...any) *TypeError {
	return &TypeError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

// eat consumes prefix if the unparsed text starts with it.
func (p *typeParser) eat(prefix string) bool {
	if strings.HasPrefix(p.rest(), prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

// eatPadded consumes prefix surrounded by optional whitespace. If prefix is
// not found, nothing is consumed.
func (p *typeParser) eatPadded(prefix string) bool {
	start := p.pos
	p.space()
	if p.eat(prefix) {
		p.space()
		return true
	}
	p.pos = start
	return false
}

func (p *typeParser) space() {
	for p.pos < len(p.text) && (p.text[p.pos] == ' ' || p.text[p.pos] == '\t') {
		p.pos++
	}
}

// ty parses a union of one or more alternatives. Unions nest to the right.
func (p *typeParser) ty() (ast.Ty, *TypeError) {
	var alts []ast.Ty
	for {
		alt, err := p.suffixed()
		if err != nil {
			return nil, err
		}
		alts = append(alts, alt)
		if !p.eatPadded("|") {
			break
		}
	}

	ty := alts[len(alts)-1]
	for i := len(alts) - 2; i >= 0; i-- {
		ty = ast.Union{Left: alts[i], Right: ty}
	}
	return ty, nil
}

// suffixed parses an atom and its array suffixes.
func (p *typeParser) suffixed() (ast.Ty, *TypeError) {
	ty, err := p.atom()
	if err != nil {
		return nil, err
	}
	for p.eat("[]") {
		ty = ast.Array{Elem: ty}
	}
	return ty, nil
}

// enter records one more level of bracketed nesting. Every successful call
// must be paired with a call to leave.
func (p *typeParser) enter() *TypeError {
	if p.depth >= maxTypeDepth {
		return p.errorf("type expression is nested too deeply")
	}
	p.depth++
	return nil
}

func (p *typeParser) leave() {
	p.depth--
}

func (p *typeParser) atom() (ast.Ty, *TypeError) {
	switch r, _ := utf8.DecodeRuneInString(p.rest()); r {
	case '(':
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		p.pos++
		p.space()
		inner, err := p.ty()
		if err != nil {
			return nil, err
		}
		p.space()
		if !p.eat(")") {
			return nil, p.errorf("expected `)` to close parenthesized type")
		}
		return inner, nil

	case '{':
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		p.pos++
		entries, err := p.entries("}")
		if err != nil {
			return nil, err
		}
		return ast.Dict{Entries: entries}, nil

	case '\'', '"':
		text, err := p.quoted(p.text[p.pos])
		if err != nil {
			return nil, err
		}
		return ast.Member{Kind: ast.Literal, Text: text}, nil

	case '`':
		text, err := p.quoted('`')
		if err != nil {
			return nil, err
		}
		return ast.Member{Kind: ast.Ident, Text: text}, nil
	}

	name := p.name()
	switch name {
	case "":
		if p.pos == len(p.text) {
			return nil, p.errorf("expected a type")
		}
		r, _ := utf8.DecodeRuneInString(p.rest())
		return nil, p.errorf("expected a type, found %q", r)

	case "fun":
		if strings.HasPrefix(p.rest(), "(") {
			return p.fun()
		}

	case "table":
		return p.table()
	}

	if prim, ok := ast.PrimitiveByName(name); ok {
		return prim, nil
	}
	return ast.Ref(name), nil
}

// name consumes a run of name characters: letters, digits, and ._-.
func (p *typeParser) name() string {
	start := p.pos
	for p.pos < len(p.text) {
		r, n := utf8.DecodeRuneInString(p.rest())
		if !isTypeNameRune(r) {
			break
		}
		p.pos += n
	}
	return p.text[start:p.pos]
}

func isTypeNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-'
}

// quoted consumes a quoted string, returning its contents without quotes.
func (p *typeParser) quoted(quote byte) (string, *TypeError) {
	start := p.pos
	end := strings.IndexByte(p.text[start+1:], quote)
	if end < 0 {
		return "", p.errorf("missing closing %c", quote)
	}
	p.pos = start + 1 + end + 1
	return p.text[start+1 : start+1+end], nil
}

// fun parses the remainder of fun(params):returns, after the keyword.
func (p *typeParser) fun() (ast.Ty, *TypeError) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	p.pos++ // (
	params, err := p.entries(")")
	if err != nil {
		return nil, err
	}

	fun := ast.Fun{Params: params}
	mark := p.pos
	p.space()
	if !p.eat(":") {
		p.pos = mark
		return fun, nil
	}

	fun.Returns = []ast.Ty{}
	mark = p.pos
	p.space()
	if r, _ := utf8.DecodeRuneInString(p.rest()); !startsType(r) {
		p.pos = mark
		return fun, nil
	}
	for {
		ret, err := p.ty()
		if err != nil {
			return nil, err
		}
		fun.Returns = append(fun.Returns, ret)

		mark := p.pos
		if !p.eatPadded(",") {
			break
		}
		if r, _ := utf8.DecodeRuneInString(p.rest()); !startsType(r) {
			p.pos = mark
			break
		}
	}
	return fun, nil
}

// startsType reports whether a type expression can begin with r.
func startsType(r rune) bool {
	return isTypeNameRune(r) || strings.ContainsRune("({'\"`", r)
}

// table parses the optional <K, V> after the table keyword.
func (p *typeParser) table() (ast.Ty, *TypeError) {
	if !strings.HasPrefix(p.rest(), "<") {
		return ast.Table{}, nil
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	p.pos++

	p.space()
	key, err := p.ty()
	if err != nil {
		return nil, err
	}
	if !p.eatPadded(",") {
		return nil, p.errorf("expected `,` between table key and value types")
	}
	value, err := p.ty()
	if err != nil {
		return nil, err
	}
	p.space()
	if !p.eat(">") {
		return nil, p.errorf("expected `>` to close table type")
	}
	return ast.Table{Key: key, Value: value}, nil
}

// entries parses a comma-separated list of name[?][: type] entries up to the
// given closing delimiter. A trailing comma is allowed; an entry without a
// type is any.
func (p *typeParser) entries(closer string) ([]ast.Entry, *TypeError) {
	var entries []ast.Entry
	for {
		p.space()
		if p.eat(closer) {
			return entries, nil
		}
		if len(entries) > 0 {
			if !p.eat(",") {
				return nil, p.errorf("expected `,` or `%s`", closer)
			}
			p.space()
			if p.eat(closer) {
				return entries, nil
			}
		}

		var name ast.Name
		if n := unicodex.IdentPrefix(p.rest()); n > 0 {
			name.Text = p.rest()[:n]
			p.pos += n
		} else if p.eat("...") {
			name.Text = "..."
		} else {
			return nil, p.errorf("expected a name or `%s`", closer)
		}
		name.Optional = p.eat("?")

		var ty ast.Ty = ast.Any
		if p.eatPadded(":") {
			var err *TypeError
			if ty, err = p.ty(); err != nil {
				return nil, err
			}
		}
		entries = append(entries, ast.Entry{Name: name, Ty: ty})
	}
}
