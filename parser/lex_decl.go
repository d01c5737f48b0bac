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
	"strings"
	"unicode/utf8"

	"github.com/bufbuild/emmydoc/ast"
	"github.com/bufbuild/emmydoc/internal/ext/unicodex"
	"github.com/bufbuild/emmydoc/token"
)

// decl lexes the Lua declaration, if any, that a code line starts with:
//
//	function a.b.c()       function a.b:c()       function f()
//	local function f()     local x = ...
//	a.b = function()       a.b = ...
//	return M               (only as the last thing in the file)
//
// Any other code line becomes a [token.Skip], so that annotations only
// document the declaration directly below them.
func (l *lexer) decl() {
	n := l.Len()
	defer func() {
		if l.Len() == n {
			l.push(token.Skip{})
		}
	}()

	switch {
	case l.keyword("function"):
		l.function()

	case l.keyword("local"):
		if l.keyword("function") {
			if name := l.ident(); name != "" {
				l.push(token.Func{Decl: token.Decl{Kind: ast.Local, Name: name}})
			}
			return
		}
		if name := l.ident(); name != "" {
			l.spaces()
			if l.assign() {
				l.push(token.Expr{Decl: token.Decl{Kind: ast.Local, Name: name}})
			}
		}

	case l.keyword("return"):
		name := l.ident()
		if name != "" && l.done() && strings.TrimSpace(l.File.Text()[l.lineEnd:]) == "" {
			l.push(token.Export{Name: name})
		}

	default:
		l.assignment()
	}
}

// function lexes the name of a function statement, after the keyword.
func (l *lexer) function() {
	first := l.ident()
	if first == "" {
		return
	}
	path, ok := l.path()
	if !ok {
		return
	}
	if l.eat(":") {
		name := l.ident()
		if name == "" {
			return
		}
		path = append(path, ast.Segment{Sep: ':', Name: name})
	}
	l.spaces()
	if !l.eat("(") {
		return
	}

	decl := token.Decl{Kind: ast.Dot, Name: first}
	if len(path) > 0 {
		decl = token.Decl{Prefix: first, Path: path, Kind: ast.Dot}
		if path[len(path)-1].Sep == ':' {
			decl.Kind = ast.Colon
		}
	}
	l.push(token.Func{Decl: decl})
}

// assignment lexes a.b = function or a.b = <expr>. Assignments to bare
// names are not declarations.
func (l *lexer) assignment() {
	first := l.ident()
	if first == "" {
		return
	}
	path, ok := l.path()
	if !ok || len(path) == 0 {
		return
	}
	l.spaces()
	if !l.assign() {
		return
	}
	l.spaces()

	decl := token.Decl{Prefix: first, Path: path, Kind: ast.Dot}
	if l.keyword("function") {
		l.push(token.Func{Decl: decl})
	} else {
		l.push(token.Expr{Decl: decl})
	}
}

// path consumes zero or more .name segments.
func (l *lexer) path() (ast.Path, bool) {
	var path ast.Path
	for l.eat(".") {
		name := l.ident()
		if name == "" {
			return nil, false
		}
		path = append(path, ast.Segment{Sep: '.', Name: name})
	}
	return path, true
}

// keyword consumes kw and any whitespace after it, provided kw is not just
// the start of a longer identifier.
func (l *lexer) keyword(kw string) bool {
	rest := l.rest()
	if !strings.HasPrefix(rest, kw) {
		return false
	}
	if r, _ := utf8.DecodeRuneInString(rest[len(kw):]); len(rest) > len(kw) && unicodex.IsXIDContinue(r) {
		return false
	}
	l.cursor += len(kw)
	l.spaces()
	return true
}

// assign consumes a single =.
func (l *lexer) assign() bool {
	if strings.HasPrefix(l.rest(), "==") {
		return false
	}
	return l.eat("=")
}

// push appends a token spanning the current line.
func (l *lexer) push(tok token.Token) {
	l.Push(tok, l.start, l.lineEnd)
}
