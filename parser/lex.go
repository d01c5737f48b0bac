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
	"unicode"
	"unicode/utf8"

	"github.com/bufbuild/emmydoc/report"
	"github.com/bufbuild/emmydoc/source"
	"github.com/bufbuild/emmydoc/token"
)

// Lex breaks a Lua file into annotation and declaration tokens.
//
// Lexing is line oriented. Each ---@tag occupies exactly one line, and a code
// line can only produce a declaration token from its leading text; everything
// else in a code line is ignored. Malformed tags are reported to r as errors
// and leave a [token.Skip] in their place.
func Lex(file *source.File, r *report.Report) *token.Stream {
	l := &lexer{
		Stream: &token.Stream{File: file},
		Report: r,
	}
	l.lex()
	return l.Stream
}

// block is a verbatim region opened by ---@brief [[ or ---@usage [[.
type block int8

const (
	noBlock block = iota
	briefBlock
	usageBlock
)

func (b block) tag() string {
	if b == briefBlock {
		return "brief"
	}
	return "usage"
}

// lexer is an annotation lexer.
type lexer struct {
	*token.Stream // Embedded so we don't have to write l.Stream everywhere.
	*report.Report

	// Bounds of the current line, excluding its line terminator and any
	// trailing whitespace. start is the first non-blank byte.
	start, lineEnd int
	cursor         int

	// The verbatim block the current line is in, and the tag that opened it.
	block   block
	blockAt source.Span

	// Set by a private marker. Annotation lines are swallowed until the next
	// code line, which is swallowed as well.
	hiding    bool
	hideStart int

	// Index of the first token lexed from the current run of consecutive
	// annotation lines.
	run int
}

func (l *lexer) lex() {
	text := l.File.Text()
	for offset := 0; offset < len(text); {
		end := len(text)
		next := end
		if nl := strings.IndexByte(text[offset:], '\n'); nl >= 0 {
			end = offset + nl
			next = end + 1
		}

		line := text[offset:end]
		l.lineEnd = offset + len(strings.TrimRightFunc(line, unicode.IsSpace))
		l.start = offset + len(line) - len(strings.TrimLeft(line, " \t"))
		l.start = min(l.start, l.lineEnd)
		l.cursor = l.start
		l.line()

		offset = next
	}

	if l.block != noBlock {
		l.Error(&errUnclosedBlock{block: l.block, opened: l.blockAt, at: l.File.EOF()})
	}
	if l.hiding {
		l.Push(token.Skip{}, l.hideStart, len(text))
	}
}

// line lexes the line at l.start.
func (l *lexer) line() {
	isDoc := strings.HasPrefix(l.rest(), "---")
	isComment := strings.HasPrefix(l.rest(), "--")
	switch {
	case l.block != noBlock:
		if isDoc {
			l.verbatim()
			return
		}
		if l.done() {
			return
		}
		l.Error(&errUnclosedBlock{block: l.block, opened: l.blockAt, at: l.File.Span(l.start, l.lineEnd)})
		l.block = noBlock
		l.line()

	case l.hiding:
		if isComment || l.done() {
			return
		}
		l.hiding = false
		l.Push(token.Skip{}, l.hideStart, l.lineEnd)
		l.run = l.Len()

	case isDoc:
		l.cursor += len("---")
		switch l.peek() {
		case '@':
			l.tag()
		case '|':
			l.variant()
		default:
			l.comment()
		}

	case isComment, l.done():
		// Ordinary comments and blank lines do not separate an annotation
		// from what it documents.

	default:
		l.run = l.Len()
		l.decl()
	}
}

// comment pushes the rest of the line as a plain comment.
func (l *lexer) comment() {
	l.Push(token.Comment{Text: l.rest()}, l.start, l.lineEnd)
}

// verbatim lexes a line inside a brief or usage block. Every line is a
// comment except for the one that closes the block.
func (l *lexer) verbatim() {
	l.cursor += len("---")
	mark := l.cursor
	if l.eat("@") && l.eat(l.block.tag()) && l.spaces() && l.eat("]]") && l.done() {
		if l.block == briefBlock {
			l.Push(token.BriefEnd{}, l.start, l.lineEnd)
		} else {
			l.Push(token.UsageEnd{}, l.start, l.lineEnd)
		}
		l.block = noBlock
		return
	}
	l.cursor = mark
	l.comment()
}

// hide starts swallowing the declaration that follows a private marker,
// along with whatever of its documentation was already lexed.
func (l *lexer) hide() {
	l.hiding = true
	l.hideStart = l.start

	i := l.Len()
	for i > l.run && attachesToFunc(l.Tokens[i-1].Token) {
		i--
	}
	if i < l.Len() {
		l.hideStart = l.Tokens[i].Start
		l.Tokens = l.Tokens[:i]
	}
}

// attachesToFunc returns whether tok can only be part of the documentation
// of the declaration that follows it.
func attachesToFunc(tok token.Token) bool {
	switch tok.(type) {
	case token.Comment, token.Param, token.Return, token.See,
		token.Usage, token.UsageStart, token.UsageEnd, token.Type:
		return true
	default:
		return false
	}
}

// rest returns the unlexed part of the current line.
func (l *lexer) rest() string {
	return l.File.Text()[l.cursor:l.lineEnd]
}

// done returns whether the current line has been fully consumed.
func (l *lexer) done() bool {
	return l.cursor >= l.lineEnd
}

// peek returns the next rune on the line, or -1 at the end of the line.
func (l *lexer) peek() rune {
	if l.done() {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.rest())
	return r
}

// eat consumes prefix if the rest of the line starts with it.
func (l *lexer) eat(prefix string) bool {
	if strings.HasPrefix(l.rest(), prefix) {
		l.cursor += len(prefix)
		return true
	}
	return false
}

// spaces consumes horizontal whitespace, returning whether there was any.
func (l *lexer) spaces() bool {
	start := l.cursor
	l.takeWhile(func(r rune) bool { return r == ' ' || r == '\t' })
	return l.cursor > start
}

// takeWhile consumes runes while they match f. Returns the consumed text.
func (l *lexer) takeWhile(f func(rune) bool) string {
	start := l.cursor
	for !l.done() {
		r, n := utf8.DecodeRuneInString(l.rest())
		if !f(r) {
			break
		}
		l.cursor += n
	}
	return l.File.Text()[start:l.cursor]
}

// word consumes a run of non-whitespace.
func (l *lexer) word() string {
	return l.takeWhile(func(r rune) bool { return !unicode.IsSpace(r) })
}
