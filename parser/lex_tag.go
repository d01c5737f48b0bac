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

	"github.com/bufbuild/emmydoc/ast"
	"github.com/bufbuild/emmydoc/internal/ext/unicodex"
	"github.com/bufbuild/emmydoc/source"
	"github.com/bufbuild/emmydoc/token"
)

// tagSyntax is the accepted form of each tag, shown when one is malformed.
var tagSyntax = map[string]string{
	"mod":     "---@mod <name> [description]",
	"brief":   "---@brief [[ and ---@brief ]]",
	"divider": "---@divider <char>",
	"toc":     "---@toc <name>",
	"param":   "---@param <name>[?] <type> [description]",
	"return":  "---@return <type> [<name> [description] | # <description>]",
	"class":   "---@class [(exact)] <name>[: <parent>] [description]",
	"field":   "---@field [public|protected|private|package] <name>[?] <type> [description]",
	"alias":   "---@alias <name> [<type> [description]]",
	"type":    "---@type <type> [description]",
	"tag":     "---@tag <name>",
	"see":     "---@see <reference>",
	"usage":   "---@usage [lang] `<code>`, or ---@usage [lang] [[ and ---@usage ]]",
	"export":  "---@export <name>",
}

// tag lexes the annotation following ---.
func (l *lexer) tag() {
	at := l.cursor
	l.cursor++ // @
	name := l.takeWhile(func(r rune) bool { return unicode.IsLetter(r) || r == '_' })

	var (
		tok token.Token
		err *errTag
	)
	switch name {
	case "mod":
		tok, err = l.module()
	case "brief":
		tok, err = l.brief()
	case "divider":
		tok, err = l.divider()
	case "toc":
		tok, err = l.label("a table of contents name", func(s string) token.Token { return token.Toc{Name: s} })
	case "tag":
		tok, err = l.label("a tag name", func(s string) token.Token { return token.Tag{Name: s} })
	case "param":
		tok, err = l.param()
	case "return":
		tok, err = l.ret()
	case "class":
		tok, err = l.class()
	case "field":
		tok, err = l.field()
	case "alias":
		tok, err = l.alias()
	case "type":
		tok, err = l.typ()
	case "see":
		tok, err = l.see()
	case "usage":
		tok, err = l.usage()
	case "export":
		tok, err = l.export()
	case "private", "protected", "package":
		l.hide()
		return
	case "public":
		return
	default:
		l.Remark(&errUnknownTag{name: name, at: l.File.Span(at, l.cursor)})
		return
	}

	if err != nil {
		err.tag = name
		l.Error(err)
		tok = token.Skip{}
	}
	l.Push(tok, l.start, l.lineEnd)

	switch tok.(type) {
	case token.BriefStart:
		l.open(briefBlock)
	case token.UsageStart:
		l.open(usageBlock)
	}
}

// open enters a verbatim block opened by the token just pushed.
func (l *lexer) open(b block) {
	l.block = b
	l.blockAt = l.Tokens[l.Len()-1].Span
}

// variant lexes an enum variant line, ---| 'literal' [# desc]. Lines that do
// not look like one are plain comments.
func (l *lexer) variant() {
	mark := l.cursor
	l.cursor++ // |
	l.eat(">") // Default variant marker; carries no meaning here.
	l.spaces()

	quote := l.peek()
	if quote != '\'' && quote != '"' && quote != '`' {
		l.cursor = mark
		l.comment()
		return
	}
	end := strings.IndexRune(l.rest()[1:], quote)
	if end < 0 {
		l.cursor = mark
		l.comment()
		return
	}

	member := ast.Member{Kind: ast.Literal, Text: l.rest()[1 : 1+end]}
	if quote == '`' {
		member.Kind = ast.Ident
	}
	l.cursor += end + 2

	l.spaces()
	l.eat("#")
	l.spaces()
	l.Push(token.Variant{Member: member, Desc: l.takeRest()}, l.start, l.lineEnd)
}

func (l *lexer) module() (token.Token, *errTag) {
	if err := l.gap("a module name"); err != nil {
		return nil, err
	}
	name := l.word()
	desc, err := l.desc()
	if err != nil {
		return nil, err
	}
	return token.Module{Name: name, Desc: desc}, nil
}

func (l *lexer) brief() (token.Token, *errTag) {
	if err := l.gap("`[[` or `]]`"); err != nil {
		return nil, err
	}
	switch {
	case l.eat("[["):
		return l.finish(token.BriefStart{})
	case l.eat("]]"):
		return l.finish(token.BriefEnd{})
	default:
		return nil, l.expect("`[[` or `]]`")
	}
}

func (l *lexer) divider() (token.Token, *errTag) {
	if err := l.gap("a divider character"); err != nil {
		return nil, err
	}
	r, n := utf8.DecodeRuneInString(l.rest())
	l.cursor += n
	return l.finish(token.Divider{Char: r})
}

// label lexes a tag whose only argument is a single word.
func (l *lexer) label(want string, build func(string) token.Token) (token.Token, *errTag) {
	if err := l.gap(want); err != nil {
		return nil, err
	}
	return l.finish(build(l.word()))
}

func (l *lexer) param() (token.Token, *errTag) {
	if err := l.gap("a parameter name"); err != nil {
		return nil, err
	}
	var name ast.Name
	if l.eat("...") {
		name.Text = "..."
	} else if name.Text = l.ident(); name.Text == "" {
		return nil, l.expect("a parameter name")
	}
	name.Optional = l.eat("?")

	if err := l.gap("a type"); err != nil {
		return nil, err
	}
	ty, err := l.ty()
	if err != nil {
		return nil, err
	}
	desc, err := l.desc()
	if err != nil {
		return nil, err
	}
	return token.Param{Name: name, Ty: ty, Desc: desc}, nil
}

func (l *lexer) ret() (token.Token, *errTag) {
	if err := l.gap("a type"); err != nil {
		return nil, err
	}
	ty, err := l.ty()
	if err != nil {
		return nil, err
	}
	if l.done() {
		return token.Return{Ty: ty}, nil
	}
	if !l.spaces() {
		return nil, l.expect("whitespace after the type")
	}

	if l.eat("#") {
		l.spaces()
		return token.Return{Ty: ty, Desc: l.takeRest()}, nil
	}

	// A leading identifier names the value, but only if it stands alone.
	mark := l.cursor
	if name := l.ident(); name != "" && (l.done() || l.spaces()) {
		return token.Return{Ty: ty, Name: name, Desc: l.takeRest()}, nil
	}
	l.cursor = mark
	return token.Return{Ty: ty, Desc: l.takeRest()}, nil
}

func (l *lexer) class() (token.Token, *errTag) {
	if err := l.gap("a class name"); err != nil {
		return nil, err
	}
	if l.eat("(") {
		l.takeWhile(unicode.IsLetter)
		if !l.eat(")") {
			return nil, l.expect("`)` after the class attribute")
		}
		if err := l.gap("a class name"); err != nil {
			return nil, err
		}
	}

	name := l.takeWhile(isTypeNameRune)
	if name == "" {
		return nil, l.expect("a class name")
	}

	var parent string
	mark := l.cursor
	l.spaces()
	if l.eat(":") {
		l.spaces()
		if parent = l.takeWhile(isTypeNameRune); parent == "" {
			return nil, l.expect("a parent class name")
		}
	} else {
		l.cursor = mark
	}

	desc, err := l.desc()
	if err != nil {
		return nil, err
	}
	return token.Class{Name: name, Parent: parent, Desc: desc}, nil
}

func (l *lexer) field() (token.Token, *errTag) {
	if err := l.gap("a field name"); err != nil {
		return nil, err
	}

	scope := ast.Public
	mark := l.cursor
	if s, ok := ast.ScopeByName(l.ident()); ok && l.spaces() {
		scope = s
	} else {
		l.cursor = mark
	}

	name := ast.Name{Text: l.ident()}
	if name.Text == "" {
		return nil, l.expect("a field name")
	}
	name.Optional = l.eat("?")

	if err := l.gap("a type"); err != nil {
		return nil, err
	}
	ty, err := l.ty()
	if err != nil {
		return nil, err
	}
	desc, err := l.desc()
	if err != nil {
		return nil, err
	}
	return token.Field{Scope: scope, Name: name, Ty: ty, Desc: desc}, nil
}

func (l *lexer) alias() (token.Token, *errTag) {
	if err := l.gap("an alias name"); err != nil {
		return nil, err
	}
	name := l.takeWhile(isTypeNameRune)
	if name == "" {
		return nil, l.expect("an alias name")
	}
	if l.done() {
		return token.Alias{Name: name}, nil
	}
	if !l.spaces() {
		return nil, l.expect("whitespace after the alias name")
	}

	ty, err := l.ty()
	if err != nil {
		return nil, err
	}
	desc, err := l.desc()
	if err != nil {
		return nil, err
	}
	return token.Alias{Name: name, Ty: ty, Desc: desc}, nil
}

func (l *lexer) typ() (token.Token, *errTag) {
	if err := l.gap("a type"); err != nil {
		return nil, err
	}
	ty, err := l.ty()
	if err != nil {
		return nil, err
	}
	desc, err := l.desc()
	if err != nil {
		return nil, err
	}
	return token.Type{Ty: ty, Desc: desc}, nil
}

func (l *lexer) see() (token.Token, *errTag) {
	if err := l.gap("a reference"); err != nil {
		return nil, err
	}
	return token.See{Ref: l.takeRest()}, nil
}

func (l *lexer) usage() (token.Token, *errTag) {
	if err := l.gap("`[[`, `]]` or inline code"); err != nil {
		return nil, err
	}
	if l.eat("]]") {
		return l.finish(token.UsageEnd{})
	}

	lang := l.ident()
	if lang != "" && !l.spaces() {
		return nil, l.expect("whitespace after the language")
	}

	switch {
	case l.eat("[["):
		return l.finish(token.UsageStart{Lang: lang})
	case l.eat("`"):
		end := strings.LastIndexByte(l.rest(), '`')
		if end < 0 {
			l.cursor = l.lineEnd
			return nil, l.expect("a closing backtick")
		}
		code := l.rest()[:end]
		l.cursor += end + 1
		return l.finish(token.Usage{Lang: lang, Code: code})
	default:
		return nil, l.expect("`[[` or inline code")
	}
}

// export lexes ---@export <name>. Anything after the name is ignored.
func (l *lexer) export() (token.Token, *errTag) {
	if err := l.gap("a name"); err != nil {
		return nil, err
	}
	name := l.ident()
	if name == "" {
		return nil, l.expect("an identifier")
	}
	return token.Export{Name: name}, nil
}

// gap consumes the whitespace between two parts of a tag, which must be
// followed by something.
func (l *lexer) gap(want string) *errTag {
	if l.spaces() && !l.done() {
		return nil
	}
	return l.expect(want)
}

// ty consumes a type expression.
func (l *lexer) ty() (ast.Ty, *errTag) {
	ty, n, err := parseTypePrefix(l.rest())
	if err != nil {
		l.cursor += err.Offset
		return nil, &errTag{at: l.nextRune(), msg: err.Msg}
	}
	l.cursor += n
	return ty, nil
}

// desc consumes an optional description at the end of a tag.
func (l *lexer) desc() (string, *errTag) {
	if l.done() {
		return "", nil
	}
	if !l.spaces() {
		return "", l.expect("whitespace before the description")
	}
	return l.takeRest(), nil
}

// finish checks that nothing follows a complete tag.
func (l *lexer) finish(tok token.Token) (token.Token, *errTag) {
	if !l.done() {
		l.spaces()
		return nil, l.expect("end of line")
	}
	return tok, nil
}

// ident consumes an identifier, returning "" if there is none.
func (l *lexer) ident() string {
	n := unicodex.IdentPrefix(l.rest())
	l.cursor += n
	return l.File.Text()[l.cursor-n : l.cursor]
}

// takeRest consumes the rest of the line.
func (l *lexer) takeRest() string {
	rest := l.rest()
	l.cursor = l.lineEnd
	return rest
}

// expect builds an error for whatever is at the cursor.
func (l *lexer) expect(want string) *errTag {
	mark := l.cursor
	word := l.word()
	l.cursor = mark

	at := l.File.Span(l.cursor, l.cursor+len(word))
	if word == "" {
		at = l.nextRune()
	}
	return &errTag{at: at, msg: "expected " + want}
}

// nextRune returns the span of the rune at the cursor, which is empty at the
// end of the line.
func (l *lexer) nextRune() source.Span {
	_, n := utf8.DecodeRuneInString(l.rest())
	return l.File.Span(l.cursor, l.cursor+n)
}
