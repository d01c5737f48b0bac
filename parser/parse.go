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

	"github.com/bufbuild/emmydoc/ast"
	"github.com/bufbuild/emmydoc/report"
	"github.com/bufbuild/emmydoc/source"
	"github.com/bufbuild/emmydoc/token"
)

// Parse groups a token stream into documentation nodes.
//
// When no node can start at some token, that one token is skipped and
// parsing resumes with the next. Skipped annotations are reported to r as
// warnings; skipped comments and declarations are not, since most Lua code is
// not documented.
func Parse(stream *token.Stream, r *report.Report) []ast.Node {
	p := &parser{Stream: stream, Report: r}

	var nodes []ast.Node
	for p.cursor < p.Len() {
		if node := p.node(); node != nil {
			nodes = append(nodes, node)
			continue
		}
		p.skip()
	}
	return nodes
}

// parser is a backtracking parser over a token stream.
type parser struct {
	*token.Stream
	*report.Report

	cursor int
}

// node parses the node starting at the cursor, or returns nil without moving
// the cursor.
func (p *parser) node() ast.Node {
	start := p.cursor
	for _, parse := range []func() ast.Node{
		p.single,
		p.brief,
		p.function,
		p.class,
		p.alias,
		p.typ,
	} {
		if node := parse(); node != nil {
			return node
		}
		p.cursor = start
	}
	return nil
}

// skip steps over one token that could not be parsed.
func (p *parser) skip() {
	tok := p.Tokens[p.cursor]
	p.cursor++

	switch tok.Token.(type) {
	case token.Comment, token.Skip, token.Func, token.Expr:
	default:
		p.Warn(&errDangling{tok: tok})
	}
}

// take consumes the token at the cursor if it is a T.
func take[T token.Token](p *parser) (T, bool) {
	var zero T
	if p.cursor >= p.Len() {
		return zero, false
	}
	tok, ok := p.Tokens[p.cursor].Token.(T)
	if ok {
		p.cursor++
	}
	return tok, ok
}

// spanFrom returns the span of the tokens from start to the cursor.
func (p *parser) spanFrom(start int) source.Span {
	return source.Join(p.Tokens[start].Span, p.Tokens[p.cursor-1].Span)
}

// single parses the nodes made of exactly one token.
func (p *parser) single() ast.Node {
	start := p.cursor
	tok := p.Tokens[start]
	p.cursor++

	switch tok := tok.Token.(type) {
	case token.Module:
		return &ast.Module{Name: tok.Name, Desc: tok.Desc, At: p.spanFrom(start)}
	case token.Divider:
		return &ast.Divider{Char: tok.Char, At: p.spanFrom(start)}
	case token.Tag:
		return &ast.Tag{Name: tok.Name, At: p.spanFrom(start)}
	case token.Export:
		return &ast.Export{Name: tok.Name, At: p.spanFrom(start)}
	case token.Toc:
		return &ast.Toc{Name: tok.Name, At: p.spanFrom(start)}
	default:
		return nil
	}
}

// brief parses ---@brief [[ ... ---@brief ]].
func (p *parser) brief() ast.Node {
	start := p.cursor
	if _, ok := take[token.BriefStart](p); !ok {
		return nil
	}
	lines := p.comments()
	if _, ok := take[token.BriefEnd](p); !ok {
		return nil
	}
	return &ast.Brief{Lines: lines, At: p.spanFrom(start)}
}

// function parses a documented function:
//
//	comment* (param comment*)* (return comment*)* see* usage? function
func (p *parser) function() ast.Node {
	start := p.cursor
	node := &ast.Func{Desc: p.comments()}

	for {
		param, ok := take[token.Param](p)
		if !ok {
			break
		}
		node.Params = append(node.Params, ast.Param{
			Name: param.Name,
			Ty:   param.Ty,
			Desc: withInline(param.Desc, p.comments()),
		})
	}
	for {
		ret, ok := take[token.Return](p)
		if !ok {
			break
		}
		node.Returns = append(node.Returns, ast.Return{
			Ty:   ret.Ty,
			Name: ret.Name,
			Desc: withInline(ret.Desc, p.comments()),
		})
	}
	node.See = p.see()
	node.Usage = p.usage()

	decl, ok := take[token.Func](p)
	if !ok {
		return nil
	}
	node.Prefix, node.Path, node.Kind = declared(decl.Decl)
	node.At = p.spanFrom(start)
	return node
}

// class parses a class and its fields:
//
//	comment* class (comment* field)* see*
func (p *parser) class() ast.Node {
	start := p.cursor
	desc := p.comments()
	class, ok := take[token.Class](p)
	if !ok {
		return nil
	}

	node := &ast.Class{
		Name:   class.Name,
		Parent: class.Parent,
		Desc:   appendInline(desc, class.Desc),
		Prefix: ast.NewPrefix(""),
	}
	for {
		mark := p.cursor
		lead := p.comments()
		field, ok := take[token.Field](p)
		if !ok {
			p.cursor = mark
			break
		}
		node.Fields = append(node.Fields, ast.Field{
			Scope: field.Scope,
			Name:  field.Name,
			Ty:    field.Ty,
			Desc:  withInline(field.Desc, lead),
		})
	}
	node.See = p.see()
	node.At = p.spanFrom(start)
	return node
}

// alias parses a type alias, or an enum alias and its variants:
//
//	comment* alias
//	comment* alias variant*
func (p *parser) alias() ast.Node {
	start := p.cursor
	desc := p.comments()
	alias, ok := take[token.Alias](p)
	if !ok {
		return nil
	}

	node := &ast.Alias{
		Name:   alias.Name,
		Desc:   appendInline(desc, alias.Desc),
		Kind:   ast.TypeAlias,
		Ty:     alias.Ty,
		Prefix: ast.NewPrefix(""),
	}
	if alias.Ty == nil {
		node.Kind = ast.EnumAlias
		for {
			variant, ok := take[token.Variant](p)
			if !ok {
				break
			}
			node.Variants = append(node.Variants, ast.Variant{Member: variant.Member, Desc: variant.Desc})
		}
	}
	node.At = p.spanFrom(start)
	return node
}

// typ parses a documented value:
//
//	comment* type see* usage? assignment
func (p *parser) typ() ast.Node {
	start := p.cursor
	desc := p.comments()
	ty, ok := take[token.Type](p)
	if !ok {
		return nil
	}

	node := &ast.Type{
		Desc:   desc,
		Inline: ty.Desc,
		Ty:     ty.Ty,
		See:    p.see(),
		Usage:  p.usage(),
	}
	expr, ok := take[token.Expr](p)
	if !ok {
		return nil
	}
	node.Prefix, node.Path, node.Kind = declared(expr.Decl)
	node.At = p.spanFrom(start)
	return node
}

// comments consumes a run of plain comments.
func (p *parser) comments() []string {
	var lines []string
	for {
		c, ok := take[token.Comment](p)
		if !ok {
			return lines
		}
		lines = append(lines, c.Text)
	}
}

// see consumes a run of ---@see tags.
func (p *parser) see() ast.See {
	var see ast.See
	for {
		tok, ok := take[token.See](p)
		if !ok {
			return see
		}
		see.Refs = append(see.Refs, tok.Ref)
	}
}

// usage consumes an inline ---@usage or a usage block, if present.
func (p *parser) usage() *ast.Usage {
	if tok, ok := take[token.Usage](p); ok {
		return &ast.Usage{Lang: tok.Lang, Code: tok.Code}
	}

	mark := p.cursor
	open, ok := take[token.UsageStart](p)
	if !ok {
		return nil
	}
	code := p.comments()
	if _, ok := take[token.UsageEnd](p); !ok {
		p.cursor = mark
		return nil
	}
	return &ast.Usage{Lang: open.Lang, Code: strings.Join(code, "\n")}
}

// declared converts a declaration into the name of a node. Unqualified
// names become a single-segment path with no prefix.
func declared(decl token.Decl) (ast.Prefix, ast.Path, ast.Kind) {
	if decl.Prefix == "" {
		return ast.NewPrefix(""), ast.Path{{Sep: '.', Name: decl.Name}}, decl.Kind
	}
	return ast.NewPrefix(decl.Prefix), decl.Path, decl.Kind
}

// withInline returns a description made of an inline description, if any,
// followed by continuation lines.
func withInline(inline string, lines []string) []string {
	if inline == "" {
		return lines
	}
	return append([]string{inline}, lines...)
}

// appendInline appends an inline description, if any, to leading lines.
func appendInline(lines []string, inline string) []string {
	if inline == "" {
		return lines
	}
	return append(lines, inline)
}
