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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/emmydoc/ast"
	"github.com/bufbuild/emmydoc/report"
	"github.com/bufbuild/emmydoc/source"
	"github.com/bufbuild/emmydoc/token"
)

func lexString(t *testing.T, text string) (*token.Stream, *report.Report) {
	t.Helper()
	r := new(report.Report)
	return Lex(source.NewFile("test.lua", text), r), r
}

func dot(names ...string) ast.Path {
	var path ast.Path
	for _, name := range names {
		path = append(path, ast.Segment{Sep: '.', Name: name})
	}
	return path
}

func TestLex(t *testing.T) {
	t.Parallel()

	lit := func(s string) ast.Member { return ast.Member{Kind: ast.Literal, Text: s} }

	tests := []struct {
		name, text string
		want       []token.Token
	}{
		{
			name: "mod",
			text: "---@mod mymod Some module",
			want: []token.Token{token.Module{Name: "mymod", Desc: "Some module"}},
		},
		{
			name: "brief",
			text: "---@brief [[\n---hello\n---\n---@param not a tag\n---@brief ]]",
			want: []token.Token{
				token.BriefStart{},
				token.Comment{Text: "hello"},
				token.Comment{Text: ""},
				token.Comment{Text: "@param not a tag"},
				token.BriefEnd{},
			},
		},
		{
			name: "simple",
			text: "---@divider =\n---@toc my.toc\n---@tag foo.bar()\n---@export M",
			want: []token.Token{
				token.Divider{Char: '='},
				token.Toc{Name: "my.toc"},
				token.Tag{Name: "foo.bar()"},
				token.Export{Name: "M"},
			},
		},
		{
			name: "param",
			text: "---@param a number\n---@param b? string|nil  The b\n  ---@param ... any",
			want: []token.Token{
				token.Param{Name: ast.Req("a"), Ty: ast.Number},
				token.Param{Name: ast.Opt("b"), Ty: ast.Union{Left: ast.String, Right: ast.Nil}, Desc: "The b"},
				token.Param{Name: ast.Req("..."), Ty: ast.Any},
			},
		},
		{
			name: "return",
			text: "---@return number\n" +
				"---@return boolean ok Whether it worked\n" +
				"---@return string # the name\n" +
				"---@return string the, name",
			want: []token.Token{
				token.Return{Ty: ast.Number},
				token.Return{Ty: ast.Boolean, Name: "ok", Desc: "Whether it worked"},
				token.Return{Ty: ast.String, Desc: "the name"},
				token.Return{Ty: ast.String, Desc: "the, name"},
			},
		},
		{
			name: "class",
			text: "---@class Foo\n---@class (exact) Human: Being The human",
			want: []token.Token{
				token.Class{Name: "Foo"},
				token.Class{Name: "Human", Parent: "Being", Desc: "The human"},
			},
		},
		{
			name: "field",
			text: "---@field name string\n---@field private secret? table<string,any> Hidden",
			want: []token.Token{
				token.Field{Scope: ast.Public, Name: ast.Req("name"), Ty: ast.String},
				token.Field{
					Scope: ast.Private,
					Name:  ast.Opt("secret"),
					Ty:    ast.Table{Key: ast.String, Value: ast.Any},
					Desc:  "Hidden",
				},
			},
		},
		{
			name: "alias",
			text: "---@alias Mode 'a'|'b'\n" +
				"---@alias Color\n" +
				"---| 'red' # The red\n" +
				"---| `vim.log.levels.INFO` info\n" +
				"---|'x'\n" +
				"---| not a variant",
			want: []token.Token{
				token.Alias{Name: "Mode", Ty: ast.Union{Left: lit("a"), Right: lit("b")}},
				token.Alias{Name: "Color"},
				token.Variant{Member: lit("red"), Desc: "The red"},
				token.Variant{Member: ast.Member{Kind: ast.Ident, Text: "vim.log.levels.INFO"}, Desc: "info"},
				token.Variant{Member: lit("x")},
				token.Comment{Text: "| not a variant"},
			},
		},
		{
			name: "type",
			text: "---@type table<string, integer> The table\n---@see other.func",
			want: []token.Token{
				token.Type{Ty: ast.Table{Key: ast.String, Value: ast.Integer}, Desc: "The table"},
				token.See{Ref: "other.func"},
			},
		},
		{
			name: "usage",
			text: "---@usage `require('x').setup()`\n" +
				"---@usage vim `:help x`\n" +
				"---@usage lua [[\n" +
				"---local x = 1\n" +
				"---@usage ]]",
			want: []token.Token{
				token.Usage{Code: "require('x').setup()"},
				token.Usage{Lang: "vim", Code: ":help x"},
				token.UsageStart{Lang: "lua"},
				token.Comment{Text: "local x = 1"},
				token.UsageEnd{},
			},
		},
		{
			name: "comments",
			text: "---Add two numbers\n--- indented  \n---\n-- not a doc comment\n---@public\n---@diagnostic disable",
			want: []token.Token{
				token.Comment{Text: "Add two numbers"},
				token.Comment{Text: " indented"},
				token.Comment{Text: ""},
			},
		},
		{
			name: "functions",
			text: "function U.sum(a, b) return a + b end\n" +
				"function U.a.b:c()\n" +
				"function setup()\n" +
				"local function helper(x)\n" +
				"U.x = function(a)",
			want: []token.Token{
				token.Func{Decl: token.Decl{Prefix: "U", Path: dot("sum"), Kind: ast.Dot}},
				token.Func{Decl: token.Decl{
					Prefix: "U",
					Path:   append(dot("a", "b"), ast.Segment{Sep: ':', Name: "c"}),
					Kind:   ast.Colon,
				}},
				token.Func{Decl: token.Decl{Kind: ast.Dot, Name: "setup"}},
				token.Func{Decl: token.Decl{Kind: ast.Local, Name: "helper"}},
				token.Func{Decl: token.Decl{Prefix: "U", Path: dot("x"), Kind: ast.Dot}},
			},
		},
		{
			name: "assignments",
			text: "U.config = {}\nlocal M = {}\nfunctional.x = 1\nx = 1\nM.x == 1",
			want: []token.Token{
				token.Expr{Decl: token.Decl{Prefix: "U", Path: dot("config"), Kind: ast.Dot}},
				token.Expr{Decl: token.Decl{Kind: ast.Local, Name: "M"}},
				token.Expr{Decl: token.Decl{Prefix: "functional", Path: dot("x"), Kind: ast.Dot}},
				token.Skip{},
				token.Skip{},
			},
		},
		{
			name: "export",
			text: "return {}\nreturn M\nlocal x = 1\nreturn x\n\n  \n",
			want: []token.Token{
				token.Skip{},
				token.Skip{},
				token.Expr{Decl: token.Decl{Kind: ast.Local, Name: "x"}},
				token.Export{Name: "x"},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			stream, r := lexString(t, test.text)
			assert.False(t, r.HasErrors())
			assert.Equal(t, test.want, stream.Kinds())
		})
	}
}

func TestLexErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, text string
		want       []token.Token

		level        report.Level
		msg          string
		line, column int
	}{
		{
			name:  "missing-type",
			text:  "---@param a",
			want:  []token.Token{token.Skip{}},
			level: report.Error,
			msg:   "malformed `@param` annotation",
			line:  1, column: 12,
		},
		{
			name:  "bad-type",
			text:  "---@param a strin|",
			want:  []token.Token{token.Skip{}},
			level: report.Error,
			msg:   "malformed `@param` annotation",
			line:  1, column: 19,
		},
		{
			name:  "bad-brief",
			text:  "---@brief {{",
			want:  []token.Token{token.Skip{}},
			level: report.Error,
			msg:   "malformed `@brief` annotation",
			line:  1, column: 11,
		},
		{
			name:  "unknown",
			text:  "---@frobnicate\n",
			level: report.Remark,
			msg:   "ignoring unrecognized annotation `@frobnicate`",
			line:  1, column: 4,
		},
		{
			name: "interrupted-block",
			text: "---@brief [[\n---text\nlocal x = 1",
			want: []token.Token{
				token.BriefStart{},
				token.Comment{Text: "text"},
				token.Expr{Decl: token.Decl{Kind: ast.Local, Name: "x"}},
			},
			level: report.Error,
			msg:   "unclosed `@brief` block",
			line:  3, column: 1,
		},
		{
			name:  "unclosed-block",
			text:  "---@usage [[\n---x",
			want:  []token.Token{token.UsageStart{}, token.Comment{Text: "x"}},
			level: report.Error,
			msg:   "unclosed `@usage` block",
			line:  2, column: 5,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			stream, r := lexString(t, test.text)
			if test.want == nil {
				assert.Empty(t, stream.Tokens)
			} else {
				assert.Equal(t, test.want, stream.Kinds())
			}

			require.Len(t, r.Diagnostics, 1)
			d := &r.Diagnostics[0]
			assert.Equal(t, test.level, d.Level())
			assert.Equal(t, test.msg, d.Message())

			loc := d.Primary().StartLoc()
			assert.Equal(t, test.line, loc.Line)
			assert.Equal(t, test.column, loc.Column)
		})
	}
}

func TestLexPrivate(t *testing.T) {
	t.Parallel()

	t.Run("before", func(t *testing.T) {
		t.Parallel()

		text := "---@private\n" +
			"---Hidden\n" +
			"---@param x number\n" +
			"function U.f(x) end\n" +
			"\n" +
			"---Shown\n" +
			"function U.g() end\n" +
			"return U\n"
		stream, r := lexString(t, text)
		assert.Empty(t, r.Diagnostics)
		assert.Equal(t, []token.Token{
			token.Skip{},
			token.Comment{Text: "Shown"},
			token.Func{Decl: token.Decl{Prefix: "U", Path: dot("g"), Kind: ast.Dot}},
			token.Export{Name: "U"},
		}, stream.Kinds())
		assert.Equal(t, "---@private\n---Hidden\n---@param x number\nfunction U.f(x) end", stream.Tokens[0].Text())
	})

	t.Run("after", func(t *testing.T) {
		t.Parallel()

		text := "---@mod x\n" +
			"---Hidden\n" +
			"---@param x number\n" +
			"---@private\n" +
			"function U.f(x) end\n" +
			"function U.g() end\n"
		stream, _ := lexString(t, text)
		assert.Equal(t, []token.Token{
			token.Module{Name: "x"},
			token.Skip{},
			token.Func{Decl: token.Decl{Prefix: "U", Path: dot("g"), Kind: ast.Dot}},
		}, stream.Kinds())
		assert.Equal(t, "---Hidden\n---@param x number\n---@private\nfunction U.f(x) end", stream.Tokens[1].Text())
	})

	t.Run("eof", func(t *testing.T) {
		t.Parallel()

		stream, _ := lexString(t, "---@package\n---Hidden\n")
		assert.Equal(t, []token.Token{token.Skip{}}, stream.Kinds())
	})
}

func TestLexSpans(t *testing.T) {
	t.Parallel()

	stream, _ := lexString(t, "local U = {}\n\n  ---@param a number  \r\nfunction U.f(a) end\n")
	require.Equal(t, 3, stream.Len())

	param := stream.Tokens[1]
	assert.Equal(t, "---@param a number", param.Text())
	assert.Equal(t, source.Location{Offset: 16, Line: 3, Column: 3}, param.StartLoc())

	fn := stream.Tokens[2]
	assert.Equal(t, "function U.f(a) end", fn.Text())
	assert.Equal(t, 4, fn.StartLoc().Line)
}
