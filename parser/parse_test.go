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

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/emmydoc/ast"
	"github.com/bufbuild/emmydoc/report"
	"github.com/bufbuild/emmydoc/source"
)

func parseString(t *testing.T, text string) ([]ast.Node, *report.Report) {
	t.Helper()
	stream, r := lexString(t, text)
	require.False(t, r.HasErrors(), "lexing failed: %v", &report.AsError{Report: r})
	return Parse(stream, r), r
}

func assertNodes(t *testing.T, want, got []ast.Node) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.IgnoreTypes(source.Span{})); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFunc(t *testing.T) {
	t.Parallel()

	nodes, r := parseString(t, `local U = {}

---Add two numbers
---@param a number
---@param b number
---@return number
function U.sum(a, b)
  return a + b
end

return U
`)
	assert.Empty(t, r.Diagnostics)
	assertNodes(t, []ast.Node{
		&ast.Func{
			Prefix: ast.NewPrefix("U"),
			Path:   dot("sum"),
			Kind:   ast.Dot,
			Desc:   []string{"Add two numbers"},
			Params: []ast.Param{
				{Name: ast.Req("a"), Ty: ast.Number},
				{Name: ast.Req("b"), Ty: ast.Number},
			},
			Returns: []ast.Return{{Ty: ast.Number}},
		},
		&ast.Export{Name: "U"},
	}, nodes)

	assert.Equal(t,
		"---Add two numbers\n---@param a number\n---@param b number\n---@return number\nfunction U.sum(a, b)",
		nodes[0].Span().Text(),
	)
}

func TestParseDescriptions(t *testing.T) {
	t.Parallel()

	nodes, r := parseString(t, `---Adds
---@param a number The first
---  continued
---@param b string
---@return number sum The sum
---@return string # extra
---  more
---@see U.sub
---@see U.mul
---@usage lua [[
---U:add(1, 2)
---@usage ]]
function U:add(a, b) end
local function helper() end
`)
	assert.Empty(t, r.Diagnostics)
	assertNodes(t, []ast.Node{
		&ast.Func{
			Prefix: ast.NewPrefix("U"),
			Path:   ast.Path{{Sep: ':', Name: "add"}},
			Kind:   ast.Colon,
			Desc:   []string{"Adds"},
			Params: []ast.Param{
				{Name: ast.Req("a"), Ty: ast.Number, Desc: []string{"The first", "  continued"}},
				{Name: ast.Req("b"), Ty: ast.String},
			},
			Returns: []ast.Return{
				{Ty: ast.Number, Name: "sum", Desc: []string{"The sum"}},
				{Ty: ast.String, Desc: []string{"extra", "  more"}},
			},
			See:   ast.See{Refs: []string{"U.sub", "U.mul"}},
			Usage: &ast.Usage{Lang: "lua", Code: "U:add(1, 2)"},
		},
		&ast.Func{
			Prefix: ast.NewPrefix(""),
			Path:   dot("helper"),
			Kind:   ast.Local,
		},
	}, nodes)
}

func TestParseUsage(t *testing.T) {
	t.Parallel()

	nodes, _ := parseString(t, `---Greets
---@usage lua [[
---M.greet()
---M.greet("x")
---@usage ]]
function M.greet(name) end
`)
	assertNodes(t, []ast.Node{
		&ast.Func{
			Prefix: ast.NewPrefix("M"),
			Path:   dot("greet"),
			Kind:   ast.Dot,
			Desc:   []string{"Greets"},
			Usage:  &ast.Usage{Lang: "lua", Code: "M.greet()\nM.greet(\"x\")"},
		},
	}, nodes)
}

func TestParseClass(t *testing.T) {
	t.Parallel()

	nodes, r := parseString(t, `---A user
---@class User: Base
---The name
---@field name string
---@field private id integer Identifier
---@field email? string Email address
---@see Base
local User = {}
`)
	assert.Empty(t, r.Diagnostics)
	assertNodes(t, []ast.Node{
		&ast.Class{
			Name:   "User",
			Parent: "Base",
			Desc:   []string{"A user"},
			Fields: []ast.Field{
				{Scope: ast.Public, Name: ast.Req("name"), Ty: ast.String, Desc: []string{"The name"}},
				{Scope: ast.Private, Name: ast.Req("id"), Ty: ast.Integer, Desc: []string{"Identifier"}},
				{Scope: ast.Public, Name: ast.Opt("email"), Ty: ast.String, Desc: []string{"Email address"}},
			},
			See:    ast.See{Refs: []string{"Base"}},
			Prefix: ast.NewPrefix(""),
		},
	}, nodes)
}

func TestParseAlias(t *testing.T) {
	t.Parallel()

	lit := func(s string) ast.Member { return ast.Member{Kind: ast.Literal, Text: s} }

	nodes, _ := parseString(t, `---Mode of operation
---@alias Mode 'a'|'b'

---@alias Color Colors we know
`)
	assertNodes(t, []ast.Node{
		&ast.Alias{
			Name:   "Mode",
			Desc:   []string{"Mode of operation"},
			Kind:   ast.TypeAlias,
			Ty:     ast.Union{Left: lit("a"), Right: lit("b")},
			Prefix: ast.NewPrefix(""),
		},
		&ast.Alias{
			Name:   "Color",
			Desc:   []string{"we know"},
			Kind:   ast.TypeAlias,
			Ty:     ast.Ref("Colors"),
			Prefix: ast.NewPrefix(""),
		},
	}, nodes)
}

func TestParseEnum(t *testing.T) {
	t.Parallel()

	lit := func(s string) ast.Member { return ast.Member{Kind: ast.Literal, Text: s} }

	nodes, r := parseString(t, `---Colors we know
---@alias Color
---| 'red' # Red
---| 'blue'
`)
	assert.Empty(t, r.Diagnostics)
	assertNodes(t, []ast.Node{
		&ast.Alias{
			Name: "Color",
			Desc: []string{"Colors we know"},
			Kind: ast.EnumAlias,
			Variants: []ast.Variant{
				{Member: lit("red"), Desc: "Red"},
				{Member: lit("blue")},
			},
			Prefix: ast.NewPrefix(""),
		},
	}, nodes)
}

func TestParseTypeNode(t *testing.T) {
	t.Parallel()

	nodes, _ := parseString(t, "---The config\n"+
		"---@type table<string,any> Options\n"+
		"---@see other\n"+
		"---@usage `U.config.x = 1`\n"+
		"U.config = {}\n")
	assertNodes(t, []ast.Node{
		&ast.Type{
			Desc:   []string{"The config"},
			Inline: "Options",
			Prefix: ast.NewPrefix("U"),
			Path:   dot("config"),
			Kind:   ast.Dot,
			Ty:     ast.Table{Key: ast.String, Value: ast.Any},
			See:    ast.See{Refs: []string{"other"}},
			Usage:  &ast.Usage{Code: "U.config.x = 1"},
		},
	}, nodes)
}

func TestParseSingles(t *testing.T) {
	t.Parallel()

	nodes, _ := parseString(t, "---@mod m Mod\n"+
		"---@brief [[\n---line one\n---\n---@brief ]]\n"+
		"---@divider -\n"+
		"---@tag t\n"+
		"---@toc contents\n"+
		"---@export M\n")
	assertNodes(t, []ast.Node{
		&ast.Module{Name: "m", Desc: "Mod"},
		&ast.Brief{Lines: []string{"line one", ""}},
		&ast.Divider{Char: '-'},
		&ast.Tag{Name: "t"},
		&ast.Toc{Name: "contents"},
		&ast.Export{Name: "M"},
	}, nodes)
}

func TestParseRecovery(t *testing.T) {
	t.Parallel()

	nodes, r := parseString(t, `---@param x number
print(x)

---Doc
function U.f() end
---@field orphan string
`)
	assertNodes(t, []ast.Node{
		&ast.Func{
			Prefix: ast.NewPrefix("U"),
			Path:   dot("f"),
			Kind:   ast.Dot,
			Desc:   []string{"Doc"},
		},
	}, nodes)

	require.Len(t, r.Diagnostics, 2)
	assert.Equal(t, report.Warning, r.Diagnostics[0].Level())
	assert.Equal(t, "`@param x number` is not attached to anything", r.Diagnostics[0].Message())
	assert.Equal(t, "`@field orphan string` is not attached to anything", r.Diagnostics[1].Message())
	assert.Equal(t, 6, r.Diagnostics[1].Primary().StartLoc().Line)
}

func TestParsePrivate(t *testing.T) {
	t.Parallel()

	nodes, r := parseString(t, `local U = {}

---@private
---Hidden
---@param x number
function U.f(x) end

function U.g() end

return U
`)
	assert.Empty(t, r.Diagnostics)
	assertNodes(t, []ast.Node{
		&ast.Func{Prefix: ast.NewPrefix("U"), Path: dot("g"), Kind: ast.Dot},
		&ast.Export{Name: "U"},
	}, nodes)
}
