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

package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/emmydoc/ast"
)

func TestTyString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ty   ast.Ty
		want string
	}{
		{ast.Nil, "nil"},
		{ast.Lightuserdata, "lightuserdata"},
		{ast.Ref("vim.api.keyset"), "vim.api.keyset"},
		{ast.Member{Kind: ast.Literal, Text: "red"}, `"red"`},
		{ast.Member{Kind: ast.Literal, Text: `"g@"`}, `"g@"`},
		{ast.Member{Kind: ast.Ident, Text: "vim.log.levels.INFO"}, "vim.log.levels.INFO"},
		{ast.Array{Elem: ast.Array{Elem: ast.String}}, "string[][]"},
		{ast.Table{}, "table"},
		{ast.Table{Key: ast.String, Value: ast.Integer}, "table<string,integer>"},
		{ast.Fun{}, "fun()"},
		{ast.Fun{Returns: []ast.Ty{}}, "fun():"},
		{
			ast.Fun{
				Params:  []ast.Entry{{Name: ast.Req("a"), Ty: ast.Number}, {Name: ast.Opt("b"), Ty: ast.Any}},
				Returns: []ast.Ty{ast.Boolean, ast.Nil},
			},
			"fun(a:number,b?:any):boolean,nil",
		},
		{ast.Dict{Entries: []ast.Entry{{Name: ast.Req("x"), Ty: ast.Number}}}, "{x:number}"},
		{ast.Union{Left: ast.String, Right: ast.Union{Left: ast.Number, Right: ast.Nil}}, "string|number|nil"},
		{ast.Array{Elem: ast.Union{Left: ast.String, Right: ast.Nil}}, "(string|nil)[]"},
		{ast.Union{Left: ast.Union{Left: ast.String, Right: ast.Number}, Right: ast.Nil}, "(string|number)|nil"},
		{ast.Union{Left: ast.Fun{Returns: []ast.Ty{ast.String}}, Right: ast.Nil}, "(fun():string)|nil"},
		{ast.Union{Left: ast.Fun{Returns: []ast.Ty{}}, Right: ast.Nil}, "fun():|nil"},
		{ast.Union{Left: ast.Nil, Right: ast.Fun{Returns: []ast.Ty{ast.String}}}, "nil|fun():string"},
		{ast.Array{Elem: ast.Fun{Returns: []ast.Ty{ast.String}}}, "(fun():string)[]"},
		{
			ast.Table{Key: ast.Fun{Returns: []ast.Ty{ast.String}}, Value: ast.Fun{Returns: []ast.Ty{ast.String}}},
			"table<(fun():string),fun():string>",
		},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, test.ty.String())
	}
}

func TestAlternatives(t *testing.T) {
	t.Parallel()

	u := ast.Union{Left: ast.Ref("a"), Right: ast.Union{Left: ast.Ref("b"), Right: ast.Ref("c")}}
	assert.Equal(t, []ast.Ty{ast.Ref("a"), ast.Ref("b"), ast.Ref("c")}, u.Alternatives())
}

func TestLookups(t *testing.T) {
	t.Parallel()

	p, ok := ast.PrimitiveByName("userdata")
	assert.True(t, ok)
	assert.Equal(t, ast.Userdata, p)
	_, ok = ast.PrimitiveByName("table")
	assert.False(t, ok)

	s, ok := ast.ScopeByName("package")
	assert.True(t, ok)
	assert.Equal(t, ast.Package, s)
	_, ok = ast.ScopeByName("internal")
	assert.False(t, ok)
}

func TestPath(t *testing.T) {
	t.Parallel()

	p := ast.Path{{Sep: '.', Name: "a"}, {Sep: '.', Name: "b"}, {Sep: ':', Name: "c"}}
	assert.Equal(t, ".a.b:c", p.String())
	assert.Equal(t, "M.a.b:c", p.Qualify("M"))
	assert.Equal(t, "a.b:c", p.Qualify(""))
	assert.Empty(t, ast.Path(nil).Qualify(""))
}

func TestPrefix(t *testing.T) {
	t.Parallel()

	p := ast.NewPrefix("U")
	assert.Equal(t, "U", p.Left())
	assert.Equal(t, "U", p.Right())
	assert.False(t, p.Renamed())

	p.Rename("mymod")
	assert.Equal(t, "U", p.Left())
	assert.Equal(t, "mymod", p.Right())
	assert.True(t, p.Renamed())

	assert.Panics(t, func() { p.Rename("again") })
	assert.Equal(t, "mymod", p.Right())
}

func TestName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "x?", ast.Opt("x").String())
	assert.Equal(t, "...", ast.Req("...").String())
}
