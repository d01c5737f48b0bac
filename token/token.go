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

// Package token defines the tokens produced by the annotation lexer.
//
// A [Stream] of tokens, each with the span it was lexed from, is the only
// thing the lexer hands to the parser.
package token

import (
	"fmt"

	"github.com/bufbuild/emmydoc/ast"
)

// Token is a lexed annotation tag, comment or Lua declaration.
//
// The set of implementations is closed to this package.
type Token interface {
	fmt.Stringer
	isToken()
}

// Toc is ---@toc <name>.
type Toc struct{ Name string }

// Module is ---@mod <name> [desc].
type Module struct{ Name, Desc string }

// Divider is ---@divider <char>.
type Divider struct{ Char rune }

// BriefStart is ---@brief [[.
type BriefStart struct{}

// BriefEnd is ---@brief ]].
type BriefEnd struct{}

// Param is ---@param <name[?]> <type> [desc].
type Param struct {
	Name ast.Name
	Ty   ast.Ty
	Desc string
}

// Return is ---@return <type> [<name> [desc] | #<desc>].
type Return struct {
	Ty   ast.Ty
	Name string
	Desc string
}

// Class is ---@class <name>[: <parent>] [desc].
type Class struct {
	Name, Parent, Desc string
}

// Field is ---@field [scope] <name[?]> <type> [desc].
type Field struct {
	Scope ast.Scope
	Name  ast.Name
	Ty    ast.Ty
	Desc  string
}

// Alias is ---@alias <name> [<type> [desc]]. Ty is nil for an enum alias,
// whose variants follow on their own lines.
type Alias struct {
	Name string
	Ty   ast.Ty
	Desc string
}

// Variant is ---| '<literal>' [# desc] or ---| `<ident>` [# desc].
type Variant struct {
	Member ast.Member
	Desc   string
}

// Type is ---@type <type> [desc].
type Type struct {
	Ty   ast.Ty
	Desc string
}

// Tag is ---@tag <name>.
type Tag struct{ Name string }

// See is ---@see <ref>.
type See struct{ Ref string }

// Usage is the one-line form ---@usage [lang] `code`.
type Usage struct{ Lang, Code string }

// UsageStart is ---@usage [lang] [[.
type UsageStart struct{ Lang string }

// UsageEnd is ---@usage ]].
type UsageEnd struct{}

// Export is ---@export <name>, or a trailing return <name>.
type Export struct{ Name string }

// Comment is a plain ---<text> line. Blank comment lines have empty Text.
type Comment struct{ Text string }

// Skip is text that was consumed and must be ignored, such as a private
// declaration and its annotations.
type Skip struct{}

// Func is a function declaration: function a.b(), a.b = function, or
// local function f().
type Func struct{ Decl }

// Expr is a non-function assignment: a.b = <expr> or local x = <expr>.
type Expr struct{ Decl }

// Decl is the shape of a Lua declaration.
type Decl struct {
	// The first identifier of the declared name. Empty for locals and for
	// global functions without a qualifier.
	Prefix string
	// The rest of the name.
	Path ast.Path
	Kind ast.Kind
	// For locals and unqualified functions, the declared name.
	Name string
}

// Symbol returns the name the declaration is known by, e.g. U.sum or U:new.
func (d Decl) Symbol() string {
	if d.Prefix == "" {
		return d.Name
	}
	return d.Prefix + d.Path.String()
}

func (t Toc) String() string      { return "@toc " + t.Name }
func (t Module) String() string   { return "@mod " + t.Name }
func (t Divider) String() string  { return "@divider " + string(t.Char) }
func (BriefStart) String() string { return "@brief [[" }
func (BriefEnd) String() string   { return "@brief ]]" }
func (t Param) String() string    { return "@param " + t.Name.String() + " " + t.Ty.String() }
func (t Return) String() string   { return "@return " + t.Ty.String() }
func (t Class) String() string    { return "@class " + t.Name }
func (t Field) String() string    { return "@field " + t.Name.String() + " " + t.Ty.String() }
func (t Alias) String() string    { return "@alias " + t.Name }
func (t Variant) String() string  { return "| " + t.Member.String() }
func (t Type) String() string     { return "@type " + t.Ty.String() }
func (t Tag) String() string      { return "@tag " + t.Name }
func (t See) String() string      { return "@see " + t.Ref }
func (Usage) String() string      { return "@usage" }
func (UsageStart) String() string { return "@usage [[" }
func (UsageEnd) String() string   { return "@usage ]]" }
func (t Export) String() string   { return "export " + t.Name }
func (Comment) String() string    { return "comment" }
func (Skip) String() string       { return "skip" }
func (t Func) String() string     { return "function " + t.Symbol() }
func (t Expr) String() string     { return "assignment to " + t.Symbol() }

func (Toc) isToken()        {}
func (Module) isToken()     {}
func (Divider) isToken()    {}
func (BriefStart) isToken() {}
func (BriefEnd) isToken()   {}
func (Param) isToken()      {}
func (Return) isToken()     {}
func (Class) isToken()      {}
func (Field) isToken()      {}
func (Alias) isToken()      {}
func (Variant) isToken()    {}
func (Type) isToken()       {}
func (Tag) isToken()        {}
func (See) isToken()        {}
func (Usage) isToken()      {}
func (UsageStart) isToken() {}
func (UsageEnd) isToken()   {}
func (Export) isToken()     {}
func (Comment) isToken()    {}
func (Skip) isToken()       {}
func (Func) isToken()       {}
func (Expr) isToken()       {}
