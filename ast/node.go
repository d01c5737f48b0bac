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

package ast

import "github.com/bufbuild/emmydoc/source"

// Node is one documented construct.
//
// The set of implementations is closed: [*Module], [*Divider], [*Brief],
// [*Tag], [*Func], [*Class], [*Alias], [*Type], [*Export] and [*Toc].
// Consumers are expected to type switch over all of them.
type Node interface {
	source.Spanner
	isNode()
}

// Module is a ---@mod header.
type Module struct {
	Name string
	Desc string
	At   source.Span
}

// Divider is a ---@divider line.
type Divider struct {
	Char rune
	At   source.Span
}

// Brief is the verbatim text of a ---@brief [[ ... ]] block.
type Brief struct {
	Lines []string
	At    source.Span
}

// Tag is a standalone ---@tag help tag.
type Tag struct {
	Name string
	At   source.Span
}

// Param is a documented function parameter.
type Param struct {
	Name Name
	Ty   Ty
	// The inline description followed by continuation comment lines. Blank
	// comment lines are kept as "".
	Desc []string
}

// Return is a documented return value.
type Return struct {
	Ty   Ty
	Name string
	Desc []string
}

// Field is a documented class field.
type Field struct {
	Scope Scope
	Name  Name
	Ty    Ty
	Desc  []string
}

// See is the list of ---@see references attached to a node.
type See struct {
	Refs []string
}

// Usage is a code example attached to a node.
type Usage struct {
	Lang string // Empty means the default language.
	Code string
}

// Func is a documented function.
type Func struct {
	Prefix  Prefix
	Path    Path
	Kind    Kind
	Desc    []string
	Params  []Param
	Returns []Return
	See     See
	Usage   *Usage
	At      source.Span
}

// Class is a ---@class and its fields.
type Class struct {
	Name   string
	Parent string
	Desc   []string
	Fields []Field
	See    See
	Prefix Prefix
	At     source.Span
}

// Variant is one alternative of an enum alias.
type Variant struct {
	Member Member
	Desc   string
}

// AliasKind distinguishes type aliases from enum aliases.
type AliasKind int8

const (
	TypeAlias AliasKind = iota + 1
	EnumAlias
)

// Alias is a ---@alias. Type aliases set Ty; enum aliases set Variants.
type Alias struct {
	Name     string
	Desc     []string
	Kind     AliasKind
	Ty       Ty
	Variants []Variant
	Prefix   Prefix
	At       source.Span
}

// Type is a documented non-function value, declared with ---@type.
type Type struct {
	// Leading comment lines.
	Desc []string
	// The description written inline after the type.
	Inline string
	Prefix Prefix
	Path   Path
	Kind   Kind
	Ty     Ty
	See    See
	Usage  *Usage
	At     source.Span
}

// Export is the symbol a Lua file returns.
type Export struct {
	Name string
	At   source.Span
}

// Toc is a ---@toc table of contents marker.
type Toc struct {
	Name string
	At   source.Span
}

func (n *Module) Span() source.Span  { return n.At }
func (n *Divider) Span() source.Span { return n.At }
func (n *Brief) Span() source.Span   { return n.At }
func (n *Tag) Span() source.Span     { return n.At }
func (n *Func) Span() source.Span    { return n.At }
func (n *Class) Span() source.Span   { return n.At }
func (n *Alias) Span() source.Span   { return n.At }
func (n *Type) Span() source.Span    { return n.At }
func (n *Export) Span() source.Span  { return n.At }
func (n *Toc) Span() source.Span     { return n.At }

func (*Module) isNode()  {}
func (*Divider) isNode() {}
func (*Brief) isNode()   {}
func (*Tag) isNode()     {}
func (*Func) isNode()    {}
func (*Class) isNode()   {}
func (*Alias) isNode()   {}
func (*Type) isNode()    {}
func (*Export) isNode()  {}
func (*Toc) isNode()     {}
