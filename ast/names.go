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

import (
	"fmt"
	"strings"
)

// Name is a parameter or field name, possibly marked optional with a
// trailing ?.
type Name struct {
	Text     string
	Optional bool
}

// Req returns a required name.
func Req(text string) Name { return Name{Text: text} }

// Opt returns an optional name.
func Opt(text string) Name { return Name{Text: text, Optional: true} }

// String implements [fmt.Stringer]. Optional names keep their ?.
func (n Name) String() string {
	if n.Optional {
		return n.Text + "?"
	}
	return n.Text
}

// Kind is how a Lua declaration was written.
type Kind int8

const (
	// function a.b() or a.b = ...
	Dot Kind = iota + 1
	// function a:b()
	Colon
	// local function f() or local f = ...
	Local
)

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Dot:
		return "dot"
	case Colon:
		return "colon"
	case Local:
		return "local"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Segment is one step of a dotted or method path after the declared prefix,
// such as .b or :c.
type Segment struct {
	Sep  byte // '.' or ':'
	Name string
}

// Path is the sequence of segments following a declaration's prefix.
type Path []Segment

// String implements [fmt.Stringer]: the segments concatenated with their
// separators, e.g. ".b.c" or ":c".
func (p Path) String() string {
	var out strings.Builder
	for _, seg := range p {
		out.WriteByte(seg.Sep)
		out.WriteString(seg.Name)
	}
	return out.String()
}

// Qualify prepends prefix to the path, e.g. M.a.b. Without a prefix, the
// leading separator is dropped.
func (p Path) Qualify(prefix string) string {
	s := p.String()
	if prefix == "" && s != "" {
		return s[1:]
	}
	return prefix + s
}

// Scope is the visibility of a class field.
type Scope int8

const (
	Public Scope = iota
	Protected
	Private
	Package
)

// ScopeByName looks up a scope keyword.
func ScopeByName(name string) (Scope, bool) {
	switch name {
	case "public":
		return Public, true
	case "protected":
		return Protected, true
	case "private":
		return Private, true
	case "package":
		return Package, true
	default:
		return 0, false
	}
}

// String implements [fmt.Stringer].
func (s Scope) String() string {
	switch s {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	case Package:
		return "package"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// Prefix is the qualifier of a documented symbol.
//
// Left is the qualifier as declared in source and never changes. Right is the
// qualifier used for display; it starts out equal to Left and can be replaced
// exactly once with [Prefix.Rename]. An empty string means there is no
// qualifier.
type Prefix struct {
	left, right string
	renamed     bool
}

// NewPrefix returns a prefix whose display qualifier equals its declared one.
func NewPrefix(left string) Prefix {
	return Prefix{left: left, right: left}
}

// Left returns the declared qualifier.
func (p Prefix) Left() string { return p.left }

// Right returns the display qualifier.
func (p Prefix) Right() string { return p.right }

// Renamed returns whether [Prefix.Rename] has been called.
func (p Prefix) Renamed() bool { return p.renamed }

// Rename replaces the display qualifier. Panics if called more than once.
func (p *Prefix) Rename(to string) {
	if p.renamed {
		panic(fmt.Sprintf("emmydoc/ast: prefix %q renamed twice", p.left))
	}
	p.right = to
	p.renamed = true
}

// Equal reports whether two prefixes have the same qualifiers and rename
// state.
func (p Prefix) Equal(q Prefix) bool {
	return p == q
}
