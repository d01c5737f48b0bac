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

// Ty is a type expression, as written in an annotation.
//
// The set of implementations is closed: [Primitive], [Ref], [Member],
// [Array], [Table], [Fun], [Dict] and [Union]. String renders the canonical,
// whitespace-free form of the type.
type Ty interface {
	fmt.Stringer
	isTy()
}

// Primitive is one of the built-in type keywords.
type Primitive int8

const (
	Nil Primitive = iota + 1
	Any
	Unknown
	Boolean
	String
	Number
	Integer
	Function
	Thread
	Userdata
	Lightuserdata
)

var primitives = [...]string{
	Nil:           "nil",
	Any:           "any",
	Unknown:       "unknown",
	Boolean:       "boolean",
	String:        "string",
	Number:        "number",
	Integer:       "integer",
	Function:      "function",
	Thread:        "thread",
	Userdata:      "userdata",
	Lightuserdata: "lightuserdata",
}

// PrimitiveByName looks up a primitive by its keyword.
func PrimitiveByName(name string) (Primitive, bool) {
	for p, kw := range primitives {
		if kw != "" && kw == name {
			return Primitive(p), true
		}
	}
	return 0, false
}

// String implements [fmt.Stringer].
func (p Primitive) String() string {
	if p <= 0 || int(p) >= len(primitives) {
		return fmt.Sprintf("Primitive(%d)", int(p))
	}
	return primitives[p]
}

// Ref is a reference to a named type, such as a class or an alias. Names are
// not resolved.
type Ref string

// String implements [fmt.Stringer].
func (r Ref) String() string { return string(r) }

// MemberKind distinguishes the two spellings of a [Member].
type MemberKind int8

const (
	// A quoted string literal, 'text' or "text".
	Literal MemberKind = iota + 1
	// A backtick-quoted identifier, `text`.
	Ident
)

// Member is a single literal value used as a type, typically as one
// alternative of an enum.
type Member struct {
	Kind MemberKind
	Text string
}

// String implements [fmt.Stringer]. Literals are re-quoted with double quotes.
func (m Member) String() string {
	if m.Kind == Ident {
		return m.Text
	}
	return `"` + strings.TrimRight(strings.TrimLeft(m.Text, `"`), `"`) + `"`
}

// Array is T[].
type Array struct {
	Elem Ty
}

// String implements [fmt.Stringer].
func (a Array) String() string {
	_, union := a.Elem.(Union)
	return grouped(a.Elem, union || endsOpen(a.Elem)) + "[]"
}

// Table is table<K,V>, or the bare table type when Key and Value are nil.
type Table struct {
	Key, Value Ty
}

// String implements [fmt.Stringer].
func (t Table) String() string {
	if t.Key == nil || t.Value == nil {
		return "table"
	}
	return "table<" + grouped(t.Key, endsOpen(t.Key)) + "," + t.Value.String() + ">"
}

// Entry is a name/type pair in a function signature or dictionary literal.
type Entry struct {
	Name Name
	Ty   Ty
}

// Fun is fun(params):returns.
type Fun struct {
	Params []Entry
	// Nil when no return list was written. A non-nil empty slice is an
	// explicitly empty return list, fun():.
	Returns []Ty
}

// String implements [fmt.Stringer].
func (f Fun) String() string {
	var out strings.Builder
	out.WriteString("fun(")
	writeEntries(&out, f.Params)
	out.WriteString(")")
	if f.Returns != nil {
		out.WriteString(":")
		for i, r := range f.Returns {
			if i > 0 {
				out.WriteString(",")
			}
			out.WriteString(grouped(r, i < len(f.Returns)-1 && endsOpen(r)))
		}
	}
	return out.String()
}

// Dict is a dictionary literal, {name:type,...}.
type Dict struct {
	Entries []Entry
}

// String implements [fmt.Stringer].
func (d Dict) String() string {
	var out strings.Builder
	out.WriteString("{")
	writeEntries(&out, d.Entries)
	out.WriteString("}")
	return out.String()
}

// Union is Left|Right. Unions nest to the right: a|b|c is
// Union{a, Union{b, c}}.
type Union struct {
	Left, Right Ty
}

// String implements [fmt.Stringer].
func (u Union) String() string {
	alts := u.Alternatives()
	parts := make([]string, len(alts))
	for i, alt := range alts {
		// Only a left operand can itself be a union here.
		_, union := alt.(Union)
		parts[i] = grouped(alt, union || (i < len(alts)-1 && endsOpen(alt)))
	}
	return strings.Join(parts, "|")
}

// Alternatives flattens a right-nested union into its alternatives, in order.
func (u Union) Alternatives() []Ty {
	alts := []Ty{u.Left}
	for next := u.Right; ; {
		inner, ok := next.(Union)
		if !ok {
			return append(alts, next)
		}
		alts = append(alts, inner.Left)
		next = inner.Right
	}
}

func writeEntries(out *strings.Builder, entries []Entry) {
	for i, e := range entries {
		if i > 0 {
			out.WriteString(",")
		}
		out.WriteString(e.Name.String())
		out.WriteString(":")
		out.WriteString(grouped(e.Ty, i < len(entries)-1 && endsOpen(e.Ty)))
	}
}

// endsOpen returns whether ty ends in a non-empty return list, which would
// swallow any suffix, union or comma written after it.
func endsOpen(ty Ty) bool {
	switch ty := ty.(type) {
	case Fun:
		return len(ty.Returns) > 0
	case Union:
		return endsOpen(ty.Right)
	default:
		return false
	}
}

// grouped renders ty, in parentheses if parens is set.
func grouped(ty Ty, parens bool) string {
	if parens {
		return "(" + ty.String() + ")"
	}
	return ty.String()
}

func (Primitive) isTy() {}
func (Ref) isTy()       {}
func (Member) isTy()    {}
func (Array) isTy()     {}
func (Table) isTy()     {}
func (Fun) isTy()       {}
func (Dict) isTy()      {}
func (Union) isTy()     {}
