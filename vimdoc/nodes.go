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

package vimdoc

import (
	"strings"

	"github.com/bufbuild/emmydoc/ast"
	"github.com/bufbuild/emmydoc/config"
)

func (p *printer) fun(n *ast.Func) {
	params := make([]string, len(n.Params))
	for i, param := range n.Params {
		params[i] = "{" + param.Name.String() + "}"
	}
	p.header(
		n.Path.Qualify(n.Prefix.Left())+"("+strings.Join(params, ", ")+")",
		n.Path.Qualify(n.Prefix.Right()),
	)
	if len(n.Desc) > 0 {
		p.description(n.Desc...)
	}
	p.WriteString("\n")

	if len(n.Params) > 0 {
		p.description("Parameters: ~")
		rows := make([][]string, len(n.Params))
		for i, param := range n.Params {
			rows[i] = p.entry(param.Name, param.Ty, param.Desc)
		}
		p.table(rows)
		p.WriteString("\n")
	}

	if len(n.Returns) > 0 {
		p.description("Returns: ~")
		rows := make([][]string, len(n.Returns))
		for i, ret := range n.Returns {
			ty := "(" + ret.Ty.String() + ")"
			desc := ret.Name
			if len(ret.Desc) > 0 {
				desc = p.continued(ret.Desc)
			}
			if p.settings.Layout == config.LayoutMini {
				rows[i] = []string{ty + " " + desc}
			} else {
				rows[i] = []string{ty, desc}
			}
		}
		p.table(rows)
		p.WriteString("\n")
	}

	p.see(n.See)
	p.usage(n.Usage)
}

func (p *printer) class(n *ast.Class) {
	p.header(n.Name, qualified(n.Prefix, n.Name))
	if len(n.Desc) > 0 {
		p.description(n.Desc...)
	}
	p.WriteString("\n")

	var rows [][]string
	for _, field := range n.Fields {
		if field.Scope == ast.Public {
			rows = append(rows, p.entry(field.Name, field.Ty, field.Desc))
		}
	}
	if len(rows) > 0 {
		p.description("Fields: ~")
		p.table(rows)
		p.WriteString("\n")
	}

	p.see(n.See)
}

func (p *printer) alias(n *ast.Alias) {
	p.header(n.Name, qualified(n.Prefix, n.Name))
	if len(n.Desc) > 0 {
		p.description(n.Desc...)
	}
	p.WriteString("\n")

	switch n.Kind {
	case ast.TypeAlias:
		p.description("Type: ~")
		p.WriteString("        " + n.Ty.String() + "\n")
	case ast.EnumAlias:
		p.description("Variants: ~")
		rows := make([][]string, len(n.Variants))
		for i, v := range n.Variants {
			rows[i] = []string{"(" + v.Member.String() + ")", v.Desc}
		}
		p.table(rows)
	}
	p.WriteString("\n")
}

func (p *printer) typ(n *ast.Type) {
	p.header(n.Path.Qualify(n.Prefix.Left()), n.Path.Qualify(n.Prefix.Right()))
	if len(n.Desc) > 0 {
		p.description(n.Desc...)
	}
	p.WriteString("\n")

	p.description("Type: ~")
	p.table([][]string{{"(" + n.Ty.String() + ")", n.Inline}})
	p.WriteString("\n")

	p.see(n.See)
	p.usage(n.Usage)
}

// entry lays out a parameter or field according to the configured layout.
func (p *printer) entry(name ast.Name, ty ast.Ty, desc []string) []string {
	label := "{" + name.String() + "}"
	typ := "(" + ty.String() + ")"
	if p.settings.ExpandOpt && name.Optional {
		label = "{" + name.Text + "}"
		typ = "(nil|" + ty.String() + ")"
	}

	switch p.settings.Layout {
	case config.LayoutCompact:
		return []string{label, typ + " " + p.continued(desc)}
	case config.LayoutMini:
		return []string{label + " " + typ + " " + p.continued(desc)}
	default:
		return []string{label, typ, strings.Join(desc, "\n")}
	}
}

// continued joins description lines, indenting continuation lines in the
// compact and mini layouts.
func (p *printer) continued(desc []string) string {
	if p.settings.Layout == config.LayoutDefault {
		return strings.Join(desc, "\n")
	}
	return strings.Join(desc, "\n"+strings.Repeat(" ", p.settings.Indent()))
}
