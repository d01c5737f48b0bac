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

// Package vimdoc renders documentation nodes as a Vim help file.
//
// Every node becomes one block of text laid out on an 80 column grid, with
// help tags right-aligned so that Vim's tag jumping finds them. Blocks are
// separated by a newline.
package vimdoc

import (
	"fmt"
	"io"
	"strings"

	"github.com/bufbuild/emmydoc/ast"
	"github.com/bufbuild/emmydoc/config"
	"github.com/bufbuild/emmydoc/internal/ext/unicodex"
	"github.com/bufbuild/emmydoc/internal/tabular"
)

const (
	// Width is the number of columns help text is laid out in.
	Width = 80

	// Modeline is the Vim modeline that ends a generated help file.
	Modeline = "vim:tw=78:ts=8:noet:ft=help:norl:"
)

// Render renders nodes as help text.
//
// A table of contents lists every module among nodes, so a document should
// be rendered in one call rather than node by node. Export nodes render as
// nothing.
func Render(nodes []ast.Node, s config.Settings) string {
	p := &printer{settings: s}
	for _, node := range nodes {
		if m, ok := node.(*ast.Module); ok {
			p.modules = append(p.modules, m)
		}
	}

	for _, node := range nodes {
		if _, ok := node.(*ast.Export); ok {
			continue
		}
		p.node(node)
		p.WriteString("\n")
	}
	return p.String()
}

// Write is like [Render], but writes the result to w, followed by the
// modeline if the settings ask for one.
func Write(w io.Writer, nodes []ast.Node, s config.Settings) error {
	text := Render(nodes, s)
	if s.Modeline {
		text += Modeline + "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

// printer accumulates the rendered text of a document.
type printer struct {
	strings.Builder
	settings config.Settings
	modules  []*ast.Module
}

func (p *printer) node(node ast.Node) {
	switch node := node.(type) {
	case *ast.Module:
		p.module(node.Name, node.Desc)
	case *ast.Toc:
		p.toc(node)
	case *ast.Divider:
		p.divider(node.Char)
	case *ast.Brief:
		p.WriteString(strings.Join(node.Lines, "\n"))
		p.WriteString("\n")
	case *ast.Tag:
		p.WriteString(unicodex.PadLeft(tag(node.Name), Width))
	case *ast.Func:
		p.fun(node)
	case *ast.Class:
		p.class(node)
	case *ast.Alias:
		p.alias(node)
	case *ast.Type:
		p.typ(node)
	default:
		panic(fmt.Sprintf("emmydoc/vimdoc: unexpected node type %T", node))
	}
}

// header writes a display name and its help tag on one line, or the tag on
// a line of its own above the name when the two do not fit.
func (p *printer) header(name, helpTag string) {
	helpTag = tag(helpTag)
	width := unicodex.StringWidth(name)
	if width+1+unicodex.StringWidth(helpTag) > Width {
		p.WriteString(unicodex.PadLeft(helpTag, Width))
		p.WriteString("\n")
		p.WriteString(name)
		p.WriteString("\n")
		return
	}
	p.WriteString(name)
	p.WriteString(unicodex.PadLeft(helpTag, Width-width))
	p.WriteString("\n")
}

// description writes lines indented by four spaces. Blank lines are not
// indented.
func (p *printer) description(lines ...string) {
	p.WriteString(indent(strings.Join(lines, "\n"), 4))
	p.WriteString("\n")
}

// table writes a table indented to line up under a section title.
func (p *printer) table(rows [][]string) {
	t := tabular.Table{Indent: 8, Gap: 2}
	for _, row := range rows {
		t.Row(row...)
	}
	_, _ = t.WriteTo(p)
}

func (p *printer) divider(char rune) {
	p.WriteString(strings.Repeat(string(char), Width))
	p.WriteString("\n")
}

func (p *printer) module(name, desc string) {
	p.divider('=')
	p.header(desc, name)
}

func (p *printer) toc(node *ast.Toc) {
	p.module(node.Name, "Table of Contents")
	p.WriteString("\n")
	for _, m := range p.modules {
		p.WriteString(m.Desc)
		p.WriteString(unicodex.PadLeftWith("|"+m.Name+"|", Width-unicodex.StringWidth(m.Desc), '·'))
		p.WriteString("\n")
	}
}

func (p *printer) see(see ast.See) {
	if len(see.Refs) == 0 {
		return
	}
	p.description("See: ~")
	for _, ref := range see.Refs {
		p.WriteString("        |" + ref + "|\n")
	}
	p.WriteString("\n")
}

func (p *printer) usage(usage *ast.Usage) {
	if usage == nil {
		return
	}
	lang := usage.Lang
	if lang == "" {
		lang = "lua"
	}
	p.description("Usage: ~")
	p.WriteString(">" + lang + "\n")
	p.WriteString(indent(usage.Code, 8))
	p.WriteString("\n<\n\n")
}

// tag formats a help tag.
func tag(name string) string {
	return "*" + name + "*"
}

// indent prefixes every non-blank line of text with n spaces. Blank lines
// become empty.
func indent(text string, n int) string {
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
