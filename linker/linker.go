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

// Package linker binds the documentation of one Lua file to the symbol the
// file exports.
//
// Only functions and values declared on the exported table are part of a
// module's public surface; everything else documented with a qualifier is
// internal and is dropped. Classes and aliases are global in Lua's annotation
// system, so they are always kept.
package linker

import (
	"fmt"

	"github.com/bufbuild/emmydoc/ast"
	"github.com/bufbuild/emmydoc/config"
	"github.com/bufbuild/emmydoc/report"
)

// Link filters the nodes parsed from one file down to the ones that belong to
// its public surface, and renames their display qualifiers as configured.
//
// The exported symbol is the name in the last [ast.Export] node, wherever it
// appears in the file; all export
// nodes are removed from the result. The module name used for renaming is the
// name of the last [ast.Module] node, or the exported symbol if there is none.
//
// A file with documentation but no export is reported as a warning and
// contributes nothing. Link must be called at most once on a batch of nodes,
// since a [ast.Prefix] can only be renamed once.
func Link(nodes []ast.Node, s config.Settings, r *report.Report) []ast.Node {
	export := lastOf[*ast.Export](nodes)
	if export == nil {
		if len(nodes) > 0 {
			r.Warn(&errNoExport{first: nodes[0]})
		}
		return nil
	}

	module := export.Name
	if mod := lastOf[*ast.Module](nodes); mod != nil {
		module = mod.Name
	}

	kept := make([]ast.Node, 0, len(nodes))
	for _, node := range nodes {
		switch node := node.(type) {
		case *ast.Export:
			continue

		case *ast.Func:
			if !public(node.Prefix, node.Kind, export.Name) {
				continue
			}
			if s.PrefixFunc {
				node.Prefix.Rename(module)
			}

		case *ast.Type:
			if !public(node.Prefix, node.Kind, export.Name) {
				continue
			}
			if s.PrefixType {
				node.Prefix.Rename(module)
			}

		case *ast.Alias:
			if s.PrefixAlias {
				node.Prefix.Rename(module)
			}

		case *ast.Class:
			if s.PrefixClass {
				node.Prefix.Rename(module)
			}

		case *ast.Module, *ast.Divider, *ast.Brief, *ast.Tag, *ast.Toc:

		default:
			panic(fmt.Sprintf("emmydoc/linker: unexpected node type %T", node))
		}
		kept = append(kept, node)
	}
	return kept
}

// public returns whether a declaration is a member of the exported table.
func public(prefix ast.Prefix, kind ast.Kind, export string) bool {
	return kind != ast.Local && prefix.Left() == export
}

// lastOf returns the last node of type N, or nil.
func lastOf[N ast.Node](nodes []ast.Node) N {
	for i := len(nodes) - 1; i >= 0; i-- {
		if node, ok := nodes[i].(N); ok {
			return node
		}
	}
	var zero N
	return zero
}

// errNoExport diagnoses a documented file that does not export anything.
type errNoExport struct {
	first ast.Node
}

func (e *errNoExport) Error() string {
	return "documented file does not export a module"
}

func (e *errNoExport) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Snippet(e.first, "this documentation is dropped"),
		report.Help("end the file with `return M`, or add `---@export M`"),
	)
}
