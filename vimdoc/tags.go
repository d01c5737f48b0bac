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
	"fmt"

	"github.com/bufbuild/emmydoc/ast"
)

// Tags returns the help tags that rendering node defines, in the order they
// appear in the output.
func Tags(node ast.Node) []string {
	switch node := node.(type) {
	case *ast.Module:
		return []string{node.Name}
	case *ast.Toc:
		return []string{node.Name}
	case *ast.Tag:
		return []string{node.Name}
	case *ast.Func:
		return []string{node.Path.Qualify(node.Prefix.Right())}
	case *ast.Type:
		return []string{node.Path.Qualify(node.Prefix.Right())}
	case *ast.Class:
		return []string{qualified(node.Prefix, node.Name)}
	case *ast.Alias:
		return []string{qualified(node.Prefix, node.Name)}
	case *ast.Divider, *ast.Brief, *ast.Export:
		return nil
	default:
		panic(fmt.Sprintf("emmydoc/vimdoc: unexpected node type %T", node))
	}
}

// qualified returns the help tag of a class or alias: its name, under the
// display qualifier if one was assigned.
func qualified(prefix ast.Prefix, name string) string {
	if prefix.Renamed() && prefix.Right() != "" {
		return prefix.Right() + "." + name
	}
	return name
}
