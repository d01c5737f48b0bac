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

package emmydoc

import (
	"fmt"
	"io"

	"github.com/tidwall/btree"

	"github.com/bufbuild/emmydoc/ast"
	"github.com/bufbuild/emmydoc/config"
	"github.com/bufbuild/emmydoc/report"
	"github.com/bufbuild/emmydoc/vimdoc"
)

// Document is the documentation generated from a list of files.
type Document struct {
	// The documentation nodes of every file, in order.
	Nodes []ast.Node
	// Problems found while generating the document.
	Report *report.Report

	settings config.Settings
	// The node defining each help tag, ordered by tag.
	tags btree.Map[string, ast.Node]
}

func newDocument(s config.Settings) *Document {
	return &Document{Report: new(report.Report), settings: s}
}

// add appends the nodes of one file, indexing the help tags they define.
func (d *Document) add(nodes []ast.Node) {
	for _, node := range nodes {
		for _, tag := range vimdoc.Tags(node) {
			if first, ok := d.tags.Get(tag); ok {
				d.Report.Warn(&errDuplicateTag{tag: tag, first: first, second: node})
				continue
			}
			d.tags.Set(tag, node)
		}
	}
	d.Nodes = append(d.Nodes, nodes...)
}

// Tags returns every help tag defined in the document, sorted.
func (d *Document) Tags() []string {
	tags := make([]string, 0, d.tags.Len())
	d.tags.Scan(func(tag string, _ ast.Node) bool {
		tags = append(tags, tag)
		return true
	})
	return tags
}

// Render returns the document's help text, without a modeline.
func (d *Document) Render() string {
	return vimdoc.Render(d.Nodes, d.settings)
}

// Write writes the document's help text to w, followed by a modeline if
// the settings ask for one.
func (d *Document) Write(w io.Writer) error {
	return vimdoc.Write(w, d.Nodes, d.settings)
}

// WriteTags writes a Vim tags file for the document to w, assuming the help
// text is saved as helpFile.
//
// Each line is a tag, the file, and a search command for the tag, separated
// by tabs. Lines are sorted by tag, as Vim requires for binary search.
func (d *Document) WriteTags(w io.Writer, helpFile string) error {
	var err error
	d.tags.Scan(func(tag string, _ ast.Node) bool {
		_, err = fmt.Fprintf(w, "%s\t%s\t/*%s*\n", tag, helpFile, tag)
		return err == nil
	})
	return err
}

// errDuplicateTag diagnoses two nodes defining the same help tag.
type errDuplicateTag struct {
	tag           string
	first, second ast.Node
}

func (e *errDuplicateTag) Error() string {
	return fmt.Sprintf("help tag `*%s*` is defined more than once", e.tag)
}

func (e *errDuplicateTag) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Snippet(e.second, "defined again here"),
		report.Snippet(e.first, "first defined here"),
		report.Note("Vim jumps to the first definition of a tag"),
	)
}
