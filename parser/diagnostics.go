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

package parser

import (
	"fmt"

	"github.com/bufbuild/emmydoc/report"
	"github.com/bufbuild/emmydoc/source"
	"github.com/bufbuild/emmydoc/token"
)

// errTag diagnoses a recognized tag whose arguments are malformed.
type errTag struct {
	tag string // Without the @.
	at  source.Span
	msg string
}

func (e *errTag) Error() string {
	return fmt.Sprintf("malformed `@%s` annotation", e.tag)
}

func (e *errTag) Diagnose(d *report.Diagnostic) {
	d.With(report.Snippet(e.at, "%s", e.msg))
	if syntax, ok := tagSyntax[e.tag]; ok {
		d.With(report.Help("the syntax is `%s`", syntax))
	}
}

// errUnknownTag diagnoses a ---@tag this lexer does not recognize.
type errUnknownTag struct {
	name string
	at   source.Span
}

func (e *errUnknownTag) Error() string {
	return fmt.Sprintf("ignoring unrecognized annotation `@%s`", e.name)
}

func (e *errUnknownTag) Diagnose(d *report.Diagnostic) {
	d.With(report.Snippet(e.at))
}

// errUnclosedBlock diagnoses a brief or usage block that is interrupted by
// code or by the end of the file.
type errUnclosedBlock struct {
	block      block
	opened, at source.Span
}

func (e *errUnclosedBlock) Error() string {
	return fmt.Sprintf("unclosed `@%s` block", e.block.tag())
}

func (e *errUnclosedBlock) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Snippet(e.at, "expected `---@%s ]]` before this", e.block.tag()),
		report.Snippet(e.opened, "block opened here"),
	)
}

// errDangling diagnoses an annotation that does not belong to any
// documented construct.
type errDangling struct {
	tok token.Spanned
}

func (e *errDangling) Error() string {
	return fmt.Sprintf("`%v` is not attached to anything", e.tok.Token)
}

func (e *errDangling) Diagnose(d *report.Diagnostic) {
	d.With(report.Snippet(e.tok.Span, "ignoring this annotation"))
	switch e.tok.Token.(type) {
	case token.Param, token.Return, token.See, token.Usage, token.UsageStart, token.Type:
		d.With(report.Note("annotations must directly precede the declaration they document"))
	case token.Field:
		d.With(report.Note("`@field` must follow a `@class` or another `@field`"))
	case token.Variant:
		d.With(report.Note("enum variants must follow an `@alias` without a type"))
	}
}
