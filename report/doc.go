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

/*
Package report provides the diagnostics framework used by every stage of the
documentation pipeline.

Diagnostics are collected into a [Report], which is a helpful builder over
a slice of [Diagnostic]s. Each [Diagnostic] consists of a Go error plus
metadata for rendering, such as source code spans, notes, and suggestions.
No stage of the pipeline stops at the first problem: lexing and parsing keep
going, and every problem found ends up in the report.

Reports can be rendered using a [Renderer], which either imitates the Go
compiler (one line per diagnostic) or the Rust compiler (annotated source
snippets).

# Defining Diagnostics

Generally, to define a diagnostic, you should define a new Go error type,
and then make it implement [Diagnose]. This lets library users type assert
[Diagnostic.Err] to programmatically determine the nature of a diagnostic,
and gives the same UX wherever the diagnostic is emitted.

# Style

Errors mean documentation could not be produced for some construct.
Warnings are for things that are not strictly wrong but probably unintended,
like a comment block that documents nothing. Remarks are warnings that are
not shown by default.

Diagnostic messages do not begin with a capital letter and do not end in
punctuation. The words "error", "warning", "remark", "help", and "note" are
never capitalized. The first span in a diagnostic should be precisely the
text that caused it.
*/
package report
