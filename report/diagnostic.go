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

package report

import (
	"fmt"

	"github.com/bufbuild/emmydoc/source"
)

// Level represents the severity of a diagnostic message.
type Level int8

const (
	// Red. Documentation could not be produced for some construct.
	Error Level = 1 + iota
	// Yellow. Indicates something that probably should not be ignored.
	Warning
	// Cyan. This is the diagnostics version of "info".
	Remark

	noteLevel // Used internally within the diagnostic renderer.
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Remark:
		return "remark"
	case noteLevel:
		return "note"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Diagnose is an error that can be rendered as a diagnostic.
type Diagnose interface {
	error

	// Diagnose writes out this error to the given diagnostic.
	//
	// This function should not set the level; that is set by the [Report]
	// method used to push it.
	Diagnose(*Diagnostic)
}

// Diagnostic is a type of error that can be rendered as a rich diagnostic.
//
// Not all Diagnostics are "errors", even though Diagnostic wraps an error;
// some represent warnings, or perhaps debugging remarks.
//
// To construct a diagnostic, push a [Diagnose] error using a method like [Report.Error].
// Then, call [Diagnostic.With] to apply options to it.
type Diagnostic struct {
	err   error
	level Level

	// The file this diagnostic occurs in, if it has no associated snippets.
	inFile string

	annotations []annotation
	notes, help []string
}

// DiagnosticOption is an option that can be applied to a [Diagnostic].
//
// Nil values passed to [Diagnostic.With] are ignored.
type DiagnosticOption interface {
	Apply(*Diagnostic)
}

// Err returns the error that prompted this diagnostic.
func (d *Diagnostic) Err() error {
	return d.err
}

// Message returns the diagnostic's main message.
func (d *Diagnostic) Message() string {
	if d.err == nil {
		return ""
	}
	return d.err.Error()
}

// Level returns this diagnostic's level.
func (d *Diagnostic) Level() Level {
	return d.level
}

// Primary returns this diagnostic's primary span, if it has one.
//
// If it doesn't have one, it returns the zero span.
func (d *Diagnostic) Primary() source.Span {
	for _, annotation := range d.annotations {
		if annotation.primary {
			return annotation.Span
		}
	}
	return source.Span{}
}

// Path returns the path of the file this diagnostic refers to, if any.
func (d *Diagnostic) Path() string {
	if primary := d.Primary(); !primary.IsZero() {
		return primary.Path()
	}
	return d.inFile
}

// Notes returns the notes attached to this diagnostic.
func (d *Diagnostic) Notes() []string {
	return d.notes
}

// With applies the given options to this diagnostic.
//
// Nil values are ignored.
func (d *Diagnostic) With(options ...DiagnosticOption) *Diagnostic {
	for _, option := range options {
		if option != nil {
			option.Apply(d)
		}
	}
	return d
}

// InFile is a DiagnosticOption that causes a diagnostic without a primary
// span to mention the given file.
type InFile string

// Apply implements [DiagnosticOption].
func (f InFile) Apply(d *Diagnostic) {
	if d.inFile != "" {
		panic("emmydoc/report: set diagnostic path more than once")
	}
	d.inFile = string(f)
}

// Snippet returns a DiagnosticOption that adds a new snippet to a diagnostic.
//
// Any additional arguments to this function are passed to [fmt.Sprintf] to
// produce a message to go with the span.
//
// The first annotation added is the "primary" annotation, and will be rendered
// differently from the others. A zero span produces a nil option.
func Snippet(at source.Spanner, args ...any) DiagnosticOption {
	if at == nil {
		return nil
	}
	span := at.Span()
	if span.IsZero() {
		return nil
	}

	annotation := annotation{Span: span}
	if len(args) > 0 {
		format, ok := args[0].(string)
		if !ok {
			panic("emmydoc/report: expected string as first Snippet argument")
		}
		annotation.message = fmt.Sprintf(format, args[1:]...)
	}
	return annotation
}

// Note returns a DiagnosticOption that provides the user with context about the
// diagnostic, after the annotations.
func Note(format string, args ...any) DiagnosticOption {
	return note(fmt.Sprintf(format, args...))
}

// Help returns a DiagnosticOption that provides the user with a helpful prose
// suggestion for resolving the diagnostic.
func Help(format string, args ...any) DiagnosticOption {
	return help(fmt.Sprintf(format, args...))
}

// annotation is an annotated source code snippet within a [Diagnostic].
type annotation struct {
	source.Span

	// A message to show under this snippet. May be empty.
	message string

	// Whether this is a "primary" snippet, which is used for deciding whether or not
	// to mark the snippet with the same color as the overall diagnostic.
	primary bool
}

func (a annotation) Apply(d *Diagnostic) {
	a.primary = len(d.annotations) == 0
	d.annotations = append(d.annotations, a)
}

type note string
type help string

func (n note) Apply(d *Diagnostic) { d.notes = append(d.notes, string(n)) }
func (h help) Apply(d *Diagnostic) { d.help = append(d.help, string(h)) }
