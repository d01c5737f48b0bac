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
	"io"
	"strconv"
	"strings"

	"github.com/bufbuild/emmydoc/internal/ext/unicodex"
)

// Renderer configures a diagnostic rendering operation.
type Renderer struct {
	// If set, uses a compact one-line format for each diagnostic.
	Compact bool

	// If set, rendering results are enriched with ANSI color escapes.
	Colorize bool

	// Upgrades all warnings to errors.
	WarningsAreErrors bool

	// If set, remark diagnostics will be printed.
	ShowRemarks bool
}

// Render renders a diagnostic report.
//
// In addition to returning the rendering result, returns the number of errors
// and warnings that were rendered.
//
// On the other hand, the actual error-typed return is an error when writing to
// the writer.
func (r Renderer) Render(report *Report, out io.Writer) (errorCount, warningCount int, err error) {
	for i := range report.Diagnostics {
		d := &report.Diagnostics[i]
		if !r.ShowRemarks && d.level == Remark {
			continue
		}

		if _, err = fmt.Fprintln(out, r.Diagnostic(d)); err != nil {
			return errorCount, warningCount, err
		}
		if !r.Compact {
			if _, err = fmt.Fprintln(out); err != nil {
				return errorCount, warningCount, err
			}
		}

		switch {
		case d.level == Error, d.level == Warning && r.WarningsAreErrors:
			errorCount++
		case d.level == Warning:
			warningCount++
		}
	}
	if r.Compact {
		return errorCount, warningCount, nil
	}

	c := r.colors()
	pluralize := func(count int, what string) string {
		if count == 1 {
			return "1 " + what
		}
		return fmt.Sprint(count, " ", what, "s")
	}

	switch {
	case errorCount > 0:
		_, err = fmt.Fprint(out, c.bError, "encountered ", pluralize(errorCount, "error"))
		if err == nil && warningCount > 0 {
			_, err = fmt.Fprint(out, " and ", pluralize(warningCount, "warning"))
		}
		if err == nil {
			_, err = fmt.Fprintln(out, c.reset)
		}
	case warningCount > 0:
		_, err = fmt.Fprintln(out, c.bWarning+"encountered "+pluralize(warningCount, "warning")+c.reset)
	}
	return errorCount, warningCount, err
}

// RenderString is a helper for calling [Renderer.Render] with a [strings.Builder].
func (r Renderer) RenderString(report *Report) (text string, errorCount, warningCount int) {
	var buf strings.Builder
	e, w, _ := r.Render(report, &buf)
	return buf.String(), e, w
}

// Diagnostic renders a single diagnostic to a string.
func (r Renderer) Diagnostic(d *Diagnostic) string {
	level := d.level
	if level == Warning && r.WarningsAreErrors {
		level = Error
	}
	c := r.colors()

	// For the compact style, we imitate the Go compiler.
	if r.Compact {
		primary := d.Primary()
		switch {
		case !primary.IsZero():
			start := primary.StartLoc()
			return fmt.Sprintf("%s%s: %s:%d:%d: %s%s",
				c.color(level), level, primary.Path(), start.Line, start.Column, d.Message(), c.reset)
		case d.inFile != "":
			return fmt.Sprintf("%s%s: %s: %s%s",
				c.color(level), level, d.inFile, d.Message(), c.reset)
		default:
			return fmt.Sprintf("%s%s: %s%s", c.color(level), level, d.Message(), c.reset)
		}
	}

	// Otherwise, we imitate the Rust compiler.
	var out strings.Builder
	fmt.Fprint(&out, c.bold(level), level, ": ", d.Message(), c.reset)

	var greatestLine int
	for _, a := range d.annotations {
		greatestLine = max(greatestLine, a.StartLoc().Line)
	}
	lineBarWidth := max(2, len(strconv.Itoa(greatestLine)))

	for i, a := range d.annotations {
		start := a.StartLoc()
		out.WriteByte('\n')
		out.WriteString(c.nAccent)
		padBy(&out, lineBarWidth)
		arrow := "-->"
		if i > 0 {
			arrow = ":::"
		}
		fmt.Fprintf(&out, "%s %s:%d:%d", arrow, a.Path(), start.Line, start.Column)

		out.WriteByte('\n')
		padBy(&out, lineBarWidth)
		out.WriteString(" |")
		r.window(&out, c, level, a, lineBarWidth)
	}

	if len(d.annotations) == 0 && d.inFile != "" {
		out.WriteByte('\n')
		out.WriteString(c.nAccent)
		padBy(&out, lineBarWidth)
		fmt.Fprintf(&out, "--> %s", d.inFile)
	}

	footers := make([][2]string, 0, len(d.notes)+len(d.help))
	for _, note := range d.notes {
		footers = append(footers, [2]string{"note", note})
	}
	for _, help := range d.help {
		footers = append(footers, [2]string{"help", help})
	}
	for _, footer := range footers {
		out.WriteByte('\n')
		out.WriteString(c.nAccent)
		padBy(&out, lineBarWidth)
		out.WriteString(" = ")
		fmt.Fprint(&out, c.bRemark, footer[0], ": ", c.reset)
		for i, line := range strings.Split(footer[1], "\n") {
			if i > 0 {
				out.WriteByte('\n')
				padBy(&out, lineBarWidth+3+len(footer[0])+2)
			}
			out.WriteString(line)
		}
	}

	out.WriteString(c.reset)
	return out.String()
}

// window renders the source line an annotation starts on, with the annotated
// region underlined. Spans that cross lines are underlined to the end of their
// first line.
func (r Renderer) window(out *strings.Builder, c styleSheet, level Level, a annotation, lineBarWidth int) {
	start := a.StartLoc()
	text := a.File.Line(start.Line)

	out.WriteByte('\n')
	out.WriteString(c.nAccent)
	fmt.Fprintf(out, "%*d | ", lineBarWidth, start.Line)
	out.WriteString(c.reset)
	w := unicodex.Width{Out: out}
	_, _ = w.WriteString(text)

	var width int
	if end := a.EndLoc(); end.Line == start.Line {
		width = max(1, end.Column-start.Column)
	} else {
		width = max(1, w.Column+1-start.Column)
	}

	underline, color := "^", c.color(level)
	if !a.primary {
		underline, color = "-", c.nAccent
	}

	out.WriteByte('\n')
	out.WriteString(c.nAccent)
	padBy(out, lineBarWidth)
	out.WriteString(" | ")
	padBy(out, start.Column-1)
	out.WriteString(color)
	out.WriteString(strings.Repeat(underline, width))
	if a.message != "" {
		out.WriteByte(' ')
		out.WriteString(a.message)
	}
	out.WriteString(c.reset)
}

func padBy(out *strings.Builder, spaces int) {
	for range spaces {
		out.WriteByte(' ')
	}
}
