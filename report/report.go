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
	"slices"
	"strings"
)

// Report is a collection of diagnostics.
//
// A Report is not safe for concurrent use.
type Report struct {
	Diagnostics []Diagnostic
}

// Error pushes an error diagnostic onto this report.
func (r *Report) Error(err Diagnose) *Diagnostic {
	d := r.push(err, Error)
	err.Diagnose(d)
	return d
}

// Warn pushes a warning diagnostic onto this report.
func (r *Report) Warn(err Diagnose) *Diagnostic {
	d := r.push(err, Warning)
	err.Diagnose(d)
	return d
}

// Remark pushes a remark diagnostic onto this report.
func (r *Report) Remark(err Diagnose) *Diagnostic {
	d := r.push(err, Remark)
	err.Diagnose(d)
	return d
}

// Count returns the number of diagnostics at the given level.
func (r *Report) Count(level Level) int {
	var n int
	for i := range r.Diagnostics {
		if r.Diagnostics[i].level == level {
			n++
		}
	}
	return n
}

// HasErrors returns whether this report contains any error diagnostics.
func (r *Report) HasErrors() bool {
	return r.Count(Error) > 0
}

// Sort sorts this report's diagnostics by file path and then by position,
// keeping diagnostics without a snippet after those with one.
//
// The sort is stable, so diagnostics at the same position keep the order in
// which they were reported.
func (r *Report) Sort() {
	slices.SortStableFunc(r.Diagnostics, func(a, b Diagnostic) int {
		if c := strings.Compare(a.Path(), b.Path()); c != 0 {
			return c
		}

		aSpan, bSpan := a.Primary(), b.Primary()
		switch {
		case aSpan.IsZero() && bSpan.IsZero():
			return 0
		case aSpan.IsZero():
			return 1
		case bSpan.IsZero():
			return -1
		}
		return aSpan.Start - bSpan.Start
	})
}

// push is the core "make me a diagnostic" function.
func (r *Report) push(err error, level Level) *Diagnostic {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{err: err, level: level})
	return &r.Diagnostics[len(r.Diagnostics)-1]
}
