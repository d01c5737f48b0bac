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

package source

import (
	"slices"
	"strings"
	"sync"

	"github.com/bufbuild/emmydoc/internal/ext/unicodex"
)

// File is a Lua source file fed to the documentation pipeline.
//
// It contains additional book-keeping information for resolving span
// locations. Files are immutable once created.
//
// A nil *File behaves like an empty file with the path name "".
type File struct {
	path, text string

	once sync.Once
	// A prefix sum of the line lengths of text. Given a byte offset, it is possible
	// to recover which line that offset is on by performing a binary search on this
	// list.
	//
	// Alternatively, this slice can be interpreted as the index after each \n in the
	// original file.
	lineIndex []int
}

// NewFile constructs a new source file.
func NewFile(path, text string) *File {
	return &File{path: path, text: text}
}

// Path returns this file's path, as given to the [Opener] that produced it.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Text returns this file's textual contents.
func (f *File) Text() string {
	if f == nil {
		return ""
	}
	return f.text
}

// Location converts a byte offset into a user-displayable location. Columns
// are measured in terminal cells, so that a caret placed under the column
// lines up with the rendered source line.
//
// This operation is O(log n).
func (f *File) Location(offset int) Location {
	if f == nil || offset <= 0 {
		return Location{Offset: 0, Line: 1, Column: 1}
	}
	offset = min(offset, len(f.text))

	lines := f.lines()
	line, exact := slices.BinarySearch(lines, offset)
	if !exact {
		line--
	}

	w := unicodex.Width{}
	_, _ = w.WriteString(f.text[lines[line]:offset])

	return Location{
		Offset: offset,
		Line:   line + 1,
		Column: w.Column + 1,
	}
}

// LineCount returns the number of lines in this file. A trailing newline
// starts a new, empty line.
func (f *File) LineCount() int {
	return len(f.lines())
}

// Line returns the given 1-indexed line, without its trailing newline.
func (f *File) Line(line int) string {
	start, end := f.LineOffsets(line)
	return strings.TrimSuffix(f.text[start:end], "\n")
}

// LineOffsets returns the offsets for the given line, including its trailing
// newline.
//
// line is expected to be 1-indexed.
func (f *File) LineOffsets(line int) (start, end int) {
	lines := f.lines()
	if len(lines) == line {
		return lines[line-1], len(f.Text())
	}
	return lines[line-1], lines[line]
}

// Span is a shorthand for creating a new Span.
func (f *File) Span(start, end int) Span {
	if f == nil {
		return Span{}
	}
	return Span{f, start, end}
}

// EOF returns an empty span at the very end of the file.
func (f *File) EOF() Span {
	return f.Span(len(f.Text()), len(f.Text()))
}

func (f *File) lines() []int {
	if f == nil {
		return nil
	}

	f.once.Do(func() {
		var next int
		text := f.text
		for {
			newline := strings.IndexByte(text, '\n') + 1
			if newline == 0 {
				break
			}
			text = text[newline:]

			f.lineIndex = append(f.lineIndex, next)
			next += newline
		}
		f.lineIndex = append(f.lineIndex, next)
	})
	return f.lineIndex
}
