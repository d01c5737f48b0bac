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

package token

import (
	"fmt"
	"strings"

	"github.com/bufbuild/emmydoc/source"
)

// Spanned is a token together with the text it was lexed from.
type Spanned struct {
	Token Token
	source.Span
}

// Stream is the ordered output of lexing one file.
type Stream struct {
	File   *source.File
	Tokens []Spanned
}

// Push appends a token lexed from the given byte range.
func (s *Stream) Push(tok Token, start, end int) {
	s.Tokens = append(s.Tokens, Spanned{Token: tok, Span: s.File.Span(start, end)})
}

// Len returns the number of tokens in the stream.
func (s *Stream) Len() int {
	return len(s.Tokens)
}

// Kinds returns the tokens without their spans, for use in tests and
// debugging.
func (s *Stream) Kinds() []Token {
	toks := make([]Token, len(s.Tokens))
	for i, t := range s.Tokens {
		toks[i] = t.Token
	}
	return toks
}

// String renders one token per line, prefixed with its location.
func (s *Stream) String() string {
	var out strings.Builder
	for _, t := range s.Tokens {
		start := t.StartLoc()
		fmt.Fprintf(&out, "%d:%d %v\n", start.Line, start.Column, t.Token)
	}
	return out.String()
}
