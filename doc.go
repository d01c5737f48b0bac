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

// Package emmydoc generates Vim help files from EmmyLua annotations.
//
// Generating documentation happens in the following phases:
//
//  1. Lex: the annotation comments and declarations of each Lua file are
//     turned into a token stream.
//     Also see: parser.Lex
//  2. Parse: the tokens are grouped into documentation nodes.
//     Also see: parser.Parse
//  3. Link: each file's nodes are filtered down to the symbols the file
//     exports, and their help tags are qualified as configured.
//     Also see: linker.Link
//  4. Render: the nodes of all files are laid out as a help file.
//     Also see: vimdoc.Render
//
// A [Generator] runs the first three phases over a list of files and
// collects the result into a [Document], which renders the last one.
//
// Problems in the documented sources never stop generation. They are
// collected into the document's [report.Report], and the constructs they
// affect are left out of the output.
package emmydoc
