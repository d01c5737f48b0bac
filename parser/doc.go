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

// Package parser turns the EmmyLua annotations in a Lua file into
// documentation nodes.
//
// This happens in two passes. [Lex] turns each ---@tag line, plain ---
// comment line and Lua declaration into a [token.Token]. [Parse] then groups
// runs of tokens into [ast.Node] values, such as a function together with its
// description, parameters and return values. Type expressions found in tags
// are parsed by [ParseType].
//
// Both passes keep going after an error, so that one bad annotation does not
// hide problems further down the file.
package parser
