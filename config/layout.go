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

package config

import (
	"fmt"
	"strings"
)

// Layout selects how parameter, return and field tables are laid out.
type Layout int8

const (
	// Name, type and description in three columns.
	LayoutDefault Layout = iota
	// Name in one column; type and description in another, with description
	// continuation lines indented by [Settings.IndentWidth].
	LayoutCompact
	// A single column: name, type and description on one line.
	LayoutMini
)

var layoutNames = [...]string{
	LayoutDefault: "default",
	LayoutCompact: "compact",
	LayoutMini:    "mini",
}

// String implements [fmt.Stringer].
func (l Layout) String() string {
	if l < 0 || int(l) >= len(layoutNames) {
		return fmt.Sprintf("Layout(%d)", int(l))
	}
	return layoutNames[l]
}

// MarshalText implements [encoding.TextMarshaler].
func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (l *Layout) UnmarshalText(text []byte) error {
	return l.Set(string(text))
}

// Set parses a layout name, so that a *Layout can be used as a command line
// flag value.
func (l *Layout) Set(name string) error {
	for i, n := range layoutNames {
		if strings.EqualFold(n, name) {
			*l = Layout(i)
			return nil
		}
	}
	return fmt.Errorf("unknown layout %q, want one of %s", name, strings.Join(layoutNames[:], ", "))
}

// Type returns the name of the flag value type.
func (*Layout) Type() string {
	return "layout"
}
