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

// Package config holds the settings that control how documentation is linked
// and rendered, and loads them from YAML or TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultIndentWidth is the continuation indent used when
// [Settings.IndentWidth] is zero.
const DefaultIndentWidth = 4

// Settings controls the export-binding pass and the renderer.
type Settings struct {
	// Display functions under the module name instead of the declared
	// qualifier.
	PrefixFunc bool `yaml:"prefix_func" toml:"prefix_func"`
	// Qualify alias help tags with the module name.
	PrefixAlias bool `yaml:"prefix_alias" toml:"prefix_alias"`
	// Qualify class help tags with the module name.
	PrefixClass bool `yaml:"prefix_class" toml:"prefix_class"`
	// Display documented values under the module name instead of the declared
	// qualifier.
	PrefixType bool `yaml:"prefix_type" toml:"prefix_type"`
	// Render an optional parameter a? of type T as {a} (nil|T).
	ExpandOpt bool `yaml:"expand_opt" toml:"expand_opt"`

	Layout Layout `yaml:"layout" toml:"layout"`
	// Indent of description continuation lines in the compact and mini
	// layouts.
	IndentWidth int `yaml:"indent_width" toml:"indent_width"`

	// Whether to end the generated help file with a Vim modeline.
	Modeline bool `yaml:"modeline" toml:"modeline"`
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{IndentWidth: DefaultIndentWidth, Modeline: true}
}

// Indent returns the continuation indent, applying the default.
func (s Settings) Indent() int {
	if s.IndentWidth == 0 {
		return DefaultIndentWidth
	}
	return s.IndentWidth
}

// Validate checks that the settings are usable.
func (s Settings) Validate() error {
	if s.IndentWidth < 0 {
		return fmt.Errorf("indent_width must not be negative, got %d", s.IndentWidth)
	}
	if s.Layout < LayoutDefault || s.Layout > LayoutMini {
		return fmt.Errorf("invalid layout %v", s.Layout)
	}
	return nil
}

// Format is a configuration file format.
type Format int8

const (
	YAML Format = iota + 1
	TOML
)

// String implements [fmt.Stringer].
func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf determines a configuration format from a file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, true
	case ".toml":
		return TOML, true
	default:
		return 0, false
	}
}

// Load reads settings from a YAML or TOML file, chosen by its extension.
// Keys that are not set keep their [Default] values.
func Load(path string) (Settings, error) {
	format, ok := FormatOf(path)
	if !ok {
		return Settings{}, fmt.Errorf("config: %s: unsupported file type, want .yaml, .yml or .toml", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return Settings{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes settings in the given format. Unknown keys are an error.
func Parse(data []byte, format Format) (Settings, error) {
	s := Default()
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return Settings{}, err
		}

	case TOML:
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return Settings{}, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Settings{}, fmt.Errorf("unknown key %q", undecoded[0].String())
		}

	default:
		return Settings{}, fmt.Errorf("unsupported format %v", format)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
