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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/emmydoc/config"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format config.Format
		text   string
		want   config.Settings
	}{
		{
			name:   "empty-yaml",
			format: config.YAML,
			want:   config.Default(),
		},
		{
			name:   "yaml",
			format: config.YAML,
			text:   "prefix_func: true\nprefix_class: true\nlayout: compact\nindent_width: 2\n",
			want: config.Settings{
				PrefixFunc:  true,
				PrefixClass: true,
				Layout:      config.LayoutCompact,
				IndentWidth: 2,
				Modeline:    true,
			},
		},
		{
			name:   "toml",
			format: config.TOML,
			text:   "expand_opt = true\nprefix_alias = true\nprefix_type = true\nlayout = \"Mini\"\nmodeline = false\n",
			want: config.Settings{
				PrefixAlias: true,
				PrefixType:  true,
				ExpandOpt:   true,
				Layout:      config.LayoutMini,
				IndentWidth: config.DefaultIndentWidth,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.Parse([]byte(test.text), test.format)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format config.Format
		text   string
		want   string
	}{
		{name: "yaml-unknown-key", format: config.YAML, text: "bogus: 1\n", want: "field bogus not found"},
		{name: "toml-unknown-key", format: config.TOML, text: "bogus = 1\n", want: `unknown key "bogus"`},
		{name: "bad-layout", format: config.YAML, text: "layout: grid\n", want: `unknown layout "grid"`},
		{name: "negative-indent", format: config.TOML, text: "indent_width = -1\n", want: "must not be negative"},
		{name: "bad-format", format: 0, want: "unsupported format"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Parse([]byte(test.text), test.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.want)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "emmydoc.yml")
	require.NoError(t, os.WriteFile(path, []byte("expand_opt: true\n"), 0o600))

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, got.ExpandOpt)
	assert.Equal(t, config.DefaultIndentWidth, got.Indent())

	_, err = config.Load(filepath.Join(dir, "emmydoc.json"))
	assert.ErrorContains(t, err, "unsupported file type")

	_, err = config.Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLayout(t *testing.T) {
	t.Parallel()

	var l config.Layout
	require.NoError(t, l.Set("COMPACT"))
	assert.Equal(t, config.LayoutCompact, l)
	assert.Equal(t, "compact", l.String())
	assert.Equal(t, "layout", l.Type())

	text, err := config.LayoutMini.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "mini", string(text))

	assert.Error(t, l.Set("grid"))
	assert.Equal(t, "Layout(7)", config.Layout(7).String())
	assert.Equal(t, 0, config.Settings{}.IndentWidth)
	assert.Equal(t, 4, config.Settings{}.Indent())
}
