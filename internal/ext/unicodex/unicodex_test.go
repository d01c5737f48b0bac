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

package unicodex_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/emmydoc/internal/ext/unicodex"
)

func TestWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, unicodex.StringWidth("hello"))
	assert.Equal(t, 4, unicodex.StringWidth("日本"))
	assert.Equal(t, 9, unicodex.StringWidth("a\tb"))

	var out strings.Builder
	w := unicodex.Width{Column: 2, Tabstop: 4, Out: &out}
	_, err := w.WriteString("x\ty")
	assert.NoError(t, err)
	assert.Equal(t, "x y", out.String())
	assert.Equal(t, 5, w.Column)
}

func TestPad(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "   *x*", unicodex.PadLeft("*x*", 6))
	assert.Equal(t, "*x*", unicodex.PadLeft("*x*", 2))
	assert.Equal(t, "··|m|", unicodex.PadLeftWith("|m|", 5, '·'))
	assert.Equal(t, "日本  ", unicodex.PadRight("日本", 6))
}

func TestIdentPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, unicodex.IdentPrefix("foo.bar"))
	assert.Equal(t, 4, unicodex.IdentPrefix("_a1_ = 1"))
	assert.Equal(t, 0, unicodex.IdentPrefix("1abc"))
	assert.Equal(t, 0, unicodex.IdentPrefix(""))
	assert.Equal(t, len("größe"), unicodex.IdentPrefix("größe("))
}
