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

package emmydoc_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/emmydoc"
	"github.com/bufbuild/emmydoc/ast"
	"github.com/bufbuild/emmydoc/config"
	"github.com/bufbuild/emmydoc/report"
	"github.com/bufbuild/emmydoc/source"
)

func TestGenerateOrder(t *testing.T) {
	t.Parallel()

	files := source.NewMap()
	var paths []string
	for _, name := range []string{"e", "d", "c", "b", "a"} {
		path := name + ".lua"
		paths = append(paths, path)
		files.Add(path, "local M = {}\n\n---@tag "+name+"\n\nreturn M\n")
	}

	for _, par := range []int{0, 1, 2} {
		gen := emmydoc.Generator{Opener: files, Settings: config.Default(), MaxParallelism: par}
		doc, err := gen.Generate(context.Background(), paths...)
		require.NoError(t, err)
		assert.Empty(t, doc.Report.Diagnostics)

		var order []string
		for _, node := range doc.Nodes {
			order = append(order, node.(*ast.Tag).Name)
		}
		assert.Equal(t, []string{"e", "d", "c", "b", "a"}, order)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, doc.Tags())
	}
}

func TestGenerateDuplicateTags(t *testing.T) {
	t.Parallel()

	files := source.NewMap()
	files.Add("a.lua", "local A = {}\n\n---@class Point\n---@field x number\n\nreturn A\n")
	files.Add("b.lua", "local B = {}\n\n---@class Point\n---@field y number\n\nreturn B\n")

	gen := emmydoc.Generator{Opener: files}
	doc, err := gen.Generate(context.Background(), "a.lua", "b.lua")
	require.NoError(t, err)

	require.Len(t, doc.Report.Diagnostics, 1)
	d := &doc.Report.Diagnostics[0]
	assert.Equal(t, report.Warning, d.Level())
	assert.Equal(t, "help tag `*Point*` is defined more than once", d.Message())
	assert.Equal(t, "b.lua", d.Path())
	assert.Equal(t, 3, d.Primary().StartLoc().Line)

	// Both classes are still rendered.
	assert.Len(t, doc.Nodes, 2)
	assert.Equal(t, []string{"Point"}, doc.Tags())
}

func TestGenerateMissingFile(t *testing.T) {
	t.Parallel()

	files := source.NewMap()
	files.Add("ok.lua", "local M = {}\n---@tag ok\nreturn M\n")

	gen := emmydoc.Generator{Opener: files}
	doc, err := gen.Generate(context.Background(), "missing.lua", "ok.lua")
	require.NoError(t, err)

	require.Len(t, doc.Report.Diagnostics, 1)
	d := &doc.Report.Diagnostics[0]
	assert.Equal(t, report.Error, d.Level())
	assert.Equal(t, "missing.lua", d.Path())
	assert.ErrorIs(t, d.Err(), fs.ErrNotExist)
	assert.Len(t, doc.Nodes, 1)
}

func TestGenerateSkipsMalformedFiles(t *testing.T) {
	t.Parallel()

	files := source.NewMap()
	files.Add("bad.lua", "local M = {}\n\n---@tag first\n\n---@param\nfunction M.f() end\n\nreturn M\n")

	gen := emmydoc.Generator{Opener: files}
	doc, err := gen.Generate(context.Background(), "bad.lua")
	require.NoError(t, err)

	assert.True(t, doc.Report.HasErrors())
	assert.Empty(t, doc.Nodes)
	assert.Empty(t, doc.Render())
}

func TestGeneratePlain(t *testing.T) {
	t.Parallel()

	text := "---Adds one\n---@param n number\nlocal function inc(n)\n  return n + 1\nend\n"
	files := source.NewMap()
	files.Add("inc.lua", text)

	linked := emmydoc.Generator{Opener: files}
	doc, err := linked.Generate(context.Background(), "inc.lua")
	require.NoError(t, err)
	assert.Empty(t, doc.Nodes)
	assert.Equal(t, 1, doc.Report.Count(report.Warning))

	plain := emmydoc.Generator{Opener: files, Plain: true}
	doc, err = plain.Generate(context.Background(), "inc.lua")
	require.NoError(t, err)
	assert.Empty(t, doc.Report.Diagnostics)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, []string{"inc"}, doc.Tags())
}

func TestGenerateCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := emmydoc.Generator{Opener: source.NewMap()}
	_, err := gen.Generate(ctx, "a.lua")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteTags(t *testing.T) {
	t.Parallel()

	files := source.NewMap()
	files.Add("m.lua", `---@mod mymod My module

local M = {}

---Does things
function M.run() end

---@class mymod.Config
---@field verbose boolean

return M
`)

	gen := emmydoc.Generator{Opener: files}
	doc, err := gen.Generate(context.Background(), "m.lua")
	require.NoError(t, err)
	require.Empty(t, doc.Report.Diagnostics)

	var out strings.Builder
	require.NoError(t, doc.WriteTags(&out, "mymod.txt"))
	assert.Equal(t, ""+
		"M.run\tmymod.txt\t/*M.run*\n"+
		"mymod\tmymod.txt\t/*mymod*\n"+
		"mymod.Config\tmymod.txt\t/*mymod.Config*\n",
		out.String(),
	)
}
