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

package emmydoc

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/bufbuild/emmydoc/ast"
	"github.com/bufbuild/emmydoc/config"
	"github.com/bufbuild/emmydoc/linker"
	"github.com/bufbuild/emmydoc/parser"
	"github.com/bufbuild/emmydoc/report"
	"github.com/bufbuild/emmydoc/source"
)

// Generator turns Lua files into a help [Document].
type Generator struct {
	// Loads the files to document. This field is required.
	Opener source.Opener
	// Controls how documentation is linked and rendered.
	Settings config.Settings
	// The maximum number of files read at once. If unspecified or set to a
	// non-positive value, then runtime.GOMAXPROCS(-1) is used.
	MaxParallelism int
	// If set, every documented construct is kept, whether or not its file
	// exports it, and no help tags are renamed.
	Plain bool
	// Receives debug logs about each processed file. May be nil.
	Logger *slog.Logger
}

// Generate documents the given files, in order.
//
// Files are read concurrently but always processed in the order given, so
// the output does not depend on scheduling. A file that cannot be read is
// reported in the document's report and skipped. The only error returned is
// ctx's, if it is cancelled while files are being read.
func (g *Generator) Generate(ctx context.Context, paths ...string) (*Document, error) {
	files, err := g.open(ctx, paths)
	if err != nil {
		return nil, err
	}

	doc := newDocument(g.Settings)
	for i, path := range paths {
		if files[i].err != nil {
			doc.Report.Error(&report.ErrInFile{Err: files[i].err, Path: path})
			continue
		}
		doc.add(g.file(files[i].file, doc.Report))
	}
	return doc, nil
}

// opened is the result of opening one file.
type opened struct {
	file *source.File
	err  error
}

// open reads every path, storing the results by index.
func (g *Generator) open(ctx context.Context, paths []string) ([]opened, error) {
	par := g.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
	}

	results := make([]opened, len(paths))
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(par)
	for i, path := range paths {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			file, err := g.Opener.Open(path)
			results[i] = opened{file: file, err: err}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// file lexes, parses and links a single file.
//
// A file whose annotations could not be lexed contributes nothing, since
// what remains of its documentation could be attached to the wrong
// declarations.
func (g *Generator) file(file *source.File, r *report.Report) []ast.Node {
	logger := g.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With(slog.String("path", file.Path()))

	before := r.Count(report.Error)
	stream := parser.Lex(file, r)
	if r.Count(report.Error) > before {
		logger.Debug("skipping file with malformed annotations", slog.Int("tokens", stream.Len()))
		return nil
	}

	nodes := parser.Parse(stream, r)
	parsed := len(nodes)
	if !g.Plain {
		nodes = linker.Link(nodes, g.Settings, r)
	}
	logger.Debug("processed file",
		slog.Int("tokens", stream.Len()),
		slog.Int("nodes", parsed),
		slog.Int("kept", len(nodes)))
	return nodes
}
