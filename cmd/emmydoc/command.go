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

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/bufbuild/emmydoc"
	"github.com/bufbuild/emmydoc/config"
	"github.com/bufbuild/emmydoc/report"
	"github.com/bufbuild/emmydoc/source"
)

// errFailed is returned once diagnostics explaining a failure have already
// been printed.
var errFailed = errors.New("emmydoc: generation failed")

type flags struct {
	config     string
	output     string
	tags       string
	noModeline bool
	plain      bool
	verbose    bool
	settings   config.Settings
}

func newCommand(stdout, stderr io.Writer) *cobra.Command {
	f := &flags{settings: config.Default()}
	cmd := &cobra.Command{
		Use:   "emmydoc [flags] <file or glob>...",
		Short: "Generate a Vim help file from EmmyLua annotations",
		Long: `emmydoc reads Lua files documented with EmmyLua annotations and writes
a Vim help file documenting what each file exports.

Files are documented in the order given. Arguments may be doublestar
globs, such as lua/**/*.lua, which expand in lexical order.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, f, args, stdout, stderr)
			if err != nil && !errors.Is(err, errFailed) {
				fmt.Fprintln(stderr, "emmydoc:", err)
			}
			return err
		},
	}

	flagSet := cmd.Flags()
	flagSet.StringVar(&f.config, "config", "", "read settings from a .yaml, .yml or .toml `file`")
	flagSet.StringVarP(&f.output, "output", "o", "", "write the help text to `file` instead of standard output")
	flagSet.StringVar(&f.tags, "tags", "", "also write a Vim tags `file` for the help text (requires --output)")
	flagSet.BoolVar(&f.noModeline, "no-modeline", false, "do not end the help text with a modeline")
	flagSet.BoolVar(&f.plain, "plain", false, "document every annotated construct, exported or not")
	flagSet.BoolVarP(&f.verbose, "verbose", "v", false, "log each processed file")

	flagSet.BoolVar(&f.settings.PrefixFunc, "prefix-func", false, "show functions under the module name")
	flagSet.BoolVar(&f.settings.PrefixAlias, "prefix-alias", false, "qualify alias tags with the module name")
	flagSet.BoolVar(&f.settings.PrefixClass, "prefix-class", false, "qualify class tags with the module name")
	flagSet.BoolVar(&f.settings.PrefixType, "prefix-type", false, "show values under the module name")
	flagSet.BoolVar(&f.settings.ExpandOpt, "expand-opt", false, "render optional parameters as {x} (nil|T)")
	flagSet.Var(&f.settings.Layout, "layout", "table `layout`: default, compact or mini")
	flagSet.IntVar(&f.settings.IndentWidth, "indent", config.DefaultIndentWidth, "indent of description continuation lines in the compact and mini layouts")
	return cmd
}

func run(cmd *cobra.Command, f *flags, args []string, stdout, stderr io.Writer) error {
	settings, err := f.resolve(cmd)
	if err != nil {
		return err
	}
	if f.tags != "" && f.output == "" {
		return errors.New("--tags requires --output")
	}

	paths, err := expand(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	gen := emmydoc.Generator{
		Opener:   source.OS{},
		Settings: settings,
		Plain:    f.plain,
		Logger:   slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}
	doc, err := gen.Generate(cmd.Context(), paths...)
	if err != nil {
		return err
	}

	doc.Report.Sort()
	errs, _, err := report.Renderer{}.Render(doc.Report, stderr)
	if err != nil {
		return err
	}
	// Files with errors are already left out of doc, so the rest is still
	// written before failing.
	if err := f.write(doc, stdout); err != nil {
		return err
	}
	if errs > 0 {
		return errFailed
	}
	return nil
}

// write sends the rendered document, and the tags file if requested, to
// their destinations.
func (f *flags) write(doc *emmydoc.Document, stdout io.Writer) error {
	if f.output == "" {
		return doc.Write(stdout)
	}
	if err := writeFile(f.output, doc.Write); err != nil {
		return err
	}
	if f.tags == "" {
		return nil
	}
	helpFile := filepath.Base(f.output)
	return writeFile(f.tags, func(w io.Writer) error {
		return doc.WriteTags(w, helpFile)
	})
}

// resolve merges the configuration file, if any, with the flags that were
// set explicitly. Flags win.
func (f *flags) resolve(cmd *cobra.Command) (config.Settings, error) {
	settings := f.settings
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return config.Settings{}, err
		}

		flagSet := cmd.Flags()
		override := func(name string, dst *bool, src bool) {
			if flagSet.Changed(name) {
				*dst = src
			}
		}
		override("prefix-func", &loaded.PrefixFunc, f.settings.PrefixFunc)
		override("prefix-alias", &loaded.PrefixAlias, f.settings.PrefixAlias)
		override("prefix-class", &loaded.PrefixClass, f.settings.PrefixClass)
		override("prefix-type", &loaded.PrefixType, f.settings.PrefixType)
		override("expand-opt", &loaded.ExpandOpt, f.settings.ExpandOpt)
		if flagSet.Changed("layout") {
			loaded.Layout = f.settings.Layout
		}
		if flagSet.Changed("indent") {
			loaded.IndentWidth = f.settings.IndentWidth
		}
		settings = loaded
	}

	if f.noModeline {
		settings.Modeline = false
	}
	return settings, settings.Validate()
}

// expand replaces glob arguments with the files they match. Other arguments
// are kept as they are, so that missing files are reported when opened.
func expand(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !hasMeta(arg) {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		slices.Sort(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

func hasMeta(path string) bool {
	for _, r := range path {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// writeFile creates path and fills it in with write.
func writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()
	return write(file)
}
