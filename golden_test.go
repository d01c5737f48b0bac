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
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bufbuild/emmydoc"
	"github.com/bufbuild/emmydoc/config"
	"github.com/bufbuild/emmydoc/internal/golden"
	"github.com/bufbuild/emmydoc/report"
	"github.com/bufbuild/emmydoc/source"
)

func TestGolden(t *testing.T) {
	t.Parallel()

	corpus := golden.Corpus{
		Root:       "testdata/vimdoc",
		Refresh:    "EMMYDOC_REFRESH",
		Extensions: []string{"lua"},
		Outputs: []golden.Output{
			{Extension: "txt"},
			{Extension: "stderr"},
		},
	}

	corpus.Run(t, func(t *testing.T, path, text string, outputs []string) {
		settings := config.Default()
		data, err := os.ReadFile(path + ".yaml")
		switch {
		case err == nil:
			settings, err = config.Parse(data, config.YAML)
			require.NoError(t, err)
		case !errors.Is(err, fs.ErrNotExist):
			t.Fatal(err)
		}

		files := source.NewMap()
		files.Add(path, text)
		gen := emmydoc.Generator{Opener: files, Settings: settings}
		doc, err := gen.Generate(context.Background(), path)
		require.NoError(t, err)

		var out strings.Builder
		require.NoError(t, doc.Write(&out))
		outputs[0] = out.String()
		outputs[1], _, _ = report.Renderer{Compact: true, ShowRemarks: true}.RenderString(doc.Report)
	})
}
