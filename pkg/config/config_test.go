/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numaproj/xqwindow/pkg/flwor"
	"github.com/numaproj/xqwindow/pkg/shared/logging"
	"github.com/numaproj/xqwindow/pkg/window"
	"github.com/numaproj/xqwindow/pkg/windowerr"
)

const tumblingYAML = `
kind: tumbling
window: w
start:
  position: s
  when: "true"
end:
  position: e
  when: "e - s == 2"
  only: true
`

func TestLoadFromReader(t *testing.T) {
	d, err := LoadFromReader(strings.NewReader(tumblingYAML), "yaml")
	require.NoError(t, err)
	assert.Equal(t, "tumbling", d.Kind)
	assert.Equal(t, "w", d.Window)
	assert.Equal(t, "s", d.Start.Position)
	require.NotNil(t, d.End)
	assert.True(t, d.End.Only)
	assert.Equal(t, "e - s == 2", d.End.When)
	assert.Equal(t, "", d.Return)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clause.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "kind": "sliding",
  "start": {"current": "first", "next": "second", "when": "second != nil && first < second"},
  "return": "len(w)"
}`), 0o644))
	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sliding", d.Kind)
	assert.Equal(t, "w", d.Window, "window variable defaults to w")
	assert.Nil(t, d.End)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefinition_Build(t *testing.T) {
	t.Run("evaluates end to end", func(t *testing.T) {
		d, err := LoadFromReader(strings.NewReader(tumblingYAML), "yaml")
		require.NoError(t, err)
		spec, ret, err := d.Build()
		require.NoError(t, err)
		assert.Equal(t, window.Tumbling, spec.Kind)
		driver, err := flwor.NewDriver(spec, ret, flwor.WithLogger(logging.NewNopLogger()))
		require.NoError(t, err)
		out, err := driver.Evaluate(context.Background(), window.Sequence{2, 4, 6, 8, 10, 12, 14}, nil)
		require.NoError(t, err)
		assert.Equal(t, window.Sequence{2, 4, 6, 8, 10, 12}, out)
	})

	t.Run("unknown kind", func(t *testing.T) {
		d := &Definition{Kind: "session", Window: "w", Start: Clause{When: "true"}}
		_, _, err := d.Build()
		assert.Error(t, err)
	})

	t.Run("missing condition", func(t *testing.T) {
		d := &Definition{Kind: "tumbling", Window: "w", Start: Clause{When: "true"}, End: &EndClause{}}
		_, _, err := d.Build()
		assert.ErrorContains(t, err, "end clause: missing when condition")
	})

	t.Run("duplicate variables", func(t *testing.T) {
		d := &Definition{Kind: "tumbling", Window: "w", Start: Clause{Current: "x", Position: "x", When: "true"}}
		_, _, err := d.Build()
		assert.True(t, windowerr.IsInternal(err))
	})

	t.Run("bad return expression", func(t *testing.T) {
		d := &Definition{Kind: "tumbling", Window: "w", Start: Clause{When: "true"}, Return: "w["}
		_, _, err := d.Build()
		assert.ErrorContains(t, err, "return clause")
	})
}
