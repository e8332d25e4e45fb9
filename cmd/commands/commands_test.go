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

package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clauseYAML = `
kind: %s
window: w
start:
  current: s
  when: "true"
end:
  current: e
  when: "e - s == 2"
  only: true
return: '{"first": w[0], "last": w[len(w)-1]}'
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func clauseFile(t *testing.T, kind string) string {
	return writeFile(t, "clause.yaml", strings.Replace(clauseYAML, "%s", kind, 1))
}

func Test_Commands(t *testing.T) {

	t.Run("test root", func(t *testing.T) {
		b := bytes.NewBufferString("")
		rootCmd.SetOut(b)
		rootCmd.SetArgs([]string{"help"})
		Execute()
		output, _ := io.ReadAll(b)
		assert.Contains(t, string(output), "Available Commands")
		assert.Contains(t, string(output), "windows")
	})

	t.Run("Run", func(t *testing.T) {
		cmd := NewRunCommand()
		assert.True(t, cmd.HasLocalFlags())
		assert.Equal(t, "run", cmd.Use)
		assert.Equal(t, "string", cmd.Flag("config").Value.Type())
		assert.Equal(t, "stringToString", cmd.Flag("bind").Value.Type())

		b := bytes.NewBufferString("")
		cmd.SetOut(b)
		cmd.SetIn(strings.NewReader(`[2, 4, 6, 8, 10, 12, 14]`))
		cmd.SetArgs([]string{"--config", clauseFile(t, "tumbling")})
		require.NoError(t, cmd.Execute())
		assert.Equal(t, `{"first":2,"last":4}
{"first":6,"last":8}
{"first":10,"last":12}
`, b.String())
	})

	t.Run("Run sliding from file", func(t *testing.T) {
		cmd := NewRunCommand()
		b := bytes.NewBufferString("")
		cmd.SetOut(b)
		input := writeFile(t, "input.json", `[2, 4, 6, 8]`)
		cmd.SetArgs([]string{"-c", clauseFile(t, "sliding"), "-i", input})
		require.NoError(t, cmd.Execute())
		assert.Equal(t, `{"first":2,"last":4}
{"first":4,"last":6}
{"first":6,"last":8}
`, b.String())
	})

	t.Run("Run flattens list results", func(t *testing.T) {
		cmd := NewRunCommand()
		b := bytes.NewBufferString("")
		cmd.SetOut(b)
		cmd.SetIn(strings.NewReader(`[2, 4, 6, 8, 10, 12, 14]`))
		config := writeFile(t, "clause.yaml", `
kind: tumbling
start:
  current: s
  when: "true"
end:
  current: e
  when: "e - s == 2"
  only: true
return: "[w[0], w[len(w)-1]]"
`)
		cmd.SetArgs([]string{"--config", config})
		require.NoError(t, cmd.Execute())
		assert.Equal(t, "2\n4\n6\n8\n10\n12\n", b.String())
	})

	t.Run("Run with bindings", func(t *testing.T) {
		cmd := NewRunCommand()
		b := bytes.NewBufferString("")
		cmd.SetOut(b)
		cmd.SetIn(strings.NewReader(`[1, 2, 3, 4, 5]`))
		config := writeFile(t, "clause.yaml", `
kind: tumbling
start:
  position: p
  when: "p % int(size) == 1"
return: "len(w) == int(size) ? label : nil"
`)
		cmd.SetArgs([]string{"--config", config, "--bind", "size=2,label=full"})
		require.NoError(t, cmd.Execute())
		assert.Equal(t, "\"full\"\n\"full\"\n", b.String())
	})

	t.Run("Run invalid input", func(t *testing.T) {
		cmd := NewRunCommand()
		cmd.SetOut(io.Discard)
		cmd.SetIn(strings.NewReader(`{"not": "an array"}`))
		cmd.SetArgs([]string{"--config", clauseFile(t, "tumbling")})
		err := cmd.Execute()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "input must be a JSON array")
	})

	t.Run("Run invalid kind", func(t *testing.T) {
		cmd := NewRunCommand()
		cmd.SetOut(io.Discard)
		cmd.SetArgs([]string{"--config", clauseFile(t, "session")})
		err := cmd.Execute()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown window kind")
	})

	t.Run("Windows", func(t *testing.T) {
		cmd := NewWindowsCommand()
		assert.Equal(t, "windows", cmd.Use)
		b := bytes.NewBufferString("")
		cmd.SetOut(b)
		cmd.SetIn(strings.NewReader(`[2, 4, 6, 8, 10, 12, 14]`))
		cmd.SetArgs([]string{"--config", clauseFile(t, "tumbling")})
		require.NoError(t, cmd.Execute())
		assert.Equal(t, `{"start":1,"end":2,"items":[2,4]}
{"start":3,"end":4,"items":[6,8]}
{"start":5,"end":6,"items":[10,12]}
`, b.String())
	})
}

func Test_parseBindings(t *testing.T) {
	b := parseBindings(map[string]string{"n": "2", "s": "abc", "o": `{"a": 1}`})
	assert.Equal(t, float64(2), b["n"])
	assert.Equal(t, "abc", b["s"])
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, b["o"])
}
