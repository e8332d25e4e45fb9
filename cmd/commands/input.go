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
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/numaproj/xqwindow/pkg/window"
)

// readInput reads a JSON array from path, "-" meaning stdin.
func readInput(path string, stdin io.Reader) (window.Sequence, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input %q, %w", path, err)
	}
	var items []interface{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("input must be a JSON array, %w", err)
	}
	return window.Sequence(items), nil
}

// parseBindings turns name=value pairs into bindings. Values holding valid JSON are
// decoded, anything else is bound as a string.
func parseBindings(pairs map[string]string) window.Bindings {
	b := make(window.Bindings, len(pairs))
	for name, raw := range pairs {
		var v interface{}
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			b[name] = raw
			continue
		}
		b[name] = v
	}
	return b
}

func writeJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
