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
	"github.com/spf13/cobra"

	"github.com/numaproj/xqwindow/pkg/config"
	"github.com/numaproj/xqwindow/pkg/shared/logging"
	"github.com/numaproj/xqwindow/pkg/window"
)

type windowOutput struct {
	Start int             `json:"start"`
	End   int             `json:"end"`
	Items window.Sequence `json:"items"`
}

func NewWindowsCommand() *cobra.Command {

	var (
		configFile string
		inputFile  string
		bindings   map[string]string
	)

	command := &cobra.Command{
		Use:   "windows",
		Short: "Print the windows a clause builds over the input, ignoring its return expression",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger().Named("windows")
			defer func() { _ = logger.Sync() }()
			def, err := config.Load(configFile)
			if err != nil {
				return err
			}
			spec, _, err := def.Build()
			if err != nil {
				return err
			}
			input, err := readInput(inputFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			sc, err := window.NewScanner(spec, input, window.WithBindings(parseBindings(bindings)), window.WithLogger(logger))
			if err != nil {
				return err
			}
			for sc.Scan() {
				w := sc.Window()
				if err := writeJSONLine(cmd.OutOrStdout(), windowOutput{Start: w.Start, End: w.End, Items: w.Items}); err != nil {
					return err
				}
			}
			return sc.Err()
		},
	}
	command.Flags().StringVarP(&configFile, "config", "c", "", "Window clause definition file (yaml or json)")
	command.Flags().StringVarP(&inputFile, "input", "i", "-", "JSON array input file, - for stdin")
	command.Flags().StringToStringVar(&bindings, "bind", map[string]string{}, "Outer variable bindings, e.g. --bind gap=2")
	_ = command.MarkFlagRequired("config")
	return command
}
