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
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/numaproj/xqwindow/pkg/config"
	"github.com/numaproj/xqwindow/pkg/flwor"
	"github.com/numaproj/xqwindow/pkg/shared/logging"
	"github.com/numaproj/xqwindow/pkg/window"
)

func NewRunCommand() *cobra.Command {

	var (
		configFile string
		inputFile  string
		bindings   map[string]string
	)

	command := &cobra.Command{
		Use:   "run",
		Short: "Evaluate a window clause and print the return expression results, one JSON item per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger().Named("run")
			defer func() { _ = logger.Sync() }()
			def, err := config.Load(configFile)
			if err != nil {
				return err
			}
			spec, ret, err := def.Build()
			if err != nil {
				logger.Errorw("Invalid window clause", zap.String("config", configFile), zap.Error(err))
				return err
			}
			input, err := readInput(inputFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			driver, err := flwor.NewDriver(spec, ret)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(logging.WithLogger(context.Background(), logger), os.Interrupt)
			defer stop()
			out := cmd.OutOrStdout()
			return driver.ForEach(ctx, input, parseBindings(bindings), func(_ *window.Window, items window.Sequence) error {
				for _, item := range items {
					if err := writeJSONLine(out, item); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	command.Flags().StringVarP(&configFile, "config", "c", "", "Window clause definition file (yaml or json)")
	command.Flags().StringVarP(&inputFile, "input", "i", "-", "JSON array input file, - for stdin")
	command.Flags().StringToStringVar(&bindings, "bind", map[string]string{}, "Outer variable bindings, e.g. --bind gap=2")
	_ = command.MarkFlagRequired("config")
	return command
}
