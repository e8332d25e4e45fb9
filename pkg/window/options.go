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

package window

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/numaproj/xqwindow/pkg/shared/logging"
)

type Options struct {
	// bindings are the outer scope variables visible to the start and end conditions
	bindings Bindings
	// logger for scanner debug output
	logger *zap.SugaredLogger
}

func DefaultOptions() *Options {
	return &Options{
		bindings: Bindings{},
		logger:   logging.NewNopLogger(),
	}
}

type Option func(options *Options) error

// WithBindings sets the outer scope bindings
func WithBindings(b Bindings) Option {
	return func(o *Options) error {
		if b != nil {
			o.bindings = b
		}
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *Options) error {
		if l == nil {
			return fmt.Errorf("logger must not be nil")
		}
		o.logger = l
		return nil
	}
}
