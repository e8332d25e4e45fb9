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

// Package flwor drives the return expression of a window clause: every window built by
// the window scanner is bound to the window variable and handed to a ReturnProducer, and
// the produced items are concatenated in window order.
package flwor

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/numaproj/xqwindow/pkg/metrics"
	"github.com/numaproj/xqwindow/pkg/shared/logging"
	"github.com/numaproj/xqwindow/pkg/window"
)

// ReturnProducer evaluates the return expression of the clause for one set of bindings.
type ReturnProducer interface {
	Produce(bindings window.Bindings) (window.Sequence, error)
}

// ReturnFunc adapts an ordinary function to a ReturnProducer.
type ReturnFunc func(bindings window.Bindings) (window.Sequence, error)

func (f ReturnFunc) Produce(bindings window.Bindings) (window.Sequence, error) {
	return f(bindings)
}

// Driver evaluates a window clause over input sequences.
type Driver struct {
	spec *window.Spec
	ret  ReturnProducer
	opts *options
}

type options struct {
	logger *zap.SugaredLogger
}

type Option func(*options)

// WithLogger sets the logger, by default the logger is taken from the context.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// NewDriver returns a Driver for spec, once spec is known to be valid.
func NewDriver(spec *window.Spec, ret ReturnProducer, opts ...Option) (*Driver, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return &Driver{
		spec: spec,
		ret:  ret,
		opts: o,
	}, nil
}

// Evaluate returns the concatenation, in window order, of the return expression results
// of every window of input. outer holds the bindings of the enclosing scope. When an
// evaluator fails, the items produced so far are returned along with its error.
func (d *Driver) Evaluate(ctx context.Context, input window.Sequence, outer window.Bindings) (window.Sequence, error) {
	out := window.Sequence{}
	err := d.ForEach(ctx, input, outer, func(_ *window.Window, items window.Sequence) error {
		out = append(out, items...)
		return nil
	})
	return out, err
}

// ForEach calls fn with every window of input and the items its return expression
// produced. Scanning stops at the first error returned by an evaluator or by fn, or
// once ctx is done.
func (d *Driver) ForEach(ctx context.Context, input window.Sequence, outer window.Bindings, fn func(w *window.Window, items window.Sequence) error) error {
	log := d.opts.logger
	if log == nil {
		log = logging.FromContext(ctx)
	}
	log = log.With("scanID", uuid.NewString(), "kind", d.spec.Kind.String())
	kind := d.spec.Kind.String()

	sc, err := window.NewScanner(d.spec, input, window.WithBindings(outer), window.WithLogger(log))
	if err != nil {
		return err
	}
	count := 0
	for {
		if err := ctx.Err(); err != nil {
			log.Infow("Window clause evaluation cancelled", zap.Int("windows", count))
			return err
		}
		if !sc.Scan() {
			break
		}
		w := sc.Window()
		bindings := outer.Merge(w.Vars, window.Bindings{d.spec.WindowVar: w.Items})
		items, err := d.ret.Produce(bindings)
		if err != nil {
			metrics.ReturnErrors.WithLabelValues(kind).Inc()
			log.Debugw("Return expression failed", zap.Stringer("window", w), zap.Error(err))
			return err
		}
		metrics.ReturnItems.WithLabelValues(kind).Add(float64(len(items)))
		if err := fn(w, items); err != nil {
			return err
		}
		count++
	}
	if err := sc.Err(); err != nil {
		log.Debugw("Window scan failed", zap.Int("windows", count), zap.Error(err))
		return err
	}
	log.Debugw("Window clause evaluated", zap.Int("windows", count), zap.Int("input", input.Len()))
	return nil
}
