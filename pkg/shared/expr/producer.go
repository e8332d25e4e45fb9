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

package expr

import (
	"github.com/antonmedv/expr/vm"

	"github.com/numaproj/xqwindow/pkg/flwor"
	"github.com/numaproj/xqwindow/pkg/window"
)

// Producer is a flwor.ReturnProducer backed by an expression. A nil result produces no
// item, a list produces its elements, anything else a single item.
type Producer struct {
	expression string
	program    *vm.Program
}

var _ flwor.ReturnProducer = (*Producer)(nil)

// NewProducer compiles the return expression, e.g. `{"first": w[0], "size": len(w)}`.
func NewProducer(expression string) (*Producer, error) {
	p, err := compile(expression)
	if err != nil {
		return nil, err
	}
	return &Producer{expression: expression, program: p}, nil
}

func (p *Producer) Produce(bindings window.Bindings) (window.Sequence, error) {
	result, err := run(p.expression, p.program, bindings)
	if err != nil {
		return nil, err
	}
	switch r := result.(type) {
	case nil:
		return window.Sequence{}, nil
	case window.Sequence:
		return r, nil
	case []interface{}:
		return window.Sequence(r), nil
	default:
		return window.Sequence{r}, nil
	}
}

func (p *Producer) String() string {
	return p.expression
}
