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

	"github.com/numaproj/xqwindow/pkg/window"
	"github.com/numaproj/xqwindow/pkg/windowerr"
)

// Condition is a window.Condition backed by a boolean expression.
type Condition struct {
	expression string
	program    *vm.Program
}

var _ window.Condition = (*Condition)(nil)

// NewCondition compiles the expression, e.g. `e - s == 2` or `prev == nil || cur.price > prev.price`.
func NewCondition(expression string) (*Condition, error) {
	p, err := compile(expression)
	if err != nil {
		return nil, err
	}
	return &Condition{expression: expression, program: p}, nil
}

func (c *Condition) Evaluate(bindings window.Bindings) (bool, error) {
	result, err := run(c.expression, c.program, bindings)
	if err != nil {
		return false, err
	}
	resultBool, ok := result.(bool)
	if !ok {
		return false, windowerr.Newf(windowerr.Eval, "unable to cast expression result '%v' to bool", result)
	}
	return resultBool, nil
}

func (c *Condition) String() string {
	return c.expression
}
