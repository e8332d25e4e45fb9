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
	"fmt"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/numaproj/xqwindow/pkg/window"
	"github.com/numaproj/xqwindow/pkg/windowerr"
)

// DefaultCacheSize is the number of compiled programs kept by the package cache.
const DefaultCacheSize = 512

var programs = mustNewCache(DefaultCacheSize)

func mustNewCache(size int) *lru.Cache[string, *vm.Program] {
	c, err := lru.New[string, *vm.Program](size)
	if err != nil {
		panic(err)
	}
	return c
}

// compile returns the compiled program of expression. Programs are compiled without an
// environment, so the variables they reference are resolved when they run.
func compile(expression string) (*vm.Program, error) {
	if p, ok := programs.Get(expression); ok {
		return p, nil
	}
	p, err := expr.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("unable to compile expression '%s': %w", expression, err)
	}
	programs.Add(expression, p)
	return p, nil
}

// run executes the program over the bindings. Failures are EvalErrors.
func run(expression string, p *vm.Program, bindings window.Bindings) (interface{}, error) {
	result, err := expr.Run(p, getFuncMap(bindings))
	if err != nil {
		return nil, windowerr.Wrap(windowerr.Eval, err, fmt.Sprintf("unable to evaluate expression '%s'", expression))
	}
	return result, nil
}
