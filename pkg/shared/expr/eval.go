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

// Package expr evaluates expression strings over window clause bindings with
// github.com/antonmedv/expr. Conditions and return producers built here plug into the
// window scanner and the clause driver.
package expr

import (
	"fmt"
	"strconv"

	"github.com/Masterminds/sprig/v3"
	json "github.com/goccy/go-json"

	"github.com/numaproj/xqwindow/pkg/window"
)

var sprigFuncMap = sprig.GenericFuncMap()

// EvalBool compiles, or fetches from the program cache, the given expression and
// evaluates it over bindings.
func EvalBool(expression string, bindings window.Bindings) (bool, error) {
	c, err := NewCondition(expression)
	if err != nil {
		return false, err
	}
	return c.Evaluate(bindings)
}

// getFuncMap returns the expression environment: the helper functions overlaid with the bindings.
func getFuncMap(bindings window.Bindings) map[string]interface{} {
	env := make(map[string]interface{}, len(bindings)+4)
	env["sprig"] = sprigFuncMap
	env["json"] = _json
	env["int"] = _int
	env["string"] = _string
	for k, v := range bindings {
		env[k] = v
	}
	return env
}

func _int(v interface{}) int {
	switch w := v.(type) {
	case []byte:
		i, err := strconv.Atoi(string(w))
		if err != nil {
			panic(fmt.Errorf("cannot convert %q an int", v))
		}
		return i
	case string:
		i, err := strconv.Atoi(w)
		if err != nil {
			panic(fmt.Errorf("cannot convert %q to int", v))
		}
		return i
	case float64:
		return int(w)
	case int64:
		return int(w)
	case int:
		return w
	default:
		panic(fmt.Errorf("cannot convert %q to int", v))
	}
}

func _string(v interface{}) string {
	switch w := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(w)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// _json decodes an item holding a JSON object. Items decoded upstream are returned as is.
func _json(v interface{}) map[string]interface{} {
	x := make(map[string]interface{})
	switch w := v.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		return w
	case []byte:
		if err := json.Unmarshal(w, &x); err != nil {
			panic(fmt.Errorf("cannot convert %q to object: %v", v, err))
		}
		return x
	case string:
		if err := json.Unmarshal([]byte(w), &x); err != nil {
			panic(fmt.Errorf("cannot convert %q to object: %v", v, err))
		}
		return x
	default:
		panic("unknown type")
	}
}
