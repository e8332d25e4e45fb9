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

// Package config loads window clause definitions from YAML or JSON files.
//
//	kind: tumbling
//	window: w
//	start:
//	  position: s
//	  when: "true"
//	end:
//	  position: e
//	  when: "e - s == 2"
//	  only: true
//	return: w
package config

import (
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/numaproj/xqwindow/pkg/flwor"
	"github.com/numaproj/xqwindow/pkg/shared/expr"
	"github.com/numaproj/xqwindow/pkg/window"
)

// Definition is a window clause as written in a definition file.
type Definition struct {
	Kind   string     `mapstructure:"kind"`
	Window string     `mapstructure:"window"`
	Start  Clause     `mapstructure:"start"`
	End    *EndClause `mapstructure:"end"`
	// Return is the return expression, the window variable when empty.
	Return string `mapstructure:"return"`
}

type Clause struct {
	Current  string `mapstructure:"current"`
	Previous string `mapstructure:"previous"`
	Next     string `mapstructure:"next"`
	Position string `mapstructure:"position"`
	When     string `mapstructure:"when"`
}

type EndClause struct {
	Clause `mapstructure:",squash"`
	Only   bool `mapstructure:"only"`
}

// Load reads the definition file at path, its format is taken from the extension.
func Load(path string) (*Definition, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to load window definition %q. %w", path, err)
	}
	return unmarshal(v)
}

// LoadFromReader reads a definition of the given type, e.g. "yaml" or "json".
func LoadFromReader(r io.Reader, configType string) (*Definition, error) {
	v := viper.New()
	v.SetConfigType(configType)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("failed to read window definition. %w", err)
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Definition, error) {
	v.SetDefault("kind", window.Tumbling.String())
	v.SetDefault("window", "w")
	d := &Definition{}
	if err := v.Unmarshal(d); err != nil {
		return nil, fmt.Errorf("failed unmarshal window definition. %w", err)
	}
	return d, nil
}

// Build compiles the conditions and the return expression of the definition.
func (d *Definition) Build() (*window.Spec, flwor.ReturnProducer, error) {
	kind, err := window.ParseKind(d.Kind)
	if err != nil {
		return nil, nil, err
	}
	start, err := d.Start.build()
	if err != nil {
		return nil, nil, fmt.Errorf("start clause: %w", err)
	}
	spec := &window.Spec{
		Kind:      kind,
		WindowVar: d.Window,
		Start:     start,
	}
	if d.End != nil {
		end, err := d.End.build()
		if err != nil {
			return nil, nil, fmt.Errorf("end clause: %w", err)
		}
		spec.End = &window.EndClause{Clause: end, Only: d.End.Only}
	}
	if err := spec.Validate(); err != nil {
		return nil, nil, err
	}
	returnExpr := d.Return
	if returnExpr == "" {
		returnExpr = d.Window
	}
	ret, err := expr.NewProducer(returnExpr)
	if err != nil {
		return nil, nil, fmt.Errorf("return clause: %w", err)
	}
	return spec, ret, nil
}

func (c Clause) build() (window.Clause, error) {
	if c.When == "" {
		return window.Clause{}, fmt.Errorf("missing when condition")
	}
	cond, err := expr.NewCondition(c.When)
	if err != nil {
		return window.Clause{}, err
	}
	return window.Clause{
		Current:  c.Current,
		Previous: c.Previous,
		Next:     c.Next,
		Position: c.Position,
		When:     cond,
	}, nil
}
