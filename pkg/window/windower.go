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
	"strings"

	"go.uber.org/multierr"

	"github.com/numaproj/xqwindow/pkg/windowerr"
)

// Item is a single, opaque value of the input sequence.
type Item = any

// Sequence is an ordered, finite sequence of items. The window API addresses items by
// their 1-based position.
type Sequence []Item

// Len returns the number of items in the sequence.
func (s Sequence) Len() int {
	return len(s)
}

// At returns the item at the 1-based position p.
func (s Sequence) At(p int) (Item, bool) {
	if p < 1 || p > len(s) {
		return nil, false
	}
	return s[p-1], true
}

// Bindings maps variable names to the values bound to them.
type Bindings map[string]any

// Merge returns a new Bindings holding b overlaid with every mapping in others, later
// mappings winning on conflicts. b is left untouched.
func (b Bindings) Merge(others ...Bindings) Bindings {
	size := len(b)
	for _, o := range others {
		size += len(o)
	}
	out := make(Bindings, size)
	for k, v := range b {
		out[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

// Condition is a boolean predicate over a set of bindings, supplied by the surrounding
// query evaluator.
type Condition interface {
	Evaluate(bindings Bindings) (bool, error)
}

// ConditionFunc adapts an ordinary function to a Condition.
type ConditionFunc func(bindings Bindings) (bool, error)

func (f ConditionFunc) Evaluate(bindings Bindings) (bool, error) {
	return f(bindings)
}

// Clause declares the variables a start or end condition may reference and the
// condition itself. An empty name means the variable is not declared.
type Clause struct {
	// Current is bound to the item at the candidate position
	Current string
	// Previous is bound to the item before the candidate position, or nil at the first position
	Previous string
	// Next is bound to the item after the candidate position, or nil at the last position
	Next string
	// Position is bound to the 1-based candidate position
	Position string
	// When is the condition deciding whether the candidate position is a boundary
	When Condition
}

// Vars returns the declared variable names in declaration order.
func (c *Clause) Vars() []string {
	vars := make([]string, 0, 4)
	for _, v := range []string{c.Current, c.Position, c.Previous, c.Next} {
		if v != "" {
			vars = append(vars, v)
		}
	}
	return vars
}

// EndClause is a Clause closing a window. Only drops windows whose end condition never held.
type EndClause struct {
	Clause
	Only bool
}

// Kind is the kind of the window clause
type Kind int

const (
	Tumbling Kind = iota
	Sliding
)

func (k Kind) String() string {
	switch k {
	case Tumbling:
		return "tumbling"
	case Sliding:
		return "sliding"
	default:
		return "unknown"
	}
}

// ParseKind parses "tumbling" or "sliding", case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tumbling":
		return Tumbling, nil
	case "sliding":
		return Sliding, nil
	default:
		return Tumbling, fmt.Errorf("unknown window kind %q", s)
	}
}

// Spec describes a window clause, built once per clause.
type Spec struct {
	Kind Kind
	// WindowVar is bound to the items of each window
	WindowVar string
	Start     Clause
	// End is nil when the clause has no end condition
	End *EndClause
}

// Validate checks the window clause, returning an InternalError describing every issue found.
func (s *Spec) Validate() error {
	var err error
	if s.Kind != Tumbling && s.Kind != Sliding {
		err = multierr.Append(err, fmt.Errorf("unknown window kind %d", s.Kind))
	}
	if s.WindowVar == "" {
		err = multierr.Append(err, fmt.Errorf("window variable is not declared"))
	}
	if s.Start.When == nil {
		err = multierr.Append(err, fmt.Errorf("start clause has no condition"))
	}
	if s.End != nil && s.End.When == nil {
		err = multierr.Append(err, fmt.Errorf("end clause has no condition"))
	}
	seen := make(map[string]struct{})
	for _, v := range s.Vars() {
		if _, ok := seen[v]; ok {
			err = multierr.Append(err, fmt.Errorf("variable $%s is declared more than once", v))
		}
		seen[v] = struct{}{}
	}
	if err != nil {
		return windowerr.Wrap(windowerr.Internal, err, "invalid window clause")
	}
	return nil
}

// Vars returns every variable name declared by the window clause.
func (s *Spec) Vars() []string {
	vars := []string{}
	if s.WindowVar != "" {
		vars = append(vars, s.WindowVar)
	}
	vars = append(vars, s.Start.Vars()...)
	if s.End != nil {
		vars = append(vars, s.End.Vars()...)
	}
	return vars
}

// Window is one constructed window: the contiguous items input[Start..End].
type Window struct {
	Items Sequence
	// Start is the 1-based position of the first item
	Start int
	// End is the 1-based position of the last item
	End int
	// Vars holds the start clause variables bound at Start and, when the clause has an
	// end condition, the end clause variables bound at End.
	Vars Bindings
}

// Len returns the number of items in the window.
func (w *Window) Len() int {
	return len(w.Items)
}

func (w *Window) String() string {
	return fmt.Sprintf("[%d, %d]", w.Start, w.End)
}
