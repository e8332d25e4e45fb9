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
	"go.uber.org/zap"

	"github.com/numaproj/xqwindow/pkg/metrics"
)

// Scanner enumerates the windows of an input sequence in input order. A Scanner is
// single use and must not be shared between goroutines. Scanning the same input with
// the same spec again requires a new Scanner.
//
//	sc, err := window.NewScanner(spec, input)
//	for sc.Scan() {
//		w := sc.Window()
//		...
//	}
//	if err := sc.Err(); err != nil {
//		...
//	}
type Scanner struct {
	spec  *Spec
	input Sequence
	outer Bindings
	log   *zap.SugaredLogger
	kind  string
	// next is the next start candidate
	next int
	// starts memoises start condition results by position, so implicit boundary
	// probing never evaluates the start condition twice at one position.
	starts map[int]bool
	window *Window
	err    error
	done   bool
}

// NewScanner validates spec and returns a Scanner over input.
func NewScanner(spec *Spec, input Sequence, opts ...Option) (*Scanner, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return &Scanner{
		spec:   spec,
		input:  input,
		outer:  o.bindings,
		log:    o.logger,
		kind:   spec.Kind.String(),
		next:   1,
		starts: make(map[int]bool),
		done:   len(input) == 0,
	}, nil
}

// Scan advances to the next window, which is then available through Window. It returns
// false once the input is exhausted or an evaluator failed, see Err.
func (sc *Scanner) Scan() bool {
	sc.window = nil
	if sc.done {
		return false
	}
	n := sc.input.Len()
	for sc.next <= n {
		s := sc.next
		ok, err := sc.isStart(s)
		if err != nil {
			return sc.fail(err)
		}
		if !ok {
			sc.advance(s + 1)
			continue
		}
		startVars, err := Bind(&sc.spec.Start, s, sc.input)
		if err != nil {
			return sc.fail(err)
		}
		e, vars, found, err := sc.findEnd(s, startVars)
		if err != nil {
			return sc.fail(err)
		}
		if !found {
			// "only end" never matched, drop the window and re-probe after its start
			sc.log.Debugw("Discarding window without a matching end", zap.Int("start", s))
			metrics.WindowsDiscarded.WithLabelValues(sc.kind).Inc()
			sc.advance(s + 1)
			continue
		}
		sc.window = &Window{
			Items: sc.input[s-1 : e : e],
			Start: s,
			End:   e,
			Vars:  vars,
		}
		if sc.spec.Kind == Tumbling {
			sc.advance(e + 1)
		} else {
			sc.advance(s + 1)
		}
		sc.log.Debugw("Window closed", zap.Int("start", s), zap.Int("end", e))
		metrics.WindowsEmitted.WithLabelValues(sc.kind).Inc()
		return true
	}
	sc.done = true
	return false
}

// Window returns the window produced by the last successful Scan.
func (sc *Scanner) Window() *Window {
	return sc.window
}

// Err returns the first error met while scanning. Evaluator errors are returned as is.
func (sc *Scanner) Err() error {
	return sc.err
}

func (sc *Scanner) fail(err error) bool {
	sc.err = err
	sc.done = true
	return false
}

// advance moves the start cursor to p and forgets start results behind it. Results are
// only ever memoised at or after the cursor, so clearing [next, p) is enough.
func (sc *Scanner) advance(p int) {
	for pos := sc.next; pos < p; pos++ {
		delete(sc.starts, pos)
	}
	sc.next = p
}

// isStart evaluates the start condition at position p.
func (sc *Scanner) isStart(p int) (bool, error) {
	if ok, seen := sc.starts[p]; seen {
		return ok, nil
	}
	vars, err := bindInto(sc.outer.Merge(), &sc.spec.Start, p, sc.input)
	if err != nil {
		return false, err
	}
	metrics.ConditionEvaluations.WithLabelValues(sc.kind, "start").Inc()
	ok, err := sc.spec.Start.When.Evaluate(vars)
	if err != nil {
		return false, err
	}
	sc.starts[p] = ok
	return ok, nil
}

// findEnd searches the end of the window starting at s. It returns the end position and
// the clause variables of the window, or found == false when the end clause is "only"
// and its condition never held.
func (sc *Scanner) findEnd(s int, startVars Bindings) (e int, vars Bindings, found bool, err error) {
	n := sc.input.Len()
	end := sc.spec.End
	if end == nil {
		// the window closes right before the next position that would start a window
		for p := s + 1; p <= n; p++ {
			ok, err := sc.isStart(p)
			if err != nil {
				return 0, nil, false, err
			}
			if ok {
				return p - 1, startVars, true, nil
			}
		}
		return n, startVars, true, nil
	}
	for e = s; e <= n; e++ {
		endVars, err := Bind(&end.Clause, e, sc.input)
		if err != nil {
			return 0, nil, false, err
		}
		metrics.ConditionEvaluations.WithLabelValues(sc.kind, "end").Inc()
		ok, err := end.When.Evaluate(sc.outer.Merge(startVars, endVars))
		if err != nil {
			return 0, nil, false, err
		}
		if ok {
			return e, startVars.Merge(endVars), true, nil
		}
	}
	if end.Only {
		return 0, nil, false, nil
	}
	// the window absorbs the rest of the input, end variables describe its last item
	endVars, err := Bind(&end.Clause, n, sc.input)
	if err != nil {
		return 0, nil, false, err
	}
	return n, startVars.Merge(endVars), true, nil
}

// Windows scans input to the end and returns every window.
func Windows(spec *Spec, input Sequence, opts ...Option) ([]*Window, error) {
	sc, err := NewScanner(spec, input, opts...)
	if err != nil {
		return nil, err
	}
	var windows []*Window
	for sc.Scan() {
		windows = append(windows, sc.Window())
	}
	return windows, sc.Err()
}
