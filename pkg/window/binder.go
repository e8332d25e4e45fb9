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
	"github.com/numaproj/xqwindow/pkg/windowerr"
)

// Bind returns the variables clause c declares, evaluated at the 1-based position p of
// input. Undeclared variables are left out. The previous and next items are nil at the
// edges of the input. A position outside the input is an InternalError.
func Bind(c *Clause, p int, input Sequence) (Bindings, error) {
	return bindInto(make(Bindings, 4), c, p, input)
}

func bindInto(b Bindings, c *Clause, p int, input Sequence) (Bindings, error) {
	current, ok := input.At(p)
	if !ok {
		return nil, windowerr.Newf(windowerr.Internal, "position %d is outside the input sequence [1, %d]", p, input.Len())
	}
	if c.Current != "" {
		b[c.Current] = current
	}
	if c.Position != "" {
		b[c.Position] = p
	}
	if c.Previous != "" {
		// At returns nil for position 0
		b[c.Previous], _ = input.At(p - 1)
	}
	if c.Next != "" {
		b[c.Next], _ = input.At(p + 1)
	}
	return b, nil
}
