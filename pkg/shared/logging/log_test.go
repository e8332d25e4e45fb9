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

package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	t.Run("logger in context", func(t *testing.T) {
		l := NewNopLogger()
		ctx := WithLogger(context.Background(), l)
		assert.Same(t, l, FromContext(ctx))
	})

	t.Run("default logger", func(t *testing.T) {
		t.Setenv(EnvDebug, "true")
		assert.NotNil(t, FromContext(context.Background()))
	})
}
