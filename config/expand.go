// Copyright (c) 2025 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// expander replaces ${VAR} and $VAR in string values. ${VAR:default}
// falls back to default when VAR is not set.
type expander struct {
	lookup func(string) (string, bool)
	errs   error
}

func (e *expander) mapping(name string) string {
	key, def, hasDefault := strings.Cut(name, ":")
	if v, ok := e.lookup(key); ok {
		return v
	}
	if hasDefault {
		return def
	}
	e.errs = multierr.Append(e.errs, errors.Errorf("variable %q is not set and has no default", key))
	return ""
}

// expand walks a decoded YAML tree and expands every string value in
// place. Keys are left alone.
func (e *expander) expand(v interface{}) interface{} {
	switch v := v.(type) {
	case string:
		return os.Expand(v, e.mapping)
	case map[interface{}]interface{}:
		for k, elem := range v {
			v[k] = e.expand(elem)
		}
		return v
	case []interface{}:
		for i, elem := range v {
			v[i] = e.expand(elem)
		}
		return v
	default:
		return v
	}
}
