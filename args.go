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

package ioc

import "strings"

// Args holds the arguments configured for, or passed to, a function:
// positional values in order plus values matched to parameters by name.
type Args struct {
	Positional []interface{}

	// Named maps lower-cased parameter names to values.
	Named map[string]interface{}
}

type namedArg struct {
	name  string
	value interface{}
}

// Named marks value as the argument for the parameter called name when
// passed to NewArgs, GetArgs, Call and the rule setters. Matching is
// case-insensitive.
//
//	c.GetArgs("Sql", ioc.Named("db", db))
func Named(name string, value interface{}) interface{} {
	return namedArg{name: name, value: value}
}

// NewArgs splits values into positional and named arguments. An Args value
// is taken apart and merged in place.
func NewArgs(values ...interface{}) Args {
	var a Args
	for _, v := range values {
		switch v := v.(type) {
		case namedArg:
			a.setNamed(v.name, v.value)
		case Args:
			a.Positional = append(a.Positional, v.Positional...)
			for k, nv := range v.Named {
				a.setNamed(k, nv)
			}
		default:
			a.Positional = append(a.Positional, v)
		}
	}
	return a
}

func (a *Args) setNamed(name string, v interface{}) {
	if a.Named == nil {
		a.Named = make(map[string]interface{})
	}
	a.Named[strings.ToLower(name)] = v
}

// Len returns the total number of arguments.
func (a Args) Len() int {
	return len(a.Positional) + len(a.Named)
}

// Empty reports whether there are no arguments at all.
func (a Args) Empty() bool {
	return a.Len() == 0
}

// Lookup returns the named argument for name.
func (a Args) Lookup(name string) (interface{}, bool) {
	v, ok := a.Named[strings.ToLower(name)]
	return v, ok
}

// At returns the positional argument at i. The second result reports
// whether such a position exists; the value itself may be nil.
func (a Args) At(i int) (interface{}, bool) {
	if i < 0 || i >= len(a.Positional) {
		return nil, false
	}
	return a.Positional[i], true
}
