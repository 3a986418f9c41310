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

package catalog

import "reflect"

// Param describes a single parameter of a registered function.
//
// Go does not retain parameter names or default values, so both are supplied
// at registration time. The position and the Go type come from the function
// signature.
type Param struct {
	// Name is the parameter name used to match named arguments. Matching is
	// case-insensitive.
	Name string

	// Position is the zero-based ordinal of the parameter, not counting a
	// method receiver.
	Position int

	// Types lists the declared type names of the parameter. More than one
	// entry makes the parameter a union; an empty list leaves the declared
	// type to the catalog entry of the Go type, if any.
	Types []string

	// HasDefault reports whether Default holds a literal default value.
	HasDefault bool
	Default    interface{}

	goType reflect.Type
}

// ParamOption customizes a Param built with P.
type ParamOption func(*Param)

// P describes a parameter named name.
//
//	catalog.Constructor((*Db).init, catalog.P("name", catalog.Default("localhost")))
func P(name string, opts ...ParamOption) Param {
	p := Param{Name: name}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Default gives the parameter a literal default value.
func Default(v interface{}) ParamOption {
	return func(p *Param) {
		p.HasDefault = true
		p.Default = v
	}
}

// Optional makes nil the parameter's default value.
func Optional() ParamOption {
	return Default(nil)
}

// Typed declares the parameter's type names explicitly, overriding the name
// derived from its Go type. Passing more than one name declares a union.
func Typed(names ...string) ParamOption {
	return func(p *Param) {
		p.Types = append([]string(nil), names...)
	}
}

// Union reports whether the parameter declares more than one type.
func (p Param) Union() bool {
	return len(p.Types) > 1
}

// Required reports whether the parameter must be supplied.
func (p Param) Required() bool {
	return !p.HasDefault
}

// GoType returns the Go type of the parameter in the bound function.
func (p Param) GoType() reflect.Type {
	return p.goType
}
