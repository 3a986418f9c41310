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

import (
	"reflect"
	"strings"

	"go.uber.org/multierr"
)

// Kind distinguishes classes from interfaces.
type Kind int

const (
	// KindClass is a type with instances.
	KindClass Kind = iota
	// KindInterface is a contract implemented by classes. Interfaces are
	// never constructed directly.
	KindInterface
)

func (k Kind) String() string {
	if k == KindInterface {
		return "interface"
	}
	return "class"
}

// Type describes a named type to the container.
type Type struct {
	Name string
	Kind Kind

	// Parent names the type this one extends. For interfaces, Interfaces
	// lists the extended interfaces instead.
	Parent     string
	Interfaces []string

	// Abstract classes exist in the hierarchy but cannot be instantiated.
	Abstract bool

	// Constructor initializes a freshly allocated instance. Types without
	// one inherit their parent's.
	Constructor *Func

	methods map[string]*Func
	goType  reflect.Type
	alloc   func() interface{}
	err     error
}

// TypeOption configures a Type.
type TypeOption func(*Type)

// Class describes the class name backed by the Go type T. Instances are
// allocated as *T.
//
//	catalog.Class[Db]("Db",
//		catalog.Implements("DbInterface"),
//		catalog.Constructor((*Db).init, catalog.P("name", catalog.Default("localhost"))),
//	)
func Class[T any](name string, opts ...TypeOption) *Type {
	t := &Type{
		Name:    name,
		Kind:    KindClass,
		goType:  reflect.TypeOf((*T)(nil)),
		alloc:   func() interface{} { return new(T) },
		methods: make(map[string]*Func),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Interface describes the interface name backed by the Go interface type T.
// Go values implementing T are considered instances of the interface even
// when their class does not declare it.
func Interface[T any](name string, opts ...TypeOption) *Type {
	t := &Type{
		Name:    name,
		Kind:    KindInterface,
		goType:  reflect.TypeOf((*T)(nil)).Elem(),
		methods: make(map[string]*Func),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Extends sets the parent class.
func Extends(parent string) TypeOption {
	return func(t *Type) {
		t.Parent = parent
	}
}

// Implements adds implemented (or, for interfaces, extended) interfaces.
func Implements(names ...string) TypeOption {
	return func(t *Type) {
		t.Interfaces = append(t.Interfaces, names...)
	}
}

// Abstract marks a class as not instantiable.
func Abstract() TypeOption {
	return func(t *Type) {
		t.Abstract = true
	}
}

// Constructor binds the initializer of the type. fn receives the allocated
// instance as its first argument, followed by the described parameters, and
// may return an error:
//
//	func (d *Db) init(name string) { d.name = name }
//	catalog.Constructor((*Db).init, catalog.P("name"))
func Constructor(fn interface{}, params ...Param) TypeOption {
	return func(t *Type) {
		f, err := newFunc(t.Name+".New()", fn, true, params)
		if err != nil {
			t.err = multierr.Append(t.err, err)
			return
		}
		t.Constructor = f
	}
}

// Method binds a method that rules may call after construction. fn takes
// the receiver first, as a method expression does.
func Method(name string, fn interface{}, params ...Param) TypeOption {
	return func(t *Type) {
		f, err := newFunc(t.Name+"."+name+"()", fn, true, params)
		if err != nil {
			t.err = multierr.Append(t.err, err)
			return
		}
		t.methods[strings.ToLower(name)] = f
	}
}

// New allocates a zero instance without running the constructor. It
// returns nil for interfaces.
func (t *Type) New() interface{} {
	if t.alloc == nil {
		return nil
	}
	return t.alloc()
}

// Constructible reports whether instances of the type can be created.
func (t *Type) Constructible() bool {
	return t.Kind == KindClass && !t.Abstract && t.alloc != nil
}

// Method returns the method declared on this type, ignoring parents.
func (t *Type) Method(name string) (*Func, bool) {
	f, ok := t.methods[strings.ToLower(name)]
	return f, ok
}

// GoType returns the Go type backing the catalog type.
func (t *Type) GoType() reflect.Type {
	return t.goType
}

// Err returns problems found while applying the type's options.
func (t *Type) Err() error {
	return t.err
}
