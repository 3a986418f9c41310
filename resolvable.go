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

import (
	"strings"
)

// Resolvable is a value computed by the container when it is used as an
// argument. The set of implementations is closed: *Reference,
// *DefaultReference, *Callback and *RequiredParameter.
type Resolvable interface {
	// Resolve computes the value. instance is the object being configured
	// when resolving arguments of a post-construction call, or nil.
	Resolve(c *Container, instance interface{}) (interface{}, error)

	resolvable()
}

// Getter is implemented by anything a path reference can descend into,
// most notably *Container.
type Getter interface {
	Get(id string) (interface{}, error)
}

var (
	_ Resolvable = (*Reference)(nil)
	_ Resolvable = (*DefaultReference)(nil)
	_ Resolvable = (*Callback)(nil)
	_ Resolvable = (*RequiredParameter)(nil)
	_ Getter     = (*Container)(nil)
)

func (*Reference) resolvable()         {}
func (*DefaultReference) resolvable()  {}
func (*Callback) resolvable()          {}
func (*RequiredParameter) resolvable() {}

// Reference resolves to another container entry.
type Reference struct {
	// Name holds a single identifier, or a path of identifiers to look up
	// through nested Getters. An empty name resolves to nil.
	Name []string

	// Args are passed to the constructor when Name is a single identifier.
	Args Args
}

// NewReference refers to the entry id, built with args.
func NewReference(id string, args ...interface{}) *Reference {
	return &Reference{Name: []string{id}, Args: NewArgs(args...)}
}

// NewPathReference refers to an entry of a nested container. Each name is
// looked up in the result of the previous lookup, starting from the
// resolving container:
//
//	ioc.NewPathReference("config", "db.name")
func NewPathReference(names ...string) *Reference {
	return &Reference{Name: append([]string(nil), names...)}
}

// Resolve implements Resolvable.
func (r *Reference) Resolve(c *Container, _ interface{}) (interface{}, error) {
	switch len(r.Name) {
	case 0:
		return nil, nil
	case 1:
		return c.getArgs(r.Name[0], r.Args)
	}

	var (
		cur interface{} = c
		err error
	)
	for i, name := range r.Name {
		g, ok := cur.(Getter)
		if !ok {
			return nil, newError("cannot resolve %q in reference %s: %T is not a container",
				name, strings.Join(r.Name[:i], "."), cur)
		}
		if cur, err = g.Get(name); err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func (r *Reference) String() string {
	return "reference to " + strings.Join(r.Name, ".")
}

// DefaultReference resolves to the container's entry for a parameter's
// declared type. The container plans these when autowiring.
type DefaultReference struct {
	Class string
}

// Resolve implements Resolvable.
func (r *DefaultReference) Resolve(c *Container, _ interface{}) (interface{}, error) {
	return c.Get(r.Class)
}

// Callback resolves by calling Fn with the container and the instance being
// configured, if any.
type Callback struct {
	Fn func(c *Container, instance interface{}) (interface{}, error)
}

// NewCallback wraps fn in a Callback.
func NewCallback(fn func(c *Container, instance interface{}) (interface{}, error)) *Callback {
	return &Callback{Fn: fn}
}

// Resolve implements Resolvable.
func (r *Callback) Resolve(c *Container, instance interface{}) (interface{}, error) {
	if r.Fn == nil {
		return nil, nil
	}
	return r.Fn(c, instance)
}

// RequiredParameter stands in for a parameter nothing was configured for.
// Resolving it always fails.
type RequiredParameter struct {
	// Class is the declared type of the parameter, if it has a single one.
	Class     string
	Parameter string
	Function  string
}

// Resolve implements Resolvable.
func (r *RequiredParameter) Resolve(c *Container, _ interface{}) (interface{}, error) {
	if r.Class != "" && !c.catalog.Exists(r.Class) && !c.hasInstance(r.Class) && !c.hasRule(r.Class) {
		return nil, &NotFoundError{
			ID:  r.Class,
			Msg: "could not find class for required parameter $" + r.Parameter + " of " + r.Function,
		}
	}
	return nil, &MissingArgumentError{Parameter: r.Parameter, Function: r.Function}
}
