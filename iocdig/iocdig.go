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

// Package iocdig exposes container entries to a dig container, so that
// applications wired with dig or fx can consume objects configured by
// rules.
//
//	d := dig.New()
//	if err := iocdig.Provide[*Db](d, c, "Db"); err != nil {
//		return err
//	}
//	return d.Invoke(func(db *Db) { ... })
//
// Entries are resolved lazily, when dig first needs them. dig caches what
// it receives, so even non-shared entries are built once per dig
// container.
package iocdig

import (
	"reflect"

	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/ioc"
	"go.uber.org/ioc/internal/iocreflect"
	"go.uber.org/multierr"
)

var _errType = reflect.TypeOf((*error)(nil)).Elem()

// Provide makes the entry id available to d as a T.
func Provide[T any](d *dig.Container, c *ioc.Container, id string, opts ...dig.ProvideOption) error {
	ctor := func() (T, error) {
		return ioc.Resolve[T](c, id)
	}
	if err := d.Provide(ctor, opts...); err != nil {
		return errors.Wrapf(err, "cannot provide %s", id)
	}
	return nil
}

// ProvideContainer makes c itself available to d.
func ProvideContainer(d *dig.Container, c *ioc.Container) error {
	return d.Provide(func() *ioc.Container { return c })
}

// ProvideTypes makes each entry available to d as the Go type its catalog
// type is backed by: a pointer for classes, the interface itself for
// interfaces. Every identifier must name a type in the catalog of c,
// possibly configured through rules.
func ProvideTypes(d *dig.Container, c *ioc.Container, ids ...string) error {
	var errs error
	for _, id := range ids {
		errs = multierr.Append(errs, provideType(d, c, id))
	}
	return errs
}

func provideType(d *dig.Container, c *ioc.Container, id string) error {
	t, ok := c.Catalog().Lookup(id)
	if !ok || t.GoType() == nil {
		return errors.Errorf("cannot provide %s: type is not in the catalog", id)
	}

	out := t.GoType()
	fnType := reflect.FuncOf(nil, []reflect.Type{out, _errType}, false)
	ctor := reflect.MakeFunc(fnType, func([]reflect.Value) []reflect.Value {
		v, err := c.Get(id)
		if err == nil && v != nil && !reflect.TypeOf(v).AssignableTo(out) {
			err = errors.Errorf("entry %s is a %s, not a %v", id, iocreflect.TypeName(v), out)
		}
		if err != nil {
			return []reflect.Value{reflect.Zero(out), reflect.ValueOf(&err).Elem()}
		}

		rv := reflect.Zero(out)
		if v != nil {
			rv = reflect.New(out).Elem()
			rv.Set(reflect.ValueOf(v))
		}
		return []reflect.Value{rv, reflect.Zero(_errType)}
	})

	if err := d.Provide(ctor.Interface()); err != nil {
		return errors.Wrapf(err, "cannot provide %s", id)
	}
	return nil
}
