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
	"reflect"

	"go.uber.org/ioc/catalog"
	"go.uber.org/ioc/iocevent"
	"go.uber.org/ioc/internal/iocreflect"
)

// Call invokes fn with its parameters autowired the same way constructor
// parameters are. fn is a *catalog.Func or any Go function; parameters of a
// plain Go function are named arg0, arg1 and so on.
//
// args configure the parameters: wrap values with Named to match by name.
// The result is fn's single non-error result, or nil.
func (c *Container) Call(fn interface{}, args ...interface{}) (interface{}, error) {
	f, err := catalog.NewFunc("", fn)
	if err != nil {
		return nil, wrapError(err, "could not understand callback")
	}
	return c.call(f, nil, NewArgs(args...))
}

// CallMethod invokes the named method of recv, which must be an instance of
// a catalog type declaring or inheriting the method. Resolvable arguments
// see recv as the instance being configured.
func (c *Container) CallMethod(recv interface{}, method string, args ...interface{}) (interface{}, error) {
	class := c.catalog.NameOf(recv)
	if class == "" {
		return nil, newError("could not understand callback: %T is not in the catalog", recv)
	}
	m, ok := c.catalog.Method(class, method)
	if !ok {
		return nil, newError("method %s.%s() does not exist", class, method)
	}
	return c.call(m, recv, NewArgs(args...))
}

func (c *Container) call(fn *catalog.Func, recv interface{}, args Args) (result interface{}, err error) {
	if c.err != nil {
		return nil, c.err
	}

	start := c.clock.Now()
	defer func() {
		c.log.LogEvent(&iocevent.Called{
			Function:   fn.Name,
			CallerName: iocreflect.Caller(),
			Runtime:    c.clock.Since(start),
			Err:        err,
		})
	}()

	plan, err := c.makeDefaultArgs(fn, args)
	if err != nil {
		return nil, err
	}
	in, err := c.resolveArgs(plan, Args{}, recv)
	if err != nil {
		return nil, err
	}
	return c.invoke(fn, recv, in)
}

// Resolve returns the entry for id as a T.
//
//	db, err := ioc.Resolve[*Db](c, "Db")
func Resolve[T any](c *Container, id string, args ...interface{}) (T, error) {
	var zero T
	v, err := c.GetArgs(id, args...)
	if err != nil || v == nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, newError("entry %s is a %s, not a %v", id, iocreflect.TypeName(v), reflect.TypeOf((*T)(nil)).Elem())
	}
	return t, nil
}
