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
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	"go.uber.org/ioc/internal/iocreflect"
)

var (
	errNotFunc     = errors.New("must be a function")
	errVariadic    = errors.New("variadic functions are not supported")
	errReturnCount = errors.New("function may return at most one value and an error")
)

// Func is a Go function bound to parameter descriptors so that the
// container can plan and pass its arguments.
type Func struct {
	// Name is the qualified name used in diagnostics, e.g. "Db.New()".
	Name string

	// Params describes the parameters in declaration order, not counting a
	// method receiver.
	Params []Param

	fn     reflect.Value
	recv   bool
	hasOut bool
	hasErr bool
}

// NewFunc binds fn, which may be any non-variadic function returning at
// most one value and optionally a trailing error.
//
// params describes fn's parameters in order. Parameters left undescribed are
// named "arg0", "arg1" and so on. If name is empty, the runtime name of fn is
// used.
func NewFunc(name string, fn interface{}, params ...Param) (*Func, error) {
	if name == "" {
		name = iocreflect.FuncName(fn)
	}
	return newFunc(name, fn, false, params)
}

// MustFunc is like NewFunc but panics on error.
func MustFunc(name string, fn interface{}, params ...Param) *Func {
	f, err := NewFunc(name, fn, params...)
	if err != nil {
		panic(err)
	}
	return f
}

func newFunc(name string, fn interface{}, recv bool, params []Param) (*Func, error) {
	if f, ok := fn.(*Func); ok {
		return f, nil
	}

	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, errors.Wrapf(errNotFunc, "cannot bind %s: got %T", name, fn)
	}

	ft := fv.Type()
	if ft.IsVariadic() {
		return nil, errors.Wrapf(errVariadic, "cannot bind %s", name)
	}

	offset := 0
	if recv {
		if ft.NumIn() == 0 {
			return nil, errors.Errorf("cannot bind %s: %v has no receiver parameter", name, ft)
		}
		offset = 1
	}

	f := &Func{Name: name, fn: fv, recv: recv}
	switch ft.NumOut() {
	case 0:
	case 1:
		if iocreflect.IsErr(ft.Out(0)) {
			f.hasErr = true
		} else {
			f.hasOut = true
		}
	case 2:
		if !iocreflect.IsErr(ft.Out(1)) {
			return nil, errors.Wrapf(errReturnCount, "cannot bind %s: %v", name, ft)
		}
		f.hasOut, f.hasErr = true, true
	default:
		return nil, errors.Wrapf(errReturnCount, "cannot bind %s: %v", name, ft)
	}

	argc := ft.NumIn() - offset
	if len(params) > argc {
		return nil, errors.Errorf(
			"cannot bind %s: %d parameters described but %v takes %d", name, len(params), ft, argc)
	}

	f.Params = make([]Param, argc)
	for i := 0; i < argc; i++ {
		var p Param
		if i < len(params) {
			p = params[i]
			p.Types = append([]string(nil), p.Types...)
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("arg%d", i)
		}
		p.Position = i
		p.goType = ft.In(i + offset)
		f.Params[i] = p
	}
	return f, nil
}

// Method reports whether the function expects a receiver.
func (f *Func) Method() bool {
	return f.recv
}

// Go returns the underlying Go function.
func (f *Func) Go() interface{} {
	return f.fn.Interface()
}

func (f *Func) String() string {
	return f.Name
}

// CallError reports a failure to call a function, as opposed to an error
// returned by the function itself.
type CallError struct {
	Func string
	Err  error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("cannot call %s: %v", e.Func, e.Err)
}

// Unwrap returns the underlying failure.
func (e *CallError) Unwrap() error { return e.Err }

// Invoke calls the function. For methods recv is passed as the receiver; for
// plain functions it is ignored. args must line up with Params; nil
// arguments become the zero value of the parameter type.
//
// A non-nil error returned by the function is returned unchanged. Failures
// to make the call, including panics, are reported as a *CallError.
func (f *Func) Invoke(recv interface{}, args []interface{}) (result interface{}, err error) {
	if len(args) != len(f.Params) {
		return nil, f.callError(errors.Errorf("expects %d arguments, got %d", len(f.Params), len(args)))
	}

	ft := f.fn.Type()
	in := make([]reflect.Value, 0, ft.NumIn())
	if f.recv {
		if recv == nil {
			return nil, f.callError(errors.New("called without a receiver"))
		}
		rv, err := convert(recv, ft.In(0))
		if err != nil {
			return nil, f.callError(errors.Wrap(err, "bad receiver"))
		}
		in = append(in, rv)
	}
	for i, arg := range args {
		v, err := convert(arg, f.Params[i].goType)
		if err != nil {
			return nil, f.callError(errors.Wrapf(err, "bad argument %q", f.Params[i].Name))
		}
		in = append(in, v)
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = f.callError(errors.Errorf("panic: %v", rec))
		}
	}()

	out := f.fn.Call(in)
	if f.hasErr {
		if e := out[len(out)-1]; !e.IsNil() {
			return nil, e.Interface().(error)
		}
	}
	if f.hasOut {
		return out[0].Interface(), nil
	}
	return nil, nil
}

func (f *Func) callError(err error) error {
	return &CallError{Func: f.Name, Err: err}
}

// convert adapts v to a value assignable to t.
func convert(v interface{}, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		if rv.Type() != t {
			// Make interface-typed parameters carry the interface type.
			nv := reflect.New(t).Elem()
			nv.Set(rv)
			return nv, nil
		}
		return rv, nil
	}
	if ev, ok := embedded(rv, t); ok {
		return ev, nil
	}
	if numeric(rv.Kind()) && numeric(t.Kind()) {
		return rv.Convert(t), nil
	}
	if rv.Kind() == reflect.String && t.Kind() == reflect.String {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, errors.Errorf("cannot use %v as %v", rv.Type(), t)
}

// embedded looks for a value of type t embedded, possibly several levels
// deep, in the struct behind rv. This lets a *PdoDb stand in where the
// function expects the *Db it embeds.
func embedded(rv reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	st := rv.Type()
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		if !sf.Anonymous || sf.PkgPath != "" {
			continue
		}

		fv := rv.Field(i)
		if fv.Type().AssignableTo(t) {
			return fv, true
		}
		if fv.CanAddr() && fv.Addr().Type().AssignableTo(t) {
			return fv.Addr(), true
		}
		if ev, ok := embedded(fv, t); ok {
			return ev, true
		}
	}
	return reflect.Value{}, false
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
