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
	"github.com/pkg/errors"
	"go.uber.org/ioc/catalog"
	"go.uber.org/ioc/iocevent"
)

// factory builds a new, non-shared entry from call-time arguments.
type factory func(args Args) (interface{}, error)

type compiledCall struct {
	method *catalog.Func
	plan   []plannedArg
}

func (c *Container) createInstance(id string, args Args) (result interface{}, err error) {
	rule, err := c.makeRule(id)
	if err != nil {
		return nil, err
	}

	shared := rule.Shared != nil && *rule.Shared
	done, err := c.enter(id, shared)
	if err != nil {
		return nil, err
	}
	defer done()

	class := className(id, rule)
	c.log.LogEvent(&iocevent.Building{ID: id, Class: class, Shared: shared})
	start := c.clock.Now()
	defer func() {
		c.log.LogEvent(&iocevent.Built{
			ID:      id,
			Class:   class,
			Shared:  shared,
			Runtime: c.clock.Since(start),
			Err:     err,
		})
	}()

	if shared {
		return c.createSharedInstance(id, rule, args)
	}

	f, err := c.makeFactory(id, rule)
	if err != nil {
		return nil, err
	}
	instance, err := f(args)
	if err != nil {
		return nil, err
	}
	c.factories[id] = f
	return instance, nil
}

func className(id string, rule Rule) string {
	if rule.Class != "" {
		return rule.Class
	}
	return id
}

// makeFactory compiles the rule for id into a function building new
// instances. Argument plans are computed once here.
func (c *Container) makeFactory(id string, rule Rule) (factory, error) {
	var ctorArgs Args
	if rule.ConstructorArgs != nil {
		ctorArgs = *rule.ConstructorArgs
	}

	var build factory
	if rule.Factory != nil {
		fn := rule.Factory
		plan, err := c.makeDefaultArgs(fn, ctorArgs)
		if err != nil {
			return nil, err
		}
		build = func(args Args) (interface{}, error) {
			in, err := c.resolveArgs(plan, args, nil)
			if err != nil {
				return nil, err
			}
			return c.invoke(fn, nil, in)
		}
	} else {
		t, err := c.lookupClass(className(id, rule))
		if err != nil {
			return nil, err
		}

		ctor := c.catalog.ConstructorOf(t.Name)
		var plan []plannedArg
		if ctor != nil {
			if plan, err = c.makeDefaultArgs(ctor, ctorArgs); err != nil {
				return nil, err
			}
		}
		build = func(args Args) (interface{}, error) {
			instance := t.New()
			if ctor == nil {
				return instance, nil
			}
			in, err := c.resolveArgs(plan, args, nil)
			if err != nil {
				return nil, err
			}
			if _, err := c.invoke(ctor, instance, in); err != nil {
				return nil, err
			}
			return instance, nil
		}
	}

	c.log.LogEvent(&iocevent.FactoryCompiled{ID: id, Class: className(id, rule)})
	if len(rule.Calls) == 0 {
		return build, nil
	}

	// Calls are compiled up front when the class is known. A factory may
	// produce any type, so its calls are compiled against each instance.
	var calls []compiledCall
	if class, ok := c.callClass(id, rule, nil); ok {
		var err error
		if calls, err = c.compileCalls(class, rule.Calls); err != nil {
			return nil, err
		}
	}

	return func(args Args) (interface{}, error) {
		instance, err := build(args)
		if err != nil {
			return nil, err
		}

		cc := calls
		if cc == nil {
			class, ok := c.callClass(id, rule, instance)
			if !ok {
				return nil, newError("cannot call methods on %T built for %s: type is not in the catalog", instance, id)
			}
			if cc, err = c.compileCalls(class, rule.Calls); err != nil {
				return nil, err
			}
		}
		if err := c.runCalls(instance, cc); err != nil {
			return nil, err
		}
		return instance, nil
	}, nil
}

// createSharedInstance builds a shared entry. The instance slot is
// published before any argument is resolved so that dependencies referring
// back to id receive it. Any failure removes the slot.
func (c *Container) createSharedInstance(id string, rule Rule, args Args) (instance interface{}, err error) {
	var ctorArgs Args
	if rule.ConstructorArgs != nil {
		ctorArgs = *rule.ConstructorArgs
	}

	// Resolve the class before publishing anything: an unknown class
	// leaves no trace.
	var t *catalog.Type
	if rule.Factory == nil {
		if t, err = c.lookupClass(className(id, rule)); err != nil {
			return nil, err
		}
	}

	s := &slot{}
	c.instances[id] = s
	defer func() {
		rec := recover()
		if err == nil && rec == nil {
			return
		}
		if c.instances[id] == s {
			delete(c.instances, id)
		}
		if rec != nil {
			c.log.LogEvent(&iocevent.RolledBack{ID: id, Err: errors.Errorf("panic: %v", rec)})
			panic(rec)
		}
		c.log.LogEvent(&iocevent.RolledBack{ID: id, Err: err})
	}()

	if rule.Factory != nil {
		s.pending = true
		c.log.LogEvent(&iocevent.PlaceholderPublished{ID: id})

		plan, err := c.makeDefaultArgs(rule.Factory, ctorArgs)
		if err != nil {
			return nil, err
		}
		in, err := c.resolveArgs(plan, args, nil)
		if err != nil {
			return nil, err
		}
		if instance, err = c.invoke(rule.Factory, nil, in); err != nil {
			return nil, err
		}
		s.value, s.pending = instance, false
	} else {
		instance = t.New()
		s.value = instance
		c.log.LogEvent(&iocevent.PlaceholderPublished{ID: id, Shell: true})

		if ctor := c.catalog.ConstructorOf(t.Name); ctor != nil {
			plan, err := c.makeDefaultArgs(ctor, ctorArgs)
			if err != nil {
				return nil, err
			}
			in, err := c.resolveArgs(plan, args, nil)
			if err != nil {
				return nil, err
			}
			if _, err := c.invoke(ctor, instance, in); err != nil {
				return nil, err
			}
		}
	}

	if len(rule.Calls) > 0 {
		class, ok := c.callClass(id, rule, instance)
		if !ok {
			return nil, newError("cannot call methods on %T built for %s: type is not in the catalog", instance, id)
		}
		calls, err := c.compileCalls(class, rule.Calls)
		if err != nil {
			return nil, err
		}
		if err := c.runCalls(instance, calls); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// lookupClass finds the constructible catalog type called name.
func (c *Container) lookupClass(name string) (*catalog.Type, error) {
	t, ok := c.catalog.Lookup(name)
	if !ok {
		return nil, &NotFoundError{ID: name}
	}
	if !t.Constructible() {
		if t.Kind == catalog.KindInterface {
			return nil, &NotFoundError{ID: t.Name, Msg: "cannot instantiate interface " + t.Name}
		}
		return nil, newError("cannot instantiate abstract class %s", t.Name)
	}
	return t, nil
}

// callClass picks the type whose methods the rule calls: the rule's class
// or the identifier when it is a known class, otherwise the type of the
// instance built.
func (c *Container) callClass(id string, rule Rule, instance interface{}) (string, bool) {
	if name := className(id, rule); c.catalog.IsClass(name) {
		return name, true
	}
	if name := c.catalog.NameOf(instance); name != "" {
		return name, true
	}
	return "", false
}

func (c *Container) compileCalls(class string, calls []MethodCall) ([]compiledCall, error) {
	out := make([]compiledCall, 0, len(calls))
	for _, call := range calls {
		m, ok := c.catalog.Method(class, call.Method)
		if !ok {
			return nil, newError("method %s.%s() does not exist", class, call.Method)
		}
		plan, err := c.makeDefaultArgs(m, call.Args)
		if err != nil {
			return nil, err
		}
		out = append(out, compiledCall{method: m, plan: plan})
	}
	return out, nil
}

func (c *Container) runCalls(instance interface{}, calls []compiledCall) error {
	for _, call := range calls {
		in, err := c.resolveArgs(call.plan, Args{}, instance)
		if err != nil {
			return err
		}
		if _, err := c.invoke(call.method, instance, in); err != nil {
			return err
		}
	}
	return nil
}

// invoke calls fn. Errors returned by fn pass through unchanged; failures
// to make the call are container errors.
func (c *Container) invoke(fn *catalog.Func, recv interface{}, args []interface{}) (interface{}, error) {
	result, err := fn.Invoke(recv, args)
	if err == nil {
		return result, nil
	}
	var callErr *catalog.CallError
	if errors.As(err, &callErr) {
		return nil, wrapError(callErr.Err, "cannot call %s", fn.Name)
	}
	return nil, err
}
