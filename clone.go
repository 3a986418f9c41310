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

// Clone returns a container with a copy of this container's rules, which
// can be changed without affecting the original. Shared instances are
// carried over as is; compiled factories are not.
//
// The clone selects its copy of the currently selected rule.
func (c *Container) Clone() *Container {
	clone := &Container{
		catalog:   c.catalog,
		log:       c.log,
		clock:     c.clock,
		rules:     make(map[string]*Rule, len(c.rules)),
		instances: make(map[string]*slot, len(c.instances)),
		factories: make(map[string]factory),
		err:       c.err,
	}
	for id, r := range c.rules {
		clone.rules[id] = r.clone()
	}
	for id, s := range c.instances {
		if !s.pending {
			clone.instances[id] = &slot{value: s.value}
		}
	}

	clone.currentID = c.currentID
	clone.current = clone.rules[c.currentID]
	if clone.current == nil {
		clone.DefaultRule()
	}
	return clone
}

func (r *Rule) clone() *Rule {
	out := *r
	if r.Shared != nil {
		out.Shared = boolPtr(*r.Shared)
	}
	if r.Inherit != nil {
		out.Inherit = boolPtr(*r.Inherit)
	}
	if r.ConstructorArgs != nil {
		args := r.ConstructorArgs.clone()
		out.ConstructorArgs = &args
	}
	if r.Calls != nil {
		out.Calls = make([]MethodCall, len(r.Calls))
		for i, call := range r.Calls {
			out.Calls[i] = MethodCall{Method: call.Method, Args: call.Args.clone()}
		}
	}
	return &out
}

func (a Args) clone() Args {
	var out Args
	if a.Positional != nil {
		out.Positional = make([]interface{}, len(a.Positional))
		for i, v := range a.Positional {
			out.Positional[i] = cloneValue(v)
		}
	}
	if a.Named != nil {
		out.Named = make(map[string]interface{}, len(a.Named))
		for k, v := range a.Named {
			out.Named[k] = cloneValue(v)
		}
	}
	return out
}

// cloneValue copies the nested slices and maps configuration is built
// from. Other values, objects included, are shared.
func cloneValue(v interface{}) interface{} {
	switch v := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, e := range v {
			out[k] = cloneValue(e)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[interface{}]interface{}, len(v))
		for k, e := range v {
			out[k] = cloneValue(e)
		}
		return out
	case *Reference:
		return &Reference{Name: append([]string(nil), v.Name...), Args: v.Args.clone()}
	case Args:
		return v.clone()
	}
	return v
}
