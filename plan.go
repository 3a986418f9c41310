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
	"sort"
	"strings"

	"go.uber.org/ioc/catalog"
)

// plannedArg is the default value of one parameter: a literal or a
// Resolvable computed when the function is called.
type plannedArg struct {
	name  string
	value interface{}
}

// makeDefaultArgs plans the arguments of fn from the arguments configured
// in a rule. Positional rule arguments are consumed in order, skipping
// parameters that are named, autowired or defaulted.
func (c *Container) makeDefaultArgs(fn *catalog.Func, ruleArgs Args) ([]plannedArg, error) {
	plan := make([]plannedArg, len(fn.Params))

	pos := 0
	for i, p := range fn.Params {
		name := strings.ToLower(p.Name)
		types := c.catalog.DeclaredTypes(p)

		var class string
		if len(types) == 1 {
			class = types[0]
		}

		var value interface{}
		if v, ok := ruleArgs.Lookup(name); ok {
			value = v
		} else if v, ok := ruleArgs.At(pos); ok && class != "" && c.compatible(v, class) {
			value = v
			pos++
		} else if class != "" && (c.catalog.Constructible(class) || c.hasRule(class) || c.hasInstance(class)) {
			value = &DefaultReference{Class: class}
		} else if v, ok := ruleArgs.At(pos); ok {
			value = v
			pos++
		} else if p.HasDefault {
			value = p.Default
		} else if p.Union() {
			return nil, newError("cannot autowire parameter $%s of %s: union type %s has no default",
				p.Name, fn.Name, strings.Join(types, "|"))
		} else {
			value = &RequiredParameter{Class: class, Parameter: p.Name, Function: fn.Name}
		}

		plan[i] = plannedArg{name: name, value: value}
	}
	return plan, nil
}

// compatible reports whether a configured value can stand in for a
// parameter declared as class: an instance of it, or a reference to an
// entry building it.
func (c *Container) compatible(v interface{}, class string) bool {
	if ref, ok := v.(*Reference); ok {
		if len(ref.Name) != 1 {
			return false
		}
		return c.catalog.IsSubtype(c.findRuleClass(ref.Name[0]), class)
	}
	return c.catalog.IsA(v, class)
}

// findRuleClass returns the class the entry id builds, following aliases.
func (c *Container) findRuleClass(id string) string {
	id = normalizeID(id)
	seen := map[string]struct{}{}
	for {
		r, ok := c.rules[id]
		if !ok {
			return id
		}
		if r.AliasOf != "" {
			if _, dup := seen[id]; dup {
				return id
			}
			seen[id] = struct{}{}
			id = normalizeID(r.AliasOf)
			continue
		}
		if r.Class != "" {
			return r.Class
		}
		return id
	}
}

// resolveArgs computes the final arguments of a call from its plan and the
// arguments passed at call time. Named arguments always win. A positional
// argument replaces an autowired parameter only when its type fits.
func (c *Container) resolveArgs(plan []plannedArg, args Args, instance interface{}) ([]interface{}, error) {
	args, err := c.resolveCallArgs(args, instance)
	if err != nil {
		return nil, err
	}

	out := make([]interface{}, len(plan))
	pos := 0
	for i, arg := range plan {
		var value interface{}
		if v, ok := args.Lookup(arg.name); ok {
			value = v
		} else if v, ok := args.At(pos); ok && v != nil && c.accepts(arg.value, v) {
			value = v
			pos++
		} else {
			value = arg.value
		}

		if r, ok := value.(Resolvable); ok {
			if value, err = r.Resolve(c, instance); err != nil {
				return nil, err
			}
		}
		out[i] = value
	}
	return out, nil
}

// resolveCallArgs resolves the Resolvables passed at call time so that type
// checks see the values they stand for.
func (c *Container) resolveCallArgs(args Args, instance interface{}) (Args, error) {
	var out Args
	if len(args.Positional) > 0 {
		out.Positional = make([]interface{}, len(args.Positional))
	}
	for i, v := range args.Positional {
		if r, ok := v.(Resolvable); ok {
			var err error
			if v, err = r.Resolve(c, instance); err != nil {
				return Args{}, err
			}
		}
		out.Positional[i] = v
	}
	names := make([]string, 0, len(args.Named))
	for k := range args.Named {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		v := args.Named[k]
		if r, ok := v.(Resolvable); ok {
			var err error
			if v, err = r.Resolve(c, instance); err != nil {
				return Args{}, err
			}
		}
		out.setNamed(k, v)
	}
	return out, nil
}

// accepts reports whether a positional call argument may replace the
// planned default.
func (c *Container) accepts(planned, v interface{}) bool {
	var class string
	switch p := planned.(type) {
	case *DefaultReference:
		class = p.Class
	case *RequiredParameter:
		class = p.Class
	}
	return class == "" || c.catalog.IsA(v, class)
}
