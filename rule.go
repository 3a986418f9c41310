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

	"go.uber.org/ioc/catalog"
	"go.uber.org/ioc/iocevent"
)

// Rule tells the container how to build the entry for an identifier.
//
// Pointer fields distinguish unset values from explicit zero values: only
// unset fields are filled from ancestor, default and interface rules.
type Rule struct {
	// Class is the catalog type to instantiate. Empty means the identifier
	// itself.
	Class string

	// AliasOf redirects lookups of this identifier to another one.
	AliasOf string

	// Factory builds the entry instead of the class constructor.
	Factory *catalog.Func

	// Shared entries are built once per container.
	Shared *bool

	// Inherit makes the rule apply to subclasses and implementers that do
	// not override it. Only an explicit false opts out.
	Inherit *bool

	ConstructorArgs *Args

	// Calls are methods invoked on every new instance, in order.
	Calls []MethodCall
}

// MethodCall is a method invoked after construction.
type MethodCall struct {
	Method string
	Args   Args
}

func (r *Rule) empty() bool {
	return r.Class == "" &&
		r.AliasOf == "" &&
		r.Factory == nil &&
		r.Shared == nil &&
		r.Inherit == nil &&
		r.ConstructorArgs == nil &&
		len(r.Calls) == 0
}

func boolPtr(b bool) *bool { return &b }

// Rule selects the rule for id, creating an empty one if needed. The
// setters that follow modify this rule.
//
//	c.Rule("Db").
//		SetShared(true).
//		SetConstructorArgs(ioc.Named("name", "production"))
func (c *Container) Rule(id string) *Container {
	id = normalizeID(id)
	r, ok := c.rules[id]
	if !ok {
		r = &Rule{}
		c.rules[id] = r
	}
	c.currentID, c.current = id, r
	return c
}

// DefaultRule selects the rule every other rule inherits from.
func (c *Container) DefaultRule() *Container {
	return c.Rule(DefaultRuleID)
}

// RuleID returns the identifier of the selected rule.
func (c *Container) RuleID() string {
	return c.currentID
}

// SetClass sets the type built for the selected rule.
func (c *Container) SetClass(class string) *Container {
	c.current.Class = normalizeID(class)
	return c
}

// Class returns the type built for the selected rule, or "".
func (c *Container) Class() string {
	return c.current.Class
}

// SetShared sets whether the selected rule builds a single shared instance.
func (c *Container) SetShared(shared bool) *Container {
	c.current.Shared = boolPtr(shared)
	return c
}

// IsShared reports whether the selected rule is explicitly shared.
func (c *Container) IsShared() bool {
	return c.current.Shared != nil && *c.current.Shared
}

// SetInherit sets whether subclasses and implementers inherit the selected
// rule.
func (c *Container) SetInherit(inherit bool) *Container {
	c.current.Inherit = boolPtr(inherit)
	return c
}

// Inherit reports whether the selected rule is explicitly inherited.
func (c *Container) Inherit() bool {
	return c.current.Inherit != nil && *c.current.Inherit
}

// SetConstructorArgs replaces the constructor arguments of the selected
// rule. Wrap values with Named to match parameters by name.
func (c *Container) SetConstructorArgs(args ...interface{}) *Container {
	a := NewArgs(args...)
	c.current.ConstructorArgs = &a
	return c
}

// ConstructorArgs returns the constructor arguments of the selected rule.
func (c *Container) ConstructorArgs() Args {
	if c.current.ConstructorArgs == nil {
		return Args{}
	}
	return *c.current.ConstructorArgs
}

// SetFactory makes the selected rule build entries by calling fn instead
// of a class constructor. fn is a *catalog.Func or a Go function described
// by params. A nil fn removes the factory.
//
// Invalid functions are recorded as configuration errors; see Err.
func (c *Container) SetFactory(fn interface{}, params ...catalog.Param) *Container {
	if fn == nil {
		c.current.Factory = nil
		return c
	}

	f, err := catalog.NewFunc("", fn, params...)
	if err != nil {
		c.configError(wrapError(err, "invalid factory for rule %s", c.currentID))
		return c
	}
	c.current.Factory = f
	return c
}

// Factory returns the factory of the selected rule, or nil.
func (c *Container) Factory() *catalog.Func {
	return c.current.Factory
}

// AddCall adds a method to call on new instances of the selected rule.
func (c *Container) AddCall(method string, args ...interface{}) *Container {
	c.current.Calls = append(c.current.Calls, MethodCall{Method: method, Args: NewArgs(args...)})
	return c
}

// AddAlias makes each alias resolve to the selected rule. Aliasing a rule
// to itself is ignored.
func (c *Container) AddAlias(aliases ...string) *Container {
	for _, alias := range aliases {
		alias = normalizeID(alias)
		if alias == c.currentID {
			c.log.LogEvent(&iocevent.AliasIgnored{Alias: alias, RuleID: c.currentID})
			continue
		}

		r, ok := c.rules[alias]
		if !ok {
			r = &Rule{}
			c.rules[alias] = r
		}
		r.AliasOf = c.currentID
	}
	return c
}

// RemoveAlias removes alias. An alias pointing to a rule other than the
// selected one is removed all the same.
func (c *Container) RemoveAlias(alias string) *Container {
	alias = normalizeID(alias)
	r, ok := c.rules[alias]
	if !ok {
		return c
	}
	if r.AliasOf != "" && r.AliasOf != c.currentID {
		c.log.LogEvent(&iocevent.AliasMismatch{Alias: alias, RuleID: c.currentID, Target: r.AliasOf})
	}
	r.AliasOf = ""
	return c
}

// Aliases returns the identifiers aliased to the selected rule, sorted.
func (c *Container) Aliases() []string {
	var aliases []string
	for id, r := range c.rules {
		if r.AliasOf == c.currentID {
			aliases = append(aliases, id)
		}
	}
	sort.Strings(aliases)
	return aliases
}

// SetAliasOf makes the selected rule resolve to id. Aliasing a rule to
// itself is ignored.
func (c *Container) SetAliasOf(id string) *Container {
	id = normalizeID(id)
	if id == c.currentID {
		c.log.LogEvent(&iocevent.AliasIgnored{Alias: id, RuleID: c.currentID})
		return c
	}
	c.current.AliasOf = id
	return c
}

// AliasOf returns the identifier the selected rule resolves to, or "".
func (c *Container) AliasOf() string {
	return c.current.AliasOf
}
