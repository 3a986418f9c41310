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

	"github.com/benbjohnson/clock"
	"go.uber.org/ioc/catalog"
	"go.uber.org/ioc/iocevent"
	"go.uber.org/multierr"
)

// DefaultRuleID identifies the rule every other rule falls back to.
const DefaultRuleID = "*"

// Container builds objects from rules.
//
// A Container is not safe for concurrent use. Configure it fully before
// sharing it, and guard it with a lock if it is resolved from several
// goroutines.
type Container struct {
	catalog *catalog.Catalog
	log     iocevent.Logger
	clock   clock.Clock

	rules     map[string]*Rule
	instances map[string]*slot
	factories map[string]factory

	currentID string
	current   *Rule

	// building tracks the entries being constructed, innermost last.
	building []frame

	// Configuration errors, reported by Err and by every resolution.
	err error
}

// slot holds a shared instance. A pending slot is published before its
// factory returns; until then its value is nil.
type slot struct {
	value   interface{}
	pending bool
}

type frame struct {
	id     string
	shared bool
}

// New builds a container. The default rule is selected.
func New(opts ...Option) *Container {
	c := &Container{
		catalog:   catalog.New(),
		log:       iocevent.NopLogger,
		clock:     clock.New(),
		rules:     make(map[string]*Rule),
		instances: make(map[string]*slot),
		factories: make(map[string]factory),
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	if c.catalog == nil {
		c.catalog = catalog.New()
	}

	inherit := true
	c.rules[DefaultRuleID] = &Rule{Inherit: &inherit, ConstructorArgs: &Args{}}
	c.DefaultRule()
	return c
}

// normalizeID strips a single leading namespace separator.
func normalizeID(id string) string {
	return strings.TrimPrefix(id, `\`)
}

// Catalog returns the catalog of types the container builds from.
func (c *Container) Catalog() *catalog.Catalog {
	return c.catalog
}

// Err returns the configuration errors recorded so far.
func (c *Container) Err() error {
	return c.err
}

func (c *Container) configError(err error) {
	c.err = multierr.Append(c.err, err)
	c.log.LogEvent(&iocevent.ConfigError{RuleID: c.currentID, Err: err})
}

// Get returns the entry for id.
//
// Shared entries are built once and cached. Other entries are built anew on
// every call.
func (c *Container) Get(id string) (interface{}, error) {
	return c.getArgs(id, Args{})
}

// GetArgs is like Get but passes args to the constructor or factory. Values
// wrapped with Named match parameters by name; the rest fill parameters in
// order.
//
// Arguments are ignored when a shared instance already exists.
func (c *Container) GetArgs(id string, args ...interface{}) (interface{}, error) {
	return c.getArgs(id, NewArgs(args...))
}

func (c *Container) getArgs(id string, args Args) (interface{}, error) {
	if c.err != nil {
		return nil, c.err
	}

	id = normalizeID(id)
	seen := map[string]struct{}{}
	for {
		r, ok := c.rules[id]
		if !ok || r.AliasOf == "" {
			break
		}
		if _, dup := seen[id]; dup {
			return nil, newError("alias %s refers to itself", id)
		}
		seen[id] = struct{}{}
		id = normalizeID(r.AliasOf)
	}

	if s, ok := c.instances[id]; ok && (s.value != nil || s.pending) {
		return s.value, nil
	}

	if f, ok := c.factories[id]; ok {
		done, err := c.enter(id, false)
		if err != nil {
			return nil, err
		}
		defer done()
		return f(args)
	}

	return c.createInstance(id, args)
}

// enter pushes id onto the build stack. Re-entering a non-shared entry with
// no shared entry in between can never finish and is rejected.
func (c *Container) enter(id string, shared bool) (func(), error) {
	if !shared {
		for i := len(c.building) - 1; i >= 0; i-- {
			f := c.building[i]
			if f.shared {
				break
			}
			if f.id == id {
				return nil, newError("circular dependency: %s", c.cyclePath(i, id))
			}
		}
	}

	c.building = append(c.building, frame{id: id, shared: shared})
	n := len(c.building)
	return func() { c.building = c.building[:n-1] }, nil
}

func (c *Container) cyclePath(from int, id string) string {
	ids := make([]string, 0, len(c.building)-from+1)
	for _, f := range c.building[from:] {
		ids = append(ids, f.id)
	}
	return strings.Join(append(ids, id), " -> ")
}

// Has reports whether the container can provide an entry for id: an
// instance, a configured rule or a class in the catalog. Interfaces without
// a rule do not count.
func (c *Container) Has(id string) bool {
	id = normalizeID(id)
	return c.hasInstance(id) || c.hasRule(id) || c.catalog.IsClass(id)
}

// HasRule reports whether a non-empty rule is configured for id. The
// default rule always exists.
func (c *Container) HasRule(id string) bool {
	return c.hasRule(normalizeID(id))
}

func (c *Container) hasRule(id string) bool {
	if id == DefaultRuleID {
		return true
	}
	r, ok := c.rules[id]
	return ok && !r.empty()
}

// HasInstance reports whether a shared instance exists for id.
func (c *Container) HasInstance(id string) bool {
	return c.hasInstance(normalizeID(id))
}

func (c *Container) hasInstance(id string) bool {
	s, ok := c.instances[id]
	return ok && s.value != nil
}

// SetInstance stores instance as the shared entry for id. It is returned
// by later lookups even if the rule for id is not shared.
func (c *Container) SetInstance(id string, instance interface{}) *Container {
	c.instances[normalizeID(id)] = &slot{value: instance}
	return c
}

// ClearInstances drops every shared instance. Rules and compiled factories
// are kept.
func (c *Container) ClearInstances() *Container {
	n := len(c.instances)
	c.instances = make(map[string]*slot)
	c.log.LogEvent(&iocevent.InstancesCleared{Count: n})
	return c
}
