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

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Catalog is the registry of types known to a container. It is not safe for
// concurrent modification.
type Catalog struct {
	types  map[string]*Type
	folded map[string]string
	byGo   map[reflect.Type]string
}

// New builds a catalog holding the given types. It panics if any of them
// cannot be registered; use Add to handle registration errors.
func New(types ...*Type) *Catalog {
	c := &Catalog{
		types:  make(map[string]*Type),
		folded: make(map[string]string),
		byGo:   make(map[reflect.Type]string),
	}
	return c.MustAdd(types...)
}

// Add registers types. Every problem found is reported; valid types are
// registered even when others fail.
func (c *Catalog) Add(types ...*Type) error {
	var errs error
	for _, t := range types {
		errs = multierr.Append(errs, c.add(t))
	}
	return errs
}

// MustAdd is like Add but panics on error.
func (c *Catalog) MustAdd(types ...*Type) *Catalog {
	if err := c.Add(types...); err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) add(t *Type) error {
	switch {
	case t == nil:
		return errors.New("cannot register a nil type")
	case t.Name == "":
		return errors.Errorf("cannot register %v without a name", t.goType)
	case t.err != nil:
		return errors.Wrapf(t.err, "cannot register %q", t.Name)
	case t.Kind == KindInterface && t.Parent != "":
		return errors.Errorf("interface %q cannot extend a class, use Implements", t.Name)
	}
	if _, ok := c.types[t.Name]; ok {
		return errors.Errorf("type %q already registered", t.Name)
	}

	c.types[t.Name] = t
	if _, ok := c.folded[strings.ToLower(t.Name)]; !ok {
		c.folded[strings.ToLower(t.Name)] = t.Name
	}
	if t.goType != nil {
		if _, ok := c.byGo[t.goType]; !ok {
			c.byGo[t.goType] = t.Name
		}
	}
	return nil
}

// Lookup finds a type by name, falling back to a case-insensitive match.
func (c *Catalog) Lookup(name string) (*Type, bool) {
	if c == nil {
		return nil, false
	}
	if t, ok := c.types[name]; ok {
		return t, true
	}
	if n, ok := c.folded[strings.ToLower(name)]; ok {
		return c.types[n], true
	}
	return nil, false
}

// Exists reports whether name is a registered class or interface.
func (c *Catalog) Exists(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// IsClass reports whether name is a registered class, abstract or not.
func (c *Catalog) IsClass(name string) bool {
	t, ok := c.Lookup(name)
	return ok && t.Kind == KindClass
}

// Constructible reports whether name is a class that can be instantiated.
func (c *Catalog) Constructible(name string) bool {
	t, ok := c.Lookup(name)
	return ok && t.Constructible()
}

// Parents returns the registered ancestors of a class, nearest first.
func (c *Catalog) Parents(name string) []string {
	t, ok := c.Lookup(name)
	if !ok || t.Kind != KindClass {
		return nil
	}

	var parents []string
	seen := map[string]struct{}{t.Name: {}}
	for t.Parent != "" {
		p, ok := c.Lookup(t.Parent)
		if !ok || p.Kind != KindClass {
			break
		}
		if _, dup := seen[p.Name]; dup {
			break
		}
		seen[p.Name] = struct{}{}
		parents = append(parents, p.Name)
		t = p
	}
	return parents
}

// Interfaces returns every registered interface implemented by name,
// including interfaces inherited from parents and extended by other
// interfaces. For an interface, the interfaces it extends are returned.
func (c *Catalog) Interfaces(name string) []string {
	t, ok := c.Lookup(name)
	if !ok {
		return nil
	}

	var (
		out  []string
		seen = map[string]struct{}{t.Name: {}}
	)
	var visit func(names []string)
	visit = func(names []string) {
		for _, n := range names {
			it, ok := c.Lookup(n)
			if !ok || it.Kind != KindInterface {
				continue
			}
			if _, dup := seen[it.Name]; dup {
				continue
			}
			seen[it.Name] = struct{}{}
			out = append(out, it.Name)
			visit(it.Interfaces)
		}
	}

	visit(t.Interfaces)
	for _, p := range c.Parents(t.Name) {
		pt, _ := c.Lookup(p)
		visit(pt.Interfaces)
	}
	return out
}

// IsSubtype reports whether child is parent, extends it, or implements it.
func (c *Catalog) IsSubtype(child, parent string) bool {
	ct, ok := c.Lookup(child)
	if !ok {
		return false
	}
	pt, ok := c.Lookup(parent)
	if !ok {
		return false
	}
	if ct == pt {
		return true
	}
	if pt.Kind == KindInterface {
		for _, i := range c.Interfaces(ct.Name) {
			if i == pt.Name {
				return true
			}
		}
		return false
	}
	for _, p := range c.Parents(ct.Name) {
		if p == pt.Name {
			return true
		}
	}
	return false
}

// NameOf returns the catalog name of v's Go type, or "" if the type is
// not registered.
func (c *Catalog) NameOf(v interface{}) string {
	if v == nil || c == nil {
		return ""
	}
	return c.byGo[reflect.TypeOf(v)]
}

// IsA reports whether v is an instance of the type called name.
//
// Registered values are checked against the declared hierarchy. Other
// values match an interface when their Go type implements it, and a class
// when they have exactly its Go type.
func (c *Catalog) IsA(v interface{}, name string) bool {
	if v == nil {
		return false
	}
	t, ok := c.Lookup(name)
	if !ok {
		return false
	}
	if n := c.NameOf(v); n != "" {
		if c.IsSubtype(n, t.Name) {
			return true
		}
	}
	if t.goType == nil {
		return false
	}

	vt := reflect.TypeOf(v)
	if t.Kind == KindInterface {
		return t.goType.NumMethod() > 0 && vt.Implements(t.goType)
	}
	return vt == t.goType
}

// Method finds a method on a type or the nearest ancestor declaring it.
func (c *Catalog) Method(typeName, method string) (*Func, bool) {
	t, ok := c.Lookup(typeName)
	if !ok {
		return nil, false
	}
	if f, ok := t.Method(method); ok {
		return f, true
	}
	for _, p := range c.Parents(t.Name) {
		pt, _ := c.Lookup(p)
		if f, ok := pt.Method(method); ok {
			return f, true
		}
	}
	return nil, false
}

// ConstructorOf returns the constructor used to initialize instances of a
// class: its own, or the nearest ancestor's. It returns nil when no class in
// the chain declares one.
func (c *Catalog) ConstructorOf(name string) *Func {
	t, ok := c.Lookup(name)
	if !ok {
		return nil
	}
	if t.Constructor != nil {
		return t.Constructor
	}
	for _, p := range c.Parents(t.Name) {
		if pt, _ := c.Lookup(p); pt.Constructor != nil {
			return pt.Constructor
		}
	}
	return nil
}

// DeclaredTypes returns the type names a parameter declares: the explicit
// Typed names if any, otherwise the catalog name of its Go type.
func (c *Catalog) DeclaredTypes(p Param) []string {
	if len(p.Types) > 0 {
		return p.Types
	}
	if p.goType == nil || c == nil {
		return nil
	}
	if n, ok := c.byGo[p.goType]; ok {
		return []string{n}
	}
	return nil
}
