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

package ioc_test

import (
	"errors"
	"testing"

	"go.uber.org/goleak"
	"go.uber.org/ioc"
	"go.uber.org/ioc/catalog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type DbInterface interface {
	DbName() string
}

type Db struct {
	Name string
	I    int
}

func (d *Db) init(name string) { d.Name = name }

func (d *Db) DbName() string { return d.Name }

func (d *Db) inc() { d.I++ }

type PdoDb struct {
	Db
}

type ExtendedPdoDb struct {
	PdoDb
}

type DbDecorator struct {
	Db DbInterface
}

func (d *DbDecorator) init(db DbInterface) {
	if db == nil {
		db = &Db{Name: "default"}
	}
	d.Db = db
}

type Sql struct {
	Db   *Db
	Name string
}

func (s *Sql) init(db *Db, name string) {
	s.Db = db
	s.Name = name
}

func (s *Sql) setDb(db *Db) { s.Db = db }

type Tuple struct {
	A, B interface{}
}

func (t *Tuple) init(a, b interface{}) {
	t.A, t.B = a, b
}

func (t *Tuple) setA(a interface{}) { t.A = a }

func (t *Tuple) setB(b interface{}) { t.B = b }

type FooAware interface {
	SetFoo(foo interface{})
}

// Foo has no constructor.
type Foo struct {
	Foo, Bar interface{}
}

func (f *Foo) SetFoo(foo interface{}) { f.Foo = foo }

func (f *Foo) SetBar(bar interface{}) { f.Bar = bar }

type CircleA struct{ B *CircleB }

func (a *CircleA) init(b *CircleB) { a.B = b }

type CircleB struct{ C *CircleC }

func (b *CircleB) init(c *CircleC) { b.C = c }

type CircleC struct{ A *CircleA }

func (c *CircleC) init(a *CircleA) { c.A = a }

type NotFoundConsumer struct {
	Dep  interface{}
	Flag bool
}

func (n *NotFoundConsumer) init(dep interface{}, flag bool) {
	n.Dep, n.Flag = dep, flag
}

type Union struct {
	V interface{}
}

func (u *Union) init(v interface{}) { u.V = v }

type Greeter struct {
	Greeting string
}

func (g *Greeter) init(greeting string) { g.Greeting = greeting }

var errFlaky = errors.New("flaky")

type Flaky struct{}

func (*Flaky) init() error { return errFlaky }

type Boom struct{}

func (*Boom) init() { panic("kaboom") }

func newCatalog() *catalog.Catalog {
	return catalog.New().MustAdd(
		catalog.Interface[DbInterface]("DbInterface"),
		catalog.Class[Db]("Db",
			catalog.Implements("DbInterface"),
			catalog.Constructor((*Db).init, catalog.P("name", catalog.Default("localhost"))),
			catalog.Method("inc", (*Db).inc),
		),
		catalog.Class[PdoDb]("PdoDb", catalog.Extends("Db")),
		catalog.Class[ExtendedPdoDb]("ExtendedPdoDb", catalog.Extends("PdoDb")),
		catalog.Class[DbDecorator]("DbDecorator",
			catalog.Constructor((*DbDecorator).init, catalog.P("db", catalog.Optional())),
		),
		catalog.Class[DbDecorator]("StrictDbDecorator",
			catalog.Constructor((*DbDecorator).init, catalog.P("db")),
		),
		catalog.Class[Sql]("Sql",
			catalog.Constructor((*Sql).init, catalog.P("db"), catalog.P("name", catalog.Default("Sql"))),
			catalog.Method("setDb", (*Sql).setDb, catalog.P("db")),
		),
		catalog.Class[Tuple]("Tuple",
			catalog.Constructor((*Tuple).init,
				catalog.P("a", catalog.Optional()),
				catalog.P("b", catalog.Optional()),
			),
			catalog.Method("setA", (*Tuple).setA, catalog.P("a")),
			catalog.Method("setB", (*Tuple).setB, catalog.P("b")),
		),
		catalog.Interface[FooAware]("FooAware"),
		catalog.Class[Foo]("Foo",
			catalog.Implements("FooAware"),
			catalog.Method("setFoo", (*Foo).SetFoo, catalog.P("foo")),
			catalog.Method("setBar", (*Foo).SetBar, catalog.P("bar")),
		),
		catalog.Class[CircleA]("CircleA", catalog.Constructor((*CircleA).init, catalog.P("b"))),
		catalog.Class[CircleB]("CircleB", catalog.Constructor((*CircleB).init, catalog.P("c"))),
		catalog.Class[CircleC]("CircleC", catalog.Constructor((*CircleC).init, catalog.P("a"))),
		catalog.Class[NotFoundConsumer]("NotFoundRequiredConsumer",
			catalog.Constructor((*NotFoundConsumer).init,
				catalog.P("dep", catalog.Typed("SomeNonExistentInterface")),
				catalog.P("flag", catalog.Default(false)),
			),
		),
		catalog.Class[NotFoundConsumer]("NotFoundOptionalConsumer",
			catalog.Constructor((*NotFoundConsumer).init,
				catalog.P("dep", catalog.Typed("SomeNonExistentInterface"), catalog.Optional()),
				catalog.P("flag", catalog.Default(false)),
			),
		),
		catalog.Class[Union]("UnionWithDefault",
			catalog.Constructor((*Union).init, catalog.P("v", catalog.Typed("Db", "Sql"), catalog.Default("fallback"))),
		),
		catalog.Class[Union]("UnionWithoutDefault",
			catalog.Constructor((*Union).init, catalog.P("v", catalog.Typed("Db", "Sql"))),
		),
		catalog.Class[Greeter]("Greeter", catalog.Constructor((*Greeter).init, catalog.P("greeting"))),
		catalog.Class[Flaky]("Flaky", catalog.Constructor((*Flaky).init)),
		catalog.Class[Boom]("Boom", catalog.Constructor((*Boom).init)),
		catalog.Class[Db]("AbstractDb", catalog.Abstract()),
	)
}

func newContainer(opts ...ioc.Option) *ioc.Container {
	return ioc.New(append([]ioc.Option{ioc.WithCatalog(newCatalog())}, opts...)...)
}
