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

// Package ioc is an inversion of control container.
//
// Given an identifier, usually the name of a type, the container returns a
// fully built instance. Constructor and method arguments come from rules
// configured on the container, from arguments passed at call time, or from
// the container itself by resolving the declared type of each parameter.
//
// # Types
//
// Go keeps neither parameter names nor class hierarchies at runtime, so the
// types the container builds are described in a catalog:
//
//	cat := catalog.New(
//		catalog.Interface[DbInterface]("DbInterface"),
//		catalog.Class[Db]("Db",
//			catalog.Implements("DbInterface"),
//			catalog.Constructor((*Db).init, catalog.P("name", catalog.Default("localhost"))),
//		),
//		catalog.Class[Sql]("Sql",
//			catalog.Constructor((*Sql).init, catalog.P("db"), catalog.P("name", catalog.Default("Sql"))),
//		),
//	)
//	c := ioc.New(ioc.WithCatalog(cat))
//
// Getting "Sql" builds a Db for its first parameter because the parameter
// is declared as *Db and Db is a constructible class.
//
// # Rules
//
// Rules are selected with Rule and changed with the setters that follow:
//
//	c.Rule("DbInterface").
//		SetClass("Db").
//		SetShared(true).
//		SetConstructorArgs(ioc.Named("name", "production")).
//		AddAlias("db")
//
// A class picks up the rules of its ancestors, then the default rule, each
// filling only what is still unset. An ancestor rule with SetInherit(false)
// stops the walk. Rules of implemented interfaces fill in sharing and
// constructor arguments and add their method calls.
//
// # Shared instances
//
// Shared entries are built once. The instance is published before its
// constructor runs, so shared entries may depend on each other in a cycle;
// members of the cycle receive the instance before it is fully
// initialized. If building fails, the instance is discarded.
//
// Entries that are not shared are built on every lookup. A dependency cycle
// among them is reported as an error.
package ioc
