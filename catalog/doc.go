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

// Package catalog describes the types a container can build.
//
// Go keeps neither parameter names nor class hierarchies at runtime, so each
// type the container should know about is registered with its name, the
// class it extends, the interfaces it implements, an initializer and any
// methods rules may call:
//
//	cat := catalog.New(
//		catalog.Interface[DbInterface]("DbInterface"),
//		catalog.Class[Db]("Db",
//			catalog.Implements("DbInterface"),
//			catalog.Constructor((*Db).init, catalog.P("name", catalog.Default("localhost"))),
//		),
//		catalog.Class[PdoDb]("PdoDb", catalog.Extends("Db")),
//	)
//
// Instances are allocated before their constructor runs. Constructors and
// methods are method expressions or plain functions taking the instance
// first. A class without a constructor uses its nearest ancestor's, which
// receives the embedded ancestor value.
package catalog
