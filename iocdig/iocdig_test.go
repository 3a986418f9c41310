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

package iocdig_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"
	"go.uber.org/goleak"
	"go.uber.org/ioc"
	"go.uber.org/ioc/catalog"
	"go.uber.org/ioc/iocdig"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type Store interface {
	Addr() string
}

type Redis struct {
	addr string
}

func (r *Redis) init(addr string) { r.addr = addr }

func (r *Redis) Addr() string { return r.addr }

func newContainer() *ioc.Container {
	c := ioc.New(ioc.WithCatalog(catalog.New().MustAdd(
		catalog.Interface[Store]("Store"),
		catalog.Class[Redis]("Redis",
			catalog.Implements("Store"),
			catalog.Constructor((*Redis).init, catalog.P("addr", catalog.Default("localhost:6379"))),
		),
		catalog.Class[Redis]("Broken", catalog.Constructor((*Redis).init, catalog.P("addr"))),
	)))
	c.Rule("Store").SetClass("Redis").SetConstructorArgs("store:6379")
	return c
}

func TestProvide(t *testing.T) {
	t.Parallel()

	c := newContainer()
	d := dig.New()
	require.NoError(t, iocdig.Provide[*Redis](d, c, "Redis"))
	require.NoError(t, iocdig.Provide[Store](d, c, "Store"))
	require.NoError(t, iocdig.ProvideContainer(d, c))

	err := d.Invoke(func(r *Redis, s Store, got *ioc.Container) {
		assert.Equal(t, "localhost:6379", r.Addr())
		assert.Equal(t, "store:6379", s.Addr())
		assert.Same(t, c, got)
	})
	require.NoError(t, err)
}

func TestProvideNamed(t *testing.T) {
	t.Parallel()

	c := newContainer()
	d := dig.New()
	require.NoError(t, iocdig.Provide[*Redis](d, c, "Redis"))
	require.NoError(t, iocdig.Provide[*Redis](d, c, "Store", dig.Name("store")))

	type params struct {
		dig.In

		Default *Redis
		Store   *Redis `name:"store"`
	}
	require.NoError(t, d.Invoke(func(p params) {
		assert.Equal(t, "localhost:6379", p.Default.Addr())
		assert.Equal(t, "store:6379", p.Store.Addr())
	}))

	err := iocdig.Provide[*Redis](d, c, "Redis")
	require.Error(t, err, "dig rejects a second provider of the same type")
	assert.Contains(t, err.Error(), "cannot provide Redis")
}

func TestProvideErrors(t *testing.T) {
	t.Parallel()

	c := newContainer()
	d := dig.New()
	require.NoError(t, iocdig.Provide[*Redis](d, c, "Broken"))

	err := d.Invoke(func(*Redis) {})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ioc.ErrMissingArgument), "got %v", err)
}

func TestProvideTypes(t *testing.T) {
	t.Parallel()

	t.Run("classes and interfaces", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("Redis").SetShared(true)
		d := dig.New()
		require.NoError(t, iocdig.ProvideTypes(d, c, "Redis", "Store"))

		err := d.Invoke(func(r *Redis, s Store) {
			shared, err := c.Get("Redis")
			require.NoError(t, err)
			assert.Same(t, shared, r)
			assert.Equal(t, "store:6379", s.Addr())
		})
		require.NoError(t, err)
	})

	t.Run("unknown types", func(t *testing.T) {
		t.Parallel()

		err := iocdig.ProvideTypes(dig.New(), newContainer(), "Nope", "Redis", "Missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot provide Nope: type is not in the catalog")
		assert.Contains(t, err.Error(), "cannot provide Missing: type is not in the catalog")
	})

	t.Run("build failure", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		d := dig.New()
		c.Rule("Redis").SetConstructorArgs(ioc.NewReference("Broken"))
		require.NoError(t, iocdig.ProvideTypes(d, c, "Redis"))

		err := d.Invoke(func(*Redis) {})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing argument $addr for Broken.New()")
	})

	t.Run("wrong type", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		d := dig.New()
		c.Rule("Redis").SetFactory(func() string { return "redis://" })
		require.NoError(t, iocdig.ProvideTypes(d, c, "Redis"))

		err := d.Invoke(func(*Redis) {})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entry Redis is a string, not a *iocdig_test.Redis")
	})
}
