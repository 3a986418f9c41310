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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/ioc"
	"go.uber.org/ioc/catalog"
)

func TestRuleInheritance(t *testing.T) {
	t.Parallel()

	t.Run("default rule", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.DefaultRule().SetConstructorArgs(ioc.Named("name", "foo"))

		db, err := c.Get("Db")
		require.NoError(t, err)
		assert.Equal(t, "foo", db.(*Db).Name)
	})

	t.Run("default rule not inherited", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.DefaultRule().SetConstructorArgs(ioc.Named("name", "foo")).SetInherit(false)

		db, err := c.Get("Db")
		require.NoError(t, err)
		assert.Equal(t, "localhost", db.(*Db).Name)
	})

	t.Run("parent rule", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("Db").SetConstructorArgs("foo")
		c.Rule("PdoDb").SetShared(false)

		for _, id := range []string{"PdoDb", "ExtendedPdoDb"} {
			v, err := c.Get(id)
			require.NoError(t, err, id)
			assert.Equal(t, "foo", v.(DbInterface).DbName(), id)
		}
	})

	t.Run("ancestor without rule stops inheritance", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("Db").SetConstructorArgs("foo")

		v, err := c.Get("ExtendedPdoDb")
		require.NoError(t, err)
		assert.Equal(t, "localhost", v.(*ExtendedPdoDb).Name, "PdoDb has no rule")

		v, err = c.Get("PdoDb")
		require.NoError(t, err)
		assert.Equal(t, "foo", v.(*PdoDb).Name)
	})

	t.Run("parent rule not inherited", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("Db").SetInherit(false).SetConstructorArgs("foo")

		v, err := c.Get("PdoDb")
		require.NoError(t, err)
		assert.NotEqual(t, "foo", v.(*PdoDb).Name)
		assert.Equal(t, "localhost", v.(*PdoDb).Name)

		v, err = c.Get("Db")
		require.NoError(t, err)
		assert.Equal(t, "foo", v.(*Db).Name, "the rule still applies to its own class")
	})

	t.Run("inheritance stops at opted out ancestor", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("Db").SetConstructorArgs("db")
		c.Rule("PdoDb").SetInherit(false).SetShared(true)

		v, err := c.Get("ExtendedPdoDb")
		require.NoError(t, err)
		assert.Equal(t, "localhost", v.(*ExtendedPdoDb).Name)
		assert.False(t, c.HasInstance("ExtendedPdoDb"))

		v, err = c.Get("PdoDb")
		require.NoError(t, err)
		assert.Equal(t, "db", v.(*PdoDb).Name)
		assert.True(t, c.HasInstance("PdoDb"))
	})

	t.Run("own settings win", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("Db").SetShared(true).SetConstructorArgs("db")
		c.Rule("PdoDb").SetShared(false)

		v1, err := c.Get("PdoDb")
		require.NoError(t, err)
		v2, err := c.Get("PdoDb")
		require.NoError(t, err)
		assert.NotSame(t, v1, v2)
		assert.Equal(t, "db", v1.(*PdoDb).Name)
	})

	t.Run("class is not inherited", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("Db").SetClass("ExtendedPdoDb")

		v, err := c.Get("PdoDb")
		require.NoError(t, err)
		assert.IsType(t, &PdoDb{}, v)

		v, err = c.Get("Db")
		require.NoError(t, err)
		assert.IsType(t, &ExtendedPdoDb{}, v)
	})
}

func TestInterfaceRules(t *testing.T) {
	t.Parallel()

	t.Run("calls", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("FooAware").AddCall("setFoo", 123)

		foo, err := c.Get("Foo")
		require.NoError(t, err)
		assert.Equal(t, 123, foo.(*Foo).Foo)
	})

	t.Run("calls add to own calls", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("FooAware").AddCall("setFoo", "interface")
		c.Rule("Foo").AddCall("setBar", "own").AddCall("setFoo", "own")

		foo, err := c.Get("Foo")
		require.NoError(t, err)
		assert.Equal(t, "interface", foo.(*Foo).Foo, "interface calls run last")
		assert.Equal(t, "own", foo.(*Foo).Bar)
	})

	t.Run("not inherited", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("FooAware").AddCall("setFoo", 123).SetInherit(false)

		foo, err := c.Get("Foo")
		require.NoError(t, err)
		assert.Nil(t, foo.(*Foo).Foo)
	})

	t.Run("shared and constructor args", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("DbInterface").SetShared(true).SetConstructorArgs("iface")

		db1, err := c.Get("PdoDb")
		require.NoError(t, err)
		db2, err := c.Get("PdoDb")
		require.NoError(t, err)
		assert.Same(t, db1, db2)
		assert.Equal(t, "iface", db1.(*PdoDb).Name)
	})

	t.Run("explicit settings win", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("DbInterface").SetShared(true).SetConstructorArgs("iface")
		c.Rule("Db").SetShared(false).SetConstructorArgs("own")

		db1, err := c.Get("Db")
		require.NoError(t, err)
		db2, err := c.Get("Db")
		require.NoError(t, err)
		assert.NotSame(t, db1, db2)
		assert.Equal(t, "own", db1.(*Db).Name)
	})

	t.Run("empty constructor args are filled", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("DbInterface").SetConstructorArgs("iface")
		c.Rule("Db").SetConstructorArgs()

		db, err := c.Get("Db")
		require.NoError(t, err)
		assert.Equal(t, "iface", db.(*Db).Name)
	})
}

func TestCalls(t *testing.T) {
	t.Parallel()

	t.Run("autowired method arguments", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("Sql").
			SetConstructorArgs(ioc.Named("db", nil)).
			AddCall("setDb")

		sql, err := c.Get("Sql")
		require.NoError(t, err)
		require.NotNil(t, sql.(*Sql).Db)
		assert.Equal(t, "localhost", sql.(*Sql).Db.Name)
	})

	t.Run("order", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("Db").AddCall("inc").AddCall("inc").AddCall("inc")

		db, err := c.Get("Db")
		require.NoError(t, err)
		assert.Equal(t, 3, db.(*Db).I)
	})

	t.Run("callback sees instance", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("Tuple").
			SetConstructorArgs("a").
			AddCall("setB", ioc.NewCallback(func(_ *ioc.Container, instance interface{}) (interface{}, error) {
				return instance.(*Tuple).A.(string) + "!", nil
			}))

		tuple, err := c.Get("Tuple")
		require.NoError(t, err)
		assert.Equal(t, &Tuple{A: "a", B: "a!"}, tuple)
	})

	t.Run("missing method", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("Db").AddCall("missing")

		_, err := c.Get("Db")
		require.Error(t, err)
		assert.EqualError(t, err, "method Db.missing() does not exist")
	})

	t.Run("inherited method", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("ExtendedPdoDb").SetShared(true).AddCall("inc")

		db, err := c.Get("ExtendedPdoDb")
		require.NoError(t, err)
		assert.Equal(t, 1, db.(*ExtendedPdoDb).I)
	})

	t.Run("factory result", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("sqlFactory").
			SetFactory(func() *Sql { return &Sql{Name: "factory"} }).
			AddCall("setDb", ioc.NewReference("Db", "called"))

		sql, err := c.Get("sqlFactory")
		require.NoError(t, err)
		assert.Equal(t, "factory", sql.(*Sql).Name)
		assert.Equal(t, "called", sql.(*Sql).Db.Name)
	})

	t.Run("factory result not in catalog", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("n").SetFactory(func() int { return 1 }).AddCall("inc")

		_, err := c.Get("n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot call methods on int built for n")
	})
}

func TestAliases(t *testing.T) {
	t.Parallel()

	t.Run("shared", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("Db").SetShared(true).AddAlias("database", "db")

		db, err := c.Get("Db")
		require.NoError(t, err)
		for _, alias := range []string{"database", "db", `\db`} {
			v, err := c.Get(alias)
			require.NoError(t, err, alias)
			assert.Same(t, db, v, alias)
		}
		assert.Equal(t, []string{"database", "db"}, c.Aliases())
	})

	t.Run("transitive", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("Db").SetShared(true)
		c.Rule("b").SetAliasOf("Db")
		c.Rule("a").SetAliasOf("b")

		a, err := c.Get("a")
		require.NoError(t, err)
		db, err := c.Get("Db")
		require.NoError(t, err)
		assert.Same(t, db, a)
		assert.Equal(t, "Db", c.Rule("b").AliasOf())
	})

	t.Run("not shared", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("Db").SetConstructorArgs("aliased").AddAlias("db")

		v1, err := c.Get("db")
		require.NoError(t, err)
		v2, err := c.Get("db")
		require.NoError(t, err)
		assert.NotSame(t, v1, v2)
		assert.Equal(t, "aliased", v1.(*Db).Name)
	})

	t.Run("alias to itself", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("Db").AddAlias("Db").SetAliasOf(`\Db`)
		assert.Empty(t, c.Aliases())
		assert.Empty(t, c.AliasOf())

		_, err := c.Get("Db")
		assert.NoError(t, err)
	})

	t.Run("loop", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("a").SetAliasOf("b")
		c.Rule("b").SetAliasOf("a")

		_, err := c.Get("a")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "refers to itself")
	})

	t.Run("remove", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("Db").AddAlias("db")
		c.Rule("Sql").RemoveAlias("db")

		assert.Empty(t, c.Rule("Db").Aliases())
		assert.False(t, c.HasRule("db"))
	})

	t.Run("references follow aliases", func(t *testing.T) {
		t.Parallel()

		c := newContainer()
		c.Rule("PdoDb").AddAlias("pdo")
		c.Rule("Sql").SetConstructorArgs(ioc.NewReference("pdo"), "with alias")

		sql, err := c.Get("Sql")
		require.NoError(t, err)
		assert.Equal(t, "with alias", sql.(*Sql).Name, "the reference fills the typed parameter")
	})
}

func TestRuleAccessors(t *testing.T) {
	t.Parallel()

	c := newContainer()
	assert.Equal(t, ioc.DefaultRuleID, c.RuleID())
	assert.True(t, c.Inherit(), "the default rule is inherited")
	assert.False(t, c.IsShared())
	assert.True(t, c.ConstructorArgs().Empty())

	c.Rule(`\Sql`)
	assert.Equal(t, "Sql", c.RuleID())
	assert.Empty(t, c.Class())
	assert.False(t, c.Inherit())
	assert.Nil(t, c.Factory())

	c.SetClass(`\Db`).
		SetShared(true).
		SetInherit(false).
		SetConstructorArgs("a", ioc.Named("Name", "b")).
		SetFactory(func() *Sql { return &Sql{} })

	assert.Equal(t, "Db", c.Class())
	assert.True(t, c.IsShared())
	assert.False(t, c.Inherit())
	assert.Equal(t, ioc.Args{
		Positional: []interface{}{"a"},
		Named:      map[string]interface{}{"name": "b"},
	}, c.ConstructorArgs())
	require.NotNil(t, c.Factory())
	assert.Empty(t, c.Factory().Params)

	c.SetFactory(nil)
	assert.Nil(t, c.Factory())

	f := catalog.MustFunc("newSql", func(name string) *Sql { return &Sql{Name: name} }, catalog.P("name"))
	c.SetFactory(f).SetConstructorArgs("described")
	assert.Same(t, f, c.Factory())
	v, err := c.Get("Sql")
	require.NoError(t, err)
	assert.Equal(t, "described", v.(*Sql).Name)
	assert.NoError(t, c.Err())
}
