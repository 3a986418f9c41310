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
	"time"

	"github.com/benbjohnson/clock"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/ioc"
	"go.uber.org/ioc/iocevent"
	"go.uber.org/ioc/ioctest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func eventTypes(events ioctest.Events) []string {
	names := make([]string, len(events))
	for i, e := range events {
		switch e.(type) {
		case *iocevent.Building:
			names[i] = "Building"
		case *iocevent.Built:
			names[i] = "Built"
		case *iocevent.FactoryCompiled:
			names[i] = "FactoryCompiled"
		case *iocevent.PlaceholderPublished:
			names[i] = "PlaceholderPublished"
		case *iocevent.RolledBack:
			names[i] = "RolledBack"
		case *iocevent.Called:
			names[i] = "Called"
		default:
			names[i] = "other"
		}
	}
	return names
}

func TestEvents(t *testing.T) {
	t.Parallel()

	t.Run("not shared", func(t *testing.T) {
		t.Parallel()

		c := ioctest.New(t, ioc.WithCatalog(newCatalog()))
		c.MustGet("Db")
		c.MustGet("Db")

		assert.Equal(t, []string{"Building", "FactoryCompiled", "Built"}, eventTypes(c.Events()),
			"the second build reuses the compiled factory")
	})

	t.Run("shared rollback", func(t *testing.T) {
		t.Parallel()

		c := ioctest.New(t, ioc.WithCatalog(newCatalog()))
		c.Rule("Flaky").SetShared(true)

		_, err := c.Get("Flaky")
		require.Error(t, err)

		events := c.Events()
		assert.Equal(t, []string{"Building", "PlaceholderPublished", "RolledBack", "Built"}, eventTypes(events))
		assert.Equal(t, &iocevent.RolledBack{ID: "Flaky", Err: errFlaky}, events[2])

		built := events[3].(*iocevent.Built)
		assert.True(t, built.Shared)
		assert.Same(t, errFlaky, built.Err)
	})

	t.Run("aliases and clear", func(t *testing.T) {
		t.Parallel()

		c := ioctest.New(t, ioc.WithCatalog(newCatalog()))
		c.Rule("Db").AddAlias("Db", "db")
		c.Rule("Sql").RemoveAlias("db")
		c.SetInstance("a", 1).ClearInstances()

		assert.Equal(t, ioctest.Events{
			&iocevent.AliasIgnored{Alias: "Db", RuleID: "Db"},
			&iocevent.AliasMismatch{Alias: "db", RuleID: "Sql", Target: "Db"},
			&iocevent.InstancesCleared{Count: 1},
		}, c.Events())
	})

	t.Run("config error", func(t *testing.T) {
		t.Parallel()

		c := ioctest.New(t)
		c.Rule("bad").SetFactory("nope")

		errs := c.Events().SelectByTypeName("ConfigError")
		require.Equal(t, 1, errs.Len())
		assert.Equal(t, "bad", errs[0].(*iocevent.ConfigError).RuleID)
	})
}

func TestEventRuntime(t *testing.T) {
	t.Parallel()

	mock := clock.NewMock()
	spy := &ioctest.Spy{}
	c := ioc.New(ioc.WithClock(mock), ioc.WithLogger(spy))
	c.Rule("slow").SetFactory(func() *Db {
		mock.Add(time.Second)
		return &Db{Name: "slow"}
	})

	_, err := c.Get("slow")
	require.NoError(t, err)
	_, err = c.Call(func() { mock.Add(2 * time.Second) })
	require.NoError(t, err)

	built := spy.Events().SelectByTypeName("Built")
	require.Equal(t, 1, built.Len())
	assert.Equal(t, time.Second, built[0].(*iocevent.Built).Runtime)

	called := spy.Events().SelectByTypeName("Called")
	require.Equal(t, 1, called.Len())
	assert.Equal(t, 2*time.Second, called[0].(*iocevent.Called).Runtime)
	assert.Contains(t, called[0].(*iocevent.Called).CallerName, "TestEventRuntime")
}

func TestZapLogging(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	spy := &ioctest.Spy{}
	c := newContainer(
		ioc.WithLogger(&iocevent.ZapLogger{Logger: zap.New(core)}),
		ioc.WithLogger(spy),
	)
	c.Rule("Db").SetShared(true)

	_, err := c.Get("Db")
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("built").FilterField(zap.String("id", "Db")).Len())
	assert.Equal(t, 1, logs.FilterMessage("placeholder published").Len())
	assert.NotZero(t, spy.Events().Len(), "every logger receives events")
}

func TestIdentifierNormalization(t *testing.T) {
	t.Parallel()

	f := fuzz.New().NilChance(0)
	for i := 0; i < 100; i++ {
		var id string
		f.Fuzz(&id)

		c := ioc.New()
		c.Rule(`\` + id).SetShared(true)
		require.Equal(t, id, c.RuleID(), "rule %q", id)
		assert.True(t, c.HasRule(id), "rule %q", id)

		c.SetInstance(`\`+id, i+1)
		assert.True(t, c.HasInstance(id), "instance %q", id)
		v, err := c.Get(`\` + id)
		require.NoError(t, err)
		assert.Equal(t, i+1, v)
	}
}
