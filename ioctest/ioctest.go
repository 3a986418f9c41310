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

// Package ioctest provides helpers for testing code that configures or
// resolves containers.
package ioctest

import (
	"reflect"

	"go.uber.org/ioc"
	"go.uber.org/ioc/iocevent"
)

// TB is a subset of the standard library's testing.TB interface. It's
// satisfied by both *testing.T and *testing.B.
type TB interface {
	Logf(string, ...interface{})
	Errorf(string, ...interface{})
	FailNow()
}

// Container is a container for use in tests. It logs its events to the
// test and records them for inspection.
type Container struct {
	*ioc.Container

	tb  TB
	spy *Spy
}

// New builds a test container. Events are written to tb's log and
// recorded; see Events.
func New(tb TB, opts ...ioc.Option) *Container {
	spy := &Spy{}
	logger := iocevent.Tee(&iocevent.ConsoleLogger{W: testWriter{tb}}, spy)

	return &Container{
		Container: ioc.New(ioc.Options(opts...), ioc.WithLogger(logger)),
		tb:        tb,
		spy:       spy,
	}
}

// MustGet returns the entry for id, failing the test if it cannot be built.
func (c *Container) MustGet(id string, args ...interface{}) interface{} {
	v, err := c.GetArgs(id, args...)
	if err != nil {
		c.tb.Errorf("could not get %s: %+v", id, err)
		c.tb.FailNow()
	}
	return v
}

// RequireNoErr fails the test if the container recorded configuration
// errors.
func (c *Container) RequireNoErr() {
	if err := c.Err(); err != nil {
		c.tb.Errorf("container is misconfigured: %+v", err)
		c.tb.FailNow()
	}
}

// Events returns the events emitted so far.
func (c *Container) Events() Events {
	return c.spy.Events()
}

// Reset forgets the events recorded so far.
func (c *Container) Reset() {
	c.spy.Reset()
}

// Spy is an iocevent.Logger that records events.
type Spy struct {
	events Events
}

var _ iocevent.Logger = (*Spy)(nil)

// LogEvent appends an event to the recorded list.
func (s *Spy) LogEvent(event iocevent.Event) {
	s.events = append(s.events, event)
}

// Events returns the events recorded so far.
func (s *Spy) Events() Events {
	events := make(Events, len(s.events))
	copy(events, s.events)
	return events
}

// Reset forgets the recorded events.
func (s *Spy) Reset() {
	s.events = s.events[:0]
}

// Events is a list of events captured by a Spy.
type Events []iocevent.Event

// Len returns the number of events.
func (es Events) Len() int { return len(es) }

// SelectByTypeName returns the events whose type name, without package or
// pointer, is name.
//
//	c.Events().SelectByTypeName("Built")
func (es Events) SelectByTypeName(name string) Events {
	var out Events
	for _, e := range es {
		if reflect.TypeOf(e).Elem().Name() == name {
			out = append(out, e)
		}
	}
	return out
}

type testWriter struct{ tb TB }

func (w testWriter) Write(p []byte) (int, error) {
	// ConsoleLogger writes one line per event; drop the trailing newline
	// that Logf adds back.
	n := len(p)
	if n > 0 && p[n-1] == '\n' {
		p = p[:n-1]
	}
	w.tb.Logf("%s", p)
	return n, nil
}
