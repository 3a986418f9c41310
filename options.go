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
	"fmt"

	"github.com/benbjohnson/clock"
	"go.uber.org/ioc/catalog"
	"go.uber.org/ioc/iocevent"
)

// An Option configures a Container.
type Option interface {
	fmt.Stringer

	apply(*Container)
}

type catalogOption struct{ cat *catalog.Catalog }

var _ Option = catalogOption{}

func (o catalogOption) apply(c *Container) { c.catalog = o.cat }

func (o catalogOption) String() string { return "ioc.WithCatalog()" }

// WithCatalog sets the catalog of types the container can build. Without
// one, the container only serves factories and instances.
func WithCatalog(cat *catalog.Catalog) Option {
	return catalogOption{cat}
}

type loggerOption struct{ log iocevent.Logger }

var _ Option = loggerOption{}

func (o loggerOption) apply(c *Container) {
	if c.log == iocevent.NopLogger {
		c.log = o.log
		return
	}
	c.log = iocevent.Tee(c.log, o.log)
}

func (o loggerOption) String() string { return fmt.Sprintf("ioc.WithLogger(%v)", o.log) }

// WithLogger sends the container's events to log. When given more than
// once, every logger receives every event.
//
//	ioc.New(ioc.WithLogger(&iocevent.ZapLogger{Logger: zapLogger}))
func WithLogger(log iocevent.Logger) Option {
	return loggerOption{log}
}

type clockOption struct{ clk clock.Clock }

var _ Option = clockOption{}

func (o clockOption) apply(c *Container) { c.clock = o.clk }

func (o clockOption) String() string { return "ioc.WithClock()" }

// WithClock sets the clock used to time builds and calls.
func WithClock(clk clock.Clock) Option {
	return clockOption{clk}
}

type optionGroup []Option

func (og optionGroup) apply(c *Container) {
	for _, opt := range og {
		opt.apply(c)
	}
}

func (og optionGroup) String() string {
	items := make([]string, len(og))
	for i, opt := range og {
		items[i] = fmt.Sprint(opt)
	}
	return fmt.Sprintf("ioc.Options(%v)", items)
}

// Options bundles a group of options together into a single option.
func Options(opts ...Option) Option {
	return optionGroup(opts)
}
