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

package iocevent

import (
	"github.com/uber-go/tally/v4"
)

const (
	// TagShared tags build metrics with whether the instance is shared.
	TagShared = "shared"
)

// MetricsLogger is a container event logger that reports build and call
// counts and latencies to a tally scope.
type MetricsLogger struct {
	builds       map[bool]tally.Counter
	buildFail    map[bool]tally.Counter
	buildTime    map[bool]tally.Timer
	calls        tally.Counter
	callFail     tally.Counter
	callTime     tally.Timer
	factories    tally.Counter
	rollbacks    tally.Counter
	configErrors tally.Counter
}

var _ Logger = (*MetricsLogger)(nil)

// NewMetricsLogger builds a MetricsLogger reporting to a "container"
// sub-scope of scope.
func NewMetricsLogger(scope tally.Scope) *MetricsLogger {
	scope = scope.SubScope("container")
	shared := scope.Tagged(map[string]string{TagShared: "true"})
	fresh := scope.Tagged(map[string]string{TagShared: "false"})
	return &MetricsLogger{
		builds:       map[bool]tally.Counter{true: shared.Counter("build"), false: fresh.Counter("build")},
		buildFail:    map[bool]tally.Counter{true: shared.Counter("build_fail"), false: fresh.Counter("build_fail")},
		buildTime:    map[bool]tally.Timer{true: shared.Timer("build_time"), false: fresh.Timer("build_time")},
		calls:        scope.Counter("call"),
		callFail:     scope.Counter("call_fail"),
		callTime:     scope.Timer("call_time"),
		factories:    scope.Counter("factory_compiled"),
		rollbacks:    scope.Counter("rollback"),
		configErrors: scope.Counter("config_error"),
	}
}

// LogEvent records the given event.
func (m *MetricsLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Built:
		m.builds[e.Shared].Inc(1)
		if e.Err != nil {
			m.buildFail[e.Shared].Inc(1)
			return
		}
		m.buildTime[e.Shared].Record(e.Runtime)
	case *Called:
		m.calls.Inc(1)
		if e.Err != nil {
			m.callFail.Inc(1)
			return
		}
		m.callTime.Record(e.Runtime)
	case *FactoryCompiled:
		m.factories.Inc(1)
	case *RolledBack:
		m.rollbacks.Inc(1)
	case *ConfigError:
		m.configErrors.Inc(1)
	}
}
