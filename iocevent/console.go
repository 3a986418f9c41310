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
	"fmt"
	"io"
)

// ConsoleLogger is a container event logger that attempts to write
// human-readable messages to the console.
//
// Use this during development.
type ConsoleLogger struct {
	W io.Writer
}

var _ Logger = (*ConsoleLogger)(nil)

func (l *ConsoleLogger) logf(msg string, args ...interface{}) {
	fmt.Fprintf(l.W, "[IoC] "+msg+"\n", args...)
}

// LogEvent logs the given event to the provided writer.
func (l *ConsoleLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Building:
		l.logf("BUILD\t\t%s (class: %s, shared: %t)", e.ID, e.Class, e.Shared)
	case *Built:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to build %s: %v", e.ID, e.Err)
		} else {
			l.logf("BUILT\t\t%s in %s", e.ID, e.Runtime)
		}
	case *FactoryCompiled:
		l.logf("FACTORY\t%s <= %s", e.ID, e.Class)
	case *PlaceholderPublished:
		l.logf("PUBLISH\t%s", e.ID)
	case *RolledBack:
		l.logf("ROLLBACK\t%s: %v", e.ID, e.Err)
	case *Called:
		if e.Err != nil {
			l.logf("ERROR\t\t%s called by %s failed: %v", e.Function, e.CallerName, e.Err)
		} else {
			l.logf("CALL\t\t%s called by %s ran successfully in %s", e.Function, e.CallerName, e.Runtime)
		}
	case *AliasIgnored:
		l.logf("WARN\t\tIgnoring alias %s of itself", e.Alias)
	case *AliasMismatch:
		l.logf("WARN\t\tAlias %s points to %s, not %s", e.Alias, e.Target, e.RuleID)
	case *InstancesCleared:
		l.logf("CLEAR\t\t%d instances", e.Count)
	case *ConfigError:
		l.logf("ERROR\t\tInvalid rule %s: %v", e.RuleID, e.Err)
	}
}
