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

import "time"

// Event defines an event emitted by the container.
type Event interface {
	event() // Only iocevent can implement this interface.
}

// Passing events by type to make Event hashable in the future.
func (*Building) event()             {}
func (*Built) event()                {}
func (*FactoryCompiled) event()      {}
func (*PlaceholderPublished) event() {}
func (*RolledBack) event()           {}
func (*Called) event()               {}
func (*AliasIgnored) event()         {}
func (*AliasMismatch) event()        {}
func (*InstancesCleared) event()     {}
func (*ConfigError) event()          {}

// Building is emitted before the container creates an instance that is not
// already cached.
type Building struct {
	// ID is the identifier being resolved.
	ID string
	// Class is the class the rule builds, which may differ from ID.
	Class string
	// Shared reports whether the instance will be cached.
	Shared bool
}

// Built is emitted after an instance was created, or failed to be.
type Built struct {
	ID      string
	Class   string
	Shared  bool
	Runtime time.Duration
	Err     error
}

// FactoryCompiled is emitted when a factory for a non-shared identifier is
// compiled and memoized.
type FactoryCompiled struct {
	ID    string
	Class string
}

// PlaceholderPublished is emitted when a shared instance is published before
// its construction finishes, so that dependency cycles resolve to it.
type PlaceholderPublished struct {
	ID string
	// Shell is true when the published value is the allocated instance and
	// false when it is a nil placeholder for a factory result.
	Shell bool
}

// RolledBack is emitted when a failed shared construction removes its
// published instance.
type RolledBack struct {
	ID  string
	Err error
}

// Called is emitted after the container invoked a function with resolved
// arguments.
type Called struct {
	// Function is the name of the function called.
	Function string
	// CallerName is the name of the function that asked for the call.
	CallerName string
	Runtime    time.Duration
	Err        error
}

// AliasIgnored is emitted when a rule is asked to alias itself.
type AliasIgnored struct {
	Alias  string
	RuleID string
}

// AliasMismatch is emitted when an alias is removed from a rule it does not
// point to. The alias is removed anyway.
type AliasMismatch struct {
	Alias string
	// RuleID is the rule the alias was removed from.
	RuleID string
	// Target is the rule the alias actually pointed to.
	Target string
}

// InstancesCleared is emitted when the shared instances are dropped.
type InstancesCleared struct {
	Count int
}

// ConfigError is emitted whenever there is an error configuring a rule.
type ConfigError struct {
	RuleID string
	Err    error
}
