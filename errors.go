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

	"github.com/pkg/errors"
)

var (
	// ErrContainer is matched by every error the container reports.
	ErrContainer = errors.New("container error")

	// ErrNotFound is matched by errors reporting an identifier the container
	// cannot build.
	ErrNotFound = errors.New("not found")

	// ErrMissingArgument is matched by errors reporting a required
	// parameter that could not be supplied.
	ErrMissingArgument = errors.New("missing argument")
)

// Error is a configuration or resolution failure.
type Error struct {
	Msg   string
	Cause error
}

func newError(format string, args ...interface{}) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

func wrapError(cause error, format string, args ...interface{}) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is ErrContainer.
func (e *Error) Is(target error) bool { return target == ErrContainer }

// NotFoundError reports an identifier that names no rule, no instance and
// no constructible type.
type NotFoundError struct {
	ID  string
	Msg string
}

func (e *NotFoundError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("class %s does not exist", e.ID)
}

// Is reports whether target is ErrNotFound or ErrContainer.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound || target == ErrContainer
}

// MissingArgumentError reports a required parameter that has no configured,
// passed or default value.
type MissingArgumentError struct {
	Parameter string
	// Function is the qualified name of the function declaring the
	// parameter. It may be empty.
	Function string
}

func (e *MissingArgumentError) Error() string {
	if e.Function == "" {
		return fmt.Sprintf("missing argument $%s", e.Parameter)
	}
	return fmt.Sprintf("missing argument $%s for %s", e.Parameter, e.Function)
}

// Is reports whether target is ErrMissingArgument or ErrContainer.
func (e *MissingArgumentError) Is(target error) bool {
	return target == ErrMissingArgument || target == ErrContainer
}
