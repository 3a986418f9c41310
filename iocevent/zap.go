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
	"go.uber.org/zap"
)

// ZapLogger is a container event logger that logs events to Zap.
type ZapLogger struct {
	Logger *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// LogEvent logs the given event to the provided Zap logger.
func (l *ZapLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Building:
		l.Logger.Debug("building",
			zap.String("id", e.ID),
			zap.String("class", e.Class),
			zap.Bool("shared", e.Shared),
		)
	case *Built:
		if e.Err != nil {
			l.Logger.Error("build failed",
				zap.String("id", e.ID),
				zap.String("class", e.Class),
				zap.Bool("shared", e.Shared),
				zap.Error(e.Err),
			)
		} else {
			l.Logger.Info("built",
				zap.String("id", e.ID),
				zap.String("class", e.Class),
				zap.Bool("shared", e.Shared),
				zap.String("runtime", e.Runtime.String()),
			)
		}
	case *FactoryCompiled:
		l.Logger.Debug("factory compiled",
			zap.String("id", e.ID),
			zap.String("class", e.Class),
		)
	case *PlaceholderPublished:
		l.Logger.Debug("placeholder published",
			zap.String("id", e.ID),
			zap.Bool("shell", e.Shell),
		)
	case *RolledBack:
		l.Logger.Warn("shared instance rolled back",
			zap.String("id", e.ID),
			zap.Error(e.Err),
		)
	case *Called:
		if e.Err != nil {
			l.Logger.Error("call failed",
				zap.String("function", e.Function),
				zap.String("caller", e.CallerName),
				zap.Error(e.Err),
			)
		} else {
			l.Logger.Info("called",
				zap.String("function", e.Function),
				zap.String("caller", e.CallerName),
				zap.String("runtime", e.Runtime.String()),
			)
		}
	case *AliasIgnored:
		l.Logger.Warn("ignoring alias to itself",
			zap.String("alias", e.Alias),
			zap.String("rule", e.RuleID),
		)
	case *AliasMismatch:
		l.Logger.Warn("alias does not point to rule",
			zap.String("alias", e.Alias),
			zap.String("rule", e.RuleID),
			zap.String("target", e.Target),
		)
	case *InstancesCleared:
		l.Logger.Info("instances cleared", zap.Int("count", e.Count))
	case *ConfigError:
		l.Logger.Error("invalid rule configuration",
			zap.String("rule", e.RuleID),
			zap.Error(e.Err),
		)
	}
}
