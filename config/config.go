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

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/ioc"
	"go.uber.org/ioc/catalog"
	"go.uber.org/multierr"
)

const (
	// EnvironmentKey is the variable naming the environment whose rule
	// file Dirs loads.
	EnvironmentKey = "IOC_ENVIRONMENT"

	_baseFile    = "base"
	_secretsFile = "secrets"
	_devEnv      = "development"
)

// An Option configures how rules are loaded.
type Option interface {
	apply(*loader)
}

type optionFunc func(*loader)

func (f optionFunc) apply(l *loader) { f(l) }

type loader struct {
	sources   []source
	dirs      []string
	lookup    func(string) (string, bool)
	factories map[string]*catalog.Func
	errs      error
}

// Lookup sets the function used to expand variables in string values.
// The default is os.LookupEnv.
func Lookup(fn func(string) (string, bool)) Option {
	return optionFunc(func(l *loader) {
		l.lookup = fn
	})
}

// Dirs loads base.yaml, then the file named after the environment, then
// secrets.yaml from each directory, skipping files that do not exist. The
// environment comes from IOC_ENVIRONMENT and defaults to development.
//
// Directory files are loaded before any other source.
func Dirs(dirs ...string) Option {
	return optionFunc(func(l *loader) {
		l.dirs = append(l.dirs, dirs...)
	})
}

// Factory registers fn under name so that rules can refer to it with
// the factory key.
func Factory(name string, fn interface{}, params ...catalog.Param) Option {
	return optionFunc(func(l *loader) {
		f, err := catalog.NewFunc(name, fn, params...)
		if err != nil {
			l.errs = multierr.Append(l.errs, errors.Wrapf(err, "invalid factory %q", name))
			return
		}
		l.factories[name] = f
	})
}

func (l *loader) environment() string {
	if env, ok := l.lookup(EnvironmentKey); ok && env != "" {
		return env
	}
	return _devEnv
}

func (l *loader) dirSources() []source {
	var sources []source
	for _, dir := range l.dirs {
		for _, base := range []string{_baseFile, l.environment(), _secretsFile} {
			name := filepath.Join(dir, fmt.Sprintf("%s.yaml", base))
			if _, err := os.Stat(name); err != nil {
				continue
			}
			sources = append(sources, source{
				name: name,
				open: func() (io.ReadCloser, error) { return os.Open(name) },
			})
		}
	}
	return sources
}

// Config holds rules loaded from YAML.
type Config struct {
	rules     map[string]*Rule
	factories map[string]*catalog.Func
}

// New loads rules from the sources given in opts.
//
// Every problem found, in any document, is reported.
func New(opts ...Option) (*Config, error) {
	l := &loader{
		lookup:    os.LookupEnv,
		factories: make(map[string]*catalog.Func),
	}
	for _, opt := range opts {
		opt.apply(l)
	}
	if l.errs != nil {
		return nil, l.errs
	}

	root, err := readSources(append(l.dirSources(), l.sources...))
	if err != nil {
		return nil, err
	}

	exp := &expander{lookup: l.lookup}
	exp.expand(root)
	if exp.errs != nil {
		return nil, exp.errs
	}

	doc, err := decode(root)
	if err != nil {
		return nil, err
	}
	if err := doc.validate(l.factories); err != nil {
		return nil, err
	}

	rules := doc.Rules
	if rules == nil {
		rules = make(map[string]*Rule)
	}
	return &Config{rules: rules, factories: l.factories}, nil
}

// NewYAMLFromBytes loads rules from YAML documents held in memory.
func NewYAMLFromBytes(yamls ...[]byte) (*Config, error) {
	return New(Bytes(yamls...))
}

// NewYAMLFromFiles loads rules from YAML files.
func NewYAMLFromFiles(files ...string) (*Config, error) {
	return New(Files(files...))
}

// IDs returns the identifiers of the configured rules, sorted. The default
// rule comes first.
func (c *Config) IDs() []string {
	ids := make([]string, 0, len(c.rules))
	for id := range c.rules {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i] == ioc.DefaultRuleID || ids[j] == ioc.DefaultRuleID {
			return ids[i] == ioc.DefaultRuleID
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Rule returns the configuration of the rule for id.
func (c *Config) Rule(id string) (*Rule, bool) {
	r, ok := c.rules[id]
	return r, ok
}

// Apply configures the rules of ctr. Rules are applied in the order of
// IDs; the default rule is selected afterwards.
func (c *Config) Apply(ctr *ioc.Container) error {
	var errs error
	for _, id := range c.IDs() {
		errs = multierr.Append(errs, c.apply(ctr, id, c.rules[id]))
	}
	ctr.DefaultRule()

	if err := ctr.Err(); err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}

func (c *Config) apply(ctr *ioc.Container, id string, r *Rule) error {
	if r == nil {
		ctr.Rule(id)
		return nil
	}

	// Convert everything before touching the container so that a bad rule
	// is not half applied.
	ctorArgs, err := toArgs(r.ConstructorArgs)
	if err != nil {
		return errors.Wrapf(err, "rule %s: constructorArgs", id)
	}
	calls := make([][]interface{}, len(r.Calls))
	for i, call := range r.Calls {
		if calls[i], err = toArgs(call.Args); err != nil {
			return errors.Wrapf(err, "rule %s: call %s", id, call.Method)
		}
	}

	ctr.Rule(id)
	if r.Class != "" {
		ctr.SetClass(r.Class)
	}
	if r.Shared != nil {
		ctr.SetShared(*r.Shared)
	}
	if r.Inherit != nil {
		ctr.SetInherit(*r.Inherit)
	}
	if r.ConstructorArgs != nil {
		ctr.SetConstructorArgs(ctorArgs...)
	}
	if r.Factory != "" {
		ctr.SetFactory(c.factories[r.Factory])
	}
	for i, call := range r.Calls {
		ctr.AddCall(call.Method, calls[i]...)
	}
	if len(r.Aliases) > 0 {
		ctr.AddAlias(r.Aliases...)
	}
	if r.AliasOf != "" {
		ctr.SetAliasOf(r.AliasOf)
	}
	return nil
}
