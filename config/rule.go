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
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/ioc"
	"go.uber.org/ioc/catalog"
	"go.uber.org/multierr"
)

// Rule is the YAML form of a container rule:
//
//	rules:
//	  Db:
//	    shared: true
//	    constructorArgs: {name: ${DB_NAME:localhost}}
//	    aliases: [database]
//	  Sql:
//	    constructorArgs: [{$ref: PdoDb, args: [replica]}]
//	    calls:
//	      - method: setDb
//	        args: [{$ref: Db}]
type Rule struct {
	Class   string   `yaml:"class" validate:"omitempty,identifier"`
	AliasOf string   `yaml:"aliasOf" validate:"omitempty,identifier"`
	Aliases []string `yaml:"aliases" validate:"dive,identifier"`
	Shared  *bool    `yaml:"shared"`
	Inherit *bool    `yaml:"inherit"`

	// Factory names a function registered with the Factory option.
	Factory string `yaml:"factory"`

	// ConstructorArgs is a list of positional arguments or a map of named
	// ones.
	ConstructorArgs interface{} `yaml:"constructorArgs"`

	Calls []Call `yaml:"calls" validate:"dive"`
}

// Call is a method call in a Rule.
type Call struct {
	Method string      `yaml:"method" validate:"required,identifier"`
	Args   interface{} `yaml:"args"`
}

type document struct {
	Rules map[string]*Rule `yaml:"rules"`
}

var _identifier = regexp.MustCompile(`^\\?[A-Za-z_][A-Za-z0-9_.\\-]*$`)

func validIdentifier(fl validator.FieldLevel) bool {
	return _identifier.MatchString(fl.Field().String())
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("identifier", validIdentifier); err != nil {
		panic(err)
	}
	return v
}

func (d *document) validate(factories map[string]*catalog.Func) error {
	v := newValidator()

	var errs error
	for id, r := range d.Rules {
		if id != ioc.DefaultRuleID && !_identifier.MatchString(id) {
			errs = multierr.Append(errs, errors.Errorf("invalid rule identifier %q", id))
		}
		if r == nil {
			continue
		}
		if err := v.Struct(r); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "rule %s", id))
		}
		if r.Factory != "" {
			if _, ok := factories[r.Factory]; !ok {
				errs = multierr.Append(errs, errors.Errorf("rule %s: unknown factory %q", id, r.Factory))
			}
		}
	}
	return errs
}
