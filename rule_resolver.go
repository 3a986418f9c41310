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
	"dario.cat/mergo"
)

// makeRule computes the effective rule for id: its own rule, then the
// rules of its ancestors up to the first one without a rule or opting out
// of inheritance, then the default rule, each filling only the fields
// still unset. Interface rules fill sharing and constructor
// arguments and add their calls.
func (c *Container) makeRule(id string) (Rule, error) {
	var rule Rule
	if r, ok := c.rules[id]; ok {
		rule = *r
	}

	if !c.catalog.IsClass(id) {
		if err := c.mergeDefaultRule(&rule); err != nil {
			return Rule{}, err
		}
		return rule, nil
	}

	for _, parent := range c.catalog.Parents(id) {
		r, ok := c.rules[parent]
		if !ok || (r.Inherit != nil && !*r.Inherit) {
			break
		}
		if err := mergeRule(&rule, r); err != nil {
			return Rule{}, err
		}
	}

	if err := c.mergeDefaultRule(&rule); err != nil {
		return Rule{}, err
	}

	for _, iface := range c.catalog.Interfaces(id) {
		r, ok := c.rules[iface]
		if !ok || (r.Inherit != nil && !*r.Inherit) {
			continue
		}
		if rule.Shared == nil {
			rule.Shared = r.Shared
		}
		if rule.ConstructorArgs == nil || rule.ConstructorArgs.Empty() {
			if r.ConstructorArgs != nil {
				rule.ConstructorArgs = r.ConstructorArgs
			}
		}
		if len(r.Calls) > 0 {
			calls := make([]MethodCall, 0, len(rule.Calls)+len(r.Calls))
			calls = append(calls, rule.Calls...)
			rule.Calls = append(calls, r.Calls...)
		}
	}
	return rule, nil
}

func (c *Container) mergeDefaultRule(rule *Rule) error {
	def := c.rules[DefaultRuleID]
	if def.Inherit == nil || !*def.Inherit {
		return nil
	}
	return mergeRule(rule, def)
}

// mergeRule fills the unset fields of dst from an inherited rule. Pointers
// are copied, never merged into. The class and alias of a rule name the
// target of one identifier and are not inherited.
func mergeRule(dst, src *Rule) error {
	inherited := *src
	inherited.Class, inherited.AliasOf = "", ""
	if err := mergo.Merge(dst, inherited, mergo.WithoutDereference); err != nil {
		return wrapError(err, "cannot merge rules")
	}
	return nil
}
