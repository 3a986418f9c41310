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
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/ioc"
)

const (
	_refKey  = "$ref"
	_argsKey = "args"
)

// toArgs turns the YAML form of a list of arguments into values for the
// container's argument setters. A list holds positional arguments, a map
// named ones. Anything else, a reference included, is a single positional
// argument.
func toArgs(v interface{}) ([]interface{}, error) {
	if v == nil {
		return nil, nil
	}

	switch v := v.(type) {
	case []interface{}:
		args := make([]interface{}, len(v))
		for i, elem := range v {
			arg, err := toValue(elem)
			if err != nil {
				return nil, errors.Wrapf(err, "argument %d", i)
			}
			args[i] = arg
		}
		return args, nil
	case map[interface{}]interface{}:
		if _, ok := v[_refKey]; ok {
			break
		}

		keys := make([]string, 0, len(v))
		values := make(map[string]interface{}, len(v))
		for k, elem := range v {
			key := fmt.Sprint(k)
			arg, err := toValue(elem)
			if err != nil {
				return nil, errors.Wrapf(err, "argument %s", key)
			}
			keys = append(keys, key)
			values[key] = arg
		}
		sort.Strings(keys)

		args := make([]interface{}, len(keys))
		for i, k := range keys {
			args[i] = ioc.Named(k, values[k])
		}
		return args, nil
	}

	arg, err := toValue(v)
	if err != nil {
		return nil, err
	}
	return []interface{}{arg}, nil
}

// toValue converts a decoded YAML value. Maps with a $ref key become
// references; other maps get string keys.
func toValue(v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case map[interface{}]interface{}:
		if ref, ok := v[_refKey]; ok {
			return toReference(ref, v)
		}
		out := make(map[string]interface{}, len(v))
		for k, elem := range v {
			val, err := toValue(elem)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = val
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			val, err := toValue(elem)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	default:
		return v, nil
	}
}

// toReference builds a reference from {$ref: id, args: [...]} or, for a
// path into nested containers, {$ref: [a, b]}.
func toReference(ref interface{}, m map[interface{}]interface{}) (*ioc.Reference, error) {
	for k := range m {
		if k != _refKey && k != _argsKey {
			return nil, errors.Errorf("unexpected key %v in reference", k)
		}
	}

	switch ref := ref.(type) {
	case string:
		args, err := toArgs(m[_argsKey])
		if err != nil {
			return nil, errors.Wrapf(err, "reference to %s", ref)
		}
		return ioc.NewReference(ref, args...), nil
	case []interface{}:
		if _, ok := m[_argsKey]; ok {
			return nil, errors.New("path references do not take arguments")
		}
		names := make([]string, len(ref))
		for i, name := range ref {
			s, ok := name.(string)
			if !ok {
				return nil, errors.Errorf("reference path element %d is a %T, not a string", i, name)
			}
			names[i] = s
		}
		return ioc.NewPathReference(names...), nil
	default:
		return nil, errors.Errorf("%s must be a string or a list of strings, got %T", _refKey, ref)
	}
}
