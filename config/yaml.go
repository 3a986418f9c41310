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
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"
)

// source is a named YAML document.
type source struct {
	name string
	open func() (io.ReadCloser, error)
}

// Bytes adds YAML documents held in memory. Documents are merged in the
// order they are given, later values overriding earlier ones.
func Bytes(yamls ...[]byte) Option {
	return optionFunc(func(l *loader) {
		for _, b := range yamls {
			b := b
			l.sources = append(l.sources, source{
				name: fmt.Sprintf("document %d", len(l.sources)+1),
				open: func() (io.ReadCloser, error) {
					return ioutil.NopCloser(bytes.NewReader(b)), nil
				},
			})
		}
	})
}

// Files adds YAML files, read when the configuration is loaded.
func Files(names ...string) Option {
	return optionFunc(func(l *loader) {
		for _, name := range names {
			name := name
			l.sources = append(l.sources, source{
				name: name,
				open: func() (io.ReadCloser, error) { return os.Open(name) },
			})
		}
	})
}

// Reader adds a YAML document read from r.
func Reader(name string, r io.Reader) Option {
	return optionFunc(func(l *loader) {
		l.sources = append(l.sources, source{
			name: name,
			open: func() (io.ReadCloser, error) { return ioutil.NopCloser(r), nil },
		})
	})
}

// readSources parses every source and merges them into one tree.
func readSources(sources []source) (map[interface{}]interface{}, error) {
	root := make(map[interface{}]interface{})

	var errs error
	for _, src := range sources {
		tmp := make(map[interface{}]interface{})
		if err := unmarshalYamlValue(src, tmp); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		merged, err := mergeMaps(root, tmp)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "cannot merge %s", src.name))
			continue
		}
		root = merged.(map[interface{}]interface{})
	}
	return root, errs
}

// mergeMaps merges src into dst. Maps are merged key by key; any other
// value in src replaces the one in dst.
func mergeMaps(dst interface{}, src interface{}) (interface{}, error) {
	if src == nil {
		return dst, nil
	}

	switch s := src.(type) {
	case map[interface{}]interface{}:
		if dst == nil {
			return s, nil
		}
		d, ok := dst.(map[interface{}]interface{})
		if !ok {
			return nil, errors.Errorf("cannot merge a map into %T", dst)
		}

		for k, v := range s {
			if d[k] == nil {
				d[k] = v
				continue
			}
			merged, err := mergeMaps(d[k], v)
			if err != nil {
				return nil, errors.Wrapf(err, "key %v", k)
			}
			d[k] = merged
		}
		return d, nil
	default:
		return src, nil
	}
}

func unmarshalYamlValue(src source, value interface{}) error {
	reader, err := src.open()
	if err != nil {
		return errors.Wrapf(err, "cannot open %s", src.name)
	}
	defer reader.Close()

	data, err := ioutil.ReadAll(reader)
	if err != nil {
		return errors.Wrapf(err, "cannot read %s", src.name)
	}
	if err := yaml.Unmarshal(data, value); err != nil {
		return errors.Wrapf(err, "cannot parse %s", src.name)
	}
	return nil
}

// decode re-reads the merged tree into the typed document. Unknown keys
// are errors.
func decode(root map[interface{}]interface{}) (*document, error) {
	b, err := yaml.Marshal(root)
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode merged configuration")
	}

	var doc document
	if err := yaml.UnmarshalStrict(b, &doc); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &doc, nil
}
