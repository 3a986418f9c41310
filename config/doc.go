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

// Package config loads container rules from YAML.
//
// A rule file maps identifiers to rules under the rules key. The default
// rule is written "*":
//
//	rules:
//	  "*":
//	    shared: true
//	  Db:
//	    constructorArgs:
//	      name: ${DB_NAME:localhost}
//	    aliases: [database]
//	  Sql:
//	    constructorArgs:
//	      - {$ref: PdoDb, args: [replica]}
//	    calls:
//	      - method: setDb
//	        args: [{$ref: Db}]
//	  cache:
//	    factory: newCache
//
// Several documents can be loaded together; they are merged in order, maps
// key by key, with later values replacing earlier ones. Dirs loads the
// conventional base.yaml, <environment>.yaml and secrets.yaml layout.
//
// String values may refer to variables as $VAR, ${VAR} or
// ${VAR:default}. Variables are read from the environment unless Lookup
// says otherwise, and expanded values remain strings.
//
// Arguments given as a list are positional, arguments given as a map are
// named. A map with a $ref key is a reference to another entry, built with
// the optional args; a $ref holding a list of names is a path into nested
// containers. Factories cannot be written in YAML and are registered with
// the Factory option.
//
//	cfg, err := config.New(
//		config.Files("rules.yaml"),
//		config.Factory("newCache", newCache, catalog.P("size")),
//	)
//	if err != nil {
//		return err
//	}
//	return cfg.Apply(container)
package config
