// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package blockcompile

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/bufbuild/blockcompile/block"
	"github.com/bufbuild/blockcompile/emit"
	"github.com/bufbuild/blockcompile/reporter"
	"github.com/bufbuild/blockcompile/rules"
	"github.com/bufbuild/blockcompile/walk"
)

// Compiler handles compilation tasks, to turn block files into Yail
// programs.
//
// The compilation process involves three steps for each block file:
//  1. Resolving the name into source (or an already-decoded file).
//  2. Decoding the source and checking its language version.
//  3. Translating the form and its blocks into Yail.
type Compiler struct {
	// Resolves names into block files. This field is the only required
	// field.
	Resolver Resolver
	// The maximum parallelism to use when compiling. If unspecified or set to
	// a non-positive value, then min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	// will be used.
	MaxParallelism int
	// A custom error and warning reporter. If unspecified a default reporter
	// is used. A default reporter fails the compilation after encountering any
	// errors and ignores all warnings.
	Reporter reporter.Reporter
	// The translation rules. If nil, rules.Default() is used.
	Registry *emit.Registry
	// Target-dependent output settings.
	Profile emit.Profile
	// Component metadata shared by all files. Metadata declared in a file
	// takes precedence over it.
	Metadata block.Metadata
	// The range of block-language versions accepted. If empty,
	// block.SupportedVersions is used.
	Versions string
	// If true, blocks with no translation rule are errors rather than
	// placeholders.
	Strict bool
}

// Program is the result of compiling one block file.
type Program struct {
	// Name is the name the file was resolved from.
	Name string
	// Form is the name of the form defined by the file.
	Form string
	// Code is the complete Yail program.
	Code string
	// Blocks is the number of blocks in the file's workspace.
	Blocks int
}

// Compile compiles the named block files into Yail programs, in the order
// given. Files are compiled in parallel; the same name given twice is only
// compiled once.
func (c *Compiler) Compile(ctx context.Context, names ...string) ([]Program, error) {
	if len(names) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	par := c.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if par > cpus {
			par = cpus
		}
	}

	registry := c.Registry
	if registry == nil {
		registry = rules.Default()
	}

	e := executor{
		c:        c,
		h:        reporter.NewHandler(c.Reporter),
		s:        semaphore.NewWeighted(int64(par)),
		registry: registry,
		results:  map[string]*result{},
	}

	results := make([]*result, len(names))
	for i, name := range names {
		results[i] = e.compile(ctx, name)
	}

	programs := make([]Program, len(names))
	for i, r := range results {
		select {
		case <-r.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if r.err != nil {
			return nil, r.err
		}
		programs[i] = r.res
	}

	if err := e.h.Error(); err != nil {
		return nil, err
	}
	return programs, nil
}

type result struct {
	ready chan struct{}
	res   Program
	err   error
}

func (r *result) fail(err error) {
	r.err = err
	close(r.ready)
}

func (r *result) complete(p Program) {
	r.res = p
	close(r.ready)
}

type executor struct {
	c        *Compiler
	h        *reporter.Handler
	s        *semaphore.Weighted
	registry *emit.Registry

	mu      sync.Mutex
	results map[string]*result
}

func (e *executor) compile(ctx context.Context, name string) *result {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := e.results[name]
	if r != nil {
		return r
	}

	r = &result{
		ready: make(chan struct{}),
	}
	e.results[name] = r
	go func() {
		e.doCompile(ctx, name, r)
	}()
	return r
}

func (e *executor) doCompile(ctx context.Context, name string, r *result) {
	if err := e.s.Acquire(ctx, 1); err != nil {
		r.fail(err)
		return
	}
	defer e.s.Release(1)

	sr, err := e.c.Resolver.FindFileByPath(name)
	if err != nil {
		r.fail(err)
		return
	}

	defer func() {
		// if results included a reader, don't leave it open if it can be closed
		if sr.Source == nil {
			return
		}
		if c, ok := sr.Source.(io.Closer); ok {
			_ = c.Close()
		}
	}()

	file, err := e.asFile(name, sr)
	if err != nil {
		r.fail(err)
		return
	}
	prog, err := e.translate(ctx, name, file)
	if err != nil {
		r.fail(err)
		return
	}
	r.complete(prog)
}

func (e *executor) asFile(name string, sr SearchResult) (*block.File, error) {
	file := sr.File
	if file == nil {
		if sr.Source == nil {
			return nil, fmt.Errorf("search result for %q has neither source nor file", name)
		}
		var err error
		file, err = block.Decode(sr.Source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	versions := e.c.Versions
	if versions == "" {
		versions = block.SupportedVersions
	}
	if err := file.CheckVersion(versions); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return file, nil
}

func (e *executor) translate(ctx context.Context, name string, file *block.File) (Program, error) {
	nodes := file.Nodes()

	count := 0
	err := walk.Blocks(nodes, func(n block.Node) error {
		count++
		if !e.c.Strict {
			return nil
		}
		if _, ok := e.registry.Lookup(n.Kind()); ok {
			return nil
		}
		loc := reporter.Location{Form: file.Form, ID: n.ID(), Kind: n.Kind()}
		return e.h.HandleError(reporter.Error(loc, reporter.ErrUndefinedBlock))
	})
	if err != nil {
		return Program{}, err
	}
	if err := ctx.Err(); err != nil {
		return Program{}, err
	}

	em := emit.Emitter{
		Registry: e.registry,
		Profile:  e.c.Profile,
		Metadata: block.Overlay(file.Database(), e.c.Metadata),
		Handler:  e.h,
	}
	return Program{
		Name:   name,
		Form:   file.Form,
		Code:   em.TranslateForm(file),
		Blocks: count,
	}, nil
}
