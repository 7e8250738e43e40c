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

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/bufbuild/blockcompile"
	"github.com/bufbuild/blockcompile/block"
	"github.com/bufbuild/blockcompile/emit"
	"github.com/bufbuild/blockcompile/reporter"
)

func newBuildCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "build FILE|GLOB...",
		Short: "Compile block files into Yail programs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expand(args)
			if err != nil {
				return err
			}
			return build(cmd.Context(), opts, files...)
		},
	}
}

// expand replaces glob patterns among args with the files they match.
// Arguments without glob syntax are kept as given.
func expand(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			files = append(files, arg)
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

func newCompiler(opts *options) (*blockcompile.Compiler, error) {
	comp := &blockcompile.Compiler{
		Resolver:       &blockcompile.SourceResolver{},
		MaxParallelism: opts.parallelism,
		Reporter: reporter.NewReporter(nil, func(err reporter.ErrorWithBlock) {
			warnf("warning: %v", err)
		}),
		Profile: emit.Profile{
			ForRepl:     opts.repl,
			PackageName: opts.pkg,
		},
		Strict: opts.strict,
	}
	if opts.metadata != "" {
		f, err := os.Open(opts.metadata)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		db, err := block.DecodeMetadata(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opts.metadata, err)
		}
		comp.Metadata = db
	}
	return comp, nil
}

func build(ctx context.Context, opts *options, files ...string) error {
	comp, err := newCompiler(opts)
	if err != nil {
		return err
	}
	progs, err := comp.Compile(ctx, files...)
	if err != nil {
		warnf("%v", err)
		return err
	}

	// Output files are named after forms; compare names the way a
	// case-insensitive file system would.
	sources := make(map[string]string, len(progs))
	for _, prog := range progs {
		key := strings.ToLower(prog.Form)
		if prev, ok := sources[key]; ok {
			err := fmt.Errorf("%s and %s both define form %s", prev, prog.Name, prog.Form)
			warnf("%v", err)
			return err
		}
		sources[key] = prog.Name
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return err
	}
	for _, prog := range progs {
		out := filepath.Join(opts.outDir, prog.Form+".yail")
		if err := os.WriteFile(out, []byte(prog.Code), 0o644); err != nil {
			return err
		}
		fmt.Printf("%s -> %s (%d blocks)\n", prog.Name, out, prog.Blocks)
	}
	return nil
}
