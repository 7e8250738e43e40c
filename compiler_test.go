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
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/blockcompile/block"
	"github.com/bufbuild/blockcompile/emit"
	"github.com/bufbuild/blockcompile/internal/corpora"
	"github.com/bufbuild/blockcompile/reporter"
)

func sources(files map[string]string) ResolverFunc {
	return func(name string) (SearchResult, error) {
		src, ok := files[name]
		if !ok {
			return SearchResult{}, fs.ErrNotExist
		}
		return SearchResult{Source: strings.NewReader(src)}, nil
	}
}

func TestCompile_Corpus(t *testing.T) {
	t.Parallel()
	corpus := corpora.Corpus{
		Root:       "testdata/forms",
		Refresh:    "BLOCKCOMPILE_REFRESH",
		Extensions: []string{"yaml"},
		Outputs: []corpora.Output{
			{Extension: "yail"},
			{Extension: "warnings"},
		},
	}
	corpus.Run(t, func(t *testing.T, path, text string, outputs []string) {
		var mu sync.Mutex
		var warnings strings.Builder
		comp := Compiler{
			Resolver: sources(map[string]string{path: text}),
			Reporter: reporter.NewReporter(nil, func(err reporter.ErrorWithBlock) {
				mu.Lock()
				defer mu.Unlock()
				warnings.WriteString(err.Error() + "\n")
			}),
		}
		progs, err := comp.Compile(t.Context(), path)
		require.NoError(t, err)
		require.Len(t, progs, 1)
		outputs[0] = progs[0].Code
		outputs[1] = warnings.String()
	})
}

func TestCompile_Dedup(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	files := sources(map[string]string{
		"a.yaml": "form: A\nblocks:\n  - kind: controls_break",
		"b.yaml": "form: B",
	})
	comp := Compiler{
		Resolver: ResolverFunc(func(name string) (SearchResult, error) {
			calls.Add(1)
			return files(name)
		}),
		MaxParallelism: 1,
	}
	progs, err := comp.Compile(t.Context(), "a.yaml", "b.yaml", "a.yaml")
	require.NoError(t, err)
	require.Len(t, progs, 3)
	assert.Equal(t, int32(2), calls.Load())

	assert.Equal(t, "A", progs[0].Form)
	assert.Equal(t, "B", progs[1].Form)
	assert.Equal(t, progs[0], progs[2])
	assert.Equal(t, 1, progs[0].Blocks)
	assert.Contains(t, progs[0].Code, "(*yail-break* #f)\n")
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	_, err := (&Compiler{Resolver: CompositeResolver{}}).Compile(ctx, "x.yaml")
	require.ErrorIs(t, err, fs.ErrNotExist)

	comp := Compiler{Resolver: sources(map[string]string{"bad.yaml": "form: [unclosed"})}
	_, err = comp.Compile(ctx, "bad.yaml")
	require.ErrorContains(t, err, "bad.yaml")

	comp = Compiler{Resolver: ResolverFunc(func(string) (SearchResult, error) {
		return SearchResult{}, nil
	})}
	_, err = comp.Compile(ctx, "empty")
	require.ErrorContains(t, err, "neither source nor file")

	progs, err := comp.Compile(ctx)
	require.NoError(t, err)
	assert.Empty(t, progs)
}

func TestCompile_Versions(t *testing.T) {
	t.Parallel()
	files := sources(map[string]string{"next.yaml": "version: 2.1.0\nform: Next"})

	_, err := (&Compiler{Resolver: files}).Compile(t.Context(), "next.yaml")
	require.ErrorContains(t, err, "does not satisfy")

	progs, err := (&Compiler{Resolver: files, Versions: ">= 2.0.0"}).Compile(t.Context(), "next.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Next", progs[0].Form)
}

func TestCompile_Strict(t *testing.T) {
	t.Parallel()
	src := "form: S\nblocks:\n  - kind: controls_while\n    statements:\n      STATEMENT:\n        - kind: frobnicate\n          id: f1"
	files := sources(map[string]string{"s.yaml": src})

	var warned atomic.Int32
	lenient := Compiler{
		Resolver: files,
		Reporter: reporter.NewReporter(nil, func(reporter.ErrorWithBlock) { warned.Add(1) }),
	}
	progs, err := lenient.Compile(t.Context(), "s.yaml")
	require.NoError(t, err)
	assert.Contains(t, progs[0].Code, `(while #f (begin (begin "This block is not defined" #f)))`)
	assert.Equal(t, int32(1), warned.Load())

	strict := Compiler{Resolver: files, Strict: true}
	_, err = strict.Compile(t.Context(), "s.yaml")
	require.ErrorIs(t, err, reporter.ErrUndefinedBlock)
	var ewb reporter.ErrorWithBlock
	require.ErrorAs(t, err, &ewb)
	assert.Equal(t, "f1", ewb.GetLocation().ID)
}

func TestCompile_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	comp := Compiler{Resolver: sources(map[string]string{"a.yaml": "form: A"})}
	_, err := comp.Compile(ctx, "a.yaml")
	require.ErrorIs(t, err, context.Canceled)
}

func TestCompile_DecodedFileAndMetadata(t *testing.T) {
	t.Parallel()
	file := &block.File{
		Form:       "Screen1",
		Components: []*block.Component{{Name: "Slider1", Type: "Slider", Properties: map[string]string{"Enabled": "True"}}},
	}
	comp := Compiler{
		Resolver: ResolverFunc(func(string) (SearchResult, error) {
			return SearchResult{File: file}, nil
		}),
		Metadata: block.NewDatabase(&block.ComponentType{
			Name:       "Slider",
			ClassName:  "com.example.Slider",
			Properties: []block.Property{{Name: "Enabled", Type: "boolean"}},
		}),
		Profile: emit.Profile{PackageName: "org.example"},
	}
	progs, err := comp.Compile(t.Context(), "mem")
	require.NoError(t, err)
	code := progs[0].Code
	assert.Contains(t, code, "(define-form org.example.Screen1 Screen1)\n")
	assert.Contains(t, code, "(add-component Screen1 com.example.Slider Slider1 (set-and-coerce-property! 'Slider1 'Enabled #t 'boolean))\n")

	comp.Profile.ForRepl = true
	progs, err = comp.Compile(t.Context(), "mem")
	require.NoError(t, err)
	assert.Empty(t, progs[0].Code)
}

func TestSourceResolver(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b", "s.yaml"), []byte("form: S"), 0o644))

	r := &SourceResolver{ImportPaths: []string{filepath.Join(dir, "a"), filepath.Join(dir, "b")}}
	res, err := r.FindFileByPath("s.yaml")
	require.NoError(t, err)
	data, err := io.ReadAll(res.Source)
	require.NoError(t, err)
	assert.Equal(t, "form: S", string(data))
	require.NoError(t, res.Source.(io.Closer).Close())

	_, err = r.FindFileByPath("missing.yaml")
	require.ErrorIs(t, err, fs.ErrNotExist)

	var opened []string
	r = &SourceResolver{Accessor: func(path string) (io.ReadCloser, error) {
		opened = append(opened, path)
		return io.NopCloser(strings.NewReader("form: X")), nil
	}}
	_, err = r.FindFileByPath("x.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"x.yaml"}, opened)
}

func TestCompositeResolver(t *testing.T) {
	t.Parallel()
	first := sources(map[string]string{"a": "form: A"})
	second := sources(map[string]string{"b": "form: B"})
	r := CompositeResolver{first, second}

	_, err := r.FindFileByPath("b")
	require.NoError(t, err)
	_, err = r.FindFileByPath("c")
	require.ErrorIs(t, err, fs.ErrNotExist)
}
