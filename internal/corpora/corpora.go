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

// Package corpora runs golden-file tests: every input file under a test
// data directory is one test case, and its expected outputs live next to
// it in files with extra extensions.
package corpora

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/bufbuild/blockcompile/internal"
)

// Corpus describes a directory of test cases.
type Corpus struct {
	// The root of the test data directory, relative to the file that calls
	// [Corpus.Run].
	Root string

	// An environment variable holding a glob. Test cases whose path matches
	// it have their output files rewritten instead of compared.
	Refresh string

	// File extensions (without a dot) of files which define a test case,
	// e.g. "yaml".
	Extensions []string

	// Outputs of each test case. The expected value of output n for case
	// "foo.yaml" is read from "foo.yaml.<Outputs[n].Extension>"; a missing
	// file means the output is expected to be empty.
	Outputs []Output
}

// Output is one output of a test case.
type Output struct {
	Extension string
	// Compare checks got against want. If nil, the strings must be equal.
	Compare Compare
}

// Compare returns "" if got matches want, or else a description of the
// difference.
type Compare func(got, want string) string

// Run executes test on every case in the corpus. test fills outputs, which
// has one slot per element of c.Outputs.
func (c Corpus) Run(t *testing.T, test func(t *testing.T, path, text string, outputs []string)) {
	t.Helper()
	testDir := internal.CallerDir(1)
	root := filepath.Join(testDir, c.Root)

	var cases []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && slices.Contains(c.Extensions, strings.TrimPrefix(filepath.Ext(p), ".")) {
			cases = append(cases, p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("corpora: walking %q: %v", root, err)
	}
	if len(cases) == 0 {
		t.Fatalf("corpora: no test cases under %q", root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if refresh != "" && !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}

	for _, path := range cases {
		name, _ := filepath.Rel(testDir, path)
		t.Run(name, func(t *testing.T) {
			input, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("corpora: reading %q: %v", path, err)
			}

			outputs := make([]string, len(c.Outputs))
			test(t, name, string(input), outputs)

			rewrite := false
			if refresh != "" {
				rewrite, _ = doublestar.Match(refresh, filepath.ToSlash(name))
			}
			for i, output := range c.Outputs {
				outPath := fmt.Sprint(path, ".", output.Extension)
				if rewrite {
					write(t, outPath, outputs[i])
					continue
				}
				want, err := os.ReadFile(outPath)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("corpora: reading %q: %v", outPath, err)
					continue
				}
				cmp := output.Compare
				if cmp == nil {
					cmp = Diff
				}
				if diff := cmp(outputs[i], string(want)); diff != "" {
					t.Errorf("output mismatch for %q:\n%s", outPath, diff)
				}
			}
		})
	}
}

func write(t *testing.T, path, text string) {
	t.Helper()
	if text == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			t.Errorf("corpora: removing %q: %v", path, err)
		}
		return
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Errorf("corpora: writing %q: %v", path, err)
	}
}

// Diff is the default [Compare]: an exact match, reported as a unified
// diff when it fails.
func Diff(got, want string) string {
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}
