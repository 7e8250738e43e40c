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

package yail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Spacing(t *testing.T) {
	t.Parallel()
	b := NewBuilder(nil)
	b.Open("call-yail-primitive").Arg("yail-not").
		Open("*list-for-runtime*").Arg("#f").Close().
		OpenQuoted().Arg("boolean").Close().
		Text("not").
		Close()
	code, err := b.Finish()
	require.NoError(t, err)
	assert.Equal(t, `(call-yail-primitive yail-not (*list-for-runtime* #f) '(boolean) "not")`, code)
}

func TestBuilder_EmptyCombinations(t *testing.T) {
	t.Parallel()
	b := NewBuilder(Default)
	b.Open("f").Open("*list-for-runtime*").Close().OpenQuoted().Close().Close()
	assert.Equal(t, `(f (*list-for-runtime*) '())`, b.String())

	b = NewBuilder(Default)
	b.Open("").Open("get-var").Arg("p$go").Close().Arg("1").Close()
	assert.Equal(t, `((get-var p$go) 1)`, b.String())
}

func TestBuilder_Lines(t *testing.T) {
	t.Parallel()
	b := NewBuilder(nil)
	b.Raw(";;; Button1\n").Open("a").Close().Line().Arg("b").Line()
	assert.Equal(t, ";;; Button1\n(a)\nb\n", b.String())
}

func TestBuilder_Unbalanced(t *testing.T) {
	t.Parallel()
	b := NewBuilder(nil)
	assert.Panics(t, func() { b.Close() })

	b.Open("begin").Open("if")
	assert.Equal(t, 2, b.Depth())
	_, err := b.Finish()
	require.Error(t, err)
}

func TestBalanced(t *testing.T) {
	t.Parallel()
	testCases := map[string]bool{
		``:                         true,
		`(a (b) '(c))`:             true,
		`(a "(")`:                  true,
		`(a "\")")`:                true,
		"(a ; (\n)":                true,
		`(a`:                       false,
		`)(`:                       false,
		`(a "unterminated)`:        false,
		`(begin (if #t (begin)))`:  true,
		`(begin (if #t (begin))))`: false,
	}
	for text, want := range testCases {
		assert.Equal(t, want, Balanced(nil, text), "%q", text)
	}
}

func TestBalanced_Syntax(t *testing.T) {
	t.Parallel()
	syn := *Default
	syn.OpenCombination = "["
	syn.CloseCombination = "]"
	syn.CommentStart = "#|"
	syn.Escape = "~"
	testCases := map[string]bool{
		`[a "~"]"]`:  true,
		`[a "\"]"]`:  false,
		"[a #| [\n]": true,
		"[a ; [\n]":  false,
		`[a "#|"]`:   true,
		"[a (b]":     true,
		"[a #|":      false,
		`[a ~"]`:     false,
	}
	for text, want := range testCases {
		assert.Equal(t, want, Balanced(&syn, text), "%q", text)
	}

	quoted := QuoteWith(&syn, `a"b~`+"\n")
	assert.Equal(t, `"a~"b~~~n"`, quoted)
	assert.True(t, Balanced(&syn, "["+quoted+"]"))
}

func TestBuilder_EmptySymbol(t *testing.T) {
	t.Parallel()
	code := NewBuilder(nil).Open("f").Symbol("").Symbol("x").Close().String()
	assert.Equal(t, "(f '|| 'x)", code)
	assert.True(t, Balanced(nil, code))
}

func TestQuote(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		in, want string
	}{
		{``, `""`},
		{`hello`, `"hello"`},
		{`say "hi"`, `"say \"hi\""`},
		{`a\b`, `"a\\b"`},
		{"one\ntwo\tthree\r", `"one\ntwo\tthree\r"`},
		{"bell\a", `"bell\x7;"`},
		{"héllo ✓", `"héllo ✓"`},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, Quote(tc.in), "%q", tc.in)
		assert.True(t, Balanced(nil, "("+Quote(tc.in)+")"))
	}
}

func TestComment(t *testing.T) {
	t.Parallel()
	assert.Equal(t, ";;; hello world\n", Comment(nil, "hello world", 0))
	assert.Equal(t, ";;; one\n;;;\n;;; two\n", Comment(nil, "one\n\ntwo", 80))
	assert.Equal(t, ";;; aaa bbb\n;;; ccc\n", Comment(nil, "aaa bbb ccc", 12))
	// a word wider than the line is kept whole
	assert.Equal(t, ";;; abcdefghijkl\n", Comment(nil, "abcdefghijkl", 8))
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	// wide runes take two columns each
	assert.Equal(t, "日本…", Truncate("日本語テキスト", 5))
}
