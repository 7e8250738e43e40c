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
	"fmt"
	"strings"
)

// Builder accumulates Yail text one element at a time, inserting spacers
// between elements and tracking combination depth so that every Open has a
// matching Close.
//
// A zero Builder is not usable; construct one with [NewBuilder].
type Builder struct {
	syn       *Syntax
	buf       strings.Builder
	depth     int
	needSpace bool
}

// NewBuilder returns a builder that writes tokens from syn. If syn is nil,
// [Default] is used.
func NewBuilder(syn *Syntax) *Builder {
	if syn == nil {
		syn = Default
	}
	return &Builder{syn: syn}
}

// Syntax returns the syntax table this builder writes.
func (b *Builder) Syntax() *Syntax {
	return b.syn
}

func (b *Builder) space() {
	if b.needSpace {
		b.buf.WriteString(b.syn.Spacer)
	}
}

// Open starts a combination. If head is not empty, it is written as the first
// element of the combination.
func (b *Builder) Open(head string) *Builder {
	b.space()
	b.buf.WriteString(b.syn.OpenCombination)
	b.buf.WriteString(head)
	b.depth++
	b.needSpace = head != ""
	return b
}

// OpenQuoted starts a quoted combination, such as a type annotation list.
func (b *Builder) OpenQuoted() *Builder {
	b.space()
	b.buf.WriteString(b.syn.Quote)
	b.buf.WriteString(b.syn.OpenCombination)
	b.depth++
	b.needSpace = false
	return b
}

// Close ends the innermost open combination.
//
// Close panics if no combination is open. The emitter recovers such panics
// at rule boundaries, so an unbalanced rule costs only its own output.
func (b *Builder) Close() *Builder {
	if b.depth == 0 {
		panic(fmt.Sprintf("yail: Close without matching Open after %q", b.buf.String()))
	}
	b.buf.WriteString(b.syn.CloseCombination)
	b.depth--
	b.needSpace = true
	return b
}

// Arg writes an already-assembled element, such as a translated child.
func (b *Builder) Arg(text string) *Builder {
	b.space()
	b.buf.WriteString(text)
	b.needSpace = true
	return b
}

// Args writes each element in order.
func (b *Builder) Args(texts ...string) *Builder {
	for _, text := range texts {
		b.Arg(text)
	}
	return b
}

// Symbol writes a quoted symbol, e.g. 'Button1. An empty name is written
// as the empty symbol so that it still reads as one element.
func (b *Builder) Symbol(name string) *Builder {
	if name == "" {
		name = b.syn.EmptySymbol
	}
	return b.Arg(b.syn.Quote + name)
}

// Text writes a string literal.
func (b *Builder) Text(s string) *Builder {
	return b.Arg(QuoteWith(b.syn, s))
}

// Raw writes text verbatim. If text ends in a line feed, the next element
// is not preceded by a spacer.
func (b *Builder) Raw(text string) *Builder {
	b.buf.WriteString(text)
	b.needSpace = !strings.HasSuffix(text, b.syn.LineFeed)
	return b
}

// Line writes a line feed. The next element is not preceded by a spacer.
func (b *Builder) Line() *Builder {
	b.buf.WriteString(b.syn.LineFeed)
	b.needSpace = false
	return b
}

// Depth returns the number of combinations currently open.
func (b *Builder) Depth() int {
	return b.depth
}

// String returns the text written so far.
func (b *Builder) String() string {
	return b.buf.String()
}

// Finish returns the assembled text, or an error if some combination was
// left open.
func (b *Builder) Finish() (string, error) {
	if b.depth != 0 {
		return b.buf.String(), fmt.Errorf("yail: %d unclosed combination(s)", b.depth)
	}
	return b.buf.String(), nil
}

// Balanced reports whether every combination opened in text is closed, in
// order. String literals and line comments, as delimited by syn, are
// skipped.
func Balanced(syn *Syntax, text string) bool {
	if syn == nil {
		syn = Default
	}
	depth := 0
	for i := 0; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], syn.DoubleQuote):
			i += len(syn.DoubleQuote)
			for i < len(text) && !strings.HasPrefix(text[i:], syn.DoubleQuote) {
				if syn.Escape != "" && strings.HasPrefix(text[i:], syn.Escape) {
					i += len(syn.Escape)
				}
				i++
			}
			if i >= len(text) {
				return false
			}
			i += len(syn.DoubleQuote)
		case syn.CommentStart != "" && strings.HasPrefix(text[i:], syn.CommentStart):
			i += len(syn.CommentStart)
			for i < len(text) && !strings.HasPrefix(text[i:], syn.LineFeed) {
				i++
			}
		case strings.HasPrefix(text[i:], syn.OpenCombination):
			depth++
			i += len(syn.OpenCombination)
		case strings.HasPrefix(text[i:], syn.CloseCombination):
			depth--
			if depth < 0 {
				return false
			}
			i += len(syn.CloseCombination)
		default:
			i++
		}
	}
	return depth == 0
}
