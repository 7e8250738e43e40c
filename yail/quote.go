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
	"unicode"
)

// Quote returns s as a Yail string literal using [Default].
func Quote(s string) string {
	return QuoteWith(Default, s)
}

// QuoteWith returns s as a string literal delimited by syn.DoubleQuote.
//
// The escape sequence itself, quotes and the common control characters are
// prefixed with syn.Escape; any other unprintable rune is written as \xHEX;
// so that the literal always occupies a single line.
func QuoteWith(syn *Syntax, s string) string {
	var buf strings.Builder
	buf.WriteString(syn.DoubleQuote)
	for _, r := range s {
		switch {
		case string(r) == syn.Escape:
			buf.WriteString(syn.Escape + syn.Escape)
		case string(r) == syn.DoubleQuote:
			buf.WriteString(syn.Escape)
			buf.WriteRune(r)
		case r == '\n':
			buf.WriteString(syn.Escape + "n")
		case r == '\t':
			buf.WriteString(syn.Escape + "t")
		case r == '\r':
			buf.WriteString(syn.Escape + "r")
		case !unicode.IsPrint(r):
			fmt.Fprintf(&buf, "%sx%x;", syn.Escape, r)
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteString(syn.DoubleQuote)
	return buf.String()
}
