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
	"strconv"
	"strings"
	"unicode"
)

// IsSymbol reports whether name can be written as a bare symbol in syn
// without changing how the surrounding text reads. Names containing
// whitespace, unprintable runes, or any of the delimiters, quotes, comment
// or escape markers of syn are rejected, as is the empty name.
//
// A nil syn means [Default].
func IsSymbol(syn *Syntax, name string) bool {
	if syn == nil {
		syn = Default
	}
	if name == "" || name == syn.EmptySymbol {
		return false
	}
	for _, r := range name {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) || r == '|' {
			return false
		}
	}
	for _, tok := range [...]string{
		syn.OpenCombination,
		syn.CloseCombination,
		syn.Quote,
		syn.DoubleQuote,
		syn.CommentStart,
		syn.Escape,
	} {
		if tok != "" && strings.Contains(name, tok) {
			return false
		}
	}
	return true
}

// IsNumber reports whether s is a plain decimal number literal: digits with
// an optional sign, fraction and exponent. Infinities, NaN and hexadecimal
// floats are not numbers here even though strconv accepts them.
func IsNumber(s string) bool {
	if strings.Trim(s, "0123456789+-.eE") != "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
