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
	"strings"

	"github.com/rivo/uniseg"
)

// MaxCommentWidth is the column at which comment text is wrapped.
const MaxCommentWidth = 80

// Comment renders text as major comment lines, word-wrapped so that no line
// is wider than width terminal columns (unless a single word is wider).
// Widths are measured in grapheme clusters, so wide runes count double.
func Comment(syn *Syntax, text string, width int) string {
	if syn == nil {
		syn = Default
	}
	if width <= 0 {
		width = MaxCommentWidth
	}
	prefix := syn.CommentMajor
	avail := width - uniseg.StringWidth(prefix)

	var out strings.Builder
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out.WriteString(strings.TrimRight(prefix, " "))
			out.WriteString(syn.LineFeed)
			continue
		}
		col := 0
		out.WriteString(prefix)
		for i, word := range words {
			w := uniseg.StringWidth(word)
			if i > 0 && col+1+w > avail {
				out.WriteString(syn.LineFeed)
				out.WriteString(prefix)
				col = 0
			} else if i > 0 {
				out.WriteString(" ")
				col++
			}
			out.WriteString(word)
			col += w
		}
		out.WriteString(syn.LineFeed)
	}
	return out.String()
}

// Truncate shortens s to at most width columns, cutting on grapheme
// boundaries and marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var out strings.Builder
	col := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if col+w > width-1 {
			break
		}
		out.WriteString(cluster)
		col += w
	}
	out.WriteString("…")
	return out.String()
}
