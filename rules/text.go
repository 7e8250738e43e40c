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

package rules

import (
	"github.com/bufbuild/blockcompile/block"
	"github.com/bufbuild/blockcompile/emit"
	"github.com/bufbuild/blockcompile/yail"
)

var (
	textCompareOperators = operators{
		"LT":    {prim: "string<?", label: "<"},
		"GT":    {prim: "string>?", label: ">"},
		"EQUAL": {prim: "string=?", label: "="},
		"NEQ":   {prim: "string<>?", label: "≠"},
	}

	textCaseOperators = operators{
		"UPCASE":   {prim: "string-to-upper-case", label: "upcase"},
		"DOWNCASE": {prim: "string-to-lower-case", label: "downcase"},
	}

	textContainsOperators = operators{
		"CONTAINS":     {prim: "string-contains", label: "contains"},
		"CONTAINS_ANY": {prim: "string-contains-any", label: "contains any", types: []string{typeText, typeList}},
		"CONTAINS_ALL": {prim: "string-contains-all", label: "contains all", types: []string{typeText, typeList}},
	}

	textSplitOperators = operators{
		"SPLIT":             {prim: "string-split", label: "split"},
		"SPLITATFIRST":      {prim: "string-split-at-first", label: "split at first"},
		"SPLITATANY":        {prim: "string-split-at-any", label: "split at any", types: []string{typeText, typeList}},
		"SPLITATFIRSTOFANY": {prim: "string-split-at-first-of-any", label: "split at first of any", types: []string{typeText, typeList}},
	}
)

func registerText(r *emit.Registry) {
	r.RegisterFunc("text", textLiteral)
	r.RegisterFunc("text_join", textJoin)

	r.Register("text_compare", choice{
		field: "OP", ops: textCompareOperators,
		args: []arg{{"TEXT1", typeText}, {"TEXT2", typeText}},
	})
	r.Register("text_changeCase", choice{
		field: "OP", ops: textCaseOperators,
		args: []arg{{"TEXT", typeText}},
	})
	r.Register("text_contains", choice{
		field: "OP", ops: textContainsOperators,
		args: []arg{{"TEXT", typeText}, {"PIECE", typeText}},
	})
	r.Register("text_split", choice{
		field: "OP", ops: textSplitOperators,
		args: []arg{{"TEXT", typeText}, {"AT", typeText}},
	})

	registerPrimitives(r, []primitive{
		{kind: "text_length", prim: "string-length", label: "length", args: []arg{{"VALUE", typeText}}},
		{kind: "text_isEmpty", prim: "string-empty?", label: "is text empty?", args: []arg{{"VALUE", typeText}}},
		{kind: "text_trim", prim: "string-trim", label: "trim", args: []arg{{"TEXT", typeText}}},
		{kind: "text_starts_at", prim: "string-starts-at", label: "starts at", args: []arg{{"TEXT", typeText}, {"PIECE", typeText}}},
		{kind: "text_split_at_spaces", prim: "string-split-at-spaces", label: "split at spaces", args: []arg{{"TEXT", typeText}}},
		{
			kind: "text_segment", prim: "string-substring", label: "segment",
			args: []arg{{"TEXT", typeText}, {"START", typeNumber}, {"LENGTH", typeNumber}},
		},
		{
			kind: "text_replace_all", prim: "string-replace-all", label: "replace all",
			args: []arg{{"TEXT", typeText}, {"SEGMENT", typeText}, {"REPLACEMENT", typeText}},
		},
		{kind: "text_reverse", prim: "string-reverse", label: "reverse", args: []arg{{"VALUE", typeText}}},
		{kind: "text_is_string", prim: "string?", label: "is a string?", args: []arg{{"ITEM", typeAny}}},
	})
}

func textLiteral(c *emit.Context, n block.Node) emit.Result {
	return emit.Expr(yail.QuoteWith(c.Syntax(), n.Field("TEXT")), emit.OrderAtomic)
}

func textJoin(c *emit.Context, n block.Node) emit.Result {
	args, types := variadic(c, n, "ADD", typeText)
	return emit.Expr(c.Primitive("string-append", args, types, "join"), emit.OrderNone)
}
