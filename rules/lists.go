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
)

func registerLists(r *emit.Registry) {
	r.RegisterFunc("lists_create_with", listsCreateWith)
	r.RegisterFunc("lists_add_items", listsAddItems)

	registerPrimitives(r, []primitive{
		{kind: "lists_is_in", prim: "yail-list-member?", label: "is in list?", args: []arg{{"ITEM", typeAny}, {"LIST", typeList}}},
		{kind: "lists_length", prim: "yail-list-length", label: "length of list", args: []arg{{"LIST", typeList}}},
		{kind: "lists_is_empty", prim: "yail-list-empty?", label: "is list empty?", args: []arg{{"LIST", typeList}}},
		{kind: "lists_pick_random_item", prim: "yail-list-pick-random", label: "pick random item", args: []arg{{"LIST", typeList}}},
		{kind: "lists_position_in", prim: "yail-list-index", label: "index in list", args: []arg{{"ITEM", typeAny}, {"LIST", typeList}}},
		{kind: "lists_select_item", prim: "yail-list-get-item", label: "select list item", args: []arg{{"LIST", typeList}, {"NUM", typeNumber}}},
		{
			kind: "lists_insert_item", prim: "yail-list-insert-item!", label: "insert list item",
			args: []arg{{"LIST", typeList}, {"INDEX", typeNumber}, {"ITEM", typeAny}},
			stmt: true,
		},
		{
			kind: "lists_replace_item", prim: "yail-list-set-item!", label: "replace list item",
			args: []arg{{"LIST", typeList}, {"NUM", typeNumber}, {"ITEM", typeAny}},
			stmt: true,
		},
		{
			kind: "lists_remove_item", prim: "yail-list-remove-item!", label: "remove list item",
			args: []arg{{"LIST", typeList}, {"INDEX", typeNumber}},
			stmt: true,
		},
		{
			kind: "lists_append_list", prim: "yail-list-append!", label: "append to list",
			args: []arg{{"LIST0", typeList}, {"LIST1", typeList}},
			stmt: true,
		},
		{kind: "lists_copy", prim: "yail-list-copy", label: "copy list", args: []arg{{"LIST", typeList}}},
		{kind: "lists_is_list", prim: "yail-list?", label: "is a list?", args: []arg{{"ITEM", typeAny}}},
		{kind: "lists_reverse", prim: "yail-list-reverse", label: "reverse list", args: []arg{{"LIST", typeList}}},
		{kind: "lists_to_csv_row", prim: "yail-list-to-csv-row", label: "list to csv row", args: []arg{{"LIST", typeList}}},
		{kind: "lists_to_csv_table", prim: "yail-list-to-csv-table", label: "list to csv table", args: []arg{{"LIST", typeList}}},
		{kind: "lists_from_csv_row", prim: "yail-list-from-csv-row", label: "list from csv row", args: []arg{{"TEXT", typeText}}},
		{kind: "lists_from_csv_table", prim: "yail-list-from-csv-table", label: "list from csv table", args: []arg{{"TEXT", typeText}}},
		{
			kind: "lists_lookup_in_pairs", prim: "yail-alist-lookup", label: "lookup in pairs",
			args: []arg{{"KEY", typeAny}, {"LIST", typeList}, {"NOTFOUND", typeAny}},
		},
		{
			kind: "lists_join_with_separator", prim: "yail-list-join-with-separator", label: "join with separator",
			args: []arg{{"LIST", typeList}, {"SEPARATOR", typeText}},
		},
	})
}

// listsCreateWith emits a list of every declared item. With no items it
// is the canonical empty list.
func listsCreateWith(c *emit.Context, n block.Node) emit.Result {
	if n.Count(block.CountItems) == 0 {
		return emit.Expr(c.EmptyList(), emit.OrderAtomic)
	}
	args, types := variadic(c, n, "ADD", typeAny)
	return emit.Expr(c.Primitive(c.Syntax().MakeList, args, types, "make a list"), emit.OrderAtomic)
}

func listsAddItems(c *emit.Context, n block.Node) emit.Result {
	items, itemTypes := variadic(c, n, "ITEM", typeAny)
	args := append([]string{c.Expr(n, "LIST", c.EmptyList())}, items...)
	types := append([]string{typeList}, itemTypes...)
	return emit.Stmt(c.Primitive("yail-list-add-to-list!", args, types, "add items to list"))
}
