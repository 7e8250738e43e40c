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
	"strconv"

	"github.com/bufbuild/blockcompile/block"
	"github.com/bufbuild/blockcompile/emit"
	"github.com/bufbuild/blockcompile/yail"
)

const dictionaryClass = "com.google.appinventor.components.runtime.util.YailDictionary"

var dictionaryGetters = operators{
	"KEYS":   {prim: "yail-dictionary-get-keys", label: "get a dictionary's keys"},
	"VALUES": {prim: "yail-dictionary-get-values", label: "get a dictionary's values"},
}

func registerDictionaries(r *emit.Registry) {
	r.RegisterFunc("dictionaries_create_with", dictionariesCreateWith)
	r.RegisterFunc("dictionaries_lookup", dictionaryLookup("yail-dictionary-lookup", "dictionary lookup", "KEY", typeKey))
	r.RegisterFunc("dictionaries_recursive_lookup", dictionaryLookup("yail-dictionary-recursive-lookup", "dictionary recursive lookup", "KEYS", typeList))
	r.RegisterFunc("dictionaries_walk_all", dictionariesWalkAll)

	r.Register("dictionaries_getters", choice{
		field: "OP", ops: dictionaryGetters,
		args: []arg{{"DICT", typeDictionary}},
	})
	r.Alias("dictionaries_get_keys", "dictionaries_getters")
	r.Alias("dictionaries_get_values", "dictionaries_getters")

	registerPrimitives(r, []primitive{
		{kind: "pair", prim: "make-dictionary-pair", label: "make a pair", args: []arg{{"KEY", typeKey}, {"VALUE", typeAny}}},
		{
			kind: "dictionaries_set_pair", prim: "yail-dictionary-set-pair", label: "set value for key in dictionary",
			args: []arg{{"KEY", typeKey}, {"DICT", typeDictionary}, {"VALUE", typeAny}},
			stmt: true,
		},
		{
			kind: "dictionaries_delete_pair", prim: "yail-dictionary-delete-pair", label: "delete dictionary pair",
			args: []arg{{"DICT", typeDictionary}, {"KEY", typeKey}},
			stmt: true,
		},
		{
			kind: "dictionaries_recursive_set", prim: "yail-dictionary-recursive-set", label: "dictionary recursive set",
			args: []arg{{"KEYS", typeList}, {"DICT", typeDictionary}, {"VALUE", typeAny}},
			stmt: true,
		},
		{
			kind: "dictionaries_is_key_in", prim: "yail-dictionary-is-key-in", label: "is key in dict?",
			args: []arg{{"KEY", typeKey}, {"DICT", typeDictionary}},
		},
		{kind: "dictionaries_length", prim: "yail-dictionary-length", label: "get a dictionary's length", args: []arg{{"DICT", typeDictionary}}},
		{kind: "dictionaries_alist_to_dict", prim: "yail-dictionary-alist-to-dict", label: "list of pairs to dict", args: []arg{{"PAIRS", typeList}}},
		{kind: "dictionaries_dict_to_alist", prim: "yail-dictionary-dict-to-alist", label: "dict to list of pairs", args: []arg{{"DICT", typeDictionary}}},
		{kind: "dictionaries_copy", prim: "yail-dictionary-copy", label: "copy a dictionary", args: []arg{{"DICT", typeDictionary}}},
		{
			kind: "dictionaries_combine_dicts", prim: "yail-dictionary-combine-dicts", label: "combine 2 dictionaries",
			args: []arg{{"DICT1", typeDictionary}, {"DICT2", typeDictionary}},
			stmt: true,
		},
		{
			kind: "dictionaries_walk_tree", prim: "yail-dictionary-walk", label: "list by walking key path",
			args: []arg{{"PATH", typeList}, {"DICT", typeAny}},
		},
		{kind: "dictionaries_is_dict", prim: "yail-dictionary?", label: "is a dict?", args: []arg{{"THING", typeAny}}},
	})
}

func emptyDictionary(c *emit.Context) string {
	return c.Primitive(c.Syntax().MakeDict, nil, nil, "make a dictionary")
}

// dictionariesCreateWith emits a dictionary of the pairs plugged into its
// sockets. Empty sockets are skipped, so the number of pairs (and of
// type tags) is the number of filled sockets, not the item count.
func dictionariesCreateWith(c *emit.Context, n block.Node) emit.Result {
	var args []string
	for i := range n.Count(block.CountItems) {
		child := n.Input("ADD" + strconv.Itoa(i))
		if child == nil || child.Disabled() {
			continue
		}
		args = append(args, c.Value(child, ""))
	}
	code := c.Primitive(c.Syntax().MakeDict, args, emit.Repeat(typePair, len(args)), "make a dictionary")
	return emit.Expr(code, emit.OrderAtomic)
}

// dictionaryLookup emits a lookup whose not-found socket defaults to the
// text "not found".
func dictionaryLookup(prim, label, keySocket, keyType string) func(c *emit.Context, n block.Node) emit.Result {
	return func(c *emit.Context, n block.Node) emit.Result {
		syn := c.Syntax()
		args := []string{
			c.Expr(n, keySocket, fallback(c, keyType)),
			c.Expr(n, "DICT", emptyDictionary(c)),
			c.Expr(n, "NOTFOUND", yail.QuoteWith(syn, syn.NotFound)),
		}
		types := []string{keyType, typeAny, typeAny}
		return emit.Expr(c.Primitive(prim, args, types, label), emit.OrderAtomic)
	}
}

func dictionariesWalkAll(c *emit.Context, _ block.Node) emit.Result {
	syn := c.Syntax()
	code := c.NewBuilder().
		Open(syn.StaticField).
		Arg(dictionaryClass).
		Symbol(syn.ConstantAll).
		Close().
		String()
	return emit.Expr(code, emit.OrderAtomic)
}
