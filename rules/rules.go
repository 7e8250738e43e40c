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

// Package rules holds the translation rules for every built-in block
// family. Most rules are data: a table maps a dropdown choice or a block
// kind to a runtime primitive, its label and its argument types, and one
// shared assembly path turns the table entry into code.
package rules

import (
	"fmt"

	"github.com/bufbuild/blockcompile/block"
	"github.com/bufbuild/blockcompile/emit"
)

// Coarse argument types used in type annotations.
const (
	typeAny        = "any"
	typeNumber     = "number"
	typeText       = "text"
	typeList       = "list"
	typeBoolean    = "boolean"
	typeDictionary = "dictionary"
	typeKey        = "key"
	typePair       = "pair"
	typeMatrix     = "matrix"
	typeComponent  = "component"
)

// Default returns a new registry holding every rule in this package.
func Default() *emit.Registry {
	r := emit.NewRegistry()
	Register(r)
	return r
}

// Register adds every rule in this package to r.
func Register(r *emit.Registry) {
	registerLogic(r)
	registerMath(r)
	registerMatrices(r)
	registerText(r)
	registerLists(r)
	registerDictionaries(r)
	registerControls(r)
	registerVariables(r)
	registerProcedures(r)
	registerComponents(r)
	registerColors(r)
	registerHelpers(r)
}

// operator is one entry of a dropdown-keyed operator table.
type operator struct {
	prim  string
	label string
	order emit.Order
	// typ, if set, overrides the argument types of the block.
	typ string
	// types, if set, overrides the argument types position by position.
	types []string
}

func (op operator) argType(i int, def string) string {
	switch {
	case i < len(op.types):
		return op.types[i]
	case op.typ != "":
		return op.typ
	default:
		return def
	}
}

// operators maps a field value to its operator.
type operators map[string]operator

// lookup returns the operator chosen by n's field. An unknown choice is
// reported and yields an empty operator, so the caller still produces a
// closed (if meaningless) combination.
func (t operators) lookup(c *emit.Context, n block.Node, field string) operator {
	choice := n.Field(field)
	op, ok := t[choice]
	if !ok {
		c.Warn(n, fmt.Errorf("unknown %s choice %q", field, choice))
		return operator{order: emit.OrderNone}
	}
	return op
}

// arg is a fixed value socket of a primitive block.
type arg struct {
	socket string
	typ    string
}

// primitive describes a block that is a direct call of one runtime
// primitive with fixed sockets.
type primitive struct {
	kind  string
	prim  string
	label string
	args  []arg
	stmt  bool
}

func (p primitive) Translate(c *emit.Context, n block.Node) emit.Result {
	args := make([]string, len(p.args))
	types := make([]string, len(p.args))
	for i, a := range p.args {
		args[i] = c.Expr(n, a.socket, fallback(c, a.typ))
		types[i] = a.typ
	}
	code := c.Primitive(p.prim, args, types, p.label)
	if p.stmt {
		return emit.Stmt(code)
	}
	return emit.Expr(code, emit.OrderAtomic)
}

func registerPrimitives(r *emit.Registry, prims []primitive) {
	for _, p := range prims {
		r.Register(p.kind, p)
	}
}

// choice is a block whose dropdown selects one operator from a table,
// applied either to fixed sockets or to a variable number of sockets.
type choice struct {
	field string
	ops   operators
	args  []arg
	// prefix, if set, makes the block variadic over sockets prefix0...
	prefix string
	typ    string
	stmt   bool
}

func (ch choice) Translate(c *emit.Context, n block.Node) emit.Result {
	op := ch.ops.lookup(c, n, ch.field)

	var args, types []string
	if ch.prefix != "" {
		typ := ch.typ
		if op.typ != "" {
			typ = op.typ
		}
		args, types = variadic(c, n, ch.prefix, typ)
	} else {
		args = make([]string, len(ch.args))
		types = make([]string, len(ch.args))
		for i, a := range ch.args {
			typ := op.argType(i, a.typ)
			args[i] = c.Expr(n, a.socket, fallback(c, typ))
			types[i] = typ
		}
	}

	code := c.Primitive(op.prim, args, types, op.label)
	if ch.stmt {
		return emit.Stmt(code)
	}
	return emit.Expr(code, op.order)
}

// fallback returns the literal substituted for an empty socket of the
// given type.
func fallback(c *emit.Context, typ string) string {
	syn := c.Syntax()
	switch typ {
	case typeNumber:
		return "0"
	case typeText, typeKey:
		return `""`
	case typeList:
		return c.EmptyList()
	case typeDictionary:
		return emptyDictionary(c)
	default:
		return syn.False
	}
}

// variadic translates the numbered sockets prefix0 .. prefix(n-1) of a
// block whose socket count is carried in its "items" count.
func variadic(c *emit.Context, n block.Node, prefix, typ string) (args, types []string) {
	children := block.Inputs(n, prefix, n.Count(block.CountItems))
	args = c.Values(children, fallback(c, typ))
	types = emit.Repeat(typ, len(args))
	return args, types
}
