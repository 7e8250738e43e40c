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
)

var logicCompareOperators = operators{
	"EQ":  {prim: "yail-equal?", label: "=", order: emit.OrderNone},
	"NEQ": {prim: "yail-not-equal?", label: "≠", order: emit.OrderNone},
}

func registerLogic(r *emit.Registry) {
	r.RegisterFunc("logic_boolean", logicBoolean)
	r.Alias("logic_false", "logic_boolean")
	r.RegisterFunc("logic_null", logicNull)
	r.RegisterFunc("logic_compare", logicCompare)
	r.RegisterFunc("logic_operation", logicOperation)
	registerPrimitives(r, []primitive{
		{kind: "logic_negate", prim: "yail-not", label: "not", args: []arg{{"BOOL", typeBoolean}}},
	})
}

func logicBoolean(c *emit.Context, n block.Node) emit.Result {
	return emit.Expr(c.Bool(n.Field("BOOL") == "TRUE"), emit.OrderAtomic)
}

func logicNull(c *emit.Context, _ block.Node) emit.Result {
	syn := c.Syntax()
	code := c.NewBuilder().Open(syn.GetVar).Arg(syn.Null).Close().String()
	return emit.Expr(code, emit.OrderAtomic)
}

func logicCompare(c *emit.Context, n block.Node) emit.Result {
	op := logicCompareOperators.lookup(c, n, "OP")
	args := []string{
		c.Expr(n, "A", c.Syntax().False),
		c.Expr(n, "B", c.Syntax().False),
	}
	return emit.Expr(c.Primitive(op.prim, args, []string{typeAny, typeAny}, op.label), op.order)
}

// logicOperation emits the short-circuiting and/or forms. The block has
// two sockets unless its mutation says otherwise.
func logicOperation(c *emit.Context, n block.Node) emit.Result {
	syn := c.Syntax()
	head := syn.AndDelayed
	if n.Field("OP") == "OR" {
		head = syn.OrDelayed
	}
	count := n.Count(block.CountItems)
	if count == 0 {
		count = 2
	}
	b := c.NewBuilder().Open(head)
	for i := range count {
		b.Arg(c.Expr(n, "A"+strconv.Itoa(i), syn.False))
	}
	return emit.Expr(b.Close().String(), emit.OrderNone)
}
