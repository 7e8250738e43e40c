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

var matrixOperations = operators{
	"INVERSE":      {prim: "yail-matrix-inverse", label: "inverse"},
	"TRANSPOSE":    {prim: "yail-matrix-transpose", label: "transpose"},
	"ROTATE_LEFT":  {prim: "yail-matrix-rotate-left", label: "rotate left"},
	"ROTATE_RIGHT": {prim: "yail-matrix-rotate-right", label: "rotate right"},
}

func registerMatrices(r *emit.Registry) {
	r.RegisterFunc("matrices_add", generalized("yail-matrix-add", "+", "0"))
	r.RegisterFunc("matrices_multiply", generalized("yail-matrix-multiply", "×", "1"))
	r.Register("matrices_operations", choice{
		field: "OP", ops: matrixOperations,
		args: []arg{{"MATRIX", typeMatrix}},
	})

	registerPrimitives(r, []primitive{
		{
			kind: "matrices_create", prim: "make-yail-matrix", label: "make a matrix",
			args: []arg{{"ROWS", typeNumber}, {"COLS", typeNumber}, {"INITIAL", typeAny}},
		},
		{
			kind: "matrices_get_row", prim: "yail-matrix-get-row", label: "get row",
			args: []arg{{"MATRIX", typeMatrix}, {"ROW", typeNumber}},
		},
		{
			kind: "matrices_get_column", prim: "yail-matrix-get-column", label: "get column",
			args: []arg{{"MATRIX", typeMatrix}, {"COLUMN", typeNumber}},
		},
		{
			kind: "matrices_get_cell", prim: "yail-matrix-get-cell", label: "get cell",
			args: []arg{{"MATRIX", typeMatrix}, {"ROW", typeNumber}, {"COLUMN", typeNumber}},
		},
		{
			kind: "matrices_set_cell", prim: "yail-matrix-set-cell!", label: "set cell",
			args: []arg{{"MATRIX", typeMatrix}, {"ROW", typeNumber}, {"COLUMN", typeNumber}, {"VALUE", typeAny}},
			stmt: true,
		},
		{
			kind: "matrices_get_dims", prim: "yail-matrix-get-dims", label: "get dimensions",
			args: []arg{{"MATRIX", typeMatrix}},
		},
	})
}

// generalized emits a sum or product whose operands may be numbers or
// matrices. Zero operands yield the identity and a single operand is
// passed through unchanged, so the runtime never sees a call with fewer
// than two operands.
func generalized(prim, label, identity string) func(c *emit.Context, n block.Node) emit.Result {
	return func(c *emit.Context, n block.Node) emit.Result {
		children := block.Inputs(n, "NUM", n.Count(block.CountItems))
		switch len(children) {
		case 0:
			return emit.Expr(identity, emit.OrderAtomic)
		case 1:
			code, order := c.ExprOrder(n, "NUM0", identity)
			return emit.Expr(code, order)
		}
		args := c.Values(children, identity)
		types := emit.Repeat(typeAny, len(args))
		return emit.Expr(c.Primitive(prim, args, types, label), emit.OrderNone)
	}
}
