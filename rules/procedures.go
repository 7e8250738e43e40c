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

func registerProcedures(r *emit.Registry) {
	r.RegisterFunc("procedures_defnoreturn", procedureDefinition(false))
	r.RegisterFunc("procedures_defreturn", procedureDefinition(true))
	r.RegisterFunc("procedures_callnoreturn", procedureCall(false))
	r.RegisterFunc("procedures_callreturn", procedureCall(true))
}

func procedureName(c *emit.Context, name string) string {
	return c.Syntax().ProcPrefix + name
}

// procedureDefinition emits (def (p$NAME $P1 $P2) BODY). The body of a
// procedure with a result is its RETURN expression.
func procedureDefinition(returns bool) func(c *emit.Context, n block.Node) emit.Result {
	return func(c *emit.Context, n block.Node) emit.Result {
		syn := c.Syntax()
		name := n.Field("NAME")
		if !symbolic(c, n, append([]string{name}, n.Vars()...)...) {
			return invalid(c)
		}
		b := c.NewBuilder().
			Open(syn.Def).
			Open(procedureName(c, name))
		for _, param := range n.Vars() {
			b.Arg(localName(c, param))
		}
		b.Close()
		if returns {
			b.Arg(c.Expr(n, "RETURN", syn.False))
		} else {
			b.Arg(c.Stmts(n, "STACK", syn.False))
		}
		return emit.Stmt(b.Close().String())
	}
}

// procedureCall emits ((get-var p$NAME) ARG0 ARG1 ...), one argument per
// declared parameter.
func procedureCall(returns bool) func(c *emit.Context, n block.Node) emit.Result {
	return func(c *emit.Context, n block.Node) emit.Result {
		syn := c.Syntax()
		name := n.Field("PROCNAME")
		if !symbolic(c, n, name) {
			return invalid(c)
		}
		args := c.Values(block.Inputs(n, "ARG", len(n.Vars())), syn.False)
		code := c.NewBuilder().
			Open("").
			Open(syn.GetVar).Arg(procedureName(c, name)).Close().
			Args(args...).
			Close().
			String()
		if returns {
			return emit.Expr(code, emit.OrderAtomic)
		}
		return emit.Stmt(code)
	}
}
