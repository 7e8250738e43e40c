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
	"strings"

	"github.com/bufbuild/blockcompile/block"
	"github.com/bufbuild/blockcompile/emit"
)

// globalMarker prefixes the name of a global variable in a getter or
// setter dropdown.
const globalMarker = "global "

func registerVariables(r *emit.Registry) {
	r.RegisterFunc("global_declaration", globalDeclaration)
	r.RegisterFunc("lexical_variable_get", lexicalVariableGet)
	r.RegisterFunc("lexical_variable_set", lexicalVariableSet)
	r.RegisterFunc("local_declaration_statement", localDeclaration(false))
	r.RegisterFunc("local_declaration_expression", localDeclaration(true))
}

func localName(c *emit.Context, name string) string {
	return c.Syntax().LocalPrefix + name
}

func globalName(c *emit.Context, name string) string {
	return c.Syntax().GlobalPrefix + name
}

func globalDeclaration(c *emit.Context, n block.Node) emit.Result {
	syn := c.Syntax()
	name := n.Field("NAME")
	if !symbolic(c, n, name) {
		return invalid(c)
	}
	code := c.NewBuilder().
		Open(syn.Def).
		Arg(globalName(c, name)).
		Arg(c.Expr(n, "VALUE", "0")).
		Close().
		String()
	return emit.Stmt(code)
}

func lexicalVariableGet(c *emit.Context, n block.Node) emit.Result {
	syn := c.Syntax()
	name := n.Field("VAR")
	if !symbolic(c, n, strings.TrimPrefix(name, globalMarker)) {
		return invalid(c)
	}
	b := c.NewBuilder()
	if global, ok := strings.CutPrefix(name, globalMarker); ok {
		b.Open(syn.GetVar).Arg(globalName(c, global))
	} else {
		b.Open(syn.LexicalValue).Arg(localName(c, name))
	}
	return emit.Expr(b.Close().String(), emit.OrderAtomic)
}

func lexicalVariableSet(c *emit.Context, n block.Node) emit.Result {
	syn := c.Syntax()
	name := n.Field("VAR")
	if !symbolic(c, n, strings.TrimPrefix(name, globalMarker)) {
		return invalid(c)
	}
	b := c.NewBuilder()
	if global, ok := strings.CutPrefix(name, globalMarker); ok {
		b.Open(syn.SetVar).Arg(globalName(c, global))
	} else {
		b.Open(syn.SetLexical).Arg(localName(c, name))
	}
	b.Arg(c.Expr(n, "VALUE", "0"))
	return emit.Stmt(b.Close().String())
}

// localDeclaration emits a let form binding each declared name to the
// value in the matching DECLn socket:
//
//	(let (($a A) ($b B)) BODY)
func localDeclaration(isExpr bool) func(c *emit.Context, n block.Node) emit.Result {
	return func(c *emit.Context, n block.Node) emit.Result {
		syn := c.Syntax()
		if !symbolic(c, n, n.Vars()...) {
			return invalid(c)
		}
		b := c.NewBuilder().Open(syn.Let).Open("")
		for i, name := range n.Vars() {
			b.Open("").
				Arg(localName(c, name)).
				Arg(c.Expr(n, "DECL"+strconv.Itoa(i), "0")).
				Close()
		}
		b.Close()
		if isExpr {
			b.Arg(c.Expr(n, "RETURN", syn.False))
			return emit.Expr(b.Close().String(), emit.OrderAtomic)
		}
		b.Arg(c.Stmts(n, "STACK", syn.False))
		return emit.Stmt(b.Close().String())
	}
}
