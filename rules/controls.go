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

func registerControls(r *emit.Registry) {
	r.RegisterFunc("controls_if", controlsIf)
	r.RegisterFunc("controls_forRange", controlsForRange)
	r.RegisterFunc("controls_forEach", controlsForEach)
	r.RegisterFunc("controls_while", controlsWhile)
	r.RegisterFunc("controls_choose", controlsChoose)
	r.RegisterFunc("controls_do_then_return", controlsDoThenReturn)
	r.RegisterFunc("controls_eval_but_ignore", controlsEvalButIgnore)
	r.RegisterFunc("controls_break", controlsBreak)

	registerPrimitives(r, []primitive{
		{
			kind: "controls_openAnotherScreen", prim: "open-another-screen", label: "open another screen",
			args: []arg{{"SCREEN", typeText}}, stmt: true,
		},
		{
			kind: "controls_openAnotherScreenWithStartValue", prim: "open-another-screen-with-start-value",
			label: "open another screen with start value",
			args:  []arg{{"SCREENNAME", typeText}, {"STARTVALUE", typeAny}}, stmt: true,
		},
		{kind: "controls_getStartValue", prim: "get-start-value", label: "get start value"},
		{kind: "controls_getPlainStartText", prim: "get-plain-start-text", label: "get plain start text"},
		{kind: "controls_closeScreen", prim: "close-screen", label: "close screen", stmt: true},
		{
			kind: "controls_closeScreenWithValue", prim: "close-screen-with-value", label: "close screen with value",
			args: []arg{{"SCREEN", typeAny}}, stmt: true,
		},
		{
			kind: "controls_closeScreenWithPlainText", prim: "close-screen-with-plain-text", label: "close screen with plain text",
			args: []arg{{"TEXT", typeText}}, stmt: true,
		},
		{kind: "controls_closeApplication", prim: "close-application", label: "close application", stmt: true},
	})
}

// controlsIf emits a chain of ifs, each else-if nested in the else branch
// of the previous one:
//
//	(if C0 (begin B0) (begin (if C1 (begin B1) (begin ELSE))))
func controlsIf(c *emit.Context, n block.Node) emit.Result {
	syn := c.Syntax()
	elseifs := n.Count(block.CountElseIf)
	b := c.NewBuilder()
	for i := 0; i <= elseifs; i++ {
		idx := strconv.Itoa(i)
		b.Open(syn.If).
			Arg(c.Expr(n, "IF"+idx, syn.False)).
			Open(syn.Begin).Arg(c.Stmts(n, "DO"+idx, syn.False)).Close()
		if i < elseifs {
			b.Open(syn.Begin)
		}
	}
	if n.Count(block.CountElse) > 0 {
		b.Open(syn.Begin).Arg(c.Stmts(n, "ELSE", syn.False)).Close()
	}
	for b.Depth() > 0 {
		b.Close()
	}
	return emit.Stmt(b.String())
}

func controlsForRange(c *emit.Context, n block.Node) emit.Result {
	if !symbolic(c, n, n.Field("VAR")) {
		return invalid(c)
	}
	syn := c.Syntax()
	code := c.NewBuilder().
		Open(syn.ForRange).
		Arg(localName(c, n.Field("VAR"))).
		Open(syn.Begin).Arg(c.Stmts(n, "STATEMENT", syn.False)).Close().
		Arg(c.Expr(n, "START", "1")).
		Arg(c.Expr(n, "END", "5")).
		Arg(c.Expr(n, "STEP", "1")).
		Close().
		String()
	return emit.Stmt(code)
}

func controlsForEach(c *emit.Context, n block.Node) emit.Result {
	if !symbolic(c, n, n.Field("VAR")) {
		return invalid(c)
	}
	syn := c.Syntax()
	code := c.NewBuilder().
		Open(syn.ForEach).
		Arg(localName(c, n.Field("VAR"))).
		Open(syn.Begin).Arg(c.Stmts(n, "DO", syn.False)).Close().
		Arg(c.Expr(n, "LIST", c.EmptyList())).
		Close().
		String()
	return emit.Stmt(code)
}

func controlsWhile(c *emit.Context, n block.Node) emit.Result {
	syn := c.Syntax()
	code := c.NewBuilder().
		Open(syn.While).
		Arg(c.Expr(n, "TEST", syn.False)).
		Open(syn.Begin).Arg(c.Stmts(n, "STATEMENT", syn.False)).Close().
		Close().
		String()
	return emit.Stmt(code)
}

func controlsChoose(c *emit.Context, n block.Node) emit.Result {
	syn := c.Syntax()
	code := c.NewBuilder().
		Open(syn.If).
		Arg(c.Expr(n, "TEST", syn.False)).
		Arg(c.Expr(n, "THENRETURN", syn.False)).
		Arg(c.Expr(n, "ELSERETURN", syn.False)).
		Close().
		String()
	return emit.Expr(code, emit.OrderAtomic)
}

func controlsDoThenReturn(c *emit.Context, n block.Node) emit.Result {
	syn := c.Syntax()
	code := c.NewBuilder().
		Open(syn.Begin).
		Arg(c.Stmts(n, "STM", syn.False)).
		Arg(c.Expr(n, "VALUE", syn.False)).
		Close().
		String()
	return emit.Expr(code, emit.OrderAtomic)
}

func controlsEvalButIgnore(c *emit.Context, n block.Node) emit.Result {
	syn := c.Syntax()
	code := c.NewBuilder().
		Open(syn.Begin).
		Arg(c.Expr(n, "VALUE", syn.False)).
		Arg(yail.QuoteWith(syn, syn.Ignored)).
		Close().
		String()
	return emit.Stmt(code)
}

func controlsBreak(c *emit.Context, _ block.Node) emit.Result {
	syn := c.Syntax()
	return emit.Stmt(c.NewBuilder().Open(syn.BreakMarker).Arg(syn.False).Close().String())
}
