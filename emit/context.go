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

package emit

import (
	"fmt"
	"strings"

	"github.com/bufbuild/blockcompile/block"
	"github.com/bufbuild/blockcompile/reporter"
	"github.com/bufbuild/blockcompile/yail"
)

// maxKindWidth bounds how much of an unknown kind is echoed in warnings.
const maxKindWidth = 48

// Context is what a rule sees of the emitter during one translation.
type Context struct {
	e    *Emitter
	form string
	syn  *yail.Syntax
	md   block.Metadata
}

// Syntax returns the concrete syntax being emitted.
func (c *Context) Syntax() *yail.Syntax { return c.syn }

// Profile returns the target profile of this translation.
func (c *Context) Profile() Profile { return c.e.Profile }

// Metadata returns the component database.
func (c *Context) Metadata() block.Metadata { return c.md }

// Form returns the name of the form being translated, if any.
func (c *Context) Form() string { return c.form }

// NewBuilder returns a builder for the current syntax.
func (c *Context) NewBuilder() *yail.Builder {
	return yail.NewBuilder(c.syn)
}

// Expr translates the block in the named socket of n. If the socket is
// empty, fallback is returned instead.
func (c *Context) Expr(n block.Node, socket, fallback string) string {
	code, _ := c.ExprOrder(n, socket, fallback)
	return code
}

// ExprOrder is like Expr but also returns the child's precedence tag. A
// fallback is always atomic.
func (c *Context) ExprOrder(n block.Node, socket, fallback string) (string, Order) {
	return c.valueOrder(n.Input(socket), fallback)
}

// Value translates child, which was obtained from one of n's sockets, or
// returns fallback if child is nil.
func (c *Context) Value(child block.Node, fallback string) string {
	code, _ := c.valueOrder(child, fallback)
	return code
}

// Values translates each child in order, substituting fallback for empty
// sockets.
func (c *Context) Values(children []block.Node, fallback string) []string {
	codes := make([]string, len(children))
	for i, child := range children {
		codes[i] = c.Value(child, fallback)
	}
	return codes
}

func (c *Context) valueOrder(child block.Node, fallback string) (string, Order) {
	if child == nil || child.Disabled() {
		return fallback, OrderAtomic
	}
	res := c.translate(child)
	if res.Statement {
		return res.Code, OrderNone
	}
	return res.Code, res.Order
}

// Stmts translates the statements in the named slot of n. If the slot is
// empty, noop is returned so that the enclosing combination still has a
// body.
func (c *Context) Stmts(n block.Node, slot, noop string) string {
	code := c.seq(n.Statements(slot))
	if code == "" {
		return noop
	}
	return code
}

func (c *Context) seq(nodes []block.Node) string {
	var buf strings.Builder
	for _, n := range nodes {
		if n == nil || n.Disabled() {
			continue
		}
		buf.WriteString(c.translate(n).Code)
	}
	return buf.String()
}

// Warn reports a non-fatal problem with n.
func (c *Context) Warn(n block.Node, err error) {
	c.e.warn(c.location(n), err)
}

func (c *Context) location(n block.Node) reporter.Location {
	return reporter.Location{
		Form: c.form,
		ID:   n.ID(),
		Kind: yail.Truncate(n.Kind(), maxKindWidth),
	}
}

func (c *Context) translate(n block.Node) (res Result) {
	var rule Rule
	var ok bool
	if c.e.Registry != nil {
		rule, ok = c.e.Registry.Lookup(n.Kind())
	}
	if !ok {
		c.Warn(n, reporter.ErrUndefinedBlock)
		return Expr(Placeholder(c.syn), OrderAtomic)
	}

	defer func() {
		if r := recover(); r != nil {
			c.Warn(n, ruleFailure(r))
			res = Expr(Placeholder(c.syn), OrderAtomic)
		}
	}()
	return rule.Translate(c, n)
}

// Primitive assembles a call of a runtime primitive:
//
//	(call-yail-primitive NAME (*list-for-runtime* ARGS...) '(TYPES...) "LABEL")
//
// args and types must have the same length; each type is the coarse type
// the runtime coerces the corresponding argument to.
func (c *Context) Primitive(name string, args, types []string, label string) string {
	if len(args) != len(types) {
		panic(fmt.Sprintf("emit: primitive %s has %d args but %d types", name, len(args), len(types)))
	}
	return c.NewBuilder().
		Open(c.syn.CallPrimitive).
		Arg(name).
		Open(c.syn.ListConstructor).
		Args(args...).
		Close().
		OpenQuoted().
		Args(types...).
		Close().
		Text(label).
		Close().
		String()
}

// EmptyList returns the canonical empty list constructor.
func (c *Context) EmptyList() string {
	return c.Primitive(c.syn.MakeList, nil, nil, "make a list")
}

// Bool returns the literal for v.
func (c *Context) Bool(v bool) string {
	if v {
		return c.syn.True
	}
	return c.syn.False
}

// Repeat returns n copies of s, for building type annotation lists.
func Repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
