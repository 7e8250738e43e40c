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

// Package emit translates block trees into Yail text.
//
// Translation is table driven: every block kind has a [Rule] in a
// [Registry]. A rule assembles its own combination and asks the [Context]
// to translate its children, one level at a time. A block that cannot be
// translated becomes a fixed placeholder and a warning; it never stops the
// rest of the program from being emitted.
package emit

import (
	"fmt"

	"github.com/bufbuild/blockcompile/block"
	"github.com/bufbuild/blockcompile/reporter"
	"github.com/bufbuild/blockcompile/yail"
)

// Order is the precedence tag of an expression result. It tells a parent
// whether the child's text is already a single delimited unit.
type Order int

const (
	// OrderAtomic marks text that is a literal or one complete combination.
	OrderAtomic Order = 0
	// OrderNone marks text whose wrapping is left to the caller.
	OrderNone Order = 99
)

// Result is the translation of one block.
type Result struct {
	Code string
	// Order is meaningful only for expressions.
	Order Order
	// Statement is set when the block has a side effect and no value.
	Statement bool
}

// Expr returns an expression result.
func Expr(code string, order Order) Result {
	return Result{Code: code, Order: order}
}

// Stmt returns a statement result.
func Stmt(code string) Result {
	return Result{Code: code, Statement: true}
}

// Profile selects target-dependent output. It is threaded explicitly into
// every translation.
type Profile struct {
	// ForRepl produces code for the live-development companion instead of a
	// packaged app: form headers and runtime initialization are omitted and
	// enumeration constants are looked up at run time.
	ForRepl bool
	// PackageName is used for forms that do not name their own package.
	PackageName string
}

// DefaultPackage is used when neither the form nor the profile names a
// package.
const DefaultPackage = "appinventor.ai_user.project"

// Emitter translates blocks using the rules of a registry.
//
// Only Registry is required. The zero values of the other fields select the
// default Yail syntax, an empty component database, and a handler that
// discards warnings.
type Emitter struct {
	Registry *Registry
	Syntax   *yail.Syntax
	Profile  Profile
	Metadata block.Metadata
	Handler  *reporter.Handler
}

// TranslateExpression translates an expression block. An empty socket
// (nil node) translates to empty text; rules substitute their own
// fallbacks before getting here.
func (e *Emitter) TranslateExpression(n block.Node) (string, Order) {
	if n == nil {
		return "", OrderNone
	}
	res := e.newContext("").translate(n)
	if res.Statement {
		return res.Code, OrderNone
	}
	return res.Code, res.Order
}

// TranslateStatement translates a single statement block.
func (e *Emitter) TranslateStatement(n block.Node) string {
	if n == nil {
		return ""
	}
	return e.newContext("").translate(n).Code
}

// TranslateStatements translates a sequence of statements and concatenates
// the results without any separator.
func (e *Emitter) TranslateStatements(nodes []block.Node) string {
	return e.newContext("").seq(nodes)
}

func (e *Emitter) newContext(form string) *Context {
	c := &Context{e: e, form: form, syn: e.Syntax, md: e.Metadata}
	if c.syn == nil {
		c.syn = yail.Default
	}
	if c.md == nil {
		c.md = block.Database(nil)
	}
	return c
}

func (e *Emitter) warn(loc reporter.Location, err error) {
	if e.Handler != nil {
		e.Handler.HandleWarning(loc, err)
	}
}

// Placeholder returns the fixed text that stands in for a block that could
// not be translated. It is a complete combination that evaluates to false.
func Placeholder(syn *yail.Syntax) string {
	if syn == nil {
		syn = yail.Default
	}
	return yail.NewBuilder(syn).
		Open(syn.Begin).
		Text(syn.Undefined).
		Arg(syn.False).
		Close().
		String()
}

func ruleFailure(v any) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("%w: %w", reporter.ErrRuleFailed, err)
	}
	return fmt.Errorf("%w: %v", reporter.ErrRuleFailed, v)
}
