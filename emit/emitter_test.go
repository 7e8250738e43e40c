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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/blockcompile/block"
	"github.com/bufbuild/blockcompile/reporter"
	"github.com/bufbuild/blockcompile/yail"
)

const placeholder = `(begin "This block is not defined" #f)`

// testRegistry holds a handful of small rules in the shape real rule
// families have.
func testRegistry() *Registry {
	r := NewRegistry()
	r.RegisterFunc("num", func(_ *Context, n block.Node) Result {
		return Expr(n.Field("NUM"), OrderAtomic)
	})
	r.RegisterFunc("not", func(c *Context, n block.Node) Result {
		arg := c.Expr(n, "BOOL", c.Bool(false))
		return Expr(c.Primitive("yail-not", []string{arg}, []string{"boolean"}, "not"), OrderAtomic)
	})
	r.RegisterFunc("say", func(c *Context, n block.Node) Result {
		return Stmt(c.NewBuilder().Open("say").Text(n.Field("TEXT")).Close().String())
	})
	r.RegisterFunc("loop", func(c *Context, n block.Node) Result {
		body := c.Stmts(n, "DO", c.Bool(false))
		return Stmt(c.NewBuilder().Open("while").Arg("#t").Open("begin").Arg(body).Close().Close().String())
	})
	r.RegisterFunc("broken", func(c *Context, _ block.Node) Result {
		b := c.NewBuilder()
		b.Close()
		return Expr(b.String(), OrderAtomic)
	})
	r.Alias("false", "not")
	return r
}

type warnings struct {
	errs []reporter.ErrorWithBlock
}

func (w *warnings) handler() *reporter.Handler {
	return reporter.NewHandler(reporter.NewReporter(nil, func(err reporter.ErrorWithBlock) {
		w.errs = append(w.errs, err)
	}))
}

func TestPlaceholder(t *testing.T) {
	t.Parallel()
	assert.Equal(t, placeholder, Placeholder(nil))
	assert.True(t, yail.Balanced(nil, Placeholder(nil)))
}

func TestTranslateExpression(t *testing.T) {
	t.Parallel()
	em := &Emitter{Registry: testRegistry()}

	code, order := em.TranslateExpression(nil)
	assert.Empty(t, code)
	assert.Equal(t, OrderNone, order)

	negate := &block.Block{KindName: "not"}
	code, order = em.TranslateExpression(negate)
	assert.Equal(t, `(call-yail-primitive yail-not (*list-for-runtime* #f) '(boolean) "not")`, code)
	assert.Equal(t, OrderAtomic, order)

	negate.Inputs = map[string]*block.Block{"BOOL": {KindName: "num", Fields: map[string]string{"NUM": "#t"}}}
	code, _ = em.TranslateExpression(negate)
	assert.Equal(t, `(call-yail-primitive yail-not (*list-for-runtime* #t) '(boolean) "not")`, code)

	// disabled children count as empty sockets
	negate.Inputs["BOOL"].IsDisabled = true
	code, _ = em.TranslateExpression(negate)
	assert.Contains(t, code, "(*list-for-runtime* #f)")
}

func TestTranslate_Idempotent(t *testing.T) {
	t.Parallel()
	em := &Emitter{Registry: testRegistry()}
	n := &block.Block{KindName: "loop", Slots: map[string][]*block.Block{
		"DO": {{KindName: "say", Fields: map[string]string{"TEXT": "a"}}, {KindName: "say", Fields: map[string]string{"TEXT": "b"}}},
	}}
	first := em.TranslateStatement(n)
	assert.Equal(t, `(while #t (begin (say "a")(say "b")))`, first)
	assert.Equal(t, first, em.TranslateStatement(n))
}

func TestTranslate_EmptyBody(t *testing.T) {
	t.Parallel()
	em := &Emitter{Registry: testRegistry()}
	n := &block.Block{KindName: "loop"}
	assert.Equal(t, `(while #t (begin #f))`, em.TranslateStatement(n))
	assert.Empty(t, em.TranslateStatements(nil))
}

func TestTranslate_Alias(t *testing.T) {
	t.Parallel()
	em := &Emitter{Registry: testRegistry()}
	a, _ := em.TranslateExpression(&block.Block{KindName: "not"})
	b, _ := em.TranslateExpression(&block.Block{KindName: "false"})
	assert.Equal(t, a, b)
}

func TestTranslate_UndefinedBlock(t *testing.T) {
	t.Parallel()
	var w warnings
	em := &Emitter{Registry: testRegistry(), Handler: w.handler()}

	n := &block.Block{KindName: "not", BlockID: "outer", Inputs: map[string]*block.Block{
		"BOOL": {KindName: "frobnicate", BlockID: "inner"},
	}}
	code, _ := em.TranslateExpression(n)
	assert.Equal(t, `(call-yail-primitive yail-not (*list-for-runtime* `+placeholder+`) '(boolean) "not")`, code)
	assert.True(t, yail.Balanced(nil, code))

	require.Len(t, w.errs, 1)
	require.ErrorIs(t, w.errs[0], reporter.ErrUndefinedBlock)
	assert.Equal(t, "inner", w.errs[0].GetLocation().ID)
	assert.Equal(t, "frobnicate", w.errs[0].GetLocation().Kind)
}

func TestTranslate_LongKindTruncated(t *testing.T) {
	t.Parallel()
	var w warnings
	em := &Emitter{Registry: testRegistry(), Handler: w.handler()}
	em.TranslateStatement(&block.Block{KindName: strings.Repeat("x", 200)})
	require.Len(t, w.errs, 1)
	assert.Equal(t, strings.Repeat("x", 47)+"…", w.errs[0].GetLocation().Kind)
}

func TestTranslate_RulePanicContained(t *testing.T) {
	t.Parallel()
	var w warnings
	em := &Emitter{Registry: testRegistry(), Handler: w.handler()}

	n := &block.Block{KindName: "loop", Slots: map[string][]*block.Block{
		"DO": {
			{KindName: "say", Fields: map[string]string{"TEXT": "before"}},
			{KindName: "broken"},
			{KindName: "say", Fields: map[string]string{"TEXT": "after"}},
		},
	}}
	code := em.TranslateStatement(n)
	assert.Equal(t, `(while #t (begin (say "before")`+placeholder+`(say "after")))`, code)
	assert.True(t, yail.Balanced(nil, code))

	require.Len(t, w.errs, 1)
	assert.True(t, errors.Is(w.errs[0], reporter.ErrRuleFailed))
	assert.Equal(t, 1, em.Handler.Warnings())
}

func TestTranslate_PrimitiveMismatch(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	r.RegisterFunc("bad", func(c *Context, _ block.Node) Result {
		return Expr(c.Primitive("p", []string{"1", "2"}, []string{"number"}, "p"), OrderAtomic)
	})
	var w warnings
	em := &Emitter{Registry: r, Handler: w.handler()}
	code, _ := em.TranslateExpression(&block.Block{KindName: "bad"})
	assert.Equal(t, placeholder, code)
	require.Len(t, w.errs, 1)
	require.ErrorIs(t, w.errs[0], reporter.ErrRuleFailed)
}

func TestEmptyList(t *testing.T) {
	t.Parallel()
	c := (&Emitter{}).newContext("")
	assert.Equal(t, `(call-yail-primitive make-yail-list (*list-for-runtime*) '() "make a list")`, c.EmptyList())
	assert.Equal(t, []string{"any", "any", "any"}, Repeat("any", 3))
	assert.Empty(t, Repeat("any", 0))
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	r := testRegistry()
	assert.Equal(t, []string{"broken", "false", "loop", "not", "num", "say"}, r.Kinds())
	assert.Equal(t, 6, r.Len())
	assert.Panics(t, func() { r.Alias("x", "nope") })

	clone := r.Clone()
	clone.RegisterFunc("extra", func(*Context, block.Node) Result { return Result{} })
	assert.Equal(t, 7, clone.Len())
	assert.Equal(t, 6, r.Len())
	_, ok := r.Lookup("extra")
	assert.False(t, ok)
}

func TestRegistry_AliasFollowsCanonical(t *testing.T) {
	t.Parallel()
	r := testRegistry()
	r.Alias("falsy", "false")
	r.RegisterFunc("not", func(*Context, block.Node) Result {
		return Expr("#t", OrderAtomic)
	})
	em := &Emitter{Registry: r}
	for _, kind := range []string{"not", "false", "falsy"} {
		code, _ := em.TranslateExpression(&block.Block{KindName: kind})
		assert.Equal(t, "#t", code, kind)
	}

	assert.Panics(t, func() { r.Alias("not", "falsy") })
	assert.Panics(t, func() { r.Alias("false", "false") })

	// registering an alias kind replaces the alias
	r.RegisterFunc("false", func(*Context, block.Node) Result {
		return Expr("#f", OrderAtomic)
	})
	code, _ := em.TranslateExpression(&block.Block{KindName: "falsy"})
	assert.Equal(t, "#f", code)
	code, _ = em.TranslateExpression(&block.Block{KindName: "not"})
	assert.Equal(t, "#t", code)
}

func TestTranslateForm_Components(t *testing.T) {
	t.Parallel()
	var w warnings
	em := &Emitter{
		Registry: testRegistry(),
		Handler:  w.handler(),
		Metadata: block.NewDatabase(&block.ComponentType{
			Name:       "Slider",
			Properties: []block.Property{{Name: "ThumbPosition", Type: "number"}},
		}),
	}
	f := &block.File{
		Form: "Screen1",
		Components: []*block.Component{
			{Name: "Slider1", Type: "Slider", Properties: map[string]string{
				"ThumbPosition": "5)",
				"Bad Name":      "x",
				"Text":          "a\"b",
			}},
			{Name: "B(1", Type: "Button", Children: []*block.Component{{Name: "Label1", Type: "Label"}}},
			{Name: "Label2", Type: "Label"},
		},
	}
	code := em.TranslateForm(f)
	assert.True(t, yail.Balanced(nil, code), code)
	assert.Contains(t, code, "(set-and-coerce-property! 'Slider1 'ThumbPosition 0 'number)")
	assert.Contains(t, code, `(set-and-coerce-property! 'Slider1 'Text "a\"b" 'text)`)
	assert.NotContains(t, code, "Bad Name")
	assert.NotContains(t, code, "B(1")
	assert.NotContains(t, code, "Label1")
	assert.Contains(t, code, "(call-Initialize-of-components 'Screen1 'Slider1 'Label2)")

	require.Len(t, w.errs, 3)
	for _, err := range w.errs {
		assert.Equal(t, "Screen1", err.GetLocation().Form)
	}
	assert.ErrorIs(t, w.errs[0], reporter.ErrInvalidName)
	assert.Equal(t, "Slider1", w.errs[0].GetLocation().ID)
	assert.ErrorIs(t, w.errs[1], reporter.ErrInvalidNumber)
	assert.ErrorIs(t, w.errs[2], reporter.ErrInvalidName)
	assert.Equal(t, "B(1", w.errs[2].GetLocation().ID)
}
