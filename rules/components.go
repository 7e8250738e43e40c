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
	"errors"
	"slices"

	"github.com/bufbuild/blockcompile/block"
	"github.com/bufbuild/blockcompile/emit"
)

// Mutation keys carried by component blocks.
const (
	mutationType     = "component_type"
	mutationEvent    = "event_name"
	mutationMethod   = "method_name"
	mutationProperty = "property_name"
	mutationSetGet   = "set_or_get"
)

// Parameters every generic event handler receives before the event's own.
var genericEventParams = []string{"component", "notAlreadyHandled"}

var errNoMethodName = errors.New("method block has no method name")

func registerComponents(r *emit.Registry) {
	r.RegisterFunc("component_event", componentEvent)
	r.RegisterFunc("component_set_get", componentSetGet)
	r.RegisterFunc("component_method", componentMethod)
	r.RegisterFunc("component_component_block", componentBlock)
	r.RegisterFunc("component_all_component_block", allComponentsBlock)
}

// componentEvent emits an event handler. The instance form names the
// component; the generic form names the type and receives the component
// as a parameter:
//
//	(define-event Button1 Click ($x) (set-this-form) BODY)
//	(define-generic-event Button Click ($component $notAlreadyHandled $x) (set-this-form) BODY)
func componentEvent(c *emit.Context, n block.Node) emit.Result {
	syn := c.Syntax()
	typeName := n.Mutation(mutationType)
	eventName := n.Mutation(mutationEvent)
	selector := n.Field("COMPONENT_SELECTOR")
	if !symbolic(c, n, append([]string{selector, typeName, eventName}, n.Vars()...)...) {
		return invalid(c)
	}

	params := slices.Clone(n.Vars())
	if len(params) == 0 {
		if ev, ok := c.Metadata().Event(typeName, eventName); ok {
			for _, p := range ev.Params {
				params = append(params, p.Name)
			}
		}
	}

	b := c.NewBuilder()
	if block.IsGeneric(n) {
		b.Open(syn.DefineGeneric).Arg(typeName)
		params = append(slices.Clone(genericEventParams), params...)
	} else {
		b.Open(syn.DefineEvent).Arg(selector)
	}
	b.Arg(eventName).Open("")
	for _, p := range params {
		b.Arg(localName(c, p))
	}
	b.Close().
		Open(syn.SetThisForm).Close().
		Arg(c.Stmts(n, "DO", syn.False)).
		Close()
	return emit.Stmt(b.String())
}

// componentSetGet emits a property getter or setter. The generic variant
// takes its target from the COMPONENT socket and names the component type
// where the instance variant names the instance.
func componentSetGet(c *emit.Context, n block.Node) emit.Result {
	syn := c.Syntax()
	typeName := n.Mutation(mutationType)
	propName := n.Field("PROP")
	if propName == "" {
		propName = n.Mutation(mutationProperty)
	}
	selector := n.Field("COMPONENT_SELECTOR")
	if !symbolic(c, n, selector, typeName, propName) {
		return invalid(c)
	}
	generic := block.IsGeneric(n)

	b := c.NewBuilder()
	if n.Mutation(mutationSetGet) != "set" {
		if generic {
			b.Open(syn.GetTypeProperty).
				Arg(c.Expr(n, "COMPONENT", syn.False)).
				Symbol(typeName)
		} else {
			b.Open(syn.GetProperty).
				Symbol(selector)
		}
		b.Symbol(propName).Close()
		return emit.Expr(b.String(), emit.OrderAtomic)
	}

	coerce := typeAny
	if prop, ok := c.Metadata().Property(typeName, propName); ok && prop.Type != "" && symbolic(c, n, prop.Type) {
		coerce = prop.Type
	}
	if generic {
		b.Open(syn.SetTypeProperty).
			Arg(c.Expr(n, "COMPONENT", syn.False)).
			Symbol(typeName)
	} else {
		b.Open(syn.SetProperty).
			Symbol(selector)
	}
	b.Symbol(propName).
		Arg(c.Expr(n, "VALUE", syn.False)).
		Symbol(coerce).
		Close()
	return emit.Stmt(b.String())
}

// componentMethod emits a method call:
//
//	(call-component-method 'Button1 'M (*list-for-runtime* ARGS...) '(TYPES...))
//	(call-component-type-method COMP 'Button 'M (*list-for-runtime* ARGS...) '(TYPES...))
//
// Argument count and types come from the component metadata. Without
// metadata the block's item count is used and every argument is "any".
func componentMethod(c *emit.Context, n block.Node) emit.Result {
	syn := c.Syntax()
	typeName := n.Mutation(mutationType)
	methodName := n.Mutation(mutationMethod)
	selector := n.Field("COMPONENT_SELECTOR")
	if !symbolic(c, n, selector, typeName, methodName) {
		return invalid(c)
	}
	if methodName == "" {
		c.Warn(n, errNoMethodName)
	}

	var types []string
	method, known := c.Metadata().Method(typeName, methodName)
	if known {
		for _, p := range method.Params {
			typ := p.Type
			if !symbolic(c, n, typ) {
				typ = typeAny
			}
			types = append(types, typ)
		}
	} else {
		types = emit.Repeat(typeAny, n.Count(block.CountItems))
	}
	args := make([]string, len(types))
	for i, child := range block.Inputs(n, "ARG", len(types)) {
		args[i] = c.Value(child, fallback(c, types[i]))
	}

	b := c.NewBuilder()
	if block.IsGeneric(n) {
		b.Open(syn.CallComponentTypeMethod).
			Arg(c.Expr(n, "COMPONENT", syn.False)).
			Symbol(typeName)
	} else {
		b.Open(syn.CallComponentMethod).
			Symbol(selector)
	}
	b.Symbol(methodName).
		Open(syn.ListConstructor).Args(args...).Close().
		OpenQuoted().Args(types...).Close().
		Close()

	if known && method.HasReturn() {
		return emit.Expr(b.String(), emit.OrderAtomic)
	}
	return emit.Stmt(b.String())
}

func componentBlock(c *emit.Context, n block.Node) emit.Result {
	selector := n.Field("COMPONENT_SELECTOR")
	if !symbolic(c, n, selector) {
		return invalid(c)
	}
	code := c.NewBuilder().
		Open(c.Syntax().GetComponent).
		Arg(selector).
		Close().
		String()
	return emit.Expr(code, emit.OrderAtomic)
}

func allComponentsBlock(c *emit.Context, n block.Node) emit.Result {
	typeName := n.Mutation(mutationType)
	if !symbolic(c, n, typeName) {
		return invalid(c)
	}
	code := c.NewBuilder().
		Open(c.Syntax().GetAll).
		Arg(typeName).
		Close().
		String()
	return emit.Expr(code, emit.OrderAtomic)
}
