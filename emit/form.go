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

// TranslateForm emits the complete program for one form: the form
// definition, its designer components, every enabled top-level block, and
// the runtime initialization. Each top-level form ends with a line feed.
//
// When the profile targets the REPL only the top-level blocks are emitted.
func (e *Emitter) TranslateForm(f *block.File) string {
	c := e.newContext(f.Form)
	syn := c.syn
	b := yail.NewBuilder(syn)

	if !e.Profile.ForRepl {
		if f.Comment != "" {
			b.Raw(yail.Comment(syn, f.Comment, yail.MaxCommentWidth))
		}
		b.Open(syn.DefineForm).Arg(e.packageName(f) + "." + f.Form).Arg(f.Form).Close().Line()
		b.Open(syn.Require).Arg("<" + syn.RuntimeClass + ">").Close().Line()
		for _, comp := range f.Components {
			c.addComponent(b, f.Form, comp)
		}
	}

	for _, n := range f.Nodes() {
		if n.Disabled() {
			continue
		}
		if comment := n.Comment(); comment != "" {
			b.Raw(yail.Comment(syn, comment, yail.MaxCommentWidth))
		}
		b.Arg(c.translate(n).Code).Line()
	}

	if !e.Profile.ForRepl {
		b.Open(syn.InitRuntime).Close().Line()
		b.Open(syn.InitComponent).Symbol(f.Form)
		for _, name := range c.componentNames(f.Components) {
			b.Symbol(name)
		}
		b.Close().Line()
	}
	return b.String()
}

func (e *Emitter) packageName(f *block.File) string {
	switch {
	case f.Package != "":
		return f.Package
	case e.Profile.PackageName != "":
		return e.Profile.PackageName
	default:
		return DefaultPackage
	}
}

// addComponent writes the add-component form for comp and, after it, the
// forms of its children. A component whose name or type cannot be written
// as a symbol is reported and left out together with its children.
func (c *Context) addComponent(b *yail.Builder, parent string, comp *block.Component) {
	syn := c.syn
	class := c.md.Class(comp.Type)
	for _, name := range []string{comp.Name, comp.Type, class} {
		if !yail.IsSymbol(syn, name) {
			c.warnComponent(comp, fmt.Errorf("%w: %q", reporter.ErrInvalidName, name))
			return
		}
	}

	b.Raw(syn.CommentMajor + comp.Name).Line()
	b.Open(syn.AddComponent).
		Arg(parent).
		Arg(class).
		Arg(comp.Name)
	for _, name := range comp.PropertyNames() {
		if !yail.IsSymbol(syn, name) {
			c.warnComponent(comp, fmt.Errorf("%w: property %q", reporter.ErrInvalidName, name))
			continue
		}
		prop, ok := c.md.Property(comp.Type, name)
		if !ok || !yail.IsSymbol(syn, prop.Type) {
			prop = block.Property{Name: name, Type: "text"}
		}
		b.Open(syn.SetProperty).
			Symbol(comp.Name).
			Symbol(name).
			Arg(c.designerValue(comp, prop.Type, comp.Properties[name])).
			Symbol(prop.Type).
			Close()
	}
	b.Close().Line()

	for _, child := range comp.Children {
		c.addComponent(b, comp.Name, child)
	}
}

// designerValue renders a designer property value for its coercion type.
func (c *Context) designerValue(comp *block.Component, typ, value string) string {
	switch typ {
	case "number":
		value = strings.TrimSpace(value)
		if value == "" {
			return "0"
		}
		if !yail.IsNumber(value) {
			c.warnComponent(comp, fmt.Errorf("%w: %q", reporter.ErrInvalidNumber, value))
			return "0"
		}
		return value
	case "boolean":
		return c.Bool(strings.EqualFold(value, "true"))
	default:
		return yail.QuoteWith(c.syn, value)
	}
}

func (c *Context) warnComponent(comp *block.Component, err error) {
	c.e.warn(reporter.Location{
		Form: c.form,
		ID:   yail.Truncate(comp.Name, maxKindWidth),
		Kind: yail.Truncate(comp.Type, maxKindWidth),
	}, err)
}

// componentNames lists the components that addComponent writes out, in
// the same order.
func (c *Context) componentNames(comps []*block.Component) []string {
	var names []string
	for _, comp := range comps {
		if !yail.IsSymbol(c.syn, comp.Name) || !yail.IsSymbol(c.syn, comp.Type) || !yail.IsSymbol(c.syn, c.md.Class(comp.Type)) {
			continue
		}
		names = append(names, comp.Name)
		names = append(names, c.componentNames(comp.Children)...)
	}
	return names
}
