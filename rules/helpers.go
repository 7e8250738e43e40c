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
	"github.com/bufbuild/blockcompile/yail"
)

func registerHelpers(r *emit.Registry) {
	r.RegisterFunc("helpers_dropdown", helpersDropdown)
	r.RegisterFunc("helpers_screen_names", quotedField("SCREEN"))
	r.RegisterFunc("helpers_assets", quotedField("ASSET"))
}

// helpersDropdown emits an option of an enumeration type. Packaged apps
// read the static field directly; the REPL resolves it reflectively since
// the enumeration class may not be loaded yet.
func helpersDropdown(c *emit.Context, n block.Node) emit.Result {
	key := n.Mutation("key")
	if !symbolic(c, n, key) {
		return invalid(c)
	}
	syn := c.Syntax()
	head := syn.StaticField
	if c.Profile().ForRepl {
		head = syn.GetStaticField
	}
	code := c.NewBuilder().
		Open(head).
		Arg(syn.EnumPackage + key).
		Text(n.Field("OPTION")).
		Close().
		String()
	return emit.Expr(code, emit.OrderAtomic)
}

func quotedField(field string) func(c *emit.Context, n block.Node) emit.Result {
	return func(c *emit.Context, n block.Node) emit.Result {
		return emit.Expr(yail.QuoteWith(c.Syntax(), n.Field(field)), emit.OrderAtomic)
	}
}
