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

	"github.com/tidwall/btree"

	"github.com/bufbuild/blockcompile/block"
)

// Rule translates one kind of block.
//
// A rule reads its own node's fields and reaches children only through
// the [Context]; it never inspects grandchildren directly.
type Rule interface {
	Translate(c *Context, n block.Node) Result
}

// RuleFunc adapts a function to the [Rule] interface.
type RuleFunc func(c *Context, n block.Node) Result

func (f RuleFunc) Translate(c *Context, n block.Node) Result {
	return f(c, n)
}

// Registry maps block kinds to rules.
//
// A zero Registry is ready to use. Registration is not synchronized; fill
// the registry before handing it to concurrent translations.
type Registry struct {
	entries btree.Map[string, entry]
}

// entry is either a rule or, for an alias, the kind it stands for.
type entry struct {
	rule      Rule
	canonical string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a rule for kind, replacing any previous rule or alias.
func (r *Registry) Register(kind string, rule Rule) {
	r.entries.Set(kind, entry{rule: rule})
}

// RegisterFunc is shorthand for Register(kind, RuleFunc(fn)).
func (r *Registry) RegisterFunc(kind string, fn func(c *Context, n block.Node) Result) {
	r.Register(kind, RuleFunc(fn))
}

// Alias makes kind translate exactly like canonical, including after
// canonical's rule is replaced. The canonical kind must already be
// registered, and the alias must not lead back to kind.
func (r *Registry) Alias(kind, canonical string) {
	if _, ok := r.entries.Get(canonical); !ok {
		panic(fmt.Sprintf("emit: alias %q for unregistered kind %q", kind, canonical))
	}
	for next := canonical; next != ""; {
		if next == kind {
			panic(fmt.Sprintf("emit: alias %q for %q is circular", kind, canonical))
		}
		e, _ := r.entries.Get(next)
		next = e.canonical
	}
	r.entries.Set(kind, entry{canonical: canonical})
}

// Lookup returns the rule registered for kind, following aliases.
func (r *Registry) Lookup(kind string) (Rule, bool) {
	for {
		e, ok := r.entries.Get(kind)
		if !ok {
			return nil, false
		}
		if e.canonical == "" {
			return e.rule, true
		}
		kind = e.canonical
	}
}

// Kinds returns every registered kind, aliases included, in sorted order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, r.entries.Len())
	r.entries.Scan(func(kind string, _ entry) bool {
		kinds = append(kinds, kind)
		return true
	})
	return kinds
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int {
	return r.entries.Len()
}

// Clone returns a copy of r that can be extended without affecting r.
// Aliases in the copy follow the copy's rules.
func (r *Registry) Clone() *Registry {
	clone := &Registry{}
	r.entries.Scan(func(kind string, e entry) bool {
		clone.entries.Set(kind, e)
		return true
	})
	return clone
}
