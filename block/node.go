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

// Package block models the visual program that the emitter translates.
//
// The emitter only ever sees a block through the read-only [Node] interface,
// so any editor can act as host. [Block] is the in-memory implementation
// used by the file decoder, the tests and the command line tool.
package block

import (
	"slices"
	"strconv"
)

// Node is the read-only view of a block that translation rules consume.
type Node interface {
	// Kind selects the translation rule, e.g. "math_add".
	Kind() string
	// ID identifies the block in diagnostics. It may be empty.
	ID() string
	// Field returns the value of the named field, or "" if absent.
	Field(name string) string
	// Input returns the block plugged into the named value socket, or nil
	// if the socket is empty.
	Input(name string) Node
	// Statements returns the blocks stacked in the named statement slot.
	Statements(name string) []Node
	// Vars returns the declared variable or parameter names, in order.
	Vars() []string
	// Count returns an auxiliary count such as "items" or "elseif".
	Count(name string) int
	// Mutation returns auxiliary state that is not a field, such as
	// "is_generic" or "component_type".
	Mutation(name string) string
	// Comment returns the user's comment on the block.
	Comment() string
	// Disabled reports whether the block was switched off in the editor.
	Disabled() bool
}

// Well-known auxiliary count names.
const (
	CountItems  = "items"
	CountElseIf = "elseif"
	CountElse   = "else"
)

// Block is a concrete, immutable-after-construction [Node].
type Block struct {
	KindName   string              `yaml:"kind"`
	BlockID    string              `yaml:"id,omitempty"`
	Fields     map[string]string   `yaml:"fields,omitempty"`
	Inputs     map[string]*Block   `yaml:"inputs,omitempty"`
	Slots      map[string][]*Block `yaml:"statements,omitempty"`
	Variables  []string            `yaml:"vars,omitempty"`
	Counts     map[string]int      `yaml:"counts,omitempty"`
	Mutations  map[string]string   `yaml:"mutation,omitempty"`
	Text       string              `yaml:"comment,omitempty"`
	IsDisabled bool                `yaml:"disabled,omitempty"`
}

var _ Node = (*Block)(nil)

func (b *Block) Kind() string { return b.KindName }
func (b *Block) ID() string   { return b.BlockID }

func (b *Block) Field(name string) string {
	return b.Fields[name]
}

func (b *Block) Input(name string) Node {
	child := b.Inputs[name]
	if child == nil {
		// Avoid returning a typed nil inside the interface.
		return nil
	}
	return child
}

func (b *Block) Statements(name string) []Node {
	children := b.Slots[name]
	if len(children) == 0 {
		return nil
	}
	nodes := make([]Node, 0, len(children))
	for _, child := range children {
		if child != nil {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

func (b *Block) Vars() []string {
	return b.Variables
}

func (b *Block) Count(name string) int {
	return b.Counts[name]
}

func (b *Block) Mutation(name string) string {
	return b.Mutations[name]
}

func (b *Block) Comment() string { return b.Text }
func (b *Block) Disabled() bool  { return b.IsDisabled }

// Container is implemented by nodes that can enumerate their children,
// which lets them be walked without knowing their socket names.
type Container interface {
	Node
	// Children returns the socket children ordered by socket name, then
	// the statement children ordered by slot name and position.
	Children() []Node
}

var _ Container = (*Block)(nil)

func (b *Block) Children() []Node {
	var nodes []Node
	for _, name := range sortedKeys(b.Inputs) {
		if child := b.Inputs[name]; child != nil {
			nodes = append(nodes, child)
		}
	}
	for _, name := range sortedKeys(b.Slots) {
		nodes = append(nodes, b.Statements(name)...)
	}
	return nodes
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// IsGeneric reports whether n is the generic variant of a component block,
// i.e. it targets a component given by an expression instead of a named
// instance.
func IsGeneric(n Node) bool {
	v, err := strconv.ParseBool(n.Mutation("is_generic"))
	return err == nil && v
}

// Inputs returns the children of the numbered sockets prefix0 ..
// prefix(count-1). Empty sockets are reported as nil entries.
func Inputs(n Node, prefix string, count int) []Node {
	nodes := make([]Node, count)
	for i := range nodes {
		nodes[i] = n.Input(prefix + strconv.Itoa(i))
	}
	return nodes
}
