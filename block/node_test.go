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

package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlock_NilChildren(t *testing.T) {
	t.Parallel()
	b := &Block{
		KindName: "lists_create_with",
		Inputs:   map[string]*Block{"ADD0": nil, "ADD1": {KindName: "text"}},
		Slots:    map[string][]*Block{"DO": {nil, {KindName: "controls_break"}}},
	}
	// an empty socket must compare equal to a nil interface
	assert.True(t, b.Input("ADD0") == nil)
	assert.True(t, b.Input("MISSING") == nil)
	assert.Equal(t, "text", b.Input("ADD1").Kind())
	assert.Len(t, b.Statements("DO"), 1)
	assert.Nil(t, b.Statements("ELSE"))

	kinds := make([]string, 0)
	for _, child := range b.Children() {
		kinds = append(kinds, child.Kind())
	}
	assert.Equal(t, []string{"text", "controls_break"}, kinds)
}

func TestInputs(t *testing.T) {
	t.Parallel()
	b := &Block{Inputs: map[string]*Block{"NUM0": {KindName: "a"}, "NUM2": {KindName: "c"}}}
	nodes := Inputs(b, "NUM", 3)
	assert.Len(t, nodes, 3)
	assert.Equal(t, "a", nodes[0].Kind())
	assert.Nil(t, nodes[1])
	assert.Equal(t, "c", nodes[2].Kind())
	assert.Empty(t, Inputs(b, "NUM", 0))
}

func TestIsGeneric(t *testing.T) {
	t.Parallel()
	assert.True(t, IsGeneric(&Block{Mutations: map[string]string{"is_generic": "true"}}))
	assert.False(t, IsGeneric(&Block{Mutations: map[string]string{"is_generic": "false"}}))
	assert.False(t, IsGeneric(&Block{}))
}

func TestOverlay(t *testing.T) {
	t.Parallel()
	base := NewDatabase(&ComponentType{
		Name:       "Button",
		Properties: []Property{{Name: "Text", Type: "text"}},
	})
	top := NewDatabase(&ComponentType{
		Name:       "Button",
		ClassName:  "com.example.FancyButton",
		Properties: []Property{{Name: "Glow", Type: "boolean"}},
	})
	md := Overlay(top, base)
	assert.Equal(t, "com.example.FancyButton", md.Class("Button"))
	assert.Equal(t, DefaultClassPrefix+"Label", md.Class("Label"))

	p, ok := md.Property("Button", "Text")
	assert.True(t, ok)
	assert.Equal(t, "text", p.Type)
	p, ok = md.Property("Button", "Glow")
	assert.True(t, ok)
	assert.Equal(t, "boolean", p.Type)
	_, ok = md.Event("Button", "Click")
	assert.False(t, ok)

	assert.Equal(t, top, Overlay(top, nil))
}
