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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFile = `
version: 1.2.0
form: Screen1
components:
  - name: Button1
    type: Button
    properties: {Text: Press, FontSize: "14"}
metadata:
  - type: Button
    properties:
      - {name: FontSize, type: number}
blocks:
  - kind: controls_if
    counts: {elseif: 0, else: 1}
    inputs:
      IF0: {kind: logic_boolean, fields: {BOOL: "TRUE"}}
    statements:
      DO0:
        - kind: global_declaration
          fields: {NAME: x}
      ELSE:
        - kind: controls_break
          id: brk
  - kind: logic_null
    disabled: true
    comment: unused
`

func TestDecode(t *testing.T) {
	t.Parallel()
	f, err := Decode(strings.NewReader(sampleFile))
	require.NoError(t, err)

	assert.Equal(t, "Screen1", f.Form)
	require.Len(t, f.Blocks, 2)

	want := &Block{
		KindName: "controls_if",
		BlockID:  "0",
		Counts:   map[string]int{CountElseIf: 0, CountElse: 1},
		Inputs: map[string]*Block{
			"IF0": {KindName: "logic_boolean", BlockID: "0/IF0", Fields: map[string]string{"BOOL": "TRUE"}},
		},
		Slots: map[string][]*Block{
			"DO0":  {{KindName: "global_declaration", BlockID: "0/DO0/0", Fields: map[string]string{"NAME": "x"}}},
			"ELSE": {{KindName: "controls_break", BlockID: "brk"}},
		},
	}
	if diff := cmp.Diff(want, f.Blocks[0]); diff != "" {
		t.Errorf("decoded block mismatch (-want +got):\n%s", diff)
	}

	second := f.Blocks[1]
	assert.True(t, second.Disabled())
	assert.Equal(t, "unused", second.Comment())

	assert.Equal(t, []string{"FontSize", "Text"}, f.Components[0].PropertyNames())
	prop, ok := f.Database().Property("Button", "FontSize")
	require.True(t, ok)
	assert.Equal(t, "number", prop.Type)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()
	testCases := map[string]string{
		"empty":         "",
		"no form":       "blocks: []",
		"unknown field": "form: A\nbogus: 1",
		"missing kind":  "form: A\nblocks:\n  - id: x",
		"nested kind":   "form: A\nblocks:\n  - kind: a\n    inputs:\n      X: {fields: {A: b}}",
		"null entry":    "form: A\nblocks:\n  - ~",
		"bad form":      "form: \"Screen(1\"",
		"spaced form":   "form: My Screen",
		"bad package":   "form: A\npackage: \"a;b\"",
	}
	for name, src := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(strings.NewReader(src))
			require.Error(t, err)
		})
	}
	_, err := Decode(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmptyFile)
}

func TestCheckVersion(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		version string
		ok      bool
	}{
		{"", true},
		{"1.0.0", true},
		{"1.9.3", true},
		{"2.0.0", false},
		{"0.9.0", false},
		{"not-a-version", false},
	}
	for _, tc := range testCases {
		f := &File{Form: "Screen1", Version: tc.version}
		err := f.CheckVersion(SupportedVersions)
		if tc.ok {
			assert.NoError(t, err, tc.version)
		} else {
			assert.Error(t, err, tc.version)
		}
	}
	f := &File{Form: "Screen1", Version: "1.0.0"}
	require.Error(t, f.CheckVersion("not a constraint"))
}

func TestDecodeMetadata(t *testing.T) {
	t.Parallel()
	db, err := DecodeMetadata(strings.NewReader(`
- type: Sound
  class: com.example.Sound
  methods:
    - name: Play
    - name: Duration
      returns: number
`))
	require.NoError(t, err)
	assert.Equal(t, "com.example.Sound", db.Class("Sound"))
	m, ok := db.Method("Sound", "Duration")
	require.True(t, ok)
	assert.True(t, m.HasReturn())
	m, ok = db.Method("Sound", "Play")
	require.True(t, ok)
	assert.False(t, m.HasReturn())

	empty, err := DecodeMetadata(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
