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

package yail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSymbol(t *testing.T) {
	t.Parallel()
	testCases := map[string]bool{
		"Button1":                     true,
		"set-and-coerce-property!":    true,
		"appinventor.ai_user.project": true,
		"$x":                          true,
		"":                            false,
		"||":                          false,
		"B(1":                         false,
		"B)":                          false,
		"my var":                      false,
		"tab\tbed":                    false,
		"it's":                        false,
		`say"`:                        false,
		"a;b":                         false,
		`a\b`:                         false,
		"a|b":                         false,
		"bell\a":                      false,
	}
	for name, want := range testCases {
		assert.Equal(t, want, IsSymbol(nil, name), "%q", name)
	}

	syn := *Default
	syn.CommentStart = "#|"
	assert.True(t, IsSymbol(&syn, "a;b"))
	assert.False(t, IsSymbol(&syn, "a#|b"))
}

func TestIsNumber(t *testing.T) {
	t.Parallel()
	testCases := map[string]bool{
		"0":        true,
		"-7":       true,
		"+3.5":     true,
		".5":       true,
		"1e10":     true,
		"6.02E-23": true,
		"":         false,
		"1)":       false,
		"(1":       false,
		"Inf":      false,
		"NaN":      false,
		"0x1p-2":   false,
		"1_000":    false,
		"1 2":      false,
		"--1":      false,
	}
	for s, want := range testCases {
		assert.Equal(t, want, IsNumber(s), "%q", s)
	}
}
