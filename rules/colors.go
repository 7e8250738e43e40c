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
	"fmt"
	"strconv"
	"strings"

	"github.com/bufbuild/blockcompile/block"
	"github.com/bufbuild/blockcompile/emit"
)

var errBadColor = errors.New("malformed color")

// colorBlack is the ARGB value substituted for a malformed color.
const colorBlack = "FF000000"

var colorKinds = []string{
	"color_white", "color_red", "color_pink", "color_orange", "color_yellow",
	"color_green", "color_cyan", "color_blue", "color_magenta",
	"color_light_gray", "color_gray", "color_dark_gray",
}

func registerColors(r *emit.Registry) {
	r.RegisterFunc("color_black", colorConstant)
	for _, kind := range colorKinds {
		r.Alias(kind, "color_black")
	}
	registerPrimitives(r, []primitive{
		{kind: "color_make_color", prim: "make-color", label: "make-color", args: []arg{{"COLORLIST", typeList}}},
		{kind: "color_split_color", prim: "split-color", label: "split-color", args: []arg{{"COLOR", typeNumber}}},
	})
}

// colorConstant turns a #RRGGBB field into an opaque ARGB hex literal,
// e.g. #FF0000 becomes #xFFFF0000. A value that already carries alpha
// (#AARRGGBB) is kept as is. Anything else is reported and emitted as
// opaque black.
func colorConstant(c *emit.Context, n block.Node) emit.Result {
	hex := strings.ToUpper(strings.TrimPrefix(n.Field("COLOR"), "#"))
	if len(hex) == 6 {
		hex = "FF" + hex
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil || len(hex) != 8 {
		c.Warn(n, fmt.Errorf("%w: %q", errBadColor, n.Field("COLOR")))
		hex = colorBlack
	}
	return emit.Expr("#x"+hex, emit.OrderAtomic)
}
