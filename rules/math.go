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
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/bufbuild/blockcompile/block"
	"github.com/bufbuild/blockcompile/emit"
	"github.com/bufbuild/blockcompile/reporter"
	"github.com/bufbuild/blockcompile/yail"
)

var (
	mathCompareOperators = operators{
		"EQ":  {prim: "yail-equal?", label: "=", order: emit.OrderNone, typ: typeAny},
		"NEQ": {prim: "yail-not-equal?", label: "≠", order: emit.OrderNone, typ: typeAny},
		"LT":  {prim: "<", label: "<", order: emit.OrderNone},
		"LTE": {prim: "<=", label: "≤", order: emit.OrderNone},
		"GT":  {prim: ">", label: ">", order: emit.OrderNone},
		"GTE": {prim: ">=", label: "≥", order: emit.OrderNone},
	}

	mathSingleOperators = operators{
		"ROOT":    {prim: "sqrt", label: "sqrt"},
		"ABS":     {prim: "abs", label: "absolute"},
		"NEG":     {prim: "-", label: "negate"},
		"LN":      {prim: "log", label: "log"},
		"EXP":     {prim: "exp", label: "e^"},
		"ROUND":   {prim: "yail-round", label: "round"},
		"CEILING": {prim: "yail-ceiling", label: "ceiling"},
		"FLOOR":   {prim: "yail-floor", label: "floor"},
	}

	mathDivideOperators = operators{
		"MODULO":    {prim: "modulo", label: "modulo"},
		"REMAINDER": {prim: "remainder", label: "remainder"},
		"QUOTIENT":  {prim: "quotient", label: "quotient"},
	}

	mathTrigOperators = operators{
		"SIN":  {prim: "sin-degrees", label: "sin"},
		"COS":  {prim: "cos-degrees", label: "cos"},
		"TAN":  {prim: "tan-degrees", label: "tan"},
		"ASIN": {prim: "asin-degrees", label: "asin"},
		"ACOS": {prim: "acos-degrees", label: "acos"},
		"ATAN": {prim: "atan-degrees", label: "atan"},
	}

	mathOnListOperators = operators{
		"MIN": {prim: "min", label: "min"},
		"MAX": {prim: "max", label: "max"},
	}

	mathAngleOperators = operators{
		"RADIANS_TO_DEGREES": {prim: "radians->degrees", label: "convert radians to degrees"},
		"DEGREES_TO_RADIANS": {prim: "degrees->radians", label: "convert degrees to radians"},
	}

	mathIsNumberOperators = operators{
		"NUMBER":      {prim: "is-number?", label: "is a number?", typ: typeAny},
		"BASE10":      {prim: "is-base10?", label: "is base 10?"},
		"HEXADECIMAL": {prim: "is-hexadecimal?", label: "is hexadecimal?"},
		"BINARY":      {prim: "is-binary?", label: "is binary?"},
	}

	mathConvertOperators = operators{
		"DEC_TO_HEX": {prim: "math-convert-dec-hex", label: "convert Dec to Hex"},
		"HEX_TO_DEC": {prim: "math-convert-hex-dec", label: "convert Hex to Dec"},
		"DEC_TO_BIN": {prim: "math-convert-dec-bin", label: "convert Dec to Bin"},
		"BIN_TO_DEC": {prim: "math-convert-bin-dec", label: "convert Bin to Dec"},
	}

	mathBitwiseOperators = operators{
		"BITAND": {prim: "bitwise-and", label: "bitwise and"},
		"BITIOR": {prim: "bitwise-ior", label: "bitwise or"},
		"BITXOR": {prim: "bitwise-xor", label: "bitwise xor"},
	}

	// Radix literal prefixes and the base of their digits.
	mathRadixes = map[string]radix{
		"DEC": {"", 10},
		"BIN": {"#b", 2},
		"OCT": {"#o", 8},
		"HEX": {"#x", 16},
	}
)

type radix struct {
	prefix string
	base   int
}

func registerMath(r *emit.Registry) {
	r.RegisterFunc("math_number", mathNumber)
	r.RegisterFunc("math_number_radix", mathNumberRadix)
	r.RegisterFunc("math_add", mathVariadic("+", "+"))
	r.RegisterFunc("math_multiply", mathVariadic("*", "*"))

	r.Register("math_compare", choice{
		field: "OP", ops: mathCompareOperators,
		args: []arg{{"A", typeNumber}, {"B", typeNumber}},
	})
	r.Register("math_single", choice{
		field: "OP", ops: mathSingleOperators,
		args: []arg{{"NUM", typeNumber}},
	})
	for _, kind := range []string{"math_abs", "math_neg", "math_round", "math_ceiling", "math_floor"} {
		r.Alias(kind, "math_single")
	}
	r.Register("math_divide", choice{
		field: "OP", ops: mathDivideOperators,
		args: []arg{{"DIVIDEND", typeNumber}, {"DIVISOR", typeNumber}},
	})
	r.Register("math_trig", choice{
		field: "OP", ops: mathTrigOperators,
		args: []arg{{"NUM", typeNumber}},
	})
	r.Alias("math_cos", "math_trig")
	r.Alias("math_tan", "math_trig")
	r.Register("math_on_list", choice{
		field: "OP", ops: mathOnListOperators,
		prefix: "NUM", typ: typeNumber,
	})
	r.Register("math_convert_angles", choice{
		field: "OP", ops: mathAngleOperators,
		args: []arg{{"NUM", typeNumber}},
	})
	r.Register("math_is_a_number", choice{
		field: "OP", ops: mathIsNumberOperators,
		args: []arg{{"NUM", typeText}},
	})
	r.Register("math_convert_number", choice{
		field: "OP", ops: mathConvertOperators,
		args: []arg{{"NUM", typeText}},
	})
	r.Register("math_bitwise", choice{
		field: "OP", ops: mathBitwiseOperators,
		prefix: "NUM", typ: typeNumber,
	})

	registerPrimitives(r, []primitive{
		{kind: "math_subtract", prim: "-", label: "-", args: []arg{{"A", typeNumber}, {"B", typeNumber}}},
		{kind: "math_division", prim: "yail-divide", label: "/", args: []arg{{"A", typeNumber}, {"B", typeNumber}}},
		{kind: "math_power", prim: "expt", label: "^", args: []arg{{"A", typeNumber}, {"B", typeNumber}}},
		{kind: "math_random_int", prim: "random-integer", label: "random integer", args: []arg{{"FROM", typeNumber}, {"TO", typeNumber}}},
		{kind: "math_random_float", prim: "random-fraction", label: "random fraction"},
		{kind: "math_random_set_seed", prim: "random-set-seed", label: "random set seed", args: []arg{{"NUM", typeNumber}}, stmt: true},
		{kind: "math_atan2", prim: "atan2-degrees", label: "atan2", args: []arg{{"Y", typeNumber}, {"X", typeNumber}}},
		{kind: "math_format_as_decimal", prim: "format-as-decimal", label: "format as decimal", args: []arg{{"NUM", typeNumber}, {"PLACES", typeNumber}}},
	})
}

// mathNumber emits a numeric literal. Hexadecimal and binary literals
// written with a 0x or 0b prefix are normalized to decimal. Anything else
// that is not a decimal number is reported and replaced by 0.
func mathNumber(c *emit.Context, n block.Node) emit.Result {
	num := strings.TrimSpace(n.Field("NUM"))
	if num == "" {
		return emit.Expr("0", emit.OrderAtomic)
	}
	lower := strings.ToLower(num)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0b") {
		if v, err := strconv.ParseInt(lower, 0, 64); err == nil {
			num = strconv.FormatInt(v, 10)
		}
	}
	if !yail.IsNumber(num) {
		c.Warn(n, fmt.Errorf("%w: %q", reporter.ErrInvalidNumber, num))
		num = "0"
	}
	return emit.Expr(num, emit.OrderAtomic)
}

// mathNumberRadix emits a literal in the base chosen by OP, e.g. #xFF.
func mathNumberRadix(c *emit.Context, n block.Node) emit.Result {
	op := n.Field("OP")
	rdx, ok := mathRadixes[op]
	if !ok {
		c.Warn(n, fmt.Errorf("unknown OP choice %q", op))
		rdx = mathRadixes["DEC"]
	}
	num := strings.TrimSpace(n.Field("NUM"))
	if num == "" {
		num = "0"
	}
	if _, ok := new(big.Int).SetString(num, rdx.base); !ok {
		c.Warn(n, fmt.Errorf("%w: %q in base %d", reporter.ErrInvalidNumber, num, rdx.base))
		num = "0"
	}
	return emit.Expr(rdx.prefix+num, emit.OrderAtomic)
}

// mathVariadic emits an arithmetic primitive over every declared operand
// socket, NUM0 .. NUM(items-1), with one type tag per operand.
func mathVariadic(prim, label string) func(c *emit.Context, n block.Node) emit.Result {
	return func(c *emit.Context, n block.Node) emit.Result {
		args, types := variadic(c, n, "NUM", typeNumber)
		return emit.Expr(c.Primitive(prim, args, types, label), emit.OrderNone)
	}
}
