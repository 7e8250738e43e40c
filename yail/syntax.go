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

// Package yail holds the concrete syntax of the Yail language: the table of
// delimiters, markers and runtime names that the emitter assembles text from,
// a delimiter-balanced [Builder], and string quoting.
//
// Nothing in the emitter hard-codes a delimiter. Retargeting another
// S-expression dialect means supplying a different [Syntax].
package yail

// Syntax is the constant table of tokens used when assembling Yail text.
//
// Fields named after a form hold the bare head symbol of that form; the
// [Builder] supplies the surrounding combination markers.
type Syntax struct {
	OpenCombination  string
	CloseCombination string
	Spacer           string
	Quote            string
	DoubleQuote      string
	LineFeed         string
	CommentStart     string
	CommentMajor     string
	Escape           string
	EmptySymbol      string

	True         string
	False        string
	Null         string
	MakeList     string
	MakeDict     string
	ConstantAll  string
	NotFound     string
	Ignored      string
	Undefined    string
	BreakMarker  string
	RuntimeClass string

	ListConstructor string
	CallPrimitive   string

	Begin         string
	If            string
	While         string
	ForEach       string
	ForRange      string
	Let           string
	Def           string
	DefineEvent   string
	DefineGeneric string
	DefineForm    string
	Require       string
	AddComponent  string
	InitRuntime   string
	InitComponent string
	SetThisForm   string
	AndDelayed    string
	OrDelayed     string

	GetVar         string
	SetVar         string
	LexicalValue   string
	SetLexical     string
	GlobalPrefix   string
	LocalPrefix    string
	ProcPrefix     string
	GetComponent   string
	GetAll         string
	StaticField    string
	GetStaticField string
	EnumPackage    string

	GetProperty             string
	GetTypeProperty         string
	SetProperty             string
	SetTypeProperty         string
	CallComponentMethod     string
	CallComponentTypeMethod string
}

// Default is the Yail syntax understood by the App Inventor runtime.
var Default = &Syntax{
	OpenCombination:  "(",
	CloseCombination: ")",
	Spacer:           " ",
	Quote:            "'",
	DoubleQuote:      `"`,
	LineFeed:         "\n",
	CommentStart:     ";",
	CommentMajor:     ";;; ",
	Escape:           `\`,
	EmptySymbol:      "||",

	True:         "#t",
	False:        "#f",
	Null:         "*the-null-value*",
	MakeList:     "make-yail-list",
	MakeDict:     "make-yail-dictionary",
	ConstantAll:  "ALL",
	NotFound:     "not found",
	Ignored:      "ignored",
	Undefined:    "This block is not defined",
	BreakMarker:  "*yail-break*",
	RuntimeClass: "com.google.youngandroid.runtime",

	ListConstructor: "*list-for-runtime*",
	CallPrimitive:   "call-yail-primitive",

	Begin:         "begin",
	If:            "if",
	While:         "while",
	ForEach:       "foreach",
	ForRange:      "forrange",
	Let:           "let",
	Def:           "def",
	DefineEvent:   "define-event",
	DefineGeneric: "define-generic-event",
	DefineForm:    "define-form",
	Require:       "require",
	AddComponent:  "add-component",
	InitRuntime:   "init-runtime",
	InitComponent: "call-Initialize-of-components",
	SetThisForm:   "set-this-form",
	AndDelayed:    "and-delayed",
	OrDelayed:     "or-delayed",

	GetVar:         "get-var",
	SetVar:         "set-var!",
	LexicalValue:   "lexical-value",
	SetLexical:     "set-lexical!",
	GlobalPrefix:   "g$",
	LocalPrefix:    "$",
	ProcPrefix:     "p$",
	GetComponent:   "get-component",
	GetAll:         "get-all-components",
	StaticField:    "static-field",
	GetStaticField: "get-static-field",
	EnumPackage:    "com.google.appinventor.components.common.",

	GetProperty:             "get-property",
	GetTypeProperty:         "get-property-and-check",
	SetProperty:             "set-and-coerce-property!",
	SetTypeProperty:         "set-and-coerce-property-and-check!",
	CallComponentMethod:     "call-component-method",
	CallComponentTypeMethod: "call-component-type-method",
}
