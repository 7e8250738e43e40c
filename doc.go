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

// Package blockcompile provides the entry point for compiling visual block
// programs into Yail, the S-expression language run by the App Inventor
// runtime. "Compile" in this case means decoding block files, checking
// them, and translating each form into one complete program text.
//
// The various sub-packages represent the pieces of that pipeline:
//  1. Model the block tree and component metadata.
//     Also see: block.Node, block.Decode
//  2. Translate blocks with a table of per-kind rules.
//     Also see: emit.Emitter, rules.Default
//  3. Assemble text in the concrete syntax of the target.
//     Also see: yail.Syntax, yail.Builder
//
// Translation never halts on a malformed block. A block whose kind has no
// rule becomes a fixed placeholder combination, so the rest of the program
// is still well formed, and a warning is sent to the configured
// reporter.Reporter.
//
// # Resolvers
//
// A Resolver is how the compiler locates block files. It can answer a
// query with YAML source, which the compiler decodes, or with an already
// decoded block.File.
//
// # Compiler
//
// A Compiler accepts a list of file names and produces one Program per
// name. Only the Resolver field is required. A minimal Compiler, that
// loads files from the file system relative to the current working
// directory, can be had with the following simple snippet:
//
//	compiler := blockcompile.Compiler{
//	    Resolver: &blockcompile.SourceResolver{},
//	}
//
// This minimal Compiler will use default parallelism, equal to the number
// of CPU cores detected; it will use every built-in rule; and it will fail
// only on errors, ignoring placeholder warnings.
package blockcompile
