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

// Package walk traverses block trees.
package walk

import (
	"errors"

	"github.com/bufbuild/blockcompile/block"
)

// ErrSkip may be returned by an enter function to skip the children of the
// block it was called for. The exit function is still called.
var ErrSkip = errors.New("walk: skip children")

// Blocks calls fn for each block in the given trees, depth first, parents
// before children. Children are found through [block.Container]; other
// nodes are visited as leaves. If fn returns a non-nil error other than
// [ErrSkip], the walk stops and returns it.
func Blocks(nodes []block.Node, fn func(block.Node) error) error {
	return BlocksEnterAndExit(nodes, fn, nil)
}

// BlocksEnterAndExit is like Blocks but also calls exit, if not nil, after
// all of a block's children have been visited.
func BlocksEnterAndExit(nodes []block.Node, enter, exit func(block.Node) error) error {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if err := node(n, enter, exit); err != nil {
			return err
		}
	}
	return nil
}

func node(n block.Node, enter, exit func(block.Node) error) error {
	err := enter(n)
	switch {
	case errors.Is(err, ErrSkip):
	case err != nil:
		return err
	default:
		if c, ok := n.(block.Container); ok {
			if err := BlocksEnterAndExit(c.Children(), enter, exit); err != nil {
				return err
			}
		}
	}
	if exit != nil {
		return exit(n)
	}
	return nil
}

// Count returns the number of blocks in the given trees.
func Count(nodes []block.Node) int {
	var count int
	_ = Blocks(nodes, func(block.Node) error {
		count++
		return nil
	})
	return count
}
