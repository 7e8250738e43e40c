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

	"github.com/bufbuild/blockcompile/block"
	"github.com/bufbuild/blockcompile/emit"
	"github.com/bufbuild/blockcompile/reporter"
	"github.com/bufbuild/blockcompile/yail"
)

// symbolic reports whether every non-empty name can be written as a bare
// symbol. The first name that cannot is reported on n.
func symbolic(c *emit.Context, n block.Node, names ...string) bool {
	for _, name := range names {
		if name != "" && !yail.IsSymbol(c.Syntax(), name) {
			c.Warn(n, fmt.Errorf("%w: %q", reporter.ErrInvalidName, name))
			return false
		}
	}
	return true
}

// invalid is the result of a block whose fields cannot be written out.
func invalid(c *emit.Context) emit.Result {
	return emit.Expr(emit.Placeholder(c.Syntax()), emit.OrderAtomic)
}
