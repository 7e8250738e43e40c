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

package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/bufbuild/blockcompile/rules"
)

func newKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds [PATTERN]",
		Short: "List the block kinds that have translation rules",
		Long:  "List the block kinds that have translation rules, optionally filtered by a glob such as 'math_*'.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := "*"
			if len(args) == 1 {
				pattern = args[0]
			}
			if !doublestar.ValidatePattern(pattern) {
				return fmt.Errorf("bad pattern %q", pattern)
			}
			for _, kind := range rules.Default().Kinds() {
				if ok, _ := doublestar.Match(pattern, kind); ok {
					fmt.Fprintln(cmd.OutOrStdout(), kind)
				}
			}
			return nil
		},
	}
}
