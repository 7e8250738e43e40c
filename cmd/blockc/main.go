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

// Command blockc compiles block files into Yail programs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	outDir      string
	repl        bool
	strict      bool
	parallelism int
	metadata    string
	pkg         string
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "blockc",
		Short: "blockc compiles visual block programs into Yail",
		Long: `blockc is the command line front end of blockcompile.

Commands:
  build  Compile block files (.yaml) into Yail programs (.yail)
  kinds  List the block kinds that have translation rules
  watch  Rebuild block files in a directory whenever they change
`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.outDir, "out", "o", "out", "output directory for compiled programs")
	flags.BoolVar(&opts.repl, "repl", false, "emit code for the live-development companion")
	flags.BoolVar(&opts.strict, "strict", false, "treat blocks without a translation rule as errors")
	flags.IntVarP(&opts.parallelism, "jobs", "j", 0, "maximum number of files compiled at once")
	flags.StringVar(&opts.metadata, "metadata", "", "YAML file of component type descriptors")
	flags.StringVar(&opts.pkg, "package", "", "package for forms that do not name one")

	root.AddCommand(
		newBuildCommand(opts),
		newKindsCommand(),
		newWatchCommand(opts),
	)
	return root
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "blockc: "+format+"\n", args...)
}
