package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/wmedrano/spore/vm"
)

// runCmd executes a Spore source file start to finish, the compiled
// counterpart of the teacher's cmd_run.go (a tree-walk interpreter
// over a whole parsed file).
type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute Spore code from a source file" }
func (*runCmd) Usage() string {
	return `run <file>:
  Execute Spore code from a source file.
`
}
func (*runCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		printErr("💥 File not provided\n")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		printErr("💥 Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	v := vm.New()
	result, err := v.EvalString(string(data))
	if err != nil {
		if lastErr, ok := v.LastError(); ok {
			fmt.Fprintln(os.Stderr, v.Inspector().ErrorReport(lastErr))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return subcommands.ExitFailure
	}
	fmt.Println(v.Inspector().Pretty(result))
	return subcommands.ExitSuccess
}
