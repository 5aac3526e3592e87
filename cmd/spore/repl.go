package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"github.com/wmedrano/spore/vm"
)

// replCmd implements the REPL command, upgrading the teacher's
// bufio.Scanner input loop (cmd_repl.go) to github.com/chzyer/readline
// for line editing and history — a dependency the teacher's go.mod
// already carried but never wired into its own REPL.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive Spore session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive Spore session.
`
}
func (*replCmd) SetFlags(f *flag.FlagSet) {}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("Welcome to Spore!")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      ">>> ",
		HistoryFile: "",
	})
	if err != nil {
		printErr("💥 Failed to start readline: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	v := vm.New()
	ins := v.Inspector()

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return subcommands.ExitSuccess
		}
		if err != nil {
			printErr("💥 %v\n", err)
			return subcommands.ExitFailure
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.TrimSpace(line) == "exit" {
			return subcommands.ExitSuccess
		}

		result, err := v.EvalString(line)
		if err != nil {
			if lastErr, ok := v.LastError(); ok {
				fmt.Println(ins.ErrorReport(lastErr))
			} else {
				fmt.Println(err)
			}
			v.ResetCalls()
			continue
		}
		fmt.Println(ins.Pretty(result))
	}
}
