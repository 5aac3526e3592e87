// Command spore is the Spore language's CLI: a REPL and a file runner
// over the vm package, structured the way the teacher's main.go wires
// subcommands.Register calls (main.go, cmd_repl.go, cmd_run.go), pared
// down to the embedder surface package vm actually exposes — no
// bytecode-dump or disassemble flags, since this module's compiler
// doesn't keep a byte-stream form of its instructions around to dump.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&runCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}

func printErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
