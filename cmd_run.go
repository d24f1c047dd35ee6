package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"lox/bytecode"
	"lox/vm"
)

// runCmd implements "lox run <file>".
type runCmd struct {
	disassemble bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute a Lox source file or compiled chunk" }
func (*runCmd) Usage() string {
	return `run <file>:
  Execute Lox source, or a chunk previously produced by "lox build".
`
}

func (cmd *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.disassemble, "disassemble", false, "print the compiled bytecode before executing it")
}

func (cmd *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: lox run <file>")
		return subcommands.ExitUsageError
	}

	fn, code, err := loadChunk(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitStatus(code)
	}

	if cmd.disassemble {
		name := fn.Name
		if fn.IsScript {
			name = "script"
		}
		fmt.Print(bytecode.Disassemble(fn.Chunk, name))
	}

	if err := vm.New().Run(fn); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitStatus(exitRuntimeErr)
	}
	return subcommands.ExitSuccess
}
