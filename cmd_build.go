package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"lox/bytecode"
)

// buildCmd implements "lox build <file>", compiling source ahead of time to
// the serialized chunk format spec.md §6 describes.
type buildCmd struct {
	out         string
	disassemble bool
}

func (*buildCmd) Name() string     { return "build" }
func (*buildCmd) Synopsis() string { return "Compile a Lox source file to a serialized bytecode chunk" }
func (*buildCmd) Usage() string {
	return `build <file>:
  Compile Lox source to a bytecode chunk, written to -o or stdout.
`
}

func (cmd *buildCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.out, "o", "", "output path (defaults to stdout)")
	f.BoolVar(&cmd.disassemble, "disassemble", false, "print the compiled bytecode before writing it")
}

func (cmd *buildCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: lox build <file>")
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

	encoded := bytecode.Encode(fn)
	if cmd.out == "" {
		if _, err := os.Stdout.Write(encoded); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitStatus(exitDataErr)
		}
		return subcommands.ExitSuccess
	}

	if err := os.WriteFile(cmd.out, encoded, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitStatus(exitDataErr)
	}
	return subcommands.ExitSuccess
}
