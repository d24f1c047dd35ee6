package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"lox/bytecode"
)

// disasmCmd implements "lox disasm <file>", printing the listing
// bytecode.Disassemble produces for a source file or a compiled chunk.
type disasmCmd struct{}

func (*disasmCmd) Name() string     { return "disasm" }
func (*disasmCmd) Synopsis() string { return "Disassemble a Lox source file or compiled chunk" }
func (*disasmCmd) Usage() string {
	return `disasm <file>:
  Print a human-readable listing of the compiled bytecode.
`
}
func (*disasmCmd) SetFlags(*flag.FlagSet) {}

func (*disasmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: lox disasm <file>")
		return subcommands.ExitUsageError
	}

	fn, code, err := loadChunk(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitStatus(code)
	}

	name := fn.Name
	if fn.IsScript {
		name = "script"
	}
	fmt.Print(bytecode.Disassemble(fn.Chunk, name))
	return subcommands.ExitSuccess
}
