package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"lox/bytecode"
	"lox/compiler"
	"lox/lexer"
	"lox/parser"
	"lox/vm"
)

// replCmd implements "lox repl": an interactive session sharing one VM (and
// so one global environment) across lines. Each line is lexed, parsed, and
// compiled as a complete program on its own; an empty line exits.
type replCmd struct {
	disasm bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive Lox session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive Lox session. An empty line exits.
`
}

func (cmd *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.disasm, "disasm", false, "print the compiled bytecode for each line before running it")
}

func (cmd *replCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	runRepl(os.Stdin, os.Stdout, cmd.disasm)
	return subcommands.ExitSuccess
}

// runRepl reads one line at a time, compiling and running each line as its
// own complete program against a shared VM; it never buffers across lines.
func runRepl(in *os.File, out *os.File, disasm bool) {
	scanner := bufio.NewScanner(in)
	machine := vm.New()

	for {
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			return
		}

		lx := lexer.New(line)
		tokens, err := lx.Scan()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		stmts, parseErrs := parser.Make(tokens).Parse()
		if len(parseErrs) > 0 {
			for _, pErr := range parseErrs {
				fmt.Fprintln(os.Stderr, pErr)
			}
			continue
		}

		fn, err := compiler.Compile(stmts)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		if disasm {
			fmt.Fprint(out, bytecode.Disassemble(fn.Chunk, "repl"))
		}

		if err := machine.Run(fn); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
