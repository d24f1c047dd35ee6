package main

import (
	"fmt"
	"os"

	"lox/bytecode"
	"lox/compiler"
	"lox/lexer"
	"lox/parser"
)

// Exit codes follow spec.md §7: 65 for a compile-time error (lexer, parser,
// or compiler), 70 for a runtime error, 74 for an I/O or decode failure.
const (
	exitDataErr    = 74
	exitCompileErr = 65
	exitRuntimeErr = 70
)

// loadChunk reads path and produces a compiled script: a previously built
// bytecode chunk if the file starts with the chunk format's magic byte
// (spec.md §6), or freshly lexed/parsed/compiled Lox source otherwise.
func loadChunk(path string) (*bytecode.ObjFunction, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, exitDataErr, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) > 0 && data[0] == bytecode.ScriptMagic {
		fn, err := bytecode.Decode(data)
		if err != nil {
			return nil, exitDataErr, err
		}
		return fn, 0, nil
	}
	return compileSource(string(data))
}

// compileSource lexes, parses, and compiles one source string.
func compileSource(source string) (*bytecode.ObjFunction, int, error) {
	lx := lexer.New(source)
	tokens, err := lx.Scan()
	if err != nil {
		return nil, exitCompileErr, err
	}

	stmts, errs := parser.Make(tokens).Parse()
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return nil, exitCompileErr, errs[0]
	}

	fn, err := compiler.Compile(stmts)
	if err != nil {
		return nil, exitCompileErr, err
	}
	return fn, 0, nil
}
