package compiler

import "fmt"

// CompileError is a compile-time error tied to a source line, raised by the
// compiler (the lexer and parser report lexer.Error and parser.SyntaxError
// instead); the CLI maps every CompileError, like those two, to exit code 65
// (spec.md §7).
type CompileError struct {
	Line    int
	Message string
}

func (e CompileError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}
