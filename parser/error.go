package parser

import "fmt"

// SyntaxError is a parse-time error tied to a source line. The CLI maps
// every SyntaxError to exit code 65, the same as a compiler.CompileError.
type SyntaxError struct {
	Line    int
	Message string
}

func CreateSyntaxError(line int, message string) SyntaxError {
	return SyntaxError{Line: line, Message: message}
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}
